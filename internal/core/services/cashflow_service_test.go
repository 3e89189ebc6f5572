package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gigpaisa/gigpaisa_backend/internal/apperrors"
	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/core/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
)

// --- Mock DailyCashflowRepository ---
type MockCashflowRepository struct {
	mock.Mock
}

func (m *MockCashflowRepository) FindDailyCashflow(ctx context.Context, userID string, date time.Time) (*domain.DailyCashflow, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyCashflow), args.Error(1)
}

func (m *MockCashflowRepository) ListDailyCashflowsInRange(ctx context.Context, userID string, from, to time.Time) ([]domain.DailyCashflow, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyCashflow), args.Error(1)
}

func (m *MockCashflowRepository) UpsertDailyCashflow(ctx context.Context, userID string, date time.Time) (*domain.DailyCashflow, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyCashflow), args.Error(1)
}

// --- Test Suite ---
type CashflowServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCashflowRepository
	service  portssvc.CashflowSvcFacade
}

func (suite *CashflowServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCashflowRepository)
	suite.service = services.NewCashflowService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *CashflowServiceTestSuite) TestGetDailyCashflow_Exists() {
	ctx := context.Background()
	userID := "user-1"
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	record := &domain.DailyCashflow{
		UserID:       userID,
		Date:         day,
		IncomePaise:  120000,
		ExpensePaise: 40000,
		NetPaise:     80000,
		Status:       domain.StatusHighEarning,
	}

	suite.mockRepo.On("FindDailyCashflow", ctx, userID, day).Return(record, nil).Once()

	resp, err := suite.service.GetDailyCashflow(ctx, userID, time.Date(2026, 8, 30, 18, 45, 12, 0, time.UTC))

	suite.Require().NoError(err)
	suite.Equal("2026-08-30", resp.Date)
	suite.Equal("high_earning", resp.Status)
	suite.Equal(int64(80000), resp.NetPaise)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertDailyCashflow", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CashflowServiceTestSuite) TestGetDailyCashflow_RecomputedWhenMissing() {
	ctx := context.Background()
	userID := "user-1"
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	record := &domain.DailyCashflow{UserID: userID, Date: day, Status: domain.StatusNeutral}

	suite.mockRepo.On("FindDailyCashflow", ctx, userID, day).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("UpsertDailyCashflow", ctx, userID, day).Return(record, nil).Once()

	resp, err := suite.service.GetDailyCashflow(ctx, userID, day)

	suite.Require().NoError(err)
	suite.Equal("neutral", resp.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CashflowServiceTestSuite) TestGetHeatmap_FullMonthWithPlaceholders() {
	ctx := context.Background()
	userID := "user-1"
	records := []domain.DailyCashflow{
		{
			UserID:       userID,
			Date:         time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
			IncomePaise:  150050,
			ExpensePaise: 20000,
			NetPaise:     130050,
			Status:       domain.StatusHighEarning,
		},
		{
			UserID:       userID,
			Date:         time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC),
			IncomePaise:  0,
			ExpensePaise: 30000,
			NetPaise:     -30000,
			Status:       domain.StatusHeavyExpense,
		},
	}

	suite.mockRepo.On("ListDailyCashflowsInRange", ctx, userID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(records, nil).Once()

	resp, err := suite.service.GetHeatmap(ctx, userID, dto.HeatmapParams{Month: 2, Year: 2026})

	suite.Require().NoError(err)
	suite.Equal("February 2026", resp.MonthLabel)
	suite.Len(resp.Days, 28)

	// Recorded days carry whole-rupee figures.
	day3 := resp.Days[2]
	suite.Equal(3, day3.Day)
	suite.Equal("2026-02-03", day3.Date)
	suite.Equal(int64(1501), day3.Income) // 150050 paise rounds to 1501
	suite.Equal(domain.StatusHighEarning, day3.Status)

	day14 := resp.Days[13]
	suite.Equal(int64(-300), day14.Net)
	suite.Equal(domain.StatusHeavyExpense, day14.Status)

	// Days without a record are zero-valued neutral placeholders.
	day1 := resp.Days[0]
	suite.Equal(domain.StatusNeutral, day1.Status)
	suite.Equal(int64(0), day1.Income)
	suite.Equal("2026-02-01", day1.Date)
}

func (suite *CashflowServiceTestSuite) TestRefreshDay_TruncatesToMidnight() {
	ctx := context.Background()
	userID := "user-1"
	at := time.Date(2026, 8, 31, 22, 10, 5, 0, time.UTC)
	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("UpsertDailyCashflow", ctx, userID, day).Return(&domain.DailyCashflow{UserID: userID, Date: day}, nil).Once()

	err := suite.service.RefreshDay(ctx, userID, at)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CashflowServiceTestSuite) TestRefreshDay_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("UpsertDailyCashflow", ctx, "user-1", mock.AnythingOfType("time.Time")).Return(nil, expectedErr).Once()

	err := suite.service.RefreshDay(ctx, "user-1", time.Now())

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
}

// --- Run Suite ---
func TestCashflowService(t *testing.T) {
	suite.Run(t, new(CashflowServiceTestSuite))
}
