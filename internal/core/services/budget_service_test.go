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

// --- Mock WeeklyBudgetRepository ---
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) FindWeeklyBudget(ctx context.Context, userID string, weekStart time.Time) (*domain.WeeklyBudget, error) {
	args := m.Called(ctx, userID, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyBudget), args.Error(1)
}

func (m *MockBudgetRepository) FindWeeklyBudgetByYearWeek(ctx context.Context, userID string, year, week int) (*domain.WeeklyBudget, error) {
	args := m.Called(ctx, userID, year, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyBudget), args.Error(1)
}

func (m *MockBudgetRepository) ListRecentWeeklyBudgets(ctx context.Context, userID string, limit int) ([]domain.WeeklyBudget, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WeeklyBudget), args.Error(1)
}

func (m *MockBudgetRepository) RecomputeWeeklyBudget(ctx context.Context, userID string, weekStart, weekEnd time.Time) (*domain.WeeklyBudget, error) {
	args := m.Called(ctx, userID, weekStart, weekEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyBudget), args.Error(1)
}

func (m *MockBudgetRepository) UpdateBudgetLimits(ctx context.Context, userID string, weekStart time.Time, limits map[domain.BudgetCategory]int64) (*domain.WeeklyBudget, error) {
	args := m.Called(ctx, userID, weekStart, limits)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyBudget), args.Error(1)
}

// --- Test Suite ---
type BudgetServiceTestSuite struct {
	suite.Suite
	mockRepo *MockBudgetRepository
	service  portssvc.BudgetSvcFacade
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBudgetRepository)
	suite.service = services.NewBudgetService(suite.mockRepo)
}

func sampleBudget(userID string) *domain.WeeklyBudget {
	return &domain.WeeklyBudget{
		UserID:     userID,
		WeekID:     "2026-W36",
		Year:       2026,
		WeekNumber: 36,
		Categories: map[domain.BudgetCategory]domain.CategoryBudget{
			domain.CategoryFood: {MaxBudgetPaise: 240000, CurrentSpentPaise: 120000, TransactionCount: 6},
			domain.CategoryFuel: {MaxBudgetPaise: 160000, CurrentSpentPaise: 200000, TransactionCount: 4},
		},
		TotalSpentPaise:   320000,
		TotalBudgetPaise:  400000,
		BudgetUtilization: 80,
		OverallRiskScore:  71,
	}
}

// --- Test Cases ---

func (suite *BudgetServiceTestSuite) TestGetCurrentWeekBudget_Exists() {
	ctx := context.Background()
	userID := "user-1"
	budget := sampleBudget(userID)

	suite.mockRepo.On("FindWeeklyBudget", ctx, userID, mock.AnythingOfType("time.Time")).Return(budget, nil).Once()

	resp, err := suite.service.GetCurrentWeekBudget(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal("2026-W36", resp.WeekID)
	suite.Equal(int64(320000), resp.TotalSpentPaise)
	// Per-category risk scores ride along on the response.
	suite.Equal(50, resp.Categories["food"].RiskScore)
	suite.Equal(100, resp.Categories["fuel"].RiskScore)
	suite.mockRepo.AssertNotCalled(suite.T(), "RecomputeWeeklyBudget", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestGetCurrentWeekBudget_GeneratedLazily() {
	ctx := context.Background()
	userID := "user-1"
	budget := sampleBudget(userID)

	suite.mockRepo.On("FindWeeklyBudget", ctx, userID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("RecomputeWeeklyBudget", ctx, userID, mock.MatchedBy(func(start time.Time) bool {
		// Weeks start Monday at midnight.
		return start.Weekday() == time.Monday && start.Hour() == 0 && start.Minute() == 0
	}), mock.AnythingOfType("time.Time")).Return(budget, nil).Once()

	resp, err := suite.service.GetCurrentWeekBudget(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal("2026-W36", resp.WeekID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestGetWeekBudget_InvalidWeekNumber() {
	ctx := context.Background()

	for _, week := range []int{0, 54, -3} {
		resp, err := suite.service.GetWeekBudget(ctx, "user-1", 2026, week)

		suite.Require().Error(err)
		suite.Nil(resp)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "FindWeeklyBudgetByYearWeek", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestGetWeekBudget_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindWeeklyBudgetByYearWeek", ctx, "user-1", 2026, 12).Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.GetWeekBudget(ctx, "user-1", 2026, 12)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *BudgetServiceTestSuite) TestGetBudgetHistory_DefaultWeeks() {
	ctx := context.Background()
	userID := "user-1"
	budgets := []domain.WeeklyBudget{
		{UserID: userID, WeekID: "2026-W36", TotalSpentPaise: 110000, Categories: map[domain.BudgetCategory]domain.CategoryBudget{}},
		{UserID: userID, WeekID: "2026-W35", TotalSpentPaise: 100000, Categories: map[domain.BudgetCategory]domain.CategoryBudget{}},
	}

	suite.mockRepo.On("ListRecentWeeklyBudgets", ctx, userID, 8).Return(budgets, nil).Once()

	resp, err := suite.service.GetBudgetHistory(ctx, userID, 0)

	suite.Require().NoError(err)
	suite.Len(resp.Budgets, 2)
	// 110000 vs 100000 is a 10% rise, within the stable band.
	suite.Equal("stable", resp.Trend.Trend)
	suite.Equal(10, resp.Trend.ChangePercent)
	suite.Equal(int64(1050), resp.Trend.WeeklyAverageRupees)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestUpdateBudgetLimits_Success() {
	ctx := context.Background()
	userID := "user-1"
	budget := sampleBudget(userID)
	req := dto.UpdateBudgetLimitsRequest{Budgets: map[string]float64{
		"food": 2500.50,
		"fuel": 1200,
	}}

	suite.mockRepo.On("FindWeeklyBudget", ctx, userID, mock.AnythingOfType("time.Time")).Return(budget, nil).Once()
	suite.mockRepo.On("UpdateBudgetLimits", ctx, userID, mock.AnythingOfType("time.Time"), map[domain.BudgetCategory]int64{
		domain.CategoryFood: 250050,
		domain.CategoryFuel: 120000,
	}).Return(budget, nil).Once()

	resp, err := suite.service.UpdateBudgetLimits(ctx, userID, req)

	suite.Require().NoError(err)
	suite.NotNil(resp)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestUpdateBudgetLimits_GeneratesMissingSnapshot() {
	ctx := context.Background()
	userID := "user-1"
	budget := sampleBudget(userID)
	req := dto.UpdateBudgetLimitsRequest{Budgets: map[string]float64{"food": 2000}}

	suite.mockRepo.On("FindWeeklyBudget", ctx, userID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("RecomputeWeeklyBudget", ctx, userID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(budget, nil).Once()
	suite.mockRepo.On("UpdateBudgetLimits", ctx, userID, mock.AnythingOfType("time.Time"), mock.Anything).Return(budget, nil).Once()

	resp, err := suite.service.UpdateBudgetLimits(ctx, userID, req)

	suite.Require().NoError(err)
	suite.NotNil(resp)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestUpdateBudgetLimits_NegativeRejected() {
	ctx := context.Background()
	req := dto.UpdateBudgetLimitsRequest{Budgets: map[string]float64{"food": -50}}

	resp, err := suite.service.UpdateBudgetLimits(ctx, "user-1", req)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateBudgetLimits", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestGenerateBudget_PinnedWeek() {
	ctx := context.Background()
	userID := "user-1"
	pinned := time.Date(2026, 8, 19, 15, 0, 0, 0, time.UTC) // a Wednesday
	budget := sampleBudget(userID)

	suite.mockRepo.On("RecomputeWeeklyBudget", ctx, userID, time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC), mock.AnythingOfType("time.Time")).
		Return(budget, nil).Once()

	resp, err := suite.service.GenerateBudget(ctx, userID, &pinned)

	suite.Require().NoError(err)
	suite.NotNil(resp)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestRefreshWeek_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("RecomputeWeeklyBudget", ctx, "user-1", mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(nil, expectedErr).Once()

	err := suite.service.RefreshWeek(ctx, "user-1", time.Now())

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
}

// --- Run Suite ---
func TestBudgetService(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
