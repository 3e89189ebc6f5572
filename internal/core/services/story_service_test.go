package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gigpaisa/gigpaisa_backend/internal/apperrors"
	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/core/services"
)

// --- Mock StoryRepository ---
type MockStoryRepository struct {
	mock.Mock
}

func (m *MockStoryRepository) FindLatestStory(ctx context.Context, userID string) (*domain.MoneyStory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MoneyStory), args.Error(1)
}

func (m *MockStoryRepository) FindMonthlySummary(ctx context.Context, userID string, year, month int) (*domain.MonthlySummary, error) {
	args := m.Called(ctx, userID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlySummary), args.Error(1)
}

func (m *MockStoryRepository) SaveStory(ctx context.Context, story domain.MoneyStory) error {
	args := m.Called(ctx, story)
	return args.Error(0)
}

func (m *MockStoryRepository) UpsertMonthlySummary(ctx context.Context, summary domain.MonthlySummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

// --- Test Suite ---
type StoryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockStoryRepository
	service  portssvc.StorySvcFacade
}

func (suite *StoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockStoryRepository)
	suite.service = services.NewStoryService(suite.mockRepo)
}

// monthKeys returns the current and previous (year, month) pairs the service
// will ask for.
func monthKeys() (curYear, curMonth, prevYear, prevMonth int) {
	now := time.Now()
	curYear, curMonth = now.Year(), int(now.Month())
	prevYear, prevMonth = curYear, curMonth-1
	if curMonth == 1 {
		prevYear, prevMonth = curYear-1, 12
	}
	return
}

// --- Test Cases ---

func (suite *StoryServiceTestSuite) TestGetLatestStory_WithMetrics() {
	ctx := context.Background()
	userID := "user-1"
	curYear, curMonth, prevYear, prevMonth := monthKeys()

	story := &domain.MoneyStory{
		StoryID:         "story-1",
		UserID:          userID,
		Month:           curMonth,
		MonthlySummHead: "A strong month",
	}
	current := &domain.MonthlySummary{
		UserID:            userID,
		Year:              curYear,
		Month:             curMonth,
		TotalIncomePaise:  2500000, // 25000 rupees
		TotalExpensePaise: 1800000, // 18000 rupees
		BiggestSpike:      &domain.BiggestSpike{Category: "food", Amount: 5200, Percent: 28.9},
	}
	previous := &domain.MonthlySummary{
		UserID:            userID,
		Year:              prevYear,
		Month:             prevMonth,
		TotalIncomePaise:  2200000,
		TotalExpensePaise: 1900000,
	}

	suite.mockRepo.On("FindLatestStory", mock.Anything, userID).Return(story, nil).Once()
	suite.mockRepo.On("FindMonthlySummary", mock.Anything, userID, curYear, curMonth).Return(current, nil).Once()
	suite.mockRepo.On("FindMonthlySummary", mock.Anything, userID, prevYear, prevMonth).Return(previous, nil).Once()

	resp, err := suite.service.GetLatestStory(ctx, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp.Story)
	suite.Equal("story-1", resp.Story.StoryID)

	suite.Equal(int64(25000), resp.VisualMetrics.Earnings.Current)
	suite.Equal(int64(22000), resp.VisualMetrics.Earnings.Previous)
	suite.Equal(int64(3000), resp.VisualMetrics.Earnings.Growth)
	suite.Equal(int64(18000), resp.VisualMetrics.Spending.Current)
	suite.Equal(int64(-1000), resp.VisualMetrics.Spending.Growth)
	// Savings is income minus expense per month.
	suite.Equal(int64(7000), resp.VisualMetrics.Savings.Current)
	suite.Equal(int64(3000), resp.VisualMetrics.Savings.Previous)
	suite.Equal("food", resp.VisualMetrics.TopExpense.Category)
	suite.Equal(int64(5200), resp.VisualMetrics.TopExpense.Amount)
	suite.Equal("29%", resp.VisualMetrics.TopExpense.Percentage)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StoryServiceTestSuite) TestGetLatestStory_NoSummariesYet() {
	ctx := context.Background()
	userID := "user-1"
	curYear, curMonth, prevYear, prevMonth := monthKeys()

	suite.mockRepo.On("FindLatestStory", mock.Anything, userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindMonthlySummary", mock.Anything, userID, curYear, curMonth).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindMonthlySummary", mock.Anything, userID, prevYear, prevMonth).Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.GetLatestStory(ctx, userID)

	suite.Require().NoError(err)
	suite.Nil(resp.Story)
	suite.Equal(int64(0), resp.VisualMetrics.Earnings.Current)
	suite.Equal("", resp.VisualMetrics.TopExpense.Category)
}

func (suite *StoryServiceTestSuite) TestGetLatestStory_SummaryError() {
	ctx := context.Background()
	userID := "user-1"
	curYear, curMonth, prevYear, prevMonth := monthKeys()

	suite.mockRepo.On("FindLatestStory", mock.Anything, userID).Return(nil, apperrors.ErrNotFound).Maybe()
	suite.mockRepo.On("FindMonthlySummary", mock.Anything, userID, curYear, curMonth).Return(nil, context.DeadlineExceeded).Once()
	suite.mockRepo.On("FindMonthlySummary", mock.Anything, userID, prevYear, prevMonth).Return(nil, apperrors.ErrNotFound).Maybe()

	resp, err := suite.service.GetLatestStory(ctx, userID)

	suite.Require().Error(err)
	suite.Nil(resp)
}

// --- Run Suite ---
func TestStoryService(t *testing.T) {
	suite.Run(t, new(StoryServiceTestSuite))
}
