package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gigpaisa/gigpaisa_backend/internal/apperrors"
	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	portsrepo "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/repositories"
	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/core/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
)

// --- Mock ChallengeRepository ---
type MockChallengeRepository struct {
	mock.Mock
}

func (m *MockChallengeRepository) FindChallengeByID(ctx context.Context, userID, challengeID string) (*domain.DailyChallenge, error) {
	args := m.Called(ctx, userID, challengeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyChallenge), args.Error(1)
}

func (m *MockChallengeRepository) ListChallengesAssignedBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.DailyChallenge, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyChallenge), args.Error(1)
}

func (m *MockChallengeRepository) CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	args := m.Called(ctx, userID, since)
	return args.Int(0), args.Error(1)
}

func (m *MockChallengeRepository) SumRewardsCompletedSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	args := m.Called(ctx, userID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChallengeRepository) SaveChallenge(ctx context.Context, challenge domain.DailyChallenge) error {
	args := m.Called(ctx, challenge)
	return args.Error(0)
}

func (m *MockChallengeRepository) MarkChallengeCompleted(ctx context.Context, userID, challengeID string, completion domain.ChallengeCompletion) (bool, error) {
	args := m.Called(ctx, userID, challengeID, completion)
	return args.Bool(0), args.Error(1)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, userID, txID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, txID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, filter portsrepo.TransactionFilter, limit, offset int) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, userID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) FindTransactionsInRange(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SumAmountByType(ctx context.Context, userID string, txType domain.TransactionType, filter portsrepo.TransactionFilter) (int64, error) {
	args := m.Called(ctx, userID, txType, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) CountByCategorySince(ctx context.Context, userID, category string, since time.Time) (int, error) {
	args := m.Called(ctx, userID, category, since)
	return args.Int(0), args.Error(1)
}

func (m *MockTransactionRepository) SumByCategorySince(ctx context.Context, userID, category string, since time.Time) (int64, error) {
	args := m.Called(ctx, userID, category, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, budgetCategory domain.BudgetCategory) error {
	args := m.Called(ctx, txn, budgetCategory)
	return args.Error(0)
}

// --- Test Suite ---
type ChallengeServiceTestSuite struct {
	suite.Suite
	mockChallengeRepo  *MockChallengeRepository
	mockTxnRepo        *MockTransactionRepository
	mockJarRepo        *MockJarRepository
	mockBudgetWriter   *MockBudgetWriter
	mockCashflowWriter *MockCashflowWriter
	service            portssvc.ChallengeSvcFacade
}

func (suite *ChallengeServiceTestSuite) SetupTest() {
	suite.mockChallengeRepo = new(MockChallengeRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockJarRepo = new(MockJarRepository)
	suite.mockBudgetWriter = new(MockBudgetWriter)
	suite.mockCashflowWriter = new(MockCashflowWriter)
	suite.service = services.NewChallengeService(suite.mockChallengeRepo, suite.mockTxnRepo, suite.mockJarRepo, suite.mockBudgetWriter, suite.mockCashflowWriter)
}

func (suite *ChallengeServiceTestSuite) expectDerivedRefresh(ctx context.Context, userID string) {
	suite.mockBudgetWriter.On("RefreshWeek", ctx, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockCashflowWriter.On("RefreshDay", ctx, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
}

func (suite *ChallengeServiceTestSuite) expectDashboardFigures(ctx context.Context, userID string) {
	suite.mockTxnRepo.On("SumAmountByType", ctx, userID, domain.Income, portsrepo.TransactionFilter{}).Return(int64(1200000), nil).Once()
	suite.mockTxnRepo.On("SumAmountByType", ctx, userID, domain.Expense, portsrepo.TransactionFilter{}).Return(int64(500000), nil).Once()
	suite.mockJarRepo.On("SumSavedByUser", ctx, userID).Return(decimal.NewFromInt(2000), nil).Once()
	suite.mockJarRepo.On("SumDepositsSince", ctx, userID, mock.AnythingOfType("time.Time")).Return(decimal.NewFromInt(350), 3, nil).Once()
}

// --- Test Cases ---

func (suite *ChallengeServiceTestSuite) TestCompleteChallenge_Success() {
	ctx := context.Background()
	userID := "user-1"
	challengeID := "ch-1"

	challenge := &domain.DailyChallenge{
		ChallengeID: challengeID,
		UserID:      userID,
		Title:       "Skip one chai",
		Status:      domain.ChallengeActive,
		AmountPaise: 2000,
		RewardPaise: 1500,
	}
	rewardsJar := &domain.SavingsJar{
		JarID:  "jar-rewards",
		UserID: userID,
		Title:  domain.ChallengeRewardsJarTitle,
		Target: decimal.NewFromInt(999999999),
		Saved:  decimal.NewFromInt(100),
		Status: domain.JarActive,
	}

	suite.mockChallengeRepo.On("FindChallengeByID", ctx, userID, challengeID).Return(challenge, nil).Once()
	suite.mockChallengeRepo.On("MarkChallengeCompleted", ctx, userID, challengeID, mock.MatchedBy(func(c domain.ChallengeCompletion) bool {
		return c.ActualAmountPaise == 2000
	})).Return(true, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Type == domain.Income &&
			txn.AmountPaise == 1500 &&
			txn.Category == "challenge_reward" &&
			txn.Merchant == "Daily Challenge" &&
			txn.Method == domain.MethodCash &&
			txn.Source == domain.SourceManual &&
			txn.Notes == "Challenge completed: Skip one chai"
	}), mock.AnythingOfType("domain.BudgetCategory")).Return(nil).Once()
	suite.mockJarRepo.On("FindActiveJarByTitle", ctx, userID, domain.ChallengeRewardsJarTitle).Return(rewardsJar, nil).Once()

	depositedJar := &domain.SavingsJar{
		JarID:  "jar-rewards",
		UserID: userID,
		Title:  domain.ChallengeRewardsJarTitle,
		Saved:  decimal.NewFromInt(115),
		Status: domain.JarActive,
	}
	suite.mockJarRepo.On("DepositToJar", ctx, userID, "jar-rewards", mock.MatchedBy(func(d domain.JarDeposit) bool {
		return d.Amount.Equal(decimal.NewFromInt(15)) // 1500 paise
	})).Return(depositedJar, decimal.NewFromInt(4885), nil).Once()
	suite.expectDerivedRefresh(ctx, userID)
	suite.expectDashboardFigures(ctx, userID)

	resp, err := suite.service.CompleteChallenge(ctx, userID, challengeID, dto.CompleteChallengeRequest{})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal("completed", resp.Challenge.Status)
	suite.Equal(int64(1500), resp.RewardTransaction.AmountPaise)
	suite.Equal("income", resp.RewardTransaction.Type)
	suite.Equal(domain.ChallengeRewardsJarTitle, resp.Jar.Title)
	suite.True(resp.Dashboard.TotalIncome.Equal(decimal.NewFromInt(12000)))
	suite.True(resp.Dashboard.TotalExpenses.Equal(decimal.NewFromInt(5000)))
	suite.True(resp.Dashboard.TotalSavings.Equal(decimal.NewFromInt(2000)))
	suite.True(resp.Dashboard.UnallocatedCash.Equal(decimal.NewFromInt(5000)))
	suite.Equal(3, resp.Dashboard.MonthlyDeposits)
	suite.mockChallengeRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockJarRepo.AssertExpectations(suite.T())
}

func (suite *ChallengeServiceTestSuite) TestCompleteChallenge_CreatesRewardsJar() {
	ctx := context.Background()
	userID := "user-1"
	challengeID := "ch-2"

	challenge := &domain.DailyChallenge{
		ChallengeID: challengeID,
		UserID:      userID,
		Title:       "Walk instead of auto",
		Status:      domain.ChallengeActive,
		AmountPaise: 3000,
		RewardPaise: 1000,
	}

	suite.mockChallengeRepo.On("FindChallengeByID", ctx, userID, challengeID).Return(challenge, nil).Once()
	suite.mockChallengeRepo.On("MarkChallengeCompleted", ctx, userID, challengeID, mock.AnythingOfType("domain.ChallengeCompletion")).Return(true, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("domain.BudgetCategory")).Return(nil).Once()

	// No rewards jar yet; it gets created with the fixed styling.
	suite.mockJarRepo.On("FindActiveJarByTitle", ctx, userID, domain.ChallengeRewardsJarTitle).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockJarRepo.On("SaveJar", ctx, mock.MatchedBy(func(j domain.SavingsJar) bool {
		return j.Title == domain.ChallengeRewardsJarTitle &&
			j.Icon == "trophy" && j.Color == "#F59E0B" && j.Bg == "bg-amber-900" &&
			j.Target.Equal(decimal.NewFromInt(999999999))
	})).Return(nil).Once()

	depositedJar := &domain.SavingsJar{JarID: "jar-new", UserID: userID, Title: domain.ChallengeRewardsJarTitle, Saved: decimal.NewFromInt(10), Status: domain.JarActive}
	suite.mockJarRepo.On("DepositToJar", ctx, userID, mock.AnythingOfType("string"), mock.AnythingOfType("domain.JarDeposit")).
		Return(depositedJar, decimal.NewFromInt(100), nil).Once()
	suite.expectDerivedRefresh(ctx, userID)
	suite.expectDashboardFigures(ctx, userID)

	resp, err := suite.service.CompleteChallenge(ctx, userID, challengeID, dto.CompleteChallengeRequest{})

	suite.Require().NoError(err)
	suite.Equal(domain.ChallengeRewardsJarTitle, resp.Jar.Title)
	suite.mockJarRepo.AssertExpectations(suite.T())
}

func (suite *ChallengeServiceTestSuite) TestCompleteChallenge_RefreshFailureDoesNotFailCompletion() {
	ctx := context.Background()
	userID := "user-1"
	challengeID := "ch-5"

	challenge := &domain.DailyChallenge{
		ChallengeID: challengeID,
		UserID:      userID,
		Title:       "No impulse recharge",
		Status:      domain.ChallengeActive,
		AmountPaise: 1000,
		RewardPaise: 800,
	}

	suite.mockChallengeRepo.On("FindChallengeByID", ctx, userID, challengeID).Return(challenge, nil).Once()
	suite.mockChallengeRepo.On("MarkChallengeCompleted", ctx, userID, challengeID, mock.AnythingOfType("domain.ChallengeCompletion")).Return(true, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("domain.BudgetCategory")).Return(nil).Once()

	// The reward write refreshes both derived caches; neither failure
	// bubbles up to the caller.
	suite.mockBudgetWriter.On("RefreshWeek", ctx, userID, mock.AnythingOfType("time.Time")).Return(errors.New("budget recompute down")).Once()
	suite.mockCashflowWriter.On("RefreshDay", ctx, userID, mock.AnythingOfType("time.Time")).Return(errors.New("cashflow recompute down")).Once()

	suite.mockJarRepo.On("FindActiveJarByTitle", ctx, userID, domain.ChallengeRewardsJarTitle).
		Return(&domain.SavingsJar{JarID: "jar-rewards", UserID: userID, Title: domain.ChallengeRewardsJarTitle, Status: domain.JarActive}, nil).Once()
	suite.mockJarRepo.On("DepositToJar", ctx, userID, "jar-rewards", mock.AnythingOfType("domain.JarDeposit")).
		Return(&domain.SavingsJar{JarID: "jar-rewards", Title: domain.ChallengeRewardsJarTitle, Status: domain.JarActive}, decimal.Zero, nil).Once()
	suite.expectDashboardFigures(ctx, userID)

	resp, err := suite.service.CompleteChallenge(ctx, userID, challengeID, dto.CompleteChallengeRequest{})

	suite.Require().NoError(err)
	suite.Equal("completed", resp.Challenge.Status)
	suite.mockBudgetWriter.AssertExpectations(suite.T())
	suite.mockCashflowWriter.AssertExpectations(suite.T())
}

func (suite *ChallengeServiceTestSuite) TestCompleteChallenge_AlreadyCompleted() {
	ctx := context.Background()
	userID := "user-1"
	challengeID := "ch-3"

	challenge := &domain.DailyChallenge{
		ChallengeID: challengeID,
		UserID:      userID,
		Title:       "Pack lunch",
		Status:      domain.ChallengeCompleted,
		RewardPaise: 1000,
	}

	suite.mockChallengeRepo.On("FindChallengeByID", ctx, userID, challengeID).Return(challenge, nil).Once()
	suite.mockChallengeRepo.On("MarkChallengeCompleted", ctx, userID, challengeID, mock.AnythingOfType("domain.ChallengeCompletion")).Return(false, nil).Once()

	resp, err := suite.service.CompleteChallenge(ctx, userID, challengeID, dto.CompleteChallengeRequest{})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrConflict)
	// No reward is booked when the claim loses.
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
	suite.mockJarRepo.AssertNotCalled(suite.T(), "DepositToJar", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ChallengeServiceTestSuite) TestCompleteChallenge_ActualAmountOverride() {
	ctx := context.Background()
	userID := "user-1"
	challengeID := "ch-4"
	actual := int64(2500)

	challenge := &domain.DailyChallenge{
		ChallengeID: challengeID,
		UserID:      userID,
		Title:       "Cook dinner",
		Status:      domain.ChallengeActive,
		AmountPaise: 2000,
		RewardPaise: 500,
	}

	suite.mockChallengeRepo.On("FindChallengeByID", ctx, userID, challengeID).Return(challenge, nil).Once()
	suite.mockChallengeRepo.On("MarkChallengeCompleted", ctx, userID, challengeID, mock.MatchedBy(func(c domain.ChallengeCompletion) bool {
		return c.ActualAmountPaise == actual
	})).Return(true, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("domain.BudgetCategory")).Return(nil).Once()
	suite.mockJarRepo.On("FindActiveJarByTitle", ctx, userID, domain.ChallengeRewardsJarTitle).
		Return(&domain.SavingsJar{JarID: "jar-rewards", UserID: userID, Title: domain.ChallengeRewardsJarTitle, Status: domain.JarActive}, nil).Once()
	suite.mockJarRepo.On("DepositToJar", ctx, userID, "jar-rewards", mock.AnythingOfType("domain.JarDeposit")).
		Return(&domain.SavingsJar{JarID: "jar-rewards", Title: domain.ChallengeRewardsJarTitle, Status: domain.JarActive}, decimal.Zero, nil).Once()
	suite.expectDerivedRefresh(ctx, userID)
	suite.expectDashboardFigures(ctx, userID)

	resp, err := suite.service.CompleteChallenge(ctx, userID, challengeID, dto.CompleteChallengeRequest{ActualAmountPaise: &actual})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp.Challenge.CompletedAt)
	suite.mockChallengeRepo.AssertExpectations(suite.T())
}

func (suite *ChallengeServiceTestSuite) TestGetStats() {
	ctx := context.Background()
	userID := "user-1"

	suite.mockChallengeRepo.On("CountCompletedSince", ctx, userID, mock.AnythingOfType("time.Time")).Return(1, nil).Once()
	suite.mockChallengeRepo.On("CountCompletedSince", ctx, userID, mock.AnythingOfType("time.Time")).Return(4, nil).Once()
	suite.mockChallengeRepo.On("CountCompletedSince", ctx, userID, mock.AnythingOfType("time.Time")).Return(12, nil).Once()
	suite.mockChallengeRepo.On("SumRewardsCompletedSince", ctx, userID, mock.AnythingOfType("time.Time")).Return(int64(18000), nil).Once()

	stats, err := suite.service.GetStats(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(1, stats.Today)
	suite.Equal(4, stats.ThisWeek)
	suite.Equal(12, stats.ThisMonth)
	suite.True(stats.MonthlyRewardsEarned.Equal(decimal.NewFromInt(180)))
	suite.mockChallengeRepo.AssertExpectations(suite.T())
}

func (suite *ChallengeServiceTestSuite) TestListTodaysChallenges() {
	ctx := context.Background()
	userID := "user-1"
	challenges := []domain.DailyChallenge{
		{ChallengeID: "ch-1", Title: "Skip one chai", Status: domain.ChallengeActive, Priority: 1},
		{ChallengeID: "ch-2", Title: "Walk instead of auto", Status: domain.ChallengeActive, Priority: 2},
	}

	suite.mockChallengeRepo.On("ListChallengesAssignedBetween", ctx, userID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(challenges, nil).Once()

	resp, err := suite.service.ListTodaysChallenges(ctx, userID)

	suite.Require().NoError(err)
	suite.Len(resp, 2)
	suite.Equal("ch-1", resp[0].ChallengeID)
	suite.mockChallengeRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestChallengeService(t *testing.T) {
	suite.Run(t, new(ChallengeServiceTestSuite))
}
