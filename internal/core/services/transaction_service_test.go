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
	portsrepo "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/repositories"
	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/core/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
)

// --- Mock BudgetWriterSvc ---
type MockBudgetWriter struct {
	mock.Mock
}

func (m *MockBudgetWriter) GenerateBudget(ctx context.Context, userID string, weekDate *time.Time) (*dto.WeeklyBudgetResponse, error) {
	args := m.Called(ctx, userID, weekDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.WeeklyBudgetResponse), args.Error(1)
}

func (m *MockBudgetWriter) UpdateBudgetLimits(ctx context.Context, userID string, req dto.UpdateBudgetLimitsRequest) (*dto.WeeklyBudgetResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.WeeklyBudgetResponse), args.Error(1)
}

func (m *MockBudgetWriter) RefreshWeek(ctx context.Context, userID string, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

// --- Mock CashflowWriterSvc ---
type MockCashflowWriter struct {
	mock.Mock
}

func (m *MockCashflowWriter) RefreshDay(ctx context.Context, userID string, date time.Time) error {
	args := m.Called(ctx, userID, date)
	return args.Error(0)
}

// --- Mock RecomputePublisher ---
type MockRecomputePublisher struct {
	mock.Mock
}

func (m *MockRecomputePublisher) PublishRecompute(ctx context.Context, task portssvc.RecomputeTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// --- Test Suite ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockTransactionRepository
	mockBudget    *MockBudgetWriter
	mockCashflow  *MockCashflowWriter
	mockPublisher *MockRecomputePublisher
	service       portssvc.TransactionSvcFacade
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.mockBudget = new(MockBudgetWriter)
	suite.mockCashflow = new(MockCashflowWriter)
	suite.mockPublisher = new(MockRecomputePublisher)
	suite.service = services.NewTransactionService(suite.mockRepo, suite.mockBudget, suite.mockCashflow, suite.mockPublisher)
}

func sampleCreateRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		Type:        "expense",
		AmountPaise: 25000,
		Category:    "food",
		Merchant:    "Dosa Plaza",
		Method:      "upi",
		Timestamp:   time.Date(2026, 8, 31, 13, 15, 0, 0, time.UTC),
		Source:      "sms",
	}
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	userID := "user-1"
	req := sampleCreateRequest()

	suite.mockRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.UserID == userID &&
			txn.Type == domain.Expense &&
			txn.AmountPaise == 25000 &&
			txn.TxID != ""
	}), domain.CategoryFood).Return(nil).Once()
	suite.mockBudget.On("RefreshWeek", ctx, userID, req.Timestamp).Return(nil).Once()
	suite.mockCashflow.On("RefreshDay", ctx, userID, req.Timestamp).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(domain.Expense, txn.Type)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockBudget.AssertExpectations(suite.T())
	suite.mockCashflow.AssertExpectations(suite.T())
	suite.mockPublisher.AssertNotCalled(suite.T(), "PublishRecompute", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RefreshFailureDoesNotFailWrite() {
	ctx := context.Background()
	userID := "user-1"
	req := sampleCreateRequest()

	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), domain.CategoryFood).Return(nil).Once()
	suite.mockBudget.On("RefreshWeek", ctx, userID, req.Timestamp).Return(assert.AnError).Once()
	suite.mockCashflow.On("RefreshDay", ctx, userID, req.Timestamp).Return(nil).Once()
	// The failed refresh goes to the retry queue instead.
	suite.mockPublisher.On("PublishRecompute", ctx, mock.MatchedBy(func(task portssvc.RecomputeTask) bool {
		return task.Kind == portssvc.RecomputeWeeklyBudget && task.UserID == userID && task.At.Equal(req.Timestamp)
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, userID, req)

	suite.Require().NoError(err)
	suite.NotNil(txn)
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_SaveError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("domain.BudgetCategory")).Return(expectedErr).Once()

	txn, err := suite.service.CreateTransaction(ctx, "user-1", sampleCreateRequest())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, expectedErr)
	// No refresh after a failed write.
	suite.mockBudget.AssertNotCalled(suite.T(), "RefreshWeek", mock.Anything, mock.Anything, mock.Anything)
	suite.mockCashflow.AssertNotCalled(suite.T(), "RefreshDay", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NilPublisher() {
	ctx := context.Background()
	userID := "user-1"
	req := sampleCreateRequest()
	service := services.NewTransactionService(suite.mockRepo, suite.mockBudget, suite.mockCashflow, nil)

	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), domain.CategoryFood).Return(nil).Once()
	suite.mockBudget.On("RefreshWeek", ctx, userID, req.Timestamp).Return(assert.AnError).Once()
	suite.mockCashflow.On("RefreshDay", ctx, userID, req.Timestamp).Return(assert.AnError).Once()

	txn, err := service.CreateTransaction(ctx, userID, req)

	suite.Require().NoError(err)
	suite.NotNil(txn)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_InvalidWindow() {
	ctx := context.Background()

	resp, err := suite.service.ListTransactions(ctx, "user-1", dto.ListTransactionsParams{Window: "year"})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_LimitClamped() {
	ctx := context.Background()
	userID := "user-1"
	txns := []domain.Transaction{{TxID: "tx-1", UserID: userID, Type: domain.Expense, AmountPaise: 5000, Category: "food"}}

	suite.mockRepo.On("ListTransactionsByUser", ctx, userID, mock.AnythingOfType("repositories.TransactionFilter"), 50, 0).
		Return(txns, int64(1), nil).Once()

	resp, err := suite.service.ListTransactions(ctx, userID, dto.ListTransactionsParams{Limit: 9999})

	suite.Require().NoError(err)
	suite.Equal(50, resp.Limit)
	suite.Equal(int64(1), resp.Total)
	suite.Len(resp.Transactions, 1)
	suite.Equal("food", resp.Transactions[0].BudgetCategory)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_WeekWindow() {
	ctx := context.Background()
	userID := "user-1"

	suite.mockRepo.On("ListTransactionsByUser", ctx, userID, mock.MatchedBy(func(f portsrepo.TransactionFilter) bool {
		return f.From != nil && f.To != nil && f.From.Weekday() == time.Monday
	}), 50, 0).Return([]domain.Transaction{}, int64(0), nil).Once()

	resp, err := suite.service.ListTransactions(ctx, userID, dto.ListTransactionsParams{Window: "week"})

	suite.Require().NoError(err)
	suite.Empty(resp.Transactions)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
