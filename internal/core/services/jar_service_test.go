package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gigpaisa/gigpaisa_backend/internal/apperrors"
	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/core/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
)

// --- Mock JarRepository ---
type MockJarRepository struct {
	mock.Mock
}

func (m *MockJarRepository) FindJarByID(ctx context.Context, jarID string) (*domain.SavingsJar, error) {
	args := m.Called(ctx, jarID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsJar), args.Error(1)
}

func (m *MockJarRepository) FindActiveJarByTitle(ctx context.Context, userID, title string) (*domain.SavingsJar, error) {
	args := m.Called(ctx, userID, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsJar), args.Error(1)
}

func (m *MockJarRepository) ListActiveJarsByUser(ctx context.Context, userID string) ([]domain.SavingsJar, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavingsJar), args.Error(1)
}

func (m *MockJarRepository) SumSavedByUser(ctx context.Context, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockJarRepository) SumDepositsSince(ctx context.Context, userID string, since time.Time) (decimal.Decimal, int, error) {
	args := m.Called(ctx, userID, since)
	return args.Get(0).(decimal.Decimal), args.Int(1), args.Error(2)
}

func (m *MockJarRepository) SaveJar(ctx context.Context, jar domain.SavingsJar) error {
	args := m.Called(ctx, jar)
	return args.Error(0)
}

func (m *MockJarRepository) DepositToJar(ctx context.Context, userID, jarID string, deposit domain.JarDeposit) (*domain.SavingsJar, decimal.Decimal, error) {
	args := m.Called(ctx, userID, jarID, deposit)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(*domain.SavingsJar), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockJarRepository) UpdateJarStatus(ctx context.Context, jarID string, status domain.JarStatus) error {
	args := m.Called(ctx, jarID, status)
	return args.Error(0)
}

// --- Test Suite ---
type JarServiceTestSuite struct {
	suite.Suite
	mockRepo *MockJarRepository
	service  portssvc.JarSvcFacade
}

func (suite *JarServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockJarRepository)
	suite.service = services.NewJarService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *JarServiceTestSuite) TestCreateJar_Success() {
	ctx := context.Background()
	userID := "user-1"
	deadline := time.Now().AddDate(0, 0, 30)
	req := dto.CreateJarRequest{
		Title:    "New Phone",
		Target:   decimal.NewFromInt(10000),
		Deadline: deadline,
	}

	suite.mockRepo.On("SaveJar", ctx, mock.MatchedBy(func(j domain.SavingsJar) bool {
		return j.UserID == userID &&
			j.Title == req.Title &&
			j.Target.Equal(req.Target) &&
			j.Saved.IsZero() &&
			j.Status == domain.JarActive &&
			j.Icon == "piggy-bank" && j.Color == "#10B981" && j.Bg == "bg-slate-800"
	})).Return(nil).Once()

	jar, err := suite.service.CreateJar(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(jar)
	suite.Equal("New Phone", jar.Title)
	suite.Equal("active", jar.Status)
	suite.True(jar.SuggestedAmt.GreaterThan(decimal.Zero))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JarServiceTestSuite) TestCreateJar_CustomStylingKept() {
	ctx := context.Background()
	req := dto.CreateJarRequest{
		Title:    "Bike Repair",
		Target:   decimal.NewFromInt(3000),
		Deadline: time.Now().AddDate(0, 1, 0),
		Icon:     "wrench",
		Color:    "#EF4444",
		Bg:       "bg-red-900",
	}

	suite.mockRepo.On("SaveJar", ctx, mock.MatchedBy(func(j domain.SavingsJar) bool {
		return j.Icon == "wrench" && j.Color == "#EF4444" && j.Bg == "bg-red-900"
	})).Return(nil).Once()

	jar, err := suite.service.CreateJar(ctx, "user-1", req)

	suite.Require().NoError(err)
	suite.Equal("wrench", jar.Icon)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JarServiceTestSuite) TestCreateJar_NonPositiveTarget() {
	ctx := context.Background()
	req := dto.CreateJarRequest{
		Title:    "Bad Jar",
		Target:   decimal.Zero,
		Deadline: time.Now().AddDate(0, 0, 7),
	}

	jar, err := suite.service.CreateJar(ctx, "user-1", req)

	suite.Require().Error(err)
	suite.Nil(jar)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveJar", mock.Anything, mock.Anything)
}

func (suite *JarServiceTestSuite) TestCreateJar_PastDeadline() {
	ctx := context.Background()
	req := dto.CreateJarRequest{
		Title:    "Too Late",
		Target:   decimal.NewFromInt(500),
		Deadline: time.Now().AddDate(0, 0, -1),
	}

	jar, err := suite.service.CreateJar(ctx, "user-1", req)

	suite.Require().Error(err)
	suite.Nil(jar)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JarServiceTestSuite) TestDeposit_Success() {
	ctx := context.Background()
	userID := "user-1"
	jarID := "jar-1"
	amount := decimal.NewFromInt(500)

	updated := &domain.SavingsJar{
		JarID:    jarID,
		UserID:   userID,
		Title:    "New Phone",
		Target:   decimal.NewFromInt(10000),
		Saved:    decimal.NewFromInt(500),
		Deadline: time.Now().AddDate(0, 0, 20),
		Status:   domain.JarActive,
	}
	unallocated := decimal.NewFromInt(4500)

	suite.mockRepo.On("DepositToJar", ctx, userID, jarID, mock.MatchedBy(func(d domain.JarDeposit) bool {
		return d.Amount.Equal(amount) && d.DepositID != ""
	})).Return(updated, unallocated, nil).Once()

	resp, err := suite.service.Deposit(ctx, userID, jarID, dto.DepositRequest{Amount: amount})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.True(resp.Jar.Saved.Equal(decimal.NewFromInt(500)))
	suite.True(resp.UnallocatedCash.Equal(unallocated))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JarServiceTestSuite) TestDeposit_CompletesJar() {
	ctx := context.Background()
	userID := "user-1"
	jarID := "jar-1"

	// 9500 saved + 600 deposit crosses the 10000 target.
	updated := &domain.SavingsJar{
		JarID:  jarID,
		UserID: userID,
		Target: decimal.NewFromInt(10000),
		Saved:  decimal.NewFromInt(10100),
		Status: domain.JarCompleted,
	}
	suite.mockRepo.On("DepositToJar", ctx, userID, jarID, mock.AnythingOfType("domain.JarDeposit")).
		Return(updated, decimal.NewFromInt(900), nil).Once()

	resp, err := suite.service.Deposit(ctx, userID, jarID, dto.DepositRequest{Amount: decimal.NewFromInt(600)})

	suite.Require().NoError(err)
	suite.Equal("completed", resp.Jar.Status)
	suite.True(resp.Jar.Saved.Equal(decimal.NewFromInt(10100)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JarServiceTestSuite) TestDeposit_NonPositiveAmount() {
	ctx := context.Background()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-100)} {
		resp, err := suite.service.Deposit(ctx, "user-1", "jar-1", dto.DepositRequest{Amount: amount})

		suite.Require().Error(err)
		suite.Nil(resp)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "DepositToJar", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JarServiceTestSuite) TestDeposit_ExceedsUnallocatedCash() {
	ctx := context.Background()

	// The repository enforces the guard inside its transaction; the service
	// surfaces the validation error untouched.
	suite.mockRepo.On("DepositToJar", ctx, "user-1", "jar-1", mock.AnythingOfType("domain.JarDeposit")).
		Return(nil, decimal.Zero, apperrors.ErrValidation).Once()

	resp, err := suite.service.Deposit(ctx, "user-1", "jar-1", dto.DepositRequest{Amount: decimal.NewFromFloat(5000.01)})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JarServiceTestSuite) TestGetJarByID_Forbidden() {
	ctx := context.Background()
	jar := &domain.SavingsJar{JarID: "jar-1", UserID: "someone-else"}

	suite.mockRepo.On("FindJarByID", ctx, "jar-1").Return(jar, nil).Once()

	resp, err := suite.service.GetJarByID(ctx, "user-1", "jar-1")

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *JarServiceTestSuite) TestArchiveJar_Success() {
	ctx := context.Background()
	jar := &domain.SavingsJar{JarID: "jar-1", UserID: "user-1", Status: domain.JarActive}

	suite.mockRepo.On("FindJarByID", ctx, "jar-1").Return(jar, nil).Once()
	suite.mockRepo.On("UpdateJarStatus", ctx, "jar-1", domain.JarArchived).Return(nil).Once()

	err := suite.service.ArchiveJar(ctx, "user-1", "jar-1")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JarServiceTestSuite) TestListJars_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("ListActiveJarsByUser", ctx, "user-1").Return(nil, expectedErr).Once()

	jars, err := suite.service.ListJars(ctx, "user-1")

	suite.Require().Error(err)
	suite.Nil(jars)
	suite.ErrorIs(err, expectedErr)
}

// --- Run Suite ---
func TestJarService(t *testing.T) {
	suite.Run(t, new(JarServiceTestSuite))
}
