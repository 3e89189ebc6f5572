package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gigpaisa/gigpaisa_backend/internal/apperrors"
	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
	"github.com/gigpaisa/gigpaisa_backend/internal/middleware"
)

// --- Mock JarService ---
type MockJarService struct {
	mock.Mock
}

func (m *MockJarService) ListJars(ctx context.Context, userID string) ([]dto.JarResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.JarResponse), args.Error(1)
}

func (m *MockJarService) GetJarByID(ctx context.Context, userID, jarID string) (*dto.JarResponse, error) {
	args := m.Called(ctx, userID, jarID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.JarResponse), args.Error(1)
}

func (m *MockJarService) CreateJar(ctx context.Context, userID string, req dto.CreateJarRequest) (*dto.JarResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.JarResponse), args.Error(1)
}

func (m *MockJarService) Deposit(ctx context.Context, userID, jarID string, req dto.DepositRequest) (*dto.DepositResponse, error) {
	args := m.Called(ctx, userID, jarID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DepositResponse), args.Error(1)
}

func (m *MockJarService) ArchiveJar(ctx context.Context, userID, jarID string) error {
	args := m.Called(ctx, userID, jarID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.JarSvcFacade = (*MockJarService)(nil)

// --- Test Suite ---
type JarHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockJarService *MockJarService
	jwtSecret      string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *JarHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "gigpaisa-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *JarHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockJarService = new(MockJarService)

	v1 := suite.router.Group("/api/v1")
	registerJarRoutes(v1, suite.mockJarService)
}

func (suite *JarHandlerTestSuite) performRequest(method, path, userID string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *JarHandlerTestSuite) TestListJars_Success() {
	userID := "user-1"
	jars := []dto.JarResponse{
		{JarID: "jar-1", Title: "New Phone", Target: decimal.NewFromInt(15000), Saved: decimal.NewFromInt(4000), Status: "active"},
		{JarID: "jar-2", Title: "Diwali", Target: decimal.NewFromInt(5000), Saved: decimal.NewFromInt(5000), Status: "completed"},
	}
	suite.mockJarService.On("ListJars", mock.Anything, userID).Return(jars, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/jars", userID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var got []dto.JarResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Len(got, 2)
	suite.Equal("jar-1", got[0].JarID)
	suite.mockJarService.AssertExpectations(suite.T())
}

func (suite *JarHandlerTestSuite) TestListJars_Unauthorized() {
	w := suite.performRequest(http.MethodGet, "/api/v1/jars", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockJarService.AssertNotCalled(suite.T(), "ListJars")
}

func (suite *JarHandlerTestSuite) TestGetJar_NotFound() {
	userID := "user-1"
	suite.mockJarService.On("GetJarByID", mock.Anything, userID, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/jars/missing", userID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockJarService.AssertExpectations(suite.T())
}

func (suite *JarHandlerTestSuite) TestCreateJar_Success() {
	userID := "user-1"
	req := dto.CreateJarRequest{
		Title:    "Emergency Fund",
		Target:   decimal.NewFromInt(10000),
		Deadline: time.Now().AddDate(0, 3, 0).UTC().Truncate(time.Second),
	}
	created := &dto.JarResponse{JarID: "jar-3", Title: req.Title, Target: req.Target, Status: "active"}
	suite.mockJarService.On("CreateJar", mock.Anything, userID, mock.AnythingOfType("dto.CreateJarRequest")).
		Return(created, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/jars", userID, req)

	suite.Equal(http.StatusCreated, w.Code)
	var got dto.JarResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("jar-3", got.JarID)
	suite.mockJarService.AssertExpectations(suite.T())
}

func (suite *JarHandlerTestSuite) TestCreateJar_MissingTitle() {
	w := suite.performRequest(http.MethodPost, "/api/v1/jars", "user-1", gin.H{"target": "5000"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJarService.AssertNotCalled(suite.T(), "CreateJar")
}

func (suite *JarHandlerTestSuite) TestDeposit_Success() {
	userID := "user-1"
	resp := &dto.DepositResponse{
		Jar:             dto.JarResponse{JarID: "jar-1", Saved: decimal.NewFromInt(4500), Status: "active"},
		UnallocatedCash: decimal.NewFromInt(1500),
	}
	suite.mockJarService.On("Deposit", mock.Anything, userID, "jar-1", mock.AnythingOfType("dto.DepositRequest")).
		Return(resp, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/jars/jar-1/deposits", userID, dto.DepositRequest{Amount: decimal.NewFromInt(500)})

	suite.Equal(http.StatusOK, w.Code)
	var got dto.DepositResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.True(got.UnallocatedCash.Equal(decimal.NewFromInt(1500)))
	suite.mockJarService.AssertExpectations(suite.T())
}

func (suite *JarHandlerTestSuite) TestDeposit_ExceedsUnallocatedCash() {
	userID := "user-1"
	guardErr := apperrors.NewAppError(http.StatusBadRequest, "deposit of ₹5000 exceeds unallocated cash of ₹1200", apperrors.ErrValidation)
	suite.mockJarService.On("Deposit", mock.Anything, userID, "jar-1", mock.AnythingOfType("dto.DepositRequest")).
		Return(nil, guardErr).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/jars/jar-1/deposits", userID, dto.DepositRequest{Amount: decimal.NewFromInt(5000)})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "exceeds unallocated cash")
	suite.mockJarService.AssertExpectations(suite.T())
}

func (suite *JarHandlerTestSuite) TestArchiveJar_Success() {
	userID := "user-1"
	suite.mockJarService.On("ArchiveJar", mock.Anything, userID, "jar-1").Return(nil).Once()

	w := suite.performRequest(http.MethodDelete, "/api/v1/jars/jar-1", userID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockJarService.AssertExpectations(suite.T())
}

func TestJarHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(JarHandlerTestSuite))
}
