package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/core/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
)

// --- Mock RiskRepository ---
type MockRiskRepository struct {
	mock.Mock
}

func (m *MockRiskRepository) FindLatestValidPrediction(ctx context.Context, userID string, now time.Time) (*domain.RiskPrediction, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RiskPrediction), args.Error(1)
}

func (m *MockRiskRepository) ListPredictionHistory(ctx context.Context, userID string, limit int) ([]domain.RiskPrediction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RiskPrediction), args.Error(1)
}

func (m *MockRiskRepository) ListCriticalPredictions(ctx context.Context, now time.Time) ([]domain.RiskPrediction, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RiskPrediction), args.Error(1)
}

func (m *MockRiskRepository) SavePrediction(ctx context.Context, prediction domain.RiskPrediction, replaceExisting bool) error {
	args := m.Called(ctx, prediction, replaceExisting)
	return args.Error(0)
}

func (m *MockRiskRepository) RecordFeedback(ctx context.Context, predictionID, feedbackType string) error {
	args := m.Called(ctx, predictionID, feedbackType)
	return args.Error(0)
}

func (m *MockRiskRepository) DeleteExpiredPredictions(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRiskRepository) FindLatestAnalysis(ctx context.Context, userID string) (*domain.RiskAnalysis, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RiskAnalysis), args.Error(1)
}

func (m *MockRiskRepository) ListAnalysisHistory(ctx context.Context, userID string, limit int) ([]domain.RiskAnalysis, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RiskAnalysis), args.Error(1)
}

func (m *MockRiskRepository) SaveAnalysis(ctx context.Context, analysis domain.RiskAnalysis) error {
	args := m.Called(ctx, analysis)
	return args.Error(0)
}

// --- Test Suite ---
type RiskServiceTestSuite struct {
	suite.Suite
	mockRepo *MockRiskRepository
	service  portssvc.RiskSvcFacade
}

func (suite *RiskServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockRiskRepository)
	suite.service = services.NewRiskService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *RiskServiceTestSuite) TestStorePrediction_DerivesLevelAndDefaults() {
	ctx := context.Background()
	req := dto.CreatePredictionRequest{
		UserID: "user-1",
		Score:  85,
		Risks: []domain.PredictedRisk{
			{ID: "r1", Severity: domain.SeverityCritical, Message: "Balance depletion likely"},
			{ID: "r2", Severity: domain.SeverityWarning, Message: "Fuel spend rising"},
		},
		Source: "risk-engine",
	}

	suite.mockRepo.On("SavePrediction", ctx, mock.MatchedBy(func(p domain.RiskPrediction) bool {
		return p.UserID == "user-1" &&
			p.Score == 85 &&
			p.Level == domain.RiskCritical &&
			// No explicit validity: defaults to 24h out.
			p.ValidUntil.Sub(p.ComputedAt) == 24*time.Hour
	}), true).Return(nil).Once()

	resp, err := suite.service.StorePrediction(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("Critical", resp.Level)
	suite.True(resp.IsValid)
	suite.Len(resp.CriticalRisks, 1)
	suite.Len(resp.HighRisks, 0)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RiskServiceTestSuite) TestStorePrediction_ScoreClampedAndKeepExisting() {
	ctx := context.Background()
	keep := false
	req := dto.CreatePredictionRequest{
		UserID:          "user-1",
		Score:           140,
		ReplaceExisting: &keep,
	}

	suite.mockRepo.On("SavePrediction", ctx, mock.MatchedBy(func(p domain.RiskPrediction) bool {
		return p.Score == 100 && p.Level == domain.RiskCritical
	}), false).Return(nil).Once()

	resp, err := suite.service.StorePrediction(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(100, resp.Score)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RiskServiceTestSuite) TestGetPredictionHistory_Trend() {
	ctx := context.Background()
	userID := "user-1"
	history := []domain.RiskPrediction{
		{PredictionID: "p3", Score: 72, Level: domain.RiskHigh},
		{PredictionID: "p2", Score: 55, Level: domain.RiskMedium},
		{PredictionID: "p1", Score: 50, Level: domain.RiskMedium},
	}

	suite.mockRepo.On("ListPredictionHistory", ctx, userID, 10).Return(history, nil).Once()

	resp, err := suite.service.GetPredictionHistory(ctx, userID, 0)

	suite.Require().NoError(err)
	suite.Len(resp.Predictions, 3)
	// 72 vs 55 is a 17-point jump.
	suite.Equal("worsening", resp.Trend)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RiskServiceTestSuite) TestGetPredictionHistory_StableWithinBand() {
	ctx := context.Background()
	history := []domain.RiskPrediction{
		{PredictionID: "p2", Score: 60},
		{PredictionID: "p1", Score: 52},
	}

	suite.mockRepo.On("ListPredictionHistory", ctx, "user-1", 10).Return(history, nil).Once()

	resp, err := suite.service.GetPredictionHistory(ctx, "user-1", 0)

	suite.Require().NoError(err)
	suite.Equal("stable", resp.Trend)
}

func (suite *RiskServiceTestSuite) TestCleanupExpired() {
	ctx := context.Background()

	suite.mockRepo.On("DeleteExpiredPredictions", ctx, mock.AnythingOfType("time.Time")).Return(int64(7), nil).Once()

	removed, err := suite.service.CleanupExpired(ctx)

	suite.Require().NoError(err)
	suite.Equal(int64(7), removed)
}

func (suite *RiskServiceTestSuite) TestStoreAnalysis_DerivedFlags() {
	ctx := context.Background()
	req := dto.CreateAnalysisRequest{
		UserID:                "user-1",
		Month:                 "2026-08",
		BalanceTodayRupees:    1800,
		CurrentSpendingRupees: 9000,
		NormalSpendingRupees:  7000,
		DaysUntilZero:         5,
		PredictedRisks: []domain.AnalysisRisk{
			{Title: "Fuel overshoot", RiskLevel: "high"},
			{Title: "Recharge due", RiskLevel: "low"},
		},
	}

	suite.mockRepo.On("SaveAnalysis", ctx, mock.MatchedBy(func(a domain.RiskAnalysis) bool {
		return a.UserID == "user-1" && a.Month == "2026-08" && a.AnalysisID != ""
	})).Return(nil).Once()

	resp, err := suite.service.StoreAnalysis(ctx, req)

	suite.Require().NoError(err)
	suite.True(resp.IsCriticalBalance)
	// One high risk but a sub-week runway still reads critical.
	suite.Equal("critical", resp.OverallRiskLevel)
	suite.Len(resp.HighSeverityRisks, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RiskServiceTestSuite) TestRecordFeedback() {
	ctx := context.Background()

	suite.mockRepo.On("RecordFeedback", ctx, "pred-1", "acted_upon").Return(nil).Once()

	err := suite.service.RecordFeedback(ctx, "pred-1", dto.PredictionFeedbackRequest{FeedbackType: "acted_upon"})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestRiskService(t *testing.T) {
	suite.Run(t, new(RiskServiceTestSuite))
}
