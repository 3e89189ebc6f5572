package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	portsrepo "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/repositories"
	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
	"github.com/gigpaisa/gigpaisa_backend/internal/middleware"
)

// Default validity window for predictions delivered without one.
const defaultPredictionValidity = 24 * time.Hour

// riskService stores and serves externally computed risk assessments.
type riskService struct {
	riskRepo portsrepo.RiskRepositoryFacade
}

// NewRiskService creates a new RiskService.
func NewRiskService(riskRepo portsrepo.RiskRepositoryFacade) portssvc.RiskSvcFacade {
	return &riskService{riskRepo: riskRepo}
}

var _ portssvc.RiskSvcFacade = (*riskService)(nil)

func (s *riskService) StorePrediction(ctx context.Context, req dto.CreatePredictionRequest) (*dto.PredictionResponse, error) {
	now := time.Now()

	score := req.Score
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	validUntil := now.Add(defaultPredictionValidity)
	if req.ValidUntil != nil {
		validUntil = *req.ValidUntil
	}

	replace := true
	if req.ReplaceExisting != nil {
		replace = *req.ReplaceExisting
	}

	prediction := domain.RiskPrediction{
		PredictionID: "pred_" + uuid.NewString(),
		UserID:       req.UserID,
		Score:        score,
		Level:        domain.LevelForScore(score),
		Risks:        req.Risks,
		Features:     req.Features,
		Forecast7d:   req.Forecast7d,
		ComputedAt:   now,
		ValidUntil:   validUntil,
		Source:       req.Source,
		Version:      req.Version,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.riskRepo.SavePrediction(ctx, prediction, replace); err != nil {
		return nil, fmt.Errorf("failed to save prediction: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Risk prediction stored", slog.String("prediction_id", prediction.PredictionID), slog.Int("score", score), slog.String("level", string(prediction.Level)))

	resp := dto.ToPredictionResponse(&prediction, now)
	return &resp, nil
}

func (s *riskService) GetLatestPrediction(ctx context.Context, userID string) (*dto.PredictionResponse, error) {
	now := time.Now()
	prediction, err := s.riskRepo.FindLatestValidPrediction(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest prediction: %w", err)
	}
	resp := dto.ToPredictionResponse(prediction, now)
	return &resp, nil
}

func (s *riskService) GetRisksByCategory(ctx context.Context, userID, category string) ([]domain.PredictedRisk, error) {
	prediction, err := s.riskRepo.FindLatestValidPrediction(ctx, userID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to get latest prediction: %w", err)
	}

	matched := make([]domain.PredictedRisk, 0, len(prediction.Risks))
	for _, risk := range prediction.Risks {
		if risk.Category == category || risk.Category == "all" {
			matched = append(matched, risk)
		}
	}
	return matched, nil
}

func (s *riskService) GetPredictionHistory(ctx context.Context, userID string, limit int) (*dto.PredictionHistoryResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	predictions, err := s.riskRepo.ListPredictionHistory(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list prediction history: %w", err)
	}

	now := time.Now()
	responses := make([]dto.PredictionResponse, len(predictions))
	for i := range predictions {
		responses[i] = dto.ToPredictionResponse(&predictions[i], now)
	}

	return &dto.PredictionHistoryResponse{
		Predictions: responses,
		Trend:       scoreTrend(predictions),
	}, nil
}

// scoreTrend compares the two newest scores; a swing beyond 10 points marks
// the direction. Higher score is worse.
func scoreTrend(predictions []domain.RiskPrediction) string {
	if len(predictions) < 2 {
		return "stable"
	}
	delta := predictions[0].Score - predictions[1].Score
	switch {
	case delta > 10:
		return "worsening"
	case delta < -10:
		return "improving"
	default:
		return "stable"
	}
}

func (s *riskService) RecordFeedback(ctx context.Context, predictionID string, req dto.PredictionFeedbackRequest) error {
	if err := s.riskRepo.RecordFeedback(ctx, predictionID, req.FeedbackType); err != nil {
		return fmt.Errorf("failed to record feedback on %s: %w", predictionID, err)
	}
	return nil
}

func (s *riskService) CleanupExpired(ctx context.Context) (int64, error) {
	removed, err := s.riskRepo.DeleteExpiredPredictions(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup expired predictions: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Expired predictions removed", slog.Int64("count", removed))
	return removed, nil
}

func (s *riskService) GetCriticalSummary(ctx context.Context) (*dto.CriticalRiskSummaryResponse, error) {
	now := time.Now()
	predictions, err := s.riskRepo.ListCriticalPredictions(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list critical predictions: %w", err)
	}

	responses := make([]dto.PredictionResponse, len(predictions))
	for i := range predictions {
		responses[i] = dto.ToPredictionResponse(&predictions[i], now)
	}
	return &dto.CriticalRiskSummaryResponse{
		Count:       len(responses),
		Predictions: responses,
	}, nil
}

func (s *riskService) StoreAnalysis(ctx context.Context, req dto.CreateAnalysisRequest) (*dto.AnalysisResponse, error) {
	now := time.Now()
	analysis := domain.RiskAnalysis{
		AnalysisID: "analysis_" + uuid.NewString(),
		UserID:     req.UserID,
		Month:      req.Month,

		BalanceTodayRupees:     req.BalanceTodayRupees,
		BalancePlus2DaysRupees: req.BalancePlus2DaysRupees,
		BalancePlus4DaysRupees: req.BalancePlus4DaysRupees,

		CurrentSpendingRupees: req.CurrentSpendingRupees,
		NormalSpendingRupees:  req.NormalSpendingRupees,
		ExtraAmountRupees:     req.ExtraAmountRupees,

		DaysUntilZero: req.DaysUntilZero,

		HighRiskCategory:    req.HighRiskCategory,
		HighRiskHead:        req.HighRiskHead,
		HighRiskDescription: req.HighRiskDescription,

		MediumRiskHead:        req.MediumRiskHead,
		MediumRiskDescription: req.MediumRiskDescription,

		HighestSpendingDay:         req.HighestSpendingDay,
		PatternDetectedHead:        req.PatternDetectedHead,
		PatternDetectedDescription: req.PatternDetectedDescription,

		PredictedRisks: req.PredictedRisks,

		GeneratedAt: now,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.riskRepo.SaveAnalysis(ctx, analysis); err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Risk analysis stored", slog.String("analysis_id", analysis.AnalysisID), slog.String("month", analysis.Month))

	resp := dto.ToAnalysisResponse(&analysis)
	return &resp, nil
}

func (s *riskService) GetLatestAnalysis(ctx context.Context, userID string) (*dto.AnalysisResponse, error) {
	analysis, err := s.riskRepo.FindLatestAnalysis(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest analysis: %w", err)
	}
	resp := dto.ToAnalysisResponse(analysis)
	return &resp, nil
}

func (s *riskService) GetAnalysisHistory(ctx context.Context, userID string, limit int) ([]dto.AnalysisResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 12
	}
	analyses, err := s.riskRepo.ListAnalysisHistory(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis history: %w", err)
	}
	responses := make([]dto.AnalysisResponse, len(analyses))
	for i := range analyses {
		responses[i] = dto.ToAnalysisResponse(&analyses[i])
	}
	return responses, nil
}
