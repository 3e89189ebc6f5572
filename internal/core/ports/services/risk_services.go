package services

import (
	"context"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
)

// RiskPredictionSvc defines operations on stored risk predictions
type RiskPredictionSvc interface {
	// StorePrediction persists an externally computed prediction, by default
	// replacing the user's still-valid ones.
	StorePrediction(ctx context.Context, req dto.CreatePredictionRequest) (*dto.PredictionResponse, error)

	// GetLatestPrediction retrieves the newest still-valid prediction.
	GetLatestPrediction(ctx context.Context, userID string) (*dto.PredictionResponse, error)

	// GetPredictionHistory retrieves recent predictions plus the score trend.
	GetPredictionHistory(ctx context.Context, userID string, limit int) (*dto.PredictionHistoryResponse, error)

	// GetRisksByCategory filters the latest valid prediction's risks to one
	// category. Risks tagged "all" always match.
	GetRisksByCategory(ctx context.Context, userID, category string) ([]domain.PredictedRisk, error)

	// RecordFeedback bumps a feedback counter on a prediction.
	RecordFeedback(ctx context.Context, predictionID string, req dto.PredictionFeedbackRequest) error

	// CleanupExpired removes predictions past their validity window.
	CleanupExpired(ctx context.Context) (int64, error)

	// GetCriticalSummary lists users currently at critical risk.
	GetCriticalSummary(ctx context.Context) (*dto.CriticalRiskSummaryResponse, error)
}

// RiskAnalysisSvc defines operations on monthly risk analyses
type RiskAnalysisSvc interface {
	// StoreAnalysis persists an externally generated monthly analysis.
	StoreAnalysis(ctx context.Context, req dto.CreateAnalysisRequest) (*dto.AnalysisResponse, error)

	// GetLatestAnalysis retrieves the newest analysis with derived flags.
	GetLatestAnalysis(ctx context.Context, userID string) (*dto.AnalysisResponse, error)

	// GetAnalysisHistory retrieves recent analyses, newest first.
	GetAnalysisHistory(ctx context.Context, userID string, limit int) ([]dto.AnalysisResponse, error)
}

// RiskSvcFacade combines prediction and analysis service operations
type RiskSvcFacade interface {
	RiskPredictionSvc
	RiskAnalysisSvc
}
