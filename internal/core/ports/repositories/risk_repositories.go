package repositories

import (
	"context"
	"time"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
)

// RiskPredictionReader defines read operations for stored predictions
type RiskPredictionReader interface {
	// FindLatestValidPrediction retrieves the newest prediction whose
	// validity window covers now.
	FindLatestValidPrediction(ctx context.Context, userID string, now time.Time) (*domain.RiskPrediction, error)

	// ListPredictionHistory retrieves up to limit predictions, newest first.
	ListPredictionHistory(ctx context.Context, userID string, limit int) ([]domain.RiskPrediction, error)

	// ListCriticalPredictions retrieves every currently valid prediction at
	// critical level, across users.
	ListCriticalPredictions(ctx context.Context, now time.Time) ([]domain.RiskPrediction, error)
}

// RiskPredictionWriter defines write operations for stored predictions
type RiskPredictionWriter interface {
	// SavePrediction persists a prediction. When replaceExisting is true the
	// user's still-valid predictions are expired in the same transaction.
	SavePrediction(ctx context.Context, prediction domain.RiskPrediction, replaceExisting bool) error

	// RecordFeedback bumps one feedback counter on a prediction.
	RecordFeedback(ctx context.Context, predictionID, feedbackType string) error

	// DeleteExpiredPredictions removes predictions whose validity ended
	// before the cutoff and reports how many were removed.
	DeleteExpiredPredictions(ctx context.Context, cutoff time.Time) (int64, error)
}

// RiskAnalysisReader defines read operations for monthly analyses
type RiskAnalysisReader interface {
	// FindLatestAnalysis retrieves the newest analysis for a user.
	FindLatestAnalysis(ctx context.Context, userID string) (*domain.RiskAnalysis, error)

	// ListAnalysisHistory retrieves up to limit analyses, newest first.
	ListAnalysisHistory(ctx context.Context, userID string, limit int) ([]domain.RiskAnalysis, error)
}

// RiskAnalysisWriter defines write operations for monthly analyses
type RiskAnalysisWriter interface {
	// SaveAnalysis persists a monthly analysis.
	SaveAnalysis(ctx context.Context, analysis domain.RiskAnalysis) error
}

// RiskRepositoryFacade combines prediction and analysis operations
type RiskRepositoryFacade interface {
	RiskPredictionReader
	RiskPredictionWriter
	RiskAnalysisReader
	RiskAnalysisWriter
}
