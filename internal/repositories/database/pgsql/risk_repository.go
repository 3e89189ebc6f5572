package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gigpaisa/gigpaisa_backend/internal/apperrors"
	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	portsrepo "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/repositories"
)

type PgxRiskRepository struct {
	BaseRepository
}

// newPgxRiskRepository creates a new repository for risk predictions and
// monthly analyses.
func newPgxRiskRepository(pool *pgxpool.Pool) portsrepo.RiskRepositoryFacade {
	return &PgxRiskRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RiskRepositoryFacade = (*PgxRiskRepository)(nil)

const predictionColumns = `
	prediction_id, user_id, score, level, risks, features, forecast_7d,
	computed_at, valid_until, source, version, feedback, created_at, last_updated_at`

func scanPrediction(row pgx.Row) (domain.RiskPrediction, error) {
	var p domain.RiskPrediction
	err := row.Scan(
		&p.PredictionID,
		&p.UserID,
		&p.Score,
		&p.Level,
		&p.Risks,
		&p.Features,
		&p.Forecast7d,
		&p.ComputedAt,
		&p.ValidUntil,
		&p.Source,
		&p.Version,
		&p.Feedback,
		&p.CreatedAt,
		&p.LastUpdatedAt,
	)
	return p, err
}

// FindLatestValidPrediction retrieves the newest prediction whose validity
// window covers now.
func (r *PgxRiskRepository) FindLatestValidPrediction(ctx context.Context, userID string, now time.Time) (*domain.RiskPrediction, error) {
	query := `SELECT ` + predictionColumns + `
		FROM risk_predictions
		WHERE user_id = $1 AND valid_until > $2
		ORDER BY computed_at DESC LIMIT 1;`
	prediction, err := scanPrediction(r.Pool.QueryRow(ctx, query, userID, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find valid prediction: %w", err)
	}
	return &prediction, nil
}

// ListPredictionHistory retrieves up to limit predictions, newest first.
func (r *PgxRiskRepository) ListPredictionHistory(ctx context.Context, userID string, limit int) ([]domain.RiskPrediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM risk_predictions WHERE user_id = $1 ORDER BY computed_at DESC LIMIT $2;`
	rows, err := r.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query prediction history: %w", err)
	}
	defer rows.Close()

	predictions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RiskPrediction, error) {
		return scanPrediction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan predictions: %w", err)
	}
	return predictions, nil
}

// ListCriticalPredictions retrieves every currently valid prediction at
// critical level, across users.
func (r *PgxRiskRepository) ListCriticalPredictions(ctx context.Context, now time.Time) ([]domain.RiskPrediction, error) {
	query := `SELECT ` + predictionColumns + `
		FROM risk_predictions
		WHERE level = $1 AND valid_until > $2
		ORDER BY computed_at DESC;`
	rows, err := r.Pool.Query(ctx, query, domain.RiskCritical, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query critical predictions: %w", err)
	}
	defer rows.Close()

	predictions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RiskPrediction, error) {
		return scanPrediction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan critical predictions: %w", err)
	}
	return predictions, nil
}

// SavePrediction persists a prediction. When replaceExisting is true the
// user's still-valid predictions are expired in the same transaction, so at
// most one valid prediction remains.
func (r *PgxRiskRepository) SavePrediction(ctx context.Context, prediction domain.RiskPrediction, replaceExisting bool) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if replaceExisting {
		_, err := tx.Exec(ctx,
			`UPDATE risk_predictions SET valid_until = $1, last_updated_at = $1 WHERE user_id = $2 AND valid_until > $1;`,
			prediction.ComputedAt, prediction.UserID,
		)
		if err != nil {
			return fmt.Errorf("failed to expire previous predictions: %w", err)
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO risk_predictions (
			prediction_id, user_id, score, level, risks, features, forecast_7d,
			computed_at, valid_until, source, version, feedback, created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`,
		prediction.PredictionID, prediction.UserID, prediction.Score, prediction.Level,
		prediction.Risks, prediction.Features, prediction.Forecast7d,
		prediction.ComputedAt, prediction.ValidUntil, prediction.Source,
		prediction.Version, prediction.Feedback, prediction.CreatedAt, prediction.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save prediction: %w", err)
	}
	return r.Commit(ctx, tx)
}

// RecordFeedback bumps one feedback counter on a prediction.
func (r *PgxRiskRepository) RecordFeedback(ctx context.Context, predictionID, feedbackType string) error {
	if !domain.FeedbackTypes[feedbackType] {
		return apperrors.NewAppError(400, "unknown feedback type: "+feedbackType, apperrors.ErrValidation)
	}
	tag, err := r.Pool.Exec(ctx, `
		UPDATE risk_predictions
		SET feedback = jsonb_set(feedback, ARRAY[$1], to_jsonb(COALESCE((feedback->>$1)::int, 0) + 1)),
		    last_updated_at = $2
		WHERE prediction_id = $3;
	`, feedbackType, time.Now(), predictionID)
	if err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteExpiredPredictions removes predictions whose validity ended before
// the cutoff and reports how many were removed.
func (r *PgxRiskRepository) DeleteExpiredPredictions(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM risk_predictions WHERE valid_until < $1;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired predictions: %w", err)
	}
	return tag.RowsAffected(), nil
}

const analysisColumns = `
	analysis_id, user_id, month,
	balance_today_rupees, balance_plus_2days_rupees, balance_plus_4days_rupees,
	current_spending_rupees, normal_spending_rupees, extra_amount_rupees,
	days_until_zero, high_risk_category, high_risk_head, high_risk_description,
	medium_risk_head, medium_risk_description, highest_spending_day,
	pattern_detected_head, pattern_detected_description, predicted_risks,
	generated_at, created_at, last_updated_at`

func scanAnalysis(row pgx.Row) (domain.RiskAnalysis, error) {
	var a domain.RiskAnalysis
	err := row.Scan(
		&a.AnalysisID,
		&a.UserID,
		&a.Month,
		&a.BalanceTodayRupees,
		&a.BalancePlus2DaysRupees,
		&a.BalancePlus4DaysRupees,
		&a.CurrentSpendingRupees,
		&a.NormalSpendingRupees,
		&a.ExtraAmountRupees,
		&a.DaysUntilZero,
		&a.HighRiskCategory,
		&a.HighRiskHead,
		&a.HighRiskDescription,
		&a.MediumRiskHead,
		&a.MediumRiskDescription,
		&a.HighestSpendingDay,
		&a.PatternDetectedHead,
		&a.PatternDetectedDescription,
		&a.PredictedRisks,
		&a.GeneratedAt,
		&a.CreatedAt,
		&a.LastUpdatedAt,
	)
	return a, err
}

// FindLatestAnalysis retrieves the newest analysis for a user.
func (r *PgxRiskRepository) FindLatestAnalysis(ctx context.Context, userID string) (*domain.RiskAnalysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM risk_analyses WHERE user_id = $1 ORDER BY generated_at DESC LIMIT 1;`
	analysis, err := scanAnalysis(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest analysis: %w", err)
	}
	return &analysis, nil
}

// ListAnalysisHistory retrieves up to limit analyses, newest first.
func (r *PgxRiskRepository) ListAnalysisHistory(ctx context.Context, userID string, limit int) ([]domain.RiskAnalysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM risk_analyses WHERE user_id = $1 ORDER BY generated_at DESC LIMIT $2;`
	rows, err := r.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis history: %w", err)
	}
	defer rows.Close()

	analyses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RiskAnalysis, error) {
		return scanAnalysis(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan analyses: %w", err)
	}
	return analyses, nil
}

// SaveAnalysis persists a monthly analysis.
func (r *PgxRiskRepository) SaveAnalysis(ctx context.Context, analysis domain.RiskAnalysis) error {
	query := `
		INSERT INTO risk_analyses (
			analysis_id, user_id, month,
			balance_today_rupees, balance_plus_2days_rupees, balance_plus_4days_rupees,
			current_spending_rupees, normal_spending_rupees, extra_amount_rupees,
			days_until_zero, high_risk_category, high_risk_head, high_risk_description,
			medium_risk_head, medium_risk_description, highest_spending_day,
			pattern_detected_head, pattern_detected_description, predicted_risks,
			generated_at, created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	_, err := r.Pool.Exec(ctx, query,
		analysis.AnalysisID, analysis.UserID, analysis.Month,
		analysis.BalanceTodayRupees, analysis.BalancePlus2DaysRupees, analysis.BalancePlus4DaysRupees,
		analysis.CurrentSpendingRupees, analysis.NormalSpendingRupees, analysis.ExtraAmountRupees,
		analysis.DaysUntilZero, analysis.HighRiskCategory, analysis.HighRiskHead, analysis.HighRiskDescription,
		analysis.MediumRiskHead, analysis.MediumRiskDescription, analysis.HighestSpendingDay,
		analysis.PatternDetectedHead, analysis.PatternDetectedDescription, analysis.PredictedRisks,
		analysis.GeneratedAt, analysis.CreatedAt, analysis.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}
