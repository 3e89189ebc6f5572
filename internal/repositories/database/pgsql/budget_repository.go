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
	"github.com/gigpaisa/gigpaisa_backend/internal/utils/budgeting"
)

type PgxWeeklyBudgetRepository struct {
	BaseRepository
}

// newPgxWeeklyBudgetRepository creates a new repository for weekly budget snapshots.
func newPgxWeeklyBudgetRepository(pool *pgxpool.Pool) portsrepo.WeeklyBudgetRepositoryFacade {
	return &PgxWeeklyBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WeeklyBudgetRepositoryFacade = (*PgxWeeklyBudgetRepository)(nil)

const weeklyBudgetColumns = `
	user_id, week_id, year, week_number, week_start_date, week_end_date,
	categories, summary, total_spent_paise, total_budget_paise,
	budget_utilization, overall_risk_score, ai_last_analyzed,
	created_at, last_updated_at`

func scanWeeklyBudget(row pgx.Row) (domain.WeeklyBudget, error) {
	var b domain.WeeklyBudget
	err := row.Scan(
		&b.UserID,
		&b.WeekID,
		&b.Year,
		&b.WeekNumber,
		&b.WeekStartDate,
		&b.WeekEndDate,
		&b.Categories,
		&b.Summary,
		&b.TotalSpentPaise,
		&b.TotalBudgetPaise,
		&b.BudgetUtilization,
		&b.OverallRiskScore,
		&b.AILastAnalyzed,
		&b.CreatedAt,
		&b.LastUpdatedAt,
	)
	return b, err
}

// FindWeeklyBudget retrieves the snapshot keyed by (userID, weekStartDate).
func (r *PgxWeeklyBudgetRepository) FindWeeklyBudget(ctx context.Context, userID string, weekStart time.Time) (*domain.WeeklyBudget, error) {
	query := `SELECT ` + weeklyBudgetColumns + ` FROM weekly_budgets WHERE user_id = $1 AND week_start_date = $2;`
	budget, err := scanWeeklyBudget(r.Pool.QueryRow(ctx, query, userID, weekStart))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find weekly budget: %w", err)
	}
	return &budget, nil
}

// FindWeeklyBudgetByYearWeek retrieves the snapshot for an ISO year/week.
func (r *PgxWeeklyBudgetRepository) FindWeeklyBudgetByYearWeek(ctx context.Context, userID string, year, week int) (*domain.WeeklyBudget, error) {
	query := `SELECT ` + weeklyBudgetColumns + ` FROM weekly_budgets WHERE user_id = $1 AND year = $2 AND week_number = $3;`
	budget, err := scanWeeklyBudget(r.Pool.QueryRow(ctx, query, userID, year, week))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find weekly budget %d-W%02d: %w", year, week, err)
	}
	return &budget, nil
}

// ListRecentWeeklyBudgets retrieves up to limit snapshots, newest week first.
func (r *PgxWeeklyBudgetRepository) ListRecentWeeklyBudgets(ctx context.Context, userID string, limit int) ([]domain.WeeklyBudget, error) {
	query := `SELECT ` + weeklyBudgetColumns + ` FROM weekly_budgets WHERE user_id = $1 ORDER BY week_start_date DESC LIMIT $2;`
	rows, err := r.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly budgets: %w", err)
	}
	defer rows.Close()

	budgets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.WeeklyBudget, error) {
		return scanWeeklyBudget(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan weekly budgets: %w", err)
	}
	return budgets, nil
}

// RecomputeWeeklyBudget re-sums the week's transactions and upserts the
// snapshot in one serialized database transaction. Concurrent recomputes of
// the same (user, week) queue behind an advisory lock, so the stored snapshot
// always reflects a full re-sum of the ledger.
func (r *PgxWeeklyBudgetRepository) RecomputeWeeklyBudget(ctx context.Context, userID string, weekStart, weekEnd time.Time) (*domain.WeeklyBudget, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockKey := userID + ":budget:" + weekStart.Format("2006-01-02")
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0));`, lockKey); err != nil {
		return nil, fmt.Errorf("failed to take budget lock: %w", err)
	}

	// Custom limits survive recomputes; seed from the existing snapshot.
	maxBudgets := make(map[domain.BudgetCategory]int64)
	var existing domain.WeeklyBudget
	var aiLastAnalyzed *time.Time
	var createdAt time.Time
	err = tx.QueryRow(ctx,
		`SELECT categories, ai_last_analyzed, created_at FROM weekly_budgets WHERE user_id = $1 AND week_start_date = $2 FOR UPDATE;`,
		userID, weekStart,
	).Scan(&existing.Categories, &aiLastAnalyzed, &createdAt)
	switch {
	case err == nil:
		for name, bucket := range existing.Categories {
			maxBudgets[name] = bucket.MaxBudgetPaise
		}
	case errors.Is(err, pgx.ErrNoRows):
		createdAt = time.Now()
	default:
		return nil, fmt.Errorf("failed to load existing budget: %w", err)
	}

	rows, err := tx.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = $1 AND timestamp >= $2 AND timestamp <= $3 ORDER BY timestamp DESC;`,
		userID, weekStart, weekEnd,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query week transactions: %w", err)
	}
	txns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan week transactions: %w", err)
	}

	budget := buildWeeklyBudget(userID, weekStart, weekEnd, txns, maxBudgets)
	budget.AILastAnalyzed = aiLastAnalyzed
	budget.CreatedAt = createdAt
	budget.LastUpdatedAt = time.Now()

	if err := upsertWeeklyBudget(ctx, tx, budget); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return budget, nil
}

// UpdateBudgetLimits replaces the given per-category limits on an existing
// snapshot and stamps aiLastAnalyzed. Derived fields refresh from the stored
// spend figures.
func (r *PgxWeeklyBudgetRepository) UpdateBudgetLimits(ctx context.Context, userID string, weekStart time.Time, limits map[domain.BudgetCategory]int64) (*domain.WeeklyBudget, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	query := `SELECT ` + weeklyBudgetColumns + ` FROM weekly_budgets WHERE user_id = $1 AND week_start_date = $2 FOR UPDATE;`
	budget, err := scanWeeklyBudget(tx.QueryRow(ctx, query, userID, weekStart))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load budget for limit update: %w", err)
	}

	for name, limit := range limits {
		bucket := budget.Categories[name]
		bucket.MaxBudgetPaise = limit
		budget.Categories[name] = bucket
	}
	refreshBudgetDerived(&budget)
	now := time.Now()
	budget.AILastAnalyzed = &now
	budget.LastUpdatedAt = now

	if err := upsertWeeklyBudget(ctx, tx, &budget); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &budget, nil
}

// buildWeeklyBudget aggregates one week of ledger entries into a snapshot.
func buildWeeklyBudget(userID string, weekStart, weekEnd time.Time, txns []domain.Transaction, maxBudgets map[domain.BudgetCategory]int64) *domain.WeeklyBudget {
	categories, summary := budgeting.AggregateWeek(txns, maxBudgets)
	year, week := weekStart.ISOWeek()

	budget := &domain.WeeklyBudget{
		UserID:        userID,
		WeekID:        budgeting.WeekID(weekStart),
		Year:          year,
		WeekNumber:    week,
		WeekStartDate: weekStart,
		WeekEndDate:   weekEnd,
		Categories:    categories,
		Summary:       summary,
	}
	refreshBudgetDerived(budget)
	return budget
}

// refreshBudgetDerived recomputes the snapshot's totals and scores from its
// category buckets.
func refreshBudgetDerived(b *domain.WeeklyBudget) {
	var totalSpent, totalBudget int64
	for _, bucket := range b.Categories {
		totalSpent += bucket.CurrentSpentPaise
		totalBudget += bucket.MaxBudgetPaise
	}
	b.TotalSpentPaise = totalSpent
	b.TotalBudgetPaise = totalBudget
	b.BudgetUtilization = budgeting.BudgetUtilization(totalSpent, totalBudget)
	b.OverallRiskScore = budgeting.OverallRiskScore(b.Categories)
}

func upsertWeeklyBudget(ctx context.Context, tx pgx.Tx, b *domain.WeeklyBudget) error {
	query := `
		INSERT INTO weekly_budgets (
			user_id, week_id, year, week_number, week_start_date, week_end_date,
			categories, summary, total_spent_paise, total_budget_paise,
			budget_utilization, overall_risk_score, ai_last_analyzed,
			created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (user_id, week_start_date) DO UPDATE SET
			categories = EXCLUDED.categories,
			summary = EXCLUDED.summary,
			total_spent_paise = EXCLUDED.total_spent_paise,
			total_budget_paise = EXCLUDED.total_budget_paise,
			budget_utilization = EXCLUDED.budget_utilization,
			overall_risk_score = EXCLUDED.overall_risk_score,
			ai_last_analyzed = EXCLUDED.ai_last_analyzed,
			last_updated_at = EXCLUDED.last_updated_at;
	`
	_, err := tx.Exec(ctx, query,
		b.UserID,
		b.WeekID,
		b.Year,
		b.WeekNumber,
		b.WeekStartDate,
		b.WeekEndDate,
		b.Categories,
		b.Summary,
		b.TotalSpentPaise,
		b.TotalBudgetPaise,
		b.BudgetUtilization,
		b.OverallRiskScore,
		b.AILastAnalyzed,
		b.CreatedAt,
		b.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert weekly budget %s: %w", b.WeekID, err)
	}
	return nil
}
