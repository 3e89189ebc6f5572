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

type PgxDailyCashflowRepository struct {
	BaseRepository
}

// newPgxDailyCashflowRepository creates a new repository for the daily
// cashflow cache.
func newPgxDailyCashflowRepository(pool *pgxpool.Pool) portsrepo.DailyCashflowRepositoryFacade {
	return &PgxDailyCashflowRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DailyCashflowRepositoryFacade = (*PgxDailyCashflowRepository)(nil)

const dailyCashflowColumns = `user_id, date, income_paise, expense_paise, net_paise, status, last_updated`

func scanDailyCashflow(row pgx.Row) (domain.DailyCashflow, error) {
	var c domain.DailyCashflow
	err := row.Scan(
		&c.UserID,
		&c.Date,
		&c.IncomePaise,
		&c.ExpensePaise,
		&c.NetPaise,
		&c.Status,
		&c.LastUpdated,
	)
	return c, err
}

// FindDailyCashflow retrieves the record keyed by (userID, date).
func (r *PgxDailyCashflowRepository) FindDailyCashflow(ctx context.Context, userID string, date time.Time) (*domain.DailyCashflow, error) {
	query := `SELECT ` + dailyCashflowColumns + ` FROM daily_cashflows WHERE user_id = $1 AND date = $2;`
	cashflow, err := scanDailyCashflow(r.Pool.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find daily cashflow: %w", err)
	}
	return &cashflow, nil
}

// ListDailyCashflowsInRange retrieves records in [from, to], ascending by date.
func (r *PgxDailyCashflowRepository) ListDailyCashflowsInRange(ctx context.Context, userID string, from, to time.Time) ([]domain.DailyCashflow, error) {
	query := `SELECT ` + dailyCashflowColumns + ` FROM daily_cashflows WHERE user_id = $1 AND date >= $2 AND date <= $3 ORDER BY date ASC;`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily cashflows: %w", err)
	}
	defer rows.Close()

	flows, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DailyCashflow, error) {
		return scanDailyCashflow(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan daily cashflows: %w", err)
	}
	return flows, nil
}

// UpsertDailyCashflow re-sums the day's transactions and stores the result.
// The re-sum and the write share one transaction, so a missed or reordered
// update heals on the next call.
func (r *PgxDailyCashflowRepository) UpsertDailyCashflow(ctx context.Context, userID string, date time.Time) (*domain.DailyCashflow, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	dayEnd := date.AddDate(0, 0, 1)
	var income, expense int64
	err = tx.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(amount_paise) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount_paise) FILTER (WHERE type = 'expense'), 0)
		FROM transactions
		WHERE user_id = $1 AND timestamp >= $2 AND timestamp < $3;
	`, userID, date, dayEnd).Scan(&income, &expense)
	if err != nil {
		return nil, fmt.Errorf("failed to sum day transactions: %w", err)
	}

	cashflow := &domain.DailyCashflow{
		UserID:       userID,
		Date:         date,
		IncomePaise:  income,
		ExpensePaise: expense,
		NetPaise:     income - expense,
		Status:       budgeting.ClassifyCashflow(income, expense),
		LastUpdated:  time.Now(),
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO daily_cashflows (user_id, date, income_paise, expense_paise, net_paise, status, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, date) DO UPDATE SET
			income_paise = EXCLUDED.income_paise,
			expense_paise = EXCLUDED.expense_paise,
			net_paise = EXCLUDED.net_paise,
			status = EXCLUDED.status,
			last_updated = EXCLUDED.last_updated;
	`, cashflow.UserID, cashflow.Date, cashflow.IncomePaise, cashflow.ExpensePaise, cashflow.NetPaise, cashflow.Status, cashflow.LastUpdated)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert daily cashflow: %w", err)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return cashflow, nil
}
