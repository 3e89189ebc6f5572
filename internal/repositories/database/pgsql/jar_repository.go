package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/gigpaisa/gigpaisa_backend/internal/apperrors"
	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	portsrepo "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/repositories"
	"github.com/gigpaisa/gigpaisa_backend/internal/utils"
	"github.com/gigpaisa/gigpaisa_backend/internal/utils/budgeting"
)

type PgxJarRepository struct {
	BaseRepository
}

// newPgxJarRepository creates a new repository for savings jars.
func newPgxJarRepository(pool *pgxpool.Pool) portsrepo.JarRepositoryFacade {
	return &PgxJarRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JarRepositoryFacade = (*PgxJarRepository)(nil)

const jarColumns = `jar_id, user_id, title, target, saved, deadline, status, icon, color, bg, created_at, last_updated_at`

func scanJar(row pgx.Row) (domain.SavingsJar, error) {
	var j domain.SavingsJar
	err := row.Scan(
		&j.JarID,
		&j.UserID,
		&j.Title,
		&j.Target,
		&j.Saved,
		&j.Deadline,
		&j.Status,
		&j.Icon,
		&j.Color,
		&j.Bg,
		&j.CreatedAt,
		&j.LastUpdatedAt,
	)
	return j, err
}

// FindJarByID retrieves a jar with its deposit history.
func (r *PgxJarRepository) FindJarByID(ctx context.Context, jarID string) (*domain.SavingsJar, error) {
	query := `SELECT ` + jarColumns + ` FROM savings_jars WHERE jar_id = $1;`
	jar, err := scanJar(r.Pool.QueryRow(ctx, query, jarID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find jar: %w", err)
	}
	if jar.Deposits, err = r.loadDeposits(ctx, r.Pool, jarID); err != nil {
		return nil, err
	}
	return &jar, nil
}

// FindActiveJarByTitle retrieves a user's active jar by exact title.
func (r *PgxJarRepository) FindActiveJarByTitle(ctx context.Context, userID, title string) (*domain.SavingsJar, error) {
	query := `SELECT ` + jarColumns + ` FROM savings_jars WHERE user_id = $1 AND title = $2 AND status = $3 LIMIT 1;`
	jar, err := scanJar(r.Pool.QueryRow(ctx, query, userID, title, domain.JarActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find jar by title: %w", err)
	}
	if jar.Deposits, err = r.loadDeposits(ctx, r.Pool, jar.JarID); err != nil {
		return nil, err
	}
	return &jar, nil
}

// ListActiveJarsByUser retrieves a user's active jars sorted by deadline
// ascending, deposit histories included.
func (r *PgxJarRepository) ListActiveJarsByUser(ctx context.Context, userID string) ([]domain.SavingsJar, error) {
	query := `SELECT ` + jarColumns + ` FROM savings_jars WHERE user_id = $1 AND status = $2 ORDER BY deadline ASC;`
	rows, err := r.Pool.Query(ctx, query, userID, domain.JarActive)
	if err != nil {
		return nil, fmt.Errorf("failed to query jars: %w", err)
	}
	defer rows.Close()

	jars, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SavingsJar, error) {
		return scanJar(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan jars: %w", err)
	}
	for i := range jars {
		if jars[i].Deposits, err = r.loadDeposits(ctx, r.Pool, jars[i].JarID); err != nil {
			return nil, err
		}
	}
	return jars, nil
}

// SumSavedByUser totals the saved amounts across all of a user's jars.
func (r *PgxJarRepository) SumSavedByUser(ctx context.Context, userID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(saved), 0) FROM savings_jars WHERE user_id = $1;`, userID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum saved amounts: %w", err)
	}
	return total, nil
}

// SumDepositsSince totals jar deposits made from a point in time, plus their
// count, across all of a user's jars.
func (r *PgxJarRepository) SumDepositsSince(ctx context.Context, userID string, since time.Time) (decimal.Decimal, int, error) {
	var total decimal.Decimal
	var count int
	err := r.Pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0), COUNT(*) FROM jar_deposits WHERE user_id = $1 AND date >= $2;`,
		userID, since,
	).Scan(&total, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("failed to sum deposits: %w", err)
	}
	return total, count, nil
}

// SaveJar persists a new jar.
func (r *PgxJarRepository) SaveJar(ctx context.Context, jar domain.SavingsJar) error {
	query := `
		INSERT INTO savings_jars (jar_id, user_id, title, target, saved, deadline, status, icon, color, bg, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		jar.JarID, jar.UserID, jar.Title, jar.Target, jar.Saved, jar.Deadline,
		jar.Status, jar.Icon, jar.Color, jar.Bg, jar.CreatedAt, jar.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save jar: %w", err)
	}
	return nil
}

// DepositToJar appends a deposit and bumps the jar's saved total. The whole
// flow runs in one transaction serialized per user by an advisory lock, so
// two deposits cannot both pass the unallocated-cash check against the same
// balance.
func (r *PgxJarRepository) DepositToJar(ctx context.Context, userID, jarID string, deposit domain.JarDeposit) (*domain.SavingsJar, decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0));`, userID+":jars"); err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to take jar lock: %w", err)
	}

	query := `SELECT ` + jarColumns + ` FROM savings_jars WHERE jar_id = $1 AND user_id = $2 FOR UPDATE;`
	jar, err := scanJar(tx.QueryRow(ctx, query, jarID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, decimal.Zero, apperrors.ErrNotFound
		}
		return nil, decimal.Zero, fmt.Errorf("failed to lock jar: %w", err)
	}
	if jar.Status != domain.JarActive {
		return nil, decimal.Zero, apperrors.NewAppError(400, "cannot deposit into a "+string(jar.Status)+" jar", apperrors.ErrValidation)
	}

	unallocated, err := unallocatedCash(ctx, tx, userID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if !budgeting.DepositWithinUnallocated(deposit.Amount, unallocated) {
		return nil, decimal.Zero, apperrors.NewAppError(400,
			fmt.Sprintf("deposit of ₹%s exceeds unallocated cash of ₹%s", deposit.Amount.StringFixed(2), unallocated.StringFixed(2)),
			apperrors.ErrValidation)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO jar_deposits (deposit_id, jar_id, user_id, amount, date) VALUES ($1, $2, $3, $4, $5);`,
		deposit.DepositID, jarID, userID, deposit.Amount, deposit.Date,
	)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to record deposit: %w", err)
	}

	jar.Saved = jar.Saved.Add(deposit.Amount)
	if jar.Saved.GreaterThanOrEqual(jar.Target) {
		jar.Status = domain.JarCompleted
	}
	jar.LastUpdatedAt = time.Now()
	_, err = tx.Exec(ctx,
		`UPDATE savings_jars SET saved = $1, status = $2, last_updated_at = $3 WHERE jar_id = $4;`,
		jar.Saved, jar.Status, jar.LastUpdatedAt, jarID,
	)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to update jar balance: %w", err)
	}

	if jar.Deposits, err = r.loadDeposits(ctx, tx, jarID); err != nil {
		return nil, decimal.Zero, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, decimal.Zero, err
	}
	return &jar, unallocated.Sub(deposit.Amount), nil
}

// UpdateJarStatus moves a jar between active/completed/archived.
func (r *PgxJarRepository) UpdateJarStatus(ctx context.Context, jarID string, status domain.JarStatus) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE savings_jars SET status = $1, last_updated_at = $2 WHERE jar_id = $3;`,
		status, time.Now(), jarID,
	)
	if err != nil {
		return fmt.Errorf("failed to update jar status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// querier lets the deposit loader run against the pool or an open transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *PgxJarRepository) loadDeposits(ctx context.Context, q querier, jarID string) ([]domain.JarDeposit, error) {
	rows, err := q.Query(ctx,
		`SELECT deposit_id, amount, date FROM jar_deposits WHERE jar_id = $1 ORDER BY date DESC;`, jarID)
	if err != nil {
		return nil, fmt.Errorf("failed to query deposits: %w", err)
	}
	defer rows.Close()

	deposits, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.JarDeposit, error) {
		var d domain.JarDeposit
		err := row.Scan(&d.DepositID, &d.Amount, &d.Date)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan deposits: %w", err)
	}
	return deposits, nil
}

// unallocatedCash is lifetime income minus lifetime expenses minus the total
// saved across every jar, converted to rupees.
func unallocatedCash(ctx context.Context, tx pgx.Tx, userID string) (decimal.Decimal, error) {
	var incomePaise, expensePaise int64
	err := tx.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(amount_paise) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount_paise) FILTER (WHERE type = 'expense'), 0)
		FROM transactions WHERE user_id = $1;
	`, userID).Scan(&incomePaise, &expensePaise)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum lifetime cashflow: %w", err)
	}

	var saved decimal.Decimal
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(saved), 0) FROM savings_jars WHERE user_id = $1;`, userID,
	).Scan(&saved)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum jar balances: %w", err)
	}

	return utils.PaiseToRupees(incomePaise - expensePaise).Sub(saved), nil
}
