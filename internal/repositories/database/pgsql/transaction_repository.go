package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gigpaisa/gigpaisa_backend/internal/apperrors"
	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	portsrepo "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/repositories"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for the transaction ledger.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `
	tx_id, user_id, event_id, client_local_id, type, amount_paise, category,
	merchant, method, timestamp, source, parser_meta, notes, created_at, last_updated_at`

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.TxID,
		&txn.UserID,
		&txn.EventID,
		&txn.ClientLocalID,
		&txn.Type,
		&txn.AmountPaise,
		&txn.Category,
		&txn.Merchant,
		&txn.Method,
		&txn.Timestamp,
		&txn.Source,
		&txn.ParserMeta,
		&txn.Notes,
		&txn.CreatedAt,
		&txn.LastUpdatedAt,
	)
	return txn, err
}

// SaveTransaction appends a ledger entry. The ledger is append-only; the
// mapped budget category is stored alongside the raw one so aggregations can
// group without re-running the mapper.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, budgetCategory domain.BudgetCategory) error {
	query := `
		INSERT INTO transactions (
			tx_id, user_id, event_id, client_local_id, type, amount_paise, category,
			budget_category, merchant, method, timestamp, source, parser_meta, notes,
			created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		txn.TxID,
		txn.UserID,
		txn.EventID,
		txn.ClientLocalID,
		txn.Type,
		txn.AmountPaise,
		txn.Category,
		budgetCategory,
		txn.Merchant,
		txn.Method,
		txn.Timestamp,
		txn.Source,
		txn.ParserMeta,
		txn.Notes,
		txn.CreatedAt,
		txn.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TxID, err)
	}
	return nil
}

// FindTransactionByID retrieves a user's transaction by its identifier.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID, txID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE tx_id = $1 AND user_id = $2;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, txID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", txID, err)
	}
	return &txn, nil
}

// filterClause appends WHERE conditions for the optional filter fields,
// returning the SQL fragment and grown argument list.
func filterClause(filter portsrepo.TransactionFilter, args []any) (string, []any) {
	clause := ""
	if filter.Type != nil {
		args = append(args, *filter.Type)
		clause += " AND type = $" + strconv.Itoa(len(args))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clause += " AND category = $" + strconv.Itoa(len(args))
	}
	if filter.Source != nil {
		args = append(args, *filter.Source)
		clause += " AND source = $" + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		clause += " AND timestamp >= $" + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		clause += " AND timestamp <= $" + strconv.Itoa(len(args))
	}
	return clause, args
}

// ListTransactionsByUser retrieves a page of transactions, newest first, plus
// the total count matching the filter.
func (r *PgxTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, filter portsrepo.TransactionFilter, limit, offset int) ([]domain.Transaction, int64, error) {
	args := []any{userID}
	clause, args := filterClause(filter, args)

	var total int64
	countQuery := `SELECT COUNT(*) FROM transactions WHERE user_id = $1` + clause
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	args = append(args, limit)
	limitPos := strconv.Itoa(len(args))
	args = append(args, offset)
	offsetPos := strconv.Itoa(len(args))

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1` + clause +
		` ORDER BY timestamp DESC LIMIT $` + limitPos + ` OFFSET $` + offsetPos + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan transactions: %w", err)
	}
	return txns, total, nil
}

// FindTransactionsInRange retrieves every matching transaction, newest first.
func (r *PgxTransactionRepository) FindTransactionsInRange(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	args := []any{userID}
	clause, args := filterClause(filter, args)

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1` + clause + ` ORDER BY timestamp DESC;`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions in range: %w", err)
	}
	defer rows.Close()

	txns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions in range: %w", err)
	}
	return txns, nil
}

// SumAmountByType totals amounts of one type within the filter's window.
func (r *PgxTransactionRepository) SumAmountByType(ctx context.Context, userID string, txType domain.TransactionType, filter portsrepo.TransactionFilter) (int64, error) {
	filter.Type = &txType
	args := []any{userID}
	clause, args := filterClause(filter, args)

	var sum int64
	query := `SELECT COALESCE(SUM(amount_paise), 0) FROM transactions WHERE user_id = $1` + clause
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum %s transactions: %w", txType, err)
	}
	return sum, nil
}

// CountByCategorySince counts raw-category transactions from a point in time.
func (r *PgxTransactionRepository) CountByCategorySince(ctx context.Context, userID, category string, since time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM transactions WHERE user_id = $1 AND category = $2 AND timestamp >= $3;`
	if err := r.Pool.QueryRow(ctx, query, userID, category, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s transactions: %w", category, err)
	}
	return count, nil
}

// SumByCategorySince totals raw-category amounts from a point in time.
func (r *PgxTransactionRepository) SumByCategorySince(ctx context.Context, userID, category string, since time.Time) (int64, error) {
	var sum int64
	query := `SELECT COALESCE(SUM(amount_paise), 0) FROM transactions WHERE user_id = $1 AND category = $2 AND timestamp >= $3;`
	if err := r.Pool.QueryRow(ctx, query, userID, category, since).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum %s transactions: %w", category, err)
	}
	return sum, nil
}
