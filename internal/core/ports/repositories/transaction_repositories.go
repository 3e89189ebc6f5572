package repositories

import (
	"context"
	"time"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
)

// TransactionFilter narrows ledger queries. Nil fields mean no filter.
type TransactionFilter struct {
	Type     *domain.TransactionType
	Category *string
	Source   *domain.CaptureSource
	From     *time.Time
	To       *time.Time
}

// TransactionReader defines read operations for the transaction ledger
type TransactionReader interface {
	// FindTransactionByID retrieves a user's transaction by its identifier.
	FindTransactionByID(ctx context.Context, userID, txID string) (*domain.Transaction, error)

	// ListTransactionsByUser retrieves a page of a user's transactions, newest
	// first, plus the total count matching the filter.
	ListTransactionsByUser(ctx context.Context, userID string, filter TransactionFilter, limit, offset int) ([]domain.Transaction, int64, error)

	// FindTransactionsInRange retrieves every matching transaction in the
	// window, newest first. Used by the aggregators.
	FindTransactionsInRange(ctx context.Context, userID string, filter TransactionFilter) ([]domain.Transaction, error)

	// SumAmountByType totals amounts of one transaction type, optionally
	// bounded by the filter's time window.
	SumAmountByType(ctx context.Context, userID string, txType domain.TransactionType, filter TransactionFilter) (int64, error)

	// CountByCategorySince counts raw-category transactions from a point in
	// time; used for month-to-date reward counters.
	CountByCategorySince(ctx context.Context, userID, category string, since time.Time) (int, error)

	// SumByCategorySince totals raw-category amounts from a point in time.
	SumByCategorySince(ctx context.Context, userID, category string, since time.Time) (int64, error)
}

// TransactionWriter defines write operations for the transaction ledger
type TransactionWriter interface {
	// SaveTransaction appends a new ledger entry. The ledger is append-only;
	// existing entries are never mutated.
	SaveTransaction(ctx context.Context, txn domain.Transaction, budgetCategory domain.BudgetCategory) error
}

// TransactionRepositoryFacade combines ledger read and write operations
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
