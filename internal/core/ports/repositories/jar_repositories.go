package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
)

// JarReader defines read operations for savings jars
type JarReader interface {
	// FindJarByID retrieves a jar with its deposit history.
	FindJarByID(ctx context.Context, jarID string) (*domain.SavingsJar, error)

	// FindActiveJarByTitle retrieves a user's active jar by exact title.
	FindActiveJarByTitle(ctx context.Context, userID, title string) (*domain.SavingsJar, error)

	// ListActiveJarsByUser retrieves a user's active jars sorted by deadline
	// ascending, deposit histories included.
	ListActiveJarsByUser(ctx context.Context, userID string) ([]domain.SavingsJar, error)

	// SumSavedByUser totals the saved amounts across all of a user's jars,
	// in rupees.
	SumSavedByUser(ctx context.Context, userID string) (decimal.Decimal, error)

	// SumDepositsSince totals jar deposits made from a point in time, plus
	// their count, across all of a user's jars.
	SumDepositsSince(ctx context.Context, userID string, since time.Time) (decimal.Decimal, int, error)
}

// JarWriter defines write operations for savings jars
type JarWriter interface {
	// SaveJar persists a new jar.
	SaveJar(ctx context.Context, jar domain.SavingsJar) error

	// DepositToJar appends a deposit and bumps the jar's saved total inside a
	// single per-user-serialized database transaction. The deposit is checked
	// against the user's unallocated cash (lifetime income minus lifetime
	// expenses minus total saved across jars) within that same transaction;
	// a deposit exceeding it fails with ErrValidation and no state change.
	// Crossing the target transitions the jar to completed. Returns the
	// updated jar and the remaining unallocated cash.
	DepositToJar(ctx context.Context, userID, jarID string, deposit domain.JarDeposit) (*domain.SavingsJar, decimal.Decimal, error)

	// UpdateJarStatus moves a jar between active/completed/archived.
	UpdateJarStatus(ctx context.Context, jarID string, status domain.JarStatus) error
}

// JarRepositoryFacade combines jar read and write operations
type JarRepositoryFacade interface {
	JarReader
	JarWriter
}
