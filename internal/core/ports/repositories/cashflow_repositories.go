package repositories

import (
	"context"
	"time"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
)

// DailyCashflowReader defines read operations for the daily cashflow cache
type DailyCashflowReader interface {
	// FindDailyCashflow retrieves the record keyed by (userID, date).
	FindDailyCashflow(ctx context.Context, userID string, date time.Time) (*domain.DailyCashflow, error)

	// ListDailyCashflowsInRange retrieves records in [from, to], ascending by
	// date. Missing days are simply absent.
	ListDailyCashflowsInRange(ctx context.Context, userID string, from, to time.Time) ([]domain.DailyCashflow, error)
}

// DailyCashflowWriter defines write operations for the daily cashflow cache
type DailyCashflowWriter interface {
	// UpsertDailyCashflow re-sums the day's transactions inside the upsert
	// statement and returns the stored record. Called on every transaction
	// write for that day; safe to call repeatedly.
	UpsertDailyCashflow(ctx context.Context, userID string, date time.Time) (*domain.DailyCashflow, error)
}

// DailyCashflowRepositoryFacade combines cashflow read and write operations
type DailyCashflowRepositoryFacade interface {
	DailyCashflowReader
	DailyCashflowWriter
}
