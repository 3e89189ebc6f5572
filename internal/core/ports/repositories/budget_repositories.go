package repositories

import (
	"context"
	"time"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
)

// WeeklyBudgetReader defines read operations for weekly budget snapshots
type WeeklyBudgetReader interface {
	// FindWeeklyBudget retrieves the snapshot keyed by (userID, weekStartDate).
	FindWeeklyBudget(ctx context.Context, userID string, weekStart time.Time) (*domain.WeeklyBudget, error)

	// FindWeeklyBudgetByYearWeek retrieves the snapshot for an ISO year/week.
	FindWeeklyBudgetByYearWeek(ctx context.Context, userID string, year, week int) (*domain.WeeklyBudget, error)

	// ListRecentWeeklyBudgets retrieves up to limit snapshots, newest week
	// first.
	ListRecentWeeklyBudgets(ctx context.Context, userID string, limit int) ([]domain.WeeklyBudget, error)
}

// WeeklyBudgetWriter defines write operations for weekly budget snapshots
type WeeklyBudgetWriter interface {
	// RecomputeWeeklyBudget re-sums the week's expense transactions and
	// upserts the snapshot in a single serialized database transaction,
	// preserving any existing per-category limits. It returns the stored
	// snapshot with all derived fields refreshed.
	RecomputeWeeklyBudget(ctx context.Context, userID string, weekStart, weekEnd time.Time) (*domain.WeeklyBudget, error)

	// UpdateBudgetLimits replaces the given per-category limits (paise) on an
	// existing snapshot and stamps aiLastAnalyzed. Derived fields are
	// refreshed from the stored spend figures.
	UpdateBudgetLimits(ctx context.Context, userID string, weekStart time.Time, limits map[domain.BudgetCategory]int64) (*domain.WeeklyBudget, error)
}

// WeeklyBudgetRepositoryFacade combines budget read and write operations
type WeeklyBudgetRepositoryFacade interface {
	WeeklyBudgetReader
	WeeklyBudgetWriter
}
