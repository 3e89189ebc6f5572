package services

import (
	"context"
	"time"

	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
)

// BudgetReaderSvc defines read operations for weekly budgets
type BudgetReaderSvc interface {
	// GetCurrentWeekBudget retrieves the current week's snapshot, generating
	// it from the ledger when absent.
	GetCurrentWeekBudget(ctx context.Context, userID string) (*dto.WeeklyBudgetResponse, error)

	// GetWeekBudget retrieves the snapshot for an ISO year/week.
	GetWeekBudget(ctx context.Context, userID string, year, week int) (*dto.WeeklyBudgetResponse, error)

	// GetBudgetHistory retrieves the last weeks of snapshots plus their
	// spending trend. weeks <= 0 uses the default of 8.
	GetBudgetHistory(ctx context.Context, userID string, weeks int) (*dto.BudgetHistoryResponse, error)
}

// BudgetWriterSvc defines write operations for weekly budgets
type BudgetWriterSvc interface {
	// GenerateBudget recomputes and upserts the snapshot for the week
	// containing weekDate (nil means now).
	GenerateBudget(ctx context.Context, userID string, weekDate *time.Time) (*dto.WeeklyBudgetResponse, error)

	// UpdateBudgetLimits replaces per-category limits on the current week.
	UpdateBudgetLimits(ctx context.Context, userID string, req dto.UpdateBudgetLimitsRequest) (*dto.WeeklyBudgetResponse, error)

	// RefreshWeek recomputes the week containing the given instant. Used by
	// the transaction write path and the retry worker.
	RefreshWeek(ctx context.Context, userID string, at time.Time) error
}

// BudgetSvcFacade combines weekly budget service operations
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
}
