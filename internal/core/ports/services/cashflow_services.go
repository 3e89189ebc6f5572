package services

import (
	"context"
	"time"

	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
)

// CashflowReaderSvc defines read operations for daily cashflow
type CashflowReaderSvc interface {
	// GetDailyCashflow retrieves one day's record, recomputing it from the
	// ledger when absent.
	GetDailyCashflow(ctx context.Context, userID string, date time.Time) (*dto.DailyCashflowResponse, error)

	// GetHeatmap returns a full calendar month of day cells, zero-valued
	// neutral placeholders for days without a record.
	GetHeatmap(ctx context.Context, userID string, params dto.HeatmapParams) (*dto.HeatmapResponse, error)
}

// CashflowWriterSvc defines write operations for daily cashflow
type CashflowWriterSvc interface {
	// RefreshDay re-sums one day's transactions into the cache. Used by the
	// transaction write path and the retry worker.
	RefreshDay(ctx context.Context, userID string, date time.Time) error
}

// CashflowSvcFacade combines daily cashflow service operations
type CashflowSvcFacade interface {
	CashflowReaderSvc
	CashflowWriterSvc
}
