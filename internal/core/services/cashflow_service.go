package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gigpaisa/gigpaisa_backend/internal/apperrors"
	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	portsrepo "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/repositories"
	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
	"github.com/gigpaisa/gigpaisa_backend/internal/utils"
)

// cashflowService provides the daily cashflow cache and heatmap operations.
type cashflowService struct {
	cashflowRepo portsrepo.DailyCashflowRepositoryFacade
}

// NewCashflowService creates a new CashflowService.
func NewCashflowService(cashflowRepo portsrepo.DailyCashflowRepositoryFacade) portssvc.CashflowSvcFacade {
	return &cashflowService{cashflowRepo: cashflowRepo}
}

var _ portssvc.CashflowSvcFacade = (*cashflowService)(nil)

func (s *cashflowService) GetDailyCashflow(ctx context.Context, userID string, date time.Time) (*dto.DailyCashflowResponse, error) {
	day := truncateToDay(date)
	record, err := s.cashflowRepo.FindDailyCashflow(ctx, userID, day)
	if errors.Is(err, apperrors.ErrNotFound) {
		// Derived record; recompute instead of erroring.
		record, err = s.cashflowRepo.UpsertDailyCashflow(ctx, userID, day)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily cashflow: %w", err)
	}
	resp := dto.ToDailyCashflowResponse(record)
	return &resp, nil
}

func (s *cashflowService) GetHeatmap(ctx context.Context, userID string, params dto.HeatmapParams) (*dto.HeatmapResponse, error) {
	monthStart := time.Date(params.Year, time.Month(params.Month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	records, err := s.cashflowRepo.ListDailyCashflowsInRange(ctx, userID, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list cashflows for heatmap: %w", err)
	}

	byDay := make(map[int]domain.DailyCashflow, len(records))
	for _, r := range records {
		byDay[r.Date.Day()] = r
	}

	daysInMonth := monthStart.AddDate(0, 1, -1).Day()
	days := make([]domain.HeatmapDay, daysInMonth)
	for d := 1; d <= daysInMonth; d++ {
		date := monthStart.AddDate(0, 0, d-1)
		cell := domain.HeatmapDay{
			Day:    d,
			Date:   date.Format("2006-01-02"),
			Status: domain.StatusNeutral,
		}
		if r, ok := byDay[d]; ok {
			cell.Income = utils.PaiseToWholeRupees(r.IncomePaise)
			cell.Expense = utils.PaiseToWholeRupees(r.ExpensePaise)
			cell.Net = utils.PaiseToWholeRupees(r.NetPaise)
			cell.Status = r.Status
		}
		days[d-1] = cell
	}

	return &dto.HeatmapResponse{
		MonthLabel: monthStart.Format("January 2006"),
		Days:       days,
	}, nil
}

func (s *cashflowService) RefreshDay(ctx context.Context, userID string, date time.Time) error {
	if _, err := s.cashflowRepo.UpsertDailyCashflow(ctx, userID, truncateToDay(date)); err != nil {
		return fmt.Errorf("failed to refresh cashflow for %s: %w", date.Format("2006-01-02"), err)
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
