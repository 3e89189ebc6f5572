package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/gigpaisa/gigpaisa_backend/internal/apperrors"
	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	portsrepo "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/repositories"
	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
	"github.com/gigpaisa/gigpaisa_backend/internal/middleware"
	"github.com/gigpaisa/gigpaisa_backend/internal/utils/budgeting"
)

const defaultHistoryWeeks = 8

// budgetService provides the weekly budget aggregation operations.
type budgetService struct {
	budgetRepo portsrepo.WeeklyBudgetRepositoryFacade
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(budgetRepo portsrepo.WeeklyBudgetRepositoryFacade) portssvc.BudgetSvcFacade {
	return &budgetService{budgetRepo: budgetRepo}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) GetCurrentWeekBudget(ctx context.Context, userID string) (*dto.WeeklyBudgetResponse, error) {
	now := time.Now()
	weekStart, weekEnd := budgeting.WeekBounds(now)

	budget, err := s.budgetRepo.FindWeeklyBudget(ctx, userID, weekStart)
	if errors.Is(err, apperrors.ErrNotFound) {
		// The snapshot is a cache; generate it lazily instead of erroring.
		middleware.GetLoggerFromCtx(ctx).Info("No budget for current week, generating", slog.String("week_id", budgeting.WeekID(now)))
		budget, err = s.budgetRepo.RecomputeWeeklyBudget(ctx, userID, weekStart, weekEnd)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current week budget: %w", err)
	}
	return s.toResponse(budget), nil
}

func (s *budgetService) GetWeekBudget(ctx context.Context, userID string, year, week int) (*dto.WeeklyBudgetResponse, error) {
	if week < 1 || week > 53 {
		return nil, fmt.Errorf("%w: week number must be between 1 and 53", apperrors.ErrValidation)
	}
	budget, err := s.budgetRepo.FindWeeklyBudgetByYearWeek(ctx, userID, year, week)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget for %d-W%02d: %w", year, week, err)
	}
	return s.toResponse(budget), nil
}

func (s *budgetService) GetBudgetHistory(ctx context.Context, userID string, weeks int) (*dto.BudgetHistoryResponse, error) {
	if weeks <= 0 {
		weeks = defaultHistoryWeeks
	}
	budgets, err := s.budgetRepo.ListRecentWeeklyBudgets(ctx, userID, weeks)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget history: %w", err)
	}

	responses := make([]dto.WeeklyBudgetResponse, len(budgets))
	totals := make([]int64, len(budgets))
	for i := range budgets {
		responses[i] = *s.toResponse(&budgets[i])
		totals[i] = budgets[i].TotalSpentPaise
	}

	return &dto.BudgetHistoryResponse{
		Budgets: responses,
		Trend:   dto.ToBudgetTrendResponse(budgeting.ComputeTrend(totals)),
	}, nil
}

func (s *budgetService) GenerateBudget(ctx context.Context, userID string, weekDate *time.Time) (*dto.WeeklyBudgetResponse, error) {
	at := time.Now()
	if weekDate != nil {
		at = *weekDate
	}
	weekStart, weekEnd := budgeting.WeekBounds(at)

	budget, err := s.budgetRepo.RecomputeWeeklyBudget(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to generate budget: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Weekly budget generated", slog.String("week_id", budget.WeekID), slog.Int64("total_spent_paise", budget.TotalSpentPaise))
	return s.toResponse(budget), nil
}

func (s *budgetService) UpdateBudgetLimits(ctx context.Context, userID string, req dto.UpdateBudgetLimitsRequest) (*dto.WeeklyBudgetResponse, error) {
	limits := make(map[domain.BudgetCategory]int64, len(req.Budgets))
	for name, rupees := range req.Budgets {
		if rupees < 0 {
			return nil, fmt.Errorf("%w: budget for %s must not be negative", apperrors.ErrValidation, name)
		}
		limits[domain.BudgetCategory(name)] = int64(math.Round(rupees * 100))
	}

	now := time.Now()
	weekStart, weekEnd := budgeting.WeekBounds(now)

	// Make sure the current week's snapshot exists before patching limits.
	if _, err := s.budgetRepo.FindWeeklyBudget(ctx, userID, weekStart); errors.Is(err, apperrors.ErrNotFound) {
		if _, err := s.budgetRepo.RecomputeWeeklyBudget(ctx, userID, weekStart, weekEnd); err != nil {
			return nil, fmt.Errorf("failed to generate budget before limit update: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load budget for limit update: %w", err)
	}

	budget, err := s.budgetRepo.UpdateBudgetLimits(ctx, userID, weekStart, limits)
	if err != nil {
		return nil, fmt.Errorf("failed to update budget limits: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Budget limits updated", slog.String("week_id", budget.WeekID), slog.Int("categories", len(limits)))
	return s.toResponse(budget), nil
}

func (s *budgetService) RefreshWeek(ctx context.Context, userID string, at time.Time) error {
	weekStart, weekEnd := budgeting.WeekBounds(at)
	if _, err := s.budgetRepo.RecomputeWeeklyBudget(ctx, userID, weekStart, weekEnd); err != nil {
		return fmt.Errorf("failed to refresh week %s: %w", budgeting.WeekID(at), err)
	}
	return nil
}

func (s *budgetService) toResponse(budget *domain.WeeklyBudget) *dto.WeeklyBudgetResponse {
	risks := make(map[domain.BudgetCategory]int, len(budget.Categories))
	for name, bucket := range budget.Categories {
		risks[name] = budgeting.CategoryRiskScore(bucket.CurrentSpentPaise, bucket.MaxBudgetPaise)
	}
	resp := dto.ToWeeklyBudgetResponse(budget, risks)
	return &resp
}
