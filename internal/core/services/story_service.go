package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gigpaisa/gigpaisa_backend/internal/apperrors"
	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	portsrepo "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/repositories"
	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
	"github.com/gigpaisa/gigpaisa_backend/internal/utils"
)

// storyService builds the money story read model.
type storyService struct {
	storyRepo portsrepo.StoryRepositoryFacade
	now       func() time.Time
}

// NewStoryService creates a new StoryService.
func NewStoryService(storyRepo portsrepo.StoryRepositoryFacade) portssvc.StorySvcFacade {
	return &storyService{storyRepo: storyRepo, now: time.Now}
}

var _ portssvc.StorySvcFacade = (*storyService)(nil)

func (s *storyService) GetLatestStory(ctx context.Context, userID string) (*dto.StoryResponse, error) {
	now := s.now()
	currentYear, currentMonth := now.Year(), int(now.Month())
	previousYear, previousMonth := previousCalendarMonth(currentYear, currentMonth)

	var (
		story    *domain.MoneyStory
		current  *domain.MonthlySummary
		previous *domain.MonthlySummary
	)

	// A user the pipeline has not written for yet gets a null story and
	// zeroed metrics, not an error.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := s.storyRepo.FindLatestStory(gctx, userID)
		if err != nil && !apperrors.IsNotFound(err) {
			return fmt.Errorf("failed to find latest story: %w", err)
		}
		story = found
		return nil
	})
	g.Go(func() error {
		found, err := s.storyRepo.FindMonthlySummary(gctx, userID, currentYear, currentMonth)
		if err != nil && !apperrors.IsNotFound(err) {
			return fmt.Errorf("failed to find current month summary: %w", err)
		}
		current = found
		return nil
	})
	g.Go(func() error {
		found, err := s.storyRepo.FindMonthlySummary(gctx, userID, previousYear, previousMonth)
		if err != nil && !apperrors.IsNotFound(err) {
			return fmt.Errorf("failed to find previous month summary: %w", err)
		}
		previous = found
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.StoryResponse{
		Story:         story,
		VisualMetrics: buildVisualMetrics(current, previous),
	}, nil
}

func previousCalendarMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// buildVisualMetrics derives the month-over-month figures in whole rupees.
// Savings is income minus expense, floored at zero. Either summary may be
// nil when the analytics pipeline has not run for that month yet.
func buildVisualMetrics(current, previous *domain.MonthlySummary) domain.VisualMetrics {
	var metrics domain.VisualMetrics

	var curIncome, curExpense, prevIncome, prevExpense int64
	if current != nil {
		curIncome = utils.PaiseToWholeRupees(current.TotalIncomePaise)
		curExpense = utils.PaiseToWholeRupees(current.TotalExpensePaise)
	}
	if previous != nil {
		prevIncome = utils.PaiseToWholeRupees(previous.TotalIncomePaise)
		prevExpense = utils.PaiseToWholeRupees(previous.TotalExpensePaise)
	}

	curSavings := max64(curIncome-curExpense, 0)
	prevSavings := max64(prevIncome-prevExpense, 0)

	metrics.Earnings = domain.StoryMetric{Current: curIncome, Previous: prevIncome, Growth: curIncome - prevIncome}
	metrics.Spending = domain.StoryMetric{Current: curExpense, Previous: prevExpense, Growth: curExpense - prevExpense}
	metrics.Savings = domain.StoryMetric{Current: curSavings, Previous: prevSavings, Growth: curSavings - prevSavings}

	if current != nil && current.BiggestSpike != nil {
		spike := current.BiggestSpike
		metrics.TopExpense = domain.TopExpense{
			Category:   spike.Category,
			Amount:     int64(math.Round(spike.Amount)),
			Percentage: fmt.Sprintf("%.0f%%", spike.Percent),
		}
	}

	return metrics
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
