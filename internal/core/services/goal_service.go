package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gigpaisa/gigpaisa_backend/internal/apperrors"
	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	portsrepo "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/repositories"
	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
	"github.com/gigpaisa/gigpaisa_backend/internal/middleware"
)

// goalService provides savings goal operations.
type goalService struct {
	goalRepo portsrepo.GoalRepositoryFacade
}

// NewGoalService creates a new GoalService.
func NewGoalService(goalRepo portsrepo.GoalRepositoryFacade) portssvc.GoalSvcFacade {
	return &goalService{goalRepo: goalRepo}
}

var _ portssvc.GoalSvcFacade = (*goalService)(nil)

func (s *goalService) ListGoals(ctx context.Context, userID string) ([]dto.GoalResponse, error) {
	goals, err := s.goalRepo.ListGoalsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return dto.ToGoalResponses(goals), nil
}

func (s *goalService) CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*dto.GoalResponse, error) {
	if req.CurrentAmountPaise > req.TargetAmountPaise {
		return nil, fmt.Errorf("%w: current amount exceeds target", apperrors.ErrValidation)
	}

	now := time.Now()
	goal := domain.Goal{
		GoalID:      "goal_" + uuid.NewString(),
		UserID:      userID,
		Type:        req.Type,
		Description: req.Description,

		TargetAmountPaise:    req.TargetAmountPaise,
		CurrentAmountPaise:   req.CurrentAmountPaise,
		RemainingAmountPaise: req.TargetAmountPaise - req.CurrentAmountPaise,

		Deadline:        req.Deadline,
		MonthsRemaining: req.MonthsRemaining,

		RequiredMonthlySavingsPaise: req.RequiredMonthlySavingsPaise,
		RequiredWeeklySavingsPaise:  req.RequiredWeeklySavingsPaise,
		RequiredDailySavingsPaise:   req.RequiredDailySavingsPaise,

		Priority:          domain.GoalPriority(req.Priority),
		Feasibility:       req.Feasibility,
		GapPaise:          req.GapPaise,
		AutoAdjustEnabled: req.AutoAdjustEnabled,
		AuditFields:       domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if goal.Priority == "" {
		goal.Priority = domain.PriorityMedium
	}

	if err := s.goalRepo.SaveGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to save goal: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Goal created", slog.String("goal_id", goal.GoalID), slog.String("type", goal.Type))

	return &dto.GoalResponse{Goal: goal}, nil
}

func (s *goalService) UpdateGoal(ctx context.Context, userID, goalID string, req dto.UpdateGoalRequest) (*dto.GoalResponse, error) {
	goal, err := s.goalRepo.FindGoalByID(ctx, userID, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find goal %s: %w", goalID, err)
	}

	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.TargetAmountPaise != nil {
		goal.TargetAmountPaise = *req.TargetAmountPaise
	}
	if req.CurrentAmountPaise != nil {
		goal.CurrentAmountPaise = *req.CurrentAmountPaise
	}
	if req.Deadline != nil {
		goal.Deadline = req.Deadline
	}
	if req.MonthsRemaining != nil {
		goal.MonthsRemaining = *req.MonthsRemaining
	}
	if req.RequiredMonthlySavingsPaise != nil {
		goal.RequiredMonthlySavingsPaise = *req.RequiredMonthlySavingsPaise
	}
	if req.RequiredWeeklySavingsPaise != nil {
		goal.RequiredWeeklySavingsPaise = *req.RequiredWeeklySavingsPaise
	}
	if req.RequiredDailySavingsPaise != nil {
		goal.RequiredDailySavingsPaise = *req.RequiredDailySavingsPaise
	}
	if req.Priority != nil {
		goal.Priority = domain.GoalPriority(*req.Priority)
	}
	if req.Feasibility != nil {
		goal.Feasibility = *req.Feasibility
	}
	if req.GapPaise != nil {
		goal.GapPaise = *req.GapPaise
	}
	if req.AutoAdjustEnabled != nil {
		goal.AutoAdjustEnabled = *req.AutoAdjustEnabled
	}

	goal.RemainingAmountPaise = goal.TargetAmountPaise - goal.CurrentAmountPaise
	if goal.RemainingAmountPaise < 0 {
		goal.RemainingAmountPaise = 0
	}
	goal.LastUpdatedAt = time.Now()

	if err := s.goalRepo.UpdateGoal(ctx, *goal); err != nil {
		return nil, fmt.Errorf("failed to update goal %s: %w", goalID, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Goal updated", slog.String("goal_id", goalID))

	return &dto.GoalResponse{Goal: *goal}, nil
}
