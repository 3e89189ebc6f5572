package services

import (
	"context"

	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
)

// GoalSvcFacade defines savings goal operations
type GoalSvcFacade interface {
	// ListGoals retrieves a user's goals, newest first.
	ListGoals(ctx context.Context, userID string) ([]dto.GoalResponse, error)

	// CreateGoal validates and persists a new goal.
	CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*dto.GoalResponse, error)

	// UpdateGoal applies partial changes to a goal, keeping the remaining
	// amount and gap consistent.
	UpdateGoal(ctx context.Context, userID, goalID string, req dto.UpdateGoalRequest) (*dto.GoalResponse, error)
}

// LifeEventSvcFacade defines life event operations
type LifeEventSvcFacade interface {
	// ListLifeEvents retrieves a user's events, soonest first.
	ListLifeEvents(ctx context.Context, userID string) ([]dto.LifeEventResponse, error)

	// CreateLifeEvent validates and persists a new event.
	CreateLifeEvent(ctx context.Context, userID string, req dto.CreateLifeEventRequest) (*dto.LifeEventResponse, error)
}
