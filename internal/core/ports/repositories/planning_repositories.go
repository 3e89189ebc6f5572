package repositories

import (
	"context"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
)

// GoalReader defines read operations for savings goals
type GoalReader interface {
	// FindGoalByID retrieves a user's goal.
	FindGoalByID(ctx context.Context, userID, goalID string) (*domain.Goal, error)

	// ListGoalsByUser retrieves a user's goals, newest first.
	ListGoalsByUser(ctx context.Context, userID string) ([]domain.Goal, error)
}

// GoalWriter defines write operations for savings goals
type GoalWriter interface {
	// SaveGoal persists a new goal.
	SaveGoal(ctx context.Context, goal domain.Goal) error

	// UpdateGoal persists changes to an existing goal.
	UpdateGoal(ctx context.Context, goal domain.Goal) error
}

// GoalRepositoryFacade combines goal read and write operations
type GoalRepositoryFacade interface {
	GoalReader
	GoalWriter
}

// LifeEventReader defines read operations for life events
type LifeEventReader interface {
	// ListLifeEventsByUser retrieves a user's events, soonest first.
	ListLifeEventsByUser(ctx context.Context, userID string) ([]domain.LifeEvent, error)
}

// LifeEventWriter defines write operations for life events
type LifeEventWriter interface {
	// SaveLifeEvent persists a new event.
	SaveLifeEvent(ctx context.Context, event domain.LifeEvent) error
}

// LifeEventRepositoryFacade combines life event read and write operations
type LifeEventRepositoryFacade interface {
	LifeEventReader
	LifeEventWriter
}
