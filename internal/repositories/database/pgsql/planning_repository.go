package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gigpaisa/gigpaisa_backend/internal/apperrors"
	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	portsrepo "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/repositories"
)

type PgxGoalRepository struct {
	BaseRepository
}

// newPgxGoalRepository creates a new repository for savings goals.
func newPgxGoalRepository(pool *pgxpool.Pool) portsrepo.GoalRepositoryFacade {
	return &PgxGoalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.GoalRepositoryFacade = (*PgxGoalRepository)(nil)

const goalColumns = `
	goal_id, user_id, type, description, target_amount_paise, current_amount_paise,
	remaining_amount_paise, deadline, months_remaining, required_monthly_savings_paise,
	required_weekly_savings_paise, required_daily_savings_paise, priority, feasibility,
	gap_paise, auto_adjust_enabled, created_at, last_updated_at`

func scanGoal(row pgx.Row) (domain.Goal, error) {
	var g domain.Goal
	err := row.Scan(
		&g.GoalID,
		&g.UserID,
		&g.Type,
		&g.Description,
		&g.TargetAmountPaise,
		&g.CurrentAmountPaise,
		&g.RemainingAmountPaise,
		&g.Deadline,
		&g.MonthsRemaining,
		&g.RequiredMonthlySavingsPaise,
		&g.RequiredWeeklySavingsPaise,
		&g.RequiredDailySavingsPaise,
		&g.Priority,
		&g.Feasibility,
		&g.GapPaise,
		&g.AutoAdjustEnabled,
		&g.CreatedAt,
		&g.LastUpdatedAt,
	)
	return g, err
}

// FindGoalByID retrieves a user's goal.
func (r *PgxGoalRepository) FindGoalByID(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 AND goal_id = $2;`
	goal, err := scanGoal(r.Pool.QueryRow(ctx, query, userID, goalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	return &goal, nil
}

// ListGoalsByUser retrieves a user's goals, newest first.
func (r *PgxGoalRepository) ListGoalsByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	goals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Goal, error) {
		return scanGoal(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan goals: %w", err)
	}
	return goals, nil
}

// SaveGoal persists a new goal.
func (r *PgxGoalRepository) SaveGoal(ctx context.Context, goal domain.Goal) error {
	query := `
		INSERT INTO goals (
			goal_id, user_id, type, description, target_amount_paise, current_amount_paise,
			remaining_amount_paise, deadline, months_remaining, required_monthly_savings_paise,
			required_weekly_savings_paise, required_daily_savings_paise, priority, feasibility,
			gap_paise, auto_adjust_enabled, created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		goal.GoalID, goal.UserID, goal.Type, goal.Description,
		goal.TargetAmountPaise, goal.CurrentAmountPaise, goal.RemainingAmountPaise,
		goal.Deadline, goal.MonthsRemaining, goal.RequiredMonthlySavingsPaise,
		goal.RequiredWeeklySavingsPaise, goal.RequiredDailySavingsPaise,
		goal.Priority, goal.Feasibility, goal.GapPaise, goal.AutoAdjustEnabled,
		goal.CreatedAt, goal.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save goal: %w", err)
	}
	return nil
}

// UpdateGoal persists changes to an existing goal.
func (r *PgxGoalRepository) UpdateGoal(ctx context.Context, goal domain.Goal) error {
	query := `
		UPDATE goals SET
			type = $1, description = $2, target_amount_paise = $3, current_amount_paise = $4,
			remaining_amount_paise = $5, deadline = $6, months_remaining = $7,
			required_monthly_savings_paise = $8, required_weekly_savings_paise = $9,
			required_daily_savings_paise = $10, priority = $11, feasibility = $12,
			gap_paise = $13, auto_adjust_enabled = $14, last_updated_at = $15
		WHERE user_id = $16 AND goal_id = $17;
	`
	tag, err := r.Pool.Exec(ctx, query,
		goal.Type, goal.Description, goal.TargetAmountPaise, goal.CurrentAmountPaise,
		goal.RemainingAmountPaise, goal.Deadline, goal.MonthsRemaining,
		goal.RequiredMonthlySavingsPaise, goal.RequiredWeeklySavingsPaise,
		goal.RequiredDailySavingsPaise, goal.Priority, goal.Feasibility,
		goal.GapPaise, goal.AutoAdjustEnabled, goal.LastUpdatedAt,
		goal.UserID, goal.GoalID,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type PgxLifeEventRepository struct {
	BaseRepository
}

// newPgxLifeEventRepository creates a new repository for life events.
func newPgxLifeEventRepository(pool *pgxpool.Pool) portsrepo.LifeEventRepositoryFacade {
	return &PgxLifeEventRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LifeEventRepositoryFacade = (*PgxLifeEventRepository)(nil)

// ListLifeEventsByUser retrieves a user's events, soonest first.
func (r *PgxLifeEventRepository) ListLifeEventsByUser(ctx context.Context, userID string) ([]domain.LifeEvent, error) {
	query := `
		SELECT event_id, user_id, type, description, event_date, expected_cost_paise,
		       status, note, savings_plan_needed, created_at, last_updated_at
		FROM life_events WHERE user_id = $1 ORDER BY event_date ASC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query life events: %w", err)
	}
	defer rows.Close()

	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LifeEvent, error) {
		var e domain.LifeEvent
		err := row.Scan(
			&e.EventID, &e.UserID, &e.Type, &e.Description, &e.EventDate,
			&e.ExpectedCostPaise, &e.Status, &e.Note, &e.SavingsPlanNeeded,
			&e.CreatedAt, &e.LastUpdatedAt,
		)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan life events: %w", err)
	}
	return events, nil
}

// SaveLifeEvent persists a new event.
func (r *PgxLifeEventRepository) SaveLifeEvent(ctx context.Context, event domain.LifeEvent) error {
	query := `
		INSERT INTO life_events (
			event_id, user_id, type, description, event_date, expected_cost_paise,
			status, note, savings_plan_needed, created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		event.EventID, event.UserID, event.Type, event.Description, event.EventDate,
		event.ExpectedCostPaise, event.Status, event.Note, event.SavingsPlanNeeded,
		event.CreatedAt, event.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save life event: %w", err)
	}
	return nil
}
