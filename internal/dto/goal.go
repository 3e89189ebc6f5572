package dto

import (
	"time"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
)

// CreateGoalRequest defines the data needed to create a savings goal.
// Pacing fields arrive pre-computed from the planning agent.
type CreateGoalRequest struct {
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`

	TargetAmountPaise  int64 `json:"targetAmountPaise" binding:"required,gt=0"`
	CurrentAmountPaise int64 `json:"currentAmountPaise" binding:"gte=0"`

	Deadline        *time.Time `json:"deadline"`
	MonthsRemaining int        `json:"monthsRemaining" binding:"gte=0"`

	RequiredMonthlySavingsPaise int64 `json:"requiredMonthlySavingsPaise"`
	RequiredWeeklySavingsPaise  int64 `json:"requiredWeeklySavingsPaise"`
	RequiredDailySavingsPaise   int64 `json:"requiredDailySavingsPaise"`

	Priority          string `json:"priority" binding:"omitempty,oneof=low medium high"`
	Feasibility       string `json:"feasibility"`
	GapPaise          int64  `json:"gapPaise"`
	AutoAdjustEnabled bool   `json:"autoAdjustEnabled"`
}

// UpdateGoalRequest updates goal progress and pacing fields.
type UpdateGoalRequest struct {
	Description                 *string    `json:"description"`
	TargetAmountPaise           *int64     `json:"targetAmountPaise" binding:"omitempty,gt=0"`
	CurrentAmountPaise          *int64     `json:"currentAmountPaise" binding:"omitempty,gte=0"`
	Deadline                    *time.Time `json:"deadline"`
	MonthsRemaining             *int       `json:"monthsRemaining" binding:"omitempty,gte=0"`
	RequiredMonthlySavingsPaise *int64     `json:"requiredMonthlySavingsPaise"`
	RequiredWeeklySavingsPaise  *int64     `json:"requiredWeeklySavingsPaise"`
	RequiredDailySavingsPaise   *int64     `json:"requiredDailySavingsPaise"`
	Priority                    *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	Feasibility                 *string    `json:"feasibility"`
	GapPaise                    *int64     `json:"gapPaise"`
	AutoAdjustEnabled           *bool      `json:"autoAdjustEnabled"`
}

// GoalResponse mirrors domain.Goal for the API.
type GoalResponse struct {
	domain.Goal
}

// ToGoalResponses wraps domain goals for the API.
func ToGoalResponses(goals []domain.Goal) []GoalResponse {
	responses := make([]GoalResponse, len(goals))
	for i, g := range goals {
		responses[i] = GoalResponse{g}
	}
	return responses
}
