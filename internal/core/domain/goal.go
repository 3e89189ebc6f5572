package domain

import "time"

// GoalPriority orders goals by importance.
type GoalPriority string

const (
	PriorityLow    GoalPriority = "low"
	PriorityMedium GoalPriority = "medium"
	PriorityHigh   GoalPriority = "high"
)

// Goal is a long-horizon savings objective with agent-computed pacing fields.
type Goal struct {
	GoalID      string `json:"goalId"`
	UserID      string `json:"userId"`
	Type        string `json:"type"` // e.g. phone_purchase
	Description string `json:"description,omitempty"`

	TargetAmountPaise    int64 `json:"targetAmountPaise"`
	CurrentAmountPaise   int64 `json:"currentAmountPaise"`
	RemainingAmountPaise int64 `json:"remainingAmountPaise"`

	Deadline        *time.Time `json:"deadline,omitempty"`
	MonthsRemaining int        `json:"monthsRemaining"`

	RequiredMonthlySavingsPaise int64 `json:"requiredMonthlySavingsPaise"`
	RequiredWeeklySavingsPaise  int64 `json:"requiredWeeklySavingsPaise"`
	RequiredDailySavingsPaise   int64 `json:"requiredDailySavingsPaise"`

	Priority          GoalPriority `json:"priority"`
	Feasibility       string       `json:"feasibility,omitempty"`
	GapPaise          int64        `json:"gapPaise"`
	AutoAdjustEnabled bool         `json:"autoAdjustEnabled"`
	AuditFields
}
