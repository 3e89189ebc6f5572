package services

import (
	"context"
	"time"
)

// RecomputeKind names the derived cache to refresh.
type RecomputeKind string

const (
	RecomputeWeeklyBudget  RecomputeKind = "weekly_budget"
	RecomputeDailyCashflow RecomputeKind = "daily_cashflow"
)

// RecomputeTask is one queued derived-cache refresh.
type RecomputeTask struct {
	Kind     RecomputeKind `json:"kind"`
	UserID   string        `json:"userId"`
	At       time.Time     `json:"at"`       // instant inside the week/day to refresh
	Attempts int           `json:"attempts"` // delivery attempts so far
}

// RecomputePublisher queues derived-cache refreshes that failed inline.
// A nil publisher (queue disabled) is valid; failures are then only logged.
type RecomputePublisher interface {
	// PublishRecompute enqueues a refresh task for the background worker.
	PublishRecompute(ctx context.Context, task RecomputeTask) error
}
