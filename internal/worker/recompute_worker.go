package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqplib "github.com/rabbitmq/amqp091-go"

	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/queue/amqp"
)

// RecomputeWorker drains the recompute retry queue, replaying derived-cache
// refreshes that failed inline on the transaction write path.
type RecomputeWorker struct {
	client   *amqp.Client
	budget   portssvc.BudgetSvcFacade
	cashflow portssvc.CashflowSvcFacade
	logger   *slog.Logger
}

// NewRecomputeWorker creates a worker over an established queue client.
func NewRecomputeWorker(client *amqp.Client, budget portssvc.BudgetSvcFacade, cashflow portssvc.CashflowSvcFacade, logger *slog.Logger) *RecomputeWorker {
	return &RecomputeWorker{
		client:   client,
		budget:   budget,
		cashflow: cashflow,
		logger:   logger,
	}
}

// Run consumes tasks until the context is cancelled. Each task is acked only
// after its refresh succeeds; a first failure is requeued, a redelivered
// failure is dropped with an error log so a poison task cannot wedge the
// queue.
func (w *RecomputeWorker) Run(ctx context.Context) error {
	deliveries, err := w.client.Consume()
	if err != nil {
		return err
	}
	w.logger.Info("Recompute worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Recompute worker stopping")
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("recompute delivery channel closed")
			}
			w.handle(ctx, delivery)
		}
	}
}

func (w *RecomputeWorker) handle(ctx context.Context, delivery amqplib.Delivery) {
	var task portssvc.RecomputeTask
	if err := json.Unmarshal(delivery.Body, &task); err != nil {
		w.logger.Error("Dropping malformed recompute task", slog.String("error", err.Error()))
		delivery.Nack(false, false)
		return
	}

	if err := w.process(ctx, task); err != nil {
		if delivery.Redelivered {
			w.logger.Error("Dropping recompute task after retry",
				slog.String("kind", string(task.Kind)),
				slog.String("user_id", task.UserID),
				slog.String("error", err.Error()),
			)
			delivery.Nack(false, false)
			return
		}
		w.logger.Warn("Requeueing failed recompute task",
			slog.String("kind", string(task.Kind)),
			slog.String("user_id", task.UserID),
			slog.String("error", err.Error()),
		)
		delivery.Nack(false, true)
		return
	}

	delivery.Ack(false)
}

func (w *RecomputeWorker) process(ctx context.Context, task portssvc.RecomputeTask) error {
	switch task.Kind {
	case portssvc.RecomputeWeeklyBudget:
		return w.budget.RefreshWeek(ctx, task.UserID, task.At)
	case portssvc.RecomputeDailyCashflow:
		return w.cashflow.RefreshDay(ctx, task.UserID, task.At)
	default:
		return fmt.Errorf("unknown recompute kind %q", task.Kind)
	}
}
