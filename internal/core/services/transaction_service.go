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
	"github.com/gigpaisa/gigpaisa_backend/internal/utils/budgeting"
)

// transactionService provides the transaction ledger operations and the
// derived-cache refresh fanout.
type transactionService struct {
	txnRepo     portsrepo.TransactionRepositoryFacade
	budgetSvc   portssvc.BudgetWriterSvc
	cashflowSvc portssvc.CashflowWriterSvc
	publisher   portssvc.RecomputePublisher // nil when the retry queue is disabled
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, budgetSvc portssvc.BudgetWriterSvc, cashflowSvc portssvc.CashflowWriterSvc, publisher portssvc.RecomputePublisher) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:     txnRepo,
		budgetSvc:   budgetSvc,
		cashflowSvc: cashflowSvc,
		publisher:   publisher,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	txn := domain.Transaction{
		TxID:          "tx_" + uuid.NewString(),
		UserID:        userID,
		EventID:       req.EventID,
		ClientLocalID: req.ClientLocalID,
		Type:          domain.TransactionType(req.Type),
		AmountPaise:   req.AmountPaise,
		Category:      req.Category,
		Merchant:      req.Merchant,
		Method:        domain.PaymentMethod(req.Method),
		Timestamp:     req.Timestamp,
		Source:        domain.CaptureSource(req.Source),
		ParserMeta:    req.ParserMeta,
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	budgetCategory := budgeting.MapTransactionCategory(txn.Category, txn.Merchant, txn.Notes)
	if err := s.txnRepo.SaveTransaction(ctx, txn, budgetCategory); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("tx_id", txn.TxID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	logger.Info("Transaction recorded", slog.String("tx_id", txn.TxID), slog.String("type", string(txn.Type)), slog.Int64("amount_paise", txn.AmountPaise))

	// Derived caches refresh after the primary write. A refresh failure never
	// fails the write; it is logged and handed to the retry queue.
	s.refreshDerived(ctx, userID, txn.Timestamp)

	return &txn, nil
}

// refreshDerived updates the weekly budget and daily cashflow for the
// transaction's instant.
func (s *transactionService) refreshDerived(ctx context.Context, userID string, at time.Time) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.budgetSvc.RefreshWeek(ctx, userID, at); err != nil {
		logger.Error("Weekly budget refresh failed after transaction write", slog.String("error", err.Error()))
		s.enqueueRetry(ctx, portssvc.RecomputeTask{Kind: portssvc.RecomputeWeeklyBudget, UserID: userID, At: at})
	}
	if err := s.cashflowSvc.RefreshDay(ctx, userID, at); err != nil {
		logger.Error("Daily cashflow refresh failed after transaction write", slog.String("error", err.Error()))
		s.enqueueRetry(ctx, portssvc.RecomputeTask{Kind: portssvc.RecomputeDailyCashflow, UserID: userID, At: at})
	}
}

func (s *transactionService) enqueueRetry(ctx context.Context, task portssvc.RecomputeTask) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishRecompute(ctx, task); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to enqueue recompute retry", slog.String("kind", string(task.Kind)), slog.String("error", err.Error()))
	}
}

func (s *transactionService) GetTransactionByID(ctx context.Context, userID, txID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, userID, txID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", txID, err)
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if params.Limit <= 0 || params.Limit > 200 {
		params.Limit = 50
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	filter := portsrepo.TransactionFilter{Category: params.Category}
	if params.Source != nil {
		source := domain.CaptureSource(*params.Source)
		filter.Source = &source
	}
	now := time.Now()
	switch params.Window {
	case "":
		// no window
	case "week":
		from, to := budgeting.WeekBounds(now)
		filter.From, filter.To = &from, &to
	case "month":
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
		filter.From, filter.To = &from, &to
	default:
		return nil, fmt.Errorf("%w: window must be week or month", apperrors.ErrValidation)
	}

	txns, total, err := s.txnRepo.ListTransactionsByUser(ctx, userID, filter, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		Total:        total,
		Limit:        params.Limit,
		Offset:       params.Offset,
	}, nil
}
