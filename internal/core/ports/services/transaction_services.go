package services

import (
	"context"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
)

// TransactionReaderSvc defines read operations for the transaction ledger
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a user's transaction.
	GetTransactionByID(ctx context.Context, userID, txID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of a user's transactions with
	// optional category and window filters.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write operations for the transaction ledger
type TransactionWriterSvc interface {
	// CreateTransaction validates and appends a new ledger entry, then kicks
	// off derived-cache refreshes (weekly budget, daily cashflow). Refresh
	// failures never fail the write; they are logged and queued for retry.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)
}

// TransactionSvcFacade combines ledger service operations
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
