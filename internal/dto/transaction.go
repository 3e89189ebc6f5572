package dto

import (
	"time"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	"github.com/gigpaisa/gigpaisa_backend/internal/utils/budgeting"
)

// CreateTransactionRequest defines the data needed to record a ledger entry.
type CreateTransactionRequest struct {
	ClientLocalID string             `json:"clientLocalId"`
	EventID       *string            `json:"eventId"`
	Type          string             `json:"type" binding:"required,oneof=income expense transfer"`
	AmountPaise   int64              `json:"amountPaise" binding:"required,gt=0"`
	Category      string             `json:"category" binding:"required"`
	Merchant      string             `json:"merchant"`
	Method        string             `json:"method" binding:"required,oneof=cash upi bank wallet"`
	Timestamp     time.Time          `json:"timestamp" binding:"required"`
	Source        string             `json:"source" binding:"required,oneof=sms voice manual quicktap"`
	ParserMeta    *domain.ParserMeta `json:"parserMeta"`
	Notes         string             `json:"notes"`
}

// ListTransactionsParams defines filters for listing a user's transactions.
type ListTransactionsParams struct {
	Limit    int     `form:"limit,default=50"`
	Offset   int     `form:"offset,default=0"`
	Category *string `form:"category"`
	Source   *string `form:"source" binding:"omitempty,oneof=sms voice manual quicktap"`
	Window   string  `form:"window"` // week | month | empty for all
}

// CreateManualLogRequest is a hand-entered ledger entry. Source is fixed to
// manual and the timestamp defaults to now when omitted.
type CreateManualLogRequest struct {
	Type        string     `json:"type" binding:"required,oneof=income expense transfer"`
	AmountPaise int64      `json:"amountPaise" binding:"required,gt=0"`
	Category    string     `json:"category" binding:"required"`
	Merchant    string     `json:"merchant"`
	Method      string     `json:"method" binding:"required,oneof=cash upi bank wallet"`
	Timestamp   *time.Time `json:"timestamp"`
	Notes       string     `json:"notes"`
}

// ToCreateTransactionRequest expands a manual log into the full create payload.
func (r CreateManualLogRequest) ToCreateTransactionRequest(now time.Time) CreateTransactionRequest {
	ts := now
	if r.Timestamp != nil {
		ts = *r.Timestamp
	}
	return CreateTransactionRequest{
		Type:        r.Type,
		AmountPaise: r.AmountPaise,
		Category:    r.Category,
		Merchant:    r.Merchant,
		Method:      r.Method,
		Timestamp:   ts,
		Source:      string(domain.SourceManual),
		Notes:       r.Notes,
	}
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TxID           string             `json:"txId"`
	UserID         string             `json:"userId"`
	EventID        *string            `json:"eventId,omitempty"`
	ClientLocalID  string             `json:"clientLocalId,omitempty"`
	Type           string             `json:"type"`
	AmountPaise    int64              `json:"amountPaise"`
	Category       string             `json:"category"`
	BudgetCategory string             `json:"budgetCategory"`
	Merchant       string             `json:"merchant,omitempty"`
	Method         string             `json:"method"`
	Timestamp      time.Time          `json:"timestamp"`
	Source         string             `json:"source"`
	ParserMeta     *domain.ParserMeta `json:"parserMeta,omitempty"`
	Notes          string             `json:"notes,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// ListTransactionsResponse is a page of transactions plus the total count.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TxID:           txn.TxID,
		UserID:         txn.UserID,
		EventID:        txn.EventID,
		ClientLocalID:  txn.ClientLocalID,
		Type:           string(txn.Type),
		AmountPaise:    txn.AmountPaise,
		Category:       txn.Category,
		BudgetCategory: string(budgeting.MapTransactionCategory(txn.Category, txn.Merchant, txn.Notes)),
		Merchant:       txn.Merchant,
		Method:         string(txn.Method),
		Timestamp:      txn.Timestamp,
		Source:         string(txn.Source),
		ParserMeta:     txn.ParserMeta,
		Notes:          txn.Notes,
		CreatedAt:      txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}
