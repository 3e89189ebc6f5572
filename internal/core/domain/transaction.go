package domain

import "time"

// TransactionType classifies how a ledger entry affects the user's cash.
type TransactionType string

const (
	Income   TransactionType = "income"
	Expense  TransactionType = "expense"
	Transfer TransactionType = "transfer"
)

// PaymentMethod is how the money moved.
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "cash"
	MethodUPI    PaymentMethod = "upi"
	MethodBank   PaymentMethod = "bank"
	MethodWallet PaymentMethod = "wallet"
)

// CaptureSource is how the transaction was recorded.
type CaptureSource string

const (
	SourceSMS      CaptureSource = "sms"
	SourceVoice    CaptureSource = "voice"
	SourceManual   CaptureSource = "manual"
	SourceQuickTap CaptureSource = "quicktap"
)

// ParserMeta carries optional metadata from inferred message/voice parsing.
// The parse itself happens outside this system; the payload is stored opaquely.
type ParserMeta struct {
	Parser     string         `json:"parser,omitempty"`
	Confidence float64        `json:"confidence,omitempty"`
	RawParse   map[string]any `json:"rawParse,omitempty"`
}

// Transaction is an immutable-once-written ledger record. AmountPaise is a
// non-negative integer in paise; Type determines its sign in aggregations.
type Transaction struct {
	TxID          string          `json:"txId"`
	UserID        string          `json:"userId"`
	EventID       *string         `json:"eventId,omitempty"`
	ClientLocalID string          `json:"clientLocalId,omitempty"`
	Type          TransactionType `json:"type"`
	AmountPaise   int64           `json:"amountPaise"`
	Category      string          `json:"category"`
	Merchant      string          `json:"merchant,omitempty"`
	Method        PaymentMethod   `json:"method"`
	Timestamp     time.Time       `json:"timestamp"`
	Source        CaptureSource   `json:"source"`
	ParserMeta    *ParserMeta     `json:"parserMeta,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	AuditFields
}
