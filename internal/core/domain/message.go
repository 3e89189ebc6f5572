package domain

import "time"

// InboundCategory classifies a captured message before (or instead of) parsing
// it into a transaction.
type InboundCategory string

const (
	InboundTransaction InboundCategory = "transaction"
	InboundPromotional InboundCategory = "promotional"
	InboundOTP         InboundCategory = "otp"
	InboundOther       InboundCategory = "other"
)

// InboundMessage is a raw captured message (SMS or similar) kept in the inbox
// until a parser turns it into a Transaction or discards it.
type InboundMessage struct {
	MessageID   string            `json:"messageId"`
	UserID      string            `json:"userId"`
	Sender      string            `json:"sender"`
	Body        string            `json:"body"`
	Timestamp   time.Time         `json:"timestamp"`
	Category    InboundCategory   `json:"category"`
	AmountPaise *int64            `json:"amountPaise,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	AuditFields
}
