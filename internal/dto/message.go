package dto

import (
	"time"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
)

// CreateInboundMessageRequest captures a raw device message for the inbox.
type CreateInboundMessageRequest struct {
	Sender      string            `json:"sender" binding:"required"`
	Body        string            `json:"message" binding:"required"`
	Timestamp   *time.Time        `json:"timestamp"`
	Category    string            `json:"category" binding:"omitempty,oneof=transaction promotional otp other"`
	AmountPaise *int64            `json:"amountPaise"`
	Metadata    map[string]string `json:"metadata"`
}

// UpdateInboundMessageRequest reclassifies or annotates a captured message.
type UpdateInboundMessageRequest struct {
	Category    *string           `json:"category" binding:"omitempty,oneof=transaction promotional otp other"`
	AmountPaise *int64            `json:"amountPaise"`
	Metadata    map[string]string `json:"metadata"`
}

// InboundMessageResponse mirrors domain.InboundMessage.
type InboundMessageResponse struct {
	domain.InboundMessage
}

// ToInboundMessageResponses wraps captured messages for the API.
func ToInboundMessageResponses(messages []domain.InboundMessage) []InboundMessageResponse {
	responses := make([]InboundMessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = InboundMessageResponse{m}
	}
	return responses
}
