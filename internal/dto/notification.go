package dto

import (
	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
)

// CreateNotificationRequest pushes one inbox message to a user.
type CreateNotificationRequest struct {
	Type          string  `json:"msg_type" binding:"required,oneof=admin_side transaction alert tip goal challenge"`
	Head          string  `json:"msg_head" binding:"required"`
	Content       string  `json:"msg_content" binding:"required"`
	TransactionID *string `json:"transactionId"`
}

// NotificationResponse mirrors domain.Notification.
type NotificationResponse struct {
	domain.Notification
}

// MarkAllReadResponse reports how many notifications were flipped.
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// ToNotificationResponses wraps domain notifications for the API.
func ToNotificationResponses(notifications []domain.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = NotificationResponse{n}
	}
	return responses
}
