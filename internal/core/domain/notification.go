package domain

import "time"

// NotificationType classifies a notification for the client inbox.
type NotificationType string

const (
	NotifAdmin       NotificationType = "admin_side"
	NotifTransaction NotificationType = "transaction"
	NotifAlert       NotificationType = "alert"
	NotifTip         NotificationType = "tip"
	NotifGoal        NotificationType = "goal"
	NotifChallenge   NotificationType = "challenge"
)

// Notification is a single inbox message for a user.
type Notification struct {
	NotificationID string           `json:"notificationId"`
	UserID         string           `json:"userId"`
	Type           NotificationType `json:"msg_type"`
	Head           string           `json:"msg_head"`
	Content        string           `json:"msg_content"`
	TransactionID  *string          `json:"transactionId,omitempty"`
	IsRead         bool             `json:"isRead"`
	Timestamp      time.Time        `json:"timestamp"`
}
