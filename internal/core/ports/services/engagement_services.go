package services

import (
	"context"

	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
)

// NotificationSvcFacade defines inbox notification operations
type NotificationSvcFacade interface {
	// ListNotifications retrieves the latest notifications for a user.
	ListNotifications(ctx context.Context, userID string) ([]dto.NotificationResponse, error)

	// CreateNotification pushes one notification to a user's inbox.
	CreateNotification(ctx context.Context, userID string, req dto.CreateNotificationRequest) (*dto.NotificationResponse, error)

	// MarkAllRead flips every unread notification for the user.
	MarkAllRead(ctx context.Context, userID string) (*dto.MarkAllReadResponse, error)
}

// StorySvcFacade defines the money story read model
type StorySvcFacade interface {
	// GetLatestStory retrieves the newest story joined with the current and
	// previous monthly summaries, fetched concurrently, and the derived
	// month-over-month metrics.
	GetLatestStory(ctx context.Context, userID string) (*dto.StoryResponse, error)
}

// InboundMessageSvcFacade defines captured message inbox operations
type InboundMessageSvcFacade interface {
	// ListMessages retrieves a page of captured messages, newest first.
	ListMessages(ctx context.Context, userID string, limit, offset int) ([]dto.InboundMessageResponse, error)

	// GetMessage retrieves one captured message.
	GetMessage(ctx context.Context, userID, messageID string) (*dto.InboundMessageResponse, error)

	// CaptureMessage stores a raw device message.
	CaptureMessage(ctx context.Context, userID string, req dto.CreateInboundMessageRequest) (*dto.InboundMessageResponse, error)

	// UpdateMessage reclassifies or annotates a captured message.
	UpdateMessage(ctx context.Context, userID, messageID string, req dto.UpdateInboundMessageRequest) (*dto.InboundMessageResponse, error)

	// DeleteMessage removes a captured message.
	DeleteMessage(ctx context.Context, userID, messageID string) error
}
