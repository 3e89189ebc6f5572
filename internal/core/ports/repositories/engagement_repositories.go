package repositories

import (
	"context"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
)

// NotificationReader defines read operations for the notification inbox
type NotificationReader interface {
	// ListLatestNotifications retrieves up to limit notifications, newest
	// first.
	ListLatestNotifications(ctx context.Context, userID string, limit int) ([]domain.Notification, error)
}

// NotificationWriter defines write operations for the notification inbox
type NotificationWriter interface {
	// SaveNotification persists a new notification.
	SaveNotification(ctx context.Context, notification domain.Notification) error

	// MarkAllRead flips every unread notification for the user and reports
	// how many changed.
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

// NotificationRepositoryFacade combines notification operations
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}

// StoryReader defines read operations for money stories and their summaries
type StoryReader interface {
	// FindLatestStory retrieves the newest story for a user.
	FindLatestStory(ctx context.Context, userID string) (*domain.MoneyStory, error)

	// FindMonthlySummary retrieves the aggregate for a calendar month.
	FindMonthlySummary(ctx context.Context, userID string, year, month int) (*domain.MonthlySummary, error)
}

// StoryWriter defines write operations for money stories
type StoryWriter interface {
	// SaveStory persists a story written by the analytics pipeline.
	SaveStory(ctx context.Context, story domain.MoneyStory) error

	// UpsertMonthlySummary stores the aggregate for a calendar month.
	UpsertMonthlySummary(ctx context.Context, summary domain.MonthlySummary) error
}

// StoryRepositoryFacade combines story read and write operations
type StoryRepositoryFacade interface {
	StoryReader
	StoryWriter
}

// InboundMessageReader defines read operations for captured messages
type InboundMessageReader interface {
	// FindInboundMessageByID retrieves a user's captured message.
	FindInboundMessageByID(ctx context.Context, userID, messageID string) (*domain.InboundMessage, error)

	// ListInboundMessagesByUser retrieves a page of captured messages,
	// newest first.
	ListInboundMessagesByUser(ctx context.Context, userID string, limit, offset int) ([]domain.InboundMessage, error)
}

// InboundMessageWriter defines write operations for captured messages
type InboundMessageWriter interface {
	// SaveInboundMessage persists a captured message.
	SaveInboundMessage(ctx context.Context, message domain.InboundMessage) error

	// UpdateInboundMessage persists reclassification changes.
	UpdateInboundMessage(ctx context.Context, message domain.InboundMessage) error

	// DeleteInboundMessage removes a captured message.
	DeleteInboundMessage(ctx context.Context, userID, messageID string) error
}

// InboundMessageRepositoryFacade combines captured message operations
type InboundMessageRepositoryFacade interface {
	InboundMessageReader
	InboundMessageWriter
}
