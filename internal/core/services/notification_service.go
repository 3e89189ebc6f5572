package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	portsrepo "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/repositories"
	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
	"github.com/gigpaisa/gigpaisa_backend/internal/middleware"
)

const defaultInboxLimit = 50

// notificationService provides inbox notification operations.
type notificationService struct {
	notificationRepo portsrepo.NotificationRepositoryFacade
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade) portssvc.NotificationSvcFacade {
	return &notificationService{notificationRepo: notificationRepo}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

func (s *notificationService) ListNotifications(ctx context.Context, userID string) ([]dto.NotificationResponse, error) {
	notifications, err := s.notificationRepo.ListLatestNotifications(ctx, userID, defaultInboxLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return dto.ToNotificationResponses(notifications), nil
}

func (s *notificationService) CreateNotification(ctx context.Context, userID string, req dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	notification := domain.Notification{
		NotificationID: "notif_" + uuid.NewString(),
		UserID:         userID,
		Type:           domain.NotificationType(req.Type),
		Head:           req.Head,
		Content:        req.Content,
		TransactionID:  req.TransactionID,
		IsRead:         false,
		Timestamp:      time.Now(),
	}

	if err := s.notificationRepo.SaveNotification(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to save notification: %w", err)
	}
	return &dto.NotificationResponse{Notification: notification}, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (*dto.MarkAllReadResponse, error) {
	updated, err := s.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Notifications marked read", slog.String("user_id", userID), slog.Int64("updated", updated))
	return &dto.MarkAllReadResponse{Updated: updated}, nil
}
