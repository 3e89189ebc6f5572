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

// lifeEventService provides upcoming life event operations.
type lifeEventService struct {
	eventRepo portsrepo.LifeEventRepositoryFacade
}

// NewLifeEventService creates a new LifeEventService.
func NewLifeEventService(eventRepo portsrepo.LifeEventRepositoryFacade) portssvc.LifeEventSvcFacade {
	return &lifeEventService{eventRepo: eventRepo}
}

var _ portssvc.LifeEventSvcFacade = (*lifeEventService)(nil)

func (s *lifeEventService) ListLifeEvents(ctx context.Context, userID string) ([]dto.LifeEventResponse, error) {
	events, err := s.eventRepo.ListLifeEventsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list life events: %w", err)
	}
	return dto.ToLifeEventResponses(events, time.Now()), nil
}

func (s *lifeEventService) CreateLifeEvent(ctx context.Context, userID string, req dto.CreateLifeEventRequest) (*dto.LifeEventResponse, error) {
	now := time.Now()
	event := domain.LifeEvent{
		EventID:           "event_" + uuid.NewString(),
		UserID:            userID,
		Type:              req.Type,
		Description:       req.Description,
		EventDate:         req.EventDate,
		ExpectedCostPaise: req.ExpectedCostPaise,
		Status:            "upcoming",
		Note:              req.Note,
		SavingsPlanNeeded: req.EventDate.After(now),
		AuditFields:       domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.eventRepo.SaveLifeEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to save life event: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Life event created", slog.String("event_id", event.EventID), slog.String("type", event.Type))

	responses := dto.ToLifeEventResponses([]domain.LifeEvent{event}, now)
	return &responses[0], nil
}
