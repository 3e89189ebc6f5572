package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	portsrepo "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/repositories"
	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
)

const (
	defaultMessagePageSize = 50
	maxMessagePageSize     = 200
)

// inboundMessageService provides the captured message inbox.
type inboundMessageService struct {
	messageRepo portsrepo.InboundMessageRepositoryFacade
}

// NewInboundMessageService creates a new InboundMessageService.
func NewInboundMessageService(messageRepo portsrepo.InboundMessageRepositoryFacade) portssvc.InboundMessageSvcFacade {
	return &inboundMessageService{messageRepo: messageRepo}
}

var _ portssvc.InboundMessageSvcFacade = (*inboundMessageService)(nil)

func (s *inboundMessageService) ListMessages(ctx context.Context, userID string, limit, offset int) ([]dto.InboundMessageResponse, error) {
	if limit <= 0 {
		limit = defaultMessagePageSize
	}
	if limit > maxMessagePageSize {
		limit = maxMessagePageSize
	}
	if offset < 0 {
		offset = 0
	}

	messages, err := s.messageRepo.ListInboundMessagesByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list inbound messages: %w", err)
	}
	return dto.ToInboundMessageResponses(messages), nil
}

func (s *inboundMessageService) GetMessage(ctx context.Context, userID, messageID string) (*dto.InboundMessageResponse, error) {
	message, err := s.messageRepo.FindInboundMessageByID(ctx, userID, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to find inbound message %s: %w", messageID, err)
	}
	return &dto.InboundMessageResponse{InboundMessage: *message}, nil
}

func (s *inboundMessageService) CaptureMessage(ctx context.Context, userID string, req dto.CreateInboundMessageRequest) (*dto.InboundMessageResponse, error) {
	now := time.Now()
	timestamp := now
	if req.Timestamp != nil {
		timestamp = *req.Timestamp
	}
	category := domain.InboundOther
	if req.Category != "" {
		category = domain.InboundCategory(req.Category)
	}

	message := domain.InboundMessage{
		MessageID:   "msg_" + uuid.NewString(),
		UserID:      userID,
		Sender:      req.Sender,
		Body:        req.Body,
		Timestamp:   timestamp,
		Category:    category,
		AmountPaise: req.AmountPaise,
		Metadata:    req.Metadata,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.messageRepo.SaveInboundMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to save inbound message: %w", err)
	}
	return &dto.InboundMessageResponse{InboundMessage: message}, nil
}

func (s *inboundMessageService) UpdateMessage(ctx context.Context, userID, messageID string, req dto.UpdateInboundMessageRequest) (*dto.InboundMessageResponse, error) {
	message, err := s.messageRepo.FindInboundMessageByID(ctx, userID, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to find inbound message: %w", err)
	}

	if req.Category != nil {
		message.Category = domain.InboundCategory(*req.Category)
	}
	if req.AmountPaise != nil {
		message.AmountPaise = req.AmountPaise
	}
	if req.Metadata != nil {
		message.Metadata = req.Metadata
	}
	message.LastUpdatedAt = time.Now()

	if err := s.messageRepo.UpdateInboundMessage(ctx, *message); err != nil {
		return nil, fmt.Errorf("failed to update inbound message: %w", err)
	}
	return &dto.InboundMessageResponse{InboundMessage: *message}, nil
}

func (s *inboundMessageService) DeleteMessage(ctx context.Context, userID, messageID string) error {
	if err := s.messageRepo.DeleteInboundMessage(ctx, userID, messageID); err != nil {
		return fmt.Errorf("failed to delete inbound message: %w", err)
	}
	return nil
}
