package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gigpaisa/gigpaisa_backend/internal/apperrors"
	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	portsrepo "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/repositories"
	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
	"github.com/gigpaisa/gigpaisa_backend/internal/middleware"
)

// Default styling for jars created without explicit UI fields.
const (
	defaultJarIcon  = "piggy-bank"
	defaultJarColor = "#10B981"
	defaultJarBg    = "bg-slate-800"
)

// jarService provides the savings jar operations.
type jarService struct {
	jarRepo portsrepo.JarRepositoryFacade
}

// NewJarService creates a new JarService.
func NewJarService(jarRepo portsrepo.JarRepositoryFacade) portssvc.JarSvcFacade {
	return &jarService{jarRepo: jarRepo}
}

var _ portssvc.JarSvcFacade = (*jarService)(nil)

func (s *jarService) ListJars(ctx context.Context, userID string) ([]dto.JarResponse, error) {
	jars, err := s.jarRepo.ListActiveJarsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jars: %w", err)
	}
	return dto.ToJarResponses(jars, time.Now()), nil
}

func (s *jarService) GetJarByID(ctx context.Context, userID, jarID string) (*dto.JarResponse, error) {
	jar, err := s.jarRepo.FindJarByID(ctx, jarID)
	if err != nil {
		return nil, fmt.Errorf("failed to find jar %s: %w", jarID, err)
	}
	if jar.UserID != userID {
		return nil, fmt.Errorf("%w: jar does not belong to user", apperrors.ErrForbidden)
	}
	resp := dto.ToJarResponse(jar, time.Now())
	return &resp, nil
}

func (s *jarService) CreateJar(ctx context.Context, userID string, req dto.CreateJarRequest) (*dto.JarResponse, error) {
	if req.Target.Sign() <= 0 {
		return nil, fmt.Errorf("%w: target must be positive", apperrors.ErrValidation)
	}
	if !req.Deadline.After(time.Now()) {
		return nil, fmt.Errorf("%w: deadline must be in the future", apperrors.ErrValidation)
	}

	now := time.Now()
	jar := domain.SavingsJar{
		JarID:    "jar_" + uuid.NewString(),
		UserID:   userID,
		Title:    req.Title,
		Target:   req.Target,
		Saved:    decimal.Zero,
		Deadline: req.Deadline,
		Status:   domain.JarActive,
		Icon:     req.Icon,
		Color:    req.Color,
		Bg:       req.Bg,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if jar.Icon == "" {
		jar.Icon = defaultJarIcon
	}
	if jar.Color == "" {
		jar.Color = defaultJarColor
	}
	if jar.Bg == "" {
		jar.Bg = defaultJarBg
	}

	if err := s.jarRepo.SaveJar(ctx, jar); err != nil {
		return nil, fmt.Errorf("failed to save jar: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Jar created", slog.String("jar_id", jar.JarID), slog.String("title", jar.Title))

	resp := dto.ToJarResponse(&jar, now)
	return &resp, nil
}

func (s *jarService) Deposit(ctx context.Context, userID, jarID string, req dto.DepositRequest) (*dto.DepositResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrValidation)
	}

	deposit := domain.JarDeposit{
		DepositID: "dep_" + uuid.NewString(),
		Amount:    req.Amount,
		Date:      time.Now(),
	}

	// Guard validation and the saved-total update run inside one serialized
	// database transaction in the repository.
	jar, unallocated, err := s.jarRepo.DepositToJar(ctx, userID, jarID, deposit)
	if err != nil {
		return nil, fmt.Errorf("failed to deposit to jar %s: %w", jarID, err)
	}

	if jar.Status == domain.JarCompleted {
		logger.Info("Jar completed", slog.String("jar_id", jar.JarID), slog.String("saved", jar.Saved.String()))
	}
	logger.Info("Deposit recorded", slog.String("jar_id", jar.JarID), slog.String("amount", req.Amount.String()))

	return &dto.DepositResponse{
		Jar:             dto.ToJarResponse(jar, time.Now()),
		UnallocatedCash: unallocated,
	}, nil
}

func (s *jarService) ArchiveJar(ctx context.Context, userID, jarID string) error {
	jar, err := s.jarRepo.FindJarByID(ctx, jarID)
	if err != nil {
		return fmt.Errorf("failed to find jar %s: %w", jarID, err)
	}
	if jar.UserID != userID {
		return fmt.Errorf("%w: jar does not belong to user", apperrors.ErrForbidden)
	}
	if err := s.jarRepo.UpdateJarStatus(ctx, jarID, domain.JarArchived); err != nil {
		return fmt.Errorf("failed to archive jar %s: %w", jarID, err)
	}
	return nil
}
