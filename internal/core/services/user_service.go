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

// userService provides user profile operations.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	now := time.Now()
	user := domain.User{
		UserID:            "user_" + uuid.NewString(),
		Name:              req.Name,
		Phone:             req.Phone,
		Age:               req.Age,
		City:              req.City,
		PreferredLanguage: req.PreferredLanguage,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if user.PreferredLanguage == "" {
		user.PreferredLanguage = "en"
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("User created", slog.String("user_id", user.UserID))

	resp := dto.ToUserResponse(&user)
	return &resp, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Age != nil {
		user.Age = *req.Age
	}
	if req.City != nil {
		user.City = *req.City
	}
	if req.PreferredLanguage != nil {
		user.PreferredLanguage = *req.PreferredLanguage
	}
	if req.Permissions != nil {
		user.Permissions = *req.Permissions
	}
	if req.WorkProfile != nil {
		user.WorkProfile = req.WorkProfile
	}
	if req.FinancialProfile != nil {
		user.FinancialProfile = req.FinancialProfile
	}
	if req.AIContext != nil {
		user.AIContext = req.AIContext
	}
	user.LastUpdatedAt = time.Now()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("User updated", slog.String("user_id", userID))

	resp := dto.ToUserResponse(user)
	return &resp, nil
}
