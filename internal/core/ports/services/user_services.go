package services

import (
	"context"

	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
)

// UserSvcFacade defines user profile operations
type UserSvcFacade interface {
	// CreateUser registers a new user.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)

	// GetUserByID retrieves a user profile.
	GetUserByID(ctx context.Context, userID string) (*dto.UserResponse, error)

	// UpdateUser applies partial profile changes.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*dto.UserResponse, error)
}

// AuthSvcFacade defines the OTP login flow
type AuthSvcFacade interface {
	// SendOTP issues a one-time code to a registered phone number. The code
	// is hashed into the TTL store; delivery happens out of band.
	SendOTP(ctx context.Context, req dto.SendOTPRequest) (*dto.SendOTPResponse, error)

	// VerifyOTP checks a one-time code, consumes it and issues a JWT.
	VerifyOTP(ctx context.Context, req dto.VerifyOTPRequest) (*dto.VerifyOTPResponse, error)
}
