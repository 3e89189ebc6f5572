package repositories

import (
	"context"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a user by their unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByPhone retrieves a user by their phone number.
	FindUserByPhone(ctx context.Context, phone string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser persists profile changes to an existing user.
	UpdateUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines user read and write operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
