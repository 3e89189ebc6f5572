package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gigpaisa/gigpaisa_backend/internal/apperrors"
	portsrepo "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/repositories"
)

// OTPStore keeps one-time codes in Redis with server-side expiry.
type OTPStore struct {
	client *redis.Client
}

// NewOTPStore creates a Redis-backed OTP store.
func NewOTPStore(client *redis.Client) *OTPStore {
	return &OTPStore{client: client}
}

var _ portsrepo.OTPStore = (*OTPStore)(nil)

// Set stores a value under key with the given time to live, replacing any
// previous value.
func (s *OTPStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set otp key: %w", err)
	}
	return nil
}

// Get retrieves the value for key. A missing or expired key yields
// ErrNotFound.
func (s *OTPStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to get otp key: %w", err)
	}
	return value, nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *OTPStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete otp key: %w", err)
	}
	return nil
}
