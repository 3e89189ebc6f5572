package repositories

import (
	"context"
	"time"
)

// OTPStore is a key-value store with TTL semantics for one-time codes.
// Implementations must expire entries server-side; process memory is only
// acceptable for tests and local development.
type OTPStore interface {
	// Set stores a value under key with the given time to live, replacing any
	// previous value.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Get retrieves the value for key. A missing or expired key yields
	// ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
