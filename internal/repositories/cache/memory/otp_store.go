package memory

import (
	"context"
	"sync"
	"time"

	"github.com/gigpaisa/gigpaisa_backend/internal/apperrors"
	portsrepo "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/repositories"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// OTPStore keeps one-time codes in process memory. Intended for tests and
// local development without Redis; entries expire lazily on read.
type OTPStore struct {
	mu      sync.Mutex
	entries map[string]entry
}

// NewOTPStore creates an in-memory OTP store.
func NewOTPStore() *OTPStore {
	return &OTPStore{entries: make(map[string]entry)}
}

var _ portsrepo.OTPStore = (*OTPStore)(nil)

// Set stores a value under key with the given time to live, replacing any
// previous value.
func (s *OTPStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Get retrieves the value for key. A missing or expired key yields
// ErrNotFound.
func (s *OTPStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	if time.Now().After(e.expiresAt) {
		delete(s.entries, key)
		return "", apperrors.ErrNotFound
	}
	return e.value, nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *OTPStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
