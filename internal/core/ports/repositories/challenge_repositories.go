package repositories

import (
	"context"
	"time"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
)

// ChallengeReader defines read operations for daily challenges
type ChallengeReader interface {
	// FindChallengeByID retrieves a user's challenge.
	FindChallengeByID(ctx context.Context, userID, challengeID string) (*domain.DailyChallenge, error)

	// ListChallengesAssignedBetween retrieves non-expired challenges assigned
	// inside the window, priority ascending.
	ListChallengesAssignedBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.DailyChallenge, error)

	// CountCompletedSince counts challenges completed from a point in time.
	CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, error)

	// SumRewardsCompletedSince totals reward paise of challenges completed
	// from a point in time.
	SumRewardsCompletedSince(ctx context.Context, userID string, since time.Time) (int64, error)
}

// ChallengeWriter defines write operations for daily challenges
type ChallengeWriter interface {
	// SaveChallenge persists a new challenge assignment.
	SaveChallenge(ctx context.Context, challenge domain.DailyChallenge) error

	// MarkChallengeCompleted flips an active challenge to completed with the
	// given completion data. The update is guarded on status=active so a
	// second completion attempt reports false with no state change.
	MarkChallengeCompleted(ctx context.Context, userID, challengeID string, completion domain.ChallengeCompletion) (bool, error)
}

// ChallengeRepositoryFacade combines challenge read and write operations
type ChallengeRepositoryFacade interface {
	ChallengeReader
	ChallengeWriter
}
