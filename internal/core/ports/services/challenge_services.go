package services

import (
	"context"

	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
)

// ChallengeReaderSvc defines read operations for daily challenges
type ChallengeReaderSvc interface {
	// ListTodaysChallenges retrieves today's non-expired challenges,
	// priority ascending.
	ListTodaysChallenges(ctx context.Context, userID string) ([]dto.ChallengeResponse, error)

	// GetStats returns completion counters for today, this week and this
	// month plus the month-to-date reward total.
	GetStats(ctx context.Context, userID string) (*dto.ChallengeStatsResponse, error)
}

// ChallengeWriterSvc defines write operations for daily challenges
type ChallengeWriterSvc interface {
	// CompleteChallenge finishes an active challenge: marks it completed,
	// records a challenge_reward income transaction, deposits the reward
	// into the auto-created "Challenge Rewards" jar and returns refreshed
	// dashboard figures. A challenge that is not active fails with
	// ErrConflict.
	CompleteChallenge(ctx context.Context, userID, challengeID string, req dto.CompleteChallengeRequest) (*dto.CompleteChallengeResponse, error)
}

// ChallengeSvcFacade combines challenge service operations
type ChallengeSvcFacade interface {
	ChallengeReaderSvc
	ChallengeWriterSvc
}
