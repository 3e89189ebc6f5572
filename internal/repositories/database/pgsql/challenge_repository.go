package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gigpaisa/gigpaisa_backend/internal/apperrors"
	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	portsrepo "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/repositories"
)

type PgxChallengeRepository struct {
	BaseRepository
}

// newPgxChallengeRepository creates a new repository for daily challenges.
func newPgxChallengeRepository(pool *pgxpool.Pool) portsrepo.ChallengeRepositoryFacade {
	return &PgxChallengeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ChallengeRepositoryFacade = (*PgxChallengeRepository)(nil)

const challengeColumns = `
	challenge_id, user_id, title, description, category, status,
	icon, color, btn_text, amount_paise, reward_paise, difficulty, priority,
	streak_contribution, is_expired, completion, ai_generated_at, date_assigned,
	created_at, last_updated_at`

func scanChallenge(row pgx.Row) (domain.DailyChallenge, error) {
	var c domain.DailyChallenge
	err := row.Scan(
		&c.ChallengeID,
		&c.UserID,
		&c.Title,
		&c.Description,
		&c.Category,
		&c.Status,
		&c.Icon,
		&c.Color,
		&c.BtnText,
		&c.AmountPaise,
		&c.RewardPaise,
		&c.Difficulty,
		&c.Priority,
		&c.StreakContribution,
		&c.IsExpired,
		&c.Completion,
		&c.AIGeneratedAt,
		&c.DateAssigned,
		&c.CreatedAt,
		&c.LastUpdatedAt,
	)
	return c, err
}

// FindChallengeByID retrieves a user's challenge.
func (r *PgxChallengeRepository) FindChallengeByID(ctx context.Context, userID, challengeID string) (*domain.DailyChallenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM daily_challenges WHERE user_id = $1 AND challenge_id = $2;`
	challenge, err := scanChallenge(r.Pool.QueryRow(ctx, query, userID, challengeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find challenge: %w", err)
	}
	return &challenge, nil
}

// ListChallengesAssignedBetween retrieves non-expired challenges assigned
// inside the window, priority ascending.
func (r *PgxChallengeRepository) ListChallengesAssignedBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.DailyChallenge, error) {
	query := `SELECT ` + challengeColumns + `
		FROM daily_challenges
		WHERE user_id = $1 AND date_assigned >= $2 AND date_assigned <= $3 AND is_expired = FALSE
		ORDER BY priority ASC;`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query challenges: %w", err)
	}
	defer rows.Close()

	challenges, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DailyChallenge, error) {
		return scanChallenge(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan challenges: %w", err)
	}
	return challenges, nil
}

// CountCompletedSince counts challenges completed from a point in time.
func (r *PgxChallengeRepository) CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM daily_challenges
		 WHERE user_id = $1 AND status = $2 AND (completion->>'completedAt')::timestamptz >= $3;`,
		userID, domain.ChallengeCompleted, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed challenges: %w", err)
	}
	return count, nil
}

// SumRewardsCompletedSince totals reward paise of challenges completed from a
// point in time.
func (r *PgxChallengeRepository) SumRewardsCompletedSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	var total int64
	err := r.Pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(reward_paise), 0) FROM daily_challenges
		 WHERE user_id = $1 AND status = $2 AND (completion->>'completedAt')::timestamptz >= $3;`,
		userID, domain.ChallengeCompleted, since,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum challenge rewards: %w", err)
	}
	return total, nil
}

// SaveChallenge persists a new challenge assignment.
func (r *PgxChallengeRepository) SaveChallenge(ctx context.Context, challenge domain.DailyChallenge) error {
	query := `
		INSERT INTO daily_challenges (
			challenge_id, user_id, title, description, category, status,
			icon, color, btn_text, amount_paise, reward_paise, difficulty, priority,
			streak_contribution, is_expired, completion, ai_generated_at, date_assigned,
			created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := r.Pool.Exec(ctx, query,
		challenge.ChallengeID, challenge.UserID, challenge.Title, challenge.Description,
		challenge.Category, challenge.Status, challenge.Icon, challenge.Color,
		challenge.BtnText, challenge.AmountPaise, challenge.RewardPaise,
		challenge.Difficulty, challenge.Priority, challenge.StreakContribution,
		challenge.IsExpired, challenge.Completion, challenge.AIGeneratedAt,
		challenge.DateAssigned, challenge.CreatedAt, challenge.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save challenge: %w", err)
	}
	return nil
}

// MarkChallengeCompleted flips an active challenge to completed. The status
// guard in the WHERE clause makes a concurrent second attempt a no-op that
// reports false.
func (r *PgxChallengeRepository) MarkChallengeCompleted(ctx context.Context, userID, challengeID string, completion domain.ChallengeCompletion) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE daily_challenges
		SET status = $1, completion = $2, last_updated_at = $3
		WHERE user_id = $4 AND challenge_id = $5 AND status = $6;
	`, domain.ChallengeCompleted, completion, time.Now(), userID, challengeID, domain.ChallengeActive)
	if err != nil {
		return false, fmt.Errorf("failed to complete challenge: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
