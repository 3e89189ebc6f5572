package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gigpaisa/gigpaisa_backend/internal/apperrors"
	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	portsrepo "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/repositories"
)

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user accounts.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `
	user_id, name, age, city, phone, preferred_language, onboarding_completed_at,
	permissions, work_profile, financial_profile, ai_context, created_at, last_updated_at`

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.UserID,
		&u.Name,
		&u.Age,
		&u.City,
		&u.Phone,
		&u.PreferredLanguage,
		&u.OnboardingCompletedAt,
		&u.Permissions,
		&u.WorkProfile,
		&u.FinancialProfile,
		&u.AIContext,
		&u.CreatedAt,
		&u.LastUpdatedAt,
	)
	return u, err
}

// FindUserByID retrieves a user by their unique identifier.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// FindUserByPhone retrieves a user by their phone number.
func (r *PgxUserRepository) FindUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone = $1;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by phone: %w", err)
	}
	return &user, nil
}

// SaveUser persists a new user.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (
			user_id, name, age, city, phone, preferred_language, onboarding_completed_at,
			permissions, work_profile, financial_profile, ai_context, created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		user.UserID, user.Name, user.Age, user.City, user.Phone,
		user.PreferredLanguage, user.OnboardingCompletedAt, user.Permissions,
		user.WorkProfile, user.FinancialProfile, user.AIContext,
		user.CreatedAt, user.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "phone number already registered", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// UpdateUser persists profile changes to an existing user.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
		UPDATE users SET
			name = $1, age = $2, city = $3, preferred_language = $4,
			onboarding_completed_at = $5, permissions = $6, work_profile = $7,
			financial_profile = $8, ai_context = $9, last_updated_at = $10
		WHERE user_id = $11;
	`
	tag, err := r.Pool.Exec(ctx, query,
		user.Name, user.Age, user.City, user.PreferredLanguage,
		user.OnboardingCompletedAt, user.Permissions, user.WorkProfile,
		user.FinancialProfile, user.AIContext, user.LastUpdatedAt, user.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
