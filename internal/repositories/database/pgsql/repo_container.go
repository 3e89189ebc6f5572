package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the Postgres-backed repository set. The OTP
// store lives in Redis (or memory for development) and is wired by the
// caller.
func NewRepositoryProvider(dbPool *pgxpool.Pool, otpStore portsrepo.OTPStore) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo:    newPgxTransactionRepository(dbPool),
		WeeklyBudgetRepo:   newPgxWeeklyBudgetRepository(dbPool),
		DailyCashflowRepo:  newPgxDailyCashflowRepository(dbPool),
		JarRepo:            newPgxJarRepository(dbPool),
		ChallengeRepo:      newPgxChallengeRepository(dbPool),
		RiskRepo:           newPgxRiskRepository(dbPool),
		UserRepo:           newPgxUserRepository(dbPool),
		GoalRepo:           newPgxGoalRepository(dbPool),
		LifeEventRepo:      newPgxLifeEventRepository(dbPool),
		NotificationRepo:   newPgxNotificationRepository(dbPool),
		StoryRepo:          newPgxStoryRepository(dbPool),
		InboundMessageRepo: newPgxInboundMessageRepository(dbPool),
		OTPStore:           otpStore,
	}
}
