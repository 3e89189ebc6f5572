package services

import (
	portsrepo "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/repositories"
	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
	"github.com/gigpaisa/gigpaisa_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. A nil publisher disables the recompute retry
// queue; refresh failures are then only logged.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher portssvc.RecomputePublisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Budget and cashflow come first since the transaction write path
	// triggers their refreshes.
	container.Budget = NewBudgetService(repos.WeeklyBudgetRepo)
	container.Cashflow = NewCashflowService(repos.DailyCashflowRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, container.Budget, container.Cashflow, publisher)

	container.Jar = NewJarService(repos.JarRepo)
	container.Challenge = NewChallengeService(repos.ChallengeRepo, repos.TransactionRepo, repos.JarRepo, container.Budget, container.Cashflow)
	container.Risk = NewRiskService(repos.RiskRepo)

	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(repos.UserRepo, repos.OTPStore, AuthConfig{
		JWTSecret:      cfg.JWTSecret,
		JWTExpiry:      cfg.JWTExpiryDuration,
		JWTIssuer:      cfg.JWTIssuer,
		OTPTTL:         cfg.OTPTTL,
		DisableSending: cfg.OTPSendDisabled,
	})

	container.Goal = NewGoalService(repos.GoalRepo)
	container.LifeEvent = NewLifeEventService(repos.LifeEventRepo)
	container.Notification = NewNotificationService(repos.NotificationRepo)
	container.Story = NewStoryService(repos.StoryRepo)
	container.InboundMessage = NewInboundMessageService(repos.InboundMessageRepo)

	return container
}
