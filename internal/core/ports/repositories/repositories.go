package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TransactionRepo    TransactionRepositoryFacade
	WeeklyBudgetRepo   WeeklyBudgetRepositoryFacade
	DailyCashflowRepo  DailyCashflowRepositoryFacade
	JarRepo            JarRepositoryFacade
	ChallengeRepo      ChallengeRepositoryFacade
	RiskRepo           RiskRepositoryFacade
	UserRepo           UserRepositoryFacade
	GoalRepo           GoalRepositoryFacade
	LifeEventRepo      LifeEventRepositoryFacade
	NotificationRepo   NotificationRepositoryFacade
	StoryRepo          StoryRepositoryFacade
	InboundMessageRepo InboundMessageRepositoryFacade
	OTPStore           OTPStore
}
