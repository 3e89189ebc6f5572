package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Transaction    TransactionSvcFacade
	Budget         BudgetSvcFacade
	Cashflow       CashflowSvcFacade
	Jar            JarSvcFacade
	Challenge      ChallengeSvcFacade
	Risk           RiskSvcFacade
	User           UserSvcFacade
	Auth           AuthSvcFacade
	Goal           GoalSvcFacade
	LifeEvent      LifeEventSvcFacade
	Notification   NotificationSvcFacade
	Story          StorySvcFacade
	InboundMessage InboundMessageSvcFacade
}
