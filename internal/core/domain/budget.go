package domain

import "time"

// BudgetCategory is one of the closed set of spending classifications.
// Adding a category requires updating the mapper rule table in
// internal/utils/budgeting and the default budgets below.
type BudgetCategory string

const (
	CategoryFood          BudgetCategory = "food"
	CategoryFuel          BudgetCategory = "fuel"
	CategoryTransport     BudgetCategory = "transport"
	CategoryRecharge      BudgetCategory = "recharge"
	CategoryEntertainment BudgetCategory = "entertainment"
	CategoryMedical       BudgetCategory = "medical"
	CategorySendHome      BudgetCategory = "send_home"
	CategoryMiscellaneous BudgetCategory = "miscellaneous"
)

// BudgetCategories lists every category in its fixed, documented iteration
// order. Aggregations and tie-breaks depend on this order being stable.
var BudgetCategories = []BudgetCategory{
	CategoryFood,
	CategoryFuel,
	CategoryTransport,
	CategoryRecharge,
	CategoryEntertainment,
	CategoryMedical,
	CategorySendHome,
	CategoryMiscellaneous,
}

// DefaultMaxBudgetPaise holds the seed weekly limits for a newly created
// budget, tuned for a gig worker's spending pattern.
var DefaultMaxBudgetPaise = map[BudgetCategory]int64{
	CategoryFood:          240000,
	CategoryFuel:          160000,
	CategoryTransport:     40000,
	CategoryRecharge:      10000,
	CategoryEntertainment: 50000,
	CategoryMedical:       30000,
	CategorySendHome:      150000,
	CategoryMiscellaneous: 100000,
}

// CategoryBudget is one category bucket inside a weekly budget.
type CategoryBudget struct {
	MaxBudgetPaise    int64 `json:"maxBudgetPaise"`
	CurrentSpentPaise int64 `json:"currentSpentPaise"`
	TransactionCount  int   `json:"transactionCount"`
}

// TransactionSummary captures week-level statistics over the raw ledger.
type TransactionSummary struct {
	TotalTransactions   int            `json:"totalTransactions"`
	IncomeTransactions  int            `json:"incomeTransactions"`
	ExpenseTransactions int            `json:"expenseTransactions"`
	AvgTransactionPaise int64          `json:"avgTransactionPaise"`
	LargestExpensePaise int64          `json:"largestExpensePaise"`
	MostActiveCategory  BudgetCategory `json:"mostActiveCategory"`
}

// WeeklyBudget is the derived per-user-per-ISO-week budget snapshot.
// Exactly one record exists per (UserID, WeekStartDate); it is safe to
// recompute from the transaction ledger at any time.
type WeeklyBudget struct {
	UserID        string                            `json:"userId"`
	WeekID        string                            `json:"weekId"` // e.g. 2025-W41
	Year          int                               `json:"year"`
	WeekNumber    int                               `json:"weekNumber"`
	WeekStartDate time.Time                         `json:"weekStartDate"`
	WeekEndDate   time.Time                         `json:"weekEndDate"`
	Categories    map[BudgetCategory]CategoryBudget `json:"categories"`
	Summary       TransactionSummary                `json:"transactionSummary"`

	// Derived fields, recomputed on every save.
	TotalSpentPaise   int64 `json:"totalSpentPaise"`
	TotalBudgetPaise  int64 `json:"totalBudgetPaise"`
	BudgetUtilization int   `json:"budgetUtilization"` // percent
	OverallRiskScore  int   `json:"overallRiskScore"`  // 0-100

	AILastAnalyzed *time.Time `json:"aiLastAnalyzed,omitempty"`
	AuditFields
}

// BudgetTrend summarizes spending direction over recent weeks.
type BudgetTrend struct {
	Trend               string `json:"trend"` // stable | increasing | decreasing
	ChangePercent       int    `json:"change"`
	WeeklyAverageRupees int64  `json:"weeklyAverage"`
}
