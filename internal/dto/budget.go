package dto

import (
	"time"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
)

// GenerateBudgetRequest optionally pins the week to generate. An absent
// weekDate means the current week.
type GenerateBudgetRequest struct {
	WeekDate *time.Time `json:"weekDate"`
}

// UpdateBudgetLimitsRequest carries new per-category limits in rupees, keyed
// by budget category name.
type UpdateBudgetLimitsRequest struct {
	Budgets map[string]float64 `json:"budgets" binding:"required,min=1,dive,keys,budgetcategory,endkeys,gte=0"`
}

// CategoryBudgetResponse is one category bucket of a weekly budget.
type CategoryBudgetResponse struct {
	MaxBudgetPaise    int64 `json:"maxBudgetPaise"`
	CurrentSpentPaise int64 `json:"currentSpentPaise"`
	TransactionCount  int   `json:"transactionCount"`
	RiskScore         int   `json:"riskScore"`
}

// TransactionSummaryResponse mirrors domain.TransactionSummary.
type TransactionSummaryResponse struct {
	TotalTransactions   int    `json:"totalTransactions"`
	IncomeTransactions  int    `json:"incomeTransactions"`
	ExpenseTransactions int    `json:"expenseTransactions"`
	AvgTransactionPaise int64  `json:"avgTransactionPaise"`
	LargestExpensePaise int64  `json:"largestExpensePaise"`
	MostActiveCategory  string `json:"mostActiveCategory"`
}

// WeeklyBudgetResponse defines the data returned for one week's budget.
type WeeklyBudgetResponse struct {
	UserID            string                            `json:"userId"`
	WeekID            string                            `json:"weekId"`
	Year              int                               `json:"year"`
	WeekNumber        int                               `json:"weekNumber"`
	WeekStartDate     time.Time                         `json:"weekStartDate"`
	WeekEndDate       time.Time                         `json:"weekEndDate"`
	Categories        map[string]CategoryBudgetResponse `json:"categories"`
	Summary           TransactionSummaryResponse        `json:"transactionSummary"`
	TotalSpentPaise   int64                             `json:"totalSpentPaise"`
	TotalBudgetPaise  int64                             `json:"totalBudgetPaise"`
	BudgetUtilization int                               `json:"budgetUtilization"`
	OverallRiskScore  int                               `json:"overallRiskScore"`
	AILastAnalyzed    *time.Time                        `json:"aiLastAnalyzed,omitempty"`
	LastUpdatedAt     time.Time                         `json:"lastUpdatedAt"`
}

// BudgetTrendResponse summarizes spending direction over recent weeks.
type BudgetTrendResponse struct {
	Trend               string `json:"trend"`
	ChangePercent       int    `json:"change"`
	WeeklyAverageRupees int64  `json:"weeklyAverage"`
}

// BudgetHistoryResponse is the recent weekly budgets plus their trend.
type BudgetHistoryResponse struct {
	Budgets []WeeklyBudgetResponse `json:"budgets"`
	Trend   BudgetTrendResponse    `json:"trends"`
}

// ToWeeklyBudgetResponse converts a domain.WeeklyBudget to its DTO, attaching
// the per-category risk scores.
func ToWeeklyBudgetResponse(b *domain.WeeklyBudget, categoryRisks map[domain.BudgetCategory]int) WeeklyBudgetResponse {
	categories := make(map[string]CategoryBudgetResponse, len(b.Categories))
	for name, bucket := range b.Categories {
		categories[string(name)] = CategoryBudgetResponse{
			MaxBudgetPaise:    bucket.MaxBudgetPaise,
			CurrentSpentPaise: bucket.CurrentSpentPaise,
			TransactionCount:  bucket.TransactionCount,
			RiskScore:         categoryRisks[name],
		}
	}
	return WeeklyBudgetResponse{
		UserID:        b.UserID,
		WeekID:        b.WeekID,
		Year:          b.Year,
		WeekNumber:    b.WeekNumber,
		WeekStartDate: b.WeekStartDate,
		WeekEndDate:   b.WeekEndDate,
		Categories:    categories,
		Summary: TransactionSummaryResponse{
			TotalTransactions:   b.Summary.TotalTransactions,
			IncomeTransactions:  b.Summary.IncomeTransactions,
			ExpenseTransactions: b.Summary.ExpenseTransactions,
			AvgTransactionPaise: b.Summary.AvgTransactionPaise,
			LargestExpensePaise: b.Summary.LargestExpensePaise,
			MostActiveCategory:  string(b.Summary.MostActiveCategory),
		},
		TotalSpentPaise:   b.TotalSpentPaise,
		TotalBudgetPaise:  b.TotalBudgetPaise,
		BudgetUtilization: b.BudgetUtilization,
		OverallRiskScore:  b.OverallRiskScore,
		AILastAnalyzed:    b.AILastAnalyzed,
		LastUpdatedAt:     b.LastUpdatedAt,
	}
}

// ToBudgetTrendResponse converts a domain.BudgetTrend to its DTO.
func ToBudgetTrendResponse(t domain.BudgetTrend) BudgetTrendResponse {
	return BudgetTrendResponse{
		Trend:               t.Trend,
		ChangePercent:       t.ChangePercent,
		WeeklyAverageRupees: t.WeeklyAverageRupees,
	}
}
