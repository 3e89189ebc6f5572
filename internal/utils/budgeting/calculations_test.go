package budgeting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
)

func expense(amountPaise int64, category, merchant string, ts time.Time) domain.Transaction {
	return domain.Transaction{
		Type:        domain.Expense,
		AmountPaise: amountPaise,
		Category:    category,
		Merchant:    merchant,
		Timestamp:   ts,
	}
}

func TestWeekBounds(t *testing.T) {
	// Wednesday 2025-10-08.
	wed := time.Date(2025, 10, 8, 15, 30, 0, 0, time.UTC)
	start, end := WeekBounds(wed)

	assert.Equal(t, time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, time.Sunday, end.Weekday())
	assert.Equal(t, 23, end.Hour())

	// Any day of the same week yields identical bounds.
	for d := 0; d < 7; d++ {
		s, e := WeekBounds(start.AddDate(0, 0, d).Add(5 * time.Hour))
		assert.Equal(t, start, s)
		assert.Equal(t, end, e)
	}
}

func TestWeekBounds_SundayBelongsToPrecedingMonday(t *testing.T) {
	sun := time.Date(2025, 10, 12, 1, 0, 0, 0, time.UTC)
	start, _ := WeekBounds(sun)
	assert.Equal(t, time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC), start)
}

func TestWeekID(t *testing.T) {
	assert.Equal(t, "2025-W41", WeekID(time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC)))
	// ISO week years differ from calendar years at the boundary.
	assert.Equal(t, "2026-W01", WeekID(time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC)))
}

func TestAggregateWeek_Empty(t *testing.T) {
	categories, summary := AggregateWeek(nil, nil)

	assert.Len(t, categories, len(domain.BudgetCategories))
	for _, c := range domain.BudgetCategories {
		assert.Equal(t, domain.DefaultMaxBudgetPaise[c], categories[c].MaxBudgetPaise)
		assert.Zero(t, categories[c].CurrentSpentPaise)
		assert.Zero(t, categories[c].TransactionCount)
	}
	assert.Zero(t, summary.TotalTransactions)
	assert.Equal(t, domain.CategoryFood, summary.MostActiveCategory)
}

func TestAggregateWeek_PreservesExistingLimits(t *testing.T) {
	limits := map[domain.BudgetCategory]int64{domain.CategoryFood: 999900}
	categories, _ := AggregateWeek(nil, limits)

	assert.Equal(t, int64(999900), categories[domain.CategoryFood].MaxBudgetPaise)
	assert.Equal(t, domain.DefaultMaxBudgetPaise[domain.CategoryFuel], categories[domain.CategoryFuel].MaxBudgetPaise)
}

func TestAggregateWeek_Buckets(t *testing.T) {
	ts := time.Date(2025, 10, 7, 12, 0, 0, 0, time.UTC)
	txs := []domain.Transaction{
		expense(5000, "food", "Dosa Plaza", ts),
		expense(12000, "fuel", "HP Petrol Pump", ts),
		expense(3000, "food", "Chai Point", ts),
		{Type: domain.Income, AmountPaise: 250000, Category: "gig_payout", Timestamp: ts},
	}

	categories, summary := AggregateWeek(txs, nil)

	assert.Equal(t, int64(8000), categories[domain.CategoryFood].CurrentSpentPaise)
	assert.Equal(t, 2, categories[domain.CategoryFood].TransactionCount)
	assert.Equal(t, int64(12000), categories[domain.CategoryFuel].CurrentSpentPaise)
	assert.Equal(t, 3, summary.TotalTransactions, "income must not count")
	assert.Equal(t, 3, summary.ExpenseTransactions)
	assert.Equal(t, int64(12000), summary.LargestExpensePaise)
	assert.Equal(t, int64(6667), summary.AvgTransactionPaise)
	assert.Equal(t, domain.CategoryFood, summary.MostActiveCategory)
}

func TestAggregateWeek_Idempotent(t *testing.T) {
	ts := time.Date(2025, 10, 7, 12, 0, 0, 0, time.UTC)
	txs := []domain.Transaction{
		expense(5000, "food", "", ts),
		expense(7000, "transport", "Uber", ts),
	}

	cat1, sum1 := AggregateWeek(txs, nil)
	cat2, sum2 := AggregateWeek(txs, nil)
	assert.Equal(t, cat1, cat2)
	assert.Equal(t, sum1, sum2)
}

func TestAggregateWeek_IncrementalEquivalence(t *testing.T) {
	ts := time.Date(2025, 10, 7, 12, 0, 0, 0, time.UTC)
	txs := []domain.Transaction{
		expense(5000, "food", "Dosa Plaza", ts),
		expense(12000, "fuel", "HP Petrol Pump", ts),
		{Type: domain.Income, AmountPaise: 250000, Category: "gig_payout", Timestamp: ts},
		expense(3000, "food", "Chai Point", ts),
		expense(7000, "transport", "Uber", ts),
		expense(2500, "recharge", "Jio", ts),
	}

	// Recompute after each arriving transaction, carrying the previous
	// result's limits forward the way successive refreshes do.
	var categories map[domain.BudgetCategory]domain.CategoryBudget
	var summary domain.TransactionSummary
	var limits map[domain.BudgetCategory]int64
	for i := 1; i <= len(txs); i++ {
		categories, summary = AggregateWeek(txs[:i], limits)
		limits = make(map[domain.BudgetCategory]int64, len(categories))
		for c, bucket := range categories {
			limits[c] = bucket.MaxBudgetPaise
		}
	}

	fullCategories, fullSummary := AggregateWeek(txs, nil)
	assert.Equal(t, fullCategories, categories)
	assert.Equal(t, fullSummary, summary)
}

func TestAggregateWeek_MostActiveTieBreak(t *testing.T) {
	ts := time.Date(2025, 10, 7, 12, 0, 0, 0, time.UTC)
	// One transaction each; the earlier fixed-order category wins.
	txs := []domain.Transaction{
		expense(1000, "transport", "", ts),
		expense(1000, "fuel", "", ts),
	}
	_, summary := AggregateWeek(txs, nil)
	assert.Equal(t, domain.CategoryFuel, summary.MostActiveCategory)
}

func TestBudgetUtilization(t *testing.T) {
	assert.Equal(t, 0, BudgetUtilization(5000, 0), "zero budget never divides")
	assert.Equal(t, 0, BudgetUtilization(0, 100000))
	assert.Equal(t, 50, BudgetUtilization(50000, 100000))
	assert.Equal(t, 33, BudgetUtilization(100, 300))
	assert.Equal(t, 150, BudgetUtilization(150000, 100000), "overspend exceeds 100")
}

func TestCategoryRiskScore(t *testing.T) {
	assert.Equal(t, 0, CategoryRiskScore(0, 0))
	assert.Equal(t, 100, CategoryRiskScore(1, 0), "spend against zero budget is max risk")
	assert.Equal(t, 50, CategoryRiskScore(50000, 100000))
	assert.Equal(t, 100, CategoryRiskScore(250000, 100000), "clamped at 100")
}

func TestOverallRiskScore_Weighted(t *testing.T) {
	categories := map[domain.BudgetCategory]domain.CategoryBudget{
		// risk 100, weight 3
		domain.CategoryFood: {MaxBudgetPaise: 10000, CurrentSpentPaise: 20000, TransactionCount: 3},
		// risk 20, weight 1
		domain.CategoryFuel: {MaxBudgetPaise: 100000, CurrentSpentPaise: 20000, TransactionCount: 1},
	}
	// (100*3 + 20*1) / 4 = 80
	assert.Equal(t, 80, OverallRiskScore(categories))
}

func TestOverallRiskScore_NoTransactions(t *testing.T) {
	categories := map[domain.BudgetCategory]domain.CategoryBudget{
		domain.CategoryFood: {MaxBudgetPaise: 10000},
	}
	assert.Equal(t, 0, OverallRiskScore(categories))
}

func TestOverallRiskScore_AllZeroBudgets(t *testing.T) {
	categories := make(map[domain.BudgetCategory]domain.CategoryBudget)
	for _, c := range domain.BudgetCategories {
		categories[c] = domain.CategoryBudget{CurrentSpentPaise: 5000, TransactionCount: 1}
	}
	assert.Equal(t, 100, OverallRiskScore(categories))
}

func TestClassifyCashflow(t *testing.T) {
	assert.Equal(t, domain.StatusNeutral, ClassifyCashflow(0, 0))
	assert.Equal(t, domain.StatusHighEarning, ClassifyCashflow(100000, 0))
	assert.Equal(t, domain.StatusHeavyExpense, ClassifyCashflow(0, 30000))
	assert.Equal(t, domain.StatusBalanced, ClassifyCashflow(50000, 40000))
	// Boundary values sit on the labels, not between them.
	assert.Equal(t, domain.StatusHighEarning, ClassifyCashflow(50000, 0))
	assert.Equal(t, domain.StatusHeavyExpense, ClassifyCashflow(0, 20000))
	assert.Equal(t, domain.StatusBalanced, ClassifyCashflow(49999, 0))
}

func TestComputeTrend(t *testing.T) {
	assert.Equal(t, "stable", ComputeTrend(nil).Trend)
	assert.Equal(t, "stable", ComputeTrend([]int64{100000}).Trend)

	up := ComputeTrend([]int64{150000, 100000})
	assert.Equal(t, "increasing", up.Trend)
	assert.Equal(t, 50, up.ChangePercent)

	down := ComputeTrend([]int64{80000, 100000})
	assert.Equal(t, "decreasing", down.Trend)
	assert.Equal(t, -20, down.ChangePercent)

	flat := ComputeTrend([]int64{105000, 100000})
	assert.Equal(t, "stable", flat.Trend, "within the 10 percent band")

	avg := ComputeTrend([]int64{100000, 200000})
	assert.Equal(t, int64(1500), avg.WeeklyAverageRupees)
}

func TestJarDaysLeft(t *testing.T) {
	now := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 10, JarDaysLeft(now.AddDate(0, 0, 10), now))
	assert.Equal(t, 0, JarDaysLeft(now.AddDate(0, 0, -3), now), "past deadline floors at zero")
	assert.Equal(t, 1, JarDaysLeft(now.Add(6*time.Hour), now), "partial day rounds up")
}

func TestDepositWithinUnallocated(t *testing.T) {
	unallocated := decimal.NewFromInt(5000)

	assert.True(t, DepositWithinUnallocated(decimal.NewFromInt(5000), unallocated), "depositing the whole balance is allowed")
	assert.True(t, DepositWithinUnallocated(decimal.NewFromInt(1), unallocated))
	assert.False(t, DepositWithinUnallocated(decimal.RequireFromString("5000.01"), unallocated), "one paisa over is rejected")
	assert.False(t, DepositWithinUnallocated(decimal.Zero, unallocated))
	assert.False(t, DepositWithinUnallocated(decimal.NewFromInt(-100), unallocated))
	assert.False(t, DepositWithinUnallocated(decimal.NewFromInt(1), decimal.Zero), "nothing fits in an empty balance")
}

func TestSuggestedDailyAmount(t *testing.T) {
	target := decimal.NewFromInt(10000)

	got := SuggestedDailyAmount(target, decimal.NewFromInt(4000), 30)
	assert.True(t, decimal.NewFromInt(200).Equal(got))

	// ceil(6000/7) = 858
	got = SuggestedDailyAmount(target, decimal.NewFromInt(4000), 7)
	assert.True(t, decimal.NewFromInt(858).Equal(got))

	// Deadline passed: everything due today.
	got = SuggestedDailyAmount(target, decimal.NewFromInt(4000), 0)
	assert.True(t, decimal.NewFromInt(6000).Equal(got))

	assert.True(t, SuggestedDailyAmount(target, target, 10).IsZero())
	assert.True(t, SuggestedDailyAmount(target, decimal.NewFromInt(12000), 10).IsZero())
}
