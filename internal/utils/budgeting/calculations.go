package budgeting

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
)

// Daily cashflow thresholds in paise. Net at or above the earning threshold
// marks a high earning day, net at or below the expense threshold a heavy
// expense day.
const (
	highEarningNetPaise  int64 = 50000  // ₹500
	heavyExpenseNetPaise int64 = -20000 // -₹200
)

// WeekBounds returns the Monday 00:00:00 and Sunday 23:59:59.999999999
// bounding the week that contains t, in t's location. Repeated calls with any
// date inside the same week yield identical bounds.
func WeekBounds(t time.Time) (start, end time.Time) {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -daysSinceMonday).Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return start, end
}

// WeekID renders the ISO week identifier for t, e.g. "2025-W41".
func WeekID(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// AggregateWeek folds a week's expense transactions into per-category buckets
// and summary statistics. maxBudgets supplies the per-category limits to carry
// into the result; missing entries fall back to the defaults. The returned
// buckets always cover every budget category, zero-valued where nothing was
// spent.
func AggregateWeek(transactions []domain.Transaction, maxBudgets map[domain.BudgetCategory]int64) (map[domain.BudgetCategory]domain.CategoryBudget, domain.TransactionSummary) {
	categories := make(map[domain.BudgetCategory]domain.CategoryBudget, len(domain.BudgetCategories))
	for _, c := range domain.BudgetCategories {
		maxBudget, ok := maxBudgets[c]
		if !ok {
			maxBudget = domain.DefaultMaxBudgetPaise[c]
		}
		categories[c] = domain.CategoryBudget{MaxBudgetPaise: maxBudget}
	}

	var totalSpent, largestExpense int64
	expenseCount := 0
	for _, tx := range transactions {
		if tx.Type != domain.Expense {
			continue
		}
		category := MapTransactionCategory(tx.Category, tx.Merchant, tx.Notes)
		bucket := categories[category]
		bucket.CurrentSpentPaise += tx.AmountPaise
		bucket.TransactionCount++
		categories[category] = bucket

		totalSpent += tx.AmountPaise
		expenseCount++
		if tx.AmountPaise > largestExpense {
			largestExpense = tx.AmountPaise
		}
	}

	summary := domain.TransactionSummary{
		TotalTransactions:   expenseCount,
		ExpenseTransactions: expenseCount,
		LargestExpensePaise: largestExpense,
		MostActiveCategory:  mostActiveCategory(categories),
	}
	if expenseCount > 0 {
		summary.AvgTransactionPaise = int64(math.Round(float64(totalSpent) / float64(expenseCount)))
	}
	return categories, summary
}

// mostActiveCategory picks the category with the highest transaction count.
// Ties resolve to the earliest category in the fixed order; an empty week
// resolves to food.
func mostActiveCategory(categories map[domain.BudgetCategory]domain.CategoryBudget) domain.BudgetCategory {
	best := domain.CategoryFood
	bestCount := 0
	for _, c := range domain.BudgetCategories {
		if categories[c].TransactionCount > bestCount {
			best = c
			bestCount = categories[c].TransactionCount
		}
	}
	return best
}

// BudgetUtilization is the spend-to-budget ratio as a rounded percentage.
// A zero total budget yields 0 rather than dividing by zero.
func BudgetUtilization(totalSpentPaise, totalBudgetPaise int64) int {
	if totalBudgetPaise == 0 {
		return 0
	}
	return int(math.Round(100 * float64(totalSpentPaise) / float64(totalBudgetPaise)))
}

// CategoryRiskScore scores one category bucket on a 0-100 scale. Spending
// against a zero budget is maximum risk.
func CategoryRiskScore(spentPaise, maxBudgetPaise int64) int {
	if maxBudgetPaise == 0 {
		if spentPaise > 0 {
			return 100
		}
		return 0
	}
	risk := int(math.Round(100 * float64(spentPaise) / float64(maxBudgetPaise)))
	if risk > 100 {
		risk = 100
	}
	return risk
}

// OverallRiskScore combines category risks into a single 0-100 score,
// weighting each category by its transaction count. A week with no
// transactions scores 0.
func OverallRiskScore(categories map[domain.BudgetCategory]domain.CategoryBudget) int {
	var weightedSum, totalWeight int
	for _, c := range domain.BudgetCategories {
		bucket := categories[c]
		if bucket.TransactionCount == 0 {
			continue
		}
		weightedSum += CategoryRiskScore(bucket.CurrentSpentPaise, bucket.MaxBudgetPaise) * bucket.TransactionCount
		totalWeight += bucket.TransactionCount
	}
	if totalWeight == 0 {
		return 0
	}
	score := int(math.Round(float64(weightedSum) / float64(totalWeight)))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ClassifyCashflow labels a day from its income and expense totals.
func ClassifyCashflow(incomePaise, expensePaise int64) domain.CashflowStatus {
	if incomePaise == 0 && expensePaise == 0 {
		return domain.StatusNeutral
	}
	net := incomePaise - expensePaise
	switch {
	case net >= highEarningNetPaise:
		return domain.StatusHighEarning
	case net <= heavyExpenseNetPaise:
		return domain.StatusHeavyExpense
	default:
		return domain.StatusBalanced
	}
}

// ComputeTrend compares the two most recent weekly totals (newest first) and
// reports the spending direction. Fewer than two weeks is always stable.
func ComputeTrend(weeklyTotalsPaise []int64) domain.BudgetTrend {
	trend := domain.BudgetTrend{Trend: "stable"}
	if len(weeklyTotalsPaise) == 0 {
		return trend
	}

	var sum int64
	for _, total := range weeklyTotalsPaise {
		sum += total
	}
	trend.WeeklyAverageRupees = int64(math.Round(float64(sum) / float64(len(weeklyTotalsPaise)) / 100))

	if len(weeklyTotalsPaise) < 2 {
		return trend
	}
	latest, previous := weeklyTotalsPaise[0], weeklyTotalsPaise[1]
	if previous > 0 {
		changePercent := 100 * float64(latest-previous) / float64(previous)
		trend.ChangePercent = int(math.Round(changePercent))
		if changePercent > 10 {
			trend.Trend = "increasing"
		} else if changePercent < -10 {
			trend.Trend = "decreasing"
		}
	}
	return trend
}

// JarDaysLeft counts whole days from now until the deadline, never below zero.
func JarDaysLeft(deadline, now time.Time) int {
	days := int(math.Ceil(deadline.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// DepositWithinUnallocated reports whether a jar deposit fits within the
// user's unallocated cash. A deposit equal to the whole unallocated balance
// passes; anything larger, or a non-positive amount, does not.
func DepositWithinUnallocated(deposit, unallocated decimal.Decimal) bool {
	return deposit.Sign() > 0 && !deposit.GreaterThan(unallocated)
}

// SuggestedDailyAmount spreads the remaining target over the days left,
// rounded up to the next rupee. A fully funded jar suggests zero.
func SuggestedDailyAmount(target, saved decimal.Decimal, daysLeft int) decimal.Decimal {
	remaining := target.Sub(saved)
	if remaining.Sign() <= 0 {
		return decimal.Zero
	}
	if daysLeft < 1 {
		daysLeft = 1
	}
	return remaining.Div(decimal.NewFromInt(int64(daysLeft))).Ceil()
}
