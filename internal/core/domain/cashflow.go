package domain

import "time"

// CashflowStatus labels a day's net cash position.
type CashflowStatus string

const (
	StatusHighEarning  CashflowStatus = "high_earning"
	StatusBalanced     CashflowStatus = "balanced"
	StatusHeavyExpense CashflowStatus = "heavy_expense"
	StatusNeutral      CashflowStatus = "neutral"
)

// DailyCashflow is the derived per-user-per-day summary record. It is fully
// recomputed from that day's transactions on each upsert so it self-heals
// from missed updates.
type DailyCashflow struct {
	UserID       string         `json:"userId"`
	Date         time.Time      `json:"date"` // midnight, date component only
	IncomePaise  int64          `json:"income"`
	ExpensePaise int64          `json:"expense"`
	NetPaise     int64          `json:"net"`
	Status       CashflowStatus `json:"status"`
	LastUpdated  time.Time      `json:"lastUpdated"`
}

// HeatmapDay is one calendar day in the monthly heatmap, in whole rupees.
type HeatmapDay struct {
	Day     int            `json:"day"`
	Date    string         `json:"date"` // YYYY-MM-DD
	Income  int64          `json:"income"`
	Expense int64          `json:"expense"`
	Net     int64          `json:"net"`
	Status  CashflowStatus `json:"status"`
}
