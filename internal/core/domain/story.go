package domain

import "time"

// MoneyStory is the agent-written monthly narrative for a user.
type MoneyStory struct {
	StoryID            string    `json:"storyId"`
	UserID             string    `json:"userId"`
	Month              int       `json:"month"` // 1-12
	MonthlySummHead    string    `json:"monthly_summ_head"`
	MonthlySummContent string    `json:"monthly_summ_content"`
	EarningHead        string    `json:"earning_head"`
	EarningContent     string    `json:"earning_content"`
	SpikeHeader        string    `json:"spike_header"`
	SpikeContent       string    `json:"spike_content"`
	SmartHeader        string    `json:"smart_header"`
	SmartContent       string    `json:"smart_content"`
	Timestamp          time.Time `json:"timestamp"`
}

// BiggestSpike is the dominant expense category of a month. Amount is in
// rupees as produced by the analytics job.
type BiggestSpike struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Percent  float64 `json:"percent"`
}

// MonthlySummary is the per-user-per-month aggregate written by the analytics
// pipeline. Income and expense totals are paise.
type MonthlySummary struct {
	UserID            string        `json:"userId"`
	Year              int           `json:"year"`
	Month             int           `json:"month"`
	TotalIncomePaise  int64         `json:"totalIncomePaise"`
	TotalExpensePaise int64         `json:"totalExpensePaise"`
	BiggestSpike      *BiggestSpike `json:"biggestSpike,omitempty"`
}

// StoryMetric is a current/previous pair in whole rupees.
type StoryMetric struct {
	Current  int64 `json:"current"`
	Previous int64 `json:"previous"`
	Growth   int64 `json:"growth,omitempty"`
}

// TopExpense is the month's dominant expense for the story view.
type TopExpense struct {
	Category   string `json:"category"`
	Amount     int64  `json:"amount"`
	Percentage string `json:"percentage"`
}

// VisualMetrics are the derived month-over-month figures attached to a story.
type VisualMetrics struct {
	Earnings   StoryMetric `json:"earnings"`
	Spending   StoryMetric `json:"spending"`
	Savings    StoryMetric `json:"savings"`
	TopExpense TopExpense  `json:"topExpense"`
}
