package domain

import "time"

// Permissions are the device capabilities the user granted.
type Permissions struct {
	SMSAccess     bool `json:"sms_access"`
	Notifications bool `json:"notifications"`
	Location      bool `json:"location"`
}

// WorkProfile describes the user's gig work pattern.
type WorkProfile struct {
	PrimaryWorkType        string   `json:"primary_work_type,omitempty"`
	Platforms              []string `json:"platforms,omitempty"`
	WorkDays               []string `json:"work_days,omitempty"`
	OffDays                []string `json:"off_days,omitempty"`
	TotalWeeklyHours       float64  `json:"total_weekly_hours,omitempty"`
	AvgDailyHoursWeekday   float64  `json:"avg_daily_hours_weekday,omitempty"`
	AvgDailyHoursWeekend   float64  `json:"avg_daily_hours_weekend,omitempty"`
}

// MonthlyIncome is the self-reported income estimate.
type MonthlyIncome struct {
	EstimatedAmountPaise int64    `json:"estimatedAmountPaise"`
	Stability            string   `json:"stability"` // stable | variable | unknown
	Sources              []string `json:"sources,omitempty"`
}

// FixedExpenses are the user's fixed monthly outflows in paise.
type FixedExpenses struct {
	RentPaise             int64 `json:"rentPaise"`
	ElectricityWaterPaise int64 `json:"electricity_waterPaise"`
	PhoneInternetPaise    int64 `json:"phone_internetPaise"`
	TotalPaise            int64 `json:"totalPaise"`
}

// VariableExpenses are the user's variable monthly outflows in paise.
type VariableExpenses struct {
	FoodGroceriesPaise      int64 `json:"food_groceriesPaise"`
	FuelMaintenancePaise    int64 `json:"fuel_maintenancePaise"`
	EntertainmentOtherPaise int64 `json:"entertainment_otherPaise"`
	TotalPaise              int64 `json:"totalPaise"`
}

// ProfileAnalytics is a small snapshot kept current by server jobs.
type ProfileAnalytics struct {
	WorkDaysPerWeek          float64 `json:"work_days_per_week"`
	TotalWeeklyHours         float64 `json:"total_weekly_hours"`
	EstimatedHourlyRatePaise int64   `json:"estimated_hourly_ratePaise"`
	IncomeExpenseRatio       float64 `json:"income_expense_ratio"`
	SavingsRatePercent       float64 `json:"savings_rate_percent"`
}

// FinancialProfile is the compact embedded financial snapshot.
type FinancialProfile struct {
	MonthlyIncome              MonthlyIncome    `json:"monthly_income"`
	FixedMonthlyExpenses       FixedExpenses    `json:"fixed_monthly_expenses"`
	VariableMonthlyExpenses    VariableExpenses `json:"variable_monthly_expenses"`
	TotalMonthlyExpensesPaise  int64            `json:"total_monthly_expensesPaise"`
	PotentialMonthlySavesPaise int64            `json:"potential_monthly_savingsPaise"`
	Analytics                  ProfileAnalytics `json:"analytics"`
}

// AIContext holds the prompt snippets maintained for the agent.
type AIContext struct {
	ContextService          string `json:"context_service,omitempty"`
	SavingContext           string `json:"saving_context,omitempty"`
	GoalContext             string `json:"goal_context,omitempty"`
	CurrentStatContext      string `json:"current_stat_context,omitempty"`
	DailySpendContextGoal   string `json:"daily_spend_context_goal,omitempty"`
	MonthlySpendContextGoal string `json:"monthly_spend_context_goal,omitempty"`
}

// User is the account owner; every other entity carries its UserID.
type User struct {
	UserID                string            `json:"userId"`
	Name                  string            `json:"name"`
	Age                   int               `json:"age,omitempty"`
	City                  string            `json:"city,omitempty"`
	Phone                 string            `json:"phone"`
	PreferredLanguage     string            `json:"preferred_language"`
	OnboardingCompletedAt *time.Time        `json:"onboarding_completed_at,omitempty"`
	Permissions           Permissions       `json:"permissions"`
	WorkProfile           *WorkProfile      `json:"work_profile,omitempty"`
	FinancialProfile      *FinancialProfile `json:"financial_profile,omitempty"`
	AIContext             *AIContext        `json:"ai_context,omitempty"`
	AuditFields
}
