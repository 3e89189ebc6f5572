package domain

import "time"

// RiskLevel is the coarse label derived from a prediction score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// LevelForScore maps a 0-100 score to its risk level.
func LevelForScore(score int) RiskLevel {
	switch {
	case score >= 80:
		return RiskCritical
	case score >= 60:
		return RiskHigh
	case score >= 30:
		return RiskMedium
	default:
		return RiskLow
	}
}

// RiskSeverity labels an individual predicted risk item.
type RiskSeverity string

const (
	SeverityInfo     RiskSeverity = "info"
	SeverityWarning  RiskSeverity = "warning"
	SeverityHigh     RiskSeverity = "high"
	SeverityCritical RiskSeverity = "critical"
)

// PredictedRisk is one risk item inside a prediction. The payload is produced
// by an external model and stored opaquely.
type PredictedRisk struct {
	ID             string             `json:"id"`
	Severity       RiskSeverity       `json:"severity"`
	Score          int                `json:"score"`
	Message        string             `json:"message"`
	Numbers        map[string]float64 `json:"numbers,omitempty"`
	Category       string             `json:"category"` // budget category, income, expense, saving or all
	TimeWindowFrom *time.Time         `json:"timeWindowFrom,omitempty"`
	TimeWindowTo   *time.Time         `json:"timeWindowTo,omitempty"`
	Suggestion     string             `json:"suggestion,omitempty"`
	PersonaMessage map[string]string  `json:"personaMessage,omitempty"`
}

// RiskFeatures are the numeric model features kept for explainability.
type RiskFeatures struct {
	IncomeDropProb         float64 `json:"income_drop_prob"`
	ExpenseSpikeRatio      float64 `json:"expense_spike_ratio"`
	NearZeroProb           float64 `json:"near_zero_prob"`
	FestivalRisk           float64 `json:"festival_risk"`
	EMIFlag                float64 `json:"emi_flag"`
	SavingsDepletionRisk   float64 `json:"savings_depletion_risk"`
	IrregularIncomePattern float64 `json:"irregular_income_pattern"`
}

// FeedbackFlags are user reaction counters on a prediction.
type FeedbackFlags struct {
	Helpful       int `json:"helpful"`
	NotHelpful    int `json:"not_helpful"`
	FalsePositive int `json:"false_positive"`
	ActedUpon     int `json:"acted_upon"`
}

// FeedbackTypes lists the accepted feedback counter names.
var FeedbackTypes = map[string]bool{
	"helpful":        true,
	"not_helpful":    true,
	"false_positive": true,
	"acted_upon":     true,
}

// RiskPrediction is an externally computed risk assessment with a validity
// window. This system stores and serves predictions; it never computes them.
type RiskPrediction struct {
	PredictionID string          `json:"predictionId"`
	UserID       string          `json:"user_id"`
	Score        int             `json:"score"`
	Level        RiskLevel       `json:"level"`
	Risks        []PredictedRisk `json:"predicted_risks"`
	Features     RiskFeatures    `json:"features"`
	Forecast7d   []float64       `json:"forecast_next_7_days,omitempty"`
	ComputedAt   time.Time       `json:"computed_at"`
	ValidUntil   time.Time       `json:"valid_until"`
	Source       string          `json:"source"`
	Version      int             `json:"version"`
	Feedback     FeedbackFlags   `json:"feedback_flags"`
	AuditFields
}

// IsValid reports whether the prediction is still within its validity window.
func (p *RiskPrediction) IsValid(now time.Time) bool {
	return p.ValidUntil.After(now)
}

// HoursUntilExpiry returns whole hours until the prediction expires, floored
// at zero.
func (p *RiskPrediction) HoursUntilExpiry(now time.Time) int {
	diff := p.ValidUntil.Sub(now)
	if diff <= 0 {
		return 0
	}
	return int(diff.Hours())
}

// RisksBySeverity filters the embedded risk items by severity.
func (p *RiskPrediction) RisksBySeverity(severity RiskSeverity) []PredictedRisk {
	out := make([]PredictedRisk, 0)
	for _, r := range p.Risks {
		if r.Severity == severity {
			out = append(out, r)
		}
	}
	return out
}

// RisksByCategory filters the embedded risk items by category.
func (p *RiskPrediction) RisksByCategory(category string) []PredictedRisk {
	out := make([]PredictedRisk, 0)
	for _, r := range p.Risks {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// AnalysisRisk is one narrative risk inside a monthly risk analysis.
type AnalysisRisk struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	RiskLevel   string `json:"riskLevel"` // low | medium | high | critical
}

// RiskAnalysis is the externally generated monthly narrative analysis, all
// rupee figures as delivered by the agent.
type RiskAnalysis struct {
	AnalysisID string `json:"analysisId"`
	UserID     string `json:"userId"`
	Month      string `json:"month"`

	BalanceTodayRupees     int64 `json:"balance_today_rupees"`
	BalancePlus2DaysRupees int64 `json:"balance_plus_2days_rupees"`
	BalancePlus4DaysRupees int64 `json:"balance_plus_4days_rupees"`

	CurrentSpendingRupees int64 `json:"current_spending_rupees"`
	NormalSpendingRupees  int64 `json:"normal_spending_rupees"`
	ExtraAmountRupees     int64 `json:"extra_amount_rupees"`

	DaysUntilZero int `json:"days_until_zero"`

	HighRiskCategory    string `json:"high_risk_category"`
	HighRiskHead        string `json:"high_risk_head"`
	HighRiskDescription string `json:"high_risk_description"`

	MediumRiskHead        string `json:"medium_risk_head"`
	MediumRiskDescription string `json:"medium_risk_description"`

	HighestSpendingDay         string `json:"highest_spending_day"`
	PatternDetectedHead        string `json:"pattern_detected_head"`
	PatternDetectedDescription string `json:"pattern_detected_description"`

	PredictedRisks []AnalysisRisk `json:"three_predicted_risks"`

	GeneratedAt time.Time `json:"generatedAt"`
	AuditFields
}

// HighSeverityRisks returns items at high or critical level.
func (a *RiskAnalysis) HighSeverityRisks() []AnalysisRisk {
	out := make([]AnalysisRisk, 0)
	for _, r := range a.PredictedRisks {
		if r.RiskLevel == "high" || r.RiskLevel == "critical" {
			out = append(out, r)
		}
	}
	return out
}

// IsCriticalBalance reports whether the projected runway is a week or less.
func (a *RiskAnalysis) IsCriticalBalance() bool {
	return a.DaysUntilZero <= 7
}

// OverallRiskLevel combines the narrative risks and the balance runway.
func (a *RiskAnalysis) OverallRiskLevel() string {
	high := len(a.HighSeverityRisks())
	switch {
	case high >= 2 || a.DaysUntilZero <= 7:
		return "critical"
	case high == 1 || a.DaysUntilZero <= 30:
		return "high"
	default:
		return "medium"
	}
}
