package dto

import (
	"time"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
)

// CreatePredictionRequest stores an externally computed risk prediction.
// The risk payload is passed through opaquely.
type CreatePredictionRequest struct {
	UserID          string                 `json:"user_id" binding:"required"`
	Score           int                    `json:"score" binding:"min=0,max=100"`
	Risks           []domain.PredictedRisk `json:"predicted_risks"`
	Features        domain.RiskFeatures    `json:"features"`
	Forecast7d      []float64              `json:"forecast_next_7_days"`
	ValidUntil      *time.Time             `json:"valid_until"`
	Source          string                 `json:"source"`
	Version         int                    `json:"version"`
	ReplaceExisting *bool                  `json:"replace_existing"`
}

// PredictionFeedbackRequest bumps one feedback counter on a prediction.
type PredictionFeedbackRequest struct {
	FeedbackType string `json:"feedback_type" binding:"required,oneof=helpful not_helpful false_positive acted_upon"`
}

// PredictionResponse defines the data returned for a prediction, with its
// validity window resolved against now.
type PredictionResponse struct {
	PredictionID     string                 `json:"predictionId"`
	UserID           string                 `json:"user_id"`
	Score            int                    `json:"score"`
	Level            string                 `json:"level"`
	Risks            []domain.PredictedRisk `json:"predicted_risks"`
	CriticalRisks    []domain.PredictedRisk `json:"critical_risks"`
	HighRisks        []domain.PredictedRisk `json:"high_risks"`
	Features         domain.RiskFeatures    `json:"features"`
	Forecast7d       []float64              `json:"forecast_next_7_days,omitempty"`
	ComputedAt       time.Time              `json:"computed_at"`
	ValidUntil       time.Time              `json:"valid_until"`
	IsValid          bool                   `json:"is_valid"`
	HoursUntilExpiry int                    `json:"hours_until_expiry"`
	Source           string                 `json:"source"`
	Version          int                    `json:"version"`
	Feedback         domain.FeedbackFlags   `json:"feedback_flags"`
}

// PredictionHistoryResponse is recent predictions plus the score trend.
type PredictionHistoryResponse struct {
	Predictions []PredictionResponse `json:"predictions"`
	Trend       string               `json:"trend"` // stable | improving | worsening
}

// CreateAnalysisRequest stores an externally generated monthly risk analysis.
// Rupee figures arrive as produced by the agent.
type CreateAnalysisRequest struct {
	UserID string `json:"userId" binding:"required"`
	Month  string `json:"month" binding:"required"`

	BalanceTodayRupees     int64 `json:"balance_today_rupees" binding:"required"`
	BalancePlus2DaysRupees int64 `json:"balance_plus_2days_rupees"`
	BalancePlus4DaysRupees int64 `json:"balance_plus_4days_rupees"`

	CurrentSpendingRupees int64 `json:"current_spending_rupees" binding:"required"`
	NormalSpendingRupees  int64 `json:"normal_spending_rupees"`
	ExtraAmountRupees     int64 `json:"extra_amount_rupees"`

	DaysUntilZero int `json:"days_until_zero" binding:"required"`

	HighRiskCategory    string `json:"high_risk_category"`
	HighRiskHead        string `json:"high_risk_head"`
	HighRiskDescription string `json:"high_risk_description"`

	MediumRiskHead        string `json:"medium_risk_head"`
	MediumRiskDescription string `json:"medium_risk_description"`

	HighestSpendingDay         string `json:"highest_spending_day"`
	PatternDetectedHead        string `json:"pattern_detected_head"`
	PatternDetectedDescription string `json:"pattern_detected_description"`

	PredictedRisks []domain.AnalysisRisk `json:"three_predicted_risks"`
}

// AnalysisResponse is a stored analysis plus its derived flags.
type AnalysisResponse struct {
	Analysis          *domain.RiskAnalysis  `json:"analysis"`
	OverallRiskLevel  string                `json:"overallRiskLevel"`
	IsCriticalBalance bool                  `json:"isCriticalBalance"`
	HighSeverityRisks []domain.AnalysisRisk `json:"highSeverityRisks"`
}

// CriticalRiskSummaryResponse is the admin view of users currently at
// critical risk.
type CriticalRiskSummaryResponse struct {
	Count       int                  `json:"count"`
	Predictions []PredictionResponse `json:"predictions"`
}

// ToPredictionResponse converts a domain.RiskPrediction to its DTO relative
// to now.
func ToPredictionResponse(p *domain.RiskPrediction, now time.Time) PredictionResponse {
	return PredictionResponse{
		PredictionID:     p.PredictionID,
		UserID:           p.UserID,
		Score:            p.Score,
		Level:            string(p.Level),
		Risks:            p.Risks,
		CriticalRisks:    p.RisksBySeverity(domain.SeverityCritical),
		HighRisks:        p.RisksBySeverity(domain.SeverityHigh),
		Features:         p.Features,
		Forecast7d:       p.Forecast7d,
		ComputedAt:       p.ComputedAt,
		ValidUntil:       p.ValidUntil,
		IsValid:          p.IsValid(now),
		HoursUntilExpiry: p.HoursUntilExpiry(now),
		Source:           p.Source,
		Version:          p.Version,
		Feedback:         p.Feedback,
	}
}

// ToAnalysisResponse converts a domain.RiskAnalysis to its DTO.
func ToAnalysisResponse(a *domain.RiskAnalysis) AnalysisResponse {
	return AnalysisResponse{
		Analysis:          a,
		OverallRiskLevel:  a.OverallRiskLevel(),
		IsCriticalBalance: a.IsCriticalBalance(),
		HighSeverityRisks: a.HighSeverityRisks(),
	}
}
