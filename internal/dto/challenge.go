package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	"github.com/gigpaisa/gigpaisa_backend/internal/utils"
)

// CompleteChallengeRequest finishes an active daily challenge. An absent
// actualAmountPaise defaults to the challenge's own amount.
type CompleteChallengeRequest struct {
	ActualAmountPaise *int64 `json:"actualAmountPaise" binding:"omitempty,gte=0"`
}

// ChallengeResponse defines the data returned for a daily challenge.
type ChallengeResponse struct {
	ChallengeID string     `json:"challengeId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Status      string     `json:"status"`
	Icon        string     `json:"icon,omitempty"`
	Color       string     `json:"color,omitempty"`
	BtnText     string     `json:"btnText,omitempty"`
	AmountPaise int64      `json:"amountPaise"`
	RewardPaise int64      `json:"rewardPaise"`
	Difficulty  string     `json:"difficulty,omitempty"`
	Priority    int        `json:"priority"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// DashboardFigures are the user's headline totals in rupees, returned after a
// challenge completion.
type DashboardFigures struct {
	TotalIncome     decimal.Decimal `json:"totalIncome"`
	TotalExpenses   decimal.Decimal `json:"totalExpenses"`
	TotalSavings    decimal.Decimal `json:"totalSavings"`
	UnallocatedCash decimal.Decimal `json:"unallocatedCash"`
	MonthlySavings  decimal.Decimal `json:"monthlySavings"`
	MonthlyDeposits int             `json:"monthlyTransactions"`
}

// CompleteChallengeResponse is the full completion outcome: the challenge,
// the reward transaction, the rewards jar and refreshed dashboard figures.
type CompleteChallengeResponse struct {
	Message           string              `json:"message"`
	Challenge         ChallengeResponse   `json:"challenge"`
	RewardTransaction TransactionResponse `json:"savingsTransaction"`
	Jar               JarResponse         `json:"jar"`
	Dashboard         DashboardFigures    `json:"dashboard"`
}

// ChallengeStatsResponse are the per-user completion counters.
type ChallengeStatsResponse struct {
	Today                int             `json:"today"`
	ThisWeek             int             `json:"thisWeek"`
	ThisMonth            int             `json:"thisMonth"`
	MonthlyRewardsEarned decimal.Decimal `json:"monthlyRewardsEarned"`
}

// ToChallengeResponse converts a domain.DailyChallenge to its DTO.
func ToChallengeResponse(c *domain.DailyChallenge) ChallengeResponse {
	resp := ChallengeResponse{
		ChallengeID: c.ChallengeID,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Status:      string(c.Status),
		Icon:        c.Icon,
		Color:       c.Color,
		BtnText:     c.BtnText,
		AmountPaise: c.AmountPaise,
		RewardPaise: c.RewardPaise,
		Difficulty:  c.Difficulty,
		Priority:    c.Priority,
	}
	if c.Completion != nil {
		resp.CompletedAt = &c.Completion.CompletedAt
	}
	return resp
}

// ToChallengeResponses converts a slice of domain.DailyChallenge to its DTOs.
func ToChallengeResponses(challenges []domain.DailyChallenge) []ChallengeResponse {
	responses := make([]ChallengeResponse, len(challenges))
	for i, c := range challenges {
		responses[i] = ToChallengeResponse(&c)
	}
	return responses
}

// ToChallengeStatsResponse converts domain.ChallengeStats to its DTO.
func ToChallengeStatsResponse(s *domain.ChallengeStats) ChallengeStatsResponse {
	return ChallengeStatsResponse{
		Today:                s.Today,
		ThisWeek:             s.ThisWeek,
		ThisMonth:            s.ThisMonth,
		MonthlyRewardsEarned: utils.PaiseToRupees(s.MonthlyRewardsPaise),
	}
}
