package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	"github.com/gigpaisa/gigpaisa_backend/internal/utils/budgeting"
)

// CreateJarRequest defines the data needed to create a savings jar.
// Target is in rupees.
type CreateJarRequest struct {
	Title    string          `json:"title" binding:"required"`
	Target   decimal.Decimal `json:"target" binding:"required"`
	Deadline time.Time       `json:"deadline" binding:"required"`
	Icon     string          `json:"icon"`
	Color    string          `json:"color"`
	Bg       string          `json:"bg"`
}

// DepositRequest is a single jar deposit in rupees.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// JarDepositResponse is one entry of a jar's deposit history.
type JarDepositResponse struct {
	DepositID string          `json:"depositId"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
}

// JarResponse defines the data returned for a savings jar, including the
// derived pacing fields.
type JarResponse struct {
	JarID        string          `json:"id"`
	Title        string          `json:"title"`
	Target       decimal.Decimal `json:"target"`
	Saved        decimal.Decimal `json:"saved"`
	Deadline     time.Time       `json:"deadline"`
	Status       string          `json:"status"`
	Icon         string          `json:"icon"`
	Color        string          `json:"color"`
	Bg           string          `json:"bg"`
	SuggestedAmt decimal.Decimal `json:"suggested_amt"`
	DeadlineDays int             `json:"deadline_days"`

	Deposits []JarDepositResponse `json:"transactions,omitempty"`
}

// DepositResponse is the outcome of a deposit: the updated jar plus the
// remaining unallocated cash in rupees.
type DepositResponse struct {
	Jar             JarResponse     `json:"jar"`
	UnallocatedCash decimal.Decimal `json:"unallocatedCash"`
}

// ToJarResponse converts a domain.SavingsJar to its DTO, computing the
// derived fields relative to now.
func ToJarResponse(jar *domain.SavingsJar, now time.Time) JarResponse {
	daysLeft := budgeting.JarDaysLeft(jar.Deadline, now)
	deposits := make([]JarDepositResponse, len(jar.Deposits))
	for i, d := range jar.Deposits {
		deposits[i] = JarDepositResponse{DepositID: d.DepositID, Amount: d.Amount, Date: d.Date}
	}
	return JarResponse{
		JarID:        jar.JarID,
		Title:        jar.Title,
		Target:       jar.Target,
		Saved:        jar.Saved,
		Deadline:     jar.Deadline,
		Status:       string(jar.Status),
		Icon:         jar.Icon,
		Color:        jar.Color,
		Bg:           jar.Bg,
		SuggestedAmt: budgeting.SuggestedDailyAmount(jar.Target, jar.Saved, daysLeft),
		DeadlineDays: daysLeft,
		Deposits:     deposits,
	}
}

// ToJarResponses converts a slice of domain.SavingsJar to []JarResponse.
func ToJarResponses(jars []domain.SavingsJar, now time.Time) []JarResponse {
	responses := make([]JarResponse, len(jars))
	for i, jar := range jars {
		responses[i] = ToJarResponse(&jar, now)
	}
	return responses
}
