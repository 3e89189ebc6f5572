package dto

import (
	"time"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
)

// DailyCashflowResponse defines the data returned for one day's cashflow.
type DailyCashflowResponse struct {
	UserID       string    `json:"userId"`
	Date         string    `json:"date"` // YYYY-MM-DD
	IncomePaise  int64     `json:"income"`
	ExpensePaise int64     `json:"expense"`
	NetPaise     int64     `json:"net"`
	Status       string    `json:"status"`
	LastUpdated  time.Time `json:"lastUpdated"`
}

// HeatmapParams selects the month for the cashflow heatmap.
type HeatmapParams struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=2000"`
}

// HeatmapResponse is one calendar month of day cells for the heatmap view.
type HeatmapResponse struct {
	MonthLabel string              `json:"month"` // e.g. "October 2025"
	Days       []domain.HeatmapDay `json:"days"`
}

// ToDailyCashflowResponse converts a domain.DailyCashflow to its DTO.
func ToDailyCashflowResponse(c *domain.DailyCashflow) DailyCashflowResponse {
	return DailyCashflowResponse{
		UserID:       c.UserID,
		Date:         c.Date.Format("2006-01-02"),
		IncomePaise:  c.IncomePaise,
		ExpensePaise: c.ExpensePaise,
		NetPaise:     c.NetPaise,
		Status:       string(c.Status),
		LastUpdated:  c.LastUpdated,
	}
}
