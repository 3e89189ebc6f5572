package dto

import (
	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
)

// StoryResponse is the latest monthly narrative joined with the derived
// month-over-month figures.
type StoryResponse struct {
	Story         *domain.MoneyStory   `json:"story"`
	VisualMetrics domain.VisualMetrics `json:"visualMetrics"`
}
