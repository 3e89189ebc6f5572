package dto

import (
	"time"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
)

// CreateLifeEventRequest defines an upcoming expense-bearing event.
type CreateLifeEventRequest struct {
	Type              string    `json:"type" binding:"required,oneof=birthday festival wedding school_fee other"`
	Description       string    `json:"description"`
	EventDate         time.Time `json:"eventDate" binding:"required"`
	ExpectedCostPaise int64     `json:"expectedCostPaise" binding:"required,gt=0"`
	Note              string    `json:"note"`
}

// LifeEventResponse mirrors domain.LifeEvent with DaysUntil resolved against
// now.
type LifeEventResponse struct {
	domain.LifeEvent
}

// ToLifeEventResponses wraps domain life events, refreshing DaysUntil.
func ToLifeEventResponses(events []domain.LifeEvent, now time.Time) []LifeEventResponse {
	responses := make([]LifeEventResponse, len(events))
	for i, e := range events {
		e.DaysUntil = int(e.EventDate.Sub(now).Hours() / 24)
		if e.DaysUntil < 0 {
			e.DaysUntil = 0
		}
		responses[i] = LifeEventResponse{e}
	}
	return responses
}
