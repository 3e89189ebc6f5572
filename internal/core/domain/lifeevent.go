package domain

import "time"

// LifeEvent is an upcoming expense-bearing event (festival, wedding, fees).
type LifeEvent struct {
	EventID           string    `json:"eventId"`
	UserID            string    `json:"userId"`
	Type              string    `json:"type"` // birthday | festival | wedding | school_fee | other
	Description       string    `json:"description,omitempty"`
	EventDate         time.Time `json:"eventDate"`
	ExpectedCostPaise int64     `json:"expectedCostPaise"`
	Status            string    `json:"status,omitempty"`
	Note              string    `json:"note,omitempty"`
	DaysUntil         int       `json:"daysUntil"`
	SavingsPlanNeeded bool      `json:"savingsPlanNeeded"`
	AuditFields
}
