package dto

import (
	"time"

	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
)

// CreateUserRequest registers a new user.
type CreateUserRequest struct {
	Name              string `json:"name" binding:"required"`
	Phone             string `json:"phone" binding:"required,e164"`
	Age               int    `json:"age" binding:"omitempty,gte=14,lte=100"`
	City              string `json:"city"`
	PreferredLanguage string `json:"preferred_language"`
}

// UpdateUserRequest updates profile fields. Pointers distinguish absent
// fields from zero values.
type UpdateUserRequest struct {
	Name              *string                  `json:"name"`
	Age               *int                     `json:"age" binding:"omitempty,gte=14,lte=100"`
	City              *string                  `json:"city"`
	PreferredLanguage *string                  `json:"preferred_language"`
	Permissions       *domain.Permissions      `json:"permissions"`
	WorkProfile       *domain.WorkProfile      `json:"work_profile"`
	FinancialProfile  *domain.FinancialProfile `json:"financial_profile"`
	AIContext         *domain.AIContext        `json:"ai_context"`
}

// UserResponse defines the data returned for a user profile.
type UserResponse struct {
	UserID                string                   `json:"userId"`
	Name                  string                   `json:"name"`
	Age                   int                      `json:"age,omitempty"`
	City                  string                   `json:"city,omitempty"`
	Phone                 string                   `json:"phone"`
	PreferredLanguage     string                   `json:"preferred_language"`
	OnboardingCompletedAt *time.Time               `json:"onboarding_completed_at,omitempty"`
	Permissions           domain.Permissions       `json:"permissions"`
	WorkProfile           *domain.WorkProfile      `json:"work_profile,omitempty"`
	FinancialProfile      *domain.FinancialProfile `json:"financial_profile,omitempty"`
	AIContext             *domain.AIContext        `json:"ai_context,omitempty"`
	CreatedAt             time.Time                `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:                u.UserID,
		Name:                  u.Name,
		Age:                   u.Age,
		City:                  u.City,
		Phone:                 u.Phone,
		PreferredLanguage:     u.PreferredLanguage,
		OnboardingCompletedAt: u.OnboardingCompletedAt,
		Permissions:           u.Permissions,
		WorkProfile:           u.WorkProfile,
		FinancialProfile:      u.FinancialProfile,
		AIContext:             u.AIContext,
		CreatedAt:             u.CreatedAt,
	}
}
