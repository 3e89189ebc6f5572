package domain

import "time"

// ChallengeStatus is the lifecycle state of a daily challenge.
type ChallengeStatus string

const (
	ChallengeActive    ChallengeStatus = "active"
	ChallengeCompleted ChallengeStatus = "completed"
	ChallengeExpired   ChallengeStatus = "expired"
)

// ChallengeCompletion records how an accepted challenge was finished.
type ChallengeCompletion struct {
	ActualAmountPaise int64     `json:"actualAmountPaise"`
	CompletedAt       time.Time `json:"completedAt"`
}

// DailyChallenge is an AI-assigned micro-task. The generation happens outside
// this system; assignments arrive pre-built and are completed here.
type DailyChallenge struct {
	ChallengeID string `json:"challengeId"`
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`

	Status ChallengeStatus `json:"status"`

	Icon    string `json:"icon,omitempty"`
	Color   string `json:"color,omitempty"`
	BtnText string `json:"btnText,omitempty"`

	AmountPaise int64  `json:"amountPaise"`
	RewardPaise int64  `json:"rewardPaise"`
	Difficulty  string `json:"difficulty,omitempty"`
	Priority    int    `json:"priority"`

	StreakContribution int  `json:"streakContribution"`
	IsExpired          bool `json:"isExpired"`

	Completion *ChallengeCompletion `json:"completionData,omitempty"`

	AIGeneratedAt *time.Time `json:"aiGeneratedAt,omitempty"`
	DateAssigned  time.Time  `json:"dateAssigned"`
	AuditFields
}

// ChallengeStats are the per-user completion counters.
type ChallengeStats struct {
	Today                int   `json:"today"`
	ThisWeek             int   `json:"thisWeek"`
	ThisMonth            int   `json:"thisMonth"`
	MonthlyRewardsPaise  int64 `json:"-"`
	MonthlyRewardsRupees int64 `json:"monthlyRewardsEarned"`
}
