package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JarStatus is the lifecycle state of a savings jar.
type JarStatus string

const (
	JarActive    JarStatus = "active"
	JarCompleted JarStatus = "completed"
	JarArchived  JarStatus = "archived"
)

// JarDeposit is one entry in a jar's append-only deposit history.
// Amounts are in rupees with paise precision.
type JarDeposit struct {
	DepositID string          `json:"depositId"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
}

// SavingsJar is a goal-bounded deposit accumulator. Saved is monotonically
// non-decreasing under the deposit flow; once Saved >= Target the status
// transitions to completed. Target and Saved are rupee amounts.
type SavingsJar struct {
	JarID    string          `json:"id"`
	UserID   string          `json:"userId"`
	Title    string          `json:"title"`
	Target   decimal.Decimal `json:"target"`
	Saved    decimal.Decimal `json:"saved"`
	Deadline time.Time       `json:"deadline"`
	Status   JarStatus       `json:"status"`

	// Frontend styling, stored verbatim.
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Bg    string `json:"bg"`

	Deposits []JarDeposit `json:"transactions,omitempty"`
	AuditFields
}

// ChallengeRewardsJarTitle names the auto-created jar that collects daily
// challenge rewards.
const ChallengeRewardsJarTitle = "Challenge Rewards"
