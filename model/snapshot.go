package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Summary holds the figures derived from an account's ledger.
// TotalOut stays negative; renderers show its absolute value.
type Summary struct {
	Balance       decimal.Decimal `json:"balance"`
	TotalIn       decimal.Decimal `json:"total_in"`
	TotalOut      decimal.Decimal `json:"total_out"`
	TotalInterest decimal.Decimal `json:"total_interest"`
}

// Snapshot is the immutable view handed to renderers after every refresh.
// Movements and MovementsDates are index-aligned.
type Snapshot struct {
	Owner          string            `json:"owner"`
	Username       string            `json:"username"`
	Movements      []decimal.Decimal `json:"movements"`
	MovementsDates []time.Time       `json:"movements_dates"`
	Sorted         bool              `json:"sorted"`
	Summary
	InterestRate decimal.Decimal `json:"interest_rate"`
	Currency     string          `json:"currency"`
	Locale       string          `json:"locale"`
}

// FirstName is the first whitespace-separated part of Owner.
func (s *Snapshot) FirstName() string {
	parts := strings.Fields(s.Owner)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}
