package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement is one signed ledger entry. Deposits are positive, withdrawals negative.
type Movement struct {
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
}

type Account struct {
	Owner        string          `json:"owner"`
	Username     string          `json:"username"`
	PinHash      string          `json:"-"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	Currency     string          `json:"currency"`
	Locale       string          `json:"locale"`
	Movements    []Movement      `json:"movements"`
}

// Clone returns a copy that shares no ledger storage with a.
func (a *Account) Clone() *Account {
	cp := *a
	cp.Movements = make([]Movement, len(a.Movements))
	copy(cp.Movements, a.Movements)
	return &cp
}
