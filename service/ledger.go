package service

import (
	"slices"
	"time"

	"bankist/model"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// Balance is the exact sum of every movement.
func Balance(movements []model.Movement) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range movements {
		sum = sum.Add(m.Amount)
	}
	return sum
}

func TotalIn(movements []model.Movement) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range movements {
		if m.Amount.IsPositive() {
			sum = sum.Add(m.Amount)
		}
	}
	return sum
}

// TotalOut sums the withdrawals and is therefore zero or negative.
func TotalOut(movements []model.Movement) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range movements {
		if m.Amount.IsNegative() {
			sum = sum.Add(m.Amount)
		}
	}
	return sum
}

// TotalInterest pays rate percent on each deposit, counting only the
// deposits whose own interest reaches at least 1.
func TotalInterest(movements []model.Movement, rate decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range movements {
		if !m.Amount.IsPositive() {
			continue
		}
		interest := m.Amount.Mul(rate).Div(hundred)
		if interest.GreaterThanOrEqual(one) {
			sum = sum.Add(interest)
		}
	}
	return sum
}

func Summarize(acc *model.Account) model.Summary {
	return model.Summary{
		Balance:       Balance(acc.Movements),
		TotalIn:       TotalIn(acc.Movements),
		TotalOut:      TotalOut(acc.Movements),
		TotalInterest: TotalInterest(acc.Movements, acc.InterestRate),
	}
}

// SortByAmount returns the movements ordered by ascending amount. Each amount keeps
// its date, equal amounts keep their ledger order, and the input is left untouched.
func SortByAmount(movements []model.Movement) []model.Movement {
	sorted := slices.Clone(movements)
	slices.SortStableFunc(sorted, func(a, b model.Movement) int {
		return a.Amount.Cmp(b.Amount)
	})
	return sorted
}

// HasQualifyingDeposit reports whether any movement is at least ratio*amount.
func HasQualifyingDeposit(movements []model.Movement, amount, ratio decimal.Decimal) bool {
	threshold := amount.Mul(ratio)
	return slices.ContainsFunc(movements, func(m model.Movement) bool {
		return m.Amount.GreaterThanOrEqual(threshold)
	})
}

// BuildSnapshot projects an account into the renderer's view. The summary is
// always recomputed from the ledger.
func BuildSnapshot(acc *model.Account, sorted bool) *model.Snapshot {
	movements := acc.Movements
	if sorted {
		movements = SortByAmount(movements)
	}

	snap := &model.Snapshot{
		Owner:          acc.Owner,
		Username:       acc.Username,
		Movements:      make([]decimal.Decimal, len(movements)),
		MovementsDates: make([]time.Time, len(movements)),
		Sorted:         sorted,
		Summary:        Summarize(acc),
		InterestRate:   acc.InterestRate,
		Currency:       acc.Currency,
		Locale:         acc.Locale,
	}
	for i, m := range movements {
		snap.Movements[i] = m.Amount
		snap.MovementsDates[i] = m.Date
	}
	return snap
}
