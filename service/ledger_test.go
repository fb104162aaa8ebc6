package service

import (
	"testing"
	"time"

	"bankist/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func movs(amounts ...string) []model.Movement {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.Movement, len(amounts))
	for i, a := range amounts {
		out[i] = model.Movement{Amount: decimal.RequireFromString(a), Date: base.AddDate(0, 0, i)}
	}
	return out
}

func TestSummary(t *testing.T) {
	m := movs("200", "-100", "100", "79.97")
	rate := decimal.RequireFromString("1.2")

	assert.Equal(t, "279.97", Balance(m).String())
	assert.Equal(t, "379.97", TotalIn(m).String())
	assert.Equal(t, "-100", TotalOut(m).String())
	// 79.97 pays 0.95964 and is left out
	assert.True(t, TotalInterest(m, rate).Equal(decimal.RequireFromString("3.6")))
}

func TestTotalInterest_SmallDepositsExcluded(t *testing.T) {
	got := TotalInterest(movs("200", "-50", "100"), decimal.RequireFromString("1.2"))
	assert.True(t, got.Equal(decimal.RequireFromString("3.6")), got.String())

	// 50 pays 0.6 and is left out
	got = TotalInterest(movs("200", "50"), decimal.RequireFromString("1.2"))
	assert.True(t, got.Equal(decimal.RequireFromString("2.4")), got.String())
}

func TestSummary_EmptyLedger(t *testing.T) {
	assert.True(t, Balance(nil).IsZero())
	assert.True(t, TotalIn(nil).IsZero())
	assert.True(t, TotalOut(nil).IsZero())
	assert.True(t, TotalInterest(nil, decimal.NewFromInt(1)).IsZero())
}

func TestTotalInterest_SeedAccount(t *testing.T) {
	m := movs("200", "455.23", "-306.5", "25000", "-642.21", "-133.9", "79.97", "1300")
	got := TotalInterest(m, decimal.RequireFromString("1.2"))
	assert.Equal(t, "323.46276", got.String())
	assert.Equal(t, "25952.59", Balance(m).String())
}

func TestSortByAmount(t *testing.T) {
	m := movs("200", "-50", "10", "-50", "300")

	sorted := SortByAmount(m)
	amounts := make([]string, len(sorted))
	for i, s := range sorted {
		amounts[i] = s.Amount.String()
	}
	assert.Equal(t, []string{"-50", "-50", "10", "200", "300"}, amounts)

	// equal amounts keep ledger order and each amount keeps its date
	assert.Equal(t, m[1].Date, sorted[0].Date)
	assert.Equal(t, m[3].Date, sorted[1].Date)
	assert.Equal(t, m[4].Date, sorted[4].Date)

	// input untouched
	assert.Equal(t, "200", m[0].Amount.String())
}

func TestBuildSnapshot_ToggleTwiceRestoresLedgerOrder(t *testing.T) {
	acc := &model.Account{
		Owner:        "Alena Fleming",
		Username:     "af",
		InterestRate: decimal.RequireFromString("1.2"),
		Currency:     "EUR",
		Movements:    movs("200", "-50", "10"),
	}

	sorted := BuildSnapshot(acc, true)
	assert.True(t, sorted.Sorted)
	assert.Equal(t, "-50", sorted.Movements[0].String())

	unsorted := BuildSnapshot(acc, false)
	assert.False(t, unsorted.Sorted)
	assert.Len(t, unsorted.MovementsDates, len(unsorted.Movements))
	for i, m := range acc.Movements {
		assert.True(t, m.Amount.Equal(unsorted.Movements[i]))
		assert.Equal(t, m.Date, unsorted.MovementsDates[i])
	}
	assert.Equal(t, sorted.Balance.String(), unsorted.Balance.String())
}

func TestHasQualifyingDeposit(t *testing.T) {
	ratio := decimal.RequireFromString("0.1")
	m := movs("200", "-300")

	assert.True(t, HasQualifyingDeposit(m, decimal.NewFromInt(2000), ratio))
	assert.False(t, HasQualifyingDeposit(m, decimal.NewFromInt(2001), ratio))
	assert.False(t, HasQualifyingDeposit(nil, decimal.NewFromInt(1), ratio))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  error
	}{
		{"100", "100", nil},
		{" 12.50 ", "12.5", nil},
		{"-3", "-3", nil},
		{"", "0", ErrInvalidNumber},
		{"   ", "0", ErrInvalidNumber},
		{"abc", "0", ErrInvalidNumber},
		{"12abc", "0", ErrInvalidNumber},
		{"1e3", "1000", nil},
		{"0.005", "0.005", nil},
		{"1e900000000", "0", ErrInvalidNumber},
		{"-1e900000000", "0", ErrInvalidNumber},
		{"1e-900000000", "0", ErrInvalidNumber},
		{"1e16", "0", ErrInvalidNumber},
		{"123456789012345678901234567890123", "0", ErrInvalidNumber},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFormatCountdown(t *testing.T) {
	assert.Equal(t, "02:00", FormatCountdown(120))
	assert.Equal(t, "01:05", FormatCountdown(65))
	assert.Equal(t, "00:00", FormatCountdown(0))
	assert.Equal(t, "00:00", FormatCountdown(-4))
}
