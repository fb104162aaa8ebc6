package service

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	maxNumberText = 32
	maxExponent   = 15
	minExponent   = -15
)

// ParseAmount converts user-typed text into a decimal. Surrounding whitespace is
// ignored; anything else that is not a plain decimal number yields ErrInvalidNumber.
// Numbers whose magnitude or precision is out of range are rejected the same way,
// since comparing or printing them would mean materializing huge integers.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" || len(s) > maxNumberText {
		return decimal.Zero, ErrInvalidNumber
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidNumber
	}
	if exp := d.Exponent(); exp > maxExponent || exp < minExponent {
		return decimal.Zero, ErrInvalidNumber
	}
	return d, nil
}

// ParsePin parses a pin the same way as an amount, so "1111" and " 1111.0 "
// denote the same pin.
func ParsePin(text string) (decimal.Decimal, error) {
	return ParseAmount(text)
}
