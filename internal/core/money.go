// Package core holds the ledger data model and the pure functions over it.
//
// This file contains amount parsing and validation. Amounts are
// decimal.Decimal values; floats never enter the ledger.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MaxAmount is the exclusive upper bound for any single amount.
var MaxAmount = decimal.NewFromInt(1_000_000)

// ValidAmount reports whether n is usable as a transaction, target or
// contribution amount: strictly positive and below MaxAmount.
func ValidAmount(n decimal.Decimal) bool {
	return n.IsPositive() && n.LessThan(MaxAmount)
}

// ParseAmount converts raw user input to a valid amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Returns ErrInvalidAmount for non-numeric, zero, negative, or out-of-range
// input.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,34") -> 12.34, nil
//	ParseAmount("0")     -> 0, ErrInvalidAmount
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	n, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !ValidAmount(n) {
		return decimal.Zero, ErrInvalidAmount
	}
	return n, nil
}

// FormatAmount renders an amount for user-facing notification text.
func FormatAmount(n decimal.Decimal) string {
	return "$" + n.StringFixed(2)
}
