package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/bills_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the only accepted textual date form (dd/MM/yyyy).
const DateLayout = "02/01/2006"

// AmountPrecision is the number of decimal places shown for money.
const AmountPrecision = 2

// MaxAmountIntegerDigits is the number of digits allowed before the decimal
// point; together with AmountPrecision it matches the NUMERIC(14,2) column.
const MaxAmountIntegerDigits = 12

// ErrInvalidAmount is returned by ParseAmount for any rejected input.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseDate parses a dd/MM/yyyy date into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

// FormatDate renders a date in the dd/MM/yyyy layout. The zero time renders as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// FormatAmount renders an amount with a fixed two digit precision.
// Example: 12.3456 returns "12.35"
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(AmountPrecision)
}

// FormatAmountInput renders an amount for editing without losing precision:
// amounts with up to AmountPrecision decimals use the fixed form, anything
// finer (e.g. legacy rows) is shown exactly.
func FormatAmountInput(amount decimal.Decimal) string {
	if amount.Exponent() < -AmountPrecision {
		return amount.String()
	}
	return FormatAmount(amount)
}

// ParseAmount parses a non-negative amount written as plain digits with an
// optional '.' and at most AmountPrecision decimals, e.g. "150", "12.5", "0.99".
// Signs, exponents, separators other than '.', and values that do not fit
// NUMERIC(14,2) are rejected with ErrInvalidAmount.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	intPart, fracPart, hasPoint := strings.Cut(s, ".")
	if intPart == "" || len(intPart) > MaxAmountIntegerDigits {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if hasPoint && (fracPart == "" || len(fracPart) > AmountPrecision) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return decimal.NewFromString(s)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatSignedAmount renders the amount as the list shows it: expenses get a leading minus.
func FormatSignedAmount(acc domain.Account) string {
	return FormatAmount(acc.SignedAmount())
}
