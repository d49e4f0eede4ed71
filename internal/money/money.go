// Package money provides an exact decimal money value with a currency tag.
// Balances and transaction amounts must never pass through floating point,
// so all arithmetic is delegated to shopspring/decimal.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrCurrencyMismatch is returned when combining values of different currencies.
	ErrCurrencyMismatch = errors.New("mismatched currencies")

	// ErrTooPrecise is returned when an amount carries more decimal places
	// than the currency's minor unit allows.
	ErrTooPrecise = errors.New("amount exceeds currency precision")
)

// minorUnits maps an ISO currency code to its number of decimal places.
// Currencies not listed here default to two.
var minorUnits = map[string]int32{
	"EUR": 2,
	"GBP": 2,
	"USD": 2,
	"JPY": 0,
}

// Scale returns the minor-unit scale for the given currency code.
func Scale(currency string) int32 {
	if s, ok := minorUnits[currency]; ok {
		return s
	}
	return 2
}

// Money is an immutable amount of a single currency.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// New builds a Money value, rejecting amounts finer than the currency scale.
func New(amount decimal.Decimal, currency string) (Money, error) {
	if amount.Exponent() < -Scale(currency) {
		return Money{}, fmt.Errorf("%w: %s has at most %d decimal places", ErrTooPrecise, currency, Scale(currency))
	}
	return Money{Amount: amount, Currency: currency}, nil
}

// Parse builds a Money value from its decimal string representation.
func Parse(s, currency string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return New(d, currency)
}

// MustParse is Parse for constants and tests; it panics on invalid input.
func MustParse(s, currency string) Money {
	m, err := Parse(s, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// Zero returns the zero value of the given currency.
func Zero(currency string) Money {
	return Money{Amount: decimal.Zero, Currency: currency}
}

// Add returns m + other, failing on a currency mismatch.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// Sub returns m - other, failing on a currency mismatch.
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}, nil
}

// Cmp compares m against other (-1, 0, 1), failing on a currency mismatch.
func (m Money) Cmp(other Money) (int, error) {
	if m.Currency != other.Currency {
		return 0, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return m.Amount.Cmp(other.Amount), nil
}

// Equal reports whether the two values have the same currency and amount.
func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.Amount.IsPositive()
}

// IsNegative reports whether the amount is strictly less than zero.
func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// String renders the amount at the currency's minor-unit scale, e.g. "1500.00 EUR".
func (m Money) String() string {
	return m.Amount.StringFixed(Scale(m.Currency)) + " " + m.Currency
}
