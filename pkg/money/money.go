// Package money provides the monetary value object used by the ledger.
//
// Invariants:
//   - Amount is always stored in the smallest currency unit (e.g., cents for USD).
//   - Currency code must be a 3-letter uppercase ISO 4217 code.
//   - All arithmetic operations require matching currencies.
package money

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
)

// Amount represents a monetary amount as an integer in the
// smallest currency unit (e.g., cents for USD).
type Amount = int64

// Code represents a currency code (e.g., "USD", "EUR").
type Code string

// Common currency codes
const (
	USD Code = "USD" // US Dollar
	EUR Code = "EUR" // Euro
	GBP Code = "GBP" // British Pound
)

// IsValid checks if the currency code is a valid 3-letter uppercase code.
func (c Code) IsValid() bool {
	if len(c) != 3 {
		return false
	}
	return c[0] >= 'A' && c[0] <= 'Z' &&
		c[1] >= 'A' && c[1] <= 'Z' &&
		c[2] >= 'A' && c[2] <= 'Z'
}

// String returns the string representation of the currency code.
func (c Code) String() string { return string(c) }

// ToCurrency converts a Code to a Currency with its standard decimals.
func (c Code) ToCurrency() Currency {
	// Every currency the mock ledger deals in uses 2 decimal places.
	return Currency{Code: c, Decimals: 2}
}

// Currency represents a monetary unit with its standard decimal places.
type Currency struct {
	Code     Code // 3-letter ISO 4217 code (e.g., "USD")
	Decimals int  // Number of decimal places (0-8)
}

// IsValid checks if the currency is valid.
func (c Currency) IsValid() bool {
	return c.Code.IsValid() && c.Decimals >= 0 && c.Decimals <= 8
}

// String returns the currency code as a string.
func (c Currency) String() string { return string(c.Code) }

// DefaultCurrency is the currency wallets are denominated in unless the
// caller asks for something else.
var DefaultCurrency = USD.ToCurrency()

// Money represents a monetary value in a specific currency.
type Money struct {
	amount   Amount
	currency Currency
}

// Zero creates a Money object with zero amount in the given currency.
func Zero(c Currency) Money {
	return Money{amount: 0, currency: c}
}

// New creates a new Money value object from an amount in the main currency
// unit (e.g., dollars for USD).
// Invariants enforced:
//   - Currency must be valid.
//   - Amount must be a usable number (no NaN or Inf) and must fit in the
//     smallest-unit integer range.
//
// Returns Money or an error if any invariant is violated.
func New(amount float64, currency Currency) (Money, error) {
	if !currency.IsValid() {
		return Money{}, fmt.Errorf("%w: %v", ErrInvalidCurrency, currency)
	}
	smallest, err := toSmallestUnit(amount, currency)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: smallest, currency: currency}, nil
}

// NewFromSmallestUnit creates a Money object from the smallest currency unit.
// Used for hydrating stored balances.
func NewFromSmallestUnit(amount int64, currency Currency) (Money, error) {
	if !currency.IsValid() {
		return Money{}, fmt.Errorf("%w: %v", ErrInvalidCurrency, currency)
	}
	return Money{amount: amount, currency: currency}, nil
}

// Must creates a Money object or panics. Intended for constants and tests.
func Must(amount float64, currency Currency) Money {
	m, err := New(amount, currency)
	if err != nil {
		panic(fmt.Sprintf("money.Must(%v, %v): %v", amount, currency, err))
	}
	return m
}

// Amount returns the amount in the smallest currency unit.
func (m Money) Amount() Amount { return m.amount }

// AmountFloat returns the amount as a float64 in the main currency unit.
func (m Money) AmountFloat() float64 {
	amount := new(big.Rat).SetInt64(m.amount)
	divisor := new(big.Rat).SetFloat64(math.Pow10(m.currency.Decimals))
	result := new(big.Rat).Quo(amount, divisor)
	f, _ := result.Float64()
	return f
}

// Currency returns the currency of the Money object.
func (m Money) Currency() Currency { return m.currency }

// CurrencyCode returns the currency code of the Money object.
func (m Money) CurrencyCode() Code { return m.currency.Code }

// Add returns a new Money object with the sum of amounts.
// Invariants enforced:
//   - Currencies must match.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf(
			"%w: %s and %s",
			ErrMismatchedCurrencies, m.currency.Code, other.currency.Code,
		)
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Subtract returns a new Money object with the difference of amounts.
// The result can be negative.
// Invariants enforced:
//   - Currencies must match.
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf(
			"%w: %s and %s",
			ErrMismatchedCurrencies, m.currency.Code, other.currency.Code,
		)
	}
	return Money{amount: m.amount - other.amount, currency: m.currency}, nil
}

// Multiply multiplies the amount by a scalar factor, rounding to the nearest
// smallest currency unit. This is how percentage fees are computed.
// Invariants enforced:
//   - Factor must not be negative.
//   - Result must not overflow int64.
func (m Money) Multiply(factor float64) (Money, error) {
	if factor < 0 {
		return Money{}, fmt.Errorf("factor cannot be negative: %v", factor)
	}
	amount := new(big.Rat).SetInt64(m.amount)
	f := new(big.Rat).SetFloat64(factor)
	result := new(big.Rat).Mul(amount, f)

	resultFloat, _ := result.Float64()
	if resultFloat > float64(math.MaxInt64) || resultFloat < float64(math.MinInt64) {
		return Money{}, fmt.Errorf("multiplication result would overflow")
	}
	rounded := int64(math.Round(resultFloat))
	return Money{amount: rounded, currency: m.currency}, nil
}

// GreaterThan reports whether m > other.
// Invariants enforced:
//   - Currencies must match.
func (m Money) GreaterThan(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, fmt.Errorf(
			"%w: %s and %s",
			ErrMismatchedCurrencies, m.currency.Code, other.currency.Code,
		)
	}
	return m.amount > other.amount, nil
}

// LessThan reports whether m < other.
// Invariants enforced:
//   - Currencies must match.
func (m Money) LessThan(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, fmt.Errorf(
			"%w: %s and %s",
			ErrMismatchedCurrencies, m.currency.Code, other.currency.Code,
		)
	}
	return m.amount < other.amount, nil
}

// Equals reports whether two Money objects have the same amount and currency.
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount == other.amount
}

// IsSameCurrency reports whether both objects share a currency.
func (m Money) IsSameCurrency(other Money) bool {
	return m.currency == other.currency
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool { return m.amount > 0 }

// IsNegative reports whether the amount is less than zero.
func (m Money) IsNegative() bool { return m.amount < 0 }

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.amount == 0 }

// String returns a string representation like "49.75 USD".
func (m Money) String() string {
	return fmt.Sprintf("%.*f %s", m.currency.Decimals, m.AmountFloat(), m.currency.Code)
}

// MarshalJSON encodes the value the way the ledger document stores it:
// a main-unit decimal number plus a currency code.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"amount":   m.AmountFloat(),
		"currency": m.currency.Code,
	})
}

// UnmarshalJSON decodes a main-unit decimal number plus a currency code.
func (m *Money) UnmarshalJSON(data []byte) error {
	var aux struct {
		Amount   float64 `json:"amount"`
		Currency Code    `json:"currency"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	decoded, err := New(aux.Amount, aux.Currency.ToCurrency())
	if err != nil {
		return err
	}
	*m = decoded
	return nil
}

// toSmallestUnit converts a float64 amount to the smallest currency unit.
// big.Rat arithmetic avoids accumulating binary floating-point error before
// the final rounding step.
func toSmallestUnit(amount float64, currency Currency) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	factor := new(big.Rat).SetFloat64(math.Pow10(currency.Decimals))
	amountRat := new(big.Rat).SetFloat64(amount)
	result := new(big.Rat).Mul(amountRat, factor)

	resultFloat, _ := result.Float64()
	if resultFloat > float64(math.MaxInt64) || resultFloat < float64(math.MinInt64) {
		return 0, ErrAmountExceedsMaxSafeInt
	}
	return int64(math.Round(resultFloat)), nil
}
