package money

import "errors"

// Common money package errors
var (
	// ErrInvalidAmount is returned when an amount is not a usable number.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrAmountExceedsMaxSafeInt is returned when an amount does not fit the
	// smallest-unit integer range.
	ErrAmountExceedsMaxSafeInt = errors.New("amount exceeds maximum safe integer value")

	// ErrInvalidCurrency is returned when a currency code is malformed.
	ErrInvalidCurrency = errors.New("invalid currency code")

	// ErrMismatchedCurrencies is returned when performing operations on money
	// with different currencies.
	ErrMismatchedCurrencies = errors.New("mismatched currencies")

	// ErrNegativeAmount is returned when an operation would result in a
	// negative amount.
	ErrNegativeAmount = errors.New("resulting amount cannot be negative")
)
