package money_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/demipay/demipay/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ConvertsToSmallestUnit(t *testing.T) {
	t.Parallel()
	m, err := money.New(100.00, money.DefaultCurrency)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), m.Amount())
	assert.InEpsilon(t, 100.00, m.AmountFloat(), 1e-9)
	assert.Equal(t, money.USD, m.CurrencyCode())
}

func TestNew_RejectsUnusableNumbers(t *testing.T) {
	t.Parallel()
	_, err := money.New(math.NaN(), money.DefaultCurrency)
	assert.ErrorIs(t, err, money.ErrInvalidAmount)

	_, err = money.New(math.Inf(1), money.DefaultCurrency)
	assert.ErrorIs(t, err, money.ErrInvalidAmount)
}

func TestNew_RejectsInvalidCurrency(t *testing.T) {
	t.Parallel()
	_, err := money.New(1, money.Currency{Code: "usd", Decimals: 2})
	assert.ErrorIs(t, err, money.ErrInvalidCurrency)

	_, err = money.New(1, money.Currency{Code: "DOLLARS", Decimals: 2})
	assert.ErrorIs(t, err, money.ErrInvalidCurrency)
}

func TestMultiply_FeeLaw(t *testing.T) {
	t.Parallel()
	// fee = round(amount * 0.005) at currency precision
	cases := []struct {
		name     string
		amount   float64
		feeCents int64
	}{
		{"round exact", 50.00, 25},
		{"whole dollars", 100.00, 50},
		{"sub-cent rounds down", 0.01, 0},
		{"half cent rounds up", 1.00, 1},
		{"fractional cents", 3.33, 2},
		{"large amount", 9999999, 5000000},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := money.Must(tc.amount, money.DefaultCurrency)
			fee, err := m.Multiply(0.005)
			require.NoError(t, err)
			assert.Equal(t, tc.feeCents, fee.Amount())
		})
	}
}

func TestMultiply_RejectsNegativeFactor(t *testing.T) {
	t.Parallel()
	m := money.Must(1, money.DefaultCurrency)
	_, err := m.Multiply(-0.005)
	assert.Error(t, err)
}

func TestAddSubtract(t *testing.T) {
	t.Parallel()
	a := money.Must(100.00, money.DefaultCurrency)
	b := money.Must(50.25, money.DefaultCurrency)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(15025), sum.Amount())

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, int64(4975), diff.Amount())

	// Subtraction may go negative; callers enforce balance invariants.
	neg, err := b.Subtract(a)
	require.NoError(t, err)
	assert.True(t, neg.IsNegative())
}

func TestArithmetic_MismatchedCurrencies(t *testing.T) {
	t.Parallel()
	usd := money.Must(10, money.USD.ToCurrency())
	eur := money.Must(10, money.EUR.ToCurrency())

	_, err := usd.Add(eur)
	assert.ErrorIs(t, err, money.ErrMismatchedCurrencies)
	_, err = usd.Subtract(eur)
	assert.ErrorIs(t, err, money.ErrMismatchedCurrencies)
	_, err = usd.GreaterThan(eur)
	assert.ErrorIs(t, err, money.ErrMismatchedCurrencies)
}

func TestComparisons(t *testing.T) {
	t.Parallel()
	a := money.Must(49.75, money.DefaultCurrency)
	b := money.Must(50.00, money.DefaultCurrency)

	less, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, less)

	greater, err := b.GreaterThan(a)
	require.NoError(t, err)
	assert.True(t, greater)

	assert.True(t, a.Equals(money.Must(49.75, money.DefaultCurrency)))
	assert.False(t, a.Equals(b))
	assert.True(t, money.Zero(money.DefaultCurrency).IsZero())
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()
	original := money.Must(1250.50, money.DefaultCurrency)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded money.Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, original.Equals(decoded))
}

func TestString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "49.75 USD", money.Must(49.75, money.DefaultCurrency).String())
}
