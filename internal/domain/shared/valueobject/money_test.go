package valueobject

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(12345, CurrencyUSD)
	require.NoError(t, err)
	assert.Equal(t, Amount(12345), m.Amount())
	assert.Equal(t, CurrencyUSD, m.Currency())
}

func TestNewMoney_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		amount   Amount
		currency Currency
	}{
		{"negative amount", -1, CurrencyUSD},
		{"lowercase code", 100, Currency("usd")},
		{"short code", 100, Currency("US")},
		{"empty code", 100, Currency("")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewMoney(tc.amount, tc.currency)
			assert.Error(t, err)
		})
	}
}

func TestMoney_Add(t *testing.T) {
	a := MustMoney(100, CurrencyUSD)
	b := MustMoney(250, CurrencyUSD)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, Amount(350), sum.Amount())

	_, err = a.Add(MustMoney(100, CurrencyEUR))
	assert.Error(t, err)
}

func TestMoney_Subtract(t *testing.T) {
	a := MustMoney(250, CurrencyUSD)
	b := MustMoney(100, CurrencyUSD)

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, Amount(150), diff.Amount())

	_, err = a.Subtract(MustMoney(100, CurrencyJPY))
	assert.Error(t, err)
}

func TestMoney_Equals(t *testing.T) {
	assert.True(t, MustMoney(100, CurrencyUSD).Equals(MustMoney(100, CurrencyUSD)))
	assert.False(t, MustMoney(100, CurrencyUSD).Equals(MustMoney(101, CurrencyUSD)))
	assert.False(t, MustMoney(100, CurrencyUSD).Equals(MustMoney(100, CurrencyEUR)))
}

func TestMoney_IsZero(t *testing.T) {
	assert.True(t, ZeroMoney(CurrencyUSD).IsZero())
	assert.False(t, MustMoney(1, CurrencyUSD).IsZero())
}

func TestRoundHalfUpRatio(t *testing.T) {
	tests := []struct {
		name        string
		amount      Amount
		numerator   int64
		denominator int64
		expected    Amount
	}{
		{"exact division", 100, 50, 100, 50},
		{"midpoint rounds up", 5, 50, 100, 3},       // 2.5
		{"just below midpoint rounds down", 249, 1, 100, 2}, // 2.49
		{"just above midpoint rounds up", 251, 1, 100, 3},   // 2.51
		{"zero amount", 0, 75, 100, 0},
		{"zero numerator", 1000, 0, 100, 0},
		{"identity", 12345, 100, 100, 12345},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, RoundHalfUpRatio(tc.amount, tc.numerator, tc.denominator))
		})
	}
}

func TestRoundHalfUpRatio_LargeAmounts(t *testing.T) {
	// Products near the int64 limit must not wrap.
	base := Amount(1_000_000_000_000_000)
	assert.Equal(t, base, ApplyBasisPoints(base, 10000))
	assert.Equal(t, Amount(190_000_000_000_000), ApplyBasisPoints(base, 1900))

	limit := Amount(math.MaxInt64)
	assert.Equal(t, limit, ApplyBasisPoints(limit, 10000))
	assert.Equal(t, limit, ApplyPercentage(limit, 100))
}

func TestApplyPercentage_IdentityAtFull(t *testing.T) {
	for _, amount := range []Amount{0, 1, 3, 7, 99, 12345, 999999999999} {
		assert.Equal(t, amount, ApplyPercentage(amount, 100))
	}
}

func TestApplyPercentage_Bounds(t *testing.T) {
	// 0 <= adjusted <= amount for every p in [0, 100]
	for _, amount := range []Amount{0, 1, 99, 100, 12345} {
		for p := 0; p <= 100; p++ {
			adjusted := ApplyPercentage(amount, p)
			assert.GreaterOrEqual(t, adjusted, Amount(0))
			assert.LessOrEqual(t, adjusted, amount)
		}
	}
}

func TestApplyBasisPoints(t *testing.T) {
	tests := []struct {
		name     string
		amount   Amount
		rateBps  int64
		expected Amount
	}{
		{"twenty percent", 10000, 2000, 2000},
		{"zero rate", 10000, 0, 0},
		{"full rate is identity", 10000, 10000, 10000},
		{"above full rate", 10000, 15000, 15000},
		{"midpoint rounds up", 25, 1000, 3}, // 2.5
		{"rounds down", 24, 1000, 2},        // 2.4
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ApplyBasisPoints(tc.amount, tc.rateBps))
		})
	}
}
