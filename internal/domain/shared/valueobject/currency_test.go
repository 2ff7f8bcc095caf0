package valueobject

import (
	"testing"

	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrency_IsWellFormed(t *testing.T) {
	tests := []struct {
		code     Currency
		expected bool
	}{
		{CurrencyUSD, true},
		{Currency("ZZZ"), true}, // well-formed but unknown
		{Currency("usd"), false},
		{Currency("US"), false},
		{Currency("USDT"), false},
		{Currency(""), false},
		{Currency("U$D"), false},
	}

	for _, tc := range tests {
		t.Run(string(tc.code), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.code.IsWellFormed())
		})
	}
}

func TestISOCurrencyCatalog_Precision(t *testing.T) {
	catalog := NewISOCurrencyCatalog()

	tests := []struct {
		code     Currency
		expected int32
	}{
		{CurrencyUSD, 2},
		{CurrencyEUR, 2},
		{CurrencyGBP, 2},
		{CurrencyAUD, 2},
		{CurrencyJPY, 0},
		{Currency("KRW"), 0},
		{Currency("VND"), 0},
		{CurrencyBHD, 3},
		{Currency("JOD"), 3},
		{Currency("KWD"), 3},
		{Currency("OMR"), 3},
		{Currency("TND"), 3},
	}

	for _, tc := range tests {
		t.Run(string(tc.code), func(t *testing.T) {
			precision, err := catalog.Precision(tc.code)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, precision)
		})
	}
}

func TestISOCurrencyCatalog_UnknownCurrency(t *testing.T) {
	catalog := NewISOCurrencyCatalog()

	for _, code := range []Currency{"ZZZ", "ABC", "", "usd"} {
		_, err := catalog.Precision(code)
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "UNKNOWN_CURRENCY", domainErr.Code)
	}
}

func TestISOCurrencyCatalog_Known(t *testing.T) {
	catalog := NewISOCurrencyCatalog()

	assert.True(t, catalog.Known(CurrencyUSD))
	assert.True(t, catalog.Known(CurrencyJPY))
	assert.True(t, catalog.Known(CurrencyBHD))
	assert.False(t, catalog.Known(Currency("ZZZ")))
}

func TestISOCurrencyCatalog_SupportedCurrencies(t *testing.T) {
	catalog := NewISOCurrencyCatalog()
	codes := catalog.SupportedCurrencies()

	require.NotEmpty(t, codes)
	for _, code := range codes {
		assert.True(t, catalog.Known(code))
		assert.True(t, code.IsWellFormed())
	}
}
