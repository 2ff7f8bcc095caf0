package accounting

import (
	"testing"

	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amt(v int64) *valueobject.Amount {
	a := valueobject.Amount(v)
	return &a
}

func newTestEngine() *AmountsEngine {
	return NewAmountsEngine(valueobject.NewISOCurrencyCatalog())
}

// Test AmountsStatus enum

func TestAmountsStatus_IsValid(t *testing.T) {
	tests := []struct {
		status   AmountsStatus
		expected bool
	}{
		{StatusFinalized, true},
		{StatusPendingConversion, true},
		{StatusPendingConversionForTaxation, true},
		{AmountsStatus("INVALID"), false},
		{AmountsStatus(""), false},
	}

	for _, tc := range tests {
		t.Run(string(tc.status), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.status.IsValid())
		})
	}
}

func TestAmountsStatus_String(t *testing.T) {
	assert.Equal(t, "FINALIZED", StatusFinalized.String())
	assert.Equal(t, "PENDING_CONVERSION", StatusPendingConversion.String())
	assert.Equal(t, "PENDING_CONVERSION_FOR_TAXATION_PURPOSES", StatusPendingConversionForTaxation.String())
}

// Test ComputeAmounts

func TestComputeAmounts_SameCurrency(t *testing.T) {
	engine := newTestEngine()

	derived, status, err := engine.ComputeAmounts(ConversionInputs{
		OriginalAmount:    10000,
		OriginalCurrency:  valueobject.CurrencyUSD,
		DefaultCurrency:   valueobject.CurrencyUSD,
		PercentOnBusiness: 100,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusFinalized, status)

	original, ok := derived.Reporting.Original()
	require.True(t, ok)
	assert.Equal(t, valueobject.Amount(10000), original)

	adjusted, ok := derived.Reporting.Adjusted()
	require.True(t, ok)
	assert.Equal(t, valueobject.Amount(10000), adjusted)

	taxOriginal, ok := derived.Taxable.Original()
	require.True(t, ok)
	assert.Equal(t, valueobject.Amount(10000), taxOriginal)
}

func TestComputeAmounts_SameCurrency_IgnoresConvertedAmount(t *testing.T) {
	engine := newTestEngine()

	derived, status, err := engine.ComputeAmounts(ConversionInputs{
		OriginalAmount:    10000,
		OriginalCurrency:  valueobject.CurrencyUSD,
		DefaultCurrency:   valueobject.CurrencyUSD,
		ConvertedAmount:   amt(99999),
		PercentOnBusiness: 100,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusFinalized, status)
	original, _ := derived.Reporting.Original()
	assert.Equal(t, valueobject.Amount(10000), original)
}

func TestComputeAmounts_SameCurrency_TaxationFlagHasNoEffect(t *testing.T) {
	engine := newTestEngine()

	derived, status, err := engine.ComputeAmounts(ConversionInputs{
		OriginalAmount:                      10000,
		OriginalCurrency:                    valueobject.CurrencyUSD,
		DefaultCurrency:                     valueobject.CurrencyUSD,
		UseDifferentExchangeRateForTaxation: true,
		TaxationAmount:                      amt(5000),
		PercentOnBusiness:                   100,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusFinalized, status)
	taxOriginal, ok := derived.Taxable.Original()
	require.True(t, ok)
	assert.Equal(t, valueobject.Amount(10000), taxOriginal)
}

func TestComputeAmounts_ForeignCurrency_PendingConversion(t *testing.T) {
	engine := newTestEngine()

	derived, status, err := engine.ComputeAmounts(ConversionInputs{
		OriginalAmount:    10000,
		OriginalCurrency:  valueobject.CurrencyEUR,
		DefaultCurrency:   valueobject.CurrencyUSD,
		PercentOnBusiness: 100,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusPendingConversion, status)
	assert.False(t, derived.Reporting.Present())
	assert.False(t, derived.Taxable.Present())
}

func TestComputeAmounts_ForeignCurrency_Converted(t *testing.T) {
	engine := newTestEngine()

	derived, status, err := engine.ComputeAmounts(ConversionInputs{
		OriginalAmount:    8000,
		OriginalCurrency:  valueobject.CurrencyGBP,
		DefaultCurrency:   valueobject.CurrencyUSD,
		ConvertedAmount:   amt(10000),
		PercentOnBusiness: 100,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusFinalized, status)

	original, ok := derived.Reporting.Original()
	require.True(t, ok)
	assert.Equal(t, valueobject.Amount(10000), original)

	// Taxation mirrors reporting when no different rate is requested.
	taxOriginal, ok := derived.Taxable.Original()
	require.True(t, ok)
	assert.Equal(t, valueobject.Amount(10000), taxOriginal)
}

func TestComputeAmounts_ForeignCurrency_DifferentTaxationRate(t *testing.T) {
	engine := newTestEngine()

	derived, status, err := engine.ComputeAmounts(ConversionInputs{
		OriginalAmount:                      8000,
		OriginalCurrency:                    valueobject.CurrencyGBP,
		DefaultCurrency:                     valueobject.CurrencyUSD,
		ConvertedAmount:                     amt(10000),
		UseDifferentExchangeRateForTaxation: true,
		TaxationAmount:                      amt(9500),
		PercentOnBusiness:                   100,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusFinalized, status)

	original, _ := derived.Reporting.Original()
	assert.Equal(t, valueobject.Amount(10000), original)

	taxOriginal, ok := derived.Taxable.Original()
	require.True(t, ok)
	assert.Equal(t, valueobject.Amount(9500), taxOriginal)
}

func TestComputeAmounts_ForeignCurrency_PendingTaxationConversion(t *testing.T) {
	engine := newTestEngine()

	derived, status, err := engine.ComputeAmounts(ConversionInputs{
		OriginalAmount:                      8000,
		OriginalCurrency:                    valueobject.CurrencyGBP,
		DefaultCurrency:                     valueobject.CurrencyUSD,
		ConvertedAmount:                     amt(10000),
		UseDifferentExchangeRateForTaxation: true,
		PercentOnBusiness:                   100,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusPendingConversionForTaxation, status)
	assert.True(t, derived.Reporting.Present())
	assert.False(t, derived.Taxable.Present())
}

func TestComputeAmounts_PendingConversionWinsOverPendingTaxation(t *testing.T) {
	engine := newTestEngine()

	// Nothing converted at all: PENDING_CONVERSION takes priority even though
	// the taxation amount is also missing.
	_, status, err := engine.ComputeAmounts(ConversionInputs{
		OriginalAmount:                      8000,
		OriginalCurrency:                    valueobject.CurrencyGBP,
		DefaultCurrency:                     valueobject.CurrencyUSD,
		UseDifferentExchangeRateForTaxation: true,
		PercentOnBusiness:                   100,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusPendingConversion, status)
}

func TestComputeAmounts_PercentOnBusiness(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		name     string
		amount   valueobject.Amount
		percent  int
		expected valueobject.Amount
	}{
		{"three quarters", 10000, 75, 7500},
		{"full business use", 10000, 100, 10000},
		{"zero business use", 10000, 0, 0},
		{"rounds half up", 99, 50, 50},
		{"rounds down below midpoint", 33, 31, 10},
		{"midpoint rounds up", 5, 50, 3},
		{"one cent at one percent", 1, 1, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			derived, status, err := engine.ComputeAmounts(ConversionInputs{
				OriginalAmount:    tc.amount,
				OriginalCurrency:  valueobject.CurrencyUSD,
				DefaultCurrency:   valueobject.CurrencyUSD,
				PercentOnBusiness: tc.percent,
			})
			require.NoError(t, err)
			assert.Equal(t, StatusFinalized, status)

			adjusted, ok := derived.Reporting.Adjusted()
			require.True(t, ok)
			assert.Equal(t, tc.expected, adjusted)

			original, _ := derived.Reporting.Original()
			assert.Equal(t, tc.amount, original)
		})
	}
}

func TestComputeAmounts_FullBusinessUseIsExact(t *testing.T) {
	engine := newTestEngine()

	// At 100% the adjusted amount must equal the original for any value,
	// including ones that would lose precision under float arithmetic.
	for _, amount := range []valueobject.Amount{1, 3, 7, 99, 101, 12345678901} {
		derived, _, err := engine.ComputeAmounts(ConversionInputs{
			OriginalAmount:    amount,
			OriginalCurrency:  valueobject.CurrencyUSD,
			DefaultCurrency:   valueobject.CurrencyUSD,
			PercentOnBusiness: 100,
		})
		require.NoError(t, err)
		adjusted, _ := derived.Reporting.Adjusted()
		assert.Equal(t, amount, adjusted)
	}
}

func TestComputeAmounts_ValidationErrors(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		name         string
		inputs       ConversionInputs
		expectedCode string
	}{
		{
			name: "percent above 100",
			inputs: ConversionInputs{
				OriginalAmount:    100,
				OriginalCurrency:  valueobject.CurrencyUSD,
				DefaultCurrency:   valueobject.CurrencyUSD,
				PercentOnBusiness: 101,
			},
			expectedCode: "INVALID_PERCENTAGE",
		},
		{
			name: "negative percent",
			inputs: ConversionInputs{
				OriginalAmount:    100,
				OriginalCurrency:  valueobject.CurrencyUSD,
				DefaultCurrency:   valueobject.CurrencyUSD,
				PercentOnBusiness: -1,
			},
			expectedCode: "INVALID_PERCENTAGE",
		},
		{
			name: "negative original amount",
			inputs: ConversionInputs{
				OriginalAmount:    -100,
				OriginalCurrency:  valueobject.CurrencyUSD,
				DefaultCurrency:   valueobject.CurrencyUSD,
				PercentOnBusiness: 100,
			},
			expectedCode: "INVALID_AMOUNT",
		},
		{
			name: "negative converted amount",
			inputs: ConversionInputs{
				OriginalAmount:    100,
				OriginalCurrency:  valueobject.CurrencyEUR,
				DefaultCurrency:   valueobject.CurrencyUSD,
				ConvertedAmount:   amt(-1),
				PercentOnBusiness: 100,
			},
			expectedCode: "INVALID_AMOUNT",
		},
		{
			name: "negative taxation amount",
			inputs: ConversionInputs{
				OriginalAmount:                      100,
				OriginalCurrency:                    valueobject.CurrencyEUR,
				DefaultCurrency:                     valueobject.CurrencyUSD,
				ConvertedAmount:                     amt(100),
				UseDifferentExchangeRateForTaxation: true,
				TaxationAmount:                      amt(-1),
				PercentOnBusiness:                   100,
			},
			expectedCode: "INVALID_AMOUNT",
		},
		{
			name: "unknown original currency",
			inputs: ConversionInputs{
				OriginalAmount:    100,
				OriginalCurrency:  valueobject.Currency("ZZZ"),
				DefaultCurrency:   valueobject.CurrencyUSD,
				PercentOnBusiness: 100,
			},
			expectedCode: "UNKNOWN_CURRENCY",
		},
		{
			name: "unknown default currency",
			inputs: ConversionInputs{
				OriginalAmount:    100,
				OriginalCurrency:  valueobject.CurrencyUSD,
				DefaultCurrency:   valueobject.Currency("ZZZ"),
				PercentOnBusiness: 100,
			},
			expectedCode: "UNKNOWN_CURRENCY",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := engine.ComputeAmounts(tc.inputs)
			require.Error(t, err)
			domainErr, ok := err.(*shared.DomainError)
			require.True(t, ok)
			assert.Equal(t, tc.expectedCode, domainErr.Code)
		})
	}
}

func TestComputeAmounts_ZeroAmount(t *testing.T) {
	engine := newTestEngine()

	derived, status, err := engine.ComputeAmounts(ConversionInputs{
		OriginalAmount:    0,
		OriginalCurrency:  valueobject.CurrencyUSD,
		DefaultCurrency:   valueobject.CurrencyUSD,
		PercentOnBusiness: 100,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusFinalized, status)
	adjusted, _ := derived.Reporting.Adjusted()
	assert.Equal(t, valueobject.Amount(0), adjusted)
}

// Test ComputeTax

func TestComputeTax(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		name     string
		base     valueobject.Amount
		rateBps  int64
		expected valueobject.Amount
	}{
		{"twenty percent", 10000, 2000, 2000},
		{"zero rate", 10000, 0, 0},
		{"full rate", 10000, 10000, 10000},
		{"above full rate", 10000, 12500, 12500},
		{"rounds half up", 333, 1500, 50}, // 49.95
		{"exact division", 25, 2000, 5},
		{"midpoint rounds up", 25, 1000, 3}, // 2.5
		{"zero base", 0, 2000, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tax, err := engine.ComputeTax(tc.base, tc.rateBps)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, tax)
		})
	}
}

func TestComputeTax_Errors(t *testing.T) {
	engine := newTestEngine()

	_, err := engine.ComputeTax(100, -1)
	require.Error(t, err)

	_, err = engine.ComputeTax(-100, 2000)
	require.Error(t, err)
	domainErr, ok := err.(*shared.DomainError)
	require.True(t, ok)
	assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
}

// Test ComputeAmountsWithTax

func TestComputeAmountsWithTax_AppliesToReportingOriginal(t *testing.T) {
	engine := newTestEngine()
	rate := int64(2000)

	// 50% business use must not shrink the tax base: tax applies to the full
	// converted amount, not the business-adjusted one.
	result, err := engine.ComputeAmountsWithTax(ConversionInputs{
		OriginalAmount:    10000,
		OriginalCurrency:  valueobject.CurrencyUSD,
		DefaultCurrency:   valueobject.CurrencyUSD,
		PercentOnBusiness: 50,
	}, &rate)

	require.NoError(t, err)
	assert.Equal(t, StatusFinalized, result.Status)
	require.NotNil(t, result.TaxAmount)
	assert.Equal(t, valueobject.Amount(2000), *result.TaxAmount)

	adjusted, _ := result.Derived.Reporting.Adjusted()
	assert.Equal(t, valueobject.Amount(5000), adjusted)
}

func TestComputeAmountsWithTax_NoRate(t *testing.T) {
	engine := newTestEngine()

	result, err := engine.ComputeAmountsWithTax(ConversionInputs{
		OriginalAmount:    10000,
		OriginalCurrency:  valueobject.CurrencyUSD,
		DefaultCurrency:   valueobject.CurrencyUSD,
		PercentOnBusiness: 100,
	}, nil)

	require.NoError(t, err)
	assert.Nil(t, result.TaxAmount)
}

func TestComputeAmountsWithTax_PendingConversionSkipsTax(t *testing.T) {
	engine := newTestEngine()
	rate := int64(2000)

	result, err := engine.ComputeAmountsWithTax(ConversionInputs{
		OriginalAmount:    10000,
		OriginalCurrency:  valueobject.CurrencyEUR,
		DefaultCurrency:   valueobject.CurrencyUSD,
		PercentOnBusiness: 100,
	}, &rate)

	require.NoError(t, err)
	assert.Equal(t, StatusPendingConversion, result.Status)
	assert.Nil(t, result.TaxAmount)
}
