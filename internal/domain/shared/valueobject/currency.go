package valueobject

import (
	"fmt"
	"sort"

	"github.com/simpleaccounting/backend/internal/domain/shared"
)

// Currency represents an ISO 4217 currency code
type Currency string

const (
	CurrencyUSD Currency = "USD" // US Dollar
	CurrencyEUR Currency = "EUR" // Euro
	CurrencyGBP Currency = "GBP" // British Pound
	CurrencyJPY Currency = "JPY" // Japanese Yen
	CurrencyAUD Currency = "AUD" // Australian Dollar
	CurrencyBHD Currency = "BHD" // Bahraini Dinar
)

// String returns the string representation of the currency code
func (c Currency) String() string {
	return string(c)
}

// IsWellFormed reports whether the code is three uppercase ASCII letters.
// A well-formed code may still be unknown to the catalog.
func (c Currency) IsWellFormed() bool {
	if len(c) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if c[i] < 'A' || c[i] > 'Z' {
			return false
		}
	}
	return true
}

// CurrencyCatalog resolves the minor-unit precision of a currency code.
// It is injected wherever money is parsed, formatted, or converted so the
// reference table never becomes hidden package state.
type CurrencyCatalog interface {
	// Precision returns the number of fractional digits (0, 2 or 3) for the
	// given code, or an UNKNOWN_CURRENCY domain error.
	Precision(code Currency) (int32, error)
	// Known reports whether the code is in the catalog.
	Known(code Currency) bool
}

// zeroDecimalCurrencies lists ISO 4217 currencies without a minor unit.
var zeroDecimalCurrencies = map[Currency]struct{}{
	"BIF": {}, "CLP": {}, "DJF": {}, "GNF": {}, "ISK": {}, "JPY": {},
	"KMF": {}, "KRW": {}, "PYG": {}, "RWF": {}, "UGX": {}, "UYI": {},
	"VND": {}, "VUV": {}, "XAF": {}, "XOF": {}, "XPF": {},
}

// threeDecimalCurrencies lists ISO 4217 currencies with a thousandth minor unit.
var threeDecimalCurrencies = map[Currency]struct{}{
	"BHD": {}, "IQD": {}, "JOD": {}, "KWD": {}, "LYD": {}, "OMR": {}, "TND": {},
}

// twoDecimalCurrencies lists the commonly traded two-decimal codes. Codes not
// present in any table are rejected rather than silently defaulted.
var twoDecimalCurrencies = map[Currency]struct{}{
	"AED": {}, "ARS": {}, "AUD": {}, "BGN": {}, "BRL": {}, "CAD": {},
	"CHF": {}, "CNY": {}, "COP": {}, "CZK": {}, "DKK": {}, "EGP": {},
	"EUR": {}, "GBP": {}, "HKD": {}, "HUF": {}, "IDR": {}, "ILS": {},
	"INR": {}, "KES": {}, "MAD": {}, "MXN": {}, "MYR": {}, "NGN": {},
	"NOK": {}, "NZD": {}, "PEN": {}, "PHP": {}, "PKR": {}, "PLN": {},
	"RON": {}, "RSD": {}, "RUB": {}, "SAR": {}, "SEK": {}, "SGD": {},
	"THB": {}, "TRY": {}, "TWD": {}, "UAH": {}, "USD": {}, "UYU": {},
	"ZAR": {},
}

// ISOCurrencyCatalog is the static ISO 4217-derived CurrencyCatalog.
type ISOCurrencyCatalog struct{}

// NewISOCurrencyCatalog creates the standard catalog.
func NewISOCurrencyCatalog() *ISOCurrencyCatalog {
	return &ISOCurrencyCatalog{}
}

// Precision returns the fractional digit count for the code.
func (ISOCurrencyCatalog) Precision(code Currency) (int32, error) {
	if _, ok := zeroDecimalCurrencies[code]; ok {
		return 0, nil
	}
	if _, ok := threeDecimalCurrencies[code]; ok {
		return 3, nil
	}
	if _, ok := twoDecimalCurrencies[code]; ok {
		return 2, nil
	}
	return 0, shared.NewDomainError("UNKNOWN_CURRENCY", fmt.Sprintf("Unknown currency code: %q", code))
}

// Known reports whether the code is in the catalog.
func (c ISOCurrencyCatalog) Known(code Currency) bool {
	_, err := c.Precision(code)
	return err == nil
}

// SupportedCurrencies returns every code in the catalog, sorted.
func (ISOCurrencyCatalog) SupportedCurrencies() []Currency {
	return SupportedCurrencies()
}

// SupportedCurrencies returns every code the standard catalog knows, sorted.
func SupportedCurrencies() []Currency {
	codes := make([]Currency, 0, len(zeroDecimalCurrencies)+len(twoDecimalCurrencies)+len(threeDecimalCurrencies))
	for code := range zeroDecimalCurrencies {
		codes = append(codes, code)
	}
	for code := range twoDecimalCurrencies {
		codes = append(codes, code)
	}
	for code := range threeDecimalCurrencies {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}
