package valueobject

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// maxExactFormatAmount bounds the float64 formatting path; above it the
// integer count of minor units is no longer exactly representable.
const maxExactFormatAmount = int64(1) << 53

// ParseAmount converts a decimal-string user input into minor units at the
// currency's precision. Grouping and decimal separators follow the locale.
// Inputs with more fractional digits than the currency allows are rejected,
// never truncated.
func ParseAmount(input string, currency Currency, catalog CurrencyCatalog, tag language.Tag) (Amount, error) {
	precision, err := catalog.Precision(currency)
	if err != nil {
		return 0, err
	}

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, shared.NewDomainError("INVALID_AMOUNT_FORMAT", "Amount is empty")
	}

	groupSeps, decSep := localeSeparators(tag)
	var b strings.Builder
	for _, r := range trimmed {
		switch {
		case r == decSep:
			b.WriteRune('.')
		case strings.ContainsRune(groupSeps, r) || r == ' ' || r == ' ' || r == ' ':
			// grouping separators carry no value
		default:
			b.WriteRune(r)
		}
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return 0, shared.NewDomainError("INVALID_AMOUNT_FORMAT", fmt.Sprintf("Not a valid amount: %q", input))
	}
	if d.Exponent() < -precision {
		return 0, shared.NewDomainError("INVALID_AMOUNT_FORMAT",
			fmt.Sprintf("Amount %q has more than %d fractional digits for %s", input, precision, currency))
	}

	scaled := d.Shift(precision)
	if !scaled.BigInt().IsInt64() {
		return 0, shared.NewDomainError("INVALID_AMOUNT_FORMAT", fmt.Sprintf("Amount %q is out of range", input))
	}
	return Amount(scaled.IntPart()), nil
}

// FormatAmount renders minor units as a decimal string with exactly the
// currency's precision digits, using locale grouping/decimal separators.
// Never scientific notation.
func FormatAmount(amount Amount, currency Currency, catalog CurrencyCatalog, tag language.Tag) (string, error) {
	precision, err := catalog.Precision(currency)
	if err != nil {
		return "", err
	}

	a := int64(amount)
	if a > maxExactFormatAmount || a < -maxExactFormatAmount {
		// Exactness beats locale grouping for astronomically large values.
		return decimal.New(a, -precision).StringFixed(precision), nil
	}

	value := decimal.New(a, -precision).InexactFloat64()
	p := message.NewPrinter(tag)
	return p.Sprintf("%v", number.Decimal(value, number.Scale(int(precision)))), nil
}

// FormatAmountPlain renders minor units as a locale-independent decimal
// string ("1234.56"), for persistence exports and logs.
func FormatAmountPlain(amount Amount, currency Currency, catalog CurrencyCatalog) (string, error) {
	precision, err := catalog.Precision(currency)
	if err != nil {
		return "", err
	}
	return decimal.New(int64(amount), -precision).StringFixed(precision), nil
}

// localeSeparators probes the locale's number formatting to discover its
// grouping and decimal separators.
func localeSeparators(tag language.Tag) (groupSeps string, decSep rune) {
	p := message.NewPrinter(tag)
	probe := p.Sprintf("%v", number.Decimal(1234567.8, number.Scale(1)))

	decSep = '.'
	var groups []rune
	var nonDigits []rune
	for _, r := range probe {
		if !unicode.IsDigit(r) {
			nonDigits = append(nonDigits, r)
		}
	}
	if len(nonDigits) > 0 {
		// the decimal separator is the last non-digit; everything before it groups
		decSep = nonDigits[len(nonDigits)-1]
		groups = nonDigits[:len(nonDigits)-1]
	}
	return string(groups), decSep
}
