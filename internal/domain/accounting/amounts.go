// Package accounting holds the bookkeeping domain: expenses, incomes,
// invoices, customers, categories, taxes, documents, and the financial
// amounts engine that derives default-currency values for them.
package accounting

import (
	"fmt"

	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
)

// AmountsStatus is the lifecycle status of an expense or income record,
// derived from which default-currency amounts are currently known.
type AmountsStatus string

const (
	// StatusFinalized means both reporting and taxable amounts are known.
	StatusFinalized AmountsStatus = "FINALIZED"
	// StatusPendingConversion means the record is in a foreign currency and
	// no converted amount has been supplied yet.
	StatusPendingConversion AmountsStatus = "PENDING_CONVERSION"
	// StatusPendingConversionForTaxation means the reporting amount is known
	// but the taxation-purpose amount is still missing.
	StatusPendingConversionForTaxation AmountsStatus = "PENDING_CONVERSION_FOR_TAXATION_PURPOSES"
)

// IsValid checks if the status is a valid AmountsStatus
func (s AmountsStatus) IsValid() bool {
	switch s {
	case StatusFinalized, StatusPendingConversion, StatusPendingConversionForTaxation:
		return true
	}
	return false
}

// String returns the string representation of AmountsStatus
func (s AmountsStatus) String() string {
	return string(s)
}

// ConversionInputs are the user-supplied fields the amounts engine derives
// everything else from. ConvertedAmount and TaxationAmount are nil while the
// user has not supplied them yet; that absence drives the status machine.
type ConversionInputs struct {
	OriginalAmount                      valueobject.Amount
	OriginalCurrency                    valueobject.Currency
	DefaultCurrency                     valueobject.Currency
	ConvertedAmount                     *valueobject.Amount
	UseDifferentExchangeRateForTaxation bool
	TaxationAmount                      *valueobject.Amount
	PercentOnBusiness                   int
}

// DerivedAmount is an optional default-currency amount carrying both the
// converted value and the business-percentage-adjusted value. The zero value
// is "absent".
type DerivedAmount struct {
	present  bool
	original valueobject.Amount
	adjusted valueobject.Amount
}

// Present reports whether the amount is known.
func (d DerivedAmount) Present() bool {
	return d.present
}

// Original returns the converted amount before business-percentage adjustment.
// The second return is false when the amount is absent.
func (d DerivedAmount) Original() (valueobject.Amount, bool) {
	return d.original, d.present
}

// Adjusted returns the amount after applying percent-on-business.
// The second return is false when the amount is absent.
func (d DerivedAmount) Adjusted() (valueobject.Amount, bool) {
	return d.adjusted, d.present
}

// KnownDerivedAmount builds a present DerivedAmount from already-computed values.
// Used when rehydrating persisted records.
func KnownDerivedAmount(original, adjusted valueobject.Amount) DerivedAmount {
	return DerivedAmount{present: true, original: original, adjusted: adjusted}
}

// DerivedAmounts is the engine output: the bookkeeping (reporting) amount and
// the tax-reporting (taxable) amount, both in the workspace default currency.
type DerivedAmounts struct {
	Reporting DerivedAmount
	Taxable   DerivedAmount
}

// AmountsEngine derives default-currency amounts and the record status from
// conversion inputs. It is pure: no clock, no I/O, no hidden state beyond the
// injected currency catalog used to validate codes.
type AmountsEngine struct {
	catalog valueobject.CurrencyCatalog
}

// NewAmountsEngine creates an engine backed by the given currency catalog.
func NewAmountsEngine(catalog valueobject.CurrencyCatalog) *AmountsEngine {
	return &AmountsEngine{catalog: catalog}
}

// ComputeAmounts derives the reporting and taxable amounts plus the record
// status from the inputs. It either returns a complete, consistent result or
// an error; no partial results.
//
// When the original currency equals the workspace default, the original
// amount is copied through unrounded and the taxation amount always mirrors
// it - the different-rate-for-taxation flag is a foreign-currency feature and
// has no effect for same-currency records.
func (e *AmountsEngine) ComputeAmounts(in ConversionInputs) (DerivedAmounts, AmountsStatus, error) {
	if err := e.validate(in); err != nil {
		return DerivedAmounts{}, "", err
	}

	var derived DerivedAmounts

	if in.OriginalCurrency == in.DefaultCurrency {
		derived.Reporting = newDerivedAmount(in.OriginalAmount, in.PercentOnBusiness)
		derived.Taxable = derived.Reporting
		return derived, deriveStatus(derived), nil
	}

	if in.ConvertedAmount == nil {
		return derived, deriveStatus(derived), nil
	}
	derived.Reporting = newDerivedAmount(*in.ConvertedAmount, in.PercentOnBusiness)

	if !in.UseDifferentExchangeRateForTaxation {
		derived.Taxable = derived.Reporting
	} else if in.TaxationAmount != nil {
		derived.Taxable = newDerivedAmount(*in.TaxationAmount, in.PercentOnBusiness)
	}

	return derived, deriveStatus(derived), nil
}

// ComputeTax returns round(base * rateBps / 10000) with half-up rounding.
// Rates above 10000 (100%) are legal; negative rates are not.
func (e *AmountsEngine) ComputeTax(base valueobject.Amount, rateBps int64) (valueobject.Amount, error) {
	if base < 0 {
		return 0, shared.NewDomainError("INVALID_AMOUNT", "Tax base cannot be negative")
	}
	if rateBps < 0 {
		return 0, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Tax rate cannot be negative: %d bps", rateBps))
	}
	return valueobject.ApplyBasisPoints(base, rateBps), nil
}

// AmountsResult bundles the full per-record computation consumed by the
// expense and income create/update flows.
type AmountsResult struct {
	Derived   DerivedAmounts
	Status    AmountsStatus
	TaxAmount *valueobject.Amount
}

// ComputeAmountsWithTax runs ComputeAmounts and, when a tax rate is given and
// the reporting amount is known, computes the tax against the reporting
// ORIGINAL amount. Tax deliberately ignores percent-on-business: it applies
// to the full converted amount.
func (e *AmountsEngine) ComputeAmountsWithTax(in ConversionInputs, taxRateBps *int64) (AmountsResult, error) {
	derived, status, err := e.ComputeAmounts(in)
	if err != nil {
		return AmountsResult{}, err
	}

	result := AmountsResult{Derived: derived, Status: status}
	if taxRateBps == nil {
		return result, nil
	}

	base, known := derived.Reporting.Original()
	if !known {
		return result, nil
	}
	tax, err := e.ComputeTax(base, *taxRateBps)
	if err != nil {
		return AmountsResult{}, err
	}
	result.TaxAmount = &tax
	return result, nil
}

func (e *AmountsEngine) validate(in ConversionInputs) error {
	if in.PercentOnBusiness < 0 || in.PercentOnBusiness > 100 {
		return shared.NewDomainError("INVALID_PERCENTAGE",
			fmt.Sprintf("Percent on business must be within [0, 100], got %d", in.PercentOnBusiness))
	}
	if in.OriginalAmount < 0 {
		return shared.NewDomainError("INVALID_AMOUNT", "Original amount cannot be negative")
	}
	if in.ConvertedAmount != nil && *in.ConvertedAmount < 0 {
		return shared.NewDomainError("INVALID_AMOUNT", "Converted amount cannot be negative")
	}
	if in.TaxationAmount != nil && *in.TaxationAmount < 0 {
		return shared.NewDomainError("INVALID_AMOUNT", "Taxation amount cannot be negative")
	}
	if _, err := e.catalog.Precision(in.OriginalCurrency); err != nil {
		return err
	}
	if _, err := e.catalog.Precision(in.DefaultCurrency); err != nil {
		return err
	}
	return nil
}

// newDerivedAmount builds a present amount, applying percent-on-business with
// half-up rounding. At 100% the adjusted amount equals the original exactly.
func newDerivedAmount(original valueobject.Amount, percentOnBusiness int) DerivedAmount {
	return DerivedAmount{
		present:  true,
		original: original,
		adjusted: valueobject.ApplyPercentage(original, percentOnBusiness),
	}
}

// deriveStatus applies the status priority order: a missing reporting amount
// wins over a missing taxable amount; everything known means finalized.
func deriveStatus(derived DerivedAmounts) AmountsStatus {
	if !derived.Reporting.Present() {
		return StatusPendingConversion
	}
	if !derived.Taxable.Present() {
		return StatusPendingConversionForTaxation
	}
	return StatusFinalized
}
