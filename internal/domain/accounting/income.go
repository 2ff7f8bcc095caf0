package accounting

import (
	"time"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
)

// IncomeInput carries the user-editable fields of an income record.
type IncomeInput struct {
	Title                               string
	CategoryID                          uuid.UUID
	DateReceived                        time.Time
	OriginalCurrency                    valueobject.Currency
	OriginalAmount                      valueobject.Amount
	ConvertedAmount                     *valueobject.Amount
	UseDifferentExchangeRateForTaxation bool
	TaxationAmount                      *valueobject.Amount
	PercentOnBusiness                   int
	TaxID                               *uuid.UUID
	TaxRateBps                          *int64
	InvoiceID                           *uuid.UUID
	Notes                               string
	DocumentIDs                         []uuid.UUID
}

// Income represents a business income aggregate root. It shares the amounts
// engine with Expense: the same conversion inputs, the same derived amounts,
// the same status machine. An income can optionally link the invoice it pays.
type Income struct {
	shared.WorkspaceAggregateRoot
	Title                               string               `json:"title"`
	CategoryID                          uuid.UUID            `json:"category_id"`
	DateReceived                        time.Time            `json:"date_received"`
	OriginalCurrency                    valueobject.Currency `json:"original_currency"`
	OriginalAmount                      valueobject.Amount   `json:"original_amount"`
	ConvertedAmount                     *valueobject.Amount  `json:"converted_amount"`
	UseDifferentExchangeRateForTaxation bool                 `json:"use_different_exchange_rate_for_taxation"`
	TaxationAmount                      *valueobject.Amount  `json:"taxation_amount"`
	PercentOnBusiness                   int                  `json:"percent_on_business"`
	TaxID                               *uuid.UUID           `json:"tax_id"`
	TaxRateBps                          *int64               `json:"tax_rate_bps"`
	InvoiceID                           *uuid.UUID           `json:"invoice_id"`
	Notes                               string               `json:"notes"`
	DocumentIDs                         []uuid.UUID          `json:"document_ids"`
	ReportingAmount                     *valueobject.Amount  `json:"reporting_amount"`
	ReportingAmountAdjusted             *valueobject.Amount  `json:"reporting_amount_adjusted"`
	TaxableAmount                       *valueobject.Amount  `json:"taxable_amount"`
	TaxableAmountAdjusted               *valueobject.Amount  `json:"taxable_amount_adjusted"`
	TaxAmount                           *valueobject.Amount  `json:"tax_amount"`
	Status                              AmountsStatus        `json:"status"`
}

// NewIncome creates a new income record within a workspace.
func NewIncome(
	workspaceID uuid.UUID,
	defaultCurrency valueobject.Currency,
	engine *AmountsEngine,
	in IncomeInput,
) (*Income, error) {
	if err := validateRecordInput(in.Title, in.CategoryID, in.DateReceived); err != nil {
		return nil, err
	}

	income := &Income{
		WorkspaceAggregateRoot: shared.NewWorkspaceAggregateRoot(workspaceID),
	}
	if err := income.apply(defaultCurrency, engine, in); err != nil {
		return nil, err
	}

	income.AddDomainEvent(NewIncomeCreatedEvent(income))

	return income, nil
}

// Update replaces the user-editable fields and recomputes the derived amounts
// and status.
func (i *Income) Update(
	defaultCurrency valueobject.Currency,
	engine *AmountsEngine,
	in IncomeInput,
) error {
	if err := validateRecordInput(in.Title, in.CategoryID, in.DateReceived); err != nil {
		return err
	}
	if err := i.apply(defaultCurrency, engine, in); err != nil {
		return err
	}

	i.Touch()
	i.IncrementVersion()
	i.AddDomainEvent(NewIncomeUpdatedEvent(i))

	return nil
}

func (i *Income) apply(defaultCurrency valueobject.Currency, engine *AmountsEngine, in IncomeInput) error {
	result, err := engine.ComputeAmountsWithTax(ConversionInputs{
		OriginalAmount:                      in.OriginalAmount,
		OriginalCurrency:                    in.OriginalCurrency,
		DefaultCurrency:                     defaultCurrency,
		ConvertedAmount:                     in.ConvertedAmount,
		UseDifferentExchangeRateForTaxation: in.UseDifferentExchangeRateForTaxation,
		TaxationAmount:                      in.TaxationAmount,
		PercentOnBusiness:                   in.PercentOnBusiness,
	}, in.TaxRateBps)
	if err != nil {
		return err
	}

	i.Title = in.Title
	i.CategoryID = in.CategoryID
	i.DateReceived = in.DateReceived
	i.OriginalCurrency = in.OriginalCurrency
	i.OriginalAmount = in.OriginalAmount
	i.ConvertedAmount = copyAmount(in.ConvertedAmount)
	i.UseDifferentExchangeRateForTaxation = in.UseDifferentExchangeRateForTaxation
	i.TaxationAmount = copyAmount(in.TaxationAmount)
	i.PercentOnBusiness = in.PercentOnBusiness
	i.TaxID = copyUUID(in.TaxID)
	i.TaxRateBps = copyInt64(in.TaxRateBps)
	i.InvoiceID = copyUUID(in.InvoiceID)
	i.Notes = in.Notes
	i.DocumentIDs = append([]uuid.UUID(nil), in.DocumentIDs...)
	i.ReportingAmount = presentAmount(result.Derived.Reporting.Original())
	i.ReportingAmountAdjusted = presentAmount(result.Derived.Reporting.Adjusted())
	i.TaxableAmount = presentAmount(result.Derived.Taxable.Original())
	i.TaxableAmountAdjusted = presentAmount(result.Derived.Taxable.Adjusted())
	i.TaxAmount = copyAmount(result.TaxAmount)
	i.Status = result.Status

	return nil
}

// IsFinalized returns true when all required default-currency amounts are known.
func (i *Income) IsFinalized() bool {
	return i.Status == StatusFinalized
}

// IsLinkedToInvoice returns true if this income pays an invoice.
func (i *Income) IsLinkedToInvoice() bool {
	return i.InvoiceID != nil
}
