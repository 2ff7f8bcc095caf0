package accounting

import (
	"time"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
)

// ExpenseInput carries the user-editable fields of an expense. The derived
// amounts and status are never part of the input; they are recomputed from
// these fields on every create and update.
type ExpenseInput struct {
	Title                               string
	CategoryID                          uuid.UUID
	DatePaid                            time.Time
	OriginalCurrency                    valueobject.Currency
	OriginalAmount                      valueobject.Amount
	ConvertedAmount                     *valueobject.Amount
	UseDifferentExchangeRateForTaxation bool
	TaxationAmount                      *valueobject.Amount
	PercentOnBusiness                   int
	TaxID                               *uuid.UUID
	TaxRateBps                          *int64
	Notes                               string
	DocumentIDs                         []uuid.UUID
}

// Expense represents a business expense aggregate root.
// The default-currency amounts, tax amount and status are denormalized
// outputs of the amounts engine, persisted for query efficiency but always
// recomputed from the input fields on write.
type Expense struct {
	shared.WorkspaceAggregateRoot
	Title                               string                `json:"title"`
	CategoryID                          uuid.UUID             `json:"category_id"`
	DatePaid                            time.Time             `json:"date_paid"`
	OriginalCurrency                    valueobject.Currency  `json:"original_currency"`
	OriginalAmount                      valueobject.Amount    `json:"original_amount"`
	ConvertedAmount                     *valueobject.Amount   `json:"converted_amount"`
	UseDifferentExchangeRateForTaxation bool                  `json:"use_different_exchange_rate_for_taxation"`
	TaxationAmount                      *valueobject.Amount   `json:"taxation_amount"`
	PercentOnBusiness                   int                   `json:"percent_on_business"`
	TaxID                               *uuid.UUID            `json:"tax_id"`
	TaxRateBps                          *int64                `json:"tax_rate_bps"`
	Notes                               string                `json:"notes"`
	DocumentIDs                         []uuid.UUID           `json:"document_ids"`
	ReportingAmount                     *valueobject.Amount   `json:"reporting_amount"`
	ReportingAmountAdjusted             *valueobject.Amount   `json:"reporting_amount_adjusted"`
	TaxableAmount                       *valueobject.Amount   `json:"taxable_amount"`
	TaxableAmountAdjusted               *valueobject.Amount   `json:"taxable_amount_adjusted"`
	TaxAmount                           *valueobject.Amount   `json:"tax_amount"`
	Status                              AmountsStatus         `json:"status"`
}

// NewExpense creates a new expense within a workspace. The workspace default
// currency is resolved by the caller; the amounts engine derives the
// default-currency amounts and the status before the aggregate is returned.
func NewExpense(
	workspaceID uuid.UUID,
	defaultCurrency valueobject.Currency,
	engine *AmountsEngine,
	in ExpenseInput,
) (*Expense, error) {
	if err := validateRecordInput(in.Title, in.CategoryID, in.DatePaid); err != nil {
		return nil, err
	}

	expense := &Expense{
		WorkspaceAggregateRoot: shared.NewWorkspaceAggregateRoot(workspaceID),
	}
	if err := expense.apply(defaultCurrency, engine, in); err != nil {
		return nil, err
	}

	expense.AddDomainEvent(NewExpenseCreatedEvent(expense))

	return expense, nil
}

// Update replaces the user-editable fields and recomputes the derived amounts
// and status. Clearing a previously supplied converted or taxation amount is
// legitimate and may move the status back to a pending state.
func (e *Expense) Update(
	defaultCurrency valueobject.Currency,
	engine *AmountsEngine,
	in ExpenseInput,
) error {
	if err := validateRecordInput(in.Title, in.CategoryID, in.DatePaid); err != nil {
		return err
	}
	if err := e.apply(defaultCurrency, engine, in); err != nil {
		return err
	}

	e.Touch()
	e.IncrementVersion()
	e.AddDomainEvent(NewExpenseUpdatedEvent(e))

	return nil
}

func (e *Expense) apply(defaultCurrency valueobject.Currency, engine *AmountsEngine, in ExpenseInput) error {
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

	e.Title = in.Title
	e.CategoryID = in.CategoryID
	e.DatePaid = in.DatePaid
	e.OriginalCurrency = in.OriginalCurrency
	e.OriginalAmount = in.OriginalAmount
	e.ConvertedAmount = copyAmount(in.ConvertedAmount)
	e.UseDifferentExchangeRateForTaxation = in.UseDifferentExchangeRateForTaxation
	e.TaxationAmount = copyAmount(in.TaxationAmount)
	e.PercentOnBusiness = in.PercentOnBusiness
	e.TaxID = copyUUID(in.TaxID)
	e.TaxRateBps = copyInt64(in.TaxRateBps)
	e.Notes = in.Notes
	e.DocumentIDs = append([]uuid.UUID(nil), in.DocumentIDs...)
	e.setDerived(result)

	return nil
}

func (e *Expense) setDerived(result AmountsResult) {
	e.ReportingAmount = presentAmount(result.Derived.Reporting.Original())
	e.ReportingAmountAdjusted = presentAmount(result.Derived.Reporting.Adjusted())
	e.TaxableAmount = presentAmount(result.Derived.Taxable.Original())
	e.TaxableAmountAdjusted = presentAmount(result.Derived.Taxable.Adjusted())
	e.TaxAmount = copyAmount(result.TaxAmount)
	e.Status = result.Status
}

// IsFinalized returns true when all required default-currency amounts are known.
func (e *Expense) IsFinalized() bool {
	return e.Status == StatusFinalized
}

// IsPending returns true while a conversion amount is still missing.
func (e *Expense) IsPending() bool {
	return e.Status == StatusPendingConversion || e.Status == StatusPendingConversionForTaxation
}

func validateRecordInput(title string, categoryID uuid.UUID, date time.Time) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 255 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 255 characters")
	}
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Category is required")
	}
	if date.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Date cannot be empty")
	}
	return nil
}

func presentAmount(a valueobject.Amount, ok bool) *valueobject.Amount {
	if !ok {
		return nil
	}
	v := a
	return &v
}

func copyAmount(a *valueobject.Amount) *valueobject.Amount {
	if a == nil {
		return nil
	}
	v := *a
	return &v
}

func copyUUID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func copyInt64(n *int64) *int64 {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}
