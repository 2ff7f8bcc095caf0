package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simpleaccounting/backend/internal/domain/shared"
)

// Amount is a monetary amount as an integer count of minor currency units
// (cents for USD, fils for BHD, whole yen for JPY). All money arithmetic in
// the system happens on this type; floats never carry monetary values.
type Amount int64

// Money is a value object pairing an amount in minor units with its currency.
// It is immutable - all operations return new Money instances.
type Money struct {
	amount   Amount
	currency Currency
}

// NewMoney creates a new Money with the specified minor-unit amount and currency
func NewMoney(amount Amount, currency Currency) (Money, error) {
	if !currency.IsWellFormed() {
		return Money{}, shared.NewDomainError("UNKNOWN_CURRENCY", fmt.Sprintf("Malformed currency code: %q", currency))
	}
	if amount < 0 {
		return Money{}, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	return Money{amount: amount, currency: currency}, nil
}

// MustMoney creates a Money, panicking on invalid input. For fixtures and tests.
func MustMoney(amount Amount, currency Currency) Money {
	m, err := NewMoney(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney returns a zero-value Money in the specified currency
func ZeroMoney(currency Currency) Money {
	return Money{amount: 0, currency: currency}
}

// Amount returns the amount in minor units
func (m Money) Amount() Amount {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount == 0
}

// Add returns a new Money with the sum of both amounts.
// Returns error if currencies don't match.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot add money with different currencies: %s and %s", m.currency, other.currency)
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Subtract returns a new Money with the difference.
// Returns error if currencies don't match.
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot subtract money with different currencies: %s and %s", m.currency, other.currency)
	}
	return Money{amount: m.amount - other.amount, currency: m.currency}, nil
}

// Equals returns true if both Money values are equal (same amount and currency)
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount == other.amount
}

// String renders the amount and currency without locale formatting, for logs.
func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.amount, m.currency)
}

// RoundHalfUpRatio computes round(amount * numerator / denominator) with
// half-up rounding on exact .5 midpoints. Amount and numerator must be
// non-negative; denominator must be positive. The product is computed in
// arbitrary precision so amounts near the int64 limit do not wrap.
func RoundHalfUpRatio(amount Amount, numerator, denominator int64) Amount {
	product := decimal.NewFromInt(int64(amount)).Mul(decimal.NewFromInt(numerator))
	quotient := product.DivRound(decimal.NewFromInt(denominator), 0)
	return Amount(quotient.IntPart())
}

// ApplyPercentage returns round(amount * percent / 100), half-up. The result
// equals the input exactly when percent is 100.
func ApplyPercentage(amount Amount, percent int) Amount {
	return RoundHalfUpRatio(amount, int64(percent), 100)
}

// ApplyBasisPoints returns round(amount * rateBps / 10000), half-up.
func ApplyBasisPoints(amount Amount, rateBps int64) Amount {
	return RoundHalfUpRatio(amount, rateBps, 10000)
}
