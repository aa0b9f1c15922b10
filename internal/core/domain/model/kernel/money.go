package kernel

import (
	"fmt"

	"ordermanagement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyMaxScale is the maximum number of decimal places a monetary amount
// may carry. Matches the numeric scale of the persisted columns, so amounts
// survive the round trip unchanged.
const MoneyMaxScale = 2

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly
// initialized Money value. Money must be created via NewMoneyFromString,
// NewMoneyFromDecimal, or ZeroMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoneyFromString, NewMoneyFromDecimal, or ZeroMoney constructors")

// Money is an immutable value object representing a non-negative monetary
// amount in exact base-10 arithmetic. It wraps shopspring/decimal so that
// unit-price sums never suffer binary floating-point rounding.
//
// The zero value of Money is invalid and will fail validation - use the
// constructors to create instances.
//
// Example:
//
//	price, err := kernel.NewMoneyFromString("10.00")
//	if err != nil {
//	    // Handle validation error
//	}
//	line, _ := price.MulInt(2)
//	fmt.Println(line.StringFixed()) // Output: 20.00
type Money struct { //nolint:recvcheck //using for validation
	amount decimal.Decimal
	guard  ConstructorGuard
}

// NewMoneyFromString parses a decimal string (e.g. "10.00") into a Money
// value. Returns a validation error if the string is not a valid decimal,
// the amount is negative, or it carries more than MoneyMaxScale decimal
// places.
func NewMoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoneyFromDecimal(amount)
}

// NewMoneyFromDecimal wraps an existing decimal into a Money value.
// Returns a validation error if the amount is negative or carries more than
// MoneyMaxScale decimal places.
func NewMoneyFromDecimal(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", amount.String()))
	}
	if !amount.Equal(amount.Round(MoneyMaxScale)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s has more than %d decimal places", amount.String(), MoneyMaxScale))
	}
	return Money{
		amount: amount,
		guard:  NewConstructorGuard(),
	}, nil
}

// ZeroMoney returns a valid Money value of exactly zero.
// Used as the seed for monetary sums.
func ZeroMoney() Money {
	return Money{
		amount: decimal.Zero,
		guard:  NewConstructorGuard(),
	}
}

// Validate checks if the Money value was properly constructed.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Add returns the exact sum of two Money values.
// Both operands must be properly constructed.
func (m Money) Add(other Money) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if err := other.Validate(); err != nil {
		return Money{}, err
	}
	return Money{
		amount: m.amount.Add(other.amount),
		guard:  NewConstructorGuard(),
	}, nil
}

// MulInt returns the amount multiplied by an integer factor, typically an
// item quantity. The factor must not be negative.
func (m Money) MulInt(factor int) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if factor < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("factor",
			fmt.Errorf("%d is negative", factor))
	}
	return Money{
		amount: m.amount.Mul(decimal.NewFromInt(int64(factor))),
		guard:  NewConstructorGuard(),
	}, nil
}

// IsEqual compares two Money values numerically, so "25", "25.0" and
// "25.00" are all equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Decimal returns the underlying decimal amount for persistence adapters.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String returns the minimal decimal representation of the amount.
func (m Money) String() string {
	return m.amount.String()
}

// StringFixed returns the amount rendered with two decimal places, the
// representation used on the API surface (e.g. "25.00").
func (m Money) StringFixed() string {
	return m.amount.StringFixed(2)
}
