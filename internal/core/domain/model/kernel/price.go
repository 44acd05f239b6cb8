package kernel

import (
	"fmt"

	"tableorder/internal/pkg/errs"
)

// Price is a value object representing a monetary amount in the restaurant's
// minor currency unit. Negative prices are invalid. The zero value is a valid
// zero price.
//
// Price supports the arithmetic the cart needs (multiplication by a quantity,
// summation) without exposing the raw integer for mutation.
type Price struct {
	amount int64
}

// NewPrice creates a Price from an amount in minor currency units.
// Returns an error for negative amounts.
func NewPrice(amount int64) (Price, error) {
	if amount < 0 {
		return Price{}, errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%d is negative", amount))
	}
	return Price{amount: amount}, nil
}

// ZeroPrice returns a Price of zero.
func ZeroPrice() Price {
	return Price{}
}

// Amount returns the amount in minor currency units.
func (p Price) Amount() int64 {
	return p.amount
}

// MultiplyBy returns the price multiplied by a non-negative quantity.
func (p Price) MultiplyBy(quantity int) Price {
	if quantity < 0 {
		return Price{}
	}
	return Price{amount: p.amount * int64(quantity)}
}

// Add returns the sum of two prices.
func (p Price) Add(other Price) Price {
	return Price{amount: p.amount + other.amount}
}

// IsEqual compares two prices for equality.
func (p Price) IsEqual(other Price) bool {
	return p.amount == other.amount
}

// String implements fmt.Stringer.
func (p Price) String() string {
	return fmt.Sprintf("%d", p.amount)
}
