package kernel

import (
	"fmt"

	"tableorder/internal/pkg/errs"
)

const (
	minTableNumber = 1
	maxTableNumber = 999
)

// TableNumber is a value object identifying a physical dining table.
// The zero value is invalid; construct via NewTableNumber.
type TableNumber struct {
	number int
}

// NewTableNumber creates a TableNumber, validating that the number falls
// within the restaurant's table range.
func NewTableNumber(number int) (TableNumber, error) {
	if number < minTableNumber || number > maxTableNumber {
		return TableNumber{}, errs.NewValueIsOutOfRangeError("tableNumber", number, minTableNumber, maxTableNumber)
	}
	return TableNumber{number: number}, nil
}

// Int returns the numeric table number.
func (t TableNumber) Int() int {
	return t.number
}

// String implements fmt.Stringer.
func (t TableNumber) String() string {
	return fmt.Sprintf("%d", t.number)
}

// IsEqual compares two table numbers for equality.
func (t TableNumber) IsEqual(other TableNumber) bool {
	return t.number == other.number
}

// Validate checks that the TableNumber was constructed through NewTableNumber.
func (t TableNumber) Validate() error {
	if t.number < minTableNumber || t.number > maxTableNumber {
		return errs.NewValueIsOutOfRangeError("tableNumber", t.number, minTableNumber, maxTableNumber)
	}
	return nil
}
