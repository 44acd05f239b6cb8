package order

import (
	"errors"
	"fmt"

	"tableorder/internal/pkg/errs"
	"tableorder/internal/pkg/guard"
)

var ErrExtrasAreNotConstructed = errors.New(
	"extras are not constructed, use NewExtras")

const maxChiliNumber = 50

// Extras carries the table-side preparation options that accompany an
// order: chili bowls, takeaway packaging and the chili count.
type Extras struct {
	bowChili    int
	bowNoChili  int
	takeAway    bool
	chiliNumber int

	guard guard.ConstructorGuard
}

// NewExtras creates validated Extras. Bowl counts must be non-negative and
// the chili number is capped at 50.
func NewExtras(bowChili, bowNoChili int, takeAway bool, chiliNumber int) (Extras, error) {
	if bowChili < 0 {
		return Extras{}, errs.NewValueIsInvalidErrorWithCause("bowChili",
			fmt.Errorf("%d must not be negative", bowChili))
	}
	if bowNoChili < 0 {
		return Extras{}, errs.NewValueIsInvalidErrorWithCause("bowNoChili",
			fmt.Errorf("%d must not be negative", bowNoChili))
	}
	if chiliNumber < 0 || chiliNumber > maxChiliNumber {
		return Extras{}, errs.NewValueIsOutOfRangeError("chiliNumber",
			chiliNumber, 0, maxChiliNumber)
	}

	return Extras{
		bowChili:    bowChili,
		bowNoChili:  bowNoChili,
		takeAway:    takeAway,
		chiliNumber: chiliNumber,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// NoExtras returns a valid empty Extras value.
func NoExtras() Extras {
	extras, _ := NewExtras(0, 0, false, 0)
	return extras
}

// BowChili returns the number of chili bowls.
func (e Extras) BowChili() int {
	return e.bowChili
}

// BowNoChili returns the number of bowls without chili.
func (e Extras) BowNoChili() int {
	return e.bowNoChili
}

// TakeAway reports whether the order leaves the table.
func (e Extras) TakeAway() bool {
	return e.takeAway
}

// ChiliNumber returns the chili count.
func (e Extras) ChiliNumber() int {
	return e.chiliNumber
}

// Validate checks that the Extras were properly constructed.
func (e Extras) Validate() error {
	return e.guard.Validate(ErrExtrasAreNotConstructed)
}
