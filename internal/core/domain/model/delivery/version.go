package delivery

import (
	"errors"
	"fmt"
	"time"

	"tableorder/internal/pkg/errs"
	"tableorder/internal/pkg/guard"
)

// ModificationKind classifies why a new order version was created.
type ModificationKind int

const (
	// ModificationUnknown represents an invalid or undefined kind.
	ModificationUnknown ModificationKind = iota

	// ModificationInitial marks the first version of an order.
	ModificationInitial

	// ModificationAdded marks a version created because items were added.
	ModificationAdded

	// ModificationRemoved marks a version created because items were removed.
	ModificationRemoved
)

// getModificationKindStrings returns a map of ModificationKind values to
// their wire representations.
func getModificationKindStrings() map[ModificationKind]string {
	return map[ModificationKind]string{
		ModificationUnknown: "UNKNOWN",
		ModificationInitial: "INITIAL",
		ModificationAdded:   "ADDED",
		ModificationRemoved: "REMOVED",
	}
}

// getValidModificationKindStrings returns a map of only valid kinds.
func getValidModificationKindStrings() map[ModificationKind]string {
	//nolint:exhaustive // ModificationUnknown is intentionally excluded
	return map[ModificationKind]string{
		ModificationInitial: "INITIAL",
		ModificationAdded:   "ADDED",
		ModificationRemoved: "REMOVED",
	}
}

// ModificationKindFromString parses a modification kind from its wire
// representation.
func ModificationKindFromString(s string) (ModificationKind, error) {
	for kind, str := range getValidModificationKindStrings() {
		if str == s {
			return kind, nil
		}
	}
	return ModificationUnknown, errs.NewValueIsInvalidErrorWithCause("modificationType",
		fmt.Errorf("%q is not a valid modification type", s))
}

// Validate checks if the ModificationKind value is valid.
func (k ModificationKind) Validate() error {
	if _, ok := getValidModificationKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("modificationType",
			fmt.Errorf("%d is not a valid modification type", k))
	}
	return nil
}

// String returns the wire name of the kind.
func (k ModificationKind) String() string {
	if str, ok := getModificationKindStrings()[k]; ok {
		return str
	}
	return "UNKNOWN"
}

// ItemQuantity pairs a menu item with an ordered quantity inside a version
// summary.
type ItemQuantity struct {
	ItemID   int64
	Quantity int
}

var ErrVersionIsNotConstructed = errors.New(
	"version is not constructed, use NewVersion")

// Version is an immutable snapshot of what an order contained after a
// modification. The latest version's quantities define the expected total
// the delivery status is folded against.
type Version struct {
	number        int
	kind          ModificationKind
	modifiedAt    time.Time
	dishesOrdered []ItemQuantity
	setsOrdered   []ItemQuantity

	guard guard.ConstructorGuard
}

// NewVersion creates a validated Version.
//
// The version number must be positive, the kind must be valid, every
// quantity must be positive and the modification time must be set.
func NewVersion(
	number int,
	kind ModificationKind,
	modifiedAt time.Time,
	dishesOrdered []ItemQuantity,
	setsOrdered []ItemQuantity,
) (Version, error) {
	if number <= 0 {
		return Version{}, errs.NewValueIsInvalidErrorWithCause("versionNumber",
			fmt.Errorf("%d must be positive", number))
	}
	if err := kind.Validate(); err != nil {
		return Version{}, err
	}
	if modifiedAt.IsZero() {
		return Version{}, errs.NewValueIsRequiredError("modifiedAt")
	}
	for _, iq := range dishesOrdered {
		if iq.Quantity <= 0 {
			return Version{}, errs.NewValueIsInvalidErrorWithCause("dishQuantity",
				fmt.Errorf("%d must be positive for dish %d", iq.Quantity, iq.ItemID))
		}
	}
	for _, iq := range setsOrdered {
		if iq.Quantity <= 0 {
			return Version{}, errs.NewValueIsInvalidErrorWithCause("setQuantity",
				fmt.Errorf("%d must be positive for set %d", iq.Quantity, iq.ItemID))
		}
	}

	return Version{
		number:        number,
		kind:          kind,
		modifiedAt:    modifiedAt,
		dishesOrdered: append([]ItemQuantity(nil), dishesOrdered...),
		setsOrdered:   append([]ItemQuantity(nil), setsOrdered...),

		guard: guard.NewConstructorGuard(),
	}, nil
}

// Number returns the version number.
func (v Version) Number() int {
	return v.number
}

// Kind returns the modification kind that produced this version.
func (v Version) Kind() ModificationKind {
	return v.kind
}

// ModifiedAt returns when the version was created.
func (v Version) ModifiedAt() time.Time {
	return v.modifiedAt
}

// DishesOrdered returns a copy of the dish quantities of this version.
func (v Version) DishesOrdered() []ItemQuantity {
	return append([]ItemQuantity(nil), v.dishesOrdered...)
}

// SetsOrdered returns a copy of the set quantities of this version.
func (v Version) SetsOrdered() []ItemQuantity {
	return append([]ItemQuantity(nil), v.setsOrdered...)
}

// TotalOrdered returns the sum of all dish and set quantities of this
// version.
func (v Version) TotalOrdered() int {
	total := 0
	for _, iq := range v.dishesOrdered {
		total += iq.Quantity
	}
	for _, iq := range v.setsOrdered {
		total += iq.Quantity
	}
	return total
}

// IsEqual compares two versions by number.
func (v Version) IsEqual(other Version) bool {
	return v.number == other.number
}

// Validate checks that the Version was properly constructed.
func (v Version) Validate() error {
	return v.guard.Validate(ErrVersionIsNotConstructed)
}
