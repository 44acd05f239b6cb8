package cart

import (
	"fmt"

	"tableorder/internal/pkg/errs"
)

// ItemKind distinguishes the two orderable menu shapes: a single dish or a
// fixed set of dishes sold together. The kind participates in the line key,
// so a dish and a set sharing a numeric id never collide.
type ItemKind int

const (
	// ItemKindUnknown represents an invalid or undefined kind.
	ItemKindUnknown ItemKind = iota

	// ItemKindDish is a single menu dish.
	ItemKindDish

	// ItemKindSet is a combo of dishes sold as one item.
	ItemKindSet
)

func getItemKindStrings() map[ItemKind]string {
	return map[ItemKind]string{
		ItemKindUnknown: "Unknown",
		ItemKindDish:    "Dish",
		ItemKindSet:     "Set",
	}
}

// ItemKindFromString parses an item kind from its wire representation.
func ItemKindFromString(s string) (ItemKind, error) {
	switch s {
	case "Dish":
		return ItemKindDish, nil
	case "Set":
		return ItemKindSet, nil
	default:
		return ItemKindUnknown, errs.NewValueIsInvalidErrorWithCause("itemKind",
			fmt.Errorf("%q is not a recognized item kind", s))
	}
}

// Validate checks if the ItemKind value is valid.
func (k ItemKind) Validate() error {
	if k != ItemKindDish && k != ItemKindSet {
		return errs.NewValueIsInvalidErrorWithCause("itemKind",
			fmt.Errorf("%d is not a valid item kind", k))
	}
	return nil
}

// String returns the human-readable name of the kind.
func (k ItemKind) String() string {
	if str, ok := getItemKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}
