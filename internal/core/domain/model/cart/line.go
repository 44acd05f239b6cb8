package cart

import (
	"fmt"

	"tableorder/internal/core/domain/model/kernel"
	"tableorder/internal/pkg/errs"
)

// LineKey identifies a cart line by item kind and menu item id.
// Two selections of the same menu item merge into one line.
type LineKey struct {
	Kind   ItemKind
	ItemID int64
}

// NewLineKey creates a validated line key.
func NewLineKey(kind ItemKind, itemID int64) (LineKey, error) {
	if err := kind.Validate(); err != nil {
		return LineKey{}, err
	}
	if itemID <= 0 {
		return LineKey{}, errs.NewValueIsInvalidErrorWithCause("itemId",
			fmt.Errorf("%d is not a valid menu item id", itemID))
	}
	return LineKey{Kind: kind, ItemID: itemID}, nil
}

// String implements fmt.Stringer.
func (k LineKey) String() string {
	return fmt.Sprintf("%s/%d", k.Kind, k.ItemID)
}

// Line is one merged selection in the cart: a menu item, the quantity the
// table wants, and the unit price captured when the item was first added.
// Lines live only inside a Cart; quantity is always positive because a
// quantity of zero removes the line.
type Line struct {
	key       LineKey
	quantity  int
	unitPrice kernel.Price
}

// Key returns the line's identifying key.
func (l Line) Key() LineKey {
	return l.key
}

// Quantity returns how many units of the item the table wants.
func (l Line) Quantity() int {
	return l.quantity
}

// UnitPrice returns the per-unit price captured when the line was created.
func (l Line) UnitPrice() kernel.Price {
	return l.unitPrice
}

// Subtotal returns quantity times unit price.
func (l Line) Subtotal() kernel.Price {
	return l.unitPrice.MultiplyBy(l.quantity)
}
