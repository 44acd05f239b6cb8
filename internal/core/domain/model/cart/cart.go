// Package cart implements the in-memory aggregation of a table's menu
// selections. A Cart merges dish and set picks into quantity lines and
// projects them into the summary the submission flow snapshots.
package cart

import (
	"tableorder/internal/core/domain/model/kernel"
)

// Cart accumulates the selections of one table session.
//
// Cart follows these invariants:
//   - Lines are keyed by (item kind, item id); adding the same item twice
//     increases the existing line's quantity.
//   - Every stored line has quantity > 0; setting a quantity to zero or
//     below removes the line.
//   - Iteration order is insertion order, so Summary is stable for a given
//     sequence of mutations.
//
// Cart is purely local state: no network access, no shared globals. It is
// owned by a single table session and is not safe for unsynchronized
// concurrent mutation; the session layer serializes access.
type Cart struct {
	lines map[LineKey]*Line
	order []LineKey
}

// NewCart creates an empty cart for a fresh table session.
func NewCart() *Cart {
	return &Cart{
		lines: make(map[LineKey]*Line),
	}
}

// AddItem merges one unit of a menu item into the cart. A repeated add of
// the same (kind, id) increments the existing line; the unit price of the
// first add wins so a line never mixes prices.
func (c *Cart) AddItem(kind ItemKind, itemID int64, unitPrice kernel.Price) error {
	return c.add(kind, itemID, 1, unitPrice)
}

// AddItemWithQuantity merges the given number of units of a menu item.
func (c *Cart) AddItemWithQuantity(kind ItemKind, itemID int64, quantity int, unitPrice kernel.Price) error {
	return c.add(kind, itemID, quantity, unitPrice)
}

func (c *Cart) add(kind ItemKind, itemID int64, quantity int, unitPrice kernel.Price) error {
	key, err := NewLineKey(kind, itemID)
	if err != nil {
		return err
	}
	if quantity <= 0 {
		return nil
	}

	if line, ok := c.lines[key]; ok {
		line.quantity += quantity
		return nil
	}

	c.lines[key] = &Line{key: key, quantity: quantity, unitPrice: unitPrice}
	c.order = append(c.order, key)
	return nil
}

// SetQuantity sets the absolute quantity of a line. Quantities are clamped
// at zero, and zero removes the line. Setting a quantity for an item not in
// the cart is a no-op.
func (c *Cart) SetQuantity(kind ItemKind, itemID int64, quantity int) error {
	key, err := NewLineKey(kind, itemID)
	if err != nil {
		return err
	}

	line, ok := c.lines[key]
	if !ok {
		return nil
	}

	if quantity <= 0 {
		c.remove(key)
		return nil
	}

	line.quantity = quantity
	return nil
}

// RemoveItem removes a line regardless of its quantity.
func (c *Cart) RemoveItem(kind ItemKind, itemID int64) error {
	key, err := NewLineKey(kind, itemID)
	if err != nil {
		return err
	}
	c.remove(key)
	return nil
}

func (c *Cart) remove(key LineKey) {
	if _, ok := c.lines[key]; !ok {
		return
	}
	delete(c.lines, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear empties the cart. Called on successful submission and on explicit
// session reset.
func (c *Cart) Clear() {
	c.lines = make(map[LineKey]*Line)
	c.order = nil
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines returns the surviving lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, *c.lines[key])
	}
	return out
}

// SummaryLine is one line of the cart projection, split out by kind so the
// order wire format can address dish items and set items separately.
type SummaryLine struct {
	ItemID    int64
	Quantity  int
	UnitPrice kernel.Price
}

// Summary is the pure projection of the cart the submission flow snapshots.
// The same cart state always yields the same summary.
type Summary struct {
	Dishes     []SummaryLine
	Sets       []SummaryLine
	TotalItems int
	TotalPrice kernel.Price
}

// Summary projects the cart into dish lines, set lines, and totals.
// TotalPrice is the sum of quantity times unit price over every surviving
// line.
func (c *Cart) Summary() Summary {
	var summary Summary
	for _, key := range c.order {
		line := c.lines[key]
		sl := SummaryLine{ItemID: key.ItemID, Quantity: line.quantity, UnitPrice: line.unitPrice}

		switch key.Kind {
		case ItemKindDish:
			summary.Dishes = append(summary.Dishes, sl)
		case ItemKindSet:
			summary.Sets = append(summary.Sets, sl)
		}

		summary.TotalItems += line.quantity
		summary.TotalPrice = summary.TotalPrice.Add(line.Subtotal())
	}
	return summary
}
