package commands

import (
	"errors"
	"fmt"
	"time"

	"tableorder/internal/core/domain/model/delivery"
	"tableorder/internal/pkg/errs"
	"tableorder/internal/pkg/guard"
)

var ErrAppendOrderVersionCommandIsNotConstructed = errors.New(
	"AppendOrderVersionCommand must be created via NewAppendOrderVersionCommand constructor",
)

// AppendOrderVersionCommand represents an order modification: the table
// added or removed items, producing the next version of the order.
type AppendOrderVersionCommand struct { //nolint:recvcheck //using for validation
	orderID       int64
	versionNumber int
	kind          delivery.ModificationKind
	modifiedAt    time.Time
	dishesOrdered []delivery.ItemQuantity
	setsOrdered   []delivery.ItemQuantity

	guard guard.ConstructorGuard
}

// NewAppendOrderVersionCommand creates a validated version command. The
// quantities describe the full content of the order after the change, not
// the delta.
func NewAppendOrderVersionCommand(
	orderID int64,
	versionNumber int,
	kind delivery.ModificationKind,
	modifiedAt time.Time,
	dishesOrdered []delivery.ItemQuantity,
	setsOrdered []delivery.ItemQuantity,
) (AppendOrderVersionCommand, error) {
	versionCommand := AppendOrderVersionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		versionCommand.setOrderID(orderID),
		versionCommand.setVersionNumber(versionNumber),
		versionCommand.setKind(kind),
		versionCommand.setModifiedAt(modifiedAt),
	); err != nil {
		return AppendOrderVersionCommand{}, err
	}

	versionCommand.dishesOrdered = append([]delivery.ItemQuantity(nil), dishesOrdered...)
	versionCommand.setsOrdered = append([]delivery.ItemQuantity(nil), setsOrdered...)

	return versionCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AppendOrderVersionCommand) Validate() error {
	return c.guard.Validate(ErrAppendOrderVersionCommandIsNotConstructed)
}

// OrderID returns the modified order's id.
func (c AppendOrderVersionCommand) OrderID() int64 {
	return c.orderID
}

// VersionNumber returns the number the new version claims.
func (c AppendOrderVersionCommand) VersionNumber() int {
	return c.versionNumber
}

// Kind returns the modification kind.
func (c AppendOrderVersionCommand) Kind() delivery.ModificationKind {
	return c.kind
}

// ModifiedAt returns when the modification happened.
func (c AppendOrderVersionCommand) ModifiedAt() time.Time {
	return c.modifiedAt
}

// DishesOrdered returns the dish quantities of the new version.
func (c AppendOrderVersionCommand) DishesOrdered() []delivery.ItemQuantity {
	return append([]delivery.ItemQuantity(nil), c.dishesOrdered...)
}

// SetsOrdered returns the set quantities of the new version.
func (c AppendOrderVersionCommand) SetsOrdered() []delivery.ItemQuantity {
	return append([]delivery.ItemQuantity(nil), c.setsOrdered...)
}

func (c *AppendOrderVersionCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%d must be positive", orderID))
	}

	c.orderID = orderID
	return nil
}

func (c *AppendOrderVersionCommand) setVersionNumber(number int) error {
	if number <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("versionNumber",
			fmt.Errorf("%d must be positive", number))
	}

	c.versionNumber = number
	return nil
}

func (c *AppendOrderVersionCommand) setKind(kind delivery.ModificationKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}

func (c *AppendOrderVersionCommand) setModifiedAt(modifiedAt time.Time) error {
	if modifiedAt.IsZero() {
		return errs.NewValueIsRequiredError("modifiedAt")
	}

	c.modifiedAt = modifiedAt
	return nil
}
