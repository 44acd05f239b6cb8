package commands

import (
	"errors"
	"fmt"
	"time"

	"tableorder/internal/pkg/errs"
	"tableorder/internal/pkg/guard"
)

var ErrRecordDeliveryCommandIsNotConstructed = errors.New(
	"RecordDeliveryCommand must be created via NewRecordDeliveryCommand constructor",
)

// RecordDeliveryCommand represents a staff member handing a quantity of a
// dish over at the table.
type RecordDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID           int64
	dishID            int64
	quantityDelivered int
	deliveredAt       time.Time
	deliveredByUserID int64

	guard guard.ConstructorGuard
}

// NewRecordDeliveryCommand creates a validated delivery record command.
// All ids and the quantity must be positive and the delivery time set.
func NewRecordDeliveryCommand(
	orderID int64,
	dishID int64,
	quantityDelivered int,
	deliveredAt time.Time,
	deliveredByUserID int64,
) (RecordDeliveryCommand, error) {
	deliveryCommand := RecordDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		deliveryCommand.setOrderID(orderID),
		deliveryCommand.setDishID(dishID),
		deliveryCommand.setQuantityDelivered(quantityDelivered),
		deliveryCommand.setDeliveredAt(deliveredAt),
		deliveryCommand.setDeliveredByUserID(deliveredByUserID),
	); err != nil {
		return RecordDeliveryCommand{}, err
	}

	return deliveryCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRecordDeliveryCommandIsNotConstructed)
}

// OrderID returns the delivered order's id.
func (c RecordDeliveryCommand) OrderID() int64 {
	return c.orderID
}

// DishID returns the delivered dish's id.
func (c RecordDeliveryCommand) DishID() int64 {
	return c.dishID
}

// QuantityDelivered returns how many units were handed over.
func (c RecordDeliveryCommand) QuantityDelivered() int {
	return c.quantityDelivered
}

// DeliveredAt returns when the handover happened.
func (c RecordDeliveryCommand) DeliveredAt() time.Time {
	return c.deliveredAt
}

// DeliveredByUserID returns the delivering staff member's id.
func (c RecordDeliveryCommand) DeliveredByUserID() int64 {
	return c.deliveredByUserID
}

func (c *RecordDeliveryCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%d must be positive", orderID))
	}

	c.orderID = orderID
	return nil
}

func (c *RecordDeliveryCommand) setDishID(dishID int64) error {
	if dishID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("dishId",
			fmt.Errorf("%d must be positive", dishID))
	}

	c.dishID = dishID
	return nil
}

func (c *RecordDeliveryCommand) setQuantityDelivered(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantityDelivered",
			fmt.Errorf("%d must be positive", quantity))
	}

	c.quantityDelivered = quantity
	return nil
}

func (c *RecordDeliveryCommand) setDeliveredAt(deliveredAt time.Time) error {
	if deliveredAt.IsZero() {
		return errs.NewValueIsRequiredError("deliveredAt")
	}

	c.deliveredAt = deliveredAt
	return nil
}

func (c *RecordDeliveryCommand) setDeliveredByUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("deliveredBy",
			fmt.Errorf("%d must be positive", userID))
	}

	c.deliveredByUserID = userID
	return nil
}
