package delivery

import (
	"errors"
	"fmt"
	"time"

	"tableorder/internal/pkg/errs"
	"tableorder/internal/pkg/guard"
)

var ErrRecordIsNotConstructed = errors.New(
	"delivery record is not constructed, use NewRecord")

// Record is an immutable fact: a quantity of a dish was handed over at the
// table at a point in time. Records are append-only and are never edited
// after the fact.
type Record struct {
	dishID            int64
	quantityDelivered int
	deliveredAt       time.Time
	deliveredByUserID int64

	guard guard.ConstructorGuard
}

// NewRecord creates a validated delivery Record.
//
// The dish id and the delivering user id must be positive, the delivered
// quantity must be positive and the delivery time must be set.
func NewRecord(
	dishID int64,
	quantityDelivered int,
	deliveredAt time.Time,
	deliveredByUserID int64,
) (Record, error) {
	if dishID <= 0 {
		return Record{}, errs.NewValueIsInvalidErrorWithCause("dishId",
			fmt.Errorf("%d must be positive", dishID))
	}
	if quantityDelivered <= 0 {
		return Record{}, errs.NewValueIsInvalidErrorWithCause("quantityDelivered",
			fmt.Errorf("%d must be positive", quantityDelivered))
	}
	if deliveredAt.IsZero() {
		return Record{}, errs.NewValueIsRequiredError("deliveredAt")
	}
	if deliveredByUserID <= 0 {
		return Record{}, errs.NewValueIsInvalidErrorWithCause("deliveredBy",
			fmt.Errorf("%d must be positive", deliveredByUserID))
	}

	return Record{
		dishID:            dishID,
		quantityDelivered: quantityDelivered,
		deliveredAt:       deliveredAt,
		deliveredByUserID: deliveredByUserID,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// DishID returns the delivered dish id.
func (r Record) DishID() int64 {
	return r.dishID
}

// QuantityDelivered returns how many units this record accounts for.
func (r Record) QuantityDelivered() int {
	return r.quantityDelivered
}

// DeliveredAt returns when the handover happened.
func (r Record) DeliveredAt() time.Time {
	return r.deliveredAt
}

// DeliveredByUserID returns the id of the staff member who delivered.
func (r Record) DeliveredByUserID() int64 {
	return r.deliveredByUserID
}

// Validate checks that the Record was properly constructed.
func (r Record) Validate() error {
	return r.guard.Validate(ErrRecordIsNotConstructed)
}
