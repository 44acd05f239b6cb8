// Package queries contains read-side operations of the CQRS architecture.
// Query handlers read the database directly and return plain response
// structs; they never mutate state.
package queries

import (
	"errors"
	"fmt"
	"time"

	"tableorder/internal/pkg/errs"
	"tableorder/internal/pkg/guard"
)

var ErrGetDeliveryStateQueryIsNotConstructed = errors.New(
	"GetDeliveryStateQuery must be created via NewGetDeliveryStateQuery constructor",
)

// GetDeliveryStateQuery retrieves the delivery progress of one order.
//
// Example:
//
//	query, err := NewGetDeliveryStateQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetDeliveryStateQueryHandler(db)
//	state, err := handler.Handle(ctx, query)
type GetDeliveryStateQuery struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

// NewGetDeliveryStateQuery creates a query for the given order id.
func NewGetDeliveryStateQuery(orderID int64) (GetDeliveryStateQuery, error) {
	stateQuery := GetDeliveryStateQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := stateQuery.setOrderID(orderID); err != nil {
		return GetDeliveryStateQuery{}, err
	}

	return stateQuery, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryStateQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryStateQueryIsNotConstructed)
}

// OrderID returns the queried order's id.
func (q GetDeliveryStateQuery) OrderID() int64 {
	return q.orderID
}

func (q *GetDeliveryStateQuery) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%d must be positive", orderID))
	}

	q.orderID = orderID
	return nil
}

// GetDeliveryStateQueryResponse summarizes an order's delivery progress for
// display: current status, version sequence position and delivered totals.
type GetDeliveryStateQueryResponse struct {
	OrderID             int64
	Status              string
	CurrentVersion      int
	ExpectedQuantity    int
	TotalItemsDelivered int
	LastDeliveryAt      *time.Time
}
