package ports

import (
	"context"

	"tableorder/internal/core/domain/model/delivery"
)

// DeliveryStateRepository defines the persistence contract for delivery
// state aggregates. Unknown order ids surface as errs.ObjectNotFoundError.
type DeliveryStateRepository interface {
	// Add persists the state of a newly tracked order.
	// The order id must not already be tracked.
	Add(ctx context.Context, state *delivery.State) error

	// Update persists changes to an already tracked order.
	Update(ctx context.Context, state *delivery.State) error

	// Get retrieves the full delivery state of an order, including its
	// version and delivery histories.
	Get(ctx context.Context, orderID int64) (*delivery.State, error)
}
