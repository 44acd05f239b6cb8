package ports

import (
	"context"
	"errors"

	"tableorder/internal/core/domain/model/order"
)

var (
	// ErrOrderServiceUnavailable is returned when the order service cannot
	// be reached or answers with a server-side failure. The submission may
	// be retried.
	ErrOrderServiceUnavailable = errors.New("order service is unavailable")

	// ErrOrderRejected is returned when the order service answers with a
	// validation failure. Retrying the same request will not help.
	ErrOrderRejected = errors.New("order service rejected the order")
)

// OrderServiceClient is the outbound contract to the external order
// service. Exactly one CreateOrder call is made per submission attempt.
type OrderServiceClient interface {
	// CreateOrder submits an order snapshot and returns the id the order
	// service assigned to it.
	CreateOrder(ctx context.Context, request order.Request) (int64, error)
}
