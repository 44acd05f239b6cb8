package commands

import (
	"context"
	"time"

	"tableorder/internal/core/domain/model/cart"
	"tableorder/internal/core/domain/model/delivery"
	"tableorder/internal/core/domain/model/order"
	"tableorder/internal/core/ports"
)

// SubmitOrderCommandHandler handles the business logic for order submission.
//
// Preconditions are checked in a fixed sequence before any network call:
// the submitter must carry a credential, and the session must not already
// have a submission in flight. Exactly one order service call is made per
// accepted attempt, against a snapshot of the cart taken at submission
// time. The cart is cleared only after the order service accepts.
type SubmitOrderCommandHandler struct {
	sessions     ports.TableSessionStore
	orderService ports.OrderServiceClient
	uowFactory   DeliveryUoWFactory
}

// NewSubmitOrderCommandHandler creates a handler for order submissions.
func NewSubmitOrderCommandHandler(
	sessions ports.TableSessionStore,
	orderService ports.OrderServiceClient,
	uowFactory DeliveryUoWFactory,
) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		sessions:     sessions,
		orderService: orderService,
		uowFactory:   uowFactory,
	}
}

// Handle processes the submission and returns the order id assigned by the
// order service.
//
// Failure modes:
//   - ErrRequiresLogin: anonymous submitter, no order service call made.
//   - ErrAlreadySubmitting: another submission holds the session's slot.
//   - ports.ErrOrderServiceUnavailable / ports.ErrOrderRejected: the order
//     service call failed; the cart is left untouched.
func (h *SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	if cmd.Identity().IsAnonymous() {
		return 0, ErrRequiresLogin
	}

	tableSession, err := h.sessions.Get(ctx, cmd.SessionToken())
	if err != nil {
		return 0, err
	}

	if !tableSession.TryBeginSubmission() {
		return 0, ErrAlreadySubmitting
	}
	defer tableSession.EndSubmission()

	now := time.Now().UTC()
	summary := tableSession.Cart().Summary()
	request, err := order.NewRequest(
		cmd.Identity(),
		tableSession.TableNumber(),
		tableSession.Token(),
		summary,
		cmd.Extras(),
		now,
	)
	if err != nil {
		return 0, err
	}

	orderID, err := h.orderService.CreateOrder(ctx, request)
	if err != nil {
		return 0, err
	}

	if err = h.trackOrder(ctx, orderID, summary, now); err != nil {
		return 0, err
	}

	tableSession.Cart().Clear()
	tableSession.Touch(now)

	return orderID, nil
}

// trackOrder starts delivery tracking for the accepted order: its first
// version mirrors the submitted cart snapshot.
func (h *SubmitOrderCommandHandler) trackOrder(
	ctx context.Context,
	orderID int64,
	summary cart.Summary,
	now time.Time,
) error {
	version, err := delivery.NewVersion(
		1,
		delivery.ModificationInitial,
		now,
		itemQuantities(summary.Dishes),
		itemQuantities(summary.Sets),
	)
	if err != nil {
		return err
	}

	state, err := delivery.NewState(orderID, version)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DeliveryStateRepository().Add(ctx, state); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func itemQuantities(lines []cart.SummaryLine) []delivery.ItemQuantity {
	quantities := make([]delivery.ItemQuantity, 0, len(lines))
	for _, line := range lines {
		quantities = append(quantities, delivery.ItemQuantity{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
	}
	return quantities
}
