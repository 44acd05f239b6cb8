package commands

import (
	"context"
)

// CancelOrderCommandHandler marks a tracked order as cancelled. Cancelled
// is terminal: later delivery records keep arriving into the history but
// never change the status again.
type CancelOrderCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for cancellation events.
func NewCancelOrderCommandHandler(uowFactory DeliveryUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order's delivery state, cancels it and persists the
// result inside one transaction.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stateRepo := uow.DeliveryStateRepository()
	state, err := stateRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = state.Cancel(); err != nil {
		return err
	}

	if err = stateRepo.Update(ctx, state); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
