package commands

import (
	"context"

	"tableorder/internal/core/domain/model/delivery"
)

// AppendOrderVersionCommandHandler appends a new version to an order's
// tracked state. Versions arriving out of sequence are rejected with
// delivery.ErrVersionOutOfOrder and leave the state untouched.
type AppendOrderVersionCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewAppendOrderVersionCommandHandler creates a handler for order version
// events.
func NewAppendOrderVersionCommandHandler(uowFactory DeliveryUoWFactory) AppendOrderVersionCommandHandler {
	return AppendOrderVersionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order's delivery state, appends the version and
// persists the refolded status inside one transaction.
func (h *AppendOrderVersionCommandHandler) Handle(ctx context.Context, cmd AppendOrderVersionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	version, err := delivery.NewVersion(
		cmd.VersionNumber(),
		cmd.Kind(),
		cmd.ModifiedAt(),
		cmd.DishesOrdered(),
		cmd.SetsOrdered(),
	)
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

	stateRepo := uow.DeliveryStateRepository()
	state, err := stateRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = state.AppendVersion(version); err != nil {
		return err
	}

	if err = stateRepo.Update(ctx, state); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
