package commands

import (
	"context"

	"tableorder/internal/core/domain/model/delivery"
)

// RecordDeliveryCommandHandler folds a delivery record into the tracked
// state of an order and persists the result.
//
// Unknown order ids surface as errs.ObjectNotFoundError from the
// repository; the inbound adapter logs and drops those events.
type RecordDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewRecordDeliveryCommandHandler creates a handler for delivery records.
func NewRecordDeliveryCommandHandler(uowFactory DeliveryUoWFactory) RecordDeliveryCommandHandler {
	return RecordDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order's delivery state, applies the record and persists
// the refolded status inside one transaction.
func (h *RecordDeliveryCommandHandler) Handle(ctx context.Context, cmd RecordDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	record, err := delivery.NewRecord(
		cmd.DishID(),
		cmd.QuantityDelivered(),
		cmd.DeliveredAt(),
		cmd.DeliveredByUserID(),
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

	if err = state.ApplyRecord(record); err != nil {
		return err
	}

	if err = stateRepo.Update(ctx, state); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
