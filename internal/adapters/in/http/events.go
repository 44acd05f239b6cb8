package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"tableorder/internal/core/application/usecases/commands"
	"tableorder/internal/core/domain/model/delivery"
	"tableorder/internal/core/domain/model/order"
	"tableorder/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Event types accepted on the push endpoint.
const (
	eventTypeDeliveryRecorded = "DELIVERY_RECORDED"
	eventTypeOrderModified    = "ORDER_MODIFIED"
	eventTypeOrderCancelled   = "ORDER_CANCELLED"
)

// eventEnvelope is the message shape the kitchen and staff apps push.
type eventEnvelope struct {
	Type      string       `json:"type"`
	Content   eventContent `json:"content"`
	Sender    string       `json:"sender"`
	Timestamp time.Time    `json:"timestamp"`
}

type eventContent struct {
	OrderID     int64           `json:"orderID"`
	TableNumber int             `json:"tableNumber"`
	Status      string          `json:"status"`
	Timestamp   time.Time       `json:"timestamp"`
	OrderData   json.RawMessage `json:"orderData,omitempty"`
}

// deliveryRecordedData is the orderData payload of a DELIVERY_RECORDED event.
type deliveryRecordedData struct {
	DishID            int64 `json:"dish_id"`
	QuantityDelivered int   `json:"quantity_delivered"`
	DeliveredByUserID int64 `json:"delivered_by_user_id"`
}

// orderModifiedData is the orderData payload of an ORDER_MODIFIED event.
type orderModifiedData struct {
	VersionNumber    int                `json:"version_number"`
	ModificationType string             `json:"modification_type"`
	DishItems        []eventItemPayload `json:"dish_items"`
	SetItems         []eventItemPayload `json:"set_items"`
}

type eventItemPayload struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

// HandleEvent handles POST /api/v1/events. Events for orders this service
// does not track are logged and dropped so a replayed or misrouted message
// never poisons the tracking state. Out-of-order versions are rejected so
// the sender can resync.
func (s *Server) HandleEvent(ctx echo.Context) error {
	var envelope eventEnvelope
	if err := ctx.Bind(&envelope); err != nil {
		return badRequest(ctx, "invalid event envelope")
	}
	if envelope.Content.OrderID <= 0 {
		return badRequest(ctx, "event orderID must be positive")
	}

	var err error
	switch envelope.Type {
	case eventTypeDeliveryRecorded:
		err = s.applyDeliveryRecorded(ctx, envelope)
	case eventTypeOrderModified:
		err = s.applyOrderModified(ctx, envelope)
	case eventTypeOrderCancelled:
		err = s.applyOrderCancelled(ctx, envelope)
	default:
		return badRequest(ctx, fmt.Sprintf("unsupported event type %q", envelope.Type))
	}

	switch {
	case err == nil:
		return ctx.NoContent(http.StatusAccepted)
	case errors.Is(err, errs.ErrObjectNotFound):
		s.logger.Warn("dropped event for untracked order",
			"type", envelope.Type,
			"orderID", envelope.Content.OrderID,
			"sender", envelope.Sender)
		return ctx.NoContent(http.StatusAccepted)
	case errors.Is(err, delivery.ErrVersionOutOfOrder):
		return ctx.JSON(http.StatusConflict, apiError{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return badRequest(ctx, err.Error())
	default:
		s.logger.Error("failed to apply event",
			"type", envelope.Type,
			"orderID", envelope.Content.OrderID,
			"error", err)
		return internalError(ctx, "failed to apply event")
	}
}

func (s *Server) applyDeliveryRecorded(ctx echo.Context, envelope eventEnvelope) error {
	var data deliveryRecordedData
	if err := json.Unmarshal(envelope.Content.OrderData, &data); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderData", err)
	}

	cmd, err := commands.NewRecordDeliveryCommand(
		envelope.Content.OrderID,
		data.DishID,
		data.QuantityDelivered,
		eventTime(envelope),
		data.DeliveredByUserID,
	)
	if err != nil {
		return err
	}
	return s.recordDeliveryHandler.Handle(ctx.Request().Context(), cmd)
}

func (s *Server) applyOrderModified(ctx echo.Context, envelope eventEnvelope) error {
	var data orderModifiedData
	if err := json.Unmarshal(envelope.Content.OrderData, &data); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderData", err)
	}

	kind, err := delivery.ModificationKindFromString(data.ModificationType)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAppendOrderVersionCommand(
		envelope.Content.OrderID,
		data.VersionNumber,
		kind,
		eventTime(envelope),
		itemQuantitiesFromPayload(data.DishItems),
		itemQuantitiesFromPayload(data.SetItems),
	)
	if err != nil {
		return err
	}
	return s.appendVersionHandler.Handle(ctx.Request().Context(), cmd)
}

func (s *Server) applyOrderCancelled(ctx echo.Context, envelope eventEnvelope) error {
	cmd, err := commands.NewCancelOrderCommand(envelope.Content.OrderID)
	if err != nil {
		return err
	}
	return s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
}

// eventTime prefers the content timestamp and falls back to the envelope's.
func eventTime(envelope eventEnvelope) time.Time {
	if !envelope.Content.Timestamp.IsZero() {
		return envelope.Content.Timestamp
	}
	if !envelope.Timestamp.IsZero() {
		return envelope.Timestamp
	}
	return time.Now().UTC()
}

func itemQuantitiesFromPayload(items []eventItemPayload) []delivery.ItemQuantity {
	if len(items) == 0 {
		return nil
	}
	out := make([]delivery.ItemQuantity, 0, len(items))
	for _, item := range items {
		out = append(out, delivery.ItemQuantity{ItemID: item.ItemID, Quantity: item.Quantity})
	}
	return out
}

func orderExtras(body submitOrderRequest) (order.Extras, error) {
	return order.NewExtras(body.BowChili, body.BowNoChili, body.TakeAway, body.ChiliNumber)
}

func parseOrderID(raw string) (int64, error) {
	orderID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	return orderID, nil
}
