package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"tableorder/internal/core/domain/model/delivery"
	"tableorder/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDeliveryStateQueryHandler reads an order's delivery progress straight
// from the database, bypassing the domain aggregate.
type GetDeliveryStateQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryStateQueryHandler creates a handler for delivery state
// queries. Requires a GORM database connection for query execution.
func NewGetDeliveryStateQueryHandler(db *gorm.DB) GetDeliveryStateQueryHandler {
	return GetDeliveryStateQueryHandler{db: db}
}

// Handle executes the query. Unknown order ids surface as
// errs.ObjectNotFoundError.
func (h GetDeliveryStateQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryStateQuery,
) (GetDeliveryStateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryStateQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			ds.status,
			(SELECT COALESCE(MAX(number), 0)
			   FROM order_versions
			  WHERE order_id = ds.order_id) AS current_version,
			(SELECT COALESCE(SUM(i.quantity), 0)
			   FROM order_version_items i
			   JOIN order_versions v ON v.id = i.version_id
			  WHERE v.order_id = ds.order_id
			    AND v.number = (SELECT MAX(number)
			                      FROM order_versions
			                     WHERE order_id = ds.order_id)) AS expected_quantity,
			(SELECT COALESCE(SUM(quantity), 0)
			   FROM delivery_records
			  WHERE order_id = ds.order_id) AS total_delivered,
			(SELECT MAX(delivered_at)
			   FROM delivery_records
			  WHERE order_id = ds.order_id) AS last_delivery_at
		FROM delivery_states ds
		WHERE ds.order_id = ?
	`, query.OrderID()).Row()

	var (
		status         int
		currentVersion int
		expected       int
		delivered      int
		lastDeliveryAt sql.NullTime
	)

	err := row.Scan(&status, &currentVersion, &expected, &delivered, &lastDeliveryAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetDeliveryStateQueryResponse{},
				errs.NewObjectNotFoundError("orderId", query.OrderID())
		}
		return GetDeliveryStateQueryResponse{}, err
	}

	var last *time.Time
	if lastDeliveryAt.Valid {
		at := lastDeliveryAt.Time
		last = &at
	}

	return GetDeliveryStateQueryResponse{
		OrderID:             query.OrderID(),
		Status:              delivery.Status(status).String(),
		CurrentVersion:      currentVersion,
		ExpectedQuantity:    expected,
		TotalItemsDelivered: delivered,
		LastDeliveryAt:      last,
	}, nil
}
