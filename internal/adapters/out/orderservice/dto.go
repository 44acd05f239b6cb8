// Package orderservice provides the HTTP client for the external order
// service. The wire format mirrors the order service's create-order
// contract field for field, including its historical naming quirks.
package orderservice

import (
	"time"

	"tableorder/internal/core/domain/model/order"
)

// createOrderRequestDTO is the JSON body of the create-order call. Field
// names are fixed by the order service contract; Table_token and the mixed
// snake/camel casing are intentional.
type createOrderRequestDTO struct {
	GuestID        *int64        `json:"guest_id"`
	UserID         *int64        `json:"user_id"`
	IsGuest        bool          `json:"is_guest"`
	TableNumber    int           `json:"table_number"`
	OrderHandlerID int64         `json:"order_handler_id"`
	Status         string        `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	TotalPrice     int64         `json:"total_price"`
	DishItems      []dishItemDTO `json:"dish_items"`
	SetItems       []setItemDTO  `json:"set_items"`
	BowChili       int           `json:"bow_chili"`
	BowNoChili     int           `json:"bow_no_chili"`
	TakeAway       bool          `json:"takeAway"`
	ChiliNumber    int           `json:"chiliNumber"`
	TableToken     string        `json:"Table_token"`
}

type dishItemDTO struct {
	DishID   int64 `json:"dish_id"`
	Quantity int   `json:"quantity"`
}

type setItemDTO struct {
	SetID    int64 `json:"set_id"`
	Quantity int   `json:"quantity"`
}

// createOrderResponseDTO is the JSON body of a successful create-order
// reply.
type createOrderResponseDTO struct {
	Data struct {
		ID int64 `json:"id"`
	} `json:"data"`
}

// newOrderStatus is the status every freshly created order starts in.
const newOrderStatus = "pending"

// fromDomain converts an order request snapshot to the wire shape.
func fromDomain(request order.Request, orderHandlerID int64) createOrderRequestDTO {
	var guestID, userID *int64
	isGuest := false
	if id, ok := request.Identity().GuestID(); ok {
		guestID = &id
		isGuest = true
	}
	if id, ok := request.Identity().UserID(); ok {
		userID = &id
	}

	summary := request.Summary()
	dishes := make([]dishItemDTO, 0, len(summary.Dishes))
	for _, line := range summary.Dishes {
		dishes = append(dishes, dishItemDTO{DishID: line.ItemID, Quantity: line.Quantity})
	}
	sets := make([]setItemDTO, 0, len(summary.Sets))
	for _, line := range summary.Sets {
		sets = append(sets, setItemDTO{SetID: line.ItemID, Quantity: line.Quantity})
	}

	extras := request.Extras()
	return createOrderRequestDTO{
		GuestID:        guestID,
		UserID:         userID,
		IsGuest:        isGuest,
		TableNumber:    request.TableNumber().Int(),
		OrderHandlerID: orderHandlerID,
		Status:         newOrderStatus,
		CreatedAt:      request.CreatedAt(),
		UpdatedAt:      request.CreatedAt(),
		TotalPrice:     request.TotalPrice().Amount(),
		DishItems:      dishes,
		SetItems:       sets,
		BowChili:       extras.BowChili(),
		BowNoChili:     extras.BowNoChili(),
		TakeAway:       extras.TakeAway(),
		ChiliNumber:    extras.ChiliNumber(),
		TableToken:     request.TableToken().String(),
	}
}
