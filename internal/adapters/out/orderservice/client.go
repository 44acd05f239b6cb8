package orderservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"tableorder/internal/core/domain/model/order"
	"tableorder/internal/core/ports"
)

// DefaultOrderHandlerID is sent when no explicit handler is configured.
// Handler assignment happens on the order service side.
const DefaultOrderHandlerID = 1

const defaultTimeout = 10 * time.Second

// Client implements ports.OrderServiceClient over HTTP.
type Client struct {
	baseURL        string
	orderHandlerID int64
	httpClient     *http.Client
}

// NewClient creates a client for the order service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:        baseURL,
		orderHandlerID: DefaultOrderHandlerID,
		httpClient:     &http.Client{Timeout: defaultTimeout},
	}
}

// CreateOrder submits the order snapshot and returns the id the order
// service assigned.
//
// Error mapping:
//   - transport failures and 5xx replies -> ports.ErrOrderServiceUnavailable
//   - 4xx replies -> ports.ErrOrderRejected
func (c *Client) CreateOrder(ctx context.Context, request order.Request) (int64, error) {
	if err := request.Validate(); err != nil {
		return 0, err
	}

	body, err := json.Marshal(fromDomain(request, c.orderHandlerID))
	if err != nil {
		return 0, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, errors.Join(ports.ErrOrderServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return 0, errors.Join(ports.ErrOrderServiceUnavailable,
			fmt.Errorf("order service replied %d", resp.StatusCode))
	case resp.StatusCode >= http.StatusBadRequest:
		reply, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, errors.Join(ports.ErrOrderRejected,
			fmt.Errorf("order service replied %d: %s", resp.StatusCode, reply))
	}

	var reply createOrderResponseDTO
	if err = json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return 0, errors.Join(ports.ErrOrderServiceUnavailable, err)
	}

	return reply.Data.ID, nil
}
