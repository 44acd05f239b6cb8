package orderservice_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableorder/internal/adapters/out/orderservice"
	"tableorder/internal/core/domain/model/cart"
	"tableorder/internal/core/domain/model/kernel"
	"tableorder/internal/core/domain/model/order"
	"tableorder/internal/core/domain/model/session"
	"tableorder/internal/core/ports"
)

func guestRequest(t *testing.T) order.Request {
	t.Helper()

	identity, err := session.GuestUser(9)
	require.NoError(t, err)
	table, err := kernel.NewTableNumber(12)
	require.NoError(t, err)

	c := cart.NewCart()
	price, err := kernel.NewPrice(2500)
	require.NoError(t, err)
	require.NoError(t, c.AddItemWithQuantity(cart.ItemKindDish, 10, 2, price))
	setPrice, err := kernel.NewPrice(9000)
	require.NoError(t, err)
	require.NoError(t, c.AddItemWithQuantity(cart.ItemKindSet, 3, 1, setPrice))

	extras, err := order.NewExtras(1, 0, true, 2)
	require.NoError(t, err)

	request, err := order.NewRequest(identity, table, kernel.NewUUID(),
		c.Summary(), extras, time.Now().UTC())
	require.NoError(t, err)
	return request
}

func TestCreateOrderWireFormat(t *testing.T) {
	request := guestRequest(t)

	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":321}}`))
	}))
	defer server.Close()

	client := orderservice.NewClient(server.URL)
	orderID, err := client.CreateOrder(t.Context(), request)
	require.NoError(t, err)
	assert.Equal(t, int64(321), orderID)

	assert.Equal(t, float64(9), captured["guest_id"])
	assert.Nil(t, captured["user_id"])
	assert.Equal(t, true, captured["is_guest"])
	assert.Equal(t, float64(12), captured["table_number"])
	assert.Equal(t, float64(1), captured["order_handler_id"])
	assert.Equal(t, "pending", captured["status"])
	assert.Equal(t, float64(14000), captured["total_price"])
	assert.Equal(t, true, captured["takeAway"])
	assert.Equal(t, float64(2), captured["chiliNumber"])
	assert.Equal(t, float64(1), captured["bow_chili"])
	assert.Equal(t, float64(0), captured["bow_no_chili"])
	assert.Equal(t, request.TableToken().String(), captured["Table_token"])

	dishes, ok := captured["dish_items"].([]any)
	require.True(t, ok)
	require.Len(t, dishes, 1)
	dish := dishes[0].(map[string]any)
	assert.Equal(t, float64(10), dish["dish_id"])
	assert.Equal(t, float64(2), dish["quantity"])

	sets, ok := captured["set_items"].([]any)
	require.True(t, ok)
	require.Len(t, sets, 1)
	set := sets[0].(map[string]any)
	assert.Equal(t, float64(3), set["set_id"])
	assert.Equal(t, float64(1), set["quantity"])
}

func TestCreateOrderRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "table token mismatch", http.StatusBadRequest)
	}))
	defer server.Close()

	client := orderservice.NewClient(server.URL)
	_, err := client.CreateOrder(t.Context(), guestRequest(t))
	assert.ErrorIs(t, err, ports.ErrOrderRejected)
}

func TestCreateOrderServerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := orderservice.NewClient(server.URL)
	_, err := client.CreateOrder(t.Context(), guestRequest(t))
	assert.ErrorIs(t, err, ports.ErrOrderServiceUnavailable)
}

func TestCreateOrderUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	server.Close()

	client := orderservice.NewClient(server.URL)
	_, err := client.CreateOrder(t.Context(), guestRequest(t))
	assert.ErrorIs(t, err, ports.ErrOrderServiceUnavailable)
}

func TestCreateOrderInvalidRequest(t *testing.T) {
	client := orderservice.NewClient("http://localhost:0")
	_, err := client.CreateOrder(t.Context(), order.Request{})
	assert.Error(t, err)
}
