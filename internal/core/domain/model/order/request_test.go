package order_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableorder/internal/core/domain/model/cart"
	"tableorder/internal/core/domain/model/kernel"
	"tableorder/internal/core/domain/model/order"
	"tableorder/internal/core/domain/model/session"
)

func testSummary(t *testing.T) cart.Summary {
	t.Helper()
	c := cart.NewCart()
	price, err := kernel.NewPrice(2500)
	require.NoError(t, err)
	require.NoError(t, c.AddItemWithQuantity(cart.ItemKindDish, 10, 2, price))
	return c.Summary()
}

func testTable(t *testing.T) (kernel.TableNumber, kernel.UUID) {
	t.Helper()
	table, err := kernel.NewTableNumber(12)
	require.NoError(t, err)
	return table, kernel.NewUUID()
}

func TestNewRequest(t *testing.T) {
	identity, err := session.AuthenticatedUser(5)
	require.NoError(t, err)
	table, token := testTable(t)
	summary := testSummary(t)
	now := time.Now()

	request, err := order.NewRequest(identity, table, token, summary,
		order.NoExtras(), now)
	require.NoError(t, err)

	assert.NoError(t, request.Validate())
	assert.Equal(t, identity, request.Identity())
	assert.Equal(t, table, request.TableNumber())
	assert.True(t, token.IsEqual(request.TableToken()))
	assert.Equal(t, summary.TotalPrice, request.TotalPrice())
	assert.Equal(t, now, request.CreatedAt())
}

func TestNewRequestRejectsAnonymous(t *testing.T) {
	table, token := testTable(t)

	_, err := order.NewRequest(session.Anonymous(), table, token,
		testSummary(t), order.NoExtras(), time.Now())
	assert.Error(t, err)
}

func TestNewRequestRejectsEmptyCart(t *testing.T) {
	identity, err := session.GuestUser(9)
	require.NoError(t, err)
	table, token := testTable(t)

	_, err = order.NewRequest(identity, table, token,
		cart.NewCart().Summary(), order.NoExtras(), time.Now())
	assert.Error(t, err)
}

func TestRequestValidateZeroValue(t *testing.T) {
	assert.ErrorIs(t, order.Request{}.Validate(), order.ErrRequestIsNotConstructed)
}

func TestNewExtras(t *testing.T) {
	extras, err := order.NewExtras(2, 1, true, 3)
	require.NoError(t, err)

	assert.Equal(t, 2, extras.BowChili())
	assert.Equal(t, 1, extras.BowNoChili())
	assert.True(t, extras.TakeAway())
	assert.Equal(t, 3, extras.ChiliNumber())
	assert.NoError(t, extras.Validate())
}

func TestNewExtrasValidation(t *testing.T) {
	_, err := order.NewExtras(-1, 0, false, 0)
	assert.Error(t, err)

	_, err = order.NewExtras(0, -1, false, 0)
	assert.Error(t, err)

	_, err = order.NewExtras(0, 0, false, -1)
	assert.Error(t, err)

	_, err = order.NewExtras(0, 0, false, 51)
	assert.Error(t, err)
}
