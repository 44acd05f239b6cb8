package cart_test

import (
	"testing"

	"tableorder/internal/core/domain/model/cart"
	"tableorder/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(t *testing.T, amount int64) kernel.Price {
	t.Helper()
	p, err := kernel.NewPrice(amount)
	require.NoError(t, err)
	return p
}

func TestCart_AddItem(t *testing.T) {
	t.Run("adding_same_item_merges_into_one_line", func(t *testing.T) {
		c := cart.NewCart()

		require.NoError(t, c.AddItem(cart.ItemKindDish, 1, price(t, 1000)))
		require.NoError(t, c.AddItem(cart.ItemKindDish, 1, price(t, 1000)))

		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 2, lines[0].Quantity())
	})

	t.Run("dish_and_set_with_same_id_stay_separate", func(t *testing.T) {
		c := cart.NewCart()

		require.NoError(t, c.AddItem(cart.ItemKindDish, 7, price(t, 1000)))
		require.NoError(t, c.AddItem(cart.ItemKindSet, 7, price(t, 5000)))

		summary := c.Summary()
		require.Len(t, summary.Dishes, 1)
		require.Len(t, summary.Sets, 1)
	})

	t.Run("first_unit_price_wins_for_a_line", func(t *testing.T) {
		c := cart.NewCart()

		require.NoError(t, c.AddItem(cart.ItemKindDish, 1, price(t, 1000)))
		require.NoError(t, c.AddItem(cart.ItemKindDish, 1, price(t, 9999)))

		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, int64(1000), lines[0].UnitPrice().Amount())
		assert.Equal(t, int64(2000), c.Summary().TotalPrice.Amount())
	})

	t.Run("rejects_invalid_item_ids", func(t *testing.T) {
		c := cart.NewCart()

		require.Error(t, c.AddItem(cart.ItemKindDish, 0, price(t, 1000)))
		require.Error(t, c.AddItem(cart.ItemKindUnknown, 1, price(t, 1000)))
		assert.True(t, c.IsEmpty())
	})
}

func TestCart_SetQuantity(t *testing.T) {
	t.Run("sets_absolute_quantity", func(t *testing.T) {
		c := cart.NewCart()
		require.NoError(t, c.AddItem(cart.ItemKindDish, 1, price(t, 500)))

		require.NoError(t, c.SetQuantity(cart.ItemKindDish, 1, 5))

		assert.Equal(t, 5, c.Lines()[0].Quantity())
	})

	t.Run("zero_quantity_removes_the_line", func(t *testing.T) {
		c := cart.NewCart()
		require.NoError(t, c.AddItem(cart.ItemKindDish, 1, price(t, 500)))

		require.NoError(t, c.SetQuantity(cart.ItemKindDish, 1, 0))

		assert.True(t, c.IsEmpty())
	})

	t.Run("negative_quantity_clamps_to_removal", func(t *testing.T) {
		c := cart.NewCart()
		require.NoError(t, c.AddItem(cart.ItemKindDish, 1, price(t, 500)))

		require.NoError(t, c.SetQuantity(cart.ItemKindDish, 1, -4))

		assert.True(t, c.IsEmpty())
	})

	t.Run("unknown_line_is_a_noop", func(t *testing.T) {
		c := cart.NewCart()
		require.NoError(t, c.SetQuantity(cart.ItemKindDish, 99, 3))
		assert.True(t, c.IsEmpty())
	})
}

func TestCart_RemoveItem(t *testing.T) {
	t.Run("removes_only_the_named_line", func(t *testing.T) {
		c := cart.NewCart()
		require.NoError(t, c.AddItem(cart.ItemKindDish, 1, price(t, 500)))
		require.NoError(t, c.AddItem(cart.ItemKindSet, 2, price(t, 8000)))

		require.NoError(t, c.RemoveItem(cart.ItemKindDish, 1))

		summary := c.Summary()
		assert.Empty(t, summary.Dishes)
		require.Len(t, summary.Sets, 1)
	})
}

func TestCart_Summary(t *testing.T) {
	t.Run("total_price_is_sum_of_surviving_lines", func(t *testing.T) {
		c := cart.NewCart()
		require.NoError(t, c.AddItemWithQuantity(cart.ItemKindDish, 1, 2, price(t, 1500)))
		require.NoError(t, c.AddItemWithQuantity(cart.ItemKindSet, 3, 1, price(t, 12000)))
		require.NoError(t, c.AddItemWithQuantity(cart.ItemKindDish, 4, 3, price(t, 700)))

		// Mutate: drop one line, adjust another.
		require.NoError(t, c.RemoveItem(cart.ItemKindDish, 4))
		require.NoError(t, c.SetQuantity(cart.ItemKindDish, 1, 4))

		summary := c.Summary()
		assert.Equal(t, int64(4*1500+12000), summary.TotalPrice.Amount())
		assert.Equal(t, 5, summary.TotalItems)
	})

	t.Run("summary_is_stable_for_same_state", func(t *testing.T) {
		c := cart.NewCart()
		require.NoError(t, c.AddItem(cart.ItemKindDish, 2, price(t, 900)))
		require.NoError(t, c.AddItem(cart.ItemKindDish, 1, price(t, 400)))

		first := c.Summary()
		second := c.Summary()

		assert.Equal(t, first, second)
		require.Len(t, first.Dishes, 2)
		// Insertion order preserved.
		assert.Equal(t, int64(2), first.Dishes[0].ItemID)
		assert.Equal(t, int64(1), first.Dishes[1].ItemID)
	})

	t.Run("empty_cart_has_zero_totals", func(t *testing.T) {
		summary := cart.NewCart().Summary()
		assert.Equal(t, int64(0), summary.TotalPrice.Amount())
		assert.Zero(t, summary.TotalItems)
	})
}

func TestCart_Clear(t *testing.T) {
	t.Run("clear_empties_everything", func(t *testing.T) {
		c := cart.NewCart()
		require.NoError(t, c.AddItem(cart.ItemKindDish, 1, price(t, 500)))
		require.NoError(t, c.AddItem(cart.ItemKindSet, 2, price(t, 500)))

		c.Clear()

		assert.True(t, c.IsEmpty())
		assert.Empty(t, c.Lines())
	})
}

func TestItemKindFromString(t *testing.T) {
	t.Run("parses_known_kinds", func(t *testing.T) {
		kind, err := cart.ItemKindFromString("Dish")
		require.NoError(t, err)
		assert.Equal(t, cart.ItemKindDish, kind)

		kind, err = cart.ItemKindFromString("Set")
		require.NoError(t, err)
		assert.Equal(t, cart.ItemKindSet, kind)
	})

	t.Run("rejects_unknown_kinds", func(t *testing.T) {
		_, err := cart.ItemKindFromString("Drink")
		require.Error(t, err)
	})
}
