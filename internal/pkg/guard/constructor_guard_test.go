package guard_test

import (
	"errors"
	"testing"

	"tableorder/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errWidgetNotConstructed = errors.New("Widget must be created via NewWidget")

func TestConstructorGuardValidate(t *testing.T) {
	t.Run("constructed_guard_passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errWidgetNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errWidgetNotConstructed)

		assert.Equal(t, errWidgetNotConstructed, err)
	})

	t.Run("zero_value_guard_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("copies_keep_their_constructed_state", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		copied := g

		require.NoError(t, copied.Validate(errWidgetNotConstructed))
	})
}

// The guard exists to make zero-value domain objects fail Validate, so
// exercise it the way the value objects embed it.
func TestConstructorGuardInValueObject(t *testing.T) {
	type widget struct {
		name  string
		guard guard.ConstructorGuard
	}

	newWidget := func(name string) widget {
		return widget{name: name, guard: guard.NewConstructorGuard()}
	}

	t.Run("constructed_object_validates", func(t *testing.T) {
		w := newWidget("corkscrew")
		require.NoError(t, w.guard.Validate(errWidgetNotConstructed))
	})

	t.Run("zero_value_object_fails", func(t *testing.T) {
		var w widget
		assert.Equal(t, errWidgetNotConstructed, w.guard.Validate(errWidgetNotConstructed))
	})
}
