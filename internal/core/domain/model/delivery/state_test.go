package delivery_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableorder/internal/core/domain/model/delivery"
)

func mustVersion(t *testing.T, number int, kind delivery.ModificationKind,
	dishes, sets []delivery.ItemQuantity) delivery.Version {
	t.Helper()
	v, err := delivery.NewVersion(number, kind, time.Now(), dishes, sets)
	require.NoError(t, err)
	return v
}

func mustRecord(t *testing.T, dishID int64, qty int) delivery.Record {
	t.Helper()
	r, err := delivery.NewRecord(dishID, qty, time.Now(), 7)
	require.NoError(t, err)
	return r
}

func newPendingState(t *testing.T, expected int) *delivery.State {
	t.Helper()
	v := mustVersion(t, 1, delivery.ModificationInitial,
		[]delivery.ItemQuantity{{ItemID: 10, Quantity: expected}}, nil)
	s, err := delivery.NewState(42, v)
	require.NoError(t, err)
	return s
}

func TestNewState(t *testing.T) {
	s := newPendingState(t, 3)

	assert.Equal(t, int64(42), s.OrderID())
	assert.Equal(t, 1, s.CurrentVersion())
	assert.Equal(t, delivery.StatusPending, s.Status())
	assert.Equal(t, 3, s.ExpectedQuantity())
	assert.Zero(t, s.TotalItemsDelivered())
	assert.Nil(t, s.LastDeliveryAt())
}

func TestNewStateRejectsInvalidInput(t *testing.T) {
	v := mustVersion(t, 1, delivery.ModificationInitial,
		[]delivery.ItemQuantity{{ItemID: 10, Quantity: 1}}, nil)

	_, err := delivery.NewState(0, v)
	assert.Error(t, err)

	_, err = delivery.NewState(42, delivery.Version{})
	assert.Error(t, err)

	v2 := mustVersion(t, 2, delivery.ModificationInitial,
		[]delivery.ItemQuantity{{ItemID: 10, Quantity: 1}}, nil)
	_, err = delivery.NewState(42, v2)
	assert.ErrorIs(t, err, delivery.ErrVersionOutOfOrder)
}

func TestApplyRecordFoldsStatus(t *testing.T) {
	s := newPendingState(t, 5)

	require.NoError(t, s.ApplyRecord(mustRecord(t, 10, 2)))
	assert.Equal(t, delivery.StatusPartiallyDelivered, s.Status())
	assert.Equal(t, 2, s.TotalItemsDelivered())
	require.NotNil(t, s.LastDeliveryAt())

	require.NoError(t, s.ApplyRecord(mustRecord(t, 10, 3)))
	assert.Equal(t, delivery.StatusFullyDelivered, s.Status())
	assert.Equal(t, 5, s.TotalItemsDelivered())
}

func TestApplyRecordOverDelivery(t *testing.T) {
	s := newPendingState(t, 2)

	require.NoError(t, s.ApplyRecord(mustRecord(t, 10, 5)))
	assert.Equal(t, delivery.StatusFullyDelivered, s.Status())
	assert.Equal(t, 5, s.TotalItemsDelivered())
}

func TestAppendVersionRaisesExpectedQuantity(t *testing.T) {
	s := newPendingState(t, 2)
	require.NoError(t, s.ApplyRecord(mustRecord(t, 10, 2)))
	require.Equal(t, delivery.StatusFullyDelivered, s.Status())

	// FullyDelivered is terminal, a later version does not reopen the order.
	v2 := mustVersion(t, 2, delivery.ModificationAdded,
		[]delivery.ItemQuantity{{ItemID: 10, Quantity: 4}}, nil)
	require.NoError(t, s.AppendVersion(v2))
	assert.Equal(t, 2, s.CurrentVersion())
	assert.Equal(t, 4, s.ExpectedQuantity())
	assert.Equal(t, delivery.StatusFullyDelivered, s.Status())
}

func TestAppendVersionRefoldsWhenNotTerminal(t *testing.T) {
	s := newPendingState(t, 5)
	require.NoError(t, s.ApplyRecord(mustRecord(t, 10, 3)))
	require.Equal(t, delivery.StatusPartiallyDelivered, s.Status())

	// Shrinking the order below the delivered count completes it.
	v2 := mustVersion(t, 2, delivery.ModificationRemoved,
		[]delivery.ItemQuantity{{ItemID: 10, Quantity: 3}}, nil)
	require.NoError(t, s.AppendVersion(v2))
	assert.Equal(t, delivery.StatusFullyDelivered, s.Status())
}

func TestAppendVersionShrinkToEmptyCompletes(t *testing.T) {
	s := newPendingState(t, 5)
	require.NoError(t, s.ApplyRecord(mustRecord(t, 10, 2)))
	require.Equal(t, delivery.StatusPartiallyDelivered, s.Status())

	// Removing every remaining item leaves nothing expected: what was
	// delivered is all there is, so the order completes.
	v2 := mustVersion(t, 2, delivery.ModificationRemoved, nil, nil)
	require.NoError(t, s.AppendVersion(v2))
	assert.Equal(t, 0, s.ExpectedQuantity())
	assert.Equal(t, delivery.StatusFullyDelivered, s.Status())
}

func TestAppendVersionOutOfOrder(t *testing.T) {
	s := newPendingState(t, 5)

	tests := []struct {
		name   string
		number int
	}{
		{"skipped version", 3},
		{"repeated version", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustVersion(t, tt.number, delivery.ModificationAdded,
				[]delivery.ItemQuantity{{ItemID: 11, Quantity: 1}}, nil)
			err := s.AppendVersion(v)
			assert.ErrorIs(t, err, delivery.ErrVersionOutOfOrder)
			assert.Equal(t, 1, s.CurrentVersion())
			assert.Equal(t, 5, s.ExpectedQuantity())
		})
	}
}

func TestCancelIsTerminal(t *testing.T) {
	s := newPendingState(t, 5)
	require.NoError(t, s.ApplyRecord(mustRecord(t, 10, 1)))

	require.NoError(t, s.Cancel())
	assert.Equal(t, delivery.StatusCancelled, s.Status())

	// Records after cancellation are kept but never change the status.
	require.NoError(t, s.ApplyRecord(mustRecord(t, 10, 10)))
	assert.Equal(t, delivery.StatusCancelled, s.Status())
	assert.Equal(t, 11, s.TotalItemsDelivered())

	// Cancelling twice is harmless.
	require.NoError(t, s.Cancel())
	assert.Equal(t, delivery.StatusCancelled, s.Status())
}

func TestCancelFullyDeliveredFails(t *testing.T) {
	s := newPendingState(t, 1)
	require.NoError(t, s.ApplyRecord(mustRecord(t, 10, 1)))
	require.Equal(t, delivery.StatusFullyDelivered, s.Status())

	assert.Error(t, s.Cancel())
	assert.Equal(t, delivery.StatusFullyDelivered, s.Status())
}

func TestRestoreState(t *testing.T) {
	v1 := mustVersion(t, 1, delivery.ModificationInitial,
		[]delivery.ItemQuantity{{ItemID: 10, Quantity: 4}}, nil)
	v2 := mustVersion(t, 2, delivery.ModificationAdded,
		[]delivery.ItemQuantity{{ItemID: 10, Quantity: 4}},
		[]delivery.ItemQuantity{{ItemID: 3, Quantity: 2}})
	r1 := mustRecord(t, 10, 2)

	s, err := delivery.RestoreState(42,
		[]delivery.Version{v1, v2}, []delivery.Record{r1},
		delivery.StatusPartiallyDelivered)
	require.NoError(t, err)

	assert.Equal(t, 2, s.CurrentVersion())
	assert.Equal(t, 6, s.ExpectedQuantity())
	assert.Equal(t, 2, s.TotalItemsDelivered())
	assert.Equal(t, delivery.StatusPartiallyDelivered, s.Status())
	require.NotNil(t, s.LastDeliveryAt())
	assert.Equal(t, r1.DeliveredAt(), *s.LastDeliveryAt())
}

func TestRestoreStateRejectsGappedVersions(t *testing.T) {
	v1 := mustVersion(t, 1, delivery.ModificationInitial,
		[]delivery.ItemQuantity{{ItemID: 10, Quantity: 4}}, nil)
	v3 := mustVersion(t, 3, delivery.ModificationAdded,
		[]delivery.ItemQuantity{{ItemID: 10, Quantity: 5}}, nil)

	_, err := delivery.RestoreState(42,
		[]delivery.Version{v1, v3}, nil, delivery.StatusPending)
	assert.ErrorIs(t, err, delivery.ErrVersionOutOfOrder)
}

func TestNewVersionValidation(t *testing.T) {
	_, err := delivery.NewVersion(0, delivery.ModificationInitial, time.Now(), nil, nil)
	assert.Error(t, err)

	_, err = delivery.NewVersion(1, delivery.ModificationUnknown, time.Now(), nil, nil)
	assert.Error(t, err)

	_, err = delivery.NewVersion(1, delivery.ModificationInitial, time.Time{}, nil, nil)
	assert.Error(t, err)

	_, err = delivery.NewVersion(1, delivery.ModificationInitial, time.Now(),
		[]delivery.ItemQuantity{{ItemID: 10, Quantity: 0}}, nil)
	assert.Error(t, err)
}

func TestNewRecordValidation(t *testing.T) {
	now := time.Now()

	_, err := delivery.NewRecord(0, 1, now, 7)
	assert.Error(t, err)

	_, err = delivery.NewRecord(10, 0, now, 7)
	assert.Error(t, err)

	_, err = delivery.NewRecord(10, 1, time.Time{}, 7)
	assert.Error(t, err)

	_, err = delivery.NewRecord(10, 1, now, 0)
	assert.Error(t, err)
}
