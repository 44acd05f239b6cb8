package delivery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableorder/internal/core/domain/model/delivery"
)

func TestStatusValidate(t *testing.T) {
	tests := []struct {
		name    string
		status  delivery.Status
		wantErr bool
	}{
		{"pending is valid", delivery.StatusPending, false},
		{"partially delivered is valid", delivery.StatusPartiallyDelivered, false},
		{"fully delivered is valid", delivery.StatusFullyDelivered, false},
		{"cancelled is valid", delivery.StatusCancelled, false},
		{"unknown is invalid", delivery.StatusUnknown, true},
		{"out of range is invalid", delivery.Status(42), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.status.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "PENDING", delivery.StatusPending.String())
	assert.Equal(t, "PARTIALLY_DELIVERED", delivery.StatusPartiallyDelivered.String())
	assert.Equal(t, "FULLY_DELIVERED", delivery.StatusFullyDelivered.String())
	assert.Equal(t, "CANCELLED", delivery.StatusCancelled.String())
	assert.Equal(t, "UNKNOWN", delivery.Status(42).String())
}

func TestStatusFromString(t *testing.T) {
	status, err := delivery.StatusFromString("PARTIALLY_DELIVERED")
	require.NoError(t, err)
	assert.Equal(t, delivery.StatusPartiallyDelivered, status)

	_, err = delivery.StatusFromString("partially_delivered")
	assert.Error(t, err)

	_, err = delivery.StatusFromString("")
	assert.Error(t, err)
}

func TestStatusAdvance(t *testing.T) {
	tests := []struct {
		name      string
		status    delivery.Status
		delivered int
		expected  int
		want      delivery.Status
	}{
		{"nothing delivered stays pending", delivery.StatusPending, 0, 5, delivery.StatusPending},
		{"some delivered becomes partial", delivery.StatusPending, 2, 5, delivery.StatusPartiallyDelivered},
		{"all delivered becomes full", delivery.StatusPartiallyDelivered, 5, 5, delivery.StatusFullyDelivered},
		{"over-delivered becomes full", delivery.StatusPartiallyDelivered, 7, 5, delivery.StatusFullyDelivered},
		{"fully delivered is sticky", delivery.StatusFullyDelivered, 0, 5, delivery.StatusFullyDelivered},
		{"cancelled is sticky", delivery.StatusCancelled, 5, 5, delivery.StatusCancelled},
		{"zero expected with deliveries is full", delivery.StatusPending, 3, 0, delivery.StatusFullyDelivered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.status.Advance(tt.delivered, tt.expected)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusAdvanceNegativeDelivered(t *testing.T) {
	_, err := delivery.StatusPending.Advance(-1, 5)
	assert.Error(t, err)
}

func TestStatusCancel(t *testing.T) {
	got, err := delivery.StatusPending.Cancel()
	require.NoError(t, err)
	assert.Equal(t, delivery.StatusCancelled, got)

	got, err = delivery.StatusPartiallyDelivered.Cancel()
	require.NoError(t, err)
	assert.Equal(t, delivery.StatusCancelled, got)

	got, err = delivery.StatusCancelled.Cancel()
	require.NoError(t, err)
	assert.Equal(t, delivery.StatusCancelled, got)

	_, err = delivery.StatusFullyDelivered.Cancel()
	assert.Error(t, err)
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, delivery.StatusPending.IsTerminal())
	assert.False(t, delivery.StatusPartiallyDelivered.IsTerminal())
	assert.True(t, delivery.StatusFullyDelivered.IsTerminal())
	assert.True(t, delivery.StatusCancelled.IsTerminal())
}
