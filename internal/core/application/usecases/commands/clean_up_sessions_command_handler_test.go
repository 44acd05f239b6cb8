package commands_test

import (
	"testing"
	"time"

	"tableorder/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCleanUpSessionsCommandHandler_SweepsIdleSessions(t *testing.T) {
	sessions := &MockTableSessionStore{}
	sessions.On("SweepIdle", mock.Anything, mock.MatchedBy(func(deadline time.Time) bool {
		// The deadline must sit roughly one TTL in the past.
		expected := time.Now().UTC().Add(-30 * time.Minute)
		return deadline.Sub(expected).Abs() < time.Minute
	})).Return(3, nil)

	handler := commands.NewCleanUpSessionsCommandHandler(sessions, 30*time.Minute)
	cmd := commands.NewCleanUpSessionsCommand()

	swept, err := handler.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, 3, swept)
	sessions.AssertExpectations(t)
}

func TestCleanUpSessionsCommandHandler_RejectsUnconstructedCommand(t *testing.T) {
	sessions := &MockTableSessionStore{}
	handler := commands.NewCleanUpSessionsCommandHandler(sessions, 30*time.Minute)

	_, err := handler.Handle(t.Context(), commands.CleanUpSessionsCommand{})

	require.ErrorIs(t, err, commands.ErrCleanUpSessionsCommandIsNotConstructed)
	sessions.AssertNotCalled(t, "SweepIdle", mock.Anything, mock.Anything)
}
