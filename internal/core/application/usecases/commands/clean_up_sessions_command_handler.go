package commands

import (
	"context"
	"time"

	"tableorder/internal/core/ports"
)

// CleanUpSessionsCommandHandler sweeps idle table sessions out of the store.
type CleanUpSessionsCommandHandler struct {
	sessions   ports.TableSessionStore
	sessionTTL time.Duration
}

// NewCleanUpSessionsCommandHandler creates a handler sweeping sessions idle
// longer than sessionTTL.
func NewCleanUpSessionsCommandHandler(
	sessions ports.TableSessionStore,
	sessionTTL time.Duration,
) CleanUpSessionsCommandHandler {
	return CleanUpSessionsCommandHandler{
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// Handle removes every session whose last activity is older than the TTL
// and returns how many were swept.
func (h *CleanUpSessionsCommandHandler) Handle(ctx context.Context, cmd CleanUpSessionsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	deadline := time.Now().UTC().Add(-h.sessionTTL)
	return h.sessions.SweepIdle(ctx, deadline)
}
