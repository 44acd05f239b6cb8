package ports

import (
	"context"
	"time"

	"tableorder/internal/core/domain/model/kernel"
	"tableorder/internal/core/domain/model/tablesession"
)

// TableSessionStore holds live table sessions keyed by token. The store is
// injected explicitly; nothing in the application reaches for process-wide
// session state.
type TableSessionStore interface {
	// Add registers a session under its token.
	Add(ctx context.Context, session *tablesession.TableSession) error

	// Get retrieves a session by token. Unknown tokens surface as
	// errs.ObjectNotFoundError.
	Get(ctx context.Context, token kernel.UUID) (*tablesession.TableSession, error)

	// Remove drops a session. Removing an unknown token is a no-op.
	Remove(ctx context.Context, token kernel.UUID) error

	// SweepIdle removes every session with no activity since the deadline
	// and returns how many were dropped.
	SweepIdle(ctx context.Context, deadline time.Time) (int, error)
}
