package commands

import (
	"errors"

	"tableorder/internal/pkg/guard"
)

var ErrCleanUpSessionsCommandIsNotConstructed = errors.New(
	"CleanUpSessionsCommand must be created via NewCleanUpSessionsCommand constructor",
)

// CleanUpSessionsCommand triggers removal of table sessions that have been
// idle past the configured time-to-live. Abandoned carts go with them.
type CleanUpSessionsCommand struct {
	guard guard.ConstructorGuard
}

// NewCleanUpSessionsCommand creates a new command to trigger a session sweep.
func NewCleanUpSessionsCommand() CleanUpSessionsCommand {
	return CleanUpSessionsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *CleanUpSessionsCommand) Validate() error {
	return c.guard.Validate(
		ErrCleanUpSessionsCommandIsNotConstructed,
	)
}
