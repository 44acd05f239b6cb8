package commands

import (
	"errors"

	"tableorder/internal/core/domain/model/kernel"
	"tableorder/internal/core/domain/model/order"
	"tableorder/internal/core/domain/model/session"
	"tableorder/internal/pkg/guard"
)

var (
	ErrSubmitOrderCommandIsNotConstructed = errors.New(
		"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
	)

	// ErrRequiresLogin is returned when an anonymous visitor tries to
	// submit. No order service call is made in that case.
	ErrRequiresLogin = errors.New("order submission requires a logged in user or guest")

	// ErrAlreadySubmitting is returned when the session already has a
	// submission in flight. The caller should simply wait for the first
	// attempt to finish.
	ErrAlreadySubmitting = errors.New("an order submission is already in flight for this session")
)

// SubmitOrderCommand represents a request to turn the session's cart into
// an order at the external order service.
//
// Example:
//
//	cmd, err := NewSubmitOrderCommand(sessionToken, identity, extras)
//	if err != nil {
//	    return fmt.Errorf("invalid submission data: %w", err)
//	}
//
//	handler := NewSubmitOrderCommandHandler(sessions, orderService, uowFactory)
//	orderID, err := handler.Handle(ctx, cmd)
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	sessionToken kernel.UUID
	identity     session.Identity
	extras       order.Extras

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a validated submission command. The session
// token and extras must be constructed values. The identity may be
// anonymous; the handler turns that into ErrRequiresLogin.
func NewSubmitOrderCommand(
	sessionToken kernel.UUID,
	identity session.Identity,
	extras order.Extras,
) (SubmitOrderCommand, error) {
	submitCommand := SubmitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		submitCommand.setSessionToken(sessionToken),
		submitCommand.setIdentity(identity),
		submitCommand.setExtras(extras),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return submitCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// SessionToken returns the table session the submission belongs to.
func (c SubmitOrderCommand) SessionToken() kernel.UUID {
	return c.sessionToken
}

// Identity returns who is submitting.
func (c SubmitOrderCommand) Identity() session.Identity {
	return c.identity
}

// Extras returns the preparation options riding along with the order.
func (c SubmitOrderCommand) Extras() order.Extras {
	return c.extras
}

func (c *SubmitOrderCommand) setSessionToken(sessionToken kernel.UUID) error {
	if err := sessionToken.Validate(); err != nil {
		return err
	}

	c.sessionToken = sessionToken
	return nil
}

func (c *SubmitOrderCommand) setIdentity(identity session.Identity) error {
	c.identity = identity
	return nil
}

func (c *SubmitOrderCommand) setExtras(extras order.Extras) error {
	if err := extras.Validate(); err != nil {
		return err
	}

	c.extras = extras
	return nil
}
