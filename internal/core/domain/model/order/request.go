package order

import (
	"errors"
	"time"

	"tableorder/internal/core/domain/model/cart"
	"tableorder/internal/core/domain/model/kernel"
	"tableorder/internal/core/domain/model/session"
	"tableorder/internal/pkg/errs"
	"tableorder/internal/pkg/guard"
)

var ErrRequestIsNotConstructed = errors.New(
	"order request is not constructed, use NewRequest")

// Request is the immutable snapshot handed to the order service. It is
// built once from the cart summary at submission time; later cart edits
// never leak into an in-flight request.
type Request struct {
	identity    session.Identity
	tableNumber kernel.TableNumber
	tableToken  kernel.UUID
	summary     cart.Summary
	extras      Extras
	createdAt   time.Time

	guard guard.ConstructorGuard
}

// NewRequest creates a validated order Request.
//
// The identity must carry a credential (anonymous visitors cannot order),
// the summary must contain at least one line, and the table number and
// token must be constructed.
func NewRequest(
	identity session.Identity,
	tableNumber kernel.TableNumber,
	tableToken kernel.UUID,
	summary cart.Summary,
	extras Extras,
	createdAt time.Time,
) (Request, error) {
	if identity.IsAnonymous() {
		return Request{}, errs.NewValueIsRequiredError("identity")
	}
	if err := tableNumber.Validate(); err != nil {
		return Request{}, err
	}
	if err := tableToken.Validate(); err != nil {
		return Request{}, err
	}
	if len(summary.Dishes) == 0 && len(summary.Sets) == 0 {
		return Request{}, errs.NewValueIsRequiredError("items")
	}
	if err := extras.Validate(); err != nil {
		return Request{}, err
	}
	if createdAt.IsZero() {
		return Request{}, errs.NewValueIsRequiredError("createdAt")
	}

	return Request{
		identity:    identity,
		tableNumber: tableNumber,
		tableToken:  tableToken,
		summary:     summary,
		extras:      extras,
		createdAt:   createdAt,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// Identity returns who placed the order.
func (r Request) Identity() session.Identity {
	return r.identity
}

// TableNumber returns the ordering table.
func (r Request) TableNumber() kernel.TableNumber {
	return r.tableNumber
}

// TableToken returns the session token proving table presence.
func (r Request) TableToken() kernel.UUID {
	return r.tableToken
}

// Summary returns the snapshotted cart projection.
func (r Request) Summary() cart.Summary {
	return r.summary
}

// Extras returns the preparation options.
func (r Request) Extras() Extras {
	return r.extras
}

// CreatedAt returns when the snapshot was taken.
func (r Request) CreatedAt() time.Time {
	return r.createdAt
}

// TotalPrice returns the snapshotted order total.
func (r Request) TotalPrice() kernel.Price {
	return r.summary.TotalPrice
}

// Validate checks that the Request was properly constructed.
func (r Request) Validate() error {
	return r.guard.Validate(ErrRequestIsNotConstructed)
}
