package tablesession

import (
	"errors"
	"sync/atomic"
	"time"

	"tableorder/internal/core/domain/model/cart"
	"tableorder/internal/core/domain/model/kernel"
	"tableorder/internal/pkg/errs"
)

var ErrSessionIsNotConstructed = errors.New(
	"table session is not constructed, use NewTableSession")

// TableSession binds one table visit to its cart. The session token is the
// capability that proves table presence; it rides along on every order the
// session submits.
//
// The submitting flag is the only mutual exclusion around order submission:
// a second submit attempt while one is in flight is turned away instead of
// producing a duplicate order.
type TableSession struct {
	token       kernel.UUID
	tableNumber kernel.TableNumber
	cart        *cart.Cart
	createdAt   time.Time
	lastTouched time.Time

	submitting atomic.Bool
}

// NewTableSession opens a session for a table with a fresh token and an
// empty cart.
func NewTableSession(tableNumber kernel.TableNumber, now time.Time) (*TableSession, error) {
	if err := tableNumber.Validate(); err != nil {
		return nil, err
	}
	if now.IsZero() {
		return nil, errs.NewValueIsRequiredError("now")
	}

	return &TableSession{
		token:       kernel.NewUUID(),
		tableNumber: tableNumber,
		cart:        cart.NewCart(),
		createdAt:   now,
		lastTouched: now,
	}, nil
}

// Token returns the session token.
func (s *TableSession) Token() kernel.UUID {
	return s.token
}

// TableNumber returns the table this session belongs to.
func (s *TableSession) TableNumber() kernel.TableNumber {
	return s.tableNumber
}

// Cart returns the session's cart. The cart is owned by the session and
// shares its lifetime.
func (s *TableSession) Cart() *cart.Cart {
	return s.cart
}

// CreatedAt returns when the session was opened.
func (s *TableSession) CreatedAt() time.Time {
	return s.createdAt
}

// LastTouched returns the time of the last recorded activity.
func (s *TableSession) LastTouched() time.Time {
	return s.lastTouched
}

// Touch records activity so idle cleanup leaves the session alone.
func (s *TableSession) Touch(now time.Time) {
	if now.After(s.lastTouched) {
		s.lastTouched = now
	}
}

// IdleSince reports whether the session has seen no activity since the
// given deadline.
func (s *TableSession) IdleSince(deadline time.Time) bool {
	return s.lastTouched.Before(deadline)
}

// TryBeginSubmission claims the session's single submission slot. It
// returns false when another submission is already in flight. A successful
// claim must be released with EndSubmission.
func (s *TableSession) TryBeginSubmission() bool {
	return s.submitting.CompareAndSwap(false, true)
}

// EndSubmission releases the submission slot.
func (s *TableSession) EndSubmission() {
	s.submitting.Store(false)
}
