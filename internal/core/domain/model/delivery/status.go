package delivery

import (
	"fmt"

	"tableorder/internal/pkg/errs"
)

// Status represents the delivery progress of an order.
// It implements a state machine whose transitions are driven by delivery
// records folded against the order's expected quantity.
//
// State transitions:
//
//	Pending ──> PartiallyDelivered ──> FullyDelivered
//	   │               │
//	   └───────────────┴──> Cancelled
//
// FullyDelivered and Cancelled are terminal: the status never regresses
// out of either.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending means nothing has been delivered yet.
	StatusPending

	// StatusPartiallyDelivered means some but not all ordered items have
	// reached the table.
	StatusPartiallyDelivered

	// StatusFullyDelivered means every ordered item has reached the table.
	// This is a terminal state.
	StatusFullyDelivered

	// StatusCancelled means the order was cancelled before completion.
	// This is a terminal state.
	StatusCancelled
)

// getStatusStrings returns a map of Status values to their wire
// representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:            "UNKNOWN",
		StatusPending:            "PENDING",
		StatusPartiallyDelivered: "PARTIALLY_DELIVERED",
		StatusFullyDelivered:     "FULLY_DELIVERED",
		StatusCancelled:          "CANCELLED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:            "PENDING",
		StatusPartiallyDelivered: "PARTIALLY_DELIVERED",
		StatusFullyDelivered:     "FULLY_DELIVERED",
		StatusCancelled:          "CANCELLED",
	}
}

// StatusFromString parses a status from its wire representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("deliveryStatus",
		fmt.Errorf("%q is not a valid delivery status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, PartiallyDelivered, FullyDelivered, Cancelled.
// StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("deliveryStatus",
			fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// String returns the wire name of the status.
// This method implements the fmt.Stringer interface and is safe to call on
// any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusFullyDelivered || s == StatusCancelled
}

// Advance recomputes the status from the cumulative delivered quantity and
// the expected total. Terminal states are sticky: advancing a terminal
// status returns it unchanged.
//
// Thresholds:
//   - delivered == 0            -> Pending
//   - 0 < delivered < expected  -> PartiallyDelivered
//   - delivered >= expected     -> FullyDelivered
func (s Status) Advance(delivered, expected int) (Status, error) {
	if delivered < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"delivered",
			fmt.Errorf("%d is negative", delivered),
		)
	}
	if s.IsTerminal() {
		return s, nil
	}

	switch {
	case delivered == 0:
		return StatusPending, nil
	case delivered >= expected:
		return StatusFullyDelivered, nil
	default:
		return StatusPartiallyDelivered, nil
	}
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled
//   - PartiallyDelivered -> Cancelled
//   - Cancelled -> Cancelled (idempotent)
//
// Invalid transitions:
//   - FullyDelivered -> Cancelled (completed orders cannot be cancelled)
func (s Status) Cancel() (Status, error) {
	if s == StatusFullyDelivered {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"deliveryStatus",
			fmt.Errorf("%s cannot be cancelled", s.String()),
		)
	}

	return StatusCancelled, nil
}
