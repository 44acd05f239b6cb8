package delivery

import (
	"errors"
	"fmt"
	"time"

	"tableorder/internal/pkg/errs"
)

var (
	ErrStateIsNotConstructed = errors.New(
		"delivery state is not constructed, use NewState or RestoreState")

	// ErrVersionOutOfOrder is returned when an appended version does not
	// continue the sequence with exactly currentVersion+1.
	ErrVersionOutOfOrder = errors.New("order version is out of order")
)

// State is the delivery-tracking aggregate of a single order. It holds the
// ordered history of versions and delivery records and folds them into a
// Status.
//
// The aggregate is not safe for concurrent use; callers serialize access
// per order.
type State struct {
	orderID  int64
	versions []Version
	records  []Record
	status   Status

	totalDelivered int
	lastDeliveryAt *time.Time
}

// NewState creates the delivery state of a freshly submitted order from its
// first version. The first version must carry number 1.
func NewState(orderID int64, initial Version) (*State, error) {
	if orderID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%d must be positive", orderID))
	}
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	if initial.Number() != 1 {
		return nil, errors.Join(ErrVersionOutOfOrder,
			fmt.Errorf("first version must be 1, got %d", initial.Number()))
	}

	return &State{
		orderID:  orderID,
		versions: []Version{initial},
		status:   StatusPending,
	}, nil
}

// RestoreState reconstructs a State from persisted history. It recomputes
// delivered totals from the records and trusts the persisted status, which
// may be terminal.
func RestoreState(
	orderID int64,
	versions []Version,
	records []Record,
	status Status,
) (*State, error) {
	if orderID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%d must be positive", orderID))
	}
	if len(versions) == 0 {
		return nil, errs.NewValueIsRequiredError("versions")
	}
	for i, v := range versions {
		if err := v.Validate(); err != nil {
			return nil, err
		}
		if v.Number() != i+1 {
			return nil, errors.Join(ErrVersionOutOfOrder,
				fmt.Errorf("version at position %d has number %d", i, v.Number()))
		}
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	s := &State{
		orderID:  orderID,
		versions: append([]Version(nil), versions...),
		status:   status,
	}
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		s.records = append(s.records, r)
		s.totalDelivered += r.QuantityDelivered()
		at := r.DeliveredAt()
		s.lastDeliveryAt = &at
	}
	return s, nil
}

// OrderID returns the id of the tracked order.
func (s *State) OrderID() int64 {
	return s.orderID
}

// CurrentVersion returns the number of the latest version.
func (s *State) CurrentVersion() int {
	return s.versions[len(s.versions)-1].Number()
}

// Versions returns a copy of the version history, oldest first.
func (s *State) Versions() []Version {
	return append([]Version(nil), s.versions...)
}

// Records returns a copy of the delivery history, oldest first.
func (s *State) Records() []Record {
	return append([]Record(nil), s.records...)
}

// Status returns the current delivery status.
func (s *State) Status() Status {
	return s.status
}

// TotalItemsDelivered returns the sum of quantities across all delivery
// records.
func (s *State) TotalItemsDelivered() int {
	return s.totalDelivered
}

// LastDeliveryAt returns the time of the most recent delivery record, or
// nil when nothing has been delivered.
func (s *State) LastDeliveryAt() *time.Time {
	if s.lastDeliveryAt == nil {
		return nil
	}
	at := *s.lastDeliveryAt
	return &at
}

// ExpectedQuantity returns the total number of items the order is expected
// to deliver: the sum of quantities of the latest version.
func (s *State) ExpectedQuantity() int {
	return s.versions[len(s.versions)-1].TotalOrdered()
}

// AppendVersion records a new order version. The version number must be
// exactly CurrentVersion()+1; anything else is rejected with
// ErrVersionOutOfOrder and the state stays unchanged.
//
// A new version changes the expected quantity, so the status is refolded
// against it unless the status is terminal.
func (s *State) AppendVersion(v Version) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if want := s.CurrentVersion() + 1; v.Number() != want {
		return errors.Join(ErrVersionOutOfOrder,
			fmt.Errorf("expected version %d, got %d", want, v.Number()))
	}

	s.versions = append(s.versions, v)
	return s.refold()
}

// ApplyRecord appends a delivery record and refolds the status against the
// expected quantity of the latest version.
//
// A terminal status never changes: records arriving after cancellation or
// completion are kept in the history but leave the status alone.
func (s *State) ApplyRecord(r Record) error {
	if err := r.Validate(); err != nil {
		return err
	}

	s.records = append(s.records, r)
	s.totalDelivered += r.QuantityDelivered()
	at := r.DeliveredAt()
	if s.lastDeliveryAt == nil || at.After(*s.lastDeliveryAt) {
		s.lastDeliveryAt = &at
	}
	return s.refold()
}

// Cancel marks the order as cancelled. Cancelling an already cancelled
// order is a no-op; a fully delivered order cannot be cancelled.
func (s *State) Cancel() error {
	if s.status == StatusCancelled {
		return nil
	}
	next, err := s.status.Cancel()
	if err != nil {
		return err
	}
	s.status = next
	return nil
}

func (s *State) refold() error {
	next, err := s.status.Advance(s.totalDelivered, s.ExpectedQuantity())
	if err != nil {
		return err
	}
	s.status = next
	return nil
}
