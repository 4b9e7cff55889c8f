package order

import (
	"errors"
	"fmt"

	"shop/internal/pkg/errs"
)

// Status represents the fulfillment state of an order.
//
// State transitions:
//
//	pay             Pending                      -> Paid
//	prepare         Paid, Prepared               -> Prepared (once every line is fully picked)
//	ready to ship   Prepared                     -> ReadyToShip
//	ship            Paid, Prepared, ReadyToShip  -> Shipped
//	cancel          Pending, Paid                -> Cancelled
//
// Staff may also override the status directly (OverrideStatus); that path
// bypasses the table above but still only accepts valid statuses, and it
// never moves an order into or out of Cancelled.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the status of a freshly placed order.
	Pending

	// Paid means the owner (or staff) confirmed payment.
	Paid

	// Prepared means every line has been fully picked.
	Prepared

	// ReadyToShip means the parcel is packed and waiting for the carrier.
	ReadyToShip

	// Shipped is final.
	Shipped

	// Cancelled is final. Reserved stock has been released.
	Cancelled
)

var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a transition attempted from a status outside
// its guard set.
type InvalidTransitionError struct {
	Current   Status
	Requested Status
}

func NewInvalidTransitionError(current, requested Status) *InvalidTransitionError {
	return &InvalidTransitionError{Current: current, Requested: requested}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot move from %s to %s", ErrInvalidTransition, e.Current, e.Requested)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "unknown",
		Pending:     "pending",
		Paid:        "paid",
		Prepared:    "prepared",
		ReadyToShip: "ready_to_ship",
		Shipped:     "shipped",
		Cancelled:   "cancelled",
	}
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Paid, Prepared, ReadyToShip, Shipped, Cancelled}
}

// ParseStatus converts the wire name ("ready_to_ship") into a Status.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses() {
		if st.String() == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that s is one of the valid statuses.
func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsFinal reports whether no regular transition leaves s.
func (s Status) IsFinal() bool {
	return s == Shipped || s == Cancelled
}

// Pay transitions Pending -> Paid.
func (s Status) Pay() (Status, error) {
	if s != Pending {
		return s, NewInvalidTransitionError(s, Paid)
	}
	return Paid, nil
}

// ValidatePreparation checks that preparation progress may be recorded: the
// order must be Paid or already Prepared.
func (s Status) ValidatePreparation() error {
	if s != Paid && s != Prepared {
		return NewInvalidTransitionError(s, Prepared)
	}
	return nil
}

// ReadyToShip transitions Prepared -> ReadyToShip.
func (s Status) ReadyToShip() (Status, error) {
	if s != Prepared {
		return s, NewInvalidTransitionError(s, ReadyToShip)
	}
	return ReadyToShip, nil
}

// Ship transitions Paid, Prepared or ReadyToShip -> Shipped.
func (s Status) Ship() (Status, error) {
	switch s { //nolint:exhaustive // every other status is rejected below
	case Paid, Prepared, ReadyToShip:
		return Shipped, nil
	default:
		return s, NewInvalidTransitionError(s, Shipped)
	}
}

// Cancel transitions Pending or Paid -> Cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Paid {
		return s, NewInvalidTransitionError(s, Cancelled)
	}
	return Cancelled, nil
}
