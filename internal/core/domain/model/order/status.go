package order

import (
	"fmt"

	"ordermanagement/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct business workflow.
//
// State transitions:
//
//	Pending ──┬──> Confirmed ──┬──> Completed
//	          │                │
//	          └──> Cancelled <─┘
//
// Cancelled and Completed are terminal: no transition leaves them.
// This service itself only drives Pending -> Cancelled; the Confirmed and
// Completed transitions belong to the payment and fulfillment collaborators
// but must be representable here.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status when an order is first created.
	StatusPending

	// StatusConfirmed indicates payment has been captured for the order.
	StatusConfirmed

	// StatusCancelled indicates the order was cancelled. Terminal.
	StatusCancelled

	// StatusCompleted indicates the order was delivered. Terminal.
	StatusCompleted
)

// getStatusStrings returns a map of Status values to their string
// representations, including the invalid zero value.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "UNKNOWN",
		StatusPending:   "PENDING",
		StatusConfirmed: "CONFIRMED",
		StatusCancelled: "CANCELLED",
		StatusCompleted: "COMPLETED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:   "PENDING",
		StatusConfirmed: "CONFIRMED",
		StatusCancelled: "CANCELLED",
		StatusCompleted: "COMPLETED",
	}
}

// Validate checks if the Status value is valid.
// Used to vet Status values arriving from external sources such as the
// database before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status ("PENDING", "CONFIRMED",
// "CANCELLED", "COMPLETED") or "UNKNOWN" for invalid values.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled
//   - Confirmed -> Cancelled
//
// Cancelling from a terminal state (Cancelled, Completed) is rejected with
// an InvalidStateTransitionError rather than silently succeeding, so a
// repeated cancel surfaces as a conflict to the caller.
func (s Status) Cancel() (Status, error) {
	if s != StatusPending && s != StatusConfirmed {
		return 0, errs.NewInvalidStateTransitionError(s.String(), StatusCancelled.String())
	}

	return StatusCancelled, nil
}

// Confirm transitions the status to Confirmed.
//
// Valid transitions:
//   - Pending -> Confirmed (payment captured)
//
// Reserved for the payment collaborator; this service never drives it.
func (s Status) Confirm() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewInvalidStateTransitionError(s.String(), StatusConfirmed.String())
	}

	return StatusConfirmed, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Confirmed -> Completed (delivery confirmed)
//
// Reserved for the fulfillment collaborator; this service never drives it.
// Completed is a final state with no further transitions possible.
func (s Status) Complete() (Status, error) {
	if s != StatusConfirmed {
		return 0, errs.NewInvalidStateTransitionError(s.String(), StatusCompleted.String())
	}

	return StatusCompleted, nil
}
