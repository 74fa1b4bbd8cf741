package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state
// machine with a single fixed forward sequence plus cancellation to ensure
// orders follow the kitchen workflow.
//
// State transitions:
//
//	CREATED -> KITCHEN_ASSIGNED -> COOKING -> PACKAGING_WAIT
//	        -> PACKED -> IN_TRANSIT -> DELIVERED (terminal)
//
//	any non-terminal state -> CANCELLED (terminal)
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when a workflow run starts.
	// The order is waiting for a kitchen to pick it up.
	Created

	// KitchenAssigned indicates a kitchen accepted the order.
	KitchenAssigned

	// Cooking indicates preparation has started.
	Cooking

	// PackagingWait indicates cooking finished and the order awaits packaging.
	PackagingWait

	// Packed indicates the order has been packed for dispatch.
	Packed

	// InTransit indicates a courier picked up the order.
	InTransit

	// Delivered indicates the order reached the customer.
	// Terminal; triggers audit archival.
	Delivered

	// Cancelled indicates the order was explicitly cancelled.
	// Terminal; reachable from any non-terminal state.
	Cancelled
)

// statusSequence is the fixed forward path of the workflow.
var statusSequence = []Status{
	Created,
	KitchenAssigned,
	Cooking,
	PackagingWait,
	Packed,
	InTransit,
	Delivered,
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "UNKNOWN",
		Created:         "CREATED",
		KitchenAssigned: "KITCHEN_ASSIGNED",
		Cooking:         "COOKING",
		PackagingWait:   "PACKAGING_WAIT",
		Packed:          "PACKED",
		InTransit:       "IN_TRANSIT",
		Delivered:       "DELIVERED",
		Cancelled:       "CANCELLED",
	}
}

// stepTags maps each status to the tag of the workflow step whose completion
// enters that status. The tag is persisted as the order's currentStep field.
var stepTags = map[Status]string{
	Created:         "order_received",
	KitchenAssigned: "kitchen_assigned",
	Cooking:         "cooking_started",
	PackagingWait:   "awaiting_packaging",
	Packed:          "packed",
	InTransit:       "courier_dispatched",
	Delivered:       "delivered",
	Cancelled:       "cancelled",
}

// StatusFromString parses a persisted or wire status representation.
// Returns an error for unknown values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// String returns the wire representation of the status.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks that the Status is one of the defined workflow states.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// StepTag returns the workflow step tag recorded when this status is entered.
func (s Status) StepTag() string {
	if tag, ok := stepTags[s]; ok {
		return tag
	}
	return "unknown"
}

// Next returns the status that follows in the fixed workflow sequence.
//
// Valid transitions follow statusSequence; Delivered and Cancelled are
// terminal and Unknown is invalid. Returns (0, error) when no forward
// transition is defined from the current status.
func (s Status) Next() (Status, error) {
	if s.IsTerminal() {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is terminal and cannot advance", s.String()))
	}

	for i, st := range statusSequence {
		if st == s {
			return statusSequence[i+1], nil
		}
	}

	return 0, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%s has no defined next state", s.String()))
}

// Cancel transitions the status to Cancelled.
//
// Valid from any non-terminal state. Returns (0, error) when the order is
// already Delivered or Cancelled.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}

	if s.IsTerminal() {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is terminal and cannot be cancelled", s.String()))
	}

	return Cancelled, nil
}

// ValidateCanHaveToken validates the consistency between order status and
// resumption token presence.
//
// Business rules:
//   - Non-terminal orders must carry a live resumption token (they are
//     always awaiting an external signal)
//   - Terminal orders must not carry a token (the run is destroyed)
func (s Status) ValidateCanHaveToken(hasToken bool) error {
	if s.IsTerminal() && hasToken {
		return errs.NewValueIsInvalidErrorWithCause("resumptionToken",
			fmt.Errorf("%s is terminal and cannot hold a live token", s.String()))
	}

	if !s.IsTerminal() && !hasToken {
		return errs.NewValueIsInvalidErrorWithCause("resumptionToken",
			fmt.Errorf("%s awaits a signal and must hold a live token", s.String()))
	}

	return nil
}
