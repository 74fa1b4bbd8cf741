package services

import (
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// Signal is an external step-completion notification for a paused workflow
// run. The token must equal the live resumption token stored on the order;
// stale or unknown tokens are rejected without any state change.
type Signal struct {
	// Token is the resumption capability presented by the caller.
	Token kernel.Token

	// Actor is who completed the step ("kitchen-3", "courier-7").
	Actor string

	// Cancel requests the CANCELLED transition instead of the next state
	// in the fixed sequence.
	Cancel bool
}

// Transition is the engine's decision for one step: the status to enter,
// the step tag to record, and the token for the next wait point (the FINAL
// sentinel when the new status is terminal).
type Transition struct {
	Status order.Status
	Step   string
	Token  kernel.Token
}

// WorkflowEngine is the per-order state-machine driver.
//
// Each order has exactly one logical run. The engine holds no run state:
// the persisted order record's (status, currentStep, resumptionToken)
// triple is the authoritative run position, which makes every run durable
// and resumable across process restarts for free.
//
// Responsibilities:
//   - StartRun validates the intake and creates the order in its initial
//     state with a freshly minted token for the first wait point
//   - NextTransition authorizes a signal against the live token and decides
//     the single next transition
//
// The engine performs no I/O; callers persist each transition through the
// Order State Updater, whose conditional write guarantees that two racing
// signals can never advance the same order past two different steps.
type WorkflowEngine struct{}

// NewWorkflowEngine creates a new WorkflowEngine instance.
func NewWorkflowEngine() WorkflowEngine {
	return WorkflowEngine{}
}

// StartRun begins a workflow run for a new order intake.
//
// The order identifier is minted from the wall clock and the run enters
// Created holding a live token for the first external step. Fails with a
// validation error when the intake lacks line items; nothing is mutated in
// that case.
func (WorkflowEngine) StartRun(
	tenantID string,
	items []order.Item,
	total float64,
	customer *order.Customer,
) (*order.Order, error) {
	return order.NewOrder(tenantID, kernel.NewOrderID(), items, total, customer, kernel.NewToken())
}

// NextTransition authorizes a signal and decides the order's next
// transition.
//
// Returns:
//   - ObjectNotFoundError when the order holds no live token (terminal or
//     never started)
//   - TokenMismatchError when the signal's token is stale or unknown
//   - a validation error when the requested transition is not defined
//
// On success the returned transition carries a freshly minted token for the
// next wait point, or the FINAL sentinel when the new status is terminal.
func (WorkflowEngine) NextTransition(o *order.Order, sig Signal) (Transition, error) {
	if err := o.Validate(); err != nil {
		return Transition{}, err
	}

	if err := o.AuthorizeSignal(sig.Token); err != nil {
		return Transition{}, err
	}

	var next order.Status
	var err error
	if sig.Cancel {
		next, err = o.Status().Cancel()
	} else {
		next, err = o.Status().Next()
	}
	if err != nil {
		return Transition{}, err
	}

	token := kernel.NewToken()
	if next.IsTerminal() {
		token = kernel.FinalToken()
	}

	return Transition{
		Status: next,
		Step:   next.StepTag(),
		Token:  token,
	}, nil
}
