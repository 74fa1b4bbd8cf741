package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// CompleteStepCommandHandler advances an order through its workflow run.
// Each handled command moves the order exactly one status forward; the
// delivered status additionally triggers the finalized-order event.
//
// Example:
//
//	handler, _ := NewCompleteStepCommandHandler(updater)
//	cmd, _ := NewCompleteStepCommand("restaurante-central", orderID, "kitchen-3")
//
//	snapshot, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("step completion failed: %w", err)
//	}
//	fmt.Printf("Order %s is now %s", snapshot.OrderID, snapshot.Status)
type CompleteStepCommandHandler struct {
	updater *OrderStateUpdater
}

// NewCompleteStepCommandHandler creates a handler for step completion.
func NewCompleteStepCommandHandler(updater *OrderStateUpdater) (CompleteStepCommandHandler, error) {
	if err := updater.Validate(); err != nil {
		return CompleteStepCommandHandler{}, errs.NewValueIsRequiredErrorWithCause("updater", err)
	}

	return CompleteStepCommandHandler{updater: updater}, nil
}

// Handle processes the step completion command and returns the order's
// snapshot after the transition.
func (h *CompleteStepCommandHandler) Handle(
	ctx context.Context,
	cmd CompleteStepCommand,
) (order.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	return h.updater.Advance(ctx, cmd.TenantID(), cmd.OrderID(), cmd.CompletedBy(), false)
}
