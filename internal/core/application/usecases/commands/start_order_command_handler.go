package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// StartOrderCommandHandler handles order placement. Mints the order identity,
// creates the record in its initial status, and returns the snapshot so
// callers learn the server-assigned orderId and first resumption point.
//
// Example:
//
//	handler, _ := NewStartOrderCommandHandler(updater)
//	cmd, _ := NewStartOrderCommand("restaurante-central", items, 41.0, nil)
//
//	snapshot, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
//	fmt.Printf("Order %s placed, awaiting kitchen", snapshot.OrderID)
type StartOrderCommandHandler struct {
	updater *OrderStateUpdater
}

// NewStartOrderCommandHandler creates a handler for order placement.
func NewStartOrderCommandHandler(updater *OrderStateUpdater) (StartOrderCommandHandler, error) {
	if err := updater.Validate(); err != nil {
		return StartOrderCommandHandler{}, errs.NewValueIsRequiredErrorWithCause("updater", err)
	}

	return StartOrderCommandHandler{updater: updater}, nil
}

// Handle processes the order placement command and returns the created
// order's snapshot.
func (h *StartOrderCommandHandler) Handle(
	ctx context.Context,
	cmd StartOrderCommand,
) (order.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	return h.updater.Initialize(ctx, cmd.TenantID(), cmd.Items(), cmd.Total(), cmd.Customer())
}
