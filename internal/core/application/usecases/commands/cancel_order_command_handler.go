package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels an in-flight order. The run ends in the
// cancelled status and the stored resumption token is cleared, so any later
// step-completion signal for the order is rejected.
type CancelOrderCommandHandler struct {
	updater *OrderStateUpdater
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(updater *OrderStateUpdater) (CancelOrderCommandHandler, error) {
	if err := updater.Validate(); err != nil {
		return CancelOrderCommandHandler{}, errs.NewValueIsRequiredErrorWithCause("updater", err)
	}

	return CancelOrderCommandHandler{updater: updater}, nil
}

// Handle processes the cancellation command and returns the order's snapshot
// in its cancelled state.
func (h *CancelOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CancelOrderCommand,
) (order.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	return h.updater.Advance(ctx, cmd.TenantID(), cmd.OrderID(), cmd.CancelledBy(), true)
}
