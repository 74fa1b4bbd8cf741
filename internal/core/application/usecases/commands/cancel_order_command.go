package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a request to cancel an order before
// delivery. Cancellation is allowed from any non-terminal status and ends
// the workflow run.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	tenantID    string
	orderID     kernel.OrderID
	cancelledBy string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order. The
// cancelling actor is optional and defaults to "system" when empty.
func NewCancelOrderCommand(
	tenantID string,
	orderID kernel.OrderID,
	cancelledBy string,
) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setOrderID(orderID),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	if cancelledBy == "" {
		cancelledBy = "system"
	}
	cmd.cancelledBy = cancelledBy

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// TenantID returns the restaurant/branch scope of the order.
func (c CancelOrderCommand) TenantID() string {
	return c.tenantID
}

// OrderID returns the identifier of the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// CancelledBy returns the actor that requested the cancellation.
func (c CancelOrderCommand) CancelledBy() string {
	return c.cancelledBy
}

func (c *CancelOrderCommand) setTenantID(tenantID string) error {
	if tenantID == "" {
		return ErrTenantIsRequired
	}

	c.tenantID = tenantID
	return nil
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
