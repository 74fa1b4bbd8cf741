package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrCompleteStepCommandIsNotConstructed = errors.New(
	"CompleteStepCommand must be created via NewCompleteStepCommand constructor",
)

// CompleteStepCommand represents an external party reporting that the
// current workflow step of an order is done: the kitchen accepted the order,
// cooking finished, the courier picked the package up, and so on.
//
// The order advances exactly one status per command. Which step completes is
// determined by the order's current position, not by the caller.
type CompleteStepCommand struct { //nolint:recvcheck //using for validation
	tenantID    string
	orderID     kernel.OrderID
	completedBy string

	guard guard.ConstructorGuard
}

// NewCompleteStepCommand creates a command to complete the current workflow
// step of an order. The completing actor is optional and defaults to
// "system" when empty.
func NewCompleteStepCommand(
	tenantID string,
	orderID kernel.OrderID,
	completedBy string,
) (CompleteStepCommand, error) {
	cmd := CompleteStepCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setOrderID(orderID),
	); err != nil {
		return CompleteStepCommand{}, err
	}

	if completedBy == "" {
		completedBy = "system"
	}
	cmd.completedBy = completedBy

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteStepCommand) Validate() error {
	return c.guard.Validate(ErrCompleteStepCommandIsNotConstructed)
}

// TenantID returns the restaurant/branch scope of the order.
func (c CompleteStepCommand) TenantID() string {
	return c.tenantID
}

// OrderID returns the identifier of the order to advance.
func (c CompleteStepCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// CompletedBy returns the actor that completed the step.
func (c CompleteStepCommand) CompletedBy() string {
	return c.completedBy
}

func (c *CompleteStepCommand) setTenantID(tenantID string) error {
	if tenantID == "" {
		return ErrTenantIsRequired
	}

	c.tenantID = tenantID
	return nil
}

func (c *CompleteStepCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
