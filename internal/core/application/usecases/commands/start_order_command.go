package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var (
	ErrStartOrderCommandIsNotConstructed = errors.New(
		"StartOrderCommand must be created via NewStartOrderCommand constructor",
	)
	ErrTenantIsRequired = errors.New("tenantId is required")
	ErrItemsAreRequired = errors.New("items are required")
	ErrTotalIsInvalid   = errors.New("total must not be negative")
)

// StartOrderCommand represents a request to place a new order and start its
// workflow run. Encapsulates the tenant scope, the line items, the order
// total, and the optional customer details.
//
// Example:
//
//	items := []order.Item{chaufa, soda}
//	cmd, err := NewStartOrderCommand("restaurante-central", items, 41.0, &customer)
//	if err != nil {
//	    return fmt.Errorf("invalid order intake: %w", err)
//	}
//
//	handler := NewStartOrderCommandHandler(updater)
//	snapshot, err := handler.Handle(ctx, cmd)
type StartOrderCommand struct { //nolint:recvcheck //using for validation
	tenantID string
	items    []order.Item
	total    float64
	customer *order.Customer

	guard guard.ConstructorGuard
}

// NewStartOrderCommand creates a command to place a new order.
// Validates that the tenant is set, at least one valid item is present, and
// the total is not negative. The customer block is optional.
func NewStartOrderCommand(
	tenantID string,
	items []order.Item,
	total float64,
	customer *order.Customer,
) (StartOrderCommand, error) {
	cmd := StartOrderCommand{
		customer: customer,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setItems(items),
		cmd.setTotal(total),
	); err != nil {
		return StartOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartOrderCommand) Validate() error {
	return c.guard.Validate(ErrStartOrderCommandIsNotConstructed)
}

// TenantID returns the restaurant/branch scope of the order.
func (c StartOrderCommand) TenantID() string {
	return c.tenantID
}

// Items returns the order's line items.
func (c StartOrderCommand) Items() []order.Item {
	return c.items
}

// Total returns the order total.
func (c StartOrderCommand) Total() float64 {
	return c.total
}

// Customer returns the optional customer details.
func (c StartOrderCommand) Customer() *order.Customer {
	return c.customer
}

func (c *StartOrderCommand) setTenantID(tenantID string) error {
	if tenantID == "" {
		return ErrTenantIsRequired
	}

	c.tenantID = tenantID
	return nil
}

func (c *StartOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = items
	return nil
}

func (c *StartOrderCommand) setTotal(total float64) error {
	if total < 0 {
		return ErrTotalIsInvalid
	}

	c.total = total
	return nil
}
