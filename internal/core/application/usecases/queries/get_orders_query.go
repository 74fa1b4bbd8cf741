// Package queries contains read-only operations in the CQRS architecture.
// Queries bypass the aggregate write path and return flattened snapshots
// suitable for direct serialization.
package queries

import (
	"errors"

	"orderflow/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves orders for dashboards and tracking screens.
//
// Both filters are optional:
//   - tenantID restricts the listing to one restaurant/branch (indexed read)
//   - userID restricts the listing to one customer's orders
//
// Without a tenant the listing degrades to a full scan across all tenants.
//
// Example:
//
//	query := NewGetOrdersQuery("restaurante-central", "")
//	handler, _ := NewGetOrdersQueryHandler(reader)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//	fmt.Printf("Found %d orders\n", len(orders))
type GetOrdersQuery struct {
	tenantID string
	userID   string

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates an order listing query. Empty filters mean
// "all tenants" and "all customers" respectively.
func NewGetOrdersQuery(tenantID, userID string) GetOrdersQuery {
	return GetOrdersQuery{
		tenantID: tenantID,
		userID:   userID,
		guard:    guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// TenantID returns the tenant filter ("" for all tenants).
func (q GetOrdersQuery) TenantID() string {
	return q.tenantID
}

// UserID returns the customer filter ("" for all customers).
func (q GetOrdersQuery) UserID() string {
	return q.userID
}
