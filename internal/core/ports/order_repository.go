// Package ports defines repository and outbound interfaces for the order
// workflow. These interfaces establish contracts between the core and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderPatch describes a partial merge update of an order record. Only
// non-nil fields are written; everything else retains its prior value.
// The adapter must apply the whole patch as a single atomic update request.
type OrderPatch struct {
	// Status is the new workflow status, if changing.
	Status *order.Status

	// CurrentStep is the tag of the last completed step, if changing.
	CurrentStep *string

	// Items replaces the line items when non-nil.
	Items []order.Item

	// Total replaces the order total when non-nil.
	Total *float64

	// Customer replaces the customer block when non-nil.
	Customer *order.Customer

	// Token updates the stored resumption token. Nil leaves the stored
	// token untouched; the FINAL sentinel clears it (the run awaits no
	// further external step).
	Token *kernel.Token

	// UpdatedAt is the mutation timestamp; always written.
	UpdatedAt time.Time
}

// OrderRepository defines the persistence contract for order records,
// keyed by (tenantId, orderId).
type OrderRepository interface {
	// Create persists a new order record at workflow run start.
	// The order must be valid and not already exist.
	Create(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its composite key. Returns
	// ObjectNotFoundError when no record exists.
	Get(ctx context.Context, tenantID string, id kernel.OrderID) (*order.Order, error)

	// UpdateWithToken applies a partial merge patch only if the stored
	// resumption token still equals expected (a single conditional update
	// request). Returns TokenMismatchError when the token rotated
	// concurrently and ObjectNotFoundError when the record is absent.
	UpdateWithToken(ctx context.Context, tenantID string, id kernel.OrderID,
		expected kernel.Token, patch OrderPatch) error
}

// OrderReader is the query-side contract. The global listing is an explicit
// full scan; it sits behind this interface so a secondary cross-tenant index
// can later replace it without changing callers.
type OrderReader interface {
	// ListByTenant retrieves all orders for one tenant (indexed, cheap).
	ListByTenant(ctx context.Context, tenantID string) ([]order.Snapshot, error)

	// ListAll retrieves every order across all tenants (full scan,
	// expensive). Callers filter in memory.
	ListAll(ctx context.Context) ([]order.Snapshot, error)

	// ListWaitingBefore retrieves non-terminal orders whose last update is
	// older than the cutoff. Used by the stalled-order watchdog.
	ListWaitingBefore(ctx context.Context, cutoff time.Time) ([]order.Snapshot, error)
}
