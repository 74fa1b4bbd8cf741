package ports

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// EventPublisher is the outbound contract for the finalized-order event.
// The publish is fire-and-forget from the workflow's perspective: the order
// record write is the source of truth and a publish failure never rolls it
// back. Delivery durability is delegated to the event bus.
type EventPublisher interface {
	// PublishOrderFinalized emits one event carrying the full order
	// snapshot after the order reached the terminal delivered status.
	PublishOrderFinalized(ctx context.Context, snapshot order.Snapshot) error
}
