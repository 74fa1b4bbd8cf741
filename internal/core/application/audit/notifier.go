// Package audit consumes finalized-order events and writes each order's
// snapshot to archival storage for compliance. Archival runs outside the
// order workflow: a failure here never affects the order record or the
// customer-facing response.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/metrics"
)

// Notifier archives finalized-order snapshots.
//
// The archive key is derived from the order identifier alone, so redelivered
// events overwrite the same object with the same content. That makes the
// handler safe under the at-least-once delivery of the event bus.
type Notifier struct {
	store     ports.ArchiveStore
	collector *metrics.Collector
	log       *slog.Logger
}

// NewNotifier creates an audit notifier. All arguments are required.
func NewNotifier(store ports.ArchiveStore, collector *metrics.Collector, log *slog.Logger) (*Notifier, error) {
	if store == nil {
		return nil, errs.NewValueIsRequiredError("store")
	}
	if collector == nil {
		return nil, errs.NewValueIsRequiredError("collector")
	}
	if log == nil {
		return nil, errs.NewValueIsRequiredError("log")
	}

	return &Notifier{store: store, collector: collector, log: log}, nil
}

// ArchiveKey returns the storage key for an order's audit snapshot.
func ArchiveKey(orderID string) string {
	return fmt.Sprintf("orders/%s.json", orderID)
}

// Archive writes one finalized order's snapshot. Returning an error makes
// the event bus redeliver the event, which is safe because the write is
// idempotent.
func (n *Notifier) Archive(ctx context.Context, snapshot order.Snapshot) error {
	if snapshot.OrderID == "" {
		return errs.NewValueIsRequiredError("orderId")
	}

	body, err := json.Marshal(snapshot)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("snapshot", err)
	}

	key := ArchiveKey(snapshot.OrderID)
	if err := n.store.Put(ctx, key, body); err != nil {
		n.collector.ArchiveFailures.Inc()
		n.log.ErrorContext(ctx, "audit snapshot archive failed",
			"orderId", snapshot.OrderID, "key", key, "error", err)
		return err
	}

	n.collector.SnapshotsArchivedTotal.Inc()
	n.log.InfoContext(ctx, "audit snapshot archived",
		"orderId", snapshot.OrderID, "key", key)
	return nil
}
