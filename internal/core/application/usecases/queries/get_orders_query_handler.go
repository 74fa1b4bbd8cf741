package queries

import (
	"context"
	"sort"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// GetOrdersQueryHandler lists orders with optional tenant and customer
// filters.
//
// The tenant filter selects the indexed per-tenant read; without it the
// handler falls back to a full scan across all tenants. The customer filter
// is always applied in memory on the scanned rows, which mirrors how small
// result sets are filtered today. Results are sorted by last update, newest
// first; records that never recorded an update sort last.
type GetOrdersQueryHandler struct {
	reader ports.OrderReader
}

// NewGetOrdersQueryHandler creates a handler for order listings.
func NewGetOrdersQueryHandler(reader ports.OrderReader) (GetOrdersQueryHandler, error) {
	if reader == nil {
		return GetOrdersQueryHandler{}, errs.NewValueIsRequiredError("reader")
	}

	return GetOrdersQueryHandler{reader: reader}, nil
}

// Handle executes the listing query and returns order snapshots.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]order.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var snapshots []order.Snapshot
	var err error
	if query.TenantID() != "" {
		snapshots, err = h.reader.ListByTenant(ctx, query.TenantID())
	} else {
		snapshots, err = h.reader.ListAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	if userID := query.UserID(); userID != "" {
		filtered := make([]order.Snapshot, 0, len(snapshots))
		for _, snapshot := range snapshots {
			if snapshot.Customer != nil && snapshot.Customer.UserID == userID {
				filtered = append(filtered, snapshot)
			}
		}
		snapshots = filtered
	}

	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].UpdatedAtOrEpoch().After(snapshots[j].UpdatedAtOrEpoch())
	})

	if snapshots == nil {
		snapshots = make([]order.Snapshot, 0)
	}

	return snapshots, nil
}
