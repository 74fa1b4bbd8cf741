package queries

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// GetStalledOrdersQueryHandler lists orders whose run has been waiting on an
// external step longer than the query's threshold. Only orders with a live
// resumption token qualify; terminal orders wait on nothing.
type GetStalledOrdersQueryHandler struct {
	reader ports.OrderReader
}

// NewGetStalledOrdersQueryHandler creates a handler for stalled-order scans.
func NewGetStalledOrdersQueryHandler(reader ports.OrderReader) (GetStalledOrdersQueryHandler, error) {
	if reader == nil {
		return GetStalledOrdersQueryHandler{}, errs.NewValueIsRequiredError("reader")
	}

	return GetStalledOrdersQueryHandler{reader: reader}, nil
}

// Handle executes the scan and returns the stalled orders' snapshots.
func (h GetStalledOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetStalledOrdersQuery,
) ([]order.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().Add(-query.Threshold())
	return h.reader.ListWaitingBefore(ctx, cutoff)
}
