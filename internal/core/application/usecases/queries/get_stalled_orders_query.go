package queries

import (
	"errors"
	"time"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrGetStalledOrdersQueryIsNotConstructed = errors.New(
	"GetStalledOrdersQuery must be created via NewGetStalledOrdersQuery constructor",
)

// GetStalledOrdersQuery retrieves orders that hold a live resumption token
// but have not advanced within the threshold. Used by the watchdog job to
// surface runs that wait unusually long for their next external signal.
type GetStalledOrdersQuery struct {
	threshold time.Duration

	guard guard.ConstructorGuard
}

// NewGetStalledOrdersQuery creates a stalled-order query. The threshold must
// be positive.
func NewGetStalledOrdersQuery(threshold time.Duration) (GetStalledOrdersQuery, error) {
	if threshold <= 0 {
		return GetStalledOrdersQuery{}, errs.NewValueIsInvalidError("threshold")
	}

	return GetStalledOrdersQuery{
		threshold: threshold,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStalledOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStalledOrdersQueryIsNotConstructed)
}

// Threshold returns how long an order may wait before it counts as stalled.
func (q GetStalledOrdersQuery) Threshold() time.Duration {
	return q.threshold
}
