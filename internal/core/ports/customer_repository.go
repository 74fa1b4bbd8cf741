package ports

import (
	"context"

	"orderflow/internal/core/domain/model/customer"
)

// CustomerRepository defines the persistence contract for customer profiles,
// keyed by userId.
type CustomerRepository interface {
	// Get retrieves a profile by user identity. Returns
	// ObjectNotFoundError when no profile exists yet; the read path turns
	// that into a default empty profile, never an error.
	Get(ctx context.Context, userID string) (*customer.Profile, error)

	// SaveAddress appends an address to the user's list and overwrites the
	// display name, creating the profile if absent. The append must be a
	// single atomic upsert so concurrent saves never lose entries.
	SaveAddress(ctx context.Context, userID, name string, address customer.Address) error
}
