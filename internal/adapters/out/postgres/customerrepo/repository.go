package customerrepo

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/customer"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCustomerRepository implements ports.CustomerRepository using GORM.
type GormCustomerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(string, any) {}

// NewGormCustomerRepository creates a new GORM customer repository. A nil
// tracker is replaced with a no-op, which suits read-only use.
func NewGormCustomerRepository(db *gorm.DB, tracker aggregateTracker) *GormCustomerRepository {
	if tracker == nil {
		tracker = noopTracker{}
	}

	return &GormCustomerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Get retrieves a profile by user identity.
func (r *GormCustomerRepository) Get(ctx context.Context, userID string) (*customer.Profile, error) {
	if userID == "" {
		return nil, errs.NewValueIsRequiredError("userId")
	}

	var dto CustomerDTO
	if err := r.db.WithContext(ctx).First(&dto, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("userId", userID)
		}
		return nil, errs.NewPersistenceError("get profile", err)
	}

	return toDomain(dto)
}

// SaveAddress appends an address and overwrites the display name in one
// atomic upsert. The JSONB concatenation runs inside the database, so two
// concurrent saves both land and neither overwrites the other's entry.
func (r *GormCustomerRepository) SaveAddress(ctx context.Context, userID, name string, address customer.Address) error {
	if userID == "" {
		return errs.NewValueIsRequiredError("userId")
	}

	entry := AddressesJSON{{
		Label:       address.Label(),
		FullAddress: address.FullAddress(),
	}}

	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO customers (user_id, name, addresses)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE
		SET name = excluded.name,
		    addresses = COALESCE(customers.addresses, '[]'::jsonb) || excluded.addresses
	`, userID, name, entry).Error
	if err != nil {
		return errs.NewPersistenceError("save address", err)
	}

	r.tracker.TrackAggregate(userID, nil)
	return nil
}
