package orderrepo

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository and ports.OrderReader
// using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// noopTracker is used for read-only repositories created outside a unit of
// work.
type noopTracker struct{}

func (noopTracker) TrackAggregate(string, any) {}

// NewGormOrderRepository creates a new GORM order repository. A nil tracker
// is replaced with a no-op, which suits read-only use.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	if tracker == nil {
		tracker = noopTracker{}
	}

	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Create saves a new order record.
func (r *GormOrderRepository) Create(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if dto.UpdatedAt == nil {
		now := time.Now().UTC()
		dto.UpdatedAt = &now
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("create order", err)
	}

	r.tracker.TrackAggregate(dto.ID, aggregate)
	return nil
}

// Get retrieves an order by its composite key.
func (r *GormOrderRepository) Get(ctx context.Context, tenantID string, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tenant_id = ? AND id = ?", tenantID, id.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, errs.NewPersistenceError("get order", err)
	}

	return toDomain(dto)
}

// UpdateWithToken applies a partial merge patch only while the stored
// resumption token still equals expected. The token condition and the column
// writes travel in one UPDATE, so of two racing signals exactly one lands.
func (r *GormOrderRepository) UpdateWithToken(ctx context.Context, tenantID string, id kernel.OrderID,
	expected kernel.Token, patch ports.OrderPatch,
) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := expected.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("tenant_id = ? AND id = ? AND resumption_token = ?",
			tenantID, id.String(), expected.String()).
		Updates(columnsFor(patch))
	if result.Error != nil {
		return errs.NewPersistenceError("update order", result.Error)
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing record from a rotated token.
		var count int64
		err := r.db.WithContext(ctx).Model(&OrderDTO{}).
			Where("tenant_id = ? AND id = ?", tenantID, id.String()).
			Count(&count).Error
		if err != nil {
			return errs.NewPersistenceError("update order", err)
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", id.String())
		}
		return errs.NewTokenMismatchError(id.String())
	}

	r.tracker.TrackAggregate(id.String(), nil)
	return nil
}

// ListByTenant retrieves all orders of one tenant as snapshots.
func (r *GormOrderRepository) ListByTenant(ctx context.Context, tenantID string) ([]order.Snapshot, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Find(&dtos, "tenant_id = ?", tenantID).Error
	if err != nil {
		return nil, errs.NewPersistenceError("list orders by tenant", err)
	}

	return toSnapshots(dtos), nil
}

// ListAll retrieves every order across all tenants. This is a full table
// scan; callers filter in memory.
func (r *GormOrderRepository) ListAll(ctx context.Context) ([]order.Snapshot, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Find(&dtos).Error; err != nil {
		return nil, errs.NewPersistenceError("list all orders", err)
	}

	return toSnapshots(dtos), nil
}

// ListWaitingBefore retrieves non-terminal orders whose last update is older
// than the cutoff.
func (r *GormOrderRepository) ListWaitingBefore(ctx context.Context, cutoff time.Time) ([]order.Snapshot, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "resumption_token IS NOT NULL AND updated_at < ?", cutoff).Error
	if err != nil {
		return nil, errs.NewPersistenceError("list waiting orders", err)
	}

	return toSnapshots(dtos), nil
}

func toSnapshots(dtos []OrderDTO) []order.Snapshot {
	snapshots := make([]order.Snapshot, 0, len(dtos))
	for _, dto := range dtos {
		snapshots = append(snapshots, toSnapshot(dto))
	}
	return snapshots
}

// columnsFor flattens an OrderPatch into the column map of a single UPDATE.
// Absent fields never appear in the map, so stored values survive untouched.
// The FINAL token sentinel writes NULL, clearing the resumption point.
func columnsFor(patch ports.OrderPatch) map[string]interface{} {
	columns := map[string]interface{}{
		"updated_at": patch.UpdatedAt,
	}

	if patch.Status != nil {
		columns["status"] = patch.Status.String()
	}
	if patch.CurrentStep != nil {
		columns["current_step"] = *patch.CurrentStep
	}
	if patch.Items != nil {
		items := make(ItemsJSON, 0, len(patch.Items))
		for _, item := range patch.Items {
			items = append(items, ItemDTO{
				ProductID: item.ProductID(),
				Quantity:  item.Quantity(),
				Price:     item.Price(),
			})
		}
		columns["items"] = items
	}
	if patch.Total != nil {
		columns["total"] = *patch.Total
	}
	if patch.Customer != nil {
		columns["customer_user_id"] = patch.Customer.UserID()
		columns["customer_name"] = patch.Customer.Name()
		columns["customer_address"] = patch.Customer.Address()
	}
	if patch.Token != nil {
		if patch.Token.IsFinal() {
			columns["resumption_token"] = nil
		} else {
			columns["resumption_token"] = patch.Token.String()
		}
	}

	return columns
}
