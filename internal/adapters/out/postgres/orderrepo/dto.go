// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling conversion between domain entities and their relational
// representation.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order records.
// The composite primary key (tenant_id, id) scopes orders per tenant; the
// line items are stored as a JSONB document because they are only ever read
// and written as a whole.
type OrderDTO struct {
	TenantID    string `gorm:"primaryKey;column:tenant_id"`
	ID          string `gorm:"primaryKey;column:id"`
	Status      string `gorm:"index"`
	CurrentStep string
	Items       ItemsJSON `gorm:"type:jsonb"`
	Total       float64

	// Customer columns are flattened so the customer filter can run in SQL
	// if the in-memory filtering ever becomes too expensive.
	CustomerUserID  *string `gorm:"index;column:customer_user_id"`
	CustomerName    *string `gorm:"column:customer_name"`
	CustomerAddress *string `gorm:"column:customer_address"`

	// ResumptionToken is NULL once the order is terminal.
	ResumptionToken *string `gorm:"column:resumption_token"`

	// UpdatedAt is NULL for records that predate timestamp tracking.
	UpdatedAt *time.Time
}

// TableName specifies the database table name for order records.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one line item inside the JSONB items document.
type ItemDTO struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// ItemsJSON stores the line items as a single JSONB column.
type ItemsJSON []ItemDTO

// Value implements driver.Valuer for JSONB storage.
func (items ItemsJSON) Value() (driver.Value, error) {
	return json.Marshal(items)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (items *ItemsJSON) Scan(value interface{}) error {
	if value == nil {
		*items = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, items)
	case string:
		return json.Unmarshal([]byte(v), items)
	default:
		return fmt.Errorf("unsupported items column type %T", value)
	}
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		TenantID:    aggregate.TenantID(),
		ID:          aggregate.ID().String(),
		Status:      aggregate.Status().String(),
		CurrentStep: aggregate.CurrentStep(),
		Total:       aggregate.Total(),
		Items:       make(ItemsJSON, 0, len(aggregate.Items())),
	}

	for _, item := range aggregate.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			Price:     item.Price(),
		})
	}

	if c := aggregate.Customer(); c != nil {
		userID, name, address := c.UserID(), c.Name(), c.Address()
		dto.CustomerUserID = &userID
		dto.CustomerName = &name
		dto.CustomerAddress = &address
	}

	if token := aggregate.ResumptionToken(); token != nil {
		value := token.String()
		dto.ResumptionToken = &value
	}

	if updatedAt := aggregate.UpdatedAt(); !updatedAt.IsZero() {
		dto.UpdatedAt = &updatedAt
	}

	return dto
}

// toDomain converts a database DTO back to an order aggregate using
// RestoreOrder, which re-validates the record at the boundary.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.OrderIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.ProductID, itemDTO.Quantity, itemDTO.Price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var customer *order.Customer
	if dto.CustomerUserID != nil {
		name, address := "", ""
		if dto.CustomerName != nil {
			name = *dto.CustomerName
		}
		if dto.CustomerAddress != nil {
			address = *dto.CustomerAddress
		}

		c, customerErr := order.NewCustomer(*dto.CustomerUserID, name, address)
		if customerErr != nil {
			return nil, customerErr
		}
		customer = &c
	}

	var token *kernel.Token
	if dto.ResumptionToken != nil {
		t, tokenErr := kernel.TokenFromString(*dto.ResumptionToken)
		if tokenErr != nil {
			return nil, tokenErr
		}
		token = &t
	}

	var updatedAt time.Time
	if dto.UpdatedAt != nil {
		updatedAt = *dto.UpdatedAt
	}

	return order.RestoreOrder(
		dto.TenantID, id, status, dto.CurrentStep,
		items, dto.Total, customer, token, updatedAt,
	)
}

// toSnapshot converts a database DTO to the read model without rebuilding
// the aggregate. Used by the listing queries, which must tolerate records
// the aggregate validation would reject.
func toSnapshot(dto OrderDTO) order.Snapshot {
	snapshot := order.Snapshot{
		TenantID:    dto.TenantID,
		OrderID:     dto.ID,
		Status:      dto.Status,
		CurrentStep: dto.CurrentStep,
		Total:       dto.Total,
		Items:       make([]order.ItemSnapshot, 0, len(dto.Items)),
		UpdatedAt:   dto.UpdatedAt,
	}

	for _, item := range dto.Items {
		snapshot.Items = append(snapshot.Items, order.ItemSnapshot{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	if dto.CustomerUserID != nil {
		customerSnapshot := &order.CustomerSnapshot{UserID: *dto.CustomerUserID}
		if dto.CustomerName != nil {
			customerSnapshot.Name = *dto.CustomerName
		}
		if dto.CustomerAddress != nil {
			customerSnapshot.Address = *dto.CustomerAddress
		}
		snapshot.Customer = customerSnapshot
	}

	return snapshot
}
