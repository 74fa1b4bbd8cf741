// Package customerrepo provides data transfer objects and mapping functions
// for customer profile persistence.
package customerrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"orderflow/internal/core/domain/model/customer"
)

// CustomerDTO represents the database structure for customer profiles. The
// address list is a JSONB document appended to in place; individual entries
// are never updated or removed.
type CustomerDTO struct {
	UserID    string        `gorm:"primaryKey;column:user_id"`
	Name      string        ``
	Addresses AddressesJSON `gorm:"type:jsonb"`
}

// TableName specifies the database table name for customer profiles.
func (CustomerDTO) TableName() string {
	return "customers"
}

// AddressDTO is one saved address inside the JSONB addresses document.
type AddressDTO struct {
	Label       string `json:"label"`
	FullAddress string `json:"fullAddress"`
}

// AddressesJSON stores the address list as a single JSONB column.
type AddressesJSON []AddressDTO

// Value implements driver.Valuer for JSONB storage.
func (addresses AddressesJSON) Value() (driver.Value, error) {
	return json.Marshal(addresses)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (addresses *AddressesJSON) Scan(value interface{}) error {
	if value == nil {
		*addresses = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, addresses)
	case string:
		return json.Unmarshal([]byte(v), addresses)
	default:
		return fmt.Errorf("unsupported addresses column type %T", value)
	}
}

// toDomain converts a database DTO to a profile aggregate.
func toDomain(dto CustomerDTO) (*customer.Profile, error) {
	addresses := make([]customer.Address, 0, len(dto.Addresses))
	for _, addressDTO := range dto.Addresses {
		address, err := customer.NewAddress(addressDTO.Label, addressDTO.FullAddress)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, address)
	}

	return customer.RestoreProfile(dto.UserID, dto.Name, addresses)
}
