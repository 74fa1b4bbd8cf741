// Package customer provides the customer profile aggregate: a per-user
// display name plus an append-only list of saved delivery addresses.
//
// Key business rules:
//   - Profiles are created lazily on the first address save
//   - The address list is append-only; duplicates are kept and nothing is
//     ever deleted or deduplicated
//   - Saving an address overwrites the profile's display name
package customer

import (
	"orderflow/internal/pkg/errs"
)

// DefaultName is used when an address is saved without a display name.
const DefaultName = "Customer"

// Address is a saved delivery address with its display label.
type Address struct {
	label       string
	fullAddress string
}

// NewAddress creates a validated address entry. The full address is
// required; the label falls back to the default display name when empty.
func NewAddress(label, fullAddress string) (Address, error) {
	if fullAddress == "" {
		return Address{}, errs.NewValueIsRequiredError("address")
	}

	if label == "" {
		label = DefaultName
	}

	return Address{label: label, fullAddress: fullAddress}, nil
}

// Label returns the display label of the address ("Home", "Office").
func (a Address) Label() string {
	return a.label
}

// FullAddress returns the full address text.
func (a Address) FullAddress() string {
	return a.fullAddress
}

// Profile is the aggregate root for a customer's saved data.
type Profile struct {
	userID    string
	name      string
	addresses []Address

	isConstructed bool
}

// ErrProfileIsNotConstructed is returned for a Profile not created via
// NewProfile or RestoreProfile.
var ErrProfileIsNotConstructed = errs.NewValueIsRequiredError(
	"Profile must be created via NewProfile or RestoreProfile",
)

// NewProfile creates an empty profile for a user. Called on the first
// address save; reads of absent profiles return a default instead.
func NewProfile(userID string) (*Profile, error) {
	if userID == "" {
		return nil, errs.NewValueIsRequiredError("userId")
	}

	return &Profile{
		userID:        userID,
		name:          DefaultName,
		isConstructed: true,
	}, nil
}

// RestoreProfile reconstructs a profile from persistence.
func RestoreProfile(userID, name string, addresses []Address) (*Profile, error) {
	p, err := NewProfile(userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		p.name = name
	}

	p.addresses = make([]Address, len(addresses))
	copy(p.addresses, addresses)
	return p, nil
}

// Validate ensures the Profile was properly constructed.
func (p *Profile) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProfileIsNotConstructed
	}
	return nil
}

// UserID returns the profile owner's identity.
func (p *Profile) UserID() string {
	return p.userID
}

// Name returns the profile's display name.
func (p *Profile) Name() string {
	return p.name
}

// Addresses returns a copy of the saved address list in insertion order.
func (p *Profile) Addresses() []Address {
	addresses := make([]Address, len(p.addresses))
	copy(addresses, p.addresses)
	return addresses
}

// SaveAddress appends an address to the list and overwrites the display
// name. Duplicates are kept; the list is unbounded.
func (p *Profile) SaveAddress(address Address, name string) {
	p.addresses = append(p.addresses, address)
	if name == "" {
		name = DefaultName
	}
	p.name = name
}
