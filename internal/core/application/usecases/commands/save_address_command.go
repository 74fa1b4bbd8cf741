package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/customer"
	"orderflow/internal/pkg/guard"
)

var (
	ErrSaveAddressCommandIsNotConstructed = errors.New(
		"SaveAddressCommand must be created via NewSaveAddressCommand constructor",
	)
	ErrUserIsRequired = errors.New("userId is required")
)

// SaveAddressCommand represents a request to append an address to a
// customer's profile. The profile is created on first save; the display
// name is overwritten on every save.
type SaveAddressCommand struct { //nolint:recvcheck //using for validation
	userID  string
	name    string
	address customer.Address

	guard guard.ConstructorGuard
}

// NewSaveAddressCommand creates a command to save a customer address.
// The name is optional and falls back to the default display name.
func NewSaveAddressCommand(
	userID string,
	name string,
	address customer.Address,
) (SaveAddressCommand, error) {
	cmd := SaveAddressCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setAddress(address),
	); err != nil {
		return SaveAddressCommand{}, err
	}

	if name == "" {
		name = customer.DefaultName
	}
	cmd.name = name

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SaveAddressCommand) Validate() error {
	return c.guard.Validate(ErrSaveAddressCommandIsNotConstructed)
}

// UserID returns the profile owner's identity.
func (c SaveAddressCommand) UserID() string {
	return c.userID
}

// Name returns the display name to store on the profile.
func (c SaveAddressCommand) Name() string {
	return c.name
}

// Address returns the address to append.
func (c SaveAddressCommand) Address() customer.Address {
	return c.address
}

func (c *SaveAddressCommand) setUserID(userID string) error {
	if userID == "" {
		return ErrUserIsRequired
	}

	c.userID = userID
	return nil
}

func (c *SaveAddressCommand) setAddress(address customer.Address) error {
	if address.FullAddress() == "" {
		return errors.New("address is required")
	}

	c.address = address
	return nil
}
