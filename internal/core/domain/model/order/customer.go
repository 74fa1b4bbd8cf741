package order

import (
	"orderflow/internal/pkg/errs"
)

// Customer is a value object holding the ordering customer's identity and
// delivery details as captured at order creation. It is a denormalized copy;
// the customer profile store is the writable source for saved addresses.
type Customer struct {
	userID  string
	name    string
	address string
}

// NewCustomer creates a validated customer reference.
// The user identifier is required; name and address may be empty when the
// caller checked out anonymously from a kiosk.
func NewCustomer(userID, name, address string) (Customer, error) {
	if userID == "" {
		return Customer{}, errs.NewValueIsRequiredError("userId")
	}

	return Customer{userID: userID, name: name, address: address}, nil
}

// UserID returns the customer's identity as issued by the auth provider.
func (c Customer) UserID() string {
	return c.userID
}

// Name returns the customer's display name.
func (c Customer) Name() string {
	return c.name
}

// Address returns the delivery address captured at checkout.
func (c Customer) Address() string {
	return c.address
}
