package queries

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/customer"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// GetProfileQueryHandler retrieves customer profiles. Absent profiles are
// answered with an empty default so the storefront can always render the
// address book.
type GetProfileQueryHandler struct {
	customers ports.CustomerRepository
}

// NewGetProfileQueryHandler creates a handler for profile lookups.
func NewGetProfileQueryHandler(customers ports.CustomerRepository) (GetProfileQueryHandler, error) {
	if customers == nil {
		return GetProfileQueryHandler{}, errs.NewValueIsRequiredError("customers")
	}

	return GetProfileQueryHandler{customers: customers}, nil
}

// Handle executes the profile lookup.
func (h GetProfileQueryHandler) Handle(
	ctx context.Context,
	query GetProfileQuery,
) (GetProfileQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetProfileQueryResponse{}, err
	}

	profile, err := h.customers.Get(ctx, query.UserID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return GetProfileQueryResponse{
				UserID:    query.UserID(),
				Name:      customer.DefaultName,
				Addresses: make([]AddressResponse, 0),
			}, nil
		}
		return GetProfileQueryResponse{}, err
	}

	addresses := profile.Addresses()
	response := GetProfileQueryResponse{
		UserID:    profile.UserID(),
		Name:      profile.Name(),
		Addresses: make([]AddressResponse, 0, len(addresses)),
	}

	for _, address := range addresses {
		response.Addresses = append(response.Addresses, AddressResponse{
			Label:       address.Label(),
			FullAddress: address.FullAddress(),
		})
	}

	return response, nil
}
