package queries

import (
	"errors"

	"orderflow/internal/pkg/guard"
)

var (
	ErrGetProfileQueryIsNotConstructed = errors.New(
		"GetProfileQuery must be created via NewGetProfileQuery constructor",
	)
	ErrUserIsRequired = errors.New("userId is required")
)

// GetProfileQuery retrieves a customer's saved profile by user identity.
type GetProfileQuery struct {
	userID string

	guard guard.ConstructorGuard
}

// NewGetProfileQuery creates a profile lookup query.
func NewGetProfileQuery(userID string) (GetProfileQuery, error) {
	if userID == "" {
		return GetProfileQuery{}, ErrUserIsRequired
	}

	return GetProfileQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetProfileQuery) Validate() error {
	return q.guard.Validate(ErrGetProfileQueryIsNotConstructed)
}

// UserID returns the profile owner's identity.
func (q GetProfileQuery) UserID() string {
	return q.userID
}

// GetProfileQueryResponse is the profile read model. A user that never
// saved anything gets the default name and an empty address list, never an
// error.
type GetProfileQueryResponse struct {
	UserID    string            `json:"userId"`
	Name      string            `json:"name"`
	Addresses []AddressResponse `json:"addresses"`
}

// AddressResponse is one saved address entry.
type AddressResponse struct {
	Label       string `json:"label"`
	FullAddress string `json:"fullAddress"`
}
