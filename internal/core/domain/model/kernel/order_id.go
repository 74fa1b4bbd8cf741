package kernel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"orderflow/internal/pkg/errs"
)

// orderIDPrefix is the wire prefix of every order identifier.
const orderIDPrefix = "ORD-"

// ErrOrderIDIsNotConstructed indicates a zero-value OrderID that was not
// created via NewOrderID or OrderIDFromString.
var ErrOrderIDIsNotConstructed = errs.NewValueIsRequiredError(
	"OrderID must be created via NewOrderID or OrderIDFromString",
)

// OrderID is a value object identifying an order within a tenant.
// The identifier is derived from the creation wall clock
// ("ORD-<unix-millis>"), which makes it unique per process clock tick and
// keeps lexical ordering roughly chronological.
//
// OrderID is immutable and safe for concurrent use.
type OrderID struct {
	value string
}

// NewOrderID mints an order identifier from the current wall clock.
func NewOrderID() OrderID {
	return OrderID{value: fmt.Sprintf("%s%d", orderIDPrefix, time.Now().UnixMilli())}
}

// OrderIDFromString parses an order identifier received from a caller or
// reconstructed from persistence. The value must carry the "ORD-" prefix
// followed by a decimal timestamp.
func OrderIDFromString(s string) (OrderID, error) {
	if s == "" {
		return OrderID{}, errs.NewValueIsRequiredError("orderId")
	}

	raw, ok := strings.CutPrefix(s, orderIDPrefix)
	if !ok {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%q does not start with %q", s, orderIDPrefix))
	}

	if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}

	return OrderID{value: s}, nil
}

// String returns the wire representation of the identifier.
func (id OrderID) String() string {
	return id.value
}

// IsEqual compares two order identifiers.
func (id OrderID) IsEqual(other OrderID) bool {
	return id.value == other.value
}

// Validate ensures the OrderID was properly constructed.
func (id OrderID) Validate() error {
	if id.value == "" {
		return ErrOrderIDIsNotConstructed
	}
	return nil
}
