package http

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FlexFloat is a float64 that also accepts quoted numbers. Storefront
// clients are inconsistent about whether prices travel as numbers or
// strings, so the boundary normalizes both forms.
type FlexFloat float64

// UnmarshalJSON accepts 12.5 and "12.5" alike. An empty string decodes to
// zero.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		*f = FlexFloat(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

// FlexInt is an int that also accepts quoted numbers.
type FlexInt int

// UnmarshalJSON accepts 2 and "2" alike.
func (i *FlexInt) UnmarshalJSON(data []byte) error {
	var f FlexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	*i = FlexInt(f)
	return nil
}

// ItemRequest is one line item of an order intake.
type ItemRequest struct {
	ProductID string    `json:"productId"`
	Quantity  FlexInt   `json:"quantity"`
	Price     FlexFloat `json:"price"`
}

// CustomerRequest is the optional customer block of an order intake.
type CustomerRequest struct {
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// StartOrderRequest is the order placement payload.
type StartOrderRequest struct {
	TenantID string           `json:"tenantId"`
	Items    []ItemRequest    `json:"items"`
	Total    FlexFloat        `json:"total"`
	Customer *CustomerRequest `json:"customer"`
}

// CompleteStepRequest reports an external step of an order as done.
type CompleteStepRequest struct {
	TenantID    string `json:"tenantId"`
	OrderID     string `json:"orderId"`
	CompletedBy string `json:"completedBy"`
}

// CancelOrderRequest requests cancellation of an in-flight order.
type CancelOrderRequest struct {
	TenantID    string `json:"tenantId"`
	OrderID     string `json:"orderId"`
	CancelledBy string `json:"cancelledBy"`
}

// AddressRequest is one address to save to a customer profile. The
// storefront sends the address as a plain string; labeled clients send the
// object form. Both decode here, like FlexInt/FlexFloat normalize numbers.
type AddressRequest struct {
	Label       string `json:"label"`
	FullAddress string `json:"fullAddress"`
}

// UnmarshalJSON accepts "Av. Principal 123" and
// {"label": ..., "fullAddress": ...} alike. The flat form carries no label;
// the handler fills it from the request's name field.
func (a *AddressRequest) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AddressRequest{FullAddress: s}
		return nil
	}

	type plain AddressRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = AddressRequest(p)
	return nil
}

// SaveAddressRequest is the profile save payload.
type SaveAddressRequest struct {
	UserID  string         `json:"userId"`
	Name    string         `json:"name"`
	Address AddressRequest `json:"address"`
}

// SignalResponse echoes an accepted workflow signal.
type SignalResponse struct {
	OrderID     string    `json:"orderId"`
	TenantID    string    `json:"tenantId"`
	Status      string    `json:"status"`
	CompletedBy string    `json:"completedBy"`
	Timestamp   time.Time `json:"timestamp"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
