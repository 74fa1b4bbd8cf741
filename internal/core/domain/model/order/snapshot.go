package order

import "time"

// Snapshot is the flat read model of an order. It is the single shape used
// by the query gateway responses, the finalized-order event payload, and the
// audit archive, so every consumer sees the same canonical encoding.
type Snapshot struct {
	TenantID    string            `json:"tenantId"`
	OrderID     string            `json:"orderId"`
	Status      string            `json:"status"`
	CurrentStep string            `json:"currentStep"`
	Items       []ItemSnapshot    `json:"items"`
	Total       float64           `json:"total"`
	Customer    *CustomerSnapshot `json:"customer,omitempty"`
	UpdatedAt   *time.Time        `json:"updatedAt,omitempty"`
}

// ItemSnapshot is one order line in its canonical wire shape.
type ItemSnapshot struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// CustomerSnapshot is the denormalized customer block of an order snapshot.
type CustomerSnapshot struct {
	UserID  string `json:"userId"`
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
}

// UpdatedAtOrEpoch returns the snapshot's update timestamp, or the epoch
// when the record carried none. Used by the query gateway so orders without
// a timestamp sort last in descending order.
func (s Snapshot) UpdatedAtOrEpoch() time.Time {
	if s.UpdatedAt == nil {
		return time.Unix(0, 0).UTC()
	}
	return *s.UpdatedAt
}
