package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are properly
// validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order represents a restaurant order in the system. It is the aggregate root
// that manages the order lifecycle from creation through the kitchen workflow
// to delivery.
//
// Order follows these invariants:
//   - Identity (tenantID, orderID) is immutable after creation
//   - Items must be present and valid; total must be non-negative
//   - Status transitions follow the fixed workflow sequence
//   - Non-terminal orders hold exactly one live resumption token;
//     terminal orders hold none
//   - A terminal order never changes status or items again
//
// The persisted record is the authoritative source of truth for the workflow
// run: the run's position is always reconstructable from the
// (status, currentStep, resumptionToken) triple, so no in-memory run state
// needs to survive a restart.
type Order struct {
	// tenantID scopes the order to a restaurant/branch
	tenantID string

	// id is the time-derived order identifier, unique within the tenant
	id kernel.OrderID

	// status is the current state in the workflow sequence
	status Status

	// currentStep is the tag of the last completed workflow step
	currentStep string

	// items is the ordered sequence of line items
	items []Item

	// total is the order total (non-negative)
	total float64

	// customer is the ordering customer's denormalized details (nil if anonymous)
	customer *Customer

	// resumptionToken is the live capability for the next wait point
	// (nil once the order is terminal)
	resumptionToken *kernel.Token

	// updatedAt is the timestamp of the last persisted mutation
	updatedAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order at the start of a workflow run. The order
// enters the Created status holding the supplied live token for its first
// wait point.
//
// Validation failures return before any field is set:
//   - tenantID must be non-empty
//   - id must be a constructed OrderID
//   - items must be non-empty and individually valid
//   - total must be non-negative
//   - token must be a live (non-FINAL) token
func NewOrder(
	tenantID string,
	id kernel.OrderID,
	items []Item,
	total float64,
	customer *Customer,
	token kernel.Token,
) (*Order, error) {
	o := &Order{
		status:        Created,
		currentStep:   Created.StepTag(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setTenantID(tenantID),
		o.setID(id),
		o.setItems(items),
		o.setTotal(total),
		o.setToken(token),
	); err != nil {
		return nil, err
	}

	o.customer = customer
	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. Unlike NewOrder it
// accepts any valid status, a nil token for terminal orders, and the stored
// update timestamp. The status/token coherence rule is enforced so corrupt
// records are rejected at the boundary.
func RestoreOrder(
	tenantID string,
	id kernel.OrderID,
	status Status,
	currentStep string,
	items []Item,
	total float64,
	customer *Customer,
	token *kernel.Token,
	updatedAt time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	if err := status.ValidateCanHaveToken(token != nil); err != nil {
		return nil, err
	}

	o := &Order{
		status:          status,
		currentStep:     currentStep,
		customer:        customer,
		resumptionToken: token,
		updatedAt:       updatedAt,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setTenantID(tenantID),
		o.setID(id),
		o.setItems(items),
		o.setTotal(total),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity (tenantID, orderID).
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.tenantID == other.tenantID && o.id.IsEqual(other.id)
}

// TenantID returns the restaurant/branch scope of the order.
func (o *Order) TenantID() string {
	return o.tenantID
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.OrderID {
	return o.id
}

// Status returns the current workflow status.
func (o *Order) Status() Status {
	return o.status
}

// CurrentStep returns the tag of the last completed workflow step.
func (o *Order) CurrentStep() string {
	return o.currentStep
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Total returns the order total.
func (o *Order) Total() float64 {
	return o.total
}

// Customer returns the ordering customer's details.
// Returns nil for anonymous orders.
func (o *Order) Customer() *Customer {
	return o.customer
}

// ResumptionToken returns the live token for the current wait point.
// Returns nil once the order is terminal.
func (o *Order) ResumptionToken() *kernel.Token {
	return o.resumptionToken
}

// UpdatedAt returns the timestamp of the last persisted mutation.
// The zero time means the record carried no timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// AuthorizeSignal checks that an external step-completion signal may advance
// this order.
//
// Returns:
//   - ObjectNotFoundError when no live token is stored (the order is
//     terminal or the run never started), so the caller has nothing to resume
//   - TokenMismatchError when the presented token does not match the stored
//     live token; the signal is stale or unknown and must be ignored
func (o *Order) AuthorizeSignal(token kernel.Token) error {
	if o.resumptionToken == nil {
		return errs.NewObjectNotFoundError("resumptionToken", o.id.String())
	}

	if !o.resumptionToken.Matches(token) {
		return errs.NewTokenMismatchError(o.id.String())
	}

	return nil
}

// Snapshot flattens the aggregate into the read model used by queries,
// finalized-order events, and audit archival.
func (o *Order) Snapshot() Snapshot {
	snap := Snapshot{
		TenantID:    o.tenantID,
		OrderID:     o.id.String(),
		Status:      o.status.String(),
		CurrentStep: o.currentStep,
		Total:       o.total,
		Items:       make([]ItemSnapshot, 0, len(o.items)),
	}

	for _, item := range o.items {
		snap.Items = append(snap.Items, ItemSnapshot{
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			Price:     item.Price(),
		})
	}

	if o.customer != nil {
		snap.Customer = &CustomerSnapshot{
			UserID:  o.customer.UserID(),
			Name:    o.customer.Name(),
			Address: o.customer.Address(),
		}
	}

	if !o.updatedAt.IsZero() {
		updatedAt := o.updatedAt
		snap.UpdatedAt = &updatedAt
	}

	return snap
}

func (o *Order) setTenantID(tenantID string) error {
	if tenantID == "" {
		return errs.NewValueIsRequiredError("tenantId")
	}
	o.tenantID = tenantID
	return nil
}

func (o *Order) setID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setTotal(total float64) error {
	if total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%v is negative", total))
	}
	o.total = total
	return nil
}

func (o *Order) setToken(token kernel.Token) error {
	if err := token.Validate(); err != nil {
		return err
	}

	if token.IsFinal() {
		return errs.NewValueIsInvalidErrorWithCause("resumptionToken",
			errors.New("a new order cannot hold the FINAL sentinel"))
	}

	o.resumptionToken = &token
	return nil
}
