package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Item is a value object representing one order line. Line items are
// normalized into this single canonical shape at ingestion time regardless
// of the wire encoding they arrived in.
type Item struct {
	productID string
	quantity  int
	price     float64
}

// NewItem creates a validated line item.
// Product ID must be non-empty, quantity positive, price non-negative.
func NewItem(productID string, quantity int, price float64) (Item, error) {
	if productID == "" {
		return Item{}, errs.NewValueIsRequiredError("productId")
	}

	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	if price < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%v is negative", price))
	}

	return Item{productID: productID, quantity: quantity, price: price}, nil
}

// ProductID returns the product identifier.
func (i Item) ProductID() string {
	return i.productID
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// Price returns the unit price.
func (i Item) Price() float64 {
	return i.price
}

// Validate ensures the item was created via NewItem.
func (i Item) Validate() error {
	if i.productID == "" {
		return errs.NewValueIsRequiredError("productId")
	}
	return nil
}
