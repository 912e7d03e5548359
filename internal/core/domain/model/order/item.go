package order

import (
	"fmt"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/govalues/decimal"
)

// Item is a line item owned by an Order. It references an external product
// and captures the unit price at order time; the price is never re-fetched
// afterwards. The product's display name is not part of the item; it is
// resolved from the catalog at read time and attached to responses only.
//
// Item has no identity of its own outside its parent order.
type Item struct {
	// productID references a Product owned by the remote catalog.
	productID kernel.UUID

	// quantity of units ordered (must be positive).
	quantity int

	// unitPrice captured at order time (must not be negative).
	unitPrice decimal.Decimal
}

// NewItem creates a validated line item.
func NewItem(productID kernel.UUID, quantity int, unitPrice decimal.Decimal) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}

	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	if unitPrice.Sign() < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"unitPrice",
			fmt.Errorf("%s is negative", unitPrice),
		)
	}

	return Item{
		productID: productID,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

// ProductID returns the referenced product identifier.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the number of units ordered.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price per unit captured at order time.
func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// Subtotal returns unitPrice multiplied by quantity.
func (i Item) Subtotal() (decimal.Decimal, error) {
	qty, err := decimal.New(int64(i.quantity), 0)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return i.unitPrice.Mul(qty)
}
