package order

import (
	"errors"
	"time"

	"orders/internal/core/domain/model/kernel"

	"github.com/govalues/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order is the aggregate root for a purchase order.
//
// Invariants:
//   - Must have a valid unique identifier
//   - totalAmount equals the sum over items of unitPrice × quantity
//   - totalItems equals the sum over items of quantity
//   - Items are created atomically with the order and never mutated afterwards
//   - Status is one of the closed PENDING/PAID/DELIVERED/CANCELLED set
//
// Totals are derived once at creation and carried as stored values from then
// on. After creation the only permitted mutation is a status overwrite.
type Order struct {
	// id is the unique identifier for the order.
	id kernel.UUID

	// totalAmount is the stored sum of item subtotals.
	totalAmount decimal.Decimal

	// totalItems is the stored sum of item quantities.
	totalItems int

	// status is the current lifecycle state.
	status Status

	// createdAt is the creation timestamp (UTC).
	createdAt time.Time

	// items is the ordered collection owned by this order.
	items []Item

	// isConstructed ensures the order was created via a constructor.
	isConstructed bool
}

// NewOrder creates an Order from validated line items, computing the stored
// totals and starting the lifecycle at Pending. An empty item slice is
// accepted and yields zero totals.
func NewOrder(id kernel.UUID, items []Item) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	totals, err := CalculateTotals(items)
	if err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		totalAmount:   totals.Amount,
		totalItems:    totals.Items,
		status:        Pending,
		createdAt:     time.Now().UTC(),
		items:         append([]Item(nil), items...),
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an Order from persistence. Totals are trusted as
// stored and deliberately not recomputed.
func RestoreOrder(
	id kernel.UUID,
	items []Item,
	totalAmount decimal.Decimal,
	totalItems int,
	status Status,
	createdAt time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		totalAmount:   totalAmount,
		totalItems:    totalItems,
		status:        status,
		createdAt:     createdAt,
		items:         append([]Item(nil), items...),
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed for zero-value instances, preventing
// bypass of the constructor validation.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TotalAmount returns the stored monetary total.
func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

// TotalItems returns the stored total unit count.
func (o *Order) TotalItems() int {
	return o.totalItems
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Items returns a copy of the owned line items in their original order.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// ChangeStatus overwrites the order status with the given value.
//
// Any valid status is accepted from any current status; redundant and
// backward overwrites succeed. Only unknown values are rejected.
func (o *Order) ChangeStatus(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	o.status = next
	return nil
}
