package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to create a purchase order from a
// cart of line items. Items arrive already validated as value objects; an
// empty cart is accepted and produces an order with zero totals.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	items   []order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new purchase order.
// The order identifier is minted by the caller so the handler stays
// deterministic under test.
func NewCreateOrderCommand(orderID kernel.UUID, items []order.Item) (CreateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		orderID: orderID,
		items:   append([]order.Item(nil), items...),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the order to create.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Items returns the line items of the cart.
func (c CreateOrderCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}
