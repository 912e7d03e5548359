package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate together with all of its line
	// items. The order row and the item rows appear atomically or not at
	// all; item rows are never created independently.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier, including its items.
	// Returns an errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatus overwrites the status of an existing order and returns
	// the updated aggregate without its items loaded.
	// Returns an errs.ObjectNotFoundError when no such order exists.
	UpdateStatus(ctx context.Context, id kernel.UUID, status order.Status) (*order.Order, error)
}
