package queries

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

// EnrichedItem is a line item augmented with the display name resolved from
// the remote catalog at read time.
type EnrichedItem struct {
	ProductID kernel.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	Name      string
}

// GetOrderQueryResponse is a single order with enriched items.
type GetOrderQueryResponse struct {
	ID          kernel.UUID
	TotalAmount decimal.Decimal
	TotalItems  int
	Status      order.Status
	CreatedAt   time.Time
	Items       []EnrichedItem
}

// GetOrderQueryHandler loads one order with its items and resolves product
// names through the validator, costing one remote call per lookup.
type GetOrderQueryHandler struct {
	orders    ports.OrderRepository
	validator ports.ProductValidator
	logger    *zap.Logger
}

// NewGetOrderQueryHandler creates a handler for single-order lookups.
func NewGetOrderQueryHandler(
	orders ports.OrderRepository,
	validator ports.ProductValidator,
	logger *zap.Logger,
) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		orders:    orders,
		validator: validator,
		logger:    logger,
	}
}

// Handle executes the lookup. A missing order propagates the repository's
// not-found error; any validation failure, including a result set that does
// not cover every item, becomes order.ErrProductsNotFound.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	items := o.Items()

	ids := make([]kernel.UUID, 0, len(items))
	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID()]; ok {
			continue
		}
		seen[item.ProductID()] = struct{}{}
		ids = append(ids, item.ProductID())
	}

	products, err := h.validator.Validate(ctx, ids)
	if err != nil {
		h.logger.Warn("product validation failed",
			zap.String("order", query.OrderID().String()),
			zap.Error(err))
		return GetOrderQueryResponse{}, order.ErrProductsNotFound
	}

	names := make(map[kernel.UUID]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	enriched := make([]EnrichedItem, 0, len(items))
	for _, item := range items {
		name, ok := names[item.ProductID()]
		if !ok {
			h.logger.Warn("validated product set misses persisted id",
				zap.String("product", item.ProductID().String()))
			return GetOrderQueryResponse{}, order.ErrProductsNotFound
		}

		enriched = append(enriched, EnrichedItem{
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
			Name:      name,
		})
	}

	return GetOrderQueryResponse{
		ID:          o.ID(),
		TotalAmount: o.TotalAmount(),
		TotalItems:  o.TotalItems(),
		Status:      o.Status(),
		CreatedAt:   o.CreatedAt(),
		Items:       enriched,
	}, nil
}
