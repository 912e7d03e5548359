package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

// EnrichedItem is a line item augmented with the product display name
// resolved from the remote catalog. The name exists only in responses and
// is never persisted.
type EnrichedItem struct {
	ProductID kernel.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	Name      string
}

// CreateOrderResponse is the persisted order returned to the caller,
// with every item carrying its resolved product name.
type CreateOrderResponse struct {
	ID          kernel.UUID
	TotalAmount decimal.Decimal
	TotalItems  int
	Status      order.Status
	CreatedAt   time.Time
	Items       []EnrichedItem
}

// CreateOrderCommandHandler orchestrates order creation: it validates the
// cart's products against the remote catalog, derives the stored totals,
// persists the order with its items in one transaction, and enriches the
// reply with product names.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	validator  ports.ProductValidator
	logger     *zap.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	validator ports.ProductValidator,
	logger *zap.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		validator:  validator,
		logger:     logger,
	}
}

// Handle processes the order creation command.
//
// The catalog call happens before anything is written: if validation fails,
// or its result does not cover every requested product, the command fails
// with order.ErrProductsNotFound and nothing is persisted. The original
// transport failure is logged but never crosses the boundary.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResponse, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResponse{}, err
	}

	items := cmd.Items()

	products, err := h.validator.Validate(ctx, distinctProductIDs(items))
	if err != nil {
		h.logger.Warn("product validation failed",
			zap.String("order", cmd.OrderID().String()),
			zap.Error(err))
		return CreateOrderResponse{}, order.ErrProductsNotFound
	}

	names := productNames(products)
	for _, item := range items {
		if _, ok := names[item.ProductID()]; !ok {
			h.logger.Warn("validated product set misses requested id",
				zap.String("product", item.ProductID().String()))
			return CreateOrderResponse{}, order.ErrProductsNotFound
		}
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), items)
	if err != nil {
		return CreateOrderResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreateOrderResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return CreateOrderResponse{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResponse{}, err
	}

	return enrichOrder(newOrder, names), nil
}

// distinctProductIDs extracts each referenced product id once, preserving
// first-occurrence order.
func distinctProductIDs(items []order.Item) []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(items))
	ids := make([]kernel.UUID, 0, len(items))

	for _, item := range items {
		if _, ok := seen[item.ProductID()]; ok {
			continue
		}
		seen[item.ProductID()] = struct{}{}
		ids = append(ids, item.ProductID())
	}

	return ids
}

// productNames indexes validation results by product id.
func productNames(products []ports.Product) map[kernel.UUID]string {
	names := make(map[kernel.UUID]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return names
}

// enrichOrder attaches resolved product names to the persisted order.
// Coverage of the name index was verified before persisting.
func enrichOrder(o *order.Order, names map[kernel.UUID]string) CreateOrderResponse {
	items := o.Items()
	enriched := make([]EnrichedItem, 0, len(items))
	for _, item := range items {
		enriched = append(enriched, EnrichedItem{
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
			Name:      names[item.ProductID()],
		})
	}

	return CreateOrderResponse{
		ID:          o.ID(),
		TotalAmount: o.TotalAmount(),
		TotalItems:  o.TotalItems(),
		Status:      o.Status(),
		CreatedAt:   o.CreatedAt(),
		Items:       enriched,
	}
}
