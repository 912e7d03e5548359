package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/govalues/decimal"
)

// ChangeOrderStatusResponse is the updated order returned to the caller.
// Line items are not loaded for status changes.
type ChangeOrderStatusResponse struct {
	ID          kernel.UUID
	TotalAmount decimal.Decimal
	TotalItems  int
	Status      order.Status
	CreatedAt   time.Time
}

// ChangeOrderStatusCommandHandler applies status overwrites to persisted
// orders. No transition graph is enforced; missing orders surface as an
// errs.ObjectNotFoundError from the repository.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewChangeOrderStatusCommandHandler creates a handler for status changes.
func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status change command.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (ChangeOrderStatusResponse, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeOrderStatusResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ChangeOrderStatusResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	updated, err := uow.OrderRepository().UpdateStatus(ctx, cmd.OrderID(), cmd.Status())
	if err != nil {
		return ChangeOrderStatusResponse{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ChangeOrderStatusResponse{}, err
	}

	return ChangeOrderStatusResponse{
		ID:          updated.ID(),
		TotalAmount: updated.TotalAmount(),
		TotalItems:  updated.TotalItems(),
		Status:      updated.Status(),
		CreatedAt:   updated.CreatedAt(),
	}, nil
}
