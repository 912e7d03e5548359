package queries_test

import (
	"context"
	"errors"
	"testing"

	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id kernel.UUID, status order.Status) (*order.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockProductValidator struct{ mock.Mock }

func (m *MockProductValidator) Validate(ctx context.Context, ids []kernel.UUID) ([]ports.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.Product), args.Error(1)
}

func mustItem(t *testing.T, productID kernel.UUID, quantity int, price string) order.Item {
	t.Helper()
	unitPrice, err := decimal.Parse(price)
	require.NoError(t, err)
	item, err := order.NewItem(productID, quantity, unitPrice)
	require.NoError(t, err)
	return item
}

func catalogProduct(t *testing.T, id kernel.UUID, name string, price string) ports.Product {
	t.Helper()
	p, err := decimal.Parse(price)
	require.NoError(t, err)
	return ports.Product{ID: id, Name: name, Price: p}
}

func TestGetOrderQueryHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	productID := kernel.NewUUID()

	stored, err := order.NewOrder(orderID, []order.Item{
		mustItem(t, productID, 3, "4.00"),
	})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, orderID).Return(stored, nil).Once()

	validator := new(MockProductValidator)
	validator.On("Validate", ctx, []kernel.UUID{productID}).
		Return([]ports.Product{catalogProduct(t, productID, "Sugar", "4.00")}, nil).Once()

	query, err := queries.NewGetOrderQuery(orderID)
	require.NoError(t, err)

	h := queries.NewGetOrderQueryHandler(repo, validator, zap.NewNop())
	resp, err := h.Handle(ctx, query)
	require.NoError(t, err)

	require.True(t, resp.ID.IsEqual(orderID))
	require.Equal(t, 3, resp.TotalItems)
	require.Len(t, resp.Items, 1)
	require.Equal(t, "Sugar", resp.Items[0].Name)
	require.Equal(t, 3, resp.Items[0].Quantity)

	repo.AssertExpectations(t)
	validator.AssertExpectations(t)
}

func TestGetOrderQueryHandler_Handle_DeduplicatesValidationBatch(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	productID := kernel.NewUUID()

	stored, err := order.NewOrder(orderID, []order.Item{
		mustItem(t, productID, 1, "4.00"),
		mustItem(t, productID, 2, "4.00"),
	})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, orderID).Return(stored, nil).Once()

	validator := new(MockProductValidator)
	validator.On("Validate", ctx, []kernel.UUID{productID}).
		Return([]ports.Product{catalogProduct(t, productID, "Sugar", "4.00")}, nil).Once()

	query, err := queries.NewGetOrderQuery(orderID)
	require.NoError(t, err)

	h := queries.NewGetOrderQueryHandler(repo, validator, zap.NewNop())
	resp, err := h.Handle(ctx, query)
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)

	validator.AssertExpectations(t)
}

func TestGetOrderQueryHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, orderID).
		Return(nil, errs.NewObjectNotFoundError("order", orderID.String())).Once()

	validator := new(MockProductValidator)

	query, err := queries.NewGetOrderQuery(orderID)
	require.NoError(t, err)

	h := queries.NewGetOrderQueryHandler(repo, validator, zap.NewNop())
	_, err = h.Handle(ctx, query)

	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, err, &notFound)
	validator.AssertExpectations(t)
}

func TestGetOrderQueryHandler_Handle_ValidatorFailure(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	productID := kernel.NewUUID()

	stored, err := order.NewOrder(orderID, []order.Item{
		mustItem(t, productID, 1, "4.00"),
	})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, orderID).Return(stored, nil).Once()

	validator := new(MockProductValidator)
	validator.On("Validate", ctx, []kernel.UUID{productID}).
		Return(nil, errors.New("nats: no responders")).Once()

	query, err := queries.NewGetOrderQuery(orderID)
	require.NoError(t, err)

	h := queries.NewGetOrderQueryHandler(repo, validator, zap.NewNop())
	_, err = h.Handle(ctx, query)
	require.ErrorIs(t, err, order.ErrProductsNotFound)
}

func TestGetOrderQueryHandler_Handle_NameMissingForPersistedProduct(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	productID := kernel.NewUUID()

	stored, err := order.NewOrder(orderID, []order.Item{
		mustItem(t, productID, 1, "4.00"),
	})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, orderID).Return(stored, nil).Once()

	// Catalog no longer knows the persisted product.
	validator := new(MockProductValidator)
	validator.On("Validate", ctx, []kernel.UUID{productID}).
		Return([]ports.Product{}, nil).Once()

	query, err := queries.NewGetOrderQuery(orderID)
	require.NoError(t, err)

	h := queries.NewGetOrderQueryHandler(repo, validator, zap.NewNop())
	_, err = h.Handle(ctx, query)
	require.ErrorIs(t, err, order.ErrProductsNotFound)
}

func TestGetOrderQueryHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()

	repo := new(MockOrderRepository)
	validator := new(MockProductValidator)

	h := queries.NewGetOrderQueryHandler(repo, validator, zap.NewNop())
	_, err := h.Handle(ctx, queries.GetOrderQuery{})
	require.Error(t, err)
	repo.AssertExpectations(t)
}
