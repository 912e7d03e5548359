package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite verifies persistence behavior against
// a real PostgreSQL instance.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) mustItem(quantity int, price string) order.Item {
	unitPrice, err := decimal.Parse(price)
	suite.Require().NoError(err)
	item, err := order.NewItem(kernel.NewUUID(), quantity, unitPrice)
	suite.Require().NoError(err)
	return item
}

func (suite *OrderRepositoryIntegrationTestSuite) mustOrder(items ...order.Item) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), items)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) countRows(table string) int64 {
	var count int64
	suite.Require().NoError(suite.db.Table(table).Count(&count).Error)
	return count
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_PersistsOrderWithItems() {
	ctx := context.Background()

	testOrder := suite.mustOrder(
		suite.mustItem(2, "10.00"),
		suite.mustItem(1, "5.50"),
	)

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Equal(int64(1), suite.countRows("orders"))
	suite.Equal(int64(2), suite.countRows("order_items"))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_EmptyOrder() {
	ctx := context.Background()

	testOrder := suite.mustOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(0, restored.TotalItems())
	suite.Zero(restored.TotalAmount().Sign())
	suite.Empty(restored.Items())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTrip() {
	ctx := context.Background()

	testOrder := suite.mustOrder(
		suite.mustItem(3, "4.20"),
		suite.mustItem(1, "10.00"),
	)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(restored.ID().IsEqual(testOrder.ID()))
	suite.Equal(order.Pending, restored.Status())
	suite.Equal(4, restored.TotalItems())
	suite.Zero(restored.TotalAmount().Cmp(testOrder.TotalAmount()))
	suite.Len(restored.Items(), 2)
	suite.WithinDuration(testOrder.CreatedAt(), restored.CreatedAt(), time.Millisecond)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())

	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_Overwrites() {
	ctx := context.Background()

	testOrder := suite.mustOrder(suite.mustItem(1, "10.00"))
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	updated, err := suite.repository.UpdateStatus(ctx, testOrder.ID(), order.Paid)
	suite.Require().NoError(err)
	suite.Equal(order.Paid, updated.Status())
	suite.Equal(1, updated.TotalItems())

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Paid, restored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_BackwardOverwrite() {
	ctx := context.Background()

	testOrder := suite.mustOrder(suite.mustItem(1, "10.00"))
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	_, err := suite.repository.UpdateStatus(ctx, testOrder.ID(), order.Delivered)
	suite.Require().NoError(err)

	updated, err := suite.repository.UpdateStatus(ctx, testOrder.ID(), order.Pending)
	suite.Require().NoError(err)
	suite.Equal(order.Pending, updated.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.UpdateStatus(ctx, kernel.NewUUID(), order.Cancelled)

	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
