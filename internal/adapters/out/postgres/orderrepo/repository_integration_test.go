package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"ordermanagement/internal/adapters/out/postgres/orderrepo"
	"ordermanagement/internal/core/domain/model/kernel"
	"ordermanagement/internal/core/domain/model/order"
	"ordermanagement/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
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

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.PaymentDTO{},
		&orderrepo.ShipmentDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	email, err := kernel.NewEmail("customer@example.com")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(email)
	suite.Require().NoError(err)

	unitPrice, err := kernel.NewMoneyFromString("10.00")
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AddItem("widget-1", 2, unitPrice))

	secondPrice, err := kernel.NewMoneyFromString("5.00")
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AddItem("widget-2", 1, secondPrice))

	total, err := testOrder.Total()
	suite.Require().NoError(err)

	payment, err := order.NewPayment(total, order.DefaultPaymentMethod)
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AttachPayment(payment))

	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	// Verify order, item, and payment rows were persisted
	suite.assertOrderCount(1)

	var itemCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.ItemDTO{}).Count(&itemCount).Error)
	suite.Equal(int64(2), itemCount)

	var paymentCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.PaymentDTO{}).Count(&paymentCount).Error)
	suite.Equal(int64(1), paymentCount)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsCompleteAggregate() {
	ctx := context.Background()

	originalOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", originalOrder.ID(), originalOrder).Once()

	err := suite.repository.Add(ctx, originalOrder)
	suite.Require().NoError(err)

	retrievedOrder, err := suite.repository.Get(ctx, originalOrder.ID())
	suite.Require().NoError(err)

	// Verify order details survive the round trip
	suite.Equal(originalOrder.ID(), retrievedOrder.ID())
	suite.True(originalOrder.CustomerEmail().IsEqual(retrievedOrder.CustomerEmail()))
	suite.Equal(order.StatusPending, retrievedOrder.Status())
	suite.Len(retrievedOrder.Items(), 2)

	expectedTotal, err := originalOrder.Total()
	suite.Require().NoError(err)
	retrievedTotal, err := retrievedOrder.Total()
	suite.Require().NoError(err)
	suite.True(expectedTotal.IsEqual(retrievedTotal))

	suite.Require().NotNil(retrievedOrder.Payment())
	suite.True(originalOrder.Payment().Amount().IsEqual(retrievedOrder.Payment().Amount()))
	suite.Equal(order.PaymentInitiated, retrievedOrder.Payment().Status())
	suite.Equal(order.DefaultPaymentMethod, retrievedOrder.Payment().Method())

	suite.Nil(retrievedOrder.Shipment())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ManyItems_PreservesInsertionOrder() {
	ctx := context.Background()

	email, err := kernel.NewEmail("customer@example.com")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(email)
	suite.Require().NoError(err)

	productIDs := []string{"widget-3", "widget-1", "widget-5", "widget-2", "widget-4"}
	for _, productID := range productIDs {
		unitPrice, priceErr := kernel.NewMoneyFromString("1.00")
		suite.Require().NoError(priceErr)
		suite.Require().NoError(testOrder.AddItem(productID, 1, unitPrice))
	}

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	// Items come back in the order AddItem was called, not in UUID order
	items := retrievedOrder.Items()
	suite.Require().Len(items, len(productIDs))
	for i, productID := range productIDs {
		suite.Equal(productID, items[i].ProductID())
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_OrderWithShipment_RestoresShipment() {
	ctx := context.Background()

	originalOrder := suite.createTestOrder()
	shipment := order.NewShipment("DHL", "TRACK-123")
	suite.Require().NoError(originalOrder.AttachShipment(shipment))

	suite.tracker.On("TrackAggregate", originalOrder.ID(), originalOrder).Once()
	err := suite.repository.Add(ctx, originalOrder)
	suite.Require().NoError(err)

	retrievedOrder, err := suite.repository.Get(ctx, originalOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NotNil(retrievedOrder.Shipment())
	suite.Equal("DHL", retrievedOrder.Shipment().Carrier())
	suite.Equal("TRACK-123", retrievedOrder.Shipment().TrackingNumber())
	suite.Equal(order.ShipmentPending, retrievedOrder.Shipment().Status())
	suite.Nil(retrievedOrder.Shipment().ShippedAt())
	suite.Nil(retrievedOrder.Shipment().DeliveredAt())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	nonExistentID := kernel.NewUUID()
	retrievedOrder, err := suite.repository.Get(ctx, nonExistentID)

	suite.Nil(retrievedOrder)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_CancelledOrder_KeepsItemsAndPayment() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.Require().NoError(testOrder.Cancel())
	err = suite.repository.Update(ctx, testOrder)
	suite.Require().NoError(err)

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	// Cancellation changes the status only
	suite.Equal(order.StatusCancelled, retrievedOrder.Status())
	suite.Len(retrievedOrder.Items(), 2)
	suite.NotNil(retrievedOrder.Payment())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()

	nonExistentOrder := suite.createTestOrder()

	// No expectations on tracker since operation should fail
	err := suite.repository.Update(ctx, nonExistentOrder)
	suite.Require().Error(err)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_ExistingOrder_ReturnsCompleteAggregate() {
	ctx := context.Background()

	originalOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", originalOrder.ID(), originalOrder).Once()

	err := suite.repository.Add(ctx, originalOrder)
	suite.Require().NoError(err)

	retrievedOrder, err := suite.repository.GetForUpdate(ctx, originalOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(originalOrder.ID(), retrievedOrder.ID())
	suite.Len(retrievedOrder.Items(), 2)
	suite.NotNil(retrievedOrder.Payment())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_ConcurrentCancels_OnlyOneSucceeds() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	cancel := func() error {
		tx := suite.db.Begin()
		defer tx.Rollback()

		repo := orderrepo.NewGormOrderRepository(tx, suite.tracker)
		aggregate, cancelErr := repo.GetForUpdate(ctx, testOrder.ID())
		if cancelErr != nil {
			return cancelErr
		}

		if cancelErr = aggregate.Cancel(); cancelErr != nil {
			return cancelErr
		}

		if cancelErr = repo.Update(ctx, aggregate); cancelErr != nil {
			return cancelErr
		}

		return tx.Commit().Error
	}

	results := make(chan error, 2)
	for range 2 {
		go func() { results <- cancel() }()
	}

	first := <-results
	second := <-results

	// Exactly one of the two racing cancels observes the terminal state
	if first == nil {
		suite.Require().Error(second)
		suite.ErrorIs(second, errs.ErrInvalidStateTransition)
	} else {
		suite.Require().NoError(second)
		suite.ErrorIs(first, errs.ErrInvalidStateTransition)
	}

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusCancelled, retrievedOrder.Status())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
