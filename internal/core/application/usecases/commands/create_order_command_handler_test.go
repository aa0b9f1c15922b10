package commands_test

import (
	"context"
	"errors"
	"testing"

	"ordermanagement/internal/core/application/usecases/commands"
	"ordermanagement/internal/core/domain/model/kernel"
	"ordermanagement/internal/core/domain/model/order"
	"ordermanagement/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type CreateOrderRepo struct{ mock.Mock }

func (m *CreateOrderRepo) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *CreateOrderRepo) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *CreateOrderRepo) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *CreateOrderRepo) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type CreateUnitOfWork struct{ mock.Mock }

func (m *CreateUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *CreateUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *CreateUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *CreateUnitOfWork) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type CreateUoWFactory struct{ mock.Mock }

func (m *CreateUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type CreateOrderMetrics struct{ mock.Mock }

func (m *CreateOrderMetrics) OrderCreated() {
	m.Called()
}

func (m *CreateOrderMetrics) OrderCancelled() {
	m.Called()
}

func createTestCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(testEmail(t), []commands.OrderItemInput{
		{ProductID: "widget-1", Quantity: 2, UnitPrice: testPrice(t, "10.00")},
		{ProductID: "widget-2", Quantity: 1, UnitPrice: testPrice(t, "5.00")},
	})
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := createTestCommand(t)

	orderRepo := new(CreateOrderRepo)
	uow := new(CreateUnitOfWork)
	factory := new(CreateUoWFactory)
	metrics := new(CreateOrderMetrics)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	metrics.On("OrderCreated").Once()

	handler := commands.NewCreateOrderCommandHandler(factory, metrics)
	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NoError(t, created.ID().Validate())
	assert.Equal(t, order.StatusPending, created.Status())
	assert.Len(t, created.Items(), 2)

	payment := created.Payment()
	require.NotNil(t, payment)
	assert.True(t, payment.Amount().IsEqual(testPrice(t, "25.00")))
	assert.Equal(t, order.PaymentInitiated, payment.Status())

	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(CreateUoWFactory)
	metrics := new(CreateOrderMetrics)

	handler := commands.NewCreateOrderCommandHandler(factory, metrics)
	created, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, created)
	assert.Contains(t, err.Error(), "must be created via NewCreateOrderCommand constructor")
	metrics.AssertNotCalled(t, "OrderCreated")
}

func TestCreateOrderCommandHandler_Handle_InvalidQuantity(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(testEmail(t), []commands.OrderItemInput{
		{ProductID: "widget-1", Quantity: 0, UnitPrice: testPrice(t, "10.00")},
	})
	require.NoError(t, err)

	factory := new(CreateUoWFactory)
	metrics := new(CreateOrderMetrics)

	handler := commands.NewCreateOrderCommandHandler(factory, metrics)
	created, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, created)
	assert.Contains(t, err.Error(), "quantity")
	factory.AssertNotCalled(t, "Create")
	metrics.AssertNotCalled(t, "OrderCreated")
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := createTestCommand(t)

	uow := new(CreateUnitOfWork)
	factory := new(CreateUoWFactory)
	metrics := new(CreateOrderMetrics)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(factory, metrics)
	created, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, created)
	assert.Contains(t, err.Error(), "begin error")
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	metrics.AssertNotCalled(t, "OrderCreated")
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := createTestCommand(t)

	orderRepo := new(CreateOrderRepo)
	uow := new(CreateUnitOfWork)
	factory := new(CreateUoWFactory)
	metrics := new(CreateOrderMetrics)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("repository error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(factory, metrics)
	created, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, created)
	assert.Contains(t, err.Error(), "repository error")
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	metrics.AssertNotCalled(t, "OrderCreated")
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd := createTestCommand(t)

	orderRepo := new(CreateOrderRepo)
	uow := new(CreateUnitOfWork)
	factory := new(CreateUoWFactory)
	metrics := new(CreateOrderMetrics)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(factory, metrics)
	created, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, created)
	assert.Contains(t, err.Error(), "commit error")
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	metrics.AssertNotCalled(t, "OrderCreated")
}
