package commands

import (
	"context"

	"ordermanagement/internal/core/domain/model/order"
	"ordermanagement/internal/core/ports"
)

// CancelOrderCommandHandler handles the business logic for order
// cancellation. Loads the order under a row lock, applies the Cancelled
// transition, and persists the new status in the same transaction.
//
// Cancelling an order that is already in a terminal state fails with an
// InvalidStateTransitionError; an absent order fails with an
// ObjectNotFoundError. The row lock serializes concurrent cancels on the
// same order, so exactly one of two racing cancels observes the conflict.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	metrics    ports.OrderMetrics
}

// NewCancelOrderCommandHandler creates a handler for order cancellation
// operations. Requires an OrderUoWFactory for transactional persistence and
// an OrderMetrics collaborator for the cancellation counter.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, metrics ports.OrderMetrics) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		metrics:    metrics,
	}
}

// Handle processes the cancellation command and returns the updated
// aggregate. Cancellation mutates the order status only: items, payment,
// and shipment records are kept. The cancellation counter is bumped only
// after a successful commit.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Cancel(); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.metrics.OrderCancelled()
	return aggregate, nil
}
