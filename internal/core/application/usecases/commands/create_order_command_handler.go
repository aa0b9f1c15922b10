package commands

import (
	"context"

	"ordermanagement/internal/core/domain/model/order"
	"ordermanagement/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Builds the aggregate with its items, creates a payment over the exact
// decimal total, and persists everything in one transaction. On any
// validation failure nothing is persisted.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, metrics)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	fmt.Printf("Order %s created, total %s", created.ID(), created.Payment().Amount())
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	metrics    ports.OrderMetrics
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence and an
// OrderMetrics collaborator for the creation counter.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, metrics ports.OrderMetrics) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		metrics:    metrics,
	}
}

// Handle processes the order creation command and returns the persisted
// aggregate including its assigned identity.
//
// The payment amount is fixed here, once, to the sum of item subtotals; it
// is never recomputed afterwards. The creation counter is bumped only after
// a successful commit, and counter emission can never fail the operation.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(cmd.CustomerEmail())
	if err != nil {
		return nil, err
	}

	for _, item := range cmd.Items() {
		if err = aggregate.AddItem(item.ProductID, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}

	total, err := aggregate.Total()
	if err != nil {
		return nil, err
	}

	payment, err := order.NewPayment(total, order.DefaultPaymentMethod)
	if err != nil {
		return nil, err
	}

	if err = aggregate.AttachPayment(payment); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.metrics.OrderCreated()
	return aggregate, nil
}
