package commands

import (
	"errors"

	"ordermanagement/internal/core/domain/model/kernel"
	"ordermanagement/internal/pkg/errs"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// OrderItemInput is one line of a create-order request: an opaque product
// reference, a unit count, and the exact per-unit price.
type OrderItemInput struct {
	ProductID string
	Quantity  int
	UnitPrice kernel.Money
}

// CreateOrderCommand represents a request to create a new customer order
// from a non-empty list of line items. The payment for the computed total is
// created together with the order.
//
// Example:
//
//	email, _ := kernel.NewEmail("a@b.com")
//	price, _ := kernel.NewMoneyFromString("10.00")
//	cmd, err := NewCreateOrderCommand(email, []OrderItemInput{
//	    {ProductID: "1", Quantity: 2, UnitPrice: price},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, metrics)
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerEmail kernel.Email
	items         []OrderItemInput

	guard kernel.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the customer email is a constructed Email value and that
// the item list is non-empty; per-item rules are enforced by the aggregate
// before anything is persisted.
func NewCreateOrderCommand(customerEmail kernel.Email, items []OrderItemInput) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setCustomerEmail(customerEmail),
		orderCommand.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerEmail returns the ordering customer's email.
func (c CreateOrderCommand) CustomerEmail() kernel.Email {
	return c.customerEmail
}

// Items returns the requested line items in request order.
func (c CreateOrderCommand) Items() []OrderItemInput {
	return c.items
}

func (c *CreateOrderCommand) setCustomerEmail(customerEmail kernel.Email) error {
	if err := customerEmail.Validate(); err != nil {
		return err
	}

	c.customerEmail = customerEmail
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItemInput) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	c.items = items
	return nil
}
