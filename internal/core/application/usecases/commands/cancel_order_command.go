package commands

import (
	"errors"

	"ordermanagement/internal/core/domain/model/kernel"
)

var (
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
)

// CancelOrderCommand represents a request to cancel an existing order.
//
// Example:
//
//	orderID, _ := kernel.UUIDFromString(pathParam)
//	cmd, err := NewCancelOrderCommand(orderID)
//	if err != nil {
//	    return fmt.Errorf("invalid cancel request: %w", err)
//	}
//
//	handler := NewCancelOrderCommandHandler(uowFactory, metrics)
//	cancelled, err := handler.Handle(ctx, cmd)
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel the order with the given
// identity. Validates that the order ID is a constructed UUID.
func NewCancelOrderCommand(orderID kernel.UUID) (CancelOrderCommand, error) {
	cancelCommand := CancelOrderCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := cancelCommand.setOrderID(orderID); err != nil {
		return CancelOrderCommand{}, err
	}

	return cancelCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCancelOrderCommandIsNotConstructed if validation fails.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the identity of the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
