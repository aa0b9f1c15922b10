// Package queries contains read-only operations for retrieving system state.
// Implements the Query side of the CQRS architecture: handlers read directly
// from the database and return response structs, bypassing the aggregate.
package queries

import (
	"errors"
	"time"

	"ordermanagement/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves a single order with its items, payment, and
// shipment by identity.
//
// Example:
//
//	orderID, _ := kernel.UUIDFromString(pathParam)
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return fmt.Errorf("invalid order id: %w", err)
//	}
//
//	handler := NewGetOrderQueryHandler(db)
//	response, err := handler.Handle(ctx, query)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve the order with the given
// identity. Validates that the order ID is a constructed UUID.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	orderQuery := GetOrderQuery{
		guard: kernel.NewConstructorGuard(),
	}

	if err := orderQuery.setOrderID(orderID); err != nil {
		return GetOrderQuery{}, err
	}

	return orderQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identity of the order to retrieve.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// GetOrderQueryResponse represents a complete order as stored: the order
// row plus its line items and the payment and shipment attached to it.
// Statuses are rendered as their string names; amounts keep exact decimal
// precision.
type GetOrderQueryResponse struct {
	ID            kernel.UUID
	CustomerEmail string
	Status        string
	CreatedAt     time.Time
	Total         decimal.Decimal
	Items         []GetOrderItemResponse
	Payment       *GetOrderPaymentResponse
	Shipment      *GetOrderShipmentResponse
}

// GetOrderItemResponse is one order line in a query response.
type GetOrderItemResponse struct {
	ID        kernel.UUID
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// GetOrderPaymentResponse is the payment attached to an order.
type GetOrderPaymentResponse struct {
	ID        kernel.UUID
	Amount    decimal.Decimal
	Method    string
	Status    string
	CreatedAt time.Time
}

// GetOrderShipmentResponse is the shipment attached to an order.
// ShippedAt and DeliveredAt stay nil until the matching transition happens.
type GetOrderShipmentResponse struct {
	ID             kernel.UUID
	Carrier        string
	TrackingNumber string
	Status         string
	CreatedAt      time.Time
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
}
