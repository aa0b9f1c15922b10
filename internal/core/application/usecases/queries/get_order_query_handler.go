package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ordermanagement/internal/core/domain/model/kernel"
	"ordermanagement/internal/core/domain/model/order"
	"ordermanagement/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order with all attached records
// from the database. Reads the tables directly without going through the
// aggregate; nothing is locked or mutated.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(orderID)
//
//	response, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get order: %v", err)
//	    return err
//	}
//
//	fmt.Printf("Order %s is %s, total %s\n", response.ID, response.Status, response.Total)
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query and assembles the full order view: the order
// row, its line items in insertion order, and the payment and shipment rows
// when present. Returns an ObjectNotFoundError when no order has the given ID.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	response, err := h.fetchOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if err = h.fetchItems(ctx, &response); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if err = h.fetchPayment(ctx, &response); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if err = h.fetchShipment(ctx, &response); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

func (h GetOrderQueryHandler) fetchOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (GetOrderQueryResponse, error) {
	var (
		id            uuid.UUID
		customerEmail string
		status        int
		createdAt     time.Time
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_email,
			status,
			created_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	err := row.Scan(&id, &customerEmail, &status, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	responseID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return GetOrderQueryResponse{
		ID:            responseID,
		CustomerEmail: customerEmail,
		Status:        order.Status(status).String(),
		CreatedAt:     createdAt,
		Total:         decimal.Zero,
		Items:         make([]GetOrderItemResponse, 0),
	}, nil
}

func (h GetOrderQueryHandler) fetchItems(ctx context.Context, response *GetOrderQueryResponse) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_id,
			quantity,
			unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, response.ID.Bytes()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id        uuid.UUID
			productID string
			quantity  int
			unitPrice decimal.Decimal
		)

		if err = rows.Scan(&id, &productID, &quantity, &unitPrice); err != nil {
			return err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return idErr
		}

		subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
		response.Items = append(response.Items, GetOrderItemResponse{
			ID:        itemID,
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: unitPrice,
			Subtotal:  subtotal,
		})
		response.Total = response.Total.Add(subtotal)
	}

	return rows.Err()
}

func (h GetOrderQueryHandler) fetchPayment(ctx context.Context, response *GetOrderQueryResponse) error {
	var (
		id        uuid.UUID
		amount    decimal.Decimal
		method    string
		status    int
		createdAt time.Time
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			amount,
			method,
			status,
			created_at
		FROM payments
		WHERE order_id = ?
	`, response.ID.Bytes()).Row()

	err := row.Scan(&id, &amount, &method, &status, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	paymentID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return err
	}

	response.Payment = &GetOrderPaymentResponse{
		ID:        paymentID,
		Amount:    amount,
		Method:    method,
		Status:    order.PaymentStatus(status).String(),
		CreatedAt: createdAt,
	}
	return nil
}

func (h GetOrderQueryHandler) fetchShipment(ctx context.Context, response *GetOrderQueryResponse) error {
	var (
		id             uuid.UUID
		carrier        string
		trackingNumber string
		status         int
		createdAt      time.Time
		shippedAt      *time.Time
		deliveredAt    *time.Time
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			carrier,
			tracking_number,
			status,
			created_at,
			shipped_at,
			delivered_at
		FROM shipments
		WHERE order_id = ?
	`, response.ID.Bytes()).Row()

	err := row.Scan(&id, &carrier, &trackingNumber, &status, &createdAt, &shippedAt, &deliveredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	shipmentID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return err
	}

	response.Shipment = &GetOrderShipmentResponse{
		ID:             shipmentID,
		Carrier:        carrier,
		TrackingNumber: trackingNumber,
		Status:         order.ShipmentStatus(status).String(),
		CreatedAt:      createdAt,
		ShippedAt:      shippedAt,
		DeliveredAt:    deliveredAt,
	}
	return nil
}
