package http

import (
	"time"

	"ordermanagement/internal/core/application/usecases/queries"
	"ordermanagement/internal/core/domain/model/order"
)

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	CustomerEmail string                   `json:"customerEmail"`
	Items         []CreateOrderItemRequest `json:"items"`
}

// CreateOrderItemRequest is one line of a create-order request.
// UnitPrice is a decimal string, e.g. "10.00".
type CreateOrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

// OrderResponse is the representation of an order returned by the API.
type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerEmail string              `json:"customerEmail"`
	Status        string              `json:"status"`
	CreatedAt     time.Time           `json:"createdAt"`
	Total         string              `json:"total"`
	Items         []OrderItemResponse `json:"items"`
	Payment       *PaymentResponse    `json:"payment,omitempty"`
	Shipment      *ShipmentResponse   `json:"shipment,omitempty"`
}

// OrderItemResponse is one order line in an API response.
type OrderItemResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Subtotal  string `json:"subtotal"`
}

// PaymentResponse is the payment attached to an order.
type PaymentResponse struct {
	ID        string    `json:"id"`
	Amount    string    `json:"amount"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ShipmentResponse is the shipment attached to an order.
type ShipmentResponse struct {
	ID             string     `json:"id"`
	Carrier        string     `json:"carrier"`
	TrackingNumber string     `json:"trackingNumber"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	ShippedAt      *time.Time `json:"shippedAt,omitempty"`
	DeliveredAt    *time.Time `json:"deliveredAt,omitempty"`
}

// ErrorResponse carries a failed operation's status code and message.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// HealthResponse identifies the service for liveness checks.
type HealthResponse struct {
	Service string `json:"service"`
	Status  string `json:"status"`
}

// orderToResponse maps a domain aggregate to its API representation.
// Amounts are rendered with two decimal places.
func orderToResponse(aggregate *order.Order) (OrderResponse, error) {
	total, err := aggregate.Total()
	if err != nil {
		return OrderResponse{}, err
	}

	response := OrderResponse{
		ID:            aggregate.ID().String(),
		CustomerEmail: aggregate.CustomerEmail().String(),
		Status:        aggregate.Status().String(),
		CreatedAt:     aggregate.CreatedAt(),
		Total:         total.StringFixed(),
		Items:         make([]OrderItemResponse, 0, len(aggregate.Items())),
	}

	for _, item := range aggregate.Items() {
		subtotal, subtotalErr := item.Subtotal()
		if subtotalErr != nil {
			return OrderResponse{}, subtotalErr
		}

		response.Items = append(response.Items, OrderItemResponse{
			ID:        item.ID().String(),
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().StringFixed(),
			Subtotal:  subtotal.StringFixed(),
		})
	}

	if payment := aggregate.Payment(); payment != nil {
		response.Payment = &PaymentResponse{
			ID:        payment.ID().String(),
			Amount:    payment.Amount().StringFixed(),
			Method:    payment.Method(),
			Status:    payment.Status().String(),
			CreatedAt: payment.CreatedAt(),
		}
	}

	if shipment := aggregate.Shipment(); shipment != nil {
		response.Shipment = &ShipmentResponse{
			ID:             shipment.ID().String(),
			Carrier:        shipment.Carrier(),
			TrackingNumber: shipment.TrackingNumber(),
			Status:         shipment.Status().String(),
			CreatedAt:      shipment.CreatedAt(),
			ShippedAt:      shipment.ShippedAt(),
			DeliveredAt:    shipment.DeliveredAt(),
		}
	}

	return response, nil
}

// queryToResponse maps a read-side view to the same API representation the
// command endpoints use.
func queryToResponse(view queries.GetOrderQueryResponse) OrderResponse {
	response := OrderResponse{
		ID:            view.ID.String(),
		CustomerEmail: view.CustomerEmail,
		Status:        view.Status,
		CreatedAt:     view.CreatedAt,
		Total:         view.Total.StringFixed(2),
		Items:         make([]OrderItemResponse, 0, len(view.Items)),
	}

	for _, item := range view.Items {
		response.Items = append(response.Items, OrderItemResponse{
			ID:        item.ID.String(),
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Subtotal:  item.Subtotal.StringFixed(2),
		})
	}

	if view.Payment != nil {
		response.Payment = &PaymentResponse{
			ID:        view.Payment.ID.String(),
			Amount:    view.Payment.Amount.StringFixed(2),
			Method:    view.Payment.Method,
			Status:    view.Payment.Status,
			CreatedAt: view.Payment.CreatedAt,
		}
	}

	if view.Shipment != nil {
		response.Shipment = &ShipmentResponse{
			ID:             view.Shipment.ID.String(),
			Carrier:        view.Shipment.Carrier,
			TrackingNumber: view.Shipment.TrackingNumber,
			Status:         view.Shipment.Status,
			CreatedAt:      view.Shipment.CreatedAt,
			ShippedAt:      view.Shipment.ShippedAt,
			DeliveredAt:    view.Shipment.DeliveredAt,
		}
	}

	return response
}
