// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"ordermanagement/internal/core/domain/model/kernel"
	"ordermanagement/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status. Items, payment, and shipment rows are owned
// by the order row and removed with it.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerEmail string
	Status        int `gorm:"index"`
	CreatedAt     time.Time
	Items         []ItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payment       *PaymentDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Shipment      *ShipmentDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line in the database. Position is the
// zero-based index of the line within its order; reads sort on it so the
// aggregate's insertion order survives persistence.
type ItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Position  int
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for order line items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// PaymentDTO represents the payment record attached to an order.
// The amount column keeps exact decimal precision.
type PaymentDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2)"`
	Method    string
	Status    int
	CreatedAt time.Time
}

// TableName specifies the database table name for payment entities.
func (PaymentDTO) TableName() string {
	return "payments"
}

// ShipmentDTO represents the shipment record attached to an order.
// ShippedAt and DeliveredAt stay NULL until the matching transition happens.
type ShipmentDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Carrier        string
	TrackingNumber string
	Status         int
	CreatedAt      time.Time
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps the order row together with its item, payment, and shipment rows.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:            aggregate.ID().Bytes(),
		CustomerEmail: aggregate.CustomerEmail().String(),
		Status:        int(aggregate.Status()),
		CreatedAt:     aggregate.CreatedAt(),
		Items:         make([]ItemDTO, 0, len(aggregate.Items())),
	}

	for position, item := range aggregate.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			ID:        item.ID().Bytes(),
			OrderID:   item.OrderID().Bytes(),
			Position:  position,
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Decimal(),
		})
	}

	if payment := aggregate.Payment(); payment != nil {
		dto.Payment = &PaymentDTO{
			ID:        payment.ID().Bytes(),
			OrderID:   payment.OrderID().Bytes(),
			Amount:    payment.Amount().Decimal(),
			Method:    payment.Method(),
			Status:    int(payment.Status()),
			CreatedAt: payment.CreatedAt(),
		}
	}

	if shipment := aggregate.Shipment(); shipment != nil {
		dto.Shipment = &ShipmentDTO{
			ID:             shipment.ID().Bytes(),
			OrderID:        shipment.OrderID().Bytes(),
			Carrier:        shipment.Carrier(),
			TrackingNumber: shipment.TrackingNumber(),
			Status:         int(shipment.Status()),
			CreatedAt:      shipment.CreatedAt(),
			ShippedAt:      shipment.ShippedAt(),
			DeliveredAt:    shipment.DeliveredAt(),
		}
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including items, payment, and shipment
// using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerEmail, err := kernel.NewEmail(dto.CustomerEmail)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var payment *order.Payment
	if dto.Payment != nil {
		payment, err = paymentToDomain(*dto.Payment)
		if err != nil {
			return nil, err
		}
	}

	var shipment *order.Shipment
	if dto.Shipment != nil {
		shipment, err = shipmentToDomain(*dto.Shipment)
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(id, customerEmail, dto.CreatedAt, order.Status(dto.Status), items, payment, shipment)
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	unitPrice, err := kernel.NewMoneyFromDecimal(dto.UnitPrice)
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(id, orderID, dto.ProductID, dto.Quantity, unitPrice)
}

func paymentToDomain(dto PaymentDTO) (*order.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoneyFromDecimal(dto.Amount)
	if err != nil {
		return nil, err
	}

	return order.RestorePayment(id, orderID, amount, dto.Method, order.PaymentStatus(dto.Status), dto.CreatedAt)
}

func shipmentToDomain(dto ShipmentDTO) (*order.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreShipment(
		id,
		orderID,
		dto.Carrier,
		dto.TrackingNumber,
		order.ShipmentStatus(dto.Status),
		dto.CreatedAt,
		dto.ShippedAt,
		dto.DeliveredAt,
	)
}
