package order

import (
	"errors"
	"fmt"
	"time"

	"ordermanagement/internal/core/domain/model/kernel"
	"ordermanagement/internal/pkg/errs"
)

// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
// created through NewShipment or RestoreShipment.
var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")

// ShipmentStatus is the fulfillment state of an order's shipment.
type ShipmentStatus int

const (
	// ShipmentStatusUnknown represents an invalid or undefined shipment status.
	ShipmentStatusUnknown ShipmentStatus = iota

	// ShipmentPending is the initial status of a created shipment.
	ShipmentPending

	// ShipmentPacked indicates the parcel was packed.
	ShipmentPacked

	// ShipmentShipped indicates the parcel was handed to the carrier.
	ShipmentShipped

	// ShipmentInTransit indicates the parcel is moving through the carrier network.
	ShipmentInTransit

	// ShipmentDelivered indicates the parcel reached the customer.
	ShipmentDelivered

	// ShipmentReturned indicates the parcel came back to the warehouse.
	ShipmentReturned
)

func getShipmentStatusStrings() map[ShipmentStatus]string {
	return map[ShipmentStatus]string{
		ShipmentStatusUnknown: "UNKNOWN",
		ShipmentPending:       "PENDING",
		ShipmentPacked:        "PACKED",
		ShipmentShipped:       "SHIPPED",
		ShipmentInTransit:     "IN_TRANSIT",
		ShipmentDelivered:     "DELIVERED",
		ShipmentReturned:      "RETURNED",
	}
}

// Validate checks if the ShipmentStatus value is valid.
func (s ShipmentStatus) Validate() error {
	if _, ok := getShipmentStatusStrings()[s]; !ok || s == ShipmentStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("shipment status is invalid", fmt.Errorf("%d is not a valid shipment status", s))
	}
	return nil
}

// String returns the wire name of the shipment status.
func (s ShipmentStatus) String() string {
	if str, ok := getShipmentStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Shipment is the optional, at-most-one shipment record owned by an order.
// This service never creates shipments itself; the external fulfillment
// collaborator constructs them and attaches them via Order.AttachShipment.
// The shipped and delivered timestamps stay nil until those states are
// reached.
type Shipment struct {
	// id is the unique identifier for the shipment
	id kernel.UUID

	// orderID references the owning order; set when the shipment is attached
	orderID kernel.UUID

	// carrier is the optional carrier name, e.g. "UPS"
	carrier string

	// trackingNumber is the optional carrier tracking reference
	trackingNumber string

	// status is the fulfillment state
	status ShipmentStatus

	// createdAt is set once at construction
	createdAt time.Time

	// shippedAt is nil until the shipment reaches ShipmentShipped
	shippedAt *time.Time

	// deliveredAt is nil until the shipment reaches ShipmentDelivered
	deliveredAt *time.Time

	// isConstructed ensures the shipment was created via a factory
	isConstructed bool
}

// NewShipment creates a Shipment in ShipmentPending status.
// Carrier and tracking number are optional and may be empty.
func NewShipment(carrier, trackingNumber string) *Shipment {
	return &Shipment{
		id:             kernel.NewUUID(),
		carrier:        carrier,
		trackingNumber: trackingNumber,
		status:         ShipmentPending,
		createdAt:      time.Now().UTC(),
		isConstructed:  true,
	}
}

// RestoreShipment reconstructs a Shipment from persistence.
func RestoreShipment(
	id, orderID kernel.UUID,
	carrier, trackingNumber string,
	status ShipmentStatus,
	createdAt time.Time,
	shippedAt, deliveredAt *time.Time,
) (*Shipment, error) {
	shipment := &Shipment{
		carrier:        carrier,
		trackingNumber: trackingNumber,
		createdAt:      createdAt,
		shippedAt:      shippedAt,
		deliveredAt:    deliveredAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		shipment.setID(id),
		shipment.setOrderID(orderID),
		shipment.setStatus(status),
	); err != nil {
		return nil, err
	}

	return shipment, nil
}

// Validate ensures the Shipment instance was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// OrderID returns the identity of the owning order.
// Returns a zero UUID until the shipment is attached.
func (s *Shipment) OrderID() kernel.UUID {
	return s.orderID
}

// Carrier returns the carrier name, possibly empty.
func (s *Shipment) Carrier() string {
	return s.carrier
}

// TrackingNumber returns the tracking reference, possibly empty.
func (s *Shipment) TrackingNumber() string {
	return s.trackingNumber
}

// Status returns the fulfillment state of the shipment.
func (s *Shipment) Status() ShipmentStatus {
	return s.status
}

// CreatedAt returns the creation timestamp.
func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

// ShippedAt returns the handover timestamp, nil until shipped.
func (s *Shipment) ShippedAt() *time.Time {
	return s.shippedAt
}

// DeliveredAt returns the delivery timestamp, nil until delivered.
func (s *Shipment) DeliveredAt() *time.Time {
	return s.deliveredAt
}

// MarkShipped records the carrier handover, stamping the shipped timestamp.
//
// Valid from ShipmentPending or ShipmentPacked only.
func (s *Shipment) MarkShipped() error {
	if s.status != ShipmentPending && s.status != ShipmentPacked {
		return errs.NewInvalidStateTransitionError(s.status.String(), ShipmentShipped.String())
	}

	now := time.Now().UTC()
	s.status = ShipmentShipped
	s.shippedAt = &now
	return nil
}

// MarkDelivered records the delivery, stamping the delivered timestamp.
//
// Valid from ShipmentShipped or ShipmentInTransit only.
func (s *Shipment) MarkDelivered() error {
	if s.status != ShipmentShipped && s.status != ShipmentInTransit {
		return errs.NewInvalidStateTransitionError(s.status.String(), ShipmentDelivered.String())
	}

	now := time.Now().UTC()
	s.status = ShipmentDelivered
	s.deliveredAt = &now
	return nil
}

// attachTo binds the shipment to its owning order.
// Called by Order.AttachShipment only.
func (s *Shipment) attachTo(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	s.orderID = orderID
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	s.orderID = orderID
	return nil
}

func (s *Shipment) setStatus(status ShipmentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}
