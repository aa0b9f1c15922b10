package order

import (
	"errors"
	"time"

	"ordermanagement/internal/core/domain/model/kernel"
	"ordermanagement/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a customer order. It is the aggregate root that owns the
// order's line items and its at-most-one payment and shipment records, and
// it manages the order lifecycle from creation through cancellation or
// completion.
//
// Order follows these invariants:
//   - Must have a valid customer email
//   - Items keep their insertion order; an order needs at least one item
//     before it may be persisted
//   - At most one payment and one shipment may be attached; their amounts
//     and back-references are fixed at attach time
//   - Status transitions follow the state machine in Status; no transition
//     leaves a terminal state
//   - Can only be created through NewOrder (or RestoreOrder from persistence)
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order, assigned once at construction
	id kernel.UUID

	// customerEmail is the validated email of the ordering customer
	customerEmail kernel.Email

	// createdAt is set once at construction and immutable thereafter
	createdAt time.Time

	// status represents the current state in the order lifecycle
	status Status

	// items is the owned line-item sequence in insertion order
	items []*Item

	// payment is the owned payment record (nil until attached)
	payment *Payment

	// shipment is the owned shipment record (nil until attached)
	shipment *Shipment

	// isConstructed ensures the order was created via a factory
	isConstructed bool
}

// NewOrder creates a new Order for the given customer in StatusPending with
// an empty item sequence and no payment or shipment. The order identity is
// generated here, exactly once; callers never choose it.
//
// Example:
//
//	email, _ := kernel.NewEmail("a@b.com")
//	o, err := order.NewOrder(email)
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(customerEmail kernel.Email) (*Order, error) {
	order := &Order{
		id:            kernel.NewUUID(),
		createdAt:     time.Now().UTC(),
		status:        StatusPending,
		isConstructed: true,
	}

	if err := order.setCustomerEmail(customerEmail); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order aggregate from persistence, including
// its items and optional payment and shipment. All parts are validated the
// same way the factories validate them.
func RestoreOrder(
	id kernel.UUID,
	customerEmail kernel.Email,
	createdAt time.Time,
	status Status,
	items []*Item,
	payment *Payment,
	shipment *Shipment,
) (*Order, error) {
	order := &Order{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerEmail(customerEmail),
		order.setStatus(status),
	); err != nil {
		return nil, err
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		order.items = append(order.items, item)
	}

	if payment != nil {
		if err := payment.Validate(); err != nil {
			return nil, err
		}
		order.payment = payment
	}

	if shipment != nil {
		if err := shipment.Validate(); err != nil {
			return nil, err
		}
		order.shipment = shipment
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory. This prevents bypassing validation by directly instantiating the
// struct and should be called when accepting orders from outside the package.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerEmail returns the ordering customer's email.
func (o *Order) CustomerEmail() kernel.Email {
	return o.customerEmail
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Items returns the order's line items in insertion order.
// The returned slice must not be mutated by callers.
func (o *Order) Items() []*Item {
	return o.items
}

// Payment returns the attached payment, or nil if none is attached.
func (o *Order) Payment() *Payment {
	return o.payment
}

// Shipment returns the attached shipment, or nil if none is attached.
func (o *Order) Shipment() *Shipment {
	return o.shipment
}

// AddItem appends a line item for the given product to the order, preserving
// call order, and binds the item's back-reference to this order.
//
// This method enforces the following business rules:
//   - productID must be non-empty
//   - quantity must be at least 1
//   - unitPrice must be a constructed (hence non-negative) Money value
//
// Returns a validation error without modifying the order if any rule fails.
func (o *Order) AddItem(productID string, quantity int, unitPrice kernel.Money) error {
	if err := o.Validate(); err != nil {
		return err
	}

	item, err := newItem(o.id, productID, quantity, unitPrice)
	if err != nil {
		return err
	}

	o.items = append(o.items, item)
	return nil
}

// Total computes the exact decimal sum of unitPrice multiplied by quantity
// across all items. An order without items totals zero.
func (o *Order) Total() (kernel.Money, error) {
	if err := o.Validate(); err != nil {
		return kernel.Money{}, err
	}

	total := kernel.ZeroMoney()
	for _, item := range o.items {
		subtotal, err := item.Subtotal()
		if err != nil {
			return kernel.Money{}, err
		}
		total, err = total.Add(subtotal)
		if err != nil {
			return kernel.Money{}, err
		}
	}

	return total, nil
}

// AttachPayment sets the order's single payment slot and binds the payment's
// back-reference to this order.
//
// Fails with an InvariantViolationError if the order already has a payment;
// exactly one payment per order is allowed.
func (o *Order) AttachPayment(payment *Payment) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := payment.Validate(); err != nil {
		return err
	}
	if o.payment != nil {
		return errs.NewInvariantViolationError("payment is already attached")
	}

	if err := payment.attachTo(o.id); err != nil {
		return err
	}
	o.payment = payment
	return nil
}

// AttachShipment sets the order's single shipment slot and binds the
// shipment's back-reference to this order. Shipments are produced by the
// external fulfillment collaborator; this service only holds the slot.
//
// Fails with an InvariantViolationError if the order already has a shipment.
func (o *Order) AttachShipment(shipment *Shipment) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := shipment.Validate(); err != nil {
		return err
	}
	if o.shipment != nil {
		return errs.NewInvariantViolationError("shipment is already attached")
	}

	if err := shipment.attachTo(o.id); err != nil {
		return err
	}
	o.shipment = shipment
	return nil
}

// Cancel transitions the order to StatusCancelled.
//
// Permitted from StatusPending or StatusConfirmed. Cancelling an order that
// is already in a terminal state fails with an InvalidStateTransitionError
// and leaves the status unchanged. Cancellation touches the status only; the
// order's items, payment, and shipment records are kept.
func (o *Order) Cancel() error {
	if err := o.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Confirm transitions the order to StatusConfirmed.
// Driven by the external payment collaborator after capture.
func (o *Order) Confirm() error {
	if err := o.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Complete transitions the order to StatusCompleted.
// Driven by the external fulfillment collaborator after delivery.
// Completed is a terminal state.
func (o *Order) Complete() error {
	if err := o.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerEmail(customerEmail kernel.Email) error {
	if err := customerEmail.Validate(); err != nil {
		return err
	}
	o.customerEmail = customerEmail
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
