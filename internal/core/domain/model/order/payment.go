package order

import (
	"errors"
	"fmt"
	"time"

	"ordermanagement/internal/core/domain/model/kernel"
	"ordermanagement/internal/pkg/errs"
)

// DefaultPaymentMethod is the method recorded on payments created together
// with an order.
const DefaultPaymentMethod = "CARD"

// ErrPaymentIsNotConstructed is returned when a Payment instance was not
// created through NewPayment or RestorePayment.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment")

// PaymentStatus is the processing state of an order's payment.
// Only PaymentInitiated is ever produced here; the remaining transitions
// belong to the external payment-processing collaborator.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentInitiated is the initial status of a freshly created payment.
	PaymentInitiated

	// PaymentAuthorized indicates funds were reserved by the processor.
	PaymentAuthorized

	// PaymentCaptured indicates funds were collected.
	PaymentCaptured

	// PaymentFailed indicates the processor rejected the payment.
	PaymentFailed

	// PaymentRefunded indicates collected funds were returned.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown: "UNKNOWN",
		PaymentInitiated:     "INITIATED",
		PaymentAuthorized:    "AUTHORIZED",
		PaymentCaptured:      "CAPTURED",
		PaymentFailed:        "FAILED",
		PaymentRefunded:      "REFUNDED",
	}
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusStrings()[s]; !ok || s == PaymentStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the wire name of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Payment is the single payment record owned by an order. Its amount is
// fixed at order creation time to the exact sum of item subtotals and is
// never recomputed afterwards.
type Payment struct {
	// id is the unique identifier for the payment
	id kernel.UUID

	// orderID references the owning order; set when the payment is attached
	orderID kernel.UUID

	// amount is the exact total charged for the order
	amount kernel.Money

	// method is a free-form payment method identifier, e.g. "CARD"
	method string

	// status is the processing state, PaymentInitiated when created here
	status PaymentStatus

	// createdAt is set once at construction
	createdAt time.Time

	// isConstructed ensures the payment was created via a factory
	isConstructed bool
}

// NewPayment creates a Payment in PaymentInitiated status for the given
// amount and method. The payment is unbound until attached to an order.
func NewPayment(amount kernel.Money, method string) (*Payment, error) {
	payment := &Payment{
		id:            kernel.NewUUID(),
		status:        PaymentInitiated,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		payment.setAmount(amount),
		payment.setMethod(method),
	); err != nil {
		return nil, err
	}

	return payment, nil
}

// RestorePayment reconstructs a Payment from persistence.
func RestorePayment(
	id, orderID kernel.UUID,
	amount kernel.Money,
	method string,
	status PaymentStatus,
	createdAt time.Time,
) (*Payment, error) {
	payment := &Payment{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		payment.setID(id),
		payment.setOrderID(orderID),
		payment.setAmount(amount),
		payment.setMethod(method),
		payment.setStatus(status),
	); err != nil {
		return nil, err
	}

	return payment, nil
}

// Validate ensures the Payment instance was properly constructed.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID {
	return p.id
}

// OrderID returns the identity of the owning order.
// Returns a zero UUID until the payment is attached.
func (p *Payment) OrderID() kernel.UUID {
	return p.orderID
}

// Amount returns the charged total.
func (p *Payment) Amount() kernel.Money {
	return p.amount
}

// Method returns the payment method identifier.
func (p *Payment) Method() string {
	return p.method
}

// Status returns the processing state of the payment.
func (p *Payment) Status() PaymentStatus {
	return p.status
}

// CreatedAt returns the creation timestamp.
func (p *Payment) CreatedAt() time.Time {
	return p.createdAt
}

// attachTo binds the payment to its owning order.
// Called by Order.AttachPayment only, keeping the back-reference an
// aggregate-internal concern.
func (p *Payment) attachTo(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	p.orderID = orderID
	return nil
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Payment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	p.orderID = orderID
	return nil
}

func (p *Payment) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	p.amount = amount
	return nil
}

func (p *Payment) setMethod(method string) error {
	if method == "" {
		return errs.NewValueIsRequiredError("method")
	}
	p.method = method
	return nil
}

func (p *Payment) setStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}
