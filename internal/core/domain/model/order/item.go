package order

import (
	"errors"
	"fmt"

	"ordermanagement/internal/core/domain/model/kernel"
	"ordermanagement/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the newItem factory or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via Order.AddItem or RestoreItem")

// Item is an order line: a product reference with a quantity and the unit
// price agreed at order time. Items are owned by their order and are
// immutable once the order is created; there is no item-edit operation.
//
// The orderID field is an identity back-reference to the owning order, not a
// second ownership edge.
type Item struct {
	// id is the unique identifier for the item
	id kernel.UUID

	// orderID references the owning order
	orderID kernel.UUID

	// productID is the opaque reference to the ordered product
	productID string

	// quantity is the number of units ordered (at least 1)
	quantity int

	// unitPrice is the exact per-unit price (non-negative)
	unitPrice kernel.Money

	// isConstructed ensures the item was created via a factory
	isConstructed bool
}

// newItem creates a validated Item bound to the given order.
// Only the Order aggregate creates items, via AddItem, which keeps the
// back-reference and insertion order consistent.
func newItem(orderID kernel.UUID, productID string, quantity int, unitPrice kernel.Money) (*Item, error) {
	item := &Item{
		id:            kernel.NewUUID(),
		isConstructed: true,
	}

	if err := errors.Join(
		item.setOrderID(orderID),
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs an Item from persistence.
// All fields are validated the same way newItem validates them; the stored
// identity is kept as-is.
func RestoreItem(id, orderID kernel.UUID, productID string, quantity int, unitPrice kernel.Money) (*Item, error) {
	item := &Item{
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setOrderID(orderID),
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate ensures the Item instance was properly constructed.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// OrderID returns the identity of the owning order.
func (i *Item) OrderID() kernel.UUID {
	return i.orderID
}

// ProductID returns the opaque product reference.
func (i *Item) ProductID() string {
	return i.productID
}

// Quantity returns the ordered unit count.
func (i *Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price.
func (i *Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Subtotal returns unitPrice multiplied by quantity in exact decimal
// arithmetic.
func (i *Item) Subtotal() (kernel.Money, error) {
	if err := i.Validate(); err != nil {
		return kernel.Money{}, err
	}
	return i.unitPrice.MulInt(i.quantity)
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	i.orderID = orderID
	return nil
}

func (i *Item) setProductID(productID string) error {
	if productID == "" {
		return errs.NewValueIsRequiredError("productId")
	}
	i.productID = productID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is less than 1", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	i.unitPrice = unitPrice
	return nil
}
