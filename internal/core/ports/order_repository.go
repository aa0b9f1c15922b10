// Package ports defines the interfaces between the application core and its
// infrastructure adapters: persistence, transactions, and metrics. These
// contracts enable dependency inversion and testability.
package ports

import (
	"context"

	"ordermanagement/internal/core/domain/model/kernel"
	"ordermanagement/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations must persist and load an order together with its ordered
// item sequence and its at-most-one payment and shipment as one coherent
// unit: items, payment, and shipment rows cascade with their order.
type OrderRepository interface {
	// Add persists a new order aggregate, cascading its items and payment
	// (and shipment, if present) in the same write.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// items and payment/shipment if present.
	// Returns an errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order like Get but takes a row-level lock on
	// the order inside the current transaction. Concurrent status changes on
	// the same order serialize on this lock, so of two simultaneous cancels
	// exactly one observes the terminal-state conflict.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
