package ports

// OrderMetrics is the fire-and-forget counter collaborator for order
// operations. Implementations must never block and must never fail the
// enclosing transaction: a metrics backend outage is invisible to callers.
type OrderMetrics interface {
	// OrderCreated increments the orders-created counter.
	OrderCreated()

	// OrderCancelled increments the orders-cancelled counter.
	OrderCancelled()
}
