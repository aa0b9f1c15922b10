// Package order implements the order aggregate: the Order root together
// with its owned line items and its at-most-one payment and shipment
// records.
//
// The aggregate is one consistency boundary. Items, payment, and shipment
// never outlive their order and are never shared across orders; their
// back-references to the order are identity references, not ownership edges.
// The order status follows a small monotonic state machine (see Status) in
// which Cancelled and Completed are terminal.
//
// All types enforce their invariants through factory constructors and keep
// their fields private; zero-value instances fail validation.
package order
