// Package order provides domain entities and business logic for the order
// workflow. It implements the Order aggregate root with lifecycle management
// and token-gated state transitions.
//
// The package includes:
//   - Order: the aggregate root holding identity, line items, customer data,
//     and the live resumption token for the current wait point
//   - Status: a state machine that enforces the fixed workflow sequence
//   - Item and Customer: validated value objects for order contents
//   - Snapshot: the flat read model used by queries, events, and archival
//
// Key business rules:
//   - Orders follow the fixed sequence CREATED -> KITCHEN_ASSIGNED ->
//     COOKING -> PACKAGING_WAIT -> PACKED -> IN_TRANSIT -> DELIVERED
//   - CANCELLED is reachable from any non-terminal state
//   - A terminal order (DELIVERED, CANCELLED) never changes again
//   - Advancement requires the signal's token to match the stored live token
//   - Non-terminal orders always carry a live resumption token; terminal
//     orders never do
package order
