// Package order provides the Order aggregate and the status state machine that
// drives an order from placement to delivery.
//
// The package includes:
//   - Order: the aggregate root holding identity, items, price and lifecycle
//   - Status: the lifecycle state machine with terminal-state enforcement
//   - Delivery: delivery type and, for scheduled deliveries, the requested time
//   - Item: a product line whose unit price is snapshotted at placement
//   - DeliveryCode: the one-time code the customer hands to the courier
//
// Key business rules:
//   - Status flows Pending -> Confirmed -> InPreparation -> OutForDelivery -> Completed
//   - Cancelled is reachable from every non-terminal status
//   - Completed and Cancelled are terminal: further changes are ignored, not rejected
//   - Between non-terminal statuses any change is accepted, including skips
//   - Total price is computed once at placement and never recomputed
package order
