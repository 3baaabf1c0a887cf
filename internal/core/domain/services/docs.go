// Package services provides domain services that don't naturally belong to a
// single aggregate root.
//
// The package includes:
//   - StatusMessageComposer: renders the customer-facing message for an order
//     event (placement or a status change)
//
// Composition is pure: no I/O, no clock, no randomness. Delivery of the
// composed message belongs to the application layer.
package services
