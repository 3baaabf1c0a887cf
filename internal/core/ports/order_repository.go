// Package ports defines the contracts between the order tracking core and the
// infrastructure around it: persistence, outbound notifications, integration
// events and live subscribers.
package ports

import (
	"context"

	"ordertracking/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// NextID reserves a fresh order identifier from the store.
	NextID(ctx context.Context) (order.ID, error)

	// Add persists a newly placed order together with its items.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the mutable part of an existing order (its status).
	// Returns an ObjectNotFoundError when no row was updated.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items.
	// Returns an ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id order.ID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the surrounding
	// transaction ends. It must be called inside UnitOfWork.Begin/Commit.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return err
	//   }
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, 42)
	//   if err != nil {
	//       return err
	//   }
	GetForUpdate(ctx context.Context, id order.ID) (*order.Order, error)
}
