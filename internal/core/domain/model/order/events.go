package order

import (
	"time"

	"ordertracking/internal/core/domain/model/kernel"
)

// StatusChanged is the integration event emitted after a committed status
// change. It carries no delivery code and no recipient.
type StatusChanged struct {
	EventID      kernel.UUID `json:"event_id"`
	OrderID      ID          `json:"order_id"`
	RestaurantID string      `json:"restaurant_id"`
	From         Status      `json:"from"`
	To           Status      `json:"to"`
	OccurredAt   time.Time   `json:"occurred_at"`
}

// NewStatusChanged records the move of o from the previous status to its current one.
func NewStatusChanged(o *Order, from Status, at time.Time) StatusChanged {
	return StatusChanged{
		EventID:      kernel.NewUUID(),
		OrderID:      o.id,
		RestaurantID: o.restaurantID,
		From:         from,
		To:           o.status,
		OccurredAt:   at.UTC(),
	}
}
