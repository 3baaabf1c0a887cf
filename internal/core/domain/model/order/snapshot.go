package order

import "time"

// Snapshot is the read-only view of an order sent to subscribers and returned
// by the HTTP API. It is a full copy, never a diff, and deliberately leaves
// out the delivery code and the recipient address.
type Snapshot struct {
	ID              ID             `json:"id"`
	RestaurantID    string         `json:"restaurant_id"`
	Status          Status         `json:"status"`
	DeliveryType    DeliveryType   `json:"delivery_type"`
	ScheduledTime   string         `json:"scheduled_time,omitempty"`
	TotalPriceCents int64          `json:"total_price_cents"`
	CreatedAt       time.Time      `json:"created_at"`
	Items           []ItemSnapshot `json:"items"`
}

// ItemSnapshot is one product line inside a Snapshot.
type ItemSnapshot struct {
	ProductID      int64 `json:"product_id"`
	Quantity       int   `json:"quantity"`
	UnitPriceCents int64 `json:"unit_price_cents"`
	SubtotalCents  int64 `json:"subtotal_cents"`
}

// Snapshot copies the current state of the order.
func (o *Order) Snapshot() Snapshot {
	items := make([]ItemSnapshot, len(o.items))
	for i, item := range o.items {
		items[i] = ItemSnapshot{
			ProductID:      item.ProductID(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPriceCents(),
			SubtotalCents:  item.SubtotalCents(),
		}
	}

	return Snapshot{
		ID:              o.id,
		RestaurantID:    o.restaurantID,
		Status:          o.status,
		DeliveryType:    o.delivery.Type(),
		ScheduledTime:   o.delivery.ScheduledTime(),
		TotalPriceCents: o.totalPriceCents,
		CreatedAt:       o.createdAt,
		Items:           items,
	}
}
