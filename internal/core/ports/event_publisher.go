package ports

import (
	"context"

	"ordertracking/internal/core/domain/model/order"
)

// OrderEventPublisher emits integration events for other services.
// Publishing is best effort and happens after the status change was committed.
type OrderEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event order.StatusChanged) error
}
