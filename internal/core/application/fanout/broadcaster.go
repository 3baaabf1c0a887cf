package fanout

import (
	"context"
	"log/slog"

	"ordertracking/internal/core/domain/model/order"
	"ordertracking/internal/core/ports"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "ordertracking/fanout"

// Broadcaster delivers payloads to the subscribers of an order.
//
// Delivery is at most once per subscriber per call. A subscriber whose Send
// fails is unregistered and not retried.
type Broadcaster struct {
	registry   *Registry
	logger     *slog.Logger
	deliveries metric.Int64Counter
}

// NewBroadcaster creates a broadcaster over registry. Metrics go to the global
// meter provider.
func NewBroadcaster(registry *Registry, logger *slog.Logger) *Broadcaster {
	deliveries, err := otel.Meter(meterName).Int64Counter(
		"fanout.deliveries",
		metric.WithDescription("Snapshot deliveries to live subscribers by result"),
	)
	if err != nil {
		logger.Warn("failed to create fanout deliveries counter", "error", err)
	}

	return &Broadcaster{
		registry:   registry,
		logger:     logger.With("component", "fanout"),
		deliveries: deliveries,
	}
}

// Broadcast sends payload to every subscriber registered on orderID and
// returns how many accepted it.
//
// The subscriber set is copied first; the registry lock is not held while
// sending. Subscribers that fail are pruned from the registry.
func (b *Broadcaster) Broadcast(ctx context.Context, orderID order.ID, payload []byte) int {
	delivered := 0

	for _, s := range b.registry.ListenersFor(orderID) {
		if s.Closed() {
			b.prune(ctx, orderID, s, nil)
			continue
		}

		if err := s.Send(ctx, payload); err != nil {
			b.prune(ctx, orderID, s, err)
			continue
		}

		delivered++
		b.record(ctx, "delivered")
	}

	return delivered
}

func (b *Broadcaster) prune(ctx context.Context, orderID order.ID, s ports.Subscriber, cause error) {
	b.registry.Unregister(orderID, s)
	b.record(ctx, "pruned")

	if cause != nil {
		b.logger.WarnContext(ctx, "subscriber delivery failed, unregistered",
			"order_id", orderID, "subscriber_id", s.ID().String(), "error", cause)
		return
	}
	b.logger.DebugContext(ctx, "closed subscriber unregistered",
		"order_id", orderID, "subscriber_id", s.ID().String())
}

func (b *Broadcaster) record(ctx context.Context, result string) {
	if b.deliveries == nil {
		return
	}
	b.deliveries.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
