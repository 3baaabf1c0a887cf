// Package kafka publishes order integration events to Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"ordertracking/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultStatusChangedTopic = "order.status_changed"

	eventTypeHeader        = "event_type"
	statusChangedEventType = "order.status_changed"
	defaultBatchTimeout    = 100 * time.Millisecond
)

var producerTracer = otel.Tracer("ordertracking/kafka")

// OrderEventProducer implements ports.OrderEventPublisher.
//
// The writer is asynchronous: PublishStatusChanged only enqueues, so it is
// safe to call while a per-order lock is held. Delivery failures surface in
// the completion callback, where they are logged. Messages are keyed by order
// id, so all events of one order land on the same partition in commit order.
type OrderEventProducer struct {
	writer *kafka.Writer
	topic  string
	logger *slog.Logger
}

func NewOrderEventProducer(brokers []string, topic string, logger *slog.Logger) *OrderEventProducer {
	if topic == "" {
		topic = DefaultStatusChangedTopic
	}

	p := &OrderEventProducer{
		topic:  topic,
		logger: logger.With("component", "kafka_producer", "topic", topic),
	}
	p.writer = &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           defaultBatchTimeout,
		RequiredAcks:           kafka.RequireOne,
		Async:                  true,
		Completion:             p.completion,
	}
	return p
}

func (p *OrderEventProducer) PublishStatusChanged(ctx context.Context, event order.StatusChanged) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	key := event.OrderID.String()
	ctx, span := producerTracer.Start(ctx, "send "+p.topic,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingOperationName("send"),
			semconv.MessagingOperationTypePublish,
			semconv.MessagingDestinationName(p.topic),
			semconv.MessagingKafkaMessageKey(key),
		),
	)
	defer span.End()

	msg := newStatusChangedMessage(ctx, event.OrderID, data)

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (p *OrderEventProducer) completion(messages []kafka.Message, err error) {
	if err != nil {
		p.logger.Error("failed to deliver order events", "count", len(messages), "error", err)
		return
	}
	p.logger.Debug("order events delivered", "count", len(messages))
}

// Close flushes pending messages and releases the writer.
func (p *OrderEventProducer) Close() error {
	return p.writer.Close()
}
