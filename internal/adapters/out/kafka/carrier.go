package kafka

import (
	"context"
	"strconv"

	"ordertracking/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
)

// MessageCarrier reads and writes the headers of one order event message.
// It satisfies propagation.TextMapCarrier for the trace context and also
// exposes the event_type header consumers route on. Header keys are unique;
// Set replaces an existing value in place.
type MessageCarrier struct {
	msg *kafka.Message
}

func NewMessageCarrier(msg *kafka.Message) *MessageCarrier {
	return &MessageCarrier{msg: msg}
}

// newStatusChangedMessage keys the message by order id and stamps the event
// type and the trace context of ctx.
func newStatusChangedMessage(ctx context.Context, id order.ID, value []byte) kafka.Message {
	msg := kafka.Message{Key: []byte(id.String()), Value: value}
	carrier := NewMessageCarrier(&msg)
	carrier.SetEventType(statusChangedEventType)
	carrier.Inject(ctx)
	return msg
}

func (c *MessageCarrier) EventType() string {
	return c.Get(eventTypeHeader)
}

func (c *MessageCarrier) SetEventType(eventType string) {
	c.Set(eventTypeHeader, eventType)
}

// OrderID parses the message key.
func (c *MessageCarrier) OrderID() (order.ID, error) {
	raw, err := strconv.ParseInt(string(c.msg.Key), 10, 64)
	if err != nil {
		return 0, err
	}
	return order.ID(raw), nil
}

// Inject writes the span context of ctx with the global propagator.
func (c *MessageCarrier) Inject(ctx context.Context) {
	otel.GetTextMapPropagator().Inject(ctx, c)
}

// Extract returns ctx carrying the remote span context found in the headers.
func (c *MessageCarrier) Extract(ctx context.Context) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, c)
}

func (c *MessageCarrier) Get(key string) string {
	if i := c.index(key); i >= 0 {
		return string(c.msg.Headers[i].Value)
	}
	return ""
}

func (c *MessageCarrier) Set(key, value string) {
	if i := c.index(key); i >= 0 {
		c.msg.Headers[i].Value = []byte(value)
		return
	}
	c.msg.Headers = append(c.msg.Headers, kafka.Header{Key: key, Value: []byte(value)})
}

// Keys lists the propagation keys only; event_type is not trace context.
func (c *MessageCarrier) Keys() []string {
	keys := make([]string, 0, len(c.msg.Headers))
	for _, h := range c.msg.Headers {
		if h.Key != eventTypeHeader {
			keys = append(keys, h.Key)
		}
	}
	return keys
}

func (c *MessageCarrier) index(key string) int {
	for i, h := range c.msg.Headers {
		if h.Key == key {
			return i
		}
	}
	return -1
}
