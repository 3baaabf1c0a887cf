package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultNotificationsExchange = "notifications_topic"
	DefaultNotificationsRouting  = "notification.email"
)

var ErrChannelClosed = errors.New("rabbitmq: publish channel is not open")

type queuedNotification struct {
	To       string    `json:"to"`
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	QueuedAt time.Time `json:"queued_at"`
}

// RabbitMQNotifier hands messages to a mail worker through a durable topic
// exchange. It does not reconnect; a dead channel fails every Send until the
// process restarts.
type RabbitMQNotifier struct {
	exchange   string
	routingKey string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// DialRabbitMQNotifier connects, opens the publish channel and declares the exchange.
func DialRabbitMQNotifier(url, exchange, routingKey string) (*RabbitMQNotifier, error) {
	if exchange == "" {
		exchange = DefaultNotificationsExchange
	}
	if routingKey == "" {
		routingKey = DefaultNotificationsRouting
	}

	conn, err := amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(10 * time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err = ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &RabbitMQNotifier{
		exchange:   exchange,
		routingKey: routingKey,
		conn:       conn,
		ch:         ch,
	}, nil
}

// Send publishes one persistent JSON message.
func (n *RabbitMQNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	data, err := json.Marshal(queuedNotification{
		To:       recipient,
		Subject:  subject,
		Body:     body,
		QueuedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.ch == nil || n.ch.IsClosed() {
		return ErrChannelClosed
	}

	return n.ch.PublishWithContext(ctx,
		n.exchange, n.routingKey, false, false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    time.Now().UTC(),
			Body:         data,
		})
}

func (n *RabbitMQNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	var errs []error
	if n.ch != nil {
		errs = append(errs, n.ch.Close())
		n.ch = nil
	}
	if n.conn != nil {
		errs = append(errs, n.conn.Close())
		n.conn = nil
	}
	return errors.Join(errs...)
}
