// Package notifications sends customer notifications about order events
// without blocking the caller.
//
// Every Notify call composes the message synchronously and hands the send to a
// goroutine. The send is bounded by a timeout and by a process-wide limit on
// in-flight sends; its outcome is logged and counted, never returned.
package notifications

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"ordertracking/internal/core/domain/model/order"
	"ordertracking/internal/core/domain/services"
	"ordertracking/internal/core/ports"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/semaphore"
)

const (
	meterName = "ordertracking/notifications"

	DefaultTimeout     = 5 * time.Second
	DefaultMaxInFlight = 64
)

// DefaultPlaceholderSuffixes are recipient suffixes of accounts that have no
// real mailbox (phone-only logins get "<phone>@phone.placeholder").
var DefaultPlaceholderSuffixes = []string{".placeholder"}

// ErrDispatcherClosed is logged for notifications requested after Shutdown.
var ErrDispatcherClosed = errors.New("notification dispatcher is shut down")

// Config tunes a Dispatcher. Zero values fall back to the defaults.
type Config struct {
	Timeout             time.Duration
	MaxInFlight         int64
	PlaceholderSuffixes []string
}

// Dispatcher schedules notifications on background goroutines.
type Dispatcher struct {
	notifier ports.Notifier
	composer services.StatusMessageComposer
	logger   *slog.Logger

	timeout  time.Duration
	suffixes []string
	inFlight *semaphore.Weighted

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup

	results metric.Int64Counter
}

// NewDispatcher creates a dispatcher sending through notifier.
func NewDispatcher(
	notifier ports.Notifier,
	composer services.StatusMessageComposer,
	cfg Config,
	logger *slog.Logger,
) *Dispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = DefaultMaxInFlight
	}
	if cfg.PlaceholderSuffixes == nil {
		cfg.PlaceholderSuffixes = DefaultPlaceholderSuffixes
	}

	logger = logger.With("component", "notifications")

	results, err := otel.Meter(meterName).Int64Counter(
		"notifications.sent",
		metric.WithDescription("Notification attempts by event and result"),
	)
	if err != nil {
		logger.Warn("failed to create notifications counter", "error", err)
	}

	return &Dispatcher{
		notifier: notifier,
		composer: composer,
		logger:   logger,
		timeout:  cfg.Timeout,
		suffixes: cfg.PlaceholderSuffixes,
		inFlight: semaphore.NewWeighted(cfg.MaxInFlight),
		results:  results,
	}
}

// Notify schedules the message for event on order orderID to recipient and
// returns immediately. Cancelling ctx does not cancel the scheduled send.
func (d *Dispatcher) Notify(ctx context.Context, recipient string, orderID order.ID, event services.Event) {
	log := d.logger.With("order_id", orderID, "event", event.Kind.String())

	if d.IsPlaceholder(recipient) {
		log.DebugContext(ctx, "skipping notification to placeholder recipient")
		d.record(ctx, event.Kind, "skipped")
		return
	}

	msg := d.composer.Compose(orderID, event)

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		log.WarnContext(ctx, "notification dropped", "error", ErrDispatcherClosed)
		d.record(ctx, event.Kind, "dropped")
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go d.send(context.WithoutCancel(ctx), log, recipient, event.Kind, msg)
}

// IsPlaceholder reports whether recipient ends with one of the placeholder suffixes.
func (d *Dispatcher) IsPlaceholder(recipient string) bool {
	recipient = strings.ToLower(strings.TrimSpace(recipient))
	if recipient == "" {
		return true
	}
	for _, suffix := range d.suffixes {
		if suffix != "" && strings.HasSuffix(recipient, strings.ToLower(suffix)) {
			return true
		}
	}
	return false
}

// Shutdown stops accepting notifications and waits for the scheduled ones,
// or for ctx to end.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) send(ctx context.Context, log *slog.Logger, recipient string, kind services.EventKind, msg services.Message) {
	defer d.wg.Done()

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.inFlight.Acquire(ctx, 1); err != nil {
		log.WarnContext(ctx, "notification dropped, too many in flight", "error", err)
		d.record(ctx, kind, "dropped")
		return
	}
	defer d.inFlight.Release(1)

	start := time.Now()
	if err := d.notifier.Send(ctx, recipient, msg.Subject, msg.Body); err != nil {
		log.ErrorContext(ctx, "failed to send notification",
			"error", err, "duration", time.Since(start))
		d.record(ctx, kind, "failed")
		return
	}

	log.InfoContext(ctx, "notification sent", "duration", time.Since(start))
	d.record(ctx, kind, "sent")
}

func (d *Dispatcher) record(ctx context.Context, kind services.EventKind, result string) {
	if d.results == nil {
		return
	}
	d.results.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event", kind.String()),
		attribute.String("result", result),
	))
}
