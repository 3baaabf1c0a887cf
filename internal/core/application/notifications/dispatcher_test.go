package notifications_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"ordertracking/internal/core/application/notifications"
	"ordertracking/internal/core/domain/model/order"
	"ordertracking/internal/core/domain/services"
	"ordertracking/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	args := m.Called(ctx, recipient, subject, body)
	return args.Error(0)
}

// blockingNotifier waits for its context and records the peak concurrency.
type blockingNotifier struct {
	release  chan struct{}
	inFlight atomic.Int32
	peak     atomic.Int32
	calls    atomic.Int32
}

func (n *blockingNotifier) Send(ctx context.Context, _, _, _ string) error {
	n.calls.Add(1)
	current := n.inFlight.Add(1)
	defer n.inFlight.Add(-1)
	for {
		peak := n.peak.Load()
		if current <= peak || n.peak.CompareAndSwap(peak, current) {
			break
		}
	}

	select {
	case <-n.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func newTestDispatcher(notifier ports.Notifier, cfg notifications.Config) *notifications.Dispatcher {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return notifications.NewDispatcher(notifier, services.NewStatusMessageComposer(), cfg, logger)
}

func drain(t *testing.T, d *notifications.Dispatcher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Shutdown(ctx))
}

func TestDispatcher_Notify(t *testing.T) {
	t.Run("should send the composed status message once", func(t *testing.T) {
		notifier := new(MockNotifier)
		notifier.On("Send", mock.Anything, "ana@example.com", "Order #42 delivered", mock.Anything).
			Return(nil).Once()
		d := newTestDispatcher(notifier, notifications.Config{})

		d.Notify(t.Context(), "ana@example.com", 42, services.NewStatusChangedEvent(order.Completed))

		drain(t, d)
		notifier.AssertExpectations(t)
	})

	t.Run("should skip placeholder recipients", func(t *testing.T) {
		notifier := new(MockNotifier)
		d := newTestDispatcher(notifier, notifications.Config{})

		d.Notify(t.Context(), "5511999990000@phone.placeholder", 42, services.NewStatusChangedEvent(order.Confirmed))
		d.Notify(t.Context(), "", 42, services.NewStatusChangedEvent(order.Confirmed))

		drain(t, d)
		notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should swallow notifier failures", func(t *testing.T) {
		notifier := new(MockNotifier)
		notifier.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("smtp unavailable")).Once()
		d := newTestDispatcher(notifier, notifications.Config{})

		assert.NotPanics(t, func() {
			d.Notify(t.Context(), "ana@example.com", 42, services.NewStatusChangedEvent(order.Cancelled))
		})

		drain(t, d)
		notifier.AssertExpectations(t)
	})

	t.Run("should outlive the caller context", func(t *testing.T) {
		notifier := new(MockNotifier)
		notifier.On("Send", mock.MatchedBy(func(ctx context.Context) bool {
			return ctx.Err() == nil
		}), mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		d := newTestDispatcher(notifier, notifications.Config{})

		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		d.Notify(ctx, "ana@example.com", 42, services.NewStatusChangedEvent(order.Confirmed))

		drain(t, d)
		notifier.AssertExpectations(t)
	})

	t.Run("should not block the caller and should time out hung sends", func(t *testing.T) {
		notifier := &blockingNotifier{release: make(chan struct{})}
		d := newTestDispatcher(notifier, notifications.Config{Timeout: 50 * time.Millisecond})

		start := time.Now()
		d.Notify(t.Context(), "ana@example.com", 42, services.NewStatusChangedEvent(order.Confirmed))
		assert.Less(t, time.Since(start), 50*time.Millisecond)

		drain(t, d)
		assert.Equal(t, int32(1), notifier.calls.Load())
	})

	t.Run("should bound concurrent sends", func(t *testing.T) {
		notifier := &blockingNotifier{release: make(chan struct{})}
		d := newTestDispatcher(notifier, notifications.Config{MaxInFlight: 2, Timeout: time.Second})

		for range 6 {
			d.Notify(t.Context(), "ana@example.com", 42, services.NewStatusChangedEvent(order.Confirmed))
		}
		assert.Eventually(t, func() bool { return notifier.inFlight.Load() == 2 }, time.Second, 5*time.Millisecond)
		close(notifier.release)

		drain(t, d)
		assert.Equal(t, int32(2), notifier.peak.Load())
		assert.Equal(t, int32(6), notifier.calls.Load())
	})

	t.Run("should drop notifications after shutdown", func(t *testing.T) {
		notifier := new(MockNotifier)
		d := newTestDispatcher(notifier, notifications.Config{})
		drain(t, d)

		d.Notify(t.Context(), "ana@example.com", 42, services.NewStatusChangedEvent(order.Confirmed))

		drain(t, d)
		notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDispatcher_IsPlaceholder(t *testing.T) {
	d := newTestDispatcher(new(MockNotifier), notifications.Config{
		PlaceholderSuffixes: []string{".placeholder", "@example.invalid"},
	})

	tests := []struct {
		recipient string
		want      bool
	}{
		{"5511999990000@phone.placeholder", true},
		{"5511999990000@PHONE.PLACEHOLDER", true},
		{"bot@example.invalid", true},
		{"  ", true},
		{"ana@example.com", false},
		{"placeholder@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.recipient, func(t *testing.T) {
			assert.Equal(t, tt.want, d.IsPlaceholder(tt.recipient))
		})
	}
}

func TestDispatcher_ShutdownHonoursContext(t *testing.T) {
	notifier := &blockingNotifier{release: make(chan struct{})}
	d := newTestDispatcher(notifier, notifications.Config{Timeout: time.Minute})
	d.Notify(t.Context(), "ana@example.com", 42, services.NewStatusChangedEvent(order.Confirmed))

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()

	require.ErrorIs(t, d.Shutdown(ctx), context.DeadlineExceeded)

	close(notifier.release)
	drain(t, d)
}
