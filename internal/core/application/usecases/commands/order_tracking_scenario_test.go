package commands_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"ordertracking/internal/core/application/fanout"
	"ordertracking/internal/core/application/notifications"
	"ordertracking/internal/core/application/usecases/commands"
	"ordertracking/internal/core/domain/model/kernel"
	"ordertracking/internal/core/domain/model/order"
	"ordertracking/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingSubscriber struct {
	id kernel.UUID

	mu       sync.Mutex
	statuses []string
}

func newRecordingSubscriber() *recordingSubscriber {
	return &recordingSubscriber{id: kernel.NewUUID()}
}

func (s *recordingSubscriber) ID() kernel.UUID { return s.id }

func (s *recordingSubscriber) Closed() bool { return false }

func (s *recordingSubscriber) Send(_ context.Context, payload []byte) error {
	var snap order.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = append(s.statuses, snap.Status.Code())
	return nil
}

func (s *recordingSubscriber) received() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.statuses...)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	args := m.Called(ctx, recipient, subject, body)
	return args.Error(0)
}

type trackingFixture struct {
	store      *memoryStore
	registry   *fanout.Registry
	dispatcher *notifications.Dispatcher
	notifier   *MockNotifier
	change     commands.ChangeOrderStatusCommandHandler
	verify     commands.VerifyDeliveryCodeCommandHandler
}

func newTrackingFixture(orders ...*order.Order) *trackingFixture {
	logger := discardLogger()
	store := newMemoryStore(orders...)
	registry := fanout.NewRegistry()
	notifier := new(MockNotifier)
	dispatcher := notifications.NewDispatcher(notifier, services.NewStatusMessageComposer(), notifications.Config{}, logger)
	engine := commands.NewStatusTransitionEngine(
		store, commands.NewOrderLocks(), fanout.NewBroadcaster(registry, logger), dispatcher, nil, logger,
	)

	return &trackingFixture{
		store:      store,
		registry:   registry,
		dispatcher: dispatcher,
		notifier:   notifier,
		change:     commands.NewChangeOrderStatusCommandHandler(engine),
		verify:     commands.NewVerifyDeliveryCodeCommandHandler(engine),
	}
}

func (f *trackingFixture) drainNotifications(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, f.dispatcher.Shutdown(ctx))
}

func TestOrderTracking_ConfirmThenDeliver(t *testing.T) {
	ctx := t.Context()
	f := newTrackingFixture(restoreOrder(42, order.Pending, "0731"))
	first, second := newRecordingSubscriber(), newRecordingSubscriber()
	f.registry.Register(42, first)
	f.registry.Register(42, second)

	f.notifier.On("Send", mock.Anything, "ana@example.com", "Order #42 confirmed", mock.Anything).Return(nil).Once()
	f.notifier.On("Send", mock.Anything, "ana@example.com", "Order #42 delivered", mock.Anything).Return(nil).Once()

	// restaurant confirms
	confirm, _ := commands.NewChangeOrderStatusCommand(42, order.Confirmed)
	_, result, err := f.change.Handle(ctx, confirm)
	require.NoError(t, err)
	require.Equal(t, commands.ResultApplied, result)

	assert.Equal(t, []string{"CONFIRMADO"}, first.received())
	assert.Equal(t, []string{"CONFIRMADO"}, second.received())

	// courier posts the code
	deliver, _ := commands.NewVerifyDeliveryCodeCommand(42, "0731")
	snapshot, result, err := f.verify.Handle(ctx, deliver)
	require.NoError(t, err)
	require.Equal(t, commands.ResultApplied, result)
	assert.Equal(t, order.Completed, snapshot.Status)
	assert.Equal(t, order.Completed, f.store.status(42))

	assert.Equal(t, []string{"CONFIRMADO", "CONCLUIDO"}, first.received())
	assert.Equal(t, []string{"CONFIRMADO", "CONCLUIDO"}, second.received())

	// duplicate post
	_, result, err = f.verify.Handle(ctx, deliver)
	require.NoError(t, err)
	assert.Equal(t, commands.ResultAlreadyCompleted, result)
	assert.Len(t, first.received(), 2)

	f.drainNotifications(t)
	f.notifier.AssertExpectations(t)
	f.notifier.AssertNumberOfCalls(t, "Send", 2)
}

func TestOrderTracking_WrongCodeKeepsStatus(t *testing.T) {
	f := newTrackingFixture(restoreOrder(42, order.OutForDelivery, "0731"))
	listener := newRecordingSubscriber()
	f.registry.Register(42, listener)

	cmd, _ := commands.NewVerifyDeliveryCodeCommand(42, "1234")
	_, _, err := f.verify.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, order.ErrInvalidDeliveryCode)
	assert.Equal(t, order.OutForDelivery, f.store.status(42))
	assert.Empty(t, listener.received())
	f.drainNotifications(t)
	f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderTracking_ConcurrentTransitionsAreSerialized(t *testing.T) {
	f := newTrackingFixture(restoreOrder(42, order.Pending, "0731"))
	listener := newRecordingSubscriber()
	f.registry.Register(42, listener)
	f.notifier.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	targets := []order.Status{order.Confirmed, order.InPreparation, order.OutForDelivery, order.Confirmed}
	var wg sync.WaitGroup
	for range 10 {
		for _, target := range targets {
			wg.Add(1)
			go func() {
				defer wg.Done()
				cmd, _ := commands.NewChangeOrderStatusCommand(42, target)
				_, _, err := f.change.Handle(t.Context(), cmd)
				assert.NoError(t, err)
			}()
		}
	}
	wg.Wait()

	received := listener.received()
	require.Len(t, received, 10*len(targets))
	assert.Equal(t, f.store.status(42).Code(), received[len(received)-1],
		"the last broadcast must match the last committed status")
	f.drainNotifications(t)
}
