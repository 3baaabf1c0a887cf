package fanout_test

import (
	"sync"
	"testing"

	"ordertracking/internal/core/application/fanout"
	"ordertracking/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	t.Run("should list subscribers per order", func(t *testing.T) {
		registry := fanout.NewRegistry()
		first, second, other := newFakeSubscriber(), newFakeSubscriber(), newFakeSubscriber()

		registry.Register(42, first)
		registry.Register(42, second)
		registry.Register(7, other)

		listeners := registry.ListenersFor(42)
		require.Len(t, listeners, 2)
		assert.Equal(t, first.ID(), listeners[0].ID())
		assert.Equal(t, second.ID(), listeners[1].ID())
		assert.Equal(t, 2, registry.Len())
		assert.Equal(t, 3, registry.Count())
	})

	t.Run("should keep a slot per registration of the same subscriber", func(t *testing.T) {
		registry := fanout.NewRegistry()
		s := newFakeSubscriber()

		registry.Register(42, s)
		registry.Register(42, s)
		registry.Unregister(42, s)

		assert.Len(t, registry.ListenersFor(42), 1)
	})
}

func TestRegistry_Unregister(t *testing.T) {
	t.Run("should delete the key with the last subscriber", func(t *testing.T) {
		registry := fanout.NewRegistry()
		first, second := newFakeSubscriber(), newFakeSubscriber()
		registry.Register(42, first)
		registry.Register(42, second)

		registry.Unregister(42, first)
		assert.Equal(t, 1, registry.Len())

		registry.Unregister(42, second)
		assert.Equal(t, 0, registry.Len())
		assert.NotContains(t, registry.Snapshot(), order.ID(42))
		assert.Empty(t, registry.ListenersFor(42))
	})

	t.Run("should tolerate absent subscribers and keys", func(t *testing.T) {
		registry := fanout.NewRegistry()
		present, absent := newFakeSubscriber(), newFakeSubscriber()
		registry.Register(42, present)

		assert.NotPanics(t, func() {
			registry.Unregister(42, absent)
			registry.Unregister(99, present)
			registry.Unregister(42, present)
			registry.Unregister(42, present)
		})
		assert.Equal(t, 0, registry.Len())
	})
}

func TestRegistry_ListenersForReturnsCopy(t *testing.T) {
	registry := fanout.NewRegistry()
	s := newFakeSubscriber()
	registry.Register(42, s)

	listeners := registry.ListenersFor(42)
	listeners[0] = newFakeSubscriber()
	registry.Unregister(42, s)

	assert.Len(t, listeners, 1)
	assert.Empty(t, registry.ListenersFor(42))
}

func TestRegistry_SnapshotIsDetached(t *testing.T) {
	registry := fanout.NewRegistry()
	registry.Register(42, newFakeSubscriber())

	snapshot := registry.Snapshot()
	snapshot[42] = nil
	delete(snapshot, 42)

	assert.Len(t, registry.ListenersFor(42), 1)
}

func TestRegistry_ConcurrentChurn(t *testing.T) {
	registry := fanout.NewRegistry()
	const workers = 32

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := order.ID(i%4 + 1)
			s := newFakeSubscriber()
			for range 100 {
				registry.Register(id, s)
				_ = registry.ListenersFor(id)
				registry.Unregister(id, s)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, registry.Len())
	assert.Equal(t, 0, registry.Count())
}
