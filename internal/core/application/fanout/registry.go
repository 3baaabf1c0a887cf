package fanout

import (
	"sync"

	"ordertracking/internal/core/domain/model/order"
	"ordertracking/internal/core/ports"
)

// Registry maps order ids to the subscribers currently watching them.
//
// An order id is present only while it has at least one subscriber; removing
// the last one deletes the key in the same critical section.
type Registry struct {
	mu        sync.Mutex
	listeners map[order.ID][]ports.Subscriber
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		listeners: make(map[order.ID][]ports.Subscriber),
	}
}

// Register adds s under orderID. Registering the same subscriber twice gives it
// two slots; each Unregister removes one.
func (r *Registry) Register(orderID order.ID, s ports.Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listeners[orderID] = append(r.listeners[orderID], s)
}

// Unregister removes s from orderID. It is a no-op when either is absent, so
// the connection teardown and broadcast pruning may both call it.
func (r *Registry) Unregister(orderID order.ID, s ports.Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.listeners[orderID]
	if !ok {
		return
	}

	for i, candidate := range current {
		if !candidate.ID().IsEqual(s.ID()) {
			continue
		}

		remaining := make([]ports.Subscriber, 0, len(current)-1)
		remaining = append(remaining, current[:i]...)
		remaining = append(remaining, current[i+1:]...)

		if len(remaining) == 0 {
			delete(r.listeners, orderID)
		} else {
			r.listeners[orderID] = remaining
		}
		return
	}
}

// ListenersFor returns a copy of the subscribers of orderID, or nil when there are none.
func (r *Registry) ListenersFor(orderID order.ID) []ports.Subscriber {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.listeners[orderID]
	if len(current) == 0 {
		return nil
	}
	return append([]ports.Subscriber(nil), current...)
}

// Len returns the number of orders with at least one subscriber.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.listeners)
}

// Count returns the number of registered subscriber slots across all orders.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for _, subs := range r.listeners {
		total += len(subs)
	}
	return total
}

// Snapshot returns a deep copy of the whole registry.
func (r *Registry) Snapshot() map[order.ID][]ports.Subscriber {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[order.ID][]ports.Subscriber, len(r.listeners))
	for id, subs := range r.listeners {
		out[id] = append([]ports.Subscriber(nil), subs...)
	}
	return out
}
