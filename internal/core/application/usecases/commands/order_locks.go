package commands

import (
	"sync"

	"ordertracking/internal/core/domain/model/order"
)

// OrderLocks serializes work per order id. Transitions on one order run one at
// a time in arrival order of lock acquisition; different orders never wait on
// each other. Entries are reference counted and removed when unused.
type OrderLocks struct {
	mu      sync.Mutex
	entries map[order.ID]*orderLock
}

type orderLock struct {
	mu   sync.Mutex
	refs int
}

// NewOrderLocks creates an empty lock table.
func NewOrderLocks() *OrderLocks {
	return &OrderLocks{entries: make(map[order.ID]*orderLock)}
}

// Lock blocks until the caller holds the lock for id and returns the function
// that releases it.
//
// Example:
//
//	unlock := locks.Lock(orderID)
//	defer unlock()
func (l *OrderLocks) Lock(id order.ID) func() {
	l.mu.Lock()
	entry, ok := l.entries[id]
	if !ok {
		entry = &orderLock{}
		l.entries[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.entries, id)
		}
		l.mu.Unlock()
	}
}

// Len returns the number of order ids currently locked or waited on.
func (l *OrderLocks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
