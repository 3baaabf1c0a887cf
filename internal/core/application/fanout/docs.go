// Package fanout keeps the in-memory set of live subscribers per order and
// pushes order snapshots to them.
//
// The Registry is the only shared mutable state: every mutation and every read
// happens under one mutex, and readers get copies so delivery never holds the
// lock. The Broadcaster delivers a payload to each subscriber of an order
// independently and unregisters subscribers whose delivery fails.
//
// Example:
//
//	registry := fanout.NewRegistry()
//	broadcaster := fanout.NewBroadcaster(registry, logger)
//
//	registry.Register(42, conn)
//	defer registry.Unregister(42, conn)
//
//	delivered := broadcaster.Broadcast(ctx, 42, payload)
package fanout
