// Package kernel holds the small value objects shared by the order tracking
// domain and its adapters.
//
// UUID identifies things the service creates for itself: subscriber handles
// attached to live connections and the integration events published after a
// status change. Orders keep the numeric identifiers assigned by the store.
package kernel
