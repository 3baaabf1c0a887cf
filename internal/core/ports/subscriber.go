package ports

import (
	"context"

	"ordertracking/internal/core/domain/model/kernel"
)

// Subscriber is one live connection watching a single order.
//
// Send must not block on network I/O: implementations enqueue the payload and
// return an error when it cannot be accepted (connection closed, outbox full).
// Any error marks the subscriber dead for the caller.
type Subscriber interface {
	// ID identifies the subscriber; registry membership is by ID.
	ID() kernel.UUID

	// Send hands one snapshot payload to the connection.
	Send(ctx context.Context, payload []byte) error

	// Closed reports whether the underlying connection is gone.
	Closed() bool
}
