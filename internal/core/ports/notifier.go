package ports

import "context"

// Notifier delivers an out-of-band message (e-mail, queue message) to a customer.
//
// Implementations must honour ctx cancellation; the caller bounds every send
// with a timeout and never retries.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}
