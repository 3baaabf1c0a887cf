package notifier

import (
	"context"
	"log/slog"
)

// LogNotifier only logs. It stands in for a real transport in local runs.
// The body is left out because placement messages carry the delivery code.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "log_notifier")}
}

func (n *LogNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	n.logger.InfoContext(ctx, "notification", "recipient", recipient, "subject", subject, "body_bytes", len(body))
	return nil
}
