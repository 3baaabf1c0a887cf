package jobs

import (
	"context"
	"log/slog"

	"ordertracking/internal/core/application/fanout"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// DefaultSweepSchedule runs the sweep every 30 seconds.
const DefaultSweepSchedule = "*/30 * * * * *"

// SubscriberSweepJob unregisters subscribers whose connection closed without
// going through the normal teardown, and records the registry size.
type SubscriberSweepJob struct {
	registry    *fanout.Registry
	schedule    string
	cron        *cron.Cron
	logger      *slog.Logger
	subscribers metric.Int64Gauge
}

// NewSubscriberSweepJob creates the sweep job. An empty schedule selects
// DefaultSweepSchedule; the schedule has a seconds field.
func NewSubscriberSweepJob(registry *fanout.Registry, schedule string, logger *slog.Logger) *SubscriberSweepJob {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	logger = logger.With("component", "subscriber_sweep_job")

	subscribers, err := otel.Meter("ordertracking/jobs").Int64Gauge(
		"fanout.subscribers",
		metric.WithDescription("Registered subscriber handles after the last sweep"),
	)
	if err != nil {
		logger.Warn("failed to create subscribers gauge", "error", err)
	}

	return &SubscriberSweepJob{
		registry:    registry,
		schedule:    schedule,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger,
		subscribers: subscribers,
	}
}

// Start schedules the sweep.
func (j *SubscriberSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Sweep(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Subscriber sweep job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *SubscriberSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Subscriber sweep job stopped")
}

// Sweep unregisters every closed subscriber and returns how many were removed.
func (j *SubscriberSweepJob) Sweep(ctx context.Context) int {
	removed := 0
	for orderID, subs := range j.registry.Snapshot() {
		for _, s := range subs {
			if !s.Closed() {
				continue
			}
			j.registry.Unregister(orderID, s)
			removed++
		}
	}

	orders, handles := j.registry.Len(), j.registry.Count()
	if j.subscribers != nil {
		j.subscribers.Record(ctx, int64(handles))
	}

	if removed > 0 {
		j.logger.InfoContext(ctx, "closed subscribers swept",
			"removed", removed, "orders", orders, "subscribers", handles)
	} else {
		j.logger.DebugContext(ctx, "subscriber registry size", "orders", orders, "subscribers", handles)
	}
	return removed
}
