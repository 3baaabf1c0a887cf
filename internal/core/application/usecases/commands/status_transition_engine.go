package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"ordertracking/internal/core/domain/model/order"
	"ordertracking/internal/core/domain/services"
	"ordertracking/internal/core/ports"
	"ordertracking/internal/pkg/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("ordertracking/commands")

// Result tells the caller what a status request did to the order.
type Result int

const (
	// ResultUnknown catches uninitialized values.
	ResultUnknown Result = iota

	// ResultApplied means the new status was committed and side effects fired.
	ResultApplied

	// ResultAlreadyTerminal means the order was Completed or Cancelled and the
	// request was ignored. Informational, not an error.
	ResultAlreadyTerminal

	// ResultAlreadyCompleted means a delivery code was posted for an order that
	// is already Completed. Informational, not an error.
	ResultAlreadyCompleted
)

func (r Result) String() string {
	switch r {
	case ResultApplied:
		return "applied"
	case ResultAlreadyTerminal:
		return "already_terminal"
	case ResultAlreadyCompleted:
		return "already_completed"
	default:
		return "unknown"
	}
}

// precondition inspects the locked order before the transition. A non-zero
// Result short-circuits the transition as a benign outcome.
type precondition func(o *order.Order) (Result, error)

// StatusTransitionEngine applies status changes and fires their side effects.
//
// Per order id, the load, mutation, commit and broadcast run under one
// OrderLocks entry, so subscribers observe snapshots in commit order.
// Broadcast, notification and event publishing happen only after a successful
// commit and never fail the transition.
type StatusTransitionEngine struct {
	uowFactory  OrderUoWFactory
	locks       *OrderLocks
	broadcaster SnapshotBroadcaster
	notifier    CustomerNotifier
	publisher   ports.OrderEventPublisher
	logger      *slog.Logger
	now         func() time.Time
}

// NewStatusTransitionEngine wires the engine. publisher may be nil when no
// integration event stream is configured.
func NewStatusTransitionEngine(
	uowFactory OrderUoWFactory,
	locks *OrderLocks,
	broadcaster SnapshotBroadcaster,
	notifier CustomerNotifier,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) *StatusTransitionEngine {
	return &StatusTransitionEngine{
		uowFactory:  uowFactory,
		locks:       locks,
		broadcaster: broadcaster,
		notifier:    notifier,
		publisher:   publisher,
		logger:      logger.With("component", "status_transition_engine"),
		now:         time.Now,
	}
}

// ApplyStatus moves order id to target.
//
// Returns:
//   - (snapshot, ResultApplied, nil) when the status was committed
//   - (snapshot, ResultAlreadyTerminal, nil) when the order is Completed or Cancelled
//   - ObjectNotFoundError when the order does not exist
//   - ValueIsInvalidError when target is not a status
//   - InternalError when the store fails; the status is unchanged
func (e *StatusTransitionEngine) ApplyStatus(
	ctx context.Context,
	id order.ID,
	target order.Status,
) (order.Snapshot, Result, error) {
	return e.apply(ctx, id, target, nil)
}

func (e *StatusTransitionEngine) apply(
	ctx context.Context,
	id order.ID,
	target order.Status,
	check precondition,
) (snapshot order.Snapshot, result Result, err error) {
	ctx, span := tracer.Start(ctx, "order.apply_status", trace.WithAttributes(
		attribute.Int64("order.id", int64(id)),
		attribute.String("order.target_status", target.Code()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.String("order.result", result.String()))
		}
		span.End()
	}()

	unlock := e.locks.Lock(id)
	defer unlock()

	uow := e.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return order.Snapshot{}, ResultUnknown, errs.NewInternalErrorWithCause("begin transaction", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return order.Snapshot{}, ResultUnknown, err
		}
		return order.Snapshot{}, ResultUnknown, errs.NewInternalErrorWithCause("load order", err)
	}

	if check != nil {
		benign, checkErr := check(o)
		if checkErr != nil {
			return order.Snapshot{}, ResultUnknown, checkErr
		}
		if benign != ResultUnknown {
			return o.Snapshot(), benign, nil
		}
	}

	from := o.Status()
	changed, err := o.ApplyStatus(target)
	if err != nil {
		return order.Snapshot{}, ResultUnknown, err
	}
	if !changed {
		e.logger.InfoContext(ctx, "status change ignored, order is terminal",
			"order_id", id, "status", from.Code(), "requested", target.Code())
		return o.Snapshot(), ResultAlreadyTerminal, nil
	}

	if err = repo.Update(ctx, o); err != nil {
		return order.Snapshot{}, ResultUnknown, errs.NewInternalErrorWithCause("save order status", err)
	}
	if err = uow.Commit(ctx); err != nil {
		return order.Snapshot{}, ResultUnknown, errs.NewInternalErrorWithCause("commit order status", err)
	}

	e.logger.InfoContext(ctx, "order status changed",
		"order_id", id, "from", from.Code(), "to", o.Status().Code())

	snapshot = o.Snapshot()
	e.afterCommit(ctx, o, from, snapshot)

	return snapshot, ResultApplied, nil
}

// afterCommit runs while the per-order lock is still held. None of its
// collaborators block on network I/O.
func (e *StatusTransitionEngine) afterCommit(ctx context.Context, o *order.Order, from order.Status, snapshot order.Snapshot) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		e.logger.ErrorContext(ctx, "failed to encode order snapshot", "order_id", o.ID(), "error", err)
	} else {
		delivered := e.broadcaster.Broadcast(ctx, o.ID(), payload)
		e.logger.DebugContext(ctx, "order snapshot broadcast", "order_id", o.ID(), "subscribers", delivered)
	}

	e.notifier.Notify(ctx, o.Recipient(), o.ID(), services.NewStatusChangedEvent(o.Status()))

	if e.publisher == nil {
		return
	}
	if err = e.publisher.PublishStatusChanged(ctx, order.NewStatusChanged(o, from, e.now())); err != nil {
		e.logger.WarnContext(ctx, "failed to publish order status event", "order_id", o.ID(), "error", err)
	}
}
