package commands

import (
	"context"
	"log/slog"
	"time"

	"ordertracking/internal/core/domain/model/order"
	"ordertracking/internal/core/domain/services"
	"ordertracking/internal/pkg/errs"
)

// Surcharges maps each delivery type to the fee added to the item subtotals, in cents.
type Surcharges map[order.DeliveryType]int64

// DefaultSurcharges charges only for express delivery.
func DefaultSurcharges() Surcharges {
	return Surcharges{
		order.Normal:    0,
		order.Express:   500,
		order.Scheduled: 0,
	}
}

// CreateOrderCommandHandler places orders.
//
// It reserves an id, draws the delivery code, computes the total from the
// snapshotted prices plus the surcharge and stores the order in Pending. Once
// committed, the customer is sent the placement message with the delivery code.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, notifier, DefaultSurcharges(), logger)
//	snapshot, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   CustomerNotifier
	surcharges Surcharges
	logger     *slog.Logger
	newCode    func() (order.DeliveryCode, error)
	now        func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier CustomerNotifier,
	surcharges Surcharges,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		surcharges: surcharges,
		logger:     logger.With("component", "create_order"),
		newCode:    order.NewDeliveryCode,
		now:        time.Now,
	}
}

// Handle stores the order and returns its snapshot.
//
// Returns a validation error for an unconstructed command and an
// InternalError when the store or the code generator fail.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (order.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	code, err := h.newCode()
	if err != nil {
		return order.Snapshot{}, errs.NewInternalErrorWithCause("generate delivery code", err)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return order.Snapshot{}, errs.NewInternalErrorWithCause("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	id, err := orderRepo.NextID(ctx)
	if err != nil {
		return order.Snapshot{}, errs.NewInternalErrorWithCause("reserve order id", err)
	}

	o, err := order.NewOrder(
		id,
		cmd.RestaurantID(),
		cmd.Recipient(),
		cmd.Delivery(),
		cmd.Items(),
		h.surcharges[cmd.Delivery().Type()],
		code,
		h.now(),
	)
	if err != nil {
		return order.Snapshot{}, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return order.Snapshot{}, errs.NewInternalErrorWithCause("save order", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Snapshot{}, errs.NewInternalErrorWithCause("commit order", err)
	}

	h.logger.InfoContext(ctx, "order placed",
		"order_id", o.ID(), "restaurant_id", o.RestaurantID(), "total_price_cents", o.TotalPriceCents())

	h.notifier.Notify(ctx, o.Recipient(), o.ID(), services.NewOrderPlacedEvent(o))

	return o.Snapshot(), nil
}
