package commands

import (
	"context"

	"ordertracking/internal/core/domain/model/order"
)

// VerifyDeliveryCodeCommandHandler completes an order when the courier posts
// the right delivery code.
//
// Business rules:
//   - an unknown order yields ObjectNotFoundError
//   - a Completed order yields ResultAlreadyCompleted without comparing codes
//     and without side effects
//   - a wrong code yields order.ErrInvalidDeliveryCode; the status is unchanged
//   - the right code moves the order to Completed through the engine; for a
//     Cancelled order that is the terminal no-op ResultAlreadyTerminal
//
// Example:
//
//	cmd, _ := NewVerifyDeliveryCodeCommand(42, "0731")
//	_, result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrInvalidDeliveryCode):
//	    // ask the customer again
//	case err != nil:
//	    return err
//	case result == ResultAlreadyCompleted:
//	    // duplicate post
//	}
type VerifyDeliveryCodeCommandHandler struct {
	engine *StatusTransitionEngine
}

// NewVerifyDeliveryCodeCommandHandler creates a handler on top of engine.
func NewVerifyDeliveryCodeCommandHandler(engine *StatusTransitionEngine) VerifyDeliveryCodeCommandHandler {
	return VerifyDeliveryCodeCommandHandler{engine: engine}
}

// Handle checks the code and completes the order.
func (h VerifyDeliveryCodeCommandHandler) Handle(
	ctx context.Context,
	cmd VerifyDeliveryCodeCommand,
) (order.Snapshot, Result, error) {
	if err := cmd.Validate(); err != nil {
		return order.Snapshot{}, ResultUnknown, err
	}

	return h.engine.apply(ctx, cmd.OrderID(), order.Completed, func(o *order.Order) (Result, error) {
		if o.Status() == order.Completed {
			return ResultAlreadyCompleted, nil
		}
		if err := o.CheckDeliveryCode(cmd.Code()); err != nil {
			return ResultUnknown, err
		}
		return ResultUnknown, nil
	})
}
