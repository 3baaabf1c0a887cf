package commands

import (
	"context"

	"ordertracking/internal/core/domain/model/order"
)

// ChangeOrderStatusCommandHandler applies restaurant status changes.
//
// Transitions are permissive: any non-terminal order may move to any status.
// A terminal order is left untouched and reported as ResultAlreadyTerminal.
type ChangeOrderStatusCommandHandler struct {
	engine *StatusTransitionEngine
}

// NewChangeOrderStatusCommandHandler creates a handler on top of engine.
func NewChangeOrderStatusCommandHandler(engine *StatusTransitionEngine) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{engine: engine}
}

// Handle validates cmd and applies it. See StatusTransitionEngine.ApplyStatus
// for the possible outcomes.
func (h ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (order.Snapshot, Result, error) {
	if err := cmd.Validate(); err != nil {
		return order.Snapshot{}, ResultUnknown, err
	}

	return h.engine.ApplyStatus(ctx, cmd.OrderID(), cmd.Status())
}
