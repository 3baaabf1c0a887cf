package commands_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"ordertracking/internal/core/application/usecases/commands"
	"ordertracking/internal/core/domain/model/order"
	"ordertracking/internal/core/domain/services"
	"ordertracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(m *engineMocks) *commands.StatusTransitionEngine {
	return commands.NewStatusTransitionEngine(
		m.factory, commands.NewOrderLocks(), m.broadcaster, m.notifier, m.publisher, discardLogger(),
	)
}

func snapshotPayload(status string) any {
	return mock.MatchedBy(func(payload []byte) bool {
		var snap struct {
			ID     int64  `json:"id"`
			Status string `json:"status"`
		}
		return json.Unmarshal(payload, &snap) == nil && snap.ID == 42 && snap.Status == status
	})
}

func TestChangeOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	m := newEngineMocks()
	stored := restoreOrder(42, order.Pending, "0731")
	cmd, err := commands.NewChangeOrderStatusCommand(42, order.Confirmed)
	require.NoError(t, err)

	mock.InOrder(
		m.uow.On("Begin", mock.Anything).Return(nil).Once(),
		m.repo.On("GetForUpdate", mock.Anything, order.ID(42)).Return(stored, nil).Once(),
		m.repo.On("Update", mock.Anything, stored).Return(nil).Once(),
		m.uow.On("Commit", mock.Anything).Return(nil).Once(),
		m.broadcaster.On("Broadcast", mock.Anything, order.ID(42), snapshotPayload("CONFIRMADO")).Return(2).Once(),
		m.notifier.On("Notify", mock.Anything, "ana@example.com", order.ID(42),
			services.NewStatusChangedEvent(order.Confirmed)).Once(),
		m.publisher.On("PublishStatusChanged", mock.Anything, mock.MatchedBy(func(e order.StatusChanged) bool {
			return e.OrderID == 42 && e.From == order.Pending && e.To == order.Confirmed
		})).Return(nil).Once(),
	)

	h := commands.NewChangeOrderStatusCommandHandler(newTestEngine(m))
	snapshot, result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.ResultApplied, result)
	assert.Equal(t, order.Confirmed, snapshot.Status)
	m.assertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_PermissiveJump(t *testing.T) {
	m := newEngineMocks()
	stored := restoreOrder(42, order.Pending, "0731")
	cmd, _ := commands.NewChangeOrderStatusCommand(42, order.OutForDelivery)

	m.uow.On("Begin", mock.Anything).Return(nil).Once()
	m.repo.On("GetForUpdate", mock.Anything, order.ID(42)).Return(stored, nil).Once()
	m.repo.On("Update", mock.Anything, stored).Return(nil).Once()
	m.uow.On("Commit", mock.Anything).Return(nil).Once()
	m.broadcaster.On("Broadcast", mock.Anything, order.ID(42), snapshotPayload("SAIU_PARA_ENTREGA")).Return(0).Once()
	m.notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Once()
	m.publisher.On("PublishStatusChanged", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	h := commands.NewChangeOrderStatusCommandHandler(newTestEngine(m))
	snapshot, result, err := h.Handle(t.Context(), cmd)

	require.NoError(t, err, "publisher failure must not fail the transition")
	assert.Equal(t, commands.ResultApplied, result)
	assert.Equal(t, order.OutForDelivery, snapshot.Status)
	m.assertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_TerminalOrder(t *testing.T) {
	for _, terminal := range []order.Status{order.Completed, order.Cancelled} {
		t.Run(terminal.String(), func(t *testing.T) {
			m := newEngineMocks()
			stored := restoreOrder(42, terminal, "0731")
			cmd, _ := commands.NewChangeOrderStatusCommand(42, order.Pending)

			m.uow.On("Begin", mock.Anything).Return(nil).Once()
			m.repo.On("GetForUpdate", mock.Anything, order.ID(42)).Return(stored, nil).Once()

			h := commands.NewChangeOrderStatusCommandHandler(newTestEngine(m))
			snapshot, result, err := h.Handle(t.Context(), cmd)

			require.NoError(t, err)
			assert.Equal(t, commands.ResultAlreadyTerminal, result)
			assert.Equal(t, terminal, snapshot.Status)
			m.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			m.uow.AssertNotCalled(t, "Commit", mock.Anything)
			m.assertNoSideEffects(t)
		})
	}
}

func TestChangeOrderStatusCommandHandler_Handle_NotFound(t *testing.T) {
	m := newEngineMocks()
	cmd, _ := commands.NewChangeOrderStatusCommand(404, order.Confirmed)

	m.uow.On("Begin", mock.Anything).Return(nil).Once()
	m.repo.On("GetForUpdate", mock.Anything, order.ID(404)).
		Return(nil, errs.NewObjectNotFoundError("orderID", int64(404))).Once()

	h := commands.NewChangeOrderStatusCommandHandler(newTestEngine(m))
	_, _, err := h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	require.NotErrorIs(t, err, errs.ErrInternal)
	m.assertNoSideEffects(t)
}

func TestChangeOrderStatusCommandHandler_Handle_StoreFailures(t *testing.T) {
	storeErr := errors.New("connection reset")

	tests := []struct {
		name  string
		setup func(m *engineMocks, stored *order.Order)
	}{
		{
			name: "begin",
			setup: func(m *engineMocks, _ *order.Order) {
				m.uow.On("Begin", mock.Anything).Return(storeErr).Once()
			},
		},
		{
			name: "load",
			setup: func(m *engineMocks, _ *order.Order) {
				m.uow.On("Begin", mock.Anything).Return(nil).Once()
				m.repo.On("GetForUpdate", mock.Anything, order.ID(42)).Return(nil, storeErr).Once()
			},
		},
		{
			name: "update",
			setup: func(m *engineMocks, stored *order.Order) {
				m.uow.On("Begin", mock.Anything).Return(nil).Once()
				m.repo.On("GetForUpdate", mock.Anything, order.ID(42)).Return(stored, nil).Once()
				m.repo.On("Update", mock.Anything, stored).Return(storeErr).Once()
			},
		},
		{
			name: "commit",
			setup: func(m *engineMocks, stored *order.Order) {
				m.uow.On("Begin", mock.Anything).Return(nil).Once()
				m.repo.On("GetForUpdate", mock.Anything, order.ID(42)).Return(stored, nil).Once()
				m.repo.On("Update", mock.Anything, stored).Return(nil).Once()
				m.uow.On("Commit", mock.Anything).Return(storeErr).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newEngineMocks()
			tt.setup(m, restoreOrder(42, order.Pending, "0731"))
			cmd, _ := commands.NewChangeOrderStatusCommand(42, order.Confirmed)

			h := commands.NewChangeOrderStatusCommandHandler(newTestEngine(m))
			_, result, err := h.Handle(t.Context(), cmd)

			require.ErrorIs(t, err, errs.ErrInternal)
			require.ErrorIs(t, err, storeErr)
			assert.Equal(t, commands.ResultUnknown, result)
			m.assertExpectations(t)
			m.assertNoSideEffects(t)
		})
	}
}

func TestChangeOrderStatusCommandHandler_Handle_NotConstructed(t *testing.T) {
	m := newEngineMocks()
	h := commands.NewChangeOrderStatusCommandHandler(newTestEngine(m))

	_, _, err := h.Handle(t.Context(), commands.ChangeOrderStatusCommand{})

	require.ErrorIs(t, err, commands.ErrChangeOrderStatusCommandIsNotConstructed)
	m.factory.AssertNotCalled(t, "Create")
}

func TestStatusTransitionEngine_WithoutPublisher(t *testing.T) {
	m := newEngineMocks()
	stored := restoreOrder(42, order.InPreparation, "0731")

	m.uow.On("Begin", mock.Anything).Return(nil).Once()
	m.repo.On("GetForUpdate", mock.Anything, order.ID(42)).Return(stored, nil).Once()
	m.repo.On("Update", mock.Anything, stored).Return(nil).Once()
	m.uow.On("Commit", mock.Anything).Return(nil).Once()
	m.broadcaster.On("Broadcast", mock.Anything, order.ID(42), mock.Anything).Return(1).Once()
	m.notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Once()

	engine := commands.NewStatusTransitionEngine(
		m.factory, commands.NewOrderLocks(), m.broadcaster, m.notifier, nil, discardLogger(),
	)
	_, result, err := engine.ApplyStatus(t.Context(), 42, order.Cancelled)

	require.NoError(t, err)
	assert.Equal(t, commands.ResultApplied, result)
	m.assertExpectations(t)
}

func TestStatusTransitionEngine_InvalidTarget(t *testing.T) {
	m := newEngineMocks()
	stored := restoreOrder(42, order.Pending, "0731")
	m.uow.On("Begin", mock.Anything).Return(nil).Once()
	m.repo.On("GetForUpdate", mock.Anything, order.ID(42)).Return(stored, nil).Once()

	_, _, err := newTestEngine(m).ApplyStatus(t.Context(), 42, order.Unknown)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, order.Pending, stored.Status())
	m.assertNoSideEffects(t)
}

func TestResult_String(t *testing.T) {
	assert.Equal(t, "applied", commands.ResultApplied.String())
	assert.Equal(t, "already_terminal", commands.ResultAlreadyTerminal.String())
	assert.Equal(t, "already_completed", commands.ResultAlreadyCompleted.String())
	assert.Equal(t, "unknown", commands.ResultUnknown.String())
}
