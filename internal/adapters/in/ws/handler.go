package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"

	"ordertracking/internal/core/application/fanout"
	"ordertracking/internal/core/application/usecases/queries"
	"ordertracking/internal/core/domain/model/order"
	"ordertracking/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// SnapshotReader loads the current public view of an order.
type SnapshotReader interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (order.Snapshot, error)
}

// OrderLocker is the per-order lock table shared with the status transition
// engine. Holding an order's lock excludes commits and broadcasts for it.
type OrderLocker interface {
	Lock(id order.ID) func()
}

// Handler upgrades GET /ws/order/:orderId and keeps the connection
// registered until either side goes away.
type Handler struct {
	registry *fanout.Registry
	reader   SnapshotReader
	locks    OrderLocker
	upgrader websocket.Upgrader
	cfg      Config
	logger   *slog.Logger
}

func NewHandler(
	registry *fanout.Registry,
	reader SnapshotReader,
	locks OrderLocker,
	cfg Config,
	logger *slog.Logger,
) *Handler {
	h := &Handler{
		registry: registry,
		reader:   reader,
		locks:    locks,
		cfg:      cfg,
		logger:   logger.With("component", "websocket"),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// ServeOrder answers 400 for a malformed id and 404 for an unknown order
// before upgrading. After the upgrade the current snapshot is the first frame.
func (h *Handler) ServeOrder(c echo.Context) error {
	ctx := c.Request().Context()

	raw, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "orderId must be an integer")
	}

	query, err := queries.NewGetOrderQuery(order.ID(raw))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err = h.reader.Handle(ctx, query); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return err
	}

	socket, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader already wrote the error response
		h.logger.DebugContext(ctx, "websocket upgrade failed", "error", err)
		return nil
	}

	h.serve(ctx, query, socket)
	return nil
}

func (h *Handler) serve(ctx context.Context, query queries.GetOrderQuery, socket *websocket.Conn) {
	conn := newConnection(socket, h.cfg, h.logger)
	orderID := query.OrderID()

	h.registry.Register(orderID, conn)
	defer h.registry.Unregister(orderID, conn)

	log := h.logger.With("order_id", orderID, "subscriber_id", conn.ID().String())
	log.DebugContext(ctx, "subscriber connected")

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		conn.writeLoop()
	}()

	if err := h.sendInitialSnapshot(ctx, query, conn); err != nil {
		log.WarnContext(ctx, "failed to send initial snapshot", "error", err)
		conn.Close()
	}

	conn.readLoop()
	<-writerDone

	log.DebugContext(ctx, "subscriber disconnected")
}

// sendInitialSnapshot reloads after registration so a transition committed in
// between is never missed. The order lock keeps any broadcast out until the
// snapshot is queued, so the first frame is never newer than the ones after it.
func (h *Handler) sendInitialSnapshot(ctx context.Context, query queries.GetOrderQuery, conn *Connection) error {
	unlock := h.locks.Lock(query.OrderID())
	defer unlock()

	snapshot, err := h.reader.Handle(ctx, query)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return conn.Send(ctx, payload)
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	if len(h.cfg.AllowedOrigins) == 0 {
		return true
	}
	return slices.Contains(h.cfg.AllowedOrigins, r.Header.Get("Origin"))
}
