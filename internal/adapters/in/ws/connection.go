// Package ws streams order snapshots to websocket clients. Each connection is
// a ports.Subscriber registered on exactly one order.
package ws

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"ordertracking/internal/core/domain/model/kernel"

	"github.com/gorilla/websocket"
)

var (
	ErrConnectionClosed = errors.New("websocket connection is closed")
	ErrOutboxFull       = errors.New("websocket outbox is full")
)

// Config tunes connection buffering and keepalive.
type Config struct {
	OutboxSize     int
	WriteWait      time.Duration
	PongWait       time.Duration
	PingPeriod     time.Duration
	MaxMessageSize int64
	AllowedOrigins []string
}

func DefaultConfig() Config {
	return Config{
		OutboxSize:     16,
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     54 * time.Second,
		MaxMessageSize: 512,
	}
}

// Connection owns one websocket. Send enqueues into a bounded outbox; only
// writeLoop touches the socket for writing and only readLoop for reading.
type Connection struct {
	id     kernel.UUID
	conn   *websocket.Conn
	cfg    Config
	logger *slog.Logger

	outbox    chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newConnection(conn *websocket.Conn, cfg Config, logger *slog.Logger) *Connection {
	id := kernel.NewUUID()
	return &Connection{
		id:     id,
		conn:   conn,
		cfg:    cfg,
		logger: logger.With("subscriber_id", id.String()),
		outbox: make(chan []byte, cfg.OutboxSize),
		done:   make(chan struct{}),
	}
}

func (c *Connection) ID() kernel.UUID {
	return c.id
}

// Send never blocks. A full outbox means the client cannot keep up; the
// caller treats the error as a dead subscriber.
func (c *Connection) Send(_ context.Context, payload []byte) error {
	if c.Closed() {
		return ErrConnectionClosed
	}

	select {
	case c.outbox <- payload:
		return nil
	default:
		c.Close()
		return ErrOutboxFull
	}
}

func (c *Connection) Closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Close marks the connection dead. writeLoop then sends the close frame and
// closes the socket, which ends readLoop.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// writeLoop drains the outbox and pings the client every PingPeriod. It is
// the only place the socket is closed.
func (c *Connection) writeLoop() {
	ticker := time.NewTicker(c.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(c.cfg.WriteWait),
			)
			return
		case payload := <-c.outbox:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.logger.Debug("websocket write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("websocket ping failed", "error", err)
				return
			}
		}
	}
}

// readLoop discards client frames and returns on the first read error or
// when no pong arrives within PongWait.
func (c *Connection) readLoop() {
	defer c.Close()

	c.conn.SetReadLimit(c.cfg.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket closed unexpectedly", "error", err)
			}
			return
		}
	}
}
