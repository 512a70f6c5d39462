package ws

import (
	"sync"
	"time"

	"github.com/GriffinCanCode/appshell/internal/infrastructure/logging"
	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// client owns one connection. Only writePump writes to conn.
type client struct {
	conn   *websocket.Conn
	remote string
	out    chan []byte
	done   chan struct{}
	once   sync.Once
}

func newClient(conn *websocket.Conn, remote string) *client {
	return &client{
		conn:   conn,
		remote: remote,
		out:    make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}
}

// enqueue reports false when the client is gone or its buffer is full
func (c *client) enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.out <- data:
		return true
	default:
		return false
	}
}

func (c *client) send(logger *logging.Logger, msg Message) {
	data, err := sonic.Marshal(msg)
	if err != nil {
		logger.Error("Failed to encode message", zap.Error(err))
		return
	}
	c.enqueue(data)
}

func (c *client) close() {
	c.once.Do(func() { close(c.done) })
}

func (c *client) writePump(logger *logging.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data := <-c.out:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.Debug("WebSocket write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}
