package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/GriffinCanCode/appshell/internal/domain/shell"
	"github.com/GriffinCanCode/appshell/internal/infrastructure/logging"
	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is the envelope of every frame
type Message struct {
	Type       string            `json:"type"`
	Message    string            `json:"message,omitempty"`
	State      string            `json:"state,omitempty"`
	Transition *shell.Transition `json:"transition,omitempty"`
	Timestamp  int64             `json:"timestamp"`
}

// Hub fans transitions out to connected clients
type Hub struct {
	shell       *shell.Shell
	logger      *logging.Logger
	unsubscribe func()

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

// NewHub creates a hub subscribed to sh
func NewHub(sh *shell.Shell, logger *logging.Logger) *Hub {
	if logger == nil {
		logger = logging.NewNop()
	}
	h := &Hub{
		shell:   sh,
		logger:  logger.Component("ws"),
		clients: make(map[*client]struct{}),
	}
	h.unsubscribe = sh.Subscribe(h.onTransition)
	return h
}

func (h *Hub) onTransition(t shell.Transition) {
	h.broadcast(Message{
		Type:       "transition",
		State:      t.To.String(),
		Transition: &t,
		Timestamp:  t.At.Unix(),
	})
}

func (h *Hub) broadcast(msg Message) {
	data, err := sonic.Marshal(msg)
	if err != nil {
		h.logger.Error("Failed to encode message", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if !c.enqueue(data) {
			h.logger.Warn("Dropping slow client", zap.String("remote", c.remote))
			delete(h.clients, c)
			c.close()
		}
	}
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close unsubscribes from the shell and disconnects every client
func (h *Hub) Close() {
	h.unsubscribe()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
}

// HandleConnection upgrades the request and serves the client until it leaves
func (h *Hub) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	cl := newClient(conn, c.ClientIP())
	cl.send(h.logger, Message{
		Type:      "system",
		Message:   "Connected to appshell",
		State:     h.shell.State().String(),
		Timestamp: time.Now().Unix(),
	})

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		cl.close()
		conn.Close()
		return
	}
	h.clients[cl] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("Client connected", zap.String("remote", cl.remote))

	go cl.writePump(h.logger)
	h.readPump(cl)

	h.mu.Lock()
	delete(h.clients, cl)
	h.mu.Unlock()
	cl.close()
	h.logger.Debug("Client disconnected", zap.String("remote", cl.remote))
}

type inbound struct {
	Type string `json:"type"`
}

func (h *Hub) readPump(cl *client) {
	cl.conn.SetReadLimit(maxMessageSize)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("WebSocket read error", zap.Error(err))
			}
			return
		}

		var msg inbound
		if err := sonic.Unmarshal(data, &msg); err != nil {
			cl.send(h.logger, errorMessage("malformed message"))
			continue
		}

		switch msg.Type {
		case "ping":
			cl.send(h.logger, Message{Type: "pong", Timestamp: time.Now().Unix()})
		case "state":
			cl.send(h.logger, Message{Type: "state", State: h.shell.State().String(), Timestamp: time.Now().Unix()})
		default:
			cl.send(h.logger, errorMessage("unknown message type"))
		}
	}
}

func errorMessage(text string) Message {
	return Message{Type: "error", Message: text, Timestamp: time.Now().Unix()}
}
