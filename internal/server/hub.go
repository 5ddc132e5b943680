package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait    = 2 * time.Second
	broadcastBuf = 16
)

type client struct {
	id   string
	conn *websocket.Conn
}

// Hub fans frames out to every connected WebSocket client. All writes to
// client connections happen on the Run goroutine.
type Hub struct {
	logger     *zap.Logger
	clients    map[string]*client
	register   chan *client
	unregister chan string
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once
	count      atomic.Int32
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		logger:     logger,
		clients:    make(map[string]*client),
		register:   make(chan *client),
		unregister: make(chan string),
		broadcast:  make(chan []byte, broadcastBuf),
		done:       make(chan struct{}),
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int { return int(h.count.Load()) }

// Add registers conn and returns its client ID. It returns "" once the hub
// has stopped, in which case conn is closed.
func (h *Hub) Add(conn *websocket.Conn) string {
	c := &client{id: uuid.NewString(), conn: conn}
	select {
	case h.register <- c:
		return c.id
	case <-h.done:
		conn.Close()
		return ""
	}
}

func (h *Hub) Remove(id string) {
	select {
	case h.unregister <- id:
	case <-h.done:
	}
}

// Broadcast queues msg for every client. When the queue is full the
// frame is dropped; the next tick supersedes it.
func (h *Hub) Broadcast(msg []byte) bool {
	select {
	case h.broadcast <- msg:
		return true
	default:
		return false
	}
}

// Run serves the hub until ctx is done, then closes every connection.
func (h *Hub) Run(ctx context.Context) {
	defer h.closeOnce.Do(func() { close(h.done) })
	for {
		select {
		case <-ctx.Done():
			for id, c := range h.clients {
				h.drop(id, c, "shutdown")
			}
			return

		case c := <-h.register:
			h.clients[c.id] = c
			h.count.Store(int32(len(h.clients)))
			h.logger.Info("client connected", zap.String("client", c.id), zap.Int("clients", len(h.clients)))

		case id := <-h.unregister:
			if c, ok := h.clients[id]; ok {
				h.drop(id, c, "disconnected")
			}

		case msg := <-h.broadcast:
			for id, c := range h.clients {
				c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					h.logger.Debug("write failed", zap.String("client", id), zap.Error(err))
					h.drop(id, c, "write failed")
				}
			}
		}
	}
}

func (h *Hub) drop(id string, c *client, reason string) {
	if reason == "shutdown" {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		c.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
	}
	c.conn.Close()
	delete(h.clients, id)
	h.count.Store(int32(len(h.clients)))
	h.logger.Info("client removed", zap.String("client", id), zap.String("reason", reason))
}
