package stream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-display/internal/models"
)

const broadcastBuffer = 64

var ErrHubFull = errors.New("websocket broadcast buffer full")

// Hub pushes every applied state event to connected websocket clients. New
// clients get the latest event immediately.
type Hub struct {
	upgrader  websocket.Upgrader
	clients   sync.Map
	broadcast chan frame
	done      chan struct{}
	stopOnce  sync.Once
	logger    zerolog.Logger

	mu      sync.Mutex
	seq     uint64
	last    frame
	lastGen uint64
}

type frame struct {
	seq uint64
	msg []byte
}

// client serializes writes to one connection. seen is the sequence of the
// newest frame already written.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
	seen uint64
}

func (c *client) write(f frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f.seq <= c.seen {
		return nil
	}
	c.seen = f.seq
	return c.conn.WriteMessage(websocket.TextMessage, f.msg)
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		broadcast: make(chan frame, broadcastBuffer),
		done:      make(chan struct{}),
		logger:    logger.With().Str("component", "WebsocketHub").Logger(),
	}
}

func (h *Hub) Name() string { return "websocket" }

// Send queues the event for all clients without blocking. Events from a
// generation older than the latest one sent are dropped.
func (h *Hub) Send(_ context.Context, ev models.StateEvent) error {
	msg, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	h.mu.Lock()
	if h.last.msg != nil && ev.State.Generation < h.lastGen {
		h.mu.Unlock()
		h.logger.Debug().
			Uint64("generation", ev.State.Generation).
			Uint64("latest", h.lastGen).
			Msg("dropping event from superseded generation")
		return nil
	}
	h.seq++
	f := frame{seq: h.seq, msg: msg}
	h.last = f
	h.lastGen = ev.State.Generation
	h.mu.Unlock()

	select {
	case h.broadcast <- f:
		return nil
	default:
		return ErrHubFull
	}
}

// Run delivers queued messages until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case f := <-h.broadcast:
			h.clients.Range(func(key, value any) bool {
				c, ok := value.(*client)
				if !ok {
					return true
				}
				if err := c.write(f); err != nil {
					h.logger.Warn().Err(err).Msg("websocket write failed, dropping client")
					_ = c.conn.Close()
					h.clients.Delete(key)
				}
				return true
			})
		case <-h.done:
			return
		}
	}
}

func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		h.clients.Range(func(key, _ any) bool {
			if conn, ok := key.(*websocket.Conn); ok {
				_ = conn.Close()
			}
			return true
		})
	})
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	n := 0
	h.clients.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	// Registration and the snapshot of the latest frame happen together, so
	// every later frame reaches the client through Run.
	c := &client{conn: conn}
	h.mu.Lock()
	h.clients.Store(conn, c)
	last := h.last
	h.mu.Unlock()

	if last.msg != nil {
		if err := c.write(last); err != nil {
			h.logger.Warn().Err(err).Msg("failed to send initial state")
			h.clients.Delete(conn)
			_ = conn.Close()
			return
		}
	}

	h.logger.Info().Int("clients", h.Clients()).Msg("websocket client connected")

	defer func() {
		h.clients.Delete(conn)
		_ = conn.Close()
		h.logger.Info().Int("clients", h.Clients()).Msg("websocket client disconnected")
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn().Err(err).Msg("websocket read error")
			}
			return
		}
	}
}
