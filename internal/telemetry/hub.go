// Package telemetry streams per-tick world snapshots to websocket clients.
package telemetry

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"corridor/internal/game"
)

const (
	writeWait = 2 * time.Second
	// clientBuffer snapshots may queue per client before new ones are dropped.
	clientBuffer = 32
)

// SafeWriter serialises writes to a websocket connection.
type SafeWriter struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewSafeWriter(conn *websocket.Conn) *SafeWriter {
	return &SafeWriter{conn: conn}
}

func (w *SafeWriter) WriteJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return w.conn.WriteJSON(v)
}

func (w *SafeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.Close()
}

type client struct {
	out  *SafeWriter
	send chan game.Snapshot
}

// Hub fans snapshots out to connected clients. Observe never blocks: a
// client that falls behind loses snapshots.
type Hub struct {
	upgrader websocket.Upgrader
	log      *logrus.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	dropped uint64
}

func NewHub(log *logrus.Logger) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log:     log,
		clients: make(map[*client]struct{}),
	}
}

// Clients is the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Dropped counts snapshots discarded because a client was full.
func (h *Hub) Dropped() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

// Observe implements game.Observer.
func (h *Hub) Observe(s game.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- s:
		default:
			h.dropped++
		}
	}
}

// ServeHTTP upgrades the request and streams snapshots until the client
// goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("telemetry upgrade failed")
		return
	}
	c := &client{out: NewSafeWriter(conn), send: make(chan game.Snapshot, clientBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.log.WithField("remote", r.RemoteAddr).Info("telemetry client connected")

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Drain reads so close frames are processed.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		_ = c.out.Close()
		h.log.WithField("remote", r.RemoteAddr).Info("telemetry client gone")
	}()

	for {
		select {
		case <-done:
			return
		case s := <-c.send:
			if err := c.out.WriteJSON(s); err != nil {
				h.log.WithError(err).Debug("telemetry write failed")
				return
			}
		}
	}
}

// Serve listens on addr with the hub mounted at /ws. It returns the server
// so the caller can shut it down.
func Serve(addr string, h *Hub) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			h.log.WithError(err).Error("telemetry server stopped")
		}
	}()
	return srv
}
