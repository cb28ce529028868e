package telemetry

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"corridor/internal/game"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.Out = io.Discard
	return l
}

func dial(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func TestHubStreamsSnapshots(t *testing.T) {
	h := NewHub(quietLogger())
	conn := dial(t, h)

	for i := 1; i <= 3; i++ {
		h.Observe(game.Snapshot{Episode: "e1", Tick: uint64(i), Score: 10 * i})
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for i := 1; i <= 3; i++ {
		var got game.Snapshot
		if err := conn.ReadJSON(&got); err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if got.Tick != uint64(i) || got.Score != 10*i || got.Episode != "e1" {
			t.Errorf("snapshot %d = %+v", i, got)
		}
	}
}

func TestHubObserveWithoutClients(t *testing.T) {
	h := NewHub(quietLogger())
	h.Observe(game.Snapshot{Tick: 1})
	if h.Clients() != 0 || h.Dropped() != 0 {
		t.Errorf("clients=%d dropped=%d", h.Clients(), h.Dropped())
	}
}

func TestHubDropsWhenClientFull(t *testing.T) {
	h := NewHub(quietLogger())
	c := &client{send: make(chan game.Snapshot, 1)}
	h.clients[c] = struct{}{}

	h.Observe(game.Snapshot{Tick: 1})
	h.Observe(game.Snapshot{Tick: 2})
	h.Observe(game.Snapshot{Tick: 3})

	if h.Dropped() != 2 {
		t.Errorf("dropped = %d, want 2", h.Dropped())
	}
	if s := <-c.send; s.Tick != 1 {
		t.Errorf("kept tick %d, want 1", s.Tick)
	}
}

func TestHubForgetsClosedClient(t *testing.T) {
	h := NewHub(quietLogger())
	conn := dial(t, h)
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("closed client still registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
