package net

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Feed is the read-only observer endpoint: a websocket that mirrors the
// per-tick simulation event stream as JSON for map viewers and UIs.
// Observers never feed anything back into the simulation.
type Feed struct {
	upgrader websocket.Upgrader
	log      *zap.Logger

	mu      sync.Mutex
	clients map[*feedClient]struct{}
}

type feedClient struct {
	conn *websocket.Conn
	out  chan []byte
}

func NewFeed(log *zap.Logger) *Feed {
	return &Feed{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Observer feed is read-only; any origin may watch.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log:     log,
		clients: make(map[*feedClient]struct{}),
	}
}

// Serve blocks serving the /feed endpoint on addr.
func (f *Feed) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/feed", f.handleWS)
	return http.ListenAndServe(addr, mux)
}

func (f *Feed) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.log.Debug("feed upgrade failed", zap.Error(err))
		return
	}
	c := &feedClient{conn: conn, out: make(chan []byte, 256)}

	f.mu.Lock()
	f.clients[c] = struct{}{}
	f.mu.Unlock()
	f.log.Info("observer connected", zap.String("ip", conn.RemoteAddr().String()))

	go f.writeLoop(c)
	go f.readLoop(c) // drains control frames, detects disconnect
}

func (f *Feed) writeLoop(c *feedClient) {
	defer f.drop(c)
	for msg := range c.out {
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (f *Feed) readLoop(c *feedClient) {
	defer f.drop(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (f *Feed) drop(c *feedClient) {
	f.mu.Lock()
	if _, ok := f.clients[c]; ok {
		delete(f.clients, c)
		close(c.out)
	}
	f.mu.Unlock()
	c.conn.Close()
}

// Publish fans an event out to every observer as {"type": ..., ...event}.
// Slow observers are dropped rather than blocking the simulation loop.
func (f *Feed) Publish(eventType string, event any) {
	payload, err := json.Marshal(struct {
		Type  string `json:"type"`
		Event any    `json:"event"`
	}{eventType, event})
	if err != nil {
		f.log.Warn("feed marshal failed", zap.Error(err))
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for c := range f.clients {
		select {
		case c.out <- payload:
		default:
			delete(f.clients, c)
			close(c.out)
			c.conn.Close()
		}
	}
}
