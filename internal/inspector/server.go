// Package inspector serves a live view of a reago dependency graph
// over HTTP: a JSON snapshot of nodes and edges, rolling counters, a
// WebSocket feed of runtime events, and the Prometheus endpoint.
//
// The server never touches the runtime directly. It observes it through
// hooks running on the runtime's goroutine, which publish immutable
// JSON under a lock; the HTTP handlers only read published state, so
// the runtime's single-threading contract is preserved.
package inspector

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/reago-dev/reago"
)

// EventType identifies a runtime event sent to WebSocket clients.
type EventType string

const (
	EventWrite        EventType = "write"
	EventPass         EventType = "pass"
	EventScopeDispose EventType = "scope_dispose"
)

// Event is pushed to inspector clients as runtime activity happens.
type Event struct {
	Type       EventType `json:"type"`
	Node       uint64    `json:"node,omitempty"`
	Scope      uint64    `json:"scope,omitempty"`
	Origin     uint64    `json:"origin,omitempty"`
	Updates    int       `json:"updates,omitempty"`
	DurationMs float64   `json:"duration_ms,omitempty"`
}

// Stats are the rolling counters exposed at /api/stats.
type Stats struct {
	Writes  uint64 `json:"writes"`
	Passes  uint64 `json:"passes"`
	Updates uint64 `json:"updates"`
	Clients int    `json:"clients"`
}

// Option configures the inspector server.
type Option func(*Server)

// WithMetricsHandler replaces the handler mounted at /metrics.
// Defaults to promhttp.Handler().
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metricsHandler = h
	}
}

// Server is the inspector HTTP/WebSocket server.
type Server struct {
	log            *zap.Logger
	metricsHandler http.Handler

	// rt is the observed runtime, bound with Attach. Read only from
	// hook callbacks, which run on the runtime's goroutine.
	rt *reago.Runtime

	snapMu   sync.RWMutex
	snapshot []byte

	clientMu sync.RWMutex
	clients  map[*websocket.Conn]bool
	upgrader websocket.Upgrader

	writes  atomic.Uint64
	passes  atomic.Uint64
	updates atomic.Uint64
}

// New creates an inspector server. log must not be nil; use
// zap.NewNop() to silence it.
func New(log *zap.Logger, opts ...Option) *Server {
	s := &Server{
		log:            log,
		metricsHandler: promhttp.Handler(),
		snapshot:       []byte(`{"nodes":[]}`),
		clients:        make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// The inspector is a development tool.
				return true
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach binds the runtime the hooks snapshot. Call it right after
// constructing the runtime, before driving any reactive work:
//
//	srv := inspector.New(log)
//	rt := reago.NewRuntime(reago.WithHooks(srv.Hooks()))
//	srv.Attach(rt)
func (s *Server) Attach(rt *reago.Runtime) {
	s.rt = rt
}

// Hooks returns runtime hooks that publish snapshots and events to
// this server. They run on the runtime's goroutine, which makes the
// Snapshot call safe.
func (s *Server) Hooks() reago.Hooks {
	return reago.Hooks{
		OnNodeCreated: func(reago.NodeID, reago.NodeKind) {
			s.publishSnapshot()
		},
		OnNodeRemoved: func(reago.NodeID, reago.NodeKind) {
			s.publishSnapshot()
		},
		OnScopeDisposed: func(id reago.ScopeID) {
			s.broadcast(Event{Type: EventScopeDispose, Scope: uint64(id)})
		},
		OnWrite: func(id reago.NodeID) {
			s.writes.Add(1)
			s.broadcast(Event{Type: EventWrite, Node: uint64(id)})
		},
		OnPassEnd: func(stats reago.PassStats) {
			s.passes.Add(1)
			s.updates.Add(uint64(stats.Updates))
			s.publishSnapshot()
			s.broadcast(Event{
				Type:       EventPass,
				Origin:     uint64(stats.Origin),
				Updates:    stats.Updates,
				DurationMs: float64(stats.Duration.Microseconds()) / 1000,
			})
		},
	}
}

// Router returns the inspector's HTTP routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/api/snapshot", s.handleSnapshot)
	r.Get("/api/stats", s.handleStats)
	r.Get("/ws", s.HandleWebSocket)
	r.Handle("/metrics", s.metricsHandler)
	return r
}

// publishSnapshot re-serializes the graph. Called from runtime hooks
// only, so it runs on the runtime's goroutine.
func (s *Server) publishSnapshot() {
	if s.rt == nil {
		return
	}
	data, err := json.Marshal(s.rt.Snapshot())
	if err != nil {
		s.log.Warn("snapshot marshal failed", zap.Error(err))
		return
	}
	s.snapMu.Lock()
	s.snapshot = data
	s.snapMu.Unlock()
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	s.snapMu.RLock()
	data := s.snapshot
	s.snapMu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	stats := Stats{
		Writes:  s.writes.Load(),
		Passes:  s.passes.Load(),
		Updates: s.updates.Load(),
		Clients: s.ClientCount(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stats)
}

// HandleWebSocket upgrades the connection and keeps it registered
// until the client goes away.
func (s *Server) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	s.clientMu.Lock()
	s.clients[conn] = true
	n := len(s.clients)
	s.clientMu.Unlock()
	s.log.Debug("inspector client connected", zap.Int("clients", n))

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.clientMu.Lock()
	delete(s.clients, conn)
	s.clientMu.Unlock()
	_ = conn.Close()
	s.log.Debug("inspector client disconnected")
}

// broadcast sends an event to every connected client, dropping clients
// whose connection errors.
func (s *Server) broadcast(ev Event) {
	s.clientMu.RLock()
	if len(s.clients) == 0 {
		s.clientMu.RUnlock()
		return
	}
	clients := make([]*websocket.Conn, 0, len(s.clients))
	for client := range s.clients {
		clients = append(clients, client)
	}
	s.clientMu.RUnlock()

	data, err := json.Marshal(ev)
	if err != nil {
		return
	}

	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			s.clientMu.Lock()
			delete(s.clients, client)
			s.clientMu.Unlock()
			_ = client.Close()
		}
	}
}

// ClientCount returns the number of connected WebSocket clients.
func (s *Server) ClientCount() int {
	s.clientMu.RLock()
	defer s.clientMu.RUnlock()
	return len(s.clients)
}
