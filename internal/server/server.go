// Package server streams simulation cues to presentation clients.
//
// Every cue the simulation publishes on the event bus is encoded once and fanned
// out to the connected clients, over websocket or server-sent events. Each client
// has a bounded backlog; a client that falls behind loses cues instead of slowing
// the simulation down.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/zeusync/darkzone/internal/core/config"
	"github.com/zeusync/darkzone/internal/core/events/bus"
	"github.com/zeusync/darkzone/internal/core/game"
	"github.com/zeusync/darkzone/internal/core/observability/log"
)

const (
	cuePrefix = "cue."
	// StatusFrame is the type of the frame sent to every client on connect.
	StatusFrame = "session.status"
)

// StatusSource reports the state of the running session.
type StatusSource interface {
	Status() game.Status
}

// Frame is one message on the wire.
type Frame struct {
	Type   string    `json:"type"`
	Source string    `json:"source,omitempty"`
	Time   time.Time `json:"time"`
	Data   any       `json:"data"`
}

// Stats counts frames since the server was created.
type Stats struct {
	Sent    uint64 `json:"sent"`
	Dropped uint64 `json:"dropped"`
}

// Server represents the darkzone cue server
type Server struct {
	config config.ServerConfig
	bus    bus.EventBus
	status StatusSource
	logger log.Log

	http     *http.Server
	listener net.Listener
	sub      bus.Subscription

	mu      sync.RWMutex
	clients map[uuid.UUID]*client

	running atomic.Bool
	closed  atomic.Bool
	sent    atomic.Uint64
	dropped atomic.Uint64
}

// NewServer creates a cue server fed by b. status may be nil.
func NewServer(cfg config.ServerConfig, b bus.EventBus, status StatusSource, logger log.Log) *Server {
	if logger == nil {
		logger = log.NewNop()
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = 1
	}
	if cfg.Path == "" {
		cfg.Path = "/cues"
	}
	return &Server{
		config:  cfg,
		bus:     b,
		status:  status,
		logger:  logger.With(log.String("component", "server")),
		clients: make(map[uuid.UUID]*client),
	}
}

// Handler routes the cue streams and the health endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET "+s.config.Path, s.authorize(http.HandlerFunc(s.handleWebSocket)))
	mux.Handle("GET "+s.config.Path+"/events", s.authorize(http.HandlerFunc(s.handleEvents)))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// Start subscribes to the bus and starts listening.
func (s *Server) Start(ctx context.Context) error {
	if s.closed.Load() {
		return ErrServerClosed
	}
	if !s.running.CompareAndSwap(false, true) {
		return ErrServerAlreadyRunning
	}

	sub, err := s.bus.Subscribe(bus.Wildcard, s.onEvent)
	if err != nil {
		s.running.Store(false)
		return fmt.Errorf("subscribe cues: %w", err)
	}
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.config.Addr)
	if err != nil {
		_ = sub.Cancel()
		s.running.Store(false)
		s.logger.Error("Failed to create listener", log.Error(err))
		return fmt.Errorf("listen %s: %w", s.config.Addr, err)
	}

	s.sub = sub
	s.listener = ln
	s.http = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("cue server stopped", log.Error(err))
		}
	}()

	s.logger.Info("Server listening",
		log.String("addr", ln.Addr().String()),
		log.String("path", s.config.Path))
	return nil
}

// Addr returns the listening address, nil before Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop disconnects every client and shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return ErrServerNotRunning
	}
	s.logger.Info("Stopping server")

	_ = s.sub.Cancel()
	s.mu.Lock()
	for id, c := range s.clients {
		delete(s.clients, id)
		c.close()
	}
	s.mu.Unlock()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("Server stopped", log.Uint64("sent", s.sent.Load()), log.Uint64("dropped", s.dropped.Load()))
	return nil
}

// Close stops the server for good.
func (s *Server) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if s.running.Load() {
		return s.Stop(context.Background())
	}
	return nil
}

// Run starts the server and blocks until ctx is done, then shuts it down within
// the write timeout.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()

	shutdown, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.WriteTimeout)
	defer cancel()
	s.closed.Store(true)
	return s.Stop(shutdown)
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) Stats() Stats {
	return Stats{Sent: s.sent.Load(), Dropped: s.dropped.Load()}
}

// onEvent runs on the publishing goroutine, the simulation. It must not block.
func (s *Server) onEvent(ev bus.Event) error {
	if !strings.HasPrefix(ev.Type(), cuePrefix) {
		return nil
	}
	payload, err := json.Marshal(Frame{
		Type:   ev.Type(),
		Source: ev.Source(),
		Time:   ev.Timestamp(),
		Data:   ev.Data(),
	})
	if err != nil {
		return fmt.Errorf("encode %s: %w", ev.Type(), err)
	}
	s.broadcast(payload)
	return nil
}

func (s *Server) broadcast(payload []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		select {
		case c.send <- payload:
			s.sent.Add(1)
		default:
			c.dropped.Add(1)
			s.dropped.Add(1)
		}
	}
}

func (s *Server) register(remote string) (*client, error) {
	if !s.running.Load() {
		return nil, ErrServerNotRunning
	}
	c := newClient(remote, s.config.Buffer)

	s.mu.Lock()
	s.clients[c.id] = c
	total := len(s.clients)
	s.mu.Unlock()

	s.logger.Info("Client connected",
		log.String("client_id", c.id.String()),
		log.String("remote_addr", remote),
		log.Int("total_clients", total))
	return c, nil
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	delete(s.clients, c.id)
	total := len(s.clients)
	s.mu.Unlock()
	c.close()

	s.logger.Info("Client disconnected",
		log.String("client_id", c.id.String()),
		log.Uint64("dropped", c.dropped.Load()),
		log.Int("total_clients", total))
}

// statusFrame is the greeting every client gets.
func (s *Server) statusFrame() ([]byte, error) {
	var data any
	if s.status != nil {
		data = s.status.Status()
	}
	return json.Marshal(Frame{Type: StatusFrame, Time: time.Now(), Data: data})
}
