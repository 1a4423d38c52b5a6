package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/zeusync/darkzone/internal/core/game"
	"github.com/zeusync/darkzone/internal/core/observability/log"
)

// Health is the body of /healthz.
type Health struct {
	Status  string       `json:"status"`
	Clients int          `json:"clients"`
	Stats   Stats        `json:"stats"`
	Session *game.Status `json:"session,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h := Health{Status: "ok", Clients: s.Clients(), Stats: s.Stats()}
	if s.status != nil {
		st := s.status.Status()
		h.Session = &st
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h); err != nil {
		s.logger.Warn("health response failed", log.Error(err))
	}
}

// handleEvents streams cues as server-sent events for clients without websocket
// support.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	c, err := s.register(r.RemoteAddr)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	defer s.unregister(c)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	hello, err := s.statusFrame()
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "data: %s\n\n", hello)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-c.done:
			return
		case payload := <-c.send:
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
