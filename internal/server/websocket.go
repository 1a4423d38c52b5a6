package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/darkzone/internal/core/observability/log"
)

// Clients only ever receive; anything they send is read and dropped.
const maxInboundMessage = 512

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", log.String("remote_addr", r.RemoteAddr), log.Error(err))
		return
	}
	defer conn.Close()

	c, err := s.register(r.RemoteAddr)
	if err != nil {
		s.closeConn(conn, websocket.CloseGoingAway, err.Error())
		return
	}
	defer s.unregister(c)

	hello, err := s.statusFrame()
	if err == nil {
		_ = conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
		err = conn.WriteMessage(websocket.TextMessage, hello)
	}
	if err != nil {
		s.logger.Debug("greeting failed", log.String("client_id", c.id.String()), log.Error(err))
		return
	}

	go s.readLoop(conn, c)
	s.writeLoop(conn, c)
}

func (s *Server) writeLoop(conn *websocket.Conn, c *client) {
	for {
		select {
		case <-c.done:
			s.closeConn(conn, websocket.CloseGoingAway, "server shutting down")
			return
		case payload := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				s.logger.Debug("write failed", log.String("client_id", c.id.String()), log.Error(err))
				return
			}
		}
	}
}

// readLoop notices the client going away.
func (s *Server) readLoop(conn *websocket.Conn, c *client) {
	defer c.close()
	conn.SetReadLimit(maxInboundMessage)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) closeConn(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(s.config.WriteTimeout))
}
