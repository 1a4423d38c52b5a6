package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/zeusync/darkzone/internal/core/observability/log"
)

// authorize guards next with the configured token. Browsers cannot set headers on
// a websocket handshake, so the token is also accepted as a query parameter.
func (s *Server) authorize(next http.Handler) http.Handler {
	if s.config.Token == "" {
		return next
	}
	want := []byte(s.config.Token)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		}
		if subtle.ConstantTimeCompare([]byte(token), want) != 1 {
			s.logger.Warn("rejected client", log.String("remote_addr", r.RemoteAddr))
			http.Error(w, ErrUnauthorized.Error(), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
