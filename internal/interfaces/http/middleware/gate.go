// Package middleware provides the HTTP middleware chain: access gate,
// request logging and CORS.
package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/turtacn/AlloyFrontier/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AlloyFrontier/pkg/errors"
)

// GateMiddleware guards the API behind a shared access key.  This is a
// cosmetic dashboard gate, not an authorization system: there is one key,
// no identities and no scopes.
type GateMiddleware struct {
	enabled bool
	header  string
	secret  string
	logger  logging.Logger
}

// NewGateMiddleware builds the gate.  With enabled false the middleware
// passes every request through.
func NewGateMiddleware(enabled bool, header, secret string, logger logging.Logger) *GateMiddleware {
	return &GateMiddleware{
		enabled: enabled,
		header:  header,
		secret:  secret,
		logger:  logger.Named("gate"),
	}
}

// Handler rejects requests whose key header does not match the shared
// secret.
func (m *GateMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled {
			next.ServeHTTP(w, r)
			return
		}

		got := r.Header.Get(m.header)
		if subtle.ConstantTimeCompare([]byte(got), []byte(m.secret)) != 1 {
			m.logger.Warn("access key rejected",
				logging.String("path", r.URL.Path),
				logging.String("remote_addr", r.RemoteAddr))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"code":    errors.ErrCodeUnauthorized.String(),
				"message": "invalid access key",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
