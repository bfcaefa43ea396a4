package session

import (
	"context"
	"net/http"

	"github.com/vango-dev/webkit/internal/errors"
)

type contextKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session carried by ctx, or nil.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(contextKey{}).(*Session)
	return s
}

// Middleware starts a session before next runs and saves it afterwards.
// A failed start is answered with the error's status and next is skipped.
func Middleware(m *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := m.Start(w, r)
			if err != nil {
				m.logger.Error("session start failed", "path", r.URL.Path, "error", err)
				status := errors.StatusOf(err)
				http.Error(w, http.StatusText(status), status)
				return
			}
			if sess == nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), sess)))

			if err := m.Save(r.Context(), sess); err != nil {
				m.logger.Error("session save failed", "session_id", sess.ID, "error", err)
			}
		})
	}
}
