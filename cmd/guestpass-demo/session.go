package main

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/guestpass/pkg/visitor"
)

const sessionCookie = "guestpass_sid"

type sessionIDContextKey struct{}

// ensureSessionCookie gives every browser a stable session identifier before
// the visitor pipeline runs, mirroring the session layer a host framework
// would normally provide.
func ensureSessionCookie(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sid string
		if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
			sid = c.Value
		} else {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionIDContextKey{}, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionID(r *http.Request) string {
	sid, _ := r.Context().Value(sessionIDContextKey{}).(string)
	return sid
}

// sessionRegistry keys in-memory session stores by session identifier.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*visitor.MemorySessions
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*visitor.MemorySessions)}
}

func (g *sessionRegistry) session(sid string) *visitor.MemorySessions {
	g.mu.Lock()
	defer g.mu.Unlock()

	s, ok := g.sessions[sid]
	if !ok {
		s = visitor.NewMemorySessions()
		g.sessions[sid] = s
	}
	return s
}
