package httpserver

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/klimata/riskboard/internal/server/session"
)

const sessionCookie = "riskboard_session"

// registry maps an opaque per-browser cookie to that client's session.State.
// The cookie is a random identifier, not a credential: all authentication
// state lives server-side in the State value. The mutex only protects the
// map itself; each State belongs to exactly one client.
type registry struct {
	mu       sync.Mutex
	sessions map[string]session.State
}

func newRegistry() *registry {
	return &registry{sessions: make(map[string]session.State)}
}

func (r *registry) get(id string) session.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.sessions[id]
	if !ok {
		return session.New()
	}
	return st
}

func (r *registry) put(id string, st session.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = st
}

func (r *registry) drop(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// sessionID returns the client's session identifier, minting a cookie on
// first contact.
func (s *Server) sessionID(c echo.Context) string {
	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
