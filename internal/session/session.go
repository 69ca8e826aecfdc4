// internal/session/session.go
//
// PetManager – browser session manager.
//
// Context
//   The console authenticates against the backend and receives a bearer
//   token.  That token never reaches the browser: the Manager issues an
//   opaque session ID in an HttpOnly cookie and keeps the token in a
//   Store.  All callers (components, middleware) rely only on this small
//   API, so swapping the backing store is painless.
//
//------------------------------------------------------------------------------

package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const cookieName = "petmanager_session"

// Manager issues and resolves session cookies against a Store.
type Manager struct {
	store Store
	ttl   time.Duration
}

// NewManager wires a Manager to a store with the configured session TTL.
func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// Begin records a fresh session for email with the backend token and
// sets the session cookie.  Callers invoke this after Login succeeds.
func (m *Manager) Begin(ctx context.Context, w http.ResponseWriter, r *http.Request, email, token string) (string, error) {
	sid := uuid.NewString()
	rec := Record{Token: token, Email: email, CreatedAt: time.Now().UTC()}
	if err := m.store.Put(ctx, sid, rec, m.ttl); err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.ttl / time.Second),
	})
	return sid, nil
}

// Current resolves the request's session cookie.  ok is false when the
// cookie is missing, unknown, or expired.
func (m *Manager) Current(ctx context.Context, r *http.Request) (sid string, rec Record, ok bool) {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return "", Record{}, false
	}
	rec, err = m.store.Get(ctx, c.Value)
	if err != nil {
		return "", Record{}, false
	}
	return c.Value, rec, true
}

// End deletes the session record and clears the cookie.
func (m *Manager) End(ctx context.Context, w http.ResponseWriter, r *http.Request) string {
	sid := ""
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		sid = c.Value
		_ = m.store.Delete(ctx, sid)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return sid
}
