// internal/middleware/sessionauth.go
//
// Session-resolution middleware.
//
// WithSession runs on every request: it resolves the session cookie
// against the store and, when valid, attaches the operator identity and
// the backend bearer token to the request context.  RequireLogin sits on
// protected routes and bounces anonymous requests to /login.

package middleware

import (
	"context"
	"net/http"

	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/api"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/auth"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/session"
)

type sidKey struct{}

// SessionID returns the session ID attached by WithSession, or "".
func SessionID(ctx context.Context) string {
	v, _ := ctx.Value(sidKey{}).(string)
	return v
}

// WithSession resolves the session cookie and enriches the context.
// Anonymous requests pass through untouched.
func WithSession(mgr *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid, rec, ok := mgr.Current(r.Context(), r)
			if ok {
				ctx := auth.WithOperator(r.Context(), rec.Email)
				ctx = api.WithToken(ctx, rec.Token)
				ctx = context.WithValue(ctx, sidKey{}, sid)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireLogin redirects anonymous requests to the login page.
// WithSession must run earlier in the chain.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.Operator(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
