// internal/middleware/sessionauth_test.go
//
// Session middleware tests: context enrichment for valid cookies and the
// login redirect for anonymous requests.
//
// Run: go test ./internal/middleware -v

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/auth"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/session"
)

func TestWithSessionAttachesOperator(t *testing.T) {
	mgr := session.NewManager(session.NewMemory(), time.Hour)

	// Establish a session and capture its cookie.
	seed := httptest.NewRecorder()
	sid, err := mgr.Begin(context.Background(), seed, httptest.NewRequest(http.MethodPost, "/login", nil),
		"ana@petshop.co", "tok-1")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	var called bool
	h := WithSession(mgr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if op, ok := auth.Operator(r.Context()); !ok || op != "ana@petshop.co" {
			t.Errorf("operator = (%q, %v), want ana@petshop.co", op, ok)
		}
		if got := SessionID(r.Context()); got != sid {
			t.Errorf("session id = %q, want %q", got, sid)
		}
	}))

	r := httptest.NewRequest(http.MethodGet, "/providers", nil)
	for _, c := range seed.Result().Cookies() {
		r.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), r)
	if !called {
		t.Fatal("handler never ran")
	}
}

func TestWithSessionAnonymousPassesThrough(t *testing.T) {
	mgr := session.NewManager(session.NewMemory(), time.Hour)

	h := WithSession(mgr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.Operator(r.Context()); ok {
			t.Error("anonymous request gained an operator")
		}
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/login", nil))
}

func TestRequireLoginRedirects(t *testing.T) {
	h := RequireLogin(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("protected handler ran without a session")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/providers", nil))

	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
		t.Fatalf("response = %d %q, want 303 to /login", w.Code, w.Header().Get("Location"))
	}
}

func TestRequireLoginAdmitsOperator(t *testing.T) {
	called := false
	h := RequireLogin(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	r := httptest.NewRequest(http.MethodGet, "/providers", nil)
	r = r.WithContext(auth.WithOperator(r.Context(), "ana@petshop.co"))
	h.ServeHTTP(httptest.NewRecorder(), r)
	if !called {
		t.Fatal("operator was not admitted")
	}
}
