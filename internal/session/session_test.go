// internal/session/session_test.go
//
// Tests for the in-memory store and the cookie-level Manager.
//
// Run: go test ./internal/session -v

package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMemoryPutGetDelete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	rec := Record{Token: "tok-1", Email: "ana@petshop.co", CreatedAt: time.Now()}
	if err := m.Put(ctx, "sid-1", rec, time.Hour); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := m.Get(ctx, "sid-1")
	if err != nil || got.Token != "tok-1" {
		t.Fatalf("Get = (%+v, %v), want stored record", got, err)
	}

	if err := m.Delete(ctx, "sid-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Get(ctx, "sid-1"); err != ErrNotFound {
		t.Fatalf("after delete err = %v, want ErrNotFound", err)
	}
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Put(ctx, "sid-x", Record{Token: "t"}, 10*time.Millisecond); err != nil {
		t.Fatalf("Put: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, err := m.Get(ctx, "sid-x"); err != ErrNotFound {
		t.Fatalf("expired err = %v, want ErrNotFound", err)
	}
}

func TestManagerBeginCurrentEnd(t *testing.T) {
	mgr := NewManager(NewMemory(), time.Hour)
	ctx := context.Background()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	sid, err := mgr.Begin(ctx, w, r, "ana@petshop.co", "tok-1")
	if err != nil || sid == "" {
		t.Fatalf("Begin = (%q, %v)", sid, err)
	}

	cookies := w.Result().Cookies()
	var sc *http.Cookie
	for _, c := range cookies {
		if c.Name == "petmanager_session" {
			sc = c
		}
	}
	if sc == nil {
		t.Fatal("session cookie not set")
	}
	if !sc.HttpOnly {
		t.Fatal("session cookie must be HttpOnly")
	}
	if sc.Value == "tok-1" {
		t.Fatal("cookie must carry an opaque ID, never the token")
	}

	// A follow-up request presenting the cookie resolves to the record.
	r2 := httptest.NewRequest(http.MethodGet, "/providers", nil)
	r2.AddCookie(sc)
	gotSID, rec, ok := mgr.Current(ctx, r2)
	if !ok || gotSID != sid || rec.Token != "tok-1" || rec.Email != "ana@petshop.co" {
		t.Fatalf("Current = (%q, %+v, %v)", gotSID, rec, ok)
	}

	// End clears the cookie and forgets the record.
	w2 := httptest.NewRecorder()
	mgr.End(ctx, w2, r2)
	if _, _, ok := mgr.Current(ctx, r2); ok {
		t.Fatal("session still resolvable after End")
	}
}

func TestManagerCurrentWithoutCookie(t *testing.T) {
	mgr := NewManager(NewMemory(), time.Hour)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, _, ok := mgr.Current(context.Background(), r); ok {
		t.Fatal("Current resolved a session from nothing")
	}
}
