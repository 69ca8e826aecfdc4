// internal/notify/notify_test.go
//
// Flash cookie round-trip: a notice set during one request is rendered
// exactly once on the next.
//
// Run: go test ./internal/notify -v

package notify

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFlashRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	For(w).Notify("Success", "Provider registered successfully!", KindSuccess)

	var flash *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			flash = c
		}
	}
	if flash == nil {
		t.Fatal("flash cookie not set")
	}

	// Next page load carries the cookie and pops the notice.
	r := httptest.NewRequest(http.MethodGet, "/providers", nil)
	r.AddCookie(flash)
	w2 := httptest.NewRecorder()

	n := Pop(w2, r)
	if n == nil {
		t.Fatal("Pop returned nothing")
	}
	if n.Kind != KindSuccess || n.Message != "Provider registered successfully!" {
		t.Fatalf("notice = %+v", n)
	}

	// Pop must clear the cookie so the notice shows once.
	cleared := false
	for _, c := range w2.Result().Cookies() {
		if c.Name == cookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("flash cookie not cleared after Pop")
	}
}

func TestPopWithoutCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if n := Pop(httptest.NewRecorder(), r); n != nil {
		t.Fatalf("Pop = %+v, want nil", n)
	}
}

func TestPopCorruptCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: cookieName, Value: "%%%not-base64%%%"})
	if n := Pop(httptest.NewRecorder(), r); n != nil {
		t.Fatalf("Pop = %+v, want nil for corrupt cookie", n)
	}
}
