// internal/form/renderer_test.go
//
// Markup-level tests: prefill behavior, dynamic selects, and CSRF token
// round-trip through Bind.
//
// Run: go test ./internal/form -v

package form

import (
	"context"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func registerFixture(t *testing.T, fd *FormDef) {
	t.Helper()
	Register(fd)
}

func TestRenderFormPrefillsExceptSecrets(t *testing.T) {
	registerFixture(t, &FormDef{
		ID: "test/render",
		Fields: []FieldDef{
			{Name: "email", Label: "Email", Kind: KindEmail, Required: true},
			{Name: "password", Label: "Password", Kind: KindPassword, Required: true},
			{Name: "current", Label: "Current password", Kind: KindSecret, Required: true},
		},
	})

	html, err := RenderForm("test/render", Values{
		"email":    "ana@petshop.co",
		"password": "P@ssw0rd",
		"current":  "hunter2",
	})
	if err != nil {
		t.Fatalf("RenderForm: %v", err)
	}
	markup := string(html)

	if !strings.Contains(markup, `value="ana@petshop.co"`) {
		t.Error("email input lost its prefill")
	}
	if strings.Contains(markup, "P@ssw0rd") || strings.Contains(markup, "hunter2") {
		t.Error("password values must never appear in markup")
	}
	if !strings.Contains(markup, `name="csrf_token"`) {
		t.Error("hidden CSRF input missing")
	}
}

func TestRenderFormDynamicSelect(t *testing.T) {
	registerFixture(t, &FormDef{
		ID: "test/dynamic",
		Fields: []FieldDef{
			{Name: "payment_condition", Label: "Payment condition", Kind: KindNumber, Required: true},
		},
	})

	html, err := RenderForm("test/dynamic", Values{"payment_condition": "2"},
		WithOptions("payment_condition", []SelectOption{
			{Value: "1", Label: "NET 30"},
			{Value: "2", Label: "NET 60"},
		}))
	if err != nil {
		t.Fatalf("RenderForm: %v", err)
	}
	markup := string(html)

	if !strings.Contains(markup, `<select id="fld-payment_condition"`) {
		t.Fatal("dynamic field did not render as a select")
	}
	if !strings.Contains(markup, `value="2" selected`) {
		t.Error("current value not selected")
	}
	if !strings.Contains(markup, ">NET 30<") {
		t.Error("option labels missing")
	}
}

func TestRenderFormUnknownID(t *testing.T) {
	if _, err := RenderForm("test/never-registered", nil); err == nil {
		t.Fatal("unknown form ID must error")
	}
}

func TestBindRejectsBadToken(t *testing.T) {
	registerFixture(t, &FormDef{
		ID:     "test/bind",
		Fields: []FieldDef{{Name: "email", Label: "Email", Kind: KindEmail, Required: true}},
	})
	def, _ := GetFormDef("test/bind")
	c := NewController(def, func(context.Context, Values) (any, error) { return nil, nil })

	body := url.Values{"email": {"ana@petshop.co"}, "csrf_token": {"forged"}}
	r := httptest.NewRequest("POST", "/x", strings.NewReader(body.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if err := Bind(r, c); err != ErrBadToken {
		t.Fatalf("err = %v, want ErrBadToken", err)
	}
}

func TestBindLoadsPostedValues(t *testing.T) {
	registerFixture(t, &FormDef{
		ID: "test/bind2",
		Fields: []FieldDef{
			{Name: "email", Label: "Email", Kind: KindEmail, Required: true},
			{Name: "notes", Label: "Notes", Kind: KindTextarea},
		},
	})
	def, _ := GetFormDef("test/bind2")
	c := NewController(def, func(context.Context, Values) (any, error) { return nil, nil })
	c.SetValue("notes", "stale value from a previous render")

	tok, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	body := url.Values{"email": {"ana@petshop.co"}, "csrf_token": {tok}}
	r := httptest.NewRequest("POST", "/x", strings.NewReader(body.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if err := Bind(r, c); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	vals := c.Values()
	if vals["email"] != "ana@petshop.co" {
		t.Fatalf("email = %q, want posted value", vals["email"])
	}
	// Absent fields are cleared, not carried over.
	if vals["notes"] != "" {
		t.Fatalf("notes = %q, want cleared", vals["notes"])
	}
}

func TestCSRFTokenRoundTrip(t *testing.T) {
	tok, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if !VerifyToken(tok) {
		t.Fatal("freshly generated token failed verification")
	}
	if VerifyToken(tok + "x") {
		t.Fatal("tampered token verified")
	}
	if VerifyToken("") {
		t.Fatal("empty token verified")
	}
}
