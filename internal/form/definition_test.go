// internal/form/definition_test.go
//
// Unit-tests for YAML form loading and structural validation.
//
// Run: go test ./internal/form -v

package form

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeForm(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "form.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadFormDef(t *testing.T) {
	path := writeForm(t, `
id: auth/register
title: Create account
submit_label: Register
success: "Registration successful!  You can now sign in."
fields:
  - name: name
    label: Full name
    kind: name
    required: true
  - name: password
    label: Password
    kind: password
    required: true
  - name: password_confirmation
    label: Confirm password
    kind: password_confirm
    match: password
    required: true
`)
	fd, err := LoadFormDef(path)
	if err != nil {
		t.Fatalf("LoadFormDef: %v", err)
	}
	if fd.ID != "auth/register" || len(fd.Fields) != 3 {
		t.Fatalf("loaded %q with %d fields, want auth/register with 3", fd.ID, len(fd.Fields))
	}
	if fd.Fields[2].MatchField() != "password" {
		t.Fatalf("confirmation match = %q, want password", fd.Fields[2].MatchField())
	}
}

func TestLoadFormDefRejectsDuplicateNames(t *testing.T) {
	path := writeForm(t, `
id: test/dup
fields:
  - name: email
    label: Email
    kind: email
  - name: email
    label: Email again
    kind: email
`)
	if _, err := LoadFormDef(path); err == nil || !strings.Contains(err.Error(), "duplicate field name") {
		t.Fatalf("err = %v, want duplicate-name rejection", err)
	}
}

func TestLoadFormDefRejectsConfirmBeforeMatch(t *testing.T) {
	path := writeForm(t, `
id: test/order
fields:
  - name: password_confirmation
    label: Confirm password
    kind: password_confirm
    match: password
  - name: password
    label: Password
    kind: password
`)
	if _, err := LoadFormDef(path); err == nil || !strings.Contains(err.Error(), "must follow its match field") {
		t.Fatalf("err = %v, want ordering rejection", err)
	}
}

func TestLoadFormDefRejectsUnknownKind(t *testing.T) {
	path := writeForm(t, `
id: test/kind
fields:
  - name: color
    label: Color
    kind: swatch
`)
	if _, err := LoadFormDef(path); err == nil || !strings.Contains(err.Error(), "unknown kind") {
		t.Fatalf("err = %v, want unknown-kind rejection", err)
	}
}

func TestLoadFormDefRejectsSelectWithoutOptions(t *testing.T) {
	path := writeForm(t, `
id: test/select
fields:
  - name: id_type
    label: ID type
    kind: select
`)
	if _, err := LoadFormDef(path); err == nil || !strings.Contains(err.Error(), "needs 'options'") {
		t.Fatalf("err = %v, want missing-options rejection", err)
	}
}

func TestRegisterFormsWalksComponents(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "components", "auth", "forms")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	yaml := `
id: auth/login
fields:
  - name: email
    label: Email
    kind: email
    required: true
`
	if err := os.WriteFile(filepath.Join(dir, "login.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if err := RegisterForms(root); err != nil {
		t.Fatalf("RegisterForms: %v", err)
	}
	if _, ok := GetFormDef("auth/login"); !ok {
		t.Fatal("auth/login not registered")
	}
}
