// internal/acl/store_test.go
//
// Unit-tests for the role store using a stub gateway.
//
// Run: go test ./internal/acl -v

package acl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/api"
)

type stubLister struct {
	users []api.User
	calls int
	err   error
}

func (s *stubLister) Users(context.Context) ([]api.User, error) {
	s.calls++
	return s.users, s.err
}

func TestRoleResolvesAndCaches(t *testing.T) {
	gw := &stubLister{users: []api.User{
		{ID: 1, Email: "ana@petshop.co", Role: api.Role{Name: "ADMIN"}, Active: true},
		{ID: 2, Email: "luis@petshop.co", Role: api.Role{Name: "OPERATOR"}, Active: true},
	}}
	store := NewStore(gw, time.Minute)

	role, err := store.Role(context.Background(), "Luis@petshop.co")
	if err != nil {
		t.Fatalf("Role error: %v", err)
	}
	if role != "OPERATOR" {
		t.Fatalf("role = %q, want OPERATOR", role)
	}

	// Second lookup must hit the cache, not the gateway.
	if _, err := store.Role(context.Background(), "luis@petshop.co"); err != nil {
		t.Fatalf("cached Role error: %v", err)
	}
	if gw.calls != 1 {
		t.Fatalf("gateway calls = %d, want 1", gw.calls)
	}
}

func TestRoleInactiveOperator(t *testing.T) {
	gw := &stubLister{users: []api.User{
		{ID: 3, Email: "sofia@petshop.co", Role: api.Role{Name: "ADMIN"}, Active: false},
	}}
	store := NewStore(gw, time.Minute)

	_, err := store.Role(context.Background(), "sofia@petshop.co")
	if !errors.Is(err, ErrUnknownOperator) {
		t.Fatalf("err = %v, want ErrUnknownOperator", err)
	}
}

func TestRoleGatewayError(t *testing.T) {
	gw := &stubLister{err: errors.New("boom")}
	store := NewStore(gw, time.Minute)

	if _, err := store.Role(context.Background(), "ana@petshop.co"); err == nil {
		t.Fatal("expected error, got nil")
	}
}
