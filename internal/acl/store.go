// internal/acl/store.go
//
// Role lookup for the console's access gates.
//
// Context
// -------
// Roles live on the backend, not in a local database: every console
// account carries exactly one role in its user record.  Middleware needs
// a fast answer to "which role does operator X have?", so the Store
// wraps the users endpoint with a short-lived cache.  A stale entry at
// worst delays a role change by the TTL, which is acceptable for an
// internal admin console.
//
// Notes
// -----
// • Lookups are by email because that is the identity the session
//   carries; the backend keys users by numeric ID.
package acl

import (
	"context"
	"errors"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/api"
)

// ErrUnknownOperator is returned when no backend account matches the
// session email.  Callers treat it as "no role".
var ErrUnknownOperator = errors.New("acl: unknown operator")

// userLister is the slice of the gateway the Store needs.
type userLister interface {
	Users(ctx context.Context) ([]api.User, error)
}

// Store answers role queries with a TTL cache in front of the backend.
type Store struct {
	gw    userLister
	cache *gocache.Cache
}

// NewStore wraps the gateway.  Entries live for ttl; the janitor reaps
// expired ones every minute.
func NewStore(gw userLister, ttl time.Duration) *Store {
	return &Store{gw: gw, cache: gocache.New(ttl, time.Minute)}
}

// Role returns the role name bound to the operator email.  Inactive
// accounts resolve to ErrUnknownOperator so a deactivated operator
// loses access as soon as the cache entry lapses.
func (s *Store) Role(ctx context.Context, email string) (string, error) {
	key := strings.ToLower(email)
	if v, ok := s.cache.Get(key); ok {
		return v.(string), nil
	}

	users, err := s.gw.Users(ctx)
	if err != nil {
		return "", err
	}
	for _, u := range users {
		if !u.Active {
			continue
		}
		if strings.EqualFold(u.Email, email) {
			s.cache.SetDefault(key, u.Role.Name)
			return u.Role.Name, nil
		}
	}
	return "", ErrUnknownOperator
}
