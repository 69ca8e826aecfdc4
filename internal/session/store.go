// internal/session/store.go
//
// PetManager – session record store.
//
// Context
//   A logged-in operator holds two things: an opaque session ID in a
//   cookie, and a backend bearer token kept server-side.  The Store
//   interface persists the mapping between the two so the token never
//   reaches the browser.  Two implementations exist: an in-process one
//   for single-node deployments and development, and a MySQL one for
//   anything that needs sessions to survive a restart.
//
//------------------------------------------------------------------------------

package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Store.Get when the session ID is unknown
// or has expired.
var ErrNotFound = errors.New("session: not found")

// Record is the server-side state of one login.
type Record struct {
	Token     string    `db:"token"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}

// Store persists session records keyed by opaque session ID.
type Store interface {
	// Put stores rec under sid for at most ttl.
	Put(ctx context.Context, sid string, rec Record, ttl time.Duration) error

	// Get returns the record for sid, or ErrNotFound.
	Get(ctx context.Context, sid string) (Record, error)

	// Delete removes sid.  Deleting an unknown sid is not an error.
	Delete(ctx context.Context, sid string) error
}
