// internal/form/controllers.go
//
// PetManager – Forms subsystem: live controller registry.
//
// Context
//   The single-flight submission guard lives on a Controller, and a
//   Controller corresponds to one form instance — in the console that is
//   one (session, form) pair, so double-submits from the same user collapse
//   to one gateway call without serializing unrelated users.  Handlers
//   fetch their controller here on every request; entries expire on a TTL,
//   and eviction closes the controller so a pending deferred action never
//   fires against a torn-down view.
//
//------------------------------------------------------------------------------

package form

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ControllerCache holds live Controllers keyed by "<session>/<form>".
type ControllerCache struct {
	c *gocache.Cache
}

// NewControllerCache builds a cache whose entries live ttl from creation
// (inactivity is not tracked), which bounds how long an abandoned
// half-filled form survives.
func NewControllerCache(ttl time.Duration) *ControllerCache {
	c := gocache.New(ttl, ttl)
	c.OnEvicted(func(_ string, v any) {
		if ctrl, ok := v.(*Controller); ok {
			ctrl.Close()
		}
	})
	return &ControllerCache{c: c}
}

// GetOrCreate returns the live controller for key, building one via fresh
// when absent.  Concurrent misses race through Add; the loser's controller
// is discarded before anyone submits through it.
func (cc *ControllerCache) GetOrCreate(key string, fresh func() *Controller) *Controller {
	if v, ok := cc.c.Get(key); ok {
		return v.(*Controller)
	}
	ctrl := fresh()
	if err := cc.c.Add(key, ctrl, gocache.DefaultExpiration); err != nil {
		// Lost the race; use the winner.
		if v, ok := cc.c.Get(key); ok {
			return v.(*Controller)
		}
		cc.c.Set(key, ctrl, gocache.DefaultExpiration)
	}
	return ctrl
}

// Drop removes and closes the controller for key, typically after a
// successful submission completed its flow.
func (cc *ControllerCache) Drop(key string) {
	cc.c.Delete(key) // OnEvicted closes it
}
