// internal/session/memory.go
//
// In-process session store backed by go-cache.  Expired records are
// reaped by the cache's janitor, so a crashed logout never leaks a
// token past its TTL.

package session

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/metrics"
)

// Memory is a single-node Store.  Safe for concurrent use.
type Memory struct {
	c *gocache.Cache
}

// NewMemory returns a Memory store whose janitor runs every minute.
func NewMemory() *Memory {
	c := gocache.New(gocache.NoExpiration, time.Minute)
	c.OnEvicted(func(string, any) {
		metrics.ActiveSessions.Dec()
	})
	return &Memory{c: c}
}

func (m *Memory) Put(_ context.Context, sid string, rec Record, ttl time.Duration) error {
	if _, exists := m.c.Get(sid); !exists {
		metrics.ActiveSessions.Inc()
	}
	m.c.Set(sid, rec, ttl)
	return nil
}

func (m *Memory) Get(_ context.Context, sid string) (Record, error) {
	v, ok := m.c.Get(sid)
	if !ok {
		return Record{}, ErrNotFound
	}
	return v.(Record), nil
}

func (m *Memory) Delete(_ context.Context, sid string) error {
	m.c.Delete(sid)
	return nil
}
