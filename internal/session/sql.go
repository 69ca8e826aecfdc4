// internal/session/sql.go
//
// MySQL-backed session store.
//
// Context
//   Deployments that run more than one console node, or that want logins
//   to survive a restart, point the session backend at MySQL.  Expiry is
//   enforced on read (expires_at < NOW() behaves as absent) and a
//   background sweep deletes stale rows so the table stays small.
//
// Schema
//   CREATE TABLE session (
//     sid        VARCHAR(64)  NOT NULL PRIMARY KEY,
//     token      TEXT         NOT NULL,
//     email      VARCHAR(255) NOT NULL,
//     created_at DATETIME     NOT NULL,
//     expires_at DATETIME     NOT NULL,
//     KEY idx_session_expires (expires_at)
//   );
//
//------------------------------------------------------------------------------

package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/metrics"
)

// SQL is a Store backed by a MySQL table.  Safe for concurrent use.
type SQL struct {
	db   *sqlx.DB
	stop chan struct{}
}

// NewSQL wraps an open pool and starts the hourly expiry sweep.
func NewSQL(db *sqlx.DB) *SQL {
	s := &SQL{db: db, stop: make(chan struct{})}
	go s.sweep()
	return s
}

// Close stops the expiry sweep.  The pool itself belongs to the caller.
func (s *SQL) Close() {
	close(s.stop)
}

func (s *SQL) Put(ctx context.Context, sid string, rec Record, ttl time.Duration) error {
	const q = `
	  INSERT INTO session (sid, token, email, created_at, expires_at)
	  VALUES (?, ?, ?, ?, ?)
	  ON DUPLICATE KEY UPDATE
	    token = VALUES(token), email = VALUES(email), expires_at = VALUES(expires_at)`
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, q, sid, rec.Token, rec.Email, now, now.Add(ttl))
	if err != nil {
		return err
	}
	// MySQL reports 1 affected row for an insert, 2 for an upsert.
	if n, err := res.RowsAffected(); err == nil && n == 1 {
		metrics.ActiveSessions.Inc()
	}
	return nil
}

func (s *SQL) Get(ctx context.Context, sid string) (Record, error) {
	const q = `
	  SELECT token, email, created_at
	  FROM session
	  WHERE sid = ? AND expires_at > ?`
	var rec Record
	err := s.db.GetContext(ctx, &rec, q, sid, time.Now().UTC())
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *SQL) Delete(ctx context.Context, sid string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE sid = ?`, sid)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		metrics.ActiveSessions.Sub(float64(n))
	}
	return nil
}

// sweep deletes expired rows once an hour until Close.
func (s *SQL) sweep() {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-t.C:
			res, err := s.db.Exec(`DELETE FROM session WHERE expires_at <= ?`, time.Now().UTC())
			if err != nil {
				zap.L().Warn("session sweep failed", zap.Error(err))
				continue
			}
			if n, err := res.RowsAffected(); err == nil && n > 0 {
				metrics.ActiveSessions.Sub(float64(n))
				zap.L().Debug("session sweep", zap.Int64("removed", n))
			}
		}
	}
}
