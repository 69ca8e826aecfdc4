// internal/session/sql_test.go
//
// Unit-tests for the MySQL session store using sqlmock.
//
// Run: go test ./internal/session -v

package session

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

// newMockStore returns a store whose sweep goroutine is already stopped,
// so mock expectations only see the calls under test.
func newMockStore(t *testing.T) (*SQL, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { raw.Close() })

	s := NewSQL(sqlx.NewDb(raw, "mysql"))
	s.Close()
	return s, mock
}

func TestSQLPutInsertsSession(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO session").
		WithArgs("sid-1", "tok-1", "ana@petshop.co", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := Record{Token: "tok-1", Email: "ana@petshop.co", CreatedAt: time.Now()}
	if err := s.Put(context.Background(), "sid-1", rec, time.Hour); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSQLGetReturnsLiveSession(t *testing.T) {
	s, mock := newMockStore(t)

	created := time.Now().UTC().Add(-time.Minute)
	rows := sqlmock.NewRows([]string{"token", "email", "created_at"}).
		AddRow("tok-1", "ana@petshop.co", created)
	mock.ExpectQuery("SELECT token, email, created_at").
		WithArgs("sid-1", sqlmock.AnyArg()).
		WillReturnRows(rows)

	rec, err := s.Get(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Token != "tok-1" || rec.Email != "ana@petshop.co" {
		t.Fatalf("rec = %+v, want stored token and email", rec)
	}
}

func TestSQLGetExpiredIsNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	// The WHERE clause filters expired rows, so the driver returns no rows.
	mock.ExpectQuery("SELECT token, email, created_at").
		WithArgs("sid-gone", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"token", "email", "created_at"}))

	if _, err := s.Get(context.Background(), "sid-gone"); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSQLDelete(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM session WHERE sid").
		WithArgs("sid-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.Delete(context.Background(), "sid-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
