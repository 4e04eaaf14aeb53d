package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/config"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/database"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/repository"
)

// noRowsDriver backs a sql.DB whose statements execute cleanly but
// never touch a row, which is what a DELETE for an unknown subscriber
// looks like.
type noRowsDriver struct{}

func (noRowsDriver) Open(string) (driver.Conn, error) { return noRowsConn{}, nil }

type noRowsConn struct{}

func (noRowsConn) Prepare(string) (driver.Stmt, error) { return noRowsStmt{}, nil }
func (noRowsConn) Close() error                        { return nil }
func (noRowsConn) Begin() (driver.Tx, error)           { return nil, errors.New("not supported") }

type noRowsStmt struct{}

func (noRowsStmt) Close() error  { return nil }
func (noRowsStmt) NumInput() int { return -1 }
func (noRowsStmt) Exec([]driver.Value) (driver.Result, error) {
	return driver.RowsAffected(0), nil
}
func (noRowsStmt) Query([]driver.Value) (driver.Rows, error) {
	return nil, errors.New("not supported")
}

func init() {
	sql.Register("newsletter-no-rows", noRowsDriver{})
}

func TestUnsubscribeUnknownAddressSucceeds(t *testing.T) {
	db, err := sql.Open("newsletter-no-rows", "")
	require.NoError(t, err)
	defer db.Close()

	subscribers := repository.NewSubscriberRepository(&database.Postgres{DB: db})

	// The repository reports the miss; the service swallows it so the
	// public endpoint cannot probe the list and repeat unsubscribes
	// stay idempotent.
	err = subscribers.DeleteByEmail(context.Background(), "unknown@example.com")
	require.ErrorIs(t, err, repository.ErrNotFound)

	svc := NewNewsletterService(subscribers, nil, &config.Config{}, testLogger())
	err = svc.Unsubscribe(context.Background(), "unknown@example.com")
	assert.NoError(t, err)
}
