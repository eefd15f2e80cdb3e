// Package store is the persistence gateway: typed row-level access to the
// hosted Postgres tables. It holds no state between requests beyond the
// connection pool; every read fetches fresh rows.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// ErrNotFound is returned when a referenced row does not exist. Callers map
// it to a 404; any other persistent read failure is a transient-gateway
// condition.
var ErrNotFound = errors.New("not found")

// ErrNoUpdates is returned by partial-update calls when the request carried
// no fields to change.
var ErrNoUpdates = errors.New("no settings to update")

const (
	readRetryAttempts = 3
	readRetryBackoff  = 500 * time.Millisecond
)

type Client struct {
	db *sql.DB
}

func NewClient(connectionString string) (*Client, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{db: db}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// withReadRetry retries a read a bounded number of times with a short fixed
// backoff. Not-found is final and returned immediately.
func withReadRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < readRetryAttempts; attempt++ {
		err = fn()
		if err == nil || errors.Is(err, ErrNotFound) {
			return err
		}
		if attempt < readRetryAttempts-1 {
			time.Sleep(readRetryBackoff)
		}
	}
	return fmt.Errorf("read failed after %d attempts: %w", readRetryAttempts, err)
}

// notFound converts the driver's no-rows error into ErrNotFound with the
// entity named.
func notFound(err error, entity string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}
