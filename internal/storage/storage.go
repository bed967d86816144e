package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrGuestNotFound        = errors.New("guest not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
)

const schema = `
CREATE TABLE IF NOT EXISTS guests (
	id            TEXT PRIMARY KEY,
	event_id      TEXT NOT NULL DEFAULT '',
	category_id   TEXT NOT NULL DEFAULT '',
	name          TEXT NOT NULL,
	phone_number  TEXT NOT NULL UNIQUE,
	email         TEXT NOT NULL DEFAULT '',
	rsvp_status   TEXT NOT NULL,
	rsvp_date     TEXT,
	invited_date  TEXT NOT NULL,
	notes         TEXT NOT NULL DEFAULT '',
	custom_fields TEXT NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS guests_rsvp_status_idx ON guests (rsvp_status);

CREATE TABLE IF NOT EXISTS subscriptions (
	user_id    TEXT PRIMARY KEY,
	id         TEXT NOT NULL,
	plan_id    TEXT NOT NULL,
	status     TEXT NOT NULL,
	started_at TEXT NOT NULL,
	expires_at TEXT,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	plan_id    TEXT NOT NULL,
	amount     INTEGER NOT NULL,
	currency   TEXT NOT NULL,
	status     TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS transactions_user_idx ON transactions (user_id, created_at);
`

// Storage persists guests, subscriptions and transactions in a sqlite database.
type Storage struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the sqlite database at path and applies the schema.
func Open(path string) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Storage{db: db, now: time.Now}, nil
}

// Close closes the underlying database.
func (s *Storage) Close() error {
	return s.db.Close()
}

func newID() string {
	return uuid.NewString()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(v string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, v)
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil || t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func parseNullTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := parseTime(v.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
