// Package localstore persists small pieces of client state (the active thread,
// theme and sidebar layout) across restarts.
package localstore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	pkgerrors "github.com/zhubert/threadchat/internal/errors"
)

// Keys used by threadchat. They match the names the web client kept in browser
// local storage, so a state file can be inspected with the same vocabulary.
const (
	KeyThreadID         = "chat_thread_id"
	KeyTheme            = "theme"
	KeySidebarCollapsed = "sidebar_collapsed"
)

// Store is a string key-value store.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// SQLite is a Store backed by a single-table sqlite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the state database at path.
func OpenSQLite(path string) (*SQLite, error) {
	const op = pkgerrors.Op("localstore.Open")

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, pkgerrors.StoreFailed(op, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, pkgerrors.StoreFailed(op, err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, pkgerrors.StoreFailed(op, err)
		}
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, pkgerrors.StoreFailed(pkgerrors.Op("localstore.Get"), err)
	}
	return value, true, nil
}

func (s *SQLite) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UnixMilli())
	if err != nil {
		return pkgerrors.StoreFailed(pkgerrors.Op("localstore.Set"), err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return pkgerrors.StoreFailed(pkgerrors.Op("localstore.Delete"), err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// Memory is an in-process Store. Used in tests and when the state file
// cannot be opened.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *Memory) Close() error { return nil }

// GetBool reads a "true"/"false" value, returning def when the key is unset
// or unreadable.
func GetBool(ctx context.Context, s Store, key string, def bool) bool {
	v, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return def
	}
	switch v {
	case "true":
		return true
	case "false":
		return false
	}
	return def
}

// SetBool writes b as "true" or "false".
func SetBool(ctx context.Context, s Store, key string, b bool) error {
	if b {
		return s.Set(ctx, key, "true")
	}
	return s.Set(ctx, key, "false")
}
