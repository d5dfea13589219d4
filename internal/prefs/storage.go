package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ziadkadry99/pgagent/internal/db"
)

// Storage is a string key/value store scoped to one client.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// MemoryStorage keeps preferences in process memory.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

// Get implements Storage.
func (m *MemoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Storage.
func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// DBStorage persists one client's preferences in SQLite.
type DBStorage struct {
	db       *db.DB
	clientID string
}

// NewDBStorage returns storage for the given client id.
func NewDBStorage(database *db.DB, clientID string) *DBStorage {
	return &DBStorage{db: database, clientID: clientID}
}

// Get implements Storage.
func (s *DBStorage) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE client_id = ? AND key = ?`, s.clientID, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("getting preference %s: %w", key, err)
	}
	return v, true, nil
}

// Set implements Storage.
func (s *DBStorage) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (client_id, key, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(client_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.clientID, key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("setting preference %s: %w", key, err)
	}
	return nil
}
