package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// StorageRepo is the SQLite-backed local storage shared by all sessions.
type StorageRepo struct{ db *sqlx.DB }

func NewStorageRepo(db *sqlx.DB) *StorageRepo { return &StorageRepo{db: db} }

// For returns the key-value view of a single session.
func (r *StorageRepo) For(sid string) *LocalStorage {
	return &LocalStorage{db: r.db, sid: sid}
}

// LocalStorage is one session's key-value namespace.
type LocalStorage struct {
	db  *sqlx.DB
	sid string
}

// Get returns the raw value and whether the key exists.
func (s *LocalStorage) Get(key string) (string, bool, error) {
	var v string
	err := s.db.Get(&v, `SELECT value FROM local_storage WHERE sid = ? AND key = ?`, s.sid, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *LocalStorage) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO local_storage(sid, key, value, updated_at)
		VALUES(?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(sid, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, s.sid, key, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Remove is a no-op for absent keys.
func (s *LocalStorage) Remove(key string) error {
	if _, err := s.db.Exec(`DELETE FROM local_storage WHERE sid = ? AND key = ?`, s.sid, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
