package kvstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps keys in a single table of a SQLite database.
type SQLiteStore struct {
	db    *sql.DB
	quota int64
}

// OpenSQLite opens (creating if needed) the database at path. A quota of zero
// disables the size check.
func OpenSQLite(path string, quota int64) (*SQLiteStore, error) {
	if path == "" {
		return nil, classify("open sqlite store", errors.New("path is required"))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, classify("open sqlite store", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, classify("open sqlite store", fmt.Errorf("open database: %w", err))
	}
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db, quota: quota}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, classify("open sqlite store", fmt.Errorf("init schema: %w", err))
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`)
	return err
}

func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, classify("get "+key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(key, value string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return classify("set "+key, err)
	}
	defer tx.Rollback()

	if s.quota > 0 {
		var others int64
		err := tx.QueryRow(`
			SELECT COALESCE(SUM(LENGTH(CAST(key AS BLOB)) + LENGTH(CAST(value AS BLOB))), 0)
			FROM kv WHERE key != ?
		`, key).Scan(&others)
		if err != nil {
			return classify("set "+key, err)
		}
		if total := others + int64(len(key)+len(value)); total > s.quota {
			return classify("set "+key, fmt.Errorf("%w: %d bytes over a %d byte quota", ErrQuotaExceeded, total, s.quota))
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value); err != nil {
		return classify("set "+key, err)
	}
	return classify("set "+key, tx.Commit())
}

func (s *SQLiteStore) Remove(key string) error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return classify("remove "+key, err)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
