package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps every key in one JSON object on disk.
//
// The file is re-read on every call so the store always reflects what is
// actually persisted, and writes go through a temp file plus rename so a
// failed write never leaves a truncated document behind.
type FileStore struct {
	mu    sync.Mutex
	path  string
	quota int64
}

// OpenFile prepares a file store at path. The file itself is created lazily
// on the first Set. A quota of zero disables the size check.
func OpenFile(path string, quota int64) (*FileStore, error) {
	if path == "" {
		return nil, classify("open file store", errors.New("path is required"))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, classify("open file store", err)
	}
	s := &FileStore{path: path, quota: quota}
	if _, err := s.load(); err != nil {
		return nil, classify("open file store", err)
	}
	return s, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", false, classify("get "+key, err)
	}
	value, ok := values[key]
	return value, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return classify("set "+key, err)
	}
	values[key] = value
	return classify("set "+key, s.write(values))
}

func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return classify("remove "+key, err)
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return classify("remove "+key, s.write(values))
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) load() (map[string]string, error) {
	values := map[string]string{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse %q: %w", s.path, err)
	}
	return values, nil
}

func (s *FileStore) write(values map[string]string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	if s.quota > 0 && int64(len(data)) > s.quota {
		return fmt.Errorf("%w: %d bytes over a %d byte quota", ErrQuotaExceeded, len(data), s.quota)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".store-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
