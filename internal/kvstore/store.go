// Package kvstore holds the persistent key-value stores memo keeps its note,
// save timestamp and theme in.
//
// Every backend reports failures with one of the sentinel errors below
// (wrapped, so match with errors.Is). Callers above this package treat all of
// them as a single kind of failure: the store could not be used.
package kvstore

import (
	"errors"
	"fmt"
	"os"

	"github.com/treykane/memo/internal/config"
)

var (
	// ErrUnavailable means the store is disabled or could not be reached.
	ErrUnavailable = errors.New("storage unavailable")
	// ErrQuotaExceeded means a write would grow the store past its quota.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrAccessDenied means the operating system refused access.
	ErrAccessDenied = errors.New("storage access denied")
)

// Store is a string-to-string persistent map.
type Store interface {
	// Get returns the stored value. ok is false when the key is absent,
	// which is not an error.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
	Close() error
}

// Open builds the backend named by cfg.Store.
func Open(cfg config.Config) (Store, error) {
	switch cfg.Store {
	case config.StoreFile, "":
		s, err := OpenFile(cfg.StorePath, cfg.StoreQuotaBytes)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StoreSQLite:
		s, err := OpenSQLite(cfg.StorePath, cfg.StoreQuotaBytes)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StoreMemory:
		return NewMemory(), nil
	case config.StoreNone:
		return Disabled{}, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}

// classify maps an operating system error onto the package sentinels.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrUnavailable), errors.Is(err, ErrQuotaExceeded), errors.Is(err, ErrAccessDenied):
		return fmt.Errorf("%s: %w", op, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%s: %w: %v", op, ErrAccessDenied, err)
	default:
		return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	}
}
