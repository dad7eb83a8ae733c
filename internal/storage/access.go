// Package storage is the only path memo uses to touch its key-value store.
//
// Every call returns an Outcome instead of an error so callers can branch on
// success without unwinding: a failing store is an expected condition, not an
// exceptional one. Failures are also logged at WARN, and that log line never
// changes what the caller gets back.
package storage

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/treykane/memo/internal/kvstore"
	"github.com/treykane/memo/internal/logging"
)

// Keys used in the persistent store. Values are opaque strings.
const (
	KeyTheme     = "theme"
	KeyContent   = "content"
	KeyTimestamp = "timestamp"
)

// Outcome is the result of one store call.
type Outcome struct {
	OK  bool
	Err error
}

// Failed reports whether the call did not succeed.
func (o Outcome) Failed() bool {
	return !o.OK
}

// Access wraps a kvstore.Store so that no failure escapes as a panic or bare
// error.
type Access struct {
	store kvstore.Store
	log   *slog.Logger
}

// New wraps store. A nil store behaves like a disabled one.
func New(store kvstore.Store) *Access {
	if store == nil {
		store = kvstore.Disabled{}
	}
	return &Access{store: store, log: logging.New("storage")}
}

// WithLogger replaces the logger failures are reported to.
func (a *Access) WithLogger(log *slog.Logger) *Access {
	if log != nil {
		a.log = log
	}
	return a
}

// Write persists value under key.
func (a *Access) Write(key, value string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = a.fail("save", key, fmt.Errorf("%w: panic: %v", kvstore.ErrUnavailable, r))
		}
	}()
	if err := a.store.Set(key, value); err != nil {
		return a.fail("save", key, err)
	}
	return Outcome{OK: true}
}

// Read returns the value under key, or fallback when the key is absent (a
// success) or the store cannot be read (a failure).
func (a *Access) Read(key, fallback string) (out Outcome, value string) {
	defer func() {
		if r := recover(); r != nil {
			out = a.fail("load", key, fmt.Errorf("%w: panic: %v", kvstore.ErrUnavailable, r))
			value = fallback
		}
	}()
	stored, ok, err := a.store.Get(key)
	if err != nil {
		return a.fail("load", key, err), fallback
	}
	if !ok {
		return Outcome{OK: true}, fallback
	}
	return Outcome{OK: true}, stored
}

func (a *Access) fail(action, key string, err error) Outcome {
	a.log.Warn(fmt.Sprintf("cannot %s %s: %s", action, describeKey(key), describeError(err)),
		"key", key, "error", err)
	return Outcome{OK: false, Err: err}
}

func describeKey(key string) string {
	switch key {
	case KeyContent:
		return "note content"
	case KeyTimestamp:
		return "last-saved timestamp"
	case KeyTheme:
		return "theme preference"
	default:
		return "key " + key
	}
}

func describeError(err error) string {
	switch {
	case errors.Is(err, kvstore.ErrQuotaExceeded):
		return "storage quota exceeded"
	case errors.Is(err, kvstore.ErrAccessDenied):
		return "storage access denied"
	default:
		return "storage inaccessible"
	}
}
