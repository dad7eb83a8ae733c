package editor

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/treykane/memo/internal/kvstore"
	"github.com/treykane/memo/internal/storage"
)

var discardLog = slog.New(slog.NewTextHandler(io.Discard, nil))

// switchStore wraps an in-memory store with per-key failure switches and a
// count of writes.
type switchStore struct {
	*kvstore.Memory
	failAll bool
	failSet map[string]bool
	failGet map[string]bool
	sets    int
}

func newSwitchStore() *switchStore {
	return &switchStore{Memory: kvstore.NewMemory(), failSet: map[string]bool{}, failGet: map[string]bool{}}
}

func (s *switchStore) Get(key string) (string, bool, error) {
	if s.failAll || s.failGet[key] {
		return "", false, kvstore.ErrUnavailable
	}
	return s.Memory.Get(key)
}

func (s *switchStore) Set(key, value string) error {
	s.sets++
	if s.failAll || s.failSet[key] {
		return kvstore.ErrQuotaExceeded
	}
	return s.Memory.Set(key, value)
}

func (s *switchStore) value(key string) string {
	v, _, _ := s.Memory.Get(key)
	return v
}

type recordingSurface struct {
	content string
	theme   Theme
	focuses int
}

func (r *recordingSurface) ShowContent(text string) { r.content = text }
func (r *recordingSurface) ShowTheme(theme Theme)   { r.theme = theme }
func (r *recordingSurface) Focus()                  { r.focuses++ }

type recordingExporter struct {
	calls   []string
	times   []time.Time
	failing bool
}

func (e *recordingExporter) Export(content string, now time.Time) (string, error) {
	e.calls = append(e.calls, content)
	e.times = append(e.times, now)
	if e.failing {
		return "", errors.New("disk full")
	}
	return "/exports/memo.txt", nil
}

type countingConfirmer struct {
	answer  bool
	prompts []string
}

func (c *countingConfirmer) Confirm(prompt string) bool {
	c.prompts = append(c.prompts, prompt)
	return c.answer
}

var fixedNow = time.Date(2024, 5, 17, 9, 30, 15, 0, time.Local)

type harness struct {
	store    *switchStore
	surface  *recordingSurface
	exporter *recordingExporter
	ctrl     *Controller
}

func newHarness(defaultTheme Theme) *harness {
	h := &harness{
		store:    newSwitchStore(),
		surface:  &recordingSurface{},
		exporter: &recordingExporter{},
	}
	h.ctrl = New(Options{
		Store:        storage.New(h.store).WithLogger(discardLog),
		Surface:      h.surface,
		Clock:        ClockFunc(func() time.Time { return fixedNow }),
		Exporter:     h.exporter,
		DefaultTheme: defaultTheme,
		Logger:       discardLog,
	})
	return h
}
