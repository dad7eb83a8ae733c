// Package editor owns the note being edited and reconciles user actions,
// auto-save ticks and storage outcomes into one status line.
//
// The controller is single-threaded: every method runs to completion on the
// caller's goroutine, and the caller (the Bubble Tea update loop) never runs
// two of them at once.
package editor

import (
	"log/slog"
	"strings"
	"time"

	"github.com/treykane/memo/internal/logging"
	"github.com/treykane/memo/internal/storage"
)

// TimestampLayout formats the "saved at" time in the local zone.
const TimestampLayout = "2006-01-02 15:04:05"

// Status labels.
const (
	LabelSaved          = "Saved"
	LabelSavedAtPrefix  = "Saved at "
	LabelUnsaved        = "Unsaved"
	LabelNewNote        = "New note (unsaved)"
	LabelCleared        = "Cleared"
	LabelFileLoaded     = "File loaded: "
	NoticeLoadBlocked   = "Cannot load stored note: storage blocked"
	NoticeSaveBlocked   = "Local save blocked by storage settings; file was exported instead"
	NoticeAutoSaveBlock = "Auto-save blocked by storage settings"
)

// Confirmation prompts.
const (
	PromptNewNote = "Start a new note? The current text will be discarded."
	PromptClear   = "Clear the note?"
)

// Options wires a Controller to its collaborators. Missing collaborators get
// inert defaults: a disabled store, a surface that ignores updates, the
// system clock and no export.
type Options struct {
	Store        *storage.Access
	Surface      Surface
	Clock        Clock
	Exporter     Exporter
	DefaultTheme Theme
	Logger       *slog.Logger
}

// Controller is the state of the one note.
type Controller struct {
	store        *storage.Access
	surface      Surface
	clock        Clock
	exporter     Exporter
	defaultTheme Theme
	log          *slog.Logger

	content    string
	theme      Theme
	status     Status
	degraded   bool
	lastExport string
}

// New builds a controller. Call Initialize before the first render.
func New(opts Options) *Controller {
	c := &Controller{
		store:        opts.Store,
		surface:      opts.Surface,
		clock:        opts.Clock,
		exporter:     opts.Exporter,
		defaultTheme: opts.DefaultTheme,
		log:          opts.Logger,
		theme:        opts.DefaultTheme,
	}
	if c.store == nil {
		c.store = storage.New(nil)
	}
	if c.surface == nil {
		c.surface = nopSurface{}
	}
	if c.clock == nil {
		c.clock = SystemClock
	}
	if _, ok := ParseTheme(string(c.defaultTheme)); !ok {
		c.defaultTheme = ThemeLight
		c.theme = ThemeLight
	}
	if c.log == nil {
		c.log = logging.New("editor")
	}
	return c
}

// Initialize restores theme and note from the store.
func (c *Controller) Initialize() {
	_, stored := c.store.Read(storage.KeyTheme, string(c.defaultTheme))
	theme, ok := ParseTheme(stored)
	if !ok {
		theme = c.defaultTheme
	}
	c.theme = theme
	c.surface.ShowTheme(theme)

	out, content := c.store.Read(storage.KeyContent, "")
	c.content = content
	c.surface.ShowContent(content)
	if out.Failed() {
		c.NotifyStorageIssue(NoticeLoadBlocked, true)
		return
	}

	if content != "" {
		tsOut, timestamp := c.store.Read(storage.KeyTimestamp, "")
		if tsOut.OK && timestamp != "" {
			c.ClearStorageNotice()
			c.setStatus(LabelSavedAtPrefix+timestamp, StatusSaved)
			return
		}
	}
	c.ClearStorageNotice()
	c.setStatus(LabelSaved, StatusSaved)
}

// ContentChanged records a user edit. It does not touch the degraded latch.
func (c *Controller) ContentChanged(text string) {
	c.content = text
	c.setStatus(LabelUnsaved, StatusUnsaved)
}

// ToggleTheme flips and persists the theme. A failed write is only logged by
// the storage layer; theme persistence never raises a notice.
func (c *Controller) ToggleTheme() {
	c.theme = c.theme.Toggle()
	c.store.Write(storage.KeyTheme, string(c.theme))
	c.surface.ShowTheme(c.theme)
}

// NewNote discards the note after confirmation. An empty note is only
// refocused.
func (c *Controller) NewNote(confirm Confirmer) {
	if c.content == "" {
		c.surface.Focus()
		return
	}
	if !confirm.Confirm(PromptNewNote) {
		return
	}
	c.replaceContent("")
	c.setStatus(LabelNewNote, StatusUnsaved)
	c.surface.Focus()
}

// Save writes content and timestamp, then exports the note as a file no
// matter how the writes went.
func (c *Controller) Save() {
	now := c.clock.Now()
	timestamp := now.Format(TimestampLayout)
	content := c.content

	if c.persist(content, timestamp) {
		c.ClearStorageNotice()
		c.setStatus(LabelSavedAtPrefix+timestamp, StatusSaved)
	} else {
		c.NotifyStorageIssue(NoticeSaveBlocked, true)
	}

	c.export(content, now)
}

// AutoSave is the timer body. Blank notes are skipped entirely.
func (c *Controller) AutoSave() {
	content := c.content
	if strings.TrimSpace(content) == "" {
		return
	}
	timestamp := c.clock.Now().Format(TimestampLayout)
	if c.persist(content, timestamp) {
		c.ClearStorageNotice()
		return
	}
	c.NotifyStorageIssue(NoticeAutoSaveBlock, false)
}

// LoadText completes a file import: the note is replaced wholesale.
func (c *Controller) LoadText(name, text string) {
	c.replaceContent(text)
	c.setStatus(LabelFileLoaded+name, StatusSaved)
}

// Clear empties the note after confirmation.
func (c *Controller) Clear(confirm Confirmer) {
	if !confirm.Confirm(PromptClear) {
		return
	}
	c.replaceContent("")
	c.setStatus(LabelCleared, StatusSaved)
	c.surface.Focus()
}

// NotifyStorageIssue shows message and sets the degraded latch. While the
// latch is set only a forced notice may replace the displayed message.
func (c *Controller) NotifyStorageIssue(message string, forced bool) {
	if c.degraded && !forced {
		return
	}
	c.setStatus(message, StatusUnsaved)
	c.degraded = true
}

// ClearStorageNotice resets the latch. Callers set the next status themselves.
func (c *Controller) ClearStorageNotice() {
	c.degraded = false
}

// persist attempts both writes; they are independent, not transactional.
func (c *Controller) persist(content, timestamp string) bool {
	contentOut := c.store.Write(storage.KeyContent, content)
	timestampOut := c.store.Write(storage.KeyTimestamp, timestamp)
	return contentOut.OK && timestampOut.OK
}

// export hands the note to the exporter. Failures are logged only; they are
// not storage failures and never touch the latch.
func (c *Controller) export(content string, now time.Time) {
	if c.exporter == nil {
		return
	}
	path, err := c.exporter.Export(content, now)
	if err != nil {
		c.log.Warn("export note file", "error", err)
		return
	}
	c.lastExport = path
	c.log.Info("exported note file", "path", path, "bytes", len(content))
}

type nopSurface struct{}

func (nopSurface) ShowContent(string) {}
func (nopSurface) ShowTheme(Theme)    {}
func (nopSurface) Focus()             {}

func (c *Controller) replaceContent(text string) {
	c.content = text
	c.surface.ShowContent(text)
}

func (c *Controller) setStatus(label string, kind StatusKind) {
	c.status = Status{Label: label, Kind: kind}
}

// Content returns the note text.
func (c *Controller) Content() string { return c.content }

// Theme returns the active theme.
func (c *Controller) Theme() Theme { return c.theme }

// Status returns the current status line.
func (c *Controller) Status() Status { return c.status }

// Degraded reports whether a storage notice latch is set.
func (c *Controller) Degraded() bool { return c.degraded }

// CharCount is the live character count.
func (c *Controller) CharCount() int { return ComputeMetrics(c.content).Chars }

// Metrics returns word, character and line counts.
func (c *Controller) Metrics() Metrics { return ComputeMetrics(c.content) }

// LastExport is the path of the most recent successful export.
func (c *Controller) LastExport() string { return c.lastExport }

// ToggleLabel names the action the theme toggle performs.
func (c *Controller) ToggleLabel() string {
	if c.theme == ThemeDark {
		return "☀ Light mode"
	}
	return "☾ Dark mode"
}

// TogglePressed is the toggle's pressed state: on in dark mode.
func (c *Controller) TogglePressed() bool { return c.theme == ThemeDark }
