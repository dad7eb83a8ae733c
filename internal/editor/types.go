package editor

import (
	"strings"
	"time"
)

// Theme is the color scheme of the surface.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(value string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(value))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	default:
		return "", false
	}
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// StatusKind is the style tag presentation uses for the status label.
type StatusKind int

const (
	StatusSaved StatusKind = iota
	StatusUnsaved
)

func (k StatusKind) String() string {
	if k == StatusUnsaved {
		return "unsaved"
	}
	return "saved"
}

// Status is the single human-visible outcome of the most recent action.
type Status struct {
	Label string
	Kind  StatusKind
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Exporter hands the note to the user as a file.
type Exporter interface {
	Export(content string, now time.Time) (path string, err error)
}

// ExporterFunc adapts a function to Exporter.
type ExporterFunc func(content string, now time.Time) (string, error)

func (f ExporterFunc) Export(content string, now time.Time) (string, error) { return f(content, now) }

// Surface is where the controller pushes state the user sees directly.
type Surface interface {
	ShowContent(text string)
	ShowTheme(theme Theme)
	Focus()
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Always and Never are fixed answers.
var (
	Always Confirmer = ConfirmFunc(func(string) bool { return true })
	Never  Confirmer = ConfirmFunc(func(string) bool { return false })
)
