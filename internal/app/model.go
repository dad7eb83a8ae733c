// Package app is the terminal surface of memo: a Bubble Tea model that hosts
// the editor controller, forwards keys and timer ticks to it, and draws the
// note, the status line and the overlays.
package app

import (
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/memo/internal/config"
	"github.com/treykane/memo/internal/editor"
	"github.com/treykane/memo/internal/storage"
)

// overlayMode names the popup drawn over the editor, if any.
type overlayMode int

const (
	overlayNone overlayMode = iota
	overlayConfirm
	overlayPicker
)

// Options wires the model to its collaborators.
type Options struct {
	Config   config.Config
	Store    *storage.Access
	Exporter editor.Exporter
	Clock    editor.Clock
}

// Model holds the Bubble Tea state for the entire UI.
type Model struct {
	cfg  config.Config
	ctrl *editor.Controller

	// UI widgets
	editor   textarea.Model
	viewport viewport.Model
	picker   filepicker.Model
	help     help.Model
	styles   styles
	theme    editor.Theme

	// Overlay and mode state
	overlay overlayMode
	confirm pendingConfirm
	preview bool

	// shown is the editor value right after the controller last pushed
	// content. The textarea rewrites some characters (tabs, carriage
	// returns) on the way in, so edits are detected against this rather than
	// against the controller's content.
	shown string

	// flash is a transient footer message for non-storage events such as a
	// clipboard copy. It is cleared by the next controller action.
	flash string

	// Layout sizing
	width  int
	height int

	// Keybinding indexes
	keyForAction map[string][]string
	keyToAction  map[string]string

	autoSaveInterval time.Duration
	debugInput       bool
}

// New builds the model and restores the stored note and theme.
func New(opts Options) *Model {
	ta := textarea.New()
	ta.Placeholder = "Start typing..."
	ta.CharLimit = 0
	ta.MaxHeight = 0

	m := &Model{
		cfg:              opts.Config,
		editor:           ta,
		viewport:         viewport.New(0, 0),
		help:             help.New(),
		autoSaveInterval: autoSaveInterval(opts.Config),
		debugInput:       os.Getenv("MEMO_DEBUG_INPUT") != "",
	}
	m.loadKeybindings(opts.Config)

	defaultTheme, ok := editor.ParseTheme(opts.Config.DefaultTheme)
	if !ok {
		defaultTheme = editor.ThemeLight
	}
	m.ShowTheme(defaultTheme)

	m.ctrl = editor.New(editor.Options{
		Store:        opts.Store,
		Surface:      m,
		Clock:        opts.Clock,
		Exporter:     opts.Exporter,
		DefaultTheme: defaultTheme,
		Logger:       appLog,
	})
	m.ctrl.Initialize()
	m.editor.Focus()
	return m
}

func autoSaveInterval(cfg config.Config) time.Duration {
	if cfg.AutoSaveSeconds > 0 {
		return time.Duration(cfg.AutoSaveSeconds) * time.Second
	}
	return DefaultAutoSaveInterval
}

// Init starts the auto-save loop and the cursor blink.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.scheduleAutoSave(), textarea.Blink)
}

// Update is the Bubble Tea update loop: handle events and emit commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applyLayout(m.calculateLayout())
		return m, nil
	case autoSaveTickMsg:
		return m.handleAutoSaveTick(msg)
	case fileLoadedMsg:
		return m.handleFileLoaded(msg)
	case fileLoadFailedMsg:
		return m.handleFileLoadFailed(msg)
	case tea.KeyMsg:
		if msg.Paste {
			msg = normalizePaste(msg)
		} else if m.shouldIgnoreInput(msg) {
			return m, nil
		}
		if m.actionForKey(msg.String()) == actionQuit {
			return m.quit()
		}
		switch m.overlay {
		case overlayConfirm:
			return m.handleConfirmKey(msg)
		case overlayPicker:
			return m.handlePickerKey(msg)
		default:
			return m.handleEditKey(msg)
		}
	}

	// Directory listings and other widget-internal messages.
	if m.overlay == overlayPicker {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	if m.preview {
		m.viewport, cmd = m.viewport.Update(msg)
	} else {
		m.editor, cmd = m.editor.Update(msg)
	}
	return m, cmd
}

// ShowContent implements editor.Surface.
func (m *Model) ShowContent(text string) {
	m.editor.SetValue(text)
	m.shown = m.editor.Value()
	if m.preview {
		m.renderPreview()
	}
}

// ShowTheme implements editor.Surface.
func (m *Model) ShowTheme(theme editor.Theme) {
	m.theme = theme
	m.styles = newStyles(theme)
	applyEditorTheme(&m.editor, theme)
	applyHelpTheme(&m.help, theme)
	if m.preview {
		m.renderPreview()
	}
}

// Focus implements editor.Surface. It leaves the preview so the cursor is
// visible.
func (m *Model) Focus() {
	m.preview = false
	m.editor.Focus()
}

// Controller exposes the editor controller to the entry point.
func (m *Model) Controller() *editor.Controller {
	return m.ctrl
}
