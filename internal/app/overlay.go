package app

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/memo/internal/editor"
	"github.com/treykane/memo/internal/notefile"
)

// pendingConfirm is the question on screen and the action to rerun once it
// is answered yes.
type pendingConfirm struct {
	prompt string
	action string
}

// deferredConfirmer answers every question with "not yet": it opens the
// confirmation overlay and returns false, so the controller leaves state
// untouched. A yes reruns the action with editor.Always.
type deferredConfirmer struct {
	m      *Model
	action string
}

func (d deferredConfirmer) Confirm(prompt string) bool {
	d.m.openOverlay(overlayConfirm)
	d.m.confirm = pendingConfirm{prompt: prompt, action: d.action}
	return false
}

// openOverlay activates one overlay and cleans up any previous one.
func (m *Model) openOverlay(mode overlayMode) {
	if m.overlay == mode {
		return
	}
	m.closeOverlay()
	m.overlay = mode
	m.editor.Blur()
}

// closeOverlay dismisses the active overlay and resets its state.
func (m *Model) closeOverlay() {
	switch m.overlay {
	case overlayConfirm:
		m.confirm = pendingConfirm{}
	case overlayPicker:
		m.picker = filepicker.Model{}
	}
	m.overlay = overlayNone
	if !m.preview {
		m.editor.Focus()
	}
}

// handleConfirmKey answers the pending question. Anything other than a yes
// or a no is ignored.
func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "shift+y", "Y", "enter":
		action := m.confirm.action
		m.closeOverlay()
		m.runConfirmed(action, editor.Always)
	case "n", "shift+n", "N", "esc":
		m.closeOverlay()
	}
	return m, nil
}

func (m *Model) runConfirmed(action string, confirm editor.Confirmer) {
	m.flash = ""
	switch action {
	case actionNewNote:
		m.ctrl.NewNote(confirm)
	case actionClear:
		m.ctrl.Clear(confirm)
	}
}

// openPicker shows the file picker filtered to text files. The first
// directory listing arrives as a message from the returned command.
func (m *Model) openPicker() tea.Cmd {
	m.openOverlay(overlayPicker)
	m.picker = newPicker(m.pickerStartDir(), m.pickerHeight())
	return m.picker.Init()
}

func newPicker(dir string, height int) filepicker.Model {
	fp := filepicker.New()
	fp.CurrentDirectory = dir
	fp.AllowedTypes = append([]string(nil), notefile.TextExtensions...)
	fp.AutoHeight = false
	fp.Height = height
	fp.ShowHidden = false
	// esc closes the overlay instead of walking up a directory.
	fp.KeyMap.Back = key.NewBinding(key.WithKeys("h", "backspace", "left"), key.WithHelp("h", "back"))
	return fp
}

// pickerStartDir prefers the export directory, then home, then the working
// directory.
func (m *Model) pickerStartDir() string {
	if dir := m.cfg.ExportDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func (m *Model) pickerHeight() int {
	return max(PickerMinHeight, m.height-FooterRows-HeaderRows-6)
}

// handlePickerKey forwards keys to the picker. esc cancels without touching
// the note or the status. A chosen file is read asynchronously.
func (m *Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.closeOverlay()
		return m, nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.closeOverlay()
		return m, loadFileCmd(path)
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.flash = "Not a text file: " + filepath.Base(path)
		return m, cmd
	}
	return m, cmd
}
