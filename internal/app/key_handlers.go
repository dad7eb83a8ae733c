package app

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleEditKey dispatches bound actions and sends everything else to the
// editor, or to the preview viewport for scrolling while it is shown.
func (m *Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.actionForKey(msg.String()) {
	case actionSave:
		m.flash = ""
		m.ctrl.Save()
		return m, nil
	case actionNewNote:
		m.flash = ""
		m.ctrl.NewNote(deferredConfirmer{m: m, action: actionNewNote})
		return m, nil
	case actionClear:
		m.flash = ""
		m.ctrl.Clear(deferredConfirmer{m: m, action: actionClear})
		return m, nil
	case actionLoad:
		return m, m.openPicker()
	case actionThemeToggle:
		m.ctrl.ToggleTheme()
		return m, nil
	case actionPreviewToggle:
		m.togglePreview()
		return m, nil
	case actionCopy:
		m.copyNoteToClipboard()
		return m, nil
	case actionQuit:
		return m.quit()
	}

	var cmd tea.Cmd
	if m.preview {
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	m.editor, cmd = m.editor.Update(msg)
	if value := m.editor.Value(); value != m.shown {
		m.shown = value
		m.flash = ""
		m.ctrl.ContentChanged(value)
	}
	return m, cmd
}

// quit saves the note one last time and stops the program. It works from
// any overlay.
func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.ctrl.AutoSave()
	return m, tea.Quit
}

func (m *Model) togglePreview() {
	m.preview = !m.preview
	if m.preview {
		m.editor.Blur()
		m.renderPreview()
		return
	}
	m.editor.Focus()
}
