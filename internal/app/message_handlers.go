package app

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/memo/internal/notefile"
)

// fileLoadedMsg carries a completed import. Bubble Tea delivers messages one
// at a time, so the replacement lands before any later key or tick.
type fileLoadedMsg struct {
	path string
	text string
}

// fileLoadFailedMsg reports an import that could not be read.
type fileLoadFailedMsg struct {
	path string
	err  error
}

// loadFileCmd reads path off the update loop.
func loadFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		text, err := notefile.Import(path)
		if err != nil {
			return fileLoadFailedMsg{path: path, err: err}
		}
		return fileLoadedMsg{path: path, text: text}
	}
}

func (m *Model) handleFileLoaded(msg fileLoadedMsg) (tea.Model, tea.Cmd) {
	m.flash = ""
	m.ctrl.LoadText(filepath.Base(msg.path), msg.text)
	appLog.Info("loaded note file", "path", msg.path, "bytes", len(msg.text))
	return m, nil
}

// handleFileLoadFailed leaves the note untouched; an unreadable file is not a
// storage failure.
func (m *Model) handleFileLoadFailed(msg fileLoadFailedMsg) (tea.Model, tea.Cmd) {
	m.setStatusError("Could not read "+filepath.Base(msg.path), msg.err, "path", msg.path)
	return m, nil
}
