package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// autoSaveTickMsg is emitted by the periodic auto-save timer. The Update
// loop runs one auto-save and reschedules the next tick.
type autoSaveTickMsg struct{}

// scheduleAutoSave returns a command that emits autoSaveTickMsg after the
// configured interval.
//
// It is called once from Init and again after every tick, so the loop runs
// for the lifetime of the program regardless of user activity.
func (m *Model) scheduleAutoSave() tea.Cmd {
	return tea.Tick(m.autoSaveInterval, func(time.Time) tea.Msg {
		return autoSaveTickMsg{}
	})
}

// handleAutoSaveTick runs the controller's auto-save and always reschedules.
// Blank notes and failures are the controller's business; the only visible
// effect is a storage notice when the first failure is posted.
func (m *Model) handleAutoSaveTick(_ autoSaveTickMsg) (tea.Model, tea.Cmd) {
	m.ctrl.AutoSave()
	return m, m.scheduleAutoSave()
}
