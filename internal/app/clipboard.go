package app

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// clipboardWrite is swapped out in tests; headless CI has no clipboard.
var clipboardWrite = clipboard.WriteAll

// copyNoteToClipboard copies the note text to the system clipboard.
//
// The footer shows the character count on success. A failure is shown and
// logged; it is not a storage problem and leaves the controller untouched.
func (m *Model) copyNoteToClipboard() {
	content := m.ctrl.Content()
	if content == "" {
		m.flash = "No note content to copy"
		return
	}
	if err := clipboardWrite(content); err != nil {
		m.setStatusError("Clipboard copy failed", err)
		return
	}
	m.flash = fmt.Sprintf("Copied note (%d chars)", m.ctrl.CharCount())
}
