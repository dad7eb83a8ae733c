package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// shouldIgnoreInput drops rune events that are really terminal replies, such
// as an OSC 11 background-color report, so they never land in the note.
func (m *Model) shouldIgnoreInput(msg tea.KeyMsg) bool {
	if msg.Type != tea.KeyRunes {
		return false
	}
	if isOSCBackgroundResponse(msg) || containsControlRunes(msg.String()) {
		if m.debugInput {
			m.flash = fmt.Sprintf("Ignored input: %q", msg.String())
		}
		return true
	}
	return false
}

// normalizePaste turns CRLF and lone CR line endings in a bracketed paste into
// LF, so text copied from Windows or a browser keeps its line breaks.
func normalizePaste(msg tea.KeyMsg) tea.KeyMsg {
	text := string(msg.Runes)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	msg.Runes = []rune(text)
	return msg
}

func isOSCBackgroundResponse(msg tea.KeyMsg) bool {
	if msg.Type != tea.KeyRunes {
		return false
	}
	sequence := trimOSCSequenceSuffix(msg.String())
	if !strings.Contains(sequence, "rgb:") {
		return false
	}
	if !strings.Contains(sequence, "\x1b") && !strings.Contains(sequence, "1;rgb:") {
		return false
	}
	return hasRGBTriple(sequence)
}

func trimOSCSequenceSuffix(sequence string) string {
	for _, suffix := range []string{"\x1b\\", "\a", "\\", "\x1b"} {
		if strings.HasSuffix(sequence, suffix) {
			return strings.TrimSuffix(sequence, suffix)
		}
	}
	return sequence
}

func containsControlRunes(sequence string) bool {
	for _, r := range sequence {
		switch {
		case r == '\n' || r == '\t':
			continue
		case r < 32 || r == 127:
			return true
		}
	}
	return false
}

func isHexRune(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// hasRGBTriple reports whether sequence carries rgb:RRRR/GGGG/BBBB.
func hasRGBTriple(sequence string) bool {
	index := strings.Index(sequence, "rgb:")
	if index == -1 {
		return false
	}
	parts := strings.SplitN(sequence[index+len("rgb:"):], "/", 3)
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		n := 0
		for _, r := range part {
			if !isHexRune(r) {
				break
			}
			n++
		}
		if n < 4 {
			return false
		}
	}
	return true
}
