package app

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/memo/internal/editor"
)

// palette is the set of colors one theme paints with.
type palette struct {
	text       lipgloss.Color
	muted      lipgloss.Color
	accent     lipgloss.Color
	border     lipgloss.Color
	cursorLine lipgloss.Color
	saved      lipgloss.Color
	unsaved    lipgloss.Color
	glamour    string
}

var palettes = map[editor.Theme]palette{
	editor.ThemeLight: {
		text:       lipgloss.Color("235"),
		muted:      lipgloss.Color("244"),
		accent:     lipgloss.Color("25"),
		border:     lipgloss.Color("250"),
		cursorLine: lipgloss.Color("254"),
		saved:      lipgloss.Color("28"),
		unsaved:    lipgloss.Color("166"),
		glamour:    "light",
	},
	editor.ThemeDark: {
		text:       lipgloss.Color("252"),
		muted:      lipgloss.Color("244"),
		accent:     lipgloss.Color("204"),
		border:     lipgloss.Color("62"),
		cursorLine: lipgloss.Color("236"),
		saved:      lipgloss.Color("78"),
		unsaved:    lipgloss.Color("214"),
		glamour:    "dark",
	},
}

// styles are the lipgloss styles derived from a palette.
type styles struct {
	pane    lipgloss.Style
	popup   lipgloss.Style
	title   lipgloss.Style
	muted   lipgloss.Style
	saved   lipgloss.Style
	unsaved lipgloss.Style
	toggle  lipgloss.Style
	pressed lipgloss.Style
}

func paletteFor(theme editor.Theme) palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes[editor.ThemeLight]
}

func newStyles(theme editor.Theme) styles {
	p := paletteFor(theme)
	pane := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border).Padding(0, 1)
	return styles{
		pane:    pane,
		popup:   lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(p.accent).Padding(0, 1),
		title:   lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		muted:   lipgloss.NewStyle().Foreground(p.muted),
		saved:   lipgloss.NewStyle().Foreground(p.saved),
		unsaved: lipgloss.NewStyle().Foreground(p.unsaved).Bold(true),
		toggle:  lipgloss.NewStyle().Foreground(p.muted),
		pressed: lipgloss.NewStyle().Foreground(p.accent).Reverse(true),
	}
}

// statusStyle picks the style tag for a status kind.
func (s styles) statusStyle(kind editor.StatusKind) lipgloss.Style {
	if kind == editor.StatusUnsaved {
		return s.unsaved
	}
	return s.saved
}

func applyEditorTheme(ta *textarea.Model, theme editor.Theme) {
	p := paletteFor(theme)
	focused, blurred := textarea.DefaultStyles()

	base := lipgloss.NewStyle().Foreground(p.text)
	cursorLine := lipgloss.NewStyle().Background(p.cursorLine).Foreground(p.text)
	lineNumber := lipgloss.NewStyle().Foreground(p.muted)
	prompt := lipgloss.NewStyle().Foreground(p.accent)
	placeholder := lipgloss.NewStyle().Foreground(p.muted)

	focused.Base = base
	focused.Text = base
	focused.CursorLine = cursorLine
	focused.CursorLineNumber = lineNumber.Bold(true)
	focused.LineNumber = lineNumber
	focused.Prompt = prompt
	focused.Placeholder = placeholder

	blurred.Base = base
	blurred.Text = placeholder
	blurred.CursorLine = lipgloss.NewStyle().Foreground(p.muted)
	blurred.CursorLineNumber = lineNumber
	blurred.LineNumber = lineNumber
	blurred.Prompt = prompt
	blurred.Placeholder = placeholder

	ta.FocusedStyle = focused
	ta.BlurredStyle = blurred
	ta.Prompt = "│ "
	ta.EndOfBufferCharacter = ' '
	ta.ShowLineNumbers = true
}

func applyHelpTheme(h *help.Model, theme editor.Theme) {
	p := paletteFor(theme)
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(p.accent)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(p.muted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(p.border)
	h.Styles.Ellipsis = lipgloss.NewStyle().Foreground(p.border)
}
