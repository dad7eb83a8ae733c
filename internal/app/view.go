package app

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View draws the full UI (title bar + note pane + footer).
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	layout := m.calculateLayout()
	var body string
	if m.preview {
		body = m.viewport.View()
	} else {
		body = m.editor.View()
	}
	pane := m.styles.pane.
		Width(max(0, layout.PaneWidth-m.styles.pane.GetHorizontalBorderSize())).
		Height(layout.InnerHeight).
		Render(body)

	switch m.overlay {
	case overlayConfirm:
		pane = m.renderConfirmOverlay(m.width, layout.PaneHeight)
	case overlayPicker:
		pane = m.renderPickerOverlay(m.width, layout.PaneHeight)
	}
	pane = padBlock(pane, m.width, layout.PaneHeight)

	view := m.renderHeader(m.width) + "\n" + pane + "\n" + m.renderFooter(m.width)
	return padBlock(view, m.width, m.height)
}

// renderHeader shows the title, the mode and the theme toggle.
func (m *Model) renderHeader(width int) string {
	title := m.styles.title.Render("memo")
	if m.preview {
		title += m.styles.muted.Render(" · preview")
	}
	toggleStyle := m.styles.toggle
	if m.ctrl.TogglePressed() {
		toggleStyle = m.styles.pressed
	}
	toggle := toggleStyle.Render(m.ctrl.ToggleLabel())
	gap := width - lipgloss.Width(title) - lipgloss.Width(toggle)
	if gap < 1 {
		return truncate(title, width)
	}
	return title + strings.Repeat(" ", gap) + toggle
}

func (m *Model) renderConfirmOverlay(width, height int) string {
	popupWidth := min(ConfirmPopupWidth, max(0, width-4))
	innerWidth := max(0, popupWidth-m.styles.popup.GetHorizontalFrameSize())
	lines := []string{
		m.styles.title.Render("Confirm"),
		"",
		lipgloss.NewStyle().Width(innerWidth).Render(m.confirm.prompt),
		"",
		m.styles.muted.Render("y/Enter: yes  n/Esc: no"),
	}
	popup := m.styles.popup.Width(innerWidth).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popup)
}

func (m *Model) renderPickerOverlay(width, height int) string {
	popupWidth := max(0, width-PickerPopupPadding)
	innerWidth := max(0, popupWidth-m.styles.popup.GetHorizontalFrameSize())
	header := m.styles.title.Render("Load text file") + " " +
		m.styles.muted.Render(truncateWithEllipsis(m.picker.CurrentDirectory, max(0, innerWidth-16)))
	lines := []string{
		header,
		m.picker.View(),
		m.styles.muted.Render("Enter: open  h/←: up  Esc: cancel"),
	}
	popup := m.styles.popup.Width(innerWidth).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popup)
}

// renderFooter draws the status row and the key help row.
func (m *Model) renderFooter(width int) string {
	return m.renderStatusLine(width) + "\n" + truncate(m.help.View(m), width)
}

// renderStatusLine shows the status label styled by kind, or a transient
// flash message, followed by the live counters and the last export.
func (m *Model) renderStatusLine(width int) string {
	status := m.ctrl.Status()
	label := m.styles.statusStyle(status.Kind).Render(status.Label)
	if m.flash != "" {
		label = m.styles.muted.Render(m.flash)
	}
	segments := []string{label, m.styles.muted.Render(m.ctrl.Metrics().String())}
	if path := m.ctrl.LastExport(); path != "" {
		segments = append(segments, m.styles.muted.Render("Exported: "+filepath.Base(path)))
	}
	return " " + truncateWithEllipsis(strings.Join(segments, m.styles.muted.Render(" | ")), max(0, width-1))
}
