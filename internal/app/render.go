// render.go draws the read-only markdown preview of the note.
//
// Glamour TermRenderer instances are cached per style and width bucket in a
// global map protected by a mutex, because building one is moderately
// expensive and the preview is redrawn on every theme or size change. The
// glamour style follows the active theme.
package app

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

type rendererKey struct {
	style string
	width int
}

var (
	rendererMu    sync.Mutex
	rendererCache = map[rendererKey]*glamour.TermRenderer{}
)

// renderPreview fills the viewport with the note rendered for the current
// theme and width.
func (m *Model) renderPreview() {
	content := m.ctrl.Content()
	if strings.TrimSpace(content) == "" {
		m.viewport.SetContent(m.styles.muted.Render("Nothing to preview"))
		return
	}
	m.viewport.SetContent(renderMarkdown(content, paletteFor(m.theme).glamour, m.viewport.Width))
	m.viewport.GotoTop()
}

// renderMarkdown returns content rendered by glamour, or content itself when
// rendering fails.
func renderMarkdown(content, style string, width int) string {
	renderer, err := getRenderer(style, renderWidthBucket(width))
	if err != nil {
		appLog.Warn("create markdown renderer", "style", style, "error", err)
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		appLog.Warn("render markdown preview", "error", err)
		return content
	}
	return out
}

func getRenderer(style string, width int) (*glamour.TermRenderer, error) {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	k := rendererKey{style: style, width: width}
	if r, ok := rendererCache[k]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache[k] = r
	return r, nil
}
