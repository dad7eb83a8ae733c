// layout.go centralizes the terminal layout calculations.
//
// The screen is a one-row title bar, a bordered pane holding either the
// editor or the preview, and a fixed footer of status and help rows.
package app

// LayoutDimensions holds all calculated layout dimensions for the UI.
type LayoutDimensions struct {
	PaneWidth   int // width of the bordered pane
	PaneHeight  int // height of the bordered pane
	InnerWidth  int // usable width inside the pane
	InnerHeight int // usable height inside the pane
}

// calculateLayout computes the UI dimensions from the terminal size.
func (m *Model) calculateLayout() LayoutDimensions {
	paneHeight := max(0, m.height-HeaderRows-FooterRows)
	return LayoutDimensions{
		PaneWidth:   m.width,
		PaneHeight:  paneHeight,
		InnerWidth:  max(0, m.width-m.styles.pane.GetHorizontalFrameSize()),
		InnerHeight: max(0, paneHeight-m.styles.pane.GetVerticalFrameSize()),
	}
}

// applyLayout resizes the widgets to the calculated layout.
func (m *Model) applyLayout(layout LayoutDimensions) {
	m.editor.SetWidth(layout.InnerWidth)
	m.editor.SetHeight(layout.InnerHeight)
	m.viewport.Width = layout.InnerWidth
	m.viewport.Height = layout.InnerHeight
	m.help.Width = m.width
	if m.overlay == overlayPicker {
		m.picker.Height = m.pickerHeight()
	}
	if m.preview {
		m.renderPreview()
	}
}
