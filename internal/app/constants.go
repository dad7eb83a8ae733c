package app

import "time"

// Layout constants define the default dimensions and spacing for the UI
const (
	// FooterRows is the number of rows reserved for the status and help
	// lines at the bottom of the screen.
	FooterRows = 2

	// HeaderRows is the title bar above the editor.
	HeaderRows = 1

	// ConfirmPopupWidth is the maximum width of the yes/no popup.
	ConfirmPopupWidth = 60

	// PickerPopupPadding is the horizontal margin around the file picker.
	PickerPopupPadding = 8

	// PickerMinHeight keeps the picker usable in short terminals.
	PickerMinHeight = 5
)

// Timing constants
const (
	// DefaultAutoSaveInterval is used when the config does not set one.
	DefaultAutoSaveInterval = 5 * time.Second
)

// Rendering constants control glamour output for the preview pane.
const (
	// RenderWidthBucket is the granularity for width-based render caching.
	// Widths are rounded down to a multiple of this value.
	RenderWidthBucket = 20
)
