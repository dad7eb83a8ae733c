package app

import (
	"log/slog"

	"github.com/treykane/memo/internal/logging"
)

// appLog is the package-level structured logger for the app package.
//
// It is tagged with component "app". Output goes wherever the logging package
// sends it, which is never stdout while the terminal UI is running.
var appLog = logging.New("app")

// setStatusError shows a user-facing error in the footer and logs it with
// full context.
//
// The message replaces the controller's status only for display; it is not a
// storage notice and never touches the degraded latch. The err and any extra
// key-value attrs go to the log entry only.
//
//	m.setStatusError("Clipboard copy failed", err)
//	m.setStatusError("Could not read file", err, "path", path)
func (m *Model) setStatusError(status string, err error, attrs ...any) {
	m.flash = status
	fields := make([]any, 0, len(attrs)+2)
	fields = append(fields, slog.Any("error", err))
	fields = append(fields, attrs...)
	appLog.Error(status, fields...)
}
