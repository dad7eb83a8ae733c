package app

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/memo/internal/config"
	"github.com/treykane/memo/internal/editor"
	"github.com/treykane/memo/internal/kvstore"
	"github.com/treykane/memo/internal/storage"
)

var testNow = time.Date(2024, 3, 9, 14, 5, 6, 0, time.Local)

type fakeExporter struct {
	contents []string
}

func (f *fakeExporter) Export(content string, _ time.Time) (string, error) {
	f.contents = append(f.contents, content)
	return "/tmp/memo_export.txt", nil
}

func newTestModel(t *testing.T, store kvstore.Store) (*Model, *fakeExporter) {
	t.Helper()
	exporter := &fakeExporter{}
	access := storage.New(store).WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m := New(Options{
		Config:   config.Config{ExportDir: t.TempDir(), AutoSaveSeconds: 1},
		Store:    access,
		Exporter: exporter,
		Clock:    editor.ClockFunc(func() time.Time { return testNow }),
	})
	return m, exporter
}

func typeText(m *Model, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func press(m *Model, keyType tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: keyType})
	return cmd
}

func pressRune(m *Model, r rune) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func TestNewRestoresStoredNote(t *testing.T) {
	store := kvstore.NewMemory()
	store.Set(storage.KeyContent, "remember the milk")
	store.Set(storage.KeyTheme, "dark")

	m, _ := newTestModel(t, store)

	if m.editor.Value() != "remember the milk" {
		t.Fatalf("expected stored note in editor, got %q", m.editor.Value())
	}
	if m.theme != editor.ThemeDark {
		t.Fatalf("expected dark theme, got %q", m.theme)
	}
	if m.autoSaveInterval != time.Second {
		t.Fatalf("expected configured interval, got %v", m.autoSaveInterval)
	}
}

func TestNewWithDisabledStoreShowsLoadNotice(t *testing.T) {
	m, _ := newTestModel(t, kvstore.Disabled{})

	if got := m.ctrl.Status().Label; got != editor.NoticeLoadBlocked {
		t.Fatalf("expected load notice, got %q", got)
	}
	if !m.ctrl.Degraded() {
		t.Fatal("expected degraded latch")
	}
}

func TestTypingMarksNoteUnsaved(t *testing.T) {
	m, _ := newTestModel(t, kvstore.NewMemory())

	typeText(m, "hi")

	if m.ctrl.Content() != "hi" {
		t.Fatalf("expected controller content %q, got %q", "hi", m.ctrl.Content())
	}
	if got := m.ctrl.Status(); got.Label != editor.LabelUnsaved || got.Kind != editor.StatusUnsaved {
		t.Fatalf("expected unsaved status, got %+v", got)
	}
}

func TestSaveShortcutPersistsAndExports(t *testing.T) {
	store := kvstore.NewMemory()
	m, exporter := newTestModel(t, store)
	typeText(m, "draft")

	press(m, tea.KeyCtrlS)

	want := editor.LabelSavedAtPrefix + testNow.Format(editor.TimestampLayout)
	if got := m.ctrl.Status().Label; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if value, _, _ := store.Get(storage.KeyContent); value != "draft" {
		t.Fatalf("expected stored content, got %q", value)
	}
	if len(exporter.contents) != 1 || exporter.contents[0] != "draft" {
		t.Fatalf("expected one export, got %v", exporter.contents)
	}
}

func TestNewNoteAsksAndDeclineIsNoop(t *testing.T) {
	m, _ := newTestModel(t, kvstore.NewMemory())
	typeText(m, "keep")

	press(m, tea.KeyCtrlN)
	if m.overlay != overlayConfirm || m.confirm.prompt != editor.PromptNewNote {
		t.Fatalf("expected new-note confirmation, got overlay %d prompt %q", m.overlay, m.confirm.prompt)
	}
	if m.ctrl.Content() != "keep" {
		t.Fatal("content must not change before an answer")
	}

	pressRune(m, 'x')
	if m.overlay != overlayConfirm {
		t.Fatal("unrelated keys must not dismiss the confirmation")
	}

	press(m, tea.KeyEsc)
	if m.overlay != overlayNone {
		t.Fatal("expected overlay closed")
	}
	if m.ctrl.Content() != "keep" || m.ctrl.Status().Label != editor.LabelUnsaved {
		t.Fatal("declining must leave note and status unchanged")
	}
}

func TestNewNoteConfirmedClearsEditor(t *testing.T) {
	m, _ := newTestModel(t, kvstore.NewMemory())
	typeText(m, "old")

	press(m, tea.KeyCtrlN)
	pressRune(m, 'y')

	if m.editor.Value() != "" || m.ctrl.Content() != "" {
		t.Fatalf("expected empty note, got %q", m.editor.Value())
	}
	if got := m.ctrl.Status().Label; got != editor.LabelNewNote {
		t.Fatalf("expected new-note status, got %q", got)
	}
	if !m.editor.Focused() {
		t.Fatal("expected editor focused")
	}
}

func TestNewNoteOnEmptyNoteSkipsConfirmation(t *testing.T) {
	m, _ := newTestModel(t, kvstore.NewMemory())

	press(m, tea.KeyCtrlN)

	if m.overlay != overlayNone {
		t.Fatal("empty note must not ask")
	}
}

func TestClearConfirmedWithEnter(t *testing.T) {
	m, _ := newTestModel(t, kvstore.NewMemory())
	typeText(m, "text")

	press(m, tea.KeyCtrlL)
	if m.confirm.prompt != editor.PromptClear {
		t.Fatalf("expected clear prompt, got %q", m.confirm.prompt)
	}
	press(m, tea.KeyEnter)

	if m.ctrl.Content() != "" {
		t.Fatal("expected cleared note")
	}
	if got := m.ctrl.Status(); got.Label != editor.LabelCleared || got.Kind != editor.StatusSaved {
		t.Fatalf("expected cleared status, got %+v", got)
	}
}

func TestThemeShortcutTogglesAndPersists(t *testing.T) {
	store := kvstore.NewMemory()
	m, _ := newTestModel(t, store)

	press(m, tea.KeyCtrlT)

	if m.theme != editor.ThemeDark {
		t.Fatalf("expected dark theme, got %q", m.theme)
	}
	if value, _, _ := store.Get(storage.KeyTheme); value != "dark" {
		t.Fatalf("expected stored theme dark, got %q", value)
	}
	if m.ctrl.ToggleLabel() != "☀ Light mode" {
		t.Fatalf("unexpected toggle label %q", m.ctrl.ToggleLabel())
	}
}

func TestAutoSaveTickWritesAndReschedules(t *testing.T) {
	store := kvstore.NewMemory()
	m, exporter := newTestModel(t, store)
	typeText(m, "auto")

	_, cmd := m.Update(autoSaveTickMsg{})

	if cmd == nil {
		t.Fatal("expected the next tick to be scheduled")
	}
	if value, _, _ := store.Get(storage.KeyContent); value != "auto" {
		t.Fatalf("expected auto-saved content, got %q", value)
	}
	if len(exporter.contents) != 0 {
		t.Fatal("auto-save must not export")
	}
}

func TestAutoSaveTickOnBlankNoteStillReschedules(t *testing.T) {
	store := kvstore.NewMemory()
	m, _ := newTestModel(t, store)

	_, cmd := m.Update(autoSaveTickMsg{})

	if cmd == nil {
		t.Fatal("expected the next tick to be scheduled")
	}
	if _, ok, _ := store.Get(storage.KeyContent); ok {
		t.Fatal("blank note must not be written")
	}
}

func TestLoadFileCmdReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.txt")
	if err := os.WriteFile(path, []byte("line one\nline two"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	msg := loadFileCmd(path)()

	loaded, ok := msg.(fileLoadedMsg)
	if !ok {
		t.Fatalf("expected fileLoadedMsg, got %T", msg)
	}
	if loaded.text != "line one\nline two" {
		t.Fatalf("unexpected text %q", loaded.text)
	}
}

func TestLoadFileCmdReportsMissingFile(t *testing.T) {
	msg := loadFileCmd(filepath.Join(t.TempDir(), "missing.txt"))()
	if _, ok := msg.(fileLoadFailedMsg); !ok {
		t.Fatalf("expected fileLoadFailedMsg, got %T", msg)
	}
}

func TestFileLoadedReplacesNote(t *testing.T) {
	m, _ := newTestModel(t, kvstore.NewMemory())
	typeText(m, "old")

	m.Update(fileLoadedMsg{path: "/notes/todo.txt", text: "fresh"})

	if m.editor.Value() != "fresh" || m.ctrl.Content() != "fresh" {
		t.Fatalf("expected replaced note, got %q", m.editor.Value())
	}
	if got := m.ctrl.Status(); got.Label != "File loaded: todo.txt" || got.Kind != editor.StatusSaved {
		t.Fatalf("unexpected status %+v", got)
	}
}

func TestFileLoadFailedKeepsNote(t *testing.T) {
	m, _ := newTestModel(t, kvstore.NewMemory())
	typeText(m, "mine")

	m.Update(fileLoadFailedMsg{path: "/notes/bad.txt", err: errors.New("permission denied")})

	if m.ctrl.Content() != "mine" {
		t.Fatal("failed load must not touch the note")
	}
	if m.ctrl.Degraded() {
		t.Fatal("failed load is not a storage issue")
	}
	if !strings.Contains(m.flash, "bad.txt") {
		t.Fatalf("expected flash naming the file, got %q", m.flash)
	}
}

func TestPickerEscCancelsSilently(t *testing.T) {
	m, _ := newTestModel(t, kvstore.NewMemory())
	typeText(m, "note")
	before := m.ctrl.Status()

	cmd := press(m, tea.KeyCtrlO)
	if cmd == nil || m.overlay != overlayPicker {
		t.Fatal("expected picker opened with a directory read")
	}
	if m.picker.CurrentDirectory != m.cfg.ExportDir {
		t.Fatalf("expected picker to start in export dir, got %q", m.picker.CurrentDirectory)
	}

	press(m, tea.KeyEsc)

	if m.overlay != overlayNone {
		t.Fatal("expected picker closed")
	}
	if m.ctrl.Status() != before || m.ctrl.Content() != "note" || m.flash != "" {
		t.Fatal("cancel must not change anything")
	}
}

func TestCopyShortcut(t *testing.T) {
	m, _ := newTestModel(t, kvstore.NewMemory())
	var copied string
	orig := clipboardWrite
	t.Cleanup(func() { clipboardWrite = orig })

	clipboardWrite = func(text string) error {
		copied = text
		return nil
	}
	press(m, tea.KeyCtrlY)
	if m.flash != "No note content to copy" {
		t.Fatalf("expected empty-note flash, got %q", m.flash)
	}

	typeText(m, "héllo")
	press(m, tea.KeyCtrlY)
	if copied != "héllo" || m.flash != "Copied note (5 chars)" {
		t.Fatalf("unexpected copy %q / %q", copied, m.flash)
	}

	clipboardWrite = func(string) error { return errors.New("no clipboard") }
	press(m, tea.KeyCtrlY)
	if m.flash != "Clipboard copy failed" || m.ctrl.Degraded() {
		t.Fatalf("expected clipboard failure flash without latch, got %q", m.flash)
	}
}

func TestPreviewToggleBlocksEditing(t *testing.T) {
	m, _ := newTestModel(t, kvstore.NewMemory())
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	typeText(m, "# Title")

	press(m, tea.KeyCtrlP)
	if !m.preview || m.editor.Focused() {
		t.Fatal("expected preview shown and editor blurred")
	}
	typeText(m, "more")
	if m.ctrl.Content() != "# Title" {
		t.Fatalf("typing in preview must not edit, got %q", m.ctrl.Content())
	}

	press(m, tea.KeyCtrlP)
	if m.preview || !m.editor.Focused() {
		t.Fatal("expected editor back in focus")
	}
}

func TestQuitShortcutAutoSaves(t *testing.T) {
	store := kvstore.NewMemory()
	m, _ := newTestModel(t, store)
	typeText(m, "last words")

	cmd := press(m, tea.KeyCtrlQ)

	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
	if value, _, _ := store.Get(storage.KeyContent); value != "last words" {
		t.Fatalf("expected note saved on quit, got %q", value)
	}
}

func TestViewShowsStatusAndMetrics(t *testing.T) {
	m, _ := newTestModel(t, kvstore.NewMemory())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	typeText(m, "two words")

	view := m.View()

	for _, want := range []string{"memo", "☾ Dark mode", editor.LabelUnsaved, "W:2 C:9 L:1"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q", want)
		}
	}
	if lines := strings.Count(view, "\n") + 1; lines != 20 {
		t.Fatalf("expected view to fill 20 rows, got %d", lines)
	}
}

func TestViewBeforeResize(t *testing.T) {
	m, _ := newTestModel(t, kvstore.NewMemory())
	if got := m.View(); got != "Loading..." {
		t.Fatalf("expected loading placeholder, got %q", got)
	}
}

func TestShouldIgnoreOSCBackgroundResponse(t *testing.T) {
	m, _ := newTestModel(t, kvstore.NewMemory())

	osc := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("\x1b]11;rgb:1e1e/1e1e/2e2e\x1b\\")}
	if !m.shouldIgnoreInput(osc) {
		t.Fatal("expected OSC reply ignored")
	}
	if m.shouldIgnoreInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("rgb: values")}) {
		t.Fatal("plain text must pass through")
	}

	m.Update(osc)
	if m.ctrl.Content() != "" {
		t.Fatalf("OSC reply leaked into note: %q", m.ctrl.Content())
	}
}

func TestCursorKeysKeepLoadedTextByteExact(t *testing.T) {
	m, exporter := newTestModel(t, kvstore.NewMemory())
	const text = "col1\tcol2\r\nline2\n"

	m.Update(fileLoadedMsg{path: "/notes/table.txt", text: text})
	press(m, tea.KeyLeft)
	press(m, tea.KeyUp)

	if got := m.ctrl.Status(); got.Label != "File loaded: table.txt" || got.Kind != editor.StatusSaved {
		t.Fatalf("cursor movement must not mark the note edited, got %+v", got)
	}
	if m.ctrl.Content() != text {
		t.Fatalf("expected loaded text untouched, got %q", m.ctrl.Content())
	}

	press(m, tea.KeyCtrlS)

	if len(exporter.contents) != 1 || exporter.contents[0] != text {
		t.Fatalf("expected export to equal the loaded file, got %q", exporter.contents)
	}
}

func TestCursorKeysKeepRestoredNoteByteExact(t *testing.T) {
	store := kvstore.NewMemory()
	store.Set(storage.KeyContent, "a\tb\r\nc")
	m, _ := newTestModel(t, store)
	before := m.ctrl.Status()

	press(m, tea.KeyLeft)

	if m.ctrl.Status() != before {
		t.Fatalf("cursor movement changed status to %+v", m.ctrl.Status())
	}
	if m.ctrl.Content() != "a\tb\r\nc" {
		t.Fatalf("expected restored note untouched, got %q", m.ctrl.Content())
	}
}

func TestEditAfterLoadStillReachesController(t *testing.T) {
	m, _ := newTestModel(t, kvstore.NewMemory())
	m.Update(fileLoadedMsg{path: "/notes/list.txt", text: "x"})

	typeText(m, "y")

	if m.ctrl.Content() != "xy" {
		t.Fatalf("expected edit recorded, got %q", m.ctrl.Content())
	}
	if got := m.ctrl.Status(); got.Kind != editor.StatusUnsaved {
		t.Fatalf("expected unsaved status, got %+v", got)
	}
}

func TestPasteWithCarriageReturns(t *testing.T) {
	tests := []struct {
		name  string
		paste string
		want  string
	}{
		{name: "crlf", paste: "line one\r\nline two", want: "line one\nline two"},
		{name: "lone cr", paste: "a\rb", want: "a\nb"},
		{name: "plain", paste: "just text", want: "just text"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, _ := newTestModel(t, kvstore.NewMemory())

			m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tc.paste), Paste: true})

			if m.ctrl.Content() != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, m.ctrl.Content())
			}
		})
	}
}

func TestTypedControlRunesStillIgnored(t *testing.T) {
	m, _ := newTestModel(t, kvstore.NewMemory())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a\rb")})

	if m.ctrl.Content() != "" {
		t.Fatalf("non-paste control runes must be dropped, got %q", m.ctrl.Content())
	}
}

func TestQuitFromOverlay(t *testing.T) {
	tests := []struct {
		name    string
		open    tea.KeyType
		overlay overlayMode
		quit    tea.KeyType
	}{
		{name: "confirm with ctrl+q", open: tea.KeyCtrlN, overlay: overlayConfirm, quit: tea.KeyCtrlQ},
		{name: "picker with ctrl+c", open: tea.KeyCtrlO, overlay: overlayPicker, quit: tea.KeyCtrlC},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := kvstore.NewMemory()
			m, _ := newTestModel(t, store)
			typeText(m, "keep me")

			press(m, tc.open)
			if m.overlay != tc.overlay {
				t.Fatalf("expected overlay %v, got %v", tc.overlay, m.overlay)
			}

			cmd := press(m, tc.quit)
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Fatal("expected tea.QuitMsg")
			}
			if value, _, _ := store.Get(storage.KeyContent); value != "keep me" {
				t.Fatalf("expected note saved on quit, got %q", value)
			}
		})
	}
}
