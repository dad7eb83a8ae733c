package app

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/treykane/memo/internal/config"
)

// Each constant identifies a user-triggerable action. A key press is looked
// up in keyToAction and the resulting action is dispatched in handleEditKey.
// Users override the default keys through the "keybindings" object in
// config.json.
const (
	actionSave          = "note.save"
	actionNewNote       = "note.new"
	actionLoad          = "note.load"
	actionClear         = "note.clear"
	actionCopy          = "note.copy"
	actionThemeToggle   = "theme.toggle"
	actionPreviewToggle = "preview.toggle"
	actionQuit          = "app.quit"
)

// actionOrder is the order actions appear in the help footer.
var actionOrder = []string{
	actionSave,
	actionNewNote,
	actionLoad,
	actionClear,
	actionThemeToggle,
	actionPreviewToggle,
	actionCopy,
	actionQuit,
}

var actionDescriptions = map[string]string{
	actionSave:          "save",
	actionNewNote:       "new",
	actionLoad:          "load",
	actionClear:         "clear",
	actionCopy:          "copy",
	actionThemeToggle:   "theme",
	actionPreviewToggle: "preview",
	actionQuit:          "quit",
}

// defaultActionKeys maps each action to its factory-default key bindings.
//
// Every default is a control chord so plain typing always reaches the editor.
var defaultActionKeys = map[string][]string{
	actionSave:          {"ctrl+s"},
	actionNewNote:       {"ctrl+n"},
	actionLoad:          {"ctrl+o"},
	actionClear:         {"ctrl+l"},
	actionCopy:          {"ctrl+y"},
	actionThemeToggle:   {"ctrl+t"},
	actionPreviewToggle: {"ctrl+p"},
	actionQuit:          {"ctrl+q", "ctrl+c"},
}

// loadKeybindings builds the key↔action maps from the defaults and then the
// config overrides. An override replaces the action's whole default key set.
// Unknown actions and key conflicts are logged and ignored; the first action
// to claim a key keeps it.
func (m *Model) loadKeybindings(cfg config.Config) {
	m.keyForAction = map[string][]string{}
	for action, keys := range defaultActionKeys {
		m.keyForAction[action] = append([]string(nil), keys...)
	}
	for action, keys := range cfg.Keybindings {
		m.applyKeybindingOverride(action, keys)
	}
	m.rebuildActionKeyIndex()
}

func (m *Model) applyKeybindingOverride(action string, keys []string) {
	action = strings.TrimSpace(action)
	if action == "" {
		return
	}
	if _, ok := defaultActionKeys[action]; !ok {
		appLog.Warn("ignore unknown keybinding action", "action", action)
		return
	}
	normalized := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = normalizeKeyString(k); k != "" && !slices.Contains(normalized, k) {
			normalized = append(normalized, k)
		}
	}
	if len(normalized) == 0 {
		return
	}
	m.keyForAction[action] = normalized
}

// rebuildActionKeyIndex constructs keyToAction from keyForAction. Actions are
// walked in actionOrder so conflict resolution is deterministic.
func (m *Model) rebuildActionKeyIndex() {
	m.keyToAction = map[string]string{}
	for _, action := range actionOrder {
		for _, k := range m.keyForAction[action] {
			if k == "" {
				continue
			}
			if existing, ok := m.keyToAction[k]; ok && existing != action {
				appLog.Warn("keybinding conflict ignored", "key", k, "action", action, "existing_action", existing)
				continue
			}
			m.keyToAction[k] = action
		}
	}
}

// normalizeKeyString converts a user-provided key string into the canonical
// lowercase form Bubble Tea reports.
//
//	normalizeKeyString("Ctrl+S")  → "ctrl+s"
//	normalizeKeyString(" Y ")     → "shift+y"
func normalizeKeyString(k string) string {
	k = strings.TrimSpace(k)
	if k == "" {
		return ""
	}
	if len([]rune(k)) == 1 && strings.ToUpper(k) == k && strings.ToLower(k) != k {
		return "shift+" + strings.ToLower(k)
	}
	return strings.ToLower(k)
}

// actionForKey returns the action bound to k, or "".
func (m *Model) actionForKey(k string) string {
	if m.keyToAction == nil {
		return ""
	}
	return m.keyToAction[normalizeKeyString(k)]
}

// binding exposes an action as a bubbles key.Binding for the help footer.
// Keys lost to a conflict are left out.
func (m *Model) binding(action string) key.Binding {
	var keys []string
	for _, k := range m.keyForAction[action] {
		if m.keyToAction[k] == action {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(humanizeKeyLabel(keys[0]), actionDescriptions[action]),
	)
}

// ShortHelp implements help.KeyMap.
func (m *Model) ShortHelp() []key.Binding {
	bindings := make([]key.Binding, 0, len(actionOrder))
	for _, action := range actionOrder {
		bindings = append(bindings, m.binding(action))
	}
	return bindings
}

// FullHelp implements help.KeyMap.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp()}
}

func humanizeKeyLabel(k string) string {
	normalized := normalizeKeyString(k)
	if normalized == "" {
		return ""
	}
	special := map[string]string{
		"enter": "Enter",
		"esc":   "Esc",
		"tab":   "Tab",
		"space": "Space",
	}
	parts := strings.Split(normalized, "+")
	for i, part := range parts {
		switch part {
		case "ctrl":
			parts[i] = "Ctrl"
		case "alt":
			parts[i] = "Alt"
		case "shift":
			parts[i] = "Shift"
		default:
			if label, ok := special[part]; ok {
				parts[i] = label
				continue
			}
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, "+")
}
