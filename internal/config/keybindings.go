package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Action names used in [keybindings].
const (
	ActionDockLeft        = "dock_left"
	ActionDockRight       = "dock_right"
	ActionDockTop         = "dock_top"
	ActionDockBottom      = "dock_bottom"
	ActionDockLeftTop     = "dock_left_top"
	ActionDockLeftBottom  = "dock_left_bottom"
	ActionDockRightTop    = "dock_right_top"
	ActionDockRightBottom = "dock_right_bottom"
	ActionDockTopLeft     = "dock_top_left"
	ActionDockTopRight    = "dock_top_right"
	ActionDockBottomLeft  = "dock_bottom_left"
	ActionDockBottomRight = "dock_bottom_right"
	ActionFloat           = "float"
	ActionMinimize        = "minimize"
	ActionMaximize        = "maximize"
	ActionToggleExplorer  = "toggle_explorer"
	ActionCloseExplorer   = "close_explorer"
	ActionToggleMini      = "toggle_mini"
	ActionFocusNext       = "focus_next"
	ActionClearOutput     = "clear_output"
	ActionFlush           = "flush"
	ActionReload          = "reload"
	ActionWipe            = "wipe"
	ActionToggleLogs      = "toggle_logs"
	ActionHelp            = "help"
	ActionQuit            = "quit"
)

// ErrInvalidKey is returned for key strings the registry cannot parse.
var ErrInvalidKey = errors.New("invalid key")

// Keybinding represents a single keybinding entry. Key is pressed after the
// leader; Direct is pressed on its own.
type Keybinding struct {
	Key         string
	Direct      string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

type actionInfo struct {
	name        string
	description string
	section     string
}

// actions is the ordered catalogue shown in help and `keybinds list`.
var actions = []actionInfo{
	{ActionDockLeft, "Dock to the left edge", "DOCKING"},
	{ActionDockRight, "Dock to the right edge", "DOCKING"},
	{ActionDockTop, "Dock to the top edge", "DOCKING"},
	{ActionDockBottom, "Dock to the bottom edge", "DOCKING"},
	{ActionDockLeftTop, "Dock to the upper left half", "DOCKING"},
	{ActionDockLeftBottom, "Dock to the lower left half", "DOCKING"},
	{ActionDockRightTop, "Dock to the upper right half", "DOCKING"},
	{ActionDockRightBottom, "Dock to the lower right half", "DOCKING"},
	{ActionDockTopLeft, "Dock to the top left half", "DOCKING"},
	{ActionDockTopRight, "Dock to the top right half", "DOCKING"},
	{ActionDockBottomLeft, "Dock to the bottom left half", "DOCKING"},
	{ActionDockBottomRight, "Dock to the bottom right half", "DOCKING"},
	{ActionFloat, "Undock (float)", "DOCKING"},
	{ActionMinimize, "Minimize / restore", "PANELS"},
	{ActionMaximize, "Maximize / restore", "PANELS"},
	{ActionToggleExplorer, "Show / hide explorer", "PANELS"},
	{ActionCloseExplorer, "Close explorer", "PANELS"},
	{ActionToggleMini, "Explorer compact view", "PANELS"},
	{ActionFocusNext, "Focus other panel", "PANELS"},
	{ActionClearOutput, "Clear REPL output", "PANELS"},
	{ActionFlush, "Flush /persist", "PERSISTENCE"},
	{ActionReload, "Reload /persist", "PERSISTENCE"},
	{ActionWipe, "Wipe /persist", "PERSISTENCE"},
	{ActionToggleLogs, "Toggle log viewer", "SYSTEM"},
	{ActionHelp, "Toggle help", "SYSTEM"},
	{ActionQuit, "Quit", "SYSTEM"},
}

// IsAction reports whether name is a known action.
func IsAction(name string) bool {
	for _, a := range actions {
		if a.name == name {
			return true
		}
	}
	return false
}

// NormalizeKey lower-cases modifiers and orders them ctrl, alt, shift so
// "Shift+Ctrl+X" and "ctrl+shift+x" compare equal. Single printable keys keep
// their case since "W" and "w" are distinct.
func NormalizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if key == "+" {
		return key, nil
	}
	parts := strings.Split(key, "+")
	base := parts[len(parts)-1]
	if base == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if len([]rune(base)) > 1 {
		base = strings.ToLower(base)
	}
	var mods []string
	seen := map[string]bool{}
	for _, m := range parts[:len(parts)-1] {
		m = strings.ToLower(m)
		switch m {
		case "opt", "option", "meta":
			m = "alt"
		case "control":
			m = "ctrl"
		}
		switch m {
		case "ctrl", "alt", "shift":
		default:
			return "", fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidKey, m, key)
		}
		if !seen[m] {
			seen[m] = true
			mods = append(mods, m)
		}
	}
	order := map[string]int{"ctrl": 0, "alt": 1, "shift": 2}
	sort.Slice(mods, func(i, j int) bool { return order[mods[i]] < order[mods[j]] })
	return strings.Join(append(mods, base), "+"), nil
}

// KeybindRegistry resolves pressed keys to actions.
type KeybindRegistry struct {
	leader string
	prefix map[string]string
	direct map[string]string
	// Keys per action, kept apart so prefix and direct keys never mix.
	prefixByName map[string][]string
	directByName map[string][]string
}

// NewKeybindRegistry builds a registry from cfg. Unparseable keys are
// skipped; ValidateConfig reports them.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	r := &KeybindRegistry{
		prefix:       map[string]string{},
		direct:       map[string]string{},
		prefixByName: map[string][]string{},
		directByName: map[string][]string{},
	}
	r.leader, _ = NormalizeKey(cfg.Keybindings.LeaderKey)
	if r.leader == "" {
		r.leader = "ctrl+b"
	}
	add := func(table map[string]string, byName map[string][]string, binds map[string][]string) {
		names := make([]string, 0, len(binds))
		for name := range binds {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			for _, k := range binds[name] {
				nk, err := NormalizeKey(k)
				if err != nil {
					continue
				}
				if _, taken := table[nk]; !taken {
					table[nk] = name
				}
				byName[name] = append(byName[name], nk)
			}
		}
	}
	add(r.prefix, r.prefixByName, cfg.Keybindings.Prefix)
	add(r.direct, r.directByName, cfg.Keybindings.Direct)
	return r
}

// Leader returns the normalized leader key.
func (r *KeybindRegistry) Leader() string { return r.leader }

// IsLeader reports whether key arms prefix mode.
func (r *KeybindRegistry) IsLeader(key string) bool {
	nk, err := NormalizeKey(key)
	return err == nil && nk == r.leader
}

// PrefixAction resolves a key pressed after the leader.
func (r *KeybindRegistry) PrefixAction(key string) (string, bool) {
	nk, err := NormalizeKey(key)
	if err != nil {
		return "", false
	}
	a, ok := r.prefix[nk]
	return a, ok
}

// DirectAction resolves a key pressed without the leader.
func (r *KeybindRegistry) DirectAction(key string) (string, bool) {
	nk, err := NormalizeKey(key)
	if err != nil {
		return "", false
	}
	a, ok := r.direct[nk]
	return a, ok
}

// GetKeysForDisplay returns the keys bound to action after the leader,
// joined for display.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	return strings.Join(r.prefixByName[action], ", ")
}

// GetDirectKeysForDisplay returns the keys bound to action without the
// leader.
func (r *KeybindRegistry) GetDirectKeysForDisplay(action string) string {
	return strings.Join(r.directByName[action], ", ")
}

// GetKeybindings returns the help sections, generated from registry.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(nil)
	}
	var sections []KeybindingSection
	index := map[string]int{}
	for _, a := range actions {
		keys := registry.GetKeysForDisplay(a.name)
		direct := registry.GetDirectKeysForDisplay(a.name)
		if keys == "" && direct == "" {
			continue
		}
		i, ok := index[a.section]
		if !ok {
			i = len(sections)
			index[a.section] = i
			sections = append(sections, KeybindingSection{Title: a.section})
		}
		sections[i].Bindings = append(sections[i].Bindings, Keybinding{Key: keys, Direct: direct, Description: a.description})
	}
	return append(sections, getStaticHelpSections(registry.Leader())...)
}

// getStaticHelpSections returns help sections that don't need dynamic binding
// info. Panel keys are pressed directly.
func getStaticHelpSections(leader string) []KeybindingSection {
	return []KeybindingSection{
		{
			Title: "REPL",
			Bindings: []Keybinding{
				{Direct: "enter, ctrl+enter", Description: "Run input"},
				{Direct: "alt+enter", Description: "New line"},
				{Direct: "tab / shift+tab", Description: "Indent / dedent"},
				{Direct: "up / down", Description: "History"},
				{Direct: "pgup / pgdn, wheel", Description: "Scroll output"},
			},
		},
		{
			Title: "EXPLORER",
			Bindings: []Keybinding{
				{Direct: "up / down, click", Description: "Select entry"},
				{Direct: "enter, double-click", Description: "Open"},
				{Direct: "backspace", Description: "Parent directory"},
				{Direct: "/", Description: "Filter"},
				{Direct: "ctrl+s", Description: "Save buffer"},
				{Direct: "ctrl+n / ctrl+d", Description: "New file / folder"},
				{Direct: "delete", Description: "Delete entry"},
				{Direct: "ctrl+t", Description: "Switch /persist and /tmp"},
				{Direct: "ctrl+o / ctrl+e", Description: "Import / export"},
			},
		},
		{
			Title: "MOUSE",
			Bindings: []Keybinding{
				{Direct: "drag title", Description: "Move floating panel"},
				{Direct: "drag border", Description: "Resize"},
				{Direct: "drag splitter", Description: "Change split"},
				{Direct: "title buttons", Description: "Dock menu, minimize, maximize, close"},
			},
		},
		{
			Title: "",
			Bindings: []Keybinding{
				{Key: leader, Description: "Send literal " + leader},
				{Direct: "esc", Description: "Cancel prefix / close overlay"},
			},
		},
	}
}
