// Package theme maps the active bubbletint palette onto the roles used by
// the desktop: panel chrome, splitters, output streams, explorer entries and
// overlays. With no theme selected every role falls back to a fixed color.
package theme

import (
	"fmt"
	"image/color"
	"log"
	"sort"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize loads the registry, any custom themes, and selects themeName.
// An empty name disables theming. Unknown names fall back to "default".
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if themesDir, err := GetThemesDir(); err == nil {
		if _, err := LoadCustomThemes(themesDir); err != nil {
			log.Printf("Warning: error loading custom themes: %v", err)
		}
	}

	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
		return fmt.Errorf("unknown theme %q", themeName)
	}
	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the active theme, or nil when theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// Available lists every registered theme ID, sorted.
func Available() []string {
	tint.NewDefaultRegistry()
	if themesDir, err := GetThemesDir(); err == nil {
		_, _ = LoadCustomThemes(themesDir)
	}
	ids := tint.TintIDs()
	sort.Strings(ids)
	return ids
}

// pick returns the theme color chosen by f, or fallback.
func pick(f func(*tint.Tint) *tint.Color, fallback string) color.Color {
	if t := Current(); t != nil {
		if c := f(t); c != nil {
			return c
		}
	}
	return lipgloss.Color(fallback)
}

// Fg is the default text color.
func Fg() color.Color { return pick(func(t *tint.Tint) *tint.Color { return t.Fg }, "#e5e5e5") }

// Bg is the desktop background.
func Bg() color.Color { return pick(func(t *tint.Tint) *tint.Color { return t.Bg }, "#000000") }

// BorderFocused is the border of the panel receiving keys.
func BorderFocused() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.BrightCyan }, "#56d4dd")
}

// BorderUnfocused is the border of the other panel.
func BorderUnfocused() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.BrightBlack }, "#6c6c6c")
}

// BorderDragging highlights a panel while it is moved or resized.
func BorderDragging() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.Yellow }, "#e5c07b")
}

// TitleFg is the panel title text.
func TitleFg() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.BrightWhite }, "#ffffff")
}

// ButtonFg colors the title-bar buttons.
func ButtonFg() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.White }, "#bcbcbc")
}

// ButtonClose colors the close button.
func ButtonClose() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.Red }, "#e06c75")
}

// Splitter is the idle splitter color.
func Splitter() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.BrightBlack }, "#4b5263")
}

// SplitterActive is the splitter color while dragged.
func SplitterActive() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.Cyan }, "#56b6c2")
}

// ExpandButton colors the explorer mini toggle.
func ExpandButton() (fg color.Color, bg color.Color) {
	return Bg(), pick(func(t *tint.Tint) *tint.Color { return t.Blue }, "#61afef")
}

// Prompt colors the ">>> " and "... " echo prefixes.
func Prompt() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.Green }, "#98c379")
}

// Stdout is the color of program output.
func Stdout() color.Color { return Fg() }

// Stderr is the color of stderr output.
func Stderr() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.Yellow }, "#e5c07b")
}

// Traceback is the color of uncaught exceptions.
func Traceback() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.BrightRed }, "#ff6c6b")
}

// SystemMessage colors "[persist]" and "[explorer]" lines.
func SystemMessage() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.Purple }, "#c678dd")
}

// ExplorerDir colors directory entries.
func ExplorerDir() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.BrightBlue }, "#61afef")
}

// ExplorerFile colors file entries.
func ExplorerFile() color.Color { return Fg() }

// ExplorerCursor is the highlight behind the selected entry.
func ExplorerCursor() (fg color.Color, bg color.Color) {
	return Bg(), pick(func(t *tint.Tint) *tint.Color { return t.Cyan }, "#56b6c2")
}

// ExplorerDirty marks a buffer with unsaved edits.
func ExplorerDirty() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.Yellow }, "#e5c07b")
}

// StatusBg is the status line background.
func StatusBg() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.Black }, "#1c1c1c")
}

// StatusFg is the status line text.
func StatusFg() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.White }, "#bcbcbc")
}

// StatusAccent highlights the leader indicator and runtime state.
func StatusAccent() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.BrightGreen }, "#98c379")
}

// NotificationError is the error notification accent.
func NotificationError() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.Red }, "#dc3545")
}

// NotificationWarning is the warning notification accent.
func NotificationWarning() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.Yellow }, "#ffc107")
}

// NotificationSuccess is the success notification accent.
func NotificationSuccess() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.Green }, "#28a745")
}

// NotificationInfo is the info notification accent.
func NotificationInfo() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.Blue }, "#17a2b8")
}

// OverlayBg is the background of the modal, help and log overlays.
func OverlayBg() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.Black }, "#1a1a2e")
}

// HelpKey colors key badges in the help overlay.
func HelpKey() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.BrightCyan }, "#56d4dd")
}

// LogLevel colors a log level tag in the log viewer.
func LogLevel(level string) color.Color {
	switch level {
	case "ERROR":
		return NotificationError()
	case "WARN":
		return NotificationWarning()
	case "DEBUG":
		return BorderUnfocused()
	}
	return NotificationInfo()
}

// CLITableHeader is the header color of tables printed by the CLI.
func CLITableHeader() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.BrightPurple }, "#c678dd")
}

// CLITableKey is the key column color of tables printed by the CLI.
func CLITableKey() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.BrightCyan }, "#56d4dd")
}

// CLITableDim is the secondary text color of tables printed by the CLI.
func CLITableDim() color.Color {
	return pick(func(t *tint.Tint) *tint.Color { return t.BrightBlack }, "#7f848e")
}

// ColorToString converts a color to its hex form for lipgloss.Color.
func ColorToString(c color.Color) string {
	if c == nil {
		return ""
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
