// Package config provides configuration constants, keybinding management, and user settings.
package config

import (
	"time"

	"charm.land/lipgloss/v2"
)

// =============================================================================
// Timeouts and Intervals
// =============================================================================

const (
	// PrefixCommandTimeout is how long the leader key stays armed
	PrefixCommandTimeout = 2 * time.Second

	// NotificationDuration is how long a notification stays visible
	NotificationDuration = 2 * time.Second

	// StatsInterval is the interval between interpreter resource samples
	StatsInterval = time.Second

	// WatchDebounce coalesces bursts of filesystem events
	WatchDebounce = 150 * time.Millisecond

	// DefaultExecTimeout bounds a single REPL run
	DefaultExecTimeout = 30 * time.Second

	// RuntimeCallTimeout bounds explorer and persistence calls
	RuntimeCallTimeout = 10 * time.Second

	// DoubleClickInterval is the longest gap between the clicks of a double click
	DoubleClickInterval = 400 * time.Millisecond
)

// =============================================================================
// FPS
// =============================================================================

const (
	// NormalFPS is the refresh rate during regular operation
	NormalFPS = 60
)

// =============================================================================
// UI Layout Dimensions
// =============================================================================

const (
	// StatusBarHeight is the height of the status line at the bottom
	StatusBarHeight = 1

	// MaxNotificationWidth is the maximum width of notification messages
	MaxNotificationWidth = 60

	// ModalWidth is the width of confirm and prompt dialogs
	ModalWidth = 50

	// LogViewerWidth is the width of the log viewer overlay
	LogViewerWidth = 80

	// WheelLines is how far one wheel notch scrolls
	WheelLines = 3

	// ExplorerListWidth is the width of the listing column when the editor is shown
	ExplorerListWidth = 24

	// DefaultTerminalWidth is the fallback width when the size is unknown
	DefaultTerminalWidth = 80

	// DefaultTerminalHeight is the fallback height when the size is unknown
	DefaultTerminalHeight = 24
)

// =============================================================================
// Limits
// =============================================================================

const (
	// MaxOutputLines caps the REPL output ring
	MaxOutputLines = 2000

	// MaxHistory caps the REPL input history
	MaxHistory = 500

	// MaxLogMessages is the maximum number of log messages kept in memory
	MaxLogMessages = 200
)

// =============================================================================
// Z-Index Layers
// =============================================================================

const (
	// ZIndexPanel is the base z-index for panels; the focused one sits above
	ZIndexPanel = 10

	// ZIndexSplitter keeps splitters over the panel borders they separate
	ZIndexSplitter = 100

	// ZIndexExpandButton keeps the explorer mini toggle clickable
	ZIndexExpandButton = 110

	// ZIndexStatus is the z-index of the status line
	ZIndexStatus = 500

	// ZIndexOverlay is the z-index for help, logs and the dock menu
	ZIndexOverlay = 1000

	// ZIndexModal is the z-index for confirm and prompt dialogs
	ZIndexModal = 1500

	// ZIndexNotifications is the z-index for notifications
	ZIndexNotifications = 2000
)

// =============================================================================
// Title Bar Glyphs - Nerd Font / Unicode (Default)
// =============================================================================

const (
	// ButtonDockMenu opens the dock position menu
	ButtonDockMenu = " " + string(rune(0xf0c9)) + " "
	// ButtonMinimize collapses the panel to its header
	ButtonMinimize = " " + string(rune(0xf068)) + " "
	// ButtonMaximize fills the viewport
	ButtonMaximize = " " + string(rune(0xf2d0)) + " "
	// ButtonRestore undoes a maximize
	ButtonRestore = " " + string(rune(0xf2d2)) + " "
	// ButtonClose hides the explorer
	ButtonClose = " " + string(rune(0xf00d)) + " "

	// IconFolder marks a directory in the explorer
	IconFolder = string(rune(0xf07b)) + " "
	// IconFile marks a file in the explorer
	IconFile = string(rune(0xf15b)) + " "
	// IconPython marks a .py file in the explorer
	IconPython = string(rune(0xe73c)) + " "
	// IconDirty marks unsaved edits
	IconDirty = "●"
)

// =============================================================================
// Title Bar Glyphs - ASCII Fallback
// =============================================================================

const (
	// ButtonDockMenuASCII is the ASCII fallback for the dock menu button
	ButtonDockMenuASCII = "[=]"
	// ButtonMinimizeASCII is the ASCII fallback for the minimize button
	ButtonMinimizeASCII = "[_]"
	// ButtonMaximizeASCII is the ASCII fallback for the maximize button
	ButtonMaximizeASCII = "[^]"
	// ButtonRestoreASCII is the ASCII fallback for the restore button
	ButtonRestoreASCII = "[v]"
	// ButtonCloseASCII is the ASCII fallback for the close button
	ButtonCloseASCII = "[x]"

	// IconFolderASCII is the ASCII fallback for directories
	IconFolderASCII = "+ "
	// IconFileASCII is the ASCII fallback for files
	IconFileASCII = "  "
	// IconPythonASCII is the ASCII fallback for python files
	IconPythonASCII = "  "
	// IconDirtyASCII is the ASCII fallback for unsaved edits
	IconDirtyASCII = "*"
)

const (
	// ExpandLabelMini is the mini toggle label while the explorer is compact
	ExpandLabelMini = ">>"
	// ExpandLabelFull is the mini toggle label while the explorer is full
	ExpandLabelFull = "<<"
)

// =============================================================================
// Notification Icons (ASCII-safe)
// =============================================================================

const (
	// NotificationIconError is the error notification icon
	NotificationIconError = "[X]"

	// NotificationIconWarning is the warning notification icon
	NotificationIconWarning = "[!]"

	// NotificationIconSuccess is the success notification icon
	NotificationIconSuccess = "[OK]"

	// NotificationIconInfo is the info notification icon
	NotificationIconInfo = "[i]"
)

// =============================================================================
// Runtime Configuration
// =============================================================================

// UseASCIIOnly controls whether to use ASCII fallback characters instead of Nerd Fonts
// Set via --ascii-only command-line flag or appearance.ascii_only config
var UseASCIIOnly = false

// BorderStyle controls which border style to use for panels
// Set via --border-style flag or appearance.border_style config
var BorderStyle = "rounded"

// ShowClock controls whether the status line shows the time
// Set via appearance.show_clock config
var ShowClock = true

// LeaderKey is the prefix key for commands (default: ctrl+b)
// Set via keybindings.leader_key config
var LeaderKey = "ctrl+b"

// GetBorderForStyle returns the lipgloss Border for the current style
func GetBorderForStyle() lipgloss.Border {
	if UseASCIIOnly || BorderStyle == "ascii" {
		return lipgloss.ASCIIBorder()
	}
	switch BorderStyle {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	case "block":
		return lipgloss.BlockBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// BorderStyles lists the accepted appearance.border_style values.
var BorderStyles = []string{"rounded", "normal", "thick", "double", "hidden", "block", "ascii"}

func glyph(unicode, ascii string) string {
	if UseASCIIOnly {
		return ascii
	}
	return unicode
}

// GetButtonDockMenu returns the dock menu button glyph
func GetButtonDockMenu() string { return glyph(ButtonDockMenu, ButtonDockMenuASCII) }

// GetButtonMinimize returns the minimize button glyph
func GetButtonMinimize() string { return glyph(ButtonMinimize, ButtonMinimizeASCII) }

// GetButtonMaximize returns the maximize or restore glyph
func GetButtonMaximize(maximized bool) string {
	if maximized {
		return glyph(ButtonRestore, ButtonRestoreASCII)
	}
	return glyph(ButtonMaximize, ButtonMaximizeASCII)
}

// GetButtonClose returns the close button glyph
func GetButtonClose() string { return glyph(ButtonClose, ButtonCloseASCII) }

// GetEntryIcon returns the explorer icon for an entry
func GetEntryIcon(name string, isDir bool) string {
	switch {
	case isDir:
		return glyph(IconFolder, IconFolderASCII)
	case len(name) > 3 && name[len(name)-3:] == ".py":
		return glyph(IconPython, IconPythonASCII)
	}
	return glyph(IconFile, IconFileASCII)
}

// GetIconDirty returns the unsaved-edits marker
func GetIconDirty() string { return glyph(IconDirty, IconDirtyASCII) }
