package config

import (
	"log"

	"github.com/pyducation/pyducation/internal/theme"
)

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// ASCIIOnly uses ASCII characters instead of Nerd Font icons
	ASCIIOnly bool

	// BorderStyle overrides the panel border style
	BorderStyle string

	// ThemeName is the theme to load
	ThemeName string

	// Python overrides the interpreter binary
	Python string

	// PersistDir overrides the directory of the /persist store
	PersistDir string

	// NoRestore starts from the configured layout instead of the saved one
	NoRestore bool
}

// ApplyOverrides applies CLI flag overrides to global config, falling back to user config defaults.
// Runtime and layout overrides are written into userConfig. If userConfig is
// nil, only CLI flag values (when set) are applied.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) {
	UseASCIIOnly = overrides.ASCIIOnly || (userConfig != nil && userConfig.Appearance.ASCIIOnly)

	if overrides.BorderStyle != "" {
		BorderStyle = overrides.BorderStyle
	} else if userConfig != nil && userConfig.Appearance.BorderStyle != "" {
		BorderStyle = userConfig.Appearance.BorderStyle
	}

	if userConfig != nil {
		ShowClock = userConfig.ShowClockEnabled()
		if userConfig.Keybindings.LeaderKey != "" {
			LeaderKey = userConfig.Keybindings.LeaderKey
		}
		if overrides.Python != "" {
			userConfig.Runtime.Python = overrides.Python
		}
		if overrides.PersistDir != "" {
			userConfig.Runtime.PersistDir = overrides.PersistDir
		}
		if overrides.NoRestore {
			remember := false
			userConfig.Layout.RememberLayout = &remember
		}
	}

	themeName := overrides.ThemeName
	if themeName == "" && userConfig != nil {
		themeName = userConfig.Appearance.Theme
	}
	if err := theme.Initialize(themeName); err != nil {
		log.Printf("Warning: Failed to load theme '%s': %v", themeName, err)
	}
}
