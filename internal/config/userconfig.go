package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// configRelPath is the config file location below the XDG config home.
const configRelPath = "pyducation/config.toml"

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Appearance  AppearanceConfig  `toml:"appearance"`
	Layout      LayoutConfig      `toml:"layout"`
	Runtime     RuntimeConfig     `toml:"runtime"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	Theme       string `toml:"theme"`        // Color theme name (e.g., dracula, nord, my-custom-theme)
	BorderStyle string `toml:"border_style"` // Border style: rounded, normal, thick, double, hidden, block, ascii
	ASCIIOnly   bool   `toml:"ascii_only"`   // Use ASCII glyphs instead of Nerd Font icons
	ShowClock   *bool  `toml:"show_clock"`   // Show the clock in the status line (default: true)
}

// LayoutConfig holds the initial panel arrangement
type LayoutConfig struct {
	ReplDock        string `toml:"repl_dock"`        // float, left, right, top, bottom, or a half such as right-top
	ExplorerDock    string `toml:"explorer_dock"`    // Same values as repl_dock
	ExplorerVisible *bool  `toml:"explorer_visible"` // Show the explorer at startup (default: true)
	ExplorerMini    bool   `toml:"explorer_mini"`    // Start the explorer in its compact view
	RememberLayout  *bool  `toml:"remember_layout"`  // Restore the last session's layout (default: true)
}

// RuntimeConfig holds interpreter and persistence settings
type RuntimeConfig struct {
	Python      string `toml:"python"`       // Interpreter binary (default: python3)
	PersistDir  string `toml:"persist_dir"`  // Directory of the /persist store (default: $XDG_DATA_HOME/pyducation)
	ExecTimeout string `toml:"exec_timeout"` // Maximum duration of one run, e.g. 30s; 0 disables the limit
}

// KeybindingsConfig holds all keybinding configurations
type KeybindingsConfig struct {
	LeaderKey string              `toml:"leader_key"` // Leader key for prefix commands (default: ctrl+b)
	Prefix    map[string][]string `toml:"prefix"`     // Actions reached with the leader key
	Direct    map[string][]string `toml:"direct"`     // Actions bound without the leader key
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Appearance: AppearanceConfig{
			BorderStyle: "rounded",
		},
		Layout: LayoutConfig{
			ReplDock:     "right",
			ExplorerDock: "left",
		},
		Runtime: RuntimeConfig{
			Python:      "python3",
			ExecTimeout: DefaultExecTimeout.String(),
		},
		Keybindings: KeybindingsConfig{
			LeaderKey: "ctrl+b",
			Prefix:    defaultPrefixKeybinds(),
			Direct: map[string][]string{
				ActionFocusNext:   {"f2"},
				ActionClearOutput: {"ctrl+l"},
				ActionHelp:        {"f1"},
				ActionQuit:        {"ctrl+q"},
			},
		},
	}
}

func defaultPrefixKeybinds() map[string][]string {
	return map[string][]string{
		ActionDockLeft:        {"h"},
		ActionDockRight:       {"l"},
		ActionDockTop:         {"k"},
		ActionDockBottom:      {"j"},
		ActionDockLeftTop:     {"y"},
		ActionDockLeftBottom:  {"b"},
		ActionDockRightTop:    {"u"},
		ActionDockRightBottom: {"n"},
		ActionDockTopLeft:     {"Y"},
		ActionDockTopRight:    {"U"},
		ActionDockBottomLeft:  {"B"},
		ActionDockBottomRight: {"N"},
		ActionFloat:           {"f"},
		ActionMinimize:        {"m"},
		ActionMaximize:        {"z"},
		ActionToggleExplorer:  {"e"},
		ActionCloseExplorer:   {"x"},
		ActionToggleMini:      {"c"},
		ActionFocusNext:       {"tab", "o"},
		ActionFlush:           {"s"},
		ActionReload:          {"r"},
		ActionWipe:            {"W"},
		ActionToggleLogs:      {"L"},
		ActionHelp:            {"?"},
		ActionQuit:            {"q"},
	}
}

// ShowClockEnabled reports the effective show_clock value.
func (c *UserConfig) ShowClockEnabled() bool {
	return c.Appearance.ShowClock == nil || *c.Appearance.ShowClock
}

// ExplorerVisibleEnabled reports the effective explorer_visible value.
func (c *UserConfig) ExplorerVisibleEnabled() bool {
	return c.Layout.ExplorerVisible == nil || *c.Layout.ExplorerVisible
}

// RememberLayoutEnabled reports the effective remember_layout value.
func (c *UserConfig) RememberLayoutEnabled() bool {
	return c.Layout.RememberLayout == nil || *c.Layout.RememberLayout
}

// ExecTimeoutDuration parses runtime.exec_timeout. Invalid values fall back to
// the default; validation reports them.
func (c *UserConfig) ExecTimeoutDuration() time.Duration {
	if c.Runtime.ExecTimeout == "" {
		return DefaultExecTimeout
	}
	d, err := time.ParseDuration(c.Runtime.ExecTimeout)
	if err != nil || d < 0 {
		return DefaultExecTimeout
	}
	return d
}

// StorePath returns the SQLite file backing /persist.
func (c *UserConfig) StorePath() (string, error) {
	if c.Runtime.PersistDir != "" {
		return filepath.Join(c.Runtime.PersistDir, "persist.db"), nil
	}
	return xdg.DataFile("pyducation/persist.db")
}

// LoadUserConfig loads the user configuration from XDG config directory,
// creating a default file on first run.
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		return createDefaultConfig()
	}

	// #nosec G304 - configPath is from XDG search, reading user config is intentional
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseUserConfig(data)
}

// ParseUserConfig decodes, completes and validates a config document.
// Warnings are printed to stderr; errors fail the load.
func ParseUserConfig(data []byte) (*UserConfig, error) {
	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaultCfg := DefaultConfig()
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingRuntime(&cfg, defaultCfg)
	fillMissingKeybinds(&cfg, defaultCfg)

	validation := ValidateConfig(&cfg)
	if validation.HasErrors() {
		for _, err := range validation.Errors {
			fmt.Fprintf(os.Stderr, "Config error in [%s]: %s - %s\n", err.Field, err.Key, err.Message)
		}
		return nil, fmt.Errorf("configuration has %d error(s), please fix and restart", len(validation.Errors))
	}
	for _, warn := range validation.Warnings {
		fmt.Fprintf(os.Stderr, "Config warning in [%s]: %s - %s\n", warn.Field, warn.Key, warn.Message)
	}
	return &cfg, nil
}

// createDefaultConfig writes the default config file and returns it.
func createDefaultConfig() (*UserConfig, error) {
	configPath, err := xdg.ConfigFile(configRelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	cfg := DefaultConfig()
	if err := WriteUserConfig(configPath, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteUserConfig writes cfg to path with an explanatory header.
func WriteUserConfig(path string, cfg *UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# pyducation configuration\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + path + "\n")
	sb.WriteString("# For keybindings, run: pyducation keybinds list\n")
	sb.WriteString("#\n")
	sb.WriteString("# [appearance]\n")
	sb.WriteString("#   theme: bubbletint theme ID; empty keeps terminal colors.\n")
	sb.WriteString("#          Custom themes: ~/.config/pyducation/themes/*.json\n")
	sb.WriteString("#   border_style: " + strings.Join(BorderStyles, ", ") + "\n")
	sb.WriteString("#\n")
	sb.WriteString("# [layout]\n")
	sb.WriteString("#   repl_dock / explorer_dock: float, left, right, top, bottom,\n")
	sb.WriteString("#     left-top, left-bottom, right-top, right-bottom,\n")
	sb.WriteString("#     top-left, top-right, bottom-left, bottom-right\n")
	sb.WriteString("#   remember_layout: restore the last layout from the state directory\n")
	sb.WriteString("#\n")
	sb.WriteString("# [runtime]\n")
	sb.WriteString("#   exec_timeout: Go duration such as 30s; 0 disables the limit\n\n")
	sb.Write(data)

	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.BorderStyle == "" {
		cfg.Appearance.BorderStyle = defaultCfg.Appearance.BorderStyle
	}
}

func fillMissingRuntime(cfg, defaultCfg *UserConfig) {
	if cfg.Runtime.Python == "" {
		cfg.Runtime.Python = defaultCfg.Runtime.Python
	}
	if cfg.Runtime.ExecTimeout == "" {
		cfg.Runtime.ExecTimeout = defaultCfg.Runtime.ExecTimeout
	}
}

// fillMissingKeybinds fills in any missing keybindings with defaults
func fillMissingKeybinds(cfg, defaultCfg *UserConfig) {
	if cfg.Keybindings.LeaderKey == "" {
		cfg.Keybindings.LeaderKey = defaultCfg.Keybindings.LeaderKey
	}
	if cfg.Keybindings.Prefix == nil {
		cfg.Keybindings.Prefix = make(map[string][]string)
	}
	if cfg.Keybindings.Direct == nil {
		cfg.Keybindings.Direct = make(map[string][]string)
	}
	fillMapDefaults(cfg.Keybindings.Prefix, defaultCfg.Keybindings.Prefix)
	fillMapDefaults(cfg.Keybindings.Direct, defaultCfg.Keybindings.Direct)
}

func fillMapDefaults(target, defaults map[string][]string) {
	for k, v := range defaults {
		if _, exists := target[k]; !exists {
			target[k] = v
		}
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		return xdg.ConfigFile(configRelPath)
	}
	return path, nil
}
