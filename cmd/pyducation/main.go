// Package main implements pyducation, a terminal Python playground: a REPL
// and a file explorer in two panels that dock to the screen edges.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode   bool
	cpuProfile  string
	asciiOnly   bool
	themeName   string
	borderStyle string
	pythonBin   string
	persistDir  string
	noRestore   bool
	scriptPath  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pyducation",
		Short: "Terminal Python playground",
		Long: `pyducation - a Python REPL and file explorer in your terminal

The REPL and the explorer are panels that float or dock to any screen edge
or half edge. Files under /persist survive restarts; /tmp does not.`,
		Example: `  # Run pyducation
  pyducation

  # Use a specific interpreter
  pyducation --python python3.12

  # Run with a theme
  pyducation --theme dracula

  # Start from the configured layout instead of the last one
  pyducation --no-restore

  # Arrange the panels with a script once the screen is ready
  pyducation --script layout.tape

  # Check a layout script without starting the UI
  pyducation layout play layout.tape`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Write a debug log to the state directory")
	rootCmd.PersistentFlags().StringVar(&cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII characters instead of Nerd Font icons")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight). Leave empty to use standard terminal colors")
	rootCmd.PersistentFlags().StringVar(&borderStyle, "border-style", "", "Panel border style: rounded, normal, thick, double, hidden, block, ascii (default: from config or rounded)")
	rootCmd.Flags().StringVar(&pythonBin, "python", "", "Python interpreter (default: from config or python3)")
	rootCmd.Flags().StringVar(&persistDir, "persist-dir", "", "Directory of the /persist store (default: from config or $XDG_DATA_HOME/pyducation)")
	rootCmd.Flags().BoolVar(&noRestore, "no-restore", false, "Ignore the layout saved by the last session")
	rootCmd.Flags().StringVar(&scriptPath, "script", "", "Layout script to play once the screen is ready")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage pyducation configuration",
		Long:  `Manage the pyducation configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the pyducation configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	var resetYes bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the pyducation configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetConfigToDefaults(resetYes)
		},
	}
	configResetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Do not ask for confirmation")

	configValidateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration file",
		RunE: func(_ *cobra.Command, _ []string) error {
			return validateConfigFile()
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd, configValidateCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all configured keybindings in a formatted table`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listKeybindings()
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd)

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "List available color themes",
		RunE: func(_ *cobra.Command, _ []string) error {
			return listThemes()
		},
	}

	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "Check and run layout scripts",
		Long: `Layout scripts drive the docking engine one command per line:

  Viewport 120 40
  Dock repl right-bottom
  Split right 0 12
  Expect explorer 0 0 60 40

Run them headless with 'play' or in the UI with --script.`,
	}

	var playWidth, playHeight int
	var playPixels bool
	layoutPlayCmd := &cobra.Command{
		Use:   "play <file.tape>",
		Short: "Run a layout script without a screen",
		Long: `Play a layout script against a headless session and print the
final layout. Expect failures stop playback with a non-zero exit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return playLayout(cmd.Context(), args[0], playWidth, playHeight, playPixels)
		},
	}
	layoutPlayCmd.Flags().IntVar(&playWidth, "width", 0, "Viewport width when the script sets none (default: terminal width)")
	layoutPlayCmd.Flags().IntVar(&playHeight, "height", 0, "Viewport height when the script sets none (default: terminal height)")
	layoutPlayCmd.Flags().BoolVar(&playPixels, "pixels", false, "Use pixel metrics instead of terminal cells")

	layoutValidateCmd := &cobra.Command{
		Use:   "validate <file.tape>",
		Short: "Validate a layout script without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return validateLayoutFile(args[0])
		},
	}

	layoutShowCmd := &cobra.Command{
		Use:   "saved",
		Short: "Print the layout saved by the last session",
		RunE: func(_ *cobra.Command, _ []string) error {
			return showSavedLayout()
		},
	}

	layoutCmd.AddCommand(layoutPlayCmd, layoutValidateCmd, layoutShowCmd)

	rootCmd.AddCommand(configCmd, keybindsCmd, themesCmd, layoutCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
