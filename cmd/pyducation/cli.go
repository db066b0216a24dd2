package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/colorprofile"
	"golang.org/x/term"

	"github.com/pyducation/pyducation/internal/config"
	"github.com/pyducation/pyducation/internal/dock"
	"github.com/pyducation/pyducation/internal/tape"
	"github.com/pyducation/pyducation/internal/theme"
)

// stdout downsamples styled output to what the terminal supports.
func stdout() *colorprofile.Writer {
	return colorprofile.NewWriter(os.Stdout, os.Environ())
}

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

func findEditor() (string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := os.Getenv(env); e != "" {
			return e, nil
		}
	}
	for _, e := range []string{"vim", "vi", "nano", "emacs"} {
		if _, err := exec.LookPath(e); err == nil {
			return e, nil
		}
	}
	return "", errors.New("no editor found: set $EDITOR")
}

func editConfigFile() error {
	// Loading creates the file on first use.
	if _, err := config.LoadUserConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	editor, err := findEditor()
	if err != nil {
		return err
	}
	args := strings.Fields(editor)
	// #nosec G204 - the editor comes from the user's environment
	cmd := exec.Command(args[0], append(args[1:], path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}
	return validateConfigFile()
}

func resetConfigToDefaults(yes bool) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	if !yes {
		fmt.Printf("Overwrite %s with the defaults? [y/N] ", path)
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Println("Cancelled")
			return nil
		}
	}
	if err := config.WriteUserConfig(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("Configuration reset: %s\n", path)
	return nil
}

func validateConfigFile() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	// #nosec G304 - path is the XDG config file
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Printf("%s does not exist; defaults are used\n", path)
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := config.ParseUserConfig(data); err != nil {
		return err
	}
	fmt.Printf("%s is valid\n", path)
	return nil
}

// styledTable returns a table in the CLI colors of the current theme.
func styledTable(headers ...string) *table.Table {
	header := lipgloss.NewStyle().Foreground(theme.CLITableHeader()).Bold(true).Padding(0, 1)
	key := lipgloss.NewStyle().Foreground(theme.CLITableKey()).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Headers(headers...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableDim())).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 0:
				return key
			default:
				return cell
			}
		})
}

func loadConfigForCLI() *config.UserConfig {
	cfg, err := config.LoadUserConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; showing defaults\n", err)
		cfg = config.DefaultConfig()
	}
	config.ApplyOverrides(config.Overrides{ThemeName: themeName}, cfg)
	return cfg
}

func listKeybindings() error {
	cfg := loadConfigForCLI()
	registry := config.NewKeybindRegistry(cfg)
	w := stdout()

	dim := lipgloss.NewStyle().Foreground(theme.CLITableDim())
	fmt.Fprintln(w, dim.Render("Leader: "+registry.Leader()+"  (prefix actions are pressed after the leader)"))
	for _, section := range config.GetKeybindings(registry) {
		t := styledTable("AFTER LEADER", "DIRECT", section.Title)
		for _, b := range section.Bindings {
			t.Row(b.Key, b.Direct, b.Description)
		}
		fmt.Fprintln(w, t.Render())
	}
	return nil
}

func listThemes() error {
	for _, id := range theme.Available() {
		fmt.Println(id)
	}
	return nil
}

// terminalSize returns the size of stdout, or the fallback when it is not a
// terminal.
func terminalSize() (int, int) {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	return config.DefaultTerminalWidth, config.DefaultTerminalHeight
}

func readScript(path string) ([]tape.Command, error) {
	cmds, err := loadScript(path)
	if err != nil {
		return nil, err
	}
	if len(cmds) == 0 {
		return nil, fmt.Errorf("%s: no commands", path)
	}
	return cmds, nil
}

func validateLayoutFile(path string) error {
	cmds, err := readScript(path)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d commands OK\n", path, len(cmds))
	return nil
}

// playLayout runs a script headless. Panels start floating; a script that
// does not open with Viewport gets the terminal size.
func playLayout(ctx context.Context, path string, width, height int, pixels bool) error {
	cmds, err := readScript(path)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	metrics := dock.CellMetrics()
	if pixels {
		metrics = dock.PixelMetrics()
	}
	se := tape.NewSessionExecutor(metrics)
	if cmds[0].Type != tape.CommandTypeViewport {
		w, h := terminalSize()
		if width > 0 {
			w = width
		}
		if height > 0 {
			h = height
		}
		if err := se.SetViewport(w, h); err != nil {
			return err
		}
	}

	if err := tape.NewCommandExecutor(se, os.Stdout).Run(ctx, cmds); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Print(tape.FormatLayout(se.Session))
	return nil
}

func showSavedLayout() error {
	path, err := config.LayoutStatePath()
	if err != nil {
		return err
	}
	snap, err := config.LoadLayout(path)
	if err != nil {
		return err
	}
	if snap == nil {
		fmt.Printf("No saved layout at %s\n", path)
		return nil
	}

	loadConfigForCLI()
	w := stdout()
	fmt.Fprintln(w, path)
	panels := styledTable("PANEL", "DOCK", "VISIBLE", "MINIMIZED", "MINI", "FLOAT")
	for _, p := range snap.Panels {
		pos := p.Dock
		if parsed, err := dock.ParsePosition(p.Dock); err == nil {
			pos = parsed.String()
		}
		float := "-"
		if len(p.Float) == 4 {
			float = fmt.Sprintf("%d,%d %dx%d", p.Float[0], p.Float[1], p.Float[2], p.Float[3])
		}
		panels.Row(p.Name, pos, yesNo(p.Visible), yesNo(p.Minimized), yesNo(p.Mini), float)
	}
	fmt.Fprintln(w, panels.Render())

	groups := styledTable("EDGE", "EXTENT", "SPLIT")
	for _, g := range snap.Groups {
		groups.Row(g.Edge, fmt.Sprint(g.Extent), fmt.Sprintf("%.4f", g.Split))
	}
	fmt.Fprintln(w, groups.Render())
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
