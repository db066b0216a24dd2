package config

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/pyducation/pyducation/internal/dock"
)

// ValidationIssue is one problem found in a config file.
type ValidationIssue struct {
	Field   string
	Key     string
	Message string
}

// ValidationResult collects fatal errors and warnings.
type ValidationResult struct {
	Errors   []ValidationIssue
	Warnings []ValidationIssue
}

// HasErrors reports whether any fatal issue was found.
func (v *ValidationResult) HasErrors() bool { return len(v.Errors) > 0 }

// HasWarnings reports whether any non-fatal issue was found.
func (v *ValidationResult) HasWarnings() bool { return len(v.Warnings) > 0 }

func (v *ValidationResult) errorf(field, key, format string, args ...any) {
	v.Errors = append(v.Errors, ValidationIssue{field, key, fmt.Sprintf(format, args...)})
}

func (v *ValidationResult) warnf(field, key, format string, args ...any) {
	v.Warnings = append(v.Warnings, ValidationIssue{field, key, fmt.Sprintf(format, args...)})
}

// ValidateConfig checks value ranges and keybindings.
func ValidateConfig(cfg *UserConfig) *ValidationResult {
	v := &ValidationResult{}

	if s := cfg.Appearance.BorderStyle; s != "" && !slices.Contains(BorderStyles, s) {
		v.errorf("appearance", "border_style", "unknown style %q", s)
	}

	repl, replErr := dock.ParsePosition(cfg.Layout.ReplDock)
	if replErr != nil {
		v.errorf("layout", "repl_dock", "%v", replErr)
	}
	explorer, explorerErr := dock.ParsePosition(cfg.Layout.ExplorerDock)
	if explorerErr != nil {
		v.errorf("layout", "explorer_dock", "%v", explorerErr)
	}
	if replErr == nil && explorerErr == nil && repl.Docked() && explorer.Docked() {
		re, _ := repl.Edge()
		ee, _ := explorer.Edge()
		if re == ee && (repl == explorer || repl.Full() || explorer.Full()) {
			v.warnf("layout", "explorer_dock", "conflicts with repl_dock %q; the explorer will float", cfg.Layout.ReplDock)
		}
	}

	if s := cfg.Runtime.ExecTimeout; s != "" {
		if d, err := time.ParseDuration(s); err != nil || d < 0 {
			v.errorf("runtime", "exec_timeout", "invalid duration %q", s)
		}
	}

	if _, err := NormalizeKey(cfg.Keybindings.LeaderKey); err != nil {
		v.errorf("keybindings", "leader_key", "%v", err)
	}
	validateKeymap(v, "keybindings.prefix", cfg.Keybindings.Prefix)
	validateKeymap(v, "keybindings.direct", cfg.Keybindings.Direct)
	return v
}

func validateKeymap(v *ValidationResult, field string, binds map[string][]string) {
	names := make([]string, 0, len(binds))
	for name := range binds {
		names = append(names, name)
	}
	sort.Strings(names)

	owner := map[string]string{}
	for _, name := range names {
		if !IsAction(name) {
			v.warnf(field, name, "unknown action")
			continue
		}
		for _, k := range binds[name] {
			nk, err := NormalizeKey(k)
			if err != nil {
				v.errorf(field, name, "%v", err)
				continue
			}
			if prev, ok := owner[nk]; ok && prev != name {
				v.warnf(field, name, "key %q is already bound to %s", nk, prev)
				continue
			}
			owner[nk] = name
		}
	}
}
