package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/pyducation/pyducation/internal/dock"
)

// LayoutStatePath returns where the last session's layout is kept.
func LayoutStatePath() (string, error) {
	return xdg.StateFile("pyducation/layout.toml")
}

// LoadLayout reads a saved layout. A missing file yields (nil, nil).
func LoadLayout(path string) (*dock.Snapshot, error) {
	// #nosec G304 - path is the state file or a user-supplied layout
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	var snap dock.Snapshot
	if err := toml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	return &snap, nil
}

// SaveLayout writes snap to path.
func SaveLayout(path string, snap dock.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	data, err := toml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	return nil
}
