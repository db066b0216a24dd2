package theme

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	tint "github.com/lrstanley/bubbletint/v2"
)

func writeTheme(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCustomThemeFile(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		body     string
		wantID   string
		wantName string
		wantErr  bool
	}{
		{"explicit id", "x.json", `{"id": "classroom", "display_name": "Classroom", "fg": "#c0c0c0"}`, "classroom", "Classroom", false},
		{"id from filename", "Chalk-Board.json", `{"bg": "#101010"}`, "chalk-board", "chalk-board", false},
		{"invalid json", "bad.json", `{{{`, "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTheme(t, t.TempDir(), tt.file, tt.body)
			th, err := LoadCustomThemeFile(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadCustomThemeFile: %v", err)
			}
			if th.ID != tt.wantID || th.DisplayName != tt.wantName {
				t.Errorf("ID/DisplayName = %q/%q, want %q/%q", th.ID, th.DisplayName, tt.wantID, tt.wantName)
			}
		})
	}
}

func TestFillDefaults(t *testing.T) {
	th := &tint.Tint{Fg: tint.FromHex("#c0c0c0"), Red: tint.FromHex("#ff0000")}
	fillDefaults(th)

	for name, c := range map[string]*tint.Color{
		"Bg": th.Bg, "Cursor": th.Cursor, "Black": th.Black, "Cyan": th.Cyan,
		"BrightRed": th.BrightRed, "BrightWhite": th.BrightWhite,
	} {
		if c == nil {
			t.Errorf("%s not filled", name)
		}
	}
	if !sameRGB(th.Cursor, th.Fg) {
		t.Errorf("Cursor = %+v, want Fg %+v", *th.Cursor, *th.Fg)
	}
	if th.Cursor == th.Fg {
		t.Error("Cursor should be a copy, not an alias of Fg")
	}
	if !sameRGB(th.BrightRed, th.Red) {
		t.Errorf("BrightRed = %+v, want Red %+v", *th.BrightRed, *th.Red)
	}
}

func TestLoadCustomThemes(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "pyducation-test-unique.json", `{"fg": "#ffffff", "bg": "#000000"}`)
	writeTheme(t, dir, "broken.json", `nope`)
	writeTheme(t, dir, "notes.md", `not a theme`)
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	tint.NewDefaultRegistry()
	loaded, err := LoadCustomThemes(dir)
	if err != nil {
		t.Fatalf("LoadCustomThemes: %v", err)
	}
	if !slices.Equal(loaded, []string{"pyducation-test-unique"}) {
		t.Errorf("loaded = %v", loaded)
	}
	if !slices.Contains(tint.TintIDs(), "pyducation-test-unique") {
		t.Error("custom theme not registered")
	}

	if _, err := LoadCustomThemes(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for a missing directory")
	}
}

func sameRGB(a, b *tint.Color) bool {
	return a.R == b.R && a.G == b.G && a.B == b.B
}
