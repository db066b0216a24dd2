package tape

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pyducation/pyducation/internal/dock"
	"github.com/pyducation/pyducation/internal/drag"
	"github.com/pyducation/pyducation/internal/geom"
)

func run(t *testing.T, script string) (*SessionExecutor, string, error) {
	t.Helper()
	cmds, err := ParseString(script)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	se := NewSessionExecutor(dock.PixelMetrics())
	var out bytes.Buffer
	ce := NewCommandExecutor(se, &out)
	ce.SetSleep(func(context.Context, time.Duration) error { return nil })
	err = ce.Run(context.Background(), cmds)
	return se, out.String(), err
}

func TestRunScripts(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"dock bottom", `
Viewport 1200 800
Dock repl bottom
Expect repl 0 400 1200 400
`},
		{"split bottom edge", `
Viewport 1200 800
Dock repl bottom-left
Dock explorer bottom-right
Expect repl 0 400 600 400
Expect explorer 600 400 600 400
Split bottom 900 0
Expect repl 0 400 880 400
Expect explorer 880 400 320 400
`},
		{"move and resize floating", `
Viewport 1200 800
Expect repl 462 254 720 528
Move repl -100 -50
Expect repl 362 204 720 528
Resize repl se 100 50
Expect repl 362 204 820 578
`},
		{"maximize then restore", `
Viewport 1200 800
Maximize repl
Expect repl 0 0 1200 800
Maximize repl
Expect repl 462 254 720 528
`},
		{"minimize docked bottom", `
Viewport 1200 800
Dock repl bottom
Minimize repl
Expect repl 0 764 1200 36
`},
		{"sleep is skipped", `
Viewport 1200 800
Sleep 5s
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := run(t, tt.script); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
		})
	}
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name   string
		script string
		line   int
		is     error
	}{
		{"expect mismatch", "Viewport 1200 800\nExpect repl 0 0 1 1", 2, nil},
		{"expect hidden", "Viewport 1200 800\nHide repl\nExpect repl 0 0 1 1", 3, nil},
		{"move docked", "Viewport 1200 800\nDock repl left\nMove repl 5 5", 3, ErrRefused},
		{"split without halves", "Viewport 1200 800\nSplit bottom 10 10", 2, ErrRefused},
		{"bad number", "Viewport wide 800", 1, nil},
		{"bad handle", "Viewport 1200 800\nResize repl up 1 1", 2, nil},
		{"bad position", "Viewport 1200 800\nDock repl middle", 2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.script)
			var le *LineError
			if !errors.As(err, &le) {
				t.Fatalf("error = %v, want *LineError", err)
			}
			if le.Line != tt.line {
				t.Errorf("Line = %d, want %d", le.Line, tt.line)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestPrint(t *testing.T) {
	_, out, err := run(t, "Viewport 1200 800\nDock repl bottom-left\nHide explorer\nPrint")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, want := range []string{"PANEL", "repl", "bottom-left", "0,400 600x400", "docked", "hidden", "edge bottom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunCancelled(t *testing.T) {
	cmds, _ := ParseString("Viewport 10 10")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewCommandExecutor(NewSessionExecutor(dock.CellMetrics()), nil).Run(ctx, cmds)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestHandlePoint(t *testing.T) {
	r := geom.Rect{X: 10, Y: 20, W: 100, H: 50}
	tests := []struct {
		dir  string
		x, y int
	}{
		{"nw", 10, 20},
		{"se", 109, 69},
		{"e", 109, 45},
		{"n", 60, 20},
	}
	for _, tt := range tests {
		x, y := handlePoint(r, drag.ParseDir(tt.dir))
		if x != tt.x || y != tt.y {
			t.Errorf("handlePoint(%s) = (%d, %d), want (%d, %d)", tt.dir, x, y, tt.x, tt.y)
		}
	}
}
