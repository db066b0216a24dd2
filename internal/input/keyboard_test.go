package input

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/pyducation/pyducation/internal/app"
	"github.com/pyducation/pyducation/internal/config"
	"github.com/pyducation/pyducation/internal/dock"
	"github.com/pyducation/pyducation/internal/pyrt"
)

func newDesktop(t *testing.T) *app.Desktop {
	t.Helper()
	return app.NewDesktop(app.Options{Runtime: pyrt.NewMemory(), Width: 120, Height: 41})
}

func text(s string) tea.KeyPressMsg {
	r := []rune(s)
	return tea.KeyPressMsg{Code: r[0], Text: s}
}

var (
	leader    = tea.KeyPressMsg{Code: 'b', Mod: tea.ModCtrl}
	enter     = tea.KeyPressMsg{Code: tea.KeyEnter}
	escape    = tea.KeyPressMsg{Code: tea.KeyEscape}
	tab       = tea.KeyPressMsg{Code: tea.KeyTab}
	down      = tea.KeyPressMsg{Code: tea.KeyDown}
	backspace = tea.KeyPressMsg{Code: tea.KeyBackspace}
)

func typeText(d *app.Desktop, s string) {
	for _, r := range s {
		HandleKeyPress(text(string(r)), d)
	}
}

func TestLeaderDispatch(t *testing.T) {
	tests := []struct {
		name   string
		key    tea.KeyPressMsg
		check  func(d *app.Desktop) bool
		notify bool
	}{
		{
			name:  "dock bottom",
			key:   text("j"),
			check: func(d *app.Desktop) bool { return d.Session.Assignment(dock.REPL) == dock.Bottom },
		},
		{
			name:  "float",
			key:   text("f"),
			check: func(d *app.Desktop) bool { return d.Session.Assignment(dock.REPL) == dock.Float },
		},
		{
			name:  "toggle help",
			key:   text("?"),
			check: func(d *app.Desktop) bool { return d.ShowHelp },
		},
		{
			name:  "focus next",
			key:   tab,
			check: func(d *app.Desktop) bool { return d.Focused == dock.Explorer },
		},
		{
			name:  "close explorer",
			key:   text("x"),
			check: func(d *app.Desktop) bool { return !d.Explorer.Visible() },
		},
		{
			name:   "unbound key",
			key:    text("g"),
			check:  func(d *app.Desktop) bool { return d.Repl.Input.Value() == "" },
			notify: true,
		},
		{
			name:  "escape cancels",
			key:   escape,
			check: func(d *app.Desktop) bool { return len(d.Notifications) == 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDesktop(t)
			HandleKeyPress(leader, d)
			if !d.PrefixActive {
				t.Fatal("leader did not arm prefix mode")
			}
			HandleKeyPress(tt.key, d)
			if d.PrefixActive {
				t.Error("prefix mode still armed")
			}
			if !tt.check(d) {
				t.Errorf("%q after the leader had no effect", tt.key.String())
			}
			if got := len(d.Notifications) > 0; got != tt.notify {
				t.Errorf("notified = %v, want %v", got, tt.notify)
			}
		})
	}
}

func TestDirectBindings(t *testing.T) {
	d := newDesktop(t)
	HandleKeyPress(tea.KeyPressMsg{Code: tea.KeyF2}, d)
	if d.Focused != dock.Explorer {
		t.Errorf("Focused = %v after f2, want explorer", d.Focused)
	}
	HandleKeyPress(tea.KeyPressMsg{Code: tea.KeyF1}, d)
	if !d.ShowHelp {
		t.Error("f1 did not open help")
	}
	HandleKeyPress(escape, d)
	if d.ShowHelp {
		t.Error("esc did not close help")
	}
}

func TestClearOutputBinding(t *testing.T) {
	d := newDesktop(t)
	for i := range 5 {
		d.Repl.Append(app.LineStdout, string(rune('a'+i)))
	}
	d.Repl.ScrollBy(3)
	typeText(d, "x")

	HandleKeyPress(tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl}, d)
	if len(d.Repl.Output) != 0 || d.Repl.Scroll != 0 {
		t.Errorf("after ctrl+l: %d lines, scroll %d, want an empty transcript", len(d.Repl.Output), d.Repl.Scroll)
	}
	if got := d.Repl.Input.Value(); got != "x" {
		t.Errorf("input = %q, want it kept", got)
	}

	d.Repl.Append(app.LineStdout, "again")
	if _, ok := GetDispatcher().Dispatch(config.ActionClearOutput, d); !ok {
		t.Fatal("clear_output has no handler")
	}
	if len(d.Repl.Output) != 0 {
		t.Error("dispatching clear_output left output behind")
	}
}

func TestReplTyping(t *testing.T) {
	d := newDesktop(t)
	typeText(d, "1 + 1")
	if got := d.Repl.Input.Value(); got != "1 + 1" {
		t.Fatalf("input = %q, want %q", got, "1 + 1")
	}
	HandleKeyPress(backspace, d)
	HandleKeyPress(text("2"), d)
	HandleKeyPress(enter, d)

	if got := d.Repl.Input.Value(); got != "" {
		t.Errorf("input = %q after enter, want empty", got)
	}
	if len(d.Repl.Output) == 0 || d.Repl.Output[0].Text != ">>> 1 + 2" {
		t.Errorf("transcript = %v, want the echoed input first", d.Repl.Output)
	}
	HandleKeyPress(tea.KeyPressMsg{Code: tea.KeyUp}, d)
	if got := d.Repl.Input.Value(); got != "1 + 2" {
		t.Errorf("input after up = %q, want the last snippet", got)
	}
}

func TestReplBlockContinuation(t *testing.T) {
	d := newDesktop(t)
	typeText(d, "if x:")
	HandleKeyPress(enter, d)
	if got := d.Repl.Input.Value(); got != "if x:\n    " {
		t.Fatalf("input = %q, want an indented continuation line", got)
	}
	typeText(d, "pass")
	HandleKeyPress(enter, d)
	if got := d.Repl.Input.Value(); got != "if x:\n    pass\n    " {
		t.Fatalf("input = %q, want another continuation line", got)
	}
	HandleKeyPress(tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModCtrl}, d)
	if got := d.Repl.Input.Value(); got != "" {
		t.Errorf("input = %q after ctrl+enter, want empty", got)
	}
}

func TestNeedsContinuation(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"print(1)", false},
		{"for i in range(3):", true},
		{"x = 1 + \\", true},
		{"def f():\n\treturn 1", true},
		{"def f():\n\treturn 1\n", false},
		{"def f():\n\treturn 1\n\t", false},
	}
	for _, tt := range tests {
		if got := needsContinuation(tt.code); got != tt.want {
			t.Errorf("needsContinuation(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestReplTabs(t *testing.T) {
	d := newDesktop(t)
	HandleKeyPress(tab, d)
	HandleKeyPress(tab, d)
	HandleKeyPress(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}, d)
	if got := d.Repl.Input.Value(); got != "    " {
		t.Errorf("input = %q, want one indent level", got)
	}
}

func TestConfirmModalKeys(t *testing.T) {
	d := newDesktop(t)
	d.ConfirmWipe()

	HandleKeyPress(text("j"), d)
	if d.Session.Assignment(dock.REPL) != dock.Right {
		t.Error("key leaked past the modal")
	}
	HandleKeyPress(tab, d)
	if d.Modal.Selection != 1 {
		t.Errorf("Selection = %d after tab, want 1", d.Modal.Selection)
	}
	HandleKeyPress(text("n"), d)
	if d.Modal != nil {
		t.Error("modal still open after n")
	}
}

func TestPromptModalKeys(t *testing.T) {
	d := newDesktop(t)
	var got string
	d.Prompt("Name", "", "a", func(_ *app.Desktop, v string) tea.Cmd {
		got = v
		return nil
	})
	typeText(d, "b.py")
	HandleKeyPress(enter, d)
	if got != "ab.py" {
		t.Errorf("submitted %q, want %q", got, "ab.py")
	}
	if d.Modal != nil {
		t.Error("prompt still open")
	}
}

func TestDockMenuKeys(t *testing.T) {
	d := newDesktop(t)
	d.OpenDockMenu(dock.REPL, 70, 1)
	start := d.DockMenu.Cursor
	HandleKeyPress(down, d)
	want := app.DockMenuItems()[start+1]
	HandleKeyPress(enter, d)
	if d.DockMenu != nil {
		t.Fatal("menu still open")
	}
	if got := d.Session.Assignment(dock.REPL); got != want {
		t.Errorf("REPL assignment = %v, want %v", got, want)
	}
}

func TestExplorerFilterKeys(t *testing.T) {
	rt := pyrt.NewMemory()
	d := app.NewDesktop(app.Options{Runtime: rt, Width: 120, Height: 41})
	d.Focus(dock.Explorer)

	HandleKeyPress(text("/"), d)
	if !d.Explorer.Filtering {
		t.Fatal("/ did not start filtering")
	}
	typeText(d, "ab")
	if got := d.Explorer.Model.Filter; got != "ab" {
		t.Errorf("Filter = %q, want %q", got, "ab")
	}
	HandleKeyPress(backspace, d)
	if got := d.Explorer.Model.Filter; got != "a" {
		t.Errorf("Filter = %q, want %q", got, "a")
	}
	HandleKeyPress(escape, d)
	if d.Explorer.Filtering || d.Explorer.Model.Filter != "" {
		t.Errorf("filter not cleared: filtering=%v filter=%q", d.Explorer.Filtering, d.Explorer.Model.Filter)
	}
}

func TestExplorerEditorKeys(t *testing.T) {
	rt := pyrt.NewMemory()
	if err := rt.WriteFile(context.Background(), "/persist/a.py", []byte("if x:")); err != nil {
		t.Fatal(err)
	}
	d := app.NewDesktop(app.Options{Runtime: rt, Width: 120, Height: 41})
	d.Focus(dock.Explorer)
	for i, e := range d.Explorer.Model.Entries {
		if e.Name == "a.py" {
			d.Explorer.Model.Cursor = i
		}
	}
	d.ExplorerOpen()
	if !d.Explorer.EditorFocused {
		t.Fatal("editor not focused after opening a.py")
	}

	HandleKeyPress(tea.KeyPressMsg{Code: tea.KeyEnd}, d)
	HandleKeyPress(enter, d)
	typeText(d, "pass")
	if got := d.Explorer.Model.Buffer; got != "if x:\n    pass" {
		t.Errorf("Buffer = %q, want an indented block body", got)
	}
	if !d.Explorer.Model.Dirty {
		t.Error("edits did not mark the buffer dirty")
	}

	HandleKeyPress(tea.KeyPressMsg{Code: tea.KeyHome}, d)
	HandleKeyPress(tab, d)
	HandleKeyPress(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}, d)
	if got := d.Explorer.Model.Buffer; got != "if x:\n    pass" {
		t.Errorf("Buffer = %q after tab and shift+tab, want it unchanged", got)
	}

	HandleKeyPress(escape, d)
	if d.Explorer.EditorFocused {
		t.Error("esc did not leave the editor")
	}
}
