package app

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/pyducation/pyducation/internal/config"
	"github.com/pyducation/pyducation/internal/dock"
	"github.com/pyducation/pyducation/internal/pyrt"
	"github.com/pyducation/pyducation/internal/tape"
)

func newTestDesktop(t *testing.T, rt *pyrt.Memory) *Desktop {
	t.Helper()
	if rt == nil {
		rt = pyrt.NewMemory()
	}
	return NewDesktop(Options{Runtime: rt, Width: 120, Height: 41})
}

func lastLine(d *Desktop) string {
	if len(d.Repl.Output) == 0 {
		return ""
	}
	return d.Repl.Output[len(d.Repl.Output)-1].Text
}

func transcript(d *Desktop) string {
	var lines []string
	for _, l := range d.Repl.Output {
		lines = append(lines, l.Text)
	}
	return strings.Join(lines, "\n")
}

func TestInitialLayout(t *testing.T) {
	d := newTestDesktop(t, nil)

	if got := d.Viewport(); got.W != 120 || got.H != 40 {
		t.Fatalf("Viewport() = %v, want 120x40", got)
	}
	if got := d.Session.Assignment(dock.REPL); got != dock.Right {
		t.Errorf("REPL assignment = %v, want %v", got, dock.Right)
	}
	if got := d.Session.Assignment(dock.Explorer); got != dock.Left {
		t.Errorf("explorer assignment = %v, want %v", got, dock.Left)
	}
	repl, exp := d.Repl.Rect(), d.Explorer.Rect()
	if !repl.Intersect(exp).Empty() {
		t.Errorf("panels overlap: %v and %v", repl, exp)
	}
	if exp.X != 0 || repl.Right() != 120 {
		t.Errorf("panels not at the edges: explorer %v, REPL %v", exp, repl)
	}
}

func TestInitialLayoutFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	hidden := false
	cfg.Layout.ExplorerVisible = &hidden
	cfg.Layout.ReplDock = "bottom"
	d := NewDesktop(Options{Runtime: pyrt.NewMemory(), Config: cfg, Width: 120, Height: 41})

	if d.Explorer.Visible() {
		t.Error("explorer visible, want hidden")
	}
	if got := d.Session.Assignment(dock.REPL); got != dock.Bottom {
		t.Errorf("REPL assignment = %v, want %v", got, dock.Bottom)
	}
	if got := d.Order(); len(got) != 1 || got[0] != dock.REPL {
		t.Errorf("Order() = %v, want [repl]", got)
	}
}

func TestLayoutIsDeferredUntilResize(t *testing.T) {
	d := NewDesktop(Options{Runtime: pyrt.NewMemory()})
	if got := d.Session.Assignment(dock.REPL); got != dock.Float {
		t.Fatalf("REPL assignment before resize = %v, want float", got)
	}
	d.Resize(120, 41)
	if got := d.Session.Assignment(dock.REPL); got != dock.Right {
		t.Errorf("REPL assignment after resize = %v, want right", got)
	}
}

func TestSaveAndRestoreLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.toml")

	d := NewDesktop(Options{Runtime: pyrt.NewMemory(), LayoutPath: path, Width: 120, Height: 41})
	d.Focus(dock.REPL)
	d.DockFocused(dock.BottomLeft)
	if err := d.SaveLayout(); err != nil {
		t.Fatalf("SaveLayout() error = %v", err)
	}

	restored := NewDesktop(Options{Runtime: pyrt.NewMemory(), LayoutPath: path, Restore: true, Width: 120, Height: 41})
	if got := restored.Session.Assignment(dock.REPL); got != dock.BottomLeft {
		t.Errorf("restored REPL assignment = %v, want %v", got, dock.BottomLeft)
	}
	if restored.Repl.Rect() != d.Repl.Rect() {
		t.Errorf("restored REPL rect = %v, want %v", restored.Repl.Rect(), d.Repl.Rect())
	}
}

func TestFocusAndClose(t *testing.T) {
	d := newTestDesktop(t, nil)

	d.FocusNext()
	if d.Focused != dock.Explorer {
		t.Fatalf("Focused = %v, want explorer", d.Focused)
	}
	if got := d.Order(); got[0] != dock.Explorer {
		t.Errorf("Order()[0] = %v, want explorer", got[0])
	}

	d.ClosePanel(dock.Explorer)
	if d.Explorer.Visible() || d.Focused != dock.REPL {
		t.Errorf("after close: visible=%v focused=%v", d.Explorer.Visible(), d.Focused)
	}
	if got := d.Session.Assignment(dock.Explorer); got != dock.Left {
		t.Errorf("closed explorer assignment = %v, want left", got)
	}

	d.ClosePanel(dock.REPL)
	if !d.Repl.Visible() {
		t.Error("REPL was closed")
	}
	if len(d.Notifications) == 0 {
		t.Error("closing the REPL did not notify")
	}

	d.ToggleExplorer()
	if !d.Explorer.Visible() || d.Focused != dock.Explorer {
		t.Errorf("after toggle: visible=%v focused=%v", d.Explorer.Visible(), d.Focused)
	}
}

func TestRunInputNotReady(t *testing.T) {
	d := newTestDesktop(t, nil)
	d.Repl.Input.SetValue("1 + 1")

	if cmd := d.RunInput(); cmd != nil {
		t.Error("RunInput() returned a command while not ready")
	}
	want := []string{">>> 1 + 1", "runtime not ready yet..."}
	if got := transcript(d); got != strings.Join(want, "\n") {
		t.Errorf("transcript = %q, want %q", got, want)
	}
	if d.Repl.Input.Value() != "" {
		t.Errorf("input = %q, want empty", d.Repl.Input.Value())
	}
	if len(d.Repl.History) != 1 {
		t.Errorf("history = %v, want one entry", d.Repl.History)
	}
}

func TestRunInput(t *testing.T) {
	rt := pyrt.NewMemory()
	rt.SetReady(true)
	rt.Exec = func(code string) (pyrt.Output, error) {
		return pyrt.Output{Stdout: "2\n"}, nil
	}
	d := newTestDesktop(t, rt)
	d.Repl.Input.SetValue("x = 1\nx + 1")

	cmd := d.RunInput()
	if cmd == nil {
		t.Fatal("RunInput() = nil, want a command")
	}
	if !d.Repl.Running {
		t.Error("Running = false while executing")
	}
	if again := d.RunInput(); again != nil {
		t.Error("second RunInput() while running returned a command")
	}

	msg, ok := cmd().(ExecResultMsg)
	if !ok {
		t.Fatalf("command returned %T, want ExecResultMsg", cmd())
	}
	d.Update(msg)

	want := ">>> x = 1\n... x + 1\n2"
	if got := transcript(d); got != want {
		t.Errorf("transcript = %q, want %q", got, want)
	}
	if d.Repl.Running {
		t.Error("Running = true after result")
	}
	if rt.Flushes() != 1 {
		t.Errorf("Flushes() = %d, want 1", rt.Flushes())
	}
}

func TestExecResultReporting(t *testing.T) {
	tests := []struct {
		name string
		msg  ExecResultMsg
		want []LineKind
		last string
	}{
		{
			name: "traceback",
			msg:  ExecResultMsg{Output: pyrt.Output{Stdout: "a", Traceback: "Traceback\nZeroDivisionError"}},
			want: []LineKind{LineStdout, LineTraceback, LineTraceback},
			last: "ZeroDivisionError",
		},
		{
			name: "error",
			msg:  ExecResultMsg{Err: errors.New("interpreter exited")},
			want: []LineKind{LineStderr},
			last: "interpreter exited",
		},
		{
			name: "flush failure",
			msg:  ExecResultMsg{Output: pyrt.Output{Stderr: "warn"}, FlushErr: errors.New("disk full")},
			want: []LineKind{LineStderr, LineSystem, LineSystem},
			last: "disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDesktop(t, nil)
			d.Repl.Running = true
			d.Update(tt.msg)

			if len(d.Repl.Output) != len(tt.want) {
				t.Fatalf("output = %v, want %d lines", d.Repl.Output, len(tt.want))
			}
			for i, k := range tt.want {
				if d.Repl.Output[i].Kind != k {
					t.Errorf("line %d kind = %v, want %v", i, d.Repl.Output[i].Kind, k)
				}
			}
			if got := lastLine(d); got != tt.last {
				t.Errorf("last line = %q, want %q", got, tt.last)
			}
		})
	}
}

func TestPersistMessages(t *testing.T) {
	tests := []struct {
		op   string
		fail bool
		want string
	}{
		{"flush", false, "[persist] flushed"},
		{"reload", false, "[persist] reloaded"},
		{"wipe", false, "[persist] wiped"},
		{"reload", true, "[persist] reload failed:\nboom"},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			rt := pyrt.NewMemory()
			if tt.fail {
				rt.Fail[tt.op] = errors.New("boom")
			}
			d := newTestDesktop(t, rt)
			d.Update(d.Persist(tt.op)())

			if got := transcript(d); got != tt.want {
				t.Errorf("transcript = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfirmWipe(t *testing.T) {
	d := newTestDesktop(t, nil)
	d.ConfirmWipe()
	if d.Modal == nil || d.Modal.Kind != ModalConfirm {
		t.Fatal("ConfirmWipe() did not open a confirm dialog")
	}

	d.Modal.Selection = 1
	if cmd := d.AcceptModal(); cmd != nil {
		t.Error("declining the wipe returned a command")
	}

	d.ConfirmWipe()
	cmd := d.AcceptModal()
	if cmd == nil {
		t.Fatal("accepting the wipe returned nil")
	}
	if msg, ok := cmd().(PersistResultMsg); !ok || msg.Op != "wipe" {
		t.Errorf("wipe command returned %#v", msg)
	}
}

func TestRuntimeReady(t *testing.T) {
	d := newTestDesktop(t, nil)

	d.Update(RuntimeReadyMsg{Err: errors.New("no python")})
	if d.RuntimeReady {
		t.Error("RuntimeReady = true after a failed boot")
	}
	if got := lastLine(d); got != "no python" {
		t.Errorf("last line = %q, want the boot error", got)
	}

	d.Update(RuntimeReadyMsg{})
	if !d.RuntimeReady {
		t.Error("RuntimeReady = false after boot")
	}
}

func TestLogRing(t *testing.T) {
	d := newTestDesktop(t, nil)
	for i := range config.MaxLogMessages + 10 {
		d.LogInfo("message %d", i)
	}
	if len(d.LogMessages) != config.MaxLogMessages {
		t.Fatalf("len(LogMessages) = %d, want %d", len(d.LogMessages), config.MaxLogMessages)
	}
	want := "message " + strconv.Itoa(config.MaxLogMessages+9)
	if got := d.LogMessages[len(d.LogMessages)-1].Message; got != want {
		t.Errorf("newest log = %q, want %q", got, want)
	}
}

func TestTitleButtons(t *testing.T) {
	config.UseASCIIOnly = true
	t.Cleanup(func() { config.UseASCIIOnly = false })

	d := newTestDesktop(t, nil)
	tests := []struct {
		id    dock.PanelID
		kinds []TitleButton
	}{
		{dock.REPL, []TitleButton{ButtonDockMenu, ButtonMinimize, ButtonMaximize}},
		{dock.Explorer, []TitleButton{ButtonDockMenu, ButtonMinimize, ButtonMaximize, ButtonClose}},
	}

	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			r := d.Panel(tt.id).Rect()
			buttons := d.TitleButtons(tt.id)
			if len(buttons) != len(tt.kinds) {
				t.Fatalf("TitleButtons() = %v, want %v", buttons, tt.kinds)
			}
			last := buttons[len(buttons)-1]
			if got := last.X + last.Width(); got != r.Right()-1 {
				t.Errorf("last button ends at %d, want %d", got, r.Right()-1)
			}
			for i, b := range buttons {
				if b.Kind != tt.kinds[i] {
					t.Errorf("button %d = %v, want %v", i, b.Kind, tt.kinds[i])
				}
				id, kind := d.ButtonAt(b.X+1, r.Y)
				if id != tt.id || kind != b.Kind {
					t.Errorf("ButtonAt(%d, %d) = %v %v, want %v %v", b.X+1, r.Y, id, kind, tt.id, b.Kind)
				}
			}
			if _, kind := d.ButtonAt(buttons[0].X, r.Y+1); kind != ButtonNone {
				t.Errorf("ButtonAt below the header = %v, want none", kind)
			}
		})
	}
}

func TestDockMenu(t *testing.T) {
	d := newTestDesktop(t, nil)
	d.OpenDockMenu(dock.Explorer, 5, 1)

	items := DockMenuItems()
	if items[0] != dock.Float || len(items) != len(dock.Positions)+1 {
		t.Fatalf("DockMenuItems() = %v", items)
	}
	if got := items[d.DockMenu.Cursor]; got != dock.Left {
		t.Errorf("menu cursor on %v, want the current position", got)
	}

	for i, p := range items {
		if p == dock.Top {
			d.ChooseDockMenu(i)
		}
	}
	if d.DockMenu != nil {
		t.Error("menu still open after choosing")
	}
	if got := d.Session.Assignment(dock.Explorer); got != dock.Top {
		t.Errorf("explorer assignment = %v, want top", got)
	}
	if d.Focused != dock.Explorer {
		t.Errorf("Focused = %v, want explorer", d.Focused)
	}
}

func TestPlayTape(t *testing.T) {
	d := newTestDesktop(t, nil)
	cmds, err := tape.ParseString("Dock repl bottom\nHide explorer\nExpect repl 0 20 120 20\nPrint\n")
	if err != nil {
		t.Fatal(err)
	}

	cmd := d.PlayTape(cmds)
	for i := 0; cmd != nil && i < 10; i++ {
		_, cmd = d.Update(cmd())
	}
	if d.TapePlaying() {
		t.Fatal("script still playing")
	}
	if d.Explorer.Visible() {
		t.Error("explorer visible after Hide")
	}
	if !strings.Contains(transcript(d), "PANEL") {
		t.Errorf("Print did not reach the transcript: %q", transcript(d))
	}
}

func TestPlayTapeFailure(t *testing.T) {
	d := newTestDesktop(t, nil)
	cmds, err := tape.ParseString("Dock repl bottom\nExpect repl 1 2 3 4\nHide explorer\n")
	if err != nil {
		t.Fatal(err)
	}

	cmd := d.PlayTape(cmds)
	for i := 0; cmd != nil && i < 10; i++ {
		_, cmd = d.Update(cmd())
	}
	if !d.Explorer.Visible() {
		t.Error("script continued past the failed Expect")
	}
	if got := lastLine(d); !strings.HasPrefix(got, "[script] line 2: Expect:") {
		t.Errorf("last line = %q, want the script error", got)
	}
}
