package input

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	"github.com/pyducation/pyducation/internal/app"
	"github.com/pyducation/pyducation/internal/config"
	"github.com/pyducation/pyducation/internal/dock"
)

// HandleKeyPress routes a key through overlays, the leader key and direct
// bindings before handing it to the focused panel.
func HandleKeyPress(msg tea.KeyPressMsg, d *app.Desktop) tea.Cmd {
	key := msg.String()

	if d.Modal != nil {
		return handleModalKey(msg, d)
	}
	if d.DockMenu != nil {
		handleDockMenuKey(key, d)
		return nil
	}
	if d.ShowHelp || d.ShowLogs {
		if handleOverlayKey(key, d) {
			return nil
		}
	}
	if key == "esc" && d.TapePlaying() {
		d.StopTape()
		return nil
	}

	if d.PrefixActive {
		d.PrefixActive = false
		switch {
		case key == "esc":
			return nil
		case d.KeybindRegistry.IsLeader(key):
			// Pressing the leader twice sends it to the panel.
		default:
			if action, ok := d.KeybindRegistry.PrefixAction(key); ok {
				cmd, _ := GetDispatcher().Dispatch(action, d)
				return cmd
			}
			d.ShowNotification("No action bound to "+d.KeybindRegistry.Leader()+" "+key, "warning", config.NotificationDuration)
			return nil
		}
	} else if d.KeybindRegistry.IsLeader(key) {
		d.PrefixActive = true
		d.LastPrefixTime = time.Now()
		return nil
	}

	if action, ok := d.KeybindRegistry.DirectAction(key); ok {
		if cmd, ok := GetDispatcher().Dispatch(action, d); ok {
			return cmd
		}
	}

	if d.Focused == dock.Explorer {
		return handleExplorerKey(msg, d)
	}
	return handleReplKey(msg, d)
}

// editKey hands a key to a text area and reports whether the text changed.
func editKey(ta *textarea.Model, msg tea.KeyPressMsg) (tea.Cmd, bool) {
	before := ta.Value()
	var cmd tea.Cmd
	*ta, cmd = ta.Update(msg)
	return cmd, ta.Value() != before
}

// dedent removes up to one indent level of spaces before the cursor.
func dedent(ta *textarea.Model) bool {
	line := []rune(app.CurrentLine(ta))
	col := min(app.CursorColumn(ta), len(line))
	changed := false
	for n := 0; n < len(app.IndentUnit) && col > 0 && line[col-1] == ' '; n++ {
		*ta, _ = ta.Update(tea.KeyPressMsg{Code: tea.KeyBackspace})
		col--
		changed = true
	}
	return changed
}

func handleModalKey(msg tea.KeyPressMsg, d *app.Desktop) tea.Cmd {
	m := d.Modal
	key := msg.String()
	switch key {
	case "esc":
		d.CancelModal()
		return nil
	case "enter":
		return d.AcceptModal()
	}

	if m.Kind == app.ModalPrompt {
		var cmd tea.Cmd
		m.Input, cmd = m.Input.Update(msg)
		return cmd
	}

	switch key {
	case "left", "right", "tab", "shift+tab", "h", "l":
		m.Selection = 1 - m.Selection
	case "y":
		m.Selection = 0
		return d.AcceptModal()
	case "n", "q":
		d.CancelModal()
	}
	return nil
}

func handleDockMenuKey(key string, d *app.Desktop) {
	m := d.DockMenu
	n := len(app.DockMenuItems())
	switch key {
	case "up", "k":
		m.Cursor = (m.Cursor + n - 1) % n
	case "down", "j":
		m.Cursor = (m.Cursor + 1) % n
	case "enter", "space":
		d.ChooseDockMenu(m.Cursor)
	case "esc", "q":
		d.DockMenu = nil
	}
}

// handleOverlayKey scrolls or closes the help and log overlays. Keys it does
// not use fall through so bindings such as the leader still work.
func handleOverlayKey(key string, d *app.Desktop) bool {
	scroll := &d.HelpScrollOffset
	if d.ShowLogs {
		scroll = &d.LogScrollOffset
	}
	page := max(d.Height/2, 1)
	switch key {
	case "esc", "q":
		d.ShowHelp, d.ShowLogs = false, false
	case "up", "k":
		*scroll = max(*scroll-1, 0)
	case "down", "j":
		*scroll++
	case "pgup", "ctrl+u":
		*scroll = max(*scroll-page, 0)
	case "pgdown", "ctrl+d":
		*scroll += page
	default:
		return false
	}
	return true
}

// needsContinuation reports whether enter should open another line, the way
// the interactive interpreter keeps reading after a block header.
func needsContinuation(code string) bool {
	lines := strings.Split(code, "\n")
	last := strings.TrimRight(lines[len(lines)-1], " \t")
	if strings.HasSuffix(last, ":") || strings.HasSuffix(last, "\\") {
		return true
	}
	return len(lines) > 1 && strings.TrimSpace(last) != ""
}

// indentOf returns the leading whitespace of the cursor's line, plus one
// level after a block header.
func indentOf(ta *textarea.Model) string {
	cur := app.CurrentLine(ta)
	indent := cur[:len(cur)-len(strings.TrimLeft(cur, " \t"))]
	if strings.HasSuffix(strings.TrimRight(cur, " \t"), ":") {
		indent += app.IndentUnit
	}
	return indent
}

func handleReplKey(msg tea.KeyPressMsg, d *app.Desktop) tea.Cmd {
	r := d.Repl
	in := &r.Input
	page := max(r.Rect().H-3, 1)

	switch msg.String() {
	case "ctrl+enter":
		return d.RunInput()
	case "enter":
		if app.AtEnd(in) && needsContinuation(in.Value()) {
			in.InsertString("\n" + indentOf(in))
			return nil
		}
		return d.RunInput()
	case "alt+enter", "shift+enter", "ctrl+j":
		in.InsertString("\n" + indentOf(in))
	case "tab":
		in.InsertString(app.IndentUnit)
	case "shift+tab":
		dedent(in)
	case "up":
		if app.OnFirstRow(in) {
			r.HistoryPrev()
			return nil
		}
		cmd, _ := editKey(in, msg)
		return cmd
	case "down":
		if app.OnLastRow(in) {
			r.HistoryNext()
			return nil
		}
		cmd, _ := editKey(in, msg)
		return cmd
	case "pgup":
		r.ScrollBy(page)
	case "pgdown":
		r.ScrollBy(-page)
	case "ctrl+c":
		in.Reset()
	default:
		cmd, _ := editKey(in, msg)
		return cmd
	}
	return nil
}

func handleExplorerKey(msg tea.KeyPressMsg, d *app.Desktop) tea.Cmd {
	e := d.Explorer
	key := msg.String()

	switch key {
	case "ctrl+s":
		d.ExplorerSave()
		return nil
	case "ctrl+n":
		return d.ExplorerNewFile()
	case "ctrl+d":
		d.ExplorerNewFolder()
		return nil
	case "ctrl+t":
		d.ExplorerSwitchRoot()
		return nil
	case "ctrl+o":
		d.ExplorerImport()
		return nil
	case "ctrl+e":
		d.ExplorerExport()
		return nil
	}

	if e.Filtering {
		handleFilterKey(msg, d)
		return nil
	}
	if e.EditorFocused && e.Model.Selected != "" {
		return handleEditorKey(msg, d)
	}

	switch key {
	case "up", "k":
		e.Model.MoveCursor(-1)
	case "down", "j":
		e.Model.MoveCursor(1)
	case "pgup":
		e.Model.MoveCursor(-max(e.Rect().H-3, 1))
	case "pgdown":
		e.Model.MoveCursor(max(e.Rect().H-3, 1))
	case "enter", "right", "l":
		return d.ExplorerOpen()
	case "backspace", "left", "h":
		d.ExplorerUp()
	case "/":
		e.Filtering = true
	case "delete":
		d.ExplorerDelete()
	case "tab":
		if e.Model.Selected != "" && !e.Mini() {
			e.EditorFocused = true
		}
	case "esc":
		if e.Model.Filter != "" {
			e.Model.SetFilter("")
		}
	}
	return nil
}

func handleFilterKey(msg tea.KeyPressMsg, d *app.Desktop) {
	e := d.Explorer
	m := e.Model
	switch msg.String() {
	case "esc":
		e.Filtering = false
		m.SetFilter("")
	case "enter":
		e.Filtering = false
	case "backspace":
		if q := []rune(m.Filter); len(q) > 0 {
			m.SetFilter(string(q[:len(q)-1]))
		}
	case "up":
		m.MoveCursor(-1)
	case "down":
		m.MoveCursor(1)
	default:
		if msg.Text != "" && msg.Mod&(tea.ModCtrl|tea.ModAlt) == 0 {
			m.SetFilter(m.Filter + msg.Text)
		}
	}
	e.ListOffset = 0
}

func handleEditorKey(msg tea.KeyPressMsg, d *app.Desktop) tea.Cmd {
	e := d.Explorer
	ed := &e.Editor
	var cmd tea.Cmd
	changed := false
	switch msg.String() {
	case "esc":
		e.EditorFocused = false
	case "enter":
		ed.InsertString("\n" + indentOf(ed))
		changed = true
	case "tab":
		ed.InsertString(app.IndentUnit)
		changed = true
	case "shift+tab":
		changed = dedent(ed)
	default:
		cmd, changed = editKey(ed, msg)
	}
	if changed {
		e.CommitEditor()
	}
	return cmd
}
