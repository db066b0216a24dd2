package input

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/pyducation/pyducation/internal/app"
	"github.com/pyducation/pyducation/internal/config"
	"github.com/pyducation/pyducation/internal/dock"
	"github.com/pyducation/pyducation/internal/drag"
)

// lastClick remembers the previous explorer click for double-click
// detection.
var lastClick struct {
	index int
	at    time.Time
}

func handleMouseClick(msg tea.MouseClickMsg, d *app.Desktop) tea.Cmd {
	mouse := msg.Mouse()
	x, y := mouse.X, mouse.Y

	if d.Modal != nil {
		return nil
	}
	if d.DockMenu != nil {
		if i, ok := d.DockMenuItemAt(x, y); ok {
			d.ChooseDockMenu(i)
		} else {
			d.DockMenu = nil
		}
		return nil
	}
	if d.ShowHelp || d.ShowLogs {
		d.ShowHelp, d.ShowLogs = false, false
		return nil
	}
	if mouse.Button != tea.MouseLeft {
		return nil
	}

	if id, kind := d.ButtonAt(x, y); kind != app.ButtonNone {
		d.Focus(id)
		switch kind {
		case app.ButtonDockMenu:
			d.OpenDockMenu(id, x, y+1)
		case app.ButtonMinimize:
			d.Session.ToggleMinimize(id)
		case app.ButtonMaximize:
			d.Session.ToggleMaximize(id)
		case app.ButtonClose:
			d.ClosePanel(id)
		}
		return nil
	}

	if b := d.Session.ExpandButton(); b.Visible && b.Rect.Contains(x, y) {
		d.Session.ToggleMini(dock.Explorer)
		return nil
	}

	t := drag.HitTest(d.Session, d.Order(), x, y)
	if t.Kind == drag.TargetNone {
		return nil
	}
	if t.Kind != drag.TargetSplitter {
		d.Focus(t.Panel)
	}
	if d.Drag.Down(t, x, y) {
		return nil
	}

	if t.Kind == drag.TargetBody && t.Panel == dock.Explorer {
		return handleExplorerClick(x, y, d)
	}
	return nil
}

func handleExplorerClick(x, y int, d *app.Desktop) tea.Cmd {
	e := d.Explorer
	if i, ok := d.ExplorerEntryAt(x, y); ok {
		e.EditorFocused = false
		double := lastClick.index == i && time.Since(lastClick.at) < config.DoubleClickInterval
		e.Model.MoveCursor(i - e.Model.Cursor)
		if double {
			lastClick.at = time.Time{}
			return d.ExplorerOpen()
		}
		lastClick.index, lastClick.at = i, time.Now()
		return nil
	}
	if d.ExplorerEditorAt(x, y) && e.Model.Selected != "" {
		e.EditorFocused = true
	}
	return nil
}

func handleMouseMotion(msg tea.MouseMotionMsg, d *app.Desktop) tea.Cmd {
	mouse := msg.Mouse()
	d.Drag.Motion(mouse.X, mouse.Y)
	return nil
}

func handleMouseRelease(d *app.Desktop) tea.Cmd {
	d.Drag.Up()
	return nil
}

func handleMouseWheel(msg tea.MouseWheelMsg, d *app.Desktop) tea.Cmd {
	mouse := msg.Mouse()
	delta := 0
	switch mouse.Button {
	case tea.MouseWheelUp:
		delta = -1
	case tea.MouseWheelDown:
		delta = 1
	default:
		return nil
	}

	switch {
	case d.Modal != nil || d.DockMenu != nil:
		return nil
	case d.ShowHelp:
		d.HelpScrollOffset = max(d.HelpScrollOffset+delta*config.WheelLines, 0)
		return nil
	case d.ShowLogs:
		d.LogScrollOffset = max(d.LogScrollOffset+delta*config.WheelLines, 0)
		return nil
	}

	t := drag.HitTest(d.Session, d.Order(), mouse.X, mouse.Y)
	switch {
	case t.Kind == drag.TargetNone, t.Kind == drag.TargetSplitter:
	case t.Panel == dock.Explorer:
		d.Explorer.Model.MoveCursor(delta)
	default:
		d.Repl.ScrollBy(-delta * config.WheelLines)
	}
	return nil
}
