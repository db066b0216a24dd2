package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/pyducation/pyducation/internal/app"
	"github.com/pyducation/pyducation/internal/config"
	"github.com/pyducation/pyducation/internal/dock"
)

// ActionHandler is a function that handles a specific action
type ActionHandler func(d *app.Desktop) tea.Cmd

// ActionDispatcher maps action names to handler functions
type ActionDispatcher struct {
	handlers map[string]ActionHandler
}

// NewActionDispatcher creates a new action dispatcher with all handlers registered
func NewActionDispatcher() *ActionDispatcher {
	d := &ActionDispatcher{
		handlers: make(map[string]ActionHandler),
	}
	d.registerHandlers()
	return d
}

func (d *ActionDispatcher) registerHandlers() {
	// Docking
	for action, pos := range map[string]dock.Position{
		config.ActionDockLeft:        dock.Left,
		config.ActionDockRight:       dock.Right,
		config.ActionDockTop:         dock.Top,
		config.ActionDockBottom:      dock.Bottom,
		config.ActionDockLeftTop:     dock.LeftTop,
		config.ActionDockLeftBottom:  dock.LeftBottom,
		config.ActionDockRightTop:    dock.RightTop,
		config.ActionDockRightBottom: dock.RightBottom,
		config.ActionDockTopLeft:     dock.TopLeft,
		config.ActionDockTopRight:    dock.TopRight,
		config.ActionDockBottomLeft:  dock.BottomLeft,
		config.ActionDockBottomRight: dock.BottomRight,
		config.ActionFloat:           dock.Float,
	} {
		d.Register(action, makeDockHandler(pos))
	}

	// Panels
	d.Register(config.ActionMinimize, handleMinimize)
	d.Register(config.ActionMaximize, handleMaximize)
	d.Register(config.ActionToggleExplorer, handleToggleExplorer)
	d.Register(config.ActionCloseExplorer, handleCloseExplorer)
	d.Register(config.ActionToggleMini, handleToggleMini)
	d.Register(config.ActionFocusNext, handleFocusNext)
	d.Register(config.ActionClearOutput, func(d *app.Desktop) tea.Cmd {
		d.Repl.ClearOutput()
		return nil
	})

	// Persistence
	d.Register(config.ActionFlush, func(d *app.Desktop) tea.Cmd { return d.Persist("flush") })
	d.Register(config.ActionReload, handleReload)
	d.Register(config.ActionWipe, handleWipe)

	// System
	d.Register(config.ActionToggleLogs, handleToggleLogs)
	d.Register(config.ActionHelp, handleToggleHelp)
	d.Register(config.ActionQuit, handleQuit)
}

// Register adds an action handler
func (d *ActionDispatcher) Register(action string, handler ActionHandler) {
	d.handlers[action] = handler
}

// Dispatch executes the handler for a given action and reports whether one
// was registered.
func (d *ActionDispatcher) Dispatch(action string, desk *app.Desktop) (tea.Cmd, bool) {
	handler, ok := d.handlers[action]
	if !ok {
		return nil, false
	}
	desk.Logger.Debug("action", "name", action, "focus", desk.Focused)
	return handler(desk), true
}

// HasAction checks if an action is registered
func (d *ActionDispatcher) HasAction(action string) bool {
	_, ok := d.handlers[action]
	return ok
}

// Global action dispatcher instance
var globalDispatcher = NewActionDispatcher()

// GetDispatcher returns the global action dispatcher
func GetDispatcher() *ActionDispatcher {
	return globalDispatcher
}

func makeDockHandler(pos dock.Position) ActionHandler {
	return func(d *app.Desktop) tea.Cmd {
		d.DockFocused(pos)
		return nil
	}
}

func handleMinimize(d *app.Desktop) tea.Cmd {
	d.Session.ToggleMinimize(d.Focused)
	return nil
}

func handleMaximize(d *app.Desktop) tea.Cmd {
	d.Session.ToggleMaximize(d.Focused)
	return nil
}

func handleToggleExplorer(d *app.Desktop) tea.Cmd {
	d.ToggleExplorer()
	return nil
}

func handleCloseExplorer(d *app.Desktop) tea.Cmd {
	d.ClosePanel(dock.Explorer)
	return nil
}

func handleToggleMini(d *app.Desktop) tea.Cmd {
	if d.Explorer.Visible() {
		d.Session.ToggleMini(dock.Explorer)
	}
	return nil
}

func handleFocusNext(d *app.Desktop) tea.Cmd {
	d.FocusNext()
	return nil
}

// handleReload asks first when the open file has unsaved edits, since the
// reload replaces it.
func handleReload(d *app.Desktop) tea.Cmd {
	if d.Explorer.Model.Dirty {
		d.Confirm("Reload /persist", "Discard unsaved edits to "+d.Explorer.Model.Selected+"?", func(d *app.Desktop) tea.Cmd {
			return d.Persist("reload")
		})
		return nil
	}
	return d.Persist("reload")
}

func handleWipe(d *app.Desktop) tea.Cmd {
	d.ConfirmWipe()
	return nil
}

func handleToggleLogs(d *app.Desktop) tea.Cmd {
	d.ShowLogs = !d.ShowLogs
	d.ShowHelp = false
	d.LogScrollOffset = max(len(d.LogMessages)-1, 0)
	return nil
}

func handleToggleHelp(d *app.Desktop) tea.Cmd {
	d.ShowHelp = !d.ShowHelp
	d.ShowLogs = false
	d.HelpScrollOffset = 0
	return nil
}

func handleQuit(d *app.Desktop) tea.Cmd {
	if d.Explorer.Model.Dirty {
		d.Confirm("Quit", "Discard unsaved edits to "+d.Explorer.Model.Selected+"?", func(*app.Desktop) tea.Cmd {
			return tea.Quit
		})
		return nil
	}
	return tea.Quit
}
