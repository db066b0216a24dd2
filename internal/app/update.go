package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/pyducation/pyducation/internal/config"
)

// InputHandler is a function type that handles input messages.
// This allows the Update method to delegate to the input package without creating a circular dependency.
type InputHandler func(msg tea.Msg, d *Desktop) (tea.Model, tea.Cmd)

// inputHandler is the registered input handler function.
var inputHandler InputHandler

// SetInputHandler registers the input handler function.
// This must be called during initialization before the Update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// Init starts the ticker, boots the runtime and listens for filesystem
// changes.
func (d *Desktop) Init() tea.Cmd {
	cmds := []tea.Cmd{TickCmd()}
	if d.boot != nil {
		cmds = append(cmds, bootCmd(d.boot))
	}
	if d.watcher != nil {
		cmds = append(cmds, ListenForFSChanges(d.watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles all incoming messages and updates the application state.
func (d *Desktop) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.Resize(msg.Width, msg.Height)
		if d.script != nil {
			script := d.script
			d.script = nil
			return d, d.PlayTape(script)
		}
		return d, nil

	case TapeStepMsg:
		return d, d.stepTape()

	case TickerMsg:
		d.CleanupNotifications()
		if d.PrefixActive && time.Since(d.LastPrefixTime) > config.PrefixCommandTimeout {
			d.PrefixActive = false
		}
		cmds := []tea.Cmd{TickCmd()}
		if src, ok := d.Runtime.(StatsSource); ok && d.RuntimeReady {
			cmds = append(cmds, statsCmd(src))
		}
		return d, tea.Batch(cmds...)

	case RuntimeReadyMsg:
		d.handleRuntimeReady(msg)
		return d, nil

	case ExecResultMsg:
		d.handleExecResult(msg)
		return d, nil

	case PersistResultMsg:
		d.handlePersistResult(msg)
		return d, nil

	case FSChangedMsg:
		d.refreshExplorer()
		return d, ListenForFSChanges(d.watcher)

	case StatsMsg:
		d.Stats, d.HasStats = msg.Stats, msg.Err == nil
		return d, nil
	}

	if inputHandler != nil {
		return inputHandler(msg, d)
	}
	return d, nil
}
