package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/pyducation/pyducation/internal/config"
	"github.com/pyducation/pyducation/internal/pyrt"
)

// RuntimeReadyMsg reports the end of interpreter startup.
type RuntimeReadyMsg struct {
	Err error
}

// ExecResultMsg carries the outcome of a REPL run and the flush after it.
type ExecResultMsg struct {
	Output   pyrt.Output
	Err      error
	FlushErr error
}

// PersistResultMsg reports a flush, reload or wipe.
type PersistResultMsg struct {
	Op  string // "flush", "reload", "wipe"
	Err error
}

// FSChangedMsg is sent when the scratch tree changed on disk.
type FSChangedMsg struct{}

// StatsMsg carries an interpreter resource sample.
type StatsMsg struct {
	Stats pyrt.Stats
	Err   error
}

func bootCmd(boot func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return RuntimeReadyMsg{Err: boot(context.Background())}
	}
}

func execCmd(rt pyrt.Runtime, code string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		out, err := rt.Execute(ctx, code)
		if err != nil {
			return ExecResultMsg{Err: err}
		}
		fctx, cancel := context.WithTimeout(ctx, config.RuntimeCallTimeout)
		defer cancel()
		return ExecResultMsg{Output: out, FlushErr: rt.Flush(fctx)}
	}
}

func persistCmd(rt pyrt.Runtime, op string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), config.RuntimeCallTimeout)
		defer cancel()
		var err error
		switch op {
		case "flush":
			err = rt.Flush(ctx)
		case "reload":
			err = rt.Reload(ctx)
		case "wipe":
			err = rt.Wipe(ctx)
		default:
			err = fmt.Errorf("unknown operation %q", op)
		}
		return PersistResultMsg{Op: op, Err: err}
	}
}

// ListenForFSChanges waits for the next burst of filesystem activity.
func ListenForFSChanges(w *pyrt.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-w.Changes(); !ok {
			return nil
		}
		return FSChangedMsg{}
	}
}

func statsCmd(src StatsSource) tea.Cmd {
	return func() tea.Msg {
		st, err := src.Stats()
		return StatsMsg{Stats: st, Err: err}
	}
}

// RunInput submits the REPL input. Nothing is sent while the runtime is
// still starting.
func (d *Desktop) RunInput() tea.Cmd {
	r := d.Repl
	if r.Running || strings.TrimSpace(r.Input.Value()) == "" {
		return nil
	}
	code := r.Input.Value()
	r.Echo(code)
	r.PushHistory(code)
	r.Input.Reset()
	if !d.Runtime.Ready() {
		r.Append(LineSystem, "runtime not ready yet...")
		return nil
	}
	r.Running = true
	return execCmd(d.Runtime, code)
}

// Persist starts a flush, reload or wipe of /persist.
func (d *Desktop) Persist(op string) tea.Cmd {
	return persistCmd(d.Runtime, op)
}

// ConfirmWipe asks before wiping /persist.
func (d *Desktop) ConfirmWipe() {
	d.Confirm("Wipe /persist", "Delete every file under /persist, including the saved copy?", func(d *Desktop) tea.Cmd {
		return d.Persist("wipe")
	})
}

func (d *Desktop) handleExecResult(msg ExecResultMsg) {
	r := d.Repl
	r.Running = false
	if msg.Err != nil {
		r.Append(LineStderr, msg.Err.Error())
		return
	}
	if s := msg.Output.Stdout; s != "" {
		r.Append(LineStdout, s)
	}
	if s := msg.Output.Stderr; s != "" {
		r.Append(LineStderr, s)
	}
	if s := msg.Output.Traceback; s != "" {
		r.Append(LineTraceback, s)
	}
	if msg.FlushErr != nil {
		r.Append(LineSystem, fmt.Sprintf("[persist] flush failed:\n%v", msg.FlushErr))
	}
	d.refreshExplorer()
}

var persistDone = map[string]string{
	"flush":  "[persist] flushed",
	"reload": "[persist] reloaded",
	"wipe":   "[persist] wiped",
}

func (d *Desktop) handlePersistResult(msg PersistResultMsg) {
	if msg.Err != nil {
		d.Repl.Append(LineSystem, fmt.Sprintf("[persist] %s failed:\n%v", msg.Op, msg.Err))
		d.LogError("%s: %v", msg.Op, msg.Err)
		return
	}
	d.Repl.Append(LineSystem, persistDone[msg.Op])
	if msg.Op != "flush" {
		d.refreshExplorer()
	}
}

func (d *Desktop) handleRuntimeReady(msg RuntimeReadyMsg) {
	if msg.Err != nil {
		d.Repl.Append(LineSystem, fmt.Sprintf("[runtime] failed to start:\n%v", msg.Err))
		d.ShowNotification("Python failed to start", "error", 2*config.NotificationDuration)
		return
	}
	d.RuntimeReady = true
	d.ShowNotification("Python ready", "success", config.NotificationDuration)
}

// refreshExplorer re-reads the listing, falling back to the root when the
// current directory disappeared.
func (d *Desktop) refreshExplorer() {
	ctx, cancel := context.WithTimeout(context.Background(), config.RuntimeCallTimeout)
	defer cancel()
	m := d.Explorer.Model
	if err := m.Refresh(ctx); err != nil {
		if err := m.SwitchRoot(ctx, m.Root); err != nil {
			d.LogWarn("explorer refresh failed: %v", err)
		}
	}
}

// TickerMsg drives the clock, notification expiry and stats sampling.
type TickerMsg time.Time

// TickCmd schedules the next tick.
func TickCmd() tea.Cmd {
	return tea.Tick(config.StatsInterval, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}
