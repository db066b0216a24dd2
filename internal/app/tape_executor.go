package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/pyducation/pyducation/internal/config"
	"github.com/pyducation/pyducation/internal/tape"
)

// desktopExecutor drives the live session. Viewport resizes the whole
// desktop so the status line stays below the layout area.
type desktopExecutor struct {
	tape.SessionExecutor
	d *Desktop
}

func (e *desktopExecutor) SetViewport(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid viewport %dx%d", w, h)
	}
	e.d.Resize(w, h+config.StatusBarHeight)
	return nil
}

// TapeExecutor returns an executor that manipulates this desktop.
func (d *Desktop) TapeExecutor() tape.Executor {
	return &desktopExecutor{
		SessionExecutor: tape.SessionExecutor{Session: d.Session, Drag: d.Drag},
		d:               d,
	}
}

// replWriter sends Print output to the REPL transcript.
type replWriter struct{ r *ReplPanel }

func (w replWriter) Write(p []byte) (int, error) {
	w.r.Append(LineSystem, string(p))
	return len(p), nil
}

// TapeStepMsg advances the running script by one command.
type TapeStepMsg struct{}

type tapePlayback struct {
	exec *tape.CommandExecutor
	cmds []tape.Command
	next int
}

// PlayTape runs cmds against the desktop one command per update, so Sleep
// never blocks the event loop.
func (d *Desktop) PlayTape(cmds []tape.Command) tea.Cmd {
	if len(cmds) == 0 {
		return nil
	}
	d.tape = &tapePlayback{
		exec: tape.NewCommandExecutor(d.TapeExecutor(), replWriter{d.Repl}),
		cmds: cmds,
	}
	d.LogInfo("playing script (%d commands)", len(cmds))
	return func() tea.Msg { return TapeStepMsg{} }
}

// TapePlaying reports whether a script is in progress.
func (d *Desktop) TapePlaying() bool { return d.tape != nil }

// StopTape abandons the running script.
func (d *Desktop) StopTape() {
	if d.tape != nil {
		d.tape = nil
		d.LogInfo("script stopped")
	}
}

func (d *Desktop) stepTape() tea.Cmd {
	p := d.tape
	if p == nil {
		return nil
	}
	if p.next >= len(p.cmds) {
		d.tape = nil
		d.ShowNotification("Script finished", "success", config.NotificationDuration)
		return nil
	}
	cmd := p.cmds[p.next]
	p.next++

	if cmd.Type == tape.CommandTypeSleep {
		wait, err := time.ParseDuration(cmd.Args[0])
		if err != nil {
			return d.failTape(cmd, err)
		}
		return tea.Tick(wait, func(time.Time) tea.Msg { return TapeStepMsg{} })
	}
	if err := p.exec.Execute(context.Background(), &cmd); err != nil {
		return d.failTape(cmd, err)
	}
	return func() tea.Msg { return TapeStepMsg{} }
}

func (d *Desktop) failTape(cmd tape.Command, err error) tea.Cmd {
	d.tape = nil
	err = &tape.LineError{Line: cmd.Line, Err: fmt.Errorf("%s: %w", cmd.Type, err)}
	d.Repl.Append(LineSystem, "[script] "+err.Error())
	d.ShowNotification("Script failed", "error", config.NotificationDuration*2)
	d.LogError("script failed: %v", err)
	return nil
}
