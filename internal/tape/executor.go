package tape

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pyducation/pyducation/internal/dock"
	"github.com/pyducation/pyducation/internal/drag"
	"github.com/pyducation/pyducation/internal/geom"
)

// Executor executes tape commands by directly manipulating the layout.
// The desktop implements it, and SessionExecutor does so headlessly.
type Executor interface {
	SetViewport(w, h int) error

	// Lifecycle
	DockPanel(id dock.PanelID, pos dock.Position) error
	MinimizePanel(id dock.PanelID) error
	MaximizePanel(id dock.PanelID) error
	SetPanelVisible(id dock.PanelID, visible bool) error
	ToggleMini() error

	// Pointer interactions, expressed as drags
	MovePanel(id dock.PanelID, dx, dy int) error
	ResizePanel(id dock.PanelID, dir drag.Dir, dx, dy int) error
	DragSplitter(e dock.Edge, x, y int) error

	// Inspection
	PanelRect(id dock.PanelID) (geom.Rect, bool)
	LayoutTable() string
}

// CommandExecutor provides a default implementation
type CommandExecutor struct {
	executor Executor
	out      io.Writer
	sleep    func(context.Context, time.Duration) error
}

// NewCommandExecutor creates a new command executor. Print writes to out.
func NewCommandExecutor(executor Executor, out io.Writer) *CommandExecutor {
	if out == nil {
		out = io.Discard
	}
	return &CommandExecutor{executor: executor, out: out, sleep: sleepCtx}
}

// SetSleep replaces how Sleep waits; tests use it to skip delays.
func (ce *CommandExecutor) SetSleep(f func(context.Context, time.Duration) error) {
	ce.sleep = f
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes cmds in order and stops at the first failure.
func (ce *CommandExecutor) Run(ctx context.Context, cmds []Command) error {
	for i := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := ce.Execute(ctx, &cmds[i]); err != nil {
			return &LineError{Line: cmds[i].Line, Err: fmt.Errorf("%s: %w", cmds[i].Type, err)}
		}
	}
	return nil
}

// Execute executes a command
func (ce *CommandExecutor) Execute(ctx context.Context, cmd *Command) error {
	if ce.executor == nil {
		return nil
	}

	switch cmd.Type {
	case CommandTypeViewport:
		n, err := ints(cmd.Args)
		if err != nil {
			return err
		}
		return ce.executor.SetViewport(n[0], n[1])

	case CommandTypeDock:
		id, err := dock.ParsePanelID(cmd.Args[0])
		if err != nil {
			return err
		}
		pos, err := dock.ParsePosition(cmd.Args[1])
		if err != nil {
			return err
		}
		return ce.executor.DockPanel(id, pos)

	case CommandTypeFloat, CommandTypeMinimize, CommandTypeMaximize, CommandTypeShow, CommandTypeHide:
		id, err := dock.ParsePanelID(cmd.Args[0])
		if err != nil {
			return err
		}
		switch cmd.Type {
		case CommandTypeFloat:
			return ce.executor.DockPanel(id, dock.Float)
		case CommandTypeMinimize:
			return ce.executor.MinimizePanel(id)
		case CommandTypeMaximize:
			return ce.executor.MaximizePanel(id)
		case CommandTypeShow:
			return ce.executor.SetPanelVisible(id, true)
		default:
			return ce.executor.SetPanelVisible(id, false)
		}

	case CommandTypeMini:
		return ce.executor.ToggleMini()

	case CommandTypeMove:
		id, err := dock.ParsePanelID(cmd.Args[0])
		if err != nil {
			return err
		}
		n, err := ints(cmd.Args[1:])
		if err != nil {
			return err
		}
		return ce.executor.MovePanel(id, n[0], n[1])

	case CommandTypeResize:
		id, err := dock.ParsePanelID(cmd.Args[0])
		if err != nil {
			return err
		}
		dir := drag.ParseDir(cmd.Args[1])
		if dir == 0 || dir.String() != strings.ToLower(cmd.Args[1]) {
			return fmt.Errorf("invalid handle %q", cmd.Args[1])
		}
		n, err := ints(cmd.Args[2:])
		if err != nil {
			return err
		}
		return ce.executor.ResizePanel(id, dir, n[0], n[1])

	case CommandTypeSplit:
		e, err := dock.ParseEdge(cmd.Args[0])
		if err != nil {
			return err
		}
		n, err := ints(cmd.Args[1:])
		if err != nil {
			return err
		}
		return ce.executor.DragSplitter(e, n[0], n[1])

	case CommandTypeExpect:
		id, err := dock.ParsePanelID(cmd.Args[0])
		if err != nil {
			return err
		}
		n, err := ints(cmd.Args[1:])
		if err != nil {
			return err
		}
		want := geom.Rect{X: n[0], Y: n[1], W: n[2], H: n[3]}
		got, visible := ce.executor.PanelRect(id)
		if !visible {
			return fmt.Errorf("%s is hidden, want %v", id, want)
		}
		if got != want {
			return fmt.Errorf("%s is at %v, want %v", id, got, want)
		}
		return nil

	case CommandTypePrint:
		_, err := io.WriteString(ce.out, ce.executor.LayoutTable())
		return err

	case CommandTypeSleep:
		d, err := time.ParseDuration(cmd.Args[0])
		if err != nil {
			return err
		}
		return ce.sleep(ctx, d)
	}

	return fmt.Errorf("%w %q", ErrUnknownCommand, cmd.Type)
}

func ints(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = n
	}
	return out, nil
}
