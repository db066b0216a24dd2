package tape

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pyducation/pyducation/internal/dock"
	"github.com/pyducation/pyducation/internal/drag"
	"github.com/pyducation/pyducation/internal/geom"
)

// ErrRefused is returned when a drag cannot start, e.g. moving a docked panel.
var ErrRefused = errors.New("interaction refused")

// SessionExecutor plays scripts against a dock session without a screen.
// Pointer commands go through the same drag controllers as the mouse.
type SessionExecutor struct {
	Session *dock.Session
	Drag    *drag.Controllers
}

// NewSessionExecutor builds a session over two bare frames.
func NewSessionExecutor(m dock.Metrics) *SessionExecutor {
	s := dock.NewSession(m, dock.NewFrame(dock.REPL), dock.NewFrame(dock.Explorer))
	return &SessionExecutor{Session: s, Drag: drag.NewControllers(s)}
}

func (se *SessionExecutor) SetViewport(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid viewport %dx%d", w, h)
	}
	se.Session.SetViewport(geom.Size{W: w, H: h})
	return nil
}

func (se *SessionExecutor) DockPanel(id dock.PanelID, pos dock.Position) error {
	return se.Session.SetDockPosition(id, pos)
}

func (se *SessionExecutor) MinimizePanel(id dock.PanelID) error {
	se.Session.ToggleMinimize(id)
	return nil
}

func (se *SessionExecutor) MaximizePanel(id dock.PanelID) error {
	se.Session.ToggleMaximize(id)
	return nil
}

func (se *SessionExecutor) SetPanelVisible(id dock.PanelID, visible bool) error {
	se.Session.SetVisibility(id, visible)
	return nil
}

func (se *SessionExecutor) ToggleMini() error {
	se.Session.ToggleMini(dock.Explorer)
	return nil
}

// MovePanel drags the panel's header by (dx, dy).
func (se *SessionExecutor) MovePanel(id dock.PanelID, dx, dy int) error {
	r := se.Session.Panel(id).Rect()
	x, y := r.X+r.W/2, r.Y
	if !se.Drag.Move.Begin(id, x, y) {
		return fmt.Errorf("move %s: %w", id, ErrRefused)
	}
	se.Drag.Move.Update(x+dx, y+dy)
	se.Drag.Move.End()
	return nil
}

// ResizePanel drags the handle dir by (dx, dy).
func (se *SessionExecutor) ResizePanel(id dock.PanelID, dir drag.Dir, dx, dy int) error {
	x, y := handlePoint(se.Session.Panel(id).Rect(), dir)
	if !se.Drag.Resize.Begin(id, dir, x, y) {
		return fmt.Errorf("resize %s: %w", id, ErrRefused)
	}
	se.Drag.Resize.Update(x+dx, y+dy)
	se.Drag.Resize.End()
	return nil
}

// DragSplitter grabs the splitter of e and releases it at (x, y).
func (se *SessionExecutor) DragSplitter(e dock.Edge, x, y int) error {
	if !se.Drag.Splitter.Begin(e) {
		return fmt.Errorf("split %s: %w", e, ErrRefused)
	}
	se.Drag.Splitter.Update(x, y)
	se.Drag.Splitter.End()
	return nil
}

func (se *SessionExecutor) PanelRect(id dock.PanelID) (geom.Rect, bool) {
	p := se.Session.Panel(id)
	return p.Rect(), p.Visible()
}

func (se *SessionExecutor) LayoutTable() string {
	return FormatLayout(se.Session)
}

// handlePoint is where a handle sits on the border of r.
func handlePoint(r geom.Rect, dir drag.Dir) (int, int) {
	x, y := r.X+r.W/2, r.Y+r.H/2
	if dir&drag.West != 0 {
		x = r.X
	}
	if dir&drag.East != 0 {
		x = r.Right() - 1
	}
	if dir&drag.North != 0 {
		y = r.Y
	}
	if dir&drag.South != 0 {
		y = r.Bottom() - 1
	}
	return x, y
}

// FormatLayout renders the session state as a fixed-width table.
func FormatLayout(s *dock.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-9s %-13s %-24s %s\n", "PANEL", "POSITION", "RECT", "STATE")
	for _, id := range dock.PanelIDs {
		p := s.Panel(id)
		r := p.Rect()
		fmt.Fprintf(&b, "%-9s %-13s %-24s %s\n",
			id, s.Assignment(id),
			fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.W, r.H),
			panelState(p))
	}
	for _, e := range dock.Edges {
		g := s.Group(e)
		if g.Extent == 0 {
			continue
		}
		fmt.Fprintf(&b, "edge %-6s extent=%d split=%.4f\n", e, g.Extent, g.Split)
	}
	return b.String()
}

func panelState(p dock.Panel) string {
	if !p.Visible() {
		return "hidden"
	}
	var parts []string
	fl := p.Flags()
	for _, f := range []struct {
		flag dock.Flags
		name string
	}{
		{dock.FlagDocked, "docked"},
		{dock.FlagMinimized, "minimized"},
		{dock.FlagMaximized, "maximized"},
		{dock.FlagMini, "mini"},
	} {
		if fl.Has(f.flag) {
			parts = append(parts, f.name)
		}
	}
	if len(parts) == 0 {
		return "floating"
	}
	return strings.Join(parts, ",")
}
