package dock

import (
	"fmt"
	"strings"

	"github.com/pyducation/pyducation/internal/geom"
)

// PanelID identifies one of the two dockable panels. The numeric order is
// also the tie-break priority on a shared edge.
type PanelID int

const (
	REPL PanelID = iota
	Explorer
)

// PanelIDs lists both panels in priority order.
var PanelIDs = [2]PanelID{REPL, Explorer}

// Other returns the remaining panel.
func (id PanelID) Other() PanelID {
	if id == REPL {
		return Explorer
	}
	return REPL
}

func (id PanelID) String() string {
	if id == REPL {
		return "repl"
	}
	return "explorer"
}

// ParsePanelID accepts "repl" or "explorer" in any case.
func ParsePanelID(s string) (PanelID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "repl", "console":
		return REPL, nil
	case "explorer", "files":
		return Explorer, nil
	}
	return 0, fmt.Errorf("unknown panel %q", s)
}

// Flags are the presentation states the layout engine reads and writes.
type Flags uint8

const (
	FlagMinimized Flags = 1 << iota
	FlagMaximized
	FlagMini
	FlagDocked
)

// Has reports whether every bit of f is set.
func (fl Flags) Has(f Flags) bool { return fl&f == f }

// With returns fl with f set or cleared.
func (fl Flags) With(f Flags, on bool) Flags {
	if on {
		return fl | f
	}
	return fl &^ f
}

// Panel is the capability set the engine needs from a rendered panel. The
// engine never inspects anything else.
type Panel interface {
	ID() PanelID
	Rect() geom.Rect
	SetRect(geom.Rect)
	Visible() bool
	SetVisible(bool)
	Flags() Flags
	SetFlags(Flags)
}

// Frame is a plain Panel implementation. Concrete panels embed it.
type Frame struct {
	id      PanelID
	rect    geom.Rect
	visible bool
	flags   Flags
}

// NewFrame returns a visible frame with no geometry yet.
func NewFrame(id PanelID) *Frame {
	return &Frame{id: id, visible: true}
}

func (f *Frame) ID() PanelID          { return f.id }
func (f *Frame) Rect() geom.Rect      { return f.rect }
func (f *Frame) SetRect(r geom.Rect)  { f.rect = r }
func (f *Frame) Visible() bool        { return f.visible }
func (f *Frame) SetVisible(v bool)    { f.visible = v }
func (f *Frame) Flags() Flags         { return f.flags }
func (f *Frame) SetFlags(flags Flags) { f.flags = flags }

// Minimized is shorthand for Flags().Has(FlagMinimized).
func (f *Frame) Minimized() bool { return f.flags.Has(FlagMinimized) }

// Maximized is shorthand for Flags().Has(FlagMaximized).
func (f *Frame) Maximized() bool { return f.flags.Has(FlagMaximized) }

// Mini is shorthand for Flags().Has(FlagMini).
func (f *Frame) Mini() bool { return f.flags.Has(FlagMini) }

// Docked is shorthand for Flags().Has(FlagDocked).
func (f *Frame) Docked() bool { return f.flags.Has(FlagDocked) }
