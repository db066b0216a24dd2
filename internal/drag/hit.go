package drag

import (
	"github.com/pyducation/pyducation/internal/dock"
	"github.com/pyducation/pyducation/internal/geom"
)

// TargetKind classifies what lies under the pointer.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetSplitter
	TargetHandle
	TargetHeader
	TargetBody
)

func (k TargetKind) String() string {
	return [...]string{"none", "splitter", "handle", "header", "body"}[k]
}

// Target is the result of a hit test.
type Target struct {
	Kind  TargetKind
	Panel dock.PanelID
	Edge  dock.Edge
	Dir   Dir
}

// HitTest finds what is under (x, y). Splitters are checked first, then the
// panels in order, topmost first.
func HitTest(s *dock.Session, order []dock.PanelID, x, y int) Target {
	for _, sp := range s.Splitters() {
		if sp.Rect.Contains(x, y) {
			return Target{Kind: TargetSplitter, Edge: sp.Edge}
		}
	}
	m := s.Metrics()
	for _, id := range order {
		p := s.Panel(id)
		r := p.Rect()
		if !p.Visible() || !r.Contains(x, y) {
			continue
		}
		t := Target{Kind: TargetBody, Panel: id}
		flags := p.Flags()
		header := y < r.Y+m.HeaderHeight

		switch {
		case flags.Has(dock.FlagMaximized), flags.Has(dock.FlagMinimized):
			if header {
				t.Kind = TargetHeader
			}
		case s.Assignment(id).Docked():
			e, _ := s.Assignment(id).Edge()
			if dir := Inward(e); borderDir(r, x, y, m.Grip)&dir != 0 {
				t.Kind, t.Dir = TargetHandle, dir
			} else if header {
				t.Kind = TargetHeader
			}
		default:
			dir := borderDir(r, x, y, m.Grip)
			corner := dir&(East|West) != 0 && dir&(North|South) != 0
			switch {
			case corner, dir != 0 && !header:
				t.Kind, t.Dir = TargetHandle, dir
			case header:
				t.Kind = TargetHeader
			}
		}
		return t
	}
	return Target{}
}

// borderDir returns the border bands of r that contain (x, y).
func borderDir(r geom.Rect, x, y, grip int) Dir {
	var d Dir
	if y < r.Y+grip {
		d |= North
	}
	if y >= r.Bottom()-grip {
		d |= South
	}
	if x < r.X+grip {
		d |= West
	}
	if x >= r.Right()-grip {
		d |= East
	}
	return d
}
