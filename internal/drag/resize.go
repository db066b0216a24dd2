package drag

import (
	"github.com/pyducation/pyducation/internal/dock"
	"github.com/pyducation/pyducation/internal/geom"
)

// Resize drags one of a panel's eight border handles.
type Resize struct {
	session *dock.Session
	state   State
	panel   dock.PanelID
	dir     Dir

	startX, startY int
	start          geom.Rect
}

// NewResize returns an idle resize controller.
func NewResize(s *dock.Session) *Resize {
	return &Resize{session: s}
}

// Active reports whether a resize is in progress.
func (r *Resize) Active() bool { return r.state == StateActive }

// Panel returns the panel being resized.
func (r *Resize) Panel() dock.PanelID { return r.panel }

// Dir returns the handle directions of the active resize.
func (r *Resize) Dir() Dir { return r.dir }

// Begin starts a resize from handle dir. Maximized and hidden panels are
// ignored.
func (r *Resize) Begin(id dock.PanelID, dir Dir, x, y int) bool {
	p := r.session.Panel(id)
	if dir == 0 || !p.Visible() || p.Flags().Has(dock.FlagMaximized) {
		return false
	}
	r.state = StateActive
	r.panel = id
	r.dir = dir
	r.startX, r.startY = x, y
	if r.session.Floating(id) {
		r.start = r.session.FloatRect(id)
	} else {
		r.start = p.Rect()
	}
	return true
}

// Update applies the pointer delta. A docked panel only changes its edge's
// depth, and only when it has the edge to itself.
func (r *Resize) Update(x, y int) {
	if r.state != StateActive {
		return
	}
	dx, dy := x-r.startX, y-r.startY
	if pos := r.session.Assignment(r.panel); pos.Docked() {
		r.updateDocked(pos, dx, dy)
		return
	}
	r.updateFloating(dx, dy)
}

func (r *Resize) updateDocked(pos dock.Position, dx, dy int) {
	e, _ := pos.Edge()
	in := Inward(e)
	if !r.dir.Has(in) || len(r.session.Occupants(e)) == 2 {
		return
	}
	m := r.session.Metrics()
	vp := r.session.Viewport()
	em := m.Edge(e)

	var extent int
	switch in {
	case West:
		extent = geom.Clamp(r.start.W-dx, em.MinExtent, vp.W-m.ViewportGap)
	case East:
		extent = geom.Clamp(r.start.W+dx, em.MinExtent, vp.W-m.ViewportGap)
	case North:
		extent = geom.Clamp(r.start.H-dy, em.MinExtent, vp.H-m.ViewportGap)
	case South:
		extent = geom.Clamp(r.start.H+dy, em.MinExtent, vp.H-m.ViewportGap)
	}
	r.session.SetGroupExtent(e, extent)
}

func (r *Resize) updateFloating(dx, dy int) {
	m := r.session.Metrics()
	vp := r.session.Viewport()
	floor := m.FloatMin[r.panel]
	maxW, maxH := vp.W-m.ViewportGap, vp.H-m.ViewportGap

	next := r.start
	if r.dir&East != 0 {
		next.W = geom.Clamp(r.start.W+dx, floor.W, maxW)
	}
	if r.dir&South != 0 {
		next.H = geom.Clamp(r.start.H+dy, floor.H, maxH)
	}
	if r.dir&West != 0 {
		next.W = geom.Clamp(r.start.W-dx, floor.W, maxW)
		next.X = r.start.Right() - next.W
	}
	if r.dir&North != 0 {
		next.H = geom.Clamp(r.start.H-dy, floor.H, maxH)
		next.Y = r.start.Bottom() - next.H
	}
	next.X = geom.Clamp(next.X, 0, vp.W-next.W)
	next.Y = geom.Clamp(next.Y, 0, vp.H-next.H)
	r.session.SetFloatRect(r.panel, next)
}

// End finishes the resize.
func (r *Resize) End() {
	r.state = StateIdle
	r.dir = 0
}
