package drag

import (
	"github.com/pyducation/pyducation/internal/dock"
	"github.com/pyducation/pyducation/internal/geom"
)

// Splitter drags the bar between the halves of an edge.
type Splitter struct {
	session *dock.Session
	state   State
	edge    dock.Edge
}

// NewSplitter returns an idle splitter controller.
func NewSplitter(s *dock.Session) *Splitter {
	return &Splitter{session: s}
}

// Active reports whether a splitter drag is in progress.
func (sp *Splitter) Active() bool { return sp.state == StateActive }

// Edge returns the edge whose splitter is held.
func (sp *Splitter) Edge() dock.Edge { return sp.edge }

// Begin grabs the splitter of e if it is shown.
func (sp *Splitter) Begin(e dock.Edge) bool {
	if !sp.session.Splitter(e).Visible {
		return false
	}
	sp.state = StateActive
	sp.edge = e
	return true
}

// Update turns the absolute pointer position into the edge's split ratio:
// the row for side edges, the column for the others.
func (sp *Splitter) Update(x, y int) {
	if sp.state != StateActive {
		return
	}
	lo, hi, ok := sp.session.SplitBounds(sp.edge)
	if !ok {
		return
	}
	vp := sp.session.Viewport()
	if vp.W <= 0 || vp.H <= 0 {
		return
	}
	var ratio float64
	if sp.edge.Side() {
		ratio = float64(y) / float64(vp.H)
	} else {
		ratio = float64(x) / float64(vp.W)
	}
	ratio = geom.ClampFloat(ratio, 0, 1)
	sp.session.SetGroupSplit(sp.edge, geom.ClampFloat(ratio, lo, hi))
}

// End releases the splitter.
func (sp *Splitter) End() {
	sp.state = StateIdle
}
