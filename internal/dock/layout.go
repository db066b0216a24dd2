package dock

import "github.com/pyducation/pyducation/internal/geom"

// Input is everything a layout pass depends on.
type Input struct {
	Viewport geom.Size
	Assign   [2]Position
	Visible  [2]bool
	Flags    [2]Flags
	Groups   [4]Group
	Floats   [2]FloatState
}

// Placement is the computed rectangle of one panel. Hidden panels are not
// placed and keep whatever geometry they had.
type Placement struct {
	Rect   geom.Rect
	Placed bool
	Flags  Flags
}

// Layout is the result of a pass: panel geometry, the updated edge groups,
// the four splitters and the explorer expand button.
type Layout struct {
	Panels    [2]Placement
	Groups    [4]Group
	Splitters [4]Splitter
	Expand    ExpandButton
}

// Compute runs one full layout pass. It does not read or mutate anything but
// its arguments, so calling it twice on the same Input yields the same
// Layout, and feeding a result's Groups back in is a fixed point.
func Compute(in Input, m Metrics) Layout {
	out := Layout{Groups: in.Groups}
	vp := in.Viewport

	for _, e := range Edges {
		out.Splitters[e] = Splitter{Edge: e}
		layoutEdge(&out, in, m, e)
	}

	for _, id := range PanelIDs {
		if !in.Visible[id] {
			out.Panels[id].Flags = in.Flags[id]
			continue
		}
		p := &out.Panels[id]
		flags := in.Flags[id]
		if in.Assign[id].Docked() {
			flags = flags.With(FlagDocked, true).With(FlagMaximized, false)
		} else {
			flags = flags.With(FlagDocked, false)
			switch {
			case flags.Has(FlagMaximized):
				p.Rect = vp.Bounds()
			case in.Floats[id].OK:
				p.Rect = fitFloat(in.Floats[id].Rect, vp)
			default:
				p.Rect = m.FloatDefaults[id].Rect(vp)
			}
			p.Placed = true
		}
		if flags.Has(FlagMinimized) && !flags.Has(FlagMaximized) && p.Placed {
			p.Rect = collapse(p.Rect, in.Assign[id], m.HeaderHeight)
		}
		p.Flags = flags
	}

	out.Expand = expandButton(out.Panels[Explorer], in.Visible[Explorer], m)
	return out
}

// Occupants returns the visible panels assigned to e, in priority order.
func Occupants(in Input, e Edge) []PanelID {
	var ids []PanelID
	for _, id := range PanelIDs {
		if !in.Visible[id] {
			continue
		}
		if pe, ok := in.Assign[id].Edge(); ok && pe == e {
			ids = append(ids, id)
		}
	}
	return ids
}

// SplitBounds returns the range a split ratio on e is clamped to for the
// current occupancy. ok is false when nothing occupies e.
func SplitBounds(in Input, m Metrics, e Edge) (lo, hi float64, ok bool) {
	occ := Occupants(in, e)
	if len(occ) == 0 {
		return 0, 0, false
	}
	minRatio := float64(m.Edge(e).MinHalf) / float64(span(in.Viewport, e))
	if len(occ) == 1 {
		switch in.Assign[occ[0]] {
		case e.FirstHalf():
			return minRatio, 1, true
		case e.SecondHalf():
			return 0, 1 - minRatio, true
		}
	}
	return minRatio, 1 - minRatio, true
}

func layoutEdge(out *Layout, in Input, m Metrics, e Edge) {
	g := &out.Groups[e]
	occ := Occupants(in, e)
	n := len(occ)
	defer func() { g.PrevCount = n }()

	if n == 0 {
		return
	}

	vp := in.Viewport
	depth := vp.H
	if e.Side() {
		depth = vp.W
	}
	if g.PrevCount == 0 || g.Extent == 0 {
		g.Extent = geom.Round(float64(depth) / 2)
		if g.PrevCount == 0 {
			g.Split = 0.5
		}
	}
	if n == 2 && g.PrevCount != 2 {
		g.Split = 0.5
	}

	em := m.Edge(e)
	// The floor wins over the gap but never over the viewport itself.
	g.Extent = min(geom.Clamp(g.Extent, em.MinExtent, depth-m.ViewportGap), depth)
	total := span(vp, e)

	for _, id := range occ {
		if in.Assign[id] == e.Full() {
			place(out, id, slot(vp, e, g.Extent, 0, total))
			return
		}
	}

	lo, hi, _ := SplitBounds(in, m, e)
	g.Split = geom.ClampFloat(g.Split, lo, hi)
	first := geom.Clamp(geom.Round(float64(total)*g.Split), 0, total)

	if n == 2 {
		a := occ[0]
		if in.Assign[occ[1]] == e.FirstHalf() && in.Assign[occ[0]] != e.FirstHalf() {
			a = occ[1]
		}
		place(out, a, slot(vp, e, g.Extent, 0, first))
		place(out, a.Other(), slot(vp, e, g.Extent, first, total-first))
	} else {
		id := occ[0]
		if in.Assign[id] == e.SecondHalf() {
			place(out, id, slot(vp, e, g.Extent, first, total-first))
		} else {
			place(out, id, slot(vp, e, g.Extent, 0, first))
		}
	}

	out.Splitters[e] = Splitter{
		Edge:    e,
		Visible: true,
		Rect:    splitterRect(vp, e, g.Extent, first-m.SplitterOffset, m.SplitterThickness),
	}
}

func place(out *Layout, id PanelID, r geom.Rect) {
	out.Panels[id].Rect = r
	out.Panels[id].Placed = true
}

// span is the length of e along which halves are laid out.
func span(vp geom.Size, e Edge) int {
	if e.Side() {
		return vp.H
	}
	return vp.W
}

// slot returns the rectangle of a dock on e that is extent deep and covers
// [offset, offset+length) along the edge.
func slot(vp geom.Size, e Edge, extent, offset, length int) geom.Rect {
	switch e {
	case EdgeRight:
		return geom.Rect{X: vp.W - extent, Y: offset, W: extent, H: length}
	case EdgeLeft:
		return geom.Rect{X: 0, Y: offset, W: extent, H: length}
	case EdgeBottom:
		return geom.Rect{X: offset, Y: vp.H - extent, W: length, H: extent}
	default:
		return geom.Rect{X: offset, Y: 0, W: length, H: extent}
	}
}

func splitterRect(vp geom.Size, e Edge, extent, at, thickness int) geom.Rect {
	switch e {
	case EdgeRight:
		return geom.Rect{X: vp.W - extent, Y: at, W: extent, H: thickness}
	case EdgeLeft:
		return geom.Rect{X: 0, Y: at, W: extent, H: thickness}
	case EdgeBottom:
		return geom.Rect{X: at, Y: vp.H - extent, W: thickness, H: extent}
	default:
		return geom.Rect{X: at, Y: 0, W: thickness, H: extent}
	}
}

// fitFloat shrinks r to the viewport and slides it back on screen.
func fitFloat(r geom.Rect, vp geom.Size) geom.Rect {
	r.W = min(r.W, vp.W)
	r.H = min(r.H, vp.H)
	r.X = geom.Clamp(r.X, 0, vp.W-r.W)
	r.Y = geom.Clamp(r.Y, 0, vp.H-r.H)
	return r
}

// collapse reduces r to its header. Panels docked to the bottom edge keep
// their header on the viewport floor.
func collapse(r geom.Rect, pos Position, header int) geom.Rect {
	h := min(header, r.H)
	if e, ok := pos.Edge(); ok && e == EdgeBottom {
		r.Y = r.Bottom() - h
	}
	r.H = h
	return r
}

func expandButton(p Placement, visible bool, m Metrics) ExpandButton {
	label := "<<"
	if p.Flags.Has(FlagMini) {
		label = ">>"
	}
	body := geom.Rect{X: p.Rect.X, Y: p.Rect.Y + m.HeaderHeight, W: p.Rect.W, H: p.Rect.H - m.HeaderHeight}
	if !visible || !p.Placed || body.H <= 0 {
		return ExpandButton{Label: label}
	}
	return ExpandButton{
		Visible: true,
		Label:   label,
		Rect: geom.Rect{
			X: body.X,
			Y: body.Y + body.H/2 - m.ExpandButton.H/2,
			W: m.ExpandButton.W,
			H: m.ExpandButton.H,
		},
	}
}
