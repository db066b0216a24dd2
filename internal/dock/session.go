// Package dock implements the panel docking engine: two panels that float
// freely or attach to any of the four viewport edges, whole or in halves,
// with shared per-edge sizing and a splitter between co-docked halves.
//
// A Session owns all logical state (assignments, edge groups, remembered
// floating rectangles) and re-derives every rectangle from it on each
// Apply. Panels are reached only through the Panel interface.
package dock

import (
	"fmt"

	"github.com/pyducation/pyducation/internal/geom"
)

// Session is the layout state of one desktop. It is not safe for concurrent
// use; callers drive it from a single event loop.
type Session struct {
	metrics  Metrics
	viewport geom.Size
	panels   [2]Panel
	assign   [2]Position
	groups   [4]Group
	floats   [2]FloatState

	splitters [4]Splitter
	expand    ExpandButton

	// OnApply, when set, runs after every layout pass.
	OnApply func(Layout)
}

// NewSession binds the two panels to a fresh session. Both start floating.
func NewSession(m Metrics, repl, explorer Panel) *Session {
	s := &Session{metrics: m}
	s.panels[REPL] = repl
	s.panels[Explorer] = explorer
	for _, e := range Edges {
		s.splitters[e] = Splitter{Edge: e}
	}
	return s
}

func (s *Session) Metrics() Metrics               { return s.metrics }
func (s *Session) Viewport() geom.Size            { return s.viewport }
func (s *Session) Panel(id PanelID) Panel         { return s.panels[id] }
func (s *Session) Assignment(id PanelID) Position { return s.assign[id] }
func (s *Session) Group(e Edge) Group             { return s.groups[e] }
func (s *Session) Splitter(e Edge) Splitter       { return s.splitters[e] }
func (s *Session) ExpandButton() ExpandButton     { return s.expand }

// Splitters returns the visible splitters.
func (s *Session) Splitters() []Splitter {
	var out []Splitter
	for _, sp := range s.splitters {
		if sp.Visible {
			out = append(out, sp)
		}
	}
	return out
}

// FloatState returns the remembered floating rectangle of a panel.
func (s *Session) FloatState(id PanelID) (geom.Rect, bool) {
	return s.floats[id].Rect, s.floats[id].OK
}

// Floating reports whether the panel has no dock assignment.
func (s *Session) Floating(id PanelID) bool { return !s.assign[id].Docked() }

// SetViewport records a new viewport size and re-lays out. Logical state is
// untouched.
func (s *Session) SetViewport(size geom.Size) {
	s.viewport = size
	s.Apply()
}

// Input snapshots the current logical state as layout input.
func (s *Session) Input() Input {
	in := Input{
		Viewport: s.viewport,
		Assign:   s.assign,
		Groups:   s.groups,
		Floats:   s.floats,
	}
	for _, id := range PanelIDs {
		in.Visible[id] = s.panels[id].Visible()
		in.Flags[id] = s.panels[id].Flags()
	}
	return in
}

// Apply runs one layout pass and writes the result to the panels.
func (s *Session) Apply() {
	out := Compute(s.Input(), s.metrics)
	s.groups = out.Groups
	s.splitters = out.Splitters
	s.expand = out.Expand
	for _, id := range PanelIDs {
		p := s.panels[id]
		p.SetFlags(out.Panels[id].Flags)
		if out.Panels[id].Placed {
			p.SetRect(out.Panels[id].Rect)
		}
	}
	if s.OnApply != nil {
		s.OnApply(out)
	}
}

// CaptureFloat remembers the panel's current rectangle as its floating
// geometry.
func (s *Session) CaptureFloat(id PanelID) {
	r := s.panels[id].Rect()
	if s.panels[id].Flags().Has(FlagMinimized) {
		r.H = s.floatRect(id).H
	}
	s.floats[id] = FloatState{Rect: r, OK: true}
}

// floatRect is where the panel sits when floating and neither minimized nor
// maximized.
func (s *Session) floatRect(id PanelID) geom.Rect {
	if f := s.floats[id]; f.OK {
		return fitFloat(f.Rect, s.viewport)
	}
	return s.metrics.FloatDefaults[id].Rect(s.viewport)
}

// FloatRect returns the panel's effective floating rectangle.
func (s *Session) FloatRect(id PanelID) geom.Rect { return s.floatRect(id) }

// SetFloatRect replaces the remembered floating rectangle and re-lays out.
// Pointer controllers use it so that a dragged panel stays where it was
// dropped across later passes.
func (s *Session) SetFloatRect(id PanelID, r geom.Rect) {
	s.floats[id] = FloatState{Rect: r, OK: true}
	s.Apply()
}

// SetDockPosition assigns a panel to pos, resolving conflicts with the other
// panel on the same edge, and re-lays out. Float is the same as
// ClearDockPosition.
func (s *Session) SetDockPosition(id PanelID, pos Position) error {
	if !pos.Valid() {
		return fmt.Errorf("set dock position: invalid position %q", string(pos))
	}
	if pos == Float {
		s.ClearDockPosition(id)
		return nil
	}
	p := s.panels[id]
	if !s.assign[id].Docked() && !p.Flags().Has(FlagMaximized) {
		s.CaptureFloat(id)
	}
	p.SetFlags(p.Flags().With(FlagMaximized, false))

	other := id.Other()
	if op := s.assign[other]; op.Docked() {
		oe, _ := op.Edge()
		pe, _ := pos.Edge()
		switch {
		case op == pos:
			s.assign[other] = pos.Alt()
		case oe == pe && (pos.Full() || op.Full()):
			s.assign[other] = Float
		}
	}
	s.assign[id] = pos
	s.Apply()
	return nil
}

// ClearDockPosition sets a panel floating and re-lays out; it returns to its
// remembered floating rectangle.
func (s *Session) ClearDockPosition(id PanelID) {
	s.assign[id] = Float
	s.Apply()
}

// Occupants returns the visible panels docked to e.
func (s *Session) Occupants(e Edge) []PanelID {
	return Occupants(s.Input(), e)
}

// SplitBounds returns the clamp range for the split ratio of e.
func (s *Session) SplitBounds(e Edge) (lo, hi float64, ok bool) {
	return SplitBounds(s.Input(), s.metrics, e)
}

// SetGroupExtent stores a new dock depth for e and re-lays out.
func (s *Session) SetGroupExtent(e Edge, extent int) {
	s.groups[e].Extent = extent
	s.Apply()
}

// SetGroupSplit stores a split ratio for e and re-lays out.
func (s *Session) SetGroupSplit(e Edge, ratio float64) {
	s.groups[e].Split = ratio
	s.Apply()
}
