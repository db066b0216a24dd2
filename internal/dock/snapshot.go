package dock

import (
	"fmt"

	"github.com/pyducation/pyducation/internal/geom"
)

// Snapshot is the serialisable logical state of a session.
type Snapshot struct {
	Panels []PanelSnapshot `toml:"panel"`
	Groups []GroupSnapshot `toml:"group"`
}

// PanelSnapshot is one panel's assignment, flags and float cache.
type PanelSnapshot struct {
	Name      string `toml:"name"`
	Dock      string `toml:"dock"`
	Visible   bool   `toml:"visible"`
	Minimized bool   `toml:"minimized"`
	Mini      bool   `toml:"mini"`
	Float     []int  `toml:"float,omitempty"`
}

// GroupSnapshot is one edge group.
type GroupSnapshot struct {
	Edge   string  `toml:"edge"`
	Extent int     `toml:"extent"`
	Split  float64 `toml:"split"`
}

// Snapshot captures the session. Maximized panels are saved as floating.
func (s *Session) Snapshot() Snapshot {
	var snap Snapshot
	for _, id := range PanelIDs {
		p := s.panels[id]
		ps := PanelSnapshot{
			Name:      id.String(),
			Dock:      string(s.assign[id]),
			Visible:   p.Visible(),
			Minimized: p.Flags().Has(FlagMinimized),
			Mini:      p.Flags().Has(FlagMini),
		}
		if f := s.floats[id]; f.OK {
			ps.Float = []int{f.Rect.X, f.Rect.Y, f.Rect.W, f.Rect.H}
		}
		snap.Panels = append(snap.Panels, ps)
	}
	for _, e := range Edges {
		g := s.groups[e]
		snap.Groups = append(snap.Groups, GroupSnapshot{Edge: e.String(), Extent: g.Extent, Split: g.Split})
	}
	return snap
}

// Restore loads a snapshot and re-lays out. Entries that fail to parse are
// reported and nothing is changed.
func (s *Session) Restore(snap Snapshot) error {
	assign := s.assign
	floats := s.floats
	groups := s.groups
	flags := [2]Flags{s.panels[REPL].Flags(), s.panels[Explorer].Flags()}
	visible := [2]bool{s.panels[REPL].Visible(), s.panels[Explorer].Visible()}

	for _, ps := range snap.Panels {
		id, err := ParsePanelID(ps.Name)
		if err != nil {
			return fmt.Errorf("restore layout: %w", err)
		}
		pos := Position(ps.Dock)
		if !pos.Valid() {
			return fmt.Errorf("restore layout: %s: invalid position %q", ps.Name, ps.Dock)
		}
		assign[id] = pos
		visible[id] = ps.Visible || id == REPL
		flags[id] = flags[id].
			With(FlagMinimized, ps.Minimized).
			With(FlagMini, ps.Mini).
			With(FlagMaximized, false)
		switch len(ps.Float) {
		case 0:
			floats[id] = FloatState{}
		case 4:
			r := geom.Rect{X: ps.Float[0], Y: ps.Float[1], W: ps.Float[2], H: ps.Float[3]}
			if r.Empty() {
				return fmt.Errorf("restore layout: %s: float size %dx%d is not positive", ps.Name, r.W, r.H)
			}
			floats[id] = FloatState{OK: true, Rect: r}
		default:
			return fmt.Errorf("restore layout: %s: float needs 4 values, got %d", ps.Name, len(ps.Float))
		}
	}
	for _, gs := range snap.Groups {
		e, err := ParseEdge(gs.Edge)
		if err != nil {
			return fmt.Errorf("restore layout: %w", err)
		}
		groups[e].Extent = gs.Extent
		groups[e].Split = gs.Split
	}

	// Same-edge conflicts in a hand-edited file resolve the way
	// SetDockPosition would have with the REPL docked last: a shared slot
	// moves the explorer to the other half, a full edge floats it.
	if ea, ok := assign[REPL].Edge(); ok && assign[Explorer].Docked() {
		eb, _ := assign[Explorer].Edge()
		switch {
		case assign[REPL] == assign[Explorer]:
			assign[Explorer] = assign[REPL].Alt()
		case ea == eb && (assign[REPL].Full() || assign[Explorer].Full()):
			assign[Explorer] = Float
		}
	}

	s.assign = assign
	s.floats = floats
	s.groups = groups
	for _, id := range PanelIDs {
		s.panels[id].SetFlags(flags[id])
		s.panels[id].SetVisible(visible[id])
	}
	// Saved extents and splits are not first population; keep them.
	in := s.Input()
	for _, e := range Edges {
		s.groups[e].PrevCount = len(Occupants(in, e))
	}
	s.Apply()
	return nil
}
