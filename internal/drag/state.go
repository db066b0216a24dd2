// Package drag implements the three pointer interactions of the docking
// desktop as explicit state machines: moving a floating panel by its header,
// resizing a panel from a border handle, and dragging an edge splitter.
//
// Each machine is idle until Begin succeeds, turns every Update into
// session input while active, and returns to idle on End. Controllers
// holds one of each and lets only one be active per pointer sequence.
package drag

import (
	"strings"

	"github.com/pyducation/pyducation/internal/dock"
)

// State is the phase of a pointer interaction.
type State int

const (
	StateIdle State = iota
	StateActive
)

// Dir is a set of resize directions.
type Dir uint8

const (
	North Dir = 1 << iota
	South
	East
	West
)

// Has reports whether every direction in o is part of d.
func (d Dir) Has(o Dir) bool { return d&o == o && o != 0 }

func (d Dir) String() string {
	var b strings.Builder
	if d&North != 0 {
		b.WriteByte('n')
	}
	if d&South != 0 {
		b.WriteByte('s')
	}
	if d&East != 0 {
		b.WriteByte('e')
	}
	if d&West != 0 {
		b.WriteByte('w')
	}
	return b.String()
}

// ParseDir reads a handle name such as "n", "se" or "nw".
func ParseDir(s string) Dir {
	var d Dir
	for _, r := range strings.ToLower(s) {
		switch r {
		case 'n':
			d |= North
		case 's':
			d |= South
		case 'e':
			d |= East
		case 'w':
			d |= West
		}
	}
	return d
}

// Inward returns the single direction that grows a dock on e into the
// viewport.
func Inward(e dock.Edge) Dir {
	switch e {
	case dock.EdgeRight:
		return West
	case dock.EdgeLeft:
		return East
	case dock.EdgeBottom:
		return North
	default:
		return South
	}
}
