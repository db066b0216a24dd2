package dock

import "github.com/pyducation/pyducation/internal/geom"

// Group is the sizing state of one edge, shared by whichever panels
// occupy it.
type Group struct {
	// Extent is the dock depth: width on side edges, height on the others.
	// Zero means not seeded yet.
	Extent int
	// Split divides the edge between its first and second half.
	Split float64
	// PrevCount is the occupant count seen by the last layout pass.
	PrevCount int
}

// Splitter is the drag bar between the two halves of an edge.
type Splitter struct {
	Edge    Edge
	Visible bool
	Rect    geom.Rect
}

// ExpandButton is the explorer's compact-view toggle.
type ExpandButton struct {
	Visible bool
	Rect    geom.Rect
	// Label is ">>" while the explorer is compact, "<<" otherwise.
	Label string
}

// FloatState is a remembered floating rectangle.
type FloatState struct {
	Rect geom.Rect
	OK   bool
}
