package dock

import (
	"fmt"
	"strings"
)

// Position is a panel's dock assignment. The zero value means floating.
type Position string

const (
	Float       Position = ""
	Right       Position = "r"
	Left        Position = "l"
	Bottom      Position = "b"
	Top         Position = "t"
	RightTop    Position = "rt"
	RightBottom Position = "rb"
	LeftTop     Position = "lt"
	LeftBottom  Position = "lb"
	TopLeft     Position = "tl"
	TopRight    Position = "tr"
	BottomLeft  Position = "bl"
	BottomRight Position = "br"
)

// Positions lists every docked assignment in menu order.
var Positions = []Position{
	Right, RightTop, RightBottom,
	Left, LeftTop, LeftBottom,
	Bottom, BottomLeft, BottomRight,
	Top, TopLeft, TopRight,
}

var positionNames = map[string]Position{
	"":             Float,
	"float":        Float,
	"none":         Float,
	"right":        Right,
	"left":         Left,
	"bottom":       Bottom,
	"top":          Top,
	"right-top":    RightTop,
	"right-bottom": RightBottom,
	"left-top":     LeftTop,
	"left-bottom":  LeftBottom,
	"top-left":     TopLeft,
	"top-right":    TopRight,
	"bottom-left":  BottomLeft,
	"bottom-right": BottomRight,
}

// ParsePosition accepts either the short symbol ("rt") or the long name
// ("right-top"). "float", "none" and the empty string all mean floating.
func ParsePosition(s string) (Position, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if p, ok := positionNames[s]; ok {
		return p, nil
	}
	p := Position(s)
	if p.Valid() {
		return p, nil
	}
	return Float, fmt.Errorf("unknown dock position %q", s)
}

// Valid reports whether p is Float or one of the twelve dock symbols.
func (p Position) Valid() bool {
	if p == Float {
		return true
	}
	for _, q := range Positions {
		if p == q {
			return true
		}
	}
	return false
}

// Docked reports whether p attaches the panel to an edge.
func (p Position) Docked() bool { return p != Float }

// Full reports whether p claims a whole edge.
func (p Position) Full() bool { return len(p) == 1 }

// Edge returns the edge p belongs to.
func (p Position) Edge() (Edge, bool) {
	if p == Float {
		return 0, false
	}
	switch p[0] {
	case 'r':
		return EdgeRight, true
	case 'l':
		return EdgeLeft, true
	case 'b':
		return EdgeBottom, true
	case 't':
		return EdgeTop, true
	}
	return 0, false
}

// Alt returns the opposite half on the same edge. Full-edge positions have
// no alternate and yield Float.
func (p Position) Alt() Position {
	switch p {
	case RightTop:
		return RightBottom
	case RightBottom:
		return RightTop
	case LeftTop:
		return LeftBottom
	case LeftBottom:
		return LeftTop
	case TopLeft:
		return TopRight
	case TopRight:
		return TopLeft
	case BottomLeft:
		return BottomRight
	case BottomRight:
		return BottomLeft
	}
	return Float
}

// String returns the long name, or "float".
func (p Position) String() string {
	switch p {
	case Float:
		return "float"
	case Right:
		return "right"
	case Left:
		return "left"
	case Bottom:
		return "bottom"
	case Top:
		return "top"
	}
	if e, ok := p.Edge(); ok {
		half := "left"
		switch p[1] {
		case 't':
			half = "top"
		case 'b':
			half = "bottom"
		case 'r':
			half = "right"
		}
		return e.String() + "-" + half
	}
	return string(p)
}

// Edge is one of the four viewport sides panels can attach to.
type Edge int

const (
	EdgeRight Edge = iota
	EdgeLeft
	EdgeBottom
	EdgeTop
)

// Edges is the order layout passes visit the edges in.
var Edges = [4]Edge{EdgeRight, EdgeLeft, EdgeBottom, EdgeTop}

// Side reports whether the edge is a vertical side (right or left). Side
// edges stack their occupants top to bottom and size by width; the others
// place occupants left to right and size by height.
func (e Edge) Side() bool { return e == EdgeRight || e == EdgeLeft }

// Full returns the full-edge position.
func (e Edge) Full() Position {
	return [...]Position{Right, Left, Bottom, Top}[e]
}

// FirstHalf returns the half that starts at the low coordinate.
func (e Edge) FirstHalf() Position {
	return [...]Position{RightTop, LeftTop, BottomLeft, TopLeft}[e]
}

// SecondHalf returns the half that ends at the high coordinate.
func (e Edge) SecondHalf() Position {
	return e.FirstHalf().Alt()
}

func (e Edge) String() string {
	return [...]string{"right", "left", "bottom", "top"}[e]
}

// ParseEdge parses "right", "left", "bottom" or "top" (or their initials).
func ParseEdge(s string) (Edge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right", "r":
		return EdgeRight, nil
	case "left", "l":
		return EdgeLeft, nil
	case "bottom", "b":
		return EdgeBottom, nil
	case "top", "t":
		return EdgeTop, nil
	}
	return 0, fmt.Errorf("unknown dock edge %q", s)
}
