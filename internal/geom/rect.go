// Package geom provides the small amount of integer rectangle math shared by
// the docking engine, the pointer controllers and the renderer.
package geom

import "math"

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y int
	W, H int
}

// Clamp restricts v to [lo, hi]. When lo > hi the lower bound wins, the same
// way max(lo, min(hi, v)) resolves it.
func Clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// ClampFloat is Clamp for ratios.
func ClampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Round rounds half away from zero.
func Round(v float64) int {
	return int(math.Round(v))
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether the point (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersect returns the overlapping area of r and o, or the zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.Right(), o.Right())
	y1 := min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Within reports whether r lies entirely inside o.
func (r Rect) Within(o Rect) bool {
	return r.X >= o.X && r.Y >= o.Y && r.Right() <= o.Right() && r.Bottom() <= o.Bottom()
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// CenterY returns the vertical midpoint, rounded down.
func (r Rect) CenterY() int {
	return r.Y + r.H/2
}

// Size is a viewport dimension pair.
type Size struct {
	W, H int
}

// Bounds returns the rectangle covering the whole size.
func (s Size) Bounds() Rect {
	return Rect{W: s.W, H: s.H}
}
