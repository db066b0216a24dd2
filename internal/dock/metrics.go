package dock

import "github.com/pyducation/pyducation/internal/geom"

// EdgeMetrics holds the size floors of one pair of opposite edges.
type EdgeMetrics struct {
	// MinExtent is the smallest dock depth (width for side edges, height
	// for bottom/top).
	MinExtent int
	// MinHalf is the smallest length of one half when an edge is split.
	MinHalf int
}

// Anchor selects the viewport corner a default floating rectangle hugs.
type Anchor int

const (
	AnchorBottomRight Anchor = iota
	AnchorBottomLeft
)

// FloatDefault describes where a panel floats when nothing was captured.
type FloatDefault struct {
	Anchor Anchor
	Margin int
	W      int
	// H is capped at HeightFrac of the viewport height.
	H          int
	HeightFrac float64
}

// Rect resolves the default against a viewport.
func (d FloatDefault) Rect(vp geom.Size) geom.Rect {
	w := min(d.W, vp.W)
	h := min(geom.Round(float64(vp.H)*d.HeightFrac), d.H, vp.H)
	y := vp.H - d.Margin - h
	x := d.Margin
	if d.Anchor == AnchorBottomRight {
		x = vp.W - d.Margin - w
	}
	return geom.Rect{
		X: geom.Clamp(x, 0, vp.W-w),
		Y: geom.Clamp(y, 0, vp.H-h),
		W: w,
		H: h,
	}
}

// Metrics collects every numeric policy of the engine. Geometry is unitless;
// PixelMetrics and CellMetrics give the two scales in use.
type Metrics struct {
	Side EdgeMetrics // right and left
	Band EdgeMetrics // bottom and top

	// ViewportGap is how much of the viewport a dock may never cover.
	ViewportGap int

	// FloatMin is the free-resize floor per panel.
	FloatMin [2]geom.Size

	// MoveMargin keeps dragged panels this far from the viewport border.
	MoveMargin int

	SplitterThickness int
	SplitterOffset    int

	// Grip is the width of the resize band along a panel's border.
	Grip int

	// HeaderHeight is what remains of a minimized panel.
	HeaderHeight int

	ExpandButton geom.Size

	FloatDefaults [2]FloatDefault
}

// Edge returns the floors for e.
func (m Metrics) Edge(e Edge) EdgeMetrics {
	if e.Side() {
		return m.Side
	}
	return m.Band
}

// PixelMetrics reproduces the page-scale constants of the browser desktop.
func PixelMetrics() Metrics {
	return Metrics{
		Side:        EdgeMetrics{MinExtent: 360, MinHalf: 220},
		Band:        EdgeMetrics{MinExtent: 260, MinHalf: 320},
		ViewportGap: 16,
		FloatMin: [2]geom.Size{
			REPL:     {W: 360, H: 240},
			Explorer: {W: 360, H: 260},
		},
		MoveMargin:        8,
		SplitterThickness: 6,
		SplitterOffset:    3,
		Grip:              6,
		HeaderHeight:      36,
		ExpandButton:      geom.Size{W: 28, H: 28},
		FloatDefaults: [2]FloatDefault{
			REPL:     {Anchor: AnchorBottomRight, Margin: 18, W: 720, H: 560, HeightFrac: 0.66},
			Explorer: {Anchor: AnchorBottomLeft, Margin: 18, W: 560, H: 600, HeightFrac: 0.70},
		},
	}
}

// CellMetrics scales the same policy to terminal cells.
func CellMetrics() Metrics {
	return Metrics{
		Side:        EdgeMetrics{MinExtent: 30, MinHalf: 6},
		Band:        EdgeMetrics{MinExtent: 8, MinHalf: 28},
		ViewportGap: 2,
		FloatMin: [2]geom.Size{
			REPL:     {W: 28, H: 6},
			Explorer: {W: 28, H: 8},
		},
		MoveMargin:        0,
		SplitterThickness: 1,
		SplitterOffset:    1,
		Grip:              1,
		HeaderHeight:      1,
		ExpandButton:      geom.Size{W: 2, H: 1},
		FloatDefaults: [2]FloatDefault{
			REPL:     {Anchor: AnchorBottomRight, Margin: 1, W: 72, H: 28, HeightFrac: 0.66},
			Explorer: {Anchor: AnchorBottomLeft, Margin: 1, W: 48, H: 30, HeightFrac: 0.70},
		},
	}
}
