package drag

import (
	"math"
	"testing"

	"github.com/pyducation/pyducation/internal/dock"
	"github.com/pyducation/pyducation/internal/geom"
)

func newSession(t *testing.T) (*dock.Session, *dock.Frame, *dock.Frame) {
	t.Helper()
	repl := dock.NewFrame(dock.REPL)
	explorer := dock.NewFrame(dock.Explorer)
	s := dock.NewSession(dock.PixelMetrics(), repl, explorer)
	s.SetViewport(geom.Size{W: 1200, H: 800})
	return s, repl, explorer
}

func dockTo(t *testing.T, s *dock.Session, id dock.PanelID, pos dock.Position) {
	t.Helper()
	if err := s.SetDockPosition(id, pos); err != nil {
		t.Fatal(err)
	}
}

func TestMoveClampsToViewport(t *testing.T) {
	s, repl, _ := newSession(t)
	m := NewMove(s)
	if !m.Begin(dock.REPL, 500, 260) {
		t.Fatal("Begin refused a floating panel")
	}

	tests := []struct {
		name string
		x, y int
		want geom.Rect
	}{
		{"delta", 400, 200, geom.Rect{X: 362, Y: 194, W: 720, H: 528}},
		{"past top-left", -5000, -5000, geom.Rect{X: 8, Y: 8, W: 720, H: 528}},
		{"past bottom-right", 5000, 5000, geom.Rect{X: 472, Y: 264, W: 720, H: 528}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.Update(tt.x, tt.y)
			if repl.Rect() != tt.want {
				t.Errorf("rect = %+v, want %+v", repl.Rect(), tt.want)
			}
		})
	}

	m.End()
	if m.Active() {
		t.Error("controller should be idle after End")
	}
	s.Apply()
	if want := (geom.Rect{X: 472, Y: 264, W: 720, H: 528}); repl.Rect() != want {
		t.Errorf("rect after relayout = %+v, want %+v", repl.Rect(), want)
	}
}

func TestMoveRefusesDockedAndMaximized(t *testing.T) {
	s, _, _ := newSession(t)
	m := NewMove(s)

	dockTo(t, s, dock.REPL, dock.Bottom)
	if m.Begin(dock.REPL, 10, 410) {
		t.Error("Begin accepted a docked panel")
	}

	s.ToggleMaximize(dock.Explorer)
	if m.Begin(dock.Explorer, 10, 10) {
		t.Error("Begin accepted a maximized panel")
	}

	m.Update(100, 100)
	if m.Active() {
		t.Error("Update without Begin should stay idle")
	}
}

func TestResizeFloating(t *testing.T) {
	tests := []struct {
		name   string
		panel  dock.PanelID
		dir    Dir
		dx, dy int
		want   geom.Rect
	}{
		{"grow east slides back on screen", dock.REPL, East, 100, 0, geom.Rect{X: 380, Y: 254, W: 820, H: 528}},
		{"shrink west hits floor", dock.REPL, West, 1000, 0, geom.Rect{X: 822, Y: 254, W: 360, H: 528}},
		{"south", dock.REPL, South, 0, -1000, geom.Rect{X: 462, Y: 254, W: 720, H: 240}},
		{"north-west", dock.Explorer, North | West, -50, -50, geom.Rect{X: 0, Y: 172, W: 610, H: 610}},
		{"explorer floor is taller", dock.Explorer, North, 0, 1000, geom.Rect{X: 18, Y: 522, W: 560, H: 260}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newSession(t)
			r := NewResize(s)
			if !r.Begin(tt.panel, tt.dir, 0, 0) {
				t.Fatal("Begin refused")
			}
			r.Update(tt.dx, tt.dy)
			if got := s.Panel(tt.panel).Rect(); got != tt.want {
				t.Errorf("rect = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResizeDocked(t *testing.T) {
	t.Run("right edge grows west", func(t *testing.T) {
		s, repl, _ := newSession(t)
		dockTo(t, s, dock.REPL, dock.Right)
		r := NewResize(s)
		r.Begin(dock.REPL, West, 600, 10)

		r.Update(500, 10)
		if want := (geom.Rect{X: 500, Y: 0, W: 700, H: 800}); repl.Rect() != want {
			t.Errorf("rect = %+v, want %+v", repl.Rect(), want)
		}
		r.Update(2000, 10)
		if got := repl.Rect().W; got != 360 {
			t.Errorf("width = %d, want floor 360", got)
		}
		r.Update(-5000, 10)
		if got := repl.Rect().W; got != 1184 {
			t.Errorf("width = %d, want 1184", got)
		}
	})

	t.Run("outward handle ignored", func(t *testing.T) {
		s, repl, _ := newSession(t)
		dockTo(t, s, dock.REPL, dock.Right)
		before := repl.Rect()
		r := NewResize(s)
		r.Begin(dock.REPL, East, 1199, 10)
		r.Update(1000, 10)
		if repl.Rect() != before {
			t.Errorf("rect changed to %+v", repl.Rect())
		}
	})

	t.Run("shared edge ignored", func(t *testing.T) {
		s, repl, _ := newSession(t)
		dockTo(t, s, dock.REPL, dock.RightTop)
		dockTo(t, s, dock.Explorer, dock.RightBottom)
		r := NewResize(s)
		r.Begin(dock.REPL, West, 600, 10)
		r.Update(400, 10)
		if got := repl.Rect().W; got != 600 {
			t.Errorf("width = %d, want 600", got)
		}
	})

	t.Run("bottom edge grows north", func(t *testing.T) {
		s, repl, _ := newSession(t)
		dockTo(t, s, dock.REPL, dock.Bottom)
		r := NewResize(s)
		r.Begin(dock.REPL, North|West, 0, 400)
		r.Update(50, 300)
		if want := (geom.Rect{X: 0, Y: 300, W: 1200, H: 500}); repl.Rect() != want {
			t.Errorf("rect = %+v, want %+v", repl.Rect(), want)
		}
	})

	t.Run("maximized refused", func(t *testing.T) {
		s, _, _ := newSession(t)
		s.ToggleMaximize(dock.REPL)
		if NewResize(s).Begin(dock.REPL, East, 0, 0) {
			t.Error("Begin accepted a maximized panel")
		}
	})
}

func TestSplitterDrag(t *testing.T) {
	t.Run("bottom pair clamps to half floor", func(t *testing.T) {
		s, repl, explorer := newSession(t)
		dockTo(t, s, dock.REPL, dock.BottomLeft)
		dockTo(t, s, dock.Explorer, dock.BottomRight)
		sp := NewSplitter(s)
		if !sp.Begin(dock.EdgeBottom) {
			t.Fatal("Begin refused a visible splitter")
		}

		sp.Update(900, 790)
		want := 1 - 320.0/1200.0
		if got := s.Group(dock.EdgeBottom).Split; math.Abs(got-want) > 1e-9 {
			t.Errorf("split = %v, want %v", got, want)
		}
		if got := repl.Rect().W; got != 880 {
			t.Errorf("left width = %d, want 880", got)
		}
		if got := explorer.Rect().W; got != 320 {
			t.Errorf("right width = %d, want 320", got)
		}

		sp.Update(700, 790)
		if got := s.Group(dock.EdgeBottom).Split; math.Abs(got-700.0/1200.0) > 1e-9 {
			t.Errorf("split = %v, want %v", got, 700.0/1200.0)
		}
		if got := repl.Rect().W; got != 700 {
			t.Errorf("left width = %d, want 700", got)
		}
	})

	t.Run("right pair floor", func(t *testing.T) {
		s, repl, _ := newSession(t)
		dockTo(t, s, dock.REPL, dock.RightTop)
		dockTo(t, s, dock.Explorer, dock.RightBottom)
		sp := NewSplitter(s)
		sp.Begin(dock.EdgeRight)
		sp.Update(900, 200)
		if got := repl.Rect().H; got != 220 {
			t.Errorf("top height = %d, want 220", got)
		}
	})

	t.Run("single half may take the whole edge", func(t *testing.T) {
		s, repl, _ := newSession(t)
		dockTo(t, s, dock.REPL, dock.RightTop)
		sp := NewSplitter(s)
		sp.Begin(dock.EdgeRight)
		sp.Update(900, 790)
		if got := repl.Rect().H; got != 790 {
			t.Errorf("height = %d, want 790", got)
		}
		sp.Update(900, 1000)
		if got := repl.Rect().H; got != 800 {
			t.Errorf("height = %d, want 800", got)
		}
	})

	t.Run("hidden splitter", func(t *testing.T) {
		s, _, _ := newSession(t)
		dockTo(t, s, dock.REPL, dock.Right)
		if NewSplitter(s).Begin(dock.EdgeRight) {
			t.Error("Begin accepted a hidden splitter")
		}
	})
}

func TestControllersExclusive(t *testing.T) {
	s, repl, _ := newSession(t)
	c := NewControllers(s)

	if !c.Down(Target{Kind: TargetHeader, Panel: dock.REPL}, 500, 260) {
		t.Fatal("move did not start")
	}
	if c.Down(Target{Kind: TargetHandle, Panel: dock.Explorer, Dir: East}, 0, 0) {
		t.Error("second interaction started during a move")
	}
	if !c.Motion(510, 270) {
		t.Error("Motion not consumed")
	}
	if want := (geom.Rect{X: 472, Y: 264, W: 720, H: 528}); repl.Rect() != want {
		t.Errorf("rect = %+v, want %+v", repl.Rect(), want)
	}
	c.Up()
	if c.Busy() {
		t.Error("controllers busy after Up")
	}
	if c.Motion(0, 0) {
		t.Error("Motion consumed while idle")
	}
}

func TestHitTest(t *testing.T) {
	s, _, _ := newSession(t)
	order := []dock.PanelID{dock.REPL, dock.Explorer}

	// Explorer floats at {18,222,560,560}.
	floating := []struct {
		name string
		x, y int
		want Target
	}{
		{"corner", 18, 222, Target{Kind: TargetHandle, Panel: dock.Explorer, Dir: North | West}},
		{"header", 300, 230, Target{Kind: TargetHeader, Panel: dock.Explorer}},
		{"west border", 20, 500, Target{Kind: TargetHandle, Panel: dock.Explorer, Dir: West}},
		{"south border", 300, 781, Target{Kind: TargetHandle, Panel: dock.Explorer, Dir: South}},
		{"body", 300, 500, Target{Kind: TargetBody, Panel: dock.Explorer}},
		{"nothing", 5, 5, Target{}},
	}
	for _, tt := range floating {
		t.Run(tt.name, func(t *testing.T) {
			if got := HitTest(s, order, tt.x, tt.y); got != tt.want {
				t.Errorf("HitTest(%d, %d) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	dockTo(t, s, dock.REPL, dock.RightTop)
	dockTo(t, s, dock.Explorer, dock.RightBottom)
	docked := []struct {
		name string
		x, y int
		want Target
	}{
		{"splitter", 700, 399, Target{Kind: TargetSplitter, Edge: dock.EdgeRight}},
		{"inner border", 602, 100, Target{Kind: TargetHandle, Panel: dock.REPL, Dir: West}},
		{"header", 900, 10, Target{Kind: TargetHeader, Panel: dock.REPL}},
		{"outer border is body", 1199, 200, Target{Kind: TargetBody, Panel: dock.REPL}},
		{"lower panel", 900, 600, Target{Kind: TargetBody, Panel: dock.Explorer}},
	}
	for _, tt := range docked {
		t.Run(tt.name, func(t *testing.T) {
			if got := HitTest(s, order, tt.x, tt.y); got != tt.want {
				t.Errorf("HitTest(%d, %d) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestParseDir(t *testing.T) {
	if got := ParseDir("nw"); got != North|West {
		t.Errorf("ParseDir(nw) = %v", got)
	}
	if got := (South | East).String(); got != "se" {
		t.Errorf("String() = %q, want se", got)
	}
}
