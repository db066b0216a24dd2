package geom

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi int
		want      int
	}{
		{"inside", 5, 0, 10, 5},
		{"below", -3, 0, 10, 0},
		{"above", 42, 0, 10, 10},
		{"inverted bounds favor low", 5, 10, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestClampFloat(t *testing.T) {
	if got := ClampFloat(0.9, 0.2, 0.8); got != 0.8 {
		t.Errorf("ClampFloat high = %v, want 0.8", got)
	}
	if got := ClampFloat(0.1, 0.2, 0.8); got != 0.2 {
		t.Errorf("ClampFloat low = %v, want 0.2", got)
	}
}

func TestRound(t *testing.T) {
	if got := Round(399.5); got != 400 {
		t.Errorf("Round(399.5) = %d, want 400", got)
	}
	if got := Round(399.49); got != 399 {
		t.Errorf("Round(399.49) = %d, want 399", got)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 5, W: 4, H: 2}
	tests := []struct {
		x, y int
		want bool
	}{
		{10, 5, true},
		{13, 6, true},
		{14, 6, false},
		{13, 7, false},
		{9, 5, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRectIntersectAndWithin(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 5, Y: 5, W: 10, H: 10}
	want := Rect{X: 5, Y: 5, W: 5, H: 5}
	if got := a.Intersect(b); got != want {
		t.Errorf("Intersect = %+v, want %+v", got, want)
	}
	if got := a.Intersect(Rect{X: 20, Y: 20, W: 1, H: 1}); !got.Empty() {
		t.Errorf("disjoint Intersect = %+v, want empty", got)
	}
	if !want.Within(a) {
		t.Error("intersection should lie within a")
	}
	if b.Within(a) {
		t.Error("b should not lie within a")
	}
}
