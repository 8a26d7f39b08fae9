package physics

import "testing"

func TestRectContains(t *testing.T) {
	target := NewRect(10, 10, 30, 20)

	tests := []struct {
		name  string
		inner Rect
		want  bool
	}{
		{"fully inside", NewRect(15, 12, 3, 10), true},
		{"same box", NewRect(10, 10, 30, 20), true},
		{"touching inner edges", NewRect(10, 10, 3, 20), true},
		{"pokes out the top", NewRect(15, 5, 3, 10), false},
		{"pokes out the bottom", NewRect(15, 25, 3, 10), false},
		{"pokes out the left", NewRect(8, 12, 3, 10), false},
		{"pokes out the right", NewRect(38, 12, 3, 10), false},
		{"disjoint", NewRect(100, 100, 3, 10), false},
		{"larger than target", NewRect(0, 0, 100, 100), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := target.Contains(tt.inner); got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.inner, got, tt.want)
			}
		})
	}
}

func TestPartialOverlapIsNotContainment(t *testing.T) {
	target := NewRect(0, 0, 10, 10)
	partial := NewRect(8, 8, 4, 4)

	if !target.Overlaps(partial) {
		t.Fatal("expected boxes to overlap")
	}
	if target.Contains(partial) {
		t.Error("partial overlap must not count as containment")
	}
}

func TestRectUnionAndTranslate(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(20, 5, 5, 20)

	u := a.Union(b)
	if u != (Rect{MinX: 0, MinY: 0, MaxX: 25, MaxY: 25}) {
		t.Errorf("Union = %+v", u)
	}
	if u.Width() != 25 || u.Height() != 25 {
		t.Errorf("size = %vx%v, want 25x25", u.Width(), u.Height())
	}

	m := a.Translate(5, -2)
	if m != (Rect{MinX: 5, MinY: -2, MaxX: 15, MaxY: 8}) {
		t.Errorf("Translate = %+v", m)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-5, 0, 10); got != 0 {
		t.Errorf("Clamp below = %v", got)
	}
	if got := Clamp(15, 0, 10); got != 10 {
		t.Errorf("Clamp above = %v", got)
	}
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp inside = %v", got)
	}
	if got := Clamp(5, 10, 0); got != 10 {
		t.Errorf("Clamp inverted range = %v, want lo", got)
	}
}
