package core

import "testing"

func TestDirectionVector(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Vector
	}{
		{East, Vector{X: 1}},
		{North, Vector{Y: 1}},
		{West, Vector{X: -1}},
		{South, Vector{Y: -1}},
	}
	for _, tt := range tests {
		if got := tt.dir.Vector(); got != tt.want {
			t.Errorf("%s.Vector() = %v, want %v", tt.dir, got, tt.want)
		}
	}
}

func TestDirectionOpposite(t *testing.T) {
	for d := Direction(0); d < 4; d++ {
		if got := d.Opposite().Opposite(); got != d {
			t.Errorf("%s.Opposite().Opposite() = %s", d, got)
		}
		if d.Opposite().Vector() != d.Vector().Neg() {
			t.Errorf("%s.Opposite() vector is not the negation", d)
		}
	}
}

func TestVectorRotated(t *testing.T) {
	v := Vector{X: 3, Y: 1}
	tests := []struct {
		by   Direction
		want Vector
	}{
		{East, Vector{X: 3, Y: 1}},
		{North, Vector{X: -1, Y: 3}},
		{West, Vector{X: -3, Y: -1}},
		{South, Vector{X: 1, Y: -3}},
	}
	for _, tt := range tests {
		if got := v.Rotated(tt.by); got != tt.want {
			t.Errorf("Rotated(%s) = %v, want %v", tt.by, got, tt.want)
		}
	}
}

func TestDirOf(t *testing.T) {
	tests := []struct {
		v    Vector
		want Direction
		ok   bool
	}{
		{Vector{X: 5}, East, true},
		{Vector{X: -2}, West, true},
		{Vector{Y: 7}, North, true},
		{Vector{Y: -1}, South, true},
		{Vector{X: 1, Y: 1}, 0, false},
		{Vector{}, 0, false},
	}
	for _, tt := range tests {
		got, ok := DirOf(tt.v)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("DirOf(%v) = %v, %v, want %v, %v", tt.v, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBoxOverlaps(t *testing.T) {
	a := Box{Min: Point{0, 0}, Max: Point{10, 10}}
	tests := []struct {
		name string
		b    Box
		want bool
	}{
		{"inside", Box{Min: Point{2, 2}, Max: Point{8, 8}}, true},
		{"partial", Box{Min: Point{5, 5}, Max: Point{15, 15}}, true},
		{"touching edge", Box{Min: Point{10, 0}, Max: Point{20, 10}}, false},
		{"disjoint", Box{Min: Point{20, 20}, Max: Point{30, 30}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(a); got != tt.want {
				t.Errorf("Overlaps reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxEnlargedContains(t *testing.T) {
	b := BoxOf(Point{5, 5}, Point{1, 1}).Enlarged(2)
	if b.Min != (Point{-1, -1}) || b.Max != (Point{7, 7}) {
		t.Fatalf("Enlarged = %v", b)
	}
	if !b.Contains(Point{-1, 7}) {
		t.Errorf("Contains(%v) = false on the border", Point{-1, 7})
	}
	if b.Contains(Point{8, 0}) {
		t.Errorf("Contains(%v) = true outside", Point{8, 0})
	}
}

func TestPathLength(t *testing.T) {
	p := Path{Points: []Point{{0, 0}, {100, 0}, {100, 50}, {20, 50}}}
	if got := p.Length(); got != 230 {
		t.Errorf("Length = %d, want 230", got)
	}
	if got := (Path{}).Length(); got != 0 {
		t.Errorf("empty Length = %d, want 0", got)
	}
}
