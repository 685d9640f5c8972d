package geometry

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"mroute/core"
)

func TestCleanPoints(t *testing.T) {
	tests := []struct {
		name string
		in   []core.Point
		want []core.Point
	}{
		{
			name: "duplicates removed",
			in:   []core.Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 0}},
			want: []core.Point{{X: 0, Y: 0}, {X: 5, Y: 0}},
		},
		{
			name: "collinear collapsed",
			in:   []core.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 7, Y: 0}, {X: 7, Y: 4}, {X: 7, Y: 9}},
			want: []core.Point{{X: 0, Y: 0}, {X: 7, Y: 0}, {X: 7, Y: 9}},
		},
		{
			name: "corners kept",
			in:   []core.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}, {X: 0, Y: 5}},
			want: []core.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}, {X: 0, Y: 5}},
		},
		{
			name: "single point",
			in:   []core.Point{{X: 1, Y: 1}},
			want: []core.Point{{X: 1, Y: 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanPoints(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("CleanPoints mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name           string
		a1, a2, b1, b2 core.Point
		want           bool
	}{
		{"crossing", core.Point{X: 0, Y: 5}, core.Point{X: 10, Y: 5}, core.Point{X: 5, Y: 0}, core.Point{X: 5, Y: 10}, true},
		{"touching endpoint", core.Point{X: 0, Y: 0}, core.Point{X: 5, Y: 0}, core.Point{X: 5, Y: 0}, core.Point{X: 5, Y: 5}, true},
		{"parallel apart", core.Point{X: 0, Y: 0}, core.Point{X: 10, Y: 0}, core.Point{X: 0, Y: 3}, core.Point{X: 10, Y: 3}, false},
		{"collinear overlap", core.Point{X: 0, Y: 0}, core.Point{X: 10, Y: 0}, core.Point{X: 5, Y: 0}, core.Point{X: 15, Y: 0}, true},
		{"disjoint", core.Point{X: 0, Y: 0}, core.Point{X: 1, Y: 0}, core.Point{X: 5, Y: 5}, core.Point{X: 5, Y: 9}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentsIntersect(tt.a1, tt.a2, tt.b1, tt.b2); got != tt.want {
				t.Errorf("SegmentsIntersect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentCrossesBox(t *testing.T) {
	box := core.Box{Min: core.Point{X: 10, Y: 10}, Max: core.Point{X: 20, Y: 20}}
	tests := []struct {
		name string
		p, q core.Point
		hw   int
		want bool
	}{
		{"through the middle", core.Point{X: 0, Y: 15}, core.Point{X: 30, Y: 15}, 0, true},
		{"vertical zero width", core.Point{X: 15, Y: 0}, core.Point{X: 15, Y: 30}, 0, true},
		{"clear above", core.Point{X: 0, Y: 25}, core.Point{X: 30, Y: 25}, 0, false},
		{"clear above but wide", core.Point{X: 0, Y: 25}, core.Point{X: 30, Y: 25}, 6, true},
		{"touching border", core.Point{X: 0, Y: 20}, core.Point{X: 30, Y: 20}, 0, false},
		{"swept touching border", core.Point{X: 0, Y: 25}, core.Point{X: 30, Y: 25}, 5, false},
		{"beside the box", core.Point{X: 25, Y: 0}, core.Point{X: 25, Y: 30}, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentCrossesBox(tt.p, tt.q, tt.hw, box); got != tt.want {
				t.Errorf("SegmentCrossesBox = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPathSelfIntersects(t *testing.T) {
	straight := []core.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 20, Y: 10}}
	if PathSelfIntersects(straight) {
		t.Errorf("staircase path reported as self-intersecting")
	}
	crossing := []core.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 5, Y: 10}, {X: 5, Y: -5}}
	if !PathSelfIntersects(crossing) {
		t.Errorf("crossing path not reported")
	}
}

func TestPathsIntersect(t *testing.T) {
	a := []core.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	b := []core.Point{{X: 5, Y: -5}, {X: 5, Y: 5}}
	c := []core.Point{{X: 0, Y: 3}, {X: 10, Y: 3}}
	if !PathsIntersect(a, b) {
		t.Errorf("crossing paths not reported")
	}
	if PathsIntersect(a, c) {
		t.Errorf("parallel paths reported as intersecting")
	}
}

func TestSegmentDistance(t *testing.T) {
	tests := []struct {
		name           string
		a1, a2, b1, b2 core.Point
		want           int
	}{
		{"parallel horizontal", core.Point{X: 0, Y: 0}, core.Point{X: 10, Y: 0}, core.Point{X: 5, Y: 4}, core.Point{X: 15, Y: 4}, 4},
		{"parallel vertical", core.Point{X: 0, Y: 0}, core.Point{X: 0, Y: 10}, core.Point{X: 7, Y: 2}, core.Point{X: 7, Y: 8}, 7},
		{"no shared extent", core.Point{X: 0, Y: 0}, core.Point{X: 5, Y: 0}, core.Point{X: 10, Y: 4}, core.Point{X: 20, Y: 4}, -1},
		{"perpendicular", core.Point{X: 0, Y: 0}, core.Point{X: 10, Y: 0}, core.Point{X: 5, Y: 0}, core.Point{X: 5, Y: 10}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentDistance(tt.a1, tt.a2, tt.b1, tt.b2); got != tt.want {
				t.Errorf("SegmentDistance = %d, want %d", got, tt.want)
			}
		})
	}
}
