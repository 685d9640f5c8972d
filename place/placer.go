// Package place turns routed Manhattan paths into placed geometry: straight
// rectangles between bends and a footprint rectangle per 90 degree bend,
// emitted to a caller-provided sink.
package place

import (
	"fmt"

	"mroute/core"
	"mroute/geometry"
	"mroute/routing"
)

// ShapeSink receives the rectangles of a placed route. Implementations
// typically write into a layout database or an export buffer.
type ShapeSink interface {
	AddRect(layer core.Layer, box core.Box)
}

// Route records what a placement call produced.
type Route struct {
	// Backbone is the centerline the placement followed.
	Backbone core.Path
	// NBend90 counts the placed 90 degree bends.
	NBend90 int
	// Length is the centerline length of the backbone.
	Length int
	// LengthStraights is the summed length of the straight sections only,
	// excluding the bend footprints.
	LengthStraights int
}

// Place90 places a routed path as straights and 90 degree bend cells of the
// given radius. Straight rectangles run from the current position to each
// bend's entry point; the bend occupies the bounding box of its entry and
// exit points grown by the half width; placement resumes at the exit point.
// The path endpoints must coincide with the port positions, and consecutive
// bends closer than twice the radius are rejected. Paths with fewer than two
// distinct points place nothing.
func Place90(sink ShapeSink, layer core.Layer, width, bend90Radius int, start, end core.Port, path core.Path) (*Route, error) {
	if width <= 0 {
		return nil, fmt.Errorf("width %d is not positive: %w", width, routing.ErrContract)
	}
	if bend90Radius <= 0 {
		return nil, fmt.Errorf("bend radius %d is not positive: %w", bend90Radius, routing.ErrContract)
	}
	pts := geometry.CleanPoints(path.Points)
	rec := &Route{Backbone: core.Path{Points: pts}}
	if len(pts) < 2 {
		return rec, nil
	}
	if !geometry.IsManhattanPath(pts) {
		return nil, fmt.Errorf("path is not Manhattan aligned: %w", routing.ErrContract)
	}
	if pts[0] != start.Pos || pts[len(pts)-1] != end.Pos {
		return nil, fmt.Errorf("path endpoints %v, %v do not meet ports %v, %v: %w",
			pts[0], pts[len(pts)-1], start.Pos, end.Pos, routing.ErrContract)
	}
	rec.Length = core.Path{Points: pts}.Length()

	halfW := width / 2
	cur := pts[0]
	for i := 1; i < len(pts)-1; i++ {
		corner := pts[i]
		dirIn, _ := core.DirOf(corner.Vector().Sub(pts[i-1].Vector()))
		dirOut, _ := core.DirOf(pts[i+1].Vector().Sub(corner.Vector()))

		entry := corner.Add(scaled(dirIn, bend90Radius).Neg())
		exit := corner.Add(scaled(dirOut, bend90Radius))

		run := geometry.ManhattanDistance(cur, entry)
		if !sameDirection(cur, entry, dirIn) {
			return nil, fmt.Errorf("bend at %v overlaps the previous bend: %w",
				corner, routing.ErrContract)
		}
		if run > 0 {
			sink.AddRect(layer, segmentRect(cur, entry, halfW))
			rec.LengthStraights += run
		}
		sink.AddRect(layer, core.BoxOf(entry, exit).Enlarged(halfW))
		rec.NBend90++
		cur = exit
	}

	last := pts[len(pts)-1]
	dirLast, _ := core.DirOf(last.Vector().Sub(pts[len(pts)-2].Vector()))
	if !sameDirection(cur, last, dirLast) {
		return nil, fmt.Errorf("final bend at %v runs past the end port %v: %w",
			pts[len(pts)-2], last, routing.ErrContract)
	}
	if run := geometry.ManhattanDistance(cur, last); run > 0 {
		sink.AddRect(layer, segmentRect(cur, last, halfW))
		rec.LengthStraights += run
	}
	return rec, nil
}

// segmentRect is the rectangle of a straight section: the segment inflated
// perpendicular to its axis only, so it butts flush against its neighbours.
func segmentRect(a, b core.Point, halfW int) core.Box {
	box := core.BoxOf(a, b)
	if a.Y == b.Y {
		box.Min.Y -= halfW
		box.Max.Y += halfW
	} else {
		box.Min.X -= halfW
		box.Max.X += halfW
	}
	return box
}

// sameDirection reports whether going from a to b moves along d, or not at
// all. A bend whose entry lies behind the current position would make the
// straight run backwards.
func sameDirection(a, b core.Point, d core.Direction) bool {
	if a == b {
		return true
	}
	got, ok := core.DirOf(b.Vector().Sub(a.Vector()))
	return ok && got == d
}

func scaled(d core.Direction, by int) core.Vector {
	v := d.Vector()
	return core.Vector{X: v.X * by, Y: v.Y * by}
}
