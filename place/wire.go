package place

import (
	"fmt"

	"mroute/core"
	"mroute/geometry"
	"mroute/routing"
)

// PlaceWire places a routed path as plain overlapping rectangles, one per
// segment, without bend cells. Corners are covered by the segments meeting
// there. Useful for metal wiring where no bend geometry exists.
func PlaceWire(sink ShapeSink, layer core.Layer, width int, path core.Path) (*Route, error) {
	if width <= 0 {
		return nil, fmt.Errorf("width %d is not positive: %w", width, routing.ErrContract)
	}
	pts := geometry.CleanPoints(path.Points)
	rec := &Route{Backbone: core.Path{Points: pts}}
	if len(pts) < 2 {
		return rec, nil
	}
	if !geometry.IsManhattanPath(pts) {
		return nil, fmt.Errorf("path is not Manhattan aligned: %w", routing.ErrContract)
	}
	rec.Length = core.Path{Points: pts}.Length()
	rec.LengthStraights = rec.Length
	rec.NBend90 = len(pts) - 2

	halfW := width / 2
	for i := 0; i+1 < len(pts); i++ {
		sink.AddRect(layer, geometry.SweptBox(pts[i], pts[i+1], halfW))
	}
	return rec, nil
}
