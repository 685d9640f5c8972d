package routing

import "mroute/core"

// DebugRegion is a rectangular region of one routed path, tagged with the
// port it belongs to and its role in the route.
type DebugRegion struct {
	PortName string
	Role     string
	Region   core.Box
}

// DebugInfo holds the per-path regions collected when BundleConfig has
// CollectDebug set: the fan-in around each start port, the shared middle
// section, and the fan-out around each end port.
type DebugInfo struct {
	FanIn    []DebugRegion
	Waypoint []DebugRegion
	FanOut   []DebugRegion
}

func collectDebug(starts, ends []core.Port, paths []core.Path) *DebugInfo {
	di := &DebugInfo{}
	for i, p := range paths {
		pts := p.Points
		if len(pts) < 2 {
			continue
		}
		head := pts
		if len(head) > 3 {
			head = pts[:3]
		}
		tail := pts
		if len(tail) > 3 {
			tail = pts[len(pts)-3:]
		}
		di.FanIn = append(di.FanIn, DebugRegion{
			PortName: starts[i].Name,
			Role:     "fanin",
			Region:   boxOfPoints(head),
		})
		di.Waypoint = append(di.Waypoint, DebugRegion{
			PortName: starts[i].Name,
			Role:     "waypoint",
			Region:   boxOfPoints(pts),
		})
		di.FanOut = append(di.FanOut, DebugRegion{
			PortName: ends[i].Name,
			Role:     "fanout",
			Region:   boxOfPoints(tail),
		})
	}
	return di
}

func boxOfPoints(pts []core.Point) core.Box {
	box := core.BoxOf(pts[0], pts[0])
	for _, p := range pts[1:] {
		box = box.Including(p)
	}
	return box
}
