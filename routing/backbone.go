package routing

import (
	"sort"

	"mroute/core"
	"mroute/geometry"
)

// BackboneToBundle expands a Manhattan backbone polyline into one offset
// polyline per port. Offsets are centered on the backbone and spaced by the
// port widths plus the per-port spacings; the first port gets the offset
// furthest to the left of the backbone's travel direction. widths and
// spacings must have equal length.
func BackboneToBundle(backbone []core.Point, widths, spacings []int) ([][]core.Point, error) {
	if len(widths) != len(spacings) {
		return nil, contractf("widths and spacings differ in length: %d vs %d",
			len(widths), len(spacings))
	}
	if len(widths) == 0 {
		return nil, contractf("no ports to expand the backbone for")
	}
	backbone = geometry.CleanPoints(backbone)
	if len(backbone) < 2 {
		return nil, contractf("backbone needs at least two distinct points")
	}
	if !geometry.IsManhattanPath(backbone) {
		return nil, contractf("backbone is not Manhattan aligned")
	}

	dirs := make([]core.Direction, len(backbone)-1)
	for i := range dirs {
		d, ok := core.DirOf(backbone[i+1].Vector().Sub(backbone[i].Vector()))
		if !ok {
			return nil, contractf("backbone is not Manhattan aligned")
		}
		dirs[i] = d
	}

	total := 0
	for i := range widths {
		total += widths[i] + spacings[i]
	}

	out := make([][]core.Point, len(widths))
	off := total / 2
	for pi := range widths {
		off -= spacings[pi]/2 + widths[pi]/2
		out[pi] = offsetPolyline(backbone, dirs, off)
		off -= widths[pi] - widths[pi]/2 + spacings[pi] - spacings[pi]/2
	}
	return out, nil
}

// offsetPolyline shifts each edge of the polyline by off along its left
// normal; corner points take the shifted coordinate of both adjacent edges,
// which is the intersection of the shifted lines.
func offsetPolyline(backbone []core.Point, dirs []core.Direction, off int) []core.Point {
	pts := append([]core.Point(nil), backbone...)
	for i, d := range dirs {
		left := d.Vector().Rotated(core.North)
		shift := core.Vector{X: left.X * off, Y: left.Y * off}
		if d.Horizontal() {
			pts[i].Y = backbone[i].Y + shift.Y
			pts[i+1].Y = backbone[i+1].Y + shift.Y
		} else {
			pts[i].X = backbone[i].X + shift.X
			pts[i+1].X = backbone[i+1].X + shift.X
		}
	}
	return pts
}

// routeAlongBackbone is the polyline-waypoint strategy of RouteSmart: the
// backbone is expanded into per-path offset polylines, each path routes from
// its start port onto its polyline's head, follows it, and routes from its
// tail to the end port.
func routeAlongBackbone(starts, ends []core.Port, startStraights, endStraights []int, cfg BundleConfig) ([]core.Path, error) {
	n := len(starts)
	widths := make([]int, n)
	spacings := make([]int, n)
	for i := range starts {
		widths[i] = geometry.Max(starts[i].Width, ends[i].Width)
		spacings[i] = cfg.Separation
	}

	lines, err := BackboneToBundle(cfg.Waypoints, widths, spacings)
	if err != nil {
		return nil, err
	}

	// Match routes to offset polylines by transverse order at the backbone
	// head, so paths do not cross while fanning in.
	d0, _ := core.DirOf(lines[0][1].Vector().Sub(lines[0][0].Vector()))
	inv := core.Trans{Angle: (4 - d0) & 3}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ta := inv.Apply(starts[order[a]].Pos).Y
		tb := inv.Apply(starts[order[b]].Pos).Y
		if ta != tb {
			return ta > tb
		}
		return order[a] < order[b]
	})
	sort.SliceStable(lines, func(a, b int) bool {
		return inv.Apply(lines[a][0]).Y > inv.Apply(lines[b][0]).Y
	})

	paths := make([]core.Path, n)
	for slot, i := range order {
		line := lines[slot]
		pts, err := routeViaPolyline(starts[i], ends[i], line, startStraights[i], endStraights[i], i, cfg)
		if err != nil {
			return nil, err
		}
		paths[i] = core.Path{Points: pts}
	}
	return paths, nil
}

// routeViaPolyline routes one pair through its offset polyline: a leg onto
// the head, the polyline itself, and a leg off the tail.
func routeViaPolyline(start, end core.Port, line []core.Point, startStraight, endStraight, index int, cfg BundleConfig) ([]core.Point, error) {
	dHead, ok := core.DirOf(line[1].Vector().Sub(line[0].Vector()))
	if !ok {
		return nil, contractf("degenerate backbone segment at %v", line[0])
	}
	dTail, ok := core.DirOf(line[len(line)-1].Vector().Sub(line[len(line)-2].Vector()))
	if !ok {
		return nil, contractf("degenerate backbone segment at %v", line[len(line)-2])
	}

	entry := core.Trans{Angle: dHead.Opposite(), Disp: line[0].Vector()}
	in, err := NewRouter(cfg.Bend90Radius, start.Trans(), entry, startStraight, 0)
	if err != nil {
		return nil, err
	}
	in.StartName, in.EndName, in.Index = start.Name, "backbone", index
	in.sbend, in.log = cfg.sbend(), cfg.log()
	if cfg.StartSteps != nil {
		if err := ApplySteps(in.Start, cfg.StartSteps[index]); err != nil {
			return nil, err
		}
	}
	inPts, err := in.AutoRoute()
	if err != nil {
		return nil, err
	}

	exit := core.Trans{Angle: dTail, Disp: line[len(line)-1].Vector()}
	out, err := NewRouter(cfg.Bend90Radius, exit, end.Trans(), 0, endStraight)
	if err != nil {
		return nil, err
	}
	out.StartName, out.EndName, out.Index = "backbone", end.Name, index
	out.sbend, out.log = cfg.sbend(), cfg.log()
	if cfg.EndSteps != nil {
		if err := ApplySteps(out.End, cfg.EndSteps[index]); err != nil {
			return nil, err
		}
	}
	outPts, err := out.AutoRoute()
	if err != nil {
		return nil, err
	}

	pts := append([]core.Point(nil), inPts...)
	pts = append(pts, line[1:]...)
	pts = append(pts, outPts...)
	return geometry.CleanPoints(pts), nil
}

// RoutePortsToBundle gathers a column of same-direction ports into a compact
// bundle front. It returns, per input port, the transform of the port's slot
// on the front and the extra straight the port needs to reach it without
// crossing its neighbours. All ports must share one direction; the front is
// placed spacing away from the furthest forward port.
func RoutePortsToBundle(ports []core.Trans, widths []int, bend90Radius, spacing int) ([]core.Trans, []int, error) {
	if len(ports) == 0 {
		return nil, nil, contractf("no ports to bundle")
	}
	if len(widths) != len(ports) {
		return nil, nil, contractf("widths has %d entries for %d ports", len(widths), len(ports))
	}
	dir := ports[0].Angle
	for _, p := range ports[1:] {
		if p.Angle != dir {
			return nil, nil, contractf("bundled ports must share a direction, got %s and %s",
				dir, p.Angle)
		}
	}
	inv := core.Trans{Angle: (4 - dir) & 3}

	order := make([]int, len(ports))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return inv.ApplyVector(ports[order[a]].Disp).Y > inv.ApplyVector(ports[order[b]].Disp).Y
	})

	offsets := make([]int, len(ports))
	total := 0
	for _, i := range order {
		total += widths[i]
	}
	total += (len(ports) - 1) * spacing
	at := total / 2
	for _, i := range order {
		at -= widths[i] / 2
		offsets[i] = at
		at -= widths[i] - widths[i]/2 + spacing
	}

	// The front sits one spacing past the furthest forward port; slots that
	// differ more from their port's transverse position bend earlier and
	// need more straight run-up.
	front := inv.ApplyVector(ports[order[0]].Disp).X
	for _, i := range order[1:] {
		if x := inv.ApplyVector(ports[i].Disp).X; x > front {
			front = x
		}
	}
	front += spacing + bend90Radius

	// Transverse center of the port group anchors the front.
	centerY := 0
	for _, p := range ports {
		centerY += inv.ApplyVector(p.Disp).Y
	}
	centerY /= len(ports)

	slots := make([]core.Trans, len(ports))
	straights := make([]int, len(ports))
	fwd := core.Trans{Angle: dir}
	for _, i := range order {
		slot := core.Vector{X: front, Y: centerY + offsets[i]}
		slots[i] = core.Trans{Angle: dir, Disp: fwd.ApplyVector(slot)}
		straights[i] = front - bend90Radius - inv.ApplyVector(ports[i].Disp).X
	}
	return slots, straights, nil
}
