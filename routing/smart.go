package routing

import (
	"sort"

	"go.uber.org/zap"

	"mroute/core"
	"mroute/geometry"
)

// BundleConfig extends Config with the bundle-level inputs of RouteSmart.
type BundleConfig struct {
	Config `yaml:",inline"`

	// StartStraights and EndStraights override Config.StartStraight and
	// Config.EndStraight per pair. A single element broadcasts to all pairs.
	StartStraights []int `yaml:"start_straights"`
	EndStraights   []int `yaml:"end_straights"`

	// StartSteps and EndSteps are optional prescribed step sequences walked
	// out of each port before automatic routing.
	StartSteps [][]Step `yaml:"-"`
	EndSteps   [][]Step `yaml:"-"`

	// Waypoints forces the whole bundle through the given Manhattan
	// polyline, each path offset laterally to keep the separation.
	Waypoints []core.Point `yaml:"-"`
	// WaypointTrans routes the bundle through a single oriented point, as if
	// through a tunnel of length zero: fan-in on one side, fan-out on the
	// other.
	WaypointTrans *core.Trans `yaml:"-"`

	// Obstacles are keep-out boxes the routes must clear by the route half
	// width; detours keep the separation margin from the box edge.
	Obstacles []core.Box `yaml:"-"`

	// CollectDebug populates Bundle.Debug with the fan-in, waypoint and
	// fan-out regions of each path.
	CollectDebug bool `yaml:"collect_debug"`
}

// Bundle is the result of a RouteSmart call: one path per input port pair,
// index-aligned with the inputs.
type Bundle struct {
	Paths []core.Path
	Debug *DebugInfo
}

// RouteSmart routes a bundle of Manhattan paths between index-aligned start
// and end ports, keeping the configured separation between paths that share
// a corridor and never crossing paths within the bundle. A bundle of size 1
// degenerates to a plain RouteManhattan call. The call is all-or-nothing: if
// any pair is infeasible the whole bundle fails and reports that pair.
func RouteSmart(starts, ends []core.Port, cfg BundleConfig) (*Bundle, error) {
	if err := cfg.Config.validate(); err != nil {
		return nil, err
	}
	if len(starts) == 0 {
		return nil, contractf("no ports to route")
	}
	if len(starts) != len(ends) {
		return nil, contractf("port list lengths do not match: %d starts, %d ends",
			len(starts), len(ends))
	}
	n := len(starts)
	for i := range starts {
		if starts[i].Width <= 0 || ends[i].Width <= 0 {
			return nil, contractf("pair %d has a zero-width port", i)
		}
	}
	startStraights, err := broadcast(cfg.StartStraights, cfg.StartStraight, n, "start_straights")
	if err != nil {
		return nil, err
	}
	endStraights, err := broadcast(cfg.EndStraights, cfg.EndStraight, n, "end_straights")
	if err != nil {
		return nil, err
	}
	if cfg.Waypoints != nil && cfg.WaypointTrans != nil {
		return nil, contractf("waypoints and waypoint transform are mutually exclusive")
	}
	if cfg.StartSteps != nil && len(cfg.StartSteps) != n {
		return nil, contractf("start_steps has %d entries for %d pairs", len(cfg.StartSteps), n)
	}
	if cfg.EndSteps != nil && len(cfg.EndSteps) != n {
		return nil, contractf("end_steps has %d entries for %d pairs", len(cfg.EndSteps), n)
	}

	var paths []core.Path
	switch {
	case cfg.WaypointTrans != nil:
		paths, err = routeThroughTunnel(starts, ends, startStraights, endStraights, *cfg.WaypointTrans, cfg)
	case cfg.Waypoints != nil:
		paths, err = routeAlongBackbone(starts, ends, startStraights, endStraights, cfg)
	default:
		paths, err = routeFans(starts, ends, startStraights, endStraights, cfg)
	}
	if err != nil {
		return nil, err
	}

	if len(cfg.Obstacles) > 0 {
		widths := make([]int, n)
		for i := range starts {
			widths[i] = geometry.Max(starts[i].Width, ends[i].Width)
		}
		if err := avoidObstacles(paths, widths, starts, ends, cfg); err != nil {
			return nil, err
		}
	}

	bundle := &Bundle{Paths: paths}
	if cfg.CollectDebug {
		bundle.Debug = collectDebug(starts, ends, paths)
	}
	return bundle, nil
}

// broadcast expands a per-pair override list: nil falls back to the scalar
// default, a single element applies to every pair.
func broadcast(vals []int, def, n int, name string) ([]int, error) {
	switch len(vals) {
	case 0:
		out := make([]int, n)
		for i := range out {
			out[i] = def
		}
		return out, nil
	case 1:
		out := make([]int, n)
		for i := range out {
			out[i] = vals[0]
		}
		return out, nil
	case n:
		return append([]int(nil), vals...), nil
	default:
		return nil, contractf("%s has %d entries for %d pairs", name, len(vals), n)
	}
}

// routeFans is the no-waypoint strategy: routers are grouped into fans by
// bounding-box overlap, ordered by their transverse coordinate, and staggered
// by multiples of the separation so that paths sharing a corridor keep their
// distance and their order.
func routeFans(starts, ends []core.Port, startStraights, endStraights []int, cfg BundleConfig) ([]core.Path, error) {
	n := len(starts)
	routers := make([]*Router, n)
	for i := range starts {
		r, err := newPairRouter(starts[i], ends[i], cfg.Config, startStraights[i], endStraights[i], i)
		if err != nil {
			return nil, err
		}
		if cfg.StartSteps != nil {
			if err := ApplySteps(stepSide(r, false), cfg.StartSteps[i]); err != nil {
				return nil, err
			}
		}
		if cfg.EndSteps != nil {
			if err := ApplySteps(stepSide(r, true), cfg.EndSteps[i]); err != nil {
				return nil, err
			}
		}
		routers[i] = r
	}

	for _, fan := range groupRouters(routers, cfg.Separation) {
		if err := routeFan(fan, cfg); err != nil {
			return nil, err
		}
	}

	paths := make([]core.Path, n)
	for i, r := range routers {
		paths[i] = r.Path()
	}
	return paths, nil
}

// stepSide resolves which RouterSide a caller-facing start/end step sequence
// applies to, accounting for inverted routers.
func stepSide(r *Router, end bool) *RouterSide {
	if r.reversed == end {
		return r.Start
	}
	return r.End
}

// groupRouters partitions routers into fans: routers whose route bounding
// boxes, grown by the separation, overlap transitively share a fan and will
// be staggered against each other.
func groupRouters(routers []*Router, separation int) [][]*Router {
	var fans [][]*Router
	var boxes []core.Box
	for _, r := range routers {
		box := core.BoxOf(r.Start.Trans().Position(), r.End.Trans().Position()).Enlarged(separation)
		joined := -1
		for i := 0; i < len(fans); i++ {
			if !boxes[i].Overlaps(box) {
				continue
			}
			if joined < 0 {
				fans[i] = append(fans[i], r)
				boxes[i] = boxes[i].Union(box)
				joined = i
				continue
			}
			// The router bridges two fans; merge them.
			fans[joined] = append(fans[joined], fans[i]...)
			boxes[joined] = boxes[joined].Union(boxes[i])
			fans = append(fans[:i], fans[i+1:]...)
			boxes = append(boxes[:i], boxes[i+1:]...)
			i--
		}
		if joined < 0 {
			fans = append(fans, []*Router{r})
			boxes = append(boxes, box)
		}
	}
	return fans
}

// routeFan routes the routers of one fan. The fan's dominant start direction
// defines a frame; routers are ranked by the transverse coordinate of their
// far end and each rank adds one separation of extra straight before the
// first bend, so nested turns stay separated and ordered.
func routeFan(fan []*Router, cfg BundleConfig) error {
	if len(fan) == 1 {
		_, err := fan[0].AutoRoute()
		return err
	}

	a1 := dominantAngle(fan, false)
	a2 := dominantAngle(fan, true)
	stagger(fan, a1, false, cfg.Separation, cfg.log())
	stagger(fan, a2, true, cfg.Separation, cfg.log())

	for _, r := range fan {
		if _, err := r.AutoRoute(); err != nil {
			return err
		}
	}
	return nil
}

// dominantAngle returns the most common head angle among the fan's sides.
func dominantAngle(fan []*Router, end bool) core.Direction {
	var count [4]int
	for _, r := range fan {
		side := r.Start
		if end {
			side = r.End
		}
		count[side.Trans().Angle&3]++
	}
	best := core.Direction(0)
	for d := core.Direction(1); d < 4; d++ {
		if count[d] > count[best] {
			best = d
		}
	}
	return best
}

// stagger assigns the per-router extra straight on one side of a fan. In the
// side's frame, the router whose far end sits furthest toward the side the
// fan turns to is the innermost: it turns first and gets no extra straight;
// each following router gets one more separation. Routers that run straight
// through (already facing and aligned) are left alone.
func stagger(fan []*Router, angle core.Direction, end bool, separation int, log *zap.Logger) {
	inv := core.Trans{Angle: (4 - angle) & 3}

	side := func(r *Router) *RouterSide {
		if end {
			return r.End
		}
		return r.Start
	}

	// Net transverse heading of the fan as seen from this side.
	var tv core.Vector
	for _, r := range fan {
		tv = tv.Add(side(r).other.Trans().Disp.Sub(side(r).Trans().Disp))
	}
	tv = inv.ApplyVector(tv)
	if tv.Y == 0 {
		return
	}

	ordered := append([]*Router(nil), fan...)
	transverse := func(r *Router) int {
		return inv.ApplyVector(side(r).other.Trans().Disp).Y
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		ti, tj := transverse(ordered[i]), transverse(ordered[j])
		if ti != tj {
			if tv.Y > 0 {
				return ti > tj
			}
			return ti < tj
		}
		return ordered[i].Index < ordered[j].Index
	})

	rank := 0
	for _, r := range ordered {
		s := side(r)
		if s.TA() == 2 && s.TV().Y == 0 {
			continue // straight through, no corridor to share
		}
		if rank > 0 {
			s.Straight(rank * separation)
		}
		log.Debug("fan stagger",
			zap.String("start", r.StartName),
			zap.String("end", r.EndName),
			zap.Bool("end_side", end),
			zap.Int("rank", rank))
		rank++
	}
}

// routeThroughTunnel routes every path through a single oriented waypoint.
// Each path gets a slot on the waypoint's transverse axis, spaced by widths
// and separation; the first leg routes into the slot along the waypoint
// direction, the second leg continues out of it.
func routeThroughTunnel(starts, ends []core.Port, startStraights, endStraights []int, wp core.Trans, cfg BundleConfig) ([]core.Path, error) {
	n := len(starts)
	inv := wp.Inverted()

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

	offsets := slotOffsets(order, starts, cfg.Separation)

	// Legs of different slots jog in the same region before and after the
	// tunnel; each slot pushes its jog one loop footprint further out.
	loop := 2*cfg.Bend90Radius + cfg.Separation

	paths := make([]core.Path, n)
	for slot, i := range order {
		at := wp.Mul(core.Trans{Disp: core.Vector{Y: offsets[slot]}})
		entry := core.Trans{Angle: at.Angle.Opposite(), Disp: at.Disp}

		in, err := NewRouter(cfg.Bend90Radius, starts[i].Trans(), entry, startStraights[i], 0)
		if err != nil {
			return nil, err
		}
		in.StartName, in.EndName, in.Index = starts[i].Name, "waypoint", i
		in.sbend, in.log = cfg.sbend(), cfg.log()
		if cfg.StartSteps != nil {
			if err := ApplySteps(in.Start, cfg.StartSteps[i]); err != nil {
				return nil, err
			}
		}
		if in.Start.TA() != 2 || in.Start.TV().Y != 0 {
			in.Start.Straight(slot * loop)
		}
		inPts, err := in.AutoRoute()
		if err != nil {
			return nil, err
		}

		out, err := NewRouter(cfg.Bend90Radius, at, ends[i].Trans(), 0, endStraights[i])
		if err != nil {
			return nil, err
		}
		out.StartName, out.EndName, out.Index = "waypoint", ends[i].Name, i
		out.sbend, out.log = cfg.sbend(), cfg.log()
		if cfg.EndSteps != nil {
			if err := ApplySteps(out.End, cfg.EndSteps[i]); err != nil {
				return nil, err
			}
		}
		if out.Start.TA() != 2 || out.Start.TV().Y != 0 {
			out.Start.Straight(slot * loop)
		}
		outPts, err := out.AutoRoute()
		if err != nil {
			return nil, err
		}

		pts := append(append([]core.Point(nil), inPts...), outPts...)
		paths[i] = core.Path{Points: geometry.CleanPoints(pts)}
	}
	return paths, nil
}

// slotOffsets computes the centered transverse slot positions for the given
// routing order, spacing slots by the port widths plus the separation. The
// first entry gets the most positive offset.
func slotOffsets(order []int, starts []core.Port, separation int) []int {
	total := 0
	for _, i := range order {
		total += starts[i].Width
	}
	total += (len(order) - 1) * separation

	offsets := make([]int, len(order))
	at := total / 2
	for slot, i := range order {
		at -= starts[i].Width / 2
		offsets[slot] = at
		at -= starts[i].Width - starts[i].Width/2 + separation
	}
	return offsets
}
