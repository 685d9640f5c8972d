package routing

import (
	"go.uber.org/zap"

	"mroute/core"
	"mroute/geometry"
)

// avoidObstacles rewrites the routed paths so that no segment, inflated by
// its half width, crosses a keep-out box. Each crossing segment is displaced
// laterally past the nearer box edge plus the separation margin; paths that
// detour around the same box on the same axis share the displacement side
// and stack one separation apart in the order they were routed. The pass
// iterates until no crossing remains or the step budget runs out.
func avoidObstacles(paths []core.Path, widths []int, starts, ends []core.Port, cfg BundleConfig) error {
	budget := cfg.maxSteps()
	steps := 0
	sides := make(map[[2]int]int) // {obstacle, axis} -> +1 or -1
	ranks := make(map[[2]int]int) // {obstacle, path} -> stack rank
	nextRank := make(map[int]int)

	for {
		changed := false
		for pi := range paths {
			halfW := widths[pi] / 2
			for oi, box := range cfg.Obstacles {
				if box.Empty() {
					continue
				}
				si := findCrossing(paths[pi].Points, halfW, box)
				if si < 0 {
					continue
				}
				steps++
				if steps > budget {
					return &TimeoutError{Steps: steps}
				}
				rkey := [2]int{oi, pi}
				if _, ok := ranks[rkey]; !ok {
					ranks[rkey] = nextRank[oi]
					nextRank[oi]++
				}
				pts, err := detourSegment(paths[pi].Points, si, halfW, box, detourCtx{
					obstacle:   oi,
					rank:       ranks[rkey],
					separation: cfg.Separation,
					sides:      sides,
					startName:  starts[pi].Name,
					endName:    ends[pi].Name,
					index:      pi,
				})
				if err != nil {
					return err
				}
				paths[pi].Points = geometry.CleanPoints(pts)
				cfg.log().Debug("obstacle detour",
					zap.String("start", starts[pi].Name),
					zap.String("end", ends[pi].Name),
					zap.Int("obstacle", oi))
				changed = true
				break
			}
		}
		if !changed {
			return nil
		}
	}
}

// findCrossing returns the index of the first segment whose swept rectangle
// crosses the box interior, or -1.
func findCrossing(pts []core.Point, halfW int, box core.Box) int {
	for i := 0; i+1 < len(pts); i++ {
		if geometry.SegmentCrossesBox(pts[i], pts[i+1], halfW, box) {
			return i
		}
	}
	return -1
}

type detourCtx struct {
	obstacle   int
	rank       int
	separation int
	sides      map[[2]int]int
	startName  string
	endName    string
	index      int
}

func (c detourCtx) blocked(box core.Box) error {
	b := box
	return &InfeasibleError{
		StartPort:  c.startName,
		EndPort:    c.endName,
		Index:      c.index,
		Constraint: "route endpoint sits inside an obstacle keep-out span",
		Obstacle:   &b,
	}
}

// detourSegment rewrites one crossing segment around the box. Horizontal
// segments are handled directly; vertical ones are transposed into the
// horizontal case and back.
func detourSegment(pts []core.Point, si, halfW int, box core.Box, ctx detourCtx) ([]core.Point, error) {
	if pts[si].Y == pts[si+1].Y {
		return detourHorizontal(pts, si, halfW, box, ctx, 0)
	}
	out, err := detourHorizontal(transposePoints(pts), si, halfW, transposeBox(box), ctx, 1)
	if err != nil {
		return nil, err
	}
	return transposePoints(out), nil
}

// detourHorizontal displaces the horizontal segment si past the box. Each
// end of the segment is resolved independently: an interior corner moves to
// the detour line when its other segment stays clear of the box, otherwise a
// riser is inserted at the box edge, which needs the endpoint to sit outside
// the keep-out span.
func detourHorizontal(pts []core.Point, si, halfW int, box core.Box, ctx detourCtx, axis int) ([]core.Point, error) {
	p, q := pts[si], pts[si+1]
	y := p.Y

	skey := [2]int{ctx.obstacle, axis}
	side, ok := ctx.sides[skey]
	if !ok {
		if box.Max.Y-y <= y-box.Min.Y {
			side = 1
		} else {
			side = -1
		}
		ctx.sides[skey] = side
	}
	margin := halfW + ctx.separation + ctx.rank*ctx.separation
	targetY := box.Max.Y + margin
	if side < 0 {
		targetY = box.Min.Y - margin
	}

	// Clearance columns on either side of the box for this route width. The
	// endpoint nearer the box minimum uses lx, the other rx; with p left of
	// q or not, assign them per endpoint.
	lx := box.Min.X - halfW
	rx := box.Max.X + halfW
	colP, colQ := lx, rx
	if p.X > q.X {
		colP, colQ = rx, lx
	}
	outside := func(x, col int) bool {
		if col == lx {
			return x <= col
		}
		return x >= col
	}

	// canMove reports whether the corner at index e may simply be moved to
	// the detour line: it must be an interior corner and its other adjacent
	// segment, stretched to targetY, must stay clear of the box.
	canMove := func(e int) bool {
		if e == 0 || e == len(pts)-1 {
			return false
		}
		nb := pts[e+1]
		if e == si {
			nb = pts[e-1]
		}
		from := core.Point{X: pts[e].X, Y: nb.Y}
		to := core.Point{X: pts[e].X, Y: targetY}
		return !geometry.SegmentCrossesBox(from, to, halfW, box)
	}

	res := append([]core.Point(nil), pts[:si]...)

	if canMove(si) {
		res = append(res, core.Point{X: p.X, Y: targetY})
	} else {
		if !outside(p.X, colP) {
			return nil, ctx.blocked(box)
		}
		res = append(res, p,
			core.Point{X: colP, Y: y},
			core.Point{X: colP, Y: targetY})
	}

	if canMove(si + 1) {
		res = append(res, core.Point{X: q.X, Y: targetY})
	} else {
		if !outside(q.X, colQ) {
			return nil, ctx.blocked(box)
		}
		res = append(res,
			core.Point{X: colQ, Y: targetY},
			core.Point{X: colQ, Y: y},
			q)
	}

	res = append(res, pts[si+2:]...)
	return res, nil
}

func transposePoints(pts []core.Point) []core.Point {
	out := make([]core.Point, len(pts))
	for i, p := range pts {
		out[i] = core.Point{X: p.Y, Y: p.X}
	}
	return out
}

func transposeBox(b core.Box) core.Box {
	return core.Box{
		Min: core.Point{X: b.Min.Y, Y: b.Min.X},
		Max: core.Point{X: b.Max.Y, Y: b.Max.X},
	}
}
