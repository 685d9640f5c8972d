// Package routing computes Manhattan wire routes between ports on the dbu
// grid: single paths, separated bundles, waypoint-constrained detours and
// obstacle avoidance. The router is a pure function of its inputs; it never
// mutates ports, obstacles or configuration and keeps no state across calls.
package routing

import (
	"go.uber.org/zap"

	"mroute/core"
	"mroute/geometry"
)

// RouterSide is one end of a route under construction. It walks a transform
// away from its port using straight runs and 90° bends, collecting the corner
// points it passes. The side's x axis always points in the current direction
// of travel.
type RouterSide struct {
	router *Router
	t      core.Trans
	other  *RouterSide
	pts    []core.Point
}

// TV returns the displacement to the other side's head, expressed in this
// side's own frame.
func (s *RouterSide) TV() core.Vector {
	return s.t.Inverted().ApplyVector(s.other.t.Disp.Sub(s.t.Disp))
}

// TA returns the angle of the other side's head relative to this side's, in
// 90° steps. A value of 2 means the heads face each other.
func (s *RouterSide) TA() core.Direction {
	return (s.other.t.Angle - s.t.Angle) & 3
}

// Trans returns the side's current head transform.
func (s *RouterSide) Trans() core.Trans {
	return s.t
}

// Points returns the corner points collected so far.
func (s *RouterSide) Points() []core.Point {
	return s.pts
}

// Straight advances the head by d without adding a corner.
func (s *RouterSide) Straight(d int) {
	s.t = s.t.Shifted(d)
}

// Left turns the head 90° to the left, recording the corner point one bend
// radius ahead.
func (s *RouterSide) Left() {
	r := s.router.Bend90Radius
	s.pts = append(s.pts, s.t.Apply(core.Point{X: r}))
	s.t = s.t.Mul(core.Trans{Angle: core.North, Disp: core.Vector{X: r, Y: r}})
}

// Right turns the head 90° to the right, recording the corner point one bend
// radius ahead.
func (s *RouterSide) Right() {
	r := s.router.Bend90Radius
	s.pts = append(s.pts, s.t.Apply(core.Point{X: r}))
	s.t = s.t.Mul(core.Trans{Angle: core.South, Disp: core.Vector{X: r, Y: -r}})
}

// Router computes one Manhattan path between two port transforms. The two
// sides are walked toward each other; Finish joins them once they face each
// other on a shared axis.
type Router struct {
	Bend90Radius int
	Width        int
	Start, End   *RouterSide

	// StartName, EndName and Index identify the port pair in failures.
	StartName string
	EndName   string
	Index     int

	reversed bool
	sbend    SBendStrategy
	log      *zap.Logger
}

// NewRouter creates a router between two port transforms and applies the
// minimum straight stubs. Both straights must be >= 0 and the transforms must
// differ.
func NewRouter(bend90Radius int, start, end core.Trans, startStraight, endStraight int) (*Router, error) {
	if bend90Radius <= 0 {
		return nil, contractf("bend90 radius must be positive, got %d", bend90Radius)
	}
	if startStraight < 0 || endStraight < 0 {
		return nil, contractf("minimum straights must be >= 0, got start=%d end=%d",
			startStraight, endStraight)
	}
	if start == end {
		return nil, contractf("identically placed and oriented ports cannot be connected")
	}
	r := &Router{
		Bend90Radius: bend90Radius,
		Index:        -1,
		sbend:        SBendShort,
		log:          zap.NewNop(),
	}
	r.Start = &RouterSide{router: r, t: start, pts: []core.Point{start.Position()}}
	r.End = &RouterSide{router: r, t: end, pts: []core.Point{end.Position()}}
	r.Start.other = r.End
	r.End.other = r.Start
	r.Start.Straight(startStraight)
	r.End.Straight(endStraight)
	return r, nil
}

// AutoRoute walks the start side toward the end side, choosing bends based on
// the relative position and orientation of the two heads, and returns the
// joined corner points. It fails with an InfeasibleError when the
// configuration leaves no room for a valid route.
func (r *Router) AutoRoute() ([]core.Point, error) {
	rad := r.Bend90Radius
	for try := maxTries; try > 0; try-- {
		tv := r.Start.TV()
		x, y := tv.X, tv.Y
		yAbs := geometry.Abs(y)
		switch r.Start.TA() {
		case 0:
			// Heads point the same way; hook around to meet head-on.
			if yAbs >= 2*rad {
				if x > 0 {
					r.Start.Straight(x)
				}
				if y > 0 {
					r.Start.Left()
				} else {
					r.Start.Right()
				}
				continue
			}
			// Too close for a hook, route a P-shaped loop.
			if x > 0 {
				r.Start.Straight(geometry.Max(2*rad-x, 0))
			}
			if y > 0 {
				r.Start.Right()
			} else {
				r.Start.Left()
			}
		case 2:
			switch {
			case y == 0:
				return r.Finish()
			case yAbs < 2*rad:
				// Facing but offset by less than two bends: S-bend,
				// tie-broken by strategy.
				takeRight := y < 0
				if r.sbend == SBendLong {
					takeRight = !takeRight
				}
				if takeRight {
					r.Start.Right()
				} else {
					r.Start.Left()
				}
			case y > 0:
				r.Start.Left()
			default:
				r.Start.Right()
			}
		default:
			// Perpendicular heads. The ta==1 case is ta==3 mirrored, so fold
			// them together by flipping the turn functions and y.
			right, left := r.Start.Right, r.Start.Left
			yy := y
			if r.Start.TA() == 1 {
				right, left = left, right
				yy = -y
			}
			switch {
			case x >= rad && yy >= rad:
				// A single bend connects the heads.
				r.Start.Straight(x - rad)
				left()
				return r.Finish()
			case x >= 3*rad:
				right()
			case yy >= 3*rad:
				r.Start.Straight(geometry.Max(rad+x, 0))
				left()
			case yy <= -rad || x <= 0:
				r.Start.Straight(geometry.Max(x+rad, 0))
				right()
			default:
				if x < rad && yAbs < rad {
					r.log.Warn("route is tight, looping around",
						zap.String("start", r.StartName),
						zap.String("end", r.EndName),
						zap.Int("x", x),
						zap.Int("y", y))
					right()
					r.Start.Straight(geometry.Max(rad-yy, 0))
					left()
				} else {
					right()
				}
			}
		}
	}
	return nil, infeasible(r.StartName, r.EndName, r.Index,
		"no route found within %d bend placements (bend90=%d)", maxTries, rad)
}

// Finish joins the two sides. The heads must face each other on a shared
// axis with the end head in front of the start head; anything else means the
// minimum straights left no room for a valid jog.
func (r *Router) Finish() ([]core.Point, error) {
	tv := r.Start.TV()
	if r.Start.TA() != 2 {
		return nil, infeasible(r.StartName, r.EndName, r.Index,
			"route ends do not face each other (relative angle %d)", r.Start.TA())
	}
	if tv.Y != 0 {
		return nil, infeasible(r.StartName, r.EndName, r.Index,
			"route ends are not aligned (transverse offset %d)", tv.Y)
	}
	if tv.X < 0 {
		return nil, infeasible(r.StartName, r.EndName, r.Index,
			"minimum straights overshoot by %d, no room for an s-bend", -tv.X)
	}
	if r.End.pts[len(r.End.pts)-1] != r.Start.pts[len(r.Start.pts)-1] {
		for i := len(r.End.pts) - 1; i >= 0; i-- {
			r.Start.pts = append(r.Start.pts, r.End.pts[i])
		}
	}
	return r.Start.pts, nil
}

// Path returns the cleaned route centerline. Valid after a successful
// AutoRoute.
func (r *Router) Path() core.Path {
	pts := geometry.CleanPoints(r.Start.pts)
	if r.reversed {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	return core.Path{Points: pts}
}

// RouteManhattan computes a single Manhattan path between two ports using
// only 90° bends. The start leaves its port along the port direction for at
// least cfg.StartStraight, symmetrically for the end. With cfg.Invert the
// end side leads instead, selecting the mirrored jog where both are valid.
func RouteManhattan(start, end core.Port, cfg Config) (core.Path, error) {
	if err := cfg.validate(); err != nil {
		return core.Path{}, err
	}
	router, err := newPairRouter(start, end, cfg, cfg.StartStraight, cfg.EndStraight, -1)
	if err != nil {
		return core.Path{}, err
	}
	if _, err := router.AutoRoute(); err != nil {
		return core.Path{}, err
	}
	return router.Path(), nil
}

// newPairRouter builds a Router for a start/end port pair, honoring
// cfg.Invert by swapping the sides and marking the result reversed.
func newPairRouter(start, end core.Port, cfg Config, startStraight, endStraight, index int) (*Router, error) {
	s, e := start, end
	ss, es := startStraight, endStraight
	if cfg.Invert {
		s, e = end, start
		ss, es = es, ss
	}
	router, err := NewRouter(cfg.Bend90Radius, s.Trans(), e.Trans(), ss, es)
	if err != nil {
		return nil, err
	}
	router.StartName = s.Name
	router.EndName = e.Name
	router.Index = index
	router.Width = geometry.Max(start.Width, end.Width)
	router.reversed = cfg.Invert
	router.sbend = cfg.sbend()
	router.log = cfg.log()
	return router, nil
}
