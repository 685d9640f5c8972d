package routing

import (
	"fmt"

	"go.uber.org/zap"

	"mroute/core"
)

// PlacerFunc turns one routed path into geometry. RouteBundle calls it once
// per pair, in input order, after the whole bundle routed successfully.
type PlacerFunc func(index int, start, end core.Port, path core.Path) error

// CollisionPolicy decides what RouteBundle does when routed paths collide.
type CollisionPolicy int

const (
	// CollisionError fails the bundle before anything is placed.
	CollisionError CollisionPolicy = iota
	// CollisionWarn logs each collision and places anyway.
	CollisionWarn
	// CollisionIgnore places without checking.
	CollisionIgnore
)

// RouteBundle routes a bundle with RouteSmart, applies the collision policy,
// and hands every path to the placer. Placement is all or nothing: no placer
// call is made unless the whole bundle routed, and the first placer error
// aborts the call.
func RouteBundle(starts, ends []core.Port, cfg BundleConfig, onCollision CollisionPolicy, place PlacerFunc) (*Bundle, error) {
	bundle, err := RouteSmart(starts, ends, cfg)
	if err != nil {
		return nil, err
	}

	if onCollision != CollisionIgnore {
		collisions := CheckCollisions(bundle.Paths)
		for _, c := range collisions {
			if onCollision == CollisionError {
				if c.Self {
					return nil, fmt.Errorf("route %s -> %s crosses itself: %w",
						starts[c.PathA].Name, ends[c.PathA].Name, ErrContract)
				}
				return nil, fmt.Errorf("routes %s -> %s and %s -> %s collide: %w",
					starts[c.PathA].Name, ends[c.PathA].Name,
					starts[c.PathB].Name, ends[c.PathB].Name, ErrContract)
			}
			cfg.log().Warn("routed paths collide",
				zap.String("start_a", starts[c.PathA].Name),
				zap.String("end_a", ends[c.PathA].Name),
				zap.String("start_b", starts[c.PathB].Name),
				zap.String("end_b", ends[c.PathB].Name),
				zap.Bool("self", c.Self))
		}
	}

	if place != nil {
		for i, p := range bundle.Paths {
			if err := place(i, starts[i], ends[i], p); err != nil {
				return nil, fmt.Errorf("placing route %s -> %s: %w",
					starts[i].Name, ends[i].Name, err)
			}
		}
	}
	return bundle, nil
}
