package routing

import (
	"go.uber.org/zap"

	"mroute/core"
)

// Step is one prescribed move applied to a router side before the automatic
// routing takes over. Steps let callers force an exit shape out of a port,
// for example to clear a known structure before the router starts making its
// own decisions.
type Step interface {
	apply(s *RouterSide) error
}

// Straight advances the side by Dist without turning.
type Straight struct {
	Dist int
}

func (st Straight) apply(s *RouterSide) error {
	if st.Dist < 0 {
		return contractf("straight step must be >= 0, got %d", st.Dist)
	}
	s.Straight(st.Dist)
	return nil
}

// Left turns the side 90° to the left. A positive Dist adds a straight run
// before the turn.
type Left struct {
	Dist int
}

func (st Left) apply(s *RouterSide) error {
	if st.Dist < 0 {
		return contractf("left step distance must be >= 0, got %d", st.Dist)
	}
	s.Straight(st.Dist)
	s.Left()
	return nil
}

// Right turns the side 90° to the right. A positive Dist adds a straight run
// before the turn.
type Right struct {
	Dist int
}

func (st Right) apply(s *RouterSide) error {
	if st.Dist < 0 {
		return contractf("right step distance must be >= 0, got %d", st.Dist)
	}
	s.Straight(st.Dist)
	s.Right()
	return nil
}

// ApplySteps walks a router side through the given step sequence. The side's
// head ends up where the last step leaves it; AutoRoute continues from there.
func ApplySteps(s *RouterSide, steps []Step) error {
	for _, step := range steps {
		if err := step.apply(s); err != nil {
			return err
		}
	}
	return nil
}

// StepsEnd returns the transform a port's router side reaches after the
// minimum straight and the given steps, without routing anything. Useful for
// callers that need to know where a stub will end before committing to a
// bundle.
func StepsEnd(port core.Port, minStraight int, steps []Step, bend90Radius int) (core.Trans, error) {
	if minStraight < 0 {
		return core.Trans{}, contractf("minimum straight must be >= 0, got %d", minStraight)
	}
	if bend90Radius <= 0 {
		return core.Trans{}, contractf("bend90 radius must be positive, got %d", bend90Radius)
	}
	r := &Router{Bend90Radius: bend90Radius, Index: -1, sbend: SBendShort, log: zap.NewNop()}
	side := &RouterSide{router: r, t: port.Trans(), pts: []core.Point{port.Pos}}
	side.Straight(minStraight)
	if err := ApplySteps(side, steps); err != nil {
		return core.Trans{}, err
	}
	return side.Trans(), nil
}
