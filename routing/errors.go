package routing

import (
	"errors"
	"fmt"

	"mroute/core"
)

// Sentinel errors for the three failure kinds of the router. Concrete errors
// carry context and match these via errors.Is.
var (
	// ErrInfeasible marks inputs that admit no valid route.
	ErrInfeasible = errors.New("routing infeasible")
	// ErrTimeout marks a search that exceeded its step budget; feasibility
	// is unknown.
	ErrTimeout = errors.New("routing timeout")
	// ErrContract marks malformed caller input. Not recoverable by retry.
	ErrContract = errors.New("contract violation")
)

// InfeasibleError reports that a port pair (or a whole bundle because of one
// pair) cannot be routed under the given configuration.
type InfeasibleError struct {
	StartPort  string
	EndPort    string
	Index      int // index of the pair within the bundle, -1 for single routes
	Constraint string
	Obstacle   *core.Box // set when an obstacle caused the failure
}

func (e *InfeasibleError) Error() string {
	msg := fmt.Sprintf("infeasible route %q -> %q: %s", e.StartPort, e.EndPort, e.Constraint)
	if e.Index >= 0 {
		msg = fmt.Sprintf("%s (pair %d)", msg, e.Index)
	}
	if e.Obstacle != nil {
		msg = fmt.Sprintf("%s (obstacle %s)", msg, *e.Obstacle)
	}
	return msg
}

// Is reports a match against ErrInfeasible.
func (e *InfeasibleError) Is(target error) bool {
	return target == ErrInfeasible
}

func infeasible(start, end string, index int, format string, args ...any) error {
	return &InfeasibleError{
		StartPort:  start,
		EndPort:    end,
		Index:      index,
		Constraint: fmt.Sprintf(format, args...),
	}
}

// TimeoutError reports that the detour search exceeded its step budget.
type TimeoutError struct {
	Steps int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("routing exceeded step budget of %d", e.Steps)
}

// Is reports a match against ErrTimeout.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// ContractError reports malformed input: mismatched list lengths, zero-width
// ports, non-Manhattan waypoints and the like.
type ContractError struct {
	Reason string
}

func (e *ContractError) Error() string {
	return "contract violation: " + e.Reason
}

// Is reports a match against ErrContract.
func (e *ContractError) Is(target error) bool {
	return target == ErrContract
}

func contractf(format string, args ...any) error {
	return &ContractError{Reason: fmt.Sprintf(format, args...)}
}
