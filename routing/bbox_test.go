package routing

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mroute/core"
	"mroute/geometry"
)

func TestRouteSmartDetoursAroundObstacle(t *testing.T) {
	start := port("a", 0, 0, core.East)
	end := port("b", 10000, 5000, core.West)
	box := core.Box{Min: core.Point{X: 4000, Y: -1000}, Max: core.Point{X: 6000, Y: 6000}}
	cfg := BundleConfig{Config: Config{
		Bend90Radius:  1000,
		Separation:    3000,
		StartStraight: 2000,
		EndStraight:   2000,
	}, Obstacles: []core.Box{box}}

	// Without the obstacle the route is a two-bend staircase.
	plain, err := RouteSmart([]core.Port{start}, []core.Port{end}, BundleConfig{Config: cfg.Config})
	if err != nil {
		t.Fatalf("RouteSmart without obstacle: %v", err)
	}
	if got := len(plain.Paths[0].Points); got != 4 {
		t.Fatalf("unobstructed path has %d points, want 4", got)
	}

	bundle, err := RouteSmart([]core.Port{start}, []core.Port{end}, cfg)
	if err != nil {
		t.Fatalf("RouteSmart: %v", err)
	}
	pts := bundle.Paths[0].Points
	if pts[0] != start.Pos || pts[len(pts)-1] != end.Pos {
		t.Fatalf("path does not connect the ports: %v", pts)
	}
	if geometry.PathCrossesBox(pts, start.Width/2, box) {
		t.Errorf("path still crosses the obstacle: %v", pts)
	}
	if geometry.PathSelfIntersects(pts) {
		t.Errorf("detour crosses itself: %v", pts)
	}
	// The detour adds exactly two bends over the plain route.
	if got, want := len(pts), len(plain.Paths[0].Points)+2; got != want {
		t.Errorf("detour has %d points, want %d: %v", got, want, pts)
	}
}

func TestRouteSmartDetourZeroHalfWidth(t *testing.T) {
	// A width-1 route sweeps a degenerate rectangle; obstacle crossings
	// must still be detected and detoured.
	start := core.Port{Name: "a", Pos: core.Point{X: 0, Y: 0}, Dir: core.East, Width: 1}
	end := core.Port{Name: "b", Pos: core.Point{X: 10000, Y: 5000}, Dir: core.West, Width: 1}
	box := core.Box{Min: core.Point{X: 4000, Y: -1000}, Max: core.Point{X: 6000, Y: 6000}}
	cfg := BundleConfig{Config: Config{
		Bend90Radius:  1000,
		Separation:    3000,
		StartStraight: 2000,
		EndStraight:   2000,
	}, Obstacles: []core.Box{box}}

	bundle, err := RouteSmart([]core.Port{start}, []core.Port{end}, cfg)
	if err != nil {
		t.Fatalf("RouteSmart: %v", err)
	}
	pts := bundle.Paths[0].Points
	if geometry.PathCrossesBox(pts, 0, box) {
		t.Errorf("path crosses the obstacle: %v", pts)
	}
	want := []core.Point{
		{X: 0, Y: 0}, {X: 3000, Y: 0}, {X: 3000, Y: 9000}, {X: 6000, Y: 9000}, {X: 6000, Y: 5000}, {X: 10000, Y: 5000},
	}
	if diff := cmp.Diff(want, pts); diff != "" {
		t.Errorf("detour mismatch (-want +got):\n%s", diff)
	}
}

func TestRouteSmartDetourExactPath(t *testing.T) {
	start := port("a", 0, 0, core.East)
	end := port("b", 10000, 5000, core.West)
	cfg := BundleConfig{Config: Config{
		Bend90Radius:  1000,
		Separation:    3000,
		StartStraight: 2000,
		EndStraight:   2000,
	}, Obstacles: []core.Box{
		{Min: core.Point{X: 4000, Y: -1000}, Max: core.Point{X: 6000, Y: 6000}},
	}}

	bundle, err := RouteSmart([]core.Port{start}, []core.Port{end}, cfg)
	if err != nil {
		t.Fatalf("RouteSmart: %v", err)
	}
	want := []core.Point{
		{X: 0, Y: 0}, {X: 3000, Y: 0}, {X: 3000, Y: 9250}, {X: 6250, Y: 9250}, {X: 6250, Y: 5000}, {X: 10000, Y: 5000},
	}
	if diff := cmp.Diff(want, bundle.Paths[0].Points); diff != "" {
		t.Errorf("detour mismatch (-want +got):\n%s", diff)
	}
}

func TestRouteSmartObstacleBlocksPort(t *testing.T) {
	// The end port sits inside the keep-out span of the box, so no riser
	// fits between the box and the port.
	start := port("a", 0, 0, core.East)
	end := port("b", 5000, 5000, core.West)
	box := core.Box{Min: core.Point{X: 4000, Y: -1000}, Max: core.Point{X: 6000, Y: 6000}}
	cfg := BundleConfig{Config: Config{
		Bend90Radius:  1000,
		StartStraight: 500,
		EndStraight:   500,
	}, Obstacles: []core.Box{box}}

	_, err := RouteSmart([]core.Port{start}, []core.Port{end}, cfg)
	if err == nil {
		t.Fatal("expected an infeasible route")
	}
	if !errors.Is(err, ErrInfeasible) {
		t.Fatalf("error %v does not match ErrInfeasible", err)
	}
	var ie *InfeasibleError
	if !errors.As(err, &ie) {
		t.Fatalf("error %v is not an InfeasibleError", err)
	}
	if ie.Obstacle == nil || *ie.Obstacle != box {
		t.Errorf("error does not name the obstacle: %+v", ie)
	}
}

func TestRouteSmartObstacleTimeout(t *testing.T) {
	// A wall of boxes that keeps displacing the route back and forth burns
	// through a tiny step budget.
	start := port("a", 0, 0, core.East)
	end := port("b", 40000, 20000, core.West)
	cfg := BundleConfig{Config: Config{
		Bend90Radius:  1000,
		Separation:    1000,
		StartStraight: 500,
		EndStraight:   500,
		MaxSteps:      1,
	}, Obstacles: []core.Box{
		{Min: core.Point{X: 10000, Y: -5000}, Max: core.Point{X: 12000, Y: 40000}},
		{Min: core.Point{X: 20000, Y: -40000}, Max: core.Point{X: 22000, Y: 25000}},
		{Min: core.Point{X: 30000, Y: -5000}, Max: core.Point{X: 32000, Y: 40000}},
	}}

	_, err := RouteSmart([]core.Port{start}, []core.Port{end}, cfg)
	if err == nil {
		t.Fatal("expected a timeout")
	}
	if !errors.Is(err, ErrTimeout) && !errors.Is(err, ErrInfeasible) {
		t.Fatalf("error %v matches neither ErrTimeout nor ErrInfeasible", err)
	}
	if !errors.Is(err, ErrTimeout) {
		t.Logf("budget of 1 surfaced infeasibility first: %v", err)
	}
}

func TestAvoidObstaclesIgnoresClearPaths(t *testing.T) {
	paths := []core.Path{{Points: []core.Point{{X: 0, Y: 0}, {X: 10000, Y: 0}}}}
	widths := []int{500}
	cfg := BundleConfig{Config: Config{Bend90Radius: 1000, Separation: 1000}, Obstacles: []core.Box{
		{Min: core.Point{X: 4000, Y: 2000}, Max: core.Point{X: 6000, Y: 4000}},
	}}
	starts := []core.Port{port("a", 0, 0, core.East)}
	ends := []core.Port{port("b", 10000, 0, core.West)}

	if err := avoidObstacles(paths, widths, starts, ends, cfg); err != nil {
		t.Fatalf("avoidObstacles: %v", err)
	}
	want := []core.Point{{X: 0, Y: 0}, {X: 10000, Y: 0}}
	if diff := cmp.Diff(want, paths[0].Points); diff != "" {
		t.Errorf("clear path was rewritten (-want +got):\n%s", diff)
	}
}
