package routing

import (
	"mroute/core"
	"mroute/geometry"
)

// Collision reports two routed paths touching or crossing, or a single path
// crossing itself. The check is advisory: bundles with crossing input
// pairings route fine but collide, and it is up to the caller whether that
// is acceptable.
type Collision struct {
	// PathA and PathB index into the checked path list. For a
	// self-intersection both hold the same index.
	PathA, PathB int
	Self         bool
}

// CheckCollisions scans routed paths for self-intersections and pairwise
// intersections. It returns one entry per offending path or pair, in index
// order.
func CheckCollisions(paths []core.Path) []Collision {
	var out []Collision
	for i, p := range paths {
		if geometry.PathSelfIntersects(p.Points) {
			out = append(out, Collision{PathA: i, PathB: i, Self: true})
		}
	}
	for i := range paths {
		for j := i + 1; j < len(paths); j++ {
			if geometry.PathsIntersect(paths[i].Points, paths[j].Points) {
				out = append(out, Collision{PathA: i, PathB: j})
			}
		}
	}
	return out
}
