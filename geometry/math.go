// Package geometry provides integer math helpers for Manhattan route
// construction: segment intersection tests, swept-rectangle checks and
// polyline cleaning.
package geometry

import "mroute/core"

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the minimum of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ManhattanDistance calculates the Manhattan distance between two points.
func ManhattanDistance(p, q core.Point) int {
	return Abs(q.X-p.X) + Abs(q.Y-p.Y)
}

// IsManhattan reports whether the segment from p to q is axis-aligned.
// Zero-length segments count as Manhattan.
func IsManhattan(p, q core.Point) bool {
	return p.X == q.X || p.Y == q.Y
}

// SweptBox returns the rectangle swept by moving a square of half-width hw
// along the axis-aligned segment from p to q.
func SweptBox(p, q core.Point, hw int) core.Box {
	return core.BoxOf(p, q).Enlarged(hw)
}

// SegmentsIntersect reports whether two axis-aligned segments share at least
// one point. Touching endpoints count as an intersection.
func SegmentsIntersect(a1, a2, b1, b2 core.Point) bool {
	ab := core.BoxOf(a1, a2)
	bb := core.BoxOf(b1, b2)
	return ab.Min.X <= bb.Max.X && bb.Min.X <= ab.Max.X &&
		ab.Min.Y <= bb.Max.Y && bb.Min.Y <= ab.Max.Y
}

// SegmentCrossesBox reports whether the axis-aligned segment from p to q,
// inflated by half-width hw, overlaps the interior of the box. A segment
// that only touches the box border does not cross it. The swept extent is
// compared as an interval so that a zero half-width segment still crosses.
func SegmentCrossesBox(p, q core.Point, hw int, b core.Box) bool {
	if b.Empty() {
		return false
	}
	s := SweptBox(p, q, hw)
	return s.Min.X < b.Max.X && b.Min.X < s.Max.X &&
		s.Min.Y < b.Max.Y && b.Min.Y < s.Max.Y
}

// PathCrossesBox reports whether any segment of the polyline, inflated by
// half-width hw, overlaps the box interior.
func PathCrossesBox(pts []core.Point, hw int, b core.Box) bool {
	for i := 1; i < len(pts); i++ {
		if SegmentCrossesBox(pts[i-1], pts[i], hw, b) {
			return true
		}
	}
	return false
}

// CleanPoints removes consecutive duplicate points and collapses collinear
// runs so that every remaining interior point is a corner. The input slice is
// not modified.
func CleanPoints(pts []core.Point) []core.Point {
	if len(pts) < 2 {
		return append([]core.Point(nil), pts...)
	}
	cleaned := make([]core.Point, 0, len(pts))
	cleaned = append(cleaned, pts[0])
	for _, p := range pts[1:] {
		if p == cleaned[len(cleaned)-1] {
			continue
		}
		if len(cleaned) >= 2 {
			a := cleaned[len(cleaned)-2]
			b := cleaned[len(cleaned)-1]
			if (a.X == b.X && b.X == p.X) || (a.Y == b.Y && b.Y == p.Y) {
				cleaned[len(cleaned)-1] = p
				continue
			}
		}
		cleaned = append(cleaned, p)
	}
	return cleaned
}

// IsManhattanPath reports whether every segment of the polyline is
// axis-aligned.
func IsManhattanPath(pts []core.Point) bool {
	for i := 1; i < len(pts); i++ {
		if !IsManhattan(pts[i-1], pts[i]) {
			return false
		}
	}
	return true
}

// PathSelfIntersects reports whether any two non-adjacent segments of the
// polyline intersect.
func PathSelfIntersects(pts []core.Point) bool {
	for i := 1; i < len(pts); i++ {
		for j := i + 2; j < len(pts); j++ {
			if SegmentsIntersect(pts[i-1], pts[i], pts[j-1], pts[j]) {
				return true
			}
		}
	}
	return false
}

// PathsIntersect reports whether any segment of one polyline intersects any
// segment of the other.
func PathsIntersect(a, b []core.Point) bool {
	for i := 1; i < len(a); i++ {
		for j := 1; j < len(b); j++ {
			if SegmentsIntersect(a[i-1], a[i], b[j-1], b[j]) {
				return true
			}
		}
	}
	return false
}

// SegmentDistance returns the minimum axis distance between two parallel
// axis-aligned segments whose extents overlap on the shared axis, or -1 when
// the segments do not run parallel or share no extent.
func SegmentDistance(a1, a2, b1, b2 core.Point) int {
	aHoriz := a1.Y == a2.Y
	bHoriz := b1.Y == b2.Y
	if aHoriz != bHoriz {
		return -1
	}
	if aHoriz {
		if Max(Min(a1.X, a2.X), Min(b1.X, b2.X)) > Min(Max(a1.X, a2.X), Max(b1.X, b2.X)) {
			return -1
		}
		return Abs(a1.Y - b1.Y)
	}
	if Max(Min(a1.Y, a2.Y), Min(b1.Y, b2.Y)) > Min(Max(a1.Y, a2.Y), Max(b1.Y, b2.Y)) {
		return -1
	}
	return Abs(a1.X - b1.X)
}
