// Package core contains the fundamental types used throughout the mroute
// routing library. All coordinates are integers on the database-unit (dbu)
// grid; the grid pitch itself is a concern of the caller.
package core

import "fmt"

// Point represents a 2D coordinate on the dbu grid.
type Point struct {
	X, Y int
}

// Add returns the point displaced by v.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Vector {
	return Vector{X: p.X - q.X, Y: p.Y - q.Y}
}

// Vector returns the point as a displacement from the origin.
func (p Point) Vector() Vector {
	return Vector(p)
}

// String returns the point as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Vector represents a 2D displacement on the dbu grid.
type Vector struct {
	X, Y int
}

// Add returns the sum of the two vectors.
func (v Vector) Add(w Vector) Vector {
	return Vector{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of the two vectors.
func (v Vector) Sub(w Vector) Vector {
	return Vector{X: v.X - w.X, Y: v.Y - w.Y}
}

// Neg returns the vector pointing the opposite way.
func (v Vector) Neg() Vector {
	return Vector{X: -v.X, Y: -v.Y}
}

// Point returns the vector as a point displaced from the origin.
func (v Vector) Point() Point {
	return Point(v)
}

// IsZero reports whether the vector has no extent.
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Rotated returns the vector rotated counter-clockwise by the given
// direction's angle (multiples of 90°).
func (v Vector) Rotated(d Direction) Vector {
	switch d & 3 {
	case East:
		return v
	case North:
		return Vector{X: -v.Y, Y: v.X}
	case West:
		return Vector{X: -v.X, Y: -v.Y}
	default:
		return Vector{X: v.Y, Y: -v.X}
	}
}

// Direction represents a cardinal direction, encoded as the number of 90°
// counter-clockwise rotations from East. This matches the angle encoding of
// the transforms used by the router.
type Direction int

const (
	East Direction = iota
	North
	West
	South
)

// String returns the string representation of a Direction.
func (d Direction) String() string {
	switch d & 3 {
	case East:
		return "East"
	case North:
		return "North"
	case West:
		return "West"
	default:
		return "South"
	}
}

// Opposite returns the opposite direction.
func (d Direction) Opposite() Direction {
	return (d + 2) & 3
}

// Vector returns the unit vector of the direction.
func (d Direction) Vector() Vector {
	return Vector{X: 1, Y: 0}.Rotated(d)
}

// Horizontal reports whether the direction runs along the x axis.
func (d Direction) Horizontal() bool {
	return d&1 == 0
}

// DirOf returns the direction of an axis-aligned vector. It reports ok=false
// for zero or diagonal vectors.
func DirOf(v Vector) (Direction, bool) {
	switch {
	case v.X > 0 && v.Y == 0:
		return East, true
	case v.X < 0 && v.Y == 0:
		return West, true
	case v.X == 0 && v.Y > 0:
		return North, true
	case v.X == 0 && v.Y < 0:
		return South, true
	default:
		return East, false
	}
}

// Layer identifies a layout layer as a GDS layer/datatype pair.
type Layer struct {
	Number   int
	Datatype int
}

// String returns the layer as "number/datatype".
func (l Layer) String() string {
	return fmt.Sprintf("%d/%d", l.Number, l.Datatype)
}

// Port is a connection point on a component: a position, a facing direction,
// a width and a layer. Ports are inputs to the router and are never mutated
// by it.
type Port struct {
	Name  string
	Pos   Point
	Dir   Direction
	Width int
	Layer Layer
}

// Trans returns the port's transform: the frame whose origin is the port
// position and whose x axis points along the port's facing direction.
func (p Port) Trans() Trans {
	return Trans{Angle: p.Dir, Disp: p.Pos.Vector()}
}

// String returns a short description of the port.
func (p Port) String() string {
	return fmt.Sprintf("%s@%s/%s w=%d", p.Name, p.Pos, p.Dir, p.Width)
}

// Path represents a route centerline through the layout as an ordered
// sequence of corner points.
type Path struct {
	Points []Point
}

// Len returns the number of points in the path.
func (p Path) Len() int {
	return len(p.Points)
}

// IsEmpty reports whether the path has no points.
func (p Path) IsEmpty() bool {
	return len(p.Points) == 0
}

// Length returns the summed Manhattan length of the path's segments.
func (p Path) Length() int {
	length := 0
	for i := 1; i < len(p.Points); i++ {
		v := p.Points[i].Sub(p.Points[i-1])
		length += abs(v.X) + abs(v.Y)
	}
	return length
}

// Box represents an axis-aligned rectangle. A degenerate box (zero area) is
// treated as empty by the router.
type Box struct {
	Min, Max Point
}

// BoxOf returns the normalized box spanning the two points.
func BoxOf(p, q Point) Box {
	b := Box{Min: p, Max: p}
	return b.Including(q)
}

// Width returns the width of the box.
func (b Box) Width() int {
	return b.Max.X - b.Min.X
}

// Height returns the height of the box.
func (b Box) Height() int {
	return b.Max.Y - b.Min.Y
}

// Empty reports whether the box has zero area.
func (b Box) Empty() bool {
	return b.Min.X >= b.Max.X || b.Min.Y >= b.Max.Y
}

// Contains reports whether the point lies within the box, borders included.
func (b Box) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Including returns the smallest box covering b and p.
func (b Box) Including(p Point) Box {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	return b
}

// Union returns the smallest box covering both boxes.
func (b Box) Union(o Box) Box {
	return b.Including(o.Min).Including(o.Max)
}

// Enlarged returns the box grown by d on every side.
func (b Box) Enlarged(d int) Box {
	return Box{
		Min: Point{X: b.Min.X - d, Y: b.Min.Y - d},
		Max: Point{X: b.Max.X + d, Y: b.Max.Y + d},
	}
}

// Overlaps reports whether the two boxes share any area. Degenerate boxes
// never overlap anything.
func (b Box) Overlaps(o Box) bool {
	if b.Empty() || o.Empty() {
		return false
	}
	return b.Min.X < o.Max.X && o.Min.X < b.Max.X &&
		b.Min.Y < o.Max.Y && o.Min.Y < b.Max.Y
}

// String returns the box as "(x1,y1;x2,y2)".
func (b Box) String() string {
	return fmt.Sprintf("(%d,%d;%d,%d)", b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
