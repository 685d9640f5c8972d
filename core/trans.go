package core

import "fmt"

// Trans is a rigid transform on the dbu grid: a counter-clockwise rotation in
// 90° steps followed by a translation. It is the router's working
// representation of a port front: the frame origin sits on the port and the
// frame's x axis points in the port's facing direction.
type Trans struct {
	Angle Direction
	Disp  Vector
}

// Apply transforms a point: rotation first, then translation.
func (t Trans) Apply(p Point) Point {
	return p.Vector().Rotated(t.Angle).Add(t.Disp).Point()
}

// ApplyVector rotates a vector. Vectors do not translate.
func (t Trans) ApplyVector(v Vector) Vector {
	return v.Rotated(t.Angle)
}

// Mul composes the two transforms so that t.Mul(o).Apply(p) equals
// t.Apply(o.Apply(p)).
func (t Trans) Mul(o Trans) Trans {
	return Trans{
		Angle: (t.Angle + o.Angle) & 3,
		Disp:  t.Disp.Add(o.Disp.Rotated(t.Angle)),
	}
}

// Inverted returns the inverse transform.
func (t Trans) Inverted() Trans {
	inv := (4 - t.Angle) & 3
	return Trans{Angle: inv, Disp: t.Disp.Rotated(inv).Neg()}
}

// Position returns the transform's origin as a point.
func (t Trans) Position() Point {
	return t.Disp.Point()
}

// Shifted returns the transform moved by d along its own x axis.
func (t Trans) Shifted(d int) Trans {
	return t.Mul(Trans{Disp: Vector{X: d}})
}

// String returns the transform as "angle(x,y)".
func (t Trans) String() string {
	return fmt.Sprintf("r%d%s", int(t.Angle)*90, t.Disp.Point())
}
