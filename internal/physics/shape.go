// Package physics implements continuous collision detection and sliding
// response for axis-aligned rounded rectangles.
//
// A moving body is swept against the Minkowski sum of its own shape and every
// other collidable body (summed boxes inflated by the summed radii). The
// nearest time of impact bounds how far the body may travel; the velocity and
// the remaining displacement then lose their component along the contact
// normal and the body keeps sliding, up to a fixed number of sub-steps per
// frame. A discrete overlap check gates every committed sub-step.
//
// The package holds no global state and never logs. Bodies are owned by the
// caller and addressed by their index in the slice passed in.
package physics

import "gonum.org/v1/gonum/spatial/r2"

// Tolerances shared by the sweep and overlap tests.
const (
	// TimeEpsilon is subtracted from every accepted time of impact so the
	// body stops just short of the surface it hit.
	TimeEpsilon = 0.0001

	// SurfaceEpsilon shrinks the inflated walls and the overlap regions.
	SurfaceEpsilon = 0.001
)

// ShapeKind tags the variant held by a Shape.
type ShapeKind uint8

const (
	ShapeNone   ShapeKind = iota // a point: no box and no radius
	ShapeCircle                  // Radius only
	ShapeBox                     // Box extent, optionally rounded by Radius
)

// String returns a human-readable name for the kind.
func (k ShapeKind) String() string {
	switch k {
	case ShapeNone:
		return "none"
	case ShapeCircle:
		return "circle"
	case ShapeBox:
		return "box"
	default:
		return "unknown"
	}
}

// Shape is the collision shape of a body.
//
// Box is the full box extent: two boxes a and b span ±0.5·(a.Box+b.Box)
// around each other's centers. Radius rounds the corners of a box or is the
// radius of a circle.
type Shape struct {
	Kind   ShapeKind
	Box    r2.Vec
	Radius float64
}

// Point returns a shape with no extent.
func Point() Shape {
	return Shape{Kind: ShapeNone}
}

// Circle returns a circle of the given radius.
func Circle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// Box returns a box with the given extent and corner rounding.
func Box(extent r2.Vec, radius float64) Shape {
	return Shape{Kind: ShapeBox, Box: extent, Radius: radius}
}

// extent returns the box part of the shape. Only boxes contribute one.
func (s Shape) extent() r2.Vec {
	if s.Kind != ShapeBox {
		return r2.Vec{}
	}
	return s.Box
}

// rounding returns the radius part of the shape. Points contribute none.
func (s Shape) rounding() float64 {
	if s.Kind == ShapeNone {
		return 0
	}
	return s.Radius
}

// HalfExtent returns half the size of the shape's bounding box.
func (s Shape) HalfExtent() r2.Vec {
	r := s.rounding()
	return r2.Add(r2.Scale(0.5, s.extent()), r2.Vec{X: r, Y: r})
}

// pair is the combined shape two bodies sweep against: the summed boxes
// inflated by the summed radii.
type pair struct {
	box    r2.Vec
	radius float64
}

func combine(a, b Shape) pair {
	return pair{
		box:    r2.Add(a.extent(), b.extent()),
		radius: a.rounding() + b.rounding(),
	}
}

// Kind reports which test family applies to the combined shape.
func (p pair) Kind() ShapeKind {
	switch {
	case p.box.X != 0 || p.box.Y != 0:
		return ShapeBox
	case p.radius > 0:
		return ShapeCircle
	default:
		return ShapeNone
	}
}

// cornerMax returns the upper-right corner of the combined rectangle;
// the lower-left one is its negation.
func (p pair) cornerMax() r2.Vec {
	return r2.Scale(0.5, p.box)
}

// Body is a collidable entity as seen by the resolver.
type Body struct {
	Position r2.Vec // meters
	Velocity r2.Vec // meters per second
	Shape    Shape
	Collides bool
}

// interacts reports whether bodies i and j take part in a pair test.
func interacts(bodies []Body, i, j int) bool {
	return i != j && bodies[i].Collides && bodies[j].Collides
}
