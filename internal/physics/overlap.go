package physics

import "gonum.org/v1/gonum/spatial/r2"

// Overlaps reports whether the moving body, placed at the given position,
// overlaps other. It is a discrete test with no notion of time and never
// produces a normal; the resolver uses it only to reject a sub-step.
//
// A rounded combined shape is covered by two rectangles, one widened and one
// heightened by the rounding radius, plus a circle at each corner. The
// rectangles are shrunk by SurfaceEpsilon so a body resting against a swept
// wall is not reported. A sharp box is the summed box deflated the same way
// as its swept walls. Without a box the combined shape is a single circle.
func Overlaps(moving Body, at r2.Vec, other Body) bool {
	if !moving.Collides || !other.Collides {
		return false
	}

	rp := r2.Sub(at, other.Position)
	p := combine(moving.Shape, other.Shape)
	r := p.radius

	switch p.Kind() {
	case ShapeBox:
		if r <= 0 {
			inner := r2.Sub(p.box, r2.Vec{X: 2 * SurfaceEpsilon, Y: 2 * SurfaceEpsilon})
			return insideCentered(rp, inner)
		}
		wide := r2.Vec{X: p.box.X + 2*(r-SurfaceEpsilon), Y: p.box.Y - SurfaceEpsilon}
		tall := r2.Vec{X: p.box.X - SurfaceEpsilon, Y: p.box.Y + 2*(r-SurfaceEpsilon)}
		if insideCentered(rp, wide) || insideCentered(rp, tall) {
			return true
		}
		hi := p.cornerMax()
		corners := [4]r2.Vec{
			{X: -hi.X, Y: hi.Y},
			{X: hi.X, Y: hi.Y},
			{X: -hi.X, Y: -hi.Y},
			{X: hi.X, Y: -hi.Y},
		}
		for _, c := range corners {
			if r2.Norm2(r2.Sub(rp, c)) <= r*r {
				return true
			}
		}
		return false

	case ShapeCircle:
		return r2.Norm2(rp) <= r*r

	default:
		return false
	}
}

// insideCentered reports whether p lies in the closed rectangle of the given
// size centered at the origin.
func insideCentered(p, size r2.Vec) bool {
	h := r2.Scale(0.5, size)
	return p.X >= -h.X && p.X <= h.X && p.Y >= -h.Y && p.Y <= h.Y
}

// Blocking returns the index of the first body that bodies[self] would
// overlap at the given position, or -1 when the position is free.
func Blocking(bodies []Body, self int, at r2.Vec) int {
	for i := range bodies {
		if !interacts(bodies, self, i) {
			continue
		}
		if Overlaps(bodies[self], at, bodies[i]) {
			return i
		}
	}
	return -1
}

// Contains reports whether point lies inside the body's shape. A point has
// no extent, so this is the overlap test of a point probe against the body.
func Contains(b Body, point r2.Vec) bool {
	probe := Body{Shape: Point(), Collides: true}
	b.Collides = true
	return Overlaps(probe, point, b)
}
