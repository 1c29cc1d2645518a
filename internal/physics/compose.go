package physics

import "gonum.org/v1/gonum/spatial/r2"

// Wall normals of the combined rectangle.
var (
	normalLeft   = r2.Vec{X: -1}
	normalRight  = r2.Vec{X: 1}
	normalBottom = r2.Vec{Y: -1}
	normalTop    = r2.Vec{Y: 1}
)

// Hit is the outcome of a sweep: the fraction T of the displacement that may
// be travelled and, when OK, the normal of the surface that was reached and
// the index of the body it belongs to.
type Hit struct {
	T      float64
	Normal r2.Vec
	Other  int
	OK     bool
}

// Miss is the neutral element of Nearer: the full displacement is free.
func Miss() Hit {
	return Hit{T: 1, Other: -1}
}

// Nearer keeps the earlier of two hits. Ties keep h, so the first candidate
// in iteration order wins.
func (h Hit) Nearer(o Hit) Hit {
	if o.OK && o.T < h.T {
		return o
	}
	return h
}

// Nearest returns the earliest impact of bodies[self] moving by delta
// against every other collidable body.
func Nearest(bodies []Body, self int, delta r2.Vec) Hit {
	best := Miss()
	for i := range bodies {
		if !interacts(bodies, self, i) {
			continue
		}
		best = best.Nearer(PairHit(bodies[self], bodies[i], delta, best.T).withOther(i))
	}
	return best
}

func (h Hit) withOther(i int) Hit {
	if h.OK {
		h.Other = i
	}
	return h
}

// PairHit sweeps the moving body against one stationary body and returns the
// earliest impact that improves on best. Flags and identity are the caller's
// concern.
func PairHit(moving, other Body, delta r2.Vec, best float64) Hit {
	rp := r2.Sub(moving.Position, other.Position)
	p := combine(moving.Shape, other.Shape)

	hit := Hit{T: best, Other: -1}
	switch p.Kind() {
	case ShapeBox:
		hit = hit.Nearer(sweepWalls(rp, delta, p, hit.T))
		if p.radius > 0 {
			hit = hit.Nearer(sweepCorners(rp, delta, p, hit.T))
		}
	case ShapeCircle:
		if t, n, ok := SweepCircle(rp, delta, p.radius, hit.T); ok {
			hit = hit.Nearer(Hit{T: t, Normal: n, OK: true})
		}
	}
	return hit
}

// sweepWalls tests the four sides of the combined rectangle, each pushed out
// by the rounding radius along its normal. The tangent range stays the
// un-inflated box; the corner circles cover the rest.
func sweepWalls(rp, dp r2.Vec, p pair, best float64) Hit {
	hi := p.cornerMax()
	lo := r2.Scale(-1, hi)
	pad := p.radius - SurfaceEpsilon

	walls := [4]struct {
		x, y, dx, dy float64
		wx, wy1, wy2 float64
		normal       r2.Vec
	}{
		{rp.X, rp.Y, dp.X, dp.Y, lo.X - pad, lo.Y, hi.Y, normalLeft},
		{rp.X, rp.Y, dp.X, dp.Y, hi.X + pad, lo.Y, hi.Y, normalRight},
		{rp.Y, rp.X, dp.Y, dp.X, lo.Y - pad, lo.X, hi.X, normalBottom},
		{rp.Y, rp.X, dp.Y, dp.X, hi.Y + pad, lo.X, hi.X, normalTop},
	}

	hit := Hit{T: best, Other: -1}
	for _, w := range walls {
		if t, ok := SweepWall(w.x, w.y, w.dx, w.dy, w.wx, w.wy1, w.wy2, hit.T); ok {
			hit = hit.Nearer(Hit{T: t, Normal: w.normal, OK: true})
		}
	}
	return hit
}

// sweepCorners tests the rounded corners of the combined rectangle.
func sweepCorners(rp, dp r2.Vec, p pair, best float64) Hit {
	hi := p.cornerMax()
	corners := [4]r2.Vec{
		{X: -hi.X, Y: hi.Y},  // top left
		{X: hi.X, Y: hi.Y},   // top right
		{X: -hi.X, Y: -hi.Y}, // bottom left
		{X: hi.X, Y: -hi.Y},  // bottom right
	}

	hit := Hit{T: best, Other: -1}
	for _, c := range corners {
		if t, n, ok := SweepCircle(r2.Sub(rp, c), dp, p.radius, hit.T); ok {
			hit = hit.Nearer(Hit{T: t, Normal: n, OK: true})
		}
	}
	return hit
}
