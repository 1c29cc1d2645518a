package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// SweepWall sweeps a point against an axis-aligned wall segment.
//
// The axes are named for a vertical wall: x is the wall's normal axis and
// y its tangent axis. The point starts at (x, y) and moves by (dx, dy); the
// wall lies at x = wx and spans y in [wy1, wy2]. Horizontal walls are
// handled by passing the components swapped.
//
// best is the earliest time of impact found so far. A hit is reported only
// when it improves on best; otherwise best is returned unchanged. The segment
// range is checked at the start of the sweep and at best, not at the crossing
// time itself, which is a deliberate approximation.
func SweepWall(x, y, dx, dy, wx, wy1, wy2, best float64) (float64, bool) {
	if dx == 0 {
		return best, false
	}

	nt := (wx - x) / dx
	if nt <= 0 || nt >= best {
		return best, false
	}

	ny := y + best*dy
	if !within(y, wy1, wy2) && !within(ny, wy1, wy2) {
		return best, false
	}

	return math.Max(0, nt-TimeEpsilon), true
}

// SweepCircle sweeps the point rp along dp against a circle of radius r
// centered at the origin.
//
// On a hit it returns the backed-off time of impact and the unit normal from
// the circle center to the contact point. Like SweepWall it only reports
// times earlier than best.
func SweepCircle(rp, dp r2.Vec, r, best float64) (float64, r2.Vec, bool) {
	dpSquared := r2.Dot(dp, dp)
	if dpSquared == 0 {
		return best, r2.Vec{}, false
	}

	cross := r2.Cross(rp, dp)
	deltaSquared := r*r*dpSquared - cross*cross
	if deltaSquared < 0 {
		return best, r2.Vec{}, false
	}

	inner := r2.Dot(rp, dp)
	delta := math.Sqrt(deltaSquared)
	t1 := positiveOr((-inner+delta)/dpSquared, best)
	t2 := positiveOr((-inner-delta)/dpSquared, best)

	tFinal := math.Min(t1, t2)
	if tFinal >= best {
		return best, r2.Vec{}, false
	}

	t := math.Max(0, tFinal-TimeEpsilon)
	return t, unit(r2.Add(rp, r2.Scale(t, dp))), true
}

func within(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

func positiveOr(t, fallback float64) float64 {
	if t > 0 {
		return t
	}
	return fallback
}

// unit normalizes v, mapping the zero vector to itself.
func unit(v r2.Vec) r2.Vec {
	if r2.Norm2(v) == 0 {
		return r2.Vec{}
	}
	return r2.Unit(v)
}
