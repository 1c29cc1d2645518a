package physics

import "gonum.org/v1/gonum/spatial/r2"

const (
	// DefaultDamping is the linear velocity damping applied by Move.
	DefaultDamping = 8.0

	// maxSlideIterations caps the sub-steps of a single frame.
	maxSlideIterations = 4
)

// Resolver moves one body at a time through a set of stationary bodies.
type Resolver struct {
	Damping            float64
	MaxSlideIterations int
}

// DefaultResolver returns a resolver with the standard tuning.
func DefaultResolver() Resolver {
	return Resolver{
		Damping:            DefaultDamping,
		MaxSlideIterations: maxSlideIterations,
	}
}

// Contact records one accepted impact of a frame.
type Contact struct {
	Other  int
	Normal r2.Vec
	T      float64
}

// Result summarizes a frame. It is informational; the bodies slice already
// holds the committed state.
type Result struct {
	Iterations int       // sub-steps evaluated
	Hits       int       // sub-steps that ended on a surface
	Rejected   bool      // a candidate position failed the overlap test
	Blocker    int       // body that caused the rejection, -1 if none
	Contacts   []Contact // accepted impacts in order
	Moved      r2.Vec    // committed displacement
}

// LastNormal returns the normal of the last accepted impact.
func (r Result) LastNormal() (r2.Vec, bool) {
	if len(r.Contacts) == 0 {
		return r2.Vec{}, false
	}
	return r.Contacts[len(r.Contacts)-1].Normal, true
}

// Move integrates bodies[self] for one frame of length dt, driven toward
// direction at the given speed, and slides it through the other bodies.
//
// The direction is used as given; callers normalize it. The updated velocity
// is committed together with the first accepted sub-step, so a frame whose
// first candidate is rejected leaves the body untouched.
func (r Resolver) Move(bodies []Body, self int, dt, speed float64, direction r2.Vec) Result {
	b := bodies[self]
	accel := r2.Sub(r2.Scale(speed, direction), r2.Scale(r.Damping, b.Velocity))
	delta := r2.Add(r2.Scale(dt, b.Velocity), r2.Scale(0.5*dt*dt, accel))
	velocity := r2.Add(b.Velocity, r2.Scale(dt, accel))
	return r.slide(bodies, self, delta, velocity)
}

// Slide moves bodies[self] by delta with its current velocity, stopping and
// sliding along every surface it reaches.
func (r Resolver) Slide(bodies []Body, self int, delta r2.Vec) Result {
	return r.slide(bodies, self, delta, bodies[self].Velocity)
}

func (r Resolver) slide(bodies []Body, self int, delta, velocity r2.Vec) Result {
	res := Result{Blocker: -1}
	start := bodies[self].Position

	iterations := r.MaxSlideIterations
	if iterations <= 0 {
		iterations = maxSlideIterations
	}

	for i := 0; i < iterations; i++ {
		res.Iterations++

		hit := Nearest(bodies, self, delta)
		candidate := r2.Add(bodies[self].Position, r2.Scale(hit.T, delta))

		if blocker := Blocking(bodies, self, candidate); blocker >= 0 {
			res.Rejected = true
			res.Blocker = blocker
			break
		}

		bodies[self].Position = candidate
		if !hit.OK {
			bodies[self].Velocity = velocity
			break
		}

		res.Hits++
		res.Contacts = append(res.Contacts, Contact{Other: hit.Other, Normal: hit.Normal, T: hit.T})

		velocity = project(velocity, hit.Normal)
		delta = project(r2.Scale(1-hit.T, delta), hit.Normal)
		bodies[self].Velocity = velocity
	}

	res.Moved = r2.Sub(bodies[self].Position, start)
	return res
}

// project removes the component of v along the unit normal n.
func project(v, n r2.Vec) r2.Vec {
	return r2.Sub(v, r2.Scale(r2.Dot(v, n), n))
}
