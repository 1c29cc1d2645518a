package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestSlideFreeMotion(t *testing.T) {
	bodies := []Body{
		box(0, 0, 0.5, 0.5, 0),
		box(-2, 0, 0.5, 0.5, 0),
	}

	res := DefaultResolver().Slide(bodies, 0, r2.Vec{X: 1})

	assert.Equal(t, 1, res.Iterations)
	assert.Zero(t, res.Hits)
	assert.False(t, res.Rejected)
	assert.InDelta(t, 1, bodies[0].Position.X, 1e-12)
	assert.InDelta(t, 0, bodies[0].Position.Y, 1e-12)
}

func TestSlideStopsAtWall(t *testing.T) {
	bodies := []Body{
		box(0, 0, 0.5, 0.5, 0),
		box(2, 0, 0.5, 0.5, 0),
	}
	bodies[0].Velocity = r2.Vec{X: 5, Y: 1}

	res := DefaultResolver().Slide(bodies, 0, r2.Vec{X: 3.002})

	require.Equal(t, 1, res.Hits)
	assert.False(t, res.Rejected)
	assert.InDelta(t, 3.002*(0.5-TimeEpsilon), bodies[0].Position.X, 1e-9)
	assert.InDelta(t, 0, bodies[0].Velocity.X, 1e-12)
	assert.InDelta(t, 1, bodies[0].Velocity.Y, 1e-12)
	assert.Equal(t, 1, res.Contacts[0].Other)
	assert.Equal(t, normalLeft, res.Contacts[0].Normal)

	n, ok := res.LastNormal()
	assert.True(t, ok)
	assert.Equal(t, normalLeft, n)
}

func TestSlideAroundCorner(t *testing.T) {
	bodies := []Body{
		point(2, 2),
		box(0, 0, 1, 1, 0.5),
	}
	bodies[0].Velocity = r2.Vec{X: -1, Y: -0.5}

	res := DefaultResolver().Slide(bodies, 0, r2.Vec{X: -1.2, Y: -1.2})

	require.Equal(t, 1, res.Hits)
	assert.False(t, res.Rejected)

	n := res.Contacts[0].Normal
	assert.InDelta(t, 1/math.Sqrt2, n.X, 1e-6)
	assert.InDelta(t, 1/math.Sqrt2, n.Y, 1e-6)
	assert.InDelta(t, 0, r2.Dot(bodies[0].Velocity, n), 1e-9)

	// the body ends just outside the rounded corner
	dist := r2.Norm(r2.Sub(bodies[0].Position, r2.Vec{X: 0.5, Y: 0.5}))
	assert.Greater(t, dist, 0.5)
	assert.InDelta(t, 0.5, dist, 1e-3)
}

func TestMoveRejectedFromInside(t *testing.T) {
	bodies := []Body{
		point(0, 0),
		box(10, 10, 1, 1, 0),
		box(0, 0, 1, 1, 0),
	}

	res := DefaultResolver().Move(bodies, 0, 0.1, 50, r2.Vec{X: 1})

	assert.True(t, res.Rejected)
	assert.Equal(t, 2, res.Blocker)
	assert.Zero(t, res.Hits)
	assert.Equal(t, r2.Vec{}, bodies[0].Position)
	assert.Equal(t, r2.Vec{}, bodies[0].Velocity)
	assert.Equal(t, r2.Vec{X: 10, Y: 10}, bodies[1].Position)
}

func TestMoveKinematics(t *testing.T) {
	bodies := []Body{point(0, 0)}
	bodies[0].Velocity = r2.Vec{X: 2}

	res := DefaultResolver().Move(bodies, 0, 0.1, 50, r2.Vec{Y: 1})

	// a = (0,50) - 8*(2,0) = (-16,50)
	assert.InDelta(t, 2*0.1-16*0.005, bodies[0].Position.X, 1e-12)
	assert.InDelta(t, 50*0.005, bodies[0].Position.Y, 1e-12)
	assert.InDelta(t, 2-1.6, bodies[0].Velocity.X, 1e-12)
	assert.InDelta(t, 5, bodies[0].Velocity.Y, 1e-12)
	assert.InDelta(t, bodies[0].Position.X, res.Moved.X, 1e-12)
}

func TestMoveIdempotentAfterSlide(t *testing.T) {
	bodies := []Body{
		box(0, 0, 0.5, 0.5, 0),
		box(2, 0, 0.5, 0.5, 0),
	}
	bodies[0].Velocity = r2.Vec{X: 5, Y: 1}
	r := DefaultResolver()
	r.Slide(bodies, 0, r2.Vec{X: 3.002})

	// resting against the wall with only tangential velocity left
	x := bodies[0].Position.X
	require.Equal(t, 0.0, bodies[0].Velocity.X)
	require.Equal(t, 1.0, bodies[0].Velocity.Y)

	for frame := 0; frame < 5; frame++ {
		y := bodies[0].Position.Y
		res := r.Move(bodies, 0, 1.0/60, 50, r2.Vec{})

		require.Zero(t, res.Hits, "frame %d", frame)
		require.False(t, res.Rejected, "frame %d", frame)
		assert.Equal(t, x, bodies[0].Position.X, "frame %d", frame)
		assert.Equal(t, 0.0, bodies[0].Velocity.X, "frame %d", frame)
		assert.Greater(t, bodies[0].Position.Y, y, "frame %d", frame)
		assert.Greater(t, bodies[0].Velocity.Y, 0.0, "frame %d", frame)
	}
}

func TestSlideRemainderAfterHit(t *testing.T) {
	bodies := []Body{
		box(0, 0, 0.5, 0.5, 0),
		box(2, 0, 0.5, 4, 0),
	}
	bodies[0].Velocity = r2.Vec{X: 5, Y: 1}

	res := DefaultResolver().Slide(bodies, 0, r2.Vec{X: 3.002, Y: 1})

	require.Equal(t, 1, res.Hits)
	assert.Equal(t, 2, res.Iterations)
	assert.False(t, res.Rejected)
	hitT := 0.5 - TimeEpsilon
	assert.InDelta(t, 3.002*hitT, bodies[0].Position.X, 1e-9)
	// t of the tangent before the hit plus the unused 1-t after it
	assert.InDelta(t, 1.0, bodies[0].Position.Y, 1e-9)
	assert.InDelta(t, 1.0, bodies[0].Velocity.Y, 1e-12)
}

func TestMoveNonCollidingPassesThrough(t *testing.T) {
	bodies := []Body{
		circle(0, 0, 0.5),
		box(1, 0, 0.5, 4, 0),
	}
	bodies[0].Collides = false

	res := DefaultResolver().Slide(bodies, 0, r2.Vec{X: 3})

	assert.Zero(t, res.Hits)
	assert.InDelta(t, 3, bodies[0].Position.X, 1e-12)
}

func TestSlideIterationCap(t *testing.T) {
	r := Resolver{Damping: DefaultDamping, MaxSlideIterations: 1}
	bodies := []Body{
		box(0, 0, 0.5, 0.5, 0),
		box(2, 0, 0.5, 0.5, 0),
	}

	res := r.Slide(bodies, 0, r2.Vec{X: 3.002, Y: 1})

	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, 1, res.Hits)
}

func TestMoveNeverEndsOverlapping(t *testing.T) {
	bodies := []Body{
		circle(0, 0, 0.5),
		box(-2, 0, 1, 1, 0),
		box(2, 1, 1, 3, 0.25),
		circle(0, 2.5, 0.75),
		box(0, -3, 6, 0.5, 0),
	}
	r := DefaultResolver()
	dirs := []r2.Vec{
		{X: 1}, {X: 1, Y: 1}, {Y: 1}, {X: -1, Y: 1},
		{X: -1}, {X: -1, Y: -1}, {Y: -1}, {X: 1, Y: -1},
	}

	for frame := 0; frame < 600; frame++ {
		dir := dirs[(frame/40)%len(dirs)]
		if r2.Norm2(dir) > 0 {
			dir = r2.Unit(dir)
		}
		res := r.Move(bodies, 0, 1.0/60, 50, dir)
		assert.LessOrEqual(t, res.Iterations, maxSlideIterations)
		require.Equal(t, -1, Blocking(bodies, 0, bodies[0].Position), "frame %d", frame)
	}
}

func TestMoveDeterministic(t *testing.T) {
	run := func() Body {
		bodies := []Body{
			circle(0, 0, 0.5),
			box(1.5, 0.2, 1, 1, 0.1),
			box(-1, 2, 3, 0.5, 0),
		}
		r := DefaultResolver()
		for frame := 0; frame < 120; frame++ {
			r.Move(bodies, 0, 1.0/60, 50, r2.Unit(r2.Vec{X: 1, Y: 0.6}))
		}
		return bodies[0]
	}

	assert.Equal(t, run(), run())
}
