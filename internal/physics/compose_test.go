package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func box(x, y, w, h, radius float64) Body {
	return Body{
		Position: r2.Vec{X: x, Y: y},
		Shape:    Box(r2.Vec{X: w, Y: h}, radius),
		Collides: true,
	}
}

func circle(x, y, radius float64) Body {
	return Body{
		Position: r2.Vec{X: x, Y: y},
		Shape:    Circle(radius),
		Collides: true,
	}
}

func point(x, y float64) Body {
	return Body{
		Position: r2.Vec{X: x, Y: y},
		Shape:    Point(),
		Collides: true,
	}
}

func TestNearestMovingAwayIsMiss(t *testing.T) {
	bodies := []Body{
		box(0, 0, 0.5, 0.5, 0),
		box(-2, 0, 0.5, 0.5, 0),
	}

	hit := Nearest(bodies, 0, r2.Vec{X: 1})
	assert.False(t, hit.OK)
	assert.Equal(t, 1.0, hit.T)
	assert.Equal(t, -1, hit.Other)
}

func TestNearestWallHit(t *testing.T) {
	bodies := []Body{
		box(0, 0, 0.5, 0.5, 0),
		box(2, 0, 0.5, 0.5, 0),
	}

	hit := Nearest(bodies, 0, r2.Vec{X: 3.002})
	require.True(t, hit.OK)
	assert.InDelta(t, 0.5-TimeEpsilon, hit.T, 1e-9)
	assert.Equal(t, normalLeft, hit.Normal)
	assert.Equal(t, 1, hit.Other)
}

func TestNearestCornerHit(t *testing.T) {
	bodies := []Body{
		point(2, 2),
		box(0, 0, 1, 1, 0.5),
	}

	hit := Nearest(bodies, 0, r2.Vec{X: -1.2, Y: -1.2})
	require.True(t, hit.OK)

	want := (1.5*math.Sqrt2 - 0.5) / (1.2 * math.Sqrt2)
	assert.InDelta(t, want-TimeEpsilon, hit.T, 1e-9)
	assert.InDelta(t, 1/math.Sqrt2, hit.Normal.X, 1e-6)
	assert.InDelta(t, 1/math.Sqrt2, hit.Normal.Y, 1e-6)
}

func TestNearestCircles(t *testing.T) {
	tests := []struct {
		name    string
		delta   float64
		wantHit bool
	}{
		{"stops short", 1.5, false},
		{"ends inside", 2.5, true},
		{"passes through", 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bodies := []Body{circle(0, 0, 0.5), circle(3, 0, 0.5)}
			hit := Nearest(bodies, 0, r2.Vec{X: tt.delta})
			assert.Equal(t, tt.wantHit, hit.OK)
			if hit.OK {
				assert.InDelta(t, 2/tt.delta-TimeEpsilon, hit.T, 1e-9)
				assert.InDelta(t, -1, hit.Normal.X, 1e-9)
			}
		})
	}
}

func TestNearestPointsNeverCollide(t *testing.T) {
	bodies := []Body{point(0, 0), point(1, 0)}

	hit := Nearest(bodies, 0, r2.Vec{X: 2})
	assert.False(t, hit.OK)
}

func TestNearestSkipsNonColliding(t *testing.T) {
	ghost := box(2, 0, 0.5, 0.5, 0)
	ghost.Collides = false
	bodies := []Body{box(0, 0, 0.5, 0.5, 0), ghost}

	assert.False(t, Nearest(bodies, 0, r2.Vec{X: 4}).OK)

	bodies[1].Collides = true
	bodies[0].Collides = false
	assert.False(t, Nearest(bodies, 0, r2.Vec{X: 4}).OK)
}

func TestNearestTieKeepsFirstBody(t *testing.T) {
	bodies := []Body{
		box(0, 0, 0.5, 0.5, 0),
		box(2, 0, 0.5, 0.5, 0),
		box(2, 0, 0.5, 0.5, 0),
	}

	hit := Nearest(bodies, 0, r2.Vec{X: 3.002})
	require.True(t, hit.OK)
	assert.Equal(t, 1, hit.Other)
}

func TestNearestPicksEarliest(t *testing.T) {
	bodies := []Body{
		box(0, 0, 0.5, 0.5, 0),
		box(4, 0, 0.5, 0.5, 0),
		box(2, 0, 0.5, 0.5, 0),
	}

	hit := Nearest(bodies, 0, r2.Vec{X: 5})
	require.True(t, hit.OK)
	assert.Equal(t, 2, hit.Other)
	assert.InDelta(t, 1.501/5-TimeEpsilon, hit.T, 1e-9)
}

func TestNearerFoldOrder(t *testing.T) {
	hits := []Hit{
		{T: 0.7, OK: true, Other: 1},
		{T: 0.3, OK: true, Other: 2},
		{T: 0.1, OK: false, Other: 3},
		{T: 0.3, OK: true, Other: 4},
	}

	left := Miss()
	for _, h := range hits {
		left = left.Nearer(h)
	}
	right := Miss().Nearer(hits[0].Nearer(hits[1].Nearer(hits[2].Nearer(hits[3]))))

	assert.Equal(t, 2, left.Other)
	assert.Equal(t, left.T, right.T)
}

func TestHitTimeBounds(t *testing.T) {
	bodies := []Body{
		circle(0, 0, 0.25),
		box(1, 0.3, 0.5, 2, 0.1),
		box(-1, 1, 1, 0.2, 0),
		circle(0, -1.5, 0.4),
	}

	for deg := 0; deg < 360; deg += 15 {
		a := float64(deg) * math.Pi / 180
		hit := Nearest(bodies, 0, r2.Vec{X: 2 * math.Cos(a), Y: 2 * math.Sin(a)})
		assert.GreaterOrEqual(t, hit.T, 0.0, "angle %d", deg)
		assert.LessOrEqual(t, hit.T, 1.0, "angle %d", deg)
		if hit.OK {
			assert.InDelta(t, 1, r2.Norm(hit.Normal), 1e-9, "angle %d", deg)
		}
	}
}
