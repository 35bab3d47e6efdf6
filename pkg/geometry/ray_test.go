package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntersectHorizontalPlane(t *testing.T) {
	r := NewRay(NewVector3(0, 10, 15), NewVector3(0, -10, -15))

	hit, ok := r.IntersectHorizontalPlane(0)
	assert.True(t, ok)
	assert.InDelta(t, 0, hit.X, 1e-9)
	assert.Equal(t, 0.0, hit.Y)
	assert.InDelta(t, 0, hit.Z, 1e-9)
}

func TestIntersectHorizontalPlaneMisses(t *testing.T) {
	parallel := NewRay(NewVector3(0, 1, 0), NewVector3(1, 0, 0))
	_, ok := parallel.IntersectHorizontalPlane(0)
	assert.False(t, ok)

	away := NewRay(NewVector3(0, 1, 0), NewVector3(0, 1, 0))
	_, ok = away.IntersectHorizontalPlane(0)
	assert.False(t, ok)
}

func TestIntersectRect(t *testing.T) {
	down := func(x, z float64) Ray {
		return NewRay(NewVector3(x, 5, z), NewVector3(0, -1, 0))
	}

	hit, ok := down(3, -4).IntersectRect(Vector3{}, 20, 20)
	assert.True(t, ok)
	assert.Equal(t, NewVector3(3, 0, -4), hit)

	_, ok = down(10.5, 0).IntersectRect(Vector3{}, 20, 20)
	assert.False(t, ok, "outside the plane must not hit")
}
