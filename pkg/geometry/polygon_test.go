package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() []Vector3 {
	return []Vector3{
		NewVector3(0, 0, 0),
		NewVector3(2, 0, 0),
		NewVector3(2, 0, 2),
		NewVector3(0, 0, 2),
	}
}

func TestCentroid(t *testing.T) {
	c := Centroid(square(), 0.1)
	assert.Equal(t, NewVector3(1, 0.1, 1), c)

	assert.Equal(t, NewVector3(0, 0.5, 0), Centroid(nil, 0.5))
}

func TestSortByAngleSquareAnyOrder(t *testing.T) {
	want := []Vector3{
		NewVector3(0, 0, 2),
		NewVector3(2, 0, 2),
		NewVector3(2, 0, 0),
		NewVector3(0, 0, 0),
	}

	orders := [][]int{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
		{1, 3, 0, 2},
		{2, 0, 3, 1},
	}
	for _, order := range orders {
		pts := make([]Vector3, 0, len(order))
		for _, i := range order {
			pts = append(pts, square()[i])
		}
		center := Centroid(pts, 0)
		assert.Equal(t, NewVector3(1, 0, 1), center)

		sorted := SortByAngle(pts, center)
		assert.Equal(t, want, sorted, "click order %v", order)

		for i := 1; i < len(sorted); i++ {
			assert.Greater(t, PolarAngle(sorted[i-1], center), PolarAngle(sorted[i], center))
		}
	}
}

func TestSortByAngleDoesNotMutateInput(t *testing.T) {
	pts := square()
	_ = SortByAngle(pts, Centroid(pts, 0))
	assert.Equal(t, square(), pts)
}

func TestOutlineIsClosedAndLocal(t *testing.T) {
	center := Centroid(square(), 0)
	ring := SortByAngle(square(), center)

	outline := Outline(ring, center)
	require.Len(t, outline, 5)
	assert.Equal(t, outline[0], outline[4])
	assert.Equal(t, NewVector3(-1, 0, 1), outline[0])

	assert.Nil(t, Outline(nil, center))
}

func TestSignedArea(t *testing.T) {
	ccw := square()
	assert.InDelta(t, 4.0, SignedArea(ccw), 1e-12)

	center := Centroid(ccw, 0)
	cw := SortByAngle(ccw, center)
	assert.InDelta(t, -4.0, SignedArea(cw), 1e-12)
}

func TestRingWKT(t *testing.T) {
	assert.Equal(t, "POLYGON((0 0, 2 0, 2 2, 0 2, 0 0))", RingWKT(square()))

	closed := append(square(), square()[0])
	assert.Equal(t, "POLYGON((0 0, 2 0, 2 2, 0 2, 0 0))", RingWKT(closed))
}

func TestValidateRing(t *testing.T) {
	wkt, err := ValidateRing(square())
	require.NoError(t, err)
	assert.Contains(t, wkt, "POLYGON")

	bowtie := []Vector3{
		NewVector3(0, 0, 0),
		NewVector3(2, 0, 2),
		NewVector3(2, 0, 0),
		NewVector3(0, 0, 2),
	}
	_, err = ValidateRing(bowtie)
	assert.Error(t, err)

	_, err = ValidateRing(square()[:2])
	assert.Error(t, err)
}

func TestPolarAngle(t *testing.T) {
	assert.InDelta(t, math.Pi/2, PolarAngle(NewVector3(0, 0, 1), Vector3{}), 1e-12)
	assert.InDelta(t, math.Pi, PolarAngle(NewVector3(-1, 0, 0), Vector3{}), 1e-12)
}

func TestSelfIntersection(t *testing.T) {
	_, _, ok := SelfIntersection(square())
	assert.False(t, ok)

	closed := append(square(), square()[0])
	_, _, ok = SelfIntersection(closed)
	assert.False(t, ok)

	i, j, ok := SelfIntersection([]Vector3{
		NewVector3(0, 0, 0),
		NewVector3(2, 0, 2),
		NewVector3(2, 0, 0),
		NewVector3(0, 0, 2),
	})
	require.True(t, ok)
	assert.Equal(t, 0, i)
	assert.Equal(t, 2, j)
}
