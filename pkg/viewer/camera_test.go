package viewer

import (
	"testing"

	"github.com/philipparndt/gopoly/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCameraKeepsPosition(t *testing.T) {
	c := NewCamera(geometry.NewVector3(0, 10, 15), 75)
	assert.InDelta(t, 0, c.Position.X, 1e-9)
	assert.InDelta(t, 10, c.Position.Y, 1e-9)
	assert.InDelta(t, 15, c.Position.Z, 1e-9)
}

func TestProjectTargetIsCentered(t *testing.T) {
	c := NewCamera(geometry.NewVector3(0, 10, 15), 75)
	x, y, z := c.Project(geometry.Vector3{}, 800, 600)
	assert.InDelta(t, 400, x, 1e-6)
	assert.InDelta(t, 300, y, 1e-6)
	assert.Greater(t, z, 0.0)
}

func TestUnprojectInvertsProject(t *testing.T) {
	c := NewCamera(geometry.NewVector3(0, 10, 15), 75)
	points := []geometry.Vector3{
		geometry.NewVector3(3, 0, -2),
		geometry.NewVector3(-4, 0, 5),
		geometry.NewVector3(0.5, 0, 0.5),
	}

	for _, p := range points {
		sx, sy, _ := c.Project(p, 800, 600)
		ray := c.Unproject(sx, sy, 800, 600)
		hit, ok := ray.IntersectHorizontalPlane(0)
		require.True(t, ok)
		assert.InDelta(t, p.X, hit.X, 1e-6)
		assert.InDelta(t, p.Z, hit.Z, 1e-6)
	}
}

func TestRotateClampsElevation(t *testing.T) {
	c := NewCamera(geometry.NewVector3(0, 10, 15), 75)
	c.Rotate(-10, 0)
	assert.InDelta(t, 0.05, c.RotationX, 1e-9)
	assert.Greater(t, c.Position.Y, 0.0)

	c.Rotate(10, 0)
	assert.Less(t, c.RotationX, 1.5708)
}

func TestZoomClamps(t *testing.T) {
	c := NewCamera(geometry.NewVector3(0, 10, 15), 75)
	c.Zoom(-0.99)
	c.Zoom(-0.99)
	assert.Equal(t, 1.0, c.Distance)
	assert.InDelta(t, 1.0, c.Position.Length(), 1e-9)
}
