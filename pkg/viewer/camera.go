package viewer

import (
	"math"

	"github.com/philipparndt/gopoly/pkg/geometry"
)

// Camera is an orbit camera looking at Target
type Camera struct {
	Position  geometry.Vector3
	Target    geometry.Vector3
	Up        geometry.Vector3
	FOV       float64 // vertical field of view in radians
	Distance  float64
	RotationX float64 // elevation
	RotationY float64 // azimuth
}

// NewCamera creates a camera at the given position looking at the origin
func NewCamera(position geometry.Vector3, fovDegrees float64) *Camera {
	c := &Camera{
		Target: geometry.Vector3{},
		Up:     geometry.NewVector3(0, 1, 0),
		FOV:    fovDegrees * math.Pi / 180,
	}
	c.Distance = position.Length()
	c.RotationX = math.Asin(position.Y / c.Distance)
	c.RotationY = math.Atan2(position.X, position.Z)
	c.UpdatePosition()
	return c
}

// UpdatePosition updates camera position based on rotation angles
func (c *Camera) UpdatePosition() {
	x := c.Distance * math.Cos(c.RotationX) * math.Sin(c.RotationY)
	y := c.Distance * math.Sin(c.RotationX)
	z := c.Distance * math.Cos(c.RotationX) * math.Cos(c.RotationY)

	c.Position = c.Target.Add(geometry.NewVector3(x, y, z))
}

// Rotate rotates the camera by the given angles
func (c *Camera) Rotate(deltaX, deltaY float64) {
	c.RotationX += deltaX
	c.RotationY += deltaY

	// keep above the ground and short of the pole
	maxAngle := math.Pi/2 - 0.01
	c.RotationX = math.Max(0.05, math.Min(maxAngle, c.RotationX))

	c.UpdatePosition()
}

// Zoom changes the camera distance by a relative amount
func (c *Camera) Zoom(delta float64) {
	c.Distance *= 1.0 + delta
	c.Distance = math.Max(1, math.Min(100, c.Distance))
	c.UpdatePosition()
}

func (c *Camera) basis() (forward, right, up geometry.Vector3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward).Normalize()
	return forward, right, up
}

// Project maps a world point to screen coordinates. The third value is the
// depth along the view direction, points with depth <= 0 are behind the camera.
func (c *Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	forward, right, up := c.basis()

	relative := point.Sub(c.Position)
	x := relative.Dot(right)
	y := relative.Dot(up)
	z := relative.Dot(forward)

	depth := z
	if z <= 0.01 {
		z = 0.01
	}

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	screenX := (x/(z*fovScale*aspect))*(width/2) + (width / 2)
	screenY := (-y/(z*fovScale))*(height/2) + (height / 2)

	return screenX, screenY, depth
}

// PixelScale returns how many pixels one world unit spans at the given depth
func (c *Camera) PixelScale(depth, height float64) float64 {
	if depth <= 0.01 {
		depth = 0.01
	}
	return (height / 2) / (depth * math.Tan(c.FOV/2))
}

// Unproject returns the ray from the camera through a screen position
func (c *Camera) Unproject(screenX, screenY, width, height float64) geometry.Ray {
	ndcX := (2.0 * screenX / width) - 1.0
	ndcY := 1.0 - (2.0 * screenY / height)

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	forward, right, up := c.basis()
	dir := forward.Add(right.Mul(ndcX * fovScale * aspect)).Add(up.Mul(ndcY * fovScale))

	return geometry.NewRay(c.Position, dir)
}
