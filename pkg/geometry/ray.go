package geometry

import "math"

// Ray is a half line starting at Origin
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay creates a ray with a normalized direction
func NewRay(origin, direction Vector3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectHorizontalPlane returns where the ray crosses the plane y = height.
// Rays parallel to the plane or pointing away from it do not hit.
func (r Ray) IntersectHorizontalPlane(height float64) (Vector3, bool) {
	if math.Abs(r.Direction.Y) < 1e-12 {
		return Vector3{}, false
	}
	t := (height - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return Vector3{}, false
	}
	hit := r.At(t)
	hit.Y = height
	return hit, true
}

// IntersectRect intersects the ray with a finite, axis aligned rectangle of
// the given size lying in the plane y = height and centered on center.
func (r Ray) IntersectRect(center Vector3, width, depth float64) (Vector3, bool) {
	hit, ok := r.IntersectHorizontalPlane(center.Y)
	if !ok {
		return Vector3{}, false
	}
	if math.Abs(hit.X-center.X) > width/2 || math.Abs(hit.Z-center.Z) > depth/2 {
		return Vector3{}, false
	}
	return hit, true
}
