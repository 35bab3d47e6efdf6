package scene

import (
	"errors"
	"fmt"

	"github.com/philipparndt/gopoly/pkg/geometry"
)

// ErrDegenerateShape is returned when an outline has fewer than three distinct points
var ErrDegenerateShape = errors.New("shape needs at least 3 distinct points")

// Mesh is a flat filled shape in local coordinates. Vertices lie in the XZ
// plane at y = 0, the owning Object supplies the world position.
type Mesh struct {
	Outline  []geometry.Vector3 // closed ring, first point repeated at the end
	Vertices []geometry.Vector3
	Indices  []int // three entries per triangle
	Fallback bool  // true when ear clipping failed and a fan was used
}

// NewShapeMesh triangulates a closed outline into a filled flat mesh.
// Outlines ear clipping cannot handle (self intersecting) are filled with a
// fan around the local origin instead.
func NewShapeMesh(outline []geometry.Vector3) (*Mesh, error) {
	ring := openRing(outline)
	if len(ring) < 3 {
		return nil, ErrDegenerateShape
	}

	closed := make([]geometry.Vector3, 0, len(ring)+1)
	closed = append(closed, ring...)
	closed = append(closed, ring[0])

	mesh := &Mesh{
		Outline:  closed,
		Vertices: ring,
	}

	indices, err := triangulateRing(ring)
	if err != nil {
		mesh.Vertices = append(append([]geometry.Vector3{}, ring...), geometry.Vector3{})
		mesh.Indices = fanIndices(len(ring))
		mesh.Fallback = true
		return mesh, nil
	}
	mesh.Indices = indices
	return mesh, nil
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangles returns the mesh triangles translated to the given world position
func (m *Mesh) Triangles(position geometry.Vector3) []geometry.Triangle {
	up := geometry.NewVector3(0, 1, 0)
	triangles := make([]geometry.Triangle, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tri := geometry.NewTriangle(up,
			m.Vertices[m.Indices[i]],
			m.Vertices[m.Indices[i+1]],
			m.Vertices[m.Indices[i+2]],
		)
		triangles = append(triangles, tri.Translate(position))
	}
	return triangles
}

// Area returns the filled area of the mesh
func (m *Mesh) Area() float64 {
	total := 0.0
	for _, tri := range m.Triangles(geometry.Vector3{}) {
		total += tri.Area()
	}
	return total
}

// openRing drops the closing point and consecutive duplicates
func openRing(outline []geometry.Vector3) []geometry.Vector3 {
	ring := make([]geometry.Vector3, 0, len(outline))
	for _, p := range outline {
		if len(ring) > 0 && ring[len(ring)-1].SameXZ(p) {
			continue
		}
		ring = append(ring, geometry.Vector3{X: p.X, Z: p.Z})
	}
	if len(ring) > 1 && ring[0].SameXZ(ring[len(ring)-1]) {
		ring = ring[:len(ring)-1]
	}
	return ring
}

// triangulateRing ear clips the ring and checks that every vertex was used
func triangulateRing(ring []geometry.Vector3) ([]int, error) {
	indices, err := geometry.Triangulate(ring)
	if err != nil {
		return nil, fmt.Errorf("triangulate outline: %w", err)
	}
	if len(indices) != (len(ring)-2)*3 {
		return nil, fmt.Errorf("triangulate outline: got %d triangles for %d points", len(indices)/3, len(ring))
	}
	return indices, nil
}

// fanIndices fans n ring vertices around the extra center vertex stored at index n
func fanIndices(n int) []int {
	indices := make([]int, 0, n*3)
	for i := 0; i < n; i++ {
		indices = append(indices, n, i, (i+1)%n)
	}
	return indices
}
