package stl

import (
	"math"

	"github.com/philipparndt/gopoly/pkg/geometry"
)

// Model is a named triangle soup as stored in an STL file
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a model holding the given triangles
func NewModel(name string, triangles []geometry.Triangle) *Model {
	if triangles == nil {
		triangles = make([]geometry.Triangle, 0)
	}
	return &Model{
		Name:      name,
		Triangles: triangles,
	}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// Bounds returns the minimum and maximum corners of the model. An empty
// model yields two zero vectors.
func (m *Model) Bounds() (geometry.Vector3, geometry.Vector3) {
	if len(m.Triangles) == 0 {
		return geometry.Vector3{}, geometry.Vector3{}
	}
	lo := geometry.NewVector3(math.Inf(1), math.Inf(1), math.Inf(1))
	hi := geometry.NewVector3(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	for _, t := range m.Triangles {
		for _, v := range []geometry.Vector3{t.V1, t.V2, t.V3} {
			lo = geometry.NewVector3(math.Min(lo.X, v.X), math.Min(lo.Y, v.Y), math.Min(lo.Z, v.Z))
			hi = geometry.NewVector3(math.Max(hi.X, v.X), math.Max(hi.Y, v.Y), math.Max(hi.Z, v.Z))
		}
	}
	return lo, hi
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for _, triangle := range m.Triangles {
		totalArea += triangle.Area()
	}
	return totalArea
}
