package scene

import (
	"image/color"

	"github.com/philipparndt/gopoly/pkg/geometry"
)

const (
	GroundName = "ground"
	GridName   = "grid"
)

// Scene is the ordered collection of objects drawn in the viewport. The
// ground plane and grid are fixtures and survive Clear.
type Scene struct {
	objects []*Object
}

// New creates a scene holding a ground plane and a grid of the given size
func New(size float64, divisions int) *Scene {
	s := &Scene{}
	s.Add(NewFixture(GroundName, size, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255}))
	s.Add(NewFixture(GridName, size, divisions, color.RGBA{R: 136, G: 136, B: 136, A: 255}))
	return s
}

// Add appends an object to the scene
func (s *Scene) Add(obj *Object) {
	if obj == nil {
		return
	}
	s.objects = append(s.objects, obj)
}

// Remove detaches an object, reporting whether it was present
func (s *Scene) Remove(obj *Object) bool {
	for i, o := range s.objects {
		if o == obj {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether the object is attached to the scene
func (s *Scene) Contains(obj *Object) bool {
	for _, o := range s.objects {
		if o == obj {
			return true
		}
	}
	return false
}

// Children returns a snapshot of the attached objects in insertion order
func (s *Scene) Children() []*Object {
	out := make([]*Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// Len returns the number of attached objects, fixtures included
func (s *Scene) Len() int {
	return len(s.objects)
}

// Objects returns the attached objects of the given kind
func (s *Scene) Objects(kind Kind) []*Object {
	var out []*Object
	for _, o := range s.objects {
		if o.Kind == kind {
			out = append(out, o)
		}
	}
	return out
}

// Find returns the first object with the given name
func (s *Scene) Find(name string) *Object {
	for _, o := range s.objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// Clear removes every object that is not a fixture and returns how many were removed
func (s *Scene) Clear() int {
	kept := s.objects[:0]
	removed := 0
	for _, o := range s.objects {
		if o.Kind == KindFixture {
			kept = append(kept, o)
			continue
		}
		removed++
	}
	for i := len(kept); i < len(s.objects); i++ {
		s.objects[i] = nil
	}
	s.objects = kept
	return removed
}

// Pick intersects a ray with the ground plane. Only the ground is a valid
// click target.
func (s *Scene) Pick(ray geometry.Ray) (geometry.Vector3, bool) {
	ground := s.Find(GroundName)
	if ground == nil {
		return geometry.Vector3{}, false
	}
	return ray.IntersectRect(ground.Position, ground.Size, ground.Size)
}

// Triangles returns the world space triangles of all shape objects
func (s *Scene) Triangles() []geometry.Triangle {
	var out []geometry.Triangle
	for _, o := range s.objects {
		if o.Kind == KindPolygon || o.Kind == KindClone {
			out = append(out, o.Triangles()...)
		}
	}
	return out
}
