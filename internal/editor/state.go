package editor

import (
	"errors"

	"github.com/philipparndt/gopoly/pkg/geometry"
	"github.com/philipparndt/gopoly/pkg/scene"
)

var (
	// ErrTooFewVertices is returned by CompletePolygon with fewer than three vertices
	ErrTooFewVertices = errors.New("at least 3 points are required to form a polygon")
	// ErrNoPolygon is returned by CopyPolygon before a polygon was built
	ErrNoPolygon = errors.New("no polygon to copy")
	// ErrPolygonExists is returned by CompletePolygon under PolicyReject
	ErrPolygonExists = errors.New("a polygon already exists, reset first")
)

// Polygon is a built shape. It is not modified after creation.
type Polygon struct {
	Ring     []geometry.Vector3 // vertices sorted by descending polar angle
	Centroid geometry.Vector3
	Object   *scene.Object
	WKT      string
	Simple   bool // false when the sorted ring self intersects
}

// State is everything the editor tracks between events
type State struct {
	Vertices []geometry.Vector3
	Markers  []*scene.Object
	Polygon  *Polygon
	Clone    *scene.Object
	Dragging bool
}

func (s *State) hasVertex(p geometry.Vector3) bool {
	for _, v := range s.Vertices {
		if v.SameXZ(p) {
			return true
		}
	}
	return false
}
