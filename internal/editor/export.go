package editor

import (
	"github.com/paulmach/orb/geojson"
	"github.com/philipparndt/gopoly/pkg/stl"
)

// FeatureCollection returns every polygon and clone in the scene as GeoJSON
func (e *Editor) FeatureCollection() *geojson.FeatureCollection {
	return e.Status().FeatureCollection()
}

// WKT returns the primary polygon ring as WKT
func (e *Editor) WKT() (string, error) {
	if e.state.Polygon == nil {
		return "", ErrNoPolygon
	}
	return e.state.Polygon.WKT, nil
}

// Model returns the filled shapes of the scene as an STL model
func (e *Editor) Model() *stl.Model {
	return stl.NewModel("gopoly", e.scene.Triangles())
}
