package status

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// FeatureCollection converts the snapshot shapes to GeoJSON. The ground x
// axis maps to the first coordinate and z to the second.
func (s Snapshot) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, shape := range s.Shapes {
		poly := shape.Polygon()
		if poly == nil {
			continue
		}
		f := geojson.NewFeature(poly)
		f.ID = shape.ID
		f.Properties["kind"] = shape.Kind
		f.Properties["id"] = shape.ID
		f.Properties["area"] = math.Abs(planar.Area(poly))
		fc.Append(f)
	}
	return fc
}

// Polygon returns the shape ring as a closed orb polygon, or nil for rings
// with fewer than three points.
func (s Shape) Polygon() orb.Polygon {
	if len(s.Ring) < 3 {
		return nil
	}
	ring := make(orb.Ring, 0, len(s.Ring)+1)
	for _, p := range s.Ring {
		ring = append(ring, orb.Point{p[0], p[1]})
	}
	if !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return orb.Polygon{ring}
}
