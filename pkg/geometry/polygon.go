package geometry

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/peterstace/simplefeatures/geom"
)

// Centroid returns the arithmetic mean of the ground coordinates of points,
// placed at height y. An empty slice yields the origin.
func Centroid(points []Vector3, y float64) Vector3 {
	if len(points) == 0 {
		return Vector3{Y: y}
	}
	var sumX, sumZ float64
	for _, p := range points {
		sumX += p.X
		sumZ += p.Z
	}
	n := float64(len(points))
	return Vector3{X: sumX / n, Y: y, Z: sumZ / n}
}

// PolarAngle returns the angle of the ground vector from center to p
func PolarAngle(p, center Vector3) float64 {
	return math.Atan2(p.Z-center.Z, p.X-center.X)
}

// SortByAngle returns a copy of points ordered by descending polar angle
// around center. Points with equal angles keep their input order.
//
// For points in convex position the result is a simple ring. Concave
// inputs still produce a ring that is star shaped around center, which is
// not necessarily the outline the user had in mind.
func SortByAngle(points []Vector3, center Vector3) []Vector3 {
	sorted := make([]Vector3, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return PolarAngle(sorted[i], center) > PolarAngle(sorted[j], center)
	})
	return sorted
}

// Outline converts an ordered ring to coordinates relative to center and
// closes it by repeating the first point at the end.
func Outline(ring []Vector3, center Vector3) []Vector3 {
	if len(ring) == 0 {
		return nil
	}
	outline := make([]Vector3, 0, len(ring)+1)
	for _, p := range ring {
		outline = append(outline, Vector3{X: p.X - center.X, Z: p.Z - center.Z})
	}
	return append(outline, outline[0])
}

// SignedArea returns the shoelace area of the ring in the XZ plane.
// Positive means counterclockwise when X points right and Z points up.
func SignedArea(ring []Vector3) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		area += a.X*b.Z - b.X*a.Z
	}
	return area / 2
}

// RingWKT renders a ring as a WKT polygon using (x, z) as the planar
// coordinates. The ring is closed if the caller did not close it.
func RingWKT(ring []Vector3) string {
	var sb strings.Builder
	sb.WriteString("POLYGON((")
	write := func(i int, p Vector3) {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(p.X, 'g', -1, 64))
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatFloat(p.Z, 'g', -1, 64))
	}
	for i, p := range ring {
		write(i, p)
	}
	if len(ring) > 0 && !ring[0].SameXZ(ring[len(ring)-1]) {
		write(len(ring), ring[0])
	}
	sb.WriteString("))")
	return sb.String()
}

// ValidateRing checks that the ring forms a valid simple polygon and returns
// its canonical WKT.
func ValidateRing(ring []Vector3) (string, error) {
	if len(ring) < 3 {
		return "", fmt.Errorf("ring has %d points, need at least 3", len(ring))
	}
	g, err := geom.UnmarshalWKT(RingWKT(ring))
	if err != nil {
		return "", fmt.Errorf("invalid ring: %w", err)
	}
	// releases that skip validation on construction accept crossing rings
	if i, j, ok := SelfIntersection(ring); ok {
		return "", fmt.Errorf("invalid ring: edges %d and %d intersect", i, j)
	}
	return g.AsText(), nil
}

// SelfIntersection returns the first pair of non adjacent ring edges that
// touch or cross. Edge i runs from ring[i] to ring[i+1], wrapping around.
func SelfIntersection(ring []Vector3) (int, int, bool) {
	n := len(ring)
	if n > 1 && ring[0].SameXZ(ring[n-1]) {
		n--
	}
	for i := 0; i < n; i++ {
		a1, a2 := ring[i], ring[(i+1)%n]
		for j := i + 1; j < n; j++ {
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			b1, b2 := ring[j], ring[(j+1)%n]
			if segmentsIntersect(a1, a2, b1, b2) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

func orientation(a, b, c Vector3) float64 {
	return (b.X-a.X)*(c.Z-a.Z) - (b.Z-a.Z)*(c.X-a.X)
}

func onSegment(a, b, p Vector3) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Z, b.Z) <= p.Z && p.Z <= math.Max(a.Z, b.Z)
}

func segmentsIntersect(a1, a2, b1, b2 Vector3) bool {
	d1 := orientation(b1, b2, a1)
	d2 := orientation(b1, b2, a2)
	d3 := orientation(a1, a2, b1)
	d4 := orientation(a1, a2, b2)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && onSegment(b1, b2, a1)) ||
		(d2 == 0 && onSegment(b1, b2, a2)) ||
		(d3 == 0 && onSegment(a1, a2, b1)) ||
		(d4 == 0 && onSegment(a1, a2, b2))
}
