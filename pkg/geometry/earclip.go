package geometry

import (
	"errors"
	"fmt"
)

// ErrNoEar is returned by Triangulate when no vertex can be clipped, which
// happens for self intersecting rings
var ErrNoEar = errors.New("no ear left to clip")

// Triangulate splits a simple ring in the XZ plane into triangles by ear
// clipping. The ring must not repeat its first point. It returns three ring
// indices per triangle, wound like the ring itself.
func Triangulate(ring []Vector3) ([]int, error) {
	n := len(ring)
	if n < 3 {
		return nil, fmt.Errorf("ring has %d points, need at least 3", n)
	}
	sign := 1.0
	if SignedArea(ring) < 0 {
		sign = -1
	}

	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}

	indices := make([]int, 0, (n-2)*3)
	for len(remaining) > 3 {
		clipped := false
		for k := range remaining {
			m := len(remaining)
			prev, cur, next := remaining[(k+m-1)%m], remaining[k], remaining[(k+1)%m]
			if !isEar(ring, remaining, prev, cur, next, sign) {
				continue
			}
			indices = append(indices, prev, cur, next)
			remaining = append(remaining[:k], remaining[k+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return nil, fmt.Errorf("triangulate %d points: %w", n, ErrNoEar)
		}
	}
	return append(indices, remaining[0], remaining[1], remaining[2]), nil
}

// isEar reports whether the corner at cur is convex and its triangle holds
// no other remaining vertex
func isEar(ring []Vector3, remaining []int, prev, cur, next int, sign float64) bool {
	a, b, c := ring[prev], ring[cur], ring[next]
	if orientation(a, b, c)*sign <= 0 {
		return false
	}
	for _, i := range remaining {
		if i == prev || i == cur || i == next {
			continue
		}
		p := ring[i]
		if p.SameXZ(a) || p.SameXZ(b) || p.SameXZ(c) {
			continue
		}
		if inTriangle(p, a, b, c) {
			return false
		}
	}
	return true
}

// inTriangle reports whether p lies inside or on the border of abc
func inTriangle(p, a, b, c Vector3) bool {
	d1 := orientation(a, b, p)
	d2 := orientation(b, c, p)
	d3 := orientation(c, a, p)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
