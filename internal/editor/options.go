package editor

import (
	"fmt"
	"image/color"

	"github.com/philipparndt/gopoly/pkg/geometry"
)

// Policy decides what CompletePolygon does when a polygon already exists
type Policy string

const (
	// PolicyAllow adds an independent polygon on every completion, the newest becomes primary
	PolicyAllow Policy = "allow"
	// PolicyReplace removes the previous primary polygon before adding the new one
	PolicyReplace Policy = "replace"
	// PolicyReject refuses to build a second polygon until reset
	PolicyReject Policy = "reject"
)

// ParsePolicy converts a config value into a Policy. Empty selects PolicyAllow.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyAllow:
		return PolicyAllow, nil
	case PolicyReplace, PolicyReject:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("unknown polygon policy %q (allow, replace, reject)", s)
	}
}

// Options are the tunable parameters of the editor
type Options struct {
	SurfaceOffset float64          // height of filled shapes above the ground
	MarkerRadius  float64          // radius of vertex markers
	CloneOrigin   geometry.Vector3 // where a fresh clone appears

	MarkerColor  color.RGBA
	PolygonColor color.RGBA
	CloneColor   color.RGBA
	CloneOpacity float64

	Policy Policy
}

// DefaultOptions returns the stock look and behavior
func DefaultOptions() Options {
	return Options{
		SurfaceOffset: 0.1,
		MarkerRadius:  0.1,
		CloneOrigin:   geometry.NewVector3(0, 0.1, 0),
		MarkerColor:   color.RGBA{R: 0xff, A: 0xff},
		PolygonColor:  color.RGBA{G: 0xff, A: 0xff},
		CloneColor:    color.RGBA{R: 0xff, G: 0xa5, A: 0xff},
		CloneOpacity:  0.7,
		Policy:        PolicyAllow,
	}
}
