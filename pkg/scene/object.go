package scene

import (
	"fmt"
	"image/color"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/philipparndt/gopoly/pkg/geometry"
)

// Kind classifies scene objects
type Kind int

const (
	KindFixture Kind = iota
	KindMarker
	KindPolygon
	KindClone
)

func (k Kind) String() string {
	switch k {
	case KindFixture:
		return "fixture"
	case KindMarker:
		return "marker"
	case KindPolygon:
		return "polygon"
	case KindClone:
		return "clone"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Material describes how an object is drawn
type Material struct {
	Color       color.RGBA
	Opacity     float64
	DoubleSided bool
}

// RGBA returns the color with opacity folded into the alpha channel
func (m Material) RGBA() color.RGBA {
	c := m.Color
	opacity := m.Opacity
	if opacity <= 0 || opacity > 1 {
		opacity = 1
	}
	c.A = uint8(float64(c.A) * opacity)
	return c
}

// Transparent reports whether the material needs alpha blending
func (m Material) Transparent() bool {
	return m.RGBA().A < 255
}

// Object is a renderable entity in the scene
type Object struct {
	ID       uuid.UUID
	Name     string
	Kind     Kind
	Position geometry.Vector3
	Material Material

	Mesh *Mesh // polygons and clones

	Radius float64 // markers

	Size      float64 // fixtures: edge length of the square
	Divisions int     // fixtures: grid divisions, zero for solid planes
}

// NewMarker creates a sphere marker at the given world position
func NewMarker(position geometry.Vector3, radius float64, c color.RGBA) *Object {
	return &Object{
		ID:       uuid.New(),
		Name:     "marker",
		Kind:     KindMarker,
		Position: position,
		Radius:   radius,
		Material: Material{Color: c, Opacity: 1},
	}
}

// NewShape creates a filled flat shape object from a mesh
func NewShape(kind Kind, mesh *Mesh, position geometry.Vector3, material Material) *Object {
	return &Object{
		ID:       uuid.New(),
		Name:     kind.String(),
		Kind:     kind,
		Position: position,
		Material: material,
		Mesh:     mesh,
	}
}

// NewFixture creates a square plane or grid centered on the origin
func NewFixture(name string, size float64, divisions int, c color.RGBA) *Object {
	return &Object{
		ID:        uuid.New(),
		Name:      name,
		Kind:      KindFixture,
		Size:      size,
		Divisions: divisions,
		Material:  Material{Color: c, Opacity: 1, DoubleSided: true},
	}
}

// Clone returns a deep copy of the object with a fresh identity. Mesh data is
// not shared with the source.
func (o *Object) Clone() (*Object, error) {
	clone := &Object{}
	if err := copier.CopyWithOption(clone, o, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("clone %s: %w", o.Name, err)
	}
	clone.ID = uuid.New()
	return clone, nil
}

// Triangles returns the world space triangles of a shape object
func (o *Object) Triangles() []geometry.Triangle {
	if o.Mesh == nil {
		return nil
	}
	return o.Mesh.Triangles(o.Position)
}

// WorldOutline returns the shape outline in world coordinates
func (o *Object) WorldOutline() []geometry.Vector3 {
	if o.Mesh == nil {
		return nil
	}
	out := make([]geometry.Vector3, len(o.Mesh.Outline))
	for i, p := range o.Mesh.Outline {
		out[i] = p.Add(o.Position)
	}
	return out
}
