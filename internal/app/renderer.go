package app

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gopoly/pkg/geometry"
	"github.com/philipparndt/gopoly/pkg/scene"
)

// light direction used for the baked diffuse term
var lightDir = geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()

func toRL(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func toColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// shade applies ambient plus diffuse lighting to a color, keeping alpha
func shade(c color.RGBA, normal geometry.Vector3) rl.Color {
	intensity := math.Max(0.5, math.Abs(normal.Dot(lightDir)))
	return rl.NewColor(
		uint8(float64(c.R)*intensity),
		uint8(float64(c.G)*intensity),
		uint8(float64(c.B)*intensity),
		c.A,
	)
}

// drawScene renders every scene object. Opaque objects go first so that
// translucent clones blend over them.
func (app *App) drawScene() {
	var translucent []*scene.Object
	for _, obj := range app.editor.Scene().Children() {
		if obj.Material.Transparent() {
			translucent = append(translucent, obj)
			continue
		}
		app.drawObject(obj)
	}
	for _, obj := range translucent {
		app.drawObject(obj)
	}

	if app.Interaction.hasHover && app.UI.alert == "" {
		rl.DrawCircle3D(app.Interaction.hoverPoint, 0.15, rl.Vector3{X: 1}, 90, rl.NewColor(40, 40, 40, 160))
	}
}

func (app *App) drawObject(obj *scene.Object) {
	switch obj.Kind {
	case scene.KindFixture:
		drawFixture(obj)
	case scene.KindMarker:
		rl.DrawSphere(toRL(obj.Position), float32(obj.Radius), toColor(obj.Material.RGBA()))
	case scene.KindPolygon, scene.KindClone:
		drawShape(obj)
	}
}

func drawFixture(obj *scene.Object) {
	size := float32(obj.Size)
	if obj.Divisions > 0 {
		// lift the grid a little to avoid z-fighting with the plane
		rl.PushMatrix()
		rl.Translatef(0, 0.005, 0)
		rl.DrawGrid(int32(obj.Divisions), size/float32(obj.Divisions))
		rl.PopMatrix()
		return
	}
	rl.DrawPlane(toRL(obj.Position), rl.Vector2{X: size, Y: size}, toColor(obj.Material.RGBA()))
}

func drawShape(obj *scene.Object) {
	col := obj.Material.RGBA()
	for _, tri := range obj.Triangles() {
		c := shade(col, tri.CalculateNormal())
		v1, v2, v3 := toRL(tri.V1), toRL(tri.V2), toRL(tri.V3)
		rl.DrawTriangle3D(v1, v2, v3, c)
		if obj.Material.DoubleSided {
			rl.DrawTriangle3D(v1, v3, v2, c)
		}
	}

	edge := rl.NewColor(col.R/2, col.G/2, col.B/2, col.A)
	outline := obj.WorldOutline()
	for i := 0; i+1 < len(outline); i++ {
		rl.DrawLine3D(toRL(outline[i]), toRL(outline[i+1]), edge)
	}
}
