// Package viewer provides a software rendered fyne widget showing a scene
// and forwarding pointer input to an editing controller.
package viewer

import (
	"image"
	"image/color"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gopoly/pkg/geometry"
	"github.com/philipparndt/gopoly/pkg/scene"
)

const nearPlane = 0.05

// Controller receives pointer input translated to ground coordinates
type Controller interface {
	Scene() *scene.Scene
	OnSurfaceClick(point geometry.Vector3)
	OnPointerMove(point geometry.Vector3)
	OnPointerDown() bool
}

// Viewport renders a scene and forwards pointer events to a Controller
type Viewport struct {
	widget.BaseWidget

	ctrl       Controller
	camera     *Camera
	raster     *canvas.Raster
	background color.RGBA

	mu        sync.Mutex
	dragStart *fyne.Position
	consumed  bool // the last primary press dropped a clone
}

// NewViewport creates a viewport with the camera at (0, 10, 15) looking at the origin
func NewViewport(ctrl Controller) *Viewport {
	v := &Viewport{
		ctrl:       ctrl,
		camera:     NewCamera(geometry.NewVector3(0, 10, 15), 75),
		background: color.RGBA{R: 245, G: 245, B: 245, A: 255},
	}
	v.raster = canvas.NewRaster(v.draw)
	v.ExtendBaseWidget(v)
	return v
}

// Camera returns the viewport camera
func (v *Viewport) Camera() *Camera {
	return v.camera
}

// SetBackground changes the clear color
func (v *Viewport) SetBackground(c color.RGBA) {
	v.mu.Lock()
	v.background = c
	v.mu.Unlock()
	v.Refresh()
}

// CreateRenderer creates the renderer for the widget
func (v *Viewport) CreateRenderer() fyne.WidgetRenderer {
	return &viewportRenderer{viewport: v, objects: []fyne.CanvasObject{v.raster}}
}

// Pick returns the ground point under a widget position
func (v *Viewport) Pick(pos fyne.Position) (geometry.Vector3, bool) {
	size := v.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return geometry.Vector3{}, false
	}
	v.mu.Lock()
	ray := v.camera.Unproject(float64(pos.X), float64(pos.Y), float64(size.Width), float64(size.Height))
	v.mu.Unlock()
	return v.ctrl.Scene().Pick(ray)
}

// MouseDown drops a dragged clone. The result is kept so that the tap
// delivered for the same press does not also place a vertex.
func (v *Viewport) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	v.consumed = v.ctrl.OnPointerDown()
	if v.consumed {
		v.Refresh()
	}
}

// MouseUp is required by desktop.Mouseable
func (v *Viewport) MouseUp(*desktop.MouseEvent) {}

// Tapped places a vertex where the ground was clicked
func (v *Viewport) Tapped(ev *fyne.PointEvent) {
	if v.consumed {
		v.consumed = false
		return
	}
	if point, ok := v.Pick(ev.Position); ok {
		v.ctrl.OnSurfaceClick(point)
		v.Refresh()
	}
}

// MouseIn is required by desktop.Hoverable
func (v *Viewport) MouseIn(ev *desktop.MouseEvent) {
	v.MouseMoved(ev)
}

// MouseMoved moves a dragged clone with the pointer
func (v *Viewport) MouseMoved(ev *desktop.MouseEvent) {
	if point, ok := v.Pick(ev.Position); ok {
		v.ctrl.OnPointerMove(point)
	}
}

// MouseOut is required by desktop.Hoverable
func (v *Viewport) MouseOut() {}

// Dragged orbits the camera
func (v *Viewport) Dragged(ev *fyne.DragEvent) {
	v.mu.Lock()
	v.camera.Rotate(float64(ev.Dragged.DY)*0.01, float64(-ev.Dragged.DX)*0.01)
	v.mu.Unlock()
	v.Refresh()
}

// DragEnd handles the end of a drag event
func (v *Viewport) DragEnd() {}

// Scrolled zooms the camera
func (v *Viewport) Scrolled(ev *fyne.ScrollEvent) {
	v.mu.Lock()
	v.camera.Zoom(-float64(ev.Scrolled.DY) * 0.002)
	v.mu.Unlock()
	v.Refresh()
}

// Render draws the scene into a new image of the given size
func (v *Viewport) Render(width, height int) *image.RGBA {
	v.mu.Lock()
	defer v.mu.Unlock()

	frame := NewFrame(width, height)
	frame.Clear(v.background)
	w, h := float64(width), float64(height)

	var translucent []*scene.Object
	objects := v.ctrl.Scene().Children()
	for _, obj := range objects {
		if obj.Kind == scene.KindFixture && obj.Divisions == 0 {
			v.drawGround(frame, obj, w, h)
		}
	}
	for _, obj := range objects {
		if obj.Kind == scene.KindFixture && obj.Divisions > 0 {
			v.drawGrid(frame, obj, w, h)
		}
	}
	for _, obj := range objects {
		switch {
		case obj.Kind == scene.KindFixture:
		case obj.Material.Transparent():
			translucent = append(translucent, obj)
		default:
			v.drawObject(frame, obj, w, h)
		}
	}
	for _, obj := range translucent {
		v.drawObject(frame, obj, w, h)
	}
	return frame.Image()
}

func (v *Viewport) draw(width, height int) image.Image {
	return v.Render(width, height)
}

func (v *Viewport) drawObject(frame *Frame, obj *scene.Object, w, h float64) {
	switch obj.Kind {
	case scene.KindMarker:
		x, y, z := v.camera.Project(obj.Position, w, h)
		if z <= nearPlane {
			return
		}
		r := math.Max(2, obj.Radius*v.camera.PixelScale(z, h))
		frame.FillDisc(x, y, r, z-obj.Radius, obj.Material.RGBA())
	case scene.KindPolygon, scene.KindClone:
		col := obj.Material.RGBA()
		for _, tri := range obj.Triangles() {
			v.fillTriangle(frame, tri.V1, tri.V2, tri.V3, col, w, h)
		}
		edge := color.RGBA{R: col.R / 2, G: col.G / 2, B: col.B / 2, A: 255}
		outline := obj.WorldOutline()
		for i := 0; i+1 < len(outline); i++ {
			v.drawSegment(frame, outline[i], outline[i+1], edge, w, h)
		}
	}
}

// drawGround tiles the plane so that tiles behind the camera can be skipped
func (v *Viewport) drawGround(frame *Frame, obj *scene.Object, w, h float64) {
	const tiles = 20
	col := obj.Material.RGBA()
	half := obj.Size / 2
	step := obj.Size / tiles
	for i := 0; i < tiles; i++ {
		for j := 0; j < tiles; j++ {
			x0 := obj.Position.X - half + float64(i)*step
			z0 := obj.Position.Z - half + float64(j)*step
			a := geometry.NewVector3(x0, obj.Position.Y, z0)
			b := geometry.NewVector3(x0+step, obj.Position.Y, z0)
			c := geometry.NewVector3(x0+step, obj.Position.Y, z0+step)
			d := geometry.NewVector3(x0, obj.Position.Y, z0+step)
			v.fillTriangle(frame, a, b, c, col, w, h)
			v.fillTriangle(frame, a, c, d, col, w, h)
		}
	}
}

func (v *Viewport) drawGrid(frame *Frame, obj *scene.Object, w, h float64) {
	col := color.RGBA{R: 136, G: 136, B: 136, A: 255}
	n := obj.Divisions
	half := obj.Size / 2
	step := obj.Size / float64(n)
	y := obj.Position.Y
	for i := 0; i <= n; i++ {
		line := -half + float64(i)*step
		for j := 0; j < n; j++ {
			from := -half + float64(j)*step
			v.drawSegment(frame, geometry.NewVector3(line, y, from), geometry.NewVector3(line, y, from+step), col, w, h)
			v.drawSegment(frame, geometry.NewVector3(from, y, line), geometry.NewVector3(from+step, y, line), col, w, h)
		}
	}
}

func (v *Viewport) fillTriangle(frame *Frame, a, b, c geometry.Vector3, col color.RGBA, w, h float64) {
	x1, y1, z1 := v.camera.Project(a, w, h)
	x2, y2, z2 := v.camera.Project(b, w, h)
	x3, y3, z3 := v.camera.Project(c, w, h)
	if z1 <= nearPlane || z2 <= nearPlane || z3 <= nearPlane {
		return
	}
	frame.FillTriangle(x1, y1, z1, x2, y2, z2, x3, y3, z3, col)
}

func (v *Viewport) drawSegment(frame *Frame, a, b geometry.Vector3, col color.RGBA, w, h float64) {
	x1, y1, z1 := v.camera.Project(a, w, h)
	x2, y2, z2 := v.camera.Project(b, w, h)
	if z1 <= nearPlane || z2 <= nearPlane {
		return
	}
	frame.DrawLine(int(x1), int(y1), int(x2), int(y2), col)
}

// viewportRenderer implements fyne.WidgetRenderer
type viewportRenderer struct {
	viewport *Viewport
	objects  []fyne.CanvasObject
}

func (r *viewportRenderer) Layout(size fyne.Size) {
	r.viewport.raster.Resize(size)
}

func (r *viewportRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

func (r *viewportRenderer) Refresh() {
	r.viewport.raster.Refresh()
}

func (r *viewportRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *viewportRenderer) Destroy() {}
