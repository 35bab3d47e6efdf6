// Package editor implements the polygon drawing interactions: collecting
// vertices from ground clicks, building a filled polygon, cloning it and
// dragging the clone, and resetting everything.
package editor

import (
	"fmt"
	"log/slog"

	"github.com/philipparndt/gopoly/internal/status"
	"github.com/philipparndt/gopoly/pkg/geometry"
	"github.com/philipparndt/gopoly/pkg/scene"
)

// Listener receives a snapshot after every state change
type Listener func(status.Snapshot)

// Editor owns the interaction state and mutates the scene. It is driven from
// a single UI goroutine and is not safe for concurrent use.
type Editor struct {
	scene     *scene.Scene
	opts      Options
	state     State
	listeners []Listener
	log       *slog.Logger
}

// New creates an editor working on the given scene
func New(s *scene.Scene, opts Options, logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Editor{
		scene: s,
		opts:  opts,
		log:   logger.With("component", "editor"),
	}
}

// Scene returns the scene the editor mutates
func (e *Editor) Scene() *scene.Scene {
	return e.scene
}

// State returns a copy of the current state
func (e *Editor) State() State {
	st := e.state
	st.Vertices = append([]geometry.Vector3(nil), e.state.Vertices...)
	st.Markers = append([]*scene.Object(nil), e.state.Markers...)
	return st
}

// Options returns the active options
func (e *Editor) Options() Options {
	return e.opts
}

// ApplyOptions replaces the options used by subsequent operations. Existing
// objects keep their look.
func (e *Editor) ApplyOptions(opts Options) {
	e.opts = opts
	e.log.Debug("options applied", "policy", opts.Policy)
}

// AddListener registers fn to be called after every state change
func (e *Editor) AddListener(fn Listener) {
	e.listeners = append(e.listeners, fn)
}

// OnSurfaceClick records a ground point. Clicks while dragging and clicks on
// an already recorded (x, z) position are ignored.
func (e *Editor) OnSurfaceClick(point geometry.Vector3) {
	if e.state.Dragging {
		return
	}
	if e.state.hasVertex(point) {
		e.log.Debug("duplicate vertex ignored", "x", point.X, "z", point.Z)
		return
	}

	e.state.Vertices = append(e.state.Vertices, point)
	marker := scene.NewMarker(point, e.opts.MarkerRadius, e.opts.MarkerColor)
	e.state.Markers = append(e.state.Markers, marker)
	e.scene.Add(marker)

	e.log.Debug("vertex added", "x", point.X, "z", point.Z, "count", len(e.state.Vertices))
	e.notify()
}

// CompletePolygon builds a filled polygon from the collected vertices
func (e *Editor) CompletePolygon() error {
	if e.state.Polygon != nil && e.opts.Policy == PolicyReject {
		return ErrPolygonExists
	}
	if len(e.state.Vertices) < 3 {
		return ErrTooFewVertices
	}

	centroid := geometry.Centroid(e.state.Vertices, 0)
	ring := geometry.SortByAngle(e.state.Vertices, centroid)
	mesh, err := scene.NewShapeMesh(geometry.Outline(ring, centroid))
	if err != nil {
		return fmt.Errorf("build polygon mesh: %w", err)
	}
	if mesh.Fallback {
		e.log.Warn("triangulation failed, using fan fill", "vertices", len(ring))
	}

	poly := &Polygon{
		Ring:     ring,
		Centroid: centroid,
		Simple:   true,
	}
	if wkt, err := geometry.ValidateRing(ring); err != nil {
		poly.Simple = false
		poly.WKT = geometry.RingWKT(ring)
		e.log.Warn("polygon outline is not simple", "error", err)
	} else {
		poly.WKT = wkt
	}

	material := scene.Material{Color: e.opts.PolygonColor, Opacity: 1, DoubleSided: true}
	poly.Object = scene.NewShape(scene.KindPolygon, mesh, centroid.WithY(e.opts.SurfaceOffset), material)

	if e.state.Polygon != nil && e.opts.Policy == PolicyReplace {
		e.scene.Remove(e.state.Polygon.Object)
	}
	e.scene.Add(poly.Object)
	e.state.Polygon = poly

	e.log.Info("polygon completed", "vertices", len(ring), "triangles", mesh.TriangleCount(), "area", mesh.Area())
	e.notify()
	return nil
}

// CopyPolygon duplicates the primary polygon and starts dragging the copy.
// A previous clone stays where it is.
func (e *Editor) CopyPolygon() error {
	if e.state.Polygon == nil {
		return ErrNoPolygon
	}

	clone, err := e.state.Polygon.Object.Clone()
	if err != nil {
		return fmt.Errorf("copy polygon: %w", err)
	}
	clone.Kind = scene.KindClone
	clone.Name = scene.KindClone.String()
	clone.Position = e.opts.CloneOrigin.WithY(e.opts.SurfaceOffset)
	clone.Material = scene.Material{Color: e.opts.CloneColor, Opacity: e.opts.CloneOpacity, DoubleSided: true}

	e.scene.Add(clone)
	e.state.Clone = clone
	e.state.Dragging = true

	e.log.Info("polygon copied", "clone", clone.ID)
	e.notify()
	return nil
}

// OnPointerMove moves the dragged clone to the ground position under the pointer
func (e *Editor) OnPointerMove(point geometry.Vector3) {
	if !e.state.Dragging || e.state.Clone == nil {
		return
	}
	e.state.Clone.Position = geometry.NewVector3(point.X, e.opts.SurfaceOffset, point.Z)
	e.notify()
}

// OnPointerDown drops the dragged clone. It reports whether the press was
// consumed, in which case it must not also place a vertex.
func (e *Editor) OnPointerDown() bool {
	if !e.state.Dragging {
		return false
	}
	e.state.Dragging = false
	if e.state.Clone != nil {
		p := e.state.Clone.Position
		e.log.Info("clone dropped", "x", p.X, "z", p.Z)
	}
	e.notify()
	return true
}

// Press handles a primary button press. While dragging it only drops the
// clone, otherwise a hit on the ground records a vertex.
func (e *Editor) Press(point geometry.Vector3, hit bool) {
	if e.OnPointerDown() {
		return
	}
	if hit {
		e.OnSurfaceClick(point)
	}
}

// Reset removes all placed geometry and clears the state
func (e *Editor) Reset() {
	removed := e.scene.Clear()
	e.state = State{}
	e.log.Info("reset", "removed", removed)
	e.notify()
}

// Status returns a snapshot of the observable state
func (e *Editor) Status() status.Snapshot {
	snap := status.Snapshot{
		Objects:     e.scene.Len(),
		Vertices:    len(e.state.Vertices),
		CloneExists: e.state.Clone != nil,
		Dragging:    e.state.Dragging,
	}
	for _, obj := range e.scene.Children() {
		if obj.Kind != scene.KindPolygon && obj.Kind != scene.KindClone {
			continue
		}
		outline := obj.WorldOutline()
		ring := make([][2]float64, len(outline))
		for i, p := range outline {
			ring[i] = p.XZ()
		}
		snap.Shapes = append(snap.Shapes, status.Shape{
			ID:   obj.ID.String(),
			Kind: obj.Kind.String(),
			Ring: ring,
		})
	}
	return snap
}

func (e *Editor) notify() {
	if len(e.listeners) == 0 {
		return
	}
	snap := e.Status()
	for _, fn := range e.listeners {
		fn(snap)
	}
}
