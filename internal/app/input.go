package app

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gopoly/internal/editor"
	"github.com/philipparndt/gopoly/pkg/geometry"
)

// exportFile is written into the working directory by the export shortcut
const exportFile = "gopoly-export.stl"

// pickGround casts a ray from the screen position into the scene and
// returns the ground point it hits
func (app *App) pickGround(pos rl.Vector2) (geometry.Vector3, bool) {
	ray := rl.GetScreenToWorldRay(pos, app.Camera.camera)
	return app.editor.Scene().Pick(geometry.NewRay(
		geometry.NewVector3(float64(ray.Position.X), float64(ray.Position.Y), float64(ray.Position.Z)),
		geometry.NewVector3(float64(ray.Direction.X), float64(ray.Direction.Y), float64(ray.Direction.Z)),
	))
}

// handleInput processes user input. It returns false when the user asked
// to quit.
func (app *App) handleInput() bool {
	ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
	if ctrlPressed && rl.IsKeyPressed(rl.KeyC) {
		return false
	}

	mouse := rl.GetMousePosition()

	// the alert is modal, only its button reacts
	if app.UI.alert != "" {
		_, ok := alertLayout(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()), rl.MeasureText(app.UI.alert, fontSize))
		if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyEscape) ||
			(rl.IsMouseButtonPressed(rl.MouseLeftButton) && rl.CheckCollisionPointRec(mouse, ok)) {
			app.UI.alert = ""
		}
		return true
	}

	layout := newPanelLayout()
	overPanel := layout.contains(mouse)

	// Pointer movement drives the clone drag
	hit, ok := app.pickGround(mouse)
	app.Interaction.hasHover = ok
	if ok {
		app.Interaction.hoverPoint = rl.Vector3{X: float32(hit.X), Y: float32(hit.Y), Z: float32(hit.Z)}
		if mouse != app.Interaction.lastMousePos {
			app.editor.OnPointerMove(hit)
		}
	}
	app.Interaction.lastMousePos = mouse

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.primaryPress(layout, mouse, hit, ok)
	}

	// Camera: right drag rotates, middle drag or shift + right drag pans
	shiftPressed := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		app.Interaction.isPanning = shiftPressed
		app.Interaction.isRotating = !shiftPressed
	}
	if rl.IsMouseButtonReleased(rl.MouseRightButton) {
		app.Interaction.isPanning = false
		app.Interaction.isRotating = false
	}
	delta := rl.GetMouseDelta()
	if delta.X != 0 || delta.Y != 0 {
		switch {
		case rl.IsMouseButtonDown(rl.MouseMiddleButton), app.Interaction.isPanning:
			app.doPan(delta)
		case app.Interaction.isRotating:
			app.rotateCamera(delta)
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !overPanel {
		app.zoomCamera(wheel)
	}

	// Keyboard shortcuts
	switch {
	case rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter):
		app.completePolygon()
	case rl.IsKeyPressed(rl.KeyC) && !ctrlPressed:
		app.copyPolygon()
	case rl.IsKeyPressed(rl.KeyR):
		app.reset()
	case rl.IsKeyPressed(rl.KeyE):
		app.exportSTL()
	case rl.IsKeyPressed(rl.KeyH) || rl.IsKeyPressed(rl.KeyHome):
		app.resetCameraView()
	case rl.IsKeyPressed(rl.KeyT):
		app.setCameraTopView()
	case rl.IsKeyPressed(rl.KeySlash) || rl.IsKeyPressed(rl.KeyF1):
		app.UI.showHelp = !app.UI.showHelp
	}

	return true
}

// primaryPress routes a left button press. Every press drops a dragged
// clone, presses over the panel run the button under the pointer instead of
// placing a vertex.
func (app *App) primaryPress(layout panelLayout, mouse rl.Vector2, hit geometry.Vector3, ok bool) {
	if !layout.contains(mouse) {
		app.editor.Press(hit, ok)
		return
	}
	app.editor.OnPointerDown()
	if b, found := layout.buttonAt(mouse); found {
		b.action(app)
	}
}

func (app *App) completePolygon() {
	if err := app.editor.CompletePolygon(); err != nil {
		app.showError(err)
	}
}

func (app *App) copyPolygon() {
	if err := app.editor.CopyPolygon(); err != nil {
		app.showError(err)
	}
}

func (app *App) reset() {
	app.editor.Reset()
	app.notify("Scene cleared")
}

func (app *App) exportSTL() {
	model := app.editor.Model()
	if model.TriangleCount() == 0 {
		app.showError(editor.ErrNoPolygon)
		return
	}
	if err := writeModel(exportFile, model); err != nil {
		app.showError(err)
		return
	}
	app.notify("Exported " + exportFile)
}

// showError raises the blocking alert for user facing errors and logs the rest
func (app *App) showError(err error) {
	switch {
	case errors.Is(err, editor.ErrTooFewVertices),
		errors.Is(err, editor.ErrNoPolygon),
		errors.Is(err, editor.ErrPolygonExists):
		app.log.Debug("operation refused", "error", err)
	default:
		app.log.Error("operation failed", "error", err)
	}
	app.UI.alert = err.Error()
}

func (app *App) notify(msg string) {
	app.UI.notice = msg
	app.UI.noticeTime = rl.GetTime()
}
