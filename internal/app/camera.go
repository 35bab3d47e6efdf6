package app

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	homeHeight   = 10
	homeDistance = 15
	fieldOfView  = 75
	minDistance  = 2
	maxDistance  = 80
)

// initCamera places the camera above and in front of the ground, looking at
// the origin
func (app *App) initCamera() {
	dist := math32.Sqrt(homeHeight*homeHeight + homeDistance*homeDistance)
	app.Camera.defaultDist = dist
	app.Camera.defaultAngleX = math32.Atan2(homeHeight, homeDistance)
	app.Camera.defaultAngleY = 0

	app.Camera.camera = rl.Camera3D{
		Position:   rl.Vector3{X: 0, Y: homeHeight, Z: homeDistance},
		Target:     rl.Vector3{},
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       fieldOfView,
		Projection: rl.CameraPerspective,
	}
	app.resetCameraView()
	app.updateCamera()
}

// resetCameraView resets the camera to the default view
func (app *App) resetCameraView() {
	app.Camera.distance = app.Camera.defaultDist
	app.Camera.angleX = app.Camera.defaultAngleX
	app.Camera.angleY = app.Camera.defaultAngleY
	app.Camera.target = rl.Vector3{}
}

// setCameraTopView looks straight down on the ground
func (app *App) setCameraTopView() {
	app.Camera.angleX = math32.Pi/2 - 0.001
	app.Camera.angleY = 0
}

// rotateCamera orbits around the target by a mouse delta in pixels
func (app *App) rotateCamera(delta rl.Vector2) {
	app.Camera.angleY -= delta.X * 0.005
	app.Camera.angleX += delta.Y * 0.005
	// stay above the ground and short of the pole
	app.Camera.angleX = math32.Max(0.05, math32.Min(math32.Pi/2-0.001, app.Camera.angleX))
}

// zoomCamera scales the orbit distance by a wheel step
func (app *App) zoomCamera(wheel float32) {
	app.Camera.distance *= 1.0 - wheel*0.08
	app.Camera.distance = math32.Max(minDistance, math32.Min(maxDistance, app.Camera.distance))
}

// updateCamera updates camera position based on angles
func (app *App) updateCamera() {
	c := &app.Camera
	x := c.distance * math32.Cos(c.angleX) * math32.Sin(c.angleY)
	y := c.distance * math32.Sin(c.angleX)
	z := c.distance * math32.Cos(c.angleX) * math32.Cos(c.angleY)

	c.camera.Position = rl.Vector3{
		X: c.target.X + x,
		Y: c.target.Y + y,
		Z: c.target.Z + z,
	}
	c.camera.Target = c.target
}

// doPan performs camera panning based on mouse delta
func (app *App) doPan(delta rl.Vector2) {
	c := &app.Camera
	forward := rl.Vector3Normalize(rl.Vector3Subtract(c.target, c.camera.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, c.camera.Up))
	up := rl.Vector3Normalize(rl.Vector3CrossProduct(right, forward))

	panSpeed := c.distance * 0.0015

	c.target = rl.Vector3Add(c.target, rl.Vector3Scale(right, -delta.X*panSpeed))
	c.target = rl.Vector3Add(c.target, rl.Vector3Scale(up, delta.Y*panSpeed))
}
