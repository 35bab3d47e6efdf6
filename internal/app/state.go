package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gopoly/internal/config"
)

// CameraState holds all camera-related state
type CameraState struct {
	camera        rl.Camera3D
	distance      float32
	angleX        float32    // elevation
	angleY        float32    // azimuth
	target        rl.Vector3 // can be panned
	defaultDist   float32
	defaultAngleX float32
	defaultAngleY float32
}

// InteractionState holds mouse and interaction state
type InteractionState struct {
	lastMousePos rl.Vector2
	hoverPoint   rl.Vector3 // ground point under the cursor
	hasHover     bool
	isRotating   bool
	isPanning    bool
}

// UIState holds UI-related state
type UIState struct {
	alert      string // message of the blocking alert, empty when none
	notice     string // transient status line
	noticeTime float64
	background rl.Color
	showHelp   bool
}

// ConfigState holds the active configuration and pending reloads
type ConfigState struct {
	current config.Config
	path    string
	reloads chan config.Config
}
