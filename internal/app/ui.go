package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gopoly/version"
)

const noticeDelay = 3.0

var helpLines = []string{
	"Left click   place vertex / drop clone",
	"Enter        complete polygon",
	"C            copy polygon",
	"R            reset",
	"E            export " + exportFile,
	"Right drag   rotate",
	"Middle drag  pan",
	"Wheel        zoom",
	"H            home view",
	"T            top view",
	"Ctrl+C       quit",
}

var (
	panelColor       = rl.NewColor(255, 255, 255, 230)
	buttonColor      = rl.NewColor(225, 225, 225, 255)
	buttonHoverColor = rl.NewColor(200, 215, 240, 255)
)

// drawUI draws the control buttons, the debug panel and the modal alert
func (app *App) drawUI() {
	snap := app.editor.Status()
	layout := newPanelLayout()
	mouse := rl.GetMousePosition()

	p := layout.panel
	rl.DrawRectangleRec(p, panelColor)
	rl.DrawRectangleLines(int32(p.X), int32(p.Y), int32(p.Width), int32(p.Height), rl.Gray)

	for _, b := range layout.buttons {
		hover := app.UI.alert == "" && rl.CheckCollisionPointRec(mouse, b.bounds)
		drawButton(b.bounds, b.label, hover)
	}

	y := layout.linesY
	for _, line := range snap.Lines() {
		rl.DrawText(line, int32(p.X)+10, int32(y), fontSize, rl.DarkGray)
		y += lineHeight
	}

	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())

	// Status line
	footer := fmt.Sprintf("gopoly %s   vertices: %d   press F1 for help", version.Version, snap.Vertices)
	if app.UI.notice != "" && rl.GetTime()-app.UI.noticeTime < noticeDelay {
		footer = app.UI.notice
	}
	rl.DrawText(footer, 10, int32(screenHeight)-24, fontSize, rl.DarkGray)

	if app.UI.showHelp {
		app.drawHelp(screenWidth)
	}

	if app.UI.alert != "" {
		app.drawAlert(screenWidth, screenHeight, mouse)
	}
}

func drawButton(bounds rl.Rectangle, label string, hover bool) {
	bg := buttonColor
	if hover {
		bg = buttonHoverColor
	}
	rl.DrawRectangleRec(bounds, bg)
	rl.DrawRectangleLines(int32(bounds.X), int32(bounds.Y), int32(bounds.Width), int32(bounds.Height), rl.Gray)
	tw := rl.MeasureText(label, fontSize)
	rl.DrawText(label,
		int32(bounds.X+bounds.Width/2)-tw/2,
		int32(bounds.Y+bounds.Height/2)-fontSize/2,
		fontSize, rl.Black)
}

func (app *App) drawAlert(screenWidth, screenHeight float32, mouse rl.Vector2) {
	rl.DrawRectangle(0, 0, int32(screenWidth), int32(screenHeight), rl.NewColor(0, 0, 0, 100))

	tw := rl.MeasureText(app.UI.alert, fontSize)
	box, ok := alertLayout(screenWidth, screenHeight, tw)
	rl.DrawRectangleRec(box, rl.RayWhite)
	rl.DrawRectangleLines(int32(box.X), int32(box.Y), int32(box.Width), int32(box.Height), rl.Maroon)
	rl.DrawText("Error", int32(box.X)+14, int32(box.Y)+12, fontSize+2, rl.Maroon)
	rl.DrawText(app.UI.alert, int32(box.X+box.Width/2)-tw/2, int32(box.Y)+52, fontSize, rl.Black)
	drawButton(ok, "OK", rl.CheckCollisionPointRec(mouse, ok))
}

func (app *App) drawHelp(screenWidth float32) {
	w := int32(340)
	h := int32(len(helpLines)*lineHeight + 20)
	x := int32(screenWidth) - w - 10
	y := int32(10)
	rl.DrawRectangle(x, y, w, h, rl.NewColor(0, 0, 0, 180))
	for i, line := range helpLines {
		rl.DrawText(line, x+10, y+10+int32(i*lineHeight), fontSize, rl.RayWhite)
	}
}
