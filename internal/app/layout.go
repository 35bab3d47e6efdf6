package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	panelX     = 10
	panelY     = 10
	panelWidth = 190
	panelLines = 3 // objects, clone exists, dragging
	buttonH    = 30
	buttonGap  = 8
	lineHeight = 20
	fontSize   = 16
	alertW     = 360
	alertH     = 140
)

// panelButton is a clickable control in the panel
type panelButton struct {
	label  string
	bounds rl.Rectangle
	action func(*App)
}

// panelLayout positions the control panel, its buttons and the status lines
type panelLayout struct {
	panel   rl.Rectangle
	buttons []panelButton
	linesY  float32
}

func newPanelLayout() panelLayout {
	x := float32(panelX + 10)
	y := float32(panelY + 10)
	w := float32(panelWidth - 20)

	var l panelLayout
	for _, b := range []struct {
		label  string
		action func(*App)
	}{
		{"Complete", (*App).completePolygon},
		{"Copy", (*App).copyPolygon},
		{"Reset", (*App).reset},
	} {
		l.buttons = append(l.buttons, panelButton{
			label:  b.label,
			bounds: rl.Rectangle{X: x, Y: y, Width: w, Height: buttonH},
			action: b.action,
		})
		y += buttonH + buttonGap
	}
	y += buttonGap
	l.linesY = y
	l.panel = rl.Rectangle{
		X:      panelX,
		Y:      panelY,
		Width:  panelWidth,
		Height: y - panelY + panelLines*lineHeight + 10,
	}
	return l
}

// contains reports whether p lies inside the panel
func (l panelLayout) contains(p rl.Vector2) bool {
	return rl.CheckCollisionPointRec(p, l.panel)
}

// buttonAt returns the button under p
func (l panelLayout) buttonAt(p rl.Vector2) (panelButton, bool) {
	for _, b := range l.buttons {
		if rl.CheckCollisionPointRec(p, b.bounds) {
			return b, true
		}
	}
	return panelButton{}, false
}

// alertLayout centers the alert box for a message and places its OK button
func alertLayout(screenWidth, screenHeight float32, textWidth int32) (box, ok rl.Rectangle) {
	w := float32(alertW)
	if tw := float32(textWidth) + 40; tw > w {
		w = tw
	}
	box = rl.Rectangle{
		X:      screenWidth/2 - w/2,
		Y:      screenHeight/2 - alertH/2,
		Width:  w,
		Height: alertH,
	}
	ok = rl.Rectangle{
		X:      box.X + box.Width/2 - 50,
		Y:      box.Y + box.Height - buttonH - 14,
		Width:  100,
		Height: buttonH,
	}
	return box, ok
}
