package app

import (
	"fmt"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/tokenviz/pkg/hover"
	"github.com/philipparndt/tokenviz/version"
)

const (
	hudFontSize   = 16
	hudLineHeight = 20
	hudMargin     = 10
	flashDuration = 3 * time.Second
)

var hudBackground = rl.NewColor(0, 0, 0, 160)

// flash shows a transient status message
func (app *App) flash(msg string) {
	app.UI.message = msg
	app.UI.msgUntil = time.Now().Add(flashDuration)
}

// drawUI draws the heads up display over the scene
func (app *App) drawUI() {
	lines := app.statusLines()
	if app.UI.showHelp {
		lines = append(lines, "")
		lines = append(lines, helpLines()...)
	}
	app.drawPanel(hudMargin, hudMargin, lines)

	if app.UI.message != "" && time.Now().Before(app.UI.msgUntil) {
		w := rl.MeasureTextEx(app.UI.font, app.UI.message, hudFontSize, 1).X
		x := (float32(rl.GetScreenWidth()) - w) / 2
		app.drawPanel(x, float32(rl.GetScreenHeight())-hudLineHeight-3*hudMargin, []string{app.UI.message})
	}

	app.FileWatch.mu.Lock()
	loading := app.FileWatch.isLoading
	app.FileWatch.mu.Unlock()
	if loading {
		app.drawText("Loading...", float32(rl.GetScreenWidth())/2-30, hudMargin, rl.Yellow)
	}

	v := "tokenviz " + version.GetVersion()
	w := rl.MeasureTextEx(app.UI.font, v, hudFontSize, 1).X
	app.drawText(v, float32(rl.GetScreenWidth())-w-hudMargin, float32(rl.GetScreenHeight())-hudLineHeight, rl.Gray)
}

func (app *App) statusLines() []string {
	s := app.session.Settings()
	lines := []string{
		fmt.Sprintf("Tokens: %d  State: %s", app.session.Len(), app.session.State()),
	}
	if st := app.UI.stats; st != nil {
		lines = append(lines, fmt.Sprintf("Unique IDs: %d  Hue collisions: %d", st.UniqueIDs, st.HueCollisions))
	}

	labelsState := "off"
	if s.LabelsVisible() {
		labelsState = "on"
	}
	lines = append(lines,
		fmt.Sprintf("Labels: %s  Density: %s", labelsState, s.LabelDensity()),
		fmt.Sprintf("Rotation: %d  Particles: %dpx  Labels: %dpx  Opacity: %.0f%%",
			s.RotationSpeed(), s.ParticleSizePx(), s.LabelSizePx(), s.LabelOpacity()*100),
	)

	if i := app.session.Hovered(); i != hover.None {
		if a := app.session.Annotation(); a.Visible {
			lines = append(lines, fmt.Sprintf("Hovered: #%d", a.ID))
		}
	}
	if i := app.session.Pinned(); i != hover.None {
		if i < len(app.UI.records) {
			lines = append(lines, fmt.Sprintf("Pinned: #%d", app.UI.records[i].ID))
		}
	}
	return lines
}

func helpLines() []string {
	var keys []string
	for _, b := range keyBindings {
		if b.label == "" {
			continue
		}
		keys = append(keys, fmt.Sprintf("%-6s %s", b.label, b.action))
	}
	return append([]string{
		"Drag   rotate",
		"Wheel  zoom",
		"H      toggle help",
	}, keys...)
}

func (app *App) drawPanel(x, y float32, lines []string) {
	var width float32
	for _, line := range lines {
		width = max(width, rl.MeasureTextEx(app.UI.font, line, hudFontSize, 1).X)
	}
	height := float32(len(lines) * hudLineHeight)
	rl.DrawRectangleRounded(rl.Rectangle{
		X:      x - hudMargin/2,
		Y:      y - hudMargin/2,
		Width:  width + hudMargin,
		Height: height + hudMargin,
	}, 0.1, 4, hudBackground)

	for i, line := range lines {
		app.drawText(strings.TrimRight(line, " "), x, y+float32(i*hudLineHeight), rl.RayWhite)
	}
}

func (app *App) drawText(text string, x, y float32, c rl.Color) {
	rl.DrawTextEx(app.UI.font, text, rl.Vector2{X: x, Y: y}, hudFontSize, 1, c)
}
