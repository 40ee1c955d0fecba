package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/tokenviz/pkg/scene"
)

// wheelDelta converts one wheel notch into the pixel delta browsers report
const wheelDelta = 100.0

var keyBindings = []struct {
	key    int32
	label  string
	action scene.Action
}{
	{rl.KeySpace, "Space", scene.ActionTogglePause},
	{rl.KeyHome, "Home", scene.ActionResetCamera},
	{rl.KeyL, "L", scene.ActionToggleLabels},
	{rl.KeyD, "D", scene.ActionCycleDensity},
	{rl.KeyEqual, "+", scene.ActionGrowParticles},
	{rl.KeyKpAdd, "", scene.ActionGrowParticles},
	{rl.KeyMinus, "-", scene.ActionShrinkParticles},
	{rl.KeyKpSubtract, "", scene.ActionShrinkParticles},
	{rl.KeyRightBracket, "]", scene.ActionGrowLabels},
	{rl.KeyLeftBracket, "[", scene.ActionShrinkLabels},
	{rl.KeyPeriod, ".", scene.ActionFasterRotation},
	{rl.KeyComma, ",", scene.ActionSlowerRotation},
	{rl.KeyO, "O", scene.ActionMoreOpacity},
	{rl.KeyI, "I", scene.ActionLessOpacity},
	{rl.KeyP, "P", scene.ActionPinHovered},
}

// handleInput maps keyboard and mouse input onto the session
func (app *App) handleInput() {
	for _, b := range keyBindings {
		if rl.IsKeyPressed(b.key) {
			if err := app.session.Apply(b.action); err != nil {
				app.logger.Debug().Err(err).Str("action", b.action.String()).Msg("action failed")
			}
		}
	}
	if rl.IsKeyPressed(rl.KeyH) || rl.IsKeyPressed(rl.KeyF1) {
		app.UI.showHelp = !app.UI.showHelp
	}

	mouse := rl.GetMousePosition()
	x, y := float64(mouse.X), float64(mouse.Y)

	if rl.IsCursorOnScreen() {
		app.session.PointerMoved(x, y)
		app.Interaction.pointerInside = true
	} else if app.Interaction.pointerInside {
		app.session.PointerLeft()
		app.Interaction.pointerInside = false
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.session.BeginDrag(x, y)
		app.Interaction.dragging = true
	} else if app.Interaction.dragging && rl.IsMouseButtonDown(rl.MouseLeftButton) {
		app.session.Drag(x, y)
	}
	if app.Interaction.dragging && rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		app.session.EndDrag()
		app.Interaction.dragging = false
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		app.session.Zoom(-float64(wheel) * wheelDelta)
	}
}
