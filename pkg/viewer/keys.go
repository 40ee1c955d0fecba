package viewer

import (
	"fyne.io/fyne/v2"

	"github.com/philipparndt/tokenviz/pkg/scene"
)

var keyActions = map[fyne.KeyName]scene.Action{
	fyne.KeySpace:        scene.ActionTogglePause,
	fyne.KeyHome:         scene.ActionResetCamera,
	fyne.KeyL:            scene.ActionToggleLabels,
	fyne.KeyD:            scene.ActionCycleDensity,
	fyne.KeyEqual:        scene.ActionGrowParticles,
	fyne.KeyMinus:        scene.ActionShrinkParticles,
	fyne.KeyRightBracket: scene.ActionGrowLabels,
	fyne.KeyLeftBracket:  scene.ActionShrinkLabels,
	fyne.KeyPeriod:       scene.ActionFasterRotation,
	fyne.KeyComma:        scene.ActionSlowerRotation,
	fyne.KeyO:            scene.ActionMoreOpacity,
	fyne.KeyI:            scene.ActionLessOpacity,
	fyne.KeyP:            scene.ActionPinHovered,
}
