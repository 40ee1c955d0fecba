package scene

import (
	"github.com/philipparndt/tokenviz/pkg/hover"
	"github.com/philipparndt/tokenviz/pkg/loop"
)

// Action is a discrete control bound to a key by the frontends
type Action int

const (
	ActionNone Action = iota
	ActionTogglePause
	ActionResetCamera
	ActionToggleLabels
	ActionCycleDensity
	ActionGrowParticles
	ActionShrinkParticles
	ActionGrowLabels
	ActionShrinkLabels
	ActionFasterRotation
	ActionSlowerRotation
	ActionMoreOpacity
	ActionLessOpacity
	ActionPinHovered
)

const (
	rotationStep = 5
	opacityStep  = 0.1
)

var actionNames = map[Action]string{
	ActionTogglePause:     "pause/resume rotation",
	ActionResetCamera:     "reset camera",
	ActionToggleLabels:    "toggle labels",
	ActionCycleDensity:    "cycle label density",
	ActionGrowParticles:   "larger particles",
	ActionShrinkParticles: "smaller particles",
	ActionGrowLabels:      "larger labels",
	ActionShrinkLabels:    "smaller labels",
	ActionFasterRotation:  "faster rotation",
	ActionSlowerRotation:  "slower rotation",
	ActionMoreOpacity:     "more label opacity",
	ActionLessOpacity:     "less label opacity",
	ActionPinHovered:      "highlight hovered particle",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "none"
}

// Apply runs a control action. Settings changes take effect on the next
// tick; actions needing a loaded session do nothing without one.
func (s *Session) Apply(a Action) error {
	d := s.settings
	switch a {
	case ActionTogglePause:
		if s.State() == loop.Stopped {
			return nil
		}
		return s.TogglePause()
	case ActionResetCamera:
		s.ResetCamera()
	case ActionToggleLabels:
		d.SetLabelsVisible(!d.LabelsVisible())
	case ActionCycleDensity:
		d.SetLabelDensity(d.LabelDensity().Next())
	case ActionGrowParticles:
		d.SetParticleSize(d.ParticleSizePx() + 1)
	case ActionShrinkParticles:
		d.SetParticleSize(d.ParticleSizePx() - 1)
	case ActionGrowLabels:
		d.SetLabelSize(d.LabelSizePx() + 1)
	case ActionShrinkLabels:
		d.SetLabelSize(d.LabelSizePx() - 1)
	case ActionFasterRotation:
		d.SetRotationSpeed(d.RotationSpeed() + rotationStep)
	case ActionSlowerRotation:
		d.SetRotationSpeed(d.RotationSpeed() - rotationStep)
	case ActionMoreOpacity:
		d.SetLabelOpacity(d.LabelOpacity() + opacityStep)
	case ActionLessOpacity:
		d.SetLabelOpacity(d.LabelOpacity() - opacityStep)
	case ActionPinHovered:
		if i := s.Hovered(); i != hover.None {
			return s.Highlight(i)
		}
	}
	return nil
}
