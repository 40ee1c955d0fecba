package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/tokenviz/pkg/loop"
	"github.com/philipparndt/tokenviz/pkg/settings"
)

func TestApplySettingsActions(t *testing.T) {
	s, _, _ := newSession(t)
	d := s.Settings()

	require.NoError(t, s.Apply(ActionToggleLabels))
	assert.False(t, d.LabelsVisible())

	require.NoError(t, s.Apply(ActionCycleDensity))
	assert.Equal(t, settings.DensityAll, d.LabelDensity())
	require.NoError(t, s.Apply(ActionCycleDensity))
	assert.Equal(t, settings.DensityNone, d.LabelDensity())

	require.NoError(t, s.Apply(ActionGrowParticles))
	assert.Equal(t, 6, d.ParticleSizePx())
	for i := 0; i < 10; i++ {
		require.NoError(t, s.Apply(ActionShrinkParticles))
	}
	assert.Equal(t, 1, d.ParticleSizePx())

	require.NoError(t, s.Apply(ActionGrowLabels))
	assert.Equal(t, 13, d.LabelSizePx())
	require.NoError(t, s.Apply(ActionShrinkLabels))
	assert.Equal(t, 12, d.LabelSizePx())

	require.NoError(t, s.Apply(ActionFasterRotation))
	assert.Equal(t, 15, d.RotationSpeed())
	require.NoError(t, s.Apply(ActionSlowerRotation))
	assert.Equal(t, 10, d.RotationSpeed())

	require.NoError(t, s.Apply(ActionMoreOpacity))
	require.NoError(t, s.Apply(ActionMoreOpacity))
	require.NoError(t, s.Apply(ActionMoreOpacity))
	assert.Equal(t, 1.0, d.LabelOpacity())
	require.NoError(t, s.Apply(ActionLessOpacity))
	assert.InDelta(t, 0.9, d.LabelOpacity(), 1e-9)
}

func TestApplySessionActions(t *testing.T) {
	s, sched, _ := newSession(t)

	assert.NoError(t, s.Apply(ActionTogglePause))
	assert.NoError(t, s.Apply(ActionPinHovered))
	assert.NoError(t, s.Apply(ActionResetCamera))

	require.NoError(t, s.Load(fiveRecords()))
	require.NoError(t, s.Start())
	require.NoError(t, s.Apply(ActionTogglePause))
	assert.Equal(t, loop.Paused, s.State())

	s.PointerMoved(400, 300)
	sched.Step()
	require.NoError(t, s.Apply(ActionPinHovered))
	assert.Equal(t, 2, s.Pinned())

	s.Zoom(100)
	require.NoError(t, s.Apply(ActionResetCamera))
	state, _ := s.Camera()
	assert.Equal(t, 100.0, state.Radius)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "reset camera", ActionResetCamera.String())
	assert.Equal(t, "none", ActionNone.String())
}
