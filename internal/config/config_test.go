package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/tokenviz/pkg/settings"
)

// isolate keeps the lookup away from any tokenviz.yaml on the machine
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, Window{Width: 1280, Height: 800, FPS: 60}, cfg.Window)
	assert.Equal(t, Display{
		RotationSpeed: 10,
		ParticleSize:  5,
		LabelsVisible: true,
		LabelSize:     12,
		LabelOpacity:  80,
		LabelDensity:  "high",
	}, cfg.Display)
	assert.Equal(t, 300*time.Millisecond, cfg.WatchDebounce)
	assert.Empty(t, cfg.File)
}

func TestLoadFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
window:
  fps: 30
display:
  rotationSpeed: 50
  labelDensity: low
  labelOpacity: 40
watch:
  debounce: 1s
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30, cfg.Window.FPS)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 50, cfg.Display.RotationSpeed)
	assert.Equal(t, "low", cfg.Display.LabelDensity)
	assert.Equal(t, 40, cfg.Display.LabelOpacity)
	assert.Equal(t, time.Second, cfg.WatchDebounce)
	assert.Equal(t, path, cfg.File)
}

func TestLoadDiscoversWorkingDirectoryFile(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("tokenviz.yaml", []byte("display:\n  labelSize: 20\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Display.LabelSize)
	assert.NotEmpty(t, cfg.File)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("tokenviz.yaml", []byte("display:\n  particleSize: 3\n"), 0o644))
	t.Setenv("TOKENVIZ_DISPLAY_PARTICLESIZE", "9")
	t.Setenv("TOKENVIZ_LOG_LEVEL", "error")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Display.ParticleSize)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSettings(t *testing.T) {
	cfg := &Config{Display: Display{
		RotationSpeed: 500,
		ParticleSize:  0,
		LabelsVisible: false,
		LabelSize:     14,
		LabelOpacity:  150,
		LabelDensity:  "Medium",
	}}

	s, err := cfg.Settings()
	require.NoError(t, err)
	assert.Equal(t, settings.MaxRotationSpeed, s.RotationSpeed())
	assert.Equal(t, 1, s.ParticleSizePx())
	assert.False(t, s.LabelsVisible())
	assert.Equal(t, 14, s.LabelSizePx())
	assert.Equal(t, 1.0, s.LabelOpacity())
	assert.Equal(t, settings.DensityMedium, s.LabelDensity())

	cfg.Display.LabelDensity = "dense"
	_, err = cfg.Settings()
	assert.Error(t, err)
}
