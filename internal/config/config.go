// Package config loads tokenviz settings from defaults, an optional YAML
// file and TOKENVIZ_ environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/philipparndt/tokenviz/pkg/settings"
	"github.com/philipparndt/tokenviz/pkg/watcher"
)

const (
	configName = "tokenviz"
	envPrefix  = "TOKENVIZ"
)

// Window holds the native window settings
type Window struct {
	Width  int
	Height int
	FPS    int
}

// Display holds the initial display settings
type Display struct {
	RotationSpeed int
	ParticleSize  int
	LabelsVisible bool
	LabelSize     int
	LabelOpacity  int // percent
	LabelDensity  string
}

// Config is the resolved configuration
type Config struct {
	LogLevel      string
	Window        Window
	Display       Display
	WatchDebounce time.Duration
	// File is the config file that was read, empty when none was found
	File string
}

func setDefaults(v *viper.Viper) {
	d := settings.Defaults()

	v.SetDefault("log.level", "info")

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 800)
	v.SetDefault("window.fps", 60)

	v.SetDefault("display.rotationSpeed", d.RotationSpeed())
	v.SetDefault("display.particleSize", d.ParticleSizePx())
	v.SetDefault("display.labelsVisible", d.LabelsVisible())
	v.SetDefault("display.labelSize", d.LabelSizePx())
	v.SetDefault("display.labelOpacity", int(math.Round(d.LabelOpacity()*100)))
	v.SetDefault("display.labelDensity", d.LabelDensity().String())

	v.SetDefault("watch.debounce", watcher.DefaultDebounce)
}

// Load resolves the configuration. With an empty path tokenviz.yaml is
// looked up in the working directory and the user config directory; a
// missing file is not an error then. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, configName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return &Config{
		LogLevel: v.GetString("log.level"),
		Window: Window{
			Width:  v.GetInt("window.width"),
			Height: v.GetInt("window.height"),
			FPS:    v.GetInt("window.fps"),
		},
		Display: Display{
			RotationSpeed: v.GetInt("display.rotationSpeed"),
			ParticleSize:  v.GetInt("display.particleSize"),
			LabelsVisible: v.GetBool("display.labelsVisible"),
			LabelSize:     v.GetInt("display.labelSize"),
			LabelOpacity:  v.GetInt("display.labelOpacity"),
			LabelDensity:  v.GetString("display.labelDensity"),
		},
		WatchDebounce: v.GetDuration("watch.debounce"),
		File:          v.ConfigFileUsed(),
	}, nil
}

// Settings builds display settings from the configuration. Out of range
// values are clamped by the setters.
func (c *Config) Settings() (*settings.Display, error) {
	density, err := settings.ParseDensity(c.Display.LabelDensity)
	if err != nil {
		return nil, fmt.Errorf("display.labelDensity: %w", err)
	}

	s := settings.New()
	s.SetRotationSpeed(c.Display.RotationSpeed)
	s.SetParticleSize(c.Display.ParticleSize)
	s.SetLabelsVisible(c.Display.LabelsVisible)
	s.SetLabelSize(c.Display.LabelSize)
	s.SetLabelOpacityPercent(c.Display.LabelOpacity)
	s.SetLabelDensity(density)
	return s, nil
}
