// Package config loads engine settings from the environment and optional
// dotenv files.
package config

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Environment variables read by Load.
const (
	EnvWindowTitle  = "EMBER_WINDOW_TITLE"
	EnvWindowWidth  = "EMBER_WINDOW_WIDTH"
	EnvWindowHeight = "EMBER_WINDOW_HEIGHT"
	EnvValidation   = "EMBER_VALIDATION"
	EnvClearColor   = "EMBER_CLEAR_COLOR"
	EnvLogLevel     = "EMBER_LOG_LEVEL"
)

// Configuration defines the engine configuration.
type Configuration struct {
	Window   WindowConfiguration
	Renderer RendererConfiguration
	Log      LogConfiguration
}

// WindowConfiguration configures the OS window.
type WindowConfiguration struct {
	Title  string
	Width  int
	Height int
}

// RendererConfiguration configures the renderer.
type RendererConfiguration struct {
	// Validation enables the Vulkan validation layer when installed.
	Validation bool
	ClearColor mgl32.Vec4
}

// LogConfiguration configures the logging sink.
type LogConfiguration struct {
	Level logrus.Level
}

// Default is the configuration used when nothing is overridden.
var Default = Configuration{
	Window: WindowConfiguration{
		Title:  "ember",
		Width:  800,
		Height: 600,
	},
	Renderer: RendererConfiguration{
		ClearColor: mgl32.Vec4{0, 0, 0, 1},
	},
	Log: LogConfiguration{
		Level: logrus.InfoLevel,
	},
}

// Load reads the given dotenv files, which must exist, and then builds a
// Configuration from Default overridden by the EMBER_* variables. Variables
// already set in the process environment win over dotenv files.
func Load(files ...string) (Configuration, error) {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return Configuration{}, errors.Wrapf(err, "loading %s", strings.Join(files, ", "))
		}
	}
	envy.Reload()

	return FromEnv(envy.Get)
}

// FromEnv builds a Configuration from Default and the values get returns.
// An empty value counts as unset.
func FromEnv(get func(key, fallback string) string) (Configuration, error) {
	cfg := Default
	var err error

	cfg.Window.Title = get(EnvWindowTitle, cfg.Window.Title)
	if cfg.Window.Title == "" {
		cfg.Window.Title = Default.Window.Title
	}

	if cfg.Window.Width, err = dimension(get, EnvWindowWidth, cfg.Window.Width); err != nil {
		return cfg, err
	}
	if cfg.Window.Height, err = dimension(get, EnvWindowHeight, cfg.Window.Height); err != nil {
		return cfg, err
	}

	if v := get(EnvValidation, ""); v != "" {
		if cfg.Renderer.Validation, err = strconv.ParseBool(v); err != nil {
			return cfg, errors.Wrapf(err, "%s", EnvValidation)
		}
	}

	if v := get(EnvClearColor, ""); v != "" {
		if cfg.Renderer.ClearColor, err = ParseColor(v); err != nil {
			return cfg, errors.Wrapf(err, "%s", EnvClearColor)
		}
	}

	if v := get(EnvLogLevel, ""); v != "" {
		if cfg.Log.Level, err = logrus.ParseLevel(v); err != nil {
			return cfg, errors.Wrapf(err, "%s", EnvLogLevel)
		}
	}

	return cfg, nil
}

func dimension(get func(key, fallback string) string, key string, fallback int) (int, error) {
	v := get(key, "")
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "%s", key)
	}
	if n <= 0 {
		return 0, errors.Newf("%s: must be positive, got %d", key, n)
	}
	return n, nil
}

// ParseColor parses "r,g,b,a" with each component in [0, 1].
func ParseColor(s string) (mgl32.Vec4, error) {
	var color mgl32.Vec4

	parts := strings.Split(s, ",")
	if len(parts) != len(color) {
		return color, errors.Newf("colour %q: want 4 components, got %d", s, len(parts))
	}

	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return color, errors.Wrapf(err, "colour %q", s)
		}
		if v < 0 || v > 1 {
			return color, errors.Newf("colour %q: component %d out of range [0, 1]", s, i)
		}
		color[i] = float32(v)
	}
	return color, nil
}
