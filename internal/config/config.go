// Package config loads optional TOML settings over a program's defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/workingdodo/opengl-tests/internal/window"
)

type Shaders struct {
	Vertex   string `toml:"vertex"`
	Fragment string `toml:"fragment"`
	// Watch rebuilds shaders when their files change.
	Watch bool `toml:"watch"`
}

type Textures struct {
	Container string `toml:"container"`
	Face      string `toml:"face"`
}

type Camera struct {
	Speed       float32 `toml:"speed"`
	Sensitivity float32 `toml:"sensitivity"`
	FOV         float32 `toml:"fov"`
	Near        float32 `toml:"near"`
	Far         float32 `toml:"far"`
}

type Scene struct {
	// Model replaces the built-in cube with an OBJ file.
	Model string `toml:"model"`
	// Music is a QOA file played on a loop.
	Music     string `toml:"music"`
	HUD       bool   `toml:"hud"`
	Wireframe bool   `toml:"wireframe"`
}

// Settings is everything a program can be configured with.
type Settings struct {
	Window   window.Config `toml:"window"`
	Shaders  Shaders       `toml:"shaders"`
	Textures Textures      `toml:"textures"`
	Camera   Camera        `toml:"camera"`
	Scene    Scene         `toml:"scene"`
}

// Defaults returns settings shared by all programs; each program overrides the shader paths.
func Defaults() Settings {
	return Settings{
		Window: window.DefaultConfig(),
		Textures: Textures{
			Container: "res/container.png",
			Face:      "res/awesomeface.png",
		},
		Camera: Camera{
			Speed:       10,
			Sensitivity: 0.05,
			FOV:         45,
			Near:        0.01,
			Far:         100,
		},
	}
}

// Load overlays the TOML file at path onto defaults. An empty path returns defaults.
func Load(path string, defaults Settings) (Settings, error) {
	if path == "" {
		return defaults, defaults.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return defaults, fmt.Errorf("failed to read config: %w", err)
	}
	s, err := Parse(bytes.NewReader(data), defaults)
	if err != nil {
		return defaults, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse overlays TOML from r onto defaults. Unknown keys are an error.
func Parse(r io.Reader, defaults Settings) (Settings, error) {
	s := defaults
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return defaults, fmt.Errorf("unknown config keys:\n%s", strict.String())
		}
		return defaults, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return defaults, err
	}
	return s, nil
}

// Validate rejects settings no program can run with.
func (s Settings) Validate() error {
	var errs []error
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", s.Window.Width, s.Window.Height))
	}
	if s.Window.GLMajor < 3 || (s.Window.GLMajor == 3 && s.Window.GLMinor < 3) {
		errs = append(errs, fmt.Errorf("OpenGL %d.%d is too old, need 3.3 core", s.Window.GLMajor, s.Window.GLMinor))
	}
	if s.Camera.Near <= 0 || s.Camera.Far <= s.Camera.Near {
		errs = append(errs, fmt.Errorf("clip planes near=%v far=%v need 0 < near < far", s.Camera.Near, s.Camera.Far))
	}
	if s.Camera.FOV < 1 || s.Camera.FOV > 45 {
		errs = append(errs, fmt.Errorf("fov %v outside [1, 45]", s.Camera.FOV))
	}
	if s.Camera.Speed <= 0 {
		errs = append(errs, fmt.Errorf("camera speed %v must be positive", s.Camera.Speed))
	}
	if s.Camera.Sensitivity <= 0 {
		errs = append(errs, fmt.Errorf("mouse sensitivity %v must be positive", s.Camera.Sensitivity))
	}
	return errors.Join(errs...)
}
