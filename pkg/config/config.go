// Package config holds the viewer settings and reads them from TOML files.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/gregjohnson2017/glwrap/pkg/log"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig indicates settings that cannot be used.
const ErrInvalidConfig log.ConstErr = "invalid config"

// Window backends.
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// Config represents the configuration of the viewer.
type Config struct {
	Window   Window   `toml:"window"`
	Model    string   `toml:"model"`
	Skybox   []string `toml:"skybox,omitempty" comment:"six faces: +X, -X, +Y, -Y, +Z, -Z"`
	Shaders  Shaders  `toml:"shaders"`
	Textures Textures `toml:"textures"`
	Log      Log      `toml:"log"`
}

// Window configures the window and its render loop.
type Window struct {
	Title           string `toml:"title"`
	Width           int32  `toml:"width"`
	Height          int32  `toml:"height"`
	Backend         string `toml:"backend" comment:"sdl or glfw"`
	FramesPerSecond int    `toml:"fps"`
	VSync           bool   `toml:"vsync"`
	HUD             bool   `toml:"hud" comment:"draw frame rate and camera position"`
}

// Shaders optionally replaces the built-in model shaders with files.
type Shaders struct {
	Vertex   string `toml:"vertex"`
	Fragment string `toml:"fragment"`
}

// Textures names the sampler variables mesh textures are assigned to.
type Textures struct {
	Diffuse  []string `toml:"diffuse"`
	Specular []string `toml:"specular"`
}

// Log switches the optional log levels.
type Log struct {
	Debug bool `toml:"debug"`
	Perf  bool `toml:"perf"`
	Color bool `toml:"color"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		Window: Window{
			Title:           "glwrap",
			Width:           1280,
			Height:          720,
			Backend:         BackendSDL,
			FramesPerSecond: 144,
			VSync:           true,
		},
		Textures: Textures{
			Diffuse:  []string{"texture_diffuse1"},
			Specular: []string{"texture_specular1"},
		},
		Log: Log{Color: true},
	}
}

// Load reads the TOML file at path over the defaults. Keys that match no
// setting are an error.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads TOML from r over the defaults.
func Decode(r io.Reader) (*Config, error) {
	cfg := New()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that decode fine but cannot be used.
func (c *Config) Validate() error {
	switch c.Window.Backend {
	case BackendSDL, BackendGLFW:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Window.Backend)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %vx%v", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Window.FramesPerSecond <= 0 {
		return fmt.Errorf("%w: fps %v", ErrInvalidConfig, c.Window.FramesPerSecond)
	}
	if len(c.Skybox) != 0 && len(c.Skybox) != 6 {
		return fmt.Errorf("%w: skybox needs 6 faces, got %v", ErrInvalidConfig, len(c.Skybox))
	}
	if (c.Shaders.Vertex == "") != (c.Shaders.Fragment == "") {
		return fmt.Errorf("%w: shaders need both a vertex and a fragment file", ErrInvalidConfig)
	}
	return nil
}

// SkyboxFaces returns the skybox faces, if any are configured.
func (c *Config) SkyboxFaces() ([6]string, bool) {
	var faces [6]string
	if len(c.Skybox) != 6 {
		return faces, false
	}
	copy(faces[:], c.Skybox)
	return faces, true
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
