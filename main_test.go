package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gregjohnson2017/glwrap/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, config.New(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glwrap.toml")
	require.NoError(t, os.WriteFile(path, []byte(`model = "from-file.gltf"

[window]
backend = "sdl"
width = 640
height = 480
`), 0o600))

	cfg, err := loadConfig(options{configPath: path, debug: true, perf: true, backend: "glfw"}, []string{"cli.glb"})
	require.NoError(t, err)
	assert.Equal(t, "cli.glb", cfg.Model)
	assert.Equal(t, config.BackendGLFW, cfg.Window.Backend)
	assert.Equal(t, int32(640), cfg.Window.Width)
	assert.True(t, cfg.Log.Debug)
	assert.True(t, cfg.Log.Perf)
}

func TestLoadConfigInvalid(t *testing.T) {
	_, err := loadConfig(options{backend: "vulkan"}, nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = loadConfig(options{configPath: filepath.Join(t.TempDir(), "missing.toml")}, nil)
	assert.Error(t, err)
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-c", "a.toml", "--debug", "--backend", "glfw"}))
	for name, expected := range map[string]string{
		"config":  "a.toml",
		"debug":   "true",
		"perf":    "false",
		"backend": "glfw",
	} {
		assert.Equal(t, expected, cmd.Flags().Lookup(name).Value.String(), name)
	}
	assert.Error(t, cmd.Args(cmd, []string{"a", "b"}))
}
