package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, BackendSDL, cfg.Window.Backend)
	_, ok := cfg.SkyboxFaces()
	assert.False(t, ok)
}

func TestLoadOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
model = "assets/backpack.gltf"
skybox = ["r.jpg", "l.jpg", "t.jpg", "b.jpg", "f.jpg", "k.jpg"]

[window]
backend = "glfw"
width = 800

[textures]
diffuse = ["albedo"]

[log]
perf = true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "assets/backpack.gltf", cfg.Model)
	assert.Equal(t, BackendGLFW, cfg.Window.Backend)
	assert.Equal(t, int32(800), cfg.Window.Width)
	assert.Equal(t, int32(720), cfg.Window.Height, "default kept")
	assert.Equal(t, []string{"albedo"}, cfg.Textures.Diffuse)
	assert.Equal(t, []string{"texture_specular1"}, cfg.Textures.Specular)
	assert.True(t, cfg.Log.Perf)
	assert.True(t, cfg.Log.Color)

	faces, ok := cfg.SkyboxFaces()
	require.True(t, ok)
	assert.Equal(t, "k.jpg", faces[5])
}

func testInvalid(doc string) func(t *testing.T) {
	return func(t *testing.T) {
		_, err := Decode(strings.NewReader(doc))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	}
}

func TestDecodeInvalid(t *testing.T) {
	t.Run("unknown key", testInvalid("[window]\ncolour = 1\n"))
	t.Run("wrong type", testInvalid("[window]\nwidth = \"wide\"\n"))
	t.Run("unknown backend", testInvalid("[window]\nbackend = \"x11\"\n"))
	t.Run("zero height", testInvalid("[window]\nheight = 0\n"))
	t.Run("zero fps", testInvalid("[window]\nfps = 0\n"))
	t.Run("partial skybox", testInvalid("skybox = [\"a.png\"]\n"))
	t.Run("lone vertex shader", testInvalid("[shaders]\nvertex = \"a.vert\"\n"))
	t.Run("syntax", testInvalid("[window\n"))
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := New()
	cfg.Model = "scene.glb"
	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, cfg, decoded)
}
