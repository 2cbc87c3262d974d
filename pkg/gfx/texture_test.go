package gfx

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Texture = (*Texture2D)(nil)
	_ Texture = (*TextureCubeMap)(nil)
)

// writePNG writes a width x height image whose top-left pixel is red and
// every other pixel is c.
func writePNG(t *testing.T, dir, name string, width, height int, c color.NRGBA) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: c.A})
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestLoadImageOpaque(t *testing.T) {
	path := writePNG(t, t.TempDir(), "opaque.png", 2, 3, color.NRGBA{B: 255, A: 255})

	img, err := LoadImage(path, false)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width)
	assert.Equal(t, 3, img.Height)
	assert.Equal(t, 3, img.Channels)
	require.Len(t, img.Pix, 2*3*3)
	assert.Equal(t, []byte{255, 0, 0}, img.Pix[:3])

	flipped, err := LoadImage(path, true)
	require.NoError(t, err)
	// the red pixel is now at the start of the last row
	assert.Equal(t, []byte{0, 0, 255}, flipped.Pix[:3])
	assert.Equal(t, []byte{255, 0, 0}, flipped.Pix[2*2*3:2*2*3+3])
}

func TestLoadImageTranslucent(t *testing.T) {
	path := writePNG(t, t.TempDir(), "translucent.png", 2, 2, color.NRGBA{G: 255, A: 128})

	img, err := LoadImage(path, false)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Channels)
	assert.Equal(t, []byte{255, 0, 0, 128}, img.Pix[:4])
	assert.Equal(t, []byte{0, 255, 0, 128}, img.Pix[4:8])
}

func TestLoadImageErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadImage(filepath.Join(dir, "missing.png"), false)
	assert.Error(t, err)

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	_, err = LoadImage(garbage, false)
	assert.Error(t, err)
}

func TestNewTexture2DFromFile(t *testing.T) {
	d := useFakeDriver(t)
	path := writePNG(t, t.TempDir(), "diffuse.png", 3, 1, color.NRGBA{G: 255, A: 255})

	tex, err := NewTexture2DFromFile(path, DefaultTextureConfig())
	require.NoError(t, err)
	assert.Equal(t, int32(3), tex.Width())
	assert.Equal(t, int32(1), tex.Height())
	assert.Equal(t, uint32(gl.TEXTURE_2D), tex.Target())

	state := d.Texture(tex.ID())
	require.NotNil(t, state)
	level := state.Levels[gl.TEXTURE_2D]
	assert.Equal(t, uint32(gl.RGB), level.Format)
	assert.Equal(t, int32(gl.RGBA), level.InternalFormat)
	assert.Len(t, level.Pixels, 9)
	assert.Equal(t, int32(gl.LINEAR), state.Params[gl.TEXTURE_MIN_FILTER])
	assert.Equal(t, int32(gl.LINEAR), state.Params[gl.TEXTURE_MAG_FILTER])
	assert.True(t, state.Mipmaps)

	tex.Delete()
	assert.Zero(t, d.Live().Textures)
}

func TestNewTexture2DFromFileMissing(t *testing.T) {
	d := useFakeDriver(t)
	tex, err := NewTexture2DFromFile(filepath.Join(t.TempDir(), "nope.png"), DefaultTextureConfig())
	assert.Nil(t, tex)
	assert.Error(t, err)
	assert.Zero(t, d.Live().Textures)
}

func TestNewTexture2DFromImageChannels(t *testing.T) {
	d := useFakeDriver(t)
	tex, err := NewTexture2DFromImage(&Image{Pix: []byte{1, 2}, Width: 1, Height: 1, Channels: 2}, DefaultTextureConfig())
	assert.Nil(t, tex)
	assert.ErrorIs(t, err, ErrUnsupportedChannels)
	assert.Zero(t, d.Live().Textures)
}

func TestNewTexture2DEmpty(t *testing.T) {
	d := useFakeDriver(t)
	tex, err := NewTexture2D(64, 32)
	require.NoError(t, err)

	state := d.Texture(tex.ID())
	level := state.Levels[gl.TEXTURE_2D]
	assert.Equal(t, int32(64), level.Width)
	assert.Equal(t, int32(32), level.Height)
	assert.Nil(t, level.Pixels)
	assert.False(t, state.Mipmaps)
}

func TestTextureUse(t *testing.T) {
	d := useFakeDriver(t)
	tex, err := NewTexture2D(1, 1)
	require.NoError(t, err)

	require.NoError(t, tex.Use(3))
	assert.Equal(t, tex.ID(), d.BoundTexture(3, gl.TEXTURE_2D))

	require.NoError(t, tex.SetParameteri(gl.TEXTURE_WRAP_S, gl.REPEAT))
	require.NoError(t, tex.SetParameterf(gl.TEXTURE_MIN_LOD, 4))
	assert.Equal(t, int32(gl.REPEAT), d.Texture(tex.ID()).Params[gl.TEXTURE_WRAP_S])
	assert.Equal(t, float32(4), d.Texture(tex.ID()).ParamsF[gl.TEXTURE_MIN_LOD])
}

func cubeFaces(t *testing.T, dir string) [6]string {
	var faces [6]string
	for i, name := range []string{"right", "left", "top", "bottom", "front", "back"} {
		faces[i] = writePNG(t, dir, name+".png", 2, 2, color.NRGBA{B: uint8(i * 40), A: 255})
	}
	return faces
}

func TestNewTextureCubeMap(t *testing.T) {
	d := useFakeDriver(t)
	tex, err := NewTextureCubeMap(cubeFaces(t, t.TempDir()), TextureConfig{})
	require.NoError(t, err)
	assert.Equal(t, uint32(gl.TEXTURE_CUBE_MAP), tex.Target())

	state := d.Texture(tex.ID())
	assert.Len(t, state.Levels, 6)
	for i := uint32(0); i < 6; i++ {
		face, ok := state.Levels[gl.TEXTURE_CUBE_MAP_POSITIVE_X+i]
		require.True(t, ok)
		assert.Equal(t, uint8(i*40), face.Pixels[5], "face %v", i)
	}
	for _, pname := range []uint32{gl.TEXTURE_WRAP_S, gl.TEXTURE_WRAP_T, gl.TEXTURE_WRAP_R} {
		assert.Equal(t, int32(gl.CLAMP_TO_EDGE), state.Params[pname])
	}
	assert.False(t, state.Mipmaps)
}

func TestNewTextureCubeMapMissingFace(t *testing.T) {
	d := useFakeDriver(t)
	faces := cubeFaces(t, t.TempDir())
	faces[4] = filepath.Join(t.TempDir(), "missing.png")

	tex, err := NewTextureCubeMap(faces, DefaultTextureConfig())
	assert.Nil(t, tex)
	assert.Error(t, err)
	assert.Zero(t, d.Live().Textures)
}

func TestTextureKindString(t *testing.T) {
	assert.Equal(t, "diffuse", Diffuse.String())
	assert.Equal(t, "specular", Specular.String())
	assert.Equal(t, "TextureKind(7)", TextureKind(7).String())
}
