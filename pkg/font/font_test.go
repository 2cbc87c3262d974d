package font

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gregjohnson2017/glwrap/pkg/gfx"
	"github.com/gregjohnson2017/glwrap/pkg/gfx/gfxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDefault(t *testing.T) *Atlas {
	t.Helper()
	a, err := Default(16)
	require.NoError(t, err)
	return a
}

func TestLoad(t *testing.T) {
	a := loadDefault(t)

	m := a.Metrics()
	assert.Greater(t, m.Height, float32(0))
	assert.Greater(t, m.Ascent, m.XHeight)
	assert.Greater(t, m.Descent, float32(0))

	space := a.glyph(' ')
	assert.Zero(t, space.height)
	assert.Greater(t, space.advance, float32(0))

	w := a.glyph('W')
	bounds := a.Image().Bounds()
	assert.LessOrEqual(t, w.width, int32(bounds.Dx()))
	assert.LessOrEqual(t, w.row+w.height, int32(bounds.Dy()))
	var covered bool
	for y := int(w.row); y < int(w.row+w.height); y++ {
		for x := 0; x < int(w.width); x++ {
			if a.Image().NRGBAAt(x, y).A > 0 {
				covered = true
			}
		}
	}
	assert.True(t, covered, "W has coverage in its rows")
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load([]byte("not a font"), 16)
	assert.Error(t, err)
}

func TestGlyphFallback(t *testing.T) {
	a := loadDefault(t)
	assert.Equal(t, a.glyph('?'), a.glyph('é'))
	assert.Equal(t, a.glyph('?'), a.glyph('\n'))
}

func TestMeasure(t *testing.T) {
	a := loadDefault(t)
	w, h := a.Measure("")
	assert.Zero(t, w)
	assert.Equal(t, a.Metrics().Height, h)

	one, _ := a.Measure("i")
	two, _ := a.Measure("ii")
	assert.InDelta(t, one+a.glyph('i').advance, two, 1e-3)
}

func TestLayoutAlign(t *testing.T) {
	a := loadDefault(t)
	width, _ := a.Measure("Hi")

	left := a.Layout("Hi", 100, 50, Align{V: AlignAbove, H: AlignLeft})
	require.Len(t, left, 2*24)
	right := a.Layout("Hi", 100, 50, Align{V: AlignAbove, H: AlignRight})
	center := a.Layout("Hi", 100, 50, Align{V: AlignAbove, H: AlignCenter})
	// x of the first vertex moves by the string width
	assert.InDelta(t, width, left[0]-right[0], 1)
	assert.InDelta(t, width/2, left[0]-center[0], 1)

	below := a.Layout("Hi", 100, 50, Align{V: AlignBelow, H: AlignLeft})
	assert.Less(t, below[1], left[1])

	// texture coordinates of the first quad span the glyph rows
	h := a.glyph('H')
	assert.Equal(t, float32(h.row+h.height), left[3])
	assert.Equal(t, float32(h.row), left[7])
	assert.Equal(t, float32(h.width), left[10])
}

func useFakeDriver(t *testing.T) *gfxtest.Driver {
	t.Helper()
	d := gfxtest.New()
	prev := gfx.SetDriver(d)
	t.Cleanup(func() { gfx.SetDriver(prev) })
	return d
}

func TestTextDraw(t *testing.T) {
	d := useFakeDriver(t)
	text, err := NewText(loadDefault(t))
	require.NoError(t, err)

	tex := d.Texture(text.tex.ID())
	require.NotNil(t, tex)
	assert.Equal(t, int32(gl.NEAREST), tex.Params[gl.TEXTURE_MAG_FILTER])

	require.NoError(t, text.Draw("", 0, 0, Align{}, mgl32.Vec4{1, 1, 1, 1}, 800, 600))
	assert.Empty(t, d.Draws())

	require.NoError(t, text.Draw("fps", 8, 592, Align{V: AlignBelow, H: AlignLeft}, mgl32.Vec4{1, 0, 0, 1}, 800, 600))
	draws := d.Draws()
	require.Len(t, draws, 1)
	assert.Equal(t, int32(18), draws[0].Count)
	assert.Equal(t, text.tex.ID(), draws[0].Textures[0])
	bounds := text.Atlas().Image().Bounds()
	assert.Equal(t, [4]float32{800, 600, float32(bounds.Dx()), float32(bounds.Dy())}, draws[0].Uniforms["screen"])
	assert.Equal(t, [4]float32{1, 0, 0, 1}, draws[0].Uniforms["textColor"])

	text.Delete()
	assert.Equal(t, gfxtest.Counts{}, d.Live())
}
