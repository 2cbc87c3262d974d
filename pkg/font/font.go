// Package font rasterizes the printable ASCII glyphs of a TrueType font into
// an atlas and lays out strings as textured triangles.
package font

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/gregjohnson2017/glwrap/pkg/log"
	"github.com/gregjohnson2017/glwrap/pkg/perf"
	"github.com/gregjohnson2017/glwrap/pkg/util"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

const (
	firstRune = ' '
	lastRune  = '~'
	// drawn in place of runes the atlas does not hold
	fallbackRune = '?'
)

// ErrNoFontGlyph indicates the given font does not contain the given glyph
const ErrNoFontGlyph log.ConstErr = "font does not contain given glyph"

// AlignV is used for the positioning of text vertically
type AlignV int

const (
	// AlignAbove puts the bottom of the text at the y coordinate
	AlignAbove AlignV = iota - 1
	// AlignMiddle centers lowercase letters on the y coordinate
	AlignMiddle
	// AlignBelow puts the top of the text at the y coordinate
	AlignBelow
)

// AlignH is used for the positioning of text horizontally
type AlignH int

const (
	// AlignLeft puts the left side on the x coordinate
	AlignLeft AlignH = iota - 1
	// AlignCenter puts the left and right sides equidistant from the center
	AlignCenter
	// AlignRight puts the right side at the x coordinate
	AlignRight
)

// Align holds vertical and horizontal alignments
type Align struct {
	V AlignV
	H AlignH
}

type glyph struct {
	row      int32
	width    int32
	height   int32
	bearingX float32
	bearingY float32
	advance  float32
}

// Metrics are the vertical measures of a font in pixels.
type Metrics struct {
	Height    float32
	Ascent    float32
	Descent   float32
	XHeight   float32
	CapHeight float32
}

// Atlas holds the glyphs of a font at one size, stacked top to bottom in a
// white image whose alpha is the glyph coverage.
type Atlas struct {
	glyphs  [lastRune - firstRune + 1]glyph
	metrics Metrics
	image   *image.NRGBA
}

func int26_6ToFloat32(x fixed.Int26_6) float32 {
	top := float32(x >> 6)
	bottom := float32(x&0x3F) / 64.0
	return top + bottom
}

// Default loads the Go Regular font at size pixels.
func Default(size float64) (*Atlas, error) {
	return Load(goregular.TTF, size)
}

// Load rasterizes the TrueType font ttf at size pixels.
func Load(ttf []byte, size float64) (*Atlas, error) {
	sw := util.Start()
	defer sw.StopRecordAverage(perf.FontLoad)

	ttfFont, err := truetype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{Size: size})
	defer face.Close()

	type raster struct {
		mask  image.Image
		maskp image.Point
	}
	var (
		a       Atlas
		rasters [lastRune - firstRune + 1]raster
		row     int32
		width   int32
	)
	for r := firstRune; r <= lastRune; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			return nil, fmt.Errorf("load font at %v glyph '%c': %w", size, r, ErrNoFontGlyph)
		}
		g := glyph{
			row:      row,
			width:    int32(dr.Dx()),
			height:   int32(dr.Dy()),
			bearingX: float32(dr.Min.X),
			bearingY: float32(-dr.Min.Y),
			advance:  float32(math.Round(float64(int26_6ToFloat32(advance)))),
		}
		a.glyphs[r-firstRune] = g
		rasters[r-firstRune] = raster{mask, maskp}
		row += g.height
		if g.width > width {
			width = g.width
		}
	}

	a.image = image.NewNRGBA(image.Rect(0, 0, int(width), int(max(row, 1))))
	for i, g := range a.glyphs {
		rs := rasters[i]
		for y := 0; y < int(g.height); y++ {
			for x := 0; x < int(g.width); x++ {
				_, _, _, alpha := rs.mask.At(rs.maskp.X+x, rs.maskp.Y+y).RGBA()
				a.image.SetNRGBA(x, int(g.row)+y, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(alpha >> 8)})
			}
		}
	}

	if a.metrics, err = loadMetrics(ttf, size); err != nil {
		return nil, err
	}
	log.Debugf("loaded font atlas %vx%v at size %v", width, row, size)
	return &a, nil
}

func loadMetrics(ttf []byte, size float64) (Metrics, error) {
	sfntFont, err := sfnt.Parse(ttf)
	if err != nil {
		return Metrics{}, err
	}
	otfFace, err := opentype.NewFace(sfntFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return Metrics{}, err
	}
	defer otfFace.Close()
	m := otfFace.Metrics()
	return Metrics{
		Height:    int26_6ToFloat32(m.Height),
		Ascent:    int26_6ToFloat32(m.Ascent),
		Descent:   int26_6ToFloat32(m.Descent),
		XHeight:   int26_6ToFloat32(m.XHeight),
		CapHeight: int26_6ToFloat32(m.CapHeight),
	}, nil
}

// Metrics returns the vertical measures of the font.
func (a *Atlas) Metrics() Metrics {
	return a.metrics
}

// Image returns the glyph image.
func (a *Atlas) Image() *image.NRGBA {
	return a.image
}

func (a *Atlas) glyph(r rune) glyph {
	if r < firstRune || r > lastRune {
		r = fallbackRune
	}
	return a.glyphs[r-firstRune]
}

// Measure returns the width and line height of str in pixels.
func (a *Atlas) Measure(str string) (float32, float32) {
	var width float32
	var last glyph
	for _, r := range str {
		last = a.glyph(r)
		width += last.advance
	}
	// the last glyph may reach past its advance
	if overhang := float32(last.width) + last.bearingX - last.advance; str != "" && overhang > 0 {
		width += overhang
	}
	return width, a.metrics.Height
}

// Layout turns each rune of str into two (x,y,s,t)-vertex triangles. x and
// y are pixels with the origin at the bottom left; s and t are texels of the
// atlas image with the origin at the top left.
func (a *Atlas) Layout(str string, x, y float32, align Align) []float32 {
	// 2 triangles per rune, 3 vertices per triangle, 4 float32's per vertex
	buffer := make([]float32, 0, len(str)*24)
	width, _ := a.Measure(str)

	w2 := width / 2
	offx := -w2 - float32(align.H)*w2
	var offy float32
	switch align.V {
	case AlignBelow:
		offy = -float32(math.Ceil(float64(a.metrics.Ascent)))
	case AlignMiddle:
		offy = -a.metrics.XHeight / 2
	case AlignAbove:
		offy = float32(math.Ceil(float64(a.metrics.Descent)))
	}
	originX, originY := float32(math.Round(float64(x+offx))), y+offy
	for _, r := range str {
		g := a.glyph(r)
		left := originX + g.bearingX
		right := left + float32(g.width)
		top := originY + g.bearingY
		bottom := top - float32(g.height)
		s := float32(g.width)
		t0, t1 := float32(g.row), float32(g.row+g.height)
		buffer = append(buffer,
			left, bottom, 0, t1, // bottom-left
			left, top, 0, t0, // top-left
			right, top, s, t0, // top-right

			left, bottom, 0, t1, // bottom-left
			right, top, s, t0, // top-right
			right, bottom, s, t1, // bottom-right
		)
		originX += g.advance
	}
	return buffer
}
