package gfx

import (
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"os"

	"github.com/gregjohnson2017/glwrap/pkg/log"
	_ "golang.org/x/image/bmp"  // register decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

// ErrUnsupportedChannels indicates pixel data that is neither RGB nor RGBA.
const ErrUnsupportedChannels log.ConstErr = "unsupported channels"

// Image is tightly packed 8-bit pixel data ready for upload.
type Image struct {
	Pix      []byte
	Width    int
	Height   int
	Channels int
}

// LoadImage decodes the image file at path. Opaque images yield 3 channels,
// others 4. With flipY the first row of Pix is the bottom row of the image,
// which is what texture coordinates expect.
func LoadImage(path string, flipY bool) (*Image, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("no image %q: %w", path, err)
	}
	defer in.Close()

	img, _, err := image.Decode(in)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return ImageFrom(img, flipY), nil
}

// ImageFrom converts a decoded image into packed RGB or RGBA bytes.
func ImageFrom(img image.Image, flipY bool) *Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	nrgba := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)

	channels := 4
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		channels = 3
	}
	pix := make([]byte, 0, width*height*channels)
	for j := 0; j < height; j++ {
		row := j
		if flipY {
			row = height - 1 - j
		}
		line := nrgba.Pix[row*nrgba.Stride : row*nrgba.Stride+width*4]
		if channels == 4 {
			pix = append(pix, line...)
			continue
		}
		for i := 0; i < width; i++ {
			pix = append(pix, line[i*4], line[i*4+1], line[i*4+2])
		}
	}
	return &Image{Pix: pix, Width: width, Height: height, Channels: channels}
}
