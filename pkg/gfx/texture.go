package gfx

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/gregjohnson2017/glwrap/pkg/log"
)

// ErrCreateTexture indicates that the driver could not create a texture.
const ErrCreateTexture log.ConstErr = "failed to create texture"

// TextureKind tells a mesh which shader variables a texture feeds.
type TextureKind int

// Texture kinds of a material.
const (
	Diffuse TextureKind = iota + 1
	Specular
)

func (k TextureKind) String() string {
	switch k {
	case Diffuse:
		return "diffuse"
	case Specular:
		return "specular"
	}
	return fmt.Sprintf("TextureKind(%d)", int(k))
}

// Texture is implemented by *Texture2D and *TextureCubeMap only.
type Texture interface {
	ID() uint32
	Target() uint32
	// Use makes the texture current on texture unit unit (0, 1, ...).
	Use(unit uint32) error
	SetParameteri(pname uint32, param int32) error
	SetParameterf(pname uint32, param float32) error
	Delete()
	texture() *textureObject
}

// TextureConfig tunes how image files are turned into textures.
type TextureConfig struct {
	GenerateMipmap bool
	FlipY          bool
}

// DefaultTextureConfig generates mipmaps and flips images vertically.
func DefaultTextureConfig() TextureConfig {
	return TextureConfig{GenerateMipmap: true, FlipY: true}
}

type textureObject struct {
	id     uint32
	target uint32
}

func newTextureObject(target uint32) (textureObject, error) {
	id := drv.GenTexture()
	if err := checkError("glGenTextures"); err != nil {
		return textureObject{}, fmt.Errorf("%w: %v", ErrCreateTexture, err)
	}
	if id == 0 {
		return textureObject{}, ErrCreateTexture
	}
	t := textureObject{id: id, target: target}
	if err := t.bind(); err != nil {
		drv.DeleteTexture(id)
		return textureObject{}, fmt.Errorf("bind failed: %w", err)
	}
	return t, nil
}

func (t *textureObject) texture() *textureObject {
	return t
}

func (t *textureObject) ID() uint32 {
	return t.id
}

func (t *textureObject) Target() uint32 {
	return t.target
}

func (t *textureObject) bind() error {
	drv.BindTexture(t.target, t.id)
	return checkError("glBindTexture")
}

func (t *textureObject) Use(unit uint32) error {
	drv.ActiveTexture(gl.TEXTURE0 + unit)
	if err := checkError("glActiveTexture"); err != nil {
		return err
	}
	return t.bind()
}

// SetParameteri binds the texture and sets an integer parameter.
func (t *textureObject) SetParameteri(pname uint32, param int32) error {
	if err := t.bind(); err != nil {
		return err
	}
	drv.TexParameteri(t.target, pname, param)
	return checkError("glTexParameteri")
}

// SetParameterf binds the texture and sets a float parameter.
func (t *textureObject) SetParameterf(pname uint32, param float32) error {
	if err := t.bind(); err != nil {
		return err
	}
	drv.TexParameterf(t.target, pname, param)
	return checkError("glTexParameterf")
}

func (t *textureObject) Delete() {
	if t.id == 0 {
		return
	}
	drv.DeleteTexture(t.id)
	t.id = 0
}

func (t *textureObject) upload(target uint32, img *Image) error {
	var format uint32
	switch img.Channels {
	case 3:
		format = gl.RGB
	case 4:
		format = gl.RGBA
	default:
		log.Warnf("unsupported channels: %v", img.Channels)
		return fmt.Errorf("%w: %v", ErrUnsupportedChannels, img.Channels)
	}
	// rows of RGB data are not 4-byte aligned
	drv.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	drv.TexImage2D(target, gl.RGBA, int32(img.Width), int32(img.Height), format, gl.UNSIGNED_BYTE, img.Pix)
	return checkError("glTexImage2D")
}

func (t *textureObject) finish(cfg TextureConfig) error {
	if err := t.SetParameteri(gl.TEXTURE_MIN_FILTER, gl.LINEAR); err != nil {
		return fmt.Errorf("set GL_TEXTURE_MIN_FILTER failed: %w", err)
	}
	if err := t.SetParameteri(gl.TEXTURE_MAG_FILTER, gl.LINEAR); err != nil {
		return fmt.Errorf("set GL_TEXTURE_MAG_FILTER failed: %w", err)
	}
	if cfg.GenerateMipmap {
		drv.GenerateMipmap(t.target)
		if err := checkError("glGenerateMipmap"); err != nil {
			return err
		}
	}
	return nil
}

// Texture2D is a gl.TEXTURE_2D texture.
type Texture2D struct {
	textureObject
	width  int32
	height int32
}

// NewTexture2DFromFile loads an image file into a new 2D texture.
func NewTexture2DFromFile(path string, cfg TextureConfig) (*Texture2D, error) {
	img, err := LoadImage(path, cfg.FlipY)
	if err != nil {
		log.Warnf("load texture image failed: %v", err)
		return nil, err
	}
	return NewTexture2DFromImage(img, cfg)
}

// NewTextureFromImage uploads an already decoded image into a new 2D texture.
func NewTextureFromImage(src image.Image, cfg TextureConfig) (*Texture2D, error) {
	return NewTexture2DFromImage(ImageFrom(src, cfg.FlipY), cfg)
}

// NewTexture2DFromImage uploads packed pixel data into a new 2D texture.
func NewTexture2DFromImage(img *Image, cfg TextureConfig) (*Texture2D, error) {
	obj, err := newTextureObject(gl.TEXTURE_2D)
	if err != nil {
		return nil, err
	}
	t := &Texture2D{textureObject: obj, width: int32(img.Width), height: int32(img.Height)}
	if err = t.upload(gl.TEXTURE_2D, img); err != nil {
		t.Delete()
		return nil, err
	}
	if err = t.finish(cfg); err != nil {
		t.Delete()
		return nil, err
	}
	return t, nil
}

// NewTexture2D creates an empty RGB texture, typically a framebuffer color
// attachment.
func NewTexture2D(width, height int32) (*Texture2D, error) {
	obj, err := newTextureObject(gl.TEXTURE_2D)
	if err != nil {
		return nil, err
	}
	t := &Texture2D{textureObject: obj, width: width, height: height}
	drv.TexImage2D(gl.TEXTURE_2D, gl.RGB, width, height, gl.RGB, gl.UNSIGNED_BYTE, nil)
	if err = checkError("glTexImage2D"); err != nil {
		t.Delete()
		return nil, err
	}
	if err = t.finish(TextureConfig{}); err != nil {
		t.Delete()
		return nil, err
	}
	return t, nil
}

// Width returns the width in texels.
func (t *Texture2D) Width() int32 {
	return t.width
}

// Height returns the height in texels.
func (t *Texture2D) Height() int32 {
	return t.height
}

// TextureCubeMap is a gl.TEXTURE_CUBE_MAP texture.
type TextureCubeMap struct {
	textureObject
}

// NewTextureCubeMap loads the six faces, in the order +X, -X, +Y, -Y, +Z,
// -Z, into a new cube map clamped to its edges.
func NewTextureCubeMap(faces [6]string, cfg TextureConfig) (*TextureCubeMap, error) {
	obj, err := newTextureObject(gl.TEXTURE_CUBE_MAP)
	if err != nil {
		return nil, err
	}
	t := &TextureCubeMap{obj}
	for i, face := range faces {
		img, err := LoadImage(face, cfg.FlipY)
		if err != nil {
			t.Delete()
			return nil, err
		}
		if err = t.upload(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), img); err != nil {
			t.Delete()
			return nil, err
		}
	}
	for _, pname := range []uint32{gl.TEXTURE_WRAP_S, gl.TEXTURE_WRAP_T, gl.TEXTURE_WRAP_R} {
		if err = t.SetParameteri(pname, gl.CLAMP_TO_EDGE); err != nil {
			t.Delete()
			return nil, err
		}
	}
	if err = t.finish(cfg); err != nil {
		t.Delete()
		return nil, err
	}
	return t, nil
}
