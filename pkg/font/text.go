package font

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gregjohnson2017/glwrap/pkg/gfx"
)

const textVertex = `#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoords;

// viewport width and height, then atlas width and height
uniform vec4 screen;

out vec2 TexCoords;

void main() {
	TexCoords = aTexCoords / screen.zw;
	gl_Position = vec4(aPos / screen.xy * 2.0 - 1.0, 0.0, 1.0);
}
`

const textFragment = `#version 410 core
in vec2 TexCoords;
out vec4 FragColor;

uniform sampler2D glyphs;
uniform vec4 textColor;

void main() {
	float coverage = texture(glyphs, TexCoords).a;
	if (coverage < 0.5) {
		discard;
	}
	FragColor = textColor;
}
`

// Text draws strings of one atlas over whatever is in the framebuffer.
type Text struct {
	atlas *Atlas
	tex   *gfx.Texture2D
	prog  *gfx.Program
	vao   *gfx.VertexArray
	vbo   *gfx.ArrayBuffer
}

// NewText uploads the atlas image and prepares the text program.
func NewText(atlas *Atlas) (*Text, error) {
	t := &Text{atlas: atlas}
	if err := t.init(); err != nil {
		t.Delete()
		return nil, err
	}
	return t, nil
}

func (t *Text) init() error {
	var err error
	if t.tex, err = gfx.NewTextureFromImage(t.atlas.image, gfx.TextureConfig{}); err != nil {
		return err
	}
	for _, pname := range []uint32{gl.TEXTURE_MIN_FILTER, gl.TEXTURE_MAG_FILTER} {
		if err = t.tex.SetParameteri(pname, gl.NEAREST); err != nil {
			return err
		}
	}
	if t.prog, err = gfx.NewProgram(); err != nil {
		return err
	}
	if err = t.prog.AttachShader(gl.VERTEX_SHADER, textVertex); err != nil {
		return err
	}
	if err = t.prog.AttachShader(gl.FRAGMENT_SHADER, textFragment); err != nil {
		return err
	}
	if t.vao, err = gfx.NewVertexArray(true); err != nil {
		return err
	}
	if t.vbo, err = gfx.NewArrayBuffer(); err != nil {
		return err
	}
	if err = t.vbo.VertexAttribPointerSimpleOffset(0, 2, 4, 0); err != nil {
		return err
	}
	if err = t.vbo.VertexAttribPointerSimpleOffset(1, 2, 4, 2); err != nil {
		return err
	}
	if err = t.vao.Unuse(); err != nil {
		return err
	}
	t.prog.SetVertexArray(t.vao)
	return nil
}

// Draw renders str at pixel position (x, y) of a width x height viewport.
func (t *Text) Draw(str string, x, y float32, align Align, textColor mgl32.Vec4, width, height int32) error {
	if str == "" {
		return nil
	}
	vertices := t.atlas.Layout(str, x, y, align)
	if err := t.vbo.Write(vertices); err != nil {
		return err
	}
	bounds := t.atlas.image.Bounds()
	screen := mgl32.Vec4{float32(width), float32(height), float32(bounds.Dx()), float32(bounds.Dy())}
	if err := t.prog.SetUniform("screen", screen); err != nil {
		return err
	}
	if err := t.prog.SetUniform("textColor", textColor); err != nil {
		return err
	}
	if err := t.prog.SetUniform("glyphs", t.tex); err != nil {
		return err
	}
	if err := t.prog.Use(); err != nil {
		return err
	}
	return gfx.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/4))
}

// Atlas returns the glyph atlas.
func (t *Text) Atlas() *Atlas {
	return t.atlas
}

// Delete frees the texture, program and buffers.
func (t *Text) Delete() {
	if t.prog != nil {
		t.prog.Delete()
	}
	if t.vbo != nil {
		t.vbo.Delete()
	}
	if t.vao != nil {
		t.vao.Delete()
	}
	if t.tex != nil {
		t.tex.Delete()
	}
}
