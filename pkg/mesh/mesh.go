// Package mesh draws indexed triangle meshes with per-kind texture maps.
package mesh

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gregjohnson2017/glwrap/pkg/gfx"
	"github.com/gregjohnson2017/glwrap/pkg/log"
)

// ErrNoTexture indicates a texture kind with variable names but no textures.
const ErrNoTexture log.ConstErr = "no texture for kind"

// ErrTooManyVariables indicates more variable names than textures of a kind.
const ErrTooManyVariables log.ConstErr = "more variables than textures"

// Vertex attributes, in shader location order.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
}

// floatsPerVertex is the vertex stride in floats.
const floatsPerVertex = 8

// Kinds in the order their textures are assigned to texture units.
var kinds = []gfx.TextureKind{gfx.Diffuse, gfx.Specular}

// Mesh owns the vertex array and buffers of one mesh. Textures are shared and
// belong to whoever created them.
type Mesh struct {
	vao      *gfx.VertexArray
	vbo      *gfx.ArrayBuffer
	ebo      *gfx.ElementBuffer[uint32]
	textures map[gfx.TextureKind][]*gfx.Texture2D
}

// New uploads vertices and indices and records the attribute layout:
// location 0 position, 1 normal, 2 texture coordinates.
func New(vertices []Vertex, indices []uint32, textures map[gfx.TextureKind][]*gfx.Texture2D) (*Mesh, error) {
	m := &Mesh{textures: textures}
	var err error
	if m.vao, err = gfx.NewVertexArray(true); err != nil {
		return nil, err
	}
	if err = m.upload(vertices, indices); err != nil {
		m.Delete()
		return nil, err
	}
	if err = m.vao.Unuse(); err != nil {
		m.Delete()
		return nil, err
	}
	return m, nil
}

func (m *Mesh) upload(vertices []Vertex, indices []uint32) error {
	var err error
	if m.ebo, err = gfx.NewElementBuffer[uint32](); err != nil {
		return err
	}
	if err = m.ebo.Write(indices); err != nil {
		return fmt.Errorf("write indices: %w", err)
	}
	if err = m.ebo.Use(); err != nil {
		return err
	}

	if m.vbo, err = gfx.NewArrayBuffer(); err != nil {
		return err
	}
	data := make([]float32, 0, len(vertices)*floatsPerVertex)
	for _, v := range vertices {
		data = append(data, v.Position[:]...)
		data = append(data, v.Normal[:]...)
		data = append(data, v.TexCoord[:]...)
	}
	if err = m.vbo.Write(data); err != nil {
		return fmt.Errorf("write vertices: %w", err)
	}
	if err = m.vbo.VertexAttribPointerSimpleOffset(0, 3, floatsPerVertex, 0); err != nil {
		return err
	}
	if err = m.vbo.VertexAttribPointerSimpleOffset(1, 3, floatsPerVertex, 3); err != nil {
		return err
	}
	return m.vbo.VertexAttribPointerSimpleOffset(2, 2, floatsPerVertex, 6)
}

// Draw assigns the mesh textures to the sampler variables named per kind,
// uses prog and draws the triangles. The i-th name of a kind gets the i-th
// texture of that kind.
func (m *Mesh) Draw(prog *gfx.Program, vars map[gfx.TextureKind][]string) error {
	prog.SetVertexArray(m.vao)
	prog.ClearTextures()
	for _, kind := range kinds {
		names, ok := vars[kind]
		if !ok {
			continue
		}
		textures := m.textures[kind]
		if len(textures) == 0 {
			log.Warnf("no texture for kind %v", kind)
			return fmt.Errorf("%w: %v", ErrNoTexture, kind)
		}
		if len(names) > len(textures) {
			log.Warnf("more variables than textures: %v %v", len(names), len(textures))
			return fmt.Errorf("%w: %v has %v variables, %v textures", ErrTooManyVariables, kind, len(names), len(textures))
		}
		if len(names) < len(textures) {
			log.Warnf("fewer variables than textures: %v %v", len(names), len(textures))
		}
		for i, name := range names {
			if err := prog.SetUniform(name, textures[i]); err != nil {
				return err
			}
		}
	}

	if err := prog.Use(); err != nil {
		return err
	}
	return m.ebo.Draw(gl.TRIANGLES)
}

// Textures returns the textures of a kind.
func (m *Mesh) Textures(kind gfx.TextureKind) []*gfx.Texture2D {
	return m.textures[kind]
}

// SetDefaultTexture gives the mesh tex as its only texture of kind if it has
// none. It reports whether tex was taken.
func (m *Mesh) SetDefaultTexture(kind gfx.TextureKind, tex *gfx.Texture2D) bool {
	if len(m.textures[kind]) > 0 {
		return false
	}
	if m.textures == nil {
		m.textures = make(map[gfx.TextureKind][]*gfx.Texture2D)
	}
	m.textures[kind] = []*gfx.Texture2D{tex}
	return true
}

// Delete frees the vertex array and buffers.
func (m *Mesh) Delete() {
	if m.vbo != nil {
		m.vbo.Delete()
	}
	if m.ebo != nil {
		m.ebo.Delete()
	}
	if m.vao != nil {
		m.vao.Delete()
	}
}
