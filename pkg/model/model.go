package model

import (
	"fmt"

	"github.com/gregjohnson2017/glwrap/pkg/gfx"
	"github.com/gregjohnson2017/glwrap/pkg/log"
	"github.com/gregjohnson2017/glwrap/pkg/mesh"
)

// Model is a scene uploaded to the GPU.
type Model struct {
	root     *node
	meshes   []*mesh.Mesh
	textures []*gfx.Texture2D
}

type node struct {
	name     string
	meshes   []*mesh.Mesh
	children []*node
}

// Load imports a glTF file and uploads it with the default texture config.
func Load(path string) (*Model, error) {
	scene, err := Import(path)
	if err != nil {
		return nil, err
	}
	return Build(scene, gfx.DefaultTextureConfig())
}

// Build uploads the meshes of scene. Textures with the same identity are
// created once and shared by every mesh that references them. On error,
// everything created so far is deleted.
func Build(scene *Scene, cfg gfx.TextureConfig) (*Model, error) {
	m := &Model{}
	cache := make(map[string]*gfx.Texture2D)
	for i, data := range scene.Meshes {
		textures := make(map[gfx.TextureKind][]*gfx.Texture2D, len(data.Textures))
		for kind, refs := range data.Textures {
			for _, ref := range refs {
				tex, err := m.texture(cache, ref, cfg)
				if err != nil {
					m.Delete()
					return nil, fmt.Errorf("mesh %v %q: %w", i, data.Name, err)
				}
				textures[kind] = append(textures[kind], tex)
			}
		}
		msh, err := mesh.New(data.Vertices, data.Indices, textures)
		if err != nil {
			m.Delete()
			return nil, fmt.Errorf("mesh %v %q: %w", i, data.Name, err)
		}
		m.meshes = append(m.meshes, msh)
	}
	root, err := m.node(scene.Root)
	if err != nil {
		m.Delete()
		return nil, err
	}
	m.root = root
	log.Debugf("built model: %v meshes, %v textures", len(m.meshes), len(m.textures))
	return m, nil
}

func (m *Model) texture(cache map[string]*gfx.Texture2D, ref TextureRef, cfg gfx.TextureConfig) (*gfx.Texture2D, error) {
	key := ref.key()
	if tex, ok := cache[key]; ok {
		return tex, nil
	}
	var tex *gfx.Texture2D
	var err error
	if ref.Image != nil {
		tex, err = gfx.NewTextureFromImage(ref.Image, cfg)
	} else {
		tex, err = gfx.NewTexture2DFromFile(ref.Path, cfg)
	}
	if err != nil {
		return nil, err
	}
	cache[key] = tex
	m.textures = append(m.textures, tex)
	return tex, nil
}

func (m *Model) node(n *Node) (*node, error) {
	if n == nil {
		return &node{}, nil
	}
	out := &node{name: n.Name}
	for _, i := range n.Meshes {
		if i < 0 || i >= len(m.meshes) {
			return nil, fmt.Errorf("node %q: %w: mesh %v", n.Name, ErrBadIndex, i)
		}
		out.meshes = append(out.meshes, m.meshes[i])
	}
	for _, c := range n.Children {
		child, err := m.node(c)
		if err != nil {
			return nil, err
		}
		out.children = append(out.children, child)
	}
	return out, nil
}

// Draw draws every node's meshes depth first, parents before children, and
// stops at the first mesh that fails.
func (m *Model) Draw(prog *gfx.Program, vars map[gfx.TextureKind][]string) error {
	if m.root == nil {
		return nil
	}
	return m.root.draw(prog, vars)
}

func (n *node) draw(prog *gfx.Program, vars map[gfx.TextureKind][]string) error {
	for _, msh := range n.meshes {
		if err := msh.Draw(prog, vars); err != nil {
			return fmt.Errorf("node %q: %w", n.name, err)
		}
	}
	for _, c := range n.children {
		if err := c.draw(prog, vars); err != nil {
			return err
		}
	}
	return nil
}

// Meshes returns the uploaded meshes in scene order.
func (m *Model) Meshes() []*mesh.Mesh {
	return m.meshes
}

// Textures returns the distinct textures of the model.
func (m *Model) Textures() []*gfx.Texture2D {
	return m.textures
}

// FillMissing gives tex to every mesh without a texture of kind and returns
// how many meshes took it. tex stays owned by the caller.
func (m *Model) FillMissing(kind gfx.TextureKind, tex *gfx.Texture2D) int {
	n := 0
	for _, msh := range m.meshes {
		if msh.SetDefaultTexture(kind, tex) {
			n++
		}
	}
	return n
}

// Delete frees the meshes and each shared texture once.
func (m *Model) Delete() {
	for _, msh := range m.meshes {
		msh.Delete()
	}
	for _, tex := range m.textures {
		tex.Delete()
	}
	m.meshes, m.textures, m.root = nil, nil, nil
}
