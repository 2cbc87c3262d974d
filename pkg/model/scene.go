// Package model imports glTF scenes and draws them as trees of meshes.
package model

import (
	"image"

	"github.com/gregjohnson2017/glwrap/pkg/gfx"
	"github.com/gregjohnson2017/glwrap/pkg/mesh"
)

// Node is one node of an imported scene tree. Meshes index Scene.Meshes; a
// mesh may be referenced by several nodes.
type Node struct {
	Name     string
	Meshes   []int
	Children []*Node
}

// TextureRef identifies the image of a texture. File images are shared by
// resolved path, embedded ones by Key.
type TextureRef struct {
	Path  string
	Key   string
	Image image.Image
}

// key is the identity used to share one GPU texture between meshes.
func (r TextureRef) key() string {
	if r.Path != "" {
		return "file:" + r.Path
	}
	return "embedded:" + r.Key
}

// MeshData is the CPU side of one mesh.
type MeshData struct {
	Name     string
	Vertices []mesh.Vertex
	Indices  []uint32
	Textures map[gfx.TextureKind][]TextureRef
}

// Scene is an imported scene ready to be uploaded with Build.
type Scene struct {
	Root   *Node
	Meshes []MeshData
}
