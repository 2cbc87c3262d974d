package model

import (
	"bytes"
	"fmt"
	"image"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gregjohnson2017/glwrap/pkg/gfx"
	"github.com/gregjohnson2017/glwrap/pkg/log"
	"github.com/gregjohnson2017/glwrap/pkg/mesh"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// Import errors.
const (
	ErrNoScene     log.ConstErr = "model has no scene"
	ErrNoPositions log.ConstErr = "primitive has no positions"
	ErrBadIndex    log.ConstErr = "index out of range"
	ErrNodeCycle   log.ConstErr = "node graph has a cycle"
)

const (
	attrPosition = "POSITION"
	attrNormal   = "NORMAL"
	attrTexCoord = "TEXCOORD_0"
)

// Import reads a glTF 2.0 file (.gltf or .glb) and converts its default scene.
// Only triangle primitives are imported. Base color textures become diffuse
// maps and metallic-roughness textures specular maps.
func Import(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %v: %w", path, err)
	}
	imp := importer{
		doc:    doc,
		dir:    filepath.Dir(path),
		meshes: make(map[int][]int),
		images: make(map[int]TextureRef),
		active: make(map[int]bool),
	}
	scene, err := imp.defaultScene()
	if err != nil {
		return nil, fmt.Errorf("import %v: %w", path, err)
	}
	log.Debugf("imported %v: %v meshes", path, len(scene.Meshes))
	return scene, nil
}

type importer struct {
	doc   *gltf.Document
	dir    string
	result Scene
	// glTF mesh index -> indexes of the converted primitives
	meshes map[int][]int
	// glTF image index -> resolved reference
	images map[int]TextureRef
	// nodes on the current path, for cycle detection
	active map[int]bool
}

func (imp *importer) defaultScene() (*Scene, error) {
	if len(imp.doc.Scenes) == 0 {
		return nil, ErrNoScene
	}
	index := 0
	if imp.doc.Scene != nil {
		index = int(*imp.doc.Scene)
	}
	if index >= len(imp.doc.Scenes) {
		return nil, fmt.Errorf("%w: scene %v", ErrBadIndex, index)
	}
	s := imp.doc.Scenes[index]
	root := &Node{Name: s.Name}
	for _, n := range s.Nodes {
		child, err := imp.node(int(n))
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, child)
	}
	imp.result.Root = root
	return &imp.result, nil
}

func (imp *importer) node(index int) (*Node, error) {
	if index >= len(imp.doc.Nodes) {
		return nil, fmt.Errorf("%w: node %v", ErrBadIndex, index)
	}
	if imp.active[index] {
		return nil, fmt.Errorf("%w: node %v", ErrNodeCycle, index)
	}
	imp.active[index] = true
	defer delete(imp.active, index)

	n := imp.doc.Nodes[index]
	node := &Node{Name: n.Name}
	if n.Mesh != nil {
		meshes, err := imp.mesh(int(*n.Mesh))
		if err != nil {
			return nil, err
		}
		node.Meshes = meshes
	}
	for _, c := range n.Children {
		child, err := imp.node(int(c))
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

func (imp *importer) mesh(index int) ([]int, error) {
	if converted, ok := imp.meshes[index]; ok {
		return converted, nil
	}
	if index >= len(imp.doc.Meshes) {
		return nil, fmt.Errorf("%w: mesh %v", ErrBadIndex, index)
	}
	m := imp.doc.Meshes[index]
	converted := []int{}
	for i, p := range m.Primitives {
		if p.Mode != gltf.PrimitiveTriangles {
			log.Warnf("mesh %q primitive %v: skipping non-triangle mode %v", m.Name, i, p.Mode)
			continue
		}
		data, err := imp.primitive(p)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %v: %w", m.Name, i, err)
		}
		data.Name = m.Name
		converted = append(converted, len(imp.result.Meshes))
		imp.result.Meshes = append(imp.result.Meshes, data)
	}
	imp.meshes[index] = converted
	return converted, nil
}

func (imp *importer) accessor(index uint32) (*gltf.Accessor, error) {
	if int(index) >= len(imp.doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor %v", ErrBadIndex, index)
	}
	return imp.doc.Accessors[index], nil
}

func (imp *importer) primitive(p *gltf.Primitive) (MeshData, error) {
	var data MeshData
	posIndex, ok := p.Attributes[attrPosition]
	if !ok {
		return data, ErrNoPositions
	}
	acr, err := imp.accessor(posIndex)
	if err != nil {
		return data, err
	}
	positions, err := modeler.ReadPosition(imp.doc, acr, nil)
	if err != nil {
		return data, fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if i, ok := p.Attributes[attrNormal]; ok {
		if acr, err = imp.accessor(i); err != nil {
			return data, err
		}
		if normals, err = modeler.ReadNormal(imp.doc, acr, nil); err != nil {
			return data, fmt.Errorf("read normals: %w", err)
		}
	}
	var texCoords [][2]float32
	if i, ok := p.Attributes[attrTexCoord]; ok {
		if acr, err = imp.accessor(i); err != nil {
			return data, err
		}
		if texCoords, err = modeler.ReadTextureCoord(imp.doc, acr, nil); err != nil {
			return data, fmt.Errorf("read texture coordinates: %w", err)
		}
	}

	data.Vertices = make([]mesh.Vertex, len(positions))
	for i, pos := range positions {
		v := mesh.Vertex{Position: mgl32.Vec3(pos)}
		if i < len(normals) {
			v.Normal = mgl32.Vec3(normals[i])
		}
		if i < len(texCoords) {
			v.TexCoord = mgl32.Vec2(texCoords[i])
		}
		data.Vertices[i] = v
	}

	if p.Indices != nil {
		if acr, err = imp.accessor(*p.Indices); err != nil {
			return data, err
		}
		if data.Indices, err = modeler.ReadIndices(imp.doc, acr, nil); err != nil {
			return data, fmt.Errorf("read indices: %w", err)
		}
	} else {
		data.Indices = make([]uint32, len(positions))
		for i := range data.Indices {
			data.Indices[i] = uint32(i)
		}
	}
	for _, index := range data.Indices {
		if int(index) >= len(positions) {
			return data, fmt.Errorf("%w: vertex %v", ErrBadIndex, index)
		}
	}

	if p.Material != nil {
		if data.Textures, err = imp.material(int(*p.Material)); err != nil {
			return data, err
		}
	}
	return data, nil
}

func (imp *importer) material(index int) (map[gfx.TextureKind][]TextureRef, error) {
	if index >= len(imp.doc.Materials) {
		return nil, fmt.Errorf("%w: material %v", ErrBadIndex, index)
	}
	textures := make(map[gfx.TextureKind][]TextureRef)
	pbr := imp.doc.Materials[index].PBRMetallicRoughness
	if pbr == nil {
		return textures, nil
	}
	for kind, info := range map[gfx.TextureKind]*gltf.TextureInfo{
		gfx.Diffuse:  pbr.BaseColorTexture,
		gfx.Specular: pbr.MetallicRoughnessTexture,
	} {
		if info == nil {
			continue
		}
		ref, err := imp.texture(int(info.Index))
		if err != nil {
			return nil, err
		}
		textures[kind] = append(textures[kind], ref)
	}
	return textures, nil
}

func (imp *importer) texture(index int) (TextureRef, error) {
	if index >= len(imp.doc.Textures) {
		return TextureRef{}, fmt.Errorf("%w: texture %v", ErrBadIndex, index)
	}
	source := imp.doc.Textures[index].Source
	if source == nil {
		return TextureRef{}, fmt.Errorf("%w: texture %v has no image", ErrBadIndex, index)
	}
	return imp.image(int(*source))
}

// image resolves an image once: URIs relative to the model file become
// paths, data URIs and buffer views are decoded in memory.
func (imp *importer) image(index int) (TextureRef, error) {
	if ref, ok := imp.images[index]; ok {
		return ref, nil
	}
	if index >= len(imp.doc.Images) {
		return TextureRef{}, fmt.Errorf("%w: image %v", ErrBadIndex, index)
	}
	img := imp.doc.Images[index]
	var ref TextureRef
	switch {
	case img.BufferView != nil:
		raw, err := imp.bufferView(int(*img.BufferView))
		if err != nil {
			return ref, err
		}
		if ref, err = decodeEmbedded(index, raw); err != nil {
			return ref, err
		}
	case img.IsEmbeddedResource():
		raw, err := img.MarshalData()
		if err != nil {
			return ref, fmt.Errorf("image %v: %w", index, err)
		}
		if ref, err = decodeEmbedded(index, raw); err != nil {
			return ref, err
		}
	default:
		uri, err := url.PathUnescape(img.URI)
		if err != nil {
			uri = img.URI
		}
		ref.Path = filepath.Join(imp.dir, filepath.FromSlash(uri))
	}
	imp.images[index] = ref
	return ref, nil
}

func (imp *importer) bufferView(index int) ([]byte, error) {
	if index >= len(imp.doc.BufferViews) {
		return nil, fmt.Errorf("%w: buffer view %v", ErrBadIndex, index)
	}
	bv := imp.doc.BufferViews[index]
	if int(bv.Buffer) >= len(imp.doc.Buffers) {
		return nil, fmt.Errorf("%w: buffer %v", ErrBadIndex, bv.Buffer)
	}
	data := imp.doc.Buffers[bv.Buffer].Data
	start := int(bv.ByteOffset)
	end := start + int(bv.ByteLength)
	if end > len(data) {
		return nil, fmt.Errorf("%w: buffer view %v", ErrBadIndex, index)
	}
	return data[start:end], nil
}

func decodeEmbedded(index int, raw []byte) (TextureRef, error) {
	decoded, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return TextureRef{}, fmt.Errorf("decode image %v: %w", index, err)
	}
	return TextureRef{Key: strconv.Itoa(index), Image: decoded}, nil
}
