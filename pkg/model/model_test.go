package model

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gregjohnson2017/glwrap/pkg/gfx"
	"github.com/gregjohnson2017/glwrap/pkg/gfx/gfxtest"
	"github.com/gregjohnson2017/glwrap/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFragment = `#version 410 core
uniform sampler2D diffuse1;
void main() {}
`

var diffuseVars = map[gfx.TextureKind][]string{gfx.Diffuse: {"diffuse1"}}

func useFakeDriver(t *testing.T) *gfxtest.Driver {
	t.Helper()
	d := gfxtest.New()
	prev := gfx.SetDriver(d)
	t.Cleanup(func() { gfx.SetDriver(prev) })
	return d
}

func newTestProgram(t *testing.T) *gfx.Program {
	t.Helper()
	p, err := gfx.NewProgram()
	require.NoError(t, err)
	require.NoError(t, p.AttachShader(gl.VERTEX_SHADER, gfx.ScreenVertex))
	require.NoError(t, p.AttachShader(gl.FRAGMENT_SHADER, testFragment))
	t.Cleanup(p.Delete)
	return p
}

func solid(width, height int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

func writePNG(t *testing.T, dir, name string, width, height int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	img.SetNRGBA(0, 0, color.NRGBA{G: 255, A: 255})
	require.NoError(t, png.Encode(f, img))
	return path
}

func triangle() ([]mesh.Vertex, []uint32) {
	return []mesh.Vertex{
		{Position: mgl32.Vec3{0, 0, 0}},
		{Position: mgl32.Vec3{1, 0, 0}},
		{Position: mgl32.Vec3{0, 1, 0}},
	}, []uint32{0, 1, 2}
}

func meshData(refs ...TextureRef) MeshData {
	vertices, indices := triangle()
	data := MeshData{Vertices: vertices, Indices: indices}
	if len(refs) > 0 {
		data.Textures = map[gfx.TextureKind][]TextureRef{gfx.Diffuse: refs}
	}
	return data
}

func TestBuildSharesTextures(t *testing.T) {
	d := useFakeDriver(t)
	dir := t.TempDir()
	path := writePNG(t, dir, "wood.png", 2, 2)
	embedded := TextureRef{Key: "0", Image: solid(4, 1)}

	scene := &Scene{
		Root: &Node{Meshes: []int{0, 1, 2}},
		Meshes: []MeshData{
			meshData(TextureRef{Path: path}),
			meshData(TextureRef{Path: path}, embedded),
			meshData(embedded),
		},
	}
	m, err := Build(scene, gfx.DefaultTextureConfig())
	require.NoError(t, err)

	require.Len(t, m.Textures(), 2)
	require.Len(t, m.Meshes(), 3)
	file := m.Textures()[0]
	assert.Equal(t, int32(2), file.Width())
	assert.Equal(t, int32(4), m.Textures()[1].Width())
	assert.Same(t, file, m.Meshes()[0].Textures(gfx.Diffuse)[0])
	assert.Same(t, file, m.Meshes()[1].Textures(gfx.Diffuse)[0])
	assert.Same(t, m.Textures()[1], m.Meshes()[2].Textures(gfx.Diffuse)[0])
	assert.Equal(t, 2, d.Live().Textures)

	m.Delete()
	assert.Equal(t, gfxtest.Counts{}, d.Live())
}

func TestBuildFailureCleansUp(t *testing.T) {
	d := useFakeDriver(t)
	scene := &Scene{
		Root: &Node{Meshes: []int{0, 1}},
		Meshes: []MeshData{
			meshData(TextureRef{Key: "0", Image: solid(1, 1)}),
			meshData(TextureRef{Path: filepath.Join(t.TempDir(), "missing.png")}),
		},
	}
	_, err := Build(scene, gfx.DefaultTextureConfig())
	require.Error(t, err)
	assert.Equal(t, gfxtest.Counts{}, d.Live())
}

func TestBuildBadMeshIndex(t *testing.T) {
	d := useFakeDriver(t)
	scene := &Scene{
		Root:   &Node{Children: []*Node{{Name: "broken", Meshes: []int{3}}}},
		Meshes: []MeshData{meshData()},
	}
	_, err := Build(scene, gfx.DefaultTextureConfig())
	assert.ErrorIs(t, err, ErrBadIndex)
	assert.Equal(t, gfxtest.Counts{}, d.Live())
}

func TestDrawPreOrder(t *testing.T) {
	d := useFakeDriver(t)
	tex := TextureRef{Key: "0", Image: solid(1, 1)}
	scene := &Scene{
		Root: &Node{
			Meshes: []int{0},
			Children: []*Node{
				{Meshes: []int{1}, Children: []*Node{{Meshes: []int{2}}}},
				{Meshes: []int{0}},
			},
		},
		Meshes: []MeshData{meshData(tex), meshData(tex), meshData(tex)},
	}
	m, err := Build(scene, gfx.DefaultTextureConfig())
	require.NoError(t, err)
	defer m.Delete()
	p := newTestProgram(t)

	require.NoError(t, m.Draw(p, diffuseVars))

	draws := d.Draws()
	require.Len(t, draws, 4)
	// meshes are uploaded in order, so their vertex array names ascend
	assert.Less(t, draws[0].VertexArray, draws[1].VertexArray)
	assert.Less(t, draws[1].VertexArray, draws[2].VertexArray)
	assert.Equal(t, draws[0].VertexArray, draws[3].VertexArray)
	for _, draw := range draws {
		assert.Equal(t, int32(3), draw.Count)
	}
}

func TestDrawStopsAtFirstError(t *testing.T) {
	d := useFakeDriver(t)
	tex := TextureRef{Key: "0", Image: solid(1, 1)}
	scene := &Scene{
		Root: &Node{
			Meshes:   []int{0},
			Children: []*Node{{Name: "bare", Meshes: []int{1}}, {Meshes: []int{0}}},
		},
		Meshes: []MeshData{meshData(tex), meshData()},
	}
	m, err := Build(scene, gfx.DefaultTextureConfig())
	require.NoError(t, err)
	defer m.Delete()

	err = m.Draw(newTestProgram(t), diffuseVars)
	assert.ErrorIs(t, err, mesh.ErrNoTexture)
	assert.Contains(t, err.Error(), "bare")
	assert.Len(t, d.Draws(), 1)
}

func TestDrawEmptyModel(t *testing.T) {
	useFakeDriver(t)
	m, err := Build(&Scene{}, gfx.DefaultTextureConfig())
	require.NoError(t, err)
	assert.NoError(t, m.Draw(newTestProgram(t), diffuseVars))
	m.Delete()
}

func TestFillMissing(t *testing.T) {
	d := useFakeDriver(t)
	tex := TextureRef{Key: "0", Image: solid(1, 1)}
	scene := &Scene{
		Root:   &Node{Meshes: []int{0, 1}},
		Meshes: []MeshData{meshData(tex), meshData()},
	}
	m, err := Build(scene, gfx.DefaultTextureConfig())
	require.NoError(t, err)

	white, err := gfx.NewTextureFromImage(solid(1, 1), gfx.DefaultTextureConfig())
	require.NoError(t, err)
	assert.Equal(t, 1, m.FillMissing(gfx.Diffuse, white))
	assert.Equal(t, 2, m.FillMissing(gfx.Specular, white))
	assert.Same(t, white, m.Meshes()[1].Textures(gfx.Diffuse)[0])
	require.NoError(t, m.Draw(newTestProgram(t), diffuseVars))
	assert.Len(t, d.Draws(), 2)

	m.Delete()
	assert.Equal(t, 1, d.Live().Textures, "fallback stays with the caller")
	white.Delete()
}
