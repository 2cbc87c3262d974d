// Package viewer renders a model, with an optional skybox, into an offscreen
// framebuffer and shows it on a screen quad, driven by a fly camera.
package viewer

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gregjohnson2017/glwrap/pkg/camera"
	"github.com/gregjohnson2017/glwrap/pkg/config"
	"github.com/gregjohnson2017/glwrap/pkg/font"
	"github.com/gregjohnson2017/glwrap/pkg/gfx"
	"github.com/gregjohnson2017/glwrap/pkg/log"
	"github.com/gregjohnson2017/glwrap/pkg/model"
	"github.com/gregjohnson2017/glwrap/pkg/window"
)

// Block and variable names of the default shaders.
const (
	MatricesBlock = "Matrices"
	projectionVar = "projection"
	viewVar       = "view"
	modelVar      = "model"
	viewPosVar    = "viewPos"
	skyboxVar     = "skybox"
	screenVar     = "screenTexture"
)

const (
	nearPlane   = 0.1
	farPlane    = 100
	hudFontSize = 16
	hudMargin   = 8
)

// Viewer owns every GPU object of the scene.
type Viewer struct {
	cfg    *config.Config
	cam    *camera.Camera
	model  *model.Model
	vars   map[gfx.TextureKind][]string
	keys   map[window.Key]bool
	quit   bool
	width  int32
	height int32

	modelProg *gfx.Program
	// uniforms the model program declares out of model and viewPos
	modelUniforms map[string]bool
	white         *gfx.Texture2D

	skyProg *gfx.Program
	skybox  *gfx.TextureCubeMap
	skyVAO  *gfx.VertexArray
	skyVBO  *gfx.ArrayBuffer

	screenProg *gfx.Program
	screenVAO  *gfx.VertexArray
	screenVBO  *gfx.ArrayBuffer

	fb    *gfx.Framebuffer
	color *gfx.Texture2D
	depth *gfx.Renderbuffer

	hud *font.Text
	fps float64
}

// New prepares the programs, the skybox and the offscreen targets for a
// drawable of width x height pixels. The viewer takes ownership of mdl.
func New(cfg *config.Config, mdl *model.Model, width, height int32) (*Viewer, error) {
	v := &Viewer{
		cfg:   cfg,
		model: mdl,
		cam:   camera.New(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, -1}),
		vars:  make(map[gfx.TextureKind][]string),
		keys:  make(map[window.Key]bool),
	}
	for kind, names := range map[gfx.TextureKind][]string{
		gfx.Diffuse:  cfg.Textures.Diffuse,
		gfx.Specular: cfg.Textures.Specular,
	} {
		if len(names) > 0 {
			v.vars[kind] = names
		}
	}
	if err := v.init(width, height); err != nil {
		v.Delete()
		return nil, err
	}
	return v, nil
}

func (v *Viewer) init(width, height int32) error {
	var err error
	if v.modelProg, err = v.newModelProgram(); err != nil {
		return err
	}
	if err = v.probeModelUniforms(); err != nil {
		return err
	}
	if v.white, err = gfx.NewTextureFromImage(whitePixel(), gfx.TextureConfig{}); err != nil {
		return err
	}
	for kind := range v.vars {
		if v.model == nil {
			break
		}
		if n := v.model.FillMissing(kind, v.white); n > 0 {
			log.Debugf("%v meshes without a %v texture use white", n, kind)
		}
	}

	if faces, ok := v.cfg.SkyboxFaces(); ok {
		if err = v.initSkybox(faces); err != nil {
			return err
		}
	}
	if v.screenProg, err = newProgram(gfx.ScreenVertex, gfx.ScreenFragment); err != nil {
		return err
	}
	if v.screenVAO, v.screenVBO, err = newVertices(screenVertices, 2, 2); err != nil {
		return err
	}
	v.screenProg.SetVertexArray(v.screenVAO)
	if v.cfg.Window.HUD {
		atlas, err := font.Default(hudFontSize)
		if err != nil {
			return err
		}
		if v.hud, err = font.NewText(atlas); err != nil {
			return err
		}
	}
	return v.Resize(width, height)
}

func (v *Viewer) newModelProgram() (*gfx.Program, error) {
	if v.cfg.Shaders.Vertex == "" {
		return newProgram(gfx.MeshVertex, gfx.MeshFragment)
	}
	p, err := gfx.NewProgram()
	if err != nil {
		return nil, err
	}
	if err = p.AttachShaderFile(gl.VERTEX_SHADER, v.cfg.Shaders.Vertex); err != nil {
		p.Delete()
		return nil, err
	}
	if err = p.AttachShaderFile(gl.FRAGMENT_SHADER, v.cfg.Shaders.Fragment); err != nil {
		p.Delete()
		return nil, err
	}
	return p, nil
}

// probeModelUniforms finds out which of the optional per-frame uniforms the
// model program declares, so custom shaders may leave them out.
func (v *Viewer) probeModelUniforms() error {
	v.modelUniforms = make(map[string]bool)
	for name, value := range map[string]interface{}{
		modelVar:   mgl32.Ident4(),
		viewPosVar: v.cam.Position(),
	} {
		err := v.modelProg.SetUniform(name, value)
		switch {
		case err == nil:
			v.modelUniforms[name] = true
		case errors.Is(err, gfx.ErrUnknownUniform):
			log.Debugf("model program has no %q uniform", name)
		default:
			return err
		}
	}
	return nil
}

func (v *Viewer) initSkybox(faces [6]string) error {
	var err error
	if v.skybox, err = gfx.NewTextureCubeMap(faces, gfx.TextureConfig{}); err != nil {
		return err
	}
	if v.skyProg, err = newProgram(gfx.SkyboxVertex, gfx.SkyboxFragment); err != nil {
		return err
	}
	if v.skyVAO, v.skyVBO, err = newVertices(skyboxVertices, 3); err != nil {
		return err
	}
	v.skyProg.SetVertexArray(v.skyVAO)
	return v.skyProg.SetUniform(skyboxVar, v.skybox)
}

func newProgram(vertex, fragment string) (*gfx.Program, error) {
	p, err := gfx.NewProgram()
	if err != nil {
		return nil, err
	}
	if err = p.AttachShader(gl.VERTEX_SHADER, vertex); err != nil {
		p.Delete()
		return nil, err
	}
	if err = p.AttachShader(gl.FRAGMENT_SHADER, fragment); err != nil {
		p.Delete()
		return nil, err
	}
	return p, nil
}

// newVertices uploads interleaved float attributes of the given sizes to
// consecutive locations starting at 0.
func newVertices(data []float32, sizes ...int32) (*gfx.VertexArray, *gfx.ArrayBuffer, error) {
	vao, err := gfx.NewVertexArray(true)
	if err != nil {
		return nil, nil, err
	}
	vbo, err := gfx.NewArrayBuffer()
	if err != nil {
		vao.Delete()
		return nil, nil, err
	}
	fail := func(err error) (*gfx.VertexArray, *gfx.ArrayBuffer, error) {
		vbo.Delete()
		vao.Delete()
		return nil, nil, err
	}
	if err = vbo.Write(data); err != nil {
		return fail(err)
	}
	var stride int32
	for _, size := range sizes {
		stride += size
	}
	offset := 0
	for i, size := range sizes {
		if err = vbo.VertexAttribPointerSimpleOffset(uint32(i), size, stride, offset); err != nil {
			return fail(err)
		}
		offset += int(size)
	}
	if err = vao.Unuse(); err != nil {
		return fail(err)
	}
	return vao, vbo, nil
}

func whitePixel() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

// Resize recreates the offscreen targets for a new drawable size.
func (v *Viewer) Resize(width, height int32) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: drawable %vx%v", config.ErrInvalidConfig, width, height)
	}
	v.deleteTargets()
	var err error
	if v.color, err = gfx.NewTexture2D(width, height); err != nil {
		return err
	}
	if v.depth, err = gfx.NewDepthStencilRenderbuffer(width, height); err != nil {
		return err
	}
	if v.fb, err = gfx.NewFramebuffer(); err != nil {
		return err
	}
	v.fb.AddColorAttachment(v.color)
	v.fb.SetDepthStencilAttachment(v.depth)
	if err = v.fb.Use(); err != nil {
		return err
	}
	if err = gfx.UseDefault(); err != nil {
		return err
	}
	v.width, v.height = width, height
	return v.screenProg.SetUniform(screenVar, v.color)
}

func (v *Viewer) deleteTargets() {
	if v.fb != nil {
		v.fb.Delete()
		v.fb = nil
	}
	if v.color != nil {
		v.color.Delete()
		v.color = nil
	}
	if v.depth != nil {
		v.depth.Delete()
		v.depth = nil
	}
}

// Camera returns the viewer's camera.
func (v *Viewer) Camera() *camera.Camera {
	return v.cam
}

// Quit reports whether the user asked to leave.
func (v *Viewer) Quit() bool {
	return v.quit
}

// Delete frees everything the viewer owns, including the model.
func (v *Viewer) Delete() {
	v.deleteTargets()
	for _, p := range []*gfx.Program{v.modelProg, v.skyProg, v.screenProg} {
		if p != nil {
			p.Delete()
		}
	}
	for _, vbo := range []*gfx.ArrayBuffer{v.skyVBO, v.screenVBO} {
		if vbo != nil {
			vbo.Delete()
		}
	}
	for _, vao := range []*gfx.VertexArray{v.skyVAO, v.screenVAO} {
		if vao != nil {
			vao.Delete()
		}
	}
	if v.skybox != nil {
		v.skybox.Delete()
	}
	if v.model != nil {
		v.model.Delete()
	}
	if v.white != nil {
		v.white.Delete()
	}
	if v.hud != nil {
		v.hud.Delete()
	}
	*v = Viewer{cfg: v.cfg, cam: v.cam}
}
