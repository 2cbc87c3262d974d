package gfx

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gregjohnson2017/glwrap/pkg/log"
)

// Program errors.
const (
	ErrCreateProgram     log.ConstErr = "failed to create program"
	ErrProgramLink       log.ConstErr = "failed to link program"
	ErrUnknownUniform    log.ConstErr = "unknown uniform variable"
	ErrUnknownBlock      log.ConstErr = "unknown uniform block"
	ErrUnassignedBlock   log.ConstErr = "uniform block is not assigned"
	ErrUnassignedUniform log.ConstErr = "uniform variable is not assigned"
)

type textureBinding struct {
	name string
	tex  Texture
}

// Program is a shader program together with the state needed to draw with
// it: attached shaders per stage, assigned uniforms, textures bound lazily to
// texture units and references to shared uniform block storage.
//
// Uniform locations are only valid for one linked state, so attaching a
// shader forgets every plain uniform and texture assignment. Block storage is
// shared by name between programs and survives relinking.
type Program struct {
	id       uint32
	shaders  map[uint32][]*Shader
	linked   bool
	vao      *VertexArray
	assigned map[string]struct{}
	textures []textureBinding
	blocks   map[string]*sharedBlock
}

// NewProgram creates an empty program.
func NewProgram() (*Program, error) {
	id := drv.CreateProgram()
	if id == 0 {
		return nil, ErrCreateProgram
	}
	return &Program{
		id:       id,
		shaders:  make(map[uint32][]*Shader),
		assigned: make(map[string]struct{}),
		blocks:   make(map[string]*sharedBlock),
	}, nil
}

// AttachOption changes how AttachShader treats shaders already attached.
type AttachOption func(*attachOptions)

type attachOptions struct {
	accumulate bool
}

// Accumulate keeps the shaders already attached for the stage instead of
// replacing them.
func Accumulate() AttachOption {
	return func(o *attachOptions) {
		o.accumulate = true
	}
}

// AttachShaderFile reads the shader source at path and attaches it.
func (p *Program) AttachShaderFile(stage uint32, path string, opts ...AttachOption) error {
	source, err := os.ReadFile(path)
	if err != nil {
		log.Warnf("read %v failed: %v", path, err)
		return fmt.Errorf("read shader: %w", err)
	}
	return p.AttachShader(stage, string(source), opts...)
}

// AttachShader compiles source as a shader of type stage (ex:
// gl.VERTEX_SHADER) and attaches it, replacing earlier shaders of the same
// stage unless Accumulate is given.
func (p *Program) AttachShader(stage uint32, source string, opts ...AttachOption) error {
	var o attachOptions
	for _, opt := range opts {
		opt(&o)
	}
	s, err := NewShader(source, stage)
	if err != nil {
		return err
	}
	drv.AttachShader(p.id, s.id)
	if err = checkError("glAttachShader"); err != nil {
		s.Delete()
		return err
	}
	if !o.accumulate {
		p.detachStage(stage)
	}
	p.shaders[stage] = append(p.shaders[stage], s)
	p.assigned = make(map[string]struct{})
	p.ClearTextures()
	p.linked = false
	return nil
}

func (p *Program) detachStage(stage uint32) {
	for _, s := range p.shaders[stage] {
		drv.DetachShader(p.id, s.id)
		_ = checkError("glDetachShader")
		s.Delete()
	}
	delete(p.shaders, stage)
}

// SetVertexArray sets the vertex array bound by Use.
func (p *Program) SetVertexArray(va *VertexArray) {
	p.vao = va
}

// ClearTextures forgets every texture assignment.
func (p *Program) ClearTextures() {
	p.textures = nil
}

// TextureUnits returns the sampler variables in texture unit order.
func (p *Program) TextureUnits() []string {
	names := make([]string, len(p.textures))
	for i, tb := range p.textures {
		names[i] = tb.name
	}
	return names
}

// SetUniform assigns value to the uniform variable name. Supported values
// are int32, float32, [3]int32, [3]float32, mgl32.Vec3, mgl32.Vec4,
// mgl32.Mat4 and Texture. Textures are bound to texture units by Use, in the
// order they were last assigned; everything else is uploaded right away.
func (p *Program) SetUniform(name string, value interface{}) error {
	switch v := value.(type) {
	case Texture:
		p.assignTexture(name, v)
		return nil
	case int32:
		return p.setUniformByCallback(name, func(location int32) {
			drv.Uniform1i(location, v)
		})
	case float32:
		return p.setUniformByCallback(name, func(location int32) {
			drv.Uniform1f(location, v)
		})
	case [3]int32:
		return p.setUniformByCallback(name, func(location int32) {
			drv.Uniform3i(location, v[0], v[1], v[2])
		})
	case [3]float32:
		return p.setUniformByCallback(name, func(location int32) {
			drv.Uniform3f(location, v[0], v[1], v[2])
		})
	case mgl32.Vec3:
		return p.setUniformByCallback(name, func(location int32) {
			drv.Uniform3f(location, v[0], v[1], v[2])
		})
	case mgl32.Vec4:
		return p.setUniformByCallback(name, func(location int32) {
			drv.Uniform4f(location, v[0], v[1], v[2], v[3])
		})
	case mgl32.Mat4:
		return p.setUniformByCallback(name, func(location int32) {
			drv.UniformMatrix4fv(location, v)
		})
	}
	log.Warnf("unsupported value type %T for %q", value, name)
	return fmt.Errorf("%w: %T", ErrUnsupportedType, value)
}

func (p *Program) assignTexture(name string, tex Texture) {
	for i, tb := range p.textures {
		if tb.name == name {
			p.textures = append(p.textures[:i], p.textures[i+1:]...)
			break
		}
	}
	p.textures = append(p.textures, textureBinding{name: name, tex: tex})
}

func (p *Program) setUniformByCallback(name string, set func(location int32)) error {
	if err := p.install(); err != nil {
		return err
	}
	location := drv.GetUniformLocation(p.id, name)
	if location == -1 {
		log.Warnf("glGetUniformLocation failed: %v", name)
		return fmt.Errorf("%w: %q", ErrUnknownUniform, name)
	}
	set(location)
	if err := checkError("glUniform"); err != nil {
		return fmt.Errorf("set %q: %w", name, err)
	}
	p.assigned[name] = struct{}{}
	return nil
}

// SetUniformOfBlock writes value into the member variable of the uniform
// block blockName. The first program to write a block name allocates its
// storage; every other program declaring that name shares it. Values are
// encoded as by UniformBuffer.Write.
func (p *Program) SetUniformOfBlock(blockName, variable string, value interface{}) error {
	data, err := encodeUniform(value)
	if err != nil {
		log.Warnf("unsupported value type %T for %q", value, variable)
		return err
	}
	if err = p.install(); err != nil {
		return err
	}
	b, blockIndex, err := p.uniformBlock(blockName)
	if err != nil {
		return err
	}

	index := drv.GetUniformIndex(p.id, variable)
	if err = checkError("glGetUniformIndices"); err != nil {
		return err
	}
	if index == gl.INVALID_INDEX {
		log.Warnf("glGetUniformIndices failed: %v", variable)
		return fmt.Errorf("%w: %q", ErrUnknownUniform, variable)
	}
	if owner := drv.GetActiveUniformiv(p.id, index, gl.UNIFORM_BLOCK_INDEX); owner != int32(blockIndex) {
		log.Warnf("%v is not a member of uniform block %v", variable, blockName)
		return fmt.Errorf("%w: %q in block %q", ErrUnknownUniform, variable, blockName)
	}
	offset := drv.GetActiveUniformiv(p.id, index, gl.UNIFORM_OFFSET)
	if err = checkError("glGetActiveUniformsiv"); err != nil {
		return err
	}
	if err = b.ubo.WritePart(int(offset), data); err != nil {
		return fmt.Errorf("set %q of block %q: %w", variable, blockName, err)
	}
	b.vars[variable] = struct{}{}
	return nil
}

// uniformBlock resolves the storage of a block declared by this program,
// allocating it when no program holds it yet.
func (p *Program) uniformBlock(name string) (*sharedBlock, uint32, error) {
	index := drv.GetUniformBlockIndex(p.id, name)
	if index == gl.INVALID_INDEX {
		log.Warnf("glGetUniformBlockIndex failed: %v", name)
		return nil, 0, fmt.Errorf("%w: %q", ErrUnknownBlock, name)
	}
	if b, ok := p.blocks[name]; ok {
		return b, index, nil
	}
	if b := blocks.lookup(name); b != nil {
		blocks.acquire(b)
		p.blocks[name] = b
		return b, index, nil
	}

	size := drv.GetActiveUniformBlockiv(p.id, index, gl.UNIFORM_BLOCK_DATA_SIZE)
	if err := checkError("glGetActiveUniformBlockiv"); err != nil {
		return nil, 0, err
	}
	if size <= 0 {
		return nil, 0, fmt.Errorf("%w: %q has no data", ErrUnknownBlock, name)
	}
	b, err := blocks.create(name, int(size))
	if err != nil {
		return nil, 0, err
	}
	p.blocks[name] = b
	return b, index, nil
}

// Use makes the program current for drawing. It links if needed, binds the
// vertex array, binds textures to units 0, 1, ... in assignment order and
// binds every active uniform block to binding points 0, 1, ... in name order.
// Blocks not yet written by any program are an error.
func (p *Program) Use() error {
	if err := p.install(); err != nil {
		return err
	}
	if p.vao != nil {
		if err := p.vao.Use(); err != nil {
			return err
		}
	}

	for unit, tb := range p.textures {
		if err := tb.tex.Use(uint32(unit)); err != nil {
			return err
		}
		u := int32(unit)
		if err := p.setUniformByCallback(tb.name, func(location int32) {
			drv.Uniform1i(location, u)
		}); err != nil {
			return err
		}
	}

	names, err := p.activeBlockNames()
	if err != nil {
		return err
	}
	for _, name := range names {
		if _, ok := p.blocks[name]; ok {
			continue
		}
		b := blocks.lookup(name)
		if b == nil {
			log.Warnf("uniform block %q is not assigned", name)
			return fmt.Errorf("%w: %q", ErrUnassignedBlock, name)
		}
		blocks.acquire(b)
		p.blocks[name] = b
	}

	sort.Strings(names)
	for binding, name := range names {
		index := drv.GetUniformBlockIndex(p.id, name)
		if index == gl.INVALID_INDEX {
			log.Warnf("glGetUniformBlockIndex failed: %v", name)
			return fmt.Errorf("%w: %q", ErrUnknownBlock, name)
		}
		drv.UniformBlockBinding(p.id, index, uint32(binding))
		if err = checkError("glUniformBlockBinding"); err != nil {
			return err
		}
		if err = p.blocks[name].ubo.Use(uint32(binding)); err != nil {
			return err
		}
	}

	if debugChecks {
		return p.checkUniformAssignment(names)
	}
	return nil
}

func (p *Program) link() error {
	if p.linked {
		return nil
	}
	drv.LinkProgram(p.id)
	if drv.GetProgramiv(p.id, gl.LINK_STATUS) == gl.FALSE {
		infoLog := drv.GetProgramInfoLog(p.id)
		log.Warnf("glLinkProgram failed: %v", infoLog)
		return fmt.Errorf("%w: %v", ErrProgramLink, infoLog)
	}
	p.linked = true
	return p.releaseStaleBlocks()
}

// releaseStaleBlocks drops references to blocks the relinked sources no
// longer declare.
func (p *Program) releaseStaleBlocks() error {
	if len(p.blocks) == 0 {
		return nil
	}
	names, err := p.activeBlockNames()
	if err != nil {
		return err
	}
	active := make(map[string]struct{}, len(names))
	for _, name := range names {
		active[name] = struct{}{}
	}
	for name, b := range p.blocks {
		if _, ok := active[name]; !ok {
			blocks.release(b)
			delete(p.blocks, name)
		}
	}
	return nil
}

func (p *Program) install() error {
	if err := p.link(); err != nil {
		return err
	}
	drv.UseProgram(p.id)
	return checkError("glUseProgram")
}

func (p *Program) activeBlockNames() ([]string, error) {
	count := drv.GetProgramiv(p.id, gl.ACTIVE_UNIFORM_BLOCKS)
	if err := checkError("glGetProgramiv"); err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for i := int32(0); i < count; i++ {
		name := drv.GetActiveUniformBlockName(p.id, uint32(i))
		if err := checkError("glGetActiveUniformBlockName"); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// checkUniformAssignment fails on the first active uniform that was neither
// set on this program nor written into one of its blocks.
func (p *Program) checkUniformAssignment(blockNames []string) error {
	count := drv.GetProgramiv(p.id, gl.ACTIVE_UNIFORMS)
	if err := checkError("glGetProgramiv"); err != nil {
		return err
	}
	for i := int32(0); i < count; i++ {
		name := drv.GetActiveUniformName(p.id, uint32(i))
		if err := checkError("glGetActiveUniform"); err != nil {
			return err
		}
		if p.isAssigned(name, blockNames) || p.isAssigned(strings.TrimSuffix(name, "[0]"), blockNames) {
			continue
		}
		log.Warnf("uniform variable %q is not assigned", name)
		return fmt.Errorf("%w: %q", ErrUnassignedUniform, name)
	}
	return nil
}

func (p *Program) isAssigned(name string, blockNames []string) bool {
	if _, ok := p.assigned[name]; ok {
		return true
	}
	for _, blockName := range blockNames {
		if _, ok := p.blocks[blockName].vars[name]; ok {
			return true
		}
	}
	return false
}

// ID returns the driver name of the program.
func (p *Program) ID() uint32 {
	return p.id
}

// Delete releases the program's uniform block references, then deletes its
// shaders and the program itself.
func (p *Program) Delete() {
	if p.id == 0 {
		return
	}
	for name, b := range p.blocks {
		blocks.release(b)
		delete(p.blocks, name)
	}
	for stage := range p.shaders {
		p.detachStage(stage)
	}
	drv.DeleteProgram(p.id)
	p.id = 0
	p.linked = false
}
