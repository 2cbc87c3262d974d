package gfxtest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Shader is the state of a shader object.
type Shader struct {
	ID       uint32
	Stage    uint32
	Source   string
	Compiled bool
	InfoLog  string

	reflection reflection
	attached   int
	deleted    bool
}

// Program is the state of a program object. Values holds the last value set
// for each plain uniform, by reported name. Bindings maps each block name to
// its binding point.
type Program struct {
	ID        uint32
	Attached  []uint32
	Linked    bool
	LinkCount int
	InfoLog   string
	Values    map[string]interface{}
	Bindings  map[string]uint32

	uniforms []activeUniform
	blocks   []activeBlock
}

type activeUniform struct {
	declaration
	block    int32
	offset   int32
	location int32
}

type activeBlock struct {
	name string
	size int
}

func (d *Driver) CreateShader(xtype uint32) uint32 {
	d.called("CreateShader")
	switch xtype {
	case gl.VERTEX_SHADER, gl.FRAGMENT_SHADER, gl.GEOMETRY_SHADER:
	default:
		d.raise(gl.INVALID_ENUM)
		return 0
	}
	id := d.genID()
	d.shaders[id] = &Shader{ID: id, Stage: xtype}
	return id
}

func (d *Driver) ShaderSource(shader uint32, source string) {
	d.called("ShaderSource")
	s := d.shaders[shader]
	if s == nil {
		d.raise(gl.INVALID_VALUE)
		return
	}
	s.Source = source
}

func (d *Driver) CompileShader(shader uint32) {
	d.called("CompileShader")
	s := d.shaders[shader]
	if s == nil {
		d.raise(gl.INVALID_VALUE)
		return
	}
	r, err := reflect(s.Source)
	if err != nil {
		s.Compiled = false
		s.InfoLog = err.Error()
		return
	}
	s.Compiled = true
	s.InfoLog = ""
	s.reflection = r
}

func (d *Driver) GetShaderiv(shader, pname uint32) int32 {
	d.called("GetShaderiv")
	s := d.shaders[shader]
	if s == nil {
		d.raise(gl.INVALID_VALUE)
		return 0
	}
	switch pname {
	case gl.COMPILE_STATUS:
		if s.Compiled {
			return gl.TRUE
		}
		return gl.FALSE
	case gl.SHADER_TYPE:
		return int32(s.Stage)
	case gl.INFO_LOG_LENGTH:
		if s.InfoLog == "" {
			return 0
		}
		return int32(len(s.InfoLog) + 1)
	}
	d.raise(gl.INVALID_ENUM)
	return 0
}

func (d *Driver) GetShaderInfoLog(shader uint32) string {
	d.called("GetShaderInfoLog")
	if s := d.shaders[shader]; s != nil {
		return s.InfoLog
	}
	d.raise(gl.INVALID_VALUE)
	return ""
}

func (d *Driver) DeleteShader(shader uint32) {
	d.called("DeleteShader")
	s := d.shaders[shader]
	if s == nil {
		return
	}
	if s.attached > 0 {
		s.deleted = true
		return
	}
	delete(d.shaders, shader)
}

func (d *Driver) CreateProgram() uint32 {
	d.called("CreateProgram")
	id := d.genID()
	d.programs[id] = &Program{
		ID:       id,
		Values:   make(map[string]interface{}),
		Bindings: make(map[string]uint32),
	}
	return id
}

func (d *Driver) DeleteProgram(program uint32) {
	d.called("DeleteProgram")
	p := d.programs[program]
	if p == nil {
		return
	}
	for _, id := range append([]uint32(nil), p.Attached...) {
		d.DetachShader(program, id)
	}
	delete(d.programs, program)
	if d.current == program {
		d.current = 0
	}
}

func (d *Driver) AttachShader(program, shader uint32) {
	d.called("AttachShader")
	p, s := d.programs[program], d.shaders[shader]
	if p == nil || s == nil {
		d.raise(gl.INVALID_VALUE)
		return
	}
	for _, id := range p.Attached {
		if id == shader {
			d.raise(gl.INVALID_OPERATION)
			return
		}
	}
	p.Attached = append(p.Attached, shader)
	s.attached++
}

func (d *Driver) DetachShader(program, shader uint32) {
	d.called("DetachShader")
	p, s := d.programs[program], d.shaders[shader]
	if p == nil || s == nil {
		d.raise(gl.INVALID_VALUE)
		return
	}
	for i, id := range p.Attached {
		if id != shader {
			continue
		}
		p.Attached = append(p.Attached[:i], p.Attached[i+1:]...)
		s.attached--
		if s.deleted && s.attached == 0 {
			delete(d.shaders, shader)
		}
		return
	}
	d.raise(gl.INVALID_OPERATION)
}

func (d *Driver) LinkProgram(program uint32) {
	d.called("LinkProgram")
	p := d.programs[program]
	if p == nil {
		d.raise(gl.INVALID_VALUE)
		return
	}
	p.LinkCount++
	p.Linked = false
	p.Values = make(map[string]interface{})
	p.Bindings = make(map[string]uint32)
	p.uniforms, p.blocks = nil, nil
	uniforms, blocks, err := d.link(p)
	if err != nil {
		p.InfoLog = err.Error()
		return
	}
	p.InfoLog = ""
	p.uniforms, p.blocks = uniforms, blocks
	p.Linked = true
}

// link merges the declarations of every attached shader. Plain uniforms are
// reported sorted by name, followed by block members in block order.
func (d *Driver) link(p *Program) ([]activeUniform, []activeBlock, error) {
	if len(p.Attached) == 0 {
		return nil, nil, fmt.Errorf("error: no shaders attached")
	}
	plain := make(map[string]declaration)
	var blockOrder []string
	blockDecls := make(map[string]blockDeclaration)
	for _, id := range p.Attached {
		s := d.shaders[id]
		if !s.Compiled {
			return nil, nil, fmt.Errorf("error: shader %v is not compiled", id)
		}
		for _, u := range s.reflection.uniforms {
			if prev, ok := plain[u.name]; ok && prev != u {
				return nil, nil, fmt.Errorf("error: uniform %v declared with different types", u.name)
			}
			plain[u.name] = u
		}
		for _, b := range s.reflection.blocks {
			prev, ok := blockDecls[b.name]
			if !ok {
				blockOrder = append(blockOrder, b.name)
				blockDecls[b.name] = b
				continue
			}
			if !sameMembers(prev.members, b.members) {
				return nil, nil, fmt.Errorf("error: uniform block %v declared with different members", b.name)
			}
		}
	}

	names := make([]string, 0, len(plain))
	for name := range plain {
		names = append(names, name)
	}
	sort.Strings(names)
	var uniforms []activeUniform
	for i, name := range names {
		uniforms = append(uniforms, activeUniform{declaration: plain[name], block: -1, offset: -1, location: int32(i)})
	}
	var blocks []activeBlock
	for i, name := range blockOrder {
		b := blockDecls[name]
		offsets, size := std140(b.members)
		for j, m := range b.members {
			if b.instance != "" {
				m.name = b.name + "." + m.name
			}
			uniforms = append(uniforms, activeUniform{declaration: m, block: int32(i), offset: int32(offsets[j]), location: -1})
		}
		blocks = append(blocks, activeBlock{name: name, size: size})
	}
	return uniforms, blocks, nil
}

func sameMembers(a, b []declaration) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (d *Driver) GetProgramiv(program, pname uint32) int32 {
	d.called("GetProgramiv")
	p := d.programs[program]
	if p == nil {
		d.raise(gl.INVALID_VALUE)
		return 0
	}
	switch pname {
	case gl.LINK_STATUS:
		if p.Linked {
			return gl.TRUE
		}
		return gl.FALSE
	case gl.ATTACHED_SHADERS:
		return int32(len(p.Attached))
	case gl.ACTIVE_UNIFORMS:
		return int32(len(p.uniforms))
	case gl.ACTIVE_UNIFORM_BLOCKS:
		return int32(len(p.blocks))
	case gl.INFO_LOG_LENGTH:
		if p.InfoLog == "" {
			return 0
		}
		return int32(len(p.InfoLog) + 1)
	}
	d.raise(gl.INVALID_ENUM)
	return 0
}

func (d *Driver) GetProgramInfoLog(program uint32) string {
	d.called("GetProgramInfoLog")
	if p := d.programs[program]; p != nil {
		return p.InfoLog
	}
	d.raise(gl.INVALID_VALUE)
	return ""
}

func (d *Driver) UseProgram(program uint32) {
	d.called("UseProgram")
	if program != 0 {
		p := d.programs[program]
		if p == nil {
			d.raise(gl.INVALID_VALUE)
			return
		}
		if !p.Linked {
			d.raise(gl.INVALID_OPERATION)
			return
		}
	}
	d.current = program
}

// linked returns the program named id if it exists and is linked, raising
// the error a driver would otherwise.
func (d *Driver) linked(id uint32) *Program {
	p := d.programs[id]
	if p == nil {
		d.raise(gl.INVALID_VALUE)
		return nil
	}
	if !p.Linked {
		d.raise(gl.INVALID_OPERATION)
		return nil
	}
	return p
}

func (d *Driver) GetUniformLocation(program uint32, name string) int32 {
	d.called("GetUniformLocation")
	p := d.linked(program)
	if p == nil {
		return -1
	}
	for _, u := range p.uniforms {
		if u.location >= 0 && (u.name == name || u.reportedName() == name) {
			return u.location
		}
	}
	return -1
}

func (d *Driver) setUniform(method, setter string, location int32, value interface{}) {
	d.called(method)
	p := d.programs[d.current]
	if p == nil {
		d.raise(gl.INVALID_OPERATION)
		return
	}
	if location == -1 {
		return
	}
	for _, u := range p.uniforms {
		if u.location != location {
			continue
		}
		if setterOf(u.typ) != setter {
			d.raise(gl.INVALID_OPERATION)
			return
		}
		p.Values[u.reportedName()] = value
		return
	}
	d.raise(gl.INVALID_OPERATION)
}

func (d *Driver) Uniform1i(location, v int32) {
	d.setUniform("Uniform1i", "1i", location, v)
}

func (d *Driver) Uniform1f(location int32, v float32) {
	d.setUniform("Uniform1f", "1f", location, v)
}

func (d *Driver) Uniform3i(location, v0, v1, v2 int32) {
	d.setUniform("Uniform3i", "3i", location, [3]int32{v0, v1, v2})
}

func (d *Driver) Uniform3f(location int32, v0, v1, v2 float32) {
	d.setUniform("Uniform3f", "3f", location, [3]float32{v0, v1, v2})
}

func (d *Driver) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	d.setUniform("Uniform4f", "4f", location, [4]float32{v0, v1, v2, v3})
}

func (d *Driver) UniformMatrix4fv(location int32, m [16]float32) {
	d.setUniform("UniformMatrix4fv", "m4", location, m)
}

func (d *Driver) GetActiveUniformName(program, index uint32) string {
	d.called("GetActiveUniformName")
	p := d.linked(program)
	if p == nil {
		return ""
	}
	if int(index) >= len(p.uniforms) {
		d.raise(gl.INVALID_VALUE)
		return ""
	}
	return p.uniforms[index].reportedName()
}

func (d *Driver) GetUniformIndex(program uint32, name string) uint32 {
	d.called("GetUniformIndex")
	p := d.linked(program)
	if p == nil {
		return gl.INVALID_INDEX
	}
	for i, u := range p.uniforms {
		if u.name == name || u.reportedName() == name {
			return uint32(i)
		}
	}
	return gl.INVALID_INDEX
}

func (d *Driver) GetActiveUniformiv(program, index, pname uint32) int32 {
	d.called("GetActiveUniformiv")
	p := d.linked(program)
	if p == nil {
		return 0
	}
	if int(index) >= len(p.uniforms) {
		d.raise(gl.INVALID_VALUE)
		return 0
	}
	u := p.uniforms[index]
	switch pname {
	case gl.UNIFORM_OFFSET:
		return u.offset
	case gl.UNIFORM_BLOCK_INDEX:
		return u.block
	case gl.UNIFORM_SIZE:
		if u.arrayLen > 0 {
			return int32(u.arrayLen)
		}
		return 1
	}
	d.raise(gl.INVALID_ENUM)
	return 0
}

func (d *Driver) GetUniformBlockIndex(program uint32, name string) uint32 {
	d.called("GetUniformBlockIndex")
	p := d.linked(program)
	if p == nil {
		return gl.INVALID_INDEX
	}
	for i, b := range p.blocks {
		if b.name == name {
			return uint32(i)
		}
	}
	return gl.INVALID_INDEX
}

func (d *Driver) GetActiveUniformBlockName(program, index uint32) string {
	d.called("GetActiveUniformBlockName")
	p := d.linked(program)
	if p == nil {
		return ""
	}
	if int(index) >= len(p.blocks) {
		d.raise(gl.INVALID_VALUE)
		return ""
	}
	return p.blocks[index].name
}

func (d *Driver) GetActiveUniformBlockiv(program, index, pname uint32) int32 {
	d.called("GetActiveUniformBlockiv")
	p := d.linked(program)
	if p == nil {
		return 0
	}
	if int(index) >= len(p.blocks) {
		d.raise(gl.INVALID_VALUE)
		return 0
	}
	b := p.blocks[index]
	switch pname {
	case gl.UNIFORM_BLOCK_DATA_SIZE:
		return int32(b.size)
	case gl.UNIFORM_BLOCK_BINDING:
		return int32(p.Bindings[b.name])
	case gl.UNIFORM_BLOCK_ACTIVE_UNIFORMS:
		var n int32
		for _, u := range p.uniforms {
			if u.block == int32(index) {
				n++
			}
		}
		return n
	}
	d.raise(gl.INVALID_ENUM)
	return 0
}

func (d *Driver) UniformBlockBinding(program, index, binding uint32) {
	d.called("UniformBlockBinding")
	p := d.linked(program)
	if p == nil {
		return
	}
	if int(index) >= len(p.blocks) {
		d.raise(gl.INVALID_VALUE)
		return
	}
	p.Bindings[p.blocks[index].name] = binding
}

// Shader returns the shader named id, or nil once it is freed.
func (d *Driver) Shader(id uint32) *Shader {
	return d.shaders[id]
}

// Program returns the program named id, or nil.
func (d *Driver) Program(id uint32) *Program {
	return d.programs[id]
}

// CurrentProgram returns the program in use.
func (d *Driver) CurrentProgram() uint32 {
	return d.current
}

// UniformValue returns the value last set for a plain uniform of a program.
// Array uniforms may be named with or without "[0]".
func (d *Driver) UniformValue(program uint32, name string) (interface{}, bool) {
	p := d.programs[program]
	if p == nil {
		return nil, false
	}
	if v, ok := p.Values[name]; ok {
		return v, true
	}
	v, ok := p.Values[name+"[0]"]
	if !ok && strings.HasSuffix(name, "[0]") {
		v, ok = p.Values[strings.TrimSuffix(name, "[0]")]
	}
	return v, ok
}

// BlockData returns the bytes of the buffer bound to the binding point a
// program assigned to block name.
func (d *Driver) BlockData(program uint32, name string) ([]byte, bool) {
	p := d.programs[program]
	if p == nil {
		return nil, false
	}
	point, ok := p.Bindings[name]
	if !ok {
		return nil, false
	}
	b := d.buffers[d.indexed[point]]
	if b == nil {
		return nil, false
	}
	return b.Data, true
}
