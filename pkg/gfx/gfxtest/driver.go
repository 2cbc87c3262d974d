// Package gfxtest provides an in-memory implementation of gfx.Driver so the
// wrappers can be tested without an OpenGL context.
//
// The fake keeps the object state a real driver would keep, raises the same
// error flags for the misuse the wrappers must avoid, and reflects uniforms
// and uniform blocks by parsing the GLSL sources handed to it. Every active
// uniform is reported, used or not, and block members are laid out std140.
package gfxtest

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Driver is a fake driver. The zero value is not usable; call New.
type Driver struct {
	nextID uint32
	err    uint32
	fail   map[string][]uint32

	buffers     map[uint32]*Buffer
	boundBuffer map[uint32]uint32
	indexed     map[uint32]uint32

	vertexArrays map[uint32]*VertexArray
	boundVAO     uint32

	textures   map[uint32]*Texture
	activeUnit uint32
	units      map[uint32]map[uint32]uint32
	unpack     int32

	framebuffers  map[uint32]*Framebuffer
	boundFBO      uint32
	renderbuffers map[uint32]*Renderbuffer
	boundRBO      uint32

	shaders  map[uint32]*Shader
	programs map[uint32]*Program
	current  uint32

	queries map[uint32]uint64
	clock   uint64

	enabled    map[uint32]bool
	depthFunc  uint32
	clearColor [4]float32
	clears     int
	viewport   [4]int32
	draws      []Draw
}

// New returns a fake driver with no objects.
func New() *Driver {
	return &Driver{
		fail:          make(map[string][]uint32),
		buffers:       make(map[uint32]*Buffer),
		boundBuffer:   make(map[uint32]uint32),
		indexed:       make(map[uint32]uint32),
		vertexArrays:  make(map[uint32]*VertexArray),
		textures:      make(map[uint32]*Texture),
		units:         make(map[uint32]map[uint32]uint32),
		unpack:        4,
		framebuffers:  make(map[uint32]*Framebuffer),
		renderbuffers: make(map[uint32]*Renderbuffer),
		shaders:       make(map[uint32]*Shader),
		programs:      make(map[uint32]*Program),
		queries:       make(map[uint32]uint64),
		enabled:       make(map[uint32]bool),
		depthFunc:     gl.LESS,
	}
}

// Fail makes the next invocation of the named method (ex: "BufferData")
// raise code, in addition to anything the call itself raises. Calls to Fail
// for the same method queue up.
func (d *Driver) Fail(method string, code uint32) {
	d.fail[method] = append(d.fail[method], code)
}

// GetError returns and clears the error flag.
func (d *Driver) GetError() uint32 {
	code := d.err
	d.err = gl.NO_ERROR
	return code
}

// raise records code unless an earlier error is still pending.
func (d *Driver) raise(code uint32) {
	if d.err == gl.NO_ERROR {
		d.err = code
	}
}

// called applies injected failures for method.
func (d *Driver) called(method string) {
	queue := d.fail[method]
	if len(queue) == 0 {
		return
	}
	d.raise(queue[0])
	if len(queue) == 1 {
		delete(d.fail, method)
		return
	}
	d.fail[method] = queue[1:]
}

func (d *Driver) genID() uint32 {
	d.nextID++
	return d.nextID
}

// Counts is the number of live objects of each kind.
type Counts struct {
	Buffers       int
	VertexArrays  int
	Textures      int
	Framebuffers  int
	Renderbuffers int
	Shaders       int
	Programs      int
	Queries       int
}

// Live counts the objects that were created and not yet deleted.
func (d *Driver) Live() Counts {
	return Counts{
		Buffers:       len(d.buffers),
		VertexArrays:  len(d.vertexArrays),
		Textures:      len(d.textures),
		Framebuffers:  len(d.framebuffers),
		Renderbuffers: len(d.renderbuffers),
		Shaders:       len(d.shaders),
		Programs:      len(d.programs),
		Queries:       len(d.queries),
	}
}
