package gfxtest

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Buffer is the state of a buffer object.
type Buffer struct {
	ID    uint32
	Data  []byte
	Usage uint32
}

// Attrib is one vertex attribute of a vertex array.
type Attrib struct {
	Buffer  uint32
	Size    int32
	Type    uint32
	Stride  int32
	Offset  uintptr
	Enabled bool
}

// VertexArray is the state of a vertex array object.
type VertexArray struct {
	ID            uint32
	Attribs       map[uint32]Attrib
	ElementBuffer uint32
}

// Level is the image of one texture target (a 2D texture or a cube face).
type Level struct {
	Width          int32
	Height         int32
	InternalFormat int32
	Format         uint32
	Pixels         []byte
}

// Texture is the state of a texture object.
type Texture struct {
	ID      uint32
	Target  uint32
	Levels  map[uint32]Level
	Params  map[uint32]int32
	ParamsF map[uint32]float32
	Mipmaps bool
}

// Framebuffer is the state of a framebuffer object.
type Framebuffer struct {
	ID           uint32
	Colors       map[uint32]uint32
	DepthStencil uint32
}

// Renderbuffer is the state of a renderbuffer object.
type Renderbuffer struct {
	ID             uint32
	InternalFormat uint32
	Width          int32
	Height         int32
}

func (d *Driver) GenBuffer() uint32 {
	d.called("GenBuffer")
	id := d.genID()
	d.buffers[id] = &Buffer{ID: id}
	return id
}

func (d *Driver) DeleteBuffer(buffer uint32) {
	d.called("DeleteBuffer")
	delete(d.buffers, buffer)
	for target, id := range d.boundBuffer {
		if id == buffer {
			delete(d.boundBuffer, target)
		}
	}
	for index, id := range d.indexed {
		if id == buffer {
			delete(d.indexed, index)
		}
	}
	for _, va := range d.vertexArrays {
		if va.ElementBuffer == buffer {
			va.ElementBuffer = 0
		}
	}
}

func (d *Driver) BindBuffer(target, buffer uint32) {
	d.called("BindBuffer")
	if buffer != 0 && d.buffers[buffer] == nil {
		d.raise(gl.INVALID_OPERATION)
		return
	}
	if target == gl.ELEMENT_ARRAY_BUFFER {
		if va := d.vertexArrays[d.boundVAO]; va != nil {
			va.ElementBuffer = buffer
		}
	}
	d.boundBuffer[target] = buffer
}

func (d *Driver) bufferAt(target uint32) *Buffer {
	if target == gl.ELEMENT_ARRAY_BUFFER {
		if va := d.vertexArrays[d.boundVAO]; va != nil {
			return d.buffers[va.ElementBuffer]
		}
	}
	return d.buffers[d.boundBuffer[target]]
}

func (d *Driver) BufferData(target uint32, size int, data []byte, usage uint32) {
	d.called("BufferData")
	b := d.bufferAt(target)
	if b == nil {
		d.raise(gl.INVALID_OPERATION)
		return
	}
	if size < 0 || (data != nil && len(data) < size) {
		d.raise(gl.INVALID_VALUE)
		return
	}
	b.Data = make([]byte, size)
	copy(b.Data, data)
	b.Usage = usage
}

func (d *Driver) BufferSubData(target uint32, offset int, data []byte) {
	d.called("BufferSubData")
	b := d.bufferAt(target)
	if b == nil {
		d.raise(gl.INVALID_OPERATION)
		return
	}
	if offset < 0 || offset+len(data) > len(b.Data) {
		d.raise(gl.INVALID_VALUE)
		return
	}
	copy(b.Data[offset:], data)
}

func (d *Driver) GetBufferSubData(target uint32, offset int, data []byte) {
	d.called("GetBufferSubData")
	b := d.bufferAt(target)
	if b == nil {
		d.raise(gl.INVALID_OPERATION)
		return
	}
	if offset < 0 || offset+len(data) > len(b.Data) {
		d.raise(gl.INVALID_VALUE)
		return
	}
	copy(data, b.Data[offset:])
}

func (d *Driver) BindBufferBase(target, index, buffer uint32) {
	d.called("BindBufferBase")
	if target != gl.UNIFORM_BUFFER {
		d.raise(gl.INVALID_ENUM)
		return
	}
	if buffer != 0 && d.buffers[buffer] == nil {
		d.raise(gl.INVALID_OPERATION)
		return
	}
	d.indexed[index] = buffer
	d.boundBuffer[target] = buffer
}

func (d *Driver) VertexAttribPointer(index uint32, size int32, xtype uint32, stride int32, offset uintptr) {
	d.called("VertexAttribPointer")
	va := d.vertexArrays[d.boundVAO]
	array := d.boundBuffer[gl.ARRAY_BUFFER]
	if va == nil || array == 0 {
		d.raise(gl.INVALID_OPERATION)
		return
	}
	if size < 1 || size > 4 || stride < 0 {
		d.raise(gl.INVALID_VALUE)
		return
	}
	a := va.Attribs[index]
	a.Buffer, a.Size, a.Type, a.Stride, a.Offset = array, size, xtype, stride, offset
	va.Attribs[index] = a
}

func (d *Driver) EnableVertexAttribArray(index uint32) {
	d.called("EnableVertexAttribArray")
	va := d.vertexArrays[d.boundVAO]
	if va == nil {
		d.raise(gl.INVALID_OPERATION)
		return
	}
	a := va.Attribs[index]
	a.Enabled = true
	va.Attribs[index] = a
}

func (d *Driver) GenVertexArray() uint32 {
	d.called("GenVertexArray")
	id := d.genID()
	d.vertexArrays[id] = &VertexArray{ID: id, Attribs: make(map[uint32]Attrib)}
	return id
}

func (d *Driver) DeleteVertexArray(array uint32) {
	d.called("DeleteVertexArray")
	delete(d.vertexArrays, array)
	if d.boundVAO == array {
		d.boundVAO = 0
	}
}

func (d *Driver) BindVertexArray(array uint32) {
	d.called("BindVertexArray")
	if array != 0 && d.vertexArrays[array] == nil {
		d.raise(gl.INVALID_OPERATION)
		return
	}
	d.boundVAO = array
}

func (d *Driver) GenTexture() uint32 {
	d.called("GenTexture")
	id := d.genID()
	d.textures[id] = &Texture{
		ID:      id,
		Levels:  make(map[uint32]Level),
		Params:  make(map[uint32]int32),
		ParamsF: make(map[uint32]float32),
	}
	return id
}

func (d *Driver) DeleteTexture(texture uint32) {
	d.called("DeleteTexture")
	delete(d.textures, texture)
	for _, targets := range d.units {
		for target, id := range targets {
			if id == texture {
				delete(targets, target)
			}
		}
	}
}

// maxUnits is the number of texture units the fake provides.
const maxUnits = 32

func (d *Driver) ActiveTexture(unit uint32) {
	d.called("ActiveTexture")
	if unit < gl.TEXTURE0 || unit >= gl.TEXTURE0+maxUnits {
		d.raise(gl.INVALID_ENUM)
		return
	}
	d.activeUnit = unit - gl.TEXTURE0
}

func (d *Driver) BindTexture(target, texture uint32) {
	d.called("BindTexture")
	if target != gl.TEXTURE_2D && target != gl.TEXTURE_CUBE_MAP {
		d.raise(gl.INVALID_ENUM)
		return
	}
	if texture != 0 {
		t := d.textures[texture]
		if t == nil || (t.Target != 0 && t.Target != target) {
			d.raise(gl.INVALID_OPERATION)
			return
		}
		t.Target = target
	}
	targets := d.units[d.activeUnit]
	if targets == nil {
		targets = make(map[uint32]uint32)
		d.units[d.activeUnit] = targets
	}
	targets[target] = texture
}

func (d *Driver) boundTexture(target uint32) *Texture {
	return d.textures[d.units[d.activeUnit][target]]
}

func bindingTarget(target uint32) uint32 {
	if target >= gl.TEXTURE_CUBE_MAP_POSITIVE_X && target <= gl.TEXTURE_CUBE_MAP_NEGATIVE_Z {
		return gl.TEXTURE_CUBE_MAP
	}
	return target
}

func channels(format uint32) int {
	switch format {
	case gl.RED:
		return 1
	case gl.RG:
		return 2
	case gl.RGB:
		return 3
	case gl.RGBA:
		return 4
	}
	return 0
}

func (d *Driver) TexImage2D(target uint32, internalFormat int32, width, height int32, format, xtype uint32, pixels []byte) {
	d.called("TexImage2D")
	if target == gl.TEXTURE_CUBE_MAP || channels(format) == 0 || xtype != gl.UNSIGNED_BYTE {
		d.raise(gl.INVALID_ENUM)
		return
	}
	t := d.boundTexture(bindingTarget(target))
	if t == nil {
		d.raise(gl.INVALID_OPERATION)
		return
	}
	if width < 0 || height < 0 {
		d.raise(gl.INVALID_VALUE)
		return
	}
	if pixels != nil && width > 0 && height > 0 {
		row := int(width) * channels(format)
		stride := (row + int(d.unpack) - 1) / int(d.unpack) * int(d.unpack)
		if len(pixels) < stride*int(height-1)+row {
			d.raise(gl.INVALID_OPERATION)
			return
		}
	}
	level := Level{Width: width, Height: height, InternalFormat: internalFormat, Format: format}
	if pixels != nil {
		level.Pixels = append([]byte(nil), pixels...)
	}
	t.Levels[target] = level
}

func (d *Driver) TexParameteri(target, pname uint32, param int32) {
	d.called("TexParameteri")
	t := d.boundTexture(target)
	if t == nil {
		d.raise(gl.INVALID_OPERATION)
		return
	}
	t.Params[pname] = param
}

func (d *Driver) TexParameterf(target, pname uint32, param float32) {
	d.called("TexParameterf")
	t := d.boundTexture(target)
	if t == nil {
		d.raise(gl.INVALID_OPERATION)
		return
	}
	t.ParamsF[pname] = param
}

func (d *Driver) GenerateMipmap(target uint32) {
	d.called("GenerateMipmap")
	t := d.boundTexture(target)
	if t == nil {
		d.raise(gl.INVALID_OPERATION)
		return
	}
	want := 1
	if target == gl.TEXTURE_CUBE_MAP {
		want = 6
	}
	if len(t.Levels) != want {
		d.raise(gl.INVALID_OPERATION)
		return
	}
	t.Mipmaps = true
}

func (d *Driver) PixelStorei(pname uint32, param int32) {
	d.called("PixelStorei")
	if pname != gl.UNPACK_ALIGNMENT {
		return
	}
	switch param {
	case 1, 2, 4, 8:
		d.unpack = param
	default:
		d.raise(gl.INVALID_VALUE)
	}
}

func (d *Driver) GenFramebuffer() uint32 {
	d.called("GenFramebuffer")
	id := d.genID()
	d.framebuffers[id] = &Framebuffer{ID: id, Colors: make(map[uint32]uint32)}
	return id
}

func (d *Driver) DeleteFramebuffer(framebuffer uint32) {
	d.called("DeleteFramebuffer")
	delete(d.framebuffers, framebuffer)
	if d.boundFBO == framebuffer {
		d.boundFBO = 0
	}
}

func (d *Driver) BindFramebuffer(target, framebuffer uint32) {
	d.called("BindFramebuffer")
	if framebuffer != 0 && d.framebuffers[framebuffer] == nil {
		d.raise(gl.INVALID_OPERATION)
		return
	}
	d.boundFBO = framebuffer
}

func (d *Driver) FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32) {
	d.called("FramebufferTexture2D")
	fb := d.framebuffers[d.boundFBO]
	if fb == nil {
		d.raise(gl.INVALID_OPERATION)
		return
	}
	if texture == 0 {
		delete(fb.Colors, attachment)
		return
	}
	if t := d.textures[texture]; t == nil || t.Target != texTarget {
		d.raise(gl.INVALID_OPERATION)
		return
	}
	fb.Colors[attachment] = texture
}

func (d *Driver) FramebufferRenderbuffer(target, attachment, rbTarget, renderbuffer uint32) {
	d.called("FramebufferRenderbuffer")
	fb := d.framebuffers[d.boundFBO]
	if fb == nil || (renderbuffer != 0 && d.renderbuffers[renderbuffer] == nil) {
		d.raise(gl.INVALID_OPERATION)
		return
	}
	fb.DepthStencil = renderbuffer
}

func (d *Driver) CheckFramebufferStatus(target uint32) uint32 {
	d.called("CheckFramebufferStatus")
	fb := d.framebuffers[d.boundFBO]
	if fb == nil {
		return gl.FRAMEBUFFER_COMPLETE
	}
	if len(fb.Colors) == 0 && fb.DepthStencil == 0 {
		return gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT
	}
	for _, id := range fb.Colors {
		t := d.textures[id]
		if t == nil {
			return gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT
		}
		if l, ok := t.Levels[gl.TEXTURE_2D]; !ok || l.Width == 0 || l.Height == 0 {
			return gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT
		}
	}
	if fb.DepthStencil != 0 {
		rb := d.renderbuffers[fb.DepthStencil]
		if rb == nil || rb.InternalFormat == 0 {
			return gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT
		}
	}
	return gl.FRAMEBUFFER_COMPLETE
}

func (d *Driver) GenRenderbuffer() uint32 {
	d.called("GenRenderbuffer")
	id := d.genID()
	d.renderbuffers[id] = &Renderbuffer{ID: id}
	return id
}

func (d *Driver) DeleteRenderbuffer(renderbuffer uint32) {
	d.called("DeleteRenderbuffer")
	delete(d.renderbuffers, renderbuffer)
	if d.boundRBO == renderbuffer {
		d.boundRBO = 0
	}
}

func (d *Driver) BindRenderbuffer(target, renderbuffer uint32) {
	d.called("BindRenderbuffer")
	if renderbuffer != 0 && d.renderbuffers[renderbuffer] == nil {
		d.raise(gl.INVALID_OPERATION)
		return
	}
	d.boundRBO = renderbuffer
}

func (d *Driver) RenderbufferStorage(target, internalFormat uint32, width, height int32) {
	d.called("RenderbufferStorage")
	rb := d.renderbuffers[d.boundRBO]
	if rb == nil {
		d.raise(gl.INVALID_OPERATION)
		return
	}
	if width <= 0 || height <= 0 {
		d.raise(gl.INVALID_VALUE)
		return
	}
	rb.InternalFormat, rb.Width, rb.Height = internalFormat, width, height
}

// Buffer returns the buffer named id, or nil.
func (d *Driver) Buffer(id uint32) *Buffer {
	return d.buffers[id]
}

// Float32s decodes the contents of buffer id as native-endian floats.
func (d *Driver) Float32s(id uint32) []float32 {
	b := d.buffers[id]
	if b == nil {
		return nil
	}
	out := make([]float32, len(b.Data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.NativeEndian.Uint32(b.Data[i*4:]))
	}
	return out
}

// UniformBufferBinding returns the buffer bound to a uniform binding point.
func (d *Driver) UniformBufferBinding(point uint32) uint32 {
	return d.indexed[point]
}

// VertexArray returns the vertex array named id, or nil.
func (d *Driver) VertexArray(id uint32) *VertexArray {
	return d.vertexArrays[id]
}

// BoundVertexArray returns the bound vertex array name.
func (d *Driver) BoundVertexArray() uint32 {
	return d.boundVAO
}

// Texture returns the texture named id, or nil.
func (d *Driver) Texture(id uint32) *Texture {
	return d.textures[id]
}

// BoundTexture returns the texture bound to target on a texture unit.
func (d *Driver) BoundTexture(unit, target uint32) uint32 {
	return d.units[unit][target]
}

// Framebuffer returns the framebuffer named id, or nil.
func (d *Driver) Framebuffer(id uint32) *Framebuffer {
	return d.framebuffers[id]
}

// BoundFramebuffer returns the bound framebuffer name, 0 for the window.
func (d *Driver) BoundFramebuffer() uint32 {
	return d.boundFBO
}

// Renderbuffer returns the renderbuffer named id, or nil.
func (d *Driver) Renderbuffer(id uint32) *Renderbuffer {
	return d.renderbuffers[id]
}
