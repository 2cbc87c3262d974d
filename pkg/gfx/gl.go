package gfx

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

type glDriver struct{}

func ptr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(&data[0])
}

func (glDriver) GetError() uint32 { return gl.GetError() }

func (glDriver) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (glDriver) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }
func (glDriver) BindBuffer(target, buffer uint32) { gl.BindBuffer(target, buffer) }

func (glDriver) BufferData(target uint32, size int, data []byte, usage uint32) {
	gl.BufferData(target, size, ptr(data), usage)
}

func (glDriver) BufferSubData(target uint32, offset int, data []byte) {
	gl.BufferSubData(target, offset, len(data), ptr(data))
}

func (glDriver) GetBufferSubData(target uint32, offset int, data []byte) {
	gl.GetBufferSubData(target, offset, len(data), ptr(data))
}

func (glDriver) BindBufferBase(target, index, buffer uint32) {
	gl.BindBufferBase(target, index, buffer)
}

func (glDriver) VertexAttribPointer(index uint32, size int32, xtype uint32, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, false, stride, offset)
}

func (glDriver) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (glDriver) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (glDriver) DeleteVertexArray(array uint32) { gl.DeleteVertexArrays(1, &array) }
func (glDriver) BindVertexArray(array uint32) { gl.BindVertexArray(array) }

func (glDriver) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (glDriver) DeleteTexture(texture uint32) { gl.DeleteTextures(1, &texture) }
func (glDriver) ActiveTexture(unit uint32) { gl.ActiveTexture(unit) }
func (glDriver) BindTexture(target, texture uint32) { gl.BindTexture(target, texture) }
func (glDriver) GenerateMipmap(target uint32) { gl.GenerateMipmap(target) }
func (glDriver) PixelStorei(pname uint32, param int32) { gl.PixelStorei(pname, param) }

func (glDriver) TexImage2D(target uint32, internalFormat int32, width, height int32, format, xtype uint32, pixels []byte) {
	gl.TexImage2D(target, 0, internalFormat, width, height, 0, format, xtype, ptr(pixels))
}

func (glDriver) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}

func (glDriver) TexParameterf(target, pname uint32, param float32) {
	gl.TexParameterf(target, pname, param)
}

func (glDriver) GenFramebuffer() uint32 {
	var id uint32
	gl.GenFramebuffers(1, &id)
	return id
}

func (glDriver) DeleteFramebuffer(framebuffer uint32) { gl.DeleteFramebuffers(1, &framebuffer) }
func (glDriver) BindFramebuffer(target, framebuffer uint32) { gl.BindFramebuffer(target, framebuffer) }

func (glDriver) FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32) {
	gl.FramebufferTexture2D(target, attachment, texTarget, texture, level)
}

func (glDriver) FramebufferRenderbuffer(target, attachment, rbTarget, renderbuffer uint32) {
	gl.FramebufferRenderbuffer(target, attachment, rbTarget, renderbuffer)
}

func (glDriver) CheckFramebufferStatus(target uint32) uint32 {
	return gl.CheckFramebufferStatus(target)
}

func (glDriver) GenRenderbuffer() uint32 {
	var id uint32
	gl.GenRenderbuffers(1, &id)
	return id
}

func (glDriver) DeleteRenderbuffer(renderbuffer uint32) { gl.DeleteRenderbuffers(1, &renderbuffer) }

func (glDriver) BindRenderbuffer(target, renderbuffer uint32) {
	gl.BindRenderbuffer(target, renderbuffer)
}

func (glDriver) RenderbufferStorage(target, internalFormat uint32, width, height int32) {
	gl.RenderbufferStorage(target, internalFormat, width, height)
}

func (glDriver) CreateShader(xtype uint32) uint32 { return gl.CreateShader(xtype) }

func (glDriver) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (glDriver) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (glDriver) GetShaderiv(shader, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (d glDriver) GetShaderInfoLog(shader uint32) string {
	logLength := d.GetShaderiv(shader, gl.INFO_LOG_LENGTH)
	if logLength <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (glDriver) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (glDriver) CreateProgram() uint32 { return gl.CreateProgram() }
func (glDriver) DeleteProgram(program uint32) { gl.DeleteProgram(program) }
func (glDriver) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }
func (glDriver) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }
func (glDriver) LinkProgram(program uint32) { gl.LinkProgram(program) }
func (glDriver) UseProgram(program uint32) { gl.UseProgram(program) }

func (glDriver) GetProgramiv(program, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (d glDriver) GetProgramInfoLog(program uint32) string {
	logLength := d.GetProgramiv(program, gl.INFO_LOG_LENGTH)
	if logLength <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (glDriver) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (glDriver) Uniform1i(location, v int32) { gl.Uniform1i(location, v) }
func (glDriver) Uniform1f(location int32, v float32) { gl.Uniform1f(location, v) }
func (glDriver) Uniform3i(location, v0, v1, v2 int32) { gl.Uniform3i(location, v0, v1, v2) }
func (glDriver) Uniform3f(location int32, v0, v1, v2 float32) { gl.Uniform3f(location, v0, v1, v2) }

func (glDriver) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	gl.Uniform4f(location, v0, v1, v2, v3)
}

func (glDriver) UniformMatrix4fv(location int32, m [16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (glDriver) GetActiveUniformName(program, index uint32) string {
	var name [512]uint8
	var length, size int32
	var xtype uint32
	gl.GetActiveUniform(program, index, int32(len(name)), &length, &size, &xtype, &name[0])
	return string(name[:length])
}

func (glDriver) GetUniformIndex(program uint32, name string) uint32 {
	index := uint32(gl.INVALID_INDEX)
	cnames, free := gl.Strs(name + "\x00")
	gl.GetUniformIndices(program, 1, cnames, &index)
	free()
	return index
}

func (glDriver) GetActiveUniformiv(program, index, pname uint32) int32 {
	v := int32(-1)
	gl.GetActiveUniformsiv(program, 1, &index, pname, &v)
	return v
}

func (glDriver) GetUniformBlockIndex(program uint32, name string) uint32 {
	return gl.GetUniformBlockIndex(program, gl.Str(name+"\x00"))
}

func (glDriver) GetActiveUniformBlockName(program, index uint32) string {
	var name [512]uint8
	var length int32
	gl.GetActiveUniformBlockName(program, index, int32(len(name)), &length, &name[0])
	return string(name[:length])
}

func (glDriver) GetActiveUniformBlockiv(program, index, pname uint32) int32 {
	var v int32
	gl.GetActiveUniformBlockiv(program, index, pname, &v)
	return v
}

func (glDriver) UniformBlockBinding(program, index, binding uint32) {
	gl.UniformBlockBinding(program, index, binding)
}

func (glDriver) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	gl.DrawElementsWithOffset(mode, count, xtype, offset)
}

func (glDriver) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }
func (glDriver) Enable(capability uint32) { gl.Enable(capability) }
func (glDriver) Disable(capability uint32) { gl.Disable(capability) }
func (glDriver) DepthFunc(fn uint32) { gl.DepthFunc(fn) }
func (glDriver) Clear(mask uint32) { gl.Clear(mask) }
func (glDriver) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }
func (glDriver) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (glDriver) GenQuery() uint32 {
	var id uint32
	gl.GenQueries(1, &id)
	return id
}

func (glDriver) DeleteQuery(query uint32) { gl.DeleteQueries(1, &query) }
func (glDriver) QueryCounter(query, target uint32) { gl.QueryCounter(query, target) }

func (glDriver) GetQueryObjectiv(query, pname uint32) int32 {
	var v int32
	gl.GetQueryObjectiv(query, pname, &v)
	return v
}

func (glDriver) GetQueryObjectui64v(query, pname uint32) uint64 {
	var v uint64
	gl.GetQueryObjectui64v(query, pname, &v)
	return v
}
