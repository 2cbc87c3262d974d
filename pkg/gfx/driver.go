package gfx

// Driver is the subset of OpenGL 4.1 core used by this package, expressed
// with Go types. Every call is expected to happen on the thread that owns the
// current context.
type Driver interface {
	GetError() uint32

	GenBuffer() uint32
	DeleteBuffer(buffer uint32)
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, size int, data []byte, usage uint32)
	BufferSubData(target uint32, offset int, data []byte)
	GetBufferSubData(target uint32, offset int, data []byte)
	BindBufferBase(target, index, buffer uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, stride int32, offset uintptr)
	EnableVertexAttribArray(index uint32)

	GenVertexArray() uint32
	DeleteVertexArray(array uint32)
	BindVertexArray(array uint32)

	GenTexture() uint32
	DeleteTexture(texture uint32)
	ActiveTexture(unit uint32)
	BindTexture(target, texture uint32)
	TexImage2D(target uint32, internalFormat int32, width, height int32, format, xtype uint32, pixels []byte)
	TexParameteri(target, pname uint32, param int32)
	TexParameterf(target, pname uint32, param float32)
	GenerateMipmap(target uint32)
	PixelStorei(pname uint32, param int32)

	GenFramebuffer() uint32
	DeleteFramebuffer(framebuffer uint32)
	BindFramebuffer(target, framebuffer uint32)
	FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32)
	FramebufferRenderbuffer(target, attachment, rbTarget, renderbuffer uint32)
	CheckFramebufferStatus(target uint32) uint32

	GenRenderbuffer() uint32
	DeleteRenderbuffer(renderbuffer uint32)
	BindRenderbuffer(target, renderbuffer uint32)
	RenderbufferStorage(target, internalFormat uint32, width, height int32)

	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader, pname uint32) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	DeleteProgram(program uint32)
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program, pname uint32) int32
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)

	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location, v int32)
	Uniform1f(location int32, v float32)
	Uniform3i(location, v0, v1, v2 int32)
	Uniform3f(location int32, v0, v1, v2 float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	UniformMatrix4fv(location int32, m [16]float32)

	GetActiveUniformName(program, index uint32) string
	GetUniformIndex(program uint32, name string) uint32
	GetActiveUniformiv(program, index, pname uint32) int32
	GetUniformBlockIndex(program uint32, name string) uint32
	GetActiveUniformBlockName(program, index uint32) string
	GetActiveUniformBlockiv(program, index, pname uint32) int32
	UniformBlockBinding(program, index, binding uint32)

	DrawElements(mode uint32, count int32, xtype uint32, offset uintptr)
	DrawArrays(mode uint32, first, count int32)
	Enable(capability uint32)
	Disable(capability uint32)
	DepthFunc(fn uint32)
	Clear(mask uint32)
	ClearColor(r, g, b, a float32)
	Viewport(x, y, width, height int32)

	GenQuery() uint32
	DeleteQuery(query uint32)
	QueryCounter(query, target uint32)
	GetQueryObjectiv(query, pname uint32) int32
	GetQueryObjectui64v(query, pname uint32) uint64
}

var drv Driver = glDriver{}

// SetDriver installs d as the driver used by every wrapper created afterwards
// and returns the previous one.
func SetDriver(d Driver) Driver {
	prev := drv
	drv = d
	return prev
}

// CurrentDriver returns the installed driver.
func CurrentDriver() Driver {
	return drv
}

// GL returns the driver backed by the go-gl OpenGL 4.1 core bindings.
// gl.Init must have been called with a current context before any call.
func GL() Driver {
	return glDriver{}
}
