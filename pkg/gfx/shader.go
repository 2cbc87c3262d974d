package gfx

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/gregjohnson2017/glwrap/pkg/log"
	"github.com/gregjohnson2017/glwrap/pkg/util"
)

// ErrCompileShader indicates that a shader failed to compile
const ErrCompileShader log.ConstErr = "failed to compile shader"

// ErrCreateShader indicates that a shader couldn't be created
const ErrCreateShader log.ConstErr = "failed to create shader"

// Shader is a compiled shader stage.
type Shader struct {
	id    uint32
	stage uint32
}

// NewShader attempts to compile the given shader source code as a shader
// of type stage (ex: gl.FRAGMENT_SHADER)
func NewShader(source string, stage uint32) (*Shader, error) {
	sw := util.Start()
	defer sw.StopRecordAverage("gfx.compileShader")
	id := drv.CreateShader(stage)
	if id == 0 {
		return nil, ErrCreateShader
	}

	drv.ShaderSource(id, source)
	drv.CompileShader(id)

	if drv.GetShaderiv(id, gl.COMPILE_STATUS) == gl.FALSE {
		infoLog := drv.GetShaderInfoLog(id)
		drv.DeleteShader(id)
		log.Warnf("glCompileShader failed: %v", infoLog)
		return nil, fmt.Errorf("%w: %v", ErrCompileShader, infoLog)
	}

	return &Shader{id: id, stage: stage}, nil
}

// Stage returns the shader type.
func (s *Shader) Stage() uint32 {
	return s.stage
}

// Delete tells OpenGL to delete the shader.
func (s *Shader) Delete() {
	if s.id == 0 {
		return
	}
	drv.DeleteShader(s.id)
	s.id = 0
}
