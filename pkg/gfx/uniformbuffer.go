package gfx

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gregjohnson2017/glwrap/pkg/log"
)

// ErrUnsupportedType indicates a value of a type the call cannot upload.
const ErrUnsupportedType log.ConstErr = "unsupported value type"

// UniformBuffer is a buffer holding the storage of one uniform block.
type UniformBuffer struct {
	*Buffer
}

// NewUniformBuffer allocates size bytes of block storage.
func NewUniformBuffer(size int) (*UniformBuffer, error) {
	b, err := NewBuffer(gl.UNIFORM_BUFFER)
	if err != nil {
		return nil, err
	}
	if err = b.Alloc(size, gl.DYNAMIC_DRAW); err != nil {
		b.Delete()
		return nil, fmt.Errorf("alloc failed: %w", err)
	}
	return &UniformBuffer{b}, nil
}

// Write stores value at the byte offset of a block member. Supported values
// are float32, int32, uint32, mgl32.Vec2, mgl32.Vec3, mgl32.Vec4, mgl32.Mat4
// and raw []byte.
func (ub *UniformBuffer) Write(offset int, value interface{}) error {
	data, err := encodeUniform(value)
	if err != nil {
		return err
	}
	return ub.WritePart(offset, data)
}

// Use binds the storage to a uniform block binding point.
func (ub *UniformBuffer) Use(bindingPoint uint32) error {
	if err := ub.Bind(); err != nil {
		return err
	}
	drv.BindBufferBase(gl.UNIFORM_BUFFER, bindingPoint, ub.id)
	return checkError("glBindBufferBase")
}

func encodeUniform(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case float32, int32, uint32, mgl32.Vec2, mgl32.Vec3, mgl32.Vec4, mgl32.Mat4:
		var buf bytes.Buffer
		if err := binary.Write(&buf, binary.NativeEndian, v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, value)
}
