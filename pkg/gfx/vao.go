package gfx

import (
	"fmt"

	"github.com/gregjohnson2017/glwrap/pkg/log"
)

// ErrCreateVertexArray indicates that the driver could not create a vertex
// array object.
const ErrCreateVertexArray log.ConstErr = "failed to create vertex array"

// VertexArray represents a Vertex Array Object. It records the attribute
// layout and element buffer bound while it is in use.
type VertexArray struct {
	id uint32
}

// NewVertexArray creates a vertex array, binding it right away when
// useAfterCreate is set so that buffers configured next are recorded in it.
func NewVertexArray(useAfterCreate bool) (*VertexArray, error) {
	id := drv.GenVertexArray()
	if err := checkError("glGenVertexArrays"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateVertexArray, err)
	}
	if id == 0 {
		return nil, ErrCreateVertexArray
	}
	va := &VertexArray{id: id}
	if useAfterCreate {
		if err := va.Use(); err != nil {
			va.Delete()
			return nil, fmt.Errorf("can't use vertex array: %w", err)
		}
	}
	return va, nil
}

// Use binds the vertex array.
func (va *VertexArray) Use() error {
	return bindVertexArray(va.id)
}

// Unuse binds vertex array 0.
func (va *VertexArray) Unuse() error {
	return bindVertexArray(0)
}

func bindVertexArray(id uint32) error {
	drv.BindVertexArray(id)
	return checkError("glBindVertexArray")
}

// ID returns the driver name of the vertex array.
func (va *VertexArray) ID() uint32 {
	return va.id
}

// Delete frees the resources.
func (va *VertexArray) Delete() {
	if va.id == 0 {
		return
	}
	drv.DeleteVertexArray(va.id)
	va.id = 0
}
