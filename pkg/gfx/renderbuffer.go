package gfx

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/gregjohnson2017/glwrap/pkg/log"
)

// ErrCreateRenderbuffer indicates that the driver could not create a
// renderbuffer.
const ErrCreateRenderbuffer log.ConstErr = "failed to create renderbuffer"

// Renderbuffer is renderable storage that is never sampled.
type Renderbuffer struct {
	id     uint32
	width  int32
	height int32
}

// NewDepthStencilRenderbuffer creates a combined 24-bit depth and 8-bit
// stencil renderbuffer.
func NewDepthStencilRenderbuffer(width, height int32) (*Renderbuffer, error) {
	id := drv.GenRenderbuffer()
	if err := checkError("glGenRenderbuffers"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateRenderbuffer, err)
	}
	if id == 0 {
		return nil, ErrCreateRenderbuffer
	}
	rb := &Renderbuffer{id: id, width: width, height: height}
	drv.BindRenderbuffer(gl.RENDERBUFFER, id)
	if err := checkError("glBindRenderbuffer"); err != nil {
		rb.Delete()
		return nil, fmt.Errorf("bind failed: %w", err)
	}
	drv.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, width, height)
	if err := checkError("glRenderbufferStorage"); err != nil {
		rb.Delete()
		return nil, err
	}
	return rb, nil
}

// ID returns the driver name of the renderbuffer.
func (rb *Renderbuffer) ID() uint32 {
	return rb.id
}

// Delete frees the renderbuffer.
func (rb *Renderbuffer) Delete() {
	if rb.id == 0 {
		return
	}
	drv.DeleteRenderbuffer(rb.id)
	rb.id = 0
}
