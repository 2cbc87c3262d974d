package gfx

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/gregjohnson2017/glwrap/pkg/log"
)

// ErrCreateFramebuffer indicates that the driver could not create a
// framebuffer.
const ErrCreateFramebuffer log.ConstErr = "failed to create framebuffer"

// ErrFramebuffer indicates an incomplete framebuffer.
const ErrFramebuffer log.ConstErr = "incomplete framebuffer"

// Framebuffer renders into color textures and an optional depth-stencil
// renderbuffer. Attachments are validated lazily on the first Use after
// they change.
type Framebuffer struct {
	id           uint32
	colors       []*Texture2D
	depthStencil *Renderbuffer
	complete     bool
}

// NewFramebuffer creates a framebuffer without attachments.
func NewFramebuffer() (*Framebuffer, error) {
	id := drv.GenFramebuffer()
	if err := checkError("glGenFramebuffers"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateFramebuffer, err)
	}
	if id == 0 {
		return nil, ErrCreateFramebuffer
	}
	return &Framebuffer{id: id}, nil
}

// AddColorAttachment appends tex as the next color attachment.
func (fb *Framebuffer) AddColorAttachment(tex *Texture2D) {
	fb.colors = append(fb.colors, tex)
	fb.complete = false
}

// SetDepthStencilAttachment sets the combined depth and stencil attachment.
func (fb *Framebuffer) SetDepthStencilAttachment(rb *Renderbuffer) {
	fb.depthStencil = rb
	fb.complete = false
}

// ColorAttachment returns the i-th color texture.
func (fb *Framebuffer) ColorAttachment(i int) *Texture2D {
	return fb.colors[i]
}

// Use attaches pending attachments, validates completeness and binds the
// framebuffer for drawing.
func (fb *Framebuffer) Use() error {
	if err := fb.attach(); err != nil {
		return err
	}
	return fb.bind()
}

// UseDefault binds the window's framebuffer.
func UseDefault() error {
	drv.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return checkError("glBindFramebuffer")
}

func (fb *Framebuffer) bind() error {
	drv.BindFramebuffer(gl.FRAMEBUFFER, fb.id)
	return checkError("glBindFramebuffer")
}

func (fb *Framebuffer) attach() error {
	if fb.complete {
		return nil
	}
	if err := fb.bind(); err != nil {
		return err
	}
	for i, tex := range fb.colors {
		drv.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0+uint32(i), gl.TEXTURE_2D, tex.ID(), 0)
		if err := checkError("glFramebufferTexture2D"); err != nil {
			return err
		}
	}
	if fb.depthStencil != nil {
		drv.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, fb.depthStencil.ID())
		if err := checkError("glFramebufferRenderbuffer"); err != nil {
			return err
		}
	}
	if status := drv.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		log.Warnf("framebuffer is not complete: 0x%04X", status)
		return fmt.Errorf("%w: status 0x%04X", ErrFramebuffer, status)
	}
	fb.complete = true
	return nil
}

// Delete frees the framebuffer. Attachments belong to the caller.
func (fb *Framebuffer) Delete() {
	if fb.id == 0 {
		return
	}
	drv.DeleteFramebuffer(fb.id)
	fb.id = 0
}
