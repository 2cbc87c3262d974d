package gfx

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/gregjohnson2017/glwrap/pkg/log"
)

// ErrCreateBuffer indicates that the driver could not create a buffer.
const ErrCreateBuffer log.ConstErr = "failed to create buffer"

// ErrEmptyData indiciates that the given data is empty.
const ErrEmptyData log.ConstErr = "data is empty so cannot be used"

// ErrOutOfRange indicates a write or read past the allocated storage.
const ErrOutOfRange log.ConstErr = "range exceeds buffer storage"

// Buffer owns one driver buffer object used with a single target.
type Buffer struct {
	id     uint32
	target uint32
	size   int
}

// NewBuffer creates a buffer object for target (ex: gl.ARRAY_BUFFER).
func NewBuffer(target uint32) (*Buffer, error) {
	id := drv.GenBuffer()
	if err := checkError("glGenBuffers"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateBuffer, err)
	}
	if id == 0 {
		return nil, ErrCreateBuffer
	}
	return &Buffer{id: id, target: target}, nil
}

// Bind binds the buffer to its target.
func (b *Buffer) Bind() error {
	drv.BindBuffer(b.target, b.id)
	return checkError("glBindBuffer")
}

// Unbind binds 0 to the buffer's target.
func (b *Buffer) Unbind() error {
	drv.BindBuffer(b.target, 0)
	return checkError("glBindBuffer")
}

// Write replaces the whole storage with data. gl.BufferData acts like malloc
// followed by memcpy.
func (b *Buffer) Write(data []byte, usage uint32) error {
	if len(data) == 0 {
		log.Warn("can't write empty data")
		return ErrEmptyData
	}
	if err := b.Bind(); err != nil {
		return err
	}
	drv.BufferData(b.target, len(data), data, usage)
	if err := checkError("glBufferData"); err != nil {
		return err
	}
	b.size = len(data)
	return nil
}

// Alloc reserves size bytes of uninitialized storage.
func (b *Buffer) Alloc(size int, usage uint32) error {
	if size <= 0 {
		return ErrEmptyData
	}
	if err := b.Bind(); err != nil {
		return err
	}
	drv.BufferData(b.target, size, nil, usage)
	if err := checkError("glBufferData"); err != nil {
		return err
	}
	b.size = size
	return nil
}

// WritePart copies data into the existing storage at offset. It acts like
// memcpy and can only modify a range of the existing size.
func (b *Buffer) WritePart(offset int, data []byte) error {
	if len(data) == 0 {
		return ErrEmptyData
	}
	if offset < 0 || offset+len(data) > b.size {
		log.Warnf("write of %v bytes at %v exceeds buffer size %v", len(data), offset, b.size)
		return ErrOutOfRange
	}
	if err := b.Bind(); err != nil {
		return err
	}
	drv.BufferSubData(b.target, offset, data)
	return checkError("glBufferSubData")
}

// Read copies len(data) bytes starting at offset out of the storage.
func (b *Buffer) Read(offset int, data []byte) error {
	if offset < 0 || offset+len(data) > b.size {
		return ErrOutOfRange
	}
	if err := b.Bind(); err != nil {
		return err
	}
	drv.GetBufferSubData(b.target, offset, data)
	return checkError("glGetBufferSubData")
}

// ID returns the driver name of the buffer.
func (b *Buffer) ID() uint32 {
	return b.id
}

// Size returns the allocated storage in bytes.
func (b *Buffer) Size() int {
	return b.size
}

// Delete frees the buffer object.
func (b *Buffer) Delete() {
	if b.id == 0 {
		return
	}
	drv.DeleteBuffer(b.id)
	b.id = 0
	b.size = 0
}

// ArrayBuffer holds float32 vertex data.
type ArrayBuffer struct {
	*Buffer
}

// NewArrayBuffer creates a gl.ARRAY_BUFFER.
func NewArrayBuffer() (*ArrayBuffer, error) {
	b, err := NewBuffer(gl.ARRAY_BUFFER)
	if err != nil {
		return nil, err
	}
	return &ArrayBuffer{b}, nil
}

// Write uploads data with gl.STATIC_DRAW.
func (ab *ArrayBuffer) Write(data []float32) error {
	return ab.Buffer.Write(bytesOf(data), gl.STATIC_DRAW)
}

// VertexAttribPointer describes attribute index as size floats located
// offset bytes into each vertex of stride bytes, and enables it.
func (ab *ArrayBuffer) VertexAttribPointer(index uint32, size, stride int32, offset uintptr) error {
	if err := ab.Bind(); err != nil {
		return err
	}
	drv.VertexAttribPointer(index, size, gl.FLOAT, stride, offset)
	if err := checkError("glVertexAttribPointer"); err != nil {
		return err
	}
	drv.EnableVertexAttribArray(index)
	return checkError("glEnableVertexAttribArray")
}

// VertexAttribPointerSimpleOffset is VertexAttribPointer with stride and
// offset counted in floats.
// ex: (x,y,z, s,t) -> stride 5, s,t at offset 3
func (ab *ArrayBuffer) VertexAttribPointerSimpleOffset(index uint32, size, stride int32, offset int) error {
	return ab.VertexAttribPointer(index, size, stride*4, uintptr(offset*4))
}

// Index is an element type usable by ElementBuffer.
type Index interface {
	~uint8 | ~uint16 | ~uint32
}

// ElementBuffer holds indices of type T.
type ElementBuffer[T Index] struct {
	*Buffer
	count int
}

// NewElementBuffer creates a gl.ELEMENT_ARRAY_BUFFER.
func NewElementBuffer[T Index]() (*ElementBuffer[T], error) {
	b, err := NewBuffer(gl.ELEMENT_ARRAY_BUFFER)
	if err != nil {
		return nil, err
	}
	return &ElementBuffer[T]{Buffer: b}, nil
}

// Write uploads indices with gl.STATIC_DRAW.
func (eb *ElementBuffer[T]) Write(indices []T) error {
	if err := eb.Buffer.Write(bytesOf(indices), gl.STATIC_DRAW); err != nil {
		return err
	}
	eb.count = len(indices)
	return nil
}

// Use binds the buffer, which records it in the bound vertex array.
func (eb *ElementBuffer[T]) Use() error {
	return eb.Bind()
}

// Count returns the number of indices last written.
func (eb *ElementBuffer[T]) Count() int {
	return eb.count
}

// IndexType returns the GL type of T for draw calls.
func (eb *ElementBuffer[T]) IndexType() uint32 {
	var zero T
	switch unsafe.Sizeof(zero) {
	case 1:
		return gl.UNSIGNED_BYTE
	case 2:
		return gl.UNSIGNED_SHORT
	}
	return gl.UNSIGNED_INT
}

func bytesOf[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*int(unsafe.Sizeof(zero)))
}
