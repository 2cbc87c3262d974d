package gfx

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformBufferWrite(t *testing.T) {
	d := useFakeDriver(t)
	ub, err := NewUniformBuffer(80)
	require.NoError(t, err)
	assert.Equal(t, 80, ub.Size())

	require.NoError(t, ub.Write(0, mgl32.Translate3D(1, 2, 3)))
	require.NoError(t, ub.Write(64, mgl32.Vec3{4, 5, 6}))
	require.NoError(t, ub.Write(76, int32(-1)))

	floats := d.Float32s(ub.ID())
	assert.Equal(t, []float32{1, 2, 3, 1}, floats[12:16])
	assert.Equal(t, []float32{4, 5, 6}, floats[16:19])
	data := d.Buffer(ub.ID()).Data
	assert.Equal(t, int32(-1), int32(binary.NativeEndian.Uint32(data[76:])))
}

func TestUniformBufferWriteErrors(t *testing.T) {
	useFakeDriver(t)
	ub, err := NewUniformBuffer(16)
	require.NoError(t, err)

	assert.ErrorIs(t, ub.Write(0, "text"), ErrUnsupportedType)
	assert.ErrorIs(t, ub.Write(0, float64(1)), ErrUnsupportedType)
	assert.ErrorIs(t, ub.Write(8, mgl32.Vec4{}), ErrOutOfRange)
	require.NoError(t, ub.Write(12, float32(math.Pi)))
}

func TestUniformBufferUse(t *testing.T) {
	d := useFakeDriver(t)
	ub, err := NewUniformBuffer(16)
	require.NoError(t, err)
	require.NoError(t, ub.Use(2))
	assert.Equal(t, ub.ID(), d.UniformBufferBinding(2))
}

func TestNewUniformBufferEmpty(t *testing.T) {
	d := useFakeDriver(t)
	ub, err := NewUniformBuffer(0)
	assert.Nil(t, ub)
	assert.ErrorIs(t, err, ErrEmptyData)
	assert.Zero(t, d.Live().Buffers)
}
