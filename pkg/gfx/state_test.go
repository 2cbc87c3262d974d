package gfx

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementBufferDraw(t *testing.T) {
	d := useFakeDriver(t)
	p := newProgram(t, plainVertex, "void main() {}")
	va, err := NewVertexArray(true)
	require.NoError(t, err)
	eb, err := NewElementBuffer[uint16]()
	require.NoError(t, err)
	require.NoError(t, eb.Write([]uint16{0, 1, 2}))
	p.SetVertexArray(va)
	require.NoError(t, p.Use())

	require.NoError(t, eb.Draw(gl.TRIANGLES))
	draws := d.Draws()
	require.Len(t, draws, 1)
	assert.Equal(t, int32(3), draws[0].Count)
	assert.Equal(t, uint32(gl.UNSIGNED_SHORT), draws[0].IndexType)
	assert.Equal(t, va.ID(), draws[0].VertexArray)
	assert.Equal(t, p.ID(), draws[0].Program)
}

func TestDrawArraysWithoutProgram(t *testing.T) {
	useFakeDriver(t)
	_, err := NewVertexArray(true)
	require.NoError(t, err)
	assert.ErrorIs(t, DrawArrays(gl.TRIANGLES, 0, 3), ErrDriver)
}

func TestRenderState(t *testing.T) {
	d := useFakeDriver(t)
	require.NoError(t, Enable(gl.DEPTH_TEST))
	assert.True(t, d.Enabled(gl.DEPTH_TEST))
	require.NoError(t, Disable(gl.DEPTH_TEST))
	assert.False(t, d.Enabled(gl.DEPTH_TEST))
	require.NoError(t, DepthFunc(gl.LEQUAL))
	assert.Equal(t, uint32(gl.LEQUAL), d.DepthFunction())
	require.NoError(t, Clear(0.1, 0.2, 0.3, 1, gl.COLOR_BUFFER_BIT|gl.DEPTH_BUFFER_BIT))
	assert.Equal(t, [4]float32{0.1, 0.2, 0.3, 1}, d.ClearColorValue())
	assert.Equal(t, 1, d.Clears())
	require.NoError(t, Viewport(0, 0, 640, 480))
	assert.Equal(t, [4]int32{0, 0, 640, 480}, d.ViewportRect())
	assert.ErrorIs(t, Viewport(0, 0, -1, 1), ErrDriver)
}
