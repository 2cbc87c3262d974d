package gfx

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/gregjohnson2017/glwrap/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testErrorName(code uint32, expected string) func(t *testing.T) {
	return func(t *testing.T) {
		assert.Equal(t, expected, ErrorName(code))
	}
}

func TestErrorName(t *testing.T) {
	t.Run("invalid enum", testErrorName(gl.INVALID_ENUM, "INVALID_ENUM"))
	t.Run("invalid value", testErrorName(gl.INVALID_VALUE, "INVALID_VALUE"))
	t.Run("invalid operation", testErrorName(gl.INVALID_OPERATION, "INVALID_OPERATION"))
	t.Run("stack overflow", testErrorName(gl.STACK_OVERFLOW, "STACK_OVERFLOW"))
	t.Run("stack underflow", testErrorName(gl.STACK_UNDERFLOW, "STACK_UNDERFLOW"))
	t.Run("out of memory", testErrorName(gl.OUT_OF_MEMORY, "OUT_OF_MEMORY"))
	t.Run("invalid framebuffer operation", testErrorName(gl.INVALID_FRAMEBUFFER_OPERATION, "INVALID_FRAMEBUFFER_OPERATION"))
	t.Run("unknown", testErrorName(0x1234, "0x1234"))
}

func TestCheckErrorClean(t *testing.T) {
	useFakeDriver(t)
	assert.NoError(t, checkError("glFlush"))
}

func TestCheckErrorLogsCallSite(t *testing.T) {
	d := useFakeDriver(t)
	var buf bytes.Buffer
	log.SetWarnOutput(&buf)
	defer log.SetWarnOutput(io.Discard)

	d.Fail("Enable", gl.INVALID_ENUM)
	d.Enable(0)
	err := checkError("glEnable")
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrDriver))
	var de *DriverError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, uint32(gl.INVALID_ENUM), de.Code)
	assert.Equal(t, "glEnable", de.Call)
	assert.Equal(t, "glEnable failed: INVALID_ENUM", err.Error())

	assert.Contains(t, buf.String(), "error_test.go(")
	assert.Contains(t, buf.String(), "INVALID_ENUM glEnable")
}

func TestCheckErrorClearsFlag(t *testing.T) {
	d := useFakeDriver(t)
	d.Fail("Clear", gl.OUT_OF_MEMORY)
	d.Clear(gl.COLOR_BUFFER_BIT)
	require.Error(t, checkError("glClear"))
	assert.NoError(t, checkError("glClear"))
}
