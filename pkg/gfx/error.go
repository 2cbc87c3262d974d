package gfx

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/gregjohnson2017/glwrap/pkg/log"
)

// ErrDriver matches every *DriverError with errors.Is.
const ErrDriver log.ConstErr = "driver call failed"

// DriverError is a non-zero error flag reported by the driver after a call.
type DriverError struct {
	Code uint32
	Call string
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("%v failed: %v", e.Call, ErrorName(e.Code))
}

// Is reports whether target is ErrDriver.
func (e *DriverError) Is(target error) bool {
	return target == ErrDriver
}

// ErrorName returns the GL name of a driver error code.
func ErrorName(code uint32) string {
	switch code {
	case gl.NO_ERROR:
		return "NO_ERROR"
	case gl.INVALID_ENUM:
		return "INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "INVALID_OPERATION"
	case gl.STACK_OVERFLOW:
		return "STACK_OVERFLOW"
	case gl.STACK_UNDERFLOW:
		return "STACK_UNDERFLOW"
	case gl.OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	}
	return fmt.Sprintf("0x%04X", code)
}

// checkError queries the driver error flag after call. A raised flag is
// logged with the file and line of the check and returned as a *DriverError.
func checkError(call string) error {
	code := drv.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	file, line := "unknown", 0
	if _, f, l, ok := runtime.Caller(1); ok {
		file, line = filepath.Base(f), l
	}
	log.Warnf("%v(%v) %v %v", file, line, ErrorName(code), call)
	return &DriverError{Code: code, Call: call}
}
