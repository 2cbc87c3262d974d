package window

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/gregjohnson2017/glwrap/pkg/gfx"
	"github.com/gregjohnson2017/glwrap/pkg/log"
)

// ignoredMessages are driver notifications not worth reporting (buffer
// placement hints, shader recompiles and the like).
var ignoredMessages = map[uint32]bool{
	131169: true,
	131185: true,
	131218: true,
	131204: true,
}

func initGL(debug bool) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("initialize OpenGL: %w", err)
	}
	log.Infof("OpenGL version %v", gl.GoStr(gl.GetString(gl.VERSION)))
	if err := gfx.Enable(gl.DEPTH_TEST); err != nil {
		return err
	}
	if !debug {
		return nil
	}
	if !hasExtension("GL_KHR_debug") {
		log.Warn("GL_KHR_debug unavailable, driver messages will not be logged")
		return nil
	}
	if err := gfx.Enable(gl.DEBUG_OUTPUT); err != nil {
		return err
	}
	if err := gfx.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS); err != nil {
		return err
	}
	gl.DebugMessageCallback(func(source, gltype, id, severity uint32, _ int32, message string, _ unsafe.Pointer) {
		if text, ok := formatDebugMessage(source, gltype, id, severity, message); ok {
			log.Debug(text)
		}
	}, nil)
	return nil
}

func hasExtension(name string) bool {
	var n int32
	gl.GetIntegerv(gl.NUM_EXTENSIONS, &n)
	for i := int32(0); i < n; i++ {
		if gl.GoStr(gl.GetStringi(gl.EXTENSIONS, uint32(i))) == name {
			return true
		}
	}
	return false
}

func formatDebugMessage(source, gltype, id, severity uint32, message string) (string, bool) {
	if ignoredMessages[id] {
		return "", false
	}
	return fmt.Sprintf("GL debug message (%v): %v | source: %v | type: %v | severity: %v",
		id, message, debugSource(source), debugType(gltype), debugSeverity(severity)), true
}

func debugSource(source uint32) string {
	switch source {
	case gl.DEBUG_SOURCE_API:
		return "API"
	case gl.DEBUG_SOURCE_WINDOW_SYSTEM:
		return "window system"
	case gl.DEBUG_SOURCE_SHADER_COMPILER:
		return "shader compiler"
	case gl.DEBUG_SOURCE_THIRD_PARTY:
		return "third party"
	case gl.DEBUG_SOURCE_APPLICATION:
		return "application"
	}
	return "other"
}

func debugType(gltype uint32) string {
	switch gltype {
	case gl.DEBUG_TYPE_ERROR:
		return "error"
	case gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		return "deprecated behaviour"
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		return "undefined behaviour"
	case gl.DEBUG_TYPE_PORTABILITY:
		return "portability"
	case gl.DEBUG_TYPE_PERFORMANCE:
		return "performance"
	case gl.DEBUG_TYPE_MARKER:
		return "marker"
	case gl.DEBUG_TYPE_PUSH_GROUP:
		return "push group"
	case gl.DEBUG_TYPE_POP_GROUP:
		return "pop group"
	}
	return "other"
}

func debugSeverity(severity uint32) string {
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		return "high"
	case gl.DEBUG_SEVERITY_MEDIUM:
		return "medium"
	case gl.DEBUG_SEVERITY_LOW:
		return "low"
	case gl.DEBUG_SEVERITY_NOTIFICATION:
		return "notification"
	}
	return "unknown"
}
