package window

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gregjohnson2017/glwrap/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"
)

func TestOpenUnknownBackend(t *testing.T) {
	cfg := config.New().Window
	cfg.Backend = "vulkan"
	_, err := Open(cfg, false)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestFormatDebugMessage(t *testing.T) {
	for id := range ignoredMessages {
		_, ok := formatDebugMessage(gl.DEBUG_SOURCE_API, gl.DEBUG_TYPE_OTHER, id, gl.DEBUG_SEVERITY_NOTIFICATION, "hint")
		assert.False(t, ok, "id %v", id)
	}

	text, ok := formatDebugMessage(gl.DEBUG_SOURCE_SHADER_COMPILER, gl.DEBUG_TYPE_ERROR, 7, gl.DEBUG_SEVERITY_HIGH, "bad")
	require.True(t, ok)
	assert.Equal(t, "GL debug message (7): bad | source: shader compiler | type: error | severity: high", text)

	text, ok = formatDebugMessage(0, 0, 8, 0, "odd")
	require.True(t, ok)
	assert.Equal(t, "GL debug message (8): odd | source: other | type: other | severity: unknown", text)
}

func TestTranslateSDL(t *testing.T) {
	for name, tc := range map[string]struct {
		event    sdl.Event
		expected Event
		ok       bool
	}{
		"quit":     {&sdl.QuitEvent{Type: sdl.QUIT}, Event{Kind: Quit}, true},
		"key down": {&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Sym: sdl.K_w}}, Event{Kind: KeyDown, Key: KeyW}, true},
		"key up":   {&sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Sym: sdl.K_ESCAPE}}, Event{Kind: KeyUp, Key: KeyEscape}, true},
		"repeat":   {&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Sym: sdl.K_w}}, Event{}, false},
		"other key": {&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Sym: sdl.K_q}},
			Event{Kind: KeyDown, Key: KeyUnknown}, true},
		"motion": {&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, XRel: 3, YRel: 4}, Event{Kind: MouseMove, DX: 3, DY: -4}, true},
		"wheel":  {&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: -1}, Event{Kind: Scroll, DY: -1}, true},
		"resize": {&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 640, Data2: 480},
			Event{Kind: Resize, Width: 640, Height: 480}, true},
		"focus": {&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_FOCUS_GAINED}, Event{}, false},
	} {
		t.Run(name, func(t *testing.T) {
			ev, ok := translateSDL(tc.event)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, ev)
		})
	}
}

func TestKeys(t *testing.T) {
	assert.Equal(t, []Key{KeyW, KeyA, KeyS, KeyD, KeyEscape, KeyUnknown},
		[]Key{sdlKey(sdl.K_w), sdlKey(sdl.K_a), sdlKey(sdl.K_s), sdlKey(sdl.K_d), sdlKey(sdl.K_ESCAPE), sdlKey(sdl.K_SPACE)})
	assert.Equal(t, []Key{KeyW, KeyA, KeyS, KeyD, KeyEscape, KeyUnknown},
		[]Key{glfwKey(glfw.KeyW), glfwKey(glfw.KeyA), glfwKey(glfw.KeyS), glfwKey(glfw.KeyD), glfwKey(glfw.KeyEscape), glfwKey(glfw.KeySpace)})
}

func TestCursorMoved(t *testing.T) {
	var w glfwWindow
	assert.Empty(t, w.cursorMoved(100, 100))
	assert.Equal(t, []Event{{Kind: MouseMove, DX: 5, DY: 10}}, w.cursorMoved(105, 90))
	assert.Equal(t, []Event{{Kind: MouseMove, DX: -5, DY: 0}}, w.cursorMoved(100, 90))
}

func TestSDLWindowOtherBackend(t *testing.T) {
	assert.Nil(t, SDLWindow(&glfwWindow{}))
}
