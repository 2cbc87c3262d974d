package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gregjohnson2017/glwrap/pkg/config"
)

type glfwWindow struct {
	win     *glfw.Window
	pending []Event
	// last cursor position, valid once seen
	cursorX, cursorY float64
	cursorSeen       bool
}

func openGLFW(cfg config.Window, debug bool) (*glfwWindow, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.StencilBits, 8)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	if debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}
	win, err := glfw.CreateWindow(int(cfg.Width), int(cfg.Height), cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	w := &glfwWindow{win: win}
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		switch action {
		case glfw.Press:
			w.pending = append(w.pending, Event{Kind: KeyDown, Key: glfwKey(key)})
		case glfw.Release:
			w.pending = append(w.pending, Event{Kind: KeyUp, Key: glfwKey(key)})
		}
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.pending = append(w.pending, w.cursorMoved(x, y)...)
	})
	win.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) {
		w.pending = append(w.pending, Event{Kind: Scroll, DX: float32(dx), DY: float32(dy)})
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.pending = append(w.pending, Event{Kind: Resize, Width: int32(width), Height: int32(height)})
	})
	win.SetCloseCallback(func(_ *glfw.Window) {
		w.pending = append(w.pending, Event{Kind: Quit})
	})
	return w, nil
}

// cursorMoved turns an absolute cursor position into a relative motion. The
// first position only primes the tracker.
func (w *glfwWindow) cursorMoved(x, y float64) []Event {
	defer func() { w.cursorX, w.cursorY, w.cursorSeen = x, y, true }()
	if !w.cursorSeen {
		return nil
	}
	// GLFW grows y downwards
	return []Event{{Kind: MouseMove, DX: float32(x - w.cursorX), DY: float32(w.cursorY - y)}}
}

func glfwKey(k glfw.Key) Key {
	switch k {
	case glfw.KeyW:
		return KeyW
	case glfw.KeyA:
		return KeyA
	case glfw.KeyS:
		return KeyS
	case glfw.KeyD:
		return KeyD
	case glfw.KeyEscape:
		return KeyEscape
	}
	return KeyUnknown
}

func (w *glfwWindow) ShouldClose() bool {
	return w.win.ShouldClose()
}

func (w *glfwWindow) SwapBuffers() {
	w.win.SwapBuffers()
}

func (w *glfwWindow) PollEvents(handle func(Event)) {
	glfw.PollEvents()
	events := w.pending
	w.pending = nil
	for _, e := range events {
		handle(e)
	}
}

func (w *glfwWindow) Size() (int32, int32) {
	width, height := w.win.GetFramebufferSize()
	return int32(width), int32(height)
}

func (w *glfwWindow) Destroy() {
	w.win.Destroy()
	glfw.Terminate()
}
