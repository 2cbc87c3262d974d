// Package window opens an OpenGL 4.1 core window with SDL2 or GLFW and
// translates its input into backend independent events.
package window

import (
	"fmt"

	"github.com/gregjohnson2017/glwrap/pkg/config"
	"github.com/gregjohnson2017/glwrap/pkg/log"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
const ErrUnknownBackend log.ConstErr = "unknown window backend"

// EventKind distinguishes events.
type EventKind int

// Event kinds.
const (
	Quit EventKind = iota
	KeyDown
	KeyUp
	MouseMove
	Scroll
	Resize
)

// Key is a keyboard key the viewer reacts to.
type Key int

// Keys.
const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyEscape
)

// Event is one input or window event. DX and DY carry the relative mouse
// motion for MouseMove and the wheel offset for Scroll. Width and Height
// carry the new drawable size for Resize.
type Event struct {
	Kind          EventKind
	Key           Key
	DX, DY        float32
	Width, Height int32
}

// Window is a window with a current OpenGL context.
type Window interface {
	ShouldClose() bool
	SwapBuffers()
	// PollEvents delivers every pending event to handle.
	PollEvents(handle func(Event))
	// Size returns the drawable size in pixels.
	Size() (width, height int32)
	Destroy()
}

// Open creates a window for cfg.Backend and makes its context current on the
// calling thread, which must be the main OS thread.
func Open(cfg config.Window, debug bool) (Window, error) {
	var (
		w   Window
		err error
	)
	switch cfg.Backend {
	case config.BackendSDL:
		w, err = openSDL(cfg, debug)
	case config.BackendGLFW:
		w, err = openGLFW(cfg, debug)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	if err = initGL(debug); err != nil {
		w.Destroy()
		return nil, err
	}
	log.Infof("opened %vx%v %v window", cfg.Width, cfg.Height, cfg.Backend)
	return w, nil
}
