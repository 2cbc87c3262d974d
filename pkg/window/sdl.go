package window

import (
	"fmt"

	"github.com/gregjohnson2017/glwrap/pkg/config"
	"github.com/gregjohnson2017/glwrap/pkg/log"
	"github.com/veandco/go-sdl2/sdl"
)

type sdlWindow struct {
	win    *sdl.Window
	ctx    sdl.GLContext
	closed bool
}

func openSDL(cfg config.Window, debug bool) (*sdlWindow, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("initialize SDL: %w", err)
	}
	flags := sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG
	if debug {
		flags |= sdl.GL_CONTEXT_DEBUG_FLAG
	}
	attrs := []struct {
		attr  sdl.GLattr
		value int
	}{
		{sdl.GL_CONTEXT_MAJOR_VERSION, 4},
		{sdl.GL_CONTEXT_MINOR_VERSION, 1},
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
		{sdl.GL_CONTEXT_FLAGS, flags},
		{sdl.GL_DOUBLEBUFFER, 1},
		{sdl.GL_DEPTH_SIZE, 24},
		{sdl.GL_STENCIL_SIZE, 8},
	}
	for _, a := range attrs {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			sdl.Quit()
			return nil, fmt.Errorf("set GL attribute %v: %w", a.attr, err)
		}
	}

	win, err := sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		cfg.Width, cfg.Height, sdl.WINDOW_OPENGL|sdl.WINDOW_RESIZABLE)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("create window: %w", err)
	}
	ctx, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("create GL context: %w", err)
	}
	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err = sdl.GLSetSwapInterval(interval); err != nil {
		sdl.GLDeleteContext(ctx)
		win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("set swap interval: %w", err)
	}
	sdl.SetRelativeMouseMode(true)
	return &sdlWindow{win: win, ctx: ctx}, nil
}

func (w *sdlWindow) ShouldClose() bool {
	return w.closed
}

func (w *sdlWindow) SwapBuffers() {
	w.win.GLSwap()
}

func (w *sdlWindow) PollEvents(handle func(Event)) {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		ev, ok := translateSDL(e)
		if !ok {
			continue
		}
		if ev.Kind == Quit {
			w.closed = true
		}
		handle(ev)
	}
}

func translateSDL(e sdl.Event) (Event, bool) {
	switch e := e.(type) {
	case *sdl.QuitEvent:
		return Event{Kind: Quit}, true
	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return Event{}, false
		}
		kind := KeyDown
		if e.Type == sdl.KEYUP {
			kind = KeyUp
		}
		return Event{Kind: kind, Key: sdlKey(e.Keysym.Sym)}, true
	case *sdl.MouseMotionEvent:
		// SDL grows y downwards
		return Event{Kind: MouseMove, DX: float32(e.XRel), DY: float32(-e.YRel)}, true
	case *sdl.MouseWheelEvent:
		return Event{Kind: Scroll, DX: float32(e.X), DY: float32(e.Y)}, true
	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{Kind: Resize, Width: e.Data1, Height: e.Data2}, true
		}
	}
	return Event{}, false
}

func sdlKey(k sdl.Keycode) Key {
	switch k {
	case sdl.K_w:
		return KeyW
	case sdl.K_a:
		return KeyA
	case sdl.K_s:
		return KeyS
	case sdl.K_d:
		return KeyD
	case sdl.K_ESCAPE:
		return KeyEscape
	}
	return KeyUnknown
}

func (w *sdlWindow) Size() (int32, int32) {
	return w.win.GLGetDrawableSize()
}

func (w *sdlWindow) Destroy() {
	sdl.GLDeleteContext(w.ctx)
	if err := w.win.Destroy(); err != nil {
		log.Warnf("destroy window: %v", err)
	}
	sdl.Quit()
}

// SDLWindow returns the SDL window behind w, or nil for other backends.
func SDLWindow(w Window) *sdl.Window {
	if sw, ok := w.(*sdlWindow); ok {
		return sw.win
	}
	return nil
}
