package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gregjohnson2017/glwrap/pkg/camera"
	"github.com/gregjohnson2017/glwrap/pkg/font"
	"github.com/gregjohnson2017/glwrap/pkg/gfx"
	"github.com/gregjohnson2017/glwrap/pkg/log"
	"github.com/gregjohnson2017/glwrap/pkg/perf"
	"github.com/gregjohnson2017/glwrap/pkg/util"
	"github.com/gregjohnson2017/glwrap/pkg/window"
)

var movements = map[window.Key]camera.Movement{
	window.KeyW: camera.Forward,
	window.KeyS: camera.Backward,
	window.KeyA: camera.Left,
	window.KeyD: camera.Right,
}

// Handle applies one window event.
func (v *Viewer) Handle(e window.Event) {
	switch e.Kind {
	case window.Quit:
		v.quit = true
	case window.KeyDown:
		if e.Key == window.KeyEscape {
			v.quit = true
		}
		v.keys[e.Key] = true
	case window.KeyUp:
		delete(v.keys, e.Key)
	case window.MouseMove:
		v.cam.LookAt(e.DX, e.DY, true)
	case window.Scroll:
		v.cam.AddFOV(e.DY)
	case window.Resize:
		if err := v.Resize(e.Width, e.Height); err != nil {
			log.Warnf("resize to %vx%v: %v", e.Width, e.Height, err)
		}
	}
}

// Update moves the camera for every held movement key.
func (v *Viewer) Update(dt time.Duration) {
	seconds := float32(dt.Seconds())
	for key, dir := range movements {
		if v.keys[key] {
			v.cam.Move(dir, seconds)
		}
	}
}

// Render draws one frame to the default framebuffer.
func (v *Viewer) Render() error {
	if err := v.fb.Use(); err != nil {
		return err
	}
	if err := gfx.Viewport(0, 0, v.width, v.height); err != nil {
		return err
	}
	if err := gfx.Enable(gl.DEPTH_TEST); err != nil {
		return err
	}
	if err := gfx.Clear(0.1, 0.1, 0.1, 1, gl.COLOR_BUFFER_BIT|gl.DEPTH_BUFFER_BIT); err != nil {
		return err
	}

	if err := v.drawModel(); err != nil {
		return err
	}
	if v.skyProg != nil {
		if err := v.drawSkybox(); err != nil {
			return err
		}
	}

	if err := gfx.UseDefault(); err != nil {
		return err
	}
	if err := gfx.Disable(gl.DEPTH_TEST); err != nil {
		return err
	}
	if err := gfx.Clear(1, 1, 1, 1, gl.COLOR_BUFFER_BIT); err != nil {
		return err
	}
	if err := v.screenProg.Use(); err != nil {
		return err
	}
	if err := gfx.DrawArrays(gl.TRIANGLES, 0, int32(len(screenVertices)/4)); err != nil {
		return err
	}
	if v.hud == nil {
		return nil
	}
	return v.hud.Draw(v.status(), hudMargin, float32(v.height-hudMargin),
		font.Align{V: font.AlignBelow, H: font.AlignLeft}, mgl32.Vec4{1, 1, 0, 1}, v.width, v.height)
}

func (v *Viewer) status() string {
	pos := v.cam.Position()
	return fmt.Sprintf("%.0f fps  (%.2f, %.2f, %.2f)", v.fps, pos.X(), pos.Y(), pos.Z())
}

func (v *Viewer) drawModel() error {
	aspect := float32(v.width) / float32(v.height)
	if err := v.modelProg.SetUniformOfBlock(MatricesBlock, projectionVar, v.cam.Projection(aspect, nearPlane, farPlane)); err != nil {
		return err
	}
	if err := v.modelProg.SetUniformOfBlock(MatricesBlock, viewVar, v.cam.ViewMatrix()); err != nil {
		return err
	}
	if v.modelUniforms[modelVar] {
		if err := v.modelProg.SetUniform(modelVar, mgl32.Ident4()); err != nil {
			return err
		}
	}
	if v.modelUniforms[viewPosVar] {
		if err := v.modelProg.SetUniform(viewPosVar, v.cam.Position()); err != nil {
			return err
		}
	}
	if v.model == nil {
		return nil
	}
	return v.model.Draw(v.modelProg, v.vars)
}

// drawSkybox draws the cube behind everything else; its depth is forced
// to 1 by the vertex shader.
func (v *Viewer) drawSkybox() error {
	if err := gfx.DepthFunc(gl.LEQUAL); err != nil {
		return err
	}
	if err := v.skyProg.Use(); err != nil {
		return err
	}
	if err := gfx.DrawArrays(gl.TRIANGLES, 0, int32(len(skyboxVertices)/3)); err != nil {
		return err
	}
	return gfx.DepthFunc(gl.LESS)
}

// Run renders frames until the window closes or the user quits, at most
// cfg.Window.FramesPerSecond per second. Metrics are logged once a second.
func (v *Viewer) Run(win window.Window) error {
	ticker := time.NewTicker(time.Second / time.Duration(v.cfg.Window.FramesPerSecond))
	defer ticker.Stop()
	lastFrame := time.Now()
	lastMetrics := lastFrame
	frames := 0
	for !v.quit && !win.ShouldClose() {
		win.PollEvents(v.Handle)
		if v.quit {
			break
		}
		now := time.Now()
		v.Update(now.Sub(lastFrame))
		lastFrame = now

		sw := util.Start()
		query := gfx.StartTimerQuery()
		if err := v.Render(); err != nil {
			return err
		}
		query.Stop(perf.GPUFrame)
		sw.StopRecordAverage(perf.CPUFrame)
		win.SwapBuffers()
		frames++

		if elapsed := now.Sub(lastMetrics); elapsed >= time.Second {
			v.fps = float64(frames) / elapsed.Seconds()
			frames = 0
			perf.LogMetrics()
			lastMetrics = now
		}
		<-ticker.C
	}
	return nil
}
