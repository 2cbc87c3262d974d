package gfxtest

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Draw is a snapshot of the state a draw call ran with.
type Draw struct {
	Mode        uint32
	Count       int32
	First       int32
	IndexType   uint32
	Offset      uintptr
	Program     uint32
	VertexArray uint32
	Framebuffer uint32
	// Textures maps each texture unit with a binding to the bound texture.
	Textures map[uint32]uint32
	// UniformBuffers maps binding points to buffers.
	UniformBuffers map[uint32]uint32
	// Uniforms copies the plain uniform values of the program.
	Uniforms map[string]interface{}
}

func (d *Driver) snapshot(mode uint32) (Draw, bool) {
	p := d.programs[d.current]
	va := d.vertexArrays[d.boundVAO]
	if p == nil || !p.Linked || va == nil {
		d.raise(gl.INVALID_OPERATION)
		return Draw{}, false
	}
	draw := Draw{
		Mode:           mode,
		Program:        p.ID,
		VertexArray:    va.ID,
		Framebuffer:    d.boundFBO,
		Textures:       make(map[uint32]uint32),
		UniformBuffers: make(map[uint32]uint32),
		Uniforms:       make(map[string]interface{}),
	}
	for unit, targets := range d.units {
		for _, target := range []uint32{gl.TEXTURE_2D, gl.TEXTURE_CUBE_MAP} {
			if id := targets[target]; id != 0 {
				draw.Textures[unit] = id
				break
			}
		}
	}
	for point, id := range d.indexed {
		if id != 0 {
			draw.UniformBuffers[point] = id
		}
	}
	for name, v := range p.Values {
		draw.Uniforms[name] = v
	}
	return draw, true
}

func (d *Driver) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	d.called("DrawElements")
	if count < 0 {
		d.raise(gl.INVALID_VALUE)
		return
	}
	draw, ok := d.snapshot(mode)
	if !ok {
		return
	}
	eb := d.buffers[d.vertexArrays[d.boundVAO].ElementBuffer]
	if eb == nil {
		d.raise(gl.INVALID_OPERATION)
		return
	}
	draw.Count, draw.IndexType, draw.Offset = count, xtype, offset
	d.draws = append(d.draws, draw)
}

func (d *Driver) DrawArrays(mode uint32, first, count int32) {
	d.called("DrawArrays")
	if first < 0 || count < 0 {
		d.raise(gl.INVALID_VALUE)
		return
	}
	draw, ok := d.snapshot(mode)
	if !ok {
		return
	}
	draw.First, draw.Count = first, count
	d.draws = append(d.draws, draw)
}

func (d *Driver) Enable(capability uint32) {
	d.called("Enable")
	d.enabled[capability] = true
}

func (d *Driver) Disable(capability uint32) {
	d.called("Disable")
	delete(d.enabled, capability)
}

func (d *Driver) DepthFunc(fn uint32) {
	d.called("DepthFunc")
	d.depthFunc = fn
}

func (d *Driver) Clear(mask uint32) {
	d.called("Clear")
	d.clears++
}

func (d *Driver) ClearColor(r, g, b, a float32) {
	d.called("ClearColor")
	d.clearColor = [4]float32{r, g, b, a}
}

func (d *Driver) Viewport(x, y, width, height int32) {
	d.called("Viewport")
	if width < 0 || height < 0 {
		d.raise(gl.INVALID_VALUE)
		return
	}
	d.viewport = [4]int32{x, y, width, height}
}

// queryTick is how far the fake GPU clock advances per timestamp.
const queryTick = 1000

func (d *Driver) GenQuery() uint32 {
	d.called("GenQuery")
	id := d.genID()
	d.queries[id] = 0
	return id
}

func (d *Driver) DeleteQuery(query uint32) {
	d.called("DeleteQuery")
	delete(d.queries, query)
}

func (d *Driver) QueryCounter(query, target uint32) {
	d.called("QueryCounter")
	if _, ok := d.queries[query]; !ok {
		d.raise(gl.INVALID_OPERATION)
		return
	}
	d.clock += queryTick
	d.queries[query] = d.clock
}

func (d *Driver) GetQueryObjectiv(query, pname uint32) int32 {
	d.called("GetQueryObjectiv")
	if _, ok := d.queries[query]; !ok {
		d.raise(gl.INVALID_OPERATION)
		return 0
	}
	if pname == gl.QUERY_RESULT_AVAILABLE {
		return gl.TRUE
	}
	return int32(d.queries[query])
}

func (d *Driver) GetQueryObjectui64v(query, pname uint32) uint64 {
	d.called("GetQueryObjectui64v")
	v, ok := d.queries[query]
	if !ok {
		d.raise(gl.INVALID_OPERATION)
		return 0
	}
	return v
}

// Draws returns every draw call made so far.
func (d *Driver) Draws() []Draw {
	return d.draws
}

// ResetDraws forgets the recorded draw calls.
func (d *Driver) ResetDraws() {
	d.draws = nil
}

// Enabled reports whether a capability is enabled.
func (d *Driver) Enabled(capability uint32) bool {
	return d.enabled[capability]
}

// DepthFunction returns the depth comparison function.
func (d *Driver) DepthFunction() uint32 {
	return d.depthFunc
}

// Clears returns the number of Clear calls.
func (d *Driver) Clears() int {
	return d.clears
}

// ClearColorValue returns the clear color.
func (d *Driver) ClearColorValue() [4]float32 {
	return d.clearColor
}

// ViewportRect returns the viewport as x, y, width, height.
func (d *Driver) ViewportRect() [4]int32 {
	return d.viewport
}
