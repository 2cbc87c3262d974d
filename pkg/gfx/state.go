package gfx

// Draw draws Count indices of the buffer as primitives of type mode (ex:
// gl.TRIANGLES). The buffer must be recorded in the bound vertex array.
func (eb *ElementBuffer[T]) Draw(mode uint32) error {
	drv.DrawElements(mode, int32(eb.count), eb.IndexType(), 0)
	return checkError("glDrawElements")
}

// DrawArrays draws count vertices of the bound vertex array starting at
// first.
func DrawArrays(mode uint32, first, count int32) error {
	drv.DrawArrays(mode, first, count)
	return checkError("glDrawArrays")
}

// Enable turns on a capability (ex: gl.DEPTH_TEST).
func Enable(capability uint32) error {
	drv.Enable(capability)
	return checkError("glEnable")
}

// Disable turns off a capability.
func Disable(capability uint32) error {
	drv.Disable(capability)
	return checkError("glDisable")
}

// DepthFunc sets the depth comparison (ex: gl.LEQUAL).
func DepthFunc(fn uint32) error {
	drv.DepthFunc(fn)
	return checkError("glDepthFunc")
}

// Clear clears the buffers in mask of the bound framebuffer to the clear
// values.
func Clear(r, g, b, a float32, mask uint32) error {
	drv.ClearColor(r, g, b, a)
	drv.Clear(mask)
	return checkError("glClear")
}

// Viewport sets the drawing rectangle in window coordinates.
func Viewport(x, y, width, height int32) error {
	drv.Viewport(x, y, width, height)
	return checkError("glViewport")
}
