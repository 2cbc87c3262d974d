package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-5

// absolute tolerance; near-zero components carry float32 trig residue
func assertVec(t *testing.T, expected, actual mgl32.Vec3) {
	t.Helper()
	assert.InDeltaSlicef(t, expected[:], actual[:], eps, "expected %v, got %v", expected, actual)
}

func assertMat(t *testing.T, expected, actual mgl32.Mat4) {
	t.Helper()
	assert.InDeltaSlicef(t, expected[:], actual[:], eps, "expected %v, got %v", expected, actual)
}

var worldUp = mgl32.Vec3{0, 1, 0}

func TestNewDerivesAngles(t *testing.T) {
	for name, tc := range map[string]struct {
		front      mgl32.Vec3
		yaw, pitch float32
	}{
		"minus z":     {mgl32.Vec3{0, 0, -1}, -90, 0},
		"plus x":      {mgl32.Vec3{1, 0, 0}, 0, 0},
		"minus x":     {mgl32.Vec3{-1, 0, 0}, 180, 0},
		"unnormal":    {mgl32.Vec3{0, 0, 3}, 90, 0},
		"looking up":  {mgl32.Vec3{1, 1, 0}, 0, 45},
		"down and -z": {mgl32.Vec3{0, -1, -1}, -90, -45},
	} {
		t.Run(name, func(t *testing.T) {
			c := New(mgl32.Vec3{}, worldUp, tc.front)
			assert.InDelta(t, tc.yaw, c.Yaw(), 1e-3)
			assert.InDelta(t, tc.pitch, c.Pitch(), 1e-3)
			assertVec(t, tc.front.Normalize(), c.Front())
		})
	}
}

func TestViewMatrix(t *testing.T) {
	pos := mgl32.Vec3{0, 0, 3}
	c := New(pos, worldUp, mgl32.Vec3{0, 0, -1})
	expected := mgl32.LookAtV(pos, mgl32.Vec3{0, 0, 2}, worldUp)
	assertMat(t, expected, c.ViewMatrix())
	assertVec(t, worldUp, c.Up())
}

func TestMove(t *testing.T) {
	c := New(mgl32.Vec3{}, worldUp, mgl32.Vec3{0, 0, -1})

	c.Move(Forward, 2)
	assertVec(t, mgl32.Vec3{0, 0, -5}, c.Position())
	c.Move(Backward, 1)
	assertVec(t, mgl32.Vec3{0, 0, -2.5}, c.Position())
	c.Move(Right, 1)
	assertVec(t, mgl32.Vec3{2.5, 0, -2.5}, c.Position())
	c.Move(Left, 2)
	assertVec(t, mgl32.Vec3{-2.5, 0, -2.5}, c.Position())

	c.Speed = 1
	c.Move(Forward, 1)
	assertVec(t, mgl32.Vec3{-2.5, 0, -3.5}, c.Position())
}

func TestLookAt(t *testing.T) {
	c := New(mgl32.Vec3{}, worldUp, mgl32.Vec3{0, 0, -1})

	c.LookAt(1800, 0, true)
	assert.InDelta(t, 0, c.Yaw(), 1e-3)
	assertVec(t, mgl32.Vec3{1, 0, 0}, c.Front())

	c.LookAt(0, 10000, true)
	assert.Equal(t, float32(MaxPitch), c.Pitch())
	c.LookAt(0, -20000, true)
	assert.Equal(t, float32(-MaxPitch), c.Pitch())

	c.LookAt(0, -2000, false)
	assert.InDelta(t, -189, c.Pitch(), 1e-3)
}

func TestFOV(t *testing.T) {
	c := New(mgl32.Vec3{}, worldUp, mgl32.Vec3{0, 0, -1})
	assert.InDelta(t, mgl32.DegToRad(45), c.FOV(), eps)

	c.AddFOV(-10)
	assert.InDelta(t, mgl32.DegToRad(45), c.FOV(), eps)
	c.AddFOV(5)
	assert.InDelta(t, mgl32.DegToRad(40), c.FOV(), eps)
	c.AddFOV(100)
	assert.InDelta(t, mgl32.DegToRad(1), c.FOV(), eps)

	expected := mgl32.Perspective(mgl32.DegToRad(1), 2, 0.1, 100)
	assertMat(t, expected, c.Projection(2, 0.1, 100))
}
