// Package camera implements a fly camera driven by yaw and pitch angles.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Movement is a direction of travel relative to where the camera looks.
type Movement int

// Movements accepted by Move.
const (
	Forward Movement = iota
	Backward
	Left
	Right
)

// Defaults of a new camera. Angles are in degrees.
const (
	DefaultFOV         = 45
	MinFOV             = 1
	DefaultSpeed       = 2.5
	DefaultSensitivity = 0.05
	MaxPitch           = 89
)

// Camera is a perspective camera. The zero value is not usable; call New.
type Camera struct {
	position mgl32.Vec3
	worldUp  mgl32.Vec3
	front    mgl32.Vec3
	up       mgl32.Vec3
	right    mgl32.Vec3

	fov         float32
	Speed       float32
	Sensitivity float32
	yaw         float32
	pitch       float32
}

// New places a camera at position looking along front. up is the world up
// direction used to keep the horizon level.
func New(position, up, front mgl32.Vec3) *Camera {
	c := &Camera{
		position:    position,
		worldUp:     up,
		fov:         DefaultFOV,
		Speed:       DefaultSpeed,
		Sensitivity: DefaultSensitivity,
	}
	if l := front.Len(); l > 0 {
		c.yaw = degrees(math.Atan2(float64(front.Z()), float64(front.X())))
		c.pitch = degrees(math.Asin(float64(front.Y() / l)))
	}
	c.update()
	return c
}

func degrees(rad float64) float32 {
	return float32(rad * 180 / math.Pi)
}

func (c *Camera) update() {
	yaw := float64(mgl32.DegToRad(c.yaw))
	pitch := float64(mgl32.DegToRad(c.pitch))
	c.front = mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

// ViewMatrix returns the world to view transform.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

// Projection returns a perspective projection with the current field of view.
func (c *Camera) Projection(aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(c.FOV(), aspect, near, far)
}

// Move travels Speed*dt units in dir.
func (c *Camera) Move(dir Movement, dt float32) {
	velocity := c.Speed * dt
	switch dir {
	case Forward:
		c.position = c.position.Add(c.front.Mul(velocity))
	case Backward:
		c.position = c.position.Sub(c.front.Mul(velocity))
	case Left:
		c.position = c.position.Sub(c.right.Mul(velocity))
	case Right:
		c.position = c.position.Add(c.right.Mul(velocity))
	}
}

// LookAt turns the camera by a mouse offset. With constrainPitch the pitch
// stays within ±MaxPitch so the view never flips.
func (c *Camera) LookAt(dx, dy float32, constrainPitch bool) {
	c.yaw += dx * c.Sensitivity
	c.pitch += dy * c.Sensitivity
	if constrainPitch {
		c.pitch = mgl32.Clamp(c.pitch, -MaxPitch, MaxPitch)
	}
	c.update()
}

// AddFOV zooms in for positive dy, keeping the field of view within
// [MinFOV, DefaultFOV] degrees.
func (c *Camera) AddFOV(dy float32) {
	c.fov = mgl32.Clamp(c.fov-dy, MinFOV, DefaultFOV)
}

// FOV returns the vertical field of view in radians.
func (c *Camera) FOV() float32 {
	return mgl32.DegToRad(c.fov)
}

// Position returns the camera position.
func (c *Camera) Position() mgl32.Vec3 {
	return c.position
}

// Front returns the unit view direction.
func (c *Camera) Front() mgl32.Vec3 {
	return c.front
}

// Up returns the camera's unit up vector.
func (c *Camera) Up() mgl32.Vec3 {
	return c.up
}

// Yaw returns the heading in degrees; 0 looks along +X.
func (c *Camera) Yaw() float32 {
	return c.yaw
}

// Pitch returns the elevation in degrees.
func (c *Camera) Pitch() float32 {
	return c.pitch
}
