package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	sensitivity = 0.1
	pitchLimit  = 89.0
	baseSpeed   = 1000.0
	boostFactor = 5.0
	dollySpeed  = 50000.0
)

// Camera is a first-person free-fly camera: yaw/pitch from pointer
// motion, translation from held keys, fixed world up.
type Camera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3
	Yaw      float64 // degrees
	Pitch    float64 // degrees
}

func New(position mgl32.Vec3) *Camera {
	return &Camera{
		Position: position,
		Front:    mgl32.Vec3{0, 0, -1},
		Up:       mgl32.Vec3{0, 1, 0},
		Yaw:      -90,
	}
}

// Rotate applies a pointer delta. Pitch is clamped short of the poles to
// keep the look-at basis well defined.
func (c *Camera) Rotate(dx, dy float64) {
	c.Yaw += dx * sensitivity
	c.Pitch += dy * sensitivity
	if c.Pitch > pitchLimit {
		c.Pitch = pitchLimit
	}
	if c.Pitch < -pitchLimit {
		c.Pitch = -pitchLimit
	}

	yaw := c.Yaw * math.Pi / 180
	pitch := c.Pitch * math.Pi / 180
	c.Front = mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
}

// MoveForward translates along the view direction; sign selects forward
// or back.
func (c *Camera) MoveForward(dt float64, boost bool, sign float32) {
	c.Position = c.Position.Add(c.Front.Mul(sign * speed(dt, boost)))
}

// MoveRight strafes along the normalized front x up axis.
func (c *Camera) MoveRight(dt float64, boost bool, sign float32) {
	right := c.Front.Cross(c.Up).Normalize()
	c.Position = c.Position.Add(right.Mul(sign * speed(dt, boost)))
}

// MoveUp translates along world up.
func (c *Camera) MoveUp(dt float64, boost bool, sign float32) {
	c.Position = c.Position.Add(c.Up.Mul(sign * speed(dt, boost)))
}

// Dolly moves along the view direction on scroll input, much faster than
// key translation.
func (c *Camera) Dolly(dt, offset float64) {
	step := c.Front.Mul(float32(dollySpeed * dt))
	if offset > 0 {
		c.Position = c.Position.Add(step)
	} else if offset < 0 {
		c.Position = c.Position.Sub(step)
	}
}

// View is the standard look-at matrix from the camera toward its front.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

func speed(dt float64, boost bool) float32 {
	s := baseSpeed * dt
	if boost {
		s *= boostFactor
	}
	return float32(s)
}
