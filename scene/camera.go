package scene

import (
	"github.com/charmbracelet/harmonica"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Movement is a keyboard-driven camera direction.
type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
)

// Default fly-camera parameters.
const (
	DefaultYaw         float32 = -90
	DefaultPitch       float32 = 0
	DefaultSpeed       float32 = 2.5
	DefaultSensitivity float32 = 0.1
	DefaultZoom        float32 = 45

	MinZoom  float32 = 1
	MaxZoom  float32 = 45
	maxPitch float32 = 89
)

// Camera is a yaw/pitch fly camera. Front, Up and Right are derived from Yaw
// and Pitch and are only valid after updateVectors.
type Camera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3
	Right    mgl32.Vec3
	WorldUp  mgl32.Vec3

	Yaw   float32
	Pitch float32

	MovementSpeed    float32
	MouseSensitivity float32
	Zoom             float32

	// Smooth zoom: when enabled, scroll input moves zoomTarget and Update
	// springs Zoom toward it.
	smooth     bool
	spring     harmonica.Spring
	springStep float32
	zoomTarget float64
	zoomVel    float64
}

// Zoom spring tuning: angular frequency and damping ratio.
const (
	zoomFrequency = 6.0
	zoomDamping   = 1.0
)

// NewCamera places a camera at position looking down -Z.
func NewCamera(position mgl32.Vec3) *Camera {
	c := &Camera{
		Position:         position,
		WorldUp:          mgl32.Vec3{0, 1, 0},
		Yaw:              DefaultYaw,
		Pitch:            DefaultPitch,
		MovementSpeed:    DefaultSpeed,
		MouseSensitivity: DefaultSensitivity,
		Zoom:             DefaultZoom,
		zoomTarget:       float64(DefaultZoom),
	}
	c.updateVectors()
	return c
}

// EnableSmoothZoom makes scroll input ease toward its target instead of
// snapping.
func (c *Camera) EnableSmoothZoom() {
	c.smooth = true
	c.springStep = 0
	c.zoomTarget = float64(c.Zoom)
	c.zoomVel = 0
}

// ViewMatrix returns the world-to-view transform.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

// Projection returns a perspective projection using Zoom as the vertical FOV.
func (c *Camera) Projection(aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Zoom), aspect, near, far)
}

// ProcessKeyboard moves the camera along its local axes.
func (c *Camera) ProcessKeyboard(dir Movement, deltaTime float32) {
	velocity := c.MovementSpeed * deltaTime
	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.Front.Mul(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
	case Left:
		c.Position = c.Position.Sub(c.Right.Mul(velocity))
	case Right:
		c.Position = c.Position.Add(c.Right.Mul(velocity))
	}
}

// ProcessMouseMovement applies a mouse delta (in pixels) to yaw and pitch.
// Pitch is clamped to ±89° so the view never flips.
func (c *Camera) ProcessMouseMovement(xoffset, yoffset float32) {
	c.Yaw += xoffset * c.MouseSensitivity
	c.Pitch += yoffset * c.MouseSensitivity
	c.Pitch = clamp(c.Pitch, -maxPitch, maxPitch)
	c.updateVectors()
}

// ProcessMouseScroll narrows or widens the field of view.
func (c *Camera) ProcessMouseScroll(yoffset float32) {
	if c.smooth {
		c.zoomTarget = float64(clamp(float32(c.zoomTarget)-yoffset, MinZoom, MaxZoom))
		return
	}
	c.Zoom = clamp(c.Zoom-yoffset, MinZoom, MaxZoom)
}

// Update advances the zoom spring by dt seconds. The spring is rebuilt when
// the step changes, so easing follows wall time at any frame rate.
func (c *Camera) Update(dt float32) {
	if !c.smooth || dt <= 0 {
		return
	}
	if dt != c.springStep {
		c.spring = harmonica.NewSpring(float64(dt), zoomFrequency, zoomDamping)
		c.springStep = dt
	}
	z, v := c.spring.Update(float64(c.Zoom), c.zoomVel, c.zoomTarget)
	c.Zoom, c.zoomVel = clamp(float32(z), MinZoom, MaxZoom), v
}

// SetFront points the camera along front, re-deriving yaw and pitch so later
// mouse input continues from the same orientation.
func (c *Camera) SetFront(front mgl32.Vec3) {
	if front.Len() == 0 {
		return
	}
	f := front.Normalize()
	c.Pitch = clamp(mgl32.RadToDeg(math32.Asin(clamp(f.Y(), -1, 1))), -maxPitch, maxPitch)
	c.Yaw = mgl32.RadToDeg(math32.Atan2(f.Z(), f.X()))
	c.updateVectors()
}

func (c *Camera) updateVectors() {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)
	front := mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}
	c.Front = front.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
