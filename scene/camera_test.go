package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVec3InDelta(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], delta, "component %d", i)
	}
}

func TestNewCameraLooksDownNegativeZ(t *testing.T) {
	c := NewCamera(mgl32.Vec3{1, 2, 3})

	assertVec3InDelta(t, mgl32.Vec3{0, 0, -1}, c.Front, 1e-6)
	assertVec3InDelta(t, mgl32.Vec3{1, 0, 0}, c.Right, 1e-6)
	assertVec3InDelta(t, mgl32.Vec3{0, 1, 0}, c.Up, 1e-6)
	assert.Equal(t, DefaultZoom, c.Zoom)
}

func TestCameraPitchIsClamped(t *testing.T) {
	c := NewCamera(mgl32.Vec3{})

	c.ProcessMouseMovement(0, 10000)
	assert.Equal(t, float32(89), c.Pitch)

	c.ProcessMouseMovement(0, -20000)
	assert.Equal(t, float32(-89), c.Pitch)
}

func TestCameraYawFollowsSensitivity(t *testing.T) {
	c := NewCamera(mgl32.Vec3{})
	c.ProcessMouseMovement(100, 0)
	assert.InDelta(t, -80, c.Yaw, 1e-4)
}

func TestCameraZoomIsClamped(t *testing.T) {
	c := NewCamera(mgl32.Vec3{})

	c.ProcessMouseScroll(-10)
	assert.Equal(t, MaxZoom, c.Zoom)

	c.ProcessMouseScroll(100)
	assert.Equal(t, MinZoom, c.Zoom)
}

func TestCameraKeyboardMovesAlongAxes(t *testing.T) {
	c := NewCamera(mgl32.Vec3{})
	c.MovementSpeed = 2

	c.ProcessKeyboard(Forward, 0.5)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, -1}, c.Position, 1e-6)

	c.ProcessKeyboard(Right, 1)
	assertVec3InDelta(t, mgl32.Vec3{2, 0, -1}, c.Position, 1e-6)

	c.ProcessKeyboard(Backward, 0.5)
	c.ProcessKeyboard(Left, 1)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 0}, c.Position, 1e-6)
}

func TestSetFrontDerivesYawAndPitch(t *testing.T) {
	c := NewCamera(mgl32.Vec3{})

	c.SetFront(mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 0, c.Yaw, 1e-4)
	assert.InDelta(t, 0, c.Pitch, 1e-4)

	c.SetFront(mgl32.Vec3{0, 1, -1})
	assert.InDelta(t, -90, c.Yaw, 1e-3)
	assert.InDelta(t, 45, c.Pitch, 1e-3)
	assertVec3InDelta(t, mgl32.Vec3{0, 1, -1}.Normalize(), c.Front, 1e-5)
}

func TestSetFrontIgnoresZeroVector(t *testing.T) {
	c := NewCamera(mgl32.Vec3{})
	before := *c

	c.SetFront(mgl32.Vec3{})
	assert.Equal(t, before.Front, c.Front)
	assert.Equal(t, before.Yaw, c.Yaw)
}

func TestSmoothZoomEasesTowardTarget(t *testing.T) {
	c := NewCamera(mgl32.Vec3{})
	c.EnableSmoothZoom()

	c.ProcessMouseScroll(20)
	assert.Equal(t, DefaultZoom, c.Zoom, "scroll only moves the target")

	c.Update(1.0 / 60)
	first := c.Zoom
	assert.Less(t, first, DefaultZoom)
	assert.Greater(t, first, float32(25))

	for i := 0; i < 600; i++ {
		c.Update(1.0 / 60)
	}
	assert.InDelta(t, 25, c.Zoom, 0.05)
}

func TestSmoothZoomFollowsWallTime(t *testing.T) {
	fast := NewCamera(mgl32.Vec3{})
	slow := NewCamera(mgl32.Vec3{})
	for _, c := range []*Camera{fast, slow} {
		c.EnableSmoothZoom()
		c.ProcessMouseScroll(20)
	}

	for i := 0; i < 120; i++ {
		fast.Update(1.0 / 120)
	}
	for i := 0; i < 30; i++ {
		slow.Update(1.0 / 30)
	}

	assert.Less(t, fast.Zoom, float32(30))
	assert.InDelta(t, fast.Zoom, slow.Zoom, 1e-3)
}

func TestSmoothZoomIgnoresNonPositiveStep(t *testing.T) {
	c := NewCamera(mgl32.Vec3{})
	c.EnableSmoothZoom()
	c.ProcessMouseScroll(20)

	c.Update(0)
	c.Update(-0.5)
	assert.Equal(t, DefaultZoom, c.Zoom)
}

func TestWithoutSmoothZoomUpdateIsNoop(t *testing.T) {
	c := NewCamera(mgl32.Vec3{})
	c.ProcessMouseScroll(5)
	c.Update(1.0 / 60)
	assert.Equal(t, float32(40), c.Zoom)
}
