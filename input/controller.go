// Package input turns polled keyboard and mouse state into camera motion and
// toggle changes on the render context.
package input

import (
	"temple-viewer/renderer"
	"temple-viewer/scene"
)

// GLFW key codes for the keys the viewer reacts to.
const (
	KeyA      = 65
	KeyB      = 66
	KeyD      = 68
	KeyF      = 70
	KeyS      = 83
	KeyW      = 87
	KeyEscape = 256
	KeyEnter  = 257
	KeyRight  = 262
	KeyLeft   = 263
	KeyDown   = 264
	KeyUp     = 265
	KeyF1     = 290
)

var polledKeys = []int{
	KeyA, KeyB, KeyD, KeyF, KeyS, KeyW,
	KeyEscape, KeyEnter, KeyRight, KeyLeft, KeyDown, KeyUp, KeyF1,
}

// Source is the window state the controller polls once per frame.
type Source interface {
	IsKeyPressed(key int) bool
	GetCursorPos() (float64, float64)
	SetShouldClose(close bool)
	SetCursorCaptured(captured bool)
}

// Nav is a menu navigation command issued while the overlay is open.
type Nav int

const (
	NavUp Nav = iota
	NavDown
	NavDecrease
	NavIncrease
	NavActivate
)

// Navigator receives menu navigation from the controller.
type Navigator interface {
	Navigate(rc *renderer.RenderContext, n Nav)
}

var navKeys = []struct {
	key int
	nav Nav
}{
	{KeyUp, NavUp},
	{KeyDown, NavDown},
	{KeyLeft, NavDecrease},
	{KeyRight, NavIncrease},
	{KeyEnter, NavActivate},
}

// Controller tracks key and mouse state between frames and applies it to a
// render context. It implements renderer.InputHandler.
type Controller struct {
	src   Source
	guard MovementGuard

	// Menu receives arrow and enter presses while the overlay is shown.
	Menu Navigator

	keys     [512]bool
	keysPrev [512]bool

	lastX, lastY float64
	firstMouse   bool
	scroll       float64
}

var _ renderer.InputHandler = (*Controller)(nil)

// NewController creates a controller polling src. Backward movement is only
// allowed while the camera is in front of backwardLimitZ.
func NewController(src Source, backwardLimitZ float32) *Controller {
	return &Controller{
		src:        src,
		guard:      MovementGuard{LimitZ: backwardLimitZ},
		firstMouse: true,
	}
}

// OnScroll accumulates wheel motion until the next Process. It is meant to be
// installed as the window's scroll callback.
func (c *Controller) OnScroll(xoff, yoff float64) {
	c.scroll += yoff
}

// SyncCursor applies the cursor mode matching the context's overlay state.
func (c *Controller) SyncCursor(rc *renderer.RenderContext) {
	c.src.SetCursorCaptured(!rc.OverlayEnabled)
}

// Process applies one frame of input.
func (c *Controller) Process(rc *renderer.RenderContext) {
	c.poll()

	if c.IsKeyDown(KeyEscape) {
		c.src.SetShouldClose(true)
	}

	if c.IsKeyPressed(KeyF1) {
		rc.OverlayEnabled = !rc.OverlayEnabled
		rc.CameraFollow = !rc.OverlayEnabled
		c.SyncCursor(rc)
		// The cursor jumps when capture changes; take a fresh baseline.
		c.firstMouse = true
	}
	if c.IsKeyPressed(KeyF) {
		rc.Toggles.SpotlightEnabled = !rc.Toggles.SpotlightEnabled
	}
	if c.IsKeyPressed(KeyB) {
		rc.Toggles.BlinnShading = !rc.Toggles.BlinnShading
	}

	if rc.OverlayEnabled && c.Menu != nil {
		for _, nk := range navKeys {
			if c.IsKeyPressed(nk.key) {
				c.Menu.Navigate(rc, nk.nav)
			}
		}
	}

	c.move(rc)
	c.look(rc)

	if c.scroll != 0 {
		rc.Camera.ProcessMouseScroll(float32(c.scroll))
		c.scroll = 0
	}
	rc.Camera.Update(rc.Delta)
}

func (c *Controller) poll() {
	copy(c.keysPrev[:], c.keys[:])
	for _, k := range polledKeys {
		c.keys[k] = c.src.IsKeyPressed(k)
	}
}

func (c *Controller) move(rc *renderer.RenderContext) {
	cam := rc.Camera
	moves := []struct {
		key int
		dir scene.Movement
	}{
		{KeyW, scene.Forward},
		{KeyS, scene.Backward},
		{KeyA, scene.Left},
		{KeyD, scene.Right},
	}
	for _, m := range moves {
		if c.IsKeyDown(m.key) && c.guard.Allows(m.dir, cam.Position) {
			cam.ProcessKeyboard(m.dir, rc.Delta)
		}
	}
}

// look turns cursor motion into yaw and pitch. The first sample only sets the
// baseline. Screen Y grows downward, so the Y offset is inverted.
func (c *Controller) look(rc *renderer.RenderContext) {
	x, y := c.src.GetCursorPos()
	if c.firstMouse {
		c.lastX, c.lastY = x, y
		c.firstMouse = false
	}
	xoff := x - c.lastX
	yoff := c.lastY - y
	c.lastX, c.lastY = x, y

	if rc.CameraFollow {
		rc.Camera.ProcessMouseMovement(float32(xoff), float32(yoff))
	}
}

// IsKeyDown reports whether key is held this frame.
func (c *Controller) IsKeyDown(key int) bool {
	if key < 0 || key >= len(c.keys) {
		return false
	}
	return c.keys[key]
}

// IsKeyPressed reports whether key went down this frame.
func (c *Controller) IsKeyPressed(key int) bool {
	if key < 0 || key >= len(c.keys) {
		return false
	}
	return c.keys[key] && !c.keysPrev[key]
}
