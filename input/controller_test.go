package input

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"temple-viewer/renderer"
	"temple-viewer/scene"
)

type fakeSource struct {
	down     map[int]bool
	x, y     float64
	closed   bool
	captured []bool
}

func newFakeSource() *fakeSource { return &fakeSource{down: make(map[int]bool)} }

func (s *fakeSource) IsKeyPressed(key int) bool { return s.down[key] }
func (s *fakeSource) GetCursorPos() (float64, float64) { return s.x, s.y }
func (s *fakeSource) SetShouldClose(close bool) { s.closed = close }
func (s *fakeSource) SetCursorCaptured(captured bool) { s.captured = append(s.captured, captured) }

type recordingMenu struct{ navs []Nav }

func (m *recordingMenu) Navigate(rc *renderer.RenderContext, n Nav) { m.navs = append(m.navs, n) }

const limitZ = float32(38.942)

func newContext(pos mgl32.Vec3) *renderer.RenderContext {
	return &renderer.RenderContext{
		Camera:       scene.NewCamera(pos),
		CameraFollow: true,
		Delta:        0.1,
		Toggles:      renderer.ToggleState{SpotlightEnabled: true, BlinnShading: true},
	}
}

func TestMovementGuardBoundary(t *testing.T) {
	g := MovementGuard{LimitZ: limitZ}

	assert.True(t, g.Allows(scene.Backward, mgl32.Vec3{0, 0, 38.941}))
	assert.False(t, g.Allows(scene.Backward, mgl32.Vec3{0, 0, 38.942}))
	assert.False(t, g.Allows(scene.Backward, mgl32.Vec3{0, 0, 50}))
	for _, dir := range []scene.Movement{scene.Forward, scene.Left, scene.Right} {
		assert.True(t, g.Allows(dir, mgl32.Vec3{0, 0, 50}))
	}
}

func TestBackwardBlockedPastLimit(t *testing.T) {
	src := newFakeSource()
	c := NewController(src, limitZ)
	rc := newContext(mgl32.Vec3{0, 0, 38.942})

	src.down[KeyS] = true
	c.Process(rc)
	assert.Equal(t, float32(38.942), rc.Camera.Position.Z())

	src.down[KeyS] = false
	src.down[KeyW] = true
	c.Process(rc)
	assert.Less(t, rc.Camera.Position.Z(), float32(38.942))
}

func TestBackwardAllowedInsideLimit(t *testing.T) {
	src := newFakeSource()
	c := NewController(src, limitZ)
	rc := newContext(mgl32.Vec3{0, 0, 38.941})

	src.down[KeyS] = true
	c.Process(rc)
	assert.Greater(t, rc.Camera.Position.Z(), float32(38.941))
}

func TestTogglesAreEdgeTriggered(t *testing.T) {
	src := newFakeSource()
	c := NewController(src, limitZ)
	rc := newContext(mgl32.Vec3{})

	src.down[KeyF] = true
	src.down[KeyB] = true
	c.Process(rc)
	assert.False(t, rc.Toggles.SpotlightEnabled)
	assert.False(t, rc.Toggles.BlinnShading)

	// Held keys do not toggle again.
	c.Process(rc)
	c.Process(rc)
	assert.False(t, rc.Toggles.SpotlightEnabled)
	assert.False(t, rc.Toggles.BlinnShading)

	src.down[KeyF] = false
	c.Process(rc)
	src.down[KeyF] = true
	c.Process(rc)
	assert.True(t, rc.Toggles.SpotlightEnabled)
	assert.False(t, rc.Toggles.BlinnShading)
}

func TestOverlayToggleSwitchesCursorAndFollow(t *testing.T) {
	src := newFakeSource()
	c := NewController(src, limitZ)
	rc := newContext(mgl32.Vec3{})

	src.down[KeyF1] = true
	c.Process(rc)
	assert.True(t, rc.OverlayEnabled)
	assert.False(t, rc.CameraFollow)

	src.down[KeyF1] = false
	c.Process(rc)
	src.down[KeyF1] = true
	c.Process(rc)
	assert.False(t, rc.OverlayEnabled)
	assert.True(t, rc.CameraFollow)

	assert.Equal(t, []bool{false, true}, src.captured)
}

func TestEscapeRequestsClose(t *testing.T) {
	src := newFakeSource()
	c := NewController(src, limitZ)

	c.Process(newContext(mgl32.Vec3{}))
	assert.False(t, src.closed)

	src.down[KeyEscape] = true
	c.Process(newContext(mgl32.Vec3{}))
	assert.True(t, src.closed)
}

func TestFirstMouseSampleIsBaseline(t *testing.T) {
	src := newFakeSource()
	c := NewController(src, limitZ)
	rc := newContext(mgl32.Vec3{})
	yaw, pitch := rc.Camera.Yaw, rc.Camera.Pitch

	src.x, src.y = 500, 300
	c.Process(rc)
	assert.Equal(t, yaw, rc.Camera.Yaw)
	assert.Equal(t, pitch, rc.Camera.Pitch)

	// Moving right and up turns right and looks up.
	src.x, src.y = 510, 280
	c.Process(rc)
	assert.InDelta(t, yaw+1, rc.Camera.Yaw, 1e-5)
	assert.InDelta(t, pitch+2, rc.Camera.Pitch, 1e-5)
}

func TestMouseIgnoredWithoutFollow(t *testing.T) {
	src := newFakeSource()
	c := NewController(src, limitZ)
	rc := newContext(mgl32.Vec3{})
	rc.CameraFollow = false
	yaw := rc.Camera.Yaw

	src.x = 100
	c.Process(rc)
	src.x = 400
	c.Process(rc)
	assert.Equal(t, yaw, rc.Camera.Yaw)

	// Re-enabling follow does not replay the motion made while suspended.
	rc.CameraFollow = true
	c.Process(rc)
	assert.Equal(t, yaw, rc.Camera.Yaw)
}

func TestScrollZooms(t *testing.T) {
	src := newFakeSource()
	c := NewController(src, limitZ)
	rc := newContext(mgl32.Vec3{})

	c.OnScroll(0, 2)
	c.OnScroll(0, 3)
	c.Process(rc)
	assert.Equal(t, float32(40), rc.Camera.Zoom)

	c.Process(rc)
	assert.Equal(t, float32(40), rc.Camera.Zoom, "scroll is consumed once")
}

func TestSmoothZoomAdvancesByFrameDelta(t *testing.T) {
	src := newFakeSource()
	c := NewController(src, limitZ)
	rc := newContext(mgl32.Vec3{})
	rc.Camera.EnableSmoothZoom()

	c.OnScroll(0, 20)
	rc.Delta = 0
	c.Process(rc)
	assert.Equal(t, scene.DefaultZoom, rc.Camera.Zoom)

	rc.Delta = 0.1
	c.Process(rc)
	assert.Less(t, rc.Camera.Zoom, scene.DefaultZoom)
}

func TestMenuNavigationOnlyWhileOverlayOpen(t *testing.T) {
	src := newFakeSource()
	c := NewController(src, limitZ)
	menu := &recordingMenu{}
	c.Menu = menu
	rc := newContext(mgl32.Vec3{})

	src.down[KeyDown] = true
	c.Process(rc)
	assert.Empty(t, menu.navs)

	rc.OverlayEnabled = true
	src.down[KeyDown] = false
	c.Process(rc)
	src.down[KeyDown] = true
	src.down[KeyRight] = true
	c.Process(rc)
	require.Len(t, menu.navs, 2)
	assert.ElementsMatch(t, []Nav{NavDown, NavIncrease}, menu.navs)
}
