package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"temple-viewer/config"
	"temple-viewer/scene"
	"temple-viewer/state"
)

// KernelEffect selects the screen-space convolution applied after tone mapping.
type KernelEffect int32

const (
	KernelBlur KernelEffect = iota
	KernelGrayscale
	KernelEdgeDetect
	KernelNone
)

func (k KernelEffect) String() string {
	switch k {
	case KernelBlur:
		return "Blur"
	case KernelGrayscale:
		return "Grayscale"
	case KernelEdgeDetect:
		return "Edge detection"
	case KernelNone:
		return "None"
	}
	return "Unknown"
}

// Toggle ranges.
const (
	MaxExposure float32 = 5
	MaxGamma    float32 = 4
)

// ToggleState holds the live pipeline switches. Values outside their ranges
// are pulled back by Clamp.
type ToggleState struct {
	HDREnabled       bool
	BloomEnabled     bool
	Exposure         float32
	Gamma            float32
	KernelEffect     KernelEffect
	SpotlightEnabled bool
	BlinnShading     bool
}

// Clamp restricts Exposure to [0,5], Gamma to [0,4] and KernelEffect to a
// known effect.
func (t *ToggleState) Clamp() {
	t.Exposure = clampf(t.Exposure, 0, MaxExposure)
	t.Gamma = clampf(t.Gamma, 0, MaxGamma)
	if t.KernelEffect < KernelBlur || t.KernelEffect > KernelNone {
		t.KernelEffect = KernelNone
	}
}

// TogglesFromConfig builds the startup toggles.
func TogglesFromConfig(c config.TogglesConfig) ToggleState {
	t := ToggleState{
		HDREnabled:       c.HDR,
		BloomEnabled:     c.Bloom,
		Exposure:         c.Exposure,
		Gamma:            c.Gamma,
		KernelEffect:     KernelEffect(c.KernelEffect),
		SpotlightEnabled: c.Spotlight,
		BlinnShading:     c.Blinn,
	}
	t.Clamp()
	return t
}

// View is the camera's per-frame matrices.
type View struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Position   mgl32.Vec3
}

// RenderContext is the state shared by every pass for one frame. It is owned
// by the render goroutine; other goroutines mutate it only through
// FrameOrchestrator.Enqueue.
type RenderContext struct {
	Camera   *scene.Camera
	Toggles  ToggleState
	Lighting *LightingState

	// OverlayEnabled shows the debug overlay. CameraFollow lets mouse motion
	// steer the camera.
	OverlayEnabled bool
	CameraFollow   bool

	Width  int
	Height int
	Near   float32
	Far    float32

	Elapsed float64
	Delta   float32

	Stats FrameStats
}

// FrameStats counts what the last frame drew.
type FrameStats struct {
	ObjectsDrawn int
	ObjectsTotal int
}

// View computes the frame's view and projection from the camera.
func (rc *RenderContext) View() View {
	aspect := float32(1)
	if rc.Height > 0 {
		aspect = float32(rc.Width) / float32(rc.Height)
	}
	return View{
		View:       rc.Camera.ViewMatrix(),
		Projection: rc.Camera.Projection(aspect, rc.Near, rc.Far),
		Position:   rc.Camera.Position,
	}
}

// Snapshot captures the persisted subset of the context.
func (rc *RenderContext) Snapshot() state.ProgramState {
	return state.ProgramState{
		OverlayEnabled: rc.OverlayEnabled,
		BloomEnabled:   rc.Toggles.BloomEnabled,
		Exposure:       rc.Toggles.Exposure,
		HDREnabled:     rc.Toggles.HDREnabled,
		Gamma:          rc.Toggles.Gamma,
		KernelEffect:   int(rc.Toggles.KernelEffect),
		CameraPosition: rc.Camera.Position,
		CameraFront:    rc.Camera.Front,
	}
}

// Restore applies a persisted state. The camera's yaw and pitch are re-derived
// from the saved front vector.
func (rc *RenderContext) Restore(s state.ProgramState) {
	rc.OverlayEnabled = s.OverlayEnabled
	rc.CameraFollow = !s.OverlayEnabled
	rc.Toggles.BloomEnabled = s.BloomEnabled
	rc.Toggles.Exposure = s.Exposure
	rc.Toggles.HDREnabled = s.HDREnabled
	rc.Toggles.Gamma = s.Gamma
	rc.Toggles.KernelEffect = KernelEffect(s.KernelEffect)
	rc.Toggles.Clamp()
	rc.Camera.Position = s.CameraPosition
	rc.Camera.SetFront(s.CameraFront)
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
