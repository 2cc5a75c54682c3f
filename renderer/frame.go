package renderer

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// Stage is one step of a frame, in execution order.
type Stage int

const (
	StageClear Stage = iota
	StageGeometry
	StageAlpha
	StageSkybox
	StageBloom
	StageComposite
	StageOverlay
	StagePresent
)

func (s Stage) String() string {
	switch s {
	case StageClear:
		return "clear"
	case StageGeometry:
		return "geometry"
	case StageAlpha:
		return "alpha"
	case StageSkybox:
		return "skybox"
	case StageBloom:
		return "bloom"
	case StageComposite:
		return "composite"
	case StageOverlay:
		return "overlay"
	case StagePresent:
		return "present"
	}
	return "unknown"
}

// ErrFrameInFlight is returned by Render when called while a frame is being
// rendered.
var ErrFrameInFlight = errors.New("frame already in flight")

// Clock returns seconds since process start.
type Clock func() float64

// SinceStart returns a Clock measuring wall time from now.
func SinceStart() Clock {
	start := time.Now()
	return func() float64 { return time.Since(start).Seconds() }
}

// Presenter shows the finished frame.
type Presenter interface {
	SwapBuffers()
}

// Window is the surface the orchestrator loop runs against.
type Window interface {
	Presenter
	ShouldClose() bool
	PollEvents()
}

// InputHandler consumes the frame's input and mutates the context.
type InputHandler interface {
	Process(rc *RenderContext)
}

// OverlayDrawer draws the debug overlay onto the window surface.
type OverlayDrawer interface {
	Draw(rc *RenderContext)
}

// FrameOrchestrator sequences the passes of one frame and owns the frame
// clock. Render and Advance must be called from the GL goroutine; Enqueue may
// be called from anywhere.
type FrameOrchestrator struct {
	Pipeline *Pipeline
	Scene    *Scene
	Context  *RenderContext

	Clock     Clock
	Overlay   OverlayDrawer
	Presenter Presenter
	// OnStage, when set, is called before each stage runs.
	OnStage func(Stage)

	last     float64
	advanced bool
	inFlight atomic.Bool

	mu      sync.Mutex
	pending []func(*RenderContext)
}

// NewFrameOrchestrator wires a pipeline to its scene and context. The clock
// starts now.
func NewFrameOrchestrator(p *Pipeline, sc *Scene, rc *RenderContext) *FrameOrchestrator {
	return &FrameOrchestrator{Pipeline: p, Scene: sc, Context: rc, Clock: SinceStart()}
}

// Advance reads the clock and updates the context's elapsed time and delta.
// The first delta is the time since the clock started; a clock that goes
// backwards yields a zero delta.
func (o *FrameOrchestrator) Advance() {
	now := o.Clock()
	delta := now
	if o.advanced {
		delta = now - o.last
	}
	if delta < 0 {
		delta = 0
	}
	o.advanced = true
	o.last = now
	o.Context.Elapsed = now
	o.Context.Delta = float32(delta)
}

// Enqueue schedules fn to run against the context before the next frame.
func (o *FrameOrchestrator) Enqueue(fn func(*RenderContext)) {
	o.mu.Lock()
	o.pending = append(o.pending, fn)
	o.mu.Unlock()
}

func (o *FrameOrchestrator) drain() {
	o.mu.Lock()
	pending := o.pending
	o.pending = nil
	o.mu.Unlock()
	for _, fn := range pending {
		fn(o.Context)
	}
}

func (o *FrameOrchestrator) stage(s Stage) {
	if o.OnStage != nil {
		o.OnStage(s)
	}
}

// Render runs one frame: queued mutations, then every stage in order.
func (o *FrameOrchestrator) Render() error {
	if !o.inFlight.CompareAndSwap(false, true) {
		return ErrFrameInFlight
	}
	defer o.inFlight.Store(false)

	o.drain()

	p, sc, rc := o.Pipeline, o.Scene, o.Context

	o.stage(StageClear)
	p.Graph.Bind(p.HDR)
	p.Device.SetDepthTest(true)
	p.Device.Clear(p.ClearColor)

	o.stage(StageGeometry)
	lights := rc.Lighting.Uniforms(rc.Elapsed)
	spot := rc.Lighting.Spotlight(rc.Camera, rc.Toggles.SpotlightEnabled)
	p.Geometry.Draw(rc, sc.Objects, lights, spot)

	o.stage(StageAlpha)
	p.Alpha.Draw(rc, sc.Foliage, sc.FoliageTex)

	o.stage(StageSkybox)
	p.Skybox.Draw(rc, sc.Skybox)

	o.stage(StageBloom)
	bloom := p.Bloom.Blur(p.HDR.Color(1), p.BloomIterations)

	o.stage(StageComposite)
	p.Composite.Composite(rc, p.HDR.Color(0), bloom)

	if rc.OverlayEnabled && o.Overlay != nil {
		o.stage(StageOverlay)
		o.Overlay.Draw(rc)
	}

	if o.Presenter != nil {
		o.stage(StagePresent)
		o.Presenter.SwapBuffers()
	}
	return nil
}

// Run renders frames until the window asks to close. Input is processed after
// the clock advances and before the frame is drawn.
func (o *FrameOrchestrator) Run(win Window, input InputHandler) error {
	o.Presenter = win
	for !win.ShouldClose() {
		o.Advance()
		if input != nil {
			input.Process(o.Context)
		}
		if err := o.Render(); err != nil {
			return err
		}
		win.PollEvents()
	}
	return nil
}
