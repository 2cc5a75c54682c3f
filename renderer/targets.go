package renderer

import (
	"fmt"

	"temple-viewer/internal/gpu"
)

// AttachmentSpec describes one color attachment.
type AttachmentSpec struct {
	Width  int
	Height int
	Format gpu.Format
}

// TargetSpec describes a render target before allocation.
type TargetSpec struct {
	Name         string
	Colors       []AttachmentSpec
	DepthStencil bool
}

// RenderTarget is an off-screen framebuffer with its color attachments.
type RenderTarget struct {
	Name         string
	Framebuffer  gpu.Framebuffer
	Colors       []gpu.Texture
	Width        int
	Height       int
	DepthStencil bool
}

// Color returns color attachment i.
func (t *RenderTarget) Color(i int) gpu.Texture {
	return t.Colors[i]
}

// IncompleteTargetError reports a render target that cannot be used.
type IncompleteTargetError struct {
	Target string
	Status gpu.Status
	Reason string
}

func (e *IncompleteTargetError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("render target %q incomplete: %s (status=0x%X)", e.Target, e.Reason, uint32(e.Status))
	}
	return fmt.Sprintf("render target %q incomplete: %s", e.Target, e.Reason)
}

// RenderTargetGraph allocates off-screen targets and tracks which one is bound.
type RenderTargetGraph struct {
	dev     gpu.Device
	targets []*RenderTarget
	bound   *RenderTarget

	// Surface size used when the window backbuffer is bound.
	surfaceW int
	surfaceH int
}

// NewRenderTargetGraph creates an empty graph for a window surface of the
// given size.
func NewRenderTargetGraph(dev gpu.Device, surfaceW, surfaceH int) *RenderTargetGraph {
	return &RenderTargetGraph{dev: dev, surfaceW: surfaceW, surfaceH: surfaceH}
}

// Targets lists every target created so far.
func (g *RenderTargetGraph) Targets() []*RenderTarget { return g.targets }

// CreateColorTarget allocates count same-sized floating point color
// attachments, optionally with a depth/stencil buffer.
func (g *RenderTargetGraph) CreateColorTarget(name string, width, height, count int, withDepthStencil bool) (*RenderTarget, error) {
	spec := TargetSpec{Name: name, DepthStencil: withDepthStencil}
	for i := 0; i < count; i++ {
		spec.Colors = append(spec.Colors, AttachmentSpec{Width: width, Height: height, Format: gpu.FormatRGBA16F})
	}
	return g.Create(spec)
}

// Create validates spec, allocates the framebuffer and checks completeness
// once. Nothing is allocated when validation fails.
func (g *RenderTargetGraph) Create(spec TargetSpec) (*RenderTarget, error) {
	if err := validate(spec); err != nil {
		return nil, err
	}

	w, h := spec.Colors[0].Width, spec.Colors[0].Height
	t := &RenderTarget{
		Name:         spec.Name,
		Framebuffer:  g.dev.NewFramebuffer(),
		Width:        w,
		Height:       h,
		DepthStencil: spec.DepthStencil,
	}
	for i, a := range spec.Colors {
		tex := g.dev.NewTexture(a.Width, a.Height, a.Format, gpu.Sampler{Wrap: gpu.WrapClampToEdge}, nil)
		g.dev.AttachColor(t.Framebuffer, i, tex)
		t.Colors = append(t.Colors, tex)
	}
	if spec.DepthStencil {
		g.dev.AttachDepthStencil(t.Framebuffer, w, h)
	}
	g.dev.DrawBuffers(t.Framebuffer, len(t.Colors))

	if status := g.dev.FramebufferStatus(t.Framebuffer); status != gpu.StatusComplete {
		return nil, &IncompleteTargetError{Target: spec.Name, Status: status, Reason: "device rejected framebuffer"}
	}
	g.targets = append(g.targets, t)
	return t, nil
}

func validate(spec TargetSpec) error {
	if len(spec.Colors) == 0 {
		return &IncompleteTargetError{Target: spec.Name, Reason: "no color attachments"}
	}
	w, h := spec.Colors[0].Width, spec.Colors[0].Height
	if w <= 0 || h <= 0 {
		return &IncompleteTargetError{Target: spec.Name, Reason: fmt.Sprintf("invalid size %dx%d", w, h)}
	}
	for i, a := range spec.Colors[1:] {
		if a.Width != w || a.Height != h {
			return &IncompleteTargetError{
				Target: spec.Name,
				Reason: fmt.Sprintf("attachment %d is %dx%d, attachment 0 is %dx%d", i+1, a.Width, a.Height, w, h),
			}
		}
	}
	return nil
}

// Bind makes t the draw target and sizes the viewport to it.
func (g *RenderTargetGraph) Bind(t *RenderTarget) {
	g.bound = t
	g.dev.BindFramebuffer(t.Framebuffer)
	g.dev.Viewport(t.Width, t.Height)
}

// BindDefault makes the window surface the draw target.
func (g *RenderTargetGraph) BindDefault() {
	g.bound = nil
	g.dev.BindFramebuffer(gpu.DefaultFramebuffer)
	g.dev.Viewport(g.surfaceW, g.surfaceH)
}

// Bound returns the bound off-screen target, or nil for the window surface.
func (g *RenderTargetGraph) Bound() *RenderTarget { return g.bound }

// PingPong is a pair of single-attachment targets used alternately as source
// and destination.
type PingPong struct {
	graph   *RenderTargetGraph
	targets [2]*RenderTarget
	write   int
}

// CreatePingPong allocates two single-attachment HDR targets without depth.
func (g *RenderTargetGraph) CreatePingPong(name string, width, height int) (*PingPong, error) {
	pp := &PingPong{graph: g}
	for i := range pp.targets {
		t, err := g.CreateColorTarget(fmt.Sprintf("%s[%d]", name, i), width, height, 1, false)
		if err != nil {
			return nil, err
		}
		pp.targets[i] = t
	}
	pp.Reset()
	return pp, nil
}

// Reset makes target 1 the next write target.
func (p *PingPong) Reset() { p.write = 1 }

// Write returns the target to draw into next.
func (p *PingPong) Write() *RenderTarget { return p.targets[p.write] }

// Read returns the other target, the one last written before Swap.
func (p *PingPong) Read() *RenderTarget { return p.targets[1-p.write] }

// Swap exchanges the read and write roles.
func (p *PingPong) Swap() { p.write = 1 - p.write }

// BindWrite binds the current write target.
func (p *PingPong) BindWrite() { p.graph.Bind(p.Write()) }
