package renderer

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"temple-viewer/internal/gpu"
)

// Composite texture units.
const (
	unitScene = 0
	unitBloom = 1
)

// CompositePass resolves the HDR scene and its blurred bloom onto the window
// surface.
type CompositePass struct {
	dev      gpu.Device
	graph    *RenderTargetGraph
	program  gpu.Program
	triangle gpu.Geometry
}

// NewCompositePass compiles the composite program.
func NewCompositePass(dev gpu.Device, graph *RenderTargetGraph) (*CompositePass, error) {
	prog, err := dev.NewProgram(screenVertSrc, compositeFragSrc)
	if err != nil {
		return nil, fmt.Errorf("composite shader: %w", err)
	}
	dev.UseProgram(prog)
	dev.SetInt("screenTexture", unitScene)
	dev.SetInt("bloomBlur", unitBloom)
	return &CompositePass{dev: dev, graph: graph, program: prog, triangle: newFullscreenTriangle(dev)}, nil
}

// Program returns the composite program handle.
func (p *CompositePass) Program() gpu.Program { return p.program }

// Composite draws a fullscreen triangle into the default framebuffer. Both
// textures are bound whether or not bloom is enabled.
func (p *CompositePass) Composite(rc *RenderContext, sceneColor, bloom gpu.Texture) {
	dev := p.dev
	t := rc.Toggles

	p.graph.BindDefault()
	dev.SetDepthTest(false)
	dev.Clear(mgl32.Vec4{1, 1, 1, 1})

	dev.UseProgram(p.program)
	dev.BindTexture(unitScene, sceneColor)
	dev.BindTexture(unitBloom, bloom)
	dev.SetBool("bloom", t.BloomEnabled)
	dev.SetBool("hdr", t.HDREnabled)
	dev.SetFloat("exposure", t.Exposure)
	dev.SetFloat("gamma", t.Gamma)
	dev.SetInt("effect", int32(t.KernelEffect))
	dev.Draw(p.triangle)

	dev.SetDepthTest(true)
}

// ToneMap applies the composite shader's tone curve to one linear colour:
// 1 - exp(-c*exposure) followed by gamma correction. With hdr false the colour
// is returned unchanged.
func ToneMap(c mgl32.Vec3, exposure, gamma float32, hdr bool) mgl32.Vec3 {
	if !hdr {
		return c
	}
	var out mgl32.Vec3
	for i, v := range c {
		out[i] = math32.Pow(1-math32.Exp(-v*exposure), 1/gamma)
	}
	return out
}
