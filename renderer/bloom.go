package renderer

import (
	"fmt"

	"temple-viewer/internal/gpu"
)

// BloomBlurPass blurs the bright-pass texture with a separable Gaussian,
// alternating horizontal and vertical passes over a ping-pong pair.
type BloomBlurPass struct {
	dev      gpu.Device
	program  gpu.Program
	triangle gpu.Geometry
	pp       *PingPong
}

// NewBloomBlurPass compiles the blur program and allocates the ping-pong pair
// at the given size.
func NewBloomBlurPass(dev gpu.Device, graph *RenderTargetGraph, width, height int) (*BloomBlurPass, error) {
	prog, err := dev.NewProgram(screenVertSrc, blurFragSrc)
	if err != nil {
		return nil, fmt.Errorf("blur shader: %w", err)
	}
	dev.UseProgram(prog)
	dev.SetInt("image", 0)

	pp, err := graph.CreatePingPong("bloom", width, height)
	if err != nil {
		return nil, fmt.Errorf("bloom targets: %w", err)
	}
	return &BloomBlurPass{
		dev:      dev,
		program:  prog,
		triangle: newFullscreenTriangle(dev),
		pp:       pp,
	}, nil
}

// Program returns the blur program handle.
func (p *BloomBlurPass) Program() gpu.Program { return p.program }

// Targets returns the ping-pong pair.
func (p *BloomBlurPass) Targets() *PingPong { return p.pp }

// Blur runs iterations single-axis passes starting horizontally. The first
// pass reads source; each later pass reads the previous output. It returns
// the last texture written, or source when iterations is not positive.
func (p *BloomBlurPass) Blur(source gpu.Texture, iterations int) gpu.Texture {
	if iterations <= 0 {
		return source
	}
	dev := p.dev
	dev.SetDepthTest(false)
	dev.UseProgram(p.program)

	p.pp.Reset()
	input := source
	horizontal := true
	for i := 0; i < iterations; i++ {
		p.pp.BindWrite()
		dev.SetBool("horizontal", horizontal)
		dev.BindTexture(0, input)
		dev.Draw(p.triangle)

		input = p.pp.Write().Color(0)
		horizontal = !horizontal
		p.pp.Swap()
	}
	dev.SetDepthTest(true)
	return input
}

// newFullscreenTriangle creates the attribute-less triangle drawn by the
// screen-space passes.
func newFullscreenTriangle(dev gpu.Device) gpu.Geometry {
	return dev.NewGeometry(gpu.GeometryDesc{Mode: gpu.Triangles, Count: 3})
}
