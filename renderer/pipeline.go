package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"temple-viewer/config"
	"temple-viewer/internal/gpu"
)

// Pipeline owns the HDR target and every pass. All of it is created once at
// startup and lives as long as the process.
type Pipeline struct {
	Device    gpu.Device
	Graph     *RenderTargetGraph
	HDR       *RenderTarget
	Geometry  *GeometryPass
	Alpha     *AlphaPass
	Skybox    *SkyboxPass
	Bloom     *BloomBlurPass
	Composite *CompositePass

	ClearColor      mgl32.Vec4
	BloomIterations int
}

// NewPipeline compiles every program and allocates the targets for a surface
// of width × height. Any failure is returned; the caller treats it as fatal.
func NewPipeline(dev gpu.Device, cfg config.Config, width, height int) (*Pipeline, error) {
	r := cfg.Render
	graph := NewRenderTargetGraph(dev, width, height)

	hdr, err := graph.CreateColorTarget("hdr", width, height, 2, true)
	if err != nil {
		return nil, fmt.Errorf("hdr target: %w", err)
	}

	p := &Pipeline{
		Device:          dev,
		Graph:           graph,
		HDR:             hdr,
		ClearColor:      mgl32.Vec4{r.ClearColor[0], r.ClearColor[1], r.ClearColor[2], 1},
		BloomIterations: r.BloomIterations,
	}
	if p.Geometry, err = NewGeometryPass(dev, r.BloomThreshold); err != nil {
		return nil, err
	}
	p.Geometry.Culling = r.FrustumCulling
	if p.Alpha, err = NewAlphaPass(dev, r.FoliageScale, r.AlphaCutoff, r.BloomThreshold); err != nil {
		return nil, err
	}
	if p.Skybox, err = NewSkyboxPass(dev, r.BloomThreshold); err != nil {
		return nil, err
	}
	if p.Bloom, err = NewBloomBlurPass(dev, graph, width, height); err != nil {
		return nil, err
	}
	if p.Composite, err = NewCompositePass(dev, graph); err != nil {
		return nil, err
	}
	return p, nil
}

// SetBloomThreshold updates the bright-pass threshold of every scene pass.
func (p *Pipeline) SetBloomThreshold(t float32) {
	p.Geometry.threshold = t
	p.Alpha.threshold = t
	p.Skybox.threshold = t
}
