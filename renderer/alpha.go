package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"temple-viewer/internal/gpu"
)

// quadVertices is a unit quad standing on its left edge: position, uv.
var quadVertices = []float32{
	0, -0.5, 0, 0, 0,
	0, 0.5, 0, 0, 1,
	1, 0.5, 0, 1, 1,

	0, -0.5, 0, 0, 0,
	1, 0.5, 0, 1, 1,
	1, -0.5, 0, 1, 0,
}

// AlphaPass draws alpha-tested billboards. Fragments below the cutoff are
// discarded, so no sorting or blending is needed.
type AlphaPass struct {
	dev       gpu.Device
	program   gpu.Program
	quad      gpu.Geometry
	scale     float32
	cutoff    float32
	threshold float32
}

// NewAlphaPass compiles the foliage program and uploads the quad.
func NewAlphaPass(dev gpu.Device, scale, cutoff, bloomThreshold float32) (*AlphaPass, error) {
	prog, err := dev.NewProgram(foliageVertSrc, foliageFragSrc)
	if err != nil {
		return nil, fmt.Errorf("foliage shader: %w", err)
	}
	dev.UseProgram(prog)
	dev.SetInt("texture1", 0)
	quad := dev.NewGeometry(gpu.GeometryDesc{
		Layout:   gpu.VertexLayout{3, 2},
		Vertices: quadVertices,
		Mode:     gpu.Triangles,
	})
	return &AlphaPass{dev: dev, program: prog, quad: quad, scale: scale, cutoff: cutoff, threshold: bloomThreshold}, nil
}

// Program returns the foliage program handle.
func (p *AlphaPass) Program() gpu.Program { return p.program }

// Draw renders one quad per position, in list order.
func (p *AlphaPass) Draw(rc *RenderContext, positions []mgl32.Vec3, tex gpu.Texture) {
	dev := p.dev
	v := rc.View()

	dev.UseProgram(p.program)
	dev.SetMat4("projection", v.Projection)
	dev.SetMat4("view", v.View)
	dev.SetFloat("alphaCutoff", p.cutoff)
	dev.SetFloat("bloomThreshold", p.threshold)
	dev.BindTexture(0, tex)

	for _, pos := range positions {
		model := mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).Mul4(mgl32.Scale3D(p.scale, p.scale, p.scale))
		dev.SetMat4("model", model)
		dev.Draw(p.quad)
	}
}
