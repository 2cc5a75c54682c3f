package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"temple-viewer/internal/gpu"
)

// skyboxVerts is a unit cube, 36 positions, seen from inside.
var skyboxVerts = []float32{
	// -Z
	-1, 1, -1, -1, -1, -1, 1, -1, -1,
	1, -1, -1, 1, 1, -1, -1, 1, -1,
	// -X
	-1, -1, 1, -1, -1, -1, -1, 1, -1,
	-1, 1, -1, -1, 1, 1, -1, -1, 1,
	// +X
	1, -1, -1, 1, -1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, -1, 1, -1, -1,
	// +Z
	-1, -1, 1, -1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, -1, 1, -1, -1, 1,
	// +Y
	-1, 1, -1, 1, 1, -1, 1, 1, 1,
	1, 1, 1, -1, 1, 1, -1, 1, -1,
	// -Y
	-1, -1, -1, -1, -1, 1, 1, -1, -1,
	1, -1, -1, -1, -1, 1, 1, -1, 1,
}

// SkyboxPass draws the cube map behind everything already in the depth buffer.
type SkyboxPass struct {
	dev       gpu.Device
	program   gpu.Program
	cube      gpu.Geometry
	threshold float32
}

// NewSkyboxPass compiles the sky program and uploads the cube.
func NewSkyboxPass(dev gpu.Device, bloomThreshold float32) (*SkyboxPass, error) {
	prog, err := dev.NewProgram(skyVertSrc, skyFragSrc)
	if err != nil {
		return nil, fmt.Errorf("skybox shader: %w", err)
	}
	dev.UseProgram(prog)
	dev.SetInt("skybox", 0)
	cube := dev.NewGeometry(gpu.GeometryDesc{
		Layout:   gpu.VertexLayout{3},
		Vertices: skyboxVerts,
		Mode:     gpu.Triangles,
	})
	return &SkyboxPass{dev: dev, program: prog, cube: cube, threshold: bloomThreshold}, nil
}

// Program returns the sky program handle.
func (p *SkyboxPass) Program() gpu.Program { return p.program }

// Draw renders the sky at the far plane. The depth function is LEQUAL for the
// draw and LESS again afterwards.
func (p *SkyboxPass) Draw(rc *RenderContext, cube gpu.Texture) {
	dev := p.dev
	v := rc.View()

	dev.SetDepthFunc(gpu.DepthLessEqual)
	dev.UseProgram(p.program)
	dev.SetMat4("view", StripTranslation(v.View))
	dev.SetMat4("projection", v.Projection)
	dev.SetFloat("bloomThreshold", p.threshold)
	dev.BindTexture(0, cube)
	dev.Draw(p.cube)
	dev.SetDepthFunc(gpu.DepthLess)
}

// StripTranslation keeps only the rotation part of a view matrix.
func StripTranslation(view mgl32.Mat4) mgl32.Mat4 {
	return view.Mat3().Mat4()
}
