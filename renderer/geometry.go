package renderer

import (
	"fmt"

	"temple-viewer/internal/gpu"
	"temple-viewer/scene"
)

// Texture units used by the lit program.
const (
	unitDiffuse  = 0
	unitSpecular = 1
)

// GeometryPass draws the lit opaque models into the bound HDR target. With
// Culling set, drawables whose bounds fall outside the view are skipped.
type GeometryPass struct {
	Culling bool

	dev       gpu.Device
	program   gpu.Program
	threshold float32
}

// NewGeometryPass compiles the lighting program.
func NewGeometryPass(dev gpu.Device, bloomThreshold float32) (*GeometryPass, error) {
	prog, err := dev.NewProgram(litVertSrc, litFragSrc)
	if err != nil {
		return nil, fmt.Errorf("lighting shader: %w", err)
	}
	dev.UseProgram(prog)
	dev.SetInt("material.texture_diffuse1", unitDiffuse)
	dev.SetInt("material.texture_specular1", unitSpecular)
	return &GeometryPass{dev: dev, program: prog, threshold: bloomThreshold}, nil
}

// Program returns the lighting program handle.
func (p *GeometryPass) Program() gpu.Program { return p.program }

// Draw issues one draw call per mesh of every visible drawable. Back-face culling is
// enabled only around drawables that ask for it.
func (p *GeometryPass) Draw(rc *RenderContext, drawables []Drawable, lights LightUniformSet, spot SpotlightUniforms) {
	dev := p.dev
	v := rc.View()

	dev.UseProgram(p.program)
	dev.SetMat4("projection", v.Projection)
	dev.SetMat4("view", v.View)
	dev.SetVec3("viewPos", v.Position)
	dev.SetBool("blinn", rc.Toggles.BlinnShading)
	dev.SetFloat("bloomThreshold", p.threshold)
	lights.Apply(dev)
	spot.Apply(dev)

	frustum := scene.FrustumFromVP(v.Projection.Mul4(v.View))
	rc.Stats.ObjectsDrawn, rc.Stats.ObjectsTotal = 0, len(drawables)
	for _, d := range drawables {
		if d.Model == nil {
			continue
		}
		model := d.Transform.Matrix(rc.Elapsed)
		if p.Culling && !d.Model.Bounds.Transform(model).IntersectsFrustum(&frustum) {
			continue
		}
		rc.Stats.ObjectsDrawn++
		dev.SetMat4("model", model)
		if d.CullBackFaces {
			dev.SetCullFace(true)
		}
		for _, m := range d.Model.Meshes {
			dev.BindTexture(unitDiffuse, m.Diffuse)
			dev.BindTexture(unitSpecular, m.Specular)
			dev.Draw(m.Geometry)
		}
		if d.CullBackFaces {
			dev.SetCullFace(false)
		}
	}
}
