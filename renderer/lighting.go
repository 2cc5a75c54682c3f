package renderer

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"temple-viewer/config"
	"temple-viewer/internal/gpu"
	"temple-viewer/scene"
)

// MaxPointLights is the size of the point light array in the lighting shader.
const MaxPointLights = 8

// Attenuation is the constant/linear/quadratic distance falloff.
type Attenuation struct {
	Constant  float32
	Linear    float32
	Quadratic float32
}

// DirectionalLight is a light at infinity.
type DirectionalLight struct {
	Direction mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
}

// PointLight is one evaluated point light.
type PointLight struct {
	Position mgl32.Vec3
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
	Attenuation
}

// Wave is Amplitude * Func(Rate * t).
type Wave struct {
	Cosine    bool
	Amplitude float32
	Rate      float32
}

// At evaluates the wave. The phase is computed in float64 so long sessions
// keep their precision.
func (w Wave) At(t float64) float32 {
	phase := float64(w.Rate) * t
	if w.Cosine {
		return w.Amplitude * float32(math.Cos(phase))
	}
	return w.Amplitude * float32(math.Sin(phase))
}

// Period returns 2π/Rate, or 0 for a constant wave.
func (w Wave) Period() float64 {
	if w.Rate == 0 {
		return 0
	}
	return 2 * math.Pi / math.Abs(float64(w.Rate))
}

// PointLightSpec is a point light definition whose animated parts are
// expressed as waves of elapsed time.
type PointLightSpec struct {
	Name string
	Base PointLight
	// Orbit replaces individual position components; nil keeps the base value.
	Orbit [3]*Wave
	// AmbientWave and DiffuseWave scale the base colours.
	AmbientWave *Wave
	DiffuseWave *Wave
}

// Waves lists every animated component of the light.
func (s PointLightSpec) Waves() []Wave {
	var out []Wave
	for _, w := range s.Orbit {
		if w != nil {
			out = append(out, *w)
		}
	}
	if s.AmbientWave != nil {
		out = append(out, *s.AmbientWave)
	}
	if s.DiffuseWave != nil {
		out = append(out, *s.DiffuseWave)
	}
	return out
}

// At evaluates the light at elapsed time t.
func (s PointLightSpec) At(t float64) PointLight {
	l := s.Base
	for i, w := range s.Orbit {
		if w != nil {
			l.Position[i] = w.At(t)
		}
	}
	if s.AmbientWave != nil {
		l.Ambient = s.Base.Ambient.Mul(s.AmbientWave.At(t))
	}
	if s.DiffuseWave != nil {
		l.Diffuse = s.Base.Diffuse.Mul(s.DiffuseWave.At(t))
	}
	return l
}

// SpotlightSpec is the camera-mounted cone light.
type SpotlightSpec struct {
	InnerDeg float32
	OuterDeg float32
	Attenuation
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
}

// LightUniformSet is every scene light evaluated for one frame.
type LightUniformSet struct {
	Directional DirectionalLight
	Points      []PointLight
	Shininess   float32
}

// SpotlightUniforms is the evaluated spotlight. CutOff and OuterCutOff are
// cosines.
type SpotlightUniforms struct {
	Position    mgl32.Vec3
	Direction   mgl32.Vec3
	CutOff      float32
	OuterCutOff float32
	Attenuation
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
}

// LightingState is the light table. Only the directional light is mutable;
// animated point light values are derived from elapsed time and never stored.
type LightingState struct {
	directional DirectionalLight
	points      []PointLightSpec
	spot        SpotlightSpec
	shininess   float32
}

// NewLightingState builds the light table from configuration. At most
// MaxPointLights point lights are accepted.
func NewLightingState(c config.LightingConfig) (*LightingState, error) {
	if len(c.Points) > MaxPointLights {
		return nil, fmt.Errorf("lighting: %d point lights configured, at most %d supported", len(c.Points), MaxPointLights)
	}
	ls := &LightingState{
		directional: DirectionalLight{
			Direction: vec3(c.Directional.Direction),
			Ambient:   vec3(c.Directional.Ambient),
			Diffuse:   vec3(c.Directional.Diffuse),
			Specular:  vec3(c.Directional.Specular),
		},
		spot: SpotlightSpec{
			InnerDeg:    c.Spotlight.InnerDeg,
			OuterDeg:    c.Spotlight.OuterDeg,
			Attenuation: attenuation(c.Spotlight.Attenuation),
			Ambient:     vec3(c.Spotlight.Ambient),
			Diffuse:     vec3(c.Spotlight.Diffuse),
			Specular:    vec3(c.Spotlight.Specular),
		},
		shininess: c.Shininess,
	}
	for _, p := range c.Points {
		spec, err := pointSpec(p)
		if err != nil {
			return nil, err
		}
		ls.points = append(ls.points, spec)
	}
	return ls, nil
}

func pointSpec(p config.PointLight) (PointLightSpec, error) {
	spec := PointLightSpec{
		Name: p.Name,
		Base: PointLight{
			Position:    vec3(p.Position),
			Ambient:     vec3(p.Ambient),
			Diffuse:     vec3(p.Diffuse),
			Specular:    vec3(p.Specular),
			Attenuation: attenuation(p.Attenuation),
		},
	}
	var err error
	if p.Orbit != nil {
		for i, w := range []*config.Wave{p.Orbit.X, p.Orbit.Y, p.Orbit.Z} {
			if spec.Orbit[i], err = wave(w); err != nil {
				return spec, fmt.Errorf("light %q orbit: %w", p.Name, err)
			}
		}
	}
	if p.Flicker != nil {
		if spec.AmbientWave, err = wave(p.Flicker.Ambient); err != nil {
			return spec, fmt.Errorf("light %q flicker: %w", p.Name, err)
		}
		if spec.DiffuseWave, err = wave(p.Flicker.Diffuse); err != nil {
			return spec, fmt.Errorf("light %q flicker: %w", p.Name, err)
		}
	}
	return spec, nil
}

func wave(w *config.Wave) (*Wave, error) {
	if w == nil {
		return nil, nil
	}
	switch w.Func {
	case "sin":
		return &Wave{Amplitude: w.Amplitude, Rate: w.Rate}, nil
	case "cos":
		return &Wave{Cosine: true, Amplitude: w.Amplitude, Rate: w.Rate}, nil
	}
	return nil, fmt.Errorf("unknown wave function %q", w.Func)
}

func vec3(v config.Vec3) mgl32.Vec3 { return mgl32.Vec3{v[0], v[1], v[2]} }

func attenuation(a config.Attenuation) Attenuation {
	return Attenuation{Constant: a.Constant, Linear: a.Linear, Quadratic: a.Quadratic}
}

// Points returns the point light definitions.
func (ls *LightingState) Points() []PointLightSpec { return ls.points }

// Directional returns the current directional light.
func (ls *LightingState) Directional() DirectionalLight { return ls.directional }

// SetDirectional replaces the directional light.
func (ls *LightingState) SetDirectional(d DirectionalLight) { ls.directional = d }

// Uniforms evaluates every light at elapsed time t. The result depends only on
// t and the light table.
func (ls *LightingState) Uniforms(t float64) LightUniformSet {
	set := LightUniformSet{
		Directional: ls.directional,
		Points:      make([]PointLight, len(ls.points)),
		Shininess:   ls.shininess,
	}
	for i, p := range ls.points {
		set.Points[i] = p.At(t)
	}
	return set
}

// Spotlight places the cone at the camera, pointing where it looks. A disabled
// spotlight keeps its geometry and gets zero intensities.
func (ls *LightingState) Spotlight(cam *scene.Camera, enabled bool) SpotlightUniforms {
	s := SpotlightUniforms{
		Position:    cam.Position,
		Direction:   cam.Front,
		CutOff:      math32.Cos(mgl32.DegToRad(ls.spot.InnerDeg)),
		OuterCutOff: math32.Cos(mgl32.DegToRad(ls.spot.OuterDeg)),
		Attenuation: ls.spot.Attenuation,
	}
	if enabled {
		s.Ambient = ls.spot.Ambient
		s.Diffuse = ls.spot.Diffuse
		s.Specular = ls.spot.Specular
	}
	return s
}

// Apply uploads the light set to the current program.
func (u LightUniformSet) Apply(dev gpu.Device) {
	dev.SetVec3("dirLight.direction", u.Directional.Direction)
	dev.SetVec3("dirLight.ambient", u.Directional.Ambient)
	dev.SetVec3("dirLight.diffuse", u.Directional.Diffuse)
	dev.SetVec3("dirLight.specular", u.Directional.Specular)

	dev.SetInt("pointLightCount", int32(len(u.Points)))
	for i, p := range u.Points {
		prefix := fmt.Sprintf("pointLights[%d].", i)
		dev.SetVec3(prefix+"position", p.Position)
		dev.SetVec3(prefix+"ambient", p.Ambient)
		dev.SetVec3(prefix+"diffuse", p.Diffuse)
		dev.SetVec3(prefix+"specular", p.Specular)
		dev.SetFloat(prefix+"constant", p.Constant)
		dev.SetFloat(prefix+"linear", p.Linear)
		dev.SetFloat(prefix+"quadratic", p.Quadratic)
	}
	dev.SetFloat("material.shininess", u.Shininess)
}

// Apply uploads the spotlight to the current program. The same uniforms are
// written whether or not the light is lit.
func (s SpotlightUniforms) Apply(dev gpu.Device) {
	dev.SetVec3("spotLight.position", s.Position)
	dev.SetVec3("spotLight.direction", s.Direction)
	dev.SetFloat("spotLight.cutOff", s.CutOff)
	dev.SetFloat("spotLight.outerCutOff", s.OuterCutOff)
	dev.SetFloat("spotLight.constant", s.Constant)
	dev.SetFloat("spotLight.linear", s.Linear)
	dev.SetFloat("spotLight.quadratic", s.Quadratic)
	dev.SetVec3("spotLight.ambient", s.Ambient)
	dev.SetVec3("spotLight.diffuse", s.Diffuse)
	dev.SetVec3("spotLight.specular", s.Specular)
}
