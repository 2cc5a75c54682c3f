// Package gputest provides a recording gpu.Device for headless tests.
package gputest

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"temple-viewer/internal/gpu"
)

// Call is one recorded device operation.
type Call struct {
	Op    string
	Name  string
	Value any
}

// DrawCall is a snapshot of the pipeline state at the moment of a Draw.
type DrawCall struct {
	Framebuffer gpu.Framebuffer
	Program     gpu.Program
	Geometry    gpu.Geometry
	Units       map[int]gpu.Texture
	Uniforms    map[string]any
	CullFace    bool
	DepthFunc   gpu.DepthFunc
	DepthTest   bool
	Blend       bool
}

// Recorder implements gpu.Device without a GPU. Handles are allocated from a
// single counter so textures, framebuffers and programs never share an ID.
type Recorder struct {
	Calls []Call
	Draws []DrawCall

	// Status is returned by FramebufferStatus. Zero means complete.
	Status gpu.Status
	// CompileErr, when set, is returned by NewProgram.
	CompileErr error

	Framebuffer gpu.Framebuffer
	Program     gpu.Program
	Units       map[int]gpu.Texture
	Uniforms    map[gpu.Program]map[string]any
	Attachments map[gpu.Framebuffer]map[int]gpu.Texture
	DepthFunc   gpu.DepthFunc
	CullFace    bool
	DepthTest   bool
	Blend       bool
	ViewportW   int
	ViewportH   int

	next uint32
}

var _ gpu.Device = (*Recorder)(nil)

// NewRecorder returns an empty recorder with the depth test enabled.
func NewRecorder() *Recorder {
	return &Recorder{
		Units:       make(map[int]gpu.Texture),
		Uniforms:    make(map[gpu.Program]map[string]any),
		Attachments: make(map[gpu.Framebuffer]map[int]gpu.Texture),
		DepthTest:   true,
	}
}

func (r *Recorder) id() uint32 {
	r.next++
	return r.next
}

func (r *Recorder) record(op, name string, v any) {
	r.Calls = append(r.Calls, Call{Op: op, Name: name, Value: v})
}

// Ops returns the sequence of recorded operation names.
func (r *Recorder) Ops() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Op
	}
	return out
}

// UniformNames returns the names set on p, in first-set order.
func (r *Recorder) UniformNames(p gpu.Program) []string {
	var names []string
	seen := make(map[string]bool)
	for _, c := range r.Calls {
		if c.Op != "uniform" || seen[c.Name] {
			continue
		}
		if prog, ok := c.Value.(uniformValue); ok && prog.program == p {
			seen[c.Name] = true
			names = append(names, c.Name)
		}
	}
	return names
}

// Uniform returns the last value set for name on p.
func (r *Recorder) Uniform(p gpu.Program, name string) (any, bool) {
	v, ok := r.Uniforms[p][name]
	return v, ok
}

// Reset forgets recorded calls and draws but keeps allocated resources.
func (r *Recorder) Reset() {
	r.Calls = nil
	r.Draws = nil
}

type uniformValue struct {
	program gpu.Program
	value   any
}

func (r *Recorder) NewTexture(width, height int, format gpu.Format, s gpu.Sampler, pix []byte) gpu.Texture {
	t := gpu.Texture{ID: r.id(), Width: width, Height: height, Format: format}
	r.record("NewTexture", format.String(), t)
	return t
}

func (r *Recorder) UpdateTexture(tex gpu.Texture, pix []byte) {
	r.record("UpdateTexture", "", tex)
}

func (r *Recorder) NewCubeMap(faces [6]gpu.Image) gpu.Texture {
	t := gpu.Texture{ID: r.id(), Width: faces[0].Width, Height: faces[0].Height, Format: gpu.FormatRGBA8, Cube: true}
	r.record("NewCubeMap", "", faces)
	return t
}

func (r *Recorder) NewFramebuffer() gpu.Framebuffer {
	fb := gpu.Framebuffer(r.id())
	r.Attachments[fb] = make(map[int]gpu.Texture)
	r.record("NewFramebuffer", "", fb)
	return fb
}

func (r *Recorder) AttachColor(fb gpu.Framebuffer, slot int, tex gpu.Texture) {
	r.Attachments[fb][slot] = tex
	r.record("AttachColor", fmt.Sprint(slot), tex)
}

func (r *Recorder) AttachDepthStencil(fb gpu.Framebuffer, width, height int) {
	r.record("AttachDepthStencil", "", fb)
}

func (r *Recorder) DrawBuffers(fb gpu.Framebuffer, count int) {
	r.record("DrawBuffers", "", count)
}

func (r *Recorder) FramebufferStatus(fb gpu.Framebuffer) gpu.Status {
	if r.Status != 0 {
		return r.Status
	}
	return gpu.StatusComplete
}

func (r *Recorder) NewProgram(vertSrc, fragSrc string) (gpu.Program, error) {
	if r.CompileErr != nil {
		return 0, r.CompileErr
	}
	p := gpu.Program(r.id())
	r.Uniforms[p] = make(map[string]any)
	r.record("NewProgram", "", p)
	return p, nil
}

func (r *Recorder) NewGeometry(desc gpu.GeometryDesc) gpu.Geometry {
	g := gpu.Geometry{ID: r.id(), Count: desc.Count, Mode: desc.Mode}
	if len(desc.Indices) > 0 {
		g.Indexed = true
		g.Count = int32(len(desc.Indices))
	} else if stride := desc.Layout.Stride(); stride > 0 {
		g.Count = int32(len(desc.Vertices) / stride)
	}
	r.record("NewGeometry", "", g)
	return g
}

func (r *Recorder) BindFramebuffer(fb gpu.Framebuffer) {
	r.Framebuffer = fb
	r.record("BindFramebuffer", "", fb)
}

func (r *Recorder) Viewport(width, height int) {
	r.ViewportW, r.ViewportH = width, height
	r.record("Viewport", "", [2]int{width, height})
}

func (r *Recorder) Clear(color mgl32.Vec4) {
	r.record("Clear", "", color)
}

func (r *Recorder) UseProgram(p gpu.Program) {
	r.Program = p
	r.record("UseProgram", "", p)
}

func (r *Recorder) setUniform(name string, v any) {
	if r.Uniforms[r.Program] == nil {
		r.Uniforms[r.Program] = make(map[string]any)
	}
	r.Uniforms[r.Program][name] = v
	r.record("uniform", name, uniformValue{program: r.Program, value: v})
}

func (r *Recorder) SetInt(name string, v int32) { r.setUniform(name, v) }
func (r *Recorder) SetBool(name string, v bool) { r.setUniform(name, v) }
func (r *Recorder) SetFloat(name string, v float32) { r.setUniform(name, v) }
func (r *Recorder) SetVec2(name string, v mgl32.Vec2) { r.setUniform(name, v) }
func (r *Recorder) SetVec3(name string, v mgl32.Vec3) { r.setUniform(name, v) }
func (r *Recorder) SetMat4(name string, m mgl32.Mat4) { r.setUniform(name, m) }

func (r *Recorder) BindTexture(unit int, tex gpu.Texture) {
	r.Units[unit] = tex
	r.record("BindTexture", fmt.Sprint(unit), tex)
}

func (r *Recorder) SetDepthTest(enabled bool) {
	r.DepthTest = enabled
	r.record("SetDepthTest", "", enabled)
}

func (r *Recorder) SetDepthFunc(fn gpu.DepthFunc) {
	r.DepthFunc = fn
	r.record("SetDepthFunc", "", fn)
}

func (r *Recorder) SetCullFace(enabled bool) {
	r.CullFace = enabled
	r.record("SetCullFace", "", enabled)
}

func (r *Recorder) SetBlend(enabled bool) {
	r.Blend = enabled
	r.record("SetBlend", "", enabled)
}

func (r *Recorder) Draw(g gpu.Geometry) {
	units := make(map[int]gpu.Texture, len(r.Units))
	for k, v := range r.Units {
		units[k] = v
	}
	uniforms := make(map[string]any, len(r.Uniforms[r.Program]))
	for k, v := range r.Uniforms[r.Program] {
		uniforms[k] = v
	}
	r.Draws = append(r.Draws, DrawCall{
		Framebuffer: r.Framebuffer,
		Program:     r.Program,
		Geometry:    g,
		Units:       units,
		Uniforms:    uniforms,
		CullFace:    r.CullFace,
		DepthFunc:   r.DepthFunc,
		DepthTest:   r.DepthTest,
		Blend:       r.Blend,
	})
	r.record("Draw", "", g)
}

// Writes reports the color textures attached to the framebuffer of d.
func (r *Recorder) Writes(d DrawCall) []gpu.Texture {
	var out []gpu.Texture
	for _, t := range r.Attachments[d.Framebuffer] {
		out = append(out, t)
	}
	return out
}
