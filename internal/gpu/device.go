// Package gpu declares the small graphics-device surface the render passes are
// written against. The OpenGL implementation lives in internal/opengl; tests use
// the recording fake in internal/gpu/gputest.
package gpu

import "github.com/go-gl/mathgl/mgl32"

// Format is a texture storage format.
type Format int

const (
	FormatRGBA8 Format = iota
	FormatSRGBA8
	FormatRGBA16F
)

func (f Format) String() string {
	switch f {
	case FormatRGBA8:
		return "RGBA8"
	case FormatSRGBA8:
		return "SRGB8_ALPHA8"
	case FormatRGBA16F:
		return "RGBA16F"
	}
	return "unknown"
}

// Wrap selects the texture addressing mode.
type Wrap int

const (
	WrapRepeat Wrap = iota
	WrapClampToEdge
)

// Sampler describes how a 2D texture is filtered and addressed.
type Sampler struct {
	Wrap    Wrap
	Mipmaps bool
}

// Texture is a handle to a GPU texture. The zero value is "no texture".
type Texture struct {
	ID     uint32
	Width  int
	Height int
	Format Format
	Cube   bool
}

// Valid reports whether the handle refers to an allocated texture.
func (t Texture) Valid() bool { return t.ID != 0 }

// Image is tightly packed RGBA8 pixel data.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// Framebuffer is a framebuffer handle; 0 is the window surface.
type Framebuffer uint32

// DefaultFramebuffer is the window's backbuffer.
const DefaultFramebuffer Framebuffer = 0

// Status is a framebuffer completeness status code.
type Status uint32

// StatusComplete matches GL_FRAMEBUFFER_COMPLETE.
const StatusComplete Status = 0x8CD5

// Program is a linked shader program handle.
type Program uint32

// Primitive is the topology used by Draw.
type Primitive int

const (
	Triangles Primitive = iota
	TriangleStrip
)

// VertexLayout lists the float component count of each interleaved attribute,
// in attribute-location order. {3, 3, 2} is position, normal, uv.
type VertexLayout []int

// Stride returns the number of floats per vertex.
func (l VertexLayout) Stride() int {
	n := 0
	for _, c := range l {
		n += c
	}
	return n
}

// GeometryDesc describes vertex data to upload. Count is only used for
// attribute-less draws where the shader synthesises positions.
type GeometryDesc struct {
	Layout   VertexLayout
	Vertices []float32
	Indices  []uint32
	Mode     Primitive
	Count    int32
}

// Geometry is an uploaded vertex array ready to draw.
type Geometry struct {
	ID      uint32
	Count   int32
	Indexed bool
	Mode    Primitive
}

// DepthFunc is the depth comparison used by the depth test.
type DepthFunc int

const (
	DepthLess DepthFunc = iota
	DepthLessEqual
)

// Device is the graphics API used by every pass. Uniform setters apply to the
// program last passed to UseProgram. All methods must be called from the
// goroutine that owns the context.
type Device interface {
	NewTexture(width, height int, format Format, s Sampler, pix []byte) Texture
	UpdateTexture(tex Texture, pix []byte)
	NewCubeMap(faces [6]Image) Texture
	NewFramebuffer() Framebuffer
	AttachColor(fb Framebuffer, slot int, tex Texture)
	AttachDepthStencil(fb Framebuffer, width, height int)
	DrawBuffers(fb Framebuffer, count int)
	FramebufferStatus(fb Framebuffer) Status
	NewProgram(vertSrc, fragSrc string) (Program, error)
	NewGeometry(desc GeometryDesc) Geometry

	BindFramebuffer(fb Framebuffer)
	Viewport(width, height int)
	Clear(color mgl32.Vec4)
	UseProgram(p Program)
	SetInt(name string, v int32)
	SetBool(name string, v bool)
	SetFloat(name string, v float32)
	SetVec2(name string, v mgl32.Vec2)
	SetVec3(name string, v mgl32.Vec3)
	SetMat4(name string, m mgl32.Mat4)
	BindTexture(unit int, tex Texture)

	SetDepthTest(enabled bool)
	SetDepthFunc(fn DepthFunc)
	SetCullFace(enabled bool)
	SetBlend(enabled bool)
	Draw(g Geometry)
}
