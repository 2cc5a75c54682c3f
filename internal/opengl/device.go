// Package opengl implements gpu.Device on top of the OpenGL 4.1 core profile.
package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"temple-viewer/internal/gpu"
	"temple-viewer/internal/logger"
)

// Device is the OpenGL gpu.Device. It must be created and used on the goroutine
// that owns the current GL context.
type Device struct {
	program   gpu.Program
	bound     gpu.Framebuffer
	locations map[gpu.Program]map[string]int32
}

var _ gpu.Device = (*Device)(nil)

// NewDevice loads the GL function pointers for the current context and sets the
// initial fixed-function state.
func NewDevice() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	logger.Log.Info("OpenGL initialised",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)

	return &Device{locations: make(map[gpu.Program]map[string]int32)}, nil
}

// ── Framebuffers ──────────────────────────────────────────────────────────────

func (d *Device) NewFramebuffer() gpu.Framebuffer {
	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	return gpu.Framebuffer(fbo)
}

// withFramebuffer binds fb for setup work and restores the previous binding.
func (d *Device) withFramebuffer(fb gpu.Framebuffer, fn func()) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(fb))
	fn()
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(d.bound))
}

func (d *Device) AttachColor(fb gpu.Framebuffer, slot int, tex gpu.Texture) {
	d.withFramebuffer(fb, func() {
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0+uint32(slot), gl.TEXTURE_2D, tex.ID, 0)
	})
}

func (d *Device) AttachDepthStencil(fb gpu.Framebuffer, width, height int) {
	d.withFramebuffer(fb, func() {
		var rbo uint32
		gl.GenRenderbuffers(1, &rbo)
		gl.BindRenderbuffer(gl.RENDERBUFFER, rbo)
		gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, int32(width), int32(height))
		gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, rbo)
	})
}

func (d *Device) DrawBuffers(fb gpu.Framebuffer, count int) {
	attachments := make([]uint32, count)
	for i := range attachments {
		attachments[i] = gl.COLOR_ATTACHMENT0 + uint32(i)
	}
	d.withFramebuffer(fb, func() {
		gl.DrawBuffers(int32(count), &attachments[0])
	})
}

func (d *Device) FramebufferStatus(fb gpu.Framebuffer) gpu.Status {
	var status uint32
	d.withFramebuffer(fb, func() {
		status = gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	})
	return gpu.Status(status)
}

func (d *Device) BindFramebuffer(fb gpu.Framebuffer) {
	d.bound = fb
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(fb))
}

func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) Clear(c mgl32.Vec4) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ── Fixed-function state ──────────────────────────────────────────────────────

func (d *Device) SetDepthTest(enabled bool) { toggle(gl.DEPTH_TEST, enabled) }

func (d *Device) SetDepthFunc(fn gpu.DepthFunc) {
	switch fn {
	case gpu.DepthLessEqual:
		gl.DepthFunc(gl.LEQUAL)
	default:
		gl.DepthFunc(gl.LESS)
	}
}

func (d *Device) SetCullFace(enabled bool) {
	toggle(gl.CULL_FACE, enabled)
	if enabled {
		gl.CullFace(gl.BACK)
	}
}

func (d *Device) SetBlend(enabled bool) {
	toggle(gl.BLEND, enabled)
	if enabled {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
}

func toggle(capability uint32, enabled bool) {
	if enabled {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}
