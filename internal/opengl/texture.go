package opengl

import (
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"temple-viewer/internal/gpu"
)

// glFormat maps a storage format to (internal format, pixel format, pixel type).
func glFormat(f gpu.Format) (int32, uint32, uint32) {
	switch f {
	case gpu.FormatSRGBA8:
		return gl.SRGB8_ALPHA8, gl.RGBA, gl.UNSIGNED_BYTE
	case gpu.FormatRGBA16F:
		return gl.RGBA16F, gl.RGBA, gl.FLOAT
	default:
		return gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE
	}
}

func pixels(pix []byte) unsafe.Pointer {
	if len(pix) == 0 {
		return nil
	}
	return unsafe.Pointer(&pix[0])
}

// NewTexture allocates a 2D texture. pix may be nil for render targets.
func (d *Device) NewTexture(width, height int, format gpu.Format, s gpu.Sampler, pix []byte) gpu.Texture {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	wrap := int32(gl.REPEAT)
	if s.Wrap == gpu.WrapClampToEdge {
		wrap = gl.CLAMP_TO_EDGE
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
	if s.Mipmaps {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	internal, pixFmt, pixType := glFormat(format)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(width), int32(height), 0, pixFmt, pixType, pixels(pix))
	if s.Mipmaps && len(pix) > 0 {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return gpu.Texture{ID: id, Width: width, Height: height, Format: format}
}

// UpdateTexture replaces the full contents of an 8-bit texture.
func (d *Device) UpdateTexture(tex gpu.Texture, pix []byte) {
	if !tex.Valid() || len(pix) < tex.Width*tex.Height*4 {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, tex.ID)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(tex.Width), int32(tex.Height), gl.RGBA, gl.UNSIGNED_BYTE, pixels(pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// NewCubeMap uploads six faces in +X, -X, +Y, -Y, +Z, -Z order. Faces with no
// pixel data are left unallocated.
func (d *Device) NewCubeMap(faces [6]gpu.Image) gpu.Texture {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)

	tex := gpu.Texture{ID: id, Format: gpu.FormatRGBA8, Cube: true}
	for i, face := range faces {
		if len(face.Pix) == 0 {
			continue
		}
		if tex.Width == 0 {
			tex.Width, tex.Height = face.Width, face.Height
		}
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA8,
			int32(face.Width), int32(face.Height), 0, gl.RGBA, gl.UNSIGNED_BYTE, pixels(face.Pix))
	}

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return tex
}

// BindTexture binds tex to the given texture unit. The zero texture unbinds.
func (d *Device) BindTexture(unit int, tex gpu.Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	if tex.Cube {
		gl.BindTexture(gl.TEXTURE_CUBE_MAP, tex.ID)
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, tex.ID)
}
