package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"temple-viewer/internal/gpu"
)

// NewGeometry uploads interleaved float vertices (and optional indices) into a
// new VAO. An empty layout yields an attribute-less VAO drawn with desc.Count
// vertices.
func (d *Device) NewGeometry(desc gpu.GeometryDesc) gpu.Geometry {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	g := gpu.Geometry{ID: vao, Count: desc.Count, Mode: desc.Mode}

	if stride := desc.Layout.Stride(); stride > 0 && len(desc.Vertices) > 0 {
		var vbo uint32
		gl.GenBuffers(1, &vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(desc.Vertices)*4, gl.Ptr(desc.Vertices), gl.STATIC_DRAW)

		offset := 0
		for loc, n := range desc.Layout {
			gl.VertexAttribPointerWithOffset(uint32(loc), int32(n), gl.FLOAT, false, int32(stride*4), uintptr(offset*4))
			gl.EnableVertexAttribArray(uint32(loc))
			offset += n
		}
		g.Count = int32(len(desc.Vertices) / stride)
	}

	if len(desc.Indices) > 0 {
		var ebo uint32
		gl.GenBuffers(1, &ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(desc.Indices)*4, gl.Ptr(desc.Indices), gl.STATIC_DRAW)
		g.Indexed = true
		g.Count = int32(len(desc.Indices))
	}

	gl.BindVertexArray(0)
	return g
}

func (d *Device) Draw(g gpu.Geometry) {
	mode := uint32(gl.TRIANGLES)
	if g.Mode == gpu.TriangleStrip {
		mode = gl.TRIANGLE_STRIP
	}
	gl.BindVertexArray(g.ID)
	if g.Indexed {
		gl.DrawElements(mode, g.Count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(mode, 0, g.Count)
	}
	gl.BindVertexArray(0)
}
