package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the interleaved vertex layout used by every lit mesh.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// VertexStride is the number of floats per interleaved Vertex.
const VertexStride = 8

// Mesh holds CPU-side vertex/index data. GPU upload is done by the renderer.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Material *Material
}

// Interleaved flattens the vertices as position, normal, uv.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*VertexStride)
	for _, v := range m.Vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.UV[0], v.UV[1])
	}
	return out
}

// Model is a named set of meshes loaded from one file.
type Model struct {
	Path   string
	Meshes []*Mesh
}

// LoadModel loads a Wavefront OBJ or glTF/GLB file, chosen by extension.
func LoadModel(path string) (*Model, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		meshes, err := LoadOBJ(path)
		if err != nil {
			return nil, err
		}
		return &Model{Path: path, Meshes: meshes}, nil
	case ".gltf", ".glb":
		meshes, err := LoadGLTF(path)
		if err != nil {
			return nil, err
		}
		return &Model{Path: path, Meshes: meshes}, nil
	}
	return nil, fmt.Errorf("unsupported model format %q", filepath.Ext(path))
}
