package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"temple-viewer/internal/gpu"
	"temple-viewer/internal/logger"
	"temple-viewer/scene"
)

// Mesh is an uploaded mesh with its material textures.
type Mesh struct {
	Name     string
	Geometry gpu.Geometry
	Diffuse  gpu.Texture
	Specular gpu.Texture
	Bounds   scene.AABB
}

// Model is an uploaded scene.Model. Bounds is the local box of every mesh.
type Model struct {
	Path   string
	Meshes []Mesh
	Bounds scene.AABB
}

// Drawable is one entry of the lit draw list.
type Drawable struct {
	Name          string
	Model         *Model
	Transform     scene.Transform
	CullBackFaces bool
}

// Scene is every GPU resource the passes draw from.
type Scene struct {
	Objects    []Drawable
	Foliage    []mgl32.Vec3
	FoliageTex gpu.Texture
	Skybox     gpu.Texture
}

// meshLayout is position, normal, uv.
var meshLayout = gpu.VertexLayout{3, 3, 2}

// AssetLoader uploads CPU assets to the device. Textures are shared by source
// pointer so a material reused across meshes uploads once.
type AssetLoader struct {
	dev      gpu.Device
	textures map[*scene.Texture]gpu.Texture
	white    gpu.Texture
	black    gpu.Texture
}

// NewAssetLoader creates a loader bound to dev.
func NewAssetLoader(dev gpu.Device) *AssetLoader {
	return &AssetLoader{dev: dev, textures: make(map[*scene.Texture]gpu.Texture)}
}

// UploadModel uploads every mesh of m. Meshes without a diffuse map sample a
// white texel; meshes without a specular map sample black.
func (a *AssetLoader) UploadModel(m *scene.Model) *Model {
	out := &Model{Path: m.Path}
	for _, mesh := range m.Meshes {
		mat := mesh.Material
		if mat == nil {
			mat = scene.DefaultMaterial()
		}
		gm := Mesh{
			Name: mesh.Name,
			Geometry: a.dev.NewGeometry(gpu.GeometryDesc{
				Layout:   meshLayout,
				Vertices: mesh.Interleaved(),
				Indices:  mesh.Indices,
				Mode:     gpu.Triangles,
			}),
			Diffuse:  a.texture(mat.Diffuse, true),
			Specular: a.texture(mat.Specular, false),
			Bounds:   mesh.Bounds(),
		}
		out.Meshes = append(out.Meshes, gm)
		out.Bounds = out.Bounds.Union(gm.Bounds)
	}
	return out
}

func (a *AssetLoader) texture(t *scene.Texture, diffuse bool) gpu.Texture {
	if t == nil {
		if diffuse {
			return a.solid(&a.white, 255)
		}
		return a.solid(&a.black, 0)
	}
	if tex, ok := a.textures[t]; ok {
		return tex
	}
	tex := a.dev.NewTexture(t.Width, t.Height, gpu.FormatRGBA8, samplerFor(t), t.Pixels)
	a.textures[t] = tex
	return tex
}

func (a *AssetLoader) solid(slot *gpu.Texture, v byte) gpu.Texture {
	if !slot.Valid() {
		*slot = a.dev.NewTexture(1, 1, gpu.FormatRGBA8, gpu.Sampler{}, []byte{v, v, v, 255})
	}
	return *slot
}

// samplerFor clamps textures with an alpha channel so transparent borders do
// not bleed; opaque ones repeat.
func samplerFor(t *scene.Texture) gpu.Sampler {
	s := gpu.Sampler{Wrap: gpu.WrapRepeat, Mipmaps: true}
	if t.HasAlpha {
		s.Wrap = gpu.WrapClampToEdge
	}
	return s
}

// LoadModel reads a model file and uploads it. A model that fails to load is
// logged and nil is returned.
func (a *AssetLoader) LoadModel(path string) *Model {
	m, err := scene.LoadModel(path)
	if err != nil {
		logger.Log.Error("model failed to load", zap.String("path", path), zap.Error(err))
		return nil
	}
	logger.Log.Info("model loaded", zap.String("path", path), zap.Int("meshes", len(m.Meshes)))
	return a.UploadModel(m)
}

// LoadTexture2D reads an image file and uploads it. gammaCorrect stores it as
// sRGB. A missing or unreadable file is logged and yields the zero texture.
func (a *AssetLoader) LoadTexture2D(path string, gammaCorrect, flip bool) gpu.Texture {
	t, err := scene.LoadImage(path, flip)
	if err != nil {
		logger.Log.Error("texture failed to load", zap.String("path", path), zap.Error(err))
		return gpu.Texture{}
	}
	format := gpu.FormatRGBA8
	if gammaCorrect {
		format = gpu.FormatSRGBA8
	}
	return a.dev.NewTexture(t.Width, t.Height, format, samplerFor(t), t.Pixels)
}

// LoadCubeMap reads six faces in +X, -X, +Y, -Y, +Z, -Z order. A face that
// fails to load is logged and left empty; the others are still uploaded.
func (a *AssetLoader) LoadCubeMap(paths [6]string) gpu.Texture {
	var faces [6]gpu.Image
	for i, p := range paths {
		t, err := scene.LoadImage(p, true)
		if err != nil {
			logger.Log.Error("cubemap face failed to load", zap.String("path", p), zap.Error(err))
			continue
		}
		faces[i] = gpu.Image{Width: t.Width, Height: t.Height, Pix: t.Pixels}
	}
	return a.dev.NewCubeMap(faces)
}

// LoadScene loads the fixed temple scene from the resources root. Missing
// models are omitted from the draw list.
func (a *AssetLoader) LoadScene(resource func(string) string) *Scene {
	s := &Scene{}
	models := make(map[string]*Model)
	for _, p := range scene.TemplePlacements() {
		m, seen := models[p.Path]
		if !seen {
			m = a.LoadModel(resource(p.Path))
			models[p.Path] = m
		}
		if m == nil {
			continue
		}
		s.Objects = append(s.Objects, Drawable{
			Name:          p.Name,
			Model:         m,
			Transform:     p.Transform,
			CullBackFaces: p.CullBackFaces,
		})
	}
	s.Foliage = scene.FoliagePositions()
	s.FoliageTex = a.LoadTexture2D(resource(scene.FoliageTexture), true, true)
	var faces [6]string
	for i, f := range scene.SkyboxFaces() {
		faces[i] = resource(f)
	}
	s.Skybox = a.LoadCubeMap(faces)
	return s
}
