package scene

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// writePNG writes a 1x2 image: red on top, blue at the bottom.
func writePNG(t *testing.T, dir, name string, alpha uint8) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: alpha})
	img.Set(0, 1, color.NRGBA{B: 255, A: alpha})
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return p
}

const quadOBJ = `# quad split into two groups
mtllib quad.mtl
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
o front
usemtl stone
f 1/1/1 2/2/1 3/3/1 4/4/1
o back
usemtl missing
f -1/-1/-1 -2/-2/-1 -3/-3/-1
`

const quadMTL = `newmtl stone
Ns 32
map_Kd stone.png
map_Ks absent.png
`

func TestLoadOBJWithMaterials(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "stone.png", 255)
	writeFile(t, dir, "quad.mtl", quadMTL)
	path := writeFile(t, dir, "quad.obj", quadOBJ)

	meshes, err := LoadOBJ(path)
	require.NoError(t, err)
	require.Len(t, meshes, 2)

	front := meshes[0]
	assert.Equal(t, "front", front.Name)
	assert.Len(t, front.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, front.Indices)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, front.Vertices[0].Normal)
	assert.Equal(t, mgl32.Vec2{1, 1}, front.Vertices[2].UV)

	require.NotNil(t, front.Material)
	assert.Equal(t, "stone", front.Material.Name)
	require.NotNil(t, front.Material.Diffuse)
	assert.Equal(t, 1, front.Material.Diffuse.Width)
	assert.Nil(t, front.Material.Specular)

	back := meshes[1]
	assert.Equal(t, "back", back.Name)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, back.Vertices[0].Position, "negative indices count from the end")
	assert.Equal(t, "Default", back.Material.Name)
	assert.Nil(t, back.Material.Diffuse)
}

func TestLoadOBJGeneratesNormals(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tri.obj", "v 0 0 0\nv 1 0 0\nv 0 0 -1\nf 1 2 3\n")

	meshes, err := LoadOBJ(path)
	require.NoError(t, err)
	require.Len(t, meshes, 1)
	for _, v := range meshes[0].Vertices {
		assert.InDelta(t, 1, v.Normal.Y(), 1e-6)
	}
	assert.Equal(t, "Default", meshes[0].Material.Name)
}

func TestLoadOBJWithoutFacesFails(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.obj", "v 0 0 0\n")

	_, err := LoadOBJ(path)
	assert.Error(t, err)
}

func TestLoadModelDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "TRI.OBJ", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")

	m, err := LoadModel(path)
	require.NoError(t, err)
	assert.Equal(t, path, m.Path)
	assert.Len(t, m.Meshes, 1)

	_, err = LoadModel(filepath.Join(dir, "tree.fbx"))
	assert.ErrorContains(t, err, "unsupported model format")

	_, err = LoadModel(filepath.Join(dir, "missing.obj"))
	assert.Error(t, err)
}

func TestLoadImageFlipsRows(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "sky.png", 255)

	upright, err := LoadImage(path, false)
	require.NoError(t, err)
	assert.Equal(t, byte(255), upright.Pixels[0], "row 0 is red")

	flipped, err := LoadImage(path, true)
	require.NoError(t, err)
	assert.Equal(t, byte(0), flipped.Pixels[0])
	assert.Equal(t, byte(255), flipped.Pixels[2], "row 0 is blue")
	assert.Equal(t, 2, flipped.Height)
}

func TestLoadImageKeepsAlpha(t *testing.T) {
	path := writePNG(t, t.TempDir(), "grass.png", 128)

	tex, err := LoadImage(path, false)
	require.NoError(t, err)
	assert.True(t, tex.HasAlpha)
	assert.Equal(t, byte(128), tex.Pixels[3])
}

func TestLoadImageMissingFile(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "nope.png"), false)
	assert.ErrorContains(t, err, "open texture")
}

func TestOpaqueImageHasNoAlpha(t *testing.T) {
	img := image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio420)
	assert.False(t, hasAlphaChannel(img))
	assert.False(t, NewSolidTexture("white", 255, 255, 255, 255).HasAlpha)
}
