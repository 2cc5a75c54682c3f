package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"temple-viewer/config"
	"temple-viewer/internal/gpu"
	"temple-viewer/internal/gpu/gputest"
	"temple-viewer/scene"
)

const testW, testH = 1000, 650

func newTestContext(t *testing.T) *RenderContext {
	t.Helper()
	cfg := config.Default()
	ls, err := NewLightingState(cfg.Lighting)
	require.NoError(t, err)
	p := cfg.Camera.Position
	return &RenderContext{
		Camera:       scene.NewCamera(mgl32.Vec3{p[0], p[1], p[2]}),
		Toggles:      TogglesFromConfig(cfg.Toggles),
		Lighting:     ls,
		CameraFollow: true,
		Width:        testW,
		Height:       testH,
		Near:         cfg.Camera.Near,
		Far:          cfg.Camera.Far,
	}
}

func newTestPipeline(t *testing.T) (*Pipeline, *gputest.Recorder) {
	t.Helper()
	rec := gputest.NewRecorder()
	p, err := NewPipeline(rec, config.Default(), testW, testH)
	require.NoError(t, err)
	rec.Reset()
	return p, rec
}

// testModel builds an uploaded model with n meshes using fixed handles well
// above anything the recorder allocates.
func testModel(base uint32, n int) *Model {
	m := &Model{Path: "test.obj"}
	for i := 0; i < n; i++ {
		id := base + uint32(i)*10
		m.Meshes = append(m.Meshes, Mesh{
			Name:     "mesh",
			Geometry: gpu.Geometry{ID: id, Count: 36},
			Diffuse:  gpu.Texture{ID: id + 1},
			Specular: gpu.Texture{ID: id + 2},
		})
	}
	return m
}

func testScene() *Scene {
	return &Scene{
		Objects: []Drawable{
			{Name: "temple", Model: testModel(1000, 2), Transform: scene.Transform{Scale: 4}},
			{
				Name:          "moon",
				Model:         testModel(2000, 1),
				Transform:     scene.Transform{Axis: scene.AxisY, SpinRate: 1.0 / 3.0, Scale: 5},
				CullBackFaces: true,
			},
		},
		Foliage:    scene.FoliagePositions(),
		FoliageTex: gpu.Texture{ID: 3000},
		Skybox:     gpu.Texture{ID: 3001, Cube: true},
	}
}

func drawsWith(rec *gputest.Recorder, prog gpu.Program) []gputest.DrawCall {
	var out []gputest.DrawCall
	for _, d := range rec.Draws {
		if d.Program == prog {
			out = append(out, d)
		}
	}
	return out
}
