package overlay

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"temple-viewer/config"
	"temple-viewer/input"
	"temple-viewer/internal/gpu"
	"temple-viewer/internal/gpu/gputest"
	"temple-viewer/renderer"
	"temple-viewer/scene"
)

func newContext(t *testing.T) *renderer.RenderContext {
	t.Helper()
	cfg := config.Default()
	ls, err := renderer.NewLightingState(cfg.Lighting)
	require.NoError(t, err)
	return &renderer.RenderContext{
		Camera:         scene.NewCamera(mgl32.Vec3{-10.36, -2.63, 36.34}),
		Toggles:        renderer.TogglesFromConfig(cfg.Toggles),
		Lighting:       ls,
		OverlayEnabled: true,
		Width:          1000,
		Height:         650,
		Delta:          0.016,
	}
}

func TestMenuSelectionWraps(t *testing.T) {
	rc := newContext(t)
	var m Menu

	m.Navigate(rc, input.NavUp)
	assert.Equal(t, RowCameraFollow, m.Selected())

	m.Navigate(rc, input.NavDown)
	assert.Equal(t, RowHDR, m.Selected())
}

func TestAdjustTogglesBooleans(t *testing.T) {
	rc := newContext(t)

	Adjust(rc, RowHDR, 1)
	Adjust(rc, RowBloom, -1)
	Adjust(rc, RowCameraFollow, 1)

	assert.True(t, rc.Toggles.HDREnabled)
	assert.True(t, rc.Toggles.BloomEnabled)
	assert.True(t, rc.CameraFollow)
}

func TestAdjustExposureStepsAndClamps(t *testing.T) {
	rc := newContext(t)

	Adjust(rc, RowExposure, 1)
	assert.InDelta(t, 0.247, rc.Toggles.Exposure, 1e-6)

	rc.Toggles.Exposure = 0.02
	Adjust(rc, RowExposure, -1)
	assert.Equal(t, float32(0), rc.Toggles.Exposure)

	rc.Toggles.Gamma = renderer.MaxGamma
	Adjust(rc, RowGamma, 1)
	assert.Equal(t, renderer.MaxGamma, rc.Toggles.Gamma)
}

func TestAdjustKernelCycles(t *testing.T) {
	rc := newContext(t)
	require.Equal(t, renderer.KernelNone, rc.Toggles.KernelEffect)

	Adjust(rc, RowKernel, 1)
	assert.Equal(t, renderer.KernelBlur, rc.Toggles.KernelEffect)

	Adjust(rc, RowKernel, -1)
	assert.Equal(t, renderer.KernelNone, rc.Toggles.KernelEffect)

	Adjust(rc, RowKernel, -1)
	assert.Equal(t, renderer.KernelEdgeDetect, rc.Toggles.KernelEffect)
}

func TestAdjustDirectionalLight(t *testing.T) {
	rc := newContext(t)
	before := rc.Lighting.Directional()

	Adjust(rc, RowLightDirY, 1)
	Adjust(rc, RowLightDiffuse, 1)

	after := rc.Lighting.Directional()
	assert.InDelta(t, before.Direction.Y()+DirectionStep, after.Direction.Y(), 1e-5)
	assert.Equal(t, before.Direction.X(), after.Direction.X())
	assert.InDelta(t, before.Diffuse.X()+ColorStep, after.Diffuse.X(), 1e-5)
	assert.Equal(t, after, rc.Lighting.Uniforms(0).Directional)
}

func TestLabelsReflectState(t *testing.T) {
	rc := newContext(t)

	assert.Equal(t, "HDR: off", Label(rc, RowHDR))
	assert.Equal(t, "Exposure: 0.197", Label(rc, RowExposure))
	assert.Equal(t, "Kernel: None", Label(rc, RowKernel))
	assert.Equal(t, "Camera mouse update: off", Label(rc, RowCameraFollow))
}

func TestTelemetryShowsCamera(t *testing.T) {
	rc := newContext(t)
	lines := Telemetry(rc)

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "(-10.36, -2.63, 36.34)")
	assert.Contains(t, joined, "Yaw: -90.0")
	assert.Contains(t, joined, "62 fps")
	assert.Contains(t, joined, "Blinn-Phong")
}

func TestPanelMarksSelectedRow(t *testing.T) {
	rec := gputest.NewRecorder()
	p, err := NewPanel(rec)
	require.NoError(t, err)
	rc := newContext(t)

	p.Navigate(rc, input.NavDown)
	lines := p.Lines(rc)

	assert.True(t, strings.HasPrefix(lines[int(RowBloom)], "> "))
	assert.True(t, strings.HasPrefix(lines[int(RowHDR)], "  "))
	assert.Len(t, lines, int(rowCount)+1+len(Telemetry(rc)))
}

func TestPanelFitsEveryLine(t *testing.T) {
	rec := gputest.NewRecorder()
	p, err := NewPanel(rec)
	require.NoError(t, err)
	rc := newContext(t)
	rc.Stats = renderer.FrameStats{ObjectsDrawn: 5, ObjectsTotal: 7}

	lines := p.Lines(rc)
	require.Len(t, Telemetry(rc), TelemetryLines)
	require.Len(t, lines, panelLines)
	p.rasterize(lines)

	bg := p.img.RGBAAt(0, 0)
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		baseline := margin + lineHeight*(i+1)
		require.Less(t, baseline+2, PanelHeight, "line %d %q below the panel", i, line)

		inked := false
		for y := baseline - 11; y <= baseline+2 && !inked; y++ {
			for x := 0; x < PanelWidth; x++ {
				if p.img.RGBAAt(x, y) != bg {
					inked = true
					break
				}
			}
		}
		assert.True(t, inked, "line %d %q drew no pixels", i, line)
	}
}

func TestPanelDrawBlendsOverWindow(t *testing.T) {
	rec := gputest.NewRecorder()
	p, err := NewPanel(rec)
	require.NoError(t, err)
	rc := newContext(t)
	rec.Reset()

	p.Draw(rc)
	p.Draw(rc)

	require.Len(t, rec.Draws, 2)
	d := rec.Draws[0]
	assert.True(t, d.Blend)
	assert.False(t, d.DepthTest)
	assert.Equal(t, p.Texture(), d.Units[0])
	assert.Equal(t, mgl32.Vec2{1000, 650}, d.Uniforms["screen"])
	assert.Equal(t, gpu.TriangleStrip, d.Geometry.Mode)
	assert.False(t, rec.Blend)
	assert.True(t, rec.DepthTest)

	assert.Equal(t, 1, countOps(rec, "UpdateTexture"), "unchanged text is not re-uploaded")

	rc.Toggles.HDREnabled = true
	p.Draw(rc)
	assert.Equal(t, 2, countOps(rec, "UpdateTexture"))
	assert.Zero(t, countOps(rec, "NewTexture"), "texture is updated in place")
}

func countOps(rec *gputest.Recorder, op string) int {
	n := 0
	for _, o := range rec.Ops() {
		if o == op {
			n++
		}
	}
	return n
}
