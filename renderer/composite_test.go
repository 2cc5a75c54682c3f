package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"temple-viewer/internal/gpu"
)

func TestCompositeBindsBothInputsToWindow(t *testing.T) {
	for _, bloomOn := range []bool{true, false} {
		p, rec := newTestPipeline(t)
		rc := newTestContext(t)
		rc.Toggles.BloomEnabled = bloomOn
		rc.Toggles.HDREnabled = true
		rc.Toggles.Exposure = 1.5
		rc.Toggles.Gamma = 2.2
		rc.Toggles.KernelEffect = KernelEdgeDetect
		sceneColor, bloom := gpu.Texture{ID: 501}, gpu.Texture{ID: 502}

		p.Composite.Composite(rc, sceneColor, bloom)

		draws := drawsWith(rec, p.Composite.Program())
		require.Len(t, draws, 1)
		d := draws[0]
		assert.Equal(t, gpu.DefaultFramebuffer, d.Framebuffer)
		assert.Equal(t, sceneColor, d.Units[unitScene])
		assert.Equal(t, bloom, d.Units[unitBloom])
		assert.Equal(t, bloomOn, d.Uniforms["bloom"])
		assert.Equal(t, true, d.Uniforms["hdr"])
		assert.Equal(t, float32(1.5), d.Uniforms["exposure"])
		assert.Equal(t, float32(2.2), d.Uniforms["gamma"])
		assert.Equal(t, int32(KernelEdgeDetect), d.Uniforms["effect"])
		assert.False(t, d.DepthTest)
		assert.Equal(t, int32(3), d.Geometry.Count)

		assert.True(t, rec.DepthTest)
		assert.Equal(t, testW, rec.ViewportW)
	}
}

func TestToneMapIdentityWithoutHDR(t *testing.T) {
	c := mgl32.Vec3{0.2, 3, 12}
	assert.Equal(t, c, ToneMap(c, 0.197, 2.2, false))
}

func TestToneMapZeroExposureIsBlack(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{}, ToneMap(mgl32.Vec3{0.5, 4, 100}, 0, 2.2, true))
}

func TestToneMapIsMonotonicAndBounded(t *testing.T) {
	prev := float32(-1)
	for c := float32(0); c <= 50; c += 0.25 {
		v := ToneMap(mgl32.Vec3{c, c, c}, 0.197, 2.2, true)[0]
		assert.GreaterOrEqual(t, v, prev, "c=%v", c)
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
		prev = v
	}
}

func TestToneMapGammaOne(t *testing.T) {
	v := ToneMap(mgl32.Vec3{1, 1, 1}, 1, 1, true)
	assert.InDelta(t, 0.6321206, v[0], 1e-5)
}

func TestKernelEffectNames(t *testing.T) {
	assert.Equal(t, "Blur", KernelBlur.String())
	assert.Equal(t, "Grayscale", KernelGrayscale.String())
	assert.Equal(t, "Edge detection", KernelEdgeDetect.String())
	assert.Equal(t, "None", KernelNone.String())
}
