package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesReferenceScene(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 1000, cfg.Window.Width)
	assert.Equal(t, 650, cfg.Window.Height)
	assert.Equal(t, "aztec temple", cfg.Window.Title)
	assert.Equal(t, Vec3{-10.36, -2.63, 36.34}, cfg.Camera.Position)
	assert.Equal(t, float32(38.942), cfg.Camera.BackwardLimitZ)
	assert.Len(t, cfg.Lighting.Points, 6)
	assert.Equal(t, float32(64), cfg.Lighting.Shininess)
	assert.Equal(t, 5, cfg.Render.BloomIterations)
	assert.True(t, cfg.Render.FrustumCulling)
	assert.Equal(t, float32(0.197), cfg.Toggles.Exposure)
	assert.Equal(t, float32(2.2), cfg.Toggles.Gamma)
	assert.Equal(t, 3, cfg.Toggles.KernelEffect)
	assert.True(t, cfg.Toggles.Spotlight)
	assert.True(t, cfg.Toggles.Blinn)
	assert.False(t, cfg.Toggles.HDR)
	assert.False(t, cfg.Toggles.Bloom)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadTOMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.toml")
	data := []byte(`
[window]
width = 800
height = 600

[render]
bloom_iterations = 10

[lighting.directional]
direction = [0.0, -1.0, 0.0]
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "aztec temple", cfg.Window.Title)
	assert.Equal(t, 10, cfg.Render.BloomIterations)
	assert.Equal(t, Vec3{0, -1, 0}, cfg.Lighting.Directional.Direction)
	assert.Len(t, cfg.Lighting.Points, 6, "points kept when the file lists none")
}

func TestLoadYAMLReplacesPointLights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	data := []byte(`
lighting:
  points:
    - name: lamp
      position: [1, 2, 3]
      ambient: [1, 1, 1]
      diffuse: [1, 1, 1]
      specular: [1, 1, 1]
      attenuation: {constant: 1, linear: 0.1, quadratic: 0.01}
      orbit:
        y: {func: cos, amplitude: 2, rate: 0.5}
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Lighting.Points, 1)
	p := cfg.Lighting.Points[0]
	assert.Equal(t, "lamp", p.Name)
	assert.Equal(t, Vec3{1, 2, 3}, p.Position)
	require.NotNil(t, p.Orbit)
	require.NotNil(t, p.Orbit.Y)
	assert.Nil(t, p.Orbit.Z)
	assert.Equal(t, float32(0.5), p.Orbit.Y.Rate)
}

func TestLoadMalformedFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window\nwidth ="), 0o644))

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecodeRejectsUnknownExtension(t *testing.T) {
	cfg := Default()
	assert.Error(t, Decode("viewer.ini", []byte("x=1"), &cfg))
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := Encode(Default())
	require.NoError(t, err)

	cfg := Config{}
	require.NoError(t, Decode("viewer.toml", data, &cfg))
	assert.Equal(t, Default(), cfg)
}

func TestResourceJoinsRoot(t *testing.T) {
	cfg := Default()
	cfg.Paths.Resources = "assets"
	assert.Equal(t, filepath.Join("assets", "textures", "grass.png"), cfg.Resource("textures/grass.png"))
}

func TestWatchDeliversReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewer.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\nwidth = 640\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Config, 16)
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, path, func(c Config) { got <- c }) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("[window]\nwidth = 320\n"), 0o644))

	// A truncating write can be observed half-done; wait for the final content.
	timeout := time.After(5 * time.Second)
	for width := 0; width != 320; {
		select {
		case c := <-got:
			width = c.Window.Width
		case <-timeout:
			t.Fatal("no reload delivered")
		}
	}

	cancel()
	assert.NoError(t, <-done)
}
