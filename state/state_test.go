package state

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() ProgramState {
	return ProgramState{
		Exposure:       0.197,
		Gamma:          2.2,
		KernelEffect:   3,
		CameraPosition: mgl32.Vec3{-10.36, -2.63, 36.34},
		CameraFront:    mgl32.Vec3{0, 0, -1},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program_state.txt")
	want := ProgramState{
		OverlayEnabled: false,
		BloomEnabled:   false,
		Exposure:       0.197,
		HDREnabled:     true,
		Gamma:          2.2,
		KernelEffect:   3,
		CameraPosition: mgl32.Vec3{-10.36, -2.63, 36.34},
		CameraFront:    mgl32.Vec3{0, 0, -1},
	}

	require.NoError(t, Save(path, want))
	got := Load(path, ProgramState{})
	assert.Equal(t, want, got)
}

func TestEncodeFieldOrder(t *testing.T) {
	s := ProgramState{
		OverlayEnabled: true,
		BloomEnabled:   false,
		Exposure:       1.5,
		HDREnabled:     true,
		Gamma:          2.2,
		KernelEffect:   2,
		CameraPosition: mgl32.Vec3{1, 2, 3},
		CameraFront:    mgl32.Vec3{0, 0, -1},
	}
	lines := strings.Split(strings.TrimSpace(string(Encode(s))), "\n")
	assert.Equal(t, []string{"1", "0", "1.5", "1", "2.2", "2", "1", "2", "3", "0", "0", "-1"}, lines)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	got := Load(filepath.Join(t.TempDir(), "absent.txt"), defaults())
	assert.Equal(t, defaults(), got)
}

func TestLoadMalformedReturnsDefaults(t *testing.T) {
	cases := map[string]string{
		"empty":     "",
		"truncated": "1\n0\n0.5\n",
		"bad bool":  "yes\n0\n0.5\n1\n2.2\n3\n0\n0\n0\n0\n0\n-1\n",
		"bad float": "1\n0\nabc\n1\n2.2\n3\n0\n0\n0\n0\n0\n-1\n",
		"nan":       "0 1 NaN 1 2.2 3 0 0 0 0 0 -1",
		"inf":       "0 1 0.197 1 Inf 3 0 0 0 0 0 -1",
		"-inf":      "0 1 0.197 1 2.2 3 -Inf 0 0 0 0 -1",
		"nan front": "0 1 0.197 1 2.2 3 0 0 0 NaN 0 -1",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "program_state.txt")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			assert.Equal(t, defaults(), Load(path, defaults()))
		})
	}
}

func TestDecodeReportsMalformed(t *testing.T) {
	_, err := Decode(strings.NewReader("1 0"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeRejectsNonFinite(t *testing.T) {
	_, err := Decode(strings.NewReader("0 1 NaN 1 Inf 3 NaN 0 0 NaN 0 -1"))
	assert.ErrorIs(t, err, ErrMalformed)
	assert.ErrorContains(t, err, "non-finite")
}

func TestDecodeAcceptsWordBooleans(t *testing.T) {
	s, err := Decode(strings.NewReader("true false 0.5 true 2 1 0 0 0 0 0 -1"))
	require.NoError(t, err)
	assert.True(t, s.OverlayEnabled)
	assert.False(t, s.BloomEnabled)
	assert.True(t, s.HDREnabled)
	assert.Equal(t, 1, s.KernelEffect)
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program_state.txt")
	require.NoError(t, Save(path, defaults()))
	assert.True(t, Exists(path))

	next := defaults()
	next.KernelEffect = 0
	require.NoError(t, Save(path, next))
	assert.Equal(t, 0, Load(path, defaults()).KernelEffect)
}
