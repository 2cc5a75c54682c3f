// Package config holds the viewer's startup configuration: window, camera,
// light table, pipeline constants and resource paths.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Vec3 is a three-component vector as written in config files.
type Vec3 [3]float32

// Config is the full viewer configuration.
type Config struct {
	Window   WindowConfig   `toml:"window" yaml:"window"`
	Paths    PathsConfig    `toml:"paths" yaml:"paths"`
	Camera   CameraConfig   `toml:"camera" yaml:"camera"`
	Lighting LightingConfig `toml:"lighting" yaml:"lighting"`
	Render   RenderConfig   `toml:"render" yaml:"render"`
	Toggles  TogglesConfig  `toml:"toggles" yaml:"toggles"`
}

type WindowConfig struct {
	Width   int    `toml:"width" yaml:"width"`
	Height  int    `toml:"height" yaml:"height"`
	Title   string `toml:"title" yaml:"title"`
	Samples int    `toml:"samples" yaml:"samples"`
	VSync   bool   `toml:"vsync" yaml:"vsync"`
}

type PathsConfig struct {
	Resources string `toml:"resources" yaml:"resources"`
	State     string `toml:"state" yaml:"state"`
}

type CameraConfig struct {
	Position    Vec3    `toml:"position" yaml:"position"`
	Speed       float32 `toml:"speed" yaml:"speed"`
	Sensitivity float32 `toml:"sensitivity" yaml:"sensitivity"`
	Zoom        float32 `toml:"zoom" yaml:"zoom"`
	SmoothZoom  bool    `toml:"smooth_zoom" yaml:"smooth_zoom"`
	Near        float32 `toml:"near" yaml:"near"`
	Far         float32 `toml:"far" yaml:"far"`
	// BackwardLimitZ: moving backward is only allowed while position.z is
	// strictly below this value.
	BackwardLimitZ float32 `toml:"backward_limit_z" yaml:"backward_limit_z"`
}

// Wave is amplitude * fn(rate * t) with fn one of "sin" or "cos".
type Wave struct {
	Func      string  `toml:"func" yaml:"func"`
	Amplitude float32 `toml:"amplitude" yaml:"amplitude"`
	Rate      float32 `toml:"rate" yaml:"rate"`
}

// Orbit animates position components; nil components stay at the base value.
type Orbit struct {
	X *Wave `toml:"x,omitempty" yaml:"x,omitempty"`
	Y *Wave `toml:"y,omitempty" yaml:"y,omitempty"`
	Z *Wave `toml:"z,omitempty" yaml:"z,omitempty"`
}

// Flicker scales the base ambient and diffuse colours by a unit wave.
type Flicker struct {
	Ambient *Wave `toml:"ambient,omitempty" yaml:"ambient,omitempty"`
	Diffuse *Wave `toml:"diffuse,omitempty" yaml:"diffuse,omitempty"`
}

type Attenuation struct {
	Constant  float32 `toml:"constant" yaml:"constant"`
	Linear    float32 `toml:"linear" yaml:"linear"`
	Quadratic float32 `toml:"quadratic" yaml:"quadratic"`
}

type DirectionalLight struct {
	Direction Vec3 `toml:"direction" yaml:"direction"`
	Ambient   Vec3 `toml:"ambient" yaml:"ambient"`
	Diffuse   Vec3 `toml:"diffuse" yaml:"diffuse"`
	Specular  Vec3 `toml:"specular" yaml:"specular"`
}

type PointLight struct {
	Name        string      `toml:"name" yaml:"name"`
	Position    Vec3        `toml:"position" yaml:"position"`
	Ambient     Vec3        `toml:"ambient" yaml:"ambient"`
	Diffuse     Vec3        `toml:"diffuse" yaml:"diffuse"`
	Specular    Vec3        `toml:"specular" yaml:"specular"`
	Attenuation Attenuation `toml:"attenuation" yaml:"attenuation"`
	Orbit       *Orbit      `toml:"orbit,omitempty" yaml:"orbit,omitempty"`
	Flicker     *Flicker    `toml:"flicker,omitempty" yaml:"flicker,omitempty"`
}

type Spotlight struct {
	InnerDeg    float32     `toml:"inner_deg" yaml:"inner_deg"`
	OuterDeg    float32     `toml:"outer_deg" yaml:"outer_deg"`
	Attenuation Attenuation `toml:"attenuation" yaml:"attenuation"`
	Ambient     Vec3        `toml:"ambient" yaml:"ambient"`
	Diffuse     Vec3        `toml:"diffuse" yaml:"diffuse"`
	Specular    Vec3        `toml:"specular" yaml:"specular"`
}

type LightingConfig struct {
	Directional DirectionalLight `toml:"directional" yaml:"directional"`
	Points      []PointLight     `toml:"points" yaml:"points"`
	Spotlight   Spotlight        `toml:"spotlight" yaml:"spotlight"`
	Shininess   float32          `toml:"shininess" yaml:"shininess"`
}

type RenderConfig struct {
	ClearColor      Vec3    `toml:"clear_color" yaml:"clear_color"`
	BloomIterations int     `toml:"bloom_iterations" yaml:"bloom_iterations"`
	BloomThreshold  float32 `toml:"bloom_threshold" yaml:"bloom_threshold"`
	FoliageScale    float32 `toml:"foliage_scale" yaml:"foliage_scale"`
	AlphaCutoff     float32 `toml:"alpha_cutoff" yaml:"alpha_cutoff"`
	FrustumCulling  bool    `toml:"frustum_culling" yaml:"frustum_culling"`
}

// TogglesConfig are the startup values of the live toggles, used when no
// persisted state exists.
type TogglesConfig struct {
	HDR          bool    `toml:"hdr" yaml:"hdr"`
	Bloom        bool    `toml:"bloom" yaml:"bloom"`
	Exposure     float32 `toml:"exposure" yaml:"exposure"`
	Gamma        float32 `toml:"gamma" yaml:"gamma"`
	KernelEffect int     `toml:"kernel_effect" yaml:"kernel_effect"`
	Spotlight    bool    `toml:"spotlight" yaml:"spotlight"`
	Blinn        bool    `toml:"blinn" yaml:"blinn"`
}

// Load reads path over Default. The codec is chosen by extension (.toml,
// .yaml, .yml). A missing file yields Default without error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	p, err := ExpandPath(path)
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(p, data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Decode unmarshals data into cfg using the codec implied by name. A file
// that lists no point lights keeps the lights already in cfg.
func Decode(name string, data []byte, cfg *Config) error {
	points := cfg.Lighting.Points
	cfg.Lighting.Points = nil
	defer func() {
		if len(cfg.Lighting.Points) == 0 {
			cfg.Lighting.Points = points
		}
	}()

	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(name))
	}
	return nil
}

// Encode writes cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", path, err)
	}
	return p, nil
}

// Resource joins a path relative to the resources root.
func (c Config) Resource(rel string) string {
	return filepath.Join(c.Paths.Resources, filepath.FromSlash(rel))
}
