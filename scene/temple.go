package scene

import "github.com/go-gl/mathgl/mgl32"

// Placement is one entry of the static draw list: which model to load and
// where to put it.
type Placement struct {
	Name          string
	Path          string // relative to the resources root
	Transform     Transform
	CullBackFaces bool
}

// TemplePlacements is the fixed scene: terrain, temple, two totems, the
// spinning moon and two palms.
func TemplePlacements() []Placement {
	return []Placement{
		{
			Name: "terrain", Path: "objects/terrain/terrain.obj",
			Transform: Transform{Translation: mgl32.Vec3{-15, -12.5, -15}, Scale: 10},
		},
		{
			Name: "temple", Path: "objects/temple/temple.obj",
			Transform: Transform{Translation: mgl32.Vec3{-10, -8.7, -10}, Scale: 4},
		},
		{
			Name: "totem-west", Path: "objects/totem/totem.obj",
			Transform: Transform{Translation: mgl32.Vec3{-15, -8.8, 8.9}, Axis: AxisY, AngleDeg: 10, Scale: 1.7},
		},
		{
			Name: "totem-east", Path: "objects/totem/totem.obj",
			Transform: Transform{Translation: mgl32.Vec3{-5, -8.7, 8.9}, Axis: AxisY, AngleDeg: 10, Scale: 1.7},
		},
		{
			Name: "moon", Path: "objects/moon/model.obj",
			Transform:     Transform{Translation: mgl32.Vec3{25, 38, -40.5}, Axis: AxisY, SpinRate: 1.0 / 3.0, Scale: 5},
			CullBackFaces: true,
		},
		{
			Name: "palm-west", Path: "objects/tree/CoconutPalm.obj",
			Transform: Transform{Translation: mgl32.Vec3{-29.108009, -7.468780, -23.254124}, Axis: AxisX, AngleDeg: -50, Scale: 0.1},
		},
		{
			Name: "palm-east", Path: "objects/tree/CoconutPalm.obj",
			Transform: Transform{Translation: mgl32.Vec3{10.238466, -7.468780, -23.254124}, Axis: AxisX, AngleDeg: -64, Scale: 0.1},
		},
	}
}

// FoliagePositions are the grass billboards in front of the totems, drawn in
// this order.
func FoliagePositions() []mgl32.Vec3 {
	return []mgl32.Vec3{
		{-20.7, -6.73, 10.4},
		{-24.5, -6.73, 9.8},
		{-28.3, -6.73, 10.4},
		{-32.1, -6.73, 9.8},
		{-5.0, -6.87, 10.4},
		{-1.8, -6.87, 9.8},
		{2.0, -6.87, 10.4},
		{5.8, -6.87, 9.8},
	}
}

// FoliageTexture is the alpha-tested grass texture.
const FoliageTexture = "textures/grass.png"

// SkyboxFaces lists the night cube map in +X, -X, +Y, -Y, +Z, -Z order.
func SkyboxFaces() [6]string {
	return [6]string{
		"textures/skybox/night/right.png",
		"textures/skybox/night/left.png",
		"textures/skybox/night/top.png",
		"textures/skybox/night/bottom.png",
		"textures/skybox/night/front.png",
		"textures/skybox/night/back.png",
	}
}
