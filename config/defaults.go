package config

// Default returns the configuration of the reference temple scene.
func Default() Config {
	orbiter := func(name string, pos Vec3, yRate, zAmp, zRate float32) PointLight {
		return PointLight{
			Name:        name,
			Position:    pos,
			Ambient:     Vec3{1.5, 1.5, 1.5},
			Diffuse:     Vec3{0.9, 0.9, 0.9},
			Specular:    Vec3{0.5, 0.5, 0.5},
			Attenuation: Attenuation{Constant: 0.9, Linear: 0.47, Quadratic: 0.024},
			Orbit: &Orbit{
				Y: &Wave{Func: "cos", Amplitude: 8.9135011, Rate: yRate},
				Z: &Wave{Func: "sin", Amplitude: zAmp, Rate: zRate},
			},
		}
	}
	const slow, fast = float32(1 / 1.5), float32(1.34)

	return Config{
		Window: WindowConfig{
			Width:   1000,
			Height:  650,
			Title:   "aztec temple",
			Samples: 4,
			VSync:   true,
		},
		Paths: PathsConfig{
			Resources: "resources",
			State:     "resources/program_state.txt",
		},
		Camera: CameraConfig{
			Position:       Vec3{-10.36, -2.63, 36.34},
			Speed:          2.5,
			Sensitivity:    0.1,
			Zoom:           45,
			Near:           0.1,
			Far:            100,
			BackwardLimitZ: 38.942,
		},
		Lighting: LightingConfig{
			Directional: DirectionalLight{
				Direction: Vec3{-21.882572, -35.517292, -37.401550},
				Ambient:   Vec3{-0.3, 0.2, 0.3},
				Diffuse:   Vec3{0.3, 0.2, 0.3},
				Specular:  Vec3{0.2, 0.1, 0.3},
			},
			Points: []PointLight{
				{
					Name:        "temple-fire",
					Position:    Vec3{-10.007275, 4.587323, -9.562702},
					Ambient:     Vec3{3, 0, 0},
					Diffuse:     Vec3{3, 0, 0},
					Specular:    Vec3{3, 0, 0},
					Attenuation: Attenuation{Constant: 0.783, Linear: 0.21, Quadratic: 0.045},
					Flicker: &Flicker{
						Ambient: &Wave{Func: "cos", Amplitude: 1, Rate: 1},
						Diffuse: &Wave{Func: "sin", Amplitude: 1, Rate: 1},
					},
				},
				{
					Name:        "moon",
					Position:    Vec3{21.882572, 35.517292, -37.401550},
					Ambient:     Vec3{10, 10, 10},
					Diffuse:     Vec3{10, 10, 10},
					Specular:    Vec3{3, 3, 3},
					Attenuation: Attenuation{Constant: 0.45, Linear: 0.54, Quadratic: 0.78},
				},
				orbiter("firefly-west", Vec3{-11.023065, 0, 0}, slow, 14.310511, slow),
				orbiter("firefly-east", Vec3{12.824927, 0, 0}, fast, -6.830830, fast),
				orbiter("firefly-north", Vec3{-9.759034, 0, 0}, slow, -30.399181, slow),
				// Y and Z run at reciprocal rates.
				orbiter("firefly-far", Vec3{-34.675980, 0, 0}, fast, -8.309442, 1/fast),
			},
			Spotlight: Spotlight{
				InnerDeg:    13.5,
				OuterDeg:    18.5,
				Attenuation: Attenuation{Constant: 0.8, Linear: 0.2, Quadratic: 0.12},
				Ambient:     Vec3{1, 1, 1},
				Diffuse:     Vec3{0.8, 0.8, 0.8},
				Specular:    Vec3{1, 1, 1},
			},
			Shininess: 64,
		},
		Render: RenderConfig{
			ClearColor:      Vec3{0.1, 0.1, 0.1},
			BloomIterations: 5,
			BloomThreshold:  0,
			FoliageScale:    4,
			AlphaCutoff:     0.1,
			FrustumCulling:  true,
		},
		Toggles: TogglesConfig{
			Exposure:     0.197,
			Gamma:        2.2,
			KernelEffect: 3,
			Spotlight:    true,
			Blinn:        true,
		},
	}
}
