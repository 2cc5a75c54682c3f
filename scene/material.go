package scene

// Material is the texture set sampled by the lighting shader. Diffuse binds
// to unit 0 and Specular to unit 1; either may be nil. The specular exponent
// is scene-wide and comes from the lighting configuration.
type Material struct {
	Name     string
	Diffuse  *Texture
	Specular *Texture
}

// DefaultMaterial returns an untextured material.
func DefaultMaterial() *Material {
	return &Material{Name: "Default"}
}
