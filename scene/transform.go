package scene

import "github.com/go-gl/mathgl/mgl32"

// Axis selects the single rotation axis of a Transform.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
	AxisZ
)

// Transform places an object: translate, then rotate about one axis, then
// uniform scale. SpinRate (radians per second) adds a time-dependent angle.
type Transform struct {
	Translation mgl32.Vec3
	Axis        Axis
	AngleDeg    float32
	SpinRate    float32
	Scale       float32
}

// Angle returns the rotation in radians at the given elapsed time.
func (t Transform) Angle(elapsed float64) float32 {
	return mgl32.DegToRad(t.AngleDeg) + float32(elapsed)*t.SpinRate
}

// Matrix returns Translate · Rotate · Scale for the given elapsed time.
func (t Transform) Matrix(elapsed float64) mgl32.Mat4 {
	m := mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z())
	angle := t.Angle(elapsed)
	switch t.Axis {
	case AxisX:
		m = m.Mul4(mgl32.HomogRotate3DX(angle))
	case AxisY:
		m = m.Mul4(mgl32.HomogRotate3DY(angle))
	case AxisZ:
		m = m.Mul4(mgl32.HomogRotate3DZ(angle))
	}
	return m.Mul4(mgl32.Scale3D(t.Scale, t.Scale, t.Scale))
}
