package input

import (
	"github.com/go-gl/mathgl/mgl32"

	"temple-viewer/scene"
)

// MovementGuard keeps the camera inside the scene. Only backward motion is
// restricted: it is allowed while the camera's Z is strictly below LimitZ.
type MovementGuard struct {
	LimitZ float32
}

// Allows reports whether the camera at pos may move in dir.
func (g MovementGuard) Allows(dir scene.Movement, pos mgl32.Vec3) bool {
	if dir == scene.Backward {
		return pos.Z() < g.LimitZ
	}
	return true
}
