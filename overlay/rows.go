// Package overlay is the in-window debug panel: live pipeline toggles,
// directional light tuning and read-only camera telemetry.
package overlay

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"temple-viewer/input"
	"temple-viewer/renderer"
)

// Adjustment steps.
const (
	ToneStep      float32 = 0.05
	DirectionStep float32 = 0.5
	ColorStep     float32 = 0.05
)

// Row is one editable line of the panel.
type Row int

const (
	RowHDR Row = iota
	RowBloom
	RowExposure
	RowGamma
	RowKernel
	RowLightDirX
	RowLightDirY
	RowLightDirZ
	RowLightAmbient
	RowLightDiffuse
	RowLightSpecular
	RowCameraFollow
	rowCount
)

// Menu is the selection state of the editable rows. It implements
// input.Navigator.
type Menu struct {
	selected Row
}

var _ input.Navigator = (*Menu)(nil)

// Selected returns the highlighted row.
func (m *Menu) Selected() Row { return m.selected }

// Navigate moves the selection or edits the selected row.
func (m *Menu) Navigate(rc *renderer.RenderContext, n input.Nav) {
	switch n {
	case input.NavUp:
		m.selected = (m.selected + rowCount - 1) % rowCount
	case input.NavDown:
		m.selected = (m.selected + 1) % rowCount
	case input.NavDecrease:
		Adjust(rc, m.selected, -1)
	case input.NavIncrease, input.NavActivate:
		Adjust(rc, m.selected, 1)
	}
}

// Adjust edits row by one step in direction dir (+1 or -1). Booleans flip,
// the kernel cycles and scalars move by their step within range.
func Adjust(rc *renderer.RenderContext, row Row, dir int) {
	t := &rc.Toggles
	step := float32(dir)
	switch row {
	case RowHDR:
		t.HDREnabled = !t.HDREnabled
	case RowBloom:
		t.BloomEnabled = !t.BloomEnabled
	case RowExposure:
		t.Exposure += step * ToneStep
	case RowGamma:
		t.Gamma += step * ToneStep
	case RowKernel:
		n := renderer.KernelNone + 1
		t.KernelEffect = ((t.KernelEffect+renderer.KernelEffect(dir))%n + n) % n
	case RowLightDirX, RowLightDirY, RowLightDirZ:
		d := rc.Lighting.Directional()
		d.Direction[row-RowLightDirX] += step * DirectionStep
		rc.Lighting.SetDirectional(d)
	case RowLightAmbient, RowLightDiffuse, RowLightSpecular:
		d := rc.Lighting.Directional()
		delta := mgl32.Vec3{1, 1, 1}.Mul(step * ColorStep)
		switch row {
		case RowLightAmbient:
			d.Ambient = d.Ambient.Add(delta)
		case RowLightDiffuse:
			d.Diffuse = clampColor(d.Diffuse.Add(delta))
		case RowLightSpecular:
			d.Specular = clampColor(d.Specular.Add(delta))
		}
		rc.Lighting.SetDirectional(d)
	case RowCameraFollow:
		rc.CameraFollow = !rc.CameraFollow
	}
	t.Clamp()
}

// clampColor keeps diffuse and specular colours in [0,1]. Ambient is left
// alone because the reference scene uses a negative ambient term.
func clampColor(c mgl32.Vec3) mgl32.Vec3 {
	for i := range c {
		c[i] = mgl32.Clamp(c[i], 0, 1)
	}
	return c
}

// Label renders a row as "name: value".
func Label(rc *renderer.RenderContext, row Row) string {
	t := rc.Toggles
	d := rc.Lighting.Directional()
	switch row {
	case RowHDR:
		return fmt.Sprintf("HDR: %s", onOff(t.HDREnabled))
	case RowBloom:
		return fmt.Sprintf("Bloom: %s", onOff(t.BloomEnabled))
	case RowExposure:
		return fmt.Sprintf("Exposure: %.3f", t.Exposure)
	case RowGamma:
		return fmt.Sprintf("Gamma: %.2f", t.Gamma)
	case RowKernel:
		return fmt.Sprintf("Kernel: %s", t.KernelEffect)
	case RowLightDirX:
		return fmt.Sprintf("Light dir X: %.2f", d.Direction.X())
	case RowLightDirY:
		return fmt.Sprintf("Light dir Y: %.2f", d.Direction.Y())
	case RowLightDirZ:
		return fmt.Sprintf("Light dir Z: %.2f", d.Direction.Z())
	case RowLightAmbient:
		return "Light ambient: " + vecString(d.Ambient)
	case RowLightDiffuse:
		return "Light diffuse: " + vecString(d.Diffuse)
	case RowLightSpecular:
		return "Light specular: " + vecString(d.Specular)
	case RowCameraFollow:
		return fmt.Sprintf("Camera mouse update: %s", onOff(rc.CameraFollow))
	}
	return ""
}

// TelemetryLines is the number of lines Telemetry returns.
const TelemetryLines = 7

// Telemetry returns the read-only lines shown under the editable rows.
func Telemetry(rc *renderer.RenderContext) []string {
	cam := rc.Camera
	fps := float32(0)
	if rc.Delta > 0 {
		fps = 1 / rc.Delta
	}
	white := renderer.ToneMap(mgl32.Vec3{1, 1, 1}, rc.Toggles.Exposure, rc.Toggles.Gamma, rc.Toggles.HDREnabled)
	return []string{
		fmt.Sprintf("Frame: %.2f ms (%.0f fps)", rc.Delta*1000, fps),
		"Camera position: " + vecString(cam.Position),
		fmt.Sprintf("Yaw: %.1f  Pitch: %.1f  Zoom: %.1f", cam.Yaw, cam.Pitch, cam.Zoom),
		"Camera front: " + vecString(cam.Front),
		fmt.Sprintf("Spotlight: %s  Shading: %s", onOff(rc.Toggles.SpotlightEnabled), shading(rc.Toggles.BlinnShading)),
		fmt.Sprintf("Objects drawn: %d/%d", rc.Stats.ObjectsDrawn, rc.Stats.ObjectsTotal),
		fmt.Sprintf("White maps to: %.3f", white.X()),
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func shading(blinn bool) string {
	if blinn {
		return "Blinn-Phong"
	}
	return "Phong"
}

func vecString(v mgl32.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X(), v.Y(), v.Z())
}
