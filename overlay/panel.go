package overlay

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"temple-viewer/internal/gpu"
	"temple-viewer/renderer"
)

// Panel layout in pixels. The height fits every row, the blank separator and
// the telemetry lines.
const (
	margin     = 10
	lineHeight = 16
	panelLines = int(rowCount) + 1 + TelemetryLines

	PanelWidth  = 360
	PanelHeight = 2*margin + lineHeight*panelLines
)

var (
	background = color.RGBA{R: 16, G: 16, B: 24, A: 200}
	textColor  = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	highlight  = color.RGBA{R: 255, G: 200, B: 60, A: 255}
	dimColor   = color.RGBA{R: 150, G: 170, B: 190, A: 255}
)

// Panel draws the menu and telemetry as a textured quad in the window's top
// left corner. Its texture is allocated once and updated in place.
type Panel struct {
	Menu

	dev     gpu.Device
	program gpu.Program
	quad    gpu.Geometry
	tex     gpu.Texture
	img     *image.RGBA
	last    []string
}

var _ renderer.OverlayDrawer = (*Panel)(nil)

// NewPanel compiles the overlay program and allocates its texture.
func NewPanel(dev gpu.Device) (*Panel, error) {
	prog, err := dev.NewProgram(overlayVertSrc, overlayFragSrc)
	if err != nil {
		return nil, fmt.Errorf("overlay shader: %w", err)
	}
	dev.UseProgram(prog)
	dev.SetInt("panel", 0)

	img := image.NewRGBA(image.Rect(0, 0, PanelWidth, PanelHeight))
	return &Panel{
		dev:     dev,
		program: prog,
		quad:    dev.NewGeometry(gpu.GeometryDesc{Mode: gpu.TriangleStrip, Count: 4}),
		tex:     dev.NewTexture(PanelWidth, PanelHeight, gpu.FormatRGBA8, gpu.Sampler{Wrap: gpu.WrapClampToEdge}, img.Pix),
		img:     img,
	}, nil
}

// Program returns the overlay program handle.
func (p *Panel) Program() gpu.Program { return p.program }

// Texture returns the panel texture.
func (p *Panel) Texture() gpu.Texture { return p.tex }

// Lines returns every line the panel shows: a marker on the selected row,
// then telemetry.
func (p *Panel) Lines(rc *renderer.RenderContext) []string {
	lines := make([]string, 0, panelLines)
	for r := Row(0); r < rowCount; r++ {
		prefix := "  "
		if r == p.selected {
			prefix = "> "
		}
		lines = append(lines, prefix+Label(rc, r))
	}
	lines = append(lines, "")
	return append(lines, Telemetry(rc)...)
}

// Draw rasterises the panel when its text changed and blends it over the
// window surface.
func (p *Panel) Draw(rc *renderer.RenderContext) {
	lines := p.Lines(rc)
	if !equalLines(lines, p.last) {
		p.rasterize(lines)
		p.dev.UpdateTexture(p.tex, p.img.Pix)
		p.last = lines
	}

	dev := p.dev
	dev.SetDepthTest(false)
	dev.SetBlend(true)
	dev.UseProgram(p.program)
	dev.SetVec2("origin", mgl32.Vec2{margin, margin})
	dev.SetVec2("size", mgl32.Vec2{PanelWidth, float32(PanelHeight)})
	dev.SetVec2("screen", mgl32.Vec2{float32(rc.Width), float32(rc.Height)})
	dev.BindTexture(0, p.tex)
	dev.Draw(p.quad)
	dev.SetBlend(false)
	dev.SetDepthTest(true)
}

func (p *Panel) rasterize(lines []string) {
	draw.Draw(p.img, p.img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: p.img, Face: basicfont.Face7x13}
	for i, line := range lines {
		c := textColor
		switch {
		case i == int(p.selected):
			c = highlight
		case i > int(rowCount):
			c = dimColor
		}
		d.Src = image.NewUniform(c)
		d.Dot = fixed.P(margin, margin+lineHeight*(i+1))
		d.DrawString(line)
	}
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
