package scene

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Texture holds CPU-side pixel data for a 2D texture.
type Texture struct {
	Name   string
	Width  int
	Height int
	// Pixels in RGBA8 format (4 bytes per pixel, row-major, top-to-bottom).
	Pixels []byte
	// HasAlpha is true when the source image carried an alpha channel.
	HasAlpha bool
}

// LoadImage reads an image file and converts it to RGBA8. With flip set the
// rows are reversed so row 0 is the bottom of the image.
func LoadImage(path string, flip bool) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	tex, err := decodeImage(path, f, flip)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}
	return tex, nil
}

// decodeImageBytes decodes an in-memory PNG/JPEG/BMP/TIFF/WebP image.
func decodeImageBytes(name string, data []byte) (*Texture, error) {
	return decodeImage(name, bytes.NewReader(data), false)
}

func decodeImage(name string, r io.Reader, flip bool) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	if flip {
		flipRows(rgba.Pix, rgba.Stride, bounds.Dy())
	}

	return &Texture{
		Name:     name,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Pixels:   rgba.Pix,
		HasAlpha: hasAlphaChannel(img),
	}, nil
}

func hasAlphaChannel(img image.Image) bool {
	switch src := img.(type) {
	case *image.RGBA, *image.RGBA64, *image.NRGBA, *image.NRGBA64, *image.Alpha, *image.Alpha16:
		return true
	case *image.Paletted:
		for _, c := range src.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}

func flipRows(pix []byte, stride, rows int) {
	tmp := make([]byte, stride)
	for top, bottom := 0, rows-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := pix[top*stride : (top+1)*stride]
		b := pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

// NewSolidTexture creates a 1x1 texture with the given RGBA color values (0–255).
func NewSolidTexture(name string, r, g, b, a uint8) *Texture {
	return &Texture{
		Name:     name,
		Width:    1,
		Height:   1,
		Pixels:   []byte{r, g, b, a},
		HasAlpha: a != 255,
	}
}
