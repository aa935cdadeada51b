package render

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png" // texture decoding
	"math"
	"os"
)

// Texture is a sampled image surface. UV coordinates wrap, so any
// (u, v) is valid.
type Texture struct {
	Width  int
	Height int
	Pixels []color.RGBA
}

// NewTexture copies an image into a sampleable texture.
func NewTexture(img image.Image) *Texture {
	b := img.Bounds()
	t := &Texture{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pixels: make([]color.RGBA, b.Dx()*b.Dy()),
	}
	for y := range t.Height {
		for x := range t.Width {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			t.Pixels[y*t.Width+x] = color.RGBA{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(bl >> 8),
				A: uint8(a >> 8),
			}
		}
	}
	return t
}

// LoadTexture reads and decodes an image file into a texture.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return NewTexture(img), nil
}

// NewCheckerTexture builds a two-color checkerboard, handy as a
// fallback surface and in tests.
func NewCheckerTexture(size, squares int, a, b color.RGBA) *Texture {
	t := &Texture{
		Width:  size,
		Height: size,
		Pixels: make([]color.RGBA, size*size),
	}
	cell := size / squares
	if cell < 1 {
		cell = 1
	}
	for y := range size {
		for x := range size {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			t.Pixels[y*size+x] = c
		}
	}
	return t
}

// Sample returns the texel at (u, v) with repeat wrapping and
// nearest-neighbor filtering.
func (t *Texture) Sample(u, v float64) color.RGBA {
	u = wrap(u)
	v = wrap(v)
	x := int(u * float64(t.Width))
	y := int(v * float64(t.Height))
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}
	return t.Pixels[y*t.Width+x]
}

func wrap(f float64) float64 {
	f = math.Mod(f, 1)
	if f < 0 {
		f++
	}
	return f
}
