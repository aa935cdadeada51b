// Package render implements the software rendering pipeline for the
// orrery: vertex transform, triangle rasterization, depth-tested
// framebuffer writes, and terminal presentation.
package render

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// MaxDepth is the sentinel the depth buffer is cleared to; any real
// fragment depth tests nearer than it.
const MaxDepth = math.MaxFloat64

// Framebuffer owns a color buffer and a per-pixel depth buffer of the
// same dimensions. All pixel writes go through Point (depth-tested) or
// the line/overlay primitives (not depth-tested); both bounds-check
// and silently discard out-of-range coordinates.
type Framebuffer struct {
	Width  int          // Width in pixels
	Height int          // Height in pixels
	Pixels []color.RGBA // Row-major color data
	Depth  []float64    // Row-major depth data, in lockstep with Pixels

	background color.RGBA
	current    color.RGBA
}

// NewFramebuffer creates a framebuffer with the given dimensions,
// cleared to black with the depth buffer at the sentinel maximum.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		Width:      width,
		Height:     height,
		Pixels:     make([]color.RGBA, width*height),
		Depth:      make([]float64, width*height),
		background: ColorBlack,
		current:    ColorWhite,
	}
	fb.Clear()
	return fb
}

// SetBackground sets the color Clear fills with.
func (fb *Framebuffer) SetBackground(c color.RGBA) {
	fb.background = c
}

// SetColor sets the current drawing color used by Point and DrawLine.
func (fb *Framebuffer) SetColor(c color.RGBA) {
	fb.current = c
}

// Clear resets the color buffer to the background color and the depth
// buffer to the sentinel maximum. Uses copy-doubling for speed.
func (fb *Framebuffer) Clear() {
	n := len(fb.Pixels)
	if n == 0 {
		return
	}
	fb.Pixels[0] = fb.background
	fb.Depth[0] = MaxDepth
	for i := 1; i < n; i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
		copy(fb.Depth[i:], fb.Depth[:i])
	}
}

// Point writes the current drawing color at (x, y) iff depth is
// strictly nearer than the stored depth there. Out-of-bounds writes
// are discarded. Returns whether the write was committed.
func (fb *Framebuffer) Point(x, y int, depth float64) bool {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return false
	}
	idx := y*fb.Width + x
	if depth >= fb.Depth[idx] {
		return false
	}
	fb.Pixels[idx] = fb.current
	fb.Depth[idx] = depth
	return true
}

// DepthAt returns the stored depth at (x, y), or the sentinel maximum
// for out-of-bounds coordinates.
func (fb *Framebuffer) DepthAt(x, y int) float64 {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return MaxDepth
	}
	return fb.Depth[y*fb.Width+x]
}

// GetPixel returns the color at (x, y), or transparent black when out
// of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// SetPixel writes a color without a depth test; overlays and the
// starfield use it so geometry can still draw over them.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// DrawLine draws a screen-space line in the current drawing color
// using Bresenham's algorithm. Lines are overlays: no depth test.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, fb.current)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the color buffer to a standard image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := range fb.Height {
		for x := range fb.Width {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// SavePNG saves the color buffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, fb.ToImage())
}
