package render

import (
	"testing"
)

func TestClearResetsBothBuffers(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	fb.SetColor(ColorWhite)
	fb.Point(3, 3, 0.5)

	fb.SetBackground(RGB(10, 20, 30))
	fb.Clear()

	for y := range fb.Height {
		for x := range fb.Width {
			if fb.GetPixel(x, y) != RGB(10, 20, 30) {
				t.Fatalf("pixel (%d,%d) = %v after clear", x, y, fb.GetPixel(x, y))
			}
			if fb.DepthAt(x, y) != MaxDepth {
				t.Fatalf("depth (%d,%d) = %v after clear", x, y, fb.DepthAt(x, y))
			}
		}
	}
}

func TestPointDepthTest(t *testing.T) {
	fb := NewFramebuffer(4, 4)

	fb.SetColor(RGB(255, 0, 0))
	if !fb.Point(1, 1, 0.8) {
		t.Fatal("write into a cleared buffer rejected")
	}

	// Farther fragment must lose.
	fb.SetColor(RGB(0, 255, 0))
	if fb.Point(1, 1, 0.9) {
		t.Error("farther fragment accepted")
	}
	if fb.GetPixel(1, 1) != RGB(255, 0, 0) {
		t.Errorf("pixel = %v, want red", fb.GetPixel(1, 1))
	}

	// Nearer fragment must win.
	fb.SetColor(RGB(0, 0, 255))
	if !fb.Point(1, 1, 0.3) {
		t.Error("nearer fragment rejected")
	}
	if fb.GetPixel(1, 1) != RGB(0, 0, 255) {
		t.Errorf("pixel = %v, want blue", fb.GetPixel(1, 1))
	}
	if fb.DepthAt(1, 1) != 0.3 {
		t.Errorf("depth = %v, want 0.3", fb.DepthAt(1, 1))
	}
}

func TestPointEqualDepthRejected(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.SetColor(RGB(255, 0, 0))
	fb.Point(0, 0, 0.5)

	fb.SetColor(RGB(0, 255, 0))
	if fb.Point(0, 0, 0.5) {
		t.Error("equal-depth fragment accepted; the first writer should keep the pixel")
	}
}

func TestPointOutOfBounds(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.SetColor(ColorWhite)

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {100, 100}} {
		if fb.Point(p[0], p[1], 0.1) {
			t.Errorf("out-of-bounds write (%d,%d) accepted", p[0], p[1])
		}
	}
	if fb.DepthAt(-1, -1) != MaxDepth {
		t.Error("out-of-bounds depth read should return the sentinel")
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	fb := NewFramebuffer(16, 16)
	fb.SetColor(ColorWhite)
	fb.DrawLine(2, 3, 12, 9)

	if fb.GetPixel(2, 3) != ColorWhite {
		t.Error("start point not drawn")
	}
	if fb.GetPixel(12, 9) != ColorWhite {
		t.Error("end point not drawn")
	}
}

func TestDrawLineClipsSilently(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	fb.SetColor(ColorWhite)
	fb.DrawLine(-5, -5, 20, 20) // must not panic

	if fb.GetPixel(4, 4) != ColorWhite {
		t.Error("diagonal through the buffer not drawn")
	}
}

func TestLerpColorClampsT(t *testing.T) {
	a, b := RGB(0, 0, 0), RGB(200, 100, 50)

	if got := LerpColor(a, b, -1); got != a {
		t.Errorf("t=-1: got %v, want %v", got, a)
	}
	if got := LerpColor(a, b, 2); got != b {
		t.Errorf("t=2: got %v, want %v", got, b)
	}
	mid := LerpColor(a, b, 0.5)
	if mid.R != 100 || mid.G != 50 || mid.B != 25 {
		t.Errorf("t=0.5: got %v", mid)
	}
}

func TestScaleColorSaturates(t *testing.T) {
	if got := ScaleColor(RGB(200, 200, 200), 2); got != ColorWhite {
		t.Errorf("overdriven scale = %v, want white", got)
	}
	if got := ScaleColor(RGB(200, 200, 200), -1); got != RGB(0, 0, 0) {
		t.Errorf("negative scale = %v, want black", got)
	}
}

func BenchmarkClear(b *testing.B) {
	fb := NewFramebuffer(320, 200)
	for b.Loop() {
		fb.Clear()
	}
}
