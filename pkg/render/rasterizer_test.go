package render

import (
	"math"
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
)

func screenVertex(x, y, z float64) Vertex {
	return Vertex{Pos: math3d.V3(x, y, z), Normal: math3d.V3(0, 0, 1), Intensity: 1}
}

func collect(v0, v1, v2 Vertex, w, h int) []Fragment {
	var frags []Fragment
	for f := range RasterizeTriangle(v0, v1, v2, w, h) {
		frags = append(frags, f)
	}
	return frags
}

func TestRasterizeRightTriangle(t *testing.T) {
	frags := collect(
		screenVertex(10, 10, 0.5),
		screenVertex(50, 10, 0.5),
		screenVertex(10, 50, 0.5),
		100, 100,
	)

	if len(frags) == 0 {
		t.Fatal("no fragments for a 40x40 right triangle")
	}
	// Half of the 40x40 bounding box, within sampling slack.
	if len(frags) < 700 || len(frags) > 900 {
		t.Errorf("fragment count = %d, want roughly 800", len(frags))
	}

	for _, f := range frags {
		if !closeEnough(f.Depth, 0.5) {
			t.Fatalf("fragment (%d,%d) depth = %v, want 0.5", f.X, f.Y, f.Depth)
		}
		if f.X < 10 || f.X > 50 || f.Y < 10 || f.Y > 50 {
			t.Fatalf("fragment (%d,%d) outside the triangle bounds", f.X, f.Y)
		}
	}
}

func TestRasterizeDegenerateYieldsNothing(t *testing.T) {
	cases := []struct {
		name       string
		v0, v1, v2 Vertex
	}{
		{"collinear", screenVertex(10, 10, 0), screenVertex(20, 20, 0), screenVertex(30, 30, 0)},
		{"coincident", screenVertex(10, 10, 0), screenVertex(10, 10, 0), screenVertex(10, 10, 0)},
		{"back-facing", screenVertex(10, 10, 0), screenVertex(10, 50, 0), screenVertex(50, 10, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if frags := collect(tc.v0, tc.v1, tc.v2, 100, 100); len(frags) != 0 {
				t.Errorf("got %d fragments, want 0", len(frags))
			}
		})
	}
}

func TestRasterizeClampsToScreen(t *testing.T) {
	frags := collect(
		screenVertex(-40, -40, 0.5),
		screenVertex(60, -40, 0.5),
		screenVertex(-40, 60, 0.5),
		32, 32,
	)

	if len(frags) == 0 {
		t.Fatal("triangle overlapping the screen corner yielded nothing")
	}
	for _, f := range frags {
		if f.X < 0 || f.X >= 32 || f.Y < 0 || f.Y >= 32 {
			t.Fatalf("fragment (%d,%d) outside the 32x32 screen", f.X, f.Y)
		}
	}
}

func TestRasterizeFullyOffscreen(t *testing.T) {
	frags := collect(
		screenVertex(200, 200, 0.5),
		screenVertex(240, 200, 0.5),
		screenVertex(200, 240, 0.5),
		100, 100,
	)
	if len(frags) != 0 {
		t.Errorf("offscreen triangle yielded %d fragments", len(frags))
	}
}

func TestRasterizeInterpolatesDepth(t *testing.T) {
	frags := collect(
		screenVertex(0, 0, 0),
		screenVertex(64, 0, 1),
		screenVertex(0, 64, 1),
		64, 64,
	)

	for _, f := range frags {
		if f.Depth < -1e-9 || f.Depth > 1+1e-9 {
			t.Fatalf("fragment (%d,%d) depth %v outside the vertex range", f.X, f.Y, f.Depth)
		}
	}

	// Depth grows with distance from the zero-depth corner.
	var near, far Fragment
	near.Depth = math.MaxFloat64
	for _, f := range frags {
		if f.Depth < near.Depth {
			near = f
		}
		if f.Depth > far.Depth {
			far = f
		}
	}
	if near.X+near.Y >= far.X+far.Y {
		t.Errorf("nearest fragment (%d,%d) not closer to the origin than farthest (%d,%d)",
			near.X, near.Y, far.X, far.Y)
	}
}

func TestRasterizeInterpolatesIntensity(t *testing.T) {
	v0 := screenVertex(0, 0, 0.5)
	v0.Intensity = 0
	v1 := screenVertex(64, 0, 0.5)
	v1.Intensity = 1
	v2 := screenVertex(0, 64, 0.5)
	v2.Intensity = 1

	for f := range RasterizeTriangle(v0, v1, v2, 64, 64) {
		if f.Intensity < -1e-9 || f.Intensity > 1+1e-9 {
			t.Fatalf("fragment (%d,%d) intensity %v outside [0,1]", f.X, f.Y, f.Intensity)
		}
	}
}

func TestRasterizeStopsWhenYieldReturnsFalse(t *testing.T) {
	count := 0
	for range RasterizeTriangle(
		screenVertex(0, 0, 0),
		screenVertex(64, 0, 0),
		screenVertex(0, 64, 0),
		64, 64,
	) {
		count++
		if count == 5 {
			break
		}
	}
	if count != 5 {
		t.Errorf("consumed %d fragments, want 5", count)
	}
}

func BenchmarkRasterizeTriangle(b *testing.B) {
	v0 := screenVertex(0, 0, 0.2)
	v1 := screenVertex(200, 10, 0.5)
	v2 := screenVertex(30, 200, 0.8)
	for b.Loop() {
		for f := range RasterizeTriangle(v0, v1, v2, 256, 256) {
			_ = f
		}
	}
}
