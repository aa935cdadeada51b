package render

import (
	"math"
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/noise"
)

func testUniforms(width, height float64) *Uniforms {
	u := NewUniforms(noise.NewSimplex(1))
	u.SetFrame(
		math3d.LookAt(math3d.V3(0, 0, 10), math3d.Zero3(), math3d.Up()),
		math3d.Perspective(math.Pi/4, width/height, 0.1, 100),
		math3d.Viewport(width, height),
		0,
	)
	return u
}

func TestTransformVertexCenterOfScreen(t *testing.T) {
	u := testUniforms(100, 100)

	// A point on the view axis lands at the screen center.
	out := TransformVertex(Vertex{
		Pos:    math3d.Zero3(),
		Normal: math3d.V3(0, 0, 1),
	}, u)

	if math.Abs(out.Pos.X-50) > 1e-6 || math.Abs(out.Pos.Y-50) > 1e-6 {
		t.Errorf("screen position = (%v, %v), want (50, 50)", out.Pos.X, out.Pos.Y)
	}
}

func TestTransformVertexDepthOrdering(t *testing.T) {
	u := testUniforms(100, 100)

	near := TransformVertex(Vertex{Pos: math3d.V3(0, 0, 5), Normal: math3d.Up()}, u)
	far := TransformVertex(Vertex{Pos: math3d.V3(0, 0, -5), Normal: math3d.Up()}, u)

	if near.Pos.Z >= far.Pos.Z {
		t.Errorf("near depth %v not less than far depth %v", near.Pos.Z, far.Pos.Z)
	}
}

func TestTransformVertexScreenYGrowsDownward(t *testing.T) {
	u := testUniforms(100, 100)

	above := TransformVertex(Vertex{Pos: math3d.V3(0, 1, 0), Normal: math3d.Up()}, u)
	below := TransformVertex(Vertex{Pos: math3d.V3(0, -1, 0), Normal: math3d.Up()}, u)

	if above.Pos.Y >= below.Pos.Y {
		t.Errorf("world-up point at screen y=%v, world-down at y=%v; want up above down",
			above.Pos.Y, below.Pos.Y)
	}
}

func TestTransformVertexKeepsLocalPosition(t *testing.T) {
	u := testUniforms(100, 100)
	pos := math3d.V3(0.3, -0.7, 0.2)

	out := TransformVertex(Vertex{Pos: pos, Normal: pos.Normalize()}, u)

	if !vecClose(out.Local, pos) {
		t.Errorf("local position = %+v, want %+v", out.Local, pos)
	}
}

func TestTransformVertexIntensity(t *testing.T) {
	u := testUniforms(100, 100)
	u.LightDir = math3d.V3(0, 0, 1)

	lit := TransformVertex(Vertex{Pos: math3d.Zero3(), Normal: math3d.V3(0, 0, 1)}, u)
	if !closeEnough(lit.Intensity, 1) {
		t.Errorf("facing the light: intensity = %v, want 1", lit.Intensity)
	}

	unlit := TransformVertex(Vertex{Pos: math3d.Zero3(), Normal: math3d.V3(0, 0, -1)}, u)
	if !closeEnough(unlit.Intensity, ambientFloor) {
		t.Errorf("facing away: intensity = %v, want ambient floor %v", unlit.Intensity, ambientFloor)
	}
}

func TestTransformVertexNormalUnderScale(t *testing.T) {
	u := testUniforms(100, 100)
	u.SetModel(math3d.ScaleUniform(3))

	out := TransformVertex(Vertex{Pos: math3d.V3(0, 1, 0), Normal: math3d.Up()}, u)

	if math.Abs(out.Normal.Len()-1) > 1e-9 {
		t.Errorf("normal length = %v, want 1", out.Normal.Len())
	}
	if !vecNear(out.Normal, math3d.Up(), 1e-9) {
		t.Errorf("normal = %+v, want up", out.Normal)
	}
}

func TestDrawTrianglesDropsPartialGroup(t *testing.T) {
	u := testUniforms(64, 64)
	fb := NewFramebuffer(64, 64)

	flat := func(Fragment, *Uniforms) Color { return ColorWhite }

	// Five vertices: one whole triangle plus a dangling pair.
	verts := []Vertex{
		{Pos: math3d.V3(-1, 1, 0), Normal: math3d.V3(0, 0, 1)},
		{Pos: math3d.V3(1, 1, 0), Normal: math3d.V3(0, 0, 1)},
		{Pos: math3d.V3(-1, -1, 0), Normal: math3d.V3(0, 0, 1)},
		{Pos: math3d.V3(100, 100, 0), Normal: math3d.V3(0, 0, 1)},
		{Pos: math3d.V3(200, 200, 0), Normal: math3d.V3(0, 0, 1)},
	}
	DrawTriangles(fb, verts, u, flat)

	drawn := 0
	for y := range fb.Height {
		for x := range fb.Width {
			if fb.GetPixel(x, y) == ColorWhite {
				drawn++
			}
		}
	}
	if drawn == 0 {
		t.Error("whole triangle was not drawn")
	}
}

func TestDrawTrianglesRejectsBehindEye(t *testing.T) {
	u := testUniforms(64, 64)
	fb := NewFramebuffer(64, 64)

	flat := func(Fragment, *Uniforms) Color { return ColorWhite }

	// Eye is at z=10 looking toward -z; z=20 is behind it.
	verts := []Vertex{
		{Pos: math3d.V3(-1, 1, 20), Normal: math3d.V3(0, 0, 1)},
		{Pos: math3d.V3(1, 1, 20), Normal: math3d.V3(0, 0, 1)},
		{Pos: math3d.V3(-1, -1, 20), Normal: math3d.V3(0, 0, 1)},
	}
	DrawTriangles(fb, verts, u, flat)

	for y := range fb.Height {
		for x := range fb.Width {
			if fb.GetPixel(x, y) == ColorWhite {
				t.Fatalf("behind-eye triangle drew pixel (%d,%d)", x, y)
			}
		}
	}
}
