package render

import (
	"iter"
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Fragment is one candidate pixel produced by rasterizing a triangle.
// Attributes are interpolated in screen space from the triangle's
// vertices; perspective correction is deliberately omitted.
type Fragment struct {
	X, Y  int
	Depth float64

	Normal    math3d.Vec3
	UV        math3d.Vec2
	Local     math3d.Vec3
	Intensity float64
}

// edgeCoeffs holds the line equation A*x + B*y + C for one triangle
// edge, oriented so the inside of the triangle is non-negative.
type edgeCoeffs struct {
	a, b, c float64
}

func edge(x0, y0, x1, y1 float64) edgeCoeffs {
	return edgeCoeffs{
		a: y0 - y1,
		b: x1 - x0,
		c: x0*y1 - x1*y0,
	}
}

func (e edgeCoeffs) at(x, y float64) float64 {
	return e.a*x + e.b*y + e.c
}

// RasterizeTriangle scan-converts the screen-space triangle
// (v0, v1, v2) and lazily yields one fragment per covered pixel, with
// depth and the shading attributes interpolated barycentrically.
// Degenerate and back-facing triangles (signed doubled area <= 0)
// yield nothing. Pixels are sampled at their centers within the
// triangle's bounding box clamped to [0,width) x [0,height).
func RasterizeTriangle(v0, v1, v2 Vertex, width, height int) iter.Seq[Fragment] {
	return func(yield func(Fragment) bool) {
		e0 := edge(v1.Pos.X, v1.Pos.Y, v2.Pos.X, v2.Pos.Y)
		e1 := edge(v2.Pos.X, v2.Pos.Y, v0.Pos.X, v0.Pos.Y)
		e2 := edge(v0.Pos.X, v0.Pos.Y, v1.Pos.X, v1.Pos.Y)

		area2 := e0.at(v0.Pos.X, v0.Pos.Y)
		if area2 <= 0 {
			return
		}
		invArea := 1 / area2

		minX := int(math.Floor(min3(v0.Pos.X, v1.Pos.X, v2.Pos.X)))
		maxX := int(math.Ceil(max3(v0.Pos.X, v1.Pos.X, v2.Pos.X)))
		minY := int(math.Floor(min3(v0.Pos.Y, v1.Pos.Y, v2.Pos.Y)))
		maxY := int(math.Ceil(max3(v0.Pos.Y, v1.Pos.Y, v2.Pos.Y)))
		minX = max(minX, 0)
		minY = max(minY, 0)
		maxX = min(maxX, width-1)
		maxY = min(maxY, height-1)
		if minX > maxX || minY > maxY {
			return
		}

		// Edge values at the first pixel center; stepped
		// incrementally across the box.
		px := float64(minX) + 0.5
		py := float64(minY) + 0.5
		w0Row := e0.at(px, py)
		w1Row := e1.at(px, py)
		w2Row := e2.at(px, py)

		for y := minY; y <= maxY; y++ {
			w0, w1, w2 := w0Row, w1Row, w2Row
			for x := minX; x <= maxX; x++ {
				if w0 >= 0 && w1 >= 0 && w2 >= 0 {
					l0 := w0 * invArea
					l1 := w1 * invArea
					l2 := w2 * invArea
					f := Fragment{
						X:     x,
						Y:     y,
						Depth: l0*v0.Pos.Z + l1*v1.Pos.Z + l2*v2.Pos.Z,
						Normal: v0.Normal.Scale(l0).
							Add(v1.Normal.Scale(l1)).
							Add(v2.Normal.Scale(l2)).Normalize(),
						UV: math3d.V2(
							l0*v0.UV.X+l1*v1.UV.X+l2*v2.UV.X,
							l0*v0.UV.Y+l1*v1.UV.Y+l2*v2.UV.Y,
						),
						Local: v0.Local.Scale(l0).
							Add(v1.Local.Scale(l1)).
							Add(v2.Local.Scale(l2)),
						Intensity: l0*v0.Intensity + l1*v1.Intensity + l2*v2.Intensity,
					}
					if !yield(f) {
						return
					}
				}
				w0 += e0.a
				w1 += e1.a
				w2 += e2.a
			}
			w0Row += e0.b
			w1Row += e1.b
			w2Row += e2.b
		}
	}
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
