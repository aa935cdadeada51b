package render

import (
	"github.com/taigrr/orrery/pkg/math3d"
)

// Plane is a half-space in Hessian normal form: points p with
// Normal.Dot(p) + D >= 0 are inside.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// SignedDistance returns the signed distance from p to the plane.
func (p Plane) SignedDistance(v math3d.Vec3) float64 {
	return p.Normal.Dot(v) + p.D
}

// Frustum is the six bounding planes of a view volume, used to skip
// bodies that cannot appear on screen.
type Frustum struct {
	planes [6]Plane
}

// NewFrustum extracts the six planes from a combined
// projection * view matrix, normals pointing inward.
func NewFrustum(viewProj math3d.Mat4) Frustum {
	row := func(i int) math3d.Vec4 {
		return math3d.V4(
			viewProj.Get(i, 0),
			viewProj.Get(i, 1),
			viewProj.Get(i, 2),
			viewProj.Get(i, 3),
		)
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	var f Frustum
	for i, v := range [6]math3d.Vec4{
		{X: r3.X + r0.X, Y: r3.Y + r0.Y, Z: r3.Z + r0.Z, W: r3.W + r0.W}, // left
		{X: r3.X - r0.X, Y: r3.Y - r0.Y, Z: r3.Z - r0.Z, W: r3.W - r0.W}, // right
		{X: r3.X + r1.X, Y: r3.Y + r1.Y, Z: r3.Z + r1.Z, W: r3.W + r1.W}, // bottom
		{X: r3.X - r1.X, Y: r3.Y - r1.Y, Z: r3.Z - r1.Z, W: r3.W - r1.W}, // top
		{X: r3.X + r2.X, Y: r3.Y + r2.Y, Z: r3.Z + r2.Z, W: r3.W + r2.W}, // near
		{X: r3.X - r2.X, Y: r3.Y - r2.Y, Z: r3.Z - r2.Z, W: r3.W - r2.W}, // far
	} {
		n := math3d.V3(v.X, v.Y, v.Z)
		length := n.Len()
		if length == 0 {
			length = 1
		}
		f.planes[i] = Plane{
			Normal: n.Scale(1 / length),
			D:      v.W / length,
		}
	}
	return f
}

// IntersectsSphere reports whether a sphere is at least partially
// inside the frustum.
func (f Frustum) IntersectsSphere(center math3d.Vec3, radius float64) bool {
	for _, p := range f.planes {
		if p.SignedDistance(center) < -radius {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether a point is inside the frustum, with a
// small tolerance for points exactly on a plane.
func (f Frustum) ContainsPoint(v math3d.Vec3) bool {
	const eps = 1e-9
	for _, p := range f.planes {
		if p.SignedDistance(v) < -eps {
			return false
		}
	}
	return true
}

// sphereFullyInside reports whether the sphere is wholly contained.
func (f Frustum) sphereFullyInside(center math3d.Vec3, radius float64) bool {
	for _, p := range f.planes {
		if p.SignedDistance(center) < radius {
			return false
		}
	}
	return true
}

// InclusionTest classifies a sphere as outside, intersecting, or
// fully inside the frustum.
type InclusionTest int

const (
	Outside InclusionTest = iota
	Intersecting
	Inside
)

// ClassifySphere returns the sphere's relation to the frustum.
func (f Frustum) ClassifySphere(center math3d.Vec3, radius float64) InclusionTest {
	if !f.IntersectsSphere(center, radius) {
		return Outside
	}
	if f.sphereFullyInside(center, radius) {
		return Inside
	}
	return Intersecting
}
