// Package models builds and loads the triangle meshes the scene
// renders: procedural spheres for the bodies and glTF binaries for
// the craft.
package models

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

// Mesh is a flat triangle list: every three vertices form one
// triangle. Construction drops any trailing partial group, so the
// length is always a multiple of three.
type Mesh struct {
	Name     string
	Vertices []render.Vertex

	center math3d.Vec3
	radius float64
}

// NewMesh wraps a vertex slice as a mesh, trimming a trailing partial
// triangle and computing the bounding sphere.
func NewMesh(name string, verts []render.Vertex) *Mesh {
	verts = verts[:len(verts)-len(verts)%3]
	m := &Mesh{Name: name, Vertices: verts}
	m.computeBounds()
	return m
}

// TriangleCount returns the number of whole triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Vertices) / 3
}

// BoundingSphere returns a sphere enclosing every vertex, in model
// space; used for view-volume culling.
func (m *Mesh) BoundingSphere() (math3d.Vec3, float64) {
	return m.center, m.radius
}

func (m *Mesh) computeBounds() {
	if len(m.Vertices) == 0 {
		return
	}
	lo := m.Vertices[0].Pos
	hi := lo
	for _, v := range m.Vertices[1:] {
		lo = math3d.V3(math.Min(lo.X, v.Pos.X), math.Min(lo.Y, v.Pos.Y), math.Min(lo.Z, v.Pos.Z))
		hi = math3d.V3(math.Max(hi.X, v.Pos.X), math.Max(hi.Y, v.Pos.Y), math.Max(hi.Z, v.Pos.Z))
	}
	m.center = lo.Add(hi).Scale(0.5)
	for _, v := range m.Vertices {
		if d := v.Pos.Distance(m.center); d > m.radius {
			m.radius = d
		}
	}
}

// calculateFlatNormals fills in per-face normals for meshes that ship
// without them. Front faces wind clockwise on screen, so the face
// normal is edge2 x edge1.
func (m *Mesh) calculateFlatNormals() {
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		a, b, c := m.Vertices[i].Pos, m.Vertices[i+1].Pos, m.Vertices[i+2].Pos
		n := c.Sub(a).Cross(b.Sub(a)).Normalize()
		m.Vertices[i].Normal = n
		m.Vertices[i+1].Normal = n
		m.Vertices[i+2].Normal = n
	}
}

// UVSphere builds a latitude/longitude sphere of the given radius.
// Normals point outward and UVs cover the full [0,1] range with V=0
// at the north pole. Triangles wind clockwise when viewed from
// outside, matching the screen-space front-face convention.
func UVSphere(radius float64, stacks, slices int) *Mesh {
	if stacks < 2 {
		stacks = 2
	}
	if slices < 3 {
		slices = 3
	}

	point := func(stack, slice int) render.Vertex {
		phi := math.Pi * float64(stack) / float64(stacks)
		theta := 2 * math.Pi * float64(slice) / float64(slices)
		n := math3d.V3(
			math.Sin(phi)*math.Cos(theta),
			math.Cos(phi),
			math.Sin(phi)*math.Sin(theta),
		)
		return render.Vertex{
			Pos:    n.Scale(radius),
			Normal: n,
			UV: math3d.V2(
				float64(slice)/float64(slices),
				float64(stack)/float64(stacks),
			),
		}
	}

	verts := make([]render.Vertex, 0, stacks*slices*6)
	for i := range stacks {
		for j := range slices {
			p00 := point(i, j)
			p10 := point(i+1, j)
			p01 := point(i, j+1)
			p11 := point(i+1, j+1)

			if i > 0 { // top cap rows collapse p00 == p01
				verts = append(verts, p00, p11, p01)
			}
			if i < stacks-1 { // bottom cap rows collapse p10 == p11
				verts = append(verts, p00, p10, p11)
			}
		}
	}
	return NewMesh("sphere", verts)
}
