package models

import (
	"math"
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

func TestNewMeshDropsPartialTriangle(t *testing.T) {
	verts := make([]render.Vertex, 7)
	m := NewMesh("partial", verts)

	if len(m.Vertices) != 6 {
		t.Errorf("vertex count = %d, want 6", len(m.Vertices))
	}
	if m.TriangleCount() != 2 {
		t.Errorf("triangle count = %d, want 2", m.TriangleCount())
	}
}

func TestUVSphereGeometry(t *testing.T) {
	const radius = 2.5
	m := UVSphere(radius, 8, 12)

	if m.TriangleCount() == 0 {
		t.Fatal("empty sphere")
	}
	if len(m.Vertices)%3 != 0 {
		t.Fatalf("vertex count %d not a multiple of 3", len(m.Vertices))
	}

	for i, v := range m.Vertices {
		if d := v.Pos.Len(); math.Abs(d-radius) > 1e-9 {
			t.Fatalf("vertex %d at distance %v, want %v", i, d, radius)
		}
		if l := v.Normal.Len(); math.Abs(l-1) > 1e-9 {
			t.Fatalf("vertex %d normal length %v", i, l)
		}
		// Outward normal: aligned with the radius vector.
		if v.Normal.Dot(v.Pos.Normalize()) < 0.999 {
			t.Fatalf("vertex %d normal %+v not outward", i, v.Normal)
		}
		if v.UV.X < 0 || v.UV.X > 1 || v.UV.Y < 0 || v.UV.Y > 1 {
			t.Fatalf("vertex %d UV %+v outside [0,1]", i, v.UV)
		}
	}
}

func TestUVSphereTriangleCount(t *testing.T) {
	stacks, slices := 8, 12
	m := UVSphere(1, stacks, slices)

	// Cap rows contribute one triangle per slice, middle rows two.
	want := slices * (2*(stacks-2) + 2)
	if got := m.TriangleCount(); got != want {
		t.Errorf("triangle count = %d, want %d", got, want)
	}
}

func TestUVSphereWindingFacesOutward(t *testing.T) {
	m := UVSphere(1, 8, 12)

	// For every triangle, the face normal from the engine's
	// clockwise-front convention must point away from the origin.
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		a, b, c := m.Vertices[i].Pos, m.Vertices[i+1].Pos, m.Vertices[i+2].Pos
		face := c.Sub(a).Cross(b.Sub(a))
		centroid := a.Add(b).Add(c).Scale(1.0 / 3)
		if face.Dot(centroid) <= 0 {
			t.Fatalf("triangle %d winds inward", i/3)
		}
	}
}

func TestUVSphereBoundingSphere(t *testing.T) {
	m := UVSphere(3, 10, 14)
	center, radius := m.BoundingSphere()

	if center.Len() > 1e-9 {
		t.Errorf("bounding center = %+v, want origin", center)
	}
	if math.Abs(radius-3) > 1e-9 {
		t.Errorf("bounding radius = %v, want 3", radius)
	}
}

func TestUVSphereClampsDegenerateArgs(t *testing.T) {
	m := UVSphere(1, 0, 0)
	if m.TriangleCount() == 0 {
		t.Error("degenerate args produced an empty sphere")
	}
}

func TestCalculateFlatNormals(t *testing.T) {
	// One front-facing triangle in the z=0 plane, fronts clockwise.
	verts := []render.Vertex{
		{Pos: math3d.V3(1, 1, 0)},
		{Pos: math3d.V3(1, -1, 0)},
		{Pos: math3d.V3(-1, -1, 0)},
	}
	m := NewMesh("tri", verts)
	m.calculateFlatNormals()

	want := math3d.V3(0, 0, 1)
	for i, v := range m.Vertices {
		if v.Normal.Distance(want) > 1e-9 {
			t.Errorf("vertex %d normal = %+v, want %+v", i, v.Normal, want)
		}
	}
}
