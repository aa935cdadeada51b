package models

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/orrery/pkg/math3d"
)

// buildTriangleDoc assembles a single-triangle document in memory:
// three positions, no indices.
func buildTriangleDoc(positions [][3]float32) *gltf.Document {
	data := make([]byte, len(positions)*12)
	for i, p := range positions {
		for j, f := range p {
			binary.LittleEndian.PutUint32(data[i*12+j*4:], math.Float32bits(f))
		}
	}

	return &gltf.Document{
		Buffers: []*gltf.Buffer{{ByteLength: len(data), Data: data}},
		BufferViews: []*gltf.BufferView{{
			Buffer:     0,
			ByteLength: len(data),
		}},
		Accessors: []*gltf.Accessor{{
			BufferView:    gltf.Index(0),
			ComponentType: gltf.ComponentFloat,
			Type:          gltf.AccessorVec3,
			Count:         len(positions),
		}},
	}
}

func TestExpandPrimitiveReversesWinding(t *testing.T) {
	doc := buildTriangleDoc([][3]float32{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
	})
	prim := &gltf.Primitive{
		Attributes: map[string]int{gltf.POSITION: 0},
		Mode:       gltf.PrimitiveTriangles,
	}

	verts, err := expandPrimitive(doc, prim)
	if err != nil {
		t.Fatal(err)
	}
	if len(verts) != 3 {
		t.Fatalf("vertex count = %d, want 3", len(verts))
	}

	// Counter-clockwise input comes out with the second and third
	// vertices swapped.
	want := []math3d.Vec3{
		math3d.V3(0, 0, 0),
		math3d.V3(0, 1, 0),
		math3d.V3(1, 0, 0),
	}
	for i, w := range want {
		if verts[i].Pos.Distance(w) > 1e-9 {
			t.Errorf("vertex %d = %+v, want %+v", i, verts[i].Pos, w)
		}
	}
}

func TestExpandPrimitiveSkipsMissingPositions(t *testing.T) {
	doc := &gltf.Document{}
	prim := &gltf.Primitive{Attributes: map[string]int{}}

	verts, err := expandPrimitive(doc, prim)
	if err != nil {
		t.Fatal(err)
	}
	if len(verts) != 0 {
		t.Errorf("got %d vertices from a primitive without positions", len(verts))
	}
}

func TestAccessorBytesBoundsCheck(t *testing.T) {
	doc := buildTriangleDoc([][3]float32{{0, 0, 0}})
	doc.Accessors[0].Count = 10 // overruns the 12-byte buffer

	if _, _, err := accessorBytes(doc, doc.Accessors[0], 12); err == nil {
		t.Error("overrunning accessor not rejected")
	}
}
