package models

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

// LoadGLB loads a binary glTF file into a flat triangle mesh. Every
// triangle primitive of every mesh in the document is merged.
// glTF fronts are counter-clockwise; the engine's fronts are
// clockwise on screen, so winding is reversed during expansion.
func LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open glb: %w", err)
	}

	var verts []render.Vertex
	for _, gm := range doc.Meshes {
		for _, prim := range gm.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			pv, err := expandPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %q: %w", gm.Name, err)
			}
			verts = append(verts, pv...)
		}
	}

	m := NewMesh(path, verts)
	if missingNormals(m.Vertices) {
		m.calculateFlatNormals()
	}
	return m, nil
}

// LoadGLBWithTexture loads a GLB and decodes its first embedded image
// as a texture. The texture is nil when the file has none.
func LoadGLBWithTexture(path string) (*Mesh, *render.Texture, error) {
	m, err := LoadGLB(path)
	if err != nil {
		return nil, nil, err
	}

	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open glb: %w", err)
	}
	for _, gi := range doc.Images {
		if gi.BufferView == nil {
			continue
		}
		bv := doc.BufferViews[*gi.BufferView]
		buf := doc.Buffers[bv.Buffer]
		if buf.Data == nil {
			continue
		}
		data := buf.Data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength]
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			continue
		}
		return m, render.NewTexture(img), nil
	}
	return m, nil, nil
}

func missingNormals(verts []render.Vertex) bool {
	for _, v := range verts {
		if v.Normal.Len() > 1e-3 {
			return false
		}
	}
	return true
}

// expandPrimitive resolves a primitive's accessors into a flat,
// winding-reversed vertex list.
func expandPrimitive(doc *gltf.Document, prim *gltf.Primitive) ([]render.Vertex, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	positions, err := readVec3(doc, posIdx)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals []math3d.Vec3
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = readVec3(doc, idx); err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
	}
	var uvs []math3d.Vec2
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = readVec2(doc, idx); err != nil {
			return nil, fmt.Errorf("uvs: %w", err)
		}
	}

	at := func(i int) render.Vertex {
		v := render.Vertex{Pos: positions[i]}
		if i < len(normals) {
			v.Normal = normals[i]
		}
		if i < len(uvs) {
			// glTF puts V=0 at the top; samplers expect the bottom.
			v.UV = math3d.V2(uvs[i].X, 1-uvs[i].Y)
		}
		return v
	}

	var indices []int
	if prim.Indices != nil {
		if indices, err = readIndices(doc, *prim.Indices); err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]int, len(positions))
		for i := range indices {
			indices[i] = i
		}
	}

	verts := make([]render.Vertex, 0, len(indices))
	for i := 0; i+2 < len(indices); i += 3 {
		verts = append(verts, at(indices[i]), at(indices[i+2]), at(indices[i+1]))
	}
	return verts, nil
}

func readVec3(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	acc := doc.Accessors[accessorIdx]
	if acc.Type != gltf.AccessorVec3 || acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v/%v", acc.Type, acc.ComponentType)
	}
	data, stride, err := accessorBytes(doc, acc, 12)
	if err != nil {
		return nil, err
	}
	out := make([]math3d.Vec3, acc.Count)
	for i := range acc.Count {
		off := i * stride
		out[i] = math3d.V3(
			float64(readFloat32(data[off:])),
			float64(readFloat32(data[off+4:])),
			float64(readFloat32(data[off+8:])),
		)
	}
	return out, nil
}

func readVec2(doc *gltf.Document, accessorIdx int) ([]math3d.Vec2, error) {
	acc := doc.Accessors[accessorIdx]
	if acc.Type != gltf.AccessorVec2 || acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC2, got %v/%v", acc.Type, acc.ComponentType)
	}
	data, stride, err := accessorBytes(doc, acc, 8)
	if err != nil {
		return nil, err
	}
	out := make([]math3d.Vec2, acc.Count)
	for i := range acc.Count {
		off := i * stride
		out[i] = math3d.V2(
			float64(readFloat32(data[off:])),
			float64(readFloat32(data[off+4:])),
		)
	}
	return out, nil
}

func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	acc := doc.Accessors[accessorIdx]
	if acc.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", acc.Type)
	}
	var size int
	switch acc.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unsupported index component: %v", acc.ComponentType)
	}
	data, stride, err := accessorBytes(doc, acc, size)
	if err != nil {
		return nil, err
	}
	out := make([]int, acc.Count)
	for i := range acc.Count {
		off := i * stride
		switch size {
		case 1:
			out[i] = int(data[off])
		case 2:
			out[i] = int(binary.LittleEndian.Uint16(data[off:]))
		case 4:
			out[i] = int(binary.LittleEndian.Uint32(data[off:]))
		}
	}
	return out, nil
}

// accessorBytes returns the accessor's backing bytes and element
// stride. Only embedded (GLB) buffers are supported.
func accessorBytes(doc *gltf.Document, acc *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if acc.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	bv := doc.BufferViews[*acc.BufferView]
	buf := doc.Buffers[bv.Buffer]
	if buf.Data == nil {
		return nil, 0, fmt.Errorf("external buffers not supported")
	}
	stride := bv.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := bv.ByteOffset + acc.ByteOffset
	end := start + (acc.Count-1)*stride + elemSize
	if end > len(buf.Data) {
		return nil, 0, fmt.Errorf("accessor overruns buffer")
	}
	return buf.Data[start:end], stride, nil
}

func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
