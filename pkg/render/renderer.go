package render

// Shader computes the color of one fragment from the interpolated
// attributes and the active uniforms.
type Shader func(Fragment, *Uniforms) Color

// DrawTriangles runs the full pipeline over a flat triangle list:
// every three vertices form one triangle, and a trailing partial
// group is dropped. Triangles with any vertex at or behind the eye
// plane are rejected before the perspective divide. Fragments are
// depth-tested against fb before shading, so occluded pixels never
// run the shader.
func DrawTriangles(fb *Framebuffer, verts []Vertex, u *Uniforms, shader Shader) {
	for i := 0; i+2 < len(verts); i += 3 {
		drawTriangle(fb, verts[i], verts[i+1], verts[i+2], u, shader)
	}
}

func drawTriangle(fb *Framebuffer, a, b, c Vertex, u *Uniforms, shader Shader) {
	for _, v := range [3]Vertex{a, b, c} {
		if u.ClipPosition(v.Pos).W <= 0 {
			return
		}
	}

	t0 := TransformVertex(a, u)
	t1 := TransformVertex(b, u)
	t2 := TransformVertex(c, u)

	for frag := range RasterizeTriangle(t0, t1, t2, fb.Width, fb.Height) {
		if frag.Depth >= fb.DepthAt(frag.X, frag.Y) {
			continue
		}
		fb.SetColor(shader(frag, u))
		fb.Point(frag.X, frag.Y, frag.Depth)
	}
}
