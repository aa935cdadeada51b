package render

import (
	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/noise"
)

// Vertex is a pipeline vertex. Before TransformVertex, Pos is in
// model space; after, it is in screen space with depth in Pos.Z.
type Vertex struct {
	Pos    math3d.Vec3
	Normal math3d.Vec3
	UV     math3d.Vec2

	// Local is the model-space position, preserved through the
	// transform so shaders can sample solid noise in object space.
	Local     math3d.Vec3
	Intensity float64
}

// ambientFloor keeps unlit faces from going fully black so shapes
// stay readable on a terminal.
const ambientFloor = 0.15

// Uniforms carries the per-frame and per-entity state shared by the
// vertex stage and the fragment shaders.
type Uniforms struct {
	Model      math3d.Mat4
	View       math3d.Mat4
	Projection math3d.Mat4
	Viewport   math3d.Mat4

	// Time is the frame counter; shaders animate from it.
	Time int
	// Noise drives the procedural surfaces.
	Noise noise.Sampler
	// LightDir points from surfaces toward the light, normalized.
	LightDir math3d.Vec3
	// SurfaceMap, when set, textures the surface instead of a
	// procedural shader needing one.
	SurfaceMap *Texture

	mvp    math3d.Mat4
	normal math3d.Mat3
}

// NewUniforms creates uniforms with identity matrices and an overhead
// light.
func NewUniforms(n noise.Sampler) *Uniforms {
	u := &Uniforms{
		Model:      math3d.Identity(),
		View:       math3d.Identity(),
		Projection: math3d.Identity(),
		Viewport:   math3d.Identity(),
		Noise:      n,
		LightDir:   math3d.V3(0, 0, 1),
	}
	u.recompute()
	return u
}

// SetFrame installs the per-frame matrices and frame counter.
func (u *Uniforms) SetFrame(view, projection, viewport math3d.Mat4, time int) {
	u.View = view
	u.Projection = projection
	u.Viewport = viewport
	u.Time = time
	u.recompute()
}

// SetModel installs the per-entity model matrix, recomputing the
// combined transform and the normal matrix.
func (u *Uniforms) SetModel(model math3d.Mat4) {
	u.Model = model
	u.recompute()
}

func (u *Uniforms) recompute() {
	u.mvp = u.Projection.Mul(u.View).Mul(u.Model)
	u.normal = math3d.NormalMatrix(u.Model)
}

// ClipPosition returns the clip-space position of a model-space
// point, before the perspective divide. W <= 0 means the point is at
// or behind the eye plane.
func (u *Uniforms) ClipPosition(p math3d.Vec3) math3d.Vec4 {
	return u.mvp.MulVec4(math3d.V4FromV3(p, 1))
}

// TransformVertex runs the vertex stage: model-space position to
// screen space via the combined model-view-projection and viewport
// transforms, normal through the inverse-transpose of the model
// matrix, and a per-vertex light intensity. The caller must have
// rejected vertices with non-positive clip W first.
func TransformVertex(v Vertex, u *Uniforms) Vertex {
	clip := u.ClipPosition(v.Pos)
	screen := u.Viewport.MulVec4(clip).PerspectiveDivide()

	n := u.normal.MulVec3(v.Normal).Normalize()
	intensity := n.Dot(u.LightDir)
	if intensity < ambientFloor {
		intensity = ambientFloor
	}

	return Vertex{
		Pos:       screen,
		Normal:    n,
		UV:        v.UV,
		Local:     v.Pos,
		Intensity: intensity,
	}
}
