// Package scene assembles the solar system: the bodies, their
// orbital motion and trails, the orbit rings, and the background
// starfield, rendered through the software pipeline each frame.
package scene

import (
	"math"

	"github.com/taigrr/orrery/pkg/materials"
	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/models"
	"github.com/taigrr/orrery/pkg/render"
)

const (
	// baseOrbitSpeed is the angular speed of a body at orbit radius
	// 1; farther bodies move proportionally slower.
	baseOrbitSpeed = 0.01

	// maxTrailPoints caps each body's motion trail.
	maxTrailPoints = 100

	// moonOrbitRadius and moonOrbitSpeed drive the moon around its
	// parent body.
	moonOrbitRadius = 0.5
	moonOrbitSpeed  = 0.05

	orbitSegments = 100
)

// Body is one celestial body in the scene.
type Body struct {
	Name     string
	Material materials.Kind
	Scale    float64

	// OrbitRadius is the distance from the origin; zero pins the
	// body in place (the star).
	OrbitRadius float64
	Angle       float64

	Position math3d.Vec3
	Rotation math3d.Vec3

	// Accent colors the body's trail and orbit ring.
	Accent render.Color

	Trail []math3d.Vec3
}

// orbiting reports whether the body revolves around the origin.
func (b *Body) orbiting() bool {
	return b.OrbitRadius > 0
}

// pushTrail records the current position, dropping the oldest point
// once the cap is reached.
func (b *Body) pushTrail() {
	b.Trail = append(b.Trail, b.Position)
	if len(b.Trail) > maxTrailPoints {
		b.Trail = b.Trail[1:]
	}
}

// Scene holds the bodies and the shared geometry they render with.
type Scene struct {
	Bodies []*Body
	Sky    *Starfield

	// Moon revolves around the ocean body rather than the origin.
	Moon *Body

	// Craft is an optional loaded mesh following the camera.
	Craft        *models.Mesh
	CraftTexture *render.Texture
	CraftPos     math3d.Vec3
	CraftScale   float64

	sphere    *models.Mesh
	moonAngle float64
	time      int
}

// NewSolarSystem builds the default scene: a star at the origin, six
// orbiting bodies, and a moon around the ocean body.
func NewSolarSystem(seed int64) *Scene {
	s := &Scene{
		sphere:     models.UVSphere(1, 16, 24),
		Sky:        NewStarfield(1000, seed),
		CraftScale: 0.1,
	}
	s.Bodies = []*Body{
		{Name: "sol", Material: materials.Star, Scale: 2, Accent: render.ColorStar},
		{Name: "shard", Material: materials.Minor, Scale: 0.3, OrbitRadius: 6, Accent: render.ColorWhite},
		{Name: "ferra", Material: materials.Rocky, Scale: 0.4, OrbitRadius: 8, Accent: render.RGB(255, 0, 0)},
		{Name: "thalassa", Material: materials.Ocean, Scale: 0.6, OrbitRadius: 12, Accent: render.RGB(0, 255, 0)},
		{Name: "glacia", Material: materials.Ice, Scale: 0.5, OrbitRadius: 16, Accent: render.RGB(255, 0, 255)},
		{Name: "pyros", Material: materials.Molten, Scale: 0.7, OrbitRadius: 20, Accent: render.RGB(255, 165, 0)},
		{Name: "nimbus", Material: materials.GasCloud, Scale: 0.8, OrbitRadius: 24, Accent: render.RGB(0, 255, 255)},
	}
	s.Moon = &Body{Name: "luna", Material: materials.Moon, Scale: 0.2, Accent: render.RGB(200, 200, 200)}
	s.Bodies = append(s.Bodies, s.Moon)
	return s
}

// ocean returns the body the moon is parented to.
func (s *Scene) ocean() *Body {
	for _, b := range s.Bodies {
		if b.Material == materials.Ocean {
			return b
		}
	}
	return nil
}

// Time returns the current frame counter.
func (s *Scene) Time() int { return s.time }

// Update advances every body by one frame: orbital angles, positions,
// and trails.
func (s *Scene) Update() {
	s.time++
	for _, b := range s.Bodies {
		if b == s.Moon || !b.orbiting() {
			continue
		}
		b.pushTrail()
		b.Position = math3d.V3(
			b.OrbitRadius*math.Cos(b.Angle),
			0,
			b.OrbitRadius*math.Sin(b.Angle),
		)
		b.Angle += baseOrbitSpeed / b.OrbitRadius
	}

	s.moonAngle += moonOrbitSpeed
	if parent := s.ocean(); parent != nil {
		s.Moon.pushTrail()
		s.Moon.Position = parent.Position.Add(math3d.V3(
			moonOrbitRadius*math.Cos(s.moonAngle),
			0,
			moonOrbitRadius*math.Sin(s.moonAngle),
		))
	}
}

// Render draws one frame: starfield, culled bodies, trails, and orbit
// rings. The uniforms must already carry the frame's view, projection,
// and viewport matrices.
func (s *Scene) Render(fb *render.Framebuffer, u *render.Uniforms, cam *render.Camera) {
	s.Sky.Render(fb, u, cam.Eye)

	frustum := render.NewFrustum(cam.ProjectionMatrix().Mul(cam.ViewMatrix()))

	for _, b := range s.Bodies {
		// Slight margin so bodies do not pop at the screen edge.
		if !frustum.IntersectsSphere(b.Position, b.Scale*1.2) {
			continue
		}
		spin := b.Rotation.Add(math3d.V3(0, float64(s.time)*0.01, 0))
		u.SetModel(math3d.Model(b.Position, b.Scale, spin))
		u.SurfaceMap = nil

		// The star at the origin lights everything else; the star
		// itself is lit from the camera so its face never goes dark.
		if b.orbiting() || b == s.Moon {
			u.LightDir = b.Position.Negate().Normalize()
		} else {
			u.LightDir = cam.Eye.Sub(b.Position).Normalize()
		}
		render.DrawTriangles(fb, s.sphere.Vertices, u, materials.ShaderFor(b.Material))
	}

	if s.Craft != nil {
		u.SetModel(math3d.Model(s.CraftPos, s.CraftScale, math3d.Zero3()))
		u.SurfaceMap = s.CraftTexture
		u.LightDir = s.CraftPos.Negate().Normalize()
		render.DrawTriangles(fb, s.Craft.Vertices, u, materials.ShaderFor(materials.Craft))
		u.SurfaceMap = nil
	}

	u.SetModel(math3d.Identity())
	for _, b := range s.Bodies {
		fb.DrawPolyline(b.Trail, b.Accent, u)
		if b.orbiting() {
			fb.DrawOrbit(math3d.Zero3(), b.OrbitRadius, orbitSegments, b.Accent, u)
		}
	}
}
