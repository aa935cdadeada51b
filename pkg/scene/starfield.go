package scene

import (
	"math"
	"math/rand"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

// starDistance places the stars well inside the far plane but far
// beyond every orbit.
const starDistance = 200.0

// Starfield is a fixed shell of background stars. It rides along with
// the camera eye so the stars never parallax, and draws without a
// depth test so any body paints over it.
type Starfield struct {
	dirs   []math3d.Vec3
	shades []render.Color
}

// NewStarfield scatters count stars uniformly over the sky sphere.
// The same seed always yields the same sky.
func NewStarfield(count int, seed int64) *Starfield {
	rng := rand.New(rand.NewSource(seed))
	sf := &Starfield{
		dirs:   make([]math3d.Vec3, count),
		shades: make([]render.Color, count),
	}
	for i := range count {
		// Uniform direction: z in [-1,1], azimuth in [0,2pi).
		z := rng.Float64()*2 - 1
		theta := rng.Float64() * 2 * math.Pi
		r := math.Sqrt(1 - z*z)
		sf.dirs[i] = math3d.V3(r*math.Cos(theta), z, r*math.Sin(theta))

		shade := uint8(120 + rng.Intn(136))
		sf.shades[i] = render.RGB(shade, shade, shade)
	}
	return sf
}

// Render projects each star through the frame's view and projection,
// centered on the camera eye, and plots it as a single pixel.
func (sf *Starfield) Render(fb *render.Framebuffer, u *render.Uniforms, eye math3d.Vec3) {
	u.SetModel(math3d.Translate(eye))
	for i, dir := range sf.dirs {
		clip := u.ClipPosition(dir.Scale(starDistance))
		if clip.W <= 0 {
			continue
		}
		p := u.Viewport.MulVec4(clip).PerspectiveDivide()
		fb.SetPixel(int(p.X), int(p.Y), sf.shades[i])
	}
}
