package render

import (
	"image/color"
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Line3D projects two world-space points through the active uniforms
// and draws the screen-space segment between them in the current
// drawing color. Segments with either endpoint at or behind the eye
// plane are skipped entirely rather than clipped.
func (fb *Framebuffer) Line3D(a, b math3d.Vec3, u *Uniforms) {
	ca := u.ClipPosition(a)
	cb := u.ClipPosition(b)
	if ca.W <= 0 || cb.W <= 0 {
		return
	}
	sa := u.Viewport.MulVec4(ca).PerspectiveDivide()
	sb := u.Viewport.MulVec4(cb).PerspectiveDivide()
	fb.DrawLine(int(sa.X), int(sa.Y), int(sb.X), int(sb.Y))
}

// DrawOrbit draws a circle of the given radius in the ground plane
// around center, as a closed loop of line segments.
func (fb *Framebuffer) DrawOrbit(center math3d.Vec3, radius float64, segments int, c color.RGBA, u *Uniforms) {
	if segments < 3 {
		segments = 3
	}
	fb.SetColor(c)
	prev := center.Add(math3d.V3(radius, 0, 0))
	for i := 1; i <= segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		next := center.Add(math3d.V3(radius*math.Cos(theta), 0, radius*math.Sin(theta)))
		fb.Line3D(prev, next, u)
		prev = next
	}
}

// DrawAxes draws the three world axes from the origin, each in its
// conventional color: X red, Y green, Z blue.
func (fb *Framebuffer) DrawAxes(length float64, u *Uniforms) {
	origin := math3d.Zero3()
	fb.SetColor(RGB(220, 60, 60))
	fb.Line3D(origin, math3d.V3(length, 0, 0), u)
	fb.SetColor(RGB(60, 220, 60))
	fb.Line3D(origin, math3d.V3(0, length, 0), u)
	fb.SetColor(RGB(60, 60, 220))
	fb.Line3D(origin, math3d.V3(0, 0, length), u)
}

// DrawPolyline projects consecutive world-space points and joins them
// with screen-space segments; used for motion trails.
func (fb *Framebuffer) DrawPolyline(points []math3d.Vec3, c color.RGBA, u *Uniforms) {
	if len(points) < 2 {
		return
	}
	fb.SetColor(c)
	for i := 1; i < len(points); i++ {
		fb.Line3D(points[i-1], points[i], u)
	}
}
