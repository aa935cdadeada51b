package render

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Mode selects how the camera responds to navigation input.
type Mode int

const (
	// FreeFly lets the caller orbit, zoom, strafe, and pitch freely.
	FreeFly Mode = iota
	// FixedOverview pins the camera to a preset vantage above the
	// scene; all navigation is ignored until the mode is exited.
	FixedOverview
)

const (
	// pitchLimit keeps the view direction off the vertical axis so
	// the up vector never degenerates in LookAt.
	pitchLimit = math.Pi/2 - 0.1

	// minOrbitRadius stops zoom from pushing the eye through the
	// center point.
	minOrbitRadius = 0.1
)

// overviewEye and overviewCenter are the preset overview vantage.
var (
	overviewEye    = math3d.V3(0, 60, 40)
	overviewCenter = math3d.Zero3()
)

// snapshot captures everything needed to restore a free-fly pose.
type snapshot struct {
	eye    math3d.Vec3
	center math3d.Vec3
	yaw    float64
	pitch  float64
	roll   float64
}

// Camera holds a position/target pair plus the yaw/pitch angles
// derived from them. The angles are the canonical orientation: any
// operation that moves Eye or Center re-derives them, so the two
// representations cannot drift apart.
type Camera struct {
	Eye    math3d.Vec3
	Center math3d.Vec3
	Up     math3d.Vec3

	yaw   float64
	pitch float64
	roll  float64

	FOV    float64 // vertical field of view, radians
	Aspect float64
	Near   float64
	Far    float64

	mode  Mode
	saved *snapshot

	view      math3d.Mat4
	viewDirty bool
}

// NewCamera creates a free-fly camera at eye looking at center.
func NewCamera(eye, center math3d.Vec3, aspect float64) *Camera {
	c := &Camera{
		Eye:       eye,
		Center:    center,
		Up:        math3d.Up(),
		FOV:       math.Pi / 4,
		Aspect:    aspect,
		Near:      0.1,
		Far:       1000,
		viewDirty: true,
	}
	c.syncAngles()
	return c
}

// Mode reports the current navigation mode.
func (c *Camera) Mode() Mode {
	return c.mode
}

// Yaw returns the canonical yaw angle in radians.
func (c *Camera) Yaw() float64 { return c.yaw }

// Pitch returns the canonical pitch angle in radians.
func (c *Camera) Pitch() float64 { return c.pitch }

// Radius returns the eye-to-center distance.
func (c *Camera) Radius() float64 {
	return c.Eye.Distance(c.Center)
}

// Forward returns the unit view direction.
func (c *Camera) Forward() math3d.Vec3 {
	return c.Center.Sub(c.Eye).Normalize()
}

// Right returns the unit right vector in the ground plane.
func (c *Camera) Right() math3d.Vec3 {
	return c.Forward().Cross(c.Up).Normalize()
}

// syncAngles re-derives yaw and pitch from the Eye/Center pair.
func (c *Camera) syncAngles() {
	f := c.Forward()
	c.pitch = math.Asin(clamp(f.Y, -1, 1))
	c.yaw = math.Atan2(f.Z, f.X)
}

// Orbit revolves the eye around the center by the given angular
// deltas, preserving the orbit radius. Pitch is clamped away from the
// poles. Ignored while the overview is active.
func (c *Camera) Orbit(dYaw, dPitch float64) {
	if c.mode == FixedOverview {
		return
	}
	v := c.Eye.Sub(c.Center)
	r := v.Len()
	if r == 0 {
		return
	}
	yaw := math.Atan2(v.Z, v.X)
	pitch := math.Atan2(-v.Y, math.Sqrt(v.X*v.X+v.Z*v.Z))

	yaw += dYaw
	pitch = clamp(pitch+dPitch, -pitchLimit, pitchLimit)

	c.Eye = c.Center.Add(math3d.V3(
		r*math.Cos(yaw)*math.Cos(pitch),
		-r*math.Sin(pitch),
		r*math.Sin(yaw)*math.Cos(pitch),
	))
	c.syncAngles()
	c.viewDirty = true
}

// Zoom moves the eye along the view direction: positive amounts move
// toward the center, negative away. The eye never crosses the center.
// Ignored while the overview is active.
func (c *Camera) Zoom(amount float64) {
	if c.mode == FixedOverview {
		return
	}
	r := c.Radius()
	if r == 0 {
		return
	}
	if amount > r-minOrbitRadius {
		amount = r - minOrbitRadius
	}
	c.Eye = c.Eye.Add(c.Forward().Scale(amount))
	c.viewDirty = true
}

// MoveCenter translates both the eye and the center by the same
// world-space offset, sliding the whole view without reorienting it.
// Ignored while the overview is active.
func (c *Camera) MoveCenter(offset math3d.Vec3) {
	if c.mode == FixedOverview {
		return
	}
	c.Eye = c.Eye.Add(offset)
	c.Center = c.Center.Add(offset)
	c.viewDirty = true
}

// Strafe translates the view along the camera's right and up axes.
// Ignored while the overview is active.
func (c *Camera) Strafe(right, up float64) {
	if c.mode == FixedOverview {
		return
	}
	offset := c.Right().Scale(right).Add(c.Up.Scale(up))
	c.MoveCenter(offset)
}

// MoveForward slides the view along the ground-plane projection of
// the view direction, so forward motion never gains or loses
// altitude. Ignored while the overview is active.
func (c *Camera) MoveForward(d float64) {
	if c.mode == FixedOverview {
		return
	}
	dir := c.Forward()
	dir.Y = 0
	if dir.Len() == 0 {
		return
	}
	c.MoveCenter(dir.Normalize().Scale(d))
}

// MoveUp slides the view along the up axis. Ignored while the
// overview is active.
func (c *Camera) MoveUp(d float64) {
	c.MoveCenter(c.Up.Scale(d))
}

// LocalAxes returns the camera's right-handed orthonormal frame.
func (c *Camera) LocalAxes() (right, up, forward math3d.Vec3) {
	forward = c.Forward()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward)
	return right, up, forward
}

// RotatePitch tilts the view direction up or down around the eye,
// re-deriving the center so the eye-to-center distance is preserved.
// Pitch is clamped away from the poles. Ignored while the overview is
// active.
func (c *Camera) RotatePitch(dPitch float64) {
	if c.mode == FixedOverview {
		return
	}
	r := c.Radius()
	if r == 0 {
		return
	}
	c.pitch = clamp(c.pitch+dPitch, -pitchLimit, pitchLimit)
	c.Center = c.Eye.Add(c.directionFromAngles().Scale(r))
	c.viewDirty = true
}

// RotateYaw turns the view direction around the eye, preserving the
// eye-to-center distance. Ignored while the overview is active.
func (c *Camera) RotateYaw(dYaw float64) {
	if c.mode == FixedOverview {
		return
	}
	r := c.Radius()
	if r == 0 {
		return
	}
	c.yaw += dYaw
	c.Center = c.Eye.Add(c.directionFromAngles().Scale(r))
	c.viewDirty = true
}

// directionFromAngles builds the unit view direction from the
// canonical yaw/pitch pair.
func (c *Camera) directionFromAngles() math3d.Vec3 {
	return math3d.V3(
		math.Cos(c.yaw)*math.Cos(c.pitch),
		math.Sin(c.pitch),
		math.Sin(c.yaw)*math.Cos(c.pitch),
	)
}

// EnterFixedOverview saves the current pose and snaps the camera to
// the preset overview vantage. A second call while already in the
// overview is a no-op, so the saved pose is never overwritten.
func (c *Camera) EnterFixedOverview() {
	if c.mode == FixedOverview {
		return
	}
	c.saved = &snapshot{
		eye:    c.Eye,
		center: c.Center,
		yaw:    c.yaw,
		pitch:  c.pitch,
		roll:   c.roll,
	}
	c.Eye = overviewEye
	c.Center = overviewCenter
	c.Up = math3d.Up()
	c.syncAngles()
	c.mode = FixedOverview
	c.viewDirty = true
}

// ExitFixedOverview restores the pose saved by EnterFixedOverview and
// returns to free flight. A no-op when the overview is not active.
func (c *Camera) ExitFixedOverview() {
	if c.mode != FixedOverview || c.saved == nil {
		return
	}
	c.Eye = c.saved.eye
	c.Center = c.saved.center
	c.yaw = c.saved.yaw
	c.pitch = c.saved.pitch
	c.roll = c.saved.roll
	c.saved = nil
	c.mode = FreeFly
	c.viewDirty = true
}

// ToggleFixedOverview flips between the overview and the saved
// free-fly pose.
func (c *Camera) ToggleFixedOverview() {
	if c.mode == FixedOverview {
		c.ExitFixedOverview()
	} else {
		c.EnterFixedOverview()
	}
}

// ViewMatrix returns the world-to-view transform, recomputing it only
// when the pose has changed since the last call.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.view = math3d.LookAt(c.Eye, c.Center, c.Up)
		c.viewDirty = false
	}
	return c.view
}

// ProjectionMatrix returns the perspective projection for the current
// lens parameters.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	return math3d.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

// SetAspect updates the aspect ratio, typically on terminal resize.
func (c *Camera) SetAspect(aspect float64) {
	c.Aspect = aspect
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
