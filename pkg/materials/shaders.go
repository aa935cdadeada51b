package materials

import (
	"math"

	"github.com/taigrr/orrery/pkg/noise"
	"github.com/taigrr/orrery/pkg/render"
)

// Shaders sample noise in the body's model space, so surfaces stay
// glued to the geometry as it rotates and orbits. Zoom constants set
// the feature scale on the unit sphere.

func starShader(f render.Fragment, u *render.Uniforms) render.Color {
	bright := render.RGB(255, 240, 0)
	dark := render.RGB(211, 84, 0)

	// Slow pulse on the third noise axis changes the spot sizes.
	t := float64(u.Time) * 0.01
	pulsate := math.Sin(t*0.2) * 0.5

	const zoom = 10.0
	p := f.Local
	n1 := u.Noise.Sample3D(p.X*zoom, p.Y*zoom, (p.Z+pulsate)*zoom)
	n2 := u.Noise.Sample3D((p.X+10)*zoom, (p.Y+10)*zoom, (p.Z+10+pulsate)*zoom)

	// Average the two fields and remap from [-1, 1] to [0, 1]; the
	// lerp clamps, so the negative half would otherwise flatten to
	// the dark color and the pulse would vanish there.
	n := (n1+n2)*0.25 + 0.5

	return render.ScaleColor(render.LerpColor(dark, bright, n), f.Intensity)
}

func rockyShader(f render.Fragment, u *render.Uniforms) render.Color {
	const zoom = 0.3
	x, y := f.Local.X, f.Local.Y

	// Macro roughness comes from a three-octave stack so large
	// features carry fine grain.
	fbm := noise.Octaves{Src: u.Noise, Count: 3}
	large := fbm.Sample2D(x*zoom, y*zoom)
	small := u.Noise.Sample2D(x*zoom*2, y*zoom*2)
	medium := u.Noise.Sample2D(x*zoom*0.5, y*zoom*0.5)
	dots := u.Noise.Sample2D(x*zoom*10, y*zoom*10)

	detail := render.RGB(100, 100, 100)
	if medium > 0.5 {
		detail = render.RGB(140, 120, 60)
	}
	c := render.LerpColor(detail, render.RGB(120, 120, 120), clamp01(math.Abs(dots*2)))

	roughness := clampRange(large*0.3+small*0.7, 0.2, 1)
	c = render.ScaleColor(c, roughness)

	// Soft ambient lift keeps crevices readable.
	c = render.ScaleColor(c, 1.5)
	return render.ScaleColor(c, f.Intensity*1.95)
}

// oceanShader paints land and water, then blends a drifting cloud
// layer on top at half opacity.
func oceanShader(f render.Fragment, u *render.Uniforms) render.Color {
	const zoom = 0.3
	x, y := f.Local.X, f.Local.Y

	n := u.Noise.Sample2D(x*zoom, y*zoom)
	landNoise := u.Noise.Sample2D(x*zoom*3, y*zoom*3)

	base := render.RGB(0, 0, 255) // open water
	if n > 0.5 {
		base = render.RGB(34, 139, 34) // land
	}
	island := render.ColorBlack
	if landNoise > 0.5 {
		island = render.RGB(0, 255, 0)
	}

	surface := render.LerpColor(base, cloudLayer(f, u), 0.5)
	surface = render.LerpColor(surface, island, 0.5)
	return render.ScaleColor(surface, f.Intensity)
}

// cloudLayer is the drifting white-on-sky cloud deck shared by the
// ocean shader.
func cloudLayer(f render.Fragment, u *render.Uniforms) render.Color {
	const zoom = 1.0
	const offset = 1.0
	t := float64(u.Time) * 0.5 * 0.01

	n := u.Noise.Sample2D(f.Local.X*zoom+offset+t, f.Local.Y*zoom+offset)
	if n > 0.5 {
		return render.ScaleColor(render.ColorWhite, f.Intensity)
	}
	return render.ScaleColor(render.RGB(30, 97, 145), f.Intensity)
}

func gasCloudShader(f render.Fragment, u *render.Uniforms) render.Color {
	const zoom = 0.5
	x, y := f.Local.X, f.Local.Y
	t := float64(u.Time) * 0.5 * 0.01

	n1 := u.Noise.Sample2D(x*zoom+t, y*zoom+t)
	n2 := u.Noise.Sample2D(x*zoom*0.5+t, y*zoom*0.5)
	n3 := u.Noise.Sample2D(x*zoom*2+t, y*zoom*2)

	cloud := render.ColorWhite
	shadow := render.RGB(200, 200, 200)
	c := render.RGB(135, 206, 235) // sky

	if n1 > 0.4 {
		c = render.LerpColor(c, cloud, (n1-0.4)/0.6)
	}
	if n2 > 0.6 {
		c = render.LerpColor(c, shadow, (n2-0.6)/0.4)
	}
	if n3 > 0.8 {
		c = render.LerpColor(c, cloud, (n3-0.8)/0.2)
	}
	return render.ScaleColor(c, f.Intensity)
}

func iceShader(f render.Fragment, u *render.Uniforms) render.Color {
	const zoom = 0.3
	n := u.Noise.Sample2D(f.Local.X*zoom+float64(u.Time)*0.2*0.01, f.Local.Y*zoom)

	c := render.LerpColor(render.RGB(0, 255, 255), render.RGB(255, 0, 255), n)
	c = render.ScaleColor(c, 1.5)
	return render.ScaleColor(c, f.Intensity*2.8)
}

func moltenShader(f render.Fragment, u *render.Uniforms) render.Color {
	const zoom = 0.8
	n := u.Noise.Sample2D(f.Local.X*zoom+float64(u.Time)*0.5*0.01, f.Local.Y*zoom)

	c := render.LerpColor(render.RGB(255, 140, 0), render.RGB(255, 0, 0), n)
	c = render.LerpColor(c, stripeLayer(f, u), 0.5)
	return render.ScaleColor(c, f.Intensity)
}

// stripeLayer is the slow-moving banded overlay the molten shader
// mixes in.
func stripeLayer(f render.Fragment, u *render.Uniforms) render.Color {
	const zoom = 10.0
	x, y := f.Local.X, f.Local.Y

	pattern := math.Sin(y*zoom+float64(u.Time)*0.1) + math.Sin(x*zoom*0.5)
	c := render.RGB(255, 50, 0)
	if pattern > 0 {
		c = render.RGB(255, 100, 0)
	}
	opacity := clamp01(math.Abs(pattern) * 0.5)
	return render.ScaleColor(c, opacity*f.Intensity)
}

func moonShader(f render.Fragment, u *render.Uniforms) render.Color {
	const zoom = 1.0
	n := u.Noise.Sample2D(f.Local.X*zoom, f.Local.Y*zoom)

	c := render.RGB(200, 200, 200)
	if n > 0.5 {
		c = render.RGB(150, 150, 150) // crater
	}
	glint := math.Sin(float64(u.Time)*0.1) * 0.1
	c = render.LerpColor(c, render.ColorWhite, glint)
	return render.ScaleColor(c, f.Intensity)
}

func minorShader(f render.Fragment, u *render.Uniforms) render.Color {
	const zoom = 0.2
	x, y := f.Local.X, f.Local.Y

	base := u.Noise.Sample2D(x*zoom, y*zoom)
	small := u.Noise.Sample2D(x*zoom*2, y*zoom*2)
	medium := u.Noise.Sample2D(x*zoom*0.5, y*zoom*0.5)
	lava := u.Noise.Sample2D(x*zoom*4, y*zoom*4)

	var c render.Color
	if base > 0.5 {
		c = render.LerpColor(render.RGB(200, 200, 200), render.RGB(150, 150, 150), math.Abs(small))
	} else {
		c = render.LerpColor(render.RGB(100, 100, 100), render.RGB(120, 80, 40), math.Abs(medium))
	}

	// Lava pools pulse between two glows.
	blend := math.Sin(float64(u.Time)*0.5*0.01)*0.5 + 0.5
	pool := render.ColorBlack
	if lava > 0.5 {
		pool = render.LerpColor(render.RGB(255, 100, 0), render.RGB(255, 50, 0), blend)
	}
	c = render.LerpColor(c, pool, math.Abs(lava))
	return render.ScaleColor(c, f.Intensity)
}

// hullTint dims sampled craft texels toward the hull color.
var hullTint = render.RGB(220, 220, 230)

// craftShader samples the craft's texture when one is bound,
// modulated by the hull tint, otherwise falls back to bare hull gray.
func craftShader(f render.Fragment, u *render.Uniforms) render.Color {
	if u.SurfaceMap != nil {
		c := render.ModulateColor(u.SurfaceMap.Sample(f.UV.X, f.UV.Y), hullTint)
		return render.ScaleColor(c, f.Intensity)
	}
	return render.ScaleColor(render.RGB(192, 192, 192), f.Intensity)
}

func trailShader(f render.Fragment, u *render.Uniforms) render.Color {
	base := render.RGB(100, 100, 255)

	e := clamp01(math.Abs(float64(f.Y) * math.Sin(float64(u.Time)) * 0.01))
	effect := render.RGB(uint8(e*255), uint8(e*100), 200)
	return render.ScaleColor(render.LerpColor(base, effect, 0.5), f.Intensity)
}

func clamp01(v float64) float64 {
	return clampRange(v, 0, 1)
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
