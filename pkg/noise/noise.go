// Package noise provides the procedural noise used by the surface
// shaders. All samplers return values in [-1, 1] and are
// deterministic for a given seed.
package noise

import "github.com/ojrac/opensimplex-go"

// DefaultSeed is the seed the viewer uses unless overridden; every
// run with the same seed produces identical surfaces.
const DefaultSeed = 1337

// Sampler yields smooth gradient noise in two or three dimensions.
type Sampler interface {
	// Sample2D returns noise at (x, y) in [-1, 1].
	Sample2D(x, y float64) float64
	// Sample3D returns noise at (x, y, z) in [-1, 1].
	Sample3D(x, y, z float64) float64
}

type simplex struct {
	n opensimplex.Noise
}

// NewSimplex creates an OpenSimplex sampler seeded with seed.
func NewSimplex(seed int64) Sampler {
	return &simplex{n: opensimplex.New(seed)}
}

func (s *simplex) Sample2D(x, y float64) float64 {
	return s.n.Eval2(x, y)
}

func (s *simplex) Sample3D(x, y, z float64) float64 {
	return s.n.Eval3(x, y, z)
}

// Octaves sums count layers of src, each doubling frequency and
// halving amplitude, normalized back to [-1, 1].
type Octaves struct {
	Src   Sampler
	Count int
}

func (o Octaves) Sample2D(x, y float64) float64 {
	sum, amp, freq, norm := 0.0, 1.0, 1.0, 0.0
	for range o.Count {
		sum += amp * o.Src.Sample2D(x*freq, y*freq)
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	return sum / norm
}

func (o Octaves) Sample3D(x, y, z float64) float64 {
	sum, amp, freq, norm := 0.0, 1.0, 1.0, 0.0
	for range o.Count {
		sum += amp * o.Src.Sample3D(x*freq, y*freq, z*freq)
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	return sum / norm
}
