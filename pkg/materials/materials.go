// Package materials maps body kinds to the fragment shaders that
// paint their surfaces. Every shader is procedural, driven by the
// uniforms' noise sampler and frame counter, and modulated by the
// fragment's light intensity.
package materials

import (
	"fmt"

	"github.com/taigrr/orrery/pkg/render"
)

// Kind tags a body with the surface family it should be shaded as.
type Kind int

const (
	Star Kind = iota
	Rocky
	Ocean
	GasCloud
	Ice
	Molten
	Moon
	Minor
	Craft
	Trail
	numKinds
)

var kindNames = [numKinds]string{
	Star:     "star",
	Rocky:    "rocky",
	Ocean:    "ocean",
	GasCloud: "gas-cloud",
	Ice:      "ice",
	Molten:   "molten",
	Moon:     "moon",
	Minor:    "minor",
	Craft:    "craft",
	Trail:    "trail",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

var shaders = [numKinds]render.Shader{
	Star:     starShader,
	Rocky:    rockyShader,
	Ocean:    oceanShader,
	GasCloud: gasCloudShader,
	Ice:      iceShader,
	Molten:   moltenShader,
	Moon:     moonShader,
	Minor:    minorShader,
	Craft:    craftShader,
	Trail:    trailShader,
}

// ShaderFor returns the shader for a kind. Unknown kinds are a
// programming error and panic.
func ShaderFor(k Kind) render.Shader {
	if k < 0 || k >= numKinds {
		panic(fmt.Sprintf("materials: unknown kind %d", int(k)))
	}
	return shaders[k]
}

// Shade colors a single fragment with the shader for k.
func Shade(f render.Fragment, u *render.Uniforms, k Kind) render.Color {
	return ShaderFor(k)(f, u)
}
