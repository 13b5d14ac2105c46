package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Parameter is one physical coefficient of a material. It holds either a
// constant 3-vector or a texture; when the texture is nil the constant is used.
type Parameter struct {
	constant core.Vec3
	texture  Texture
}

// Constant creates a parameter with a uniform 3-channel value
func Constant(value core.Vec3) Parameter {
	return Parameter{constant: value}
}

// Scalar creates a parameter with the same value in all three channels
func Scalar(value float64) Parameter {
	return Parameter{constant: core.Splat(value)}
}

// Textured creates a parameter whose value is looked up from a texture
func Textured(texture Texture) Parameter {
	return Parameter{texture: texture}
}

// Value resolves the parameter at the given surface point
func (p Parameter) Value(si *SurfaceInteraction) core.Vec3 {
	if p.texture == nil {
		return p.constant
	}
	return p.texture.Evaluate(si.UV, si.Point)
}

// Intensity reduces the parameter to a luminance-weighted scalar.
// Grey values are returned exactly, so scalars read back unchanged.
func (p Parameter) Intensity(si *SurfaceInteraction) float64 {
	v := p.Value(si)
	if v.X == v.Y && v.Y == v.Z {
		return v.X
	}
	return v.Luminance()
}

// IsZero reports whether the parameter is a zero constant.
// A textured parameter is never considered zero.
func (p Parameter) IsZero() bool {
	return p.texture == nil && p.constant.IsZero()
}

// IsTextured reports whether the parameter is backed by a texture
func (p Parameter) IsTextured() bool {
	return p.texture != nil
}
