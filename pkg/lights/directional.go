package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DirectionalLight is a light at infinity shining along a fixed orientation
type DirectionalLight struct {
	orientation core.Vec3 // direction the light travels, unit length
	color       core.Vec3
}

// NewDirectionalLight creates a directional light travelling along orientation
func NewDirectionalLight(orientation, color core.Vec3) *DirectionalLight {
	return &DirectionalLight{
		orientation: orientation.Normalize(),
		color:       color,
	}
}

func (dl *DirectionalLight) Type() LightType {
	return LightTypeDirectional
}

// Orientation returns the unit direction the light travels
func (dl *DirectionalLight) Orientation() core.Vec3 {
	return dl.orientation
}

func (dl *DirectionalLight) Direction(p core.Vec3) core.Vec3 {
	return dl.orientation.Negate()
}

// DistanceAttenuation is always 1 for a light at infinity
func (dl *DirectionalLight) DistanceAttenuation(p core.Vec3) float64 {
	return 1.0
}

func (dl *DirectionalLight) ShadowAttenuation(occ Occluder, p core.Vec3) core.Vec3 {
	return marchShadow(occ, p, dl.Direction(p), math.Inf(1), dl.color)
}

func (dl *DirectionalLight) Color(p core.Vec3) core.Vec3 {
	return dl.color
}

func (dl *DirectionalLight) isLight() {}
