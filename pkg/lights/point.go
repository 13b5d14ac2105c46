package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Attenuation coefficients used when a scene does not specify them
const (
	DefaultConstantAttenuation  = 0.25
	DefaultLinearAttenuation    = 0.25
	DefaultQuadraticAttenuation = 0.5
)

// PointLight radiates from a single position with distance falloff
// 1 / (a0 + a1·d + a2·d²), capped at 1
type PointLight struct {
	position core.Vec3
	color    core.Vec3
	a0       float64 // constant term
	a1       float64 // linear term
	a2       float64 // quadratic term
}

// NewPointLight creates a point light with explicit attenuation coefficients
func NewPointLight(position, color core.Vec3, a0, a1, a2 float64) *PointLight {
	return &PointLight{
		position: position,
		color:    color,
		a0:       a0,
		a1:       a1,
		a2:       a2,
	}
}

// NewDefaultPointLight creates a point light with the default attenuation coefficients
func NewDefaultPointLight(position, color core.Vec3) *PointLight {
	return NewPointLight(position, color, DefaultConstantAttenuation, DefaultLinearAttenuation, DefaultQuadraticAttenuation)
}

func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Position returns the light position
func (pl *PointLight) Position() core.Vec3 {
	return pl.position
}

// Coefficients returns the constant, linear and quadratic attenuation terms
func (pl *PointLight) Coefficients() (a0, a1, a2 float64) {
	return pl.a0, pl.a1, pl.a2
}

func (pl *PointLight) Direction(p core.Vec3) core.Vec3 {
	return pl.position.Subtract(p).Normalize()
}

func (pl *PointLight) DistanceAttenuation(p core.Vec3) float64 {
	d := pl.position.Subtract(p).Length()
	denom := pl.a0 + pl.a1*d + pl.a2*d*d
	if denom <= 0 {
		return 1.0
	}
	return math.Min(1.0, 1.0/denom)
}

// ShadowAttenuation only counts surfaces between p and the light
func (pl *PointLight) ShadowAttenuation(occ Occluder, p core.Vec3) core.Vec3 {
	toLight := pl.position.Subtract(p)
	return marchShadow(occ, p, toLight.Normalize(), toLight.Length(), pl.color)
}

func (pl *PointLight) Color(p core.Vec3) core.Vec3 {
	return pl.color
}

func (pl *PointLight) isLight() {}
