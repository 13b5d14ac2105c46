package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

type LightType string

const (
	LightTypeDirectional LightType = "directional"
	LightTypePoint       LightType = "point"
)

// Light is implemented by DirectionalLight and PointLight only
type Light interface {
	Type() LightType

	// Direction returns the unit direction from the shading point toward the light
	Direction(p core.Vec3) core.Vec3

	// DistanceAttenuation returns the falloff factor in [0,1] at point p
	DistanceAttenuation(p core.Vec3) float64

	// ShadowAttenuation marches a shadow ray from p toward the light.
	// Returns black when an opaque surface blocks it, otherwise the light colour
	// filtered by every transmissive surface in between.
	ShadowAttenuation(occ Occluder, p core.Vec3) core.Vec3

	// Color returns the light colour at point p
	Color(p core.Vec3) core.Vec3

	isLight()
}

// Occluder answers nearest-hit queries for shadow rays. The scene passes itself
// in at call time; lights never hold on to it.
type Occluder interface {
	Intersect(ray core.Ray) (*material.SurfaceInteraction, bool)
}
