package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// specularExponentScale maps the stored [0,1] shininess to a Phong exponent
const specularExponentScale = 128.0

// Shade evaluates the Phong model at a hit: emission, ambient, and per-light
// diffuse and specular terms scaled by distance and shadow attenuation.
// The result is clamped to [0,1].
func Shade(scene Scene, ray core.Ray, si *material.SurfaceInteraction) core.Vec3 {
	m := si.Material
	if m == nil {
		return core.Vec3{}
	}

	white := core.NewVec3(1, 1, 1)
	transparency := white.Subtract(m.Kt(si))

	result := m.Ke(si).Add(transparency.MultiplyVec(m.Ka(si).MultiplyVec(scene.Ambient())))

	p := si.Point
	n := si.Normal
	v := ray.Direction.Negate()
	kd := m.Kd(si)
	ks := m.Ks(si)
	exponent := m.Shininess(si) * specularExponentScale

	for _, light := range scene.Lights() {
		l := light.Direction(p)
		nDotL := n.Dot(l)

		diffuse := transparency.MultiplyVec(kd).Multiply(math.Max(nDotL, 0))

		r := n.Multiply(2 * nDotL).Subtract(l).Normalize()
		specular := ks.Multiply(math.Pow(math.Max(r.Dot(v), 0), exponent))

		attenuation := light.ShadowAttenuation(scene, p).Multiply(light.DistanceAttenuation(p))
		result = result.Add(attenuation.MultiplyVec(diffuse.Add(specular)))
	}

	return result.Clamp(0, 1)
}
