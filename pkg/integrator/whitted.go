package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// WhittedIntegrator implements recursive Whitted-style ray tracing: Phong shading
// at every hit plus mirror reflection and refraction up to a fixed depth
type WhittedIntegrator struct {
	config Config
}

// NewWhittedIntegrator creates a new Whitted integrator
func NewWhittedIntegrator(config Config) *WhittedIntegrator {
	return &WhittedIntegrator{
		config: config,
	}
}

// Config returns the integrator configuration
func (wi *WhittedIntegrator) Config() Config {
	return wi.config
}

// Trace computes the color seen through normalized image coordinates (x, y)
func (wi *WhittedIntegrator) Trace(scene Scene, x, y float64) core.Vec3 {
	ray := scene.Camera().RayThrough(x, y)
	return wi.TraceRay(scene, ray, core.NewVec3(1, 1, 1), wi.config.MaxDepth).Clamp(0, 1)
}

// TraceRay returns the unclamped color carried back along ray. importance is the
// product of the reflection/transmission coefficients along the path so far.
func (wi *WhittedIntegrator) TraceRay(scene Scene, ray core.Ray, importance core.Vec3, depth int) core.Vec3 {
	hit, isHit := scene.Intersect(ray)
	if !isHit {
		return core.Vec3{}
	}

	color := Shade(scene, ray, hit)
	if depth <= 0 || hit.Material == nil {
		return color
	}
	if importance.MaxComponent() < wi.config.Threshold {
		return color
	}

	m := hit.Material
	if m.Reflective() {
		kr := m.Kr(hit)
		reflected := core.NewRayOfKind(hit.Point, reflect(ray.Direction, hit.Normal), core.RayReflection)
		color = color.Add(kr.MultiplyVec(wi.TraceRay(scene, reflected, importance.MultiplyVec(kr), depth-1)))
	}

	if m.Transmissive() {
		if dir, ok := refract(ray.Direction, hit.Normal, m.Index(hit)); ok {
			kt := m.Kt(hit)
			refracted := core.NewRayOfKind(hit.Point, dir, core.RayRefraction)
			color = color.Add(kt.MultiplyVec(wi.TraceRay(scene, refracted, importance.MultiplyVec(kt), depth-1)))
		}
	}

	return color
}

// reflect mirrors d about n: R = 2(N·(-D))N + D
func reflect(d, n core.Vec3) core.Vec3 {
	return n.Multiply(2 * n.Dot(d.Negate())).Add(d).Normalize()
}

// refract bends d through a surface with outward normal n and relative index.
// It reports false on total internal reflection.
func refract(d, n core.Vec3, index float64) (core.Vec3, bool) {
	ratio := index
	facing := n
	if n.Dot(d) < 0 {
		// Entering the object from outside
		ratio = 1 / index
	} else {
		facing = n.Negate()
	}

	cosI := -facing.Dot(d)
	radicand := 1 - ratio*ratio*(1-cosI*cosI)
	if radicand <= 0 {
		return core.Vec3{}, false
	}

	t := d.Multiply(ratio).Add(facing.Multiply(ratio*cosI - math.Sqrt(radicand)))
	return t.Normalize(), true
}
