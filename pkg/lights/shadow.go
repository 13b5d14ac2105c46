package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// MaxShadowHops bounds the number of transmissive surfaces a shadow ray passes.
// A chain that reaches the cap counts as fully occluded.
const MaxShadowHops = 64

// marchShadow follows a shadow ray from p along dir, multiplying intensity by the
// transmission of every surface it crosses before maxDist.
func marchShadow(occ Occluder, p, dir core.Vec3, maxDist float64, color core.Vec3) core.Vec3 {
	intensity := core.NewVec3(1, 1, 1)
	origin := p.Add(dir.Multiply(core.RayEpsilon))
	remaining := maxDist - core.RayEpsilon

	for hop := 0; hop < MaxShadowHops; hop++ {
		hit, ok := occ.Intersect(core.NewRayOfKind(origin, dir, core.RayShadow))
		if !ok || hit.T >= remaining {
			return intensity.MultiplyVec(color)
		}

		if hit.Material == nil {
			return core.Vec3{}
		}
		kt := hit.Material.Kt(hit)
		if kt.IsZero() {
			return core.Vec3{}
		}

		intensity = intensity.MultiplyVec(kt)
		remaining -= hit.T + core.RayEpsilon
		origin = hit.Point.Add(dir.Multiply(core.RayEpsilon))
	}

	return core.Vec3{}
}
