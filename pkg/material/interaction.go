package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// SurfaceInteraction contains information about a ray-object intersection
type SurfaceInteraction struct {
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Unit surface normal; may face either side of the surface
	T        float64   // Parameter t along the ray
	UV       core.Vec2 // Surface coordinates for texture lookups
	Material *Material // Material of the hit object
}

// FacesRay reports whether the stored normal points against the ray direction
func (si *SurfaceInteraction) FacesRay(ray core.Ray) bool {
	return si.Normal.Dot(ray.Direction) < 0
}
