package core

// RayEpsilon is the minimum hit distance accepted by intersection queries.
// Hits closer than this are treated as the ray re-hitting the surface it left.
const RayEpsilon = 1e-5

// RayKind tags what a ray is used for. It never changes the geometry math.
type RayKind int

const (
	RayVisibility RayKind = iota // primary ray from the camera
	RayReflection
	RayRefraction
	RayShadow
)

// String returns a short name for the ray kind
func (k RayKind) String() string {
	switch k {
	case RayVisibility:
		return "visibility"
	case RayReflection:
		return "reflection"
	case RayRefraction:
		return "refraction"
	case RayShadow:
		return "shadow"
	default:
		return "unknown"
	}
}

// Ray represents a ray with an origin, a direction and a kind tag
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Kind      RayKind
}

// NewRay creates a new visibility ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, Kind: RayVisibility}
}

// NewRayOfKind creates a new ray with the given kind
func NewRayOfKind(origin, direction Vec3, kind RayKind) Ray {
	return Ray{Origin: origin, Direction: direction, Kind: kind}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
