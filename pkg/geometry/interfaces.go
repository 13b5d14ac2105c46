package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Shape interface for objects that can be hit by rays in world space.
// The reported normal is the outward geometric normal; it is not flipped to face the ray.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool)
}

// LocalShape is a primitive defined in its own coordinate frame.
// IntersectLocal reports the nearest hit with t > core.RayEpsilon.
type LocalShape interface {
	IntersectLocal(ray core.Ray) (*material.SurfaceInteraction, bool)
}
