package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Transformed places a LocalShape in the world with scale, rotation and translation.
// Scale is applied first, then rotation (radians around X, Y, Z), then translation.
type Transformed struct {
	Shape       LocalShape
	Translation core.Vec3
	Scale       core.Vec3
	Rotation    core.Vec3
}

// NewTransformed creates a transformed instance of a local shape.
// Zero scale components are treated as 1.
func NewTransformed(shape LocalShape, translation, scale, rotation core.Vec3) *Transformed {
	if scale.X == 0 {
		scale.X = 1
	}
	if scale.Y == 0 {
		scale.Y = 1
	}
	if scale.Z == 0 {
		scale.Z = 1
	}
	return &Transformed{
		Shape:       shape,
		Translation: translation,
		Scale:       scale,
		Rotation:    rotation,
	}
}

// NewTransformedBox creates a box with the given center, full size and rotation
func NewTransformedBox(center, size, rotation core.Vec3, mat *material.Material) *Transformed {
	return NewTransformed(NewBox(mat), center, size, rotation)
}

// Hit maps the ray into the local frame, intersects, and maps the result back.
// The local direction is not renormalized, so t is the same in both frames.
func (tr *Transformed) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	local := core.Ray{
		Origin:    tr.toLocalPoint(ray.Origin),
		Direction: ray.Direction.InverseRotate(tr.Rotation).DivideVec(tr.Scale),
		Kind:      ray.Kind,
	}

	hit, ok := tr.Shape.IntersectLocal(local)
	if !ok || hit.T < tMin || hit.T > tMax {
		return nil, false
	}

	hit.Point = ray.At(hit.T)
	// Normals transform with the inverse transpose: divide by scale, then rotate
	hit.Normal = hit.Normal.DivideVec(tr.Scale).Rotate(tr.Rotation).Normalize()
	return hit, true
}

func (tr *Transformed) toLocalPoint(p core.Vec3) core.Vec3 {
	return p.Subtract(tr.Translation).InverseRotate(tr.Rotation).DivideVec(tr.Scale)
}
