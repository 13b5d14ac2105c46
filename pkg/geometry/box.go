package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// BoxHalfExtent is the half-size of the local box along every axis
const BoxHalfExtent = 0.5

// Box is an axis-aligned unit box centered at the origin of its local frame.
// Use Transformed to place, scale and rotate it in the world.
type Box struct {
	Material *material.Material
}

// NewBox creates a unit box with the given material
func NewBox(mat *material.Material) *Box {
	return &Box{Material: mat}
}

// IntersectLocal intersects the ray with the box using the slab method
func (b *Box) IntersectLocal(ray core.Ray) (*material.SurfaceInteraction, bool) {
	tNear, tFar := math.Inf(-1), math.Inf(1)
	size := BoxHalfExtent

	for axis := 0; axis < 3; axis++ {
		o := ray.Origin.Get(axis)
		d := ray.Direction.Get(axis)

		if d == 0 {
			// Parallel to this slab: must already be between its planes
			if o < -size || o > size {
				return nil, false
			}
			continue
		}

		t1 := (-size - o) / d
		t2 := (size - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tNear {
			tNear = t1
		}
		if t2 < tFar {
			tFar = t2
		}
		if tNear > tFar || tFar < core.RayEpsilon {
			return nil, false
		}
	}

	// Origin inside the box: the exit face is the nearest valid hit
	t := tNear
	if t < core.RayEpsilon {
		t = tFar
	}

	point := ray.At(t)
	normal, uv, ok := boxFace(point)
	if !ok {
		return nil, false
	}

	return &material.SurfaceInteraction{
		Point:    point,
		Normal:   normal,
		T:        t,
		UV:       uv,
		Material: b.Material,
	}, true
}

// Hit tests the ray against the box, treating world space as the local frame
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	hit, ok := b.IntersectLocal(ray)
	if !ok || hit.T < tMin || hit.T > tMax {
		return nil, false
	}
	return hit, true
}

// boxFace finds the face a surface point lies on, within epsilon
func boxFace(p core.Vec3) (core.Vec3, core.Vec2, bool) {
	size := BoxHalfExtent
	for axis := 0; axis < 3; axis++ {
		v := p.Get(axis)
		var sign float64
		switch {
		case math.Abs(v+size) < core.RayEpsilon:
			sign = -1
		case math.Abs(v-size) < core.RayEpsilon:
			sign = 1
		default:
			continue
		}

		normal := core.Vec3{}
		switch axis {
		case 0:
			normal.X = sign
		case 1:
			normal.Y = sign
		default:
			normal.Z = sign
		}

		// UV from the two remaining axes, shifted into [0,1]
		u := p.Get((axis+1)%3) + size
		w := p.Get((axis+2)%3) + size
		return normal, core.NewVec2(u, w), true
	}
	return core.Vec3{}, core.Vec2{}, false
}
