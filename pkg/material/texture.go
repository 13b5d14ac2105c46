package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Texture provides spatially-varying values for material parameters.
// The set of textures is closed: ImageTexture and CheckerTexture.
type Texture interface {
	// Evaluate returns the value at given UV coordinates and 3D point
	// UV is used for image textures, point for solid textures
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3

	texture()
}

// CheckerTexture is a solid 3D checkerboard keyed on the world-space hit point
type CheckerTexture struct {
	Even  core.Vec3
	Odd   core.Vec3
	Scale float64 // Size of one check cell
}

// NewCheckerTexture creates a checker texture with the given cell size
func NewCheckerTexture(even, odd core.Vec3, scale float64) *CheckerTexture {
	if scale <= 0 {
		scale = 1
	}
	return &CheckerTexture{Even: even, Odd: odd, Scale: scale}
}

// Evaluate returns Even or Odd depending on which cell the point falls into
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	sum := int(math.Floor(point.X/c.Scale)) +
		int(math.Floor(point.Y/c.Scale)) +
		int(math.Floor(point.Z/c.Scale))
	if sum%2 == 0 {
		return c.Even
	}
	return c.Odd
}

func (c *CheckerTexture) texture() {}
