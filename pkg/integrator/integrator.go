package integrator

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Recursion depth limits accepted by Config.Validate
const (
	DefaultMaxDepth = 0
	MaxDepthLimit   = 10
)

// Scene is the read-only view of a scene the kernel needs.
// Intersect returns the nearest hit with t > core.RayEpsilon.
type Scene interface {
	lights.Occluder
	Ambient() core.Vec3
	Lights() []lights.Light
	// Camera returns an untyped nil when the scene has no camera
	Camera() Camera
}

// Camera generates primary rays. (x, y) are normalized image coordinates with
// (0, 0) at the lower-left corner; the returned direction is unit length.
type Camera interface {
	RayThrough(x, y float64) core.Ray
}

// Config controls recursion in the Whitted integrator
type Config struct {
	MaxDepth  int     // Number of reflection/refraction bounces after the primary hit
	Threshold float64 // Paths whose importance drops below this stop recursing; 0 disables
}

// DefaultConfig returns the default integrator configuration
func DefaultConfig() Config {
	return Config{
		MaxDepth:  DefaultMaxDepth,
		Threshold: 0,
	}
}

// Validate reports every out-of-range field
func (c Config) Validate() error {
	var errs []error
	if c.MaxDepth < 0 || c.MaxDepth > MaxDepthLimit {
		errs = append(errs, fmt.Errorf("max depth %d out of range [0, %d]", c.MaxDepth, MaxDepthLimit))
	}
	if c.Threshold < 0 || math.IsNaN(c.Threshold) {
		errs = append(errs, fmt.Errorf("threshold %v must be non-negative", c.Threshold))
	}
	return errors.Join(errs...)
}
