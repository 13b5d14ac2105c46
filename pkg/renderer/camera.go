package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center      core.Vec3 // Camera position
	LookAt      core.Vec3 // Point the camera is looking at
	Up          core.Vec3 // Up direction (usually (0,1,0))
	VFov        float64   // Vertical field of view in degrees
	AspectRatio float64   // Width / height
}

// DefaultCameraConfig returns a camera on the +z axis looking at the origin
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        45.0,
		AspectRatio: 1.0,
	}
}

// Camera generates primary rays through a pinhole
type Camera struct {
	config          CameraConfig
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	w               core.Vec3 // Points opposite the view direction
}

// NewCamera creates a camera from the given configuration.
// Zero VFov or AspectRatio fall back to the defaults.
func NewCamera(config CameraConfig) *Camera {
	defaults := DefaultCameraConfig()
	if config.VFov <= 0 {
		config.VFov = defaults.VFov
	}
	if config.AspectRatio <= 0 {
		config.AspectRatio = defaults.AspectRatio
	}
	if config.Up.IsZero() {
		config.Up = defaults.Up
	}

	theta := config.VFov * math.Pi / 180.0
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := config.AspectRatio * viewportHeight

	// Orthonormal basis for the camera frame
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w)

	return &Camera{
		config:          config,
		origin:          config.Center,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: lowerLeftCorner,
		w:               w,
	}
}

// RayThrough returns the unit visibility ray through normalized image
// coordinates (x, y), with (0, 0) at the lower-left corner
func (c *Camera) RayThrough(x, y float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(x)).
		Add(c.vertical.Multiply(y)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction.Normalize())
}

// GetCameraForward returns the unit view direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// AspectRatio returns width / height of the image plane
func (c *Camera) AspectRatio() float64 {
	return c.config.AspectRatio
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}
