package scene

import (
	"errors"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// DefaultAmbientLevel is the grey ambient light used when a scene does not set one
const DefaultAmbientLevel = 0.2

// ErrSceneFrozen is returned when a frozen scene is modified
var ErrSceneFrozen = errors.New("scene is frozen")

// Scene contains all the elements needed for rendering. It is built with the
// Add/Set methods and frozen before rendering; a frozen scene is read-only and
// safe to share between render workers.
type Scene struct {
	Name         string
	RenderConfig renderer.Config // Recommended render settings

	camera  *renderer.Camera
	shapes  []geometry.Shape
	lights  []lights.Light
	ambient core.Vec3
	frozen  bool
}

// NewScene creates an empty scene viewed through the given camera
func NewScene(name string, camera *renderer.Camera) *Scene {
	config := renderer.DefaultConfig()
	if camera != nil {
		config.Height = renderer.HeightForAspect(config.Width, camera.AspectRatio())
	}
	return &Scene{
		Name:         name,
		RenderConfig: config,
		camera:       camera,
		shapes:       make([]geometry.Shape, 0),
		lights:       make([]lights.Light, 0),
		ambient:      core.Splat(DefaultAmbientLevel),
	}
}

// NewGroundQuad creates a large horizontal quad centered at the given point with normal (0,1,0)
func NewGroundQuad(center core.Vec3, size float64, mat *material.Material) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) points up
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, mat)
}

// AddShape adds shapes to the scene
func (s *Scene) AddShape(shapes ...geometry.Shape) error {
	if s.frozen {
		return ErrSceneFrozen
	}
	s.shapes = append(s.shapes, shapes...)
	return nil
}

// AddLight adds lights to the scene
func (s *Scene) AddLight(ls ...lights.Light) error {
	if s.frozen {
		return ErrSceneFrozen
	}
	s.lights = append(s.lights, ls...)
	return nil
}

// SetAmbient sets the global ambient light
func (s *Scene) SetAmbient(ambient core.Vec3) error {
	if s.frozen {
		return ErrSceneFrozen
	}
	s.ambient = ambient
	return nil
}

// SetCamera replaces the camera
func (s *Scene) SetCamera(camera *renderer.Camera) error {
	if s.frozen {
		return ErrSceneFrozen
	}
	s.camera = camera
	return nil
}

// Freeze makes the scene read-only
func (s *Scene) Freeze() {
	s.frozen = true
}

// Frozen reports whether the scene has been frozen
func (s *Scene) Frozen() bool {
	return s.frozen
}

// Intersect returns the nearest hit along the ray with t > core.RayEpsilon
func (s *Scene) Intersect(ray core.Ray) (*material.SurfaceInteraction, bool) {
	var closest *material.SurfaceInteraction
	tMax := math.Inf(1)
	for _, shape := range s.shapes {
		if si, ok := shape.Hit(ray, core.RayEpsilon, tMax); ok {
			closest = si
			tMax = si.T
		}
	}
	return closest, closest != nil
}

// Ambient returns the global ambient light
func (s *Scene) Ambient() core.Vec3 {
	return s.ambient
}

// Lights returns the scene lights. The slice must not be modified.
func (s *Scene) Lights() []lights.Light {
	return s.lights
}

// Camera returns the scene camera, or nil if none is set
func (s *Scene) Camera() integrator.Camera {
	if s.camera == nil {
		return nil
	}
	return s.camera
}

// AspectRatio returns the camera aspect ratio, or 1 without a camera
func (s *Scene) AspectRatio() float64 {
	if s.camera == nil {
		return 1.0
	}
	return s.camera.AspectRatio()
}

// Shapes returns the scene shapes. The slice must not be modified.
func (s *Scene) Shapes() []geometry.Shape {
	return s.shapes
}

// ShapeCount returns the number of shapes in the scene
func (s *Scene) ShapeCount() int {
	return len(s.shapes)
}
