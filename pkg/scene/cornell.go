package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// CornellBoxSize is the edge length of the Cornell box
const CornellBoxSize = 555.0

// NewCornellScene creates a Cornell box with quad walls, a tall rotated box and
// a glass sphere, lit by a point light under the ceiling panel
func NewCornellScene() *Scene {
	config := renderer.CameraConfig{
		Center:      core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:      core.NewVec3(278, 278, 0),    // Look at the center of the box
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1.0,
		VFov:        40.0,
	}

	s := NewScene("Cornell Box", renderer.NewCamera(config))
	s.RenderConfig.Integrator.MaxDepth = 5
	_ = s.SetAmbient(core.Splat(0.1))

	white := diffuseMaterial(core.NewVec3(0.73, 0.73, 0.73))
	red := diffuseMaterial(core.NewVec3(0.65, 0.05, 0.05))
	green := diffuseMaterial(core.NewVec3(0.12, 0.45, 0.15))
	panel := material.NewMaterial(material.MaterialConfig{
		Emissive: core.NewVec3(1, 1, 1),
	})
	glass := material.NewMaterial(material.MaterialConfig{
		Specular:     core.NewVec3(0.8, 0.8, 0.8),
		Reflective:   core.NewVec3(0.1, 0.1, 0.1),
		Transmissive: core.NewVec3(0.85, 0.85, 0.85),
		Shininess:    1.0,
		Index:        1.5,
	})

	size := CornellBoxSize

	// Walls face into the box. The camera looks down +Z, so +X is on its left.
	floor := geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, size), // u × v points up
		core.NewVec3(size, 0, 0),
		white,
	)
	ceiling := geometry.NewQuad(
		core.NewVec3(0, size, 0),
		core.NewVec3(size, 0, 0), // u × v points down
		core.NewVec3(0, 0, size),
		white,
	)
	backWall := geometry.NewQuad(
		core.NewVec3(0, 0, size),
		core.NewVec3(0, size, 0), // u × v points toward the camera
		core.NewVec3(size, 0, 0),
		white,
	)
	leftWall := geometry.NewQuad(
		core.NewVec3(size, 0, 0),
		core.NewVec3(0, 0, size), // u × v points toward -X
		core.NewVec3(0, size, 0),
		red,
	)
	rightWall := geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, size, 0), // u × v points toward +X
		core.NewVec3(0, 0, size),
		green,
	)

	// Emissive panel just below the ceiling marks where the light hangs
	panelSize := 130.0
	panelOffset := (size - panelSize) / 2.0
	lightPanel := geometry.NewQuad(
		core.NewVec3(panelOffset, size-1, panelOffset),
		core.NewVec3(panelSize, 0, 0),
		core.NewVec3(0, 0, panelSize),
		panel,
	)

	tallBox := geometry.NewTransformedBox(
		core.NewVec3(368, 165, 351),
		core.NewVec3(165, 330, 165),
		core.NewVec3(0, core.Radians(15), 0),
		white,
	)
	glassSphere := geometry.NewSphere(core.NewVec3(190, 90, 190), 90, glass)

	_ = s.AddShape(floor, ceiling, backWall, leftWall, rightWall, lightPanel, tallBox, glassSphere)

	// The box is hundreds of units across, so the lamp is not attenuated
	_ = s.AddLight(lights.NewPointLight(
		core.NewVec3(278, size-20, 278),
		core.NewVec3(1, 1, 1),
		1.0, 0, 0,
	))

	return s
}

// diffuseMaterial creates a matte material whose ambient response matches its diffuse color
func diffuseMaterial(albedo core.Vec3) *material.Material {
	return material.NewMaterial(material.MaterialConfig{
		Ambient: albedo,
		Diffuse: albedo,
	})
}
