package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// NewDefaultScene creates a default scene with a plastic, a mirror and a glass
// sphere next to a rotated box on a checkered floor
func NewDefaultScene() *Scene {
	cameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(0, 1.5, 6), // Slightly above the floor, looking down
		LookAt:      core.NewVec3(0, 0.5, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		AspectRatio: 4.0 / 3.0,
	}

	s := NewScene("Default Scene", renderer.NewCamera(cameraConfig))
	s.RenderConfig.Integrator.MaxDepth = 4
	s.RenderConfig.Integrator.Threshold = 0.01

	// Materials
	floor := material.NewMaterial(material.MaterialConfig{
		Ambient:   core.NewVec3(0.5, 0.5, 0.5),
		Specular:  core.NewVec3(0.1, 0.1, 0.1),
		Shininess: 0.1,
	})
	floor.SetDiffuse(material.Textured(material.NewCheckerTexture(
		core.NewVec3(0.9, 0.9, 0.9),
		core.NewVec3(0.2, 0.2, 0.25),
		1.0,
	)))

	redPlastic := material.NewMaterial(material.MaterialConfig{
		Ambient:   core.NewVec3(0.7, 0.1, 0.1),
		Diffuse:   core.NewVec3(0.7, 0.1, 0.1),
		Specular:  core.NewVec3(0.6, 0.6, 0.6),
		Shininess: 0.5,
	})
	mirror := material.NewMaterial(material.MaterialConfig{
		Diffuse:    core.NewVec3(0.05, 0.05, 0.05),
		Specular:   core.NewVec3(0.9, 0.9, 0.9),
		Reflective: core.NewVec3(0.85, 0.85, 0.85),
		Shininess:  0.9,
	})
	glass := material.NewMaterial(material.MaterialConfig{
		Specular:     core.NewVec3(0.9, 0.9, 0.9),
		Reflective:   core.NewVec3(0.1, 0.1, 0.1),
		Transmissive: core.NewVec3(0.9, 0.9, 0.9),
		Shininess:    1.0,
		Index:        1.5,
	})
	bluePlastic := material.NewMaterial(material.MaterialConfig{
		Ambient:   core.NewVec3(0.1, 0.2, 0.6),
		Diffuse:   core.NewVec3(0.1, 0.2, 0.6),
		Specular:  core.NewVec3(0.3, 0.3, 0.3),
		Shininess: 0.3,
	})

	// Shapes
	ground := NewGroundQuad(core.NewVec3(0, 0, 0), 40.0, floor)
	redSphere := geometry.NewSphere(core.NewVec3(-1.4, 0.6, -0.5), 0.6, redPlastic)
	mirrorSphere := geometry.NewSphere(core.NewVec3(0, 0.8, -1.5), 0.8, mirror)
	glassSphere := geometry.NewSphere(core.NewVec3(0.4, 0.5, 1.2), 0.5, glass)
	box := geometry.NewTransformedBox(
		core.NewVec3(1.6, 0.5, -0.3),
		core.NewVec3(1, 1, 1),
		core.NewVec3(0, core.Radians(30), 0),
		bluePlastic,
	)
	_ = s.AddShape(ground, redSphere, mirrorSphere, glassSphere, box)

	// Lights: a sun and a warm lamp in front of the scene
	_ = s.AddLight(
		lights.NewDirectionalLight(core.NewVec3(-1, -2, -1), core.NewVec3(0.6, 0.6, 0.6)),
		lights.NewPointLight(core.NewVec3(2, 4, 3), core.NewVec3(0.8, 0.7, 0.6), 1.0, 0.02, 0.01),
	)

	return s
}
