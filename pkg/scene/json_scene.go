package scene

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// NewJSONScene loads a scene file and converts it to a Scene
func NewJSONScene(filename string) (*Scene, error) {
	sf, err := loaders.LoadSceneFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene file: %w", err)
	}
	return NewSceneFromFile(sf)
}

// NewSceneFromFile converts a parsed scene file to a Scene. Omitted values fall
// back to the defaults: ambient level 0.2, point light attenuation (0.25, 0.25, 0.5)
// and an up vector of +Y.
func NewSceneFromFile(sf *loaders.SceneFile) (*Scene, error) {
	cameraConfig := renderer.CameraConfig{
		Center:      sf.Camera.Position.Vec3(),
		LookAt:      sf.Camera.LookAt.Vec3(),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        sf.Camera.Fov,
		AspectRatio: sf.Camera.AspectRatio,
	}
	if sf.Camera.Up != nil {
		cameraConfig.Up = sf.Camera.Up.Vec3()
	}

	name := sf.Name
	if name == "" {
		name = "Untitled"
	}
	s := NewScene(name, renderer.NewCamera(cameraConfig))
	applyRenderSpec(&s.RenderConfig, sf.Render, s.AspectRatio())

	if sf.Ambient != nil {
		if err := s.SetAmbient(sf.Ambient.Vec3()); err != nil {
			return nil, err
		}
	}

	materials := make(map[string]*material.Material, len(sf.Materials))
	for name, spec := range sf.Materials {
		m, err := buildMaterial(sf, spec)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = m
	}

	for i, obj := range sf.Objects {
		shape, err := buildShape(obj, materials[obj.Material])
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		if err := s.AddShape(shape); err != nil {
			return nil, err
		}
	}

	for i, spec := range sf.Lights {
		light, err := buildLight(spec)
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		if err := s.AddLight(light); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// applyRenderSpec copies the non-zero recommended settings into config
func applyRenderSpec(config *renderer.Config, spec loaders.RenderSpec, aspectRatio float64) {
	if spec.Width > 0 {
		config.Width = spec.Width
	}
	config.Height = renderer.HeightForAspect(config.Width, aspectRatio)
	if spec.Depth > 0 {
		config.Integrator.MaxDepth = spec.Depth
	}
	if spec.Threshold > 0 {
		config.Integrator.Threshold = spec.Threshold
	}
	if spec.Samples > 0 {
		config.Samples = spec.Samples
	}
}

// Resolution of textures baked from procedural material options
const (
	uvCheckPixels = 8
	gradientSteps = 256
)

func buildMaterial(sf *loaders.SceneFile, spec loaders.MaterialSpec) (*material.Material, error) {
	m := material.NewMaterial(material.MaterialConfig{
		Emissive:     spec.Emissive.Vec3(),
		Ambient:      spec.Ambient.Vec3(),
		Specular:     spec.Specular.Vec3(),
		Diffuse:      spec.Diffuse.Vec3(),
		Reflective:   spec.Reflective.Vec3(),
		Transmissive: spec.Transmissive.Vec3(),
		Shininess:    spec.Shininess,
		Index:        spec.Index,
	})

	switch {
	case spec.DiffuseMap != "":
		texture, err := loaders.LoadImageTexture(sf.TexturePath(spec.DiffuseMap))
		if err != nil {
			return nil, err
		}
		m.SetDiffuse(material.Textured(texture))
	case spec.Checker != nil && spec.Checker.Cells > 0:
		checker := spec.Checker
		size := checker.Cells * uvCheckPixels
		m.SetDiffuse(material.Textured(material.NewCheckerboardTexture(size, size, uvCheckPixels, checker.Even.Vec3(), checker.Odd.Vec3())))
	case spec.Checker != nil:
		checker := spec.Checker
		m.SetDiffuse(material.Textured(material.NewCheckerTexture(checker.Even.Vec3(), checker.Odd.Vec3(), checker.Scale)))
	case spec.Gradient != nil:
		m.SetDiffuse(material.Textured(material.NewGradientTexture(1, gradientSteps, spec.Gradient.Top.Vec3(), spec.Gradient.Bottom.Vec3())))
	}

	return m, nil
}

func buildShape(obj loaders.ObjectSpec, mat *material.Material) (geometry.Shape, error) {
	switch obj.Type {
	case loaders.ObjectSphere:
		return geometry.NewSphere(obj.Center.Vec3(), obj.Radius, mat), nil
	case loaders.ObjectBox:
		size := core.NewVec3(1, 1, 1)
		if obj.Size != nil {
			size = obj.Size.Vec3()
		}
		return geometry.NewTransformedBox(obj.Center.Vec3(), size, obj.RotationDeg.Vec3().ToRadians(), mat), nil
	case loaders.ObjectQuad:
		return geometry.NewQuad(obj.Corner.Vec3(), obj.U.Vec3(), obj.V.Vec3(), mat), nil
	default:
		return nil, fmt.Errorf("unsupported object type %q", obj.Type)
	}
}

func buildLight(spec loaders.LightSpec) (lights.Light, error) {
	switch spec.Type {
	case loaders.LightDirectional:
		return lights.NewDirectionalLight(spec.Direction.Vec3(), spec.Color.Vec3()), nil
	case loaders.LightPoint:
		if spec.Attenuation == nil {
			return lights.NewDefaultPointLight(spec.Position.Vec3(), spec.Color.Vec3()), nil
		}
		a := spec.Attenuation
		return lights.NewPointLight(spec.Position.Vec3(), spec.Color.Vec3(), a[0], a[1], a[2]), nil
	default:
		return nil, fmt.Errorf("unsupported light type %q", spec.Type)
	}
}
