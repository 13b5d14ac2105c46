package scene

import (
	"context"
	"errors"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

func newTestScene() *Scene {
	return NewScene("test", renderer.NewCamera(renderer.DefaultCameraConfig()))
}

func TestScene_IntersectNearest(t *testing.T) {
	s := newTestScene()
	near := material.NewDefaultMaterial()
	far := material.NewDefaultMaterial()
	if err := s.AddShape(
		geometry.NewSphere(core.NewVec3(0, 0, -5), 1, far),
		geometry.NewSphere(core.NewVec3(0, 0, 0), 1, near),
	); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	si, ok := s.Intersect(ray)
	if !ok {
		t.Fatal("Expected hit")
	}
	if si.Material != near {
		t.Error("Expected nearest sphere material")
	}
	if si.T != 4 {
		t.Errorf("Expected t=4, got %f", si.T)
	}
}

func TestScene_IntersectMiss(t *testing.T) {
	s := newTestScene()
	_ = s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewDefaultMaterial()))

	ray := core.NewRay(core.NewVec3(0, 5, 5), core.NewVec3(0, 0, -1))
	if si, ok := s.Intersect(ray); ok || si != nil {
		t.Errorf("Expected miss, got %v", si)
	}

	empty := newTestScene()
	if _, ok := empty.Intersect(ray); ok {
		t.Error("Expected empty scene to miss")
	}
}

func TestScene_IntersectSkipsOrigin(t *testing.T) {
	s := newTestScene()
	_ = s.AddShape(NewGroundQuad(core.NewVec3(0, 0, 0), 10, material.NewDefaultMaterial()))

	// A ray leaving the surface must not report the surface itself
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	if _, ok := s.Intersect(ray); ok {
		t.Error("Expected no hit for a ray leaving the surface")
	}
}

func TestScene_Freeze(t *testing.T) {
	s := newTestScene()
	s.Freeze()

	if !s.Frozen() {
		t.Error("Expected scene to be frozen")
	}

	sphere := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewDefaultMaterial())
	light := lights.NewDirectionalLight(core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1))

	tests := []struct {
		name string
		err  error
	}{
		{"AddShape", s.AddShape(sphere)},
		{"AddLight", s.AddLight(light)},
		{"SetAmbient", s.SetAmbient(core.NewVec3(1, 1, 1))},
		{"SetCamera", s.SetCamera(nil)},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, ErrSceneFrozen) {
			t.Errorf("%s: Expected ErrSceneFrozen, got %v", tt.name, tt.err)
		}
	}

	if s.ShapeCount() != 0 || len(s.Lights()) != 0 {
		t.Error("Expected frozen scene to stay unchanged")
	}
	if s.Camera() == nil {
		t.Error("Expected camera to survive a rejected SetCamera")
	}
}

func TestScene_Defaults(t *testing.T) {
	s := NewScene("empty", nil)

	if s.Camera() != nil {
		t.Error("Expected nil camera interface for a scene without a camera")
	}
	if s.AspectRatio() != 1.0 {
		t.Errorf("Expected aspect ratio 1, got %f", s.AspectRatio())
	}
	expected := core.NewVec3(DefaultAmbientLevel, DefaultAmbientLevel, DefaultAmbientLevel)
	if s.Ambient() != expected {
		t.Errorf("Expected ambient %v, got %v", expected, s.Ambient())
	}
}

func TestNewGroundQuad(t *testing.T) {
	quad := NewGroundQuad(core.NewVec3(0, -1, 0), 4, material.NewDefaultMaterial())

	ray := core.NewRay(core.NewVec3(1.5, 3, 1.5), core.NewVec3(0, -1, 0))
	si, ok := quad.Hit(ray, core.RayEpsilon, 100)
	if !ok {
		t.Fatal("Expected hit inside the ground quad")
	}
	if !si.Normal.Equals(core.NewVec3(0, 1, 0)) {
		t.Errorf("Expected normal (0,1,0), got %v", si.Normal)
	}
	if si.T != 4 {
		t.Errorf("Expected t=4, got %f", si.T)
	}

	outside := core.NewRay(core.NewVec3(2.5, 3, 0), core.NewVec3(0, -1, 0))
	if _, ok := quad.Hit(outside, core.RayEpsilon, 100); ok {
		t.Error("Expected miss outside the ground quad")
	}
}

func TestBuiltinScenes(t *testing.T) {
	tests := []struct {
		name   string
		scene  *Scene
		shapes int
		lights int
		height int
	}{
		{"default", NewDefaultScene(), 5, 2, 113},
		{"cornell", NewCornellScene(), 8, 1, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.scene.ShapeCount() != tt.shapes {
				t.Errorf("Expected %d shapes, got %d", tt.shapes, tt.scene.ShapeCount())
			}
			if len(tt.scene.Lights()) != tt.lights {
				t.Errorf("Expected %d lights, got %d", tt.lights, len(tt.scene.Lights()))
			}
			if tt.scene.Camera() == nil {
				t.Fatal("Expected a camera")
			}
			if tt.scene.RenderConfig.Height != tt.height {
				t.Errorf("Expected height %d, got %d", tt.height, tt.scene.RenderConfig.Height)
			}
			if err := tt.scene.RenderConfig.Validate(); err != nil {
				t.Errorf("Expected valid render config, got %v", err)
			}
		})
	}
}

func TestBuiltinScenes_Render(t *testing.T) {
	for _, s := range []*Scene{NewDefaultScene(), NewCornellScene()} {
		t.Run(s.Name, func(t *testing.T) {
			s.Freeze()
			config := s.RenderConfig
			config.Width = 16
			config.Height = renderer.HeightForAspect(16, s.AspectRatio())

			frame, stats, err := renderer.NewRenderer(s, config, nil).Render(context.Background(), nil)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if stats.Pixels != config.Width*config.Height {
				t.Errorf("Expected %d pixels, got %d", config.Width*config.Height, stats.Pixels)
			}

			// The middle of both scenes is covered by lit geometry
			r, g, b := frame.At(config.Width/2, config.Height/2)
			if r == 0 && g == 0 && b == 0 {
				t.Error("Expected a lit center pixel, got black")
			}
		})
	}
}
