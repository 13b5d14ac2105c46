package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func TestSphere_Hit_Basic(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, material.NewDefaultMaterial())

	tests := []struct {
		name      string
		rayOrigin core.Vec3
		rayDir    core.Vec3
		shouldHit bool
		expectedT float64
	}{
		{"ray toward center", core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -1), true, 2.0},
		{"ray misses sphere", core.NewVec3(2, 0, 3), core.NewVec3(0, 0, -1), false, 0},
		{"ray from inside", core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), true, 1.0},
		{"ray pointing away", core.NewVec3(0, 0, 3), core.NewVec3(0, 0, 1), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDir)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0)

			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got hit=%v", tt.shouldHit, isHit)
			}
			if isHit && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestSphere_Hit_OutwardNormalFromInside(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 2.0, material.NewDefaultMaterial())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	// Exit hit keeps the outward normal so callers can tell they are leaving
	expected := core.NewVec3(1, 0, 0)
	if !hit.Normal.Equals(expected) {
		t.Errorf("Expected normal %v, got %v", expected, hit.Normal)
	}
	if hit.FacesRay(ray) {
		t.Error("Expected exit hit not to face the ray")
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	if hit, isHit := sphere.Hit(ray, 0.001, 0.5); isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}
	if hit, isHit := sphere.Hit(ray, 3.5, 1000.0); isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}

	// tMin past the near root falls back to the far root
	hit, isHit := sphere.Hit(ray, 1.5, 1000.0)
	if !isHit {
		t.Fatal("Expected far intersection, but got miss")
	}
	if math.Abs(hit.T-3.0) > 1e-9 {
		t.Errorf("Expected t=3, got t=%f", hit.T)
	}
}

func TestSphere_Hit_CarriesMaterialAndUV(t *testing.T) {
	mat := material.NewDefaultMaterial()
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, mat)
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if hit.Material != mat {
		t.Error("Expected hit to carry the sphere material")
	}
	// North pole maps to v=1
	if math.Abs(hit.UV.Y-1.0) > 1e-9 {
		t.Errorf("Expected v=1 at the pole, got %f", hit.UV.Y)
	}
}
