package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func TestBox_IntersectLocal_FrontFace(t *testing.T) {
	box := NewBox(material.NewDefaultMaterial())
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	hit, isHit := box.IntersectLocal(ray)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-4.5) > 1e-9 {
		t.Errorf("Expected t=4.5, got t=%f", hit.T)
	}
	expected := core.NewVec3(0, 0, 1)
	if !hit.Normal.Equals(expected) {
		t.Errorf("Expected normal %v, got %v", expected, hit.Normal)
	}
}

func TestBox_IntersectLocal_Faces(t *testing.T) {
	box := NewBox(nil)

	tests := []struct {
		name           string
		origin         core.Vec3
		dir            core.Vec3
		expectedNormal core.Vec3
	}{
		{"+X face", core.NewVec3(3, 0.1, 0.2), core.NewVec3(-1, 0, 0), core.NewVec3(1, 0, 0)},
		{"-X face", core.NewVec3(-3, 0.1, 0.2), core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0)},
		{"+Y face", core.NewVec3(0.1, 3, 0.2), core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)},
		{"-Y face", core.NewVec3(0.1, -3, 0.2), core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)},
		{"-Z face", core.NewVec3(0.1, 0.2, -3), core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := box.IntersectLocal(core.NewRay(tt.origin, tt.dir))
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-2.5) > 1e-9 {
				t.Errorf("Expected t=2.5, got t=%f", hit.T)
			}
			if !hit.Normal.Equals(tt.expectedNormal) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestBox_IntersectLocal_AxisParallelMiss(t *testing.T) {
	box := NewBox(nil)

	tests := []struct {
		name   string
		origin core.Vec3
		dir    core.Vec3
	}{
		{"parallel outside x slab", core.NewVec3(2, 0, 5), core.NewVec3(0, 0, -1)},
		{"parallel outside y slab", core.NewVec3(0, -0.75, 5), core.NewVec3(0, 0, -1)},
		{"pointing away", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1)},
		{"diagonal miss", core.NewVec3(0, 0, 5), core.NewVec3(1, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, isHit := box.IntersectLocal(core.NewRay(tt.origin, tt.dir)); isHit {
				t.Error("Expected miss, but got hit")
			}
		})
	}
}

func TestBox_IntersectLocal_FromInside(t *testing.T) {
	box := NewBox(nil)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	hit, isHit := box.IntersectLocal(ray)
	if !isHit {
		t.Fatal("Expected exit hit, but got miss")
	}
	if math.Abs(hit.T-0.5) > 1e-9 {
		t.Errorf("Expected t=0.5, got t=%f", hit.T)
	}
	expected := core.NewVec3(0, 0, 1)
	if !hit.Normal.Equals(expected) {
		t.Errorf("Expected outward normal %v, got %v", expected, hit.Normal)
	}
	if hit.FacesRay(ray) {
		t.Error("Expected exit hit not to face the ray")
	}
}

func TestBox_Hit_RespectsRange(t *testing.T) {
	box := NewBox(nil)
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	if _, isHit := box.Hit(ray, core.RayEpsilon, 4.0); isHit {
		t.Error("Expected miss when tMax is before the box")
	}
	if _, isHit := box.Hit(ray, core.RayEpsilon, 10.0); !isHit {
		t.Error("Expected hit inside range")
	}
}
