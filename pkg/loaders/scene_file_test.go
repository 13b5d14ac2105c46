package loaders

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

const minimalScene = `{
	"name": "Minimal",
	"description": "one sphere under one light",
	"camera": {"position": [0, 0, 5], "lookAt": [0, 0, 0], "fov": 40},
	"materials": {
		"red": {"diffuse": [0.8, 0.1, 0.1], "specular": [0.5, 0.5, 0.5], "shininess": 0.4},
		"floor": {"checker": {"even": [1, 1, 1], "odd": [0, 0, 0], "scale": 2}}
	},
	"objects": [
		{"type": "sphere", "material": "red", "center": [0, 0, 0], "radius": 1},
		{"type": "box", "material": "floor", "center": [0, -1.5, 0], "size": [10, 0.2, 10], "rotationDeg": [0, 45, 0]},
		{"type": "quad", "material": "floor", "corner": [-5, -2, -5], "u": [10, 0, 0], "v": [0, 0, 10]}
	],
	"lights": [
		{"type": "directional", "color": [1, 1, 1], "direction": [0, -1, -1]},
		{"type": "point", "color": [1, 0.9, 0.8], "position": [2, 3, 4], "attenuation": [1, 0, 0]}
	]
}`

func TestParseSceneFile(t *testing.T) {
	sf, err := ParseSceneFile(strings.NewReader(minimalScene))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if sf.Name != "Minimal" {
		t.Errorf("Expected name Minimal, got %q", sf.Name)
	}
	if len(sf.Objects) != 3 {
		t.Fatalf("Expected 3 objects, got %d", len(sf.Objects))
	}
	if len(sf.Lights) != 2 {
		t.Fatalf("Expected 2 lights, got %d", len(sf.Lights))
	}
	if sf.Ambient != nil {
		t.Errorf("Expected nil ambient when omitted, got %v", *sf.Ambient)
	}

	expectedDir := core.NewVec3(0, -1, -1)
	if got := sf.Lights[0].Direction.Vec3(); !got.Equals(expectedDir) {
		t.Errorf("Expected direction %v, got %v", expectedDir, got)
	}
	if sf.Lights[1].Attenuation == nil || sf.Lights[1].Attenuation[0] != 1 {
		t.Errorf("Expected attenuation [1 0 0], got %v", sf.Lights[1].Attenuation)
	}
	if sf.Materials["floor"].Checker == nil {
		t.Error("Expected floor material to carry a checker")
	}
	if sf.Objects[1].RotationDeg[1] != 45 {
		t.Errorf("Expected box rotation 45, got %v", sf.Objects[1].RotationDeg[1])
	}
}

func TestParseSceneFileRejectsUnknownFields(t *testing.T) {
	input := `{"camera": {"position": [0,0,5], "lookAt": [0,0,0]}, "materials": {}, "bogus": 1}`
	if _, err := ParseSceneFile(strings.NewReader(input)); err == nil {
		t.Error("Expected error for unknown field")
	}
}

func TestSceneFileValidate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{
			name:   "camera looks at itself",
			input:  `{"camera": {"position": [1,1,1], "lookAt": [1,1,1]}}`,
			errMsg: "camera position and lookAt must differ",
		},
		{
			name:   "unknown material",
			input:  `{"camera": {"position": [0,0,5], "lookAt": [0,0,0]}, "objects": [{"type": "sphere", "material": "missing", "radius": 1}]}`,
			errMsg: `unknown material "missing"`,
		},
		{
			name:   "unknown object type",
			input:  `{"camera": {"position": [0,0,5], "lookAt": [0,0,0]}, "materials": {"m": {}}, "objects": [{"type": "cone", "material": "m"}]}`,
			errMsg: `unknown type "cone"`,
		},
		{
			name:   "zero radius sphere",
			input:  `{"camera": {"position": [0,0,5], "lookAt": [0,0,0]}, "materials": {"m": {}}, "objects": [{"type": "sphere", "material": "m"}]}`,
			errMsg: "sphere radius must be non-zero",
		},
		{
			name:   "zero box size",
			input:  `{"camera": {"position": [0,0,5], "lookAt": [0,0,0]}, "materials": {"m": {}}, "objects": [{"type": "box", "material": "m", "size": [1,0,1]}]}`,
			errMsg: "box size must be positive",
		},
		{
			name:   "negative box size",
			input:  `{"camera": {"position": [0,0,5], "lookAt": [0,0,0]}, "materials": {"m": {}}, "objects": [{"type": "box", "material": "m", "size": [1,1,-2]}]}`,
			errMsg: "box size must be positive",
		},
		{
			name:   "degenerate quad",
			input:  `{"camera": {"position": [0,0,5], "lookAt": [0,0,0]}, "materials": {"m": {}}, "objects": [{"type": "quad", "material": "m", "u": [1,0,0], "v": [2,0,0]}]}`,
			errMsg: "quad edges must not be parallel",
		},
		{
			name:   "directional light without direction",
			input:  `{"camera": {"position": [0,0,5], "lookAt": [0,0,0]}, "lights": [{"type": "directional", "color": [1,1,1]}]}`,
			errMsg: "directional light needs a direction",
		},
		{
			name:   "spot light",
			input:  `{"camera": {"position": [0,0,5], "lookAt": [0,0,0]}, "lights": [{"type": "spot", "color": [1,1,1]}]}`,
			errMsg: `unknown type "spot"`,
		},
		{
			name:   "exclusive textures",
			input:  `{"camera": {"position": [0,0,5], "lookAt": [0,0,0]}, "materials": {"m": {"diffuseMap": "a.png", "checker": {"even": [1,1,1], "odd": [0,0,0]}}}}`,
			errMsg: "diffuseMap, checker and gradient are exclusive",
		},
		{
			name:   "checker and gradient",
			input:  `{"camera": {"position": [0,0,5], "lookAt": [0,0,0]}, "materials": {"m": {"gradient": {"top": [1,1,1], "bottom": [0,0,0]}, "checker": {"even": [1,1,1], "odd": [0,0,0]}}}}`,
			errMsg: "diffuseMap, checker and gradient are exclusive",
		},
		{
			name:   "negative checker cells",
			input:  `{"camera": {"position": [0,0,5], "lookAt": [0,0,0]}, "materials": {"m": {"checker": {"even": [1,1,1], "odd": [0,0,0], "cells": -2}}}}`,
			errMsg: "checker cells -2 must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSceneFile(strings.NewReader(tt.input))
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.errMsg)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Expected error containing %q, got %q", tt.errMsg, err.Error())
			}
		})
	}
}

func TestSceneFileValidateCollectsAllProblems(t *testing.T) {
	input := `{"camera": {"position": [0,0,0], "lookAt": [0,0,0]}, "lights": [{"type": "area", "color": [1,1,1]}]}`
	_, err := ParseSceneFile(strings.NewReader(input))
	if err == nil {
		t.Fatal("Expected error")
	}
	for _, want := range []string{"camera position", `unknown type "area"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected error to mention %q, got %q", want, err.Error())
		}
	}
}

func TestLoadSceneFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scenes")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	path := filepath.Join(dir, "minimal.json")
	if err := os.WriteFile(path, []byte(minimalScene), 0o644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}

	sf, err := LoadSceneFile(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sf.Dir != dir {
		t.Errorf("Expected dir %q, got %q", dir, sf.Dir)
	}
	if got := sf.TexturePath("wood.png"); got != filepath.Join(dir, "wood.png") {
		t.Errorf("Expected texture path relative to scene, got %q", got)
	}
}

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"scenes directory", "scenes/cornell.json", false},
		{"nested scenes directory", "../scenes/cornell.json", false},
		{"empty", "", true},
		{"outside scenes", "/etc/passwd.json", true},
		{"wrong extension", "scenes/cornell.pbrt", true},
		{"null byte", "scenes/a\x00.json", true},
		{"too long", "scenes/" + strings.Repeat("a", 520) + ".json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFilePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("Expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}
