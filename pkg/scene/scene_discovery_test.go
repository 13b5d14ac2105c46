package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-empty", "Cornell Empty"},
		{"glass_spheres", "Glass Spheres"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestParseSceneMetadata(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name: "complete_metadata.json",
			content: `{"name": "Cornell Box", "variant": "Empty Room",
				"description": "Classic Cornell box with no objects", "group": "Cornell Variants",
				"camera": {"position": [0, 0, 5], "lookAt": [0, 0, 0]}}`,
			expected: SceneInfo{
				ID:          "json:complete_metadata",
				Name:        "Cornell Box",
				DisplayName: "Cornell Box - Empty Room",
				Description: "Classic Cornell box with no objects",
				Group:       "Cornell Variants",
				Type:        TypeJSON,
				Variant:     "Empty Room",
			},
		},
		{
			name:    "partial_metadata.json",
			content: `{"name": "Mirrors", "description": "Facing mirrors"}`,
			expected: SceneInfo{
				ID:          "json:partial_metadata",
				Name:        "Mirrors",
				DisplayName: "Mirrors",
				Description: "Facing mirrors",
				Group:       "Scene Files", // Default group
				Type:        TypeJSON,
			},
		},
		{
			name:    "no_metadata.json",
			content: `{"camera": {"position": [0, 0, 5], "lookAt": [0, 0, 0]}}`,
			expected: SceneInfo{
				ID:          "json:no_metadata",
				Name:        "No Metadata", // From filename
				DisplayName: "No Metadata",
				Group:       "Scene Files",
				Type:        TypeJSON,
			},
		},
		{
			name:    "padded_metadata.json",
			content: `{"name": "  Padded  ", "variant": "   ", "group": "  "}`,
			expected: SceneInfo{
				ID:          "json:padded_metadata",
				Name:        "Padded",
				DisplayName: "Padded",
				Group:       "Scene Files",
				Type:        TypeJSON,
			},
		},
	}

	dir := t.TempDir()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name)
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("Failed to write temp file: %v", err)
			}

			result, err := ParseSceneMetadata(path)
			if err != nil {
				t.Fatalf("ParseSceneMetadata() error: %v", err)
			}

			tc.expected.FilePath = path
			if result != tc.expected {
				t.Errorf("ParseSceneMetadata() = %+v, want %+v", result, tc.expected)
			}
		})
	}
}

func TestParseSceneMetadata_InvalidFile(t *testing.T) {
	// Missing files fall back to values derived from the name
	result, err := ParseSceneMetadata("nonexistent.json")
	if err != nil {
		t.Errorf("ParseSceneMetadata() should handle missing files gracefully: %v", err)
	}
	if result.DisplayName != "Nonexistent" {
		t.Errorf("Expected fallback display name, got %q", result.DisplayName)
	}

	// Malformed JSON is reported
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte(`{"name": `), 0o644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	if _, err := ParseSceneMetadata(path); err == nil {
		t.Error("Expected error for malformed scene file")
	}
}

func TestListJSONScenesIn(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.json":      `{"name": "Beta"}`,
		"a.json":      `{"name": "Alpha"}`,
		"broken.json": `{`,
		"notes.txt":   `not a scene`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	scenes, err := ListJSONScenesIn(dir)
	if err != nil {
		t.Fatalf("ListJSONScenesIn() error: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d", len(scenes))
	}
	if scenes[0].Name != "Alpha" || scenes[1].Name != "Beta" {
		t.Errorf("Expected scenes sorted by display name, got %q, %q", scenes[0].Name, scenes[1].Name)
	}
}

func TestListAllScenes(t *testing.T) {
	response, err := ListAllScenes()
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	if len(response.Groups) == 0 {
		t.Fatal("ListAllScenes() returned no groups")
	}

	builtInGroup := response.Groups[0]
	if builtInGroup.Name != "Built-in Scenes" {
		t.Fatalf("Expected Built-in Scenes first, got %q", builtInGroup.Name)
	}

	expectedScenes := []string{"default", "cornell-box"}
	if len(builtInGroup.Scenes) != len(expectedScenes) {
		t.Errorf("Built-in scenes count = %d, want %d", len(builtInGroup.Scenes), len(expectedScenes))
	}
	sceneIDs := make(map[string]bool)
	for _, scene := range builtInGroup.Scenes {
		sceneIDs[scene.ID] = true
	}
	for _, expectedID := range expectedScenes {
		if !sceneIDs[expectedID] {
			t.Errorf("Missing expected built-in scene: %s", expectedID)
		}
	}

	// Every listed scene carries the fields the web UI needs
	for _, group := range response.Groups {
		if group.Name == "" {
			t.Error("Found group with empty name")
		}
		for _, scene := range group.Scenes {
			if scene.ID == "" || scene.DisplayName == "" {
				t.Errorf("Found scene with missing fields: %+v", scene)
			}
			if scene.Type != TypeBuiltin && scene.Type != TypeJSON {
				t.Errorf("Invalid scene type: %s", scene.Type)
			}
			if scene.Type == TypeJSON && (scene.FilePath == "" || !strings.HasPrefix(scene.ID, "json:")) {
				t.Errorf("Scene file entry is incomplete: %+v", scene)
			}
		}
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"default", false},
		{"basic", false},
		{"cornell-box", false},
		{"cornell", false},
		{"unknown", true},
		{"json:../secrets", true},
		{"json:", true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s, err := Load(tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error=%v, got %v", tt.wantErr, err)
			}
			if !tt.wantErr && s == nil {
				t.Error("Expected a scene")
			}
		})
	}
}

func TestLoad_SceneFile(t *testing.T) {
	if FindScenesDir() == "" {
		t.Skip("no scenes directory")
	}
	s, err := Load("json:glass-spheres")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.Name != "Glass Spheres" {
		t.Errorf("Expected Glass Spheres, got %q", s.Name)
	}
}
