package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scene types reported by discovery
const (
	TypeBuiltin = "builtin"
	TypeJSON    = "json"
)

const (
	builtinGroup     = "Built-in Scenes"
	defaultFileGroup = "Scene Files"
	jsonIDPrefix     = "json:"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to the scene file (json type only)
	Variant     string `json:"variant"`     // Variant name (optional)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// BuiltinScenes lists the scenes constructed in code
func BuiltinScenes() []SceneInfo {
	return []SceneInfo{
		{
			ID:          "default",
			Name:        "Default Scene",
			DisplayName: "Default Scene",
			Description: "Plastic, mirror and glass spheres beside a box on a checkered floor",
			Group:       builtinGroup,
			Type:        TypeBuiltin,
		},
		{
			ID:          "cornell-box",
			Name:        "Cornell Box",
			DisplayName: "Cornell Box",
			Description: "Cornell box with a tall box and a glass sphere",
			Group:       builtinGroup,
			Type:        TypeBuiltin,
		},
	}
}

// FindScenesDir returns the first scenes directory found near the working directory
func FindScenesDir() string {
	for _, path := range []string{"scenes", "../scenes", "../../scenes"} {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// ListJSONScenes scans the scenes directory and returns discovered scene files
func ListJSONScenes() ([]SceneInfo, error) {
	scenesDir := FindScenesDir()
	if scenesDir == "" {
		// No scenes directory found, return empty list
		return []SceneInfo{}, nil
	}
	return ListJSONScenesIn(scenesDir)
}

// ListJSONScenesIn returns the scene files in dir sorted by display name
func ListJSONScenesIn(dir string) ([]SceneInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata reads the metadata fields of a scene file. Missing fields
// fall back to values derived from the file name; a file that cannot be opened
// yields only the fallbacks.
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          jsonIDPrefix + nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       defaultFileGroup,
		Type:        TypeJSON,
		FilePath:    filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return sceneInfo, nil
	}
	defer file.Close()

	// Only the metadata is decoded; scene content is validated when loaded
	var meta struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Group       string `json:"group"`
		Variant     string `json:"variant"`
	}
	if err := json.NewDecoder(file).Decode(&meta); err != nil {
		return sceneInfo, fmt.Errorf("invalid scene file: %w", err)
	}

	if name := strings.TrimSpace(meta.Name); name != "" {
		sceneInfo.Name = name
	}
	if group := strings.TrimSpace(meta.Group); group != "" {
		sceneInfo.Group = group
	}
	sceneInfo.Description = strings.TrimSpace(meta.Description)
	sceneInfo.Variant = strings.TrimSpace(meta.Variant)

	if sceneInfo.Variant != "" {
		sceneInfo.DisplayName = fmt.Sprintf("%s - %s", sceneInfo.Name, sceneInfo.Variant)
	} else {
		sceneInfo.DisplayName = sceneInfo.Name
	}

	return sceneInfo, nil
}

// ListAllScenes returns both built-in and file scenes, grouped by category
func ListAllScenes() (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListJSONScenes()
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(BuiltinScenes(), fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if group, exists := groupMap[builtinGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: group})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return response, nil
}

// Load builds the scene with the given discovery ID: a built-in name or
// "json:<file name>" for a file in the scenes directory
func Load(id string) (*Scene, error) {
	switch id {
	case "default", "basic":
		return NewDefaultScene(), nil
	case "cornell-box", "cornell":
		return NewCornellScene(), nil
	}

	if name, ok := strings.CutPrefix(id, jsonIDPrefix); ok {
		dir := FindScenesDir()
		if dir == "" {
			return nil, fmt.Errorf("scene %q: no scenes directory found", id)
		}
		if strings.ContainsAny(name, `/\`) || name == "" || name == "." || name == ".." {
			return nil, fmt.Errorf("scene %q: invalid scene name", id)
		}
		return NewJSONScene(filepath.Join(dir, name+".json"))
	}

	return nil, fmt.Errorf("unknown scene %q", id)
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
