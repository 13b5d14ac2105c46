package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Object and light kinds accepted in scene files
const (
	ObjectSphere = "sphere"
	ObjectBox    = "box"
	ObjectQuad   = "quad"

	LightDirectional = "directional"
	LightPoint       = "point"
)

// Triple is a JSON [x, y, z] array
type Triple [3]float64

// Vec3 converts the triple to a vector
func (t Triple) Vec3() core.Vec3 {
	return core.NewVec3(t[0], t[1], t[2])
}

// SceneFile is the JSON description of a scene. Metadata fields feed scene discovery.
type SceneFile struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	Group       string                  `json:"group,omitempty"`
	Variant     string                  `json:"variant,omitempty"`
	Camera      CameraSpec              `json:"camera"`
	Ambient     *Triple                 `json:"ambient,omitempty"` // nil means the default ambient level
	Render      RenderSpec              `json:"render,omitempty"`
	Materials   map[string]MaterialSpec `json:"materials"`
	Objects     []ObjectSpec            `json:"objects"`
	Lights      []LightSpec             `json:"lights"`

	// Dir is the directory the file was loaded from, used to resolve texture paths
	Dir string `json:"-"`
}

// CameraSpec positions a pinhole camera
type CameraSpec struct {
	Position    Triple  `json:"position"`
	LookAt      Triple  `json:"lookAt"`
	Up          *Triple `json:"up,omitempty"`
	Fov         float64 `json:"fov,omitempty"`         // vertical, degrees
	AspectRatio float64 `json:"aspectRatio,omitempty"` // width / height
}

// RenderSpec holds recommended render settings; zero values mean "use the default"
type RenderSpec struct {
	Width     int     `json:"width,omitempty"`
	Depth     int     `json:"depth,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Samples   int     `json:"samples,omitempty"`
}

// MaterialSpec lists Phong coefficients. A diffuse map or checker replaces the
// constant diffuse color.
type MaterialSpec struct {
	Emissive     Triple        `json:"emissive,omitempty"`
	Ambient      Triple        `json:"ambient,omitempty"`
	Specular     Triple        `json:"specular,omitempty"`
	Diffuse      Triple        `json:"diffuse,omitempty"`
	Reflective   Triple        `json:"reflective,omitempty"`
	Transmissive Triple        `json:"transmissive,omitempty"`
	Shininess    float64       `json:"shininess,omitempty"`
	Index        float64       `json:"index,omitempty"`
	DiffuseMap   string        `json:"diffuseMap,omitempty"`
	Checker      *CheckerSpec  `json:"checker,omitempty"`
	Gradient     *GradientSpec `json:"gradient,omitempty"`
}

// CheckerSpec describes a checker texture. With Cells set the checks are
// laid out in UV space, otherwise they are solid 3D cubes of size Scale.
type CheckerSpec struct {
	Even  Triple  `json:"even"`
	Odd   Triple  `json:"odd"`
	Scale float64 `json:"scale,omitempty"`
	Cells int     `json:"cells,omitempty"`
}

// GradientSpec describes a vertical UV gradient
type GradientSpec struct {
	Top    Triple `json:"top"`
	Bottom Triple `json:"bottom"`
}

func (m MaterialSpec) textureCount() int {
	n := 0
	if m.DiffuseMap != "" {
		n++
	}
	if m.Checker != nil {
		n++
	}
	if m.Gradient != nil {
		n++
	}
	return n
}

// ObjectSpec describes one shape. Which fields apply depends on Type.
type ObjectSpec struct {
	Type        string  `json:"type"`
	Material    string  `json:"material"`
	Center      Triple  `json:"center,omitempty"`      // sphere, box
	Radius      float64 `json:"radius,omitempty"`      // sphere
	Size        *Triple `json:"size,omitempty"`        // box, defaults to 1 on each axis
	RotationDeg Triple  `json:"rotationDeg,omitempty"` // box, degrees about X, Y, Z
	Corner      Triple  `json:"corner,omitempty"`      // quad
	U           Triple  `json:"u,omitempty"`           // quad
	V           Triple  `json:"v,omitempty"`           // quad
}

// LightSpec describes a directional or point light
type LightSpec struct {
	Type        string  `json:"type"`
	Color       Triple  `json:"color"`
	Direction   Triple  `json:"direction,omitempty"`   // directional: direction of travel
	Position    Triple  `json:"position,omitempty"`    // point
	Attenuation *Triple `json:"attenuation,omitempty"` // point: constant, linear, quadratic
}

// ParseSceneFile decodes and validates a JSON scene description
func ParseSceneFile(r io.Reader) (*SceneFile, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var sf SceneFile
	if err := decoder.Decode(&sf); err != nil {
		return nil, fmt.Errorf("failed to decode scene file: %w", err)
	}
	if err := sf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene file: %w", err)
	}
	return &sf, nil
}

// LoadSceneFile reads a JSON scene file from the scenes directory
func LoadSceneFile(filename string) (*SceneFile, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	sf, err := ParseSceneFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	sf.Dir = filepath.Dir(filename)
	return sf, nil
}

// Validate reports every structural problem in the scene file
func (sf *SceneFile) Validate() error {
	var errs []error

	if sf.Camera.Position == sf.Camera.LookAt {
		errs = append(errs, errors.New("camera position and lookAt must differ"))
	}
	if sf.Camera.Fov < 0 || sf.Camera.Fov >= 180 {
		errs = append(errs, fmt.Errorf("camera fov %v out of range (0, 180)", sf.Camera.Fov))
	}
	if sf.Camera.AspectRatio < 0 {
		errs = append(errs, fmt.Errorf("camera aspectRatio %v must be positive", sf.Camera.AspectRatio))
	}

	for name, m := range sf.Materials {
		if m.Index < 0 {
			errs = append(errs, fmt.Errorf("material %q: index %v must be positive", name, m.Index))
		}
		if m.textureCount() > 1 {
			errs = append(errs, fmt.Errorf("material %q: diffuseMap, checker and gradient are exclusive", name))
		}
		if m.Checker != nil && m.Checker.Cells < 0 {
			errs = append(errs, fmt.Errorf("material %q: checker cells %d must be positive", name, m.Checker.Cells))
		}
	}

	for i, obj := range sf.Objects {
		if _, ok := sf.Materials[obj.Material]; !ok {
			errs = append(errs, fmt.Errorf("object %d: unknown material %q", i, obj.Material))
		}
		switch obj.Type {
		case ObjectSphere:
			if obj.Radius == 0 {
				errs = append(errs, fmt.Errorf("object %d: sphere radius must be non-zero", i))
			}
		case ObjectBox:
			if obj.Size != nil && (obj.Size[0] <= 0 || obj.Size[1] <= 0 || obj.Size[2] <= 0) {
				errs = append(errs, fmt.Errorf("object %d: box size must be positive", i))
			}
		case ObjectQuad:
			if obj.U.Vec3().Cross(obj.V.Vec3()).IsZero() {
				errs = append(errs, fmt.Errorf("object %d: quad edges must not be parallel", i))
			}
		default:
			errs = append(errs, fmt.Errorf("object %d: unknown type %q", i, obj.Type))
		}
	}

	for i, light := range sf.Lights {
		switch light.Type {
		case LightDirectional:
			if light.Direction.Vec3().IsZero() {
				errs = append(errs, fmt.Errorf("light %d: directional light needs a direction", i))
			}
		case LightPoint:
		default:
			errs = append(errs, fmt.Errorf("light %d: unknown type %q", i, light.Type))
		}
	}

	return errors.Join(errs...)
}

// TexturePath resolves a texture path relative to the scene file
func (sf *SceneFile) TexturePath(name string) string {
	if filepath.IsAbs(name) || sf.Dir == "" {
		return name
	}
	return filepath.Join(sf.Dir, name)
}

// validateFilePath validates a scene file path for security issues
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}

	cleanPath := filepath.ToSlash(filepath.Clean(filename))

	// Only allow files in a scenes/ directory or the temp directory (for tests)
	if !strings.HasPrefix(cleanPath, "scenes/") &&
		!strings.Contains(cleanPath, "/scenes/") &&
		!strings.HasPrefix(cleanPath, filepath.ToSlash(os.TempDir())) {
		return fmt.Errorf("file path must be in scenes/ directory")
	}

	if !strings.HasSuffix(strings.ToLower(cleanPath), ".json") {
		return fmt.Errorf("invalid file type: only .json scene files are allowed")
	}

	if len(cleanPath) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}

	return nil
}
