package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	LocalColor   [3]float64             `json:"localColor"` // Phong shading without recursion
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult contains rich information about an object hit by an inspection ray
type InspectResult struct {
	Hit       bool
	Ray       core.Ray
	HitRecord *material.SurfaceInteraction // Full hit record with material reference
	Shape     geometry.Shape               // The actual shape that was hit
}

// inspectPixel casts a ray through the center of pixel (pixelX, pixelY), row 0 at the top
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	camera := sceneObj.Camera()
	if camera == nil {
		return InspectResult{Hit: false}
	}

	x := (float64(pixelX) + 0.5) / float64(width)
	y := (float64(height-1-pixelY) + 0.5) / float64(height)
	ray := camera.RayThrough(x, y)

	hit, isHit := sceneObj.Intersect(ray)
	if !isHit {
		return InspectResult{Hit: false, Ray: ray}
	}

	// Find the specific shape that produced the nearest hit
	for _, shape := range sceneObj.Shapes() {
		if shapeHit, ok := shape.Hit(ray, core.RayEpsilon, hit.T); ok && shapeHit.T == hit.T {
			return InspectResult{Hit: true, Ray: ray, HitRecord: hit, Shape: shape}
		}
	}

	// Fallback: return hit without specific shape
	return InspectResult{Hit: true, Ray: ray, HitRecord: hit}
}

// extractMaterialInfo reports the Phong coefficients evaluated at the hit point
func extractMaterialInfo(si *material.SurfaceInteraction) map[string]interface{} {
	properties := make(map[string]interface{})
	m := si.Material
	if m == nil {
		return properties
	}

	properties["emissive"] = vecArray(m.Ke(si))
	properties["ambient"] = vecArray(m.Ka(si))
	properties["specular"] = vecArray(m.Ks(si))
	properties["diffuse"] = vecArray(m.Kd(si))
	properties["reflective"] = vecArray(m.Kr(si))
	properties["transmissive"] = vecArray(m.Kt(si))
	properties["shininess"] = m.Shininess(si)
	properties["index"] = m.Index(si)
	properties["flags"] = map[string]bool{
		"reflective":   m.Reflective(),
		"transmissive": m.Transmissive(),
		"recursive":    m.Recursive(),
		"specular":     m.Specular(),
		"both":         m.Both(),
	}
	kd := m.Kd(si)
	properties["color"] = fmt.Sprintf("#%02x%02x%02x",
		int(kd.X*255), int(kd.Y*255), int(kd.Z*255))
	return properties
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Quad:
		properties["corner"] = vecArray(geom.Corner)
		properties["u"] = vecArray(geom.U)
		properties["v"] = vecArray(geom.V)
		properties["normal"] = vecArray(geom.Normal)
		return "quad", properties

	case *geometry.Transformed:
		properties["translation"] = vecArray(geom.Translation)
		properties["scale"] = vecArray(geom.Scale)
		properties["rotation"] = vecArray(geom.Rotation)
		if _, ok := geom.Shape.(*geometry.Box); ok {
			return "box", properties
		}
		return "transformed", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, sceneObj, err := s.loadRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}
	config := req.Config(sceneObj)

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	if pixelX < 0 || pixelX >= config.Width || pixelY < 0 || pixelY >= config.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	sceneObj.Freeze()
	result := inspectPixel(sceneObj, config.Width, config.Height, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	geometryType, geometryProps := extractGeometryInfo(result.Shape)
	hit := result.HitRecord

	response := InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.T,
		FrontFace:    hit.FacesRay(result.Ray),
		LocalColor:   vecArray(integrator.Shade(sceneObj, result.Ray, hit)),
		Properties: map[string]interface{}{
			"material": extractMaterialInfo(hit),
			"geometry": geometryProps,
		},
	}

	writeJSON(w, http.StatusOK, response)
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
