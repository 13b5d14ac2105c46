package server

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// DefaultScene is rendered when a request names no scene
const DefaultScene = "default"

// Threshold bounds accepted from clients
const (
	MinThreshold = 0.0
	MaxThreshold = 1.0
)

// Server handles web requests for the Whitted raytracer
type Server struct {
	port int
	mux  *http.ServeMux
}

// NewServer creates a web server serving the viewer's static files from staticDir
func NewServer(port int, staticDir string) *Server {
	s := &Server{port: port, mux: http.NewServeMux()}

	// Serve static files
	s.mux.Handle("/", http.FileServer(http.Dir(staticDir)))

	// API endpoints
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	return s
}

// Handler returns the HTTP handler with every route registered
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene     string  `json:"scene"`     // Scene ID (e.g., "cornell-box" or "json:glass-spheres")
	Width     int     `json:"width"`     // Image width; height follows the camera aspect ratio
	Depth     int     `json:"depth"`     // Maximum recursion depth
	Threshold float64 `json:"threshold"` // Adaptive termination threshold
	Samples   int     `json:"samples"`   // Sub-pixel grid size per axis
}

// Config converts the request to a render configuration for the scene
func (req *RenderRequest) Config(sceneObj *scene.Scene) renderer.Config {
	config := sceneObj.RenderConfig
	config.Width = req.Width
	config.Height = renderer.HeightForAspect(req.Width, sceneObj.AspectRatio())
	config.Samples = req.Samples
	config.Integrator.MaxDepth = req.Depth
	config.Integrator.Threshold = req.Threshold
	return config
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and file scenes grouped for the scene picker
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns the recommended configuration for a scene and the accepted limits
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = DefaultScene
	}

	sceneObj, err := scene.Load(sceneName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	config := sceneObj.RenderConfig
	response := map[string]interface{}{
		"scene":       sceneName,
		"name":        sceneObj.Name,
		"aspectRatio": sceneObj.AspectRatio(),
		"defaults": map[string]interface{}{
			"width":     config.Width,
			"height":    config.Height,
			"depth":     config.Integrator.MaxDepth,
			"threshold": config.Integrator.Threshold,
			"samples":   config.Samples,
		},
		"limits": map[string]interface{}{
			"width":     map[string]int{"min": renderer.MinWidth, "max": renderer.MaxWidth},
			"depth":     map[string]int{"min": 0, "max": integrator.MaxDepthLimit},
			"threshold": map[string]float64{"min": MinThreshold, "max": MaxThreshold},
			"samples":   map[string]int{"min": 1, "max": renderer.MaxSamples},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// loadRequest parses the scene and render parameters shared by render and inspect.
// Parameters the client omits take the scene's recommended values.
func (s *Server) loadRequest(r *http.Request) (*RenderRequest, *scene.Scene, error) {
	query := r.URL.Query()

	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = DefaultScene
	}

	sceneObj, err := scene.Load(req.Scene)
	if err != nil {
		return nil, nil, err
	}
	defaults := sceneObj.RenderConfig

	if req.Width, err = parseIntParam(query, "width", clampWidth(defaults.Width), renderer.MinWidth, renderer.MaxWidth); err != nil {
		return nil, nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", defaults.Integrator.MaxDepth, 0, integrator.MaxDepthLimit); err != nil {
		return nil, nil, err
	}
	if req.Threshold, err = parseFloatParam(query, "threshold", defaults.Integrator.Threshold, MinThreshold, MaxThreshold); err != nil {
		return nil, nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", defaults.Samples, 1, renderer.MaxSamples); err != nil {
		return nil, nil, err
	}

	// Performance warning
	if req.Width >= renderer.MaxWidth && req.Samples == renderer.MaxSamples && req.Depth > 5 {
		log.Printf("Render warning: Large image with deep recursion and supersampling may render slowly")
	}

	return req, sceneObj, nil
}

// clampWidth keeps a scene's recommended width inside the accepted range
func clampWidth(width int) int {
	if width < renderer.MinWidth {
		return renderer.MinWidth
	}
	if width > renderer.MaxWidth {
		return renderer.MaxWidth
	}
	return width
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(parsed) {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
