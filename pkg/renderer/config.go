package renderer

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
)

const (
	// DefaultWidth is the image width used when none is given
	DefaultWidth = 150
	// MinWidth and MaxWidth bound user-selected image widths
	MinWidth = 64
	MaxWidth = 512
	// MaxSamples bounds the per-axis sub-pixel grid
	MaxSamples = 4
)

// Environment overrides read by ConfigFromEnv
const (
	EnvDepth     = "WHITTED_DEPTH"
	EnvThreshold = "WHITTED_THRESHOLD"
	EnvSamples   = "WHITTED_SAMPLES"
	EnvWorkers   = "WHITTED_WORKERS"
)

// Config contains rendering configuration
type Config struct {
	Width      int               // Image width in pixels
	Height     int               // Image height in pixels
	Samples    int               // Sub-pixel grid size per axis (Samples × Samples rays per pixel)
	NumWorkers int               // Number of parallel workers (0 = use CPU count)
	Integrator integrator.Config // Recursion depth and adaptive threshold
}

// DefaultConfig returns the default configuration for a square image
func DefaultConfig() Config {
	return Config{
		Width:      DefaultWidth,
		Height:     DefaultWidth,
		Samples:    1,
		NumWorkers: 0,
		Integrator: integrator.DefaultConfig(),
	}
}

// HeightForAspect returns the image height matching width and a camera aspect ratio
func HeightForAspect(width int, aspectRatio float64) int {
	if aspectRatio <= 0 {
		return width
	}
	return int(float64(width)/aspectRatio + 0.5)
}

// Validate reports every invalid field
func (c Config) Validate() error {
	var errs []error
	if c.Width < 1 {
		errs = append(errs, fmt.Errorf("width %d must be positive", c.Width))
	}
	if c.Height < 1 {
		errs = append(errs, fmt.Errorf("height %d must be positive", c.Height))
	}
	if c.Samples < 1 || c.Samples > MaxSamples {
		errs = append(errs, fmt.Errorf("samples %d out of range [1, %d]", c.Samples, MaxSamples))
	}
	if c.NumWorkers < 0 {
		errs = append(errs, fmt.Errorf("workers %d must be non-negative", c.NumWorkers))
	}
	if err := c.Integrator.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ConfigFromEnv applies WHITTED_* environment overrides on top of base,
// returning one error that lists every malformed value
func ConfigFromEnv(base Config) (Config, error) {
	cfg := base
	var problems []string

	if raw := strings.TrimSpace(os.Getenv(EnvDepth)); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("%s must be a non-negative integer, got %q", EnvDepth, raw))
		} else {
			cfg.Integrator.MaxDepth = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv(EnvThreshold)); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("%s must be a non-negative number, got %q", EnvThreshold, raw))
		} else {
			cfg.Integrator.Threshold = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv(EnvSamples)); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			problems = append(problems, fmt.Sprintf("%s must be a positive integer, got %q", EnvSamples, raw))
		} else {
			cfg.Samples = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv(EnvWorkers)); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("%s must be a non-negative integer, got %q", EnvWorkers, raw))
		} else {
			cfg.NumWorkers = value
		}
	}

	if len(problems) > 0 {
		return base, fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return cfg, nil
}
