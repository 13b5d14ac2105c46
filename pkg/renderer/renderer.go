package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
)

// ErrNoScene is returned when rendering is requested without a scene
var ErrNoScene = errors.New("no scene loaded")

// ErrNoCamera is returned when the scene has no camera to generate primary rays
var ErrNoCamera = errors.New("scene has no camera")

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// RowCompletion reports a finished scanline to render callers
type RowCompletion struct {
	Row       int          // Framebuffer row, 0 at the top
	Pixels    []byte       // Packed RGB bytes of the row
	Completed int          // Rows finished so far, including this one
	Total     int          // Rows in the image
	Frame     *FrameBuffer // Frame being rendered
}

// Progress returns the fraction of rows finished in [0,1]
func (rc RowCompletion) Progress() float64 {
	if rc.Total == 0 {
		return 1
	}
	return float64(rc.Completed) / float64(rc.Total)
}

// Renderer drives the Whitted integrator over every pixel of a frame
type Renderer struct {
	scene  integrator.Scene
	config Config
	logger core.Logger
}

// NewRenderer creates a renderer. A nil logger discards progress messages.
func NewRenderer(scene integrator.Scene, config Config, logger core.Logger) *Renderer {
	if logger == nil {
		logger = discardLogger{}
	}
	return &Renderer{
		scene:  scene,
		config: config,
		logger: logger,
	}
}

// Config returns the render configuration
func (r *Renderer) Config() Config {
	return r.config
}

// Render traces the full frame in parallel scanlines. onRow, if non-nil, is
// called from the calling goroutine once per finished row. When ctx is done
// no further rows are dispatched; rows already running complete, and the
// partial frame is returned together with ctx.Err().
func (r *Renderer) Render(ctx context.Context, onRow func(RowCompletion)) (*FrameBuffer, RenderStats, error) {
	if r.scene == nil {
		return nil, RenderStats{}, ErrNoScene
	}
	if missingCamera(r.scene.Camera()) {
		return nil, RenderStats{}, ErrNoCamera
	}
	if err := r.config.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("invalid render config: %w", err)
	}

	start := time.Now()
	frame := NewFrameBuffer(r.config.Width, r.config.Height)
	integ := integrator.NewWhittedIntegrator(r.config.Integrator)
	pool := NewWorkerPool(r.scene, integ, frame, r.config.Samples, r.config.NumWorkers)

	r.logger.Printf("Rendering %dx%d (depth %d, threshold %g, %dx%d samples, %d workers)...\n",
		frame.Width, frame.Height, r.config.Integrator.MaxDepth, r.config.Integrator.Threshold,
		r.config.Samples, r.config.Samples, pool.GetNumWorkers())

	pool.Start()
	go func() {
		defer pool.Stop()
		for row := 0; row < frame.Height; row++ {
			if !pool.SubmitTask(ctx, RowTask{Row: row}) {
				return
			}
		}
	}()

	var stats RenderStats
	lastDecile := 0
	for result := range pool.Results() {
		stats.add(result.Stats)

		if onRow != nil {
			onRow(RowCompletion{
				Row:       result.Row,
				Pixels:    frame.Row(result.Row),
				Completed: stats.Rows,
				Total:     frame.Height,
				Frame:     frame,
			})
		}

		if decile := stats.Rows * 10 / frame.Height; decile > lastDecile {
			lastDecile = decile
			r.logger.Printf("Progress: %d%% (%d/%d rows)\n", decile*10, stats.Rows, frame.Height)
		}
	}
	stats.Elapsed = time.Since(start)

	if stats.Rows < frame.Height {
		r.logger.Printf("Rendering cancelled after %d/%d rows\n", stats.Rows, frame.Height)
		if err := ctx.Err(); err != nil {
			return frame, stats, err
		}
		return frame, stats, context.Canceled
	}

	r.logger.Printf("Render completed in %v (%d rays: %d visibility, %d reflection, %d refraction, %d shadow)\n",
		stats.Elapsed, stats.TotalRays(),
		stats.Rays[core.RayVisibility], stats.Rays[core.RayReflection],
		stats.Rays[core.RayRefraction], stats.Rays[core.RayShadow])

	return frame, stats, nil
}

// discardLogger drops every message
type discardLogger struct{}

func (discardLogger) Printf(format string, args ...interface{}) {}

// missingCamera also catches a nil *Camera stored in the interface
func missingCamera(c integrator.Camera) bool {
	if c == nil {
		return true
	}
	cam, ok := c.(*Camera)
	return ok && cam == nil
}
