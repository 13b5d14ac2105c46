package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Options holds the command line settings. Negative or zero values mean
// "use the scene's recommendation".
type Options struct {
	Scene     string
	Width     int
	Depth     int
	Threshold float64
	Samples   int
	Workers   int
	OutputDir string
	Raw       bool
}

func main() {
	opts := Options{}
	flag.StringVar(&opts.Scene, "scene", "default", "Scene: 'default', 'cornell', a scene file name from scenes/, or a path to a .json file")
	flag.IntVar(&opts.Width, "width", 0, fmt.Sprintf("Image width in pixels, %d-%d (0 = scene default)", renderer.MinWidth, renderer.MaxWidth))
	flag.IntVar(&opts.Depth, "depth", -1, "Maximum reflection/refraction depth, 0-10 (-1 = scene default)")
	flag.Float64Var(&opts.Threshold, "threshold", -1, "Adaptive termination threshold (-1 = scene default)")
	flag.IntVar(&opts.Samples, "samples", 0, fmt.Sprintf("Sub-pixel grid per axis, 1-%d (0 = scene default)", renderer.MaxSamples))
	flag.IntVar(&opts.Workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	flag.StringVar(&opts.OutputDir, "output", "output", "Base directory for rendered images")
	flag.BoolVar(&opts.Raw, "raw", false, "Also save the frame as zstd-compressed raw RGB (.rgb.zst)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	// Ctrl-C stops dispatching rows; the partial image is still saved
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, renderer.NewDefaultLogger()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func printHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.BuiltinScenes() {
		fmt.Printf("  %-12s - %s\n", info.ID, info.Description)
	}
	if files, err := scene.ListJSONScenes(); err == nil {
		for _, info := range files {
			fmt.Printf("  %-12s - %s\n", strings.TrimPrefix(info.ID, "json:"), info.Description)
		}
	}
	fmt.Println()
	fmt.Println("Environment overrides (applied before flags):")
	fmt.Printf("  %s, %s, %s, %s\n", renderer.EnvDepth, renderer.EnvThreshold, renderer.EnvSamples, renderer.EnvWorkers)
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
}

// run renders the selected scene and writes the output files
func run(ctx context.Context, opts Options, logger core.Logger) error {
	selectedScene, err := createScene(opts.Scene)
	if err != nil {
		return err
	}

	config, err := buildConfig(selectedScene, opts)
	if err != nil {
		return err
	}

	outputDir := filepath.Join(opts.OutputDir, sceneBaseName(opts.Scene))
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	logger.Printf("Starting Whitted Raytracer with scene %q...\n", selectedScene.Name)
	selectedScene.Freeze()

	r := renderer.NewRenderer(selectedScene, config, logger)
	frame, stats, err := r.Render(ctx, nil)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if stats.Rows > 0 {
		logger.Printf("Average luminance: %.3f\n", renderer.CalculateAverageLuminance(frame.ToImage()))
	}

	timestamp := time.Now().Format("20060102_150405")
	base := filepath.Join(outputDir, fmt.Sprintf("render_%s", timestamp))

	if err := savePNG(base+".png", frame); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", base+".png")

	if opts.Raw {
		raw := loaders.RawFrame{Width: frame.Width, Height: frame.Height, Pix: frame.Pix}
		if err := loaders.SaveRawFrame(base+".rgb.zst", raw); err != nil {
			return err
		}
		logger.Printf("Raw frame saved as %s\n", base+".rgb.zst")
	}

	return nil
}

// buildConfig starts from the scene's recommended settings, applies WHITTED_*
// environment overrides, then command line flags
func buildConfig(s *scene.Scene, opts Options) (renderer.Config, error) {
	config, err := renderer.ConfigFromEnv(s.RenderConfig)
	if err != nil {
		return renderer.Config{}, fmt.Errorf("invalid environment: %w", err)
	}

	if opts.Width != 0 {
		if opts.Width < renderer.MinWidth || opts.Width > renderer.MaxWidth {
			return renderer.Config{}, fmt.Errorf("width must be between %d and %d, got %d",
				renderer.MinWidth, renderer.MaxWidth, opts.Width)
		}
		config.Width = opts.Width
	}
	config.Height = renderer.HeightForAspect(config.Width, s.AspectRatio())

	if opts.Depth >= 0 {
		config.Integrator.MaxDepth = opts.Depth
	}
	if opts.Threshold >= 0 {
		config.Integrator.Threshold = opts.Threshold
	}
	if opts.Samples > 0 {
		config.Samples = opts.Samples
	}
	if opts.Workers > 0 {
		config.NumWorkers = opts.Workers
	}

	if err := config.Validate(); err != nil {
		return renderer.Config{}, fmt.Errorf("invalid render settings: %w", err)
	}
	return config, nil
}

// createScene resolves a scene name: built-in scenes first, then a .json path,
// then a file of that name in the scenes directory
func createScene(sceneType string) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("scene name cannot be empty")
	}

	if strings.HasSuffix(strings.ToLower(sceneType), ".json") {
		return scene.NewJSONScene(sceneType)
	}

	if s, err := scene.Load(sceneType); err == nil {
		return s, nil
	}

	if s := tryLoadJSONScene(sceneType); s != nil {
		return s, nil
	}

	return nil, fmt.Errorf("unknown scene type: %s", sceneType)
}

// tryLoadJSONScene loads scenes/<name>.json if it exists
func tryLoadJSONScene(name string) *scene.Scene {
	s, err := scene.Load("json:" + name)
	if err != nil {
		return nil
	}
	return s
}

// sceneBaseName returns the output directory name for a scene argument
func sceneBaseName(sceneType string) string {
	base := filepath.Base(sceneType)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimPrefix(base, "json:")
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "scene"
	}
	return base
}

func savePNG(filename string, frame *renderer.FrameBuffer) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, frame.ToImage()); err != nil {
		return fmt.Errorf("error saving PNG: %w", err)
	}
	return nil
}
