package renderer

import (
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Rows    int                       // Rows completed
	Pixels  int                       // Pixels completed
	Samples int                       // Primary samples traced
	Rays    [core.RayShadow + 1]int64 // Intersection queries per ray kind
	Elapsed time.Duration             // Wall time of the render
}

// TotalRays returns the number of intersection queries of every kind
func (s RenderStats) TotalRays() int64 {
	var total int64
	for _, n := range s.Rays {
		total += n
	}
	return total
}

// add folds a row's counters into the running totals
func (s *RenderStats) add(other RenderStats) {
	s.Rows += other.Rows
	s.Pixels += other.Pixels
	s.Samples += other.Samples
	for kind, n := range other.Rays {
		s.Rays[kind] += n
	}
}

// countingScene wraps a scene and counts every intersection query by ray kind.
// Each worker owns one, so the counters need no synchronization.
type countingScene struct {
	integrator.Scene
	rays [core.RayShadow + 1]int64
}

func (c *countingScene) Intersect(ray core.Ray) (*material.SurfaceInteraction, bool) {
	if ray.Kind >= 0 && int(ray.Kind) < len(c.rays) {
		c.rays[ray.Kind]++
	}
	return c.Scene.Intersect(ray)
}

// take returns the counts since the last call and resets them
func (c *countingScene) take() [core.RayShadow + 1]int64 {
	rays := c.rays
	c.rays = [core.RayShadow + 1]int64{}
	return rays
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image in [0,1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += 0.2126*float64(r)/65535.0 + 0.7152*float64(g)/65535.0 + 0.0722*float64(b)/65535.0
		}
	}
	return total / float64(pixels)
}
