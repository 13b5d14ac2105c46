package renderer

import (
	"context"
	"runtime"
	"sync"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
)

// RowTask represents a scanline rendering task for the worker pool
type RowTask struct {
	Row int // Framebuffer row, 0 at the top
}

// RowResult contains the result from rendering a scanline
type RowResult struct {
	Row   int
	Stats RenderStats
}

// WorkerPool manages parallel scanline rendering
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker traces the pixels of one row at a time into the shared frame buffer
type Worker struct {
	ID          int
	scene       *countingScene
	integrator  *integrator.WhittedIntegrator
	frame       *FrameBuffer
	samples     int
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(scene integrator.Scene, integ *integrator.WhittedIntegrator, frame *FrameBuffer, samples, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, numWorkers),
		resultQueue: make(chan RowResult, frame.Height), // Buffer for every row
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			scene:       &countingScene{Scene: scene},
			integrator:  integ,
			frame:       frame,
			samples:     samples,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop closes the task queue, waits for in-flight rows and closes the results
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask hands a row to the pool. It reports false without submitting
// once ctx is done.
func (wp *WorkerPool) SubmitTask(ctx context.Context, task RowTask) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case wp.taskQueue <- task:
		return true
	case <-ctx.Done():
		return false
	}
}

// Results returns the channel of completed rows. It is closed by Stop.
func (wp *WorkerPool) Results() <-chan RowResult {
	return wp.resultQueue
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Rows never overlap, so writing the shared frame buffer needs no lock
		w.resultQueue <- RowResult{
			Row:   task.Row,
			Stats: w.renderRow(task.Row),
		}
	}
}

// renderRow traces every pixel of a framebuffer row and averages its
// Samples × Samples grid of clamped traces
func (w *Worker) renderRow(row int) RenderStats {
	width, height := w.frame.Width, w.frame.Height
	n := w.samples
	invSamples := 1.0 / float64(n*n)

	// The image plane has y = 0 at the bottom
	j := height - 1 - row

	for i := 0; i < width; i++ {
		var accum core.Vec3
		for sy := 0; sy < n; sy++ {
			for sx := 0; sx < n; sx++ {
				x := (float64(i) + float64(sx)/float64(n)) / float64(width)
				y := (float64(j) + float64(sy)/float64(n)) / float64(height)
				accum = accum.Add(w.integrator.Trace(w.scene, x, y))
			}
		}
		w.frame.Set(i, row, accum.Multiply(invSamples))
	}

	return RenderStats{
		Rows:    1,
		Pixels:  width,
		Samples: width * n * n,
		Rays:    w.scene.take(),
	}
}
