package renderer

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// seedStride separates the random streams of consecutive tasks
const seedStride = 1_000_003

// RowTask represents a row range rendering task for the worker pool
type RowTask struct {
	TaskID int
	Rows   RowRange
}

// TaskResult contains the result from rendering a row range
type TaskResult struct {
	TaskID   int
	WorkerID int
	Rows     RowRange
	Samples  int64
	Duration time.Duration
}

// RowRenderer renders one row range into a buffer
type RowRenderer interface {
	RenderRows(rows RowRange, buffer *PixelBuffer, sampler core.Sampler) int64
}

// WorkerPool renders row ranges in parallel. Workers pull tasks from a shared queue;
// every task owns a disjoint set of rows, so the buffer needs no locking.
type WorkerPool struct {
	numWorkers int
	seed       int64

	completedRows atomic.Int64
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// A zero seed draws one from the clock.
func NewWorkerPool(numWorkers int, seed int64) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &WorkerPool{
		numWorkers: numWorkers,
		seed:       seed,
	}
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// CompletedRows returns the number of rows finished so far
func (wp *WorkerPool) CompletedRows() int64 {
	return wp.completedRows.Load()
}

// Run partitions the buffer's rows into one task per worker and renders them all.
// The first task failure cancels the remaining tasks and is returned.
func (wp *WorkerPool) Run(renderer RowRenderer, buffer *PixelBuffer) (*RenderStats, error) {
	stats := &RenderStats{
		RenderID: uuid.New().String(),
		Width:    buffer.Width,
		Height:   buffer.Height,
		Workers:  wp.numWorkers,
	}
	wp.completedRows.Store(0)

	tasks := partitionRows(buffer.Height, wp.numWorkers)
	stats.Tasks = len(tasks)

	logger.Noticef("render %s: %dx%d, %d tasks on %d workers", stats.RenderID, buffer.Width, buffer.Height, len(tasks), wp.numWorkers)

	taskQueue := make(chan RowTask, len(tasks))
	for i, rows := range tasks {
		taskQueue <- RowTask{TaskID: i, Rows: rows}
	}
	close(taskQueue)

	var (
		resultsMu sync.Mutex
		results   []TaskResult
	)

	start := time.Now()
	group, ctx := errgroup.WithContext(context.Background())

	for workerID := 0; workerID < wp.numWorkers; workerID++ {
		workerID := workerID
		group.Go(func() error {
			for task := range taskQueue {
				// Drain without rendering once another task has failed
				if ctx.Err() != nil {
					continue
				}

				result, err := wp.runTask(renderer, buffer, task, workerID)
				if err != nil {
					return err
				}

				resultsMu.Lock()
				results = append(results, result)
				resultsMu.Unlock()

				wp.reportProgress(stats.RenderID, task.Rows.Len(), buffer.Height)
			}
			return nil
		})
	}

	err := group.Wait()
	stats.Duration = time.Since(start)
	stats.addResults(results)

	if err != nil {
		return stats, err
	}

	logger.Noticef("render %s finished in %s", stats.RenderID, stats.Duration.Round(time.Millisecond))
	return stats, nil
}

// runTask renders one task with its own sampler, converting a panic into an error
func (wp *WorkerPool) runTask(renderer RowRenderer, buffer *PixelBuffer, task RowTask, workerID int) (result TaskResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("task %d rows [%d,%d) panicked: %v", task.TaskID, task.Rows.Start, task.Rows.End, r)
		}
	}()

	sampler := core.NewSeededSampler(wp.seed + int64(task.TaskID)*seedStride)

	start := time.Now()
	samples := renderer.RenderRows(task.Rows, buffer, sampler)
	duration := time.Since(start)

	logger.Debugf("worker %d rendered rows [%d,%d) in %s", workerID, task.Rows.Start, task.Rows.End, duration)

	return TaskResult{
		TaskID:   task.TaskID,
		WorkerID: workerID,
		Rows:     task.Rows,
		Samples:  samples,
		Duration: duration,
	}, nil
}

// reportProgress logs every time the completed share of rows crosses a 10% step
func (wp *WorkerPool) reportProgress(renderID string, rows, height int) {
	done := wp.completedRows.Add(int64(rows))
	before := (done - int64(rows)) * 10 / int64(height)
	after := done * 10 / int64(height)

	if after > before {
		logger.Infof("render %s: %d%% (%d/%d rows)", renderID, after*10, done, height)
	}
}
