package renderer

import (
	"bytes"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// rowMarker writes each row's index into its pixels
type rowMarker struct {
	calls atomic.Int64
}

func (m *rowMarker) RenderRows(rows RowRange, buffer *PixelBuffer, sampler core.Sampler) int64 {
	m.calls.Add(1)
	for j := rows.Start; j < rows.End; j++ {
		for i := 0; i < buffer.Width; i++ {
			buffer.Set(i, j, buffer.At(i, j).Add(core.NewVec3(float64(j), 1, 0)))
		}
	}
	return int64(rows.Len() * buffer.Width)
}

// panickingRenderer fails on the task that owns badRow
type panickingRenderer struct {
	badRow int
}

func (p panickingRenderer) RenderRows(rows RowRange, buffer *PixelBuffer, sampler core.Sampler) int64 {
	if rows.Start <= p.badRow && p.badRow < rows.End {
		panic("bad row")
	}
	return 0
}

func TestWorkerPool_RendersEveryRowOnce(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		height  int
	}{
		{"single worker", 1, 10},
		{"more rows than workers", 3, 10},
		{"more workers than rows", 8, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewWorkerPool(tt.workers, 1)
			buffer := NewPixelBuffer(4, tt.height)
			marker := &rowMarker{}

			stats, err := pool.Run(marker, buffer)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			for j := 0; j < tt.height; j++ {
				for i := 0; i < 4; i++ {
					if got := buffer.At(i, j); got != core.NewVec3(float64(j), 1, 0) {
						t.Fatalf("Pixel (%d,%d): expected one write for row %d, got %v", i, j, j, got)
					}
				}
			}

			if pool.CompletedRows() != int64(tt.height) {
				t.Errorf("Expected %d completed rows, got %d", tt.height, pool.CompletedRows())
			}
			if int(marker.calls.Load()) != stats.Tasks || len(stats.Results) != stats.Tasks {
				t.Errorf("Expected %d tasks, got %d calls and %d results", stats.Tasks, marker.calls.Load(), len(stats.Results))
			}
			if stats.TotalSamples != int64(4*tt.height) {
				t.Errorf("Expected %d samples, got %d", 4*tt.height, stats.TotalSamples)
			}

			rows := 0
			for _, n := range stats.WorkerRows {
				rows += n
			}
			if rows != tt.height {
				t.Errorf("Expected worker rows to sum to %d, got %d", tt.height, rows)
			}
		})
	}
}

func TestWorkerPool_PanicBecomesError(t *testing.T) {
	pool := NewWorkerPool(4, 1)
	buffer := NewPixelBuffer(2, 8)

	_, err := pool.Run(panickingRenderer{badRow: 5}, buffer)
	if err == nil {
		t.Fatal("Expected the panicking task to fail the render")
	}
	// 8 rows on 4 workers: row 5 belongs to task 2, rows [4,6)
	if !strings.Contains(err.Error(), "rows [4,6)") || !strings.Contains(err.Error(), "bad row") {
		t.Errorf("Expected error to name the failed row range, got %v", err)
	}
}

func TestWorkerPool_DefaultWorkers(t *testing.T) {
	if pool := NewWorkerPool(0, 1); pool.NumWorkers() < 1 {
		t.Errorf("Expected at least one worker, got %d", pool.NumWorkers())
	}
}

func TestRenderStats_WriteTable(t *testing.T) {
	pool := NewWorkerPool(2, 1)
	stats, err := pool.Run(&rowMarker{}, NewPixelBuffer(3, 4))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var out bytes.Buffer
	stats.WriteTable(&out)

	table := out.String()
	for _, want := range []string{stats.RenderID, "3x4", "Samples/sec"} {
		if !strings.Contains(table, want) {
			t.Errorf("Expected table to contain %q:\n%s", want, table)
		}
	}
}
