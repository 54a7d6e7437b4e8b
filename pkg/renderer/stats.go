package renderer

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	RenderID     string        // Correlates log lines of one render
	Width        int           // Image width in pixels
	Height       int           // Image height in pixels
	Workers      int           // Worker goroutines used
	Tasks        int           // Row range tasks scheduled
	TotalSamples int64         // Camera rays traced
	Duration     time.Duration // Wall time of the parallel phase
	WorkerRows   map[int]int   // Rows rendered by each worker
	Results      []TaskResult  // Completed tasks, ordered by task ID
}

func (s *RenderStats) addResults(results []TaskResult) {
	sort.Slice(results, func(i, j int) bool { return results[i].TaskID < results[j].TaskID })

	s.Results = results
	s.WorkerRows = make(map[int]int)
	for _, result := range results {
		s.TotalSamples += result.Samples
		s.WorkerRows[result.WorkerID] += result.Rows.Len()
	}
}

// SamplesPerSecond returns the camera ray throughput
func (s *RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// WriteTable prints the statistics as a two-column table
func (s *RenderStats) WriteTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Stat", "Value"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	table.Append([]string{"Render ID", s.RenderID})
	table.Append([]string{"Resolution", fmt.Sprintf("%dx%d", s.Width, s.Height)})
	table.Append([]string{"Workers", strconv.Itoa(s.Workers)})
	table.Append([]string{"Tasks", strconv.Itoa(s.Tasks)})
	table.Append([]string{"Samples", strconv.FormatInt(s.TotalSamples, 10)})
	table.Append([]string{"Duration", s.Duration.Round(time.Millisecond).String()})
	table.Append([]string{"Samples/sec", fmt.Sprintf("%.0f", s.SamplesPerSecond())})

	workers := make([]int, 0, len(s.WorkerRows))
	for worker := range s.WorkerRows {
		workers = append(workers, worker)
	}
	sort.Ints(workers)
	for _, worker := range workers {
		table.Append([]string{fmt.Sprintf("Worker %d rows", worker), strconv.Itoa(s.WorkerRows[worker])})
	}

	table.Render()
}
