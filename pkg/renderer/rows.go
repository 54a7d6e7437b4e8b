package renderer

// RowRange is the half-open scanline range [Start, End)
type RowRange struct {
	Start int
	End   int
}

// Len returns the number of rows in the range
func (r RowRange) Len() int {
	return r.End - r.Start
}

// partitionRows splits [0, height) into at most workers contiguous, disjoint, non-empty ranges
func partitionRows(height, workers int) []RowRange {
	if height <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = 1
	}

	rowsPerTask := (height + workers - 1) / workers

	ranges := make([]RowRange, 0, workers)
	for start := 0; start < height; start += rowsPerTask {
		ranges = append(ranges, RowRange{Start: start, End: min(start+rowsPerTask, height)})
	}
	return ranges
}
