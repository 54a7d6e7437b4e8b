package renderer

import "testing"

func TestPartitionRows_CoversEveryRowOnce(t *testing.T) {
	for _, height := range []int{1, 7, 100} {
		for _, workers := range []int{1, 2, 8} {
			ranges := partitionRows(height, workers)

			if len(ranges) == 0 || len(ranges) > workers {
				t.Errorf("H=%d T=%d: expected 1..%d ranges, got %d", height, workers, workers, len(ranges))
			}

			covered := make([]int, height)
			next := 0
			for _, r := range ranges {
				if r.Len() <= 0 {
					t.Errorf("H=%d T=%d: empty range %v", height, workers, r)
				}
				if r.Start != next {
					t.Errorf("H=%d T=%d: range %v does not continue at row %d", height, workers, r, next)
				}
				for row := r.Start; row < r.End; row++ {
					covered[row]++
				}
				next = r.End
			}

			for row, count := range covered {
				if count != 1 {
					t.Errorf("H=%d T=%d: row %d covered %d times", height, workers, row, count)
				}
			}
		}
	}
}

func TestPartitionRows_Degenerate(t *testing.T) {
	if ranges := partitionRows(0, 4); len(ranges) != 0 {
		t.Errorf("Expected no ranges for an empty image, got %v", ranges)
	}
	if ranges := partitionRows(5, 0); len(ranges) != 1 || ranges[0] != (RowRange{0, 5}) {
		t.Errorf("Expected a single range with no workers requested, got %v", ranges)
	}
}
