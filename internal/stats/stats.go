package stats

import (
	"github.com/suykerbuyk/chronal/internal/delta"
	"github.com/suykerbuyk/chronal/internal/frequency"
)

// Summary holds descriptive metrics for one pass over a delta sequence.
type Summary struct {
	Deltas    int
	Increases int
	Decreases int
	Zeros     int

	LargestIncrease int64
	LargestDecrease int64 // magnitude

	Total      int64 // final frequency after one pass
	MinRunning int64
	MaxRunning int64
	Distinct   int  // distinct running sums in one pass, excluding the start
	Revisits   bool // some sum in the first pass was already seen, the start included
}

// Compute builds a Summary from a parsed sequence.
func Compute(deltas []delta.Delta) Summary {
	s := Summary{Deltas: len(deltas)}

	seen := make(map[int64]struct{}, len(deltas))
	for i, sum := range frequency.RunningSums(deltas) {
		d := deltas[i]
		switch {
		case d.Magnitude == 0:
			s.Zeros++
		case d.Sign == delta.Increase:
			s.Increases++
			if d.Magnitude > s.LargestIncrease {
				s.LargestIncrease = d.Magnitude
			}
		default:
			s.Decreases++
			if d.Magnitude > s.LargestDecrease {
				s.LargestDecrease = d.Magnitude
			}
		}

		if i == 0 || sum < s.MinRunning {
			s.MinRunning = sum
		}
		if i == 0 || sum > s.MaxRunning {
			s.MaxRunning = sum
		}
		if _, ok := seen[sum]; ok || sum == 0 {
			s.Revisits = true
		}
		seen[sum] = struct{}{}
		s.Total = sum
	}
	s.Distinct = len(seen)

	return s
}
