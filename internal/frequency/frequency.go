// Package frequency folds delta sequences into running frequencies.
package frequency

import (
	"errors"
	"fmt"

	"github.com/suykerbuyk/chronal/internal/delta"
)

var (
	// ErrEmptySequence is returned by the cycle detector when there is nothing to replay.
	ErrEmptySequence = errors.New("empty delta sequence")
	// ErrNoRepeat is returned when a step cap is set and no sum repeats within it.
	ErrNoRepeat = errors.New("no repeated frequency")
)

// Total applies every delta in order, starting from 0.
// The empty sequence totals 0.
func Total(deltas []delta.Delta) int64 {
	var sum int64
	for _, d := range deltas {
		sum += d.Value()
	}
	return sum
}

// Repeat describes the first running sum reached twice during cyclic replay.
type Repeat struct {
	Value int64
	Step  int // deltas applied, 1-based
	Pass  int // replay pass the repeat fell in, 1-based
}

// FirstRepeat replays deltas cyclically until a running sum repeats and
// returns it. The starting value 0 counts as seen. It does not return for
// inputs whose running sum never repeats.
func FirstRepeat(deltas []delta.Delta) (int64, error) {
	r, err := Detect(deltas, 0)
	if err != nil {
		return 0, err
	}
	return r.Value, nil
}

// Detect is FirstRepeat with an optional cap on applied deltas.
// maxSteps <= 0 scans without bound.
func Detect(deltas []delta.Delta, maxSteps int) (Repeat, error) {
	if len(deltas) == 0 {
		return Repeat{}, ErrEmptySequence
	}

	seen := map[int64]struct{}{0: {}}
	var sum int64

	for step := 1; ; step++ {
		if maxSteps > 0 && step > maxSteps {
			return Repeat{}, fmt.Errorf("%w within %d steps", ErrNoRepeat, maxSteps)
		}

		i := (step - 1) % len(deltas)
		sum += deltas[i].Value()

		if _, ok := seen[sum]; ok {
			return Repeat{Value: sum, Step: step, Pass: (step-1)/len(deltas) + 1}, nil
		}
		seen[sum] = struct{}{}
	}
}

// RunningSums returns the running sum after each delta of a single pass.
func RunningSums(deltas []delta.Delta) []int64 {
	sums := make([]int64, len(deltas))
	var sum int64
	for i, d := range deltas {
		sum += d.Value()
		sums[i] = sum
	}
	return sums
}
